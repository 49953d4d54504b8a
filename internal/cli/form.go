package cli

import (
	"corvus-contact/internal/tui"
	"corvus-contact/pkg/contactform"

	"github.com/spf13/cobra"
)

func newFormCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "form",
		Short: "Fill in the contact form interactively",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			push, feed := tui.StatusFeed()
			ctl := contactform.New(a.v.GetString("endpoint"),
				contactform.WithLogger(a.log),
				contactform.WithOnChange(push),
			)
			defer ctl.Close()
			return tui.Run(ctl, feed)
		},
	}
}
