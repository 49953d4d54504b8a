package cli

import (
	"errors"
	"fmt"

	"corvus-contact/pkg/contactform"

	"github.com/spf13/cobra"
)

func newSubmitCmd(a *app) *cobra.Command {
	var name, addr, company, message string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit the contact form non-interactively",
		Example: `  contact submit --name "Ada Lovelace" --email ada@example.com \
    --message "We would like to talk about automation."`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctl := contactform.New(a.v.GetString("endpoint"), contactform.WithLogger(a.log))
			defer ctl.Close()

			values := map[string]string{
				contactform.FieldName:    name,
				contactform.FieldEmail:   addr,
				contactform.FieldCompany: company,
				contactform.FieldMessage: message,
			}
			for field, value := range values {
				if err := ctl.SetField(field, value); err != nil {
					return err
				}
			}

			st, err := ctl.Submit(cmd.Context())
			if errors.Is(err, contactform.ErrValidation) {
				errs := ctl.Errors()
				for _, field := range contactform.FieldOrder {
					if msg, ok := errs[field]; ok {
						fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", field, msg)
					}
				}
				return err
			}
			if err != nil {
				return err
			}

			switch st := st.(type) {
			case contactform.Succeeded:
				fmt.Fprintln(cmd.OutOrStdout(), "Thank you for your message! We'll get back to you soon.")
				return nil
			case contactform.Failed:
				return fmt.Errorf("submission failed: %s", st.Reason)
			default:
				return fmt.Errorf("unexpected status %s", st)
			}
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "your name (required)")
	cmd.Flags().StringVar(&addr, "email", "", "your email address (required)")
	cmd.Flags().StringVar(&company, "company", "", "company name")
	cmd.Flags().StringVar(&message, "message", "", "message body (required)")
	return cmd
}
