package cli

import (
	"errors"
	"fmt"

	"corvus-contact/config"
	"corvus-contact/pkg/email"

	"github.com/spf13/cobra"
)

const (
	testEmailSubject = "Test Email from Contact Form"
	testEmailHTML    = `<h2>Test Email</h2>
<p>This is a test email to verify the contact form functionality.</p>
<p>Once domain verification is complete, emails will be sent:</p>
<ul>
  <li>From: %s</li>
  <li>To: %s</li>
</ul>`
)

func newTestEmailCmd(a *app) *cobra.Command {
	var to, from string

	cmd := &cobra.Command{
		Use:   "test-email",
		Short: "Send a test message through Resend using the server configuration",
		Long: `Loads the server configuration (environment and .env) and sends one test
message, to check the API key and sender domain before going live.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.ResendAPIKey == "" {
				return errors.New("RESEND_API_KEY is not set")
			}
			if to == "" {
				to = cfg.ContactToEmail
			}
			if from == "" {
				from = cfg.ContactFromEmail
			}

			sender := a.newSender(cfg.ResendAPIKey, from)
			id, err := sender.Send(cmd.Context(), email.Message{
				To:      []string{to},
				Subject: testEmailSubject,
				HTML:    fmt.Sprintf(testEmailHTML, cfg.ContactFromEmail, cfg.ContactToEmail),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Test email sent successfully: %s\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "recipient (default CONTACT_TO_EMAIL)")
	cmd.Flags().StringVar(&from, "from", "", "sender (default CONTACT_FROM_EMAIL; onboarding@resend.dev works before domain verification)")
	return cmd
}
