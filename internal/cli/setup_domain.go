package cli

import (
	"errors"
	"fmt"
	"strings"

	"corvus-contact/config"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newSetupDomainCmd(a *app) *cobra.Command {
	var domain, region string

	cmd := &cobra.Command{
		Use:   "setup-domain",
		Short: "Register the sending domain with Resend and print the DNS records to publish",
		Long: `Registers the domain used by CONTACT_FROM_EMAIL with Resend. The returned
SPF and DKIM records must be added at the DNS provider before mail from the
domain is accepted; use test-email --from onboarding@resend.dev until then.`,
		Example: "  contact setup-domain --domain corvusbpo.com",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if cfg.ResendAPIKey == "" {
				return errors.New("RESEND_API_KEY is not set")
			}
			if domain == "" {
				domain = domainOf(cfg.ContactFromEmail)
			}
			if domain == "" {
				return errors.New("--domain is required")
			}

			created, err := a.newDomains(cfg.ResendAPIKey).RegisterDomain(cmd.Context(), domain, region)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Domain added successfully: %s (id %s, status %s)\n", created.Name, created.ID, created.Status)
			if len(created.Records) == 0 {
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("RECORD", "TYPE", "NAME", "VALUE", "PRIORITY", "TTL")
			for _, r := range created.Records {
				t.Row(r.Record, r.Type, r.Name, r.Value, r.Priority, r.TTL)
			}
			fmt.Fprintln(out, t.String())
			return nil
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "", "domain to register (default: the CONTACT_FROM_EMAIL domain)")
	cmd.Flags().StringVar(&region, "region", "", "Resend region, e.g. us-east-1")
	return cmd
}

func domainOf(addr string) string {
	at := strings.LastIndexByte(addr, '@')
	if at < 0 {
		return ""
	}
	return addr[at+1:]
}
