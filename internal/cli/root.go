// Package cli implements the contact command: scripted and interactive
// submissions against the contact endpoint, plus provider setup and a smoke test.
package cli

import (
	"log/slog"
	"os"

	"corvus-contact/pkg/email"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultEndpoint = "http://localhost:8080/api/contact"

// app holds what the subcommands share. Tests build one with a fake sender.
type app struct {
	v          *viper.Viper
	log        *slog.Logger
	newSender  func(apiKey, from string) email.Sender
	newDomains func(apiKey string) email.DomainRegistrar
}

func newApp() *app {
	v := viper.New()
	v.SetEnvPrefix("CORVUS")
	v.AutomaticEnv()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	return &app{
		v:   v,
		log: log,
		newSender: func(apiKey, from string) email.Sender {
			return email.NewResendSender(apiKey, from, log)
		},
		newDomains: func(apiKey string) email.DomainRegistrar {
			return email.NewResendDomains(apiKey, log)
		},
	}
}

// NewRootCommand creates the root command with all subcommands attached
func NewRootCommand() *cobra.Command {
	return newRootCommand(newApp())
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "contact",
		Short: "Corvus Labs contact form client",
		Long: `Send messages through the Corvus Labs contact endpoint.

Flags can also be set through CORVUS_ prefixed environment variables,
for example CORVUS_ENDPOINT.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("endpoint", defaultEndpoint, "contact endpoint URL")
	root.PersistentFlags().Bool("debug", false, "enable debug logging")
	_ = a.v.BindPFlag("endpoint", root.PersistentFlags().Lookup("endpoint"))
	_ = a.v.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))

	root.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if a.v.GetBool("debug") {
			a.log = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
	}

	root.AddCommand(newSubmitCmd(a))
	root.AddCommand(newFormCmd(a))
	root.AddCommand(newTestEmailCmd(a))
	root.AddCommand(newSetupDomainCmd(a))
	return root
}

// Execute runs the root command. Called by main.main().
func Execute() error {
	return NewRootCommand().Execute()
}
