// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument parsing,
// flag binding, and validation. Command execution is delegated to handler
// functions in the handlers package.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/vectordb/cmd/vectordb/handlers"
)

// Root returns the root command for the vectordb CLI.
func Root() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "vectordb",
		Short:         "Render Crossplane desired state for pgvector on Aurora",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			handlers.SetupLogging(verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every generated resource")

	cmd.AddCommand(Render())
	cmd.AddCommand(Plan())
	cmd.AddCommand(Init())
	cmd.AddCommand(Version())
	cmd.AddCommand(Completion())

	return cmd
}
