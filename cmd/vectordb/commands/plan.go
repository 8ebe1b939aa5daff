package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/vectordb/cmd/vectordb/handlers"
)

// Plan returns the command that lists resources in build order.
func Plan() *cobra.Command {
	var (
		inputPath  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show generated resources in dependency order",
		Long: `Show the resources a VectorDatabase generates, in build order.

Each row lists the resource kind and name, the creation layer (resources in
the same layer have no dependency on each other) and the resources it
depends on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Plan(cmd.Context(), inputPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "file", "f", "vectordb.yaml", "Composite or request document (- for stdin)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
