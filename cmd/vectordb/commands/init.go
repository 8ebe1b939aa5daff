package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/vectordb/cmd/vectordb/handlers"
)

// Init returns the command for interactively creating a VectorDatabase composite.
//
// Flags:
//
//	--output, -o: Path to output file (default "vectordb.yaml")
//	--advanced, -a: Show advanced configuration options
func Init() *cobra.Command {
	var (
		outputPath string
		advanced   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a VectorDatabase composite",
		Long: `Interactively create a VectorDatabase composite file.

This command guides you through configuring the database step by step.
It will ask about:

  - Identity (name, namespace, environment and region)
  - Network (new VPC or existing VPC and subnets)
  - Database (engine version, instance class, capacity, instances)
  - Credentials (generated or existing password secret)

Use --advanced for provider config, allowed networks, backups,
monitoring and the pgvector parameter groups.

Values equal to their defaults are omitted from the output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, advanced)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "vectordb.yaml", "Output file path")
	cmd.Flags().BoolVarP(&advanced, "advanced", "a", false, "Show advanced configuration options")

	return cmd
}
