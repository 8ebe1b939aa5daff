package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/imamik/vectordb/cmd/vectordb/handlers"
	"github.com/imamik/vectordb/internal/function"
)

// Render returns the command that prints the desired-state response.
//
// Flags:
//
//	--file, -f: Composite or request document, "-" for stdin (default "vectordb.yaml")
//	--output, -o: Output format, yaml or json
func Render() *cobra.Command {
	var (
		inputPath string
		format    string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the desired state for a VectorDatabase",
		Long: `Render the desired state for a VectorDatabase composite.

The input is either a VectorDatabase composite or a full function request
with meta.tag and observed.composite.resource. The output is the function
response: every managed resource keyed by name, the response TTL and a
fingerprint of the desired state.

Generated passwords appear only inside the Secret resource.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != function.FormatYAML && format != function.FormatJSON {
				return fmt.Errorf("unsupported output format %q (use yaml or json)", format)
			}
			return handlers.Render(cmd.Context(), inputPath, format)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "file", "f", "vectordb.yaml", "Composite or request document (- for stdin)")
	cmd.Flags().StringVarP(&format, "output", "o", function.FormatYAML, "Output format (yaml or json)")

	return cmd
}
