package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindtris/uitheme/internal/css"
)

var (
	exportFormat string
	exportName   string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the active theme",
	Long: `Export the active theme without saving it.

Formats:
  json  a custom theme artifact that 'uitheme import' accepts (default)
  css   :root and .dark blocks

Examples:
  uitheme export --name "Ocean Blue" -o ocean.json
  uitheme export --format css > theme.css`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			var data []byte
			switch exportFormat {
			case "json", "":
				out, err := a.manager.Export(cmd.Context(), exportName)
				if err != nil {
					return err
				}
				data = append(out, '\n')
			case "css":
				snap, err := a.manager.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				data = []byte(css.Render(snap.Styles))
			default:
				return fmt.Errorf("unknown format %q: expected json or css", exportFormat)
			}
			return writeOutput(exportOutput, cmd.OutOrStdout(), data)
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json or css")
	exportCmd.Flags().StringVarP(&exportName, "name", "n", "", "Artifact name (default: the custom theme's name)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
