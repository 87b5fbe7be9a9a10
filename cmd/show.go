package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindtris/uitheme/internal/css"
)

var showFormat string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active theme",
	Long: `Show the active selection and its resolved variables.

Formats:
  swatch  variables of the current mode with color swatches (default)
  css     :root and .dark blocks for both modes
  json    light and dark variable maps

Examples:
  uitheme show
  uitheme show --mode dark
  uitheme show --format css > theme.css`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			w := cmd.OutOrStdout()
			switch showFormat {
			case "swatch", "":
				st := a.manager.State()
				_, _ = fmt.Fprintf(w, "%s %s  %s %s  %s %s\n",
					mutedStyle.Render("theme"), st.Selection,
					mutedStyle.Render("mode"), st.Mode,
					mutedStyle.Render("store"), a.storeLabel)
				if st.LastFallback {
					_, _ = fmt.Fprintln(w, errorStyle.Render("fallback theme active: the last apply failed"))
				}
				renderVariables(w, string(st.Mode), a.target.Computed())
				return nil
			case "css":
				snap, err := a.manager.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprint(w, css.Render(snap.Styles))
				return nil
			case "json":
				snap, err := a.manager.Snapshot(cmd.Context())
				if err != nil {
					return err
				}
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			default:
				return fmt.Errorf("unknown format %q: expected swatch, css or json", showFormat)
			}
		})
	},
}

func init() {
	showCmd.Flags().StringVarP(&showFormat, "format", "f", "swatch", "Output format: swatch, css or json")
	rootCmd.AddCommand(showCmd)
}
