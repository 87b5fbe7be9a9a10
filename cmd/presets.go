package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindtris/uitheme/internal/theme"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in theme presets",
	Long: `List the built-in presets with their light and dark primary colors.
The active preset is marked with *.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			active := a.manager.State().Selection
			w := cmd.OutOrStdout()
			for _, key := range theme.PresetKeys() {
				p, _ := theme.LookupPreset(key)
				_, _ = fmt.Fprintln(w, presetRow(key, p, key == active))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
