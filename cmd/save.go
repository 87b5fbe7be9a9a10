package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the active theme as the custom theme",
	Long: `Capture the active theme, including knobs, as a custom theme artifact.
Only variables that differ from the base theme are stored. The saved
theme becomes the active selection and replaces any previous custom theme.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			saved, err := a.manager.SaveCurrentAsArtifact(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d light, %d dark overrides)\n",
				okStyle.Render("saved"), saved.SelectionKey(),
				len(saved.Overrides.Light), len(saved.Overrides.Dark))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
}
