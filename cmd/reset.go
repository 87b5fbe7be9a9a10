package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the selection and the saved custom theme",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			a.manager.ResetTheme(cmd.Context())
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("theme reset"))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
}
