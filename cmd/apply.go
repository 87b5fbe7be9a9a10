package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindtris/uitheme/internal/config"
	"github.com/mindtris/uitheme/internal/manager"
)

var (
	applyDark       bool
	applyLight      bool
	applySaveConfig bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <preset|custom:slug>",
	Short: "Switch to a preset or the saved custom theme",
	Long: `Switch the active theme. The selection is persisted; HSL knobs set with
'uitheme set' carry over to the new theme.

Examples:
  uitheme apply amber
  uitheme apply blue --dark
  uitheme apply custom:ocean-blue --save-config`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if applyDark && applyLight {
			return fmt.Errorf("--dark and --light are mutually exclusive")
		}
		return withApp(cmd.Context(), func(a *app) error {
			dark := a.manager.State().Mode.IsDark()
			switch {
			case applyDark:
				dark = true
			case applyLight:
				dark = false
			}
			if err := a.manager.ApplyTheme(args[0], dark); err != nil {
				return err
			}
			a.manager.Flush()

			st := a.manager.State()
			if st.Selection != args[0] {
				return fmt.Errorf("theme %q could not be selected; %s is active", args[0], st.Selection)
			}
			if applySaveConfig {
				tc := config.ThemeConfig{Preset: args[0], Mode: string(manager.ChoiceFor(dark))}
				if err := config.SaveTheme(configFilePath(), tc); err != nil {
					return fmt.Errorf("saving config: %w", err)
				}
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", okStyle.Render("applied"), st.Selection, st.Mode)
			return nil
		})
	},
}

func init() {
	applyCmd.Flags().BoolVar(&applyDark, "dark", false, "Apply in dark mode")
	applyCmd.Flags().BoolVar(&applyLight, "light", false, "Apply in light mode")
	applyCmd.Flags().BoolVar(&applySaveConfig, "save-config", false, "Also write the selection to the config file")
	rootCmd.AddCommand(applyCmd)
}
