package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindtris/uitheme/internal/config"
	"github.com/mindtris/uitheme/internal/manager"
)

var modeCmd = &cobra.Command{
	Use:   "mode <light|dark|system>",
	Short: "Set the color mode",
	Long: `Set the color mode and write it to the config file. 'system' follows
the terminal background.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(manager.ModeLight), string(manager.ModeDark), string(manager.ModeSystem)},
	RunE: func(cmd *cobra.Command, args []string) error {
		choice, err := manager.ParseModeChoice(args[0])
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app) error {
			a.manager.SetMode(cmd.Context(), choice)
			st := a.manager.State()
			tc := config.ThemeConfig{Preset: a.cfg.Theme.Preset, Mode: string(choice)}
			if err := config.SaveTheme(configFilePath(), tc); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", okStyle.Render("mode"), choice, st.Mode)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(modeCmd)
}
