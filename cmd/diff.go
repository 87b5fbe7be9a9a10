package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindtris/uitheme/internal/css"
	"github.com/mindtris/uitheme/internal/theme"
)

// refCurrent names the live theme in diff arguments.
const refCurrent = "current"

var diffCmd = &cobra.Command{
	Use:   "diff <from> [to]",
	Short: "Compare two themes as CSS",
	Long: `Compare two themes line by line as rendered CSS. Each side is a preset
key, a theme file, or 'current' for the live theme (the default for <to>).
Exits with an error when the themes differ.

Examples:
  uitheme diff default
  uitheme diff amber blue
  uitheme diff current ocean.json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		to := refCurrent
		if len(args) == 2 {
			to = args[1]
		}
		return withApp(cmd.Context(), func(a *app) error {
			fromStyles, err := resolveRef(cmd, a, args[0])
			if err != nil {
				return err
			}
			toStyles, err := resolveRef(cmd, a, to)
			if err != nil {
				return err
			}
			lines := css.Diff(fromStyles, toStyles)
			if !css.Changed(lines) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render("no differences"))
				return nil
			}
			renderDiff(cmd.OutOrStdout(), lines)
			return errThemesDiffer
		})
	},
}

var errThemesDiffer = errors.New("themes differ")

func resolveRef(cmd *cobra.Command, a *app, ref string) (theme.ModeStyles, error) {
	if ref == refCurrent {
		snap, err := a.manager.Snapshot(cmd.Context())
		if err != nil {
			return theme.ModeStyles{}, err
		}
		// Presets carry their knobs per mode; match that shape.
		return theme.ModeStyles{
			Light: snap.Styles.Light.Merge(snap.Knobs),
			Dark:  snap.Styles.Dark.Merge(snap.Knobs),
		}, nil
	}
	if p, ok := theme.LookupPreset(ref); ok {
		return p.Styles, nil
	}
	imp, err := parseFile(ref, cmd.InOrStdin())
	if err != nil {
		return theme.ModeStyles{}, err
	}
	return importedStyles(imp)
}

func init() {
	rootCmd.AddCommand(diffCmd)
}
