package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindtris/uitheme/internal/theme"
)

var setSaveName string

var setCmd = &cobra.Command{
	Use:   "set <name=value>...",
	Short: "Edit theme variables",
	Long: `Edit individual variables on top of the active theme. Values are
validated per variable type; an empty value removes the variable.

Edits only live for this invocation unless --save captures them as the
custom theme.

Examples:
  uitheme set primary=#7c3aed ring=#7c3aed --save "Violet Brand"
  uitheme set hue-shift=30 saturation-mult=1.2 --save "Warm"
  uitheme set shadow-opacity=0.2 --save "Soft Shadows"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		edits, err := parseAssignments(args)
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app) error {
			var errs []error
			for _, e := range edits {
				if res := a.manager.HandleColorChange(e.name, e.value); !res.IsValid {
					errs = append(errs, fmt.Errorf("%s: %s", theme.CSSName(e.name), res.Error))
				}
			}
			if len(errs) > 0 {
				return errors.Join(errs...)
			}
			a.manager.Flush()

			w := cmd.OutOrStdout()
			live := a.target.Computed()
			for _, e := range edits {
				name := theme.NormalizeName(e.name)
				_, _ = fmt.Fprintf(w, "  %s %s %s\n", swatch(live[name]), nameStyle.Render(theme.CSSName(name)), live[name])
			}

			if setSaveName == "" {
				_, _ = fmt.Fprintln(w, mutedStyle.Render("not saved; pass --save NAME to keep these edits"))
				return nil
			}
			saved, err := a.manager.SaveCurrentAsArtifact(cmd.Context(), setSaveName)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(w, "%s %s\n", okStyle.Render("saved"), saved.SelectionKey())
			return nil
		})
	},
}

type assignment struct {
	name  string
	value string
}

// parseAssignments splits name=value arguments. Names may carry "--".
func parseAssignments(args []string) ([]assignment, error) {
	out := make([]assignment, 0, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid assignment %q: expected name=value", arg)
		}
		out = append(out, assignment{name: strings.TrimSpace(name), value: value})
	}
	return out, nil
}

func init() {
	setCmd.Flags().StringVar(&setSaveName, "save", "", "Save the result as the custom theme with this name")
	rootCmd.AddCommand(setCmd)
}
