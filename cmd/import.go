package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindtris/uitheme/internal/theme"
)

var importSaveName string

var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Import a theme from CSS or artifact JSON",
	Long: `Import a theme. JSON artifacts become the saved custom theme. CSS with a
:root block (and optionally a .dark block) is applied for this invocation;
pass --save to keep it as the custom theme.

Examples:
  uitheme import ocean.json
  uitheme import theme.css --save "Brand"
  pbpaste | uitheme import -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app) error {
			if res := a.manager.Import(cmd.Context(), text); !res.IsValid {
				return res.Err()
			}
			w := cmd.OutOrStdout()
			st := a.manager.State()
			_, _ = fmt.Fprintf(w, "%s %s (%s)\n", okStyle.Render("imported"), st.Selection, st.Mode)

			if importSaveName == "" {
				if st.Custom == nil {
					_, _ = fmt.Fprintln(w, mutedStyle.Render("CSS import not saved; pass --save NAME to keep it"))
				}
				return nil
			}
			saved, err := a.manager.SaveCurrentAsArtifact(cmd.Context(), importSaveName)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(w, "%s %s\n", okStyle.Render("saved"), saved.SelectionKey())
			return nil
		})
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <file|->",
	Short: "Validate a theme file without applying it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		imp, err := parseFile(args[0], cmd.InOrStdin())
		if err != nil {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), errorStyle.Render("invalid"))
			return err
		}
		w := cmd.OutOrStdout()
		switch imp.Kind {
		case theme.ImportArtifact:
			_, _ = fmt.Fprintf(w, "%s artifact %q (base %s, %d light, %d dark overrides)\n",
				okStyle.Render("valid"), imp.Artifact.Name, imp.Artifact.Base.Type,
				len(imp.Artifact.Overrides.Light), len(imp.Artifact.Overrides.Dark))
		default:
			_, _ = fmt.Fprintf(w, "%s css (%d light, %d dark variables)\n",
				okStyle.Render("valid"), len(imp.Styles.Light), len(imp.Styles.Dark))
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importSaveName, "save", "", "Save the import as the custom theme with this name")
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(validateCmd)
}
