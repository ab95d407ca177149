package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tOgg1/themekit/internal/config"
	"github.com/tOgg1/themekit/internal/render"
	"github.com/tOgg1/themekit/internal/theme"
)

func newThemeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "theme",
		Aliases: []string{"themes"},
		Short:   "Inspect and select themes",
	}
	cmd.AddCommand(
		newThemeListCmd(a),
		newThemeCurrentCmd(a),
		newThemeShowCmd(a),
		newThemeSetCmd(a),
		newThemeOverrideCmd(a),
		newThemeSyntaxCmd(a),
	)
	return cmd
}

func newThemeListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List selectable themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.prefs()
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(theme.Kinds()))
			for _, kind := range theme.Kinds() {
				marker := ""
				if store.Theme() == kind {
					marker = "*"
				}
				dark := "auto"
				if kind.Buildable() {
					t, err := theme.Build(kind, nil)
					if err != nil {
						return err
					}
					dark = formatYesNo(t.IsDark)
				}
				rows = append(rows, []string{marker, string(kind), dark})
			}
			return writeTable(cmd.OutOrStdout(), []string{"", "THEME", "DARK"}, rows)
		},
	}
}

func newThemeCurrentCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Print the selected theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.prefs()
			if err != nil {
				return err
			}
			kind := store.Theme()
			if kind == theme.KindSystem {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", kind, store.ResolvedTheme())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), kind)
			return nil
		},
	}
}

func newThemeShowCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [theme]",
		Short: "Print every role of a theme",
		Long: `Print every role of a theme. Without an argument the selected theme is
shown with configured and saved overrides applied.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			entries, _ := cmd.Flags().GetStringArray("override")

			extra, err := config.ParseOverridePairs(entries)
			if err != nil {
				return err
			}
			t, err := a.buildTheme(args, extra)
			if err != nil {
				return err
			}
			return writeTheme(cmd, t, format)
		},
	}
	cmd.Flags().StringArray("override", nil, "role=color override applied on top (repeatable)")
	cmd.Flags().String("format", "table", "output format (table, json, yaml)")
	return cmd
}

func newThemeSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <theme>",
		Short: "Select a theme",
		Long: `Select a theme. Themes reachable from the command palette go through
their action so the change is recorded like any other.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := theme.ParseKind(args[0])
			if err != nil {
				return err
			}

			registry, err := a.actions(cmd.Context())
			if err != nil {
				return err
			}
			performed := false
			for _, action := range registry.All() {
				if action.Target == kind {
					if err := registry.Perform(cmd.Context(), action.ID); err != nil {
						return err
					}
					performed = true
					break
				}
			}
			if !performed {
				if err := registry.Store().SetTheme(kind); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", kind)
			return nil
		},
	}
}

func newThemeOverrideCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Manage saved color overrides",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <role> <color>",
		Short: "Save a color override",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.prefs()
			if err != nil {
				return err
			}
			role := canonicalRole(args[0])
			if err := store.SetOverride(role, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", role, args[1])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "unset <role>",
		Short: "Remove a saved color override",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.prefs()
			if err != nil {
				return err
			}
			role := canonicalRole(args[0])
			if err := store.DeleteOverride(role); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s removed\n", role)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved color overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.prefs()
			if err != nil {
				return err
			}
			overrides := store.Overrides()
			rows := make([][]string, 0, len(overrides))
			for _, role := range sortedKeys(overrides) {
				rows = append(rows, []string{role, overrides[role]})
			}
			return writeTable(cmd.OutOrStdout(), []string{"ROLE", "VALUE"}, rows)
		},
	})

	return cmd
}

func newThemeSyntaxCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "syntax [theme]",
		Short: "Preview code highlighting with a theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lang, _ := cmd.Flags().GetString("lang")
			file, _ := cmd.Flags().GetString("file")

			source, ok := syntaxSamples[lang]
			if file != "" {
				payload, err := os.ReadFile(file)
				if err != nil {
					return err
				}
				source = string(payload)
				if !cmd.Flags().Changed("lang") {
					lang = ""
				}
			} else if !ok {
				return fmt.Errorf("no sample for %q, use --file (samples: %s)", lang, strings.Join(sortedKeys(syntaxSamples), ", "))
			}

			t, err := a.buildTheme(args, nil)
			if err != nil {
				return err
			}
			return render.Highlight(cmd.OutOrStdout(), source, lang, t)
		},
	}
	cmd.Flags().String("lang", "go", "language of the sample or file")
	cmd.Flags().String("file", "", "highlight a file instead of the built-in sample")
	return cmd
}

// buildTheme builds the named kind, or the selected one when args is empty.
// Configured overrides apply first, then saved ones, then extra.
func (a *app) buildTheme(args []string, extra map[string]string) (theme.Theme, error) {
	store, err := a.prefs()
	if err != nil {
		return theme.Theme{}, err
	}

	kind := store.ResolvedTheme()
	if len(args) > 0 {
		kind, err = theme.ParseKind(args[0])
		if err != nil {
			return theme.Theme{}, err
		}
		kind = store.Resolve(kind)
	}

	overrides := a.cfg.BaseOverrides().Merge(store.Overrides())
	for k, v := range extra {
		overrides[canonicalRole(k)] = v
	}
	return theme.Build(kind, overrides)
}

func writeTheme(cmd *cobra.Command, t theme.Theme, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "table", "":
		_, err := fmt.Fprint(out, render.Swatches(t))
		return err
	case "json":
		payload, err := json.MarshalIndent(t.Roles(), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(payload))
		return err
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(t.Roles()); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
}

func canonicalRole(name string) string {
	if canonical, ok := theme.CanonicalRole(name); ok {
		return canonical
	}
	return strings.TrimSpace(name)
}

var syntaxSamples = map[string]string{
	"go": `package main

import "fmt"

// greet prints a greeting.
func greet(name string) {
	count := 3
	fmt.Printf("hello %s x%d\n", name, count)
}
`,
	"javascript": `// Toggle the theme class on the document.
const toggle = (dark) => {
  document.body.classList.toggle("dark", dark);
  return dark ? 1 : 0;
};
`,
	"python": `# Pick a theme for the hour.
def pick(hour: int) -> str:
    return "dark" if hour >= 19 else "light"
`,
}
