package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tOgg1/themekit/internal/actions"
	"github.com/tOgg1/themekit/internal/db"
)

func newActionsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "actions",
		Aliases: []string{"action"},
		Short:   "List, search and run theme actions",
	}
	cmd.AddCommand(
		newActionsListCmd(a),
		newActionsSearchCmd(a),
		newActionsRunCmd(a),
		newActionsHistoryCmd(a),
	)
	return cmd
}

func newActionsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every registered action",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := a.actions(cmd.Context())
			if err != nil {
				return err
			}

			ctx := displayContext(registry)
			var rows [][]string
			var add func(action *actions.Action, depth int)
			add = func(action *actions.Action, depth int) {
				rows = append(rows, actionRow(action, ctx, registry.Store(), depth))
				for _, child := range action.Children {
					add(child, depth+1)
				}
			}
			for _, root := range registry.Roots() {
				add(root, 0)
			}
			return writeTable(cmd.OutOrStdout(), []string{"", "ID", "NAME", "SECTION"}, rows)
		},
	}
}

func newActionsSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy search actions by name and keywords",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := a.actions(cmd.Context())
			if err != nil {
				return err
			}

			ctx := displayContext(registry)
			matches := registry.Search(strings.Join(args, " "), ctx)
			if len(matches) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matching actions")
				return nil
			}
			rows := make([][]string, 0, len(matches))
			for _, action := range matches {
				rows = append(rows, actionRow(action, ctx, registry.Store(), 0))
			}
			return writeTable(cmd.OutOrStdout(), []string{"", "ID", "NAME", "SECTION"}, rows)
		},
	}
}

func newActionsRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run <id>",
		Short: "Perform an action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := a.actions(cmd.Context())
			if err != nil {
				return err
			}
			if err := registry.Perform(cmd.Context(), args[0]); err != nil {
				return err
			}

			action, err := registry.Lookup(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: theme set to %s\n", action.ID, action.Target)
			return nil
		},
	}
}

func newActionsHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently performed actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			actionID, _ := cmd.Flags().GetString("action")
			jsonOutput, _ := cmd.Flags().GetBool("json")

			history, err := a.actionHistory(cmd.Context())
			if err != nil {
				return err
			}
			events, err := history.Query(cmd.Context(), db.ActionEventQuery{ActionID: actionID, Limit: limit})
			if err != nil {
				return err
			}

			if jsonOutput {
				if events == nil {
					events = []*db.ActionEvent{}
				}
				payload, err := json.MarshalIndent(events, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(payload))
				return nil
			}

			rows := make([][]string, 0, len(events))
			for _, event := range events {
				rows = append(rows, []string{
					event.Timestamp.Local().Format("2006-01-02 15:04:05"),
					event.ActionID,
					event.Theme,
					event.Status,
					event.Error,
				})
			}
			return writeTable(cmd.OutOrStdout(), []string{"TIME", "ACTION", "THEME", "STATUS", "ERROR"}, rows)
		},
	}
	cmd.Flags().Int("limit", 20, "maximum number of entries")
	cmd.Flags().String("action", "", "only show this action ID")
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

func displayContext(registry *actions.Registry) actions.Context {
	return actions.Context{
		Translator:    actions.IdentityTranslator{},
		ResolvedTheme: registry.Store().ResolvedTheme(),
	}
}

func actionRow(action *actions.Action, ctx actions.Context, store actions.ThemeStore, depth int) []string {
	marker := ""
	if action.Selected(store) {
		marker = "*"
	}
	name := action.ResolveIcon(ctx).Glyph() + " " + action.DisplayName(ctx)
	return []string{
		marker,
		strings.Repeat("  ", depth) + action.ID,
		name,
		string(action.Section),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
