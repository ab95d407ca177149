package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tOgg1/themekit/internal/tui"
)

var errNoTTY = errors.New("the command palette requires an interactive terminal")

func newPaletteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "palette",
		Aliases: []string{"ui"},
		Short:   "Open the interactive command palette",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !hasTTY() {
				return errNoTTY
			}

			registry, err := a.actions(cmd.Context())
			if err != nil {
				return err
			}
			manager, err := a.appearance()
			if err != nil {
				return err
			}
			return tui.Run(cmd.Context(), tui.New(registry, manager, nil))
		},
	}
}

func hasTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
