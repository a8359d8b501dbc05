package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gnana997/showcase/pkg/tui"
)

func newBrowseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.newStore()
			if err != nil {
				return err
			}

			stop, err := a.startWatcher(st)
			if err != nil {
				return err
			}
			defer stop()

			p := tea.NewProgram(tui.NewModel(st),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			unsubscribe := tui.Subscribe(p, st)
			defer unsubscribe()

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("browser exited: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().Bool("watch", true, "reload the catalog file when it changes")
	bindFlags(a, cmd, map[string]string{"watch.enabled": "watch"})
	return cmd
}
