package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/kvlru/internal/cli/model"
	"github.com/bnema/kvlru/internal/cli/styles"
	"github.com/bnema/kvlru/internal/client"
)

// NewMonitorCmd creates the monitor command.
func NewMonitorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "monitor",
		Short: "Live view of a running server's contents and stats",
		Long: `Open an interactive view of a running server.

The table lists every cached entry from least to most recently used, so
the top row is the next eviction victim. Counters for hits, misses and
evictions refresh every second.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			theme := styles.DefaultTheme()
			c := client.New(serverURL)

			p := tea.NewProgram(
				model.NewMonitorModel(theme, c),
				tea.WithAltScreen(),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("monitor failed: %w", err)
			}
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(NewMonitorCmd())
}
