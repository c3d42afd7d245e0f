// Package model contains the bubbletea models used by the CLI.
package model

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/kvlru/internal/cli/styles"
	"github.com/bnema/kvlru/internal/client"
	"github.com/bnema/kvlru/internal/server"
)

const refreshInterval = time.Second

// MonitorModel polls a running server and displays its snapshot and stats.
type MonitorModel struct {
	entries []server.SnapshotEntry
	stats   server.StatsSnapshot
	table   table.Model
	loading bool
	err     error
	width   int
	height  int

	client *client.Client
	theme  *styles.Theme
}

// NewMonitorModel creates a monitor over the given client.
func NewMonitorModel(theme *styles.Theme, c *client.Client) MonitorModel {
	return MonitorModel{
		client:  c,
		theme:   theme,
		loading: true,
		width:   80,
		height:  24,
	}
}

// snapshotLoadedMsg is sent after every poll.
type snapshotLoadedMsg struct {
	entries []server.SnapshotEntry
	stats   server.StatsSnapshot
	err     error
}

type tickMsg time.Time

// Init implements tea.Model.
func (m MonitorModel) Init() tea.Cmd {
	return m.loadSnapshot
}

// loadSnapshot fetches snapshot and stats from the server.
func (m MonitorModel) loadSnapshot() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	entries, err := m.client.Snapshot(ctx)
	if err != nil {
		return snapshotLoadedMsg{err: err}
	}
	stats, err := m.client.Stats(ctx)
	if err != nil {
		return snapshotLoadedMsg{err: err}
	}
	return snapshotLoadedMsg{entries: entries, stats: stats}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m MonitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateTable()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			return m, m.loadSnapshot
		default:
			var cmd tea.Cmd
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case snapshotLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.entries = msg.entries
			m.stats = msg.stats
			m.updateTable()
		}
		return m, tick()

	case tickMsg:
		return m, m.loadSnapshot
	}

	return m, nil
}

// updateTable rebuilds the snapshot table, oldest entry on top.
func (m *MonitorModel) updateTable() {
	columns := styles.SnapshotTableColumns()

	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			e.Key,
			e.Value,
		}
	}

	tableHeight := len(rows)
	if tableHeight > m.height-8 {
		tableHeight = m.height - 8
	}
	if tableHeight < 3 {
		tableHeight = 3
	}

	m.table = styles.NewStyledTable(m.theme, columns, rows, m.width-4, tableHeight)
}

// View implements tea.Model.
func (m MonitorModel) View() string {
	t := m.theme

	if m.loading {
		return t.Subtle.Render("loading...")
	}
	if m.err != nil {
		return t.ErrorStyle.Render(fmt.Sprintf("error: %v", m.err)) + "\n" +
			t.Subtle.Render("retrying every second, q to quit")
	}

	header := t.Title.Render("kvlru monitor")
	summary := t.Subtle.Render(fmt.Sprintf(
		"entries %d/%d · hits %d · misses %d · evictions %d",
		m.stats.Len, m.stats.Cap, m.stats.Hits, m.stats.Misses, m.stats.Evictions,
	))
	help := t.Subtle.Render("oldest entry on top (next eviction victim) · r refresh · q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		summary,
		"",
		m.table.View(),
		"",
		help,
	)
}
