package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-mazegen/internal/registry"
	"github.com/vovakirdan/tui-mazegen/internal/storage"
)

// Statistics board layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the scene list sidebar
	sidebarWidth       = 24  // Width of scene list sidebar
	maxRuns            = 100 // Max runs to load
)

// StatsKeyMap defines the key bindings for the statistics board.
type StatsKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextScene key.Binding
	PrevScene key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextScene, k.PrevScene, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextScene, k.PrevScene},
		{k.Back, k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextScene: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next scene"),
		),
		PrevScene: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev scene"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel is the Bubble Tea model for the run statistics screen.
type StatsModel struct {
	scenes      []registry.SceneInfo
	cursor      int
	store       *storage.Store
	runs        []storage.RunRecord
	summary     *storage.RunStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        StatsKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewStatsModel creates a new statistics board.
func NewStatsModel(store *storage.Store, width, height int) StatsModel {
	h := help.New()
	h.ShowAll = false

	m := StatsModel{
		scenes:      registry.List(),
		store:       store,
		keys:        DefaultStatsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()

	if len(m.scenes) > 0 {
		m.loadRuns(m.scenes[0].ID)
	}
	return m
}

// createTable creates the runs table sized to the window.
func (m *StatsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Gen", Width: 5},
		{Title: "N", Width: 5},
		{Title: "Backtracks", Width: 10},
		{Title: "Depth", Width: 6},
		{Title: "Frames", Width: 7},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)), // Leave room for header, summary and help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("66")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads recent runs and the summary for a scene.
func (m *StatsModel) loadRuns(sceneID string) {
	m.runs, m.summary, m.loadErr = nil, nil, nil
	if m.store != nil {
		if runs, err := m.store.RecentRuns(sceneID, maxRuns); err != nil {
			m.loadErr = err
		} else {
			m.runs = runs
		}
		if summary, err := m.store.GetRunStats(sceneID); err != nil {
			m.loadErr = err
		} else {
			m.summary = summary
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded runs.
func (m *StatsModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.Generation),
			fmt.Sprintf("%d", r.Dimension),
			fmt.Sprintf("%d", r.BacktrackSteps),
			fmt.Sprintf("%d", r.MaxStackDepth),
			fmt.Sprintf("%d", r.Ticks),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the statistics board.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the statistics board.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextScene):
			if len(m.scenes) > 0 {
				m.cursor = (m.cursor + 1) % len(m.scenes)
				m.loadRuns(m.scenes[m.cursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevScene):
			if len(m.scenes) > 0 {
				m.cursor = (m.cursor - 1 + len(m.scenes)) % len(m.scenes)
				m.loadRuns(m.scenes[m.cursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Up/down and paging go to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the statistics board.
func (m StatsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "RUNS"
	if len(m.scenes) > 0 {
		title = fmt.Sprintf("RUNS - %s", m.scenes[m.cursor].Title)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the board with a sidebar listing the scenes.
func (m StatsModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Scenes\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, s := range m.scenes {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := s.Title
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", m.renderMain())
}

// renderNarrowLayout renders the current scene name above the table.
func (m StatsModel) renderNarrowLayout() string {
	var b strings.Builder
	if len(m.scenes) > 0 {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.scenes[m.cursor].ID), m.width))
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderMain())
	return b.String()
}

// renderMain renders the summary line and the runs table.
func (m StatsModel) renderMain() string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true)

	switch {
	case m.store == nil:
		return boxStyle.Render(mutedStyle.Render("Run storage is unavailable."))
	case m.loadErr != nil:
		return boxStyle.Render(mutedStyle.Render("Could not load runs: " + m.loadErr.Error()))
	case len(m.runs) == 0:
		return boxStyle.Render(mutedStyle.Padding(2, 4).Render("No runs recorded yet.\nLet a maze finish to record one!"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderSummary(),
		boxStyle.Render(m.table.View()),
	)
}

// renderSummary renders the aggregate numbers for the selected scene.
func (m StatsModel) renderSummary() string {
	if m.summary == nil {
		return ""
	}
	return fmt.Sprintf("%d mazes  largest N %d  avg backtracks %.1f  avg depth %.1f  deepest %d",
		m.summary.Runs, m.summary.LargestDimension, m.summary.AvgBacktracks,
		m.summary.AvgStackDepth, m.summary.MaxStackDepth)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatsModel) IsQuitting() bool {
	return m.quitting
}

// RunStatsBoard runs the statistics board.
// Returns true if user wants to go back to menu, false if quitting.
func RunStatsBoard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewStatsModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(StatsModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
