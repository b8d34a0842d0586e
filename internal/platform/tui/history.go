package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/focus-arcade/internal/config"
	"github.com/vovakirdan/focus-arcade/internal/core"
	"github.com/vovakirdan/focus-arcade/internal/registry"
	"github.com/vovakirdan/focus-arcade/internal/storage"
)

const (
	historyLimit  = 100
	historyChrome = 8 // title, tabs, stats, card border, help
	dateLayout    = "Jan 02 15:04"
)

// HistoryKeyMap defines the key bindings of the run history browser.
type HistoryKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Up, k.Down, k.Reload, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Next, k.Prev}, {k.Up, k.Down}, {k.Reload, k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next view"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev view"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// HistoryOptions configures the run history browser.
type HistoryOptions struct {
	Store  *storage.Store
	Player string        // adds a tab with this player's latest runs
	Game   config.GameID // open on this game's tab
	Width  int
	Height int
}

type historyView int

const (
	viewSummary historyView = iota
	viewGame
	viewRecent
)

type historyTab struct {
	view  historyView
	game  registry.GameInfo
	label string
}

// HistoryModel browses the run history: a summary of every game, the best
// runs per game and the latest runs of one player.
type HistoryModel struct {
	opts   HistoryOptions
	tabs   []historyTab
	active int

	stats map[string]*storage.GameStats
	table table.Model
	rows  int
	err   error

	keys HistoryKeyMap
	help help.Model

	width, height int
	done          bool
}

// NewHistoryModel creates the browser and loads the first view.
func NewHistoryModel(opts HistoryOptions) HistoryModel {
	m := HistoryModel{
		opts:   opts,
		keys:   DefaultHistoryKeyMap(),
		help:   help.New(),
		width:  max(opts.Width, 40),
		height: max(opts.Height, 12),
	}
	m.help.Width = m.width

	m.tabs = append(m.tabs, historyTab{view: viewSummary, label: "Summary"})
	for _, g := range registry.List() {
		if g.ID == opts.Game {
			m.active = len(m.tabs)
		}
		m.tabs = append(m.tabs, historyTab{view: viewGame, game: g, label: g.Title})
	}
	if opts.Player != "" {
		m.tabs = append(m.tabs, historyTab{view: viewRecent, label: "Recent · " + opts.Player})
	}

	m.reload()
	return m
}

// reload refreshes the stats and the active view from the store.
func (m *HistoryModel) reload() {
	m.err = nil
	m.stats = nil
	if m.opts.Store != nil {
		m.stats, m.err = m.opts.Store.GetAllGamesStats()
	}
	m.load()
}

// load fills the table for the active tab.
func (m *HistoryModel) load() {
	tab := m.tabs[m.active]
	var (
		cols []table.Column
		rows []table.Row
	)

	switch tab.view {
	case viewSummary:
		cols = []table.Column{
			{Title: "Game", Width: 16},
			{Title: "Runs", Width: 5},
			{Title: "Best", Width: 5},
			{Title: "Avg", Width: 6},
			{Title: "Last", Width: 12},
		}
		for _, t := range m.tabs {
			if t.view != viewGame {
				continue
			}
			gs := m.stats[string(t.game.ID)]
			if gs == nil || gs.GamesCount == 0 {
				rows = append(rows, table.Row{t.game.Title, "0", "-", "-", "-"})
				continue
			}
			rows = append(rows, table.Row{
				t.game.Title,
				fmt.Sprint(gs.GamesCount),
				fmt.Sprint(gs.HighScore),
				fmt.Sprintf("%.1f", gs.AvgScore),
				gs.LastPlayed.Format(dateLayout),
			})
		}
		if m.opts.Store == nil {
			rows = nil
		}

	case viewGame:
		cols = []table.Column{
			{Title: "#", Width: 4},
			{Title: "Player", Width: m.flexWidth(26)},
			{Title: "Score", Width: 6},
			{Title: "Date", Width: 12},
		}
		entries := m.query(func(s *storage.Store) ([]storage.ScoreEntry, error) {
			return s.TopScores(string(tab.game.ID), historyLimit)
		})
		for i, e := range entries {
			player := e.Player
			if player == "" {
				player = "-"
			}
			rows = append(rows, table.Row{fmt.Sprintf("%d", i+1), player, fmt.Sprint(e.Score), e.CreatedAt.Format(dateLayout)})
		}

	case viewRecent:
		cols = []table.Column{
			{Title: "Game", Width: m.flexWidth(22)},
			{Title: "Score", Width: 6},
			{Title: "Date", Width: 12},
		}
		entries := m.query(func(s *storage.Store) ([]storage.ScoreEntry, error) {
			return s.RecentScores(m.opts.Player, historyLimit)
		})
		for _, e := range entries {
			title := e.GameID
			if info, ok := registry.Info(config.GameID(e.GameID)); ok {
				title = info.Title
			}
			rows = append(rows, table.Row{title, fmt.Sprint(e.Score), e.CreatedAt.Format(dateLayout)})
		}
	}

	m.rows = len(rows)
	m.table = newHistoryTable(cols, rows, m.height-historyChrome)
}

func (m *HistoryModel) query(fn func(*storage.Store) ([]storage.ScoreEntry, error)) []storage.ScoreEntry {
	if m.opts.Store == nil {
		return nil
	}
	entries, err := fn(m.opts.Store)
	if err != nil {
		m.err = err
		return nil
	}
	return entries
}

// flexWidth gives a text column the width left over by the fixed columns,
// which take fixed cells including cell padding.
func (m HistoryModel) flexWidth(fixed int) int {
	return core.Clamp(m.width-4-fixed-2, 8, 24)
}

func newHistoryTable(cols []table.Column, rows []table.Row, height int) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(height, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// Init implements tea.Model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles navigation between views and table scrolling.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.active = (m.active + 1) % len(m.tabs)
			m.load()
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.active = (m.active + len(m.tabs) - 1) % len(m.tabs)
			m.load()
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.load()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the tab bar, the stats line and the active table.
func (m HistoryModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(config.AppTitle + " · Run History"))
	b.WriteString("\n")

	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		label := " " + t.label + " "
		if i == m.active {
			tabs[i] = badgeStyle.Render(label)
		} else {
			tabs[i] = dimStyle.Render(label)
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.statsLine()))
	b.WriteString("\n")

	var body string
	switch {
	case m.opts.Store == nil:
		body = dimStyle.Render("No database, run history is unavailable.")
	case m.err != nil:
		body = dimStyle.Render("Could not read run history.")
	case m.rows == 0:
		body = dimStyle.Render("No runs recorded yet.\nFinish a run to see it here!")
	default:
		body = m.table.View()
	}
	b.WriteString(cardStyle.Render(body))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// statsLine summarizes the active game's history.
func (m HistoryModel) statsLine() string {
	tab := m.tabs[m.active]
	if tab.view != viewGame {
		return ""
	}
	gs := m.stats[string(tab.game.ID)]
	if gs == nil || gs.GamesCount == 0 {
		return ""
	}
	return fmt.Sprintf("Runs: %d  Best: %d  Avg: %.1f  Last: %s",
		gs.GamesCount, gs.HighScore, gs.AvgScore, gs.LastPlayed.Format(dateLayout))
}

// ActiveTab returns the label of the shown view.
func (m HistoryModel) ActiveTab() string {
	return m.tabs[m.active].label
}

// RunHistory runs the run history browser.
func RunHistory(opts HistoryOptions) error {
	_, err := tea.NewProgram(NewHistoryModel(opts), tea.WithAltScreen()).Run()
	return err
}
