package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/focus-arcade/internal/config"
	"github.com/vovakirdan/focus-arcade/internal/core"
	"github.com/vovakirdan/focus-arcade/internal/host"
	"github.com/vovakirdan/focus-arcade/internal/registry"
	"github.com/vovakirdan/focus-arcade/internal/state"
	"github.com/vovakirdan/focus-arcade/internal/storage"
)

// Panel layout in rows.
const (
	headerRows = 2
	footerRows = 1
	cardRows   = 5
	cardMaxW   = 60
)

// ShellOptions configures a panel.
type ShellOptions struct {
	Settings  config.Settings
	Persister *state.Persister // best scores and sensitivity, nil keeps them in memory
	History   *storage.Store   // run history, may be nil
	Player    string           // player column of the run history
	Config    core.RuntimeConfig
	Hub       *host.Hub     // config pushes, may be nil
	StartGame config.GameID // open this game directly
	Logger    *log.Logger
	Embedded  bool // quitting closes the panel instead of the program
}

// PanelClosedMsg is sent by an embedded panel when the user closes it.
type PanelClosedMsg struct{}

type configPushMsg host.ConfigMsg

// ShellModel is the panel: a header with the play time controls, the game
// menu and the active game.
type ShellModel struct {
	opts   ShellOptions
	sess   *state.Session
	cfg    core.RuntimeConfig
	keys   KeyMap
	help   help.Model
	logger *log.Logger

	games  []registry.GameInfo
	cursor int

	game   registry.Game
	screen *core.Screen
	frame  core.InputFrame

	width, height int

	captured     bool
	lastX, lastY int
	hasLast      bool

	pushes <-chan host.ConfigMsg
	unsub  func()
	closed bool
}

// NewShellModel creates a panel. The session is hydrated from the persister.
func NewShellModel(opts ShellOptions) ShellModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	cfg := opts.Config
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = opts.Settings.TickRate
	}

	m := ShellModel{
		opts:   opts,
		sess:   state.NewSession(opts.Settings.DefaultDuration, opts.Settings, opts.Persister),
		cfg:    cfg,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		logger: logger,
		games:  registry.List(),
		screen: core.NewScreen(cfg.ScreenW, gameRows(cfg.ScreenH)),
		frame:  core.NewInputFrame(),
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
	}
	m.help.Width = cfg.ScreenW

	if opts.Hub != nil {
		m.pushes, m.unsub = opts.Hub.Subscribe()
	}
	if opts.StartGame != "" {
		m.enterGame(opts.StartGame)
	}
	return m
}

func gameRows(height int) int {
	return max(1, height-headerRows-footerRows)
}

// Init starts the tick loop and the config subscription.
func (m ShellModel) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.cfg.TickRate), waitForPush(m.pushes))
}

// waitForPush delivers the next config push. A closed hub ends the loop.
func waitForPush(ch <-chan host.ConfigMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return configPushMsg(msg)
	}
}

// Update handles messages and updates the model state.
func (m ShellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case TickMsg:
		return m.handleTick()

	case configPushMsg:
		d := m.sess.SetDuration(msg.Duration)
		m.logger.Debug("duration pushed", "duration", d)
		return m, waitForPush(m.pushes)
	}

	return m, nil
}

func (m *ShellModel) resize(w, h int) {
	m.width, m.height = w, h
	m.help.Width = w
	m.screen.Resize(w, gameRows(h))
	if m.game != nil {
		m.game.Resize(w, gameRows(h))
	}
}

// handleKey processes keyboard input.
func (m ShellModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.close()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	if d, ok := m.keys.DurationDelta(msg); ok {
		m.sess.AdjustDuration(d)
		return m, nil
	}

	if m.game == nil {
		return m.handleMenuKey(msg)
	}

	if key.Matches(msg, m.keys.Back) {
		// Esc first releases the pointer, like leaving pointer lock.
		if msg.String() == "esc" && m.captured {
			return m, m.release()
		}
		return m, m.leaveGame()
	}
	m.keys.MapKeyToFrame(msg, &m.frame)
	return m, nil
}

func (m ShellModel) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.games)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		if len(m.games) > 0 {
			m.enterGame(m.games[m.cursor].ID)
		}
	case key.Matches(msg, m.keys.Tiles):
		i := int(msg.String()[0] - '1')
		if i < len(m.games) {
			m.cursor = i
			m.enterGame(m.games[i].ID)
		}
	}
	return m, nil
}

// handleMouse routes clicks to the header, the menu or the game, and turns
// motion into relative deltas while the pointer is captured.
func (m ShellModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionMotion:
		if m.game != nil && m.captured {
			m.trackMotion(msg.X, msg.Y)
		}
		return m, nil
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
	default:
		return m, nil
	}

	if msg.Y < headerRows {
		return m, m.clickHeader(msg.X, msg.Y)
	}
	if m.game == nil {
		if i := (msg.Y - headerRows) / cardRows; i < len(m.games) {
			m.cursor = i
			m.enterGame(m.games[i].ID)
		}
		return m, nil
	}

	if m.captured {
		m.trackMotion(msg.X, msg.Y)
	}
	cw, ch := m.cfg.CellPx()
	m.frame.Press((float64(msg.X)+0.5)*cw, (float64(msg.Y-headerRows)+0.5)*ch)
	return m, nil
}

func (m *ShellModel) trackMotion(x, y int) {
	if m.hasLast {
		cw, ch := m.cfg.CellPx()
		m.frame.Move(float64(x-m.lastX)*cw, float64(y-m.lastY)*ch)
	}
	m.lastX, m.lastY, m.hasLast = x, y, true
}

func (m *ShellModel) clickHeader(x, y int) tea.Cmd {
	if y == 0 {
		_, buttons := headerLayout(m.width, m.sess.Duration())
		for _, b := range buttons {
			if x >= b.x && x < b.x+len(b.label) {
				m.sess.AdjustDuration(b.delta)
			}
		}
		return nil
	}
	if m.game != nil && x < lipgloss.Width(config.Back) {
		return m.leaveGame()
	}
	return nil
}

// handleTick advances the active game by one fixed step.
func (m ShellModel) handleTick() (tea.Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}
	next := tickCmd(m.cfg.TickRate)
	if m.game == nil {
		return m, next
	}

	res := m.game.Step(m.frame, m.cfg.TickInterval())
	m.frame.Clear()

	cmds := []tea.Cmd{next}
	for _, eff := range res.Effects {
		if cmd := m.applyEffect(eff); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

// applyEffect runs a game effect. The answer reaches the game with the next
// frame.
func (m *ShellModel) applyEffect(eff core.Effect) tea.Cmd {
	switch eff {
	case core.EffectRequestCapture:
		if !m.sess.Settings.Capture {
			m.frame.Capture = core.CaptureDenied
			return nil
		}
		m.captured = true
		m.hasLast = false
		m.frame.Capture = core.CaptureGranted
		return tea.EnableMouseAllMotion
	case core.EffectReleaseCapture:
		return m.release()
	}
	return nil
}

func (m *ShellModel) release() tea.Cmd {
	if !m.captured {
		return nil
	}
	m.captured = false
	m.hasLast = false
	m.frame.Capture = core.CaptureReleased
	return tea.EnableMouseCellMotion
}

// enterGame creates a fresh instance of the game.
func (m *ShellModel) enterGame(id config.GameID) {
	m.leaveGame()

	cfg := m.cfg
	cfg.ScreenW, cfg.ScreenH = m.width, gameRows(m.height)
	g, err := registry.Create(id, registry.Deps{
		Session: m.sess,
		Config:  cfg,
		Hooks:   m.hooks(),
	})
	if err != nil {
		m.logger.Warn("cannot create game", "game", id, "error", err)
		return
	}
	m.game = g
	m.sess.ShowGame(id)
	m.frame.Clear()
}

// leaveGame disposes the active game and shows the menu.
func (m *ShellModel) leaveGame() tea.Cmd {
	if m.game == nil {
		return nil
	}
	m.game.Dispose()
	m.game = nil
	m.sess.ShowMenu()
	m.frame.Clear()

	if !m.captured {
		return nil
	}
	m.captured = false
	m.hasLast = false
	return tea.EnableMouseCellMotion
}

// hooks persist best scores and sensitivity and append run history.
// Storage faults are logged and never reach the game.
func (m *ShellModel) hooks() registry.Hooks {
	sess, store, player, logger := m.sess, m.opts.History, m.opts.Player, m.logger
	return registry.Hooks{
		ScoresUpdated:   sess.SaveScores,
		SettingsUpdated: sess.SaveSensitivity,
		RunFinished: func(id config.GameID, score int) {
			if store == nil || score <= 0 {
				return
			}
			if _, err := store.SaveScore(player, string(id), score); err != nil {
				logger.Warn("could not save run", "game", id, "error", err)
			}
		},
	}
}

func (m ShellModel) close() (tea.Model, tea.Cmd) {
	cmd := m.leaveGame()
	m.Detach()
	m.closed = true

	if m.opts.Embedded {
		return m, tea.Batch(cmd, func() tea.Msg { return PanelClosedMsg{} })
	}
	return m, tea.Quit
}

// View renders the panel.
func (m ShellModel) View() string {
	if m.closed {
		return ""
	}

	var body string
	if m.game != nil {
		m.screen.Clear()
		m.game.Render(m.screen)
		body = RenderScreen(m.screen)
	} else {
		body = m.renderMenu()
	}

	rows := gameRows(m.height)
	body = lipgloss.NewStyle().Height(rows).MaxHeight(rows).Render(body)

	var footer string
	if m.game != nil {
		footer = m.help.View(gameHelp{m.keys})
	} else {
		footer = m.help.View(menuHelp{m.keys})
	}
	return m.renderHeader() + "\n" + body + "\n" + dimStyle.Render(footer)
}

type headerButton struct {
	label string
	x     int
	delta int
}

func durationLabel(delta int) string {
	return fmt.Sprintf("[%+d]", delta)
}

func badgeText(duration int) string {
	return " " + config.FocusBadge(duration) + " "
}

// headerLayout places the play time badge and buttons at the right edge of
// the first header row.
func headerLayout(width, duration int) (badgeX int, buttons []headerButton) {
	badge := badgeText(duration)
	n := 0
	for _, d := range config.DurationDeltas {
		n += len(durationLabel(d)) + 1
	}

	badgeX = max(len(config.AppTitle)+1, width-n-len(badge))
	x := badgeX + len(badge) + 1
	for _, d := range config.DurationDeltas {
		label := durationLabel(d)
		buttons = append(buttons, headerButton{label: label, x: x, delta: d})
		x += len(label) + 1
	}
	return badgeX, buttons
}

func (m ShellModel) renderHeader() string {
	duration := m.sess.Duration()
	badgeX, buttons := headerLayout(m.width, duration)

	var b strings.Builder
	b.WriteString(titleStyle.Render(config.AppTitle))
	b.WriteString(strings.Repeat(" ", badgeX-len(config.AppTitle)))
	b.WriteString(badgeStyle.Render(badgeText(duration)))
	for _, btn := range buttons {
		b.WriteString(" ")
		b.WriteString(buttonStyle.Render(btn.label))
	}
	b.WriteString("\n")

	if m.game != nil {
		b.WriteString(buttonStyle.Render(config.Back))
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(m.game.Title()))
	} else {
		b.WriteString(dimStyle.Render("Pick a game"))
	}
	return b.String()
}

// renderMenu draws one card per game. Every card is cardRows tall so clicks
// map back to a game by row.
func (m ShellModel) renderMenu() string {
	w := max(10, min(m.width, cardMaxW)-2)
	text := w - 2

	cards := make([]string, 0, len(m.games))
	for i, g := range m.games {
		style := cardStyle
		if i == m.cursor {
			style = cardActiveStyle
		}
		content := strings.Join([]string{
			titleStyle.Render(truncate(fmt.Sprintf("%d. %s", i+1, g.Title), text)),
			truncate(g.Description, text),
			dimStyle.Render(config.BestLabel(m.sess.Best.Get(g.ID))),
		}, "\n")
		cards = append(cards, style.Width(w).Render(content))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

// Session returns the panel's session.
func (m ShellModel) Session() *state.Session {
	return m.sess
}

// Game returns the active game, or nil on the menu.
func (m ShellModel) Game() registry.Game {
	return m.game
}

// Captured reports whether the pointer is captured.
func (m ShellModel) Captured() bool {
	return m.captured
}

// Closed reports whether the user closed the panel.
func (m ShellModel) Closed() bool {
	return m.closed
}

// Run starts a standalone panel.
func Run(opts ShellOptions) error {
	p := tea.NewProgram(
		NewShellModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if m, ok := final.(ShellModel); ok {
		m.Detach()
	}
	return err
}

// Detach drops the config subscription. Safe to call from any copy of the
// model and more than once.
func (m ShellModel) Detach() {
	if m.unsub != nil {
		m.unsub()
	}
}
