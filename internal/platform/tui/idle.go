package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/focus-arcade/internal/config"
	"github.com/vovakirdan/focus-arcade/internal/host"
)

// IdleKeyMap defines the key bindings of the status bar launcher.
type IdleKeyMap struct {
	Open   key.Binding
	Toggle key.Binding
	Left   key.Binding
	Right  key.Binding
	Choose key.Binding
	Cancel key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k IdleKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.Toggle, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k IdleKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Open, k.Toggle}, {k.Left, k.Right, k.Choose, k.Cancel}, {k.Quit}}
}

// DefaultIdleKeyMap returns default key bindings.
func DefaultIdleKeyMap() IdleKeyMap {
	return IdleKeyMap{
		Open: key.NewBinding(
			key.WithKeys("enter", "o"),
			key.WithHelp("enter", "open playground"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle idle nudge"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "prev"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→", "next"),
		),
		Choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "choose"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// IdleModel is a status bar launcher. It nudges the user after a period of
// inactivity and hosts the panel when opened.
type IdleModel struct {
	bridge *host.Bridge
	opts   ShellOptions
	keys   IdleKeyMap
	help   help.Model
	now    func() time.Time

	panel  *ShellModel
	prompt bool
	choice int
	status string

	width, height int
	quitting      bool
}

// NewIdleModel creates a launcher bound to the active bridge.
func NewIdleModel(bridge *host.Bridge, opts ShellOptions) IdleModel {
	return IdleModel{
		bridge: bridge,
		opts:   opts,
		keys:   DefaultIdleKeyMap(),
		help:   help.New(),
		now:    time.Now,
		width:  opts.Config.ScreenW,
		height: opts.Config.ScreenH,
	}
}

// Init starts the nudge check.
func (m IdleModel) Init() tea.Cmd {
	return idleTickCmd()
}

// Update handles messages for the launcher and forwards the rest to an open
// panel.
func (m IdleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case idleTickMsg:
		if m.panel == nil && m.bridge.Due(m.now()) {
			m.prompt = true
			m.choice = 0
		}
		return m, idleTickCmd()

	case PanelClosedMsg:
		m.panel = nil
		m.bridge.ClosePanel()
		m.bridge.Touch(m.now())
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
	}

	if m.panel != nil {
		updated, cmd := m.panel.Update(msg)
		if p, ok := updated.(ShellModel); ok {
			m.panel = &p
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.bridge.Touch(m.now())
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.bridge.Touch(m.now())
		if msg.Action == tea.MouseActionPress && !m.prompt {
			return m, m.openPanel()
		}
	}
	return m, nil
}

func (m IdleModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.prompt {
		n := len(host.Choices)
		switch {
		case key.Matches(msg, m.keys.Left):
			m.choice = (m.choice + n - 1) % n
		case key.Matches(msg, m.keys.Right):
			m.choice = (m.choice + 1) % n
		case key.Matches(msg, m.keys.Choose):
			return m, m.choose(host.Choices[m.choice])
		case key.Matches(msg, m.keys.Cancel):
			m.prompt = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Open):
		return m, m.openPanel()
	case key.Matches(msg, m.keys.Toggle):
		on, err := m.bridge.ToggleIdle()
		m.status = toggleStatus(on, err)
	}
	return m, nil
}

func toggleStatus(on bool, err error) string {
	if err != nil {
		return "Could not save settings."
	}
	if on {
		return "Auto-show on idle enabled."
	}
	return "Auto-show on idle disabled."
}

func (m *IdleModel) choose(c host.Choice) tea.Cmd {
	m.prompt = false
	open, err := m.bridge.Choose(c, m.now())
	switch {
	case err != nil:
		m.status = "Could not save settings."
	case c == host.ChoiceSnooze:
		m.status = fmt.Sprintf("Snoozed for %dm.", m.bridge.Settings().SnoozeMinutes)
	case c == host.ChoiceDisable:
		m.status = "Auto-show on idle disabled."
	}
	if open {
		return m.openPanel()
	}
	return nil
}

// openPanel creates the embedded panel, or pushes config to the existing one.
func (m *IdleModel) openPanel() tea.Cmd {
	m.prompt = false
	m.status = ""
	if m.bridge.OpenPanel() {
		return nil
	}

	opts := m.opts
	opts.Settings = m.bridge.Settings()
	opts.Hub = m.bridge.Hub()
	opts.Embedded = true
	if m.width > 0 && m.height > 0 {
		opts.Config.ScreenW, opts.Config.ScreenH = m.width, m.height
	}
	p := NewShellModel(opts)
	m.panel = &p
	return p.Init()
}

// PanelOpen reports whether the panel is shown.
func (m IdleModel) PanelOpen() bool {
	return m.panel != nil
}

// Prompting reports whether the nudge is shown.
func (m IdleModel) Prompting() bool {
	return m.prompt
}

// View renders the status bar, or the panel when open.
func (m IdleModel) View() string {
	if m.quitting {
		return ""
	}
	if m.panel != nil {
		return m.panel.View()
	}

	settings := m.bridge.Settings()
	nudge := "off"
	if settings.AutoShowOnIdle {
		nudge = fmt.Sprintf("after %ds", settings.IdleSeconds)
	}

	var b strings.Builder
	b.WriteString(badgeStyle.Render(" " + config.StatusBar + " "))
	b.WriteString("  ")
	b.WriteString(dimStyle.Render("idle nudge: " + nudge))
	b.WriteString("\n\n")

	if m.prompt {
		b.WriteString(titleStyle.Render(config.NudgePrompt))
		b.WriteString("\n")
		buttons := make([]string, len(host.Choices))
		for i, c := range host.Choices {
			label := "[" + c.Label(settings) + "]"
			if i == m.choice {
				buttons[i] = badgeStyle.Render(label)
			} else {
				buttons[i] = buttonStyle.Render(label)
			}
		}
		b.WriteString(strings.Join(buttons, " "))
		b.WriteString("\n\n")
	}
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n\n")
	}

	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// RunIdle starts the status bar launcher.
func RunIdle(bridge *host.Bridge, opts ShellOptions) error {
	p := tea.NewProgram(
		NewIdleModel(bridge, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
