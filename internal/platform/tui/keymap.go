package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/focus-arcade/internal/core"
)

// KeyMap defines the key bindings of the panel.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Fire   key.Binding
	Focus  key.Binding
	Unlock key.Binding

	DPIDown    key.Binding
	DPIUp      key.Binding
	SensDown   key.Binding
	SensUp     key.Binding
	SensYDown  key.Binding
	SensYUp    key.Binding
	AxisSplit  key.Binding
	Difficulty key.Binding
	Profile    key.Binding
	Tiles      key.Binding

	DurMinus10 key.Binding
	DurMinus5  key.Binding
	DurPlus5   key.Binding
	DurPlus10  key.Binding

	Back key.Binding
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "shoot"),
		),
		Focus: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "focus"),
		),
		Unlock: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "unlock"),
		),
		DPIDown: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d/D", "dpi"),
		),
		DPIUp: key.NewBinding(
			key.WithKeys("D"),
		),
		SensDown: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s/S", "sens"),
		),
		SensUp: key.NewBinding(
			key.WithKeys("S"),
		),
		SensYDown: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y/Y", "sens y"),
		),
		SensYUp: key.NewBinding(
			key.WithKeys("Y"),
		),
		AxisSplit: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "split axis"),
		),
		Difficulty: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "difficulty"),
		),
		Profile: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "profile"),
		),
		Tiles: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "tiles"),
		),
		DurMinus10: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[ - = ]", "play time"),
		),
		DurMinus5: key.NewBinding(
			key.WithKeys("-"),
		),
		DurPlus5: key.NewBinding(
			key.WithKeys("="),
		),
		DurPlus10: key.NewBinding(
			key.WithKeys("]"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// DurationDelta maps the header keys to play time adjustments in seconds.
func (k KeyMap) DurationDelta(msg tea.KeyMsg) (int, bool) {
	switch {
	case key.Matches(msg, k.DurMinus10):
		return -10, true
	case key.Matches(msg, k.DurMinus5):
		return -5, true
	case key.Matches(msg, k.DurPlus5):
		return 5, true
	case key.Matches(msg, k.DurPlus10):
		return 10, true
	}
	return 0, false
}

// MapKeyToFrame records the game action for msg in frame. It returns false
// when the key is not a game key.
func (k KeyMap) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	if key.Matches(msg, k.Tiles) {
		frame.Tap(int(msg.String()[0] - '1'))
		return true
	}

	bindings := []struct {
		b      key.Binding
		action core.Action
	}{
		{k.Up, core.ActionUp},
		{k.Down, core.ActionDown},
		{k.Left, core.ActionLeft},
		{k.Right, core.ActionRight},
		{k.Select, core.ActionConfirm},
		{k.Fire, core.ActionFire},
		{k.Focus, core.ActionFocus},
		{k.Unlock, core.ActionUnlock},
		{k.DPIDown, core.ActionDPIDown},
		{k.DPIUp, core.ActionDPIUp},
		{k.SensDown, core.ActionSensDown},
		{k.SensUp, core.ActionSensUp},
		{k.SensYDown, core.ActionSensYDown},
		{k.SensYUp, core.ActionSensYUp},
		{k.AxisSplit, core.ActionToggleAxis},
		{k.Difficulty, core.ActionCycleDifficulty},
		{k.Profile, core.ActionCycleProfile},
	}
	for _, bd := range bindings {
		if key.Matches(msg, bd.b) {
			frame.Set(bd.action)
			return true
		}
	}
	return false
}

// menuHelp and gameHelp adapt the key map to help.KeyMap for each screen.
type menuHelp struct{ k KeyMap }

func (h menuHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Up, h.k.Down, h.k.Select, h.k.DurMinus10, h.k.Quit}
}

func (h menuHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.k.Up, h.k.Down, h.k.Select},
		{h.k.DurMinus10, h.k.Help, h.k.Quit},
	}
}

type gameHelp struct{ k KeyMap }

func (h gameHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Select, h.k.Fire, h.k.Focus, h.k.Tiles, h.k.Back, h.k.Help}
}

func (h gameHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.k.Select, h.k.Fire, h.k.Focus, h.k.Unlock, h.k.Tiles},
		{h.k.DPIDown, h.k.SensDown, h.k.SensYDown, h.k.AxisSplit, h.k.Difficulty, h.k.Profile},
		{h.k.DurMinus10, h.k.Back, h.k.Quit},
	}
}
