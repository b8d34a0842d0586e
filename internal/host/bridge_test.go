package host

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/focus-arcade/internal/config"
)

type saveLog struct {
	saved []config.Settings
	err   error
}

func (s *saveLog) save(cfg config.Settings) error {
	s.saved = append(s.saved, cfg)
	return s.err
}

func newTestBridge(t *testing.T) (*Bridge, *saveLog, time.Time) {
	t.Helper()
	sl := &saveLog{}
	b := Activate(config.DefaultSettings(), sl.save)
	t.Cleanup(Deactivate)

	now := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	b.Touch(now)
	return b, sl, now
}

func TestActivateLifecycle(t *testing.T) {
	b := Activate(config.DefaultSettings(), nil)
	if Current() != b {
		t.Fatal("Current() should return the activated bridge")
	}
	ch, _ := b.Hub().Subscribe()

	Deactivate()
	if Current() != nil {
		t.Error("Current() should be nil after Deactivate")
	}
	if _, ok := <-ch; ok {
		t.Error("panel subscriptions should close on Deactivate")
	}
	Deactivate()
}

func TestDue(t *testing.T) {
	b, _, now := newTestBridge(t)
	idle := b.Settings().IdleAfter()

	if b.Due(now.Add(idle - time.Second)) {
		t.Error("nudge before the idle period")
	}
	if !b.Due(now.Add(idle)) {
		t.Fatal("nudge expected after the idle period")
	}
	if b.Due(now.Add(2 * idle)) {
		t.Error("nudge should fire once per idle stretch")
	}

	b.Touch(now.Add(2 * idle))
	if !b.Due(now.Add(3 * idle)) {
		t.Error("activity should re-arm the nudge")
	}
}

func TestDueSkipsOpenPanel(t *testing.T) {
	b, _, now := newTestBridge(t)
	b.OpenPanel()
	if b.Due(now.Add(time.Hour)) {
		t.Error("no nudge while the panel is open")
	}
	b.ClosePanel()
	if !b.Due(now.Add(time.Hour)) {
		t.Error("nudge expected once the panel is closed")
	}
}

func TestChooseSnooze(t *testing.T) {
	b, _, now := newTestBridge(t)
	idle := b.Settings().IdleAfter()

	at := now.Add(idle)
	if !b.Due(at) {
		t.Fatal("nudge expected")
	}
	open, err := b.Choose(ChoiceSnooze, at)
	if open || err != nil {
		t.Fatalf("Choose(Snooze) = %v, %v", open, err)
	}
	if want := at.Add(10 * time.Minute); !b.SnoozedUntil().Equal(want) {
		t.Errorf("SnoozedUntil() = %v, expected %v", b.SnoozedUntil(), want)
	}

	b.Touch(at)
	if b.Due(at.Add(5 * time.Minute)) {
		t.Error("no nudge while snoozed")
	}
	if !b.Due(at.Add(10 * time.Minute)) {
		t.Error("nudge expected after the snooze")
	}
}

func TestChoosePlayAndDisable(t *testing.T) {
	b, sl, now := newTestBridge(t)

	open, err := b.Choose(ChoicePlay, now)
	if !open || err != nil {
		t.Errorf("Choose(Play) = %v, %v", open, err)
	}
	if len(sl.saved) != 0 {
		t.Error("Play should not persist anything")
	}

	open, err = b.Choose(ChoiceDisable, now)
	if open || err != nil {
		t.Fatalf("Choose(Disable) = %v, %v", open, err)
	}
	if b.Settings().AutoShowOnIdle {
		t.Error("Disable should turn auto-show off")
	}
	if len(sl.saved) != 1 || sl.saved[0].AutoShowOnIdle {
		t.Errorf("saved = %+v, expected one save with auto-show off", sl.saved)
	}
	if b.Due(now.Add(time.Hour)) {
		t.Error("no nudge when auto-show is off")
	}
}

func TestToggleIdle(t *testing.T) {
	b, sl, _ := newTestBridge(t)

	on, err := b.ToggleIdle()
	if on || err != nil {
		t.Fatalf("ToggleIdle() = %v, %v, expected false", on, err)
	}
	on, _ = b.ToggleIdle()
	if !on || !b.Settings().AutoShowOnIdle {
		t.Error("second toggle should enable auto-show")
	}
	if len(sl.saved) != 2 {
		t.Errorf("saved %d times, expected 2", len(sl.saved))
	}

	sl.err = errors.New("disk full")
	if _, err := b.ToggleIdle(); err == nil {
		t.Error("save failure should be returned")
	}
}

func TestOpenPanelPushesConfig(t *testing.T) {
	b, _, _ := newTestBridge(t)
	ch, unsub := b.Hub().Subscribe()
	defer unsub()

	if b.OpenPanel() {
		t.Fatal("first open should create the panel")
	}
	select {
	case msg := <-ch:
		t.Fatalf("unexpected push %v on create", msg)
	default:
	}

	if !b.OpenPanel() {
		t.Fatal("second open should reveal the existing panel")
	}
	if msg := <-ch; msg.Duration != config.DefaultDuration {
		t.Errorf("pushed duration %d, expected %d", msg.Duration, config.DefaultDuration)
	}
}

func TestReload(t *testing.T) {
	b, _, _ := newTestBridge(t)
	ch, unsub := b.Hub().Subscribe()
	defer unsub()

	cfg := config.DefaultSettings()
	cfg.DefaultDuration = 90
	b.Reload(cfg)

	if msg := <-ch; msg.Duration != 90 {
		t.Errorf("pushed duration %d, expected 90", msg.Duration)
	}
	if b.Settings().DefaultDuration != 90 {
		t.Error("settings not replaced")
	}
}

func TestChoiceLabels(t *testing.T) {
	s := config.DefaultSettings()
	tests := []struct {
		c    Choice
		want string
	}{
		{ChoicePlay, "Play"},
		{ChoiceSnooze, "Snooze 10m"},
		{ChoiceDisable, "Disable"},
	}
	for _, tc := range tests {
		if got := tc.c.Label(s); got != tc.want {
			t.Errorf("Label() = %q, expected %q", got, tc.want)
		}
	}
}
