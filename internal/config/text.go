package config

import "fmt"

// Display strings.
const (
	AppTitle       = "Focus Playground"
	AimTitle       = "Aim Dots"
	AimInfo        = "Click the dots before they fade. Rack up as many hits as you can."
	AimStart       = "Start"
	AimRestart     = "Restart"
	AimOverlay     = "Click Here to Focus"
	AimUnlock      = "Unlock"
	AimLockOn      = "Lock ON"
	AimLockOff     = "Lock OFF"
	AimHint        = "Pointer capture active during play - press Esc to release."
	MemoryTitle    = "Sequence Memory"
	MemoryInfo     = "Repeat the sequence on the grid. It grows every round."
	MenuAimDesc    = "Quick precision bursts. Pointer capture optional but recommended."
	MenuMemoryDesc = "Repeat the pattern. Perfect for quick focus resets."
	MenuPlay       = "Play"
	Back           = "← Back"
	NudgePrompt    = "Brain break? Play a 30s micro-game."
	StatusBar      = "▶ Focus Playground"
)

// AimDoc is the short how-to shown under the aim arena.
var AimDoc = []string{
	"Set DPI and Sens (or enable split axis for X/Y): d/D dpi, s/S sens, y/Y sens Y, x split.",
	"If you are not locked, the center shows Click Here to Focus. Click it (or press f) to capture the pointer.",
	"Once locked, press Start (or Enter), later Restart, to play.",
	"eDPI = DPI x Sens. Higher eDPI = faster crosshair.",
	"Change play time from the header ([ - = ]). Unlock with the bottom-right area or Esc.",
}

// BestLabel formats the best-score badge.
func BestLabel(best int) string { return fmt.Sprintf("Best: %d", best) }

// RoundLabel formats the round badge.
func RoundLabel(round int) string { return fmt.Sprintf("Round: %d", round) }

// TimeLabel formats the remaining-time badge.
func TimeLabel(seconds int) string { return fmt.Sprintf("%ds", seconds) }

// ScoreLabel formats the live score badge.
func ScoreLabel(score int) string { return fmt.Sprintf("Score: %d", score) }

// FocusBadge formats the header duration badge.
func FocusBadge(duration int) string { return fmt.Sprintf("Play ~%ds", duration) }

// AimDone is the aim summary.
func AimDone(score, best int) string {
	return fmt.Sprintf("Done! Final score %d. Best %d.", score, best)
}

// MemoryOops is the sequence summary after a wrong tap.
func MemoryOops(round, best int) string {
	return fmt.Sprintf("Oops! You reached round %d. Best %d.", round, best)
}

// MemoryTimeUp is the sequence summary after the countdown ran out.
func MemoryTimeUp(round, best int) string {
	return fmt.Sprintf("Time! You reached round %d. Best %d.", round, best)
}
