package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Up arrow - nudge crosshair up
	ActionDown           // Down arrow - nudge crosshair down
	ActionLeft           // Left arrow - nudge crosshair left
	ActionRight          // Right arrow - nudge crosshair right
	ActionFire           // Space - primary action (shot)
	ActionConfirm        // Enter - start / restart a run
	ActionFocus          // F - request pointer capture
	ActionUnlock         // U - release pointer capture
	ActionDPIDown        // d
	ActionDPIUp          // D
	ActionSensDown       // s - sens, or sensX with axis split
	ActionSensUp         // S
	ActionSensYDown      // y
	ActionSensYUp        // Y
	ActionToggleAxis     // x
	ActionCycleDifficulty
	ActionCycleProfile
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionConfirm:
		return "Confirm"
	case ActionFocus:
		return "Focus"
	case ActionUnlock:
		return "Unlock"
	case ActionDPIDown:
		return "DPIDown"
	case ActionDPIUp:
		return "DPIUp"
	case ActionSensDown:
		return "SensDown"
	case ActionSensUp:
		return "SensUp"
	case ActionSensYDown:
		return "SensYDown"
	case ActionSensYUp:
		return "SensYUp"
	case ActionToggleAxis:
		return "ToggleAxis"
	case ActionCycleDifficulty:
		return "CycleDifficulty"
	case ActionCycleProfile:
		return "CycleProfile"
	default:
		return "Unknown"
	}
}

// PointerKind distinguishes pointer events.
type PointerKind int

const (
	PointerMove  PointerKind = iota // relative motion while captured
	PointerPress                    // primary button press
)

// PointerEvent is a pointer sample in arena pixel space.
// Move events carry a relative Delta, press events an absolute Pos.
type PointerEvent struct {
	Kind  PointerKind
	Pos   Vec
	Delta Vec
}

// CaptureSignal is the platform's answer to a capture request, or an
// observed release.
type CaptureSignal int

const (
	CaptureNone CaptureSignal = iota
	CaptureGranted
	CaptureDenied
	CaptureReleased
)

// InputFrame represents everything the player did during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
	// Pointer holds pointer samples in arrival order.
	Pointer []PointerEvent
	// Taps holds tile indices chosen by key this frame.
	Taps []int
	// Capture is the capture state change observed this frame.
	Capture CaptureSignal
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Move appends a relative motion sample.
func (f *InputFrame) Move(dx, dy float64) {
	f.Pointer = append(f.Pointer, PointerEvent{Kind: PointerMove, Delta: Vec{X: dx, Y: dy}})
}

// Press appends a primary press at an absolute arena position.
func (f *InputFrame) Press(x, y float64) {
	f.Pointer = append(f.Pointer, PointerEvent{Kind: PointerPress, Pos: Vec{X: x, Y: y}})
}

// Tap appends a tile selection.
func (f *InputFrame) Tap(index int) {
	f.Taps = append(f.Taps, index)
}

// Empty reports whether the frame carries no input at all.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0 && len(f.Pointer) == 0 && len(f.Taps) == 0 && f.Capture == CaptureNone
}

// Clear resets all input for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = f.Pointer[:0]
	f.Taps = f.Taps[:0]
	f.Capture = CaptureNone
}
