package core

// Action is a semantic input, decoupled from physical keys.
type Action int

const (
	ActionNone Action = iota

	// Piece movement, relative to the way the field is currently viewed.
	ActionLeft
	ActionRight
	ActionForward
	ActionBack
	ActionSoftDrop
	ActionHardDrop

	// Piece rotation.
	ActionRotateView
	ActionRotateVertical
	ActionRotateSide

	// Field view rotation.
	ActionFieldLeft
	ActionFieldRight

	// Minimum cuboid edge for clears.
	ActionDifficulty2
	ActionDifficulty3
	ActionDifficulty4
	ActionDifficulty5

	// Sandbox spawns.
	ActionSpawnTestPlane
	ActionSpawnTestCube
	ActionSpawnI

	ActionToggleColor
	ActionPause
	ActionRestart
	ActionConfirm
	ActionMenu
	ActionQuit
)

var actionNames = map[Action]string{
	ActionNone:           "None",
	ActionLeft:           "Left",
	ActionRight:          "Right",
	ActionForward:        "Forward",
	ActionBack:           "Back",
	ActionSoftDrop:       "SoftDrop",
	ActionHardDrop:       "HardDrop",
	ActionRotateView:     "RotateView",
	ActionRotateVertical: "RotateVertical",
	ActionRotateSide:     "RotateSide",
	ActionFieldLeft:      "FieldLeft",
	ActionFieldRight:     "FieldRight",
	ActionDifficulty2:    "Difficulty2",
	ActionDifficulty3:    "Difficulty3",
	ActionDifficulty4:    "Difficulty4",
	ActionDifficulty5:    "Difficulty5",
	ActionSpawnTestPlane: "SpawnTestPlane",
	ActionSpawnTestCube:  "SpawnTestCube",
	ActionSpawnI:         "SpawnI",
	ActionToggleColor:    "ToggleColor",
	ActionPause:          "Pause",
	ActionRestart:        "Restart",
	ActionConfirm:        "Confirm",
	ActionMenu:           "Menu",
	ActionQuit:           "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// InputFrame collects the actions triggered during one simulation tick.
type InputFrame struct {
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	c := NewInputFrame()
	for k, v := range f.Actions {
		c.Actions[k] = v
	}
	return c
}
