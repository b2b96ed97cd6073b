package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cubefall/internal/core"
)

// GameKeyMap holds the in-game bindings. It doubles as the help.KeyMap
// shown under the playfield.
type GameKeyMap struct {
	Left           key.Binding
	Right          key.Binding
	Forward        key.Binding
	Back           key.Binding
	SoftDrop       key.Binding
	HardDrop       key.Binding
	RotateView     key.Binding
	RotateVertical key.Binding
	RotateSide     key.Binding
	FieldLeft      key.Binding
	FieldRight     key.Binding
	Difficulty2    key.Binding
	Difficulty3    key.Binding
	Difficulty4    key.Binding
	Difficulty5    key.Binding
	SpawnTestPlane key.Binding
	SpawnTestCube  key.Binding
	SpawnI         key.Binding
	ToggleColor    key.Binding
	Pause          key.Binding
	Restart        key.Binding
	Menu           key.Binding
	Screenshot     key.Binding
	Quit           key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Forward, k.HardDrop, k.RotateView, k.RotateVertical, k.RotateSide, k.FieldLeft, k.Pause, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Forward, k.Back},
		{k.SoftDrop, k.HardDrop},
		{k.RotateView, k.RotateVertical, k.RotateSide},
		{k.FieldLeft, k.FieldRight, k.ToggleColor},
		{k.Difficulty2, k.SpawnTestPlane, k.SpawnTestCube, k.SpawnI},
		{k.Pause, k.Restart, k.Menu, k.Screenshot, k.Quit},
	}
}

// DefaultGameKeyMap returns the default bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/→", "move"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Forward: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/↓", "depth"),
		),
		Back: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "toward you"),
		),
		SoftDrop: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "soft drop"),
		),
		HardDrop: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "drop/lock"),
		),
		RotateView: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "spin"),
		),
		RotateVertical: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "tip"),
		),
		RotateSide: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "roll"),
		),
		FieldLeft: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a/d", "turn field"),
		),
		FieldRight: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "turn field right"),
		),
		Difficulty2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2-5", "cube size"),
		),
		Difficulty3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "cube size 3"),
		),
		Difficulty4: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "cube size 4"),
		),
		Difficulty5: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "cube size 5"),
		),
		SpawnTestPlane: key.NewBinding(
			key.WithKeys("f5"),
			key.WithHelp("f5", "test plane (sandbox)"),
		),
		SpawnTestCube: key.NewBinding(
			key.WithKeys("f6"),
			key.WithHelp("f6", "test cube (sandbox)"),
		),
		SpawnI: key.NewBinding(
			key.WithKeys("f7"),
			key.WithHelp("f7", "I piece (sandbox)"),
		),
		ToggleColor: key.NewBinding(
			key.WithKeys("f2", "v"),
			key.WithHelp("v", "colors"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Menu: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "menu"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("^s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	Keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{Keys: DefaultGameKeyMap()}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.Keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Forward):
		return core.ActionForward, false
	case key.Matches(msg, k.Back):
		return core.ActionBack, false
	case key.Matches(msg, k.SoftDrop):
		return core.ActionSoftDrop, false
	case key.Matches(msg, k.HardDrop):
		return core.ActionHardDrop, false
	case key.Matches(msg, k.RotateView):
		return core.ActionRotateView, false
	case key.Matches(msg, k.RotateVertical):
		return core.ActionRotateVertical, false
	case key.Matches(msg, k.RotateSide):
		return core.ActionRotateSide, false
	case key.Matches(msg, k.FieldLeft):
		return core.ActionFieldLeft, false
	case key.Matches(msg, k.FieldRight):
		return core.ActionFieldRight, false
	case key.Matches(msg, k.Difficulty2):
		return core.ActionDifficulty2, false
	case key.Matches(msg, k.Difficulty3):
		return core.ActionDifficulty3, false
	case key.Matches(msg, k.Difficulty4):
		return core.ActionDifficulty4, false
	case key.Matches(msg, k.Difficulty5):
		return core.ActionDifficulty5, false
	case key.Matches(msg, k.SpawnTestPlane):
		return core.ActionSpawnTestPlane, false
	case key.Matches(msg, k.SpawnTestCube):
		return core.ActionSpawnTestCube, false
	case key.Matches(msg, k.SpawnI):
		return core.ActionSpawnI, false
	case key.Matches(msg, k.ToggleColor):
		return core.ActionToggleColor, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	case key.Matches(msg, k.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, k.Menu):
		return core.ActionMenu, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionLeft
	MenuActionRight
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k":
		return MenuActionUp
	case "s", "down", "j":
		return MenuActionDown
	case "a", "left", "h":
		return MenuActionLeft
	case "d", "right", "l":
		return MenuActionRight
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}
	return MenuActionNone
}
