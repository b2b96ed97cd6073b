package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cubefall/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
		quit bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"right vim", runeKey('l'), core.ActionRight, false},
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, core.ActionForward, false},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, core.ActionBack, false},
		{"soft drop", runeKey('s'), core.ActionSoftDrop, false},
		{"hard drop", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionHardDrop, false},
		{"spin", runeKey('z'), core.ActionRotateView, false},
		{"tip", runeKey('x'), core.ActionRotateVertical, false},
		{"roll", runeKey('c'), core.ActionRotateSide, false},
		{"field left", runeKey('a'), core.ActionFieldLeft, false},
		{"field right", runeKey('d'), core.ActionFieldRight, false},
		{"colors", runeKey('v'), core.ActionToggleColor, false},
		{"colors f2", tea.KeyMsg{Type: tea.KeyF2}, core.ActionToggleColor, false},
		{"cube size 2", runeKey('2'), core.ActionDifficulty2, false},
		{"cube size 4", runeKey('4'), core.ActionDifficulty4, false},
		{"cube size 5", runeKey('5'), core.ActionDifficulty5, false},
		{"test plane", tea.KeyMsg{Type: tea.KeyF5}, core.ActionSpawnTestPlane, false},
		{"test cube", tea.KeyMsg{Type: tea.KeyF6}, core.ActionSpawnTestCube, false},
		{"I piece", tea.KeyMsg{Type: tea.KeyF7}, core.ActionSpawnI, false},
		{"pause", runeKey('p'), core.ActionPause, false},
		{"restart", runeKey('r'), core.ActionRestart, false},
		{"menu", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionMenu, false},
		{"quit", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('y'), core.ActionNone, false},
		{"unbound digit", runeKey('6'), core.ActionNone, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, quit := km.MapKey(tc.msg)
			if got != tc.want || quit != tc.quit {
				t.Errorf("MapKey(%q) = (%v, %v), want (%v, %v)", tc.msg.String(), got, quit, tc.want, tc.quit)
			}
		})
	}
}

func TestMapKeyToFrameSkipsQuit(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey('z'), &frame) {
		t.Fatal("z is not a quit key")
	}
	if !frame.Has(core.ActionRotateView) {
		t.Error("expected RotateView in the frame")
	}
	if !km.MapKeyToFrame(runeKey('q'), &frame) {
		t.Error("q should report quit")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit should not reach the game")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyLeft}, MenuActionLeft},
		{runeKey('l'), MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey('q'), MenuActionQuit},
		{runeKey('y'), MenuActionNone},
	}
	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(tc.msg); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tc.msg.String(), got, tc.want)
		}
	}
}
