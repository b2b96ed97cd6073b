package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/cubefall/internal/core"
	"github.com/vovakirdan/cubefall/internal/storage"
)

// scriptedGame ends after a fixed number of steps and records what it saw.
type scriptedGame struct {
	steps    int
	endAfter int
	resets   int
	resized  [2]int
	paused   bool
	seen     []core.InputFrame
}

func (g *scriptedGame) ID() string          { return "scripted" }
func (g *scriptedGame) Title() string       { return "Scripted" }
func (g *scriptedGame) Description() string { return "test double" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.paused = false
	g.resets++
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.seen = append(g.seen, in.Clone())
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if !g.paused {
		g.steps++
	}
	return core.StepResult{State: g.State()}
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawTextColor(0, 0, "SCRIPTED", core.ColorCyan)
}

func (g *scriptedGame) State() core.GameState {
	return core.GameState{
		Score:    g.steps * 10,
		GameOver: g.steps >= g.endAfter,
		Paused:   g.paused,
		Pieces:   g.steps,
		Cleared:  g.steps * 2,
		Level:    3,
	}
}

func (g *scriptedGame) Resize(w, h int) { g.resized = [2]int{w, h} }

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func TestGameModelSavesResultOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	game := &scriptedGame{endAfter: 3}
	session := uuid.New()
	m := NewGameModel(game, store, testConfig(), WithSession(session))
	m.Init()

	for range 10 {
		m = update(t, m, TickMsg{})
	}
	if !m.State().GameOver {
		t.Fatal("expected the scripted game to be over")
	}

	scores, err := store.SessionScores(session)
	if err != nil {
		t.Fatalf("SessionScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d results, want exactly 1", len(scores))
	}
	got := scores[0]
	if got.GameID != "scripted" || got.Score != 30 || got.Pieces != 3 || got.Cleared != 6 || got.MinEdge != 3 {
		t.Errorf("unexpected saved result: %+v", got)
	}
	if got.Duration <= 0 {
		t.Errorf("Duration = %v, want the time played", got.Duration)
	}
}

func TestGameModelRestartAfterGameOver(t *testing.T) {
	game := &scriptedGame{endAfter: 1}
	m := NewGameModel(game, nil, testConfig())
	m.Init()

	m = update(t, m, TickMsg{})
	if !m.State().GameOver {
		t.Fatal("expected game over")
	}
	m = update(t, m, runeKey('r'))
	m = update(t, m, TickMsg{})
	if game.resets != 2 {
		t.Errorf("resets = %d, want 2", game.resets)
	}
	if m.State().GameOver {
		t.Error("expected a fresh game after restart")
	}
}

func TestGameModelEscPausesThenLeaves(t *testing.T) {
	game := &scriptedGame{endAfter: 1000}
	m := NewGameModel(game, nil, testConfig())
	m.Init()
	m = update(t, m, TickMsg{})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("esc while playing should pause, not leave")
	}
	m = update(t, m, TickMsg{})
	if !m.State().Paused {
		t.Fatal("expected the game to be paused")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(GameModel)
	if !m.BackToMenu() || cmd == nil {
		t.Error("esc while paused should go back to the menu")
	}
	if m.View() != "" {
		t.Error("view should be empty once leaving")
	}
}

func TestGameModelQuit(t *testing.T) {
	m := NewGameModel(&scriptedGame{endAfter: 10}, nil, testConfig())
	next, cmd := m.Update(runeKey('q'))
	if !next.(GameModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}

func TestGameModelResizeKeepsResizableGame(t *testing.T) {
	game := &scriptedGame{endAfter: 10}
	m := NewGameModel(game, nil, testConfig())
	m.Init()

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if game.resets != 1 {
		t.Errorf("resets = %d, resizable games should not restart", game.resets)
	}
	if game.resized != [2]int{100, 40 - helpRows} {
		t.Errorf("resized to %v", game.resized)
	}
}

func TestGameModelView(t *testing.T) {
	m := NewGameModel(&scriptedGame{endAfter: 10}, nil, testConfig())
	m.Init()

	view := m.View()
	if !strings.Contains(view, "SCRIPTED") {
		t.Error("view should contain the game screen")
	}
	if !strings.Contains(view, "move") {
		t.Error("view should contain the key help")
	}
}

func TestPainterPlainText(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawText(0, 0, "ab")
	s.DrawText(0, 1, "cd")

	if got := NewPainter(nil).Paint(s); got != "ab  \ncd  " {
		t.Errorf("Paint() = %q", got)
	}
}
