// Package cubefall adapts the falling-block engine to the arcade platform:
// it maps actions to engine commands, turns fixed ticks into game time and
// draws the well as character projections.
package cubefall

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cubefall/internal/config"
	"github.com/vovakirdan/cubefall/internal/core"
	"github.com/vovakirdan/cubefall/internal/games/cubefall/engine"
	"github.com/vovakirdan/cubefall/internal/registry"
)

// Mode selects the spawn bag.
type Mode int

const (
	ModeStandard Mode = iota // The seven standard kinds
	ModeSandbox              // Standard kinds plus the oversized test shapes
)

// clearFlashTicks is how long the "+N" banner stays up after a clear.
const clearFlashTicks = 90

// Package-level settings written by the CLI before a game is created.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	minEdgeOverride  int
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset selects easy, normal, hard or fixed. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// DifficultyPreset returns the preset in force, empty when none was chosen.
func DifficultyPreset() config.DifficultyPreset {
	return difficultyPreset
}

// SetMinEdge overrides the configured minimum cuboid edge; 0 keeps the config value.
func SetMinEdge(n int) {
	minEdgeOverride = n
}

// SetLogger routes game and engine diagnostics to l.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

func init() {
	registry.Register("cubefall", func() registry.Game {
		return New()
	})
	registry.Register("cubefall_sandbox", func() registry.Game {
		return NewSandbox()
	})
}

var (
	_ registry.Game    = (*Game)(nil)
	_ registry.Resizer = (*Game)(nil)
	_ registry.Tunable = (*Game)(nil)
)

// Game is the registry.Game implementation around an engine.Engine.
type Game struct {
	mode   Mode
	preset config.DifficultyPreset // Overrides the package preset when set

	eng        *engine.Engine
	cfg        config.CubefallConfig
	difficulty *config.DifficultyManager
	colors     map[engine.Kind]core.Color
	seeds      *rand.Rand

	runtime  core.RuntimeConfig
	dt       time.Duration
	tick     uint64
	tooSmall bool

	lastClear  engine.ClearResult
	lastPoints int
	flashTicks int
}

// New creates a standard game.
func New() *Game {
	return &Game{mode: ModeStandard}
}

// NewSandbox creates a game whose bag includes the test shapes.
func NewSandbox() *Game {
	return &Game{mode: ModeSandbox}
}

// SetPreset selects a difficulty preset for this game only, taking effect
// on the next Reset. An empty name falls back to the package preset.
func (g *Game) SetPreset(name string) error {
	if name == "" {
		g.preset = ""
		return nil
	}
	p, err := config.ParsePreset(name)
	if err != nil {
		return err
	}
	g.preset = p
	return nil
}

// Preset returns the preset the next Reset applies.
func (g *Game) Preset() config.DifficultyPreset {
	if g.preset != "" {
		return g.preset
	}
	return difficultyPreset
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeSandbox {
		return "cubefall_sandbox"
	}
	return "cubefall"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeSandbox {
		return "Cubefall (Sandbox)"
	}
	return "Cubefall"
}

// Description returns a one-line summary.
func (g *Game) Description() string {
	if g.mode == ModeSandbox {
		return "3D falling blocks with oversized test shapes"
	}
	return "3D falling blocks: fill cuboids and planes to clear them"
}

// Reset loads the configuration and starts a fresh game.
func (g *Game) Reset(rt core.RuntimeConfig) {
	if rt.TickRate <= 0 {
		rt.TickRate = 60
	}
	g.runtime = rt
	g.dt = time.Second / time.Duration(rt.TickRate)
	g.seeds = rand.New(rand.NewSource(rt.Seed))
	g.tick = 0
	g.flashTicks = 0
	g.lastClear = engine.ClearResult{}
	g.lastPoints = 0

	cfg, err := config.LoadCubefall(configPath)
	if err != nil {
		logger.Warn("using default config", "path", configPath, "err", err)
		cfg = config.DefaultCubefallConfig()
	}
	if preset := g.Preset(); preset != "" {
		config.ApplyPreset(&cfg, preset)
	}
	if minEdgeOverride > 0 {
		cfg.Clear.MinEdge = minEdgeOverride
	}
	if g.mode == ModeSandbox {
		cfg.SpawnKinds = sandboxKinds(cfg)
	}
	g.cfg = cfg

	g.eng = g.newEngine(rt.Seed)
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.colors = kindPalette(g.cfg)
	g.layoutCheck()
	g.eng.Start()
	g.applyDifficulty()
}

func (g *Game) newEngine(seed int64) *engine.Engine {
	ec, err := g.cfg.Engine(seed)
	if err != nil {
		logger.Warn("invalid config, falling back to defaults", "err", err)
		ec = engine.DefaultConfig()
		ec.Seed = seed
		if g.mode == ModeSandbox {
			ec.SpawnKinds = append(append([]engine.Kind(nil), engine.StandardKinds...), engine.TestKinds...)
		}
		g.cfg = config.DefaultCubefallConfig()
	}
	scorer, err := engine.ScorerByName(g.cfg.Scoring)
	if err != nil {
		scorer = engine.ClassicScorer{}
	}

	eng, err := engine.New(ec, engine.WithLogger(logger), engine.WithScorer(scorer))
	if err != nil {
		// DefaultConfig always validates.
		eng, _ = engine.New(engine.DefaultConfig(), engine.WithLogger(logger))
	}
	return eng
}

func sandboxKinds(cfg config.CubefallConfig) []string {
	names := append([]string(nil), cfg.SpawnKinds...)
	if len(names) == 0 {
		for _, k := range engine.StandardKinds {
			names = append(names, k.String())
		}
	}
	for _, k := range engine.TestKinds {
		names = append(names, k.String())
	}
	return names
}

// Step applies the frame's actions and advances game time by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if in.Has(core.ActionRestart) && g.eng.State() != engine.StatePlaying {
		g.Reset(core.RuntimeConfig{
			ScreenW:  g.runtime.ScreenW,
			ScreenH:  g.runtime.ScreenH,
			TickRate: g.runtime.TickRate,
			Seed:     g.seeds.Int63(),
		})
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionToggleColor) {
		g.eng.ToggleColoredMode()
	}
	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.eng.TogglePause()
	}

	var events []engine.Event
	if g.eng.State() == engine.StatePlaying {
		events = append(events, g.applyActions(in)...)
	}
	events = append(events, g.eng.Tick(g.dt)...)

	res := core.StepResult{}
	for _, ev := range events {
		switch ev.Kind {
		case engine.EventLocked:
			res.Locked++
		case engine.EventCleared:
			res.Cleared += ev.Clear.Cells()
			g.lastClear = ev.Clear
			g.lastPoints = ev.Points
			g.flashTicks = clearFlashTicks
			logger.Debug("cleared",
				"cuboids", len(ev.Clear.Cuboids),
				"planes", ev.Clear.Planes,
				"cells", ev.Clear.Cells(),
				"points", ev.Points,
			)
		case engine.EventGameOver:
			logger.Debug("game over", "game", g.ID(), "score", g.eng.Score(), "ticks", g.tick)
		}
	}
	if g.flashTicks > 0 {
		g.flashTicks--
	}
	g.applyDifficulty()

	res.State = g.State()
	return res
}

// applyActions translates actions into engine commands. Movement follows
// the field orientation so arrows always match what the player sees.
func (g *Game) applyActions(in core.InputFrame) []engine.Event {
	var events []engine.Event

	switch {
	case in.Has(core.ActionLeft):
		g.eng.MoveRelative(-1, 0)
	case in.Has(core.ActionRight):
		g.eng.MoveRelative(1, 0)
	}
	switch {
	case in.Has(core.ActionForward):
		g.eng.MoveRelative(0, -1)
	case in.Has(core.ActionBack):
		g.eng.MoveRelative(0, 1)
	}

	if in.Has(core.ActionRotateView) {
		g.eng.Rotate(engine.RotateView)
	}
	if in.Has(core.ActionRotateVertical) {
		g.eng.Rotate(engine.RotateVertical)
	}
	if in.Has(core.ActionRotateSide) {
		g.eng.Rotate(engine.RotateSide)
	}

	switch {
	case in.Has(core.ActionFieldLeft):
		g.eng.RotateField(1)
	case in.Has(core.ActionFieldRight):
		g.eng.RotateField(-1)
	}

	for _, d := range difficultyActions {
		if !in.Has(d.action) {
			continue
		}
		edge := d.minEdge
		if err := g.eng.SetDifficulty(edge); err != nil {
			logger.Warn("difficulty rejected", "game", g.ID(), "err", err)
			continue
		}
		logger.Debug("difficulty changed", "game", g.ID(), "min_edge", edge)
	}

	if g.mode == ModeSandbox {
		for _, sp := range sandboxSpawns {
			if in.Has(sp.action) {
				events = append(events, g.eng.SpawnKind(sp.kind)...)
			}
		}
	}

	if in.Has(core.ActionSoftDrop) {
		g.eng.SoftDrop()
	}
	if in.Has(core.ActionHardDrop) {
		events = append(events, g.eng.HardDrop()...)
	}
	return events
}

// Ordered so a frame holding several of these resolves the same way every run.
var difficultyActions = []struct {
	action  core.Action
	minEdge int
}{
	{core.ActionDifficulty2, 2},
	{core.ActionDifficulty3, 3},
	{core.ActionDifficulty4, 4},
	{core.ActionDifficulty5, 5},
}

// sandboxSpawns replace the falling piece; standard games ignore them.
var sandboxSpawns = []struct {
	action core.Action
	kind   engine.Kind
}{
	{core.ActionSpawnTestPlane, engine.KindTestPlane},
	{core.ActionSpawnTestCube, engine.KindTestCube},
	{core.ActionSpawnI, engine.KindI},
}

// applyDifficulty rescales the automatic drop interval from the score.
func (g *Game) applyDifficulty() {
	interval := g.difficulty.DropInterval(
		g.cfg.Timing.DropInterval,
		g.cfg.Timing.MinDropInterval,
		g.eng.Score(),
		int(g.tick),
	)
	g.eng.SetDropInterval(interval)
}

// Resize follows a terminal resize without restarting the game.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	if g.eng != nil {
		g.layoutCheck()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{}
	}
	snap := g.eng.Snapshot()
	return core.GameState{
		Score:    snap.Score,
		GameOver: snap.State == engine.StateGameOver,
		Paused:   snap.State == engine.StatePaused,
		Pieces:   snap.Pieces,
		Cleared:  snap.Cleared,
		Level:    snap.MinEdge,
	}
}

// Engine exposes the underlying engine, for hosts that need more than State.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// SetDifficulty changes the minimum cuboid edge of the running game.
func (g *Game) SetDifficulty(minEdge int) error {
	return g.eng.SetDifficulty(minEdge)
}

// Elapsed returns the game time played so far.
func (g *Game) Elapsed() time.Duration {
	return time.Duration(g.tick) * g.dt
}
