// Package backtracker animates the recursive-backtracker maze generator.
// Each frame advances the generator and repaints only the cells the step
// touched, so the carving path and the retreat along it stay visible.
package backtracker

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-mazegen/internal/config"
	"github.com/vovakirdan/tui-mazegen/internal/core"
	"github.com/vovakirdan/tui-mazegen/internal/maze"
	"github.com/vovakirdan/tui-mazegen/internal/registry"
)

// Scene identifiers.
const (
	IDRandom = "backtracker"
	IDCorner = "backtracker-corner"
)

const (
	hudHeight    = 2 // status line + separator
	footerHeight = 1 // key help
)

// presetConfig is applied on the next Reset, set via CLI.
var presetConfig *config.MazeConfig

// SetConfig uses cfg instead of loading one from disk. Pass nil to load again.
func SetConfig(cfg *config.MazeConfig) {
	presetConfig = cfg
}

// variant distinguishes the registered flavours of the scene.
type variant struct {
	id        string
	title     string
	corner    bool // start is always (0,0), never highlighted
	highlight bool
}

// Scene drives a maze.Generator one or more steps per frame.
type Scene struct {
	variant variant
	cfg     config.MazeConfig

	gen    *maze.Generator
	canvas *Canvas
	rng    *rand.Rand
	seed   int64

	tick         uint64
	genStartTick uint64
	completed    int
	blockWise    int
	maxBlockWise int
	stepsPerTick int
	strategy     maze.StartStrategy
	highlight    bool
	paused       bool
	tooSmall     bool
	screenW      int
	screenH      int
	lastKind     maze.TransitionKind
}

// New creates the random-start scene with the start cell highlighted.
func New() *Scene {
	return &Scene{variant: variant{id: IDRandom, title: "Recursive Backtracker", highlight: true}}
}

// NewCorner creates the scene that always starts in the top-left corner.
func NewCorner() *Scene {
	return &Scene{variant: variant{id: IDCorner, title: "Recursive Backtracker (corner)", corner: true}}
}

func init() {
	registry.Register(IDRandom, func() registry.Scene {
		return New()
	})
	registry.Register(IDCorner, func() registry.Scene {
		return NewCorner()
	})
}

// ID returns the scene identifier.
func (s *Scene) ID() string {
	return s.variant.id
}

// Title returns the display name.
func (s *Scene) Title() string {
	return s.variant.title
}

// Reset loads the configuration, fits the grid to the screen and starts a new maze.
func (s *Scene) Reset(cfg core.RuntimeConfig) {
	s.cfg = loadConfig()
	s.screenW = cfg.ScreenW
	s.screenH = cfg.ScreenH
	s.tick = 0
	s.genStartTick = 0
	s.completed = 0
	s.paused = false
	s.stepsPerTick = s.cfg.Animation.StepsPerTick

	s.seed = cfg.Seed
	if s.seed == 0 {
		s.seed = time.Now().UnixNano()
	}
	s.rng = rand.New(rand.NewSource(s.seed))

	s.strategy, s.highlight = s.resolveStart()

	s.maxBlockWise = s.fitBlockWise()
	if s.maxBlockWise < s.cfg.Grid.MinBlocks {
		s.tooSmall = true
		s.gen = nil
		s.canvas = nil
		return
	}
	s.tooSmall = false

	s.blockWise = s.clampBlockWise(s.cfg.Grid.BlockWiseCount)
	s.gen = maze.NewGenerator(maze.WithSeed(s.seed), maze.WithStartStrategy(s.strategy))
	s.configure(s.blockWise)
}

// loadConfig returns the preset config, or loads one and falls back to defaults.
func loadConfig() config.MazeConfig {
	if presetConfig != nil {
		return *presetConfig
	}
	cfg, err := config.Load("")
	if err != nil {
		return config.DefaultMazeConfig()
	}
	return cfg
}

// resolveStart picks the start strategy and highlight for this variant.
func (s *Scene) resolveStart() (maze.StartStrategy, bool) {
	if s.variant.corner {
		return maze.StartFixedCorner, false
	}
	strategy, err := s.cfg.StartStrategy()
	if err != nil {
		strategy = maze.StartRandom
	}
	return strategy, s.variant.highlight && s.cfg.Start.Highlight
}

// fitBlockWise returns the largest odd block-wise count whose canvas fits the screen.
func (s *Scene) fitBlockWise() int {
	sideW := s.screenW / 2
	sideH := s.screenH - hudHeight - footerHeight
	return core.LargestOdd(core.Min(sideW, sideH) - 2)
}

// clampBlockWise keeps blocks odd and within the configured and screen limits.
func (s *Scene) clampBlockWise(blocks int) int {
	upper := core.LargestOdd(core.Min(s.maxBlockWise, s.cfg.Grid.MaxBlocks))
	if upper < s.cfg.Grid.MinBlocks {
		upper = s.cfg.Grid.MinBlocks
	}
	if blocks%2 == 0 {
		blocks--
	}
	return core.Clamp(blocks, s.cfg.Grid.MinBlocks, upper)
}

// configure starts a fresh maze of the given size on the existing generator.
func (s *Scene) configure(blocks int) {
	if err := s.gen.Configure(blocks); err != nil {
		// blocks is always clamped to an odd positive count
		panic(fmt.Sprintf("backtracker: %v", err))
	}
	s.blockWise = blocks
	s.canvas = NewCanvas(blocks)
	s.canvas.Clear(core.ColorWall)
	s.genStartTick = s.tick
}

// Step advances the animation by one frame.
func (s *Scene) Step(in core.InputFrame) core.StepResult {
	s.tick++

	if s.tooSmall {
		return core.StepResult{State: s.State()}
	}

	// Pressing pause twice in one frame is a no-op
	if in.Count(core.ActionPause)%2 == 1 {
		s.paused = !s.paused
	}
	for range in.Count(core.ActionFaster) {
		s.stepsPerTick = core.Min(s.stepsPerTick*2, config.MaxStepsPerTick)
	}
	for range in.Count(core.ActionSlower) {
		s.stepsPerTick = core.Max(s.stepsPerTick/2, 1)
	}

	if in.Has(core.ActionRestart) {
		s.seed = s.rng.Int63()
		s.gen = maze.NewGenerator(maze.WithSeed(s.seed), maze.WithStartStrategy(s.strategy))
		s.configure(s.blockWise)
	}

	// Resizing starts a new maze before this frame's steps run
	if delta := in.Count(core.ActionGrow) - in.Count(core.ActionShrink); delta != 0 {
		if blocks := s.clampBlockWise(s.blockWise + 2*delta); blocks != s.blockWise {
			s.configure(blocks)
		}
	}

	if s.paused {
		return core.StepResult{State: s.State()}
	}

	var completions []core.Completion
	for range s.stepsPerTick {
		if c, ok := s.advance(); ok {
			completions = append(completions, c)
		}
	}

	return core.StepResult{State: s.State(), Completions: completions}
}

// advance performs one generator step and repaints the touched cells.
// It reports a Completion when the step finished a maze.
func (s *Scene) advance() (core.Completion, bool) {
	if s.gen.StackDepth() == 0 {
		s.canvas.Clear(core.ColorWall)
	}

	res, err := s.gen.Step()
	if err != nil {
		// Reset always configures the generator before stepping
		panic(fmt.Sprintf("backtracker: %v", err))
	}
	s.lastKind = res.Kind

	var (
		completion core.Completion
		finished   bool
	)

	switch res.Kind {
	case maze.Advance:
		s.canvas.PaintCell(*res.Previous, core.ColorSlate, core.ColorWall, s.highlight)
	case maze.Backtrack:
		s.canvas.PaintCell(*res.Previous, core.ColorWhite, core.ColorWall, s.highlight)
	case maze.Restarted:
		completion = s.completion(res.Completed)
		finished = true
		s.completed++
		s.genStartTick = s.tick
	}
	s.canvas.PaintCell(res.Current, core.ColorRed, core.ColorWall, s.highlight)

	return completion, finished
}

// completion converts generator statistics into a record for persistence.
func (s *Scene) completion(st maze.Stats) core.Completion {
	return core.Completion{
		SceneID:        s.variant.id,
		Generation:     st.Generation,
		Dimension:      s.gen.Dimension(),
		CarveSteps:     st.CarveSteps,
		BacktrackSteps: st.BacktrackSteps,
		MaxStackDepth:  st.MaxStackDepth,
		Seed:           s.seed,
		Ticks:          s.tick - s.genStartTick,
	}
}

// Render draws the HUD, the canvas and the key help.
func (s *Scene) Render(dst *core.Screen) {
	dst.Clear()

	if s.tooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2, "Resize to continue")
		return
	}

	s.renderHUD(dst)

	area := core.NewRect(0, hudHeight, dst.Width(), dst.Height()-hudHeight-footerHeight)
	box := area.CenteredIn(s.canvas.Side()*2, s.canvas.Side())
	s.canvas.Draw(dst, box.X, box.Y)

	help := "space pause  +/- speed  [/] size  r restart  b back  q quit"
	dst.DrawTextColored(0, dst.Height()-1, help, core.ColorGray)
}

// renderHUD draws the status line and separator.
func (s *Scene) renderHUD(dst *core.Screen) {
	st := s.gen.Stats()
	hud := fmt.Sprintf(" %s  N:%d  Gen:%d  %s  Stack:%d  Speed:x%d",
		s.variant.title, s.gen.Dimension(), st.Generation, s.gen.Phase(), s.gen.StackDepth(), s.stepsPerTick)
	dst.DrawText(0, 0, hud)
	if s.paused {
		dst.DrawTextColored(dst.Width()-8, 0, "PAUSED", core.ColorYellow)
	}

	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

// State returns the current scene state.
func (s *Scene) State() core.SceneState {
	state := core.SceneState{
		Completed: s.completed,
		Paused:    s.paused,
	}
	if s.gen != nil {
		state.Generation = s.gen.Stats().Generation
	}
	return state
}

// BlockWiseCount returns the block-wise count of the maze being carved.
func (s *Scene) BlockWiseCount() int {
	return s.blockWise
}

// Canvas returns the block canvas, or nil when the window is too small.
func (s *Scene) Canvas() *Canvas {
	return s.canvas
}
