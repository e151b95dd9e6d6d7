package backtracker

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-mazegen/internal/config"
	"github.com/vovakirdan/tui-mazegen/internal/core"
	"github.com/vovakirdan/tui-mazegen/internal/registry"
)

// useConfig installs the default config with the given block-wise count
// and restores the package settings when the test ends.
func useConfig(t *testing.T, blocks int) *config.MazeConfig {
	t.Helper()
	cfg := config.DefaultMazeConfig()
	cfg.Grid.BlockWiseCount = blocks
	SetConfig(&cfg)
	t.Cleanup(func() { SetConfig(nil) })
	return &cfg
}

func newScene(t *testing.T, s *Scene, w, h int) *Scene {
	t.Helper()
	s.Reset(core.RuntimeConfig{ScreenW: w, ScreenH: h, TickRate: 24, Seed: 12345})
	return s
}

func stepN(s *Scene, n int) []core.Completion {
	var all []core.Completion
	in := core.NewInputFrame()
	for range n {
		all = append(all, s.Step(in).Completions...)
	}
	return all
}

func TestScenesRegistered(t *testing.T) {
	for _, id := range []string{IDRandom, IDCorner} {
		if !registry.Exists(id) {
			t.Errorf("scene %q not registered", id)
		}
	}
}

func TestDeterminism(t *testing.T) {
	useConfig(t, 21)

	s1 := newScene(t, New(), 80, 24)
	s2 := newScene(t, New(), 80, 24)

	input := core.NewInputFrame()
	for i := 0; i < 300; i++ {
		input.Clear()
		if i == 50 {
			input.Set(core.ActionFaster)
		}
		if i == 120 {
			input.Set(core.ActionRestart)
		}
		s1.Step(input)
		s2.Step(input)
	}

	if s1.Snapshot() != s2.Snapshot() {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1.Snapshot(), s2.Snapshot())
	}
}

func TestResetFitsScreen(t *testing.T) {
	useConfig(t, 55)

	// 80 columns give 40 blocks, 24 rows minus HUD and help give 21
	s := newScene(t, New(), 80, 24)

	if got := s.BlockWiseCount(); got != 19 {
		t.Errorf("BlockWiseCount() = %d, want 19", got)
	}
	if got := s.Canvas().Side(); got != 21 {
		t.Errorf("canvas side = %d, want 21", got)
	}
}

func TestResetKeepsRequestedSizeWhenItFits(t *testing.T) {
	useConfig(t, 9)

	s := newScene(t, New(), 200, 60)
	if got := s.BlockWiseCount(); got != 9 {
		t.Errorf("BlockWiseCount() = %d, want 9", got)
	}
}

func TestTooSmallWindow(t *testing.T) {
	useConfig(t, 55)

	s := newScene(t, New(), 10, 5)
	if !s.Snapshot().TooSmall {
		t.Fatal("expected too-small state")
	}

	// Stepping and rendering must not touch the missing generator
	stepN(s, 5)
	screen := core.NewScreen(10, 5)
	s.Render(screen)
	if !strings.Contains(screen.String(), "too") {
		t.Errorf("expected too-small message, got:\n%s", screen.String())
	}
}

func TestCompletionEmittedOnRestart(t *testing.T) {
	useConfig(t, 3)
	s := newScene(t, New(), 80, 24)

	// N=2: three carves, three backtracks, then the restarting step
	completions := stepN(s, 6)
	if len(completions) != 0 {
		t.Fatalf("completed early: %+v", completions)
	}

	completions = stepN(s, 1)
	if len(completions) != 1 {
		t.Fatalf("expected one completion, got %d", len(completions))
	}

	c := completions[0]
	if c.SceneID != IDRandom {
		t.Errorf("SceneID = %q, want %q", c.SceneID, IDRandom)
	}
	if c.Generation != 1 || c.Dimension != 2 {
		t.Errorf("Generation/Dimension = %d/%d, want 1/2", c.Generation, c.Dimension)
	}
	if c.CarveSteps != 3 || c.BacktrackSteps != 3 {
		t.Errorf("carves/backtracks = %d/%d, want 3/3", c.CarveSteps, c.BacktrackSteps)
	}
	if c.Ticks != 7 {
		t.Errorf("Ticks = %d, want 7", c.Ticks)
	}
	if c.Seed != 12345 {
		t.Errorf("Seed = %d, want 12345", c.Seed)
	}

	state := s.State()
	if state.Completed != 1 || state.Generation != 2 {
		t.Errorf("State() = %+v, want 1 completed, generation 2", state)
	}
}

func TestCanvasClearedOnRestart(t *testing.T) {
	useConfig(t, 3)
	s := newScene(t, New(), 80, 24)
	stepN(s, 7)

	// Only the new start cell is painted; it is current and fully walled
	c := s.Canvas()
	painted := 0
	for y := 0; y < c.Side(); y++ {
		for x := 0; x < c.Side(); x++ {
			switch c.At(x, y) {
			case core.ColorWall:
			case core.ColorRed, core.ColorOrange:
				painted++
			default:
				t.Errorf("block (%d,%d) = %v after restart", x, y, c.At(x, y))
			}
		}
	}
	if painted != 1 {
		t.Errorf("painted blocks = %d, want 1", painted)
	}
}

func TestFirstStepPaintsCorner(t *testing.T) {
	useConfig(t, 9)
	s := newScene(t, NewCorner(), 80, 24)
	stepN(s, 1)

	c := s.Canvas()
	if got := c.At(1, 1); got != core.ColorSlate {
		t.Errorf("start top-left = %v, want slate", got)
	}

	snap := s.Snapshot()
	switch {
	case snap.CurrentCol == 1 && snap.CurrentRow == 0:
		if c.At(2, 1) != core.ColorSlate {
			t.Error("opened right wall of the start cell not painted")
		}
		if c.At(3, 1) != core.ColorRed {
			t.Error("current cell not painted red")
		}
	case snap.CurrentCol == 0 && snap.CurrentRow == 1:
		if c.At(1, 2) != core.ColorSlate {
			t.Error("opened bottom wall of the start cell not painted")
		}
		if c.At(1, 3) != core.ColorRed {
			t.Error("current cell not painted red")
		}
	default:
		t.Fatalf("first step moved to (%d,%d), not a neighbour of (0,0)", snap.CurrentCol, snap.CurrentRow)
	}
}

func TestStartHighlighted(t *testing.T) {
	useConfig(t, 9)
	s := newScene(t, New(), 80, 24)
	stepN(s, 1)

	start, ok := s.gen.Start()
	if !ok {
		t.Fatal("generator not configured")
	}
	if got := s.Canvas().At(2*start.Column+1, 2*start.Row+1); got != core.ColorOrange {
		t.Errorf("start top-left = %v, want orange", got)
	}
}

func TestStartStrategyFromConfig(t *testing.T) {
	cfg := useConfig(t, 9)
	cfg.Start.Strategy = "corner"

	s := newScene(t, New(), 80, 24)
	start, _ := s.gen.Start()
	if start.Column != 0 || start.Row != 0 {
		t.Errorf("start = (%d,%d), want (0,0)", start.Column, start.Row)
	}
}

func TestPause(t *testing.T) {
	useConfig(t, 9)
	s := newScene(t, New(), 80, 24)
	stepN(s, 3)

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	s.Step(in)
	if !s.State().Paused {
		t.Fatal("expected paused after one pause press")
	}

	before := s.Snapshot().Visited
	stepN(s, 10)
	if after := s.Snapshot().Visited; after != before {
		t.Errorf("generator advanced while paused: %d -> %d", before, after)
	}

	// Two presses in one frame cancel out
	in.Clear()
	in.Set(core.ActionPause)
	in.Set(core.ActionPause)
	s.Step(in)
	if !s.State().Paused {
		t.Error("double press should leave the scene paused")
	}
}

func TestSpeedControl(t *testing.T) {
	useConfig(t, 9)
	s := newScene(t, New(), 80, 24)

	in := core.NewInputFrame()
	in.Set(core.ActionFaster)
	s.Step(in)
	if got := s.Snapshot().StepsPerTick; got != 2 {
		t.Errorf("StepsPerTick after faster = %d, want 2", got)
	}

	in.Clear()
	for range 10 {
		in.Set(core.ActionFaster)
	}
	s.Step(in)
	if got := s.Snapshot().StepsPerTick; got != config.MaxStepsPerTick {
		t.Errorf("StepsPerTick = %d, want cap %d", got, config.MaxStepsPerTick)
	}

	in.Clear()
	for range 10 {
		in.Set(core.ActionSlower)
	}
	s.Step(in)
	if got := s.Snapshot().StepsPerTick; got != 1 {
		t.Errorf("StepsPerTick = %d, want 1", got)
	}
}

func TestGrowShrink(t *testing.T) {
	tests := []struct {
		name   string
		start  int
		grow   int
		shrink int
		want   int
	}{
		{"grow", 21, 1, 0, 23},
		{"shrink twice", 21, 0, 2, 17},
		{"grow and shrink cancel", 21, 1, 1, 21},
		{"clamped at minimum", 3, 0, 1, 3},
		{"clamped at screen", 53, 3, 0, 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useConfig(t, tt.start)
			s := newScene(t, New(), 200, 60)

			in := core.NewInputFrame()
			for range tt.grow {
				in.Set(core.ActionGrow)
			}
			for range tt.shrink {
				in.Set(core.ActionShrink)
			}
			s.Step(in)

			if got := s.BlockWiseCount(); got != tt.want {
				t.Errorf("BlockWiseCount() = %d, want %d", got, tt.want)
			}
			if got := s.Canvas().Side(); got != tt.want+2 {
				t.Errorf("canvas side = %d, want %d", got, tt.want+2)
			}
		})
	}
}

func TestRestartStartsNewMaze(t *testing.T) {
	useConfig(t, 9)
	s := newScene(t, New(), 80, 24)
	stepN(s, 20)
	seed := s.Snapshot().Seed

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	s.Step(in)

	snap := s.Snapshot()
	if snap.Seed == seed {
		t.Error("restart kept the old seed")
	}
	// One step ran after the restart
	if snap.Visited != 2 {
		t.Errorf("Visited = %d after restart, want 2", snap.Visited)
	}
	if snap.Generation != 1 {
		t.Errorf("Generation = %d, want 1", snap.Generation)
	}
}

func TestRender(t *testing.T) {
	useConfig(t, 19)
	s := newScene(t, New(), 80, 24)
	stepN(s, 5)

	screen := core.NewScreen(80, 24)
	s.Render(screen)

	hud := screen.Row(0)
	if !strings.Contains(hud, "N:10") || !strings.Contains(hud, "Gen:1") {
		t.Errorf("HUD missing size or generation: %q", hud)
	}
	if !strings.Contains(screen.Row(23), "restart") {
		t.Errorf("help line missing: %q", screen.Row(23))
	}
	if !strings.ContainsRune(screen.String(), blockGlyph) {
		t.Error("canvas not drawn")
	}
}
