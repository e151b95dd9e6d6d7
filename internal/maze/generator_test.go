package maze

import (
	"errors"
	"testing"
)

// unionFind is a disjoint-set forest over cell slots.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}
	return uf
}

func (uf *unionFind) find(x int) int {
	if uf.parent[x] != x {
		uf.parent[x] = uf.find(uf.parent[x])
	}
	return uf.parent[x]
}

// union merges the sets of a and b. Returns false if they were already joined.
func (uf *unionFind) union(a, b int) bool {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return false
	}
	switch {
	case uf.rank[ra] < uf.rank[rb]:
		uf.parent[ra] = rb
	case uf.rank[ra] > uf.rank[rb]:
		uf.parent[rb] = ra
	default:
		uf.parent[rb] = ra
		uf.rank[ra]++
	}
	return true
}

func newConfigured(t *testing.T, blocks int, opts ...Option) *Generator {
	t.Helper()
	g := NewGenerator(opts...)
	if err := g.Configure(blocks); err != nil {
		t.Fatalf("Configure(%d) failed: %v", blocks, err)
	}
	return g
}

// runToComplete steps until the generator is about to restart.
func runToComplete(t *testing.T, g *Generator) []StepResult {
	t.Helper()
	limit := 4 * g.Dimension() * g.Dimension()
	var results []StepResult
	for g.Phase() != PhaseComplete {
		res, err := g.Step()
		if err != nil {
			t.Fatalf("Step() failed: %v", err)
		}
		results = append(results, res)
		if len(results) > limit {
			t.Fatalf("generation did not complete within %d steps", limit)
		}
	}
	return results
}

func TestStepBeforeConfigure(t *testing.T) {
	g := NewGenerator(WithSeed(1))

	_, err := g.Step()
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Step() error = %v, expected ErrNotConfigured", err)
	}
	if g.Configured() {
		t.Error("Configured() should be false")
	}
}

func TestConfigureRejectsInvalidCount(t *testing.T) {
	g := NewGenerator(WithSeed(1))

	for _, blocks := range []int{0, -1, 2, 10} {
		if err := g.Configure(blocks); !errors.Is(err, ErrInvalidBlockCount) {
			t.Errorf("Configure(%d) error = %v, expected ErrInvalidBlockCount", blocks, err)
		}
	}
	if g.Configured() {
		t.Error("failed Configure should leave the generator unconfigured")
	}

	if err := g.Configure(5); err != nil {
		t.Fatalf("Configure(5) failed: %v", err)
	}
	g.Step()
	depth := g.StackDepth()

	if err := g.Configure(6); err == nil {
		t.Fatal("Configure(6) should fail")
	}
	if g.Dimension() != 3 || g.StackDepth() != depth {
		t.Error("failed Configure should keep the last valid state")
	}
}

func TestConfigureInitialState(t *testing.T) {
	g := newConfigured(t, 9, WithSeed(7))

	if g.Dimension() != 5 {
		t.Errorf("Dimension() = %d, expected 5", g.Dimension())
	}
	if g.StackDepth() != 0 {
		t.Errorf("StackDepth() = %d, expected 0", g.StackDepth())
	}
	if g.VisitedCount() != 1 {
		t.Errorf("VisitedCount() = %d, expected 1", g.VisitedCount())
	}
	if g.Phase() != PhaseCarving {
		t.Errorf("Phase() = %v, expected carving", g.Phase())
	}

	cur, _ := g.Current()
	start, _ := g.Start()
	if cur != start || !start.IsStartCell {
		t.Errorf("current %+v should be the start cell %+v", cur, start)
	}
	if g.Stats().Generation != 1 {
		t.Errorf("Stats().Generation = %d, expected 1", g.Stats().Generation)
	}
}

func TestPerfectMazeUnionFind(t *testing.T) {
	for _, blocks := range []int{3, 5, 7, 11, 21} {
		for seed := int64(1); seed <= 5; seed++ {
			g := newConfigured(t, blocks, WithSeed(seed))
			n := g.Dimension()
			uf := newUnionFind(n * n)

			carves := 0
			for _, res := range runToComplete(t, g) {
				if res.Kind != Advance {
					continue
				}
				carves++
				a := IndexOf(n, res.Previous.Column, res.Previous.Row)
				b := IndexOf(n, res.Current.Column, res.Current.Row)
				if !uf.union(a, b) {
					t.Fatalf("blocks=%d seed=%d: carve joined already connected cells %v and %v",
						blocks, seed, res.Previous, res.Current)
				}
			}

			if carves != n*n-1 {
				t.Errorf("blocks=%d seed=%d: %d carve steps, expected %d", blocks, seed, carves, n*n-1)
			}
			if g.VisitedCount() != n*n {
				t.Errorf("blocks=%d seed=%d: %d visited cells, expected %d", blocks, seed, g.VisitedCount(), n*n)
			}
			assertPerfect(t, g)
		}
	}
}

// assertPerfect checks mirrored walls, N²-1 openings and full connectivity.
func assertPerfect(t *testing.T, g *Generator) {
	t.Helper()
	n := g.Dimension()
	cells := g.Cells()
	uf := newUnionFind(n * n)

	openings := 0
	for slot, c := range cells {
		for _, side := range Sides {
			dc, dr := side.Delta()
			nb := IndexOf(n, c.Column+dc, c.Row+dr)
			if nb == Invalid {
				if !c.HasWall(side) {
					t.Errorf("cell (%d,%d) has no boundary wall on %v", c.Column, c.Row, side)
				}
				continue
			}
			if c.HasWall(side) != cells[nb].HasWall(side.Opposite()) {
				t.Errorf("cell (%d,%d) wall %v is not mirrored", c.Column, c.Row, side)
			}
			if !c.HasWall(side) && (side == Right || side == Bottom) {
				openings++
				if !uf.union(slot, nb) {
					t.Errorf("opening between %d and %d closes a cycle", slot, nb)
				}
			}
		}
	}

	if openings != n*n-1 {
		t.Errorf("%d openings, expected %d", openings, n*n-1)
	}
	root := uf.find(0)
	for slot := range cells {
		if uf.find(slot) != root {
			t.Errorf("cell %d is not connected to cell 0", slot)
		}
	}
}

func TestScenarioThreeByThree(t *testing.T) {
	g := newConfigured(t, 5, WithSeed(42))

	carves := 0
	for steps := 0; ; steps++ {
		if steps > 64 {
			t.Fatal("no restart within 64 steps")
		}
		phase := g.Phase()
		visited := g.VisitedCount()
		res, err := g.Step()
		if err != nil {
			t.Fatalf("Step() failed: %v", err)
		}

		depth := g.StackDepth()
		if depth < 0 || depth > 8 {
			t.Fatalf("stack depth %d out of [0, 8]", depth)
		}

		switch res.Kind {
		case Advance:
			carves++
		case Restarted:
			if phase != PhaseComplete || visited != 9 {
				t.Fatalf("restarted with phase=%v visited=%d", phase, visited)
			}
			if carves != 8 {
				t.Errorf("restart after %d carves, expected 8", carves)
			}
			if res.Completed.CarveSteps != 8 {
				t.Errorf("Completed.CarveSteps = %d, expected 8", res.Completed.CarveSteps)
			}
			return
		}
	}
}

func TestRestartResetsState(t *testing.T) {
	g := newConfigured(t, 11, WithSeed(3))
	runToComplete(t, g)

	finished := g.Stats()
	res, err := g.Step()
	if err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	if res.Kind != Restarted {
		t.Fatalf("Kind = %v, expected restarted", res.Kind)
	}
	if res.Previous != nil {
		t.Error("Previous should be nil after a restart")
	}
	if res.Completed != finished {
		t.Errorf("Completed = %+v, expected %+v", res.Completed, finished)
	}
	if g.StackDepth() != 0 {
		t.Errorf("StackDepth() = %d, expected 0", g.StackDepth())
	}
	if g.Stats().Generation != finished.Generation+1 {
		t.Errorf("Generation = %d, expected %d", g.Stats().Generation, finished.Generation+1)
	}

	for _, c := range g.Cells() {
		isCurrent := c.Column == res.Current.Column && c.Row == res.Current.Row
		visited := g.store.At(c.Column, c.Row).Visited
		if isCurrent != visited {
			t.Errorf("cell (%d,%d) visited=%v, current=%v", c.Column, c.Row, visited, isCurrent)
		}
		if c.Walls != [4]bool{true, true, true, true} {
			t.Errorf("cell (%d,%d) should have all walls after restart", c.Column, c.Row)
		}
	}

	// The very next step carves
	res, _ = g.Step()
	if res.Kind != Advance {
		t.Errorf("first step after restart = %v, expected advance", res.Kind)
	}
}

func TestBacktrackPopsStack(t *testing.T) {
	g := newConfigured(t, 15, WithSeed(11))

	for _, res := range runToComplete(t, g) {
		if res.Kind != Backtrack {
			continue
		}
		if res.Previous == nil {
			t.Fatal("backtrack should report a previous cell")
		}
		// A backtrack always returns to an orthogonal neighbour through an open wall
		side := sideBetween(*res.Previous, res.Current)
		if res.Previous.HasWall(side) {
			t.Errorf("backtracked through a wall from %v to %v", res.Previous, res.Current)
		}
	}
}

func sideBetween(a, b CellView) Side {
	ca := Cell{Column: a.Column, Row: a.Row}
	cb := Cell{Column: b.Column, Row: b.Row}
	return ca.SideFacing(&cb)
}

func TestFixedCornerStart(t *testing.T) {
	for seed := int64(1); seed <= 3; seed++ {
		g := newConfigured(t, 7, WithSeed(seed), WithStartStrategy(StartFixedCorner))
		start, _ := g.Start()
		if start.Column != 0 || start.Row != 0 {
			t.Errorf("seed %d: start = (%d,%d), expected (0,0)", seed, start.Column, start.Row)
		}

		runToComplete(t, g)
		res, _ := g.Step()
		if res.Current.Column != 0 || res.Current.Row != 0 {
			t.Errorf("seed %d: restart start = (%d,%d), expected (0,0)", seed, res.Current.Column, res.Current.Row)
		}
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newConfigured(t, 21, WithSeed(12345))
	g2 := newConfigured(t, 21, WithSeed(12345))

	for i := 0; i < 500; i++ {
		r1, _ := g1.Step()
		r2, _ := g2.Step()
		if r1.Kind != r2.Kind || r1.Current != r2.Current {
			t.Fatalf("step %d differs: %+v vs %+v", i, r1, r2)
		}
	}
	if g1.String() != g2.String() {
		t.Error("mazes differ for the same seed")
	}
}

func TestSingleCellMaze(t *testing.T) {
	g := newConfigured(t, 1, WithSeed(1))

	if g.Phase() != PhaseComplete {
		t.Fatalf("Phase() = %v, expected complete", g.Phase())
	}
	for i := 0; i < 3; i++ {
		res, err := g.Step()
		if err != nil {
			t.Fatalf("Step() failed: %v", err)
		}
		if res.Kind != Restarted {
			t.Errorf("Kind = %v, expected restarted", res.Kind)
		}
	}
}

func TestParseStartStrategy(t *testing.T) {
	tests := []struct {
		in       string
		expected StartStrategy
		wantErr  bool
	}{
		{"random", StartRandom, false},
		{"", StartRandom, false},
		{"corner", StartFixedCorner, false},
		{"Fixed", StartFixedCorner, false},
		{"middle", StartRandom, true},
	}

	for _, tc := range tests {
		got, err := ParseStartStrategy(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseStartStrategy(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if !tc.wantErr && got != tc.expected {
			t.Errorf("ParseStartStrategy(%q) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}
