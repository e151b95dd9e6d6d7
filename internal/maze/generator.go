package maze

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Phase is the state of the generator between two Step calls.
type Phase int

const (
	// PhaseCarving means the current cell has an unvisited neighbour.
	PhaseCarving Phase = iota
	// PhaseBacktracking means the current cell is exhausted but the stack is not empty.
	PhaseBacktracking
	// PhaseComplete means every cell has been visited; the next Step restarts.
	PhaseComplete
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseCarving:
		return "carving"
	case PhaseBacktracking:
		return "backtracking"
	case PhaseComplete:
		return "complete"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// TransitionKind describes what a Step did.
type TransitionKind int

const (
	Advance TransitionKind = iota
	Backtrack
	Restarted
)

// String returns a human-readable name for the transition.
func (k TransitionKind) String() string {
	switch k {
	case Advance:
		return "advance"
	case Backtrack:
		return "backtrack"
	case Restarted:
		return "restarted"
	default:
		return fmt.Sprintf("transition(%d)", int(k))
	}
}

// StartStrategy selects the cell a generation begins from.
type StartStrategy int

const (
	StartRandom StartStrategy = iota
	StartFixedCorner
)

// String returns the configuration name of the strategy.
func (s StartStrategy) String() string {
	switch s {
	case StartRandom:
		return "random"
	case StartFixedCorner:
		return "corner"
	default:
		return fmt.Sprintf("start(%d)", int(s))
	}
}

// ParseStartStrategy parses "random" or "corner" (also "fixed").
func ParseStartStrategy(name string) (StartStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "random":
		return StartRandom, nil
	case "corner", "fixed", "fixed-corner":
		return StartFixedCorner, nil
	}
	return StartRandom, fmt.Errorf("maze: unknown start strategy %q", name)
}

// Stats counts the work done for one generation.
type Stats struct {
	Generation     int // 1 for the first maze after Configure
	CarveSteps     int
	BacktrackSteps int
	MaxStackDepth  int
}

// StepResult is returned by Step. Previous is nil after a restart.
type StepResult struct {
	Current  CellView
	Previous *CellView
	Kind     TransitionKind

	// Completed holds the statistics of the generation that just finished.
	// Only set when Kind is Restarted.
	Completed Stats
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source.
func WithRand(r Rand) Option {
	return func(g *Generator) {
		g.rng = r
	}
}

// WithSeed seeds a math/rand source for reproducible mazes.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithStartStrategy sets how the start cell is picked.
func WithStartStrategy(s StartStrategy) Option {
	return func(g *Generator) {
		g.strategy = s
	}
}

// Generator is the recursive-backtracker state machine.
// It holds slots into its Store, never cell pointers, and is not safe for
// concurrent use: Step and Configure must be called from one goroutine.
type Generator struct {
	rng      Rand
	strategy StartStrategy
	store    *Store

	current  int
	next     int
	previous int
	start    int
	stack    []int

	stats Stats
}

// NewGenerator creates an unconfigured generator.
// Configure must succeed before the first Step.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		current:  Invalid,
		next:     Invalid,
		previous: Invalid,
		start:    Invalid,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return g
}

// Configure derives N from blockWiseCount and starts a brand-new maze.
// On error the generator keeps its previous state.
func (g *Generator) Configure(blockWiseCount int) error {
	n, err := Dimension(blockWiseCount)
	if err != nil {
		return err
	}

	if g.store == nil {
		g.store = NewStore(n)
	} else {
		g.store.Initialize(n)
	}
	g.reset()
	g.stats = Stats{Generation: 1}
	return nil
}

// reset rebuilds the store for the current N and reinitialises all state.
func (g *Generator) reset() {
	g.store.Initialize(g.store.Dimension())
	g.stack = g.stack[:0]
	g.previous = Invalid

	g.start = g.pickStart()
	g.current = g.start
	g.store.Cell(g.current).Visited = true
	g.next = g.unvisitedNeighbour(g.current)
}

func (g *Generator) pickStart() int {
	if g.strategy == StartFixedCorner {
		return 0
	}
	return g.rng.Intn(g.store.Len())
}

func (g *Generator) unvisitedNeighbour(slot int) int {
	nb := g.store.UnvisitedNeighbour(g.store.Cell(slot), g.rng)
	if nb == nil {
		return Invalid
	}
	return g.store.slotOf(nb)
}

// Configured reports whether Configure has succeeded at least once.
func (g *Generator) Configured() bool {
	return g.store != nil
}

// Phase returns the state the next Step will act on.
func (g *Generator) Phase() Phase {
	switch {
	case g.next != Invalid:
		return PhaseCarving
	case len(g.stack) > 0:
		return PhaseBacktracking
	default:
		return PhaseComplete
	}
}

// Step performs exactly one transition:
//   - Carving: push current, open the wall to next and move onto it.
//   - Backtracking: pop the stack into current.
//   - Complete: rebuild the maze and pick a new start in the same call.
func (g *Generator) Step() (StepResult, error) {
	if g.store == nil {
		return StepResult{}, ErrNotConfigured
	}

	switch g.Phase() {
	case PhaseCarving:
		g.stack = append(g.stack, g.current)
		cur := g.store.Cell(g.current)
		nxt := g.store.Cell(g.next)
		cur.RemoveWalls(nxt)

		g.previous = g.current
		g.current = g.next
		nxt.Visited = true
		g.next = g.unvisitedNeighbour(g.current)

		g.stats.CarveSteps++
		if len(g.stack) > g.stats.MaxStackDepth {
			g.stats.MaxStackDepth = len(g.stack)
		}
		return g.result(Advance), nil

	case PhaseBacktracking:
		g.previous = g.current
		top := len(g.stack) - 1
		g.current = g.stack[top]
		g.stack = g.stack[:top]
		g.next = g.unvisitedNeighbour(g.current)

		g.stats.BacktrackSteps++
		return g.result(Backtrack), nil

	default:
		finished := g.stats
		g.reset()
		g.stats = Stats{Generation: finished.Generation + 1}

		res := g.result(Restarted)
		res.Completed = finished
		return res, nil
	}
}

func (g *Generator) result(kind TransitionKind) StepResult {
	res := StepResult{
		Current: g.view(g.current),
		Kind:    kind,
	}
	if g.previous != Invalid {
		prev := g.view(g.previous)
		res.Previous = &prev
	}
	return res
}

func (g *Generator) view(slot int) CellView {
	return g.store.Cell(slot).view(slot == g.start)
}

// Dimension returns N, or 0 before Configure.
func (g *Generator) Dimension() int {
	if g.store == nil {
		return 0
	}
	return g.store.Dimension()
}

// StackDepth returns the number of cells on the backtracking stack.
func (g *Generator) StackDepth() int {
	return len(g.stack)
}

// Stats returns counters for the generation in progress.
func (g *Generator) Stats() Stats {
	return g.stats
}

// Strategy returns the start strategy.
func (g *Generator) Strategy() StartStrategy {
	return g.strategy
}

// Current returns a view of the frontier cell.
func (g *Generator) Current() (CellView, bool) {
	if g.store == nil {
		return CellView{}, false
	}
	return g.view(g.current), true
}

// Start returns a view of the cell the current generation began from.
func (g *Generator) Start() (CellView, bool) {
	if g.store == nil {
		return CellView{}, false
	}
	return g.view(g.start), true
}

// Cells returns views of every cell in row-major order.
func (g *Generator) Cells() []CellView {
	if g.store == nil {
		return nil
	}
	views := make([]CellView, g.store.Len())
	for slot := range views {
		views[slot] = g.view(slot)
	}
	return views
}

// VisitedCount returns how many cells of the current maze have been visited.
func (g *Generator) VisitedCount() int {
	if g.store == nil {
		return 0
	}
	return g.store.VisitedCount()
}

// String draws the current maze as ASCII.
func (g *Generator) String() string {
	if g.store == nil {
		return ""
	}
	return g.store.String()
}
