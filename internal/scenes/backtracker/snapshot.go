package backtracker

// Snapshot captures the scene state for determinism testing.
type Snapshot struct {
	Tick         uint64
	Seed         int64
	Generation   int
	Completed    int
	Phase        string
	LastKind     string
	CurrentCol   int
	CurrentRow   int
	StackDepth   int
	Visited      int
	BlockWise    int
	StepsPerTick int
	Paused       bool
	TooSmall     bool
}

// Snapshot returns the current scene snapshot.
func (s *Scene) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:         s.tick,
		Seed:         s.seed,
		Completed:    s.completed,
		LastKind:     s.lastKind.String(),
		BlockWise:    s.blockWise,
		StepsPerTick: s.stepsPerTick,
		Paused:       s.paused,
		TooSmall:     s.tooSmall,
	}
	if s.gen == nil {
		return snap
	}

	snap.Generation = s.gen.Stats().Generation
	snap.Phase = s.gen.Phase().String()
	snap.StackDepth = s.gen.StackDepth()
	snap.Visited = s.gen.VisitedCount()
	if cur, ok := s.gen.Current(); ok {
		snap.CurrentCol = cur.Column
		snap.CurrentRow = cur.Row
	}
	return snap
}
