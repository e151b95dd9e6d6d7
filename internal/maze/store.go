package maze

import "strings"

// Rand is the random source used for neighbour selection and random starts.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Store owns every cell of one N×N maze, in row-major order.
type Store struct {
	n     int
	cells []Cell
}

// NewStore creates a store holding a fresh n×n grid.
func NewStore(n int) *Store {
	s := &Store{}
	s.Initialize(n)
	return s
}

// Initialize replaces the grid with n×n fresh cells: unvisited, all walls present.
func (s *Store) Initialize(n int) {
	if n < 0 {
		n = 0
	}
	cells := make([]Cell, 0, n*n)
	for row := 0; row < n; row++ {
		for column := 0; column < n; column++ {
			cells = append(cells, newCell(column, row))
		}
	}
	s.n = n
	s.cells = cells
}

// Dimension returns N.
func (s *Store) Dimension() int {
	return s.n
}

// Len returns the number of cells (N²).
func (s *Store) Len() int {
	return len(s.cells)
}

// IndexOf maps (column, row) to a slot, or Invalid when out of range.
func (s *Store) IndexOf(column, row int) int {
	return IndexOf(s.n, column, row)
}

// Cell returns the cell in the given slot, or nil for an invalid slot.
func (s *Store) Cell(slot int) *Cell {
	if slot < 0 || slot >= len(s.cells) {
		return nil
	}
	return &s.cells[slot]
}

// At returns the cell at (column, row), or nil when out of range.
func (s *Store) At(column, row int) *Cell {
	return s.Cell(s.IndexOf(column, row))
}

// slotOf returns the slot of c, panicking if c is not owned by this store.
func (s *Store) slotOf(c *Cell) int {
	slot := s.IndexOf(c.Column, c.Row)
	if slot == Invalid || &s.cells[slot] != c {
		panic("maze: cell does not belong to this store")
	}
	return slot
}

// UnvisitedNeighbour picks uniformly at random among the orthogonal
// neighbours of c that exist and are not yet visited. Returns nil when there
// are none.
func (s *Store) UnvisitedNeighbour(c *Cell, rng Rand) *Cell {
	s.slotOf(c)

	var candidates [4]*Cell
	count := 0
	for _, side := range Sides {
		dc, dr := side.Delta()
		nb := s.At(c.Column+dc, c.Row+dr)
		if nb != nil && !nb.Visited {
			candidates[count] = nb
			count++
		}
	}

	if count == 0 {
		return nil
	}
	return candidates[rng.Intn(count)]
}

// VisitedCount returns how many cells have been visited.
func (s *Store) VisitedCount() int {
	count := 0
	for i := range s.cells {
		if s.cells[i].Visited {
			count++
		}
	}
	return count
}

// String draws the current wall state using +, -, | characters.
func (s *Store) String() string {
	if s.n == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("+")
	for column := 0; column < s.n; column++ {
		if s.At(column, 0).Walls[Top] {
			sb.WriteString("---+")
		} else {
			sb.WriteString("   +")
		}
	}
	sb.WriteString("\n")

	for row := 0; row < s.n; row++ {
		if s.At(0, row).Walls[Left] {
			sb.WriteString("|")
		} else {
			sb.WriteString(" ")
		}
		for column := 0; column < s.n; column++ {
			if s.At(column, row).Walls[Right] {
				sb.WriteString("   |")
			} else {
				sb.WriteString("    ")
			}
		}
		sb.WriteString("\n+")
		for column := 0; column < s.n; column++ {
			if s.At(column, row).Walls[Bottom] {
				sb.WriteString("---+")
			} else {
				sb.WriteString("   +")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
