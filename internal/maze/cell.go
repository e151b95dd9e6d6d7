package maze

import "fmt"

// Side identifies one of the four walls of a cell.
type Side int

// Sides in wall-array order.
const (
	Top Side = iota
	Right
	Bottom
	Left
)

// Sides lists every side in wall-array order.
var Sides = [4]Side{Top, Right, Bottom, Left}

// Opposite returns the side facing s on the neighbouring cell.
func (s Side) Opposite() Side {
	return (s + 2) % 4
}

// Delta returns the column and row offsets of the neighbour on side s.
func (s Side) Delta() (dc, dr int) {
	switch s {
	case Top:
		return 0, -1
	case Right:
		return 1, 0
	case Bottom:
		return 0, 1
	case Left:
		return -1, 0
	}
	return 0, 0
}

// String returns a human-readable name for the side.
func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return fmt.Sprintf("side(%d)", int(s))
	}
}

// Cell is a single grid node. Column and Row never change after creation.
type Cell struct {
	Column int
	Row    int
	// Walls is indexed by Side; true means the wall is present.
	Walls   [4]bool
	Visited bool
}

func newCell(column, row int) Cell {
	return Cell{
		Column: column,
		Row:    row,
		Walls:  [4]bool{true, true, true, true},
	}
}

// HasWall reports whether the wall on side s is present.
func (c *Cell) HasWall(s Side) bool {
	return c.Walls[s]
}

// SideFacing returns the side of c that faces other.
// Panics if the two cells are not orthogonal neighbours.
func (c *Cell) SideFacing(other *Cell) Side {
	dc := other.Column - c.Column
	dr := other.Row - c.Row
	switch {
	case dc == 0 && dr == -1:
		return Top
	case dc == 1 && dr == 0:
		return Right
	case dc == 0 && dr == 1:
		return Bottom
	case dc == -1 && dr == 0:
		return Left
	}
	panic(fmt.Sprintf("maze: cells (%d,%d) and (%d,%d) are not adjacent",
		c.Column, c.Row, other.Column, other.Row))
}

// RemoveWalls clears the wall of c facing other and the mirrored wall of
// other facing c. No other wall is touched.
func (c *Cell) RemoveWalls(other *Cell) {
	side := c.SideFacing(other)
	c.Walls[side] = false
	other.Walls[side.Opposite()] = false
}

// CellView is a read-only copy of a cell handed to renderers.
type CellView struct {
	Column      int
	Row         int
	Walls       [4]bool
	IsStartCell bool
}

// HasWall reports whether the wall on side s is present.
func (v CellView) HasWall(s Side) bool {
	return v.Walls[s]
}

func (c *Cell) view(isStart bool) CellView {
	return CellView{
		Column:      c.Column,
		Row:         c.Row,
		Walls:       c.Walls,
		IsStartCell: isStart,
	}
}
