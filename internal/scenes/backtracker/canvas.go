package backtracker

import (
	"github.com/vovakirdan/tui-mazegen/internal/core"
	"github.com/vovakirdan/tui-mazegen/internal/maze"
)

// blockGlyph is drawn twice per block so blocks look square in a terminal.
const blockGlyph = '█'

// Canvas is a persistent square of colored blocks. It is painted
// incrementally: only the cells touched by a step are repainted.
type Canvas struct {
	side   int
	blocks []core.Color
}

// NewCanvas creates a canvas for a block-wise count, adding a one-block
// border on every side.
func NewCanvas(blockWiseCount int) *Canvas {
	side := blockWiseCount + 2
	if side < 0 {
		side = 0
	}
	return &Canvas{
		side:   side,
		blocks: make([]core.Color, side*side),
	}
}

// Side returns the number of blocks along one axis.
func (c *Canvas) Side() int {
	return c.side
}

// Clear fills every block with col.
func (c *Canvas) Clear(col core.Color) {
	for i := range c.blocks {
		c.blocks[i] = col
	}
}

// At returns the color of a block, or ColorDefault outside the canvas.
func (c *Canvas) At(x, y int) core.Color {
	if x < 0 || y < 0 || x >= c.side || y >= c.side {
		return core.ColorDefault
	}
	return c.blocks[y*c.side+x]
}

func (c *Canvas) set(x, y int, col core.Color) {
	if x < 0 || y < 0 || x >= c.side || y >= c.side {
		return
	}
	c.blocks[y*c.side+x] = col
}

// PaintCell paints the 2x2 blocks owned by a cell.
//
//	top-left     fill (ColorOrange for a highlighted start cell)
//	top-right    wall if the right wall is present, else fill
//	bottom-left  wall if the bottom wall is present, else fill
//	bottom-right always wall
//
// Top and left walls belong to the neighbours or the border.
func (c *Canvas) PaintCell(v maze.CellView, fill, wall core.Color, highlightStart bool) {
	x := 2*v.Column + 1
	y := 2*v.Row + 1

	topLeft := fill
	if highlightStart && v.IsStartCell {
		topLeft = core.ColorOrange
	}
	c.set(x, y, topLeft)

	if v.HasWall(maze.Right) {
		c.set(x+1, y, wall)
	} else {
		c.set(x+1, y, fill)
	}

	if v.HasWall(maze.Bottom) {
		c.set(x, y+1, wall)
	} else {
		c.set(x, y+1, fill)
	}

	c.set(x+1, y+1, wall)
}

// Draw copies the canvas onto dst with its top-left block at (x, y).
// Each block is two characters wide.
func (c *Canvas) Draw(dst *core.Screen, x, y int) {
	for by := 0; by < c.side; by++ {
		for bx := 0; bx < c.side; bx++ {
			col := c.blocks[by*c.side+bx]
			dst.SetColored(x+2*bx, y+by, blockGlyph, col)
			dst.SetColored(x+2*bx+1, y+by, blockGlyph, col)
		}
	}
}
