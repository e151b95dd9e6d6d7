package backtracker

import (
	"testing"

	"github.com/vovakirdan/tui-mazegen/internal/core"
	"github.com/vovakirdan/tui-mazegen/internal/maze"
)

func closedCell(col, row int) maze.CellView {
	return maze.CellView{Column: col, Row: row, Walls: [4]bool{true, true, true, true}}
}

func TestCanvasPaintCellQuadrants(t *testing.T) {
	tests := []struct {
		name      string
		view      maze.CellView
		highlight bool
		want      [4]core.Color // top-left, top-right, bottom-left, bottom-right
	}{
		{
			name: "all walls",
			view: closedCell(0, 0),
			want: [4]core.Color{core.ColorSlate, core.ColorWall, core.ColorWall, core.ColorWall},
		},
		{
			name: "right open",
			view: maze.CellView{Column: 1, Row: 0, Walls: [4]bool{true, false, true, true}},
			want: [4]core.Color{core.ColorSlate, core.ColorSlate, core.ColorWall, core.ColorWall},
		},
		{
			name: "bottom open",
			view: maze.CellView{Column: 0, Row: 1, Walls: [4]bool{true, true, false, true}},
			want: [4]core.Color{core.ColorSlate, core.ColorWall, core.ColorSlate, core.ColorWall},
		},
		{
			name:      "highlighted start",
			view:      maze.CellView{Column: 1, Row: 1, Walls: [4]bool{true, true, true, true}, IsStartCell: true},
			highlight: true,
			want:      [4]core.Color{core.ColorOrange, core.ColorWall, core.ColorWall, core.ColorWall},
		},
		{
			name: "start without highlight",
			view: maze.CellView{Column: 1, Row: 1, Walls: [4]bool{true, true, true, true}, IsStartCell: true},
			want: [4]core.Color{core.ColorSlate, core.ColorWall, core.ColorWall, core.ColorWall},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(3)
			c.Clear(core.ColorDefault)
			c.PaintCell(tt.view, core.ColorSlate, core.ColorWall, tt.highlight)

			x, y := 2*tt.view.Column+1, 2*tt.view.Row+1
			got := [4]core.Color{c.At(x, y), c.At(x+1, y), c.At(x, y+1), c.At(x+1, y+1)}
			if got != tt.want {
				t.Errorf("quadrants = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCanvasLeavesBorderAlone(t *testing.T) {
	c := NewCanvas(3)
	c.Clear(core.ColorWall)
	c.PaintCell(maze.CellView{Column: 0, Row: 0}, core.ColorWhite, core.ColorWall, false)

	if c.Side() != 5 {
		t.Fatalf("Side() = %d, want 5", c.Side())
	}
	for i := 0; i < c.Side(); i++ {
		if c.At(i, 0) != core.ColorWall || c.At(0, i) != core.ColorWall {
			t.Fatalf("border block at index %d was repainted", i)
		}
	}
}

func TestCanvasAtOutOfBounds(t *testing.T) {
	c := NewCanvas(1)
	c.Clear(core.ColorWall)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}} {
		if got := c.At(p[0], p[1]); got != core.ColorDefault {
			t.Errorf("At(%d, %d) = %v, want ColorDefault", p[0], p[1], got)
		}
	}
}

func TestCanvasDraw(t *testing.T) {
	c := NewCanvas(1)
	c.Clear(core.ColorWall)
	c.PaintCell(closedCell(0, 0), core.ColorRed, core.ColorWall, false)

	screen := core.NewScreen(10, 5)
	c.Draw(screen, 1, 1)

	// Block (1,1) is the cell's top-left quadrant, two characters wide
	for _, x := range []int{3, 4} {
		cell := screen.GetCell(x, 2)
		if cell.Rune != blockGlyph || cell.Color != core.ColorRed {
			t.Errorf("screen (%d,2) = %q/%v, want block in red", x, cell.Rune, cell.Color)
		}
	}
	if got := screen.GetCell(1, 1); got.Color != core.ColorWall {
		t.Errorf("border color = %v, want wall", got.Color)
	}
	if got := screen.Get(0, 0); got != ' ' {
		t.Errorf("outside canvas = %q, want blank", got)
	}
}
