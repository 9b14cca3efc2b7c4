package cursor

import (
	"testing"

	"qcircuitgrid/internal/grid"
)

func TestMoveClampsAtBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		startRow  int
		startCol  int
		dir       grid.Direction
		wantRow   int
		wantCol   int
		wantMoved bool
	}{
		{"left from column 0", 0, 0, grid.Left, 0, 0, false},
		{"up from row 0", 0, 0, grid.Up, 0, 0, false},
		{"down from last row", 1, 3, grid.Down, 1, 3, false},
		{"right from last column", 0, 17, grid.Right, 0, 17, false},
		{"right", 0, 0, grid.Right, 0, 1, true},
		{"down", 0, 5, grid.Down, 1, 5, true},
		{"up", 1, 5, grid.Up, 0, 5, true},
		{"left", 1, 5, grid.Left, 1, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(2, 18)
			c.Row, c.Column = tt.startRow, tt.startCol
			moved := c.Move(tt.dir)
			if moved != tt.wantMoved {
				t.Errorf("Move(%s) moved=%v, want %v", tt.dir, moved, tt.wantMoved)
			}
			row, col := c.Position()
			if row != tt.wantRow || col != tt.wantCol {
				t.Errorf("Move(%s) = (%d,%d), want (%d,%d)", tt.dir, row, col, tt.wantRow, tt.wantCol)
			}
		})
	}
}

func TestWalkAcrossGrid(t *testing.T) {
	c := New(3, 4)
	for range 10 {
		c.Move(grid.Right)
		c.Move(grid.Down)
	}
	if row, col := c.Position(); row != 2 || col != 3 {
		t.Fatalf("expected clamp at (2,3), got (%d,%d)", row, col)
	}
	c.Reset()
	if row, col := c.Position(); row != 0 || col != 0 {
		t.Fatalf("Reset: got (%d,%d)", row, col)
	}
}

func TestSingleCellGrid(t *testing.T) {
	c := New(1, 1)
	for _, d := range []grid.Direction{grid.Up, grid.Down, grid.Left, grid.Right} {
		if c.Move(d) {
			t.Errorf("Move(%s) on 1x1 grid should not move", d)
		}
	}
}
