// Package maze implements incremental maze generation with a randomized
// depth-first traversal (recursive backtracker).
//
// Generation is driven one transition at a time by Generator.Step so an
// external frame loop can observe every carve and backtrack. The package has
// no external dependencies and performs no I/O.
package maze

import "fmt"

// Invalid is the slot returned by IndexOf for coordinates outside the grid.
const Invalid = -1

// Dimension derives the line-wise cell count N from a block-wise count.
// The block-wise count is the number of rendered blocks along one axis
// (cells plus the walls between them) and must be odd and positive.
func Dimension(blockWiseCount int) (int, error) {
	if blockWiseCount <= 0 || blockWiseCount%2 == 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidBlockCount, blockWiseCount)
	}
	return (blockWiseCount + 1) / 2, nil
}

// BlockWiseCount is the inverse of Dimension.
func BlockWiseCount(n int) int {
	return 2*n - 1
}

// IndexOf maps (column, row) to its row-major slot in an n×n grid.
// Returns Invalid when either coordinate is negative or >= n.
func IndexOf(n, column, row int) int {
	if column < 0 || row < 0 || column >= n || row >= n {
		return Invalid
	}
	return row*n + column
}
