package core

import (
	"fmt"

	"github.com/mitchelldurbincs/SnakeDuelRL/internal/common"
)

// Cell is a position on the toroidal grid
type Cell struct {
	X, Y int
}

// NewCell creates a new cell with the given x and y values
func NewCell(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// FromIndex creates a cell from a grid index using row-major ordering
func FromIndex(idx, width int) Cell {
	return Cell{
		X: idx % width,
		Y: idx / width,
	}
}

// IsValid checks if the cell is within the given bounds
func (c Cell) IsValid(width, height int) bool {
	return c.X >= 0 && c.X < width && c.Y >= 0 && c.Y < height
}

// ToIndex converts the cell to a grid index using row-major ordering
func (c Cell) ToIndex(width int) int {
	return c.Y*width + c.X
}

// Add returns the cell one step away in direction d, without wrapping
func (c Cell) Add(d Direction) Cell {
	return Cell{
		X: c.X + d.DX,
		Y: c.Y + d.DY,
	}
}

// Wrap folds the cell back onto a width x height torus. Leaving one edge
// re-enters at the opposite edge.
func (c Cell) Wrap(width, height int) Cell {
	return Cell{
		X: common.Mod(c.X, width),
		Y: common.Mod(c.Y, height),
	}
}

// Step moves one cell in direction d on a width x height torus
func (c Cell) Step(d Direction, width, height int) Cell {
	return c.Add(d).Wrap(width, height)
}

// DistanceTo is the Manhattan distance to other on a width x height torus
func (c Cell) DistanceTo(other Cell, width, height int) int {
	return common.ToroidalManhattan(c.X, c.Y, other.X, other.Y, width, height)
}

// Equal checks if two cells are equal
func (c Cell) Equal(other Cell) bool {
	return c.X == other.X && c.Y == other.Y
}

// String returns a string representation of the cell
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// ContainsCell reports whether cells holds c.
func ContainsCell(cells []Cell, c Cell) bool {
	for _, other := range cells {
		if other == c {
			return true
		}
	}
	return false
}

// CloneCells returns an independent copy of cells.
func CloneCells(cells []Cell) []Cell {
	if cells == nil {
		return nil
	}
	out := make([]Cell, len(cells))
	copy(out, cells)
	return out
}
