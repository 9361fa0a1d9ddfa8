package testutil

import (
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"
)

// Cells builds a cell list from flat x, y pairs: Cells(1, 2, 3, 4) is
// [(1,2), (3,4)]. A trailing odd value is ignored.
func Cells(coords ...int) []core.Cell {
	out := make([]core.Cell, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		out = append(out, core.NewCell(coords[i], coords[i+1]))
	}
	return out
}

// StraightBody builds a body of the given length whose head is at head and
// whose segments trail behind it opposite to heading, wrapped onto the grid
func StraightBody(head core.Cell, heading core.Direction, length, width, height int) []core.Cell {
	body := make([]core.Cell, 0, length)
	c := head.Wrap(width, height)
	back := heading.Opposite()
	for i := 0; i < length; i++ {
		body = append(body, c)
		c = c.Step(back, width, height)
	}
	return body
}
