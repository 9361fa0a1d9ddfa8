package core

import (
	"fmt"
	"strings"
)

// Direction is a unit step on the grid
type Direction struct {
	DX, DY int
}

var (
	Up    = Direction{DX: 0, DY: -1}
	Down  = Direction{DX: 0, DY: 1}
	Left  = Direction{DX: -1, DY: 0}
	Right = Direction{DX: 1, DY: 0}
)

// Directions lists the four legal directions. A direction's position in this
// slice is its action index.
var Directions = []Direction{Up, Down, Left, Right}

// IsValid reports whether d is one of the four unit vectors
func (d Direction) IsValid() bool {
	switch d {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// Validate returns ErrInvalidDirection if d is not one of the four unit vectors
func (d Direction) Validate() error {
	if !d.IsValid() {
		return fmt.Errorf("%w: (%d,%d)", ErrInvalidDirection, d.DX, d.DY)
	}
	return nil
}

// Opposite returns the reversed direction
func (d Direction) Opposite() Direction {
	return Direction{DX: -d.DX, DY: -d.DY}
}

// Index returns the action index of d, or -1 if d is not a legal direction
func (d Direction) Index() int {
	for i, dir := range Directions {
		if dir == d {
			return i
		}
	}
	return -1
}

// DirectionFromIndex is the inverse of Direction.Index
func DirectionFromIndex(idx int) (Direction, error) {
	if idx < 0 || idx >= len(Directions) {
		return Direction{}, fmt.Errorf("%w: action index %d", ErrInvalidDirection, idx)
	}
	return Directions[idx], nil
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("(%d,%d)", d.DX, d.DY)
}

// ParseDirection accepts the names produced by Direction.String, case-insensitive
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	}
	return Direction{}, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}
