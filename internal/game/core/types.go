package core

import "fmt"

// Role identifies which of the two snakes an entity belongs to
type Role int

const (
	RolePlayer Role = iota
	RoleAI
)

// Roles lists both roles in processing order: the player is always handled first.
var Roles = []Role{RolePlayer, RoleAI}

// Opponent returns the other role
func (r Role) Opponent() Role {
	if r == RolePlayer {
		return RoleAI
	}
	return RolePlayer
}

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleAI:
		return "ai"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// Winner is the outcome of a game. WinnerNone while the game is running.
type Winner int

const (
	WinnerNone Winner = iota
	WinnerPlayer
	WinnerAI
	WinnerDraw
)

func (w Winner) String() string {
	switch w {
	case WinnerNone:
		return "none"
	case WinnerPlayer:
		return "player"
	case WinnerAI:
		return "ai"
	case WinnerDraw:
		return "draw"
	}
	return fmt.Sprintf("winner(%d)", int(w))
}

// MarshalText implements encoding.TextMarshaler
func (w Winner) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (w *Winner) UnmarshalText(text []byte) error {
	parsed, err := ParseWinner(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// ParseWinner is the inverse of Winner.String
func ParseWinner(s string) (Winner, error) {
	switch s {
	case "none", "":
		return WinnerNone, nil
	case "player":
		return WinnerPlayer, nil
	case "ai":
		return WinnerAI, nil
	case "draw":
		return WinnerDraw, nil
	}
	return WinnerNone, fmt.Errorf("unknown winner %q", s)
}

// WinnerFor maps a role to the winner value that names it
func WinnerFor(r Role) Winner {
	if r == RolePlayer {
		return WinnerPlayer
	}
	return WinnerAI
}

// AppleKind distinguishes the two apples on the grid
type AppleKind int

const (
	// AppleGrowth lets the snake that eats it grow by one segment.
	AppleGrowth AppleKind = iota
	// AppleShrink removes a tail segment from the eater's opponent.
	AppleShrink
)

func (k AppleKind) String() string {
	if k == AppleGrowth {
		return "growth"
	}
	return "shrink"
}

// Apple is a single cell, or absent when the grid had no free cell at spawn time
type Apple struct {
	Cell
	Present bool
}

// NoApple is the sentinel for an apple that could not be placed
var NoApple = Apple{}

// AppleAt returns a present apple on c
func AppleAt(c Cell) Apple {
	return Apple{Cell: c, Present: true}
}

// At reports whether the apple sits on c. An absent apple never matches.
func (a Apple) At(c Cell) bool {
	return a.Present && a.Cell == c
}

func (a Apple) String() string {
	if !a.Present {
		return "none"
	}
	return a.Cell.String()
}
