package rules

import "github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"

// DeathCause records why a snake died on a tick
type DeathCause int

const (
	DeathNone DeathCause = iota
	DeathSelf
	DeathOpponent
)

func (d DeathCause) String() string {
	switch d {
	case DeathSelf:
		return "self"
	case DeathOpponent:
		return "opponent"
	}
	return "none"
}

// CheckCollision reports whether the snake with the given post-move body has
// died. It is a pure function of both post-move bodies: the head hitting any
// other index of its own body is a self collision, the head landing anywhere
// on the opponent's body is an opponent collision. Self collision is checked
// first.
func CheckCollision(body, opponent []core.Cell) (bool, DeathCause) {
	if len(body) == 0 {
		return false, DeathNone
	}
	head := body[0]
	if core.ContainsCell(body[1:], head) {
		return true, DeathSelf
	}
	if core.ContainsCell(opponent, head) {
		return true, DeathOpponent
	}
	return false, DeathNone
}
