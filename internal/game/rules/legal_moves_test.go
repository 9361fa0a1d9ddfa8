package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"
)

func TestLegalMoveCalculator_StartingPosition(t *testing.T) {
	lmc := NewLegalMoveCalculator(16, 16)
	player := []core.Cell{{X: 8, Y: 8}, {X: 7, Y: 8}, {X: 6, Y: 8}, {X: 5, Y: 8}}
	ai := []core.Cell{{X: 4, Y: 4}, {X: 3, Y: 4}, {X: 2, Y: 4}, {X: 1, Y: 4}}

	mask := lmc.GetLegalActionMask(player, ai)
	// Up, Down, Left, Right: reversing into the neck is the only unsafe move.
	assert.Equal(t, []bool{true, true, false, true}, mask)
	assert.Equal(t, []core.Direction{core.Up, core.Down, core.Right}, lmc.SafeDirections(player, ai))
}

func TestLegalMoveCalculator_OpponentBlocks(t *testing.T) {
	lmc := NewLegalMoveCalculator(16, 16)
	body := []core.Cell{{X: 5, Y: 5}, {X: 5, Y: 6}}
	opponent := []core.Cell{{X: 6, Y: 5}, {X: 6, Y: 4}, {X: 5, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 5}}

	// Up (5,4), Left (4,5), Right (6,5) are taken and Down is the neck.
	assert.Empty(t, lmc.SafeDirections(body, opponent))
}

func TestLegalMoveCalculator_WrapsAroundEdges(t *testing.T) {
	lmc := NewLegalMoveCalculator(4, 4)
	body := []core.Cell{{X: 3, Y: 0}, {X: 2, Y: 0}}
	opponent := []core.Cell{{X: 0, Y: 0}}

	mask := lmc.GetLegalActionMask(body, opponent)
	// Right wraps to (0,0) which is occupied; Up wraps to (3,3) which is free.
	assert.Equal(t, []bool{true, true, false, false}, mask)
}

func TestLegalMoveCalculator_EmptyBody(t *testing.T) {
	lmc := NewLegalMoveCalculator(4, 4)
	assert.Equal(t, []bool{false, false, false, false}, lmc.GetLegalActionMask(nil, nil))
}
