package rules

import "github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"

// LegalMoveCalculator computes which directions are safe for a snake.
// The engine itself accepts any of the four directions; this is advisory
// information for policies and action masks.
type LegalMoveCalculator struct {
	width, height int
}

// NewLegalMoveCalculator creates a calculator for a width x height torus
func NewLegalMoveCalculator(width, height int) *LegalMoveCalculator {
	return &LegalMoveCalculator{width: width, height: height}
}

// GetLegalActionMask returns one flag per entry of core.Directions.
// A direction is legal when the next head cell is not occupied by either body.
// Tails are treated as occupied since whether they move depends on apples.
func (lmc *LegalMoveCalculator) GetLegalActionMask(body, opponent []core.Cell) []bool {
	mask := make([]bool, len(core.Directions))
	if len(body) == 0 {
		return mask
	}

	head := body[0]
	for i, dir := range core.Directions {
		next := head.Step(dir, lmc.width, lmc.height)
		if core.ContainsCell(body, next) || core.ContainsCell(opponent, next) {
			continue
		}
		mask[i] = true
	}
	return mask
}

// SafeDirections lists the legal directions in core.Directions order
func (lmc *LegalMoveCalculator) SafeDirections(body, opponent []core.Cell) []core.Direction {
	mask := lmc.GetLegalActionMask(body, opponent)
	safe := make([]core.Direction, 0, len(mask))
	for i, ok := range mask {
		if ok {
			safe = append(safe, core.Directions[i])
		}
	}
	return safe
}
