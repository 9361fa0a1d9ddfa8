package rules

import (
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"
	"github.com/rs/zerolog"
)

// WinLength is the body length at which a surviving snake wins outright
const WinLength = 15

// Outcome is everything the win condition needs to know about a finished tick
type Outcome struct {
	PlayerDied bool
	AIDied     bool
	PlayerLen  int
	AILen      int
}

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger    zerolog.Logger
	winLength int
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger:    logger.With().Str("component", "WinConditionChecker").Logger(),
		winLength: WinLength,
	}
}

// CheckGameOver applies the outcome rules in fixed priority order and
// returns (isGameOver, winner). Exactly one rule can fire: a collision result
// always shadows the length check, even if the survivor reached the win
// length on the same tick.
func (wc *WinConditionChecker) CheckGameOver(o Outcome) (bool, core.Winner) {
	var winner core.Winner
	switch {
	case o.PlayerDied && o.AIDied:
		winner = core.WinnerDraw
	case o.PlayerDied:
		winner = core.WinnerAI
	case o.AIDied:
		winner = core.WinnerPlayer
	case o.PlayerLen >= wc.winLength:
		winner = core.WinnerPlayer
	case o.AILen >= wc.winLength:
		winner = core.WinnerAI
	default:
		return false, core.WinnerNone
	}

	wc.logger.Debug().
		Bool("player_died", o.PlayerDied).
		Bool("ai_died", o.AIDied).
		Int("player_len", o.PlayerLen).
		Int("ai_len", o.AILen).
		Str("winner", winner.String()).
		Msg("Game over conditions met")
	return true, winner
}

// RewardFor is the scalar reward from the player's point of view
func RewardFor(w core.Winner) int {
	switch w {
	case core.WinnerPlayer:
		return 1
	case core.WinnerAI:
		return -1
	}
	return 0
}
