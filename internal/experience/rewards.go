package experience

import (
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"
)

// RewardConfig holds configurable reward values
type RewardConfig struct {
	WinGame      float32
	LoseGame     float32
	DrawGame     float32
	LengthGained float32 // per segment gained this tick
	LengthLost   float32 // per segment lost this tick, usually negative
}

// DefaultRewardConfig matches the engine's own reward: +1 win, -1 loss, 0 otherwise
func DefaultRewardConfig() *RewardConfig {
	return &RewardConfig{
		WinGame:      1.0,
		LoseGame:     -1.0,
		DrawGame:     0.0,
		LengthGained: 0.0,
		LengthLost:   0.0,
	}
}

// CalculateReward computes the reward for role given a state transition
func CalculateReward(prev, curr game.Observation, role core.Role) float32 {
	return CalculateRewardWithConfig(prev, curr, role, DefaultRewardConfig())
}

// CalculateRewardWithConfig computes reward using custom configuration.
// Terminal transitions return the outcome reward only.
func CalculateRewardWithConfig(prev, curr game.Observation, role core.Role, config *RewardConfig) float32 {
	if curr.Done {
		switch curr.Winner {
		case core.WinnerFor(role):
			return config.WinGame
		case core.WinnerFor(role.Opponent()):
			return config.LoseGame
		case core.WinnerDraw:
			return config.DrawGame
		}
	}

	reward := float32(0.0)
	diff := len(curr.Body(role)) - len(prev.Body(role))
	if diff > 0 {
		reward += float32(diff) * config.LengthGained
	} else if diff < 0 {
		reward += float32(-diff) * config.LengthLost
	}
	return reward
}

// NormalizeReward applies normalization to keep rewards in reasonable range
func NormalizeReward(reward float32) float32 {
	// Simple clipping for now
	if reward > 1.0 {
		return 1.0
	} else if reward < -1.0 {
		return -1.0
	}
	return reward
}
