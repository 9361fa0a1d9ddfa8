package experience

import (
	"testing"

	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"
	"github.com/stretchr/testify/assert"
)

func TestCalculateReward_Terminal(t *testing.T) {
	prev := createTestObservation()

	tests := []struct {
		name       string
		winner     core.Winner
		wantPlayer float32
		wantAI     float32
	}{
		{"player wins", core.WinnerPlayer, 1, -1},
		{"ai wins", core.WinnerAI, -1, 1},
		{"draw", core.WinnerDraw, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			curr := prev.Clone()
			curr.Done = true
			curr.Winner = tt.winner

			assert.Equal(t, tt.wantPlayer, CalculateReward(prev, curr, core.RolePlayer))
			assert.Equal(t, tt.wantAI, CalculateReward(prev, curr, core.RoleAI))
		})
	}
}

func TestCalculateReward_DefaultIgnoresLength(t *testing.T) {
	prev := createTestObservation()
	curr := prev.Clone()
	curr.Player = append(curr.Player, core.NewCell(0, 0))

	assert.Equal(t, float32(0), CalculateReward(prev, curr, core.RolePlayer))
}

func TestCalculateRewardWithConfig_LengthShaping(t *testing.T) {
	config := &RewardConfig{
		WinGame:      5,
		LoseGame:     -5,
		DrawGame:     -1,
		LengthGained: 0.1,
		LengthLost:   -0.2,
	}

	prev := createTestObservation()
	grown := prev.Clone()
	grown.Player = append(grown.Player, core.NewCell(0, 0))
	assert.InDelta(t, 0.1, CalculateRewardWithConfig(prev, grown, core.RolePlayer, config), 1e-6)

	shrunk := prev.Clone()
	shrunk.AI = shrunk.AI[:1]
	assert.InDelta(t, -0.2, CalculateRewardWithConfig(prev, shrunk, core.RoleAI, config), 1e-6)
	assert.InDelta(t, 0, CalculateRewardWithConfig(prev, shrunk, core.RolePlayer, config), 1e-6)

	// Terminal rewards replace shaping entirely.
	shrunk.Done = true
	shrunk.Winner = core.WinnerDraw
	assert.Equal(t, float32(-1), CalculateRewardWithConfig(prev, shrunk, core.RoleAI, config))
}

func TestNormalizeReward(t *testing.T) {
	assert.Equal(t, float32(1), NormalizeReward(3))
	assert.Equal(t, float32(-1), NormalizeReward(-2))
	assert.Equal(t, float32(0.5), NormalizeReward(0.5))
}
