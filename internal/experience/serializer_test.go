package experience

import (
	"testing"

	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestObservation builds a small 5x4 board:
// player head (2,1) with body (1,1),(0,1); AI head (4,3) with body (4,2).
func createTestObservation() game.Observation {
	return game.Observation{
		Player:      []core.Cell{{X: 2, Y: 1}, {X: 1, Y: 1}, {X: 0, Y: 1}},
		AI:          []core.Cell{{X: 4, Y: 3}, {X: 4, Y: 2}},
		GrowthApple: core.AppleAt(core.NewCell(3, 0)),
		ShrinkApple: core.AppleAt(core.NewCell(0, 3)),
		Tick:        7,
		Width:       5,
		Height:      4,
	}
}

func tensorAt(tensor []float32, channel, x, y, width, height int) float32 {
	return tensor[channel*width*height+y*width+x]
}

func TestSerializer_StateToTensor(t *testing.T) {
	s := NewSerializer()
	obs := createTestObservation()

	tensor := s.StateToTensor(obs, core.RolePlayer)
	require.Len(t, tensor, NumChannels*5*4)

	assert.Equal(t, float32(1), tensorAt(tensor, ChannelOwnBody, 2, 1, 5, 4))
	assert.Equal(t, float32(1), tensorAt(tensor, ChannelOwnBody, 0, 1, 5, 4))
	assert.Equal(t, float32(1), tensorAt(tensor, ChannelOwnHead, 2, 1, 5, 4))
	assert.Equal(t, float32(0), tensorAt(tensor, ChannelOwnHead, 1, 1, 5, 4))
	assert.Equal(t, float32(1), tensorAt(tensor, ChannelOpponentBody, 4, 2, 5, 4))
	assert.Equal(t, float32(1), tensorAt(tensor, ChannelOpponentHead, 4, 3, 5, 4))
	assert.Equal(t, float32(1), tensorAt(tensor, ChannelGrowthApple, 3, 0, 5, 4))
	assert.Equal(t, float32(1), tensorAt(tensor, ChannelShrinkApple, 0, 3, 5, 4))

	var total float32
	for _, v := range tensor {
		total += v
	}
	// 3 own + 1 own head + 2 opponent + 1 opponent head + 2 apples
	assert.Equal(t, float32(9), total)
}

func TestSerializer_StateToTensor_Perspective(t *testing.T) {
	s := NewSerializer()
	obs := createTestObservation()

	player := s.StateToTensor(obs, core.RolePlayer)
	ai := s.StateToTensor(obs, core.RoleAI)

	assert.Equal(t, float32(1), tensorAt(ai, ChannelOwnHead, 4, 3, 5, 4))
	assert.Equal(t, float32(1), tensorAt(ai, ChannelOpponentHead, 2, 1, 5, 4))

	plane := 5 * 4
	assert.Equal(t, player[ChannelOwnBody*plane:(ChannelOwnBody+1)*plane], ai[ChannelOpponentBody*plane:(ChannelOpponentBody+1)*plane])
	assert.Equal(t, player[ChannelGrowthApple*plane:], ai[ChannelGrowthApple*plane:])
}

func TestSerializer_StateToTensor_AbsentApples(t *testing.T) {
	s := NewSerializer()
	obs := createTestObservation()
	obs.GrowthApple = core.NoApple
	obs.ShrinkApple = core.NoApple

	tensor := s.StateToTensor(obs, core.RolePlayer)
	plane := 5 * 4
	for _, v := range tensor[ChannelGrowthApple*plane:] {
		assert.Zero(t, v)
	}
}

func TestSerializer_GenerateActionMask(t *testing.T) {
	s := NewSerializer()
	obs := createTestObservation()

	mask := s.GenerateActionMask(obs, core.RolePlayer)
	require.Len(t, mask, NumActions)
	// Up (2,0), Down (2,2), Right (3,1) are free; Left runs into the neck.
	assert.Equal(t, []bool{true, true, false, true}, mask)

	mask = s.GenerateActionMask(obs, core.RoleAI)
	// Up hits own body (4,2); Down wraps to (4,0); Left (3,3); Right wraps to (0,3).
	assert.Equal(t, []bool{false, true, true, true}, mask)
}

func TestSerializer_ActionIndexRoundTrip(t *testing.T) {
	s := NewSerializer()

	for i, d := range core.Directions {
		idx := s.ActionToIndex(d)
		assert.Equal(t, int32(i), idx)

		back, err := s.IndexToAction(idx)
		require.NoError(t, err)
		assert.Equal(t, d, back)
	}

	assert.Equal(t, int32(-1), s.ActionToIndex(core.Direction{}))
	_, err := s.IndexToAction(4)
	assert.ErrorIs(t, err, core.ErrInvalidDirection)
	assert.False(t, s.ValidateAction(-1))
}

func TestSerializer_GetTensorShape(t *testing.T) {
	s := NewSerializer()
	assert.Equal(t, []int32{NumChannels, 4, 5}, s.GetTensorShape(5, 4))
}

func TestSerializer_ExtractFeatures(t *testing.T) {
	s := NewSerializer()
	obs := createTestObservation()

	features := s.ExtractFeatures(obs, core.RolePlayer)
	assert.Equal(t, float32(3), features["own_length"])
	assert.Equal(t, float32(2), features["opponent_length"])
	assert.Equal(t, float32(1.5), features["length_ratio"])
	assert.Equal(t, float32(7), features["tick"])
	// (2,1) -> (3,0): one step each way
	assert.Equal(t, float32(2), features["growth_apple_distance"])
	// (2,1) -> (0,3): dx 2, dy 2 on a 5x4 torus
	assert.Equal(t, float32(4), features["shrink_apple_distance"])
}
