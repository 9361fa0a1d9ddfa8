package experience

import (
	"fmt"

	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/rules"
)

const (
	// Channel indices for tensor representation
	ChannelOwnBody      = 0
	ChannelOwnHead      = 1
	ChannelOpponentBody = 2
	ChannelOpponentHead = 3
	ChannelGrowthApple  = 4
	ChannelShrinkApple  = 5
	NumChannels         = 6

	// NumActions is one action per direction, indexed like core.Directions
	NumActions = 4
)

// Serializer converts observations to tensor representations
type Serializer struct{}

// NewSerializer creates a new state serializer
func NewSerializer() *Serializer {
	return &Serializer{}
}

// StateToTensor converts an observation to a multi-channel tensor from the
// perspective of role. Body channels include the head cell.
func (s *Serializer) StateToTensor(obs game.Observation, role core.Role) []float32 {
	width, height := obs.Width, obs.Height
	tensor := make([]float32, NumChannels*width*height)

	own, opponent := obs.Agent(role)
	s.markBody(tensor, own, ChannelOwnBody, ChannelOwnHead, width, height)
	s.markBody(tensor, opponent, ChannelOpponentBody, ChannelOpponentHead, width, height)

	if obs.GrowthApple.Present {
		s.mark(tensor, ChannelGrowthApple, obs.GrowthApple.Cell, width, height)
	}
	if obs.ShrinkApple.Present {
		s.mark(tensor, ChannelShrinkApple, obs.ShrinkApple.Cell, width, height)
	}
	return tensor
}

func (s *Serializer) markBody(tensor []float32, body []core.Cell, bodyChannel, headChannel, width, height int) {
	for _, c := range body {
		s.mark(tensor, bodyChannel, c, width, height)
	}
	if len(body) > 0 {
		s.mark(tensor, headChannel, body[0], width, height)
	}
}

func (s *Serializer) mark(tensor []float32, channel int, c core.Cell, width, height int) {
	if !c.IsValid(width, height) {
		return
	}
	tensor[s.getChannelIndex(channel, c.X, c.Y, width, height)] = 1.0
}

// GenerateActionMask creates a boolean mask of the directions that do not
// run role's head into a body cell on the next tick
func (s *Serializer) GenerateActionMask(obs game.Observation, role core.Role) []bool {
	own, opponent := obs.Agent(role)
	return rules.NewLegalMoveCalculator(obs.Width, obs.Height).GetLegalActionMask(own, opponent)
}

// ActionToIndex converts a direction to its action index, -1 if invalid
func (s *Serializer) ActionToIndex(d core.Direction) int32 {
	return int32(d.Index())
}

// IndexToAction converts an action index back to a direction
func (s *Serializer) IndexToAction(index int32) (core.Direction, error) {
	if !s.ValidateAction(index) {
		return core.Direction{}, fmt.Errorf("action index %d: %w", index, core.ErrInvalidDirection)
	}
	return core.Directions[index], nil
}

// ValidateAction checks if an action index is in range
func (s *Serializer) ValidateAction(index int32) bool {
	return index >= 0 && index < NumActions
}

// getChannelIndex calculates the index in the flattened tensor for a specific channel and position
func (s *Serializer) getChannelIndex(channel, x, y, width, height int) int {
	// Layout: [channel][height][width] in row-major order
	return channel*height*width + y*width + x
}

// GetTensorShape returns the shape of the tensor representation
func (s *Serializer) GetTensorShape(boardWidth, boardHeight int) []int32 {
	return []int32{NumChannels, int32(boardHeight), int32(boardWidth)}
}

// ExtractFeatures extracts additional scalar features from role's perspective
func (s *Serializer) ExtractFeatures(obs game.Observation, role core.Role) map[string]float32 {
	features := make(map[string]float32)
	own, opponent := obs.Agent(role)

	features["own_length"] = float32(len(own))
	features["opponent_length"] = float32(len(opponent))
	if len(opponent) > 0 {
		features["length_ratio"] = float32(len(own)) / float32(len(opponent))
	}
	features["tick"] = float32(obs.Tick)

	if len(own) > 0 {
		head := own[0]
		if obs.GrowthApple.Present {
			features["growth_apple_distance"] = float32(head.DistanceTo(obs.GrowthApple.Cell, obs.Width, obs.Height))
		}
		if obs.ShrinkApple.Present {
			features["shrink_apple_distance"] = float32(head.DistanceTo(obs.ShrinkApple.Cell, obs.Width, obs.Height))
		}
	}
	return features
}
