package experience

import (
	"time"

	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"
)

// TensorState is a flattened [channels, height, width] tensor
type TensorState struct {
	Shape []int32
	Data  []float32
}

// Experience is one (state, action, reward, next state) sample seen from a
// single snake's perspective
type Experience struct {
	ExperienceID string
	GameID       string
	Episode      int
	Role         core.Role
	Tick         int
	State        TensorState
	Action       int32
	Reward       float32
	NextState    TensorState
	Done         bool
	ActionMask   []bool
	CollectedAt  time.Time
	Metadata     map[string]string
}
