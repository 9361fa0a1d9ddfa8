package experience

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"
	"github.com/rs/zerolog"
)

// SimpleCollector implements a basic in-memory experience collector. Each
// transition yields one experience per snake.
type SimpleCollector struct {
	experiences []Experience
	mu          sync.Mutex
	maxSize     int
	gameID      string
	episode     int
	rewards     *RewardConfig
	serializer  *Serializer
	logger      zerolog.Logger
}

// NewSimpleCollector creates a new simple experience collector. A nil
// reward config uses DefaultRewardConfig.
func NewSimpleCollector(maxSize int, rewards *RewardConfig, logger zerolog.Logger) *SimpleCollector {
	if rewards == nil {
		rewards = DefaultRewardConfig()
	}
	if maxSize < 0 {
		maxSize = 0
	}
	return &SimpleCollector{
		experiences: make([]Experience, 0, maxSize),
		maxSize:     maxSize,
		rewards:     rewards,
		serializer:  NewSerializer(),
		logger:      logger.With().Str("component", "experience_collector").Logger(),
	}
}

// OnEpisodeStart records which game and episode the next transitions belong to
func (c *SimpleCollector) OnEpisodeStart(info game.EpisodeInfo, initial game.Observation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gameID = info.GameID
	c.episode = info.Episode
}

// OnStateTransition collects experience from a state transition
func (c *SimpleCollector) OnStateTransition(prev game.Observation, moves game.Moves, result game.StepResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	curr := result.Observation
	for _, role := range core.Roles {
		// Skip if buffer is full
		if len(c.experiences) >= c.maxSize {
			c.logger.Warn().
				Int("buffer_size", len(c.experiences)).
				Int("max_size", c.maxSize).
				Msg("Experience buffer full, dropping experience")
			return
		}

		expID := uuid.New().String()
		reward := CalculateRewardWithConfig(prev, curr, role, c.rewards)

		exp := Experience{
			ExperienceID: expID,
			GameID:       c.gameID,
			Episode:      c.episode,
			Role:         role,
			Tick:         curr.Tick,
			State: TensorState{
				Shape: c.serializer.GetTensorShape(prev.Width, prev.Height),
				Data:  c.serializer.StateToTensor(prev, role),
			},
			Action: c.serializer.ActionToIndex(moves.For(role)),
			Reward: reward,
			NextState: TensorState{
				Shape: c.serializer.GetTensorShape(curr.Width, curr.Height),
				Data:  c.serializer.StateToTensor(curr, role),
			},
			Done:        result.Done,
			ActionMask:  c.serializer.GenerateActionMask(prev, role),
			CollectedAt: time.Now(),
			Metadata: map[string]string{
				"collector_version": "1.0.0",
				"episode":           strconv.Itoa(c.episode),
			},
		}
		c.experiences = append(c.experiences, exp)

		c.logger.Debug().
			Str("experience_id", expID).
			Str("role", role.String()).
			Int("tick", curr.Tick).
			Float32("reward", reward).
			Bool("done", result.Done).
			Msg("Collected experience")
	}
}

// OnGameEnd handles terminal states
func (c *SimpleCollector) OnGameEnd(final game.Observation) {
	c.logger.Info().
		Str("game_id", c.gameID).
		Int("episode", c.episode).
		Int("total_experiences", c.GetExperienceCount()).
		Str("winner", final.Winner.String()).
		Int("final_tick", final.Tick).
		Msg("Game ended, finalizing experience collection")
}

// GetExperiences returns a copy of all collected experiences
func (c *SimpleCollector) GetExperiences() []Experience {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]Experience, len(c.experiences))
	copy(result, c.experiences)
	return result
}

// GetExperienceCount returns the current number of experiences
func (c *SimpleCollector) GetExperienceCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.experiences)
}

// Clear removes all experiences from the buffer
func (c *SimpleCollector) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.experiences = c.experiences[:0]
}

// GetLatestExperiences returns the n most recent experiences
func (c *SimpleCollector) GetLatestExperiences(n int) []Experience {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n > len(c.experiences) {
		n = len(c.experiences)
	}
	if n < 0 {
		n = 0
	}

	start := len(c.experiences) - n
	result := make([]Experience, n)
	copy(result, c.experiences[start:])
	return result
}
