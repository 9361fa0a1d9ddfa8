package game

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/events"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/rules"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/states"
	"github.com/rs/zerolog"
)

var (
	playerStartBody = []core.Cell{{X: 8, Y: 8}, {X: 7, Y: 8}, {X: 6, Y: 8}, {X: 5, Y: 8}}
	aiStartBody     = []core.Cell{{X: 4, Y: 4}, {X: 3, Y: 4}, {X: 2, Y: 4}, {X: 1, Y: 4}}
)

// GameConfig holds configuration for a new game
type GameConfig struct {
	Width  int
	Height int
	// Seed makes the engine deterministic. A nil seed is taken from the clock.
	Seed                *int64
	GameID              string
	Logger              zerolog.Logger
	EventBus            events.Bus
	ExperienceCollector ExperienceCollector
}

// Engine runs a two-snake duel on a toroidal grid. It is not safe for
// concurrent use.
type Engine struct {
	width  int
	height int

	agents      [2]*Agent
	growthApple core.Apple
	shrinkApple core.Apple
	tick        int
	done        bool
	winner      core.Winner

	rng     *rand.Rand
	seed    int64
	seeded  bool
	episode int
	gameID  string
	started time.Time

	logger              zerolog.Logger
	eventBus            events.Bus
	winCondition        *rules.WinConditionChecker
	experienceCollector ExperienceCollector
	tickProcessor       *TickProcessor
	phases              *states.StateMachine
}

// NewEngine creates an engine and performs the initial reset
func NewEngine(cfg GameConfig) *Engine {
	if cfg.Width < 1 {
		cfg.Width = 1
	}
	if cfg.Height < 1 {
		cfg.Height = 1
	}
	if cfg.GameID == "" {
		cfg.GameID = uuid.New().String()
	}

	logger := cfg.Logger.With().Str("component", "SnakeEngine").Str("game_id", cfg.GameID).Logger()

	bus := cfg.EventBus
	if bus == nil {
		bus = events.NewEventBusWithLogger(cfg.Logger)
	}

	e := &Engine{
		width:               cfg.Width,
		height:              cfg.Height,
		gameID:              cfg.GameID,
		logger:              logger,
		eventBus:            bus,
		winCondition:        rules.NewWinConditionChecker(cfg.Logger),
		experienceCollector: cfg.ExperienceCollector,
	}
	e.tickProcessor = NewTickProcessor(e)
	e.phases = states.NewStateMachine(cfg.GameID, bus, cfg.Logger)

	if cfg.Seed != nil {
		e.seedRNG(*cfg.Seed, true)
	} else {
		logger.Debug().Msg("No seed provided, seeding from clock")
		e.seedRNG(time.Now().UnixNano(), false)
	}

	if e.experienceCollector != nil {
		logger.Info().Msg("Experience collection enabled")
	}

	e.reset()

	logger.Info().
		Int("width", e.width).
		Int("height", e.height).
		Bool("seeded", e.seeded).
		Msg("Engine created successfully")
	return e
}

func (e *Engine) seedRNG(seed int64, seeded bool) {
	e.rng = rand.New(rand.NewSource(seed))
	e.seed = seed
	e.seeded = seeded
}

// Reset starts a new episode without reseeding and returns its first observation
func (e *Engine) Reset() Observation {
	return e.reset()
}

// ResetWithSeed reseeds the engine's RNG and starts a new episode
func (e *Engine) ResetWithSeed(seed int64) Observation {
	e.seedRNG(seed, true)
	return e.reset()
}

func (e *Engine) reset() Observation {
	e.transition(states.PhaseReset, "reset requested")

	e.agents[core.RolePlayer] = newAgent(core.RolePlayer, e.wrapCells(playerStartBody), core.Right)
	e.agents[core.RoleAI] = newAgent(core.RoleAI, e.wrapCells(aiStartBody), core.Right)
	e.tick = 0
	e.done = false
	e.winner = core.WinnerNone
	e.episode++
	e.started = time.Now()

	e.growthApple = e.spawnApple()
	e.shrinkApple = e.spawnApple(appleCells(e.growthApple)...)

	e.logger.Debug().
		Int("episode", e.episode).
		Str("growth_apple", e.growthApple.String()).
		Str("shrink_apple", e.shrinkApple.String()).
		Msg("Episode reset")

	e.transition(states.PhaseRunning, "episode started")
	e.eventBus.Publish(events.NewGameStartedEvent(
		e.gameID, e.width, e.height, e.seed, e.seeded, e.growthApple, e.shrinkApple,
	))

	obs := e.Observation()
	if e.experienceCollector != nil {
		e.experienceCollector.OnEpisodeStart(e.episodeInfo(), obs.Clone())
	}
	return obs
}

// transition moves the lifecycle machine to target. Engine transitions are
// always legal, so a failure is logged rather than returned.
func (e *Engine) transition(target states.GamePhase, reason string) {
	if err := e.phases.TransitionTo(target, e.tick, reason); err != nil {
		e.logger.Error().Err(err).Str("to_phase", target.String()).Msg("Lifecycle transition failed")
	}
}

func (e *Engine) wrapCells(cells []core.Cell) []core.Cell {
	out := make([]core.Cell, len(cells))
	for i, c := range cells {
		out[i] = c.Wrap(e.width, e.height)
	}
	return out
}

func (e *Engine) episodeInfo() EpisodeInfo {
	return EpisodeInfo{
		GameID:  e.gameID,
		Episode: e.episode,
		Seed:    e.seed,
		Seeded:  e.seeded,
		Width:   e.width,
		Height:  e.height,
	}
}

// Step advances the game by one tick. After the game has ended Step is a
// no-op that returns the final observation with zero reward.
func (e *Engine) Step(playerDir, aiDir core.Direction) (StepResult, error) {
	if !e.phases.CurrentPhase().CanReceiveActions() {
		return StepResult{
			Observation: e.Observation(),
			Reward:      0,
			Done:        true,
		}, nil
	}

	moves := Moves{Player: playerDir, AI: aiDir}
	for _, role := range core.Roles {
		if err := moves.For(role).Validate(); err != nil {
			e.logger.Warn().
				Int("tick", e.tick).
				Str("role", role.String()).
				Int("dx", moves.For(role).DX).
				Int("dy", moves.For(role).DY).
				Msg("Rejected invalid direction")
			return StepResult{}, core.WrapRoleError(role, "direction", err)
		}
	}

	return e.tickProcessor.ProcessTick(moves), nil
}

// Observation returns a deep copy of the current state
func (e *Engine) Observation() Observation {
	return Observation{
		Player:      core.CloneCells(e.agents[core.RolePlayer].Body),
		AI:          core.CloneCells(e.agents[core.RoleAI].Body),
		GrowthApple: e.growthApple,
		ShrinkApple: e.shrinkApple,
		Done:        e.done,
		Winner:      e.winner,
		Tick:        e.tick,
		Width:       e.width,
		Height:      e.height,
	}
}

// Agent returns a copy of the snake with the given role
func (e *Engine) Agent(role core.Role) Agent {
	return e.agents[role].Clone()
}

// Tick returns the number of ticks processed in the current episode
func (e *Engine) Tick() int {
	return e.tick
}

// IsDone reports whether the current episode has ended
func (e *Engine) IsDone() bool {
	return e.done
}

// Phase returns the lifecycle phase of the current episode
func (e *Engine) Phase() states.GamePhase {
	return e.phases.CurrentPhase()
}

// PhaseHistory returns the lifecycle transitions recorded so far
func (e *Engine) PhaseHistory() []states.Transition {
	return e.phases.GetHistory()
}

// Winner returns the winner, WinnerNone while the game is running
func (e *Engine) Winner() core.Winner {
	return e.winner
}

// GameID returns the engine's game id
func (e *Engine) GameID() string {
	return e.gameID
}

// Episode returns the 1-based index of the current episode
func (e *Engine) Episode() int {
	return e.episode
}

// Size returns the grid dimensions
func (e *Engine) Size() (width, height int) {
	return e.width, e.height
}

// EventBus returns the bus the engine publishes to
func (e *Engine) EventBus() events.Bus {
	return e.eventBus
}
