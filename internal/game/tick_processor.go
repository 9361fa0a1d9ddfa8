package game

import (
	"time"

	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/events"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/rules"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/states"
	"github.com/rs/zerolog"
)

// TickProcessor handles the orchestration of a single tick
type TickProcessor struct {
	engine *Engine
	logger zerolog.Logger
}

// NewTickProcessor creates a new tick processor
func NewTickProcessor(engine *Engine) *TickProcessor {
	return &TickProcessor{
		engine: engine,
		logger: engine.logger,
	}
}

// ProcessTick executes a complete tick. Moves must already be validated and
// the game must not be over.
func (tp *TickProcessor) ProcessTick(moves Moves) StepResult {
	e := tp.engine

	prev := tp.captureStateForExperience()

	e.tick++
	tickLogger := tp.logger.With().Int("tick", e.tick).Logger()
	tickLogger.Trace().
		Str("player_move", moves.Player.String()).
		Str("ai_move", moves.AI.String()).
		Msg("Starting tick")
	tickStart := time.Now()

	var info StepInfo
	tp.movePhase(moves)
	tp.collisionPhase(&info)
	tp.applePhase(&info, tickLogger)
	reward := tp.outcomePhase(&info, tickLogger)

	result := StepResult{
		Observation: e.Observation(),
		Reward:      reward,
		Done:        e.done,
		Info:        info,
	}

	tp.publishTickCompleted(moves, reward, time.Since(tickStart))
	tp.collectExperiences(prev, moves, result)
	if e.done {
		tp.finishGame(result.Observation, tickLogger)
	}
	return result
}

// captureStateForExperience captures the current state if experience collection is enabled
func (tp *TickProcessor) captureStateForExperience() Observation {
	if tp.engine.experienceCollector != nil {
		return tp.engine.Observation()
	}
	return Observation{}
}

// movePhase overwrites both directions then advances both heads
func (tp *TickProcessor) movePhase(moves Moves) {
	e := tp.engine
	for _, role := range core.Roles {
		agent := e.agents[role]
		agent.Direction = moves.For(role)
		agent.advance(e.width, e.height)
	}
}

// collisionPhase checks both snakes against the moved bodies
func (tp *TickProcessor) collisionPhase(info *StepInfo) {
	e := tp.engine
	player, ai := e.agents[core.RolePlayer], e.agents[core.RoleAI]

	info.PlayerDied, info.PlayerDeath = rules.CheckCollision(player.Body, ai.Body)
	info.AIDied, info.AIDeath = rules.CheckCollision(ai.Body, player.Body)

	if info.PlayerDied {
		e.eventBus.Publish(events.NewSnakeDiedEvent(e.gameID, e.tick, core.RolePlayer, info.PlayerDeath.String(), player.Head()))
	}
	if info.AIDied {
		e.eventBus.Publish(events.NewSnakeDiedEvent(e.gameID, e.tick, core.RoleAI, info.AIDeath.String(), ai.Head()))
	}
}

// applePhase resolves growth apples then shrink apples, player first each time.
// Apples are processed even on a tick where a snake died.
func (tp *TickProcessor) applePhase(info *StepInfo, logger zerolog.Logger) {
	e := tp.engine

	for _, role := range core.Roles {
		agent := e.agents[role]
		if !e.growthApple.At(agent.Head()) {
			agent.popTail()
			continue
		}
		eaten := e.growthApple.Cell
		e.growthApple = e.spawnApple()
		info.GrowthEaten = append(info.GrowthEaten, role)

		logger.Debug().
			Str("role", role.String()).
			Int("length", agent.Len()).
			Str("respawned", e.growthApple.String()).
			Msg("Growth apple eaten")
		e.eventBus.Publish(events.NewAppleEatenEvent(e.gameID, e.tick, role, core.AppleGrowth, eaten, e.growthApple))
	}

	for _, role := range core.Roles {
		agent := e.agents[role]
		if !e.shrinkApple.At(agent.Head()) {
			continue
		}
		eaten := e.shrinkApple.Cell
		opponent := e.agents[role.Opponent()]
		if opponent.popTail() {
			e.eventBus.Publish(events.NewSnakeShrunkEvent(e.gameID, e.tick, opponent.Role, opponent.Len()))
		}
		e.shrinkApple = e.spawnApple(appleCells(e.growthApple)...)
		info.ShrinkEaten = append(info.ShrinkEaten, role)

		logger.Debug().
			Str("role", role.String()).
			Int("opponent_length", opponent.Len()).
			Str("respawned", e.shrinkApple.String()).
			Msg("Shrink apple eaten")
		e.eventBus.Publish(events.NewAppleEatenEvent(e.gameID, e.tick, role, core.AppleShrink, eaten, e.shrinkApple))
	}
}

// outcomePhase decides whether the game is over and returns the tick reward
func (tp *TickProcessor) outcomePhase(info *StepInfo, logger zerolog.Logger) int {
	e := tp.engine
	over, winner := e.winCondition.CheckGameOver(rules.Outcome{
		PlayerDied: info.PlayerDied,
		AIDied:     info.AIDied,
		PlayerLen:  e.agents[core.RolePlayer].Len(),
		AILen:      e.agents[core.RoleAI].Len(),
	})
	if over {
		e.done = true
		e.winner = winner
		e.transition(states.PhaseEnded, "winner "+winner.String())
		logger.Info().Str("winner", winner.String()).Msg("Game over")
	}
	info.Winner = e.winner
	return rules.RewardFor(e.winner)
}

// collectExperiences forwards the transition if experience collection is enabled
func (tp *TickProcessor) collectExperiences(prev Observation, moves Moves, result StepResult) {
	if tp.engine.experienceCollector == nil {
		return
	}
	result.Observation = result.Observation.Clone()
	tp.engine.experienceCollector.OnStateTransition(prev, moves, result)
}

func (tp *TickProcessor) publishTickCompleted(moves Moves, reward int, processed time.Duration) {
	e := tp.engine
	e.eventBus.Publish(events.NewTickCompletedEvent(
		e.gameID,
		e.tick,
		moves.Player,
		moves.AI,
		e.agents[core.RolePlayer].Len(),
		e.agents[core.RoleAI].Len(),
		reward,
		processed,
	))
}

func (tp *TickProcessor) finishGame(final Observation, logger zerolog.Logger) {
	e := tp.engine
	duration := time.Since(e.started)
	e.eventBus.Publish(events.NewGameEndedEvent(
		e.gameID,
		e.winner,
		duration,
		e.tick,
		e.agents[core.RolePlayer].Len(),
		e.agents[core.RoleAI].Len(),
	))
	if e.experienceCollector != nil {
		e.experienceCollector.OnGameEnd(final.Clone())
	}
	logger.Debug().Dur("duration", duration).Msg("Episode finished")
}
