package events

import (
	"time"

	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"
)

// Event type constants
const (
	TypeGameStarted   = "game.started"
	TypeGameEnded     = "game.ended"
	TypeTickCompleted = "tick.completed"
	TypeAppleEaten    = "apple.eaten"
	TypeSnakeShrunk   = "snake.shrunk"
	TypeSnakeDied     = "snake.died"
	TypePhaseChanged  = "phase.changed"
)

// GameStartedEvent is published on every reset
type GameStartedEvent struct {
	BaseEvent
	Metadata    EventMetadata
	Width       int
	Height      int
	Seed        int64
	Seeded      bool
	GrowthApple core.Apple
	ShrinkApple core.Apple
}

// NewGameStartedEvent creates a new GameStartedEvent
func NewGameStartedEvent(gameID string, width, height int, seed int64, seeded bool, growth, shrink core.Apple) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:   newBase(TypeGameStarted, gameID),
		Width:       width,
		Height:      height,
		Seed:        seed,
		Seeded:      seeded,
		GrowthApple: growth,
		ShrinkApple: shrink,
	}
}

// GameEndedEvent is published on the tick that decides the game
type GameEndedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Winner    core.Winner
	Duration  time.Duration
	FinalTick int
	PlayerLen int
	AILen     int
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, winner core.Winner, duration time.Duration, finalTick, playerLen, aiLen int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Metadata:  EventMetadata{Tick: finalTick},
		Winner:    winner,
		Duration:  duration,
		FinalTick: finalTick,
		PlayerLen: playerLen,
		AILen:     aiLen,
	}
}

// TickCompletedEvent is published at the end of every live tick
type TickCompletedEvent struct {
	BaseEvent
	Metadata      EventMetadata
	Tick          int
	PlayerMove    core.Direction
	AIMove        core.Direction
	PlayerLen     int
	AILen         int
	Reward        int
	ProcessedTime time.Duration
}

// NewTickCompletedEvent creates a new TickCompletedEvent
func NewTickCompletedEvent(gameID string, tick int, playerMove, aiMove core.Direction, playerLen, aiLen, reward int, processed time.Duration) *TickCompletedEvent {
	return &TickCompletedEvent{
		BaseEvent:     newBase(TypeTickCompleted, gameID),
		Metadata:      EventMetadata{Tick: tick},
		Tick:          tick,
		PlayerMove:    playerMove,
		AIMove:        aiMove,
		PlayerLen:     playerLen,
		AILen:         aiLen,
		Reward:        reward,
		ProcessedTime: processed,
	}
}

// AppleEatenEvent is published when a snake's head lands on an apple
type AppleEatenEvent struct {
	BaseEvent
	Metadata    EventMetadata
	Role        core.Role
	Kind        core.AppleKind
	At          core.Cell
	RespawnedAt core.Apple
}

// NewAppleEatenEvent creates a new AppleEatenEvent
func NewAppleEatenEvent(gameID string, tick int, role core.Role, kind core.AppleKind, at core.Cell, respawned core.Apple) *AppleEatenEvent {
	return &AppleEatenEvent{
		BaseEvent:   newBase(TypeAppleEaten, gameID),
		Metadata:    EventMetadata{Tick: tick},
		Role:        role,
		Kind:        kind,
		At:          at,
		RespawnedAt: respawned,
	}
}

// SnakeShrunkEvent is published when a shrink apple removes a tail segment
type SnakeShrunkEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Role      core.Role
	NewLength int
}

// NewSnakeShrunkEvent creates a new SnakeShrunkEvent
func NewSnakeShrunkEvent(gameID string, tick int, role core.Role, newLength int) *SnakeShrunkEvent {
	return &SnakeShrunkEvent{
		BaseEvent: newBase(TypeSnakeShrunk, gameID),
		Metadata:  EventMetadata{Tick: tick},
		Role:      role,
		NewLength: newLength,
	}
}

// SnakeDiedEvent is published for each snake that collides on a tick
type SnakeDiedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Role     core.Role
	Cause    string
	At       core.Cell
}

// NewSnakeDiedEvent creates a new SnakeDiedEvent
func NewSnakeDiedEvent(gameID string, tick int, role core.Role, cause string, at core.Cell) *SnakeDiedEvent {
	return &SnakeDiedEvent{
		BaseEvent: newBase(TypeSnakeDied, gameID),
		Metadata:  EventMetadata{Tick: tick},
		Role:      role,
		Cause:     cause,
		At:        at,
	}
}

// PhaseChangedEvent is published on every episode lifecycle transition
type PhaseChangedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewPhaseChangedEvent creates a new PhaseChangedEvent
func NewPhaseChangedEvent(gameID string, tick int, from, to, reason string) *PhaseChangedEvent {
	return &PhaseChangedEvent{
		BaseEvent: newBase(TypePhaseChanged, gameID),
		Metadata:  EventMetadata{Tick: tick},
		FromPhase: from,
		ToPhase:   to,
		Reason:    reason,
	}
}
