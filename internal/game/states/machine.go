package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/events"
)

// Transition represents a state transition in the history
type Transition struct {
	From      GamePhase
	To        GamePhase
	Tick      int
	Timestamp time.Time
	Reason    string
}

// StateMachine tracks the episode lifecycle of one engine
type StateMachine struct {
	mu             sync.RWMutex
	gameID         string
	currentPhase   GamePhase
	history        []Transition
	maxHistorySize int
	publisher      events.Publisher
	logger         zerolog.Logger
}

// NewStateMachine creates a state machine in PhaseInitializing. publisher
// may be nil.
func NewStateMachine(gameID string, publisher events.Publisher, logger zerolog.Logger) *StateMachine {
	return &StateMachine{
		gameID:         gameID,
		currentPhase:   PhaseInitializing,
		history:        make([]Transition, 0, 16),
		maxHistorySize: 1000,
		publisher:      publisher,
		logger:         logger.With().Str("component", "StateMachine").Logger(),
	}
}

// CurrentPhase returns the current game phase
func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase
}

// TransitionTo attempts to transition to the specified phase
func (sm *StateMachine) TransitionTo(targetPhase GamePhase, tick int, reason string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.currentPhase.CanTransitionTo(targetPhase) {
		return fmt.Errorf("invalid transition from %s to %s", sm.currentPhase, targetPhase)
	}

	previousPhase := sm.currentPhase
	sm.currentPhase = targetPhase
	sm.addToHistory(Transition{
		From:      previousPhase,
		To:        targetPhase,
		Tick:      tick,
		Timestamp: time.Now(),
		Reason:    reason,
	})

	if sm.publisher != nil {
		sm.publisher.Publish(events.NewPhaseChangedEvent(
			sm.gameID,
			tick,
			previousPhase.String(),
			targetPhase.String(),
			reason,
		))
	}

	sm.logger.Debug().
		Str("from_phase", previousPhase.String()).
		Str("to_phase", targetPhase.String()).
		Int("tick", tick).
		Str("reason", reason).
		Msg("State transition completed")

	return nil
}

// addToHistory adds a transition to the history, maintaining max size
func (sm *StateMachine) addToHistory(transition Transition) {
	sm.history = append(sm.history, transition)

	if len(sm.history) > sm.maxHistorySize {
		// Keep the most recent entries
		sm.history = sm.history[len(sm.history)-sm.maxHistorySize:]
	}
}

// GetHistory returns a copy of the transition history
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

// CanTransitionTo checks if a transition to the target phase is allowed
func (sm *StateMachine) CanTransitionTo(targetPhase GamePhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase.CanTransitionTo(targetPhase)
}
