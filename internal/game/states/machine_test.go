package states

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/events"
)

func TestGamePhase_String(t *testing.T) {
	tests := []struct {
		phase    GamePhase
		expected string
	}{
		{PhaseInitializing, "Initializing"},
		{PhaseRunning, "Running"},
		{PhaseEnded, "Ended"},
		{PhaseReset, "Reset"},
		{GamePhase(999), "Unknown(999)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.phase.String())
			if tt.phase <= PhaseReset {
				assert.Equal(t, tt.phase, ParsePhase(tt.expected))
			}
		})
	}
	assert.Equal(t, PhaseInitializing, ParsePhase("Lobby"))
}

func TestGamePhase_Properties(t *testing.T) {
	assert.True(t, PhaseEnded.IsTerminal())
	assert.False(t, PhaseRunning.IsTerminal())
	assert.False(t, PhaseReset.IsTerminal())

	assert.True(t, PhaseRunning.CanReceiveActions())
	assert.False(t, PhaseInitializing.CanReceiveActions())
	assert.False(t, PhaseEnded.CanReceiveActions())
	assert.False(t, PhaseReset.CanReceiveActions())
}

func TestGamePhase_Transitions(t *testing.T) {
	tests := []struct {
		from    GamePhase
		allowed []GamePhase
	}{
		{PhaseInitializing, []GamePhase{PhaseReset}},
		{PhaseRunning, []GamePhase{PhaseEnded, PhaseReset}},
		{PhaseEnded, []GamePhase{PhaseReset}},
		{PhaseReset, []GamePhase{PhaseRunning}},
	}

	for _, tt := range tests {
		t.Run(tt.from.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.AllowedTransitions())
			for _, target := range []GamePhase{PhaseInitializing, PhaseRunning, PhaseEnded, PhaseReset} {
				assert.Equal(t, contains(tt.allowed, target), tt.from.CanTransitionTo(target),
					"%s -> %s", tt.from, target)
			}
		})
	}
	assert.Empty(t, GamePhase(42).AllowedTransitions())
}

func contains(phases []GamePhase, p GamePhase) bool {
	for _, q := range phases {
		if q == p {
			return true
		}
	}
	return false
}

func TestStateMachine_EpisodeLifecycle(t *testing.T) {
	bus := events.NewEventBusWithLogger(zerolog.Nop())
	var changes []*events.PhaseChangedEvent
	bus.SubscribeFunc(events.TypePhaseChanged, func(e events.Event) {
		changes = append(changes, e.(*events.PhaseChangedEvent))
	})

	sm := NewStateMachine("g1", bus, zerolog.Nop())
	assert.Equal(t, PhaseInitializing, sm.CurrentPhase())
	assert.False(t, sm.CanTransitionTo(PhaseRunning))

	require.NoError(t, sm.TransitionTo(PhaseReset, 0, "reset requested"))
	require.NoError(t, sm.TransitionTo(PhaseRunning, 0, "episode started"))
	require.NoError(t, sm.TransitionTo(PhaseEnded, 12, "winner ai"))
	assert.Equal(t, PhaseEnded, sm.CurrentPhase())

	err := sm.TransitionTo(PhaseRunning, 12, "step after end")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid transition from Ended to Running")
	assert.Equal(t, PhaseEnded, sm.CurrentPhase())

	history := sm.GetHistory()
	require.Len(t, history, 3)
	assert.Equal(t, PhaseRunning, history[2].From)
	assert.Equal(t, PhaseEnded, history[2].To)
	assert.Equal(t, 12, history[2].Tick)
	assert.Equal(t, "winner ai", history[2].Reason)

	require.Len(t, changes, 3)
	assert.Equal(t, "g1", changes[2].GameID())
	assert.Equal(t, "Running", changes[2].FromPhase)
	assert.Equal(t, "Ended", changes[2].ToPhase)
	assert.Equal(t, 12, changes[2].Metadata.Tick)
}

func TestStateMachine_HistoryIsBounded(t *testing.T) {
	sm := NewStateMachine("g1", nil, zerolog.Nop())
	sm.maxHistorySize = 4

	require.NoError(t, sm.TransitionTo(PhaseReset, 0, "first"))
	for i := 0; i < 5; i++ {
		require.NoError(t, sm.TransitionTo(PhaseRunning, 0, "start"))
		require.NoError(t, sm.TransitionTo(PhaseReset, i, "abandon"))
	}

	history := sm.GetHistory()
	require.Len(t, history, 4)
	assert.Equal(t, PhaseReset, history[3].To)
	assert.Equal(t, 4, history[3].Tick)

	// Mutating the copy leaves the machine untouched.
	history[0].Reason = "changed"
	assert.NotEqual(t, "changed", sm.GetHistory()[0].Reason)
}
