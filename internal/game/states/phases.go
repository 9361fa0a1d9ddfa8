package states

import "fmt"

// GamePhase represents the lifecycle phase of an episode
type GamePhase int

const (
	// PhaseInitializing - Engine created, no episode dealt yet
	PhaseInitializing GamePhase = iota

	// PhaseRunning - Ticks are being processed
	PhaseRunning

	// PhaseEnded - A snake died, further steps are no-ops
	PhaseEnded

	// PhaseReset - Bodies and apples are being dealt for a new episode
	PhaseReset
)

// String returns the string representation of a GamePhase
func (p GamePhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseRunning:
		return "Running"
	case PhaseEnded:
		return "Ended"
	case PhaseReset:
		return "Reset"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a finished episode
func (p GamePhase) IsTerminal() bool {
	return p == PhaseEnded
}

// CanReceiveActions returns true if Step advances the game in this phase
func (p GamePhase) CanReceiveActions() bool {
	return p == PhaseRunning
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p GamePhase) AllowedTransitions() []GamePhase {
	switch p {
	case PhaseInitializing:
		return []GamePhase{PhaseReset}
	case PhaseRunning:
		// An episode can be abandoned mid-game, e.g. at a tick limit.
		return []GamePhase{PhaseEnded, PhaseReset}
	case PhaseEnded:
		return []GamePhase{PhaseReset}
	case PhaseReset:
		return []GamePhase{PhaseRunning}
	default:
		return []GamePhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p GamePhase) CanTransitionTo(target GamePhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a GamePhase
func ParsePhase(s string) GamePhase {
	switch s {
	case "Running":
		return PhaseRunning
	case "Ended":
		return PhaseEnded
	case "Reset":
		return PhaseReset
	default:
		return PhaseInitializing // Default to initializing for unknown phases
	}
}
