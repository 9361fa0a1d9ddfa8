package game

import (
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/rules"
)

// Observation is a snapshot of the full game state. Every Observation handed
// out by the engine is a deep copy and is never mutated afterwards.
type Observation struct {
	Player      []core.Cell
	AI          []core.Cell
	GrowthApple core.Apple
	ShrinkApple core.Apple
	Done        bool
	Winner      core.Winner
	Tick        int
	Width       int
	Height      int
}

// Body returns the body of the snake with the given role
func (o Observation) Body(role core.Role) []core.Cell {
	if role == core.RoleAI {
		return o.AI
	}
	return o.Player
}

// Agent returns the body of role as own and the other snake as opponent
func (o Observation) Agent(role core.Role) (own, opponent []core.Cell) {
	return o.Body(role), o.Body(role.Opponent())
}

// Lengths returns (player length, AI length)
func (o Observation) Lengths() (int, int) {
	return len(o.Player), len(o.AI)
}

// Clone returns a deep copy
func (o Observation) Clone() Observation {
	o.Player = core.CloneCells(o.Player)
	o.AI = core.CloneCells(o.AI)
	return o
}

// StepInfo describes what happened during a tick. It is the zero value for
// a Step call made after the game ended.
type StepInfo struct {
	Winner      core.Winner
	PlayerDied  bool
	AIDied      bool
	PlayerDeath rules.DeathCause
	AIDeath     rules.DeathCause
	GrowthEaten []core.Role
	ShrinkEaten []core.Role
}

// Clone returns a copy whose eaten-apple slices share no memory with i
func (i StepInfo) Clone() StepInfo {
	out := i
	if i.GrowthEaten != nil {
		out.GrowthEaten = append([]core.Role(nil), i.GrowthEaten...)
	}
	if i.ShrinkEaten != nil {
		out.ShrinkEaten = append([]core.Role(nil), i.ShrinkEaten...)
	}
	return out
}

// Clone returns a deep copy of the result
func (r StepResult) Clone() StepResult {
	out := r
	out.Observation = r.Observation.Clone()
	out.Info = r.Info.Clone()
	return out
}

// StepResult is what Step returns for one tick
type StepResult struct {
	Observation Observation
	Reward      int
	Done        bool
	Info        StepInfo
}

// Moves pairs the directions submitted by both snakes for a tick
type Moves struct {
	Player core.Direction
	AI     core.Direction
}

// For returns the move submitted by role
func (m Moves) For(role core.Role) core.Direction {
	if role == core.RoleAI {
		return m.AI
	}
	return m.Player
}
