// Package policy contains scripted direction choosers used to drive both
// snakes in batch rollouts.
package policy

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/rules"
)

const (
	NameRandom = "random"
	NameGreedy = "greedy"
)

// Policy picks the next direction for role. heading is the snake's current
// direction and is returned when no safe direction exists.
type Policy interface {
	Name() string
	Choose(obs game.Observation, role core.Role, heading core.Direction) core.Direction
}

// New builds the policy registered under name
func New(name string, rng *rand.Rand) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameRandom:
		return NewRandom(rng), nil
	case NameGreedy:
		return NewGreedy(rng), nil
	}
	return nil, fmt.Errorf("unknown policy %q (want %s or %s)", name, NameRandom, NameGreedy)
}

func safeDirections(obs game.Observation, role core.Role) []core.Direction {
	own, opponent := obs.Agent(role)
	return rules.NewLegalMoveCalculator(obs.Width, obs.Height).SafeDirections(own, opponent)
}

// Random picks uniformly among safe directions
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random policy drawing from rng
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (p *Random) Name() string { return NameRandom }

func (p *Random) Choose(obs game.Observation, role core.Role, heading core.Direction) core.Direction {
	safe := safeDirections(obs, role)
	if len(safe) == 0 {
		return heading
	}
	return safe[p.rng.Intn(len(safe))]
}

// Greedy heads for the growth apple by toroidal distance, breaking ties at
// random. Without a growth apple it behaves like Random.
type Greedy struct {
	rng *rand.Rand
}

// NewGreedy creates a greedy policy drawing ties from rng
func NewGreedy(rng *rand.Rand) *Greedy {
	return &Greedy{rng: rng}
}

func (p *Greedy) Name() string { return NameGreedy }

func (p *Greedy) Choose(obs game.Observation, role core.Role, heading core.Direction) core.Direction {
	safe := safeDirections(obs, role)
	if len(safe) == 0 {
		return heading
	}
	own := obs.Body(role)
	if !obs.GrowthApple.Present || len(own) == 0 {
		return safe[p.rng.Intn(len(safe))]
	}

	head := own[0]
	best := make([]core.Direction, 0, len(safe))
	bestDist := -1
	for _, d := range safe {
		dist := head.Step(d, obs.Width, obs.Height).DistanceTo(obs.GrowthApple.Cell, obs.Width, obs.Height)
		switch {
		case bestDist < 0 || dist < bestDist:
			bestDist = dist
			best = append(best[:0], d)
		case dist == bestDist:
			best = append(best, d)
		}
	}
	return best[p.rng.Intn(len(best))]
}
