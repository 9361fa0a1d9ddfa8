package game

import "github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"

// Agent is one snake. Body[0] is the head; the body never becomes empty.
type Agent struct {
	Body      []core.Cell
	Direction core.Direction
	Role      core.Role
}

func newAgent(role core.Role, body []core.Cell, dir core.Direction) *Agent {
	return &Agent{
		Body:      core.CloneCells(body),
		Direction: dir,
		Role:      role,
	}
}

// Head returns the first body segment
func (a *Agent) Head() core.Cell {
	return a.Body[0]
}

// Len returns the body length
func (a *Agent) Len() int {
	return len(a.Body)
}

// Clone returns a deep copy whose body shares no memory with the original
func (a *Agent) Clone() Agent {
	return Agent{
		Body:      core.CloneCells(a.Body),
		Direction: a.Direction,
		Role:      a.Role,
	}
}

// advance prepends the wrapped next head
func (a *Agent) advance(width, height int) core.Cell {
	head := a.Head().Step(a.Direction, width, height)
	body := make([]core.Cell, 0, len(a.Body)+1)
	body = append(body, head)
	a.Body = append(body, a.Body...)
	return head
}

// popTail drops the last segment. A single-segment body is left alone.
func (a *Agent) popTail() bool {
	if len(a.Body) <= 1 {
		return false
	}
	a.Body = a.Body[:len(a.Body)-1]
	return true
}
