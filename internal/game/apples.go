package game

import "github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"

// spawnApple picks a cell uniformly among those not covered by either snake
// or by exclude. Free cells are enumerated column by column. Returns core.NoApple
// when the board is full.
func (e *Engine) spawnApple(exclude ...core.Cell) core.Apple {
	occupied := make(map[core.Cell]struct{}, e.agents[core.RolePlayer].Len()+e.agents[core.RoleAI].Len()+len(exclude))
	for _, agent := range e.agents {
		for _, c := range agent.Body {
			occupied[c] = struct{}{}
		}
	}
	for _, c := range exclude {
		occupied[c] = struct{}{}
	}

	free := make([]core.Cell, 0, e.width*e.height)
	for x := 0; x < e.width; x++ {
		for y := 0; y < e.height; y++ {
			c := core.NewCell(x, y)
			if _, taken := occupied[c]; !taken {
				free = append(free, c)
			}
		}
	}

	if len(free) == 0 {
		e.logger.Debug().Int("tick", e.tick).Msg("No free cell for apple")
		return core.NoApple
	}
	return core.AppleAt(free[e.rng.Intn(len(free))])
}

// appleCells returns the cell of a present apple, or nothing
func appleCells(a core.Apple) []core.Cell {
	if !a.Present {
		return nil
	}
	return []core.Cell{a.Cell}
}
