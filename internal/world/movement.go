package world

import (
	"time"

	"rookhaven/server/internal/grid"
	"rookhaven/server/internal/state"
)

// SetMoveDirection replaces the player's behavior with direction-driven
// movement. A zero vector returns the player to idle. Components are clamped
// to unit steps.
func (w *World) SetMoveDirection(playerID string, dx, dy int) bool {
	p, ok := w.players[playerID]
	if !ok {
		return false
	}
	dx = clampStep(dx)
	dy = clampStep(dy)
	if dx == 0 && dy == 0 {
		p.Behavior = state.Idle()
		return true
	}
	p.Behavior = state.MovingBy(dx, dy)
	return true
}

// SetMoveTarget paths the player to an exact tile. Fails with a status line
// when the tile is unwalkable or unreachable; the ring search is only for
// approach-style movement, an exact move must land exactly.
func (w *World) SetMoveTarget(playerID string, x, y int) bool {
	p, ok := w.players[playerID]
	if !ok {
		return false
	}
	goal := grid.Point{X: x, Y: y}
	path := w.grid.FindPath(p.Pos, goal)
	if path == nil {
		p.SetStatus("You can't reach that.")
		return false
	}
	p.Behavior = state.PathingTo(path)
	return true
}

// StopAction returns the player to idle, abandoning any movement,
// interaction, or combat intent.
func (w *World) StopAction(playerID string) bool {
	p, ok := w.players[playerID]
	if !ok {
		return false
	}
	p.Behavior = state.Idle()
	return true
}

func clampStep(v int) int {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// advanceMovement performs due steps for direction- and path-driven movement.
// Interaction and combat approaches run through their own processors.
func (w *World) advanceMovement(p *state.Player, now time.Time) {
	switch p.Behavior.Kind {
	case state.BehaviorMoving:
		if now.Before(p.NextMoveAt) {
			return
		}
		next := grid.Point{X: p.Pos.X + p.Behavior.DX, Y: p.Pos.Y + p.Behavior.DY}
		if !w.stepAllowed(p.Pos, next) {
			return
		}
		w.stepPlayer(p, next, now)
	case state.BehaviorPathing:
		if len(p.Behavior.Path) == 0 {
			p.Behavior = state.Idle()
			return
		}
		if now.Before(p.NextMoveAt) {
			return
		}
		next := p.Behavior.Path[0]
		if !w.stepAllowed(p.Pos, next) {
			// The queued step went stale; recompute from here, abandon on
			// failure rather than retrying forever.
			goal := p.Behavior.Path[len(p.Behavior.Path)-1]
			path := w.grid.FindPath(p.Pos, goal)
			if path == nil || len(path) == 0 {
				p.Behavior = state.Idle()
				return
			}
			p.Behavior.Path = path
			next = path[0]
			if !w.stepAllowed(p.Pos, next) {
				p.Behavior = state.Idle()
				return
			}
		}
		p.Behavior.Path = p.Behavior.Path[1:]
		w.stepPlayer(p, next, now)
		if len(p.Behavior.Path) == 0 {
			p.Behavior = state.Idle()
		}
	}
}

// stepAllowed validates one step: the destination must be walkable and a
// diagonal must not cut a blocked corner.
func (w *World) stepAllowed(from, to grid.Point) bool {
	if !w.grid.Walkable(to) {
		return false
	}
	if grid.IsDiagonal(from, to) {
		if !w.grid.Walkable(grid.Point{X: to.X, Y: from.Y}) || !w.grid.Walkable(grid.Point{X: from.X, Y: to.Y}) {
			return false
		}
	}
	return true
}

// stepPlayer commits one step and schedules the next movement deadline from
// the step's own duration.
func (w *World) stepPlayer(p *state.Player, next grid.Point, now time.Time) {
	diagonal := grid.IsDiagonal(p.Pos, next)
	p.MoveTo(next)
	p.NextMoveAt = now.Add(w.stepDuration(diagonal))
}

// stepDuration returns how long one step takes.
func (w *World) stepDuration(diagonal bool) time.Duration {
	if !diagonal {
		return w.cfg.StepInterval
	}
	return time.Duration(float64(w.cfg.StepInterval) * w.cfg.DiagonalStepFactor)
}

// approachPath finds a route next to a target tile: first the direct
// adjacent-goal search, then the widening ring search so a crowded target
// still gets a nearby standing spot.
func (w *World) approachPath(from, target grid.Point) []grid.Point {
	if path := w.grid.FindPathAdjacent(from, target); path != nil {
		return path
	}
	return w.grid.FindPathNear(from, target, w.cfg.PathSearchRadius)
}

// followPath advances a player along the approach leg stored in its behavior,
// used by the interaction and combat processors. Returns false when the path
// could not be followed.
func (w *World) followPath(p *state.Player, now time.Time, goal grid.Point) bool {
	if len(p.Behavior.Path) == 0 {
		return true
	}
	if now.Before(p.NextMoveAt) {
		return true
	}
	next := p.Behavior.Path[0]
	if !w.stepAllowed(p.Pos, next) {
		path := w.grid.FindPathAdjacent(p.Pos, goal)
		if path == nil {
			return false
		}
		p.Behavior.Path = path
		if len(path) == 0 {
			return true
		}
		next = path[0]
		if !w.stepAllowed(p.Pos, next) {
			return false
		}
	}
	p.Behavior.Path = p.Behavior.Path[1:]
	w.stepPlayer(p, next, now)
	return true
}
