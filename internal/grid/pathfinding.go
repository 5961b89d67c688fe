package grid

import "sort"

type neighborOffset struct {
	dx, dy   int
	diagonal bool
}

var neighborOffsets = [...]neighborOffset{
	{dx: 0, dy: -1},
	{dx: 1, dy: 0},
	{dx: 0, dy: 1},
	{dx: -1, dy: 0},
	{dx: 1, dy: -1, diagonal: true},
	{dx: 1, dy: 1, diagonal: true},
	{dx: -1, dy: 1, diagonal: true},
	{dx: -1, dy: -1, diagonal: true},
}

var cardinalOffsets = [...]Point{
	{X: 0, Y: -1},
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
}

// canCut reports whether a diagonal step from p by delta is permitted. Both
// orthogonally adjacent tiles must also be walkable so movers never squeeze
// through touching corners.
func (g *Grid) canCut(p Point, delta neighborOffset) bool {
	if !delta.diagonal {
		return true
	}
	horiz := Point{X: p.X + delta.dx, Y: p.Y}
	vert := Point{X: p.X, Y: p.Y + delta.dy}
	return g.Walkable(horiz) && g.Walkable(vert)
}

// IsDiagonal reports whether consecutive waypoints differ on both axes.
func IsDiagonal(from, to Point) bool {
	return from.X != to.X && from.Y != to.Y
}

// FindPath runs a breadth-first search from start to goal and returns the
// waypoint tiles excluding start. The result is empty (non-nil) when
// start == goal and nil when the goal is unwalkable or unreachable.
func (g *Grid) FindPath(start, goal Point) []Point {
	if start == goal {
		return []Point{}
	}
	if !g.Walkable(goal) {
		return nil
	}
	parents := map[Point]Point{start: start}
	queue := []Point{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == goal {
			return rebuild(parents, start, goal)
		}
		for _, delta := range neighborOffsets {
			next := Point{X: current.X + delta.dx, Y: current.Y + delta.dy}
			if _, seen := parents[next]; seen {
				continue
			}
			if !g.Walkable(next) {
				continue
			}
			if !g.canCut(current, delta) {
				continue
			}
			parents[next] = current
			queue = append(queue, next)
		}
	}
	return nil
}

func rebuild(parents map[Point]Point, start, goal Point) []Point {
	path := []Point{}
	for at := goal; at != start; at = parents[at] {
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// FindPathAdjacent paths to the best walkable tile orthogonally adjacent to
// target. Candidates are ranked by path length, tie-broken by Manhattan
// distance from start. Returns nil when no neighbor is reachable.
func (g *Grid) FindPathAdjacent(start, target Point) []Point {
	if Manhattan(start, target) == 1 {
		return []Point{}
	}
	var best []Point
	bestDist := 0
	for _, delta := range cardinalOffsets {
		candidate := Point{X: target.X + delta.X, Y: target.Y + delta.Y}
		if !g.Walkable(candidate) {
			continue
		}
		path := g.FindPath(start, candidate)
		if path == nil {
			continue
		}
		dist := Manhattan(start, candidate)
		if best == nil || len(path) < len(best) || (len(path) == len(best) && dist < bestDist) {
			best = path
			bestDist = dist
		}
	}
	return best
}

// FindPathNear locates the closest walkable, path-reachable tile to goal by
// scanning cell-perimeter rings of growing radius, then paths to it. Used when
// the literal goal and its neighbors are all unreachable. Returns nil when no
// tile within maxRadius can be reached.
func (g *Grid) FindPathNear(start, goal Point, maxRadius int) []Point {
	if path := g.FindPath(start, goal); path != nil {
		return path
	}
	for radius := 1; radius <= maxRadius; radius++ {
		candidates := g.ring(goal, radius)
		sort.Slice(candidates, func(i, j int) bool {
			di := Manhattan(candidates[i], goal)
			dj := Manhattan(candidates[j], goal)
			if di != dj {
				return di < dj
			}
			if candidates[i].Y != candidates[j].Y {
				return candidates[i].Y < candidates[j].Y
			}
			return candidates[i].X < candidates[j].X
		})
		for _, candidate := range candidates {
			if !g.Walkable(candidate) {
				continue
			}
			if path := g.FindPath(start, candidate); path != nil {
				return path
			}
		}
	}
	return nil
}

// ring collects the tiles on the square perimeter at the given radius.
func (g *Grid) ring(center Point, radius int) []Point {
	if radius <= 0 {
		return []Point{center}
	}
	tiles := make([]Point, 0, 8*radius)
	for dx := -radius; dx <= radius; dx++ {
		tiles = append(tiles, Point{X: center.X + dx, Y: center.Y - radius})
		tiles = append(tiles, Point{X: center.X + dx, Y: center.Y + radius})
	}
	for dy := -radius + 1; dy < radius; dy++ {
		tiles = append(tiles, Point{X: center.X - radius, Y: center.Y + dy})
		tiles = append(tiles, Point{X: center.X + radius, Y: center.Y + dy})
	}
	return tiles
}
