package grid

import "testing"

func newTestGrid() *Grid {
	return New(12, 12, 2)
}

func TestFindPathSameTileReturnsEmptyPath(t *testing.T) {
	g := newTestGrid()
	path := g.FindPath(Point{X: 4, Y: 4}, Point{X: 4, Y: 4})
	if path == nil {
		t.Fatalf("expected empty path for start == goal, got nil")
	}
	if len(path) != 0 {
		t.Fatalf("expected zero waypoints, got %d", len(path))
	}
}

func TestFindPathFailsWhenGoalUnwalkable(t *testing.T) {
	g := newTestGrid()
	if path := g.FindPath(Point{X: 4, Y: 4}, Point{X: 0, Y: 0}); path != nil {
		t.Fatalf("expected nil path into the water border, got %v", path)
	}

	g.Block(Point{X: 6, Y: 6})
	if path := g.FindPath(Point{X: 4, Y: 4}, Point{X: 6, Y: 6}); path != nil {
		t.Fatalf("expected nil path onto a blocked tile, got %v", path)
	}
}

func TestFindPathFailsWhenGoalUnreachable(t *testing.T) {
	g := newTestGrid()
	goal := Point{X: 8, Y: 8}
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			g.Block(Point{X: goal.X + dx, Y: goal.Y + dy})
		}
	}
	if path := g.FindPath(Point{X: 3, Y: 3}, goal); path != nil {
		t.Fatalf("expected nil path to a boxed-in goal, got %v", path)
	}
}

func TestFindPathRespectsDiagonalCornerRule(t *testing.T) {
	g := newTestGrid()
	for y := 2; y < 10; y++ {
		if y == 5 {
			continue
		}
		g.Block(Point{X: 5, Y: y})
	}
	// The only opening in the wall is (5,5); a diagonal cut past its blocked
	// neighbors must never appear in the path.
	path := g.FindPath(Point{X: 3, Y: 5}, Point{X: 7, Y: 5})
	if path == nil {
		t.Fatalf("expected a path through the gap")
	}
	prev := Point{X: 3, Y: 5}
	for _, step := range path {
		if Manhattan(prev, step) > 2 || (Manhattan(prev, step) == 2 && !IsDiagonal(prev, step)) {
			t.Fatalf("non-adjacent step from %v to %v", prev, step)
		}
		if IsDiagonal(prev, step) {
			horiz := Point{X: step.X, Y: prev.Y}
			vert := Point{X: prev.X, Y: step.Y}
			if !g.Walkable(horiz) || !g.Walkable(vert) {
				t.Fatalf("diagonal step from %v to %v cuts a corner", prev, step)
			}
		}
		prev = step
	}
	if prev != (Point{X: 7, Y: 5}) {
		t.Fatalf("path ends at %v, want goal", prev)
	}
}

func TestFindPathAdjacentPicksReachableNeighbor(t *testing.T) {
	g := newTestGrid()
	target := Point{X: 6, Y: 6}
	g.Block(target)
	g.Block(Point{X: 6, Y: 5})
	g.Block(Point{X: 5, Y: 6})

	path := g.FindPathAdjacent(Point{X: 3, Y: 6}, target)
	if path == nil {
		t.Fatalf("expected a path next to the target")
	}
	end := path[len(path)-1]
	if Manhattan(end, target) != 1 {
		t.Fatalf("path ends at %v, not adjacent to %v", end, target)
	}
	if !g.Walkable(end) {
		t.Fatalf("path ends on an unwalkable tile %v", end)
	}
}

func TestFindPathAdjacentAlreadyInRange(t *testing.T) {
	g := newTestGrid()
	target := Point{X: 6, Y: 6}
	g.Block(target)
	path := g.FindPathAdjacent(Point{X: 6, Y: 5}, target)
	if path == nil || len(path) != 0 {
		t.Fatalf("expected empty path when already adjacent, got %v", path)
	}
}

func TestFindPathNearWidensUntilReachable(t *testing.T) {
	g := newTestGrid()
	goal := Point{X: 8, Y: 8}
	// Wall off the goal and its immediate neighborhood.
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			g.Block(Point{X: goal.X + dx, Y: goal.Y + dy})
		}
	}

	path := g.FindPathNear(Point{X: 3, Y: 3}, goal, 4)
	if path == nil {
		t.Fatalf("expected ring search to find a nearby tile")
	}
	end := path[len(path)-1]
	if Manhattan(end, goal) > 4 {
		t.Fatalf("ring search ended too far away at %v", end)
	}
	if !g.Walkable(end) {
		t.Fatalf("ring search ended on unwalkable tile %v", end)
	}
}

func TestWalkableHonorsBorderAndOccupancy(t *testing.T) {
	g := New(10, 8, 2)
	cases := []struct {
		name string
		tile Point
		want bool
	}{
		{"interior", Point{X: 4, Y: 4}, true},
		{"west border", Point{X: 1, Y: 4}, false},
		{"north border", Point{X: 4, Y: 0}, false},
		{"east border", Point{X: 8, Y: 4}, false},
		{"south border", Point{X: 4, Y: 6}, false},
		{"out of bounds", Point{X: -1, Y: 3}, false},
	}
	for _, tc := range cases {
		if got := g.Walkable(tc.tile); got != tc.want {
			t.Fatalf("%s: Walkable(%v) = %v, want %v", tc.name, tc.tile, got, tc.want)
		}
	}

	occupied := Point{X: 5, Y: 4}
	g.Block(occupied)
	if g.Walkable(occupied) {
		t.Fatalf("expected blocked tile to be unwalkable")
	}
	g.Unblock(occupied)
	if !g.Walkable(occupied) {
		t.Fatalf("expected unblocked tile to be walkable again")
	}
}
