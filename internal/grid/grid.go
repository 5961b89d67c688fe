package grid

// Point identifies a single tile by integer coordinates.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Manhattan returns |dx| + |dy| between two tiles, the distance used by every
// range check in the simulation.
func Manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Grid answers walkability questions for the world. The outermost Border tiles
// form an impassable water ring; Block marks tiles occupied by resource nodes
// or NPCs. Enemies never register here: they do not obstruct pathing.
type Grid struct {
	width   int
	height  int
	border  int
	blocked map[Point]struct{}
}

// New constructs a grid for a world of the given dimensions with an
// impassable ring of border tiles along every edge.
func New(width, height, border int) *Grid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if border < 0 {
		border = 0
	}
	return &Grid{
		width:   width,
		height:  height,
		border:  border,
		blocked: make(map[Point]struct{}),
	}
}

// Width reports the horizontal tile count.
func (g *Grid) Width() int { return g.width }

// Height reports the vertical tile count.
func (g *Grid) Height() int { return g.height }

// Block marks a tile as occupied by a static obstruction.
func (g *Grid) Block(p Point) {
	g.blocked[p] = struct{}{}
}

// Unblock clears a static obstruction.
func (g *Grid) Unblock(p Point) {
	delete(g.blocked, p)
}

// InBounds reports whether the tile lies inside the world rectangle.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.width && p.Y < g.height
}

// Walkable reports whether a mover may enter the tile: in bounds, outside the
// border water ring, and not occupied by a node or NPC.
func (g *Grid) Walkable(p Point) bool {
	if !g.InBounds(p) {
		return false
	}
	if p.X < g.border || p.Y < g.border || p.X >= g.width-g.border || p.Y >= g.height-g.border {
		return false
	}
	_, occupied := g.blocked[p]
	return !occupied
}
