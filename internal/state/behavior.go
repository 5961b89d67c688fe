package state

import "rookhaven/server/internal/grid"

// BehaviorKind enumerates the mutually exclusive activities that can drive a
// player between ticks. Exactly one is ever active; switching replaces the
// whole Behavior value, so "starting one clears the others" holds by
// construction.
type BehaviorKind string

const (
	BehaviorIdle        BehaviorKind = "idle"
	BehaviorMoving      BehaviorKind = "moving"
	BehaviorPathing     BehaviorKind = "pathing"
	BehaviorInteracting BehaviorKind = "interacting"
	BehaviorFighting    BehaviorKind = "fighting"
)

// Behavior is the tagged union of player intents. Path carries the queued
// waypoints for BehaviorPathing and the approach legs of interacting and
// fighting; DX/DY carry the direction for BehaviorMoving; NodeID and EnemyID
// are set only for their respective kinds.
type Behavior struct {
	Kind    BehaviorKind
	DX, DY  int
	Path    []grid.Point
	NodeID  string
	EnemyID string
}

// Idle returns the inactive behavior.
func Idle() Behavior {
	return Behavior{Kind: BehaviorIdle}
}

// MovingBy returns a direction-driven movement behavior.
func MovingBy(dx, dy int) Behavior {
	return Behavior{Kind: BehaviorMoving, DX: dx, DY: dy}
}

// PathingTo returns a waypoint-driven movement behavior.
func PathingTo(path []grid.Point) Behavior {
	return Behavior{Kind: BehaviorPathing, Path: path}
}

// InteractingWith returns a harvesting behavior aimed at a resource node.
func InteractingWith(nodeID string) Behavior {
	return Behavior{Kind: BehaviorInteracting, NodeID: nodeID}
}

// FightingWith returns a combat behavior aimed at an enemy.
func FightingWith(enemyID string) Behavior {
	return Behavior{Kind: BehaviorFighting, EnemyID: enemyID}
}
