package state

import (
	"time"

	"rookhaven/server/internal/grid"
)

// Enemy is one spawned minion instance. Its combat stats are scaled once from
// the catalog entry by the spawn tier and stay fixed for its lifetime. Death
// is a timed state rather than removal: DeadUntil doubles as the death flag
// and the respawn clock.
type Enemy struct {
	ID     string
	Minion string
	Name   string
	Tier   int

	Pos      grid.Point
	SpawnPos grid.Point

	HP        int
	MaxHP     int
	Accuracy  int
	Armor     int
	DamageMin int
	DamageMax int

	TargetID string
	Path     []grid.Point

	NextMoveAt   time.Time
	NextAttackAt time.Time
	NextRegenAt  time.Time
	DeadUntil    time.Time
}

// Dead reports whether the enemy is inside its death window.
func (e *Enemy) Dead(now time.Time) bool {
	return !e.DeadUntil.IsZero() && now.Before(e.DeadUntil)
}

// AwaitingRespawn reports whether the death window has elapsed and the enemy
// should reset to its spawn tile.
func (e *Enemy) AwaitingRespawn(now time.Time) bool {
	return !e.DeadUntil.IsZero() && !now.Before(e.DeadUntil)
}

// Respawn resets the enemy to its spawn tile at full health.
func (e *Enemy) Respawn() {
	e.Pos = e.SpawnPos
	e.HP = e.MaxHP
	e.TargetID = ""
	e.Path = nil
	e.DeadUntil = time.Time{}
}

// ApplyDamage subtracts damage clamping at zero and reports the new HP.
func (e *Enemy) ApplyDamage(amount int) int {
	if amount < 0 {
		amount = 0
	}
	e.HP -= amount
	if e.HP < 0 {
		e.HP = 0
	}
	return e.HP
}

// ResourceNode is a harvestable world fixture. HitsRemaining counts gather
// attempts (successful or not) until depletion; it is re-rolled from the
// catalog range every time the node depletes.
type ResourceNode struct {
	ID            string
	Resource      string
	Kind          string
	Pos           grid.Point
	HitsRemaining int
	DepletedUntil time.Time
}

// Depleted reports whether the node is inside its depletion window.
func (n *ResourceNode) Depleted(now time.Time) bool {
	return !n.DepletedUntil.IsZero() && now.Before(n.DepletedUntil)
}

// NPC is a static world inhabitant, read-only after world start. A non-empty
// ShopID anchors a shop to this NPC.
type NPC struct {
	ID       string
	Name     string
	Pos      grid.Point
	Dialogue string
	ShopID   string
}

// ShopEntry prices one item for sale and buy-back.
type ShopEntry struct {
	Item      ItemID `json:"item"`
	BuyPrice  int    `json:"buyPrice"`
	SellPrice int    `json:"sellPrice"`
}

// Shop is a static price list addressed through its anchoring NPC.
type Shop struct {
	ID    string
	NPCID string
	Name  string
	Stock []ShopEntry
}

// Entry finds the stock line for an item.
func (s *Shop) Entry(item ItemID) (ShopEntry, bool) {
	for _, entry := range s.Stock {
		if entry.Item == item {
			return entry, true
		}
	}
	return ShopEntry{}, false
}
