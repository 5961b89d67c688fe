package world

import (
	"errors"
	"time"

	"rookhaven/server/internal/content"
	"rookhaven/server/internal/grid"
	"rookhaven/server/internal/state"
	"rookhaven/server/logging"
)

// StartCombat aims the player at an enemy, pathing adjacent first when
// needed.
func (w *World) StartCombat(playerID, enemyID string) bool {
	p, ok := w.players[playerID]
	if !ok {
		return false
	}
	now := timeNow()
	enemy, ok := w.enemies[enemyID]
	if !ok || enemy.Dead(now) {
		p.SetStatus("There is nothing to fight there.")
		return false
	}
	// A fresh engagement waits out a full swing; re-engaging the current
	// target keeps whatever cooldown is already running.
	if p.Behavior.Kind != state.BehaviorFighting || p.Behavior.EnemyID != enemyID {
		p.NextAttackAt = now.Add(w.attackInterval(p))
	}
	behavior := state.FightingWith(enemyID)
	if grid.Manhattan(p.Pos, enemy.Pos) > 1 {
		path := w.approachPath(p.Pos, enemy.Pos)
		if path == nil {
			p.SetStatus("You can't reach that.")
			return false
		}
		behavior.Path = path
	}
	p.Behavior = behavior
	return true
}

// timeNow is swapped by tests that need to pin the clock outside a tick.
var timeNow = time.Now

// advanceCombat chases the target then swings on the attack deadline.
func (w *World) advanceCombat(p *state.Player, now time.Time) {
	if p.Behavior.Kind != state.BehaviorFighting {
		return
	}
	enemy, ok := w.enemies[p.Behavior.EnemyID]
	if !ok || enemy.Dead(now) || enemy.AwaitingRespawn(now) {
		p.Behavior = state.Idle()
		return
	}
	// Sharing the target's tile leaves the swing with no direction; step back
	// to the last distinct tile, or any open neighbor when that one closed.
	if p.Pos == enemy.Pos {
		if next, ok := w.displaceTile(p.Pos, p.LastPos); ok {
			w.stepPlayer(p, next, now)
		}
		return
	}
	if grid.Manhattan(p.Pos, enemy.Pos) > 1 {
		// The enemy moves, so a finished approach leg may still leave the
		// player out of range; recompute instead of going idle.
		if len(p.Behavior.Path) == 0 {
			path := w.grid.FindPathAdjacent(p.Pos, enemy.Pos)
			if path == nil {
				p.Behavior = state.Idle()
				p.SetStatus("You can't reach that.")
				return
			}
			p.Behavior.Path = path
		}
		if !w.followPath(p, now, enemy.Pos) {
			p.Behavior = state.Idle()
			p.SetStatus("You can't reach that.")
		}
		return
	}
	p.Behavior.Path = nil

	if now.Before(p.NextAttackAt) {
		return
	}
	p.NextAttackAt = now.Add(w.attackInterval(p))

	// Being attacked provokes the enemy even when the swing misses.
	if enemy.TargetID == "" {
		enemy.TargetID = p.ID
	}

	chance := HitChance(w.cfg, w.cfg.PlayerAffinity, w.cfg.PlayerModifier, w.playerAccuracy(p), enemy.Armor)
	if !w.rollPercent(chance) {
		return
	}
	min, max := w.weaponBounds(p)
	if enemy.ApplyDamage(w.rollRange(min, max)) == 0 {
		w.killEnemy(p, enemy, now)
	}
}

// killEnemy settles a kill: experience, loot, the death window, and target
// cleanup on everything that pointed at the corpse.
func (w *World) killEnemy(p *state.Player, enemy *state.Enemy, now time.Time) {
	doc, ok := w.content.Minion(enemy.Minion)
	if !ok {
		return
	}
	xp := doc.XP * int64(enemy.Tier)
	w.grantXP(p, state.SkillStrength, xp)
	w.grantXP(p, state.SkillConstitution, int64(float64(xp)*w.cfg.ConstitutionXPFactor))

	sources := w.rollLoot(p, doc.Guaranteed, true, nil)
	sources = w.rollLoot(p, doc.Loot, false, sources)

	enemy.DeadUntil = now.Add(time.Duration(doc.RespawnMs) * time.Millisecond)
	enemy.TargetID = ""
	enemy.Path = nil

	for _, other := range w.players {
		if other.Behavior.Kind == state.BehaviorFighting && other.Behavior.EnemyID == enemy.ID {
			other.Behavior = state.Idle()
		}
	}

	w.notify(p.ID, "You defeated the "+enemy.Name+".")
	for _, table := range sources {
		w.notify(p.ID, "Spoils drawn from "+table+".")
	}
	w.pub.Publish(w.event(logging.EventEnemyKilled, playerRef(p)).
		WithTarget(enemyRef(enemy)).
		WithExtra("minion", enemy.Minion).
		WithExtra("tier", enemy.Tier))
}

// displaceTile picks where an attacker sharing its target's tile steps to:
// its last distinct tile when still open, otherwise the first open orthogonal
// neighbor.
func (w *World) displaceTile(pos, last grid.Point) (grid.Point, bool) {
	if last != pos && w.grid.Walkable(last) {
		return last, true
	}
	for _, d := range []grid.Point{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
		next := grid.Point{X: pos.X + d.X, Y: pos.Y + d.Y}
		if w.grid.Walkable(next) {
			return next, true
		}
	}
	return grid.Point{}, false
}

// rollLoot resolves one drop list and accumulates the distinct loot tables it
// expanded, so the killer can be told where the spoils came from. Guaranteed
// lists skip the chance roll; table references expand to the named table's
// entries, which the catalog guarantees hold no further references.
func (w *World) rollLoot(p *state.Player, entries []content.LootEntry, guaranteed bool, sources []string) []string {
	for _, entry := range entries {
		if !guaranteed && !w.rollPercent(entry.Chance) {
			continue
		}
		if entry.Table != "" {
			table, ok := w.content.LootTable(entry.Table)
			if !ok {
				continue
			}
			sources = appendSource(sources, table.ID)
			sources = w.rollLoot(p, table.Entries, false, sources)
			continue
		}
		w.grantLoot(p, entry)
	}
	return sources
}

func appendSource(sources []string, id string) []string {
	for _, s := range sources {
		if s == id {
			return sources
		}
	}
	return append(sources, id)
}

// grantLoot adds one rolled drop to the killer's inventory. A full inventory
// forfeits the drop.
func (w *World) grantLoot(p *state.Player, entry content.LootEntry) {
	qty := w.rollRange(entry.MinQty, entry.MaxQty)
	if qty < 1 {
		qty = 1
	}
	item := state.ItemID(entry.Item)
	if err := p.Inventory.Add(item, qty, w.content.Stackable(entry.Item)); err != nil {
		if errors.Is(err, state.ErrContainerFull) {
			p.SetStatus("Your inventory is full.")
		}
		return
	}
	w.pub.Publish(w.event(logging.EventLootGranted, playerRef(p)).
		WithExtra("item", entry.Item).
		WithExtra("qty", qty))
}
