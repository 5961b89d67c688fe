package world

import (
	"time"

	"rookhaven/server/internal/grid"
	"rookhaven/server/internal/state"
	"rookhaven/server/logging"
)

// advanceEnemies runs one AI pass: respawns, regeneration, target
// acquisition, leashing, chasing, and attacks.
func (w *World) advanceEnemies(now time.Time) {
	for _, enemy := range w.Enemies() {
		if enemy.AwaitingRespawn(now) {
			enemy.Respawn()
		}
		if enemy.Dead(now) {
			continue
		}
		w.regenEnemy(enemy, now)

		doc, ok := w.content.Minion(enemy.Minion)
		if !ok {
			continue
		}
		aggro := doc.AggroRange
		if aggro <= 0 {
			aggro = w.cfg.DefaultAggroRange
		}
		leash := doc.LeashRange
		if leash <= 0 {
			leash = w.cfg.DefaultLeashRange
		}

		if enemy.TargetID != "" {
			if _, ok := w.players[enemy.TargetID]; !ok {
				enemy.TargetID = ""
				enemy.Path = nil
			} else if grid.Manhattan(enemy.Pos, enemy.SpawnPos) > leash {
				enemy.TargetID = ""
				enemy.Path = nil
			}
		}
		// Acquire only inside the leash, otherwise a fleeing chase flips
		// between dropping and re-acquiring at the boundary.
		if enemy.TargetID == "" && grid.Manhattan(enemy.Pos, enemy.SpawnPos) <= leash {
			enemy.TargetID = w.nearestPlayer(enemy.Pos, aggro)
			enemy.Path = nil
		}

		if enemy.TargetID == "" {
			w.returnHome(enemy, now)
			continue
		}
		target := w.players[enemy.TargetID]
		// Overlapping the target leaves the swing with no direction; sidestep
		// to an open neighbor before attacking.
		if enemy.Pos == target.Pos {
			if next, ok := w.displaceTile(enemy.Pos, enemy.Pos); ok {
				enemy.Pos = next
				enemy.NextMoveAt = now.Add(w.stepDuration(false))
			}
			continue
		}
		if grid.Manhattan(enemy.Pos, target.Pos) > 1 {
			w.chase(enemy, target, now)
			continue
		}
		enemy.Path = nil
		w.enemyAttack(enemy, target, doc.AttackRateMs, now)
	}
}

// regenEnemy heals an idle enemy on its regeneration deadline.
func (w *World) regenEnemy(enemy *state.Enemy, now time.Time) {
	if now.Before(enemy.NextRegenAt) {
		return
	}
	if enemy.TargetID == "" && enemy.HP < enemy.MaxHP {
		enemy.HP += w.cfg.EnemyRegenAmount
		if enemy.HP > enemy.MaxHP {
			enemy.HP = enemy.MaxHP
		}
	}
	enemy.NextRegenAt = now.Add(w.cfg.RegenInterval)
}

// nearestPlayer finds the closest player within range, ties broken by id
// through the sorted player walk.
func (w *World) nearestPlayer(from grid.Point, within int) string {
	bestID := ""
	bestDist := within + 1
	for _, p := range w.Players() {
		d := grid.Manhattan(from, p.Pos)
		if d < bestDist {
			bestID = p.ID
			bestDist = d
		}
	}
	return bestID
}

// chase advances one step toward the target on the movement deadline.
func (w *World) chase(enemy *state.Enemy, target *state.Player, now time.Time) {
	if now.Before(enemy.NextMoveAt) {
		return
	}
	// The target moves every tick, so keep the cached path only while its
	// first step still works.
	if len(enemy.Path) == 0 || !w.stepAllowed(enemy.Pos, enemy.Path[0]) {
		enemy.Path = w.grid.FindPathAdjacent(enemy.Pos, target.Pos)
		if enemy.Path == nil || len(enemy.Path) == 0 {
			enemy.Path = nil
			return
		}
	}
	w.stepEnemy(enemy, now)
}

// returnHome walks an idle enemy back to its spawn tile.
func (w *World) returnHome(enemy *state.Enemy, now time.Time) {
	if enemy.Pos == enemy.SpawnPos {
		enemy.Path = nil
		return
	}
	if now.Before(enemy.NextMoveAt) {
		return
	}
	if len(enemy.Path) == 0 || !w.stepAllowed(enemy.Pos, enemy.Path[0]) {
		enemy.Path = w.grid.FindPath(enemy.Pos, enemy.SpawnPos)
		if enemy.Path == nil || len(enemy.Path) == 0 {
			enemy.Path = nil
			return
		}
	}
	w.stepEnemy(enemy, now)
}

func (w *World) stepEnemy(enemy *state.Enemy, now time.Time) {
	next := enemy.Path[0]
	enemy.Path = enemy.Path[1:]
	diagonal := grid.IsDiagonal(enemy.Pos, next)
	enemy.Pos = next
	enemy.NextMoveAt = now.Add(w.stepDuration(diagonal))
}

// enemyAttack swings at an adjacent player on the attack deadline. A victim
// who is not fighting this enemy back is passive: the swing gets the
// configured accuracy bonus and the damage multiplier, and an idle victim
// retaliates automatically.
func (w *World) enemyAttack(enemy *state.Enemy, target *state.Player, attackRateMs int, now time.Time) {
	if now.Before(enemy.NextAttackAt) {
		return
	}
	rate := time.Duration(attackRateMs) * time.Millisecond
	if rate <= 0 {
		rate = w.cfg.DefaultAttackRate
	}
	enemy.NextAttackAt = now.Add(rate)

	passive := !(target.Behavior.Kind == state.BehaviorFighting && target.Behavior.EnemyID == enemy.ID)

	modifier := w.cfg.EnemyModifier
	if passive {
		modifier += w.cfg.PassiveAccuracyBonus
	}
	chance := HitChance(w.cfg, w.cfg.EnemyAffinity, modifier, enemy.Accuracy, w.playerArmor(target))
	if !w.rollPercent(chance) {
		return
	}
	// Taking a hit is what provokes an idle victim; a whiffed swing does not.
	if passive && target.Behavior.Kind == state.BehaviorIdle {
		target.Behavior = state.FightingWith(enemy.ID)
	}
	damage := w.rollRange(enemy.DamageMin, enemy.DamageMax)
	if passive {
		damage = int(float64(damage) * w.cfg.PassiveDamageMultiplier)
	}
	if target.ApplyDamage(damage) == 0 {
		w.killPlayer(target, enemy, now)
	}
}

// killPlayer respawns a dead player at the world spawn with full health and
// releases every enemy that was hunting them.
func (w *World) killPlayer(p *state.Player, killer *state.Enemy, now time.Time) {
	p.Pos = w.spawn
	p.LastPos = w.spawn
	p.Facing = state.DefaultFacing
	p.Behavior = state.Idle()
	p.HP = p.MaxHP
	p.NextRegenAt = now.Add(w.cfg.RegenInterval)
	p.SetStatus("You died.")
	w.notify(p.ID, "You were slain by the "+killer.Name+".")
	for _, enemy := range w.enemies {
		if enemy.TargetID == p.ID {
			enemy.TargetID = ""
			enemy.Path = nil
		}
	}
	w.pub.Publish(w.event(logging.EventPlayerDied, playerRef(p)).
		WithTarget(enemyRef(killer)).
		WithExtra("killer", killer.Minion))
}
