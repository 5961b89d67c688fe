package world

import (
	"time"

	"rookhaven/server/internal/content"
	"rookhaven/server/internal/state"
	"rookhaven/server/logging"
)

// Derived player stats are recomputed from skills and equipment on demand,
// never cached. MaxHP is the one stored derivative and refreshMaxHP keeps it
// reconciled every tick and after every gear or level change.

// eachGear visits the gear entry of every equipped item that has one.
func (w *World) eachGear(p *state.Player, visit func(content.GearDoc)) {
	for _, item := range p.Equipment.Items() {
		if doc, ok := w.content.Gear(string(item)); ok {
			visit(doc)
		}
	}
}

// effStrength is the strength level plus equipped bonuses.
func (w *World) effStrength(p *state.Player) int {
	total := p.Skills.Level(state.SkillStrength)
	w.eachGear(p, func(doc content.GearDoc) {
		total += doc.StrengthBonus
	})
	return total
}

// effConstitution is the constitution level plus equipped bonuses.
func (w *World) effConstitution(p *state.Player) int {
	total := p.Skills.Level(state.SkillConstitution)
	w.eachGear(p, func(doc content.GearDoc) {
		total += doc.ConstitutionBonus
	})
	return total
}

// maxHPFor derives the player's maximum hit points. Constitution above the
// starting level of 1 adds HPPerConstitution each.
func (w *World) maxHPFor(p *state.Player) int {
	hp := w.cfg.BaseHP + w.cfg.HPPerConstitution*(w.effConstitution(p)-1)
	if hp < 1 {
		hp = 1
	}
	return hp
}

// refreshMaxHP reconciles stored MaxHP with the derived value, shifting
// current HP by the same delta so the adjustment neither kills nor heals.
func (w *World) refreshMaxHP(p *state.Player) {
	p.ShiftMaxHP(w.maxHPFor(p) - p.MaxHP)
}

// reconcileContainers runs once per player per tick: items the catalog no
// longer knows are dropped from the inventory, bank, and equipment, then
// MaxHP is re-derived so level-ups and gear swaps applied since the last tick
// are reflected before combat and regeneration read it.
func (w *World) reconcileContainers(p *state.Player) {
	known := func(item state.ItemID) bool {
		_, ok := w.content.Item(string(item))
		return ok
	}
	p.Inventory.Filter(known)
	p.Bank.Filter(known)
	p.Equipment.Filter(known)
	w.refreshMaxHP(p)
}

// playerAccuracy is the attack rating fed into the hit formula.
func (w *World) playerAccuracy(p *state.Player) int {
	total := w.cfg.BaseAccuracy + w.effStrength(p)
	w.eachGear(p, func(doc content.GearDoc) {
		total += doc.Accuracy
	})
	return total
}

// playerArmor is the defense rating fed into the hit formula.
func (w *World) playerArmor(p *state.Player) int {
	total := w.cfg.BaseArmor + p.Skills.Level(state.SkillDefense)
	w.eachGear(p, func(doc content.GearDoc) {
		total += doc.Armor
	})
	return total
}

// weaponBounds derives the player's damage range: base bounds, equipped
// bounds, and the strength bonus floor(effStr * weaponBase / 100) applied to
// both ends.
func (w *World) weaponBounds(p *state.Player) (int, int) {
	min, max := w.cfg.BaseDamageMin, w.cfg.BaseDamageMax
	weaponBase := 0
	w.eachGear(p, func(doc content.GearDoc) {
		min += doc.DamageMin
		max += doc.DamageMax
		weaponBase += doc.WeaponBase
	})
	bonus := w.effStrength(p) * weaponBase / 100
	min += bonus
	max += bonus
	if max < min {
		max = min
	}
	return min, max
}

// attackInterval is the fastest attack rate among equipped gear, or the
// unarmed default when nothing equipped sets one.
func (w *World) attackInterval(p *state.Player) time.Duration {
	fastest := 0
	w.eachGear(p, func(doc content.GearDoc) {
		if doc.AttackRateMs <= 0 {
			return
		}
		if fastest == 0 || doc.AttackRateMs < fastest {
			fastest = doc.AttackRateMs
		}
	})
	if fastest == 0 {
		return w.cfg.DefaultAttackRate
	}
	return time.Duration(fastest) * time.Millisecond
}

// harvestChanceBonus sums equipped gather-chance bonuses for one skill.
func (w *World) harvestChanceBonus(p *state.Player, skill state.SkillID) float64 {
	total := 0.0
	w.eachGear(p, func(doc content.GearDoc) {
		if doc.HarvestSkill == string(skill) {
			total += doc.HarvestChanceBonus
		}
	})
	return total
}

// harvestIntervalScale multiplies equipped gather-interval scales for one
// skill. Values below 1 speed harvesting up.
func (w *World) harvestIntervalScale(p *state.Player, skill state.SkillID) float64 {
	scale := 1.0
	w.eachGear(p, func(doc content.GearDoc) {
		if doc.HarvestSkill == string(skill) && doc.HarvestIntervalScale > 0 {
			scale *= doc.HarvestIntervalScale
		}
	})
	return scale
}

// HitChance is the shared percent hit formula: affinity scaled by the
// accuracy-to-armor ratio, shifted by the flat modifier, clamped to the
// configured floor and ceiling. Both sides of every fight run through it.
func HitChance(cfg Config, affinity, modifier float64, accuracy, armor int) float64 {
	if accuracy < 1 {
		accuracy = 1
	}
	if armor < 1 {
		armor = 1
	}
	chance := affinity*float64(accuracy)/float64(armor) + modifier
	if chance < cfg.MinHitChance {
		chance = cfg.MinHitChance
	}
	if chance > cfg.MaxHitChance {
		chance = cfg.MaxHitChance
	}
	return chance
}

// advanceRegen ticks passive hit point recovery. The deadline advances even
// at full health so fresh damage never triggers an instant heal.
func (w *World) advanceRegen(p *state.Player, now time.Time) {
	if now.Before(p.NextRegenAt) {
		return
	}
	if p.HP < p.MaxHP {
		p.Heal(w.cfg.RegenAmount)
	}
	p.NextRegenAt = now.Add(w.cfg.RegenInterval)
}

// grantXP awards experience and announces level-ups.
func (w *World) grantXP(p *state.Player, skill state.SkillID, xp int64) {
	if xp <= 0 {
		return
	}
	if !p.Skills.Grant(skill, xp) {
		return
	}
	level := p.Skills.Level(skill)
	w.notify(p.ID, "Your "+string(skill)+" level is now "+itoa(level)+".")
	w.pub.Publish(w.event(logging.EventLevelUp, playerRef(p)).
		WithExtra("skill", string(skill)).
		WithExtra("level", level))
	if skill == state.SkillConstitution {
		w.refreshMaxHP(p)
	}
}
