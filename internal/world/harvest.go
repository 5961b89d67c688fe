package world

import (
	"errors"
	"time"

	"rookhaven/server/internal/content"
	"rookhaven/server/internal/grid"
	"rookhaven/server/internal/state"
	"rookhaven/server/logging"
)

// StartInteract aims the player at a resource node, pathing adjacent first
// when needed.
func (w *World) StartInteract(playerID, nodeID string) bool {
	p, ok := w.players[playerID]
	if !ok {
		return false
	}
	node, ok := w.nodes[nodeID]
	if !ok {
		p.SetStatus("There is nothing to gather there.")
		return false
	}
	behavior := state.InteractingWith(nodeID)
	if grid.Manhattan(p.Pos, node.Pos) > 1 {
		path := w.approachPath(p.Pos, node.Pos)
		if path == nil {
			p.SetStatus("You can't reach that.")
			return false
		}
		behavior.Path = path
	}
	p.Behavior = behavior
	return true
}

// StopInteract abandons an in-progress gather.
func (w *World) StopInteract(playerID string) bool {
	p, ok := w.players[playerID]
	if !ok {
		return false
	}
	if p.Behavior.Kind == state.BehaviorInteracting {
		p.Behavior = state.Idle()
	}
	return true
}

// advanceInteraction walks the approach leg, then performs gather attempts on
// the interaction deadline. Every attempt consumes one of the node's
// remaining hits whether or not it yields anything.
func (w *World) advanceInteraction(p *state.Player, now time.Time) {
	if p.Behavior.Kind != state.BehaviorInteracting {
		return
	}
	node, ok := w.nodes[p.Behavior.NodeID]
	if !ok {
		p.Behavior = state.Idle()
		return
	}
	if grid.Manhattan(p.Pos, node.Pos) > 1 {
		if !w.followPath(p, now, node.Pos) {
			p.Behavior = state.Idle()
			p.SetStatus("You can't reach that.")
		}
		return
	}
	p.Behavior.Path = nil

	if node.Depleted(now) {
		p.Behavior = state.Idle()
		p.SetStatus("There is nothing left to gather.")
		return
	}
	doc, ok := w.content.Resource(node.Resource)
	if !ok {
		p.Behavior = state.Idle()
		return
	}
	skill := state.SkillID(doc.Skill)
	if p.Skills.Level(skill) < doc.RequiredLevel {
		p.Behavior = state.Idle()
		p.SetStatus("You need " + string(skill) + " level " + itoa(doc.RequiredLevel) + " for that.")
		return
	}
	if now.Before(p.NextInteractAt) {
		return
	}

	interval := time.Duration(float64(doc.IntervalMs)*w.harvestIntervalScale(p, skill)) * time.Millisecond
	p.NextInteractAt = now.Add(interval)

	node.HitsRemaining--
	if w.rollUnit(w.gatherChance(p, doc, skill)) {
		w.grantGather(p, doc, skill)
	}

	if node.HitsRemaining <= 0 {
		node.DepletedUntil = now.Add(time.Duration(w.rollRange(doc.DepletedMinMs, doc.DepletedMaxMs)) * time.Millisecond)
		node.HitsRemaining = w.rollHits(doc)
		p.Behavior = state.Idle()
		p.SetStatus("The " + doc.Name + " is depleted.")
		w.pub.Publish(w.event(logging.EventNodeDepleted, nodeRef(node)).
			WithExtra("resource", doc.ID))
	}
}

// gatherChance is the per-attempt success probability: the node's base
// chance, equipped tool bonuses, and a capped bonus per level above the
// node's requirement.
func (w *World) gatherChance(p *state.Player, doc content.ResourceDoc, skill state.SkillID) float64 {
	chance := doc.BaseChance + w.harvestChanceBonus(p, skill)
	levelBonus := float64(p.Skills.Level(skill)-doc.RequiredLevel) * w.cfg.HarvestLevelBonus
	if levelBonus > w.cfg.HarvestLevelBonusCap {
		levelBonus = w.cfg.HarvestLevelBonusCap
	}
	if levelBonus > 0 {
		chance += levelBonus
	}
	if chance > 1 {
		chance = 1
	}
	return chance
}

// grantGather rolls the weighted drop line, banks the item, and awards XP.
// A full inventory forfeits the yield but the attempt already counted.
func (w *World) grantGather(p *state.Player, doc content.ResourceDoc, skill state.SkillID) {
	drop, ok := w.weightedDrop(doc.Drops)
	if !ok {
		return
	}
	item := state.ItemID(drop.Item)
	if err := p.Inventory.Add(item, 1, w.content.Stackable(drop.Item)); err != nil {
		if errors.Is(err, state.ErrContainerFull) {
			p.SetStatus("Your inventory is full.")
		}
		return
	}
	w.grantXP(p, skill, drop.XP)
}

// weightedDrop picks one line proportionally to its weight.
func (w *World) weightedDrop(drops []content.ResourceDrop) (content.ResourceDrop, bool) {
	total := 0
	for _, drop := range drops {
		total += drop.Weight
	}
	if total <= 0 {
		return content.ResourceDrop{}, false
	}
	roll := w.rng.Intn(total)
	for _, drop := range drops {
		roll -= drop.Weight
		if roll < 0 {
			return drop, true
		}
	}
	return drops[len(drops)-1], true
}
