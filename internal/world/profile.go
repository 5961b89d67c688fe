package world

import (
	"rookhaven/server/internal/grid"
	"rookhaven/server/internal/persist"
	"rookhaven/server/internal/state"
)

// CaptureProfile snapshots a live player into its durable form.
func (w *World) CaptureProfile(p *state.Player) persist.Profile {
	profile := persist.Profile{
		ID:   p.ProfileID,
		Name: p.Name,
		X:    p.Pos.X,
		Y:    p.Pos.Y,
		HP:   p.HP,
	}
	profile.Skills = make(map[string]int64, len(state.SkillIDs))
	for _, id := range state.SkillIDs {
		profile.Skills[string(id)] = p.Skills.XP[id]
	}
	for _, stack := range p.Inventory.Slots {
		profile.Inventory = append(profile.Inventory, persist.ItemStack{Item: string(stack.Item), Quantity: stack.Quantity})
	}
	for _, stack := range p.Bank.Slots {
		profile.Bank = append(profile.Bank, persist.ItemStack{Item: string(stack.Item), Quantity: stack.Quantity})
	}
	for _, entry := range p.Equipment.Slots {
		profile.Equipment = append(profile.Equipment, persist.EquippedItem{Slot: string(entry.Slot), Item: string(entry.Item)})
	}
	return profile
}

// ApplyProfile restores a sanitized snapshot onto a fresh player. The
// position falls back to the spawn tile when the saved tile is no longer
// walkable, and HP is re-clamped against the re-derived maximum.
func (w *World) ApplyProfile(p *state.Player, profile persist.Profile) {
	p.ProfileID = profile.ID
	if profile.Name != "" {
		p.Name = profile.Name
	}

	pos := grid.Point{X: profile.X, Y: profile.Y}
	if !w.grid.Walkable(pos) {
		pos = w.spawn
	}
	p.Pos = pos
	p.LastPos = pos

	for _, id := range state.SkillIDs {
		p.Skills.XP[id] = profile.Skills[string(id)]
	}

	p.Inventory = state.NewContainer(w.cfg.InventorySlots)
	for _, stack := range profile.Inventory {
		p.Inventory.Add(state.ItemID(stack.Item), stack.Quantity, w.content.Stackable(stack.Item))
	}
	p.Bank = state.NewContainer(w.cfg.BankSlots)
	for _, stack := range profile.Bank {
		p.Bank.Add(state.ItemID(stack.Item), stack.Quantity, w.content.Stackable(stack.Item))
	}
	p.Equipment = state.NewEquipment()
	for _, entry := range profile.Equipment {
		p.Equipment.Set(state.EquipSlot(entry.Slot), state.ItemID(entry.Item))
	}

	p.MaxHP = w.maxHPFor(p)
	p.HP = profile.HP
	if p.HP < 1 {
		p.HP = 1
	}
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
}
