package world

import (
	"rookhaven/server/internal/content"
	"rookhaven/server/internal/grid"
	"rookhaven/server/internal/state"
)

// Equip moves the item in an inventory slot onto the player. Ring-slot gear
// routes to the first free of the five ring slots and is rejected when all
// are taken. Any displaced item lands in the slot the equipped item vacated,
// so the swap cannot fail for space.
func (w *World) Equip(playerID string, index int) bool {
	p, ok := w.players[playerID]
	if !ok {
		return false
	}
	stack, ok := p.Inventory.At(index)
	if !ok {
		return false
	}
	doc, ok := w.content.Item(string(stack.Item))
	if !ok || doc.Slot == "" {
		p.SetStatus("You can't equip that.")
		return false
	}
	slot := state.EquipSlot(doc.Slot)
	if slot == state.EquipSlotRing {
		free, ok := p.Equipment.FirstEmptyRing()
		if !ok {
			p.SetStatus("All your ring slots are full.")
			return false
		}
		slot = free
	}
	if !state.ValidEquipSlot(slot) {
		return false
	}
	removed, ok := p.Inventory.RemoveAt(index, 1)
	if !ok {
		return false
	}
	if previous, occupied := p.Equipment.Remove(slot); occupied {
		// Equipables never stack, so the vacated unit's slot is free.
		p.Inventory.Add(previous, 1, false)
	}
	p.Equipment.Set(slot, removed.Item)
	w.refreshMaxHP(p)
	return true
}

// Unequip moves the item in an equipment slot back to the inventory. Fails
// without change when the inventory is full.
func (w *World) Unequip(playerID string, slot state.EquipSlot) bool {
	p, ok := w.players[playerID]
	if !ok {
		return false
	}
	item, ok := p.Equipment.Get(slot)
	if !ok {
		return false
	}
	if !p.Inventory.CanHold(item, 1, false) {
		p.SetStatus("Your inventory is full.")
		return false
	}
	p.Equipment.Remove(slot)
	p.Inventory.Add(item, 1, false)
	w.refreshMaxHP(p)
	return true
}

// UseItem consumes one unit of a consumable inventory item.
func (w *World) UseItem(playerID string, index int) bool {
	p, ok := w.players[playerID]
	if !ok {
		return false
	}
	stack, ok := p.Inventory.At(index)
	if !ok {
		return false
	}
	doc, ok := w.content.Item(string(stack.Item))
	if !ok || doc.Heals <= 0 {
		p.SetStatus("Nothing happens.")
		return false
	}
	if p.HP >= p.MaxHP {
		p.SetStatus("You are already at full health.")
		return false
	}
	p.Inventory.RemoveAt(index, 1)
	p.Heal(doc.Heals)
	return true
}

// DropItem discards a quantity from an inventory slot.
func (w *World) DropItem(playerID string, index, qty int) bool {
	p, ok := w.players[playerID]
	if !ok {
		return false
	}
	_, ok = p.Inventory.RemoveAt(index, qty)
	return ok
}

// MoveInventory reorders inventory slots.
func (w *World) MoveInventory(playerID string, from, to int) bool {
	p, ok := w.players[playerID]
	if !ok {
		return false
	}
	return p.Inventory.MoveSlot(from, to)
}

// Deposit moves a quantity from an inventory slot into the bank. Fails
// without change when the bank cannot hold it.
func (w *World) Deposit(playerID string, index, qty int) bool {
	p, ok := w.players[playerID]
	if !ok {
		return false
	}
	stack, ok := p.Inventory.At(index)
	if !ok {
		return false
	}
	if qty < 1 {
		qty = 1
	}
	if qty > stack.Quantity {
		qty = stack.Quantity
	}
	stackable := w.content.Stackable(string(stack.Item))
	if !p.Bank.CanHold(stack.Item, qty, stackable) {
		p.SetStatus("Your bank is full.")
		return false
	}
	p.Inventory.RemoveAt(index, qty)
	p.Bank.Add(stack.Item, qty, stackable)
	return true
}

// Withdraw moves a quantity of an item from the bank into the inventory.
// Fails without change when the inventory cannot hold it.
func (w *World) Withdraw(playerID string, item state.ItemID, qty int) bool {
	p, ok := w.players[playerID]
	if !ok {
		return false
	}
	if qty < 1 {
		qty = 1
	}
	held := p.Bank.Count(item)
	if held == 0 {
		return false
	}
	if qty > held {
		qty = held
	}
	stackable := w.content.Stackable(string(item))
	if !p.Inventory.CanHold(item, qty, stackable) {
		p.SetStatus("Your inventory is full.")
		return false
	}
	p.Bank.Remove(item, qty)
	p.Inventory.Add(item, qty, stackable)
	return true
}

// Talk addresses an adjacent NPC, returning it and its anchored shop when it
// has one. The hub turns the result into dialogue or a shop screen.
func (w *World) Talk(playerID, npcID string) (*state.NPC, *state.Shop, bool) {
	p, ok := w.players[playerID]
	if !ok {
		return nil, nil, false
	}
	npc, ok := w.npcs[npcID]
	if !ok {
		return nil, nil, false
	}
	if grid.Manhattan(p.Pos, npc.Pos) > 1 {
		p.SetStatus("You are too far away.")
		return nil, nil, false
	}
	if npc.ShopID == "" {
		return npc, nil, true
	}
	return npc, w.shops[npc.ShopID], true
}

// Buy purchases a quantity from a shop for coins. The exchange is atomic:
// when the goods do not fit after the coins are taken, the coins come back
// and nothing changes.
func (w *World) Buy(playerID, shopID string, item state.ItemID, qty int) bool {
	p, ok := w.players[playerID]
	if !ok {
		return false
	}
	shop, ok := w.shops[shopID]
	if !ok {
		return false
	}
	entry, ok := shop.Entry(item)
	if !ok {
		p.SetStatus("That is not for sale.")
		return false
	}
	if qty < 1 {
		qty = 1
	}
	cost := entry.BuyPrice * qty
	coins := state.ItemID(content.CurrencyItem)
	if p.Inventory.Count(coins) < cost {
		p.SetStatus("You don't have enough coins.")
		return false
	}
	p.Inventory.Remove(coins, cost)
	stackable := w.content.Stackable(string(item))
	if err := p.Inventory.Add(item, qty, stackable); err != nil {
		p.Inventory.Add(coins, cost, true)
		p.SetStatus("Your inventory is full.")
		return false
	}
	return true
}

// Sell trades a quantity from an inventory slot for coins at the shop's
// buy-back price. Unpriced items cannot be sold.
func (w *World) Sell(playerID, shopID string, index, qty int) bool {
	p, ok := w.players[playerID]
	if !ok {
		return false
	}
	shop, ok := w.shops[shopID]
	if !ok {
		return false
	}
	stack, ok := p.Inventory.At(index)
	if !ok {
		return false
	}
	entry, ok := shop.Entry(stack.Item)
	if !ok || entry.SellPrice <= 0 {
		p.SetStatus("The shop won't take that.")
		return false
	}
	if qty < 1 {
		qty = 1
	}
	if qty > stack.Quantity {
		qty = stack.Quantity
	}
	removed, ok := p.Inventory.RemoveAt(index, qty)
	if !ok {
		return false
	}
	coins := state.ItemID(content.CurrencyItem)
	payout := entry.SellPrice * removed.Quantity
	if err := p.Inventory.Add(coins, payout, true); err != nil {
		stackable := w.content.Stackable(string(removed.Item))
		p.Inventory.Add(removed.Item, removed.Quantity, stackable)
		p.SetStatus("Your inventory is full.")
		return false
	}
	return true
}
