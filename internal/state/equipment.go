package state

import "sort"

// EquipSlot names one of the fixed equipment positions.
type EquipSlot string

const (
	EquipSlotHead     EquipSlot = "head"
	EquipSlotBody     EquipSlot = "body"
	EquipSlotLegs     EquipSlot = "legs"
	EquipSlotHands    EquipSlot = "hands"
	EquipSlotFeet     EquipSlot = "feet"
	EquipSlotOffHand  EquipSlot = "offhand"
	EquipSlotMainHand EquipSlot = "mainhand"
	EquipSlotNecklace EquipSlot = "necklace"
	EquipSlotRing1    EquipSlot = "ring1"
	EquipSlotRing2    EquipSlot = "ring2"
	EquipSlotRing3    EquipSlot = "ring3"
	EquipSlotRing4    EquipSlot = "ring4"
	EquipSlotRing5    EquipSlot = "ring5"

	// EquipSlotRing is the catalog-facing slot name that routes to the first
	// empty of the five concrete ring slots.
	EquipSlotRing EquipSlot = "ring"
)

var orderedEquipSlots = []EquipSlot{
	EquipSlotMainHand,
	EquipSlotOffHand,
	EquipSlotHead,
	EquipSlotBody,
	EquipSlotLegs,
	EquipSlotHands,
	EquipSlotFeet,
	EquipSlotNecklace,
	EquipSlotRing1,
	EquipSlotRing2,
	EquipSlotRing3,
	EquipSlotRing4,
	EquipSlotRing5,
}

// RingSlots lists the five interchangeable ring positions in routing order.
var RingSlots = []EquipSlot{
	EquipSlotRing1,
	EquipSlotRing2,
	EquipSlotRing3,
	EquipSlotRing4,
	EquipSlotRing5,
}

var equipSlotRank = func() map[EquipSlot]int {
	ranks := make(map[EquipSlot]int, len(orderedEquipSlots))
	for idx, slot := range orderedEquipSlots {
		ranks[slot] = idx
	}
	return ranks
}()

// ValidEquipSlot reports whether the name is a concrete equipment position.
func ValidEquipSlot(slot EquipSlot) bool {
	_, ok := equipSlotRank[slot]
	return ok
}

// EquippedItem records the item occupying one equipment slot.
type EquippedItem struct {
	Slot EquipSlot `json:"slot"`
	Item ItemID    `json:"item"`
}

// Equipment holds at most one non-stackable item per named slot.
type Equipment struct {
	Slots []EquippedItem `json:"slots,omitempty"`
}

// NewEquipment returns an empty equipment set.
func NewEquipment() Equipment {
	return Equipment{}
}

// Clone deep-copies the equipment set.
func (e Equipment) Clone() Equipment {
	if len(e.Slots) == 0 {
		return Equipment{}
	}
	cloned := make([]EquippedItem, len(e.Slots))
	copy(cloned, e.Slots)
	return Equipment{Slots: cloned}
}

// Get returns the item in a slot.
func (e Equipment) Get(slot EquipSlot) (ItemID, bool) {
	for _, entry := range e.Slots {
		if entry.Slot == slot {
			return entry.Item, true
		}
	}
	return "", false
}

// Set places an item in a slot, replacing any occupant.
func (e *Equipment) Set(slot EquipSlot, item ItemID) {
	for i := range e.Slots {
		if e.Slots[i].Slot == slot {
			e.Slots[i].Item = item
			return
		}
	}
	e.Slots = append(e.Slots, EquippedItem{Slot: slot, Item: item})
	sort.Slice(e.Slots, func(i, j int) bool {
		return equipSlotRank[e.Slots[i].Slot] < equipSlotRank[e.Slots[j].Slot]
	})
}

// Remove clears a slot and returns its former occupant.
func (e *Equipment) Remove(slot EquipSlot) (ItemID, bool) {
	for i := range e.Slots {
		if e.Slots[i].Slot != slot {
			continue
		}
		item := e.Slots[i].Item
		e.Slots = append(e.Slots[:i], e.Slots[i+1:]...)
		return item, true
	}
	return "", false
}

// FirstEmptyRing returns the lowest unoccupied ring slot.
func (e Equipment) FirstEmptyRing() (EquipSlot, bool) {
	for _, slot := range RingSlots {
		if _, occupied := e.Get(slot); !occupied {
			return slot, true
		}
	}
	return "", false
}

// Items returns every equipped item id in slot order.
func (e Equipment) Items() []ItemID {
	items := make([]ItemID, 0, len(e.Slots))
	for _, entry := range e.Slots {
		items = append(items, entry.Item)
	}
	return items
}

// Filter drops equipped items that fail the keep predicate.
func (e *Equipment) Filter(keep func(ItemID) bool) int {
	dropped := 0
	kept := e.Slots[:0]
	for _, entry := range e.Slots {
		if keep(entry.Item) {
			kept = append(kept, entry)
			continue
		}
		dropped++
	}
	e.Slots = kept
	return dropped
}
