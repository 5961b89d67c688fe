package state

import (
	"errors"
	"fmt"
)

// ItemID names an item kind from the content catalog.
type ItemID string

// ItemStack holds a quantity of one item kind inside a container slot.
// Non-stackable items always carry Quantity == 1.
type ItemStack struct {
	Item     ItemID `json:"item"`
	Quantity int    `json:"quantity"`
}

// ErrContainerFull signals that an add or transfer would exceed capacity.
var ErrContainerFull = errors.New("container full")

// Container is a bounded ordered list of item slots, used for both the
// inventory and the bank.
type Container struct {
	Capacity int         `json:"capacity"`
	Slots    []ItemStack `json:"slots"`
}

// NewContainer returns an empty container with the given slot capacity.
func NewContainer(capacity int) Container {
	if capacity < 0 {
		capacity = 0
	}
	return Container{Capacity: capacity}
}

// Clone deep-copies the container.
func (c Container) Clone() Container {
	cloned := Container{Capacity: c.Capacity}
	if len(c.Slots) > 0 {
		cloned.Slots = make([]ItemStack, len(c.Slots))
		copy(cloned.Slots, c.Slots)
	}
	return cloned
}

// FreeSlots reports how many further slots the container can hold.
func (c Container) FreeSlots() int {
	free := c.Capacity - len(c.Slots)
	if free < 0 {
		return 0
	}
	return free
}

// Count sums the held quantity of an item across every slot.
func (c Container) Count(item ItemID) int {
	total := 0
	for _, slot := range c.Slots {
		if slot.Item == item {
			total += slot.Quantity
		}
	}
	return total
}

// CanHold reports whether quantity units of the item would fit without
// mutating anything.
func (c Container) CanHold(item ItemID, quantity int, stackable bool) bool {
	if quantity <= 0 {
		return true
	}
	if stackable {
		for _, slot := range c.Slots {
			if slot.Item == item {
				return true
			}
		}
		return c.FreeSlots() >= 1
	}
	return c.FreeSlots() >= quantity
}

// Add places quantity units of an item into the container. Stackable items
// merge into an existing slot or consume exactly one new slot; non-stackable
// items consume one slot per unit. The container is left untouched on failure.
func (c *Container) Add(item ItemID, quantity int, stackable bool) error {
	if quantity <= 0 {
		return fmt.Errorf("add %s: quantity must be positive", item)
	}
	if !c.CanHold(item, quantity, stackable) {
		return ErrContainerFull
	}
	if stackable {
		for i := range c.Slots {
			if c.Slots[i].Item == item {
				c.Slots[i].Quantity += quantity
				return nil
			}
		}
		c.Slots = append(c.Slots, ItemStack{Item: item, Quantity: quantity})
		return nil
	}
	for i := 0; i < quantity; i++ {
		c.Slots = append(c.Slots, ItemStack{Item: item, Quantity: 1})
	}
	return nil
}

// Remove takes up to quantity units of an item out of the container and
// returns how many were actually removed, capped by what is held.
func (c *Container) Remove(item ItemID, quantity int) int {
	if quantity <= 0 {
		return 0
	}
	removed := 0
	kept := c.Slots[:0]
	for _, slot := range c.Slots {
		if slot.Item != item || removed >= quantity {
			kept = append(kept, slot)
			continue
		}
		take := quantity - removed
		if take >= slot.Quantity {
			removed += slot.Quantity
			continue
		}
		slot.Quantity -= take
		removed += take
		kept = append(kept, slot)
	}
	c.Slots = kept
	return removed
}

// RemoveAt takes up to quantity units from a specific slot index and returns
// the removed stack. The slot disappears when emptied.
func (c *Container) RemoveAt(index, quantity int) (ItemStack, bool) {
	if index < 0 || index >= len(c.Slots) || quantity <= 0 {
		return ItemStack{}, false
	}
	slot := c.Slots[index]
	if quantity >= slot.Quantity {
		c.Slots = append(c.Slots[:index], c.Slots[index+1:]...)
		return slot, true
	}
	c.Slots[index].Quantity -= quantity
	return ItemStack{Item: slot.Item, Quantity: quantity}, true
}

// MoveSlot reorders a slot within the container.
func (c *Container) MoveSlot(from, to int) bool {
	if from < 0 || from >= len(c.Slots) || to < 0 || to >= len(c.Slots) || from == to {
		return false
	}
	slot := c.Slots[from]
	c.Slots = append(c.Slots[:from], c.Slots[from+1:]...)
	rest := append([]ItemStack{}, c.Slots[to:]...)
	c.Slots = append(append(c.Slots[:to:to], slot), rest...)
	return true
}

// At returns the stack at a slot index.
func (c Container) At(index int) (ItemStack, bool) {
	if index < 0 || index >= len(c.Slots) {
		return ItemStack{}, false
	}
	return c.Slots[index], true
}

// Filter drops every slot whose item fails the keep predicate. Used to
// reconcile containers against the live item catalog.
func (c *Container) Filter(keep func(ItemID) bool) int {
	dropped := 0
	kept := c.Slots[:0]
	for _, slot := range c.Slots {
		if keep(slot.Item) {
			kept = append(kept, slot)
			continue
		}
		dropped++
	}
	c.Slots = kept
	return dropped
}
