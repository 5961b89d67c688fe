// Package persist stores player profiles in a local SQLite database. A
// profile is a sanitized snapshot of one character; the live simulation never
// reads or writes the database directly.
package persist

import (
	"time"

	"github.com/google/uuid"

	"rookhaven/server/internal/content"
	"rookhaven/server/internal/state"
)

// ItemStack is one persisted container slot.
type ItemStack struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// EquippedItem is one persisted equipment slot.
type EquippedItem struct {
	Slot string `json:"slot"`
	Item string `json:"item"`
}

// Profile is the durable snapshot of one character.
type Profile struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	X         int              `json:"x"`
	Y         int              `json:"y"`
	HP        int              `json:"hp"`
	Skills    map[string]int64 `json:"skills"`
	Inventory []ItemStack      `json:"inventory"`
	Bank      []ItemStack      `json:"bank"`
	Equipment []EquippedItem   `json:"equipment"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// NewProfileID mints an id for a character seen for the first time.
func NewProfileID() string {
	return uuid.NewString()
}

// Sanitize returns a copy of the profile safe to load against the current
// catalog: unknown items are dropped, XP is clamped to the valid range,
// equipment slots are validated, and HP is forced positive. Position is left
// alone; the world corrects unwalkable tiles on load.
func Sanitize(profile Profile, cat *content.Catalog) Profile {
	clean := profile
	clean.Skills = make(map[string]int64, len(profile.Skills))
	for _, id := range state.SkillIDs {
		xp := profile.Skills[string(id)]
		if xp < 0 {
			xp = 0
		}
		if cap := state.XPForLevel(state.MaxLevel); xp > cap {
			xp = cap
		}
		clean.Skills[string(id)] = xp
	}

	clean.Inventory = sanitizeStacks(profile.Inventory, cat)
	clean.Bank = sanitizeStacks(profile.Bank, cat)

	clean.Equipment = make([]EquippedItem, 0, len(profile.Equipment))
	seen := make(map[string]bool, len(profile.Equipment))
	for _, entry := range profile.Equipment {
		if !state.ValidEquipSlot(state.EquipSlot(entry.Slot)) || seen[entry.Slot] {
			continue
		}
		if !cat.KnownItem(entry.Item) {
			continue
		}
		doc, _ := cat.Item(entry.Item)
		if doc.Slot == "" {
			continue
		}
		seen[entry.Slot] = true
		clean.Equipment = append(clean.Equipment, entry)
	}

	if clean.HP < 1 {
		clean.HP = 1
	}
	return clean
}

func sanitizeStacks(stacks []ItemStack, cat *content.Catalog) []ItemStack {
	clean := make([]ItemStack, 0, len(stacks))
	for _, stack := range stacks {
		if stack.Quantity < 1 || !cat.KnownItem(stack.Item) {
			continue
		}
		clean = append(clean, stack)
	}
	return clean
}
