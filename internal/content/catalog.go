package content

import (
	"errors"
	"fmt"
)

// Catalog bundles every validated content table. Lookup methods return copies
// of small documents; callers must treat slices as read-only.
type Catalog struct {
	items     map[string]ItemDoc
	gear      map[string]GearDoc
	resources map[string]ResourceDoc
	tables    map[string]LootTableDoc
	minions   map[string]MinionDoc
	world     WorldDoc
}

// Item returns the item document for an id.
func (c *Catalog) Item(id string) (ItemDoc, bool) {
	doc, ok := c.items[id]
	return doc, ok
}

// Stackable reports whether an item id names a stackable item. Unknown items
// report false.
func (c *Catalog) Stackable(id string) bool {
	doc, ok := c.items[id]
	return ok && doc.Stackable
}

// KnownItem reports whether the id is in the item catalog.
func (c *Catalog) KnownItem(id string) bool {
	_, ok := c.items[id]
	return ok
}

// Gear returns the gear entry attached to an item, if any.
func (c *Catalog) Gear(itemID string) (GearDoc, bool) {
	doc, ok := c.gear[itemID]
	return doc, ok
}

// Resource returns the resource document for an id.
func (c *Catalog) Resource(id string) (ResourceDoc, bool) {
	doc, ok := c.resources[id]
	return doc, ok
}

// LootTable returns the loot table for an id.
func (c *Catalog) LootTable(id string) (LootTableDoc, bool) {
	doc, ok := c.tables[id]
	return doc, ok
}

// Minion returns the minion document for an id.
func (c *Catalog) Minion(id string) (MinionDoc, bool) {
	doc, ok := c.minions[id]
	return doc, ok
}

// World returns the static world layout.
func (c *Catalog) World() WorldDoc {
	return c.world
}

// build indexes the raw documents and validates every cross-reference,
// returning the aggregated list of violations so designers see all of them at
// once instead of fixing one per restart.
func build(items []ItemDoc, gear []GearDoc, resources []ResourceDoc, tables []LootTableDoc, minions []MinionDoc, world WorldDoc) (*Catalog, error) {
	c := &Catalog{
		items:     make(map[string]ItemDoc, len(items)),
		gear:      make(map[string]GearDoc, len(gear)),
		resources: make(map[string]ResourceDoc, len(resources)),
		tables:    make(map[string]LootTableDoc, len(tables)),
		minions:   make(map[string]MinionDoc, len(minions)),
		world:     world,
	}
	var violations []error
	fail := func(format string, args ...any) {
		violations = append(violations, fmt.Errorf(format, args...))
	}

	for _, doc := range items {
		if doc.ID == "" {
			fail("items: entry with empty id")
			continue
		}
		if _, dup := c.items[doc.ID]; dup {
			fail("items: duplicate id %q", doc.ID)
			continue
		}
		if doc.Slot != "" && !validSlotName(doc.Slot) {
			fail("items: %q has unknown equip slot %q", doc.ID, doc.Slot)
		}
		if doc.Slot != "" && doc.Stackable {
			fail("items: %q is equipable and must not be stackable", doc.ID)
		}
		c.items[doc.ID] = doc
	}
	if doc, ok := c.items[CurrencyItem]; !ok {
		fail("items: currency item %q is missing", CurrencyItem)
	} else if !doc.Stackable {
		fail("items: currency item %q must be stackable", CurrencyItem)
	}

	for _, doc := range gear {
		if doc.Item == "" {
			fail("gear: entry with empty item reference")
			continue
		}
		if _, dup := c.gear[doc.Item]; dup {
			fail("gear: duplicate entry for item %q", doc.Item)
			continue
		}
		item, ok := c.items[doc.Item]
		if !ok {
			fail("gear: entry references unknown item %q", doc.Item)
			continue
		}
		if item.Slot == "" {
			fail("gear: item %q is not equipable", doc.Item)
		}
		if doc.DamageMax < doc.DamageMin {
			fail("gear: item %q has damageMax below damageMin", doc.Item)
		}
		if doc.HarvestSkill != "" && doc.HarvestSkill != "woodcutting" && doc.HarvestSkill != "mining" {
			fail("gear: item %q has unknown harvest skill %q", doc.Item, doc.HarvestSkill)
		}
		c.gear[doc.Item] = doc
	}

	for _, doc := range resources {
		if doc.ID == "" {
			fail("resources: entry with empty id")
			continue
		}
		if _, dup := c.resources[doc.ID]; dup {
			fail("resources: duplicate id %q", doc.ID)
			continue
		}
		if doc.Kind != "tree" && doc.Kind != "rock" {
			fail("resources: %q has unknown kind %q", doc.ID, doc.Kind)
		}
		if doc.Skill != "woodcutting" && doc.Skill != "mining" {
			fail("resources: %q has unknown skill %q", doc.ID, doc.Skill)
		}
		if doc.HitsMax < doc.HitsMin || doc.HitsMin < 1 {
			fail("resources: %q has invalid hits range {%d,%d}", doc.ID, doc.HitsMin, doc.HitsMax)
		}
		if doc.DepletedMaxMs < doc.DepletedMinMs {
			fail("resources: %q has invalid depletion window", doc.ID)
		}
		if doc.IntervalMs < 1 {
			fail("resources: %q has non-positive gather interval", doc.ID)
		}
		if len(doc.Drops) == 0 {
			fail("resources: %q has no drops", doc.ID)
		}
		for _, drop := range doc.Drops {
			if _, ok := c.items[drop.Item]; !ok {
				fail("resources: %q drop references unknown item %q", doc.ID, drop.Item)
			}
			if drop.Weight < 1 {
				fail("resources: %q drop %q has non-positive weight", doc.ID, drop.Item)
			}
		}
		c.resources[doc.ID] = doc
	}

	for _, doc := range tables {
		if doc.ID == "" {
			fail("loot: table with empty id")
			continue
		}
		if _, dup := c.tables[doc.ID]; dup {
			fail("loot: duplicate table id %q", doc.ID)
			continue
		}
		c.tables[doc.ID] = doc
	}
	for id, doc := range c.tables {
		for i, entry := range doc.Entries {
			c.checkLootEntry(fmt.Sprintf("loot: table %q entry %d", id, i), entry, true, fail)
		}
	}

	for _, doc := range minions {
		if doc.ID == "" {
			fail("minions: entry with empty id")
			continue
		}
		if _, dup := c.minions[doc.ID]; dup {
			fail("minions: duplicate id %q", doc.ID)
			continue
		}
		if doc.DamageMax < doc.DamageMin {
			fail("minions: %q has damageMax below damageMin", doc.ID)
		}
		for i, entry := range doc.Guaranteed {
			if entry.Table != "" {
				fail("minions: %q guaranteed entry %d must reference an item, not a table", doc.ID, i)
				continue
			}
			c.checkLootEntry(fmt.Sprintf("minions: %q guaranteed entry %d", doc.ID, i), entry, false, fail)
		}
		for i, entry := range doc.Loot {
			c.checkLootEntry(fmt.Sprintf("minions: %q loot entry %d", doc.ID, i), entry, false, fail)
		}
		c.minions[doc.ID] = doc
	}

	violations = append(violations, c.checkWorld()...)

	if len(violations) > 0 {
		return nil, errors.Join(violations...)
	}
	return c, nil
}

// checkLootEntry validates one drop line. nested marks entries already inside
// a table, for which further table references are rejected; the single level
// of nesting the loot model allows is therefore enforced structurally and no
// reference cycle can form.
func (c *Catalog) checkLootEntry(where string, entry LootEntry, nested bool, fail func(string, ...any)) {
	hasItem := entry.Item != ""
	hasTable := entry.Table != ""
	if hasItem == hasTable {
		fail("%s: exactly one of item or table must be set", where)
		return
	}
	if hasItem {
		if _, ok := c.items[entry.Item]; !ok {
			fail("%s: unknown item %q", where, entry.Item)
		}
		if entry.MaxQty < entry.MinQty {
			fail("%s: maxQty below minQty", where)
		}
	} else {
		if nested {
			fail("%s: tables may not reference further tables", where)
			return
		}
		if _, ok := c.tables[entry.Table]; !ok {
			fail("%s: unknown table %q", where, entry.Table)
		}
	}
}

func (c *Catalog) checkWorld() []error {
	var violations []error
	fail := func(format string, args ...any) {
		violations = append(violations, fmt.Errorf(format, args...))
	}
	w := c.world
	if w.Width < 2*w.Border+2 || w.Height < 2*w.Border+2 {
		fail("world: dimensions %dx%d leave no walkable interior inside border %d", w.Width, w.Height, w.Border)
	}
	inside := func(x, y int) bool {
		return x >= w.Border && y >= w.Border && x < w.Width-w.Border && y < w.Height-w.Border
	}
	if !inside(w.Spawn.X, w.Spawn.Y) {
		fail("world: player spawn (%d,%d) is not on dry land", w.Spawn.X, w.Spawn.Y)
	}
	for _, spawn := range w.Resources {
		if _, ok := c.resources[spawn.Resource]; !ok {
			fail("world: resource spawn references unknown resource %q", spawn.Resource)
		}
		if !inside(spawn.X, spawn.Y) {
			fail("world: resource %q spawn (%d,%d) is not on dry land", spawn.Resource, spawn.X, spawn.Y)
		}
	}
	shopIDs := make(map[string]struct{}, len(w.Shops))
	for _, shop := range w.Shops {
		if shop.ID == "" {
			fail("world: shop with empty id")
			continue
		}
		if _, dup := shopIDs[shop.ID]; dup {
			fail("world: duplicate shop id %q", shop.ID)
			continue
		}
		shopIDs[shop.ID] = struct{}{}
		if len(shop.Stock) == 0 {
			fail("world: shop %q has no stock", shop.ID)
		}
		for _, stock := range shop.Stock {
			if _, ok := c.items[stock.Item]; !ok {
				fail("world: shop %q stocks unknown item %q", shop.ID, stock.Item)
			}
			if stock.Buy < 1 || stock.Sell < 0 || stock.Sell > stock.Buy {
				fail("world: shop %q prices item %q inconsistently", shop.ID, stock.Item)
			}
		}
	}
	npcIDs := make(map[string]struct{}, len(w.NPCs))
	anchored := make(map[string]struct{}, len(w.Shops))
	for _, npc := range w.NPCs {
		if npc.ID == "" {
			fail("world: npc with empty id")
			continue
		}
		if _, dup := npcIDs[npc.ID]; dup {
			fail("world: duplicate npc id %q", npc.ID)
			continue
		}
		npcIDs[npc.ID] = struct{}{}
		if !inside(npc.X, npc.Y) {
			fail("world: npc %q spawn (%d,%d) is not on dry land", npc.ID, npc.X, npc.Y)
		}
		if npc.Shop != "" {
			if _, ok := shopIDs[npc.Shop]; !ok {
				fail("world: npc %q anchors unknown shop %q", npc.ID, npc.Shop)
			}
			if _, dup := anchored[npc.Shop]; dup {
				fail("world: shop %q anchored by more than one npc", npc.Shop)
			}
			anchored[npc.Shop] = struct{}{}
		}
	}
	for id := range shopIDs {
		if _, ok := anchored[id]; !ok {
			fail("world: shop %q has no anchoring npc", id)
		}
	}
	for _, spawn := range w.Minions {
		if _, ok := c.minions[spawn.Minion]; !ok {
			fail("world: minion spawn references unknown minion %q", spawn.Minion)
		}
		if spawn.Tier < 1 {
			fail("world: minion %q spawn has tier %d, want >= 1", spawn.Minion, spawn.Tier)
		}
	}
	return violations
}

func validSlotName(slot string) bool {
	switch slot {
	case "head", "body", "legs", "hands", "feet", "offhand", "mainhand", "necklace", "ring":
		return true
	default:
		return false
	}
}
