package world

import (
	"testing"
	"time"

	"rookhaven/server/internal/content"
	"rookhaven/server/internal/grid"
	"rookhaven/server/internal/state"
)

func testCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	items := []content.ItemDoc{
		{ID: "coins", Name: "Coins", Stackable: true},
		{ID: "logs", Name: "Logs", Stackable: true},
		{ID: "ore", Name: "Iron Ore", Stackable: true},
		{ID: "bread", Name: "Bread", Heals: 3},
		{ID: "bronze_axe", Name: "Bronze Axe", Slot: "mainhand"},
		{ID: "iron_sword", Name: "Iron Sword", Slot: "mainhand"},
		{ID: "iron_ring", Name: "Iron Ring", Slot: "ring"},
		{ID: "hide_cap", Name: "Hide Cap", Slot: "head"},
		{ID: "rat_fang", Name: "Rat Fang"},
	}
	gear := []content.GearDoc{
		{Item: "bronze_axe", Accuracy: 5, DamageMin: 0, DamageMax: 2, WeaponBase: 100, AttackRateMs: 1000, HarvestSkill: "woodcutting", HarvestChanceBonus: 0.1},
		{Item: "iron_sword", Accuracy: 8, DamageMin: 1, DamageMax: 3, WeaponBase: 120, AttackRateMs: 1200},
		{Item: "iron_ring", ConstitutionBonus: 2},
		{Item: "hide_cap", Armor: 3},
	}
	resources := []content.ResourceDoc{
		{
			ID: "oak_tree", Name: "Oak Tree", Kind: "tree", Skill: "woodcutting",
			RequiredLevel: 1, BaseChance: 1, HitsMin: 3, HitsMax: 3,
			DepletedMinMs: 1000, DepletedMaxMs: 1000, IntervalMs: 100,
			Drops: []content.ResourceDrop{{Item: "logs", Weight: 1, XP: 25}},
		},
		{
			ID: "barren_tree", Name: "Barren Tree", Kind: "tree", Skill: "woodcutting",
			RequiredLevel: 1, BaseChance: 0, HitsMin: 3, HitsMax: 3,
			DepletedMinMs: 1000, DepletedMaxMs: 1000, IntervalMs: 100,
			Drops: []content.ResourceDrop{{Item: "logs", Weight: 1, XP: 25}},
		},
		{
			ID: "iron_rock", Name: "Iron Rock", Kind: "rock", Skill: "mining",
			RequiredLevel: 15, BaseChance: 1, HitsMin: 3, HitsMax: 3,
			DepletedMinMs: 1000, DepletedMaxMs: 1000, IntervalMs: 100,
			Drops: []content.ResourceDrop{{Item: "ore", Weight: 1, XP: 35}},
		},
	}
	tables := []content.LootTableDoc{
		{ID: "rat_table", Entries: []content.LootEntry{{Item: "rat_fang", Chance: 100, MinQty: 1, MaxQty: 1}}},
	}
	minions := []content.MinionDoc{
		{
			ID: "giant_rat", Name: "Giant Rat", MaxHP: 3, Accuracy: 5, Armor: 5,
			DamageMin: 1, DamageMax: 1, AttackRateMs: 500, RespawnMs: 2000,
			XP: 30, AggroRange: 2, LeashRange: 5,
			Guaranteed: []content.LootEntry{{Item: "coins", MinQty: 5, MaxQty: 5}},
			Loot:       []content.LootEntry{{Table: "rat_table", Chance: 100}},
		},
	}
	layout := content.WorldDoc{
		Width: 20, Height: 20, Border: 2,
		Spawn: content.SpawnPoint{X: 10, Y: 10},
		Resources: []content.ResourceSpawn{
			{Resource: "oak_tree", X: 10, Y: 9},
			{Resource: "barren_tree", X: 12, Y: 12},
			{Resource: "iron_rock", X: 14, Y: 8},
		},
		NPCs: []content.NPCSpawn{
			{ID: "merchant", Name: "Merchant", X: 9, Y: 10, Dialogue: "Welcome!", Shop: "general"},
		},
		Shops: []content.ShopDoc{
			{ID: "general", Name: "General Store", Stock: []content.ShopStock{
				{Item: "bread", Buy: 10, Sell: 4},
				{Item: "bronze_axe", Buy: 50, Sell: 20},
				{Item: "logs", Buy: 3, Sell: 1},
			}},
		},
		Minions: []content.MinionSpawn{
			{Minion: "giant_rat", X: 15, Y: 15, Tier: 1},
		},
	}
	cat, err := content.Build(items, gear, resources, tables, minions, layout)
	if err != nil {
		t.Fatalf("build test catalog: %v", err)
	}
	return cat
}

func newTestWorld(t *testing.T, cfg Config) *World {
	t.Helper()
	return New(cfg, testCatalog(t), nil, 1)
}

func addTestPlayer(t *testing.T, w *World, id string) *state.Player {
	t.Helper()
	p := w.NewPlayer(id, "profile-"+id, "Tester")
	w.AddPlayer(p)
	return p
}

func findEnemy(t *testing.T, w *World) *state.Enemy {
	t.Helper()
	enemies := w.Enemies()
	if len(enemies) != 1 {
		t.Fatalf("expected one seeded enemy, got %d", len(enemies))
	}
	return enemies[0]
}

func TestNewPlayerDerivesMaxHP(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	p := addTestPlayer(t, w, "p1")
	// Constitution 1 is the baseline and adds nothing above BaseHP.
	want := w.cfg.BaseHP
	if p.MaxHP != want || p.HP != want {
		t.Fatalf("fresh player hp = %d/%d, want %d/%d", p.HP, p.MaxHP, want, want)
	}

	p.Skills.Grant(state.SkillConstitution, state.XPForLevel(3))
	w.refreshMaxHP(p)
	if want := w.cfg.BaseHP + 2*w.cfg.HPPerConstitution; p.MaxHP != want {
		t.Fatalf("constitution 3 max hp = %d, want %d", p.MaxHP, want)
	}
}

func TestTickDropsUnknownCatalogItems(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	p := addTestPlayer(t, w, "p1")
	p.Inventory.Add("logs", 2, true)
	p.Inventory.Slots = append(p.Inventory.Slots, state.ItemStack{Item: "mystery_orb", Quantity: 1})
	p.Bank.Slots = append(p.Bank.Slots, state.ItemStack{Item: "mystery_orb", Quantity: 3})
	p.Equipment.Set(state.EquipSlotHead, "mystery_helm")

	w.Tick(time.Unix(0, 0))

	if got := p.Inventory.Count("mystery_orb"); got != 0 {
		t.Fatalf("unknown item survived in the inventory: %d", got)
	}
	if got := p.Inventory.Count("logs"); got != 2 {
		t.Fatalf("known item dropped during reconciliation: %d", got)
	}
	if got := p.Bank.Count("mystery_orb"); got != 0 {
		t.Fatalf("unknown item survived in the bank: %d", got)
	}
	if _, ok := p.Equipment.Get(state.EquipSlotHead); ok {
		t.Fatalf("unknown item survived in equipment")
	}
}

func TestWorldSeedsFromLayout(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	if got := len(w.Nodes()); got != 3 {
		t.Fatalf("seeded %d nodes, want 3", got)
	}
	if got := len(w.NPCs()); got != 1 {
		t.Fatalf("seeded %d npcs, want 1", got)
	}
	shop, ok := w.Shop("general")
	if !ok {
		t.Fatalf("shop general missing")
	}
	if shop.NPCID != "merchant" {
		t.Fatalf("shop anchored to %q, want merchant", shop.NPCID)
	}
	if w.Grid().Walkable(grid.Point{X: 10, Y: 9}) {
		t.Fatalf("resource tile should be blocked")
	}
	if w.Grid().Walkable(grid.Point{X: 9, Y: 10}) {
		t.Fatalf("npc tile should be blocked")
	}
}

func TestHitChanceClampsToBounds(t *testing.T) {
	cfg := DefaultConfig()
	if got := HitChance(cfg, cfg.PlayerAffinity, cfg.PlayerModifier, 1000, 1); got != cfg.MaxHitChance {
		t.Fatalf("overwhelming accuracy: chance = %v, want %v", got, cfg.MaxHitChance)
	}
	if got := HitChance(cfg, cfg.PlayerAffinity, 0, 1, 1000); got != cfg.MinHitChance {
		t.Fatalf("overwhelming armor: chance = %v, want %v", got, cfg.MinHitChance)
	}
	if got := HitChance(cfg, 55, 10, 20, 20); got != 65 {
		t.Fatalf("even match: chance = %v, want 65", got)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	p := addTestPlayer(t, w, "p1")
	p.Skills.Grant(state.SkillWoodcutting, 500)
	p.Inventory.Add("logs", 10, true)
	p.Inventory.Add("bronze_axe", 1, false)
	p.Bank.Add("coins", 250, true)
	p.Equipment.Set(state.EquipSlotHead, "hide_cap")
	p.Pos = grid.Point{X: 12, Y: 10}
	w.refreshMaxHP(p)
	p.HP = 5

	profile := w.CaptureProfile(p)

	restored := w.NewPlayer("p2", "", "")
	w.ApplyProfile(restored, profile)

	if restored.Pos != p.Pos {
		t.Fatalf("restored pos %v, want %v", restored.Pos, p.Pos)
	}
	if restored.HP != 5 {
		t.Fatalf("restored hp %d, want 5", restored.HP)
	}
	if got := restored.Skills.XP[state.SkillWoodcutting]; got != 500 {
		t.Fatalf("restored woodcutting xp %d, want 500", got)
	}
	if got := restored.Inventory.Count("logs"); got != 10 {
		t.Fatalf("restored logs %d, want 10", got)
	}
	if got := restored.Bank.Count("coins"); got != 250 {
		t.Fatalf("restored banked coins %d, want 250", got)
	}
	if item, ok := restored.Equipment.Get(state.EquipSlotHead); !ok || item != "hide_cap" {
		t.Fatalf("restored head slot = %q, %v", item, ok)
	}
}

func TestApplyProfileRejectsUnwalkableTile(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	p := addTestPlayer(t, w, "p1")
	profile := w.CaptureProfile(p)
	profile.X, profile.Y = 0, 0

	restored := w.NewPlayer("p2", "", "")
	w.ApplyProfile(restored, profile)
	if restored.Pos != w.SpawnPoint() {
		t.Fatalf("restored pos %v, want spawn %v", restored.Pos, w.SpawnPoint())
	}
}
