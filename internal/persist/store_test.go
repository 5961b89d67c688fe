package persist

import (
	"path/filepath"
	"testing"

	"rookhaven/server/internal/content"
	"rookhaven/server/internal/state"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "profiles.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleProfile(id string) Profile {
	return Profile{
		ID:   id,
		Name: "Tester",
		X:    10, Y: 12,
		HP: 7,
		Skills: map[string]int64{
			"woodcutting": 500,
			"strength":    120,
		},
		Inventory: []ItemStack{{Item: "logs", Quantity: 9}},
		Bank:      []ItemStack{{Item: "coins", Quantity: 300}},
		Equipment: []EquippedItem{{Slot: "head", Item: "hide_cap"}},
	}
}

func TestSaveAllThenLoad(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveAll([]Profile{sampleProfile("a"), sampleProfile("b")}); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, ok, err := store.Load("a")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatalf("profile a missing after save")
	}
	if loaded.Name != "Tester" || loaded.X != 10 || loaded.Y != 12 || loaded.HP != 7 {
		t.Fatalf("loaded profile mismatch: %+v", loaded)
	}
	if loaded.Skills["woodcutting"] != 500 {
		t.Fatalf("loaded woodcutting xp = %d", loaded.Skills["woodcutting"])
	}
	if len(loaded.Inventory) != 1 || loaded.Inventory[0].Quantity != 9 {
		t.Fatalf("loaded inventory mismatch: %+v", loaded.Inventory)
	}
}

func TestSaveAllOverwritesExistingRows(t *testing.T) {
	store := openTestStore(t)

	first := sampleProfile("a")
	if err := store.SaveAll([]Profile{first}); err != nil {
		t.Fatalf("save: %v", err)
	}
	first.HP = 1
	first.Inventory = nil
	if err := store.SaveAll([]Profile{first}); err != nil {
		t.Fatalf("resave: %v", err)
	}

	loaded, ok, err := store.Load("a")
	if err != nil || !ok {
		t.Fatalf("load: %v, %v", ok, err)
	}
	if loaded.HP != 1 || len(loaded.Inventory) != 0 {
		t.Fatalf("row not overwritten: %+v", loaded)
	}
}

func TestLoadMissingProfile(t *testing.T) {
	store := openTestStore(t)
	_, ok, err := store.Load("nobody")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("missing profile reported as found")
	}
}

func TestNewProfileIDsAreUnique(t *testing.T) {
	a, b := NewProfileID(), NewProfileID()
	if a == "" || a == b {
		t.Fatalf("ids not unique: %q, %q", a, b)
	}
}

func testCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	cat, err := content.Build(
		[]content.ItemDoc{
			{ID: "coins", Name: "Coins", Stackable: true},
			{ID: "logs", Name: "Logs", Stackable: true},
			{ID: "hide_cap", Name: "Hide Cap", Slot: "head"},
		},
		nil, nil, nil, nil,
		content.WorldDoc{Width: 12, Height: 12, Border: 2, Spawn: content.SpawnPoint{X: 6, Y: 6}},
	)
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return cat
}

func TestSanitizeDropsUnknownItems(t *testing.T) {
	cat := testCatalog(t)
	profile := sampleProfile("a")
	profile.Inventory = append(profile.Inventory, ItemStack{Item: "mithril_axe", Quantity: 1})
	profile.Bank = append(profile.Bank, ItemStack{Item: "phantom", Quantity: 4})
	profile.Equipment = append(profile.Equipment, EquippedItem{Slot: "mainhand", Item: "ghost_sword"})

	clean := Sanitize(profile, cat)

	if len(clean.Inventory) != 1 || clean.Inventory[0].Item != "logs" {
		t.Fatalf("inventory after sanitize: %+v", clean.Inventory)
	}
	if len(clean.Bank) != 1 || clean.Bank[0].Item != "coins" {
		t.Fatalf("bank after sanitize: %+v", clean.Bank)
	}
	if len(clean.Equipment) != 1 || clean.Equipment[0].Item != "hide_cap" {
		t.Fatalf("equipment after sanitize: %+v", clean.Equipment)
	}
}

func TestSanitizeClampsSkillXP(t *testing.T) {
	cat := testCatalog(t)
	profile := sampleProfile("a")
	profile.Skills["strength"] = -50
	profile.Skills["mining"] = state.XPForLevel(state.MaxLevel) + 1_000_000

	clean := Sanitize(profile, cat)

	if clean.Skills["strength"] != 0 {
		t.Fatalf("negative xp not clamped: %d", clean.Skills["strength"])
	}
	if got, cap := clean.Skills["mining"], state.XPForLevel(state.MaxLevel); got != cap {
		t.Fatalf("excess xp = %d, want clamped to %d", got, cap)
	}
	if _, ok := clean.Skills["defense"]; !ok {
		t.Fatalf("missing skills not backfilled")
	}
}

func TestSanitizeForcesPositiveHP(t *testing.T) {
	cat := testCatalog(t)
	profile := sampleProfile("a")
	profile.HP = -3
	if clean := Sanitize(profile, cat); clean.HP != 1 {
		t.Fatalf("hp after sanitize = %d, want 1", clean.HP)
	}
}

func TestSanitizeRejectsBadEquipmentSlots(t *testing.T) {
	cat := testCatalog(t)
	profile := sampleProfile("a")
	profile.Equipment = []EquippedItem{
		{Slot: "ring", Item: "hide_cap"},  // routing name, not a concrete slot
		{Slot: "head", Item: "logs"},      // not equipable
		{Slot: "head", Item: "hide_cap"},  // valid
		{Slot: "head", Item: "hide_cap"},  // duplicate slot
	}

	clean := Sanitize(profile, cat)
	if len(clean.Equipment) != 1 || clean.Equipment[0].Slot != "head" {
		t.Fatalf("equipment after sanitize: %+v", clean.Equipment)
	}
}
