// Package content loads and validates the static designer catalogs the
// simulation consumes: items, gear, resources, loot tables, minions, and the
// world layout. Catalogs are read once at process start, validated as a
// whole, and treated as read-only afterwards.
package content

// CurrencyItem is the item id shops price everything in.
const CurrencyItem = "coins"

// ItemDoc describes one item kind.
type ItemDoc struct {
	ID        string `json:"id" jsonschema:"title=Item ID,pattern=^[a-z0-9_]+$,minLength=1,required"`
	Name      string `json:"name" jsonschema:"title=Display Name,minLength=1,required"`
	Stackable bool   `json:"stackable" jsonschema:"title=Stackable,description=Stackable items collapse to one slot per kind."`
	Slot      string `json:"slot,omitempty" jsonschema:"title=Equip Slot,description=Equipment slot name; ring routes to the first free ring slot."`
	Value     int    `json:"value,omitempty" jsonschema:"title=Base Value,minimum=0"`
	Heals     int    `json:"heals,omitempty" jsonschema:"title=Heal Amount,description=Hit points restored when consumed; zero means not consumable.,minimum=0"`
}

// GearDoc attaches combat and harvesting stats to an equipable item.
type GearDoc struct {
	Item                 string  `json:"item" jsonschema:"title=Item ID,description=The item this gear entry extends.,required"`
	Armor                int     `json:"armor,omitempty" jsonschema:"minimum=0"`
	Accuracy             int     `json:"accuracy,omitempty" jsonschema:"minimum=0"`
	DamageMin            int     `json:"damageMin,omitempty" jsonschema:"minimum=0"`
	DamageMax            int     `json:"damageMax,omitempty" jsonschema:"minimum=0"`
	WeaponBase           int     `json:"weaponBase,omitempty" jsonschema:"title=Weapon Base Damage,description=Feeds the strength-scaled damage bonus.,minimum=0"`
	AttackRateMs         int     `json:"attackRateMs,omitempty" jsonschema:"title=Attack Interval,minimum=0"`
	StrengthBonus        int     `json:"strengthBonus,omitempty"`
	ConstitutionBonus    int     `json:"constitutionBonus,omitempty"`
	HarvestSkill         string  `json:"harvestSkill,omitempty" jsonschema:"description=Skill this gear assists: woodcutting or mining."`
	HarvestChanceBonus   float64 `json:"harvestChanceBonus,omitempty" jsonschema:"minimum=0,maximum=1"`
	HarvestIntervalScale float64 `json:"harvestIntervalScale,omitempty" jsonschema:"description=Multiplier applied to the gather interval; values below 1 speed harvesting up.,minimum=0"`
}

// ResourceDrop is one weighted reward line of a resource node.
type ResourceDrop struct {
	Item   string `json:"item" jsonschema:"required"`
	Weight int    `json:"weight" jsonschema:"minimum=1,required"`
	XP     int64  `json:"xp" jsonschema:"minimum=0"`
}

// ResourceDoc describes a harvestable node kind.
type ResourceDoc struct {
	ID            string         `json:"id" jsonschema:"pattern=^[a-z0-9_]+$,minLength=1,required"`
	Name          string         `json:"name" jsonschema:"minLength=1,required"`
	Kind          string         `json:"kind" jsonschema:"enum=tree,enum=rock,required"`
	Skill         string         `json:"skill" jsonschema:"enum=woodcutting,enum=mining,required"`
	RequiredLevel int            `json:"requiredLevel" jsonschema:"minimum=1,maximum=99"`
	BaseChance    float64        `json:"baseChance" jsonschema:"minimum=0,maximum=1,required"`
	HitsMin       int            `json:"hitsMin" jsonschema:"minimum=1,required"`
	HitsMax       int            `json:"hitsMax" jsonschema:"minimum=1,required"`
	DepletedMinMs int            `json:"depletedMinMs" jsonschema:"minimum=0,required"`
	DepletedMaxMs int            `json:"depletedMaxMs" jsonschema:"minimum=0,required"`
	IntervalMs    int            `json:"intervalMs" jsonschema:"title=Gather Interval,minimum=1,required"`
	Drops         []ResourceDrop `json:"drops" jsonschema:"required"`
}

// LootEntry is one drop line. Exactly one of Item or Table is set; Table
// references another loot table, allowing a single level of nesting.
type LootEntry struct {
	Item   string  `json:"item,omitempty"`
	Table  string  `json:"table,omitempty"`
	Chance float64 `json:"chance" jsonschema:"title=Percent Chance,minimum=0,maximum=100"`
	MinQty int     `json:"minQty,omitempty" jsonschema:"minimum=0"`
	MaxQty int     `json:"maxQty,omitempty" jsonschema:"minimum=0"`
}

// LootTableDoc is a named list of percent-chance drops.
type LootTableDoc struct {
	ID      string      `json:"id" jsonschema:"pattern=^[a-z0-9_]+$,minLength=1,required"`
	Entries []LootEntry `json:"entries" jsonschema:"required"`
}

// MinionDoc describes a spawnable enemy kind at tier 1.
type MinionDoc struct {
	ID           string      `json:"id" jsonschema:"pattern=^[a-z0-9_]+$,minLength=1,required"`
	Name         string      `json:"name" jsonschema:"minLength=1,required"`
	MaxHP        int         `json:"maxHp" jsonschema:"minimum=1,required"`
	Accuracy     int         `json:"accuracy" jsonschema:"minimum=1,required"`
	Armor        int         `json:"armor" jsonschema:"minimum=1,required"`
	DamageMin    int         `json:"damageMin" jsonschema:"minimum=0,required"`
	DamageMax    int         `json:"damageMax" jsonschema:"minimum=0,required"`
	AttackRateMs int         `json:"attackRateMs" jsonschema:"minimum=1,required"`
	RespawnMs    int         `json:"respawnMs" jsonschema:"minimum=1,required"`
	XP           int64       `json:"xp" jsonschema:"minimum=0"`
	AggroRange   int         `json:"aggroRange,omitempty" jsonschema:"description=Tiles within which the minion notices a player; zero falls back to the world default.,minimum=0"`
	LeashRange   int         `json:"leashRange,omitempty" jsonschema:"description=Tiles from spawn beyond which the minion gives up its chase; zero falls back to the world default.,minimum=0"`
	Guaranteed   []LootEntry `json:"guaranteed,omitempty" jsonschema:"description=Drops rolled unconditionally on death."`
	Loot         []LootEntry `json:"loot,omitempty" jsonschema:"description=Drops rolled independently by percent chance."`
}

// SpawnPoint is a tile coordinate inside the world layout.
type SpawnPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ResourceSpawn places one resource node.
type ResourceSpawn struct {
	Resource string `json:"resource" jsonschema:"required"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// NPCSpawn places one NPC, optionally anchoring a shop.
type NPCSpawn struct {
	ID       string `json:"id" jsonschema:"pattern=^[a-z0-9_]+$,minLength=1,required"`
	Name     string `json:"name" jsonschema:"minLength=1,required"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Dialogue string `json:"dialogue,omitempty"`
	Shop     string `json:"shop,omitempty"`
}

// ShopStock prices one item within a shop.
type ShopStock struct {
	Item string `json:"item" jsonschema:"required"`
	Buy  int    `json:"buy" jsonschema:"title=Buy Price,minimum=1,required"`
	Sell int    `json:"sell" jsonschema:"title=Sell Price,minimum=0,required"`
}

// ShopDoc is one shop's stock list.
type ShopDoc struct {
	ID    string      `json:"id" jsonschema:"pattern=^[a-z0-9_]+$,minLength=1,required"`
	Name  string      `json:"name" jsonschema:"minLength=1,required"`
	Stock []ShopStock `json:"stock" jsonschema:"required"`
}

// MinionSpawn places one enemy spawn with its tier.
type MinionSpawn struct {
	Minion string `json:"minion" jsonschema:"required"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Tier   int    `json:"tier" jsonschema:"minimum=1"`
}

// WorldDoc is the static world layout.
type WorldDoc struct {
	Width     int             `json:"width" jsonschema:"minimum=8,required"`
	Height    int             `json:"height" jsonschema:"minimum=8,required"`
	Border    int             `json:"border" jsonschema:"title=Water Border,minimum=1,required"`
	Spawn     SpawnPoint      `json:"spawn" jsonschema:"title=Player Spawn,required"`
	Resources []ResourceSpawn `json:"resources,omitempty"`
	NPCs      []NPCSpawn      `json:"npcs,omitempty"`
	Shops     []ShopDoc       `json:"shops,omitempty"`
	Minions   []MinionSpawn   `json:"minions,omitempty"`
}
