// Package world owns the live simulation state: every player, enemy,
// resource node, NPC, and shop, plus the per-tick processors that advance
// them. All methods assume a single writer; the hub serializes access.
package world

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"rookhaven/server/internal/content"
	"rookhaven/server/internal/grid"
	"rookhaven/server/internal/state"
	"rookhaven/server/logging"
)

// Notice is a private line queued for one player, drained by the hub after
// each tick and delivered outside the shared snapshot.
type Notice struct {
	PlayerID string
	Text     string
}

// World is the authoritative entity store and simulation core.
type World struct {
	cfg     Config
	content *content.Catalog
	grid    *grid.Grid
	rng     *rand.Rand
	pub     logging.Publisher

	players map[string]*state.Player
	enemies map[string]*state.Enemy
	nodes   map[string]*state.ResourceNode
	npcs    map[string]*state.NPC
	shops   map[string]*state.Shop

	spawn   grid.Point
	tick    uint64
	notices []Notice
}

// New seeds a world from the validated content catalog. Enemy spawns on
// unwalkable tiles are skipped; resource nodes and NPCs claim their tiles in
// the walkability grid.
func New(cfg Config, cat *content.Catalog, pub logging.Publisher, seed int64) *World {
	if pub == nil {
		pub = logging.NopPublisher()
	}
	layout := cat.World()
	w := &World{
		cfg:     cfg,
		content: cat,
		grid:    grid.New(layout.Width, layout.Height, layout.Border),
		rng:     rand.New(rand.NewSource(seed)),
		pub:     pub,
		players: make(map[string]*state.Player),
		enemies: make(map[string]*state.Enemy),
		nodes:   make(map[string]*state.ResourceNode),
		npcs:    make(map[string]*state.NPC),
		shops:   make(map[string]*state.Shop),
		spawn:   grid.Point{X: layout.Spawn.X, Y: layout.Spawn.Y},
	}

	for i, spawn := range layout.Resources {
		doc, _ := cat.Resource(spawn.Resource)
		node := &state.ResourceNode{
			ID:            fmt.Sprintf("node-%d", i+1),
			Resource:      doc.ID,
			Kind:          doc.Kind,
			Pos:           grid.Point{X: spawn.X, Y: spawn.Y},
			HitsRemaining: w.rollHits(doc),
		}
		w.nodes[node.ID] = node
		w.grid.Block(node.Pos)
	}

	for _, shop := range layout.Shops {
		stock := make([]state.ShopEntry, 0, len(shop.Stock))
		for _, line := range shop.Stock {
			stock = append(stock, state.ShopEntry{
				Item:      state.ItemID(line.Item),
				BuyPrice:  line.Buy,
				SellPrice: line.Sell,
			})
		}
		w.shops[shop.ID] = &state.Shop{ID: shop.ID, Name: shop.Name, Stock: stock}
	}

	for _, spawn := range layout.NPCs {
		npc := &state.NPC{
			ID:       spawn.ID,
			Name:     spawn.Name,
			Pos:      grid.Point{X: spawn.X, Y: spawn.Y},
			Dialogue: spawn.Dialogue,
			ShopID:   spawn.Shop,
		}
		w.npcs[npc.ID] = npc
		w.grid.Block(npc.Pos)
		if npc.ShopID != "" {
			w.shops[npc.ShopID].NPCID = npc.ID
		}
	}

	for i, spawn := range layout.Minions {
		tile := grid.Point{X: spawn.X, Y: spawn.Y}
		if !w.grid.Walkable(tile) {
			continue
		}
		doc, _ := cat.Minion(spawn.Minion)
		enemy := scaleMinion(doc, spawn.Tier)
		enemy.ID = fmt.Sprintf("enemy-%d", i+1)
		enemy.Pos = tile
		enemy.SpawnPos = tile
		w.enemies[enemy.ID] = enemy
	}

	return w
}

// scaleMinion builds a live enemy from its catalog entry, applying the
// per-spawn tier multiplier once. Tier 1 is the catalog baseline.
func scaleMinion(doc content.MinionDoc, tier int) *state.Enemy {
	if tier < 1 {
		tier = 1
	}
	scale := func(v int) int {
		return v * tier
	}
	return &state.Enemy{
		Minion:    doc.ID,
		Name:      doc.Name,
		Tier:      tier,
		MaxHP:     scale(doc.MaxHP),
		HP:        scale(doc.MaxHP),
		Accuracy:  scale(doc.Accuracy),
		Armor:     scale(doc.Armor),
		DamageMin: scale(doc.DamageMin),
		DamageMax: scale(doc.DamageMax),
	}
}

// Config returns the active tunables.
func (w *World) Config() Config { return w.cfg }

// Content returns the static catalog.
func (w *World) Content() *content.Catalog { return w.content }

// Grid exposes the walkability grid.
func (w *World) Grid() *grid.Grid { return w.grid }

// SpawnPoint returns the tile new and respawning players appear on.
func (w *World) SpawnPoint() grid.Point { return w.spawn }

// TickCount returns the number of completed ticks.
func (w *World) TickCount() uint64 { return w.tick }

// Player looks up a connected player.
func (w *World) Player(id string) (*state.Player, bool) {
	p, ok := w.players[id]
	return p, ok
}

// Enemy looks up a spawned enemy.
func (w *World) Enemy(id string) (*state.Enemy, bool) {
	e, ok := w.enemies[id]
	return e, ok
}

// Node looks up a resource node.
func (w *World) Node(id string) (*state.ResourceNode, bool) {
	n, ok := w.nodes[id]
	return n, ok
}

// NPC looks up a static NPC.
func (w *World) NPC(id string) (*state.NPC, bool) {
	n, ok := w.npcs[id]
	return n, ok
}

// Shop looks up a shop by its id.
func (w *World) Shop(id string) (*state.Shop, bool) {
	s, ok := w.shops[id]
	return s, ok
}

// Players returns the connected players sorted by id for deterministic
// iteration.
func (w *World) Players() []*state.Player {
	ids := make([]string, 0, len(w.players))
	for id := range w.players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	players := make([]*state.Player, 0, len(ids))
	for _, id := range ids {
		players = append(players, w.players[id])
	}
	return players
}

// Enemies returns every enemy sorted by id.
func (w *World) Enemies() []*state.Enemy {
	ids := make([]string, 0, len(w.enemies))
	for id := range w.enemies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	enemies := make([]*state.Enemy, 0, len(ids))
	for _, id := range ids {
		enemies = append(enemies, w.enemies[id])
	}
	return enemies
}

// Nodes returns every resource node sorted by id.
func (w *World) Nodes() []*state.ResourceNode {
	ids := make([]string, 0, len(w.nodes))
	for id := range w.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	nodes := make([]*state.ResourceNode, 0, len(ids))
	for _, id := range ids {
		nodes = append(nodes, w.nodes[id])
	}
	return nodes
}

// NPCs returns every NPC sorted by id.
func (w *World) NPCs() []*state.NPC {
	ids := make([]string, 0, len(w.npcs))
	for id := range w.npcs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	npcs := make([]*state.NPC, 0, len(ids))
	for _, id := range ids {
		npcs = append(npcs, w.npcs[id])
	}
	return npcs
}

// Shops returns every shop sorted by id.
func (w *World) Shops() []*state.Shop {
	ids := make([]string, 0, len(w.shops))
	for id := range w.shops {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	shops := make([]*state.Shop, 0, len(ids))
	for _, id := range ids {
		shops = append(shops, w.shops[id])
	}
	return shops
}

// NewPlayer constructs a fresh default player on the spawn tile.
func (w *World) NewPlayer(id, profileID, name string) *state.Player {
	p := &state.Player{
		ID:        id,
		ProfileID: profileID,
		Name:      name,
		Pos:       w.spawn,
		LastPos:   w.spawn,
		Facing:    state.DefaultFacing,
		Skills:    state.NewSkills(),
		Inventory: state.NewContainer(w.cfg.InventorySlots),
		Bank:      state.NewContainer(w.cfg.BankSlots),
		Equipment: state.NewEquipment(),
		Behavior:  state.Idle(),
	}
	p.MaxHP = w.maxHPFor(p)
	p.HP = p.MaxHP
	return p
}

// AddPlayer registers a player with the live set.
func (w *World) AddPlayer(p *state.Player) {
	w.players[p.ID] = p
}

// RemovePlayer drops a player from the live set. Enemies chasing the player
// lose their target; queued behavior simply stops being processed.
func (w *World) RemovePlayer(id string) {
	delete(w.players, id)
	for _, enemy := range w.enemies {
		if enemy.TargetID == id {
			enemy.TargetID = ""
			enemy.Path = nil
		}
	}
}

// Tick advances the whole world once. Per player: container reconciliation,
// movement, interaction, combat, regeneration; then one global enemy pass.
func (w *World) Tick(now time.Time) {
	w.tick++
	for _, p := range w.Players() {
		w.reconcileContainers(p)
		w.advanceMovement(p, now)
		w.advanceInteraction(p, now)
		w.advanceCombat(p, now)
		w.advanceRegen(p, now)
	}
	w.advanceEnemies(now)
}

// notify queues a private line for a player.
func (w *World) notify(playerID, text string) {
	w.notices = append(w.notices, Notice{PlayerID: playerID, Text: text})
}

// DrainNotices hands back and clears the queued private lines.
func (w *World) DrainNotices() []Notice {
	notices := w.notices
	w.notices = nil
	return notices
}

// rollHits re-rolls a node's hits-before-depletion from its catalog range.
func (w *World) rollHits(doc content.ResourceDoc) int {
	if doc.HitsMax <= doc.HitsMin {
		return doc.HitsMin
	}
	return doc.HitsMin + w.rng.Intn(doc.HitsMax-doc.HitsMin+1)
}

// rollRange picks a uniform integer in [min, max].
func (w *World) rollRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + w.rng.Intn(max-min+1)
}

// rollPercent reports whether a percent-chance roll succeeds.
func (w *World) rollPercent(chance float64) bool {
	if chance <= 0 {
		return false
	}
	if chance >= 100 {
		return true
	}
	return w.rng.Float64()*100 < chance
}

// rollUnit reports whether a [0,1] probability roll succeeds.
func (w *World) rollUnit(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return w.rng.Float64() < p
}
