// Package server exposes the tile world over websockets: it owns the hub
// that serializes every mutation, the wire protocol, and the fixed-rate
// simulation loop.
package server

import (
	"time"

	"rookhaven/server/internal/state"
)

// PlayerView is the wire form of one player.
type PlayerView struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	X         int               `json:"x"`
	Y         int               `json:"y"`
	Facing    string            `json:"facing"`
	HP        int               `json:"hp"`
	MaxHP     int               `json:"maxHp"`
	Behavior  string            `json:"behavior"`
	Status    string            `json:"status,omitempty"`
	Skills    map[string]int64  `json:"skills,omitempty"`
	Inventory []state.ItemStack `json:"inventory,omitempty"`
	Equipment []state.EquippedItem `json:"equipment,omitempty"`
}

// EnemyView is the wire form of one enemy. Dead enemies are omitted from
// snapshots entirely.
type EnemyView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Tier  int    `json:"tier"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	HP    int    `json:"hp"`
	MaxHP int    `json:"maxHp"`
}

// NodeView is the wire form of one resource node.
type NodeView struct {
	ID       string `json:"id"`
	Resource string `json:"resource"`
	Kind     string `json:"kind"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Depleted bool   `json:"depleted"`
}

// NPCView is the wire form of one NPC.
type NPCView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Shop string `json:"shop,omitempty"`
}

// WorldSnapshot is the full shared state pushed in welcome and state
// messages. Clients replace, never merge.
type WorldSnapshot struct {
	Tick    uint64       `json:"t"`
	Width   int          `json:"width"`
	Height  int          `json:"height"`
	Border  int          `json:"border"`
	Players []PlayerView `json:"players"`
	Enemies []EnemyView  `json:"enemies"`
	Nodes   []NodeView   `json:"nodes"`
	NPCs    []NPCView    `json:"npcs"`
	Shops   []ShopView   `json:"shops"`
}

// snapshotLocked assembles the full snapshot. Caller holds the hub mutex.
func (h *Hub) snapshotLocked(now time.Time) WorldSnapshot {
	w := h.world
	layout := w.Content().World()
	snap := WorldSnapshot{
		Tick:   w.TickCount(),
		Width:  layout.Width,
		Height: layout.Height,
		Border: layout.Border,
	}
	for _, p := range w.Players() {
		snap.Players = append(snap.Players, playerView(p))
	}
	for _, e := range w.Enemies() {
		if e.Dead(now) || e.AwaitingRespawn(now) {
			continue
		}
		snap.Enemies = append(snap.Enemies, EnemyView{
			ID: e.ID, Name: e.Name, Tier: e.Tier,
			X: e.Pos.X, Y: e.Pos.Y, HP: e.HP, MaxHP: e.MaxHP,
		})
	}
	for _, n := range w.Nodes() {
		snap.Nodes = append(snap.Nodes, NodeView{
			ID: n.ID, Resource: n.Resource, Kind: n.Kind,
			X: n.Pos.X, Y: n.Pos.Y, Depleted: n.Depleted(now),
		})
	}
	for _, n := range w.NPCs() {
		snap.NPCs = append(snap.NPCs, NPCView{
			ID: n.ID, Name: n.Name, X: n.Pos.X, Y: n.Pos.Y, Shop: n.ShopID,
		})
	}
	for _, s := range w.Shops() {
		snap.Shops = append(snap.Shops, shopView(s))
	}
	return snap
}

func playerView(p *state.Player) PlayerView {
	view := PlayerView{
		ID: p.ID, Name: p.Name,
		X: p.Pos.X, Y: p.Pos.Y,
		Facing:   string(p.Facing),
		HP:       p.HP,
		MaxHP:    p.MaxHP,
		Behavior: string(p.Behavior.Kind),
		Status:   p.Status,
	}
	view.Skills = make(map[string]int64, len(state.SkillIDs))
	for _, id := range state.SkillIDs {
		view.Skills[string(id)] = p.Skills.XP[id]
	}
	view.Inventory = p.Inventory.Clone().Slots
	view.Equipment = p.Equipment.Clone().Slots
	return view
}

// ShopView is the wire form of an opened shop screen.
type ShopView struct {
	ID    string            `json:"id"`
	NPC   string            `json:"npc"`
	Name  string            `json:"name"`
	Stock []state.ShopEntry `json:"stock"`
}

func shopView(s *state.Shop) ShopView {
	stock := make([]state.ShopEntry, len(s.Stock))
	copy(stock, s.Stock)
	return ShopView{ID: s.ID, NPC: s.NPCID, Name: s.Name, Stock: stock}
}
