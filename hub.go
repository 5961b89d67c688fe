package server

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"rookhaven/server/internal/persist"
	"rookhaven/server/internal/state"
	"rookhaven/server/internal/world"
	"rookhaven/server/logging"
)

const (
	// DefaultTickInterval is the fixed simulation step.
	DefaultTickInterval = 100 * time.Millisecond
	// DefaultAutosaveInterval bounds how much progress a crash can lose.
	DefaultAutosaveInterval = 5 * time.Second
)

// Hub owns the world and serializes every mutation behind one mutex: inbound
// intents, the tick, and snapshot assembly all run under it. Websocket writes
// and database writes happen outside.
type Hub struct {
	mu          sync.Mutex
	world       *world.World
	store       *persist.Store
	pub         logging.Publisher
	subscribers map[string]*subscriber
	nextID      atomic.Uint64

	tickEvery     time.Duration
	autosaveEvery time.Duration
	nextSaveAt    time.Time
}

type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// writeWait bounds every websocket write so one backpressured client cannot
// stall the simulation goroutine.
const writeWait = 10 * time.Second

func (s *subscriber) send(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(v)
}

// NewHub wires a hub around a seeded world and an open profile store.
func NewHub(w *world.World, store *persist.Store, pub logging.Publisher) *Hub {
	if pub == nil {
		pub = logging.NopPublisher()
	}
	return &Hub{
		world:         w,
		store:         store,
		pub:           pub,
		subscribers:   make(map[string]*subscriber),
		tickEvery:     DefaultTickInterval,
		autosaveEvery: DefaultAutosaveInterval,
	}
}

// SetIntervals overrides the tick and autosave cadence, for tests and ops.
func (h *Hub) SetIntervals(tick, autosave time.Duration) {
	if tick > 0 {
		h.tickEvery = tick
	}
	if autosave > 0 {
		h.autosaveEvery = autosave
	}
}

// Connect admits one client: it restores the profile (or mints a new one),
// registers the player and its connection, sends the welcome snapshot, and
// announces the join to everyone else.
func (h *Hub) Connect(name, profileID string, conn *websocket.Conn) (string, error) {
	if name == "" {
		name = "Adventurer"
	}
	id := fmt.Sprintf("player-%d", h.nextID.Add(1))
	now := time.Now()

	h.mu.Lock()
	p := h.world.NewPlayer(id, profileID, name)
	if profileID == "" {
		p.ProfileID = persist.NewProfileID()
	} else {
		profile, found, err := h.store.Load(profileID)
		switch {
		case err != nil:
			// A broken stored profile must not block the join; the player
			// starts fresh and the next save overwrites the bad row.
			log.Printf("restore profile %s failed, starting fresh: %v", profileID, err)
		case found:
			h.world.ApplyProfile(p, persist.Sanitize(profile, h.world.Content()))
		}
	}
	h.world.AddPlayer(p)
	sub := &subscriber{conn: conn}
	h.subscribers[id] = sub
	welcome := welcomeMessage{
		Type: msgWelcome,
		ID:   id,
		Bank: bankSlots(p),
		Snap: h.snapshotLocked(now),
	}
	joined := playerJoinedMessage{Type: msgPlayerJoined, Player: playerView(p)}
	tick := h.world.TickCount()
	h.mu.Unlock()

	if err := sub.send(welcome); err != nil {
		h.dropPlayer(id)
		return "", fmt.Errorf("send welcome to %s: %w", id, err)
	}
	h.broadcastExcept(id, joined)
	h.pub.Publish(logging.Event{
		Type: logging.EventPlayerConnected, Tick: tick, Time: now,
		Actor: logging.EntityRef{ID: id, Kind: logging.EntityKindPlayer}, Severity: logging.SeverityInfo,
	})
	return id, nil
}

// Disconnect saves the player's profile and removes them from the world.
func (h *Hub) Disconnect(playerID string) {
	h.mu.Lock()
	p, ok := h.world.Player(playerID)
	var profile persist.Profile
	if ok {
		profile = h.world.CaptureProfile(p)
	}
	h.world.RemovePlayer(playerID)
	delete(h.subscribers, playerID)
	tick := h.world.TickCount()
	h.mu.Unlock()
	if !ok {
		return
	}

	if err := h.store.SaveAll([]persist.Profile{profile}); err != nil {
		log.Printf("save profile on disconnect for %s: %v", playerID, err)
	}
	h.broadcastExcept(playerID, playerLeftMessage{Type: msgPlayerLeft, ID: playerID})
	h.pub.Publish(logging.Event{
		Type: logging.EventPlayerDisconnected, Tick: tick, Time: time.Now(),
		Actor: logging.EntityRef{ID: playerID, Kind: logging.EntityKindPlayer}, Severity: logging.SeverityInfo,
	})
}

// dropPlayer removes a half-connected player without the save-and-announce
// ceremony.
func (h *Hub) dropPlayer(playerID string) {
	h.mu.Lock()
	h.world.RemovePlayer(playerID)
	delete(h.subscribers, playerID)
	h.mu.Unlock()
}

// Apply dispatches one decoded intent. Rejected intents fail silently or
// through the player's status line; only transport problems surface as
// errors.
func (h *Hub) Apply(playerID string, raw []byte) error {
	msg, err := decodeClientMessage(raw)
	if err != nil {
		return err
	}

	var (
		reply     any
		broadcast any
	)
	h.mu.Lock()
	switch msg.Type {
	case msgMove:
		h.world.SetMoveDirection(playerID, msg.DX, msg.DY)
	case msgMoveTo:
		h.world.SetMoveTarget(playerID, msg.X, msg.Y)
	case msgStop:
		h.world.StopAction(playerID)
	case msgInteract:
		h.world.StartInteract(playerID, msg.Target)
	case msgStopInteract:
		h.world.StopInteract(playerID)
	case msgAttack:
		h.world.StartCombat(playerID, msg.Target)
	case msgInventoryMove:
		h.world.MoveInventory(playerID, msg.Index, msg.To)
	case msgDrop:
		h.world.DropItem(playerID, msg.Index, msg.Qty)
	case msgUseItem:
		h.world.UseItem(playerID, msg.Index)
	case msgEquip:
		h.world.Equip(playerID, msg.Index)
	case msgUnequip:
		h.world.Unequip(playerID, state.EquipSlot(msg.Slot))
	case msgDeposit:
		h.world.Deposit(playerID, msg.Index, msg.Qty)
	case msgWithdraw:
		h.world.Withdraw(playerID, state.ItemID(msg.Item), msg.Qty)
	case msgOpenBank:
		if p, ok := h.world.Player(playerID); ok {
			reply = bankOpenMessage{
				Type:      msgBankOpen,
				Inventory: p.Inventory.Clone().Slots,
				Slots:     bankSlots(p),
			}
		}
	case msgBuy:
		h.world.Buy(playerID, msg.Shop, state.ItemID(msg.Item), msg.Qty)
	case msgSell:
		h.world.Sell(playerID, msg.Shop, msg.Index, msg.Qty)
	case msgTalk:
		if npc, shop, ok := h.world.Talk(playerID, msg.Target); ok {
			if shop != nil {
				reply = shopOpenMessage{Type: msgShopOpen, Shop: shopView(shop)}
			} else if npc.Dialogue != "" {
				reply = chatMessage{Type: msgChat, Name: npc.Name, Text: npc.Dialogue}
			}
		}
	case msgChat:
		if text := sanitizeChat(msg.Text); text != "" {
			name := playerID
			if p, ok := h.world.Player(playerID); ok {
				name = p.Name
			}
			broadcast = chatMessage{Type: msgChat, From: playerID, Name: name, Text: text}
		}
	default:
		// Unknown intents are dropped; clients may be newer than the server.
	}
	sub := h.subscribers[playerID]
	h.mu.Unlock()

	if reply != nil && sub != nil {
		if err := sub.send(reply); err != nil {
			return fmt.Errorf("send reply to %s: %w", playerID, err)
		}
	}
	if broadcast != nil {
		h.broadcast(broadcast)
	}
	return nil
}

func bankSlots(p *state.Player) []bankSlot {
	slots := make([]bankSlot, 0, len(p.Bank.Slots))
	for _, stack := range p.Bank.Slots {
		slots = append(slots, bankSlot{Item: string(stack.Item), Quantity: stack.Quantity})
	}
	return slots
}

// broadcast sends one message to every subscriber. Write failures are logged
// and left for the reader loop to clean up.
func (h *Hub) broadcast(v any) {
	h.broadcastExcept("", v)
}

func (h *Hub) broadcastExcept(skipID string, v any) {
	h.mu.Lock()
	targets := make(map[string]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		if id == skipID {
			continue
		}
		targets[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range targets {
		if err := sub.send(v); err != nil {
			log.Printf("broadcast to %s failed: %v", id, err)
			// A failed write leaves the connection unusable; closing it wakes
			// the reader loop, which disconnects the player.
			sub.conn.Close()
		}
	}
}

func (h *Hub) sendTo(playerID string, v any) {
	h.mu.Lock()
	sub := h.subscribers[playerID]
	h.mu.Unlock()
	if sub == nil {
		return
	}
	if err := sub.send(v); err != nil {
		log.Printf("send to %s failed: %v", playerID, err)
		sub.conn.Close()
	}
}

// RunSimulation drives the fixed-rate loop until stop closes. Each step
// advances the world one tick, pushes the shared snapshot to every client,
// delivers private notices, and autosaves connected profiles on its own
// deadline.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	ticker := time.NewTicker(h.tickEvery)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			h.saveConnected()
			return
		case now := <-ticker.C:
			h.step(now)
		}
	}
}

// step runs one simulation tick. The mutex is held only while mutating and
// snapshotting; fan-out and persistence run after release.
func (h *Hub) step(now time.Time) {
	h.mu.Lock()
	h.world.Tick(now)
	snap := h.snapshotLocked(now)
	notices := h.world.DrainNotices()
	var profiles []persist.Profile
	if !now.Before(h.nextSaveAt) {
		for _, p := range h.world.Players() {
			profiles = append(profiles, h.world.CaptureProfile(p))
		}
		h.nextSaveAt = now.Add(h.autosaveEvery)
	}
	tick := snap.Tick
	h.mu.Unlock()

	h.broadcast(stateMessage{Type: msgState, ServerTime: now.UnixMilli(), Snap: snap})
	for _, notice := range notices {
		h.sendTo(notice.PlayerID, chatMessage{Type: msgChat, Text: notice.Text})
	}
	if len(profiles) > 0 {
		if err := h.store.SaveAll(profiles); err != nil {
			log.Printf("autosave failed: %v", err)
			return
		}
		h.pub.Publish(logging.Event{
			Type: logging.EventProfilesSaved, Tick: tick, Time: now,
			Actor:    logging.EntityRef{ID: "world", Kind: logging.EntityKindWorld},
			Severity: logging.SeverityDebug,
		}.WithExtra("count", len(profiles)))
	}
}

// saveConnected flushes every connected profile, used on shutdown.
func (h *Hub) saveConnected() {
	h.mu.Lock()
	var profiles []persist.Profile
	for _, p := range h.world.Players() {
		profiles = append(profiles, h.world.CaptureProfile(p))
	}
	h.mu.Unlock()
	if len(profiles) == 0 {
		return
	}
	if err := h.store.SaveAll(profiles); err != nil {
		log.Printf("save on shutdown failed: %v", err)
	}
}
