package server

import (
	"encoding/json"
	"fmt"
	"strings"

	"rookhaven/server/internal/state"
)

// clientMessage is the flat envelope every inbound intent arrives in. Type
// selects the intent; the remaining fields are read per type and unknown
// extras are ignored.
type clientMessage struct {
	Type string `json:"type"`

	DX int `json:"dx,omitempty"`
	DY int `json:"dy,omitempty"`
	X  int `json:"x,omitempty"`
	Y  int `json:"y,omitempty"`

	Target string `json:"target,omitempty"` // node, enemy, or npc id
	Slot   string `json:"slot,omitempty"`   // equipment slot name
	Item   string `json:"item,omitempty"`
	Shop   string `json:"shop,omitempty"`
	Index  int    `json:"index,omitempty"`
	To     int    `json:"to,omitempty"`
	Qty    int    `json:"qty,omitempty"`

	Text string `json:"text,omitempty"`

	// Join-only fields.
	Name      string `json:"name,omitempty"`
	ProfileID string `json:"profileId,omitempty"`
}

// Inbound intent types.
const (
	msgJoin          = "join"
	msgMove          = "move"
	msgMoveTo        = "moveTo"
	msgStop          = "stop"
	msgInteract      = "interact"
	msgStopInteract  = "stopInteract"
	msgAttack        = "attack"
	msgInventoryMove = "inventoryMove"
	msgDrop          = "drop"
	msgUseItem       = "useItem"
	msgEquip         = "equip"
	msgUnequip       = "unequip"
	msgDeposit       = "deposit"
	msgWithdraw      = "withdraw"
	msgOpenBank      = "openBank"
	msgBuy           = "buy"
	msgSell          = "sell"
	msgTalk          = "talk"
	msgChat          = "chat"
)

// Outbound message types.
const (
	msgWelcome      = "welcome"
	msgState        = "state"
	msgPlayerJoined = "playerJoined"
	msgPlayerLeft   = "playerLeft"
	msgShopOpen     = "shopOpen"
	msgBankOpen     = "bankOpen"
)

const maxChatLength = 200

func decodeClientMessage(raw []byte) (clientMessage, error) {
	var msg clientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return clientMessage{}, fmt.Errorf("decode client message: %w", err)
	}
	if msg.Type == "" {
		return clientMessage{}, fmt.Errorf("client message missing type")
	}
	return msg, nil
}

// sanitizeChat trims and truncates a chat line. Empty results are dropped by
// the caller.
func sanitizeChat(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > maxChatLength {
		text = text[:maxChatLength]
	}
	return text
}

type welcomeMessage struct {
	Type string        `json:"type"`
	ID   string        `json:"id"`
	Bank []bankSlot    `json:"bank"`
	Snap WorldSnapshot `json:"world"`
}

type stateMessage struct {
	Type       string        `json:"type"`
	ServerTime int64         `json:"serverTime"`
	Snap       WorldSnapshot `json:"world"`
}

type playerJoinedMessage struct {
	Type   string     `json:"type"`
	Player PlayerView `json:"player"`
}

type playerLeftMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type chatMessage struct {
	Type string `json:"type"`
	From string `json:"from,omitempty"` // empty for system lines
	Name string `json:"name,omitempty"`
	Text string `json:"text"`
}

type shopOpenMessage struct {
	Type string   `json:"type"`
	Shop ShopView `json:"shop"`
}

type bankSlot struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// bankOpenMessage carries both sides of the banking screen so the client can
// render transfers without waiting for the next snapshot.
type bankOpenMessage struct {
	Type      string            `json:"type"`
	Inventory []state.ItemStack `json:"inventory"`
	Slots     []bankSlot        `json:"slots"`
}
