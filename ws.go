package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(*http.Request) bool { return true },
}

const (
	joinDeadline   = 10 * time.Second
	maxMessageSize = 4096
)

// ServeWS upgrades one connection and runs its session: the first message
// must be a join carrying the display name and an optional profile id, then
// the loop feeds every intent to the hub until the socket closes. Disconnect
// always runs, so the profile save on the way out cannot be skipped.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)

	conn.SetReadDeadline(time.Now().Add(joinDeadline))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		return
	}
	join, err := decodeClientMessage(raw)
	if err != nil || join.Type != msgJoin {
		return
	}
	conn.SetReadDeadline(time.Time{})

	playerID, err := h.Connect(join.Name, join.ProfileID, conn)
	if err != nil {
		log.Printf("join rejected: %v", err)
		return
	}
	defer h.Disconnect(playerID)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if err := h.Apply(playerID, raw); err != nil {
			log.Printf("intent from %s dropped: %v", playerID, err)
		}
	}
}
