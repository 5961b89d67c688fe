// Package logging carries structured gameplay events from the simulation to
// configurable sinks. The simulation publishes facts (a kill, a level-up, a
// save); sinks decide how to render them.
package logging

import "time"

// EventType names what happened.
type EventType string

const (
	EventPlayerConnected    EventType = "player.connected"
	EventPlayerDisconnected EventType = "player.disconnected"
	EventPlayerDied         EventType = "player.died"
	EventLevelUp            EventType = "player.level_up"
	EventEnemyKilled        EventType = "enemy.killed"
	EventLootGranted        EventType = "loot.granted"
	EventNodeDepleted       EventType = "node.depleted"
	EventProfilesSaved      EventType = "profiles.saved"
)

// Severity orders events for sink filtering.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarn
	SeverityError
)

// EntityKind tags an event participant.
type EntityKind string

const (
	EntityKindPlayer EntityKind = "player"
	EntityKindEnemy  EntityKind = "enemy"
	EntityKindNode   EntityKind = "node"
	EntityKindWorld  EntityKind = "world"
)

// EntityRef identifies one event participant.
type EntityRef struct {
	ID   string     `json:"id"`
	Kind EntityKind `json:"kind"`
}

// Event is one structured gameplay fact.
type Event struct {
	Type     EventType      `json:"type"`
	Tick     uint64         `json:"tick"`
	Time     time.Time      `json:"time"`
	Actor    EntityRef      `json:"actor"`
	Targets  []EntityRef    `json:"targets,omitempty"`
	Severity Severity       `json:"severity"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// WithTarget appends a participant beyond the actor.
func (e Event) WithTarget(ref EntityRef) Event {
	e.Targets = append(e.Targets, ref)
	return e
}

// WithExtra attaches a key/value pair, allocating the map lazily.
func (e Event) WithExtra(key string, value any) Event {
	if e.Extra == nil {
		e.Extra = make(map[string]any, 1)
	}
	e.Extra[key] = value
	return e
}

// Publisher accepts events. Implementations must not block.
type Publisher interface {
	Publish(event Event)
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(event Event)

// Publish forwards the event to the wrapped function.
func (f PublisherFunc) Publish(event Event) {
	if f == nil {
		return
	}
	f(event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(Event) {}

// NopPublisher returns a publisher that discards everything.
func NopPublisher() Publisher {
	return nopPublisher{}
}
