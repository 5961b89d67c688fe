package world

import (
	"strconv"
	"time"

	"rookhaven/server/internal/state"
	"rookhaven/server/logging"
)

// event starts an info-severity event stamped with the current tick.
func (w *World) event(kind logging.EventType, actor logging.EntityRef) logging.Event {
	return logging.Event{
		Type:     kind,
		Tick:     w.tick,
		Time:     time.Now(),
		Actor:    actor,
		Severity: logging.SeverityInfo,
	}
}

func playerRef(p *state.Player) logging.EntityRef {
	return logging.EntityRef{ID: p.ID, Kind: logging.EntityKindPlayer}
}

func enemyRef(e *state.Enemy) logging.EntityRef {
	return logging.EntityRef{ID: e.ID, Kind: logging.EntityKindEnemy}
}

func nodeRef(n *state.ResourceNode) logging.EntityRef {
	return logging.EntityRef{ID: n.ID, Kind: logging.EntityKindNode}
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
