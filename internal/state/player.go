package state

import (
	"time"

	"rookhaven/server/internal/grid"
)

// FacingDirection is the cardinal heading reported to clients.
type FacingDirection string

const (
	FacingUp    FacingDirection = "up"
	FacingDown  FacingDirection = "down"
	FacingLeft  FacingDirection = "left"
	FacingRight FacingDirection = "right"

	DefaultFacing FacingDirection = FacingDown
)

// DeriveFacing picks the heading that best matches a step delta, falling back
// to the previous heading when the mover stands still.
func DeriveFacing(dx, dy int, fallback FacingDirection) FacingDirection {
	if fallback == "" {
		fallback = DefaultFacing
	}
	if dx == 0 && dy == 0 {
		return fallback
	}
	if abs(dy) >= abs(dx) && dy != 0 {
		if dy > 0 {
			return FacingDown
		}
		return FacingUp
	}
	if dx > 0 {
		return FacingRight
	}
	return FacingLeft
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Player is the live state for one connected character. It is mutated by the
// tick processors and, between ticks, by inbound intent handlers; both run
// under the hub mutex so there is never a concurrent writer.
type Player struct {
	ID        string
	ProfileID string
	Name      string

	Pos     grid.Point
	LastPos grid.Point
	Facing  FacingDirection

	HP    int
	MaxHP int

	Skills    Skills
	Inventory Container
	Bank      Container
	Equipment Equipment

	Behavior Behavior

	// Earliest-next-time deadlines. An action fires only once its deadline has
	// passed and then schedules the next one from its own duration.
	NextMoveAt     time.Time
	NextInteractAt time.Time
	NextAttackAt   time.Time
	NextRegenAt    time.Time

	// Status carries the last user-facing action feedback line.
	Status string
}

// SetStatus records feedback text shown to the player on the next snapshot.
func (p *Player) SetStatus(text string) {
	p.Status = text
}

// MoveTo advances the player one tile, remembering the previous distinct
// position for shared-tile displacement during combat.
func (p *Player) MoveTo(next grid.Point) {
	if next == p.Pos {
		return
	}
	p.Facing = DeriveFacing(next.X-p.Pos.X, next.Y-p.Pos.Y, p.Facing)
	p.LastPos = p.Pos
	p.Pos = next
}

// ApplyDamage subtracts damage clamping at zero and reports the new HP.
func (p *Player) ApplyDamage(amount int) int {
	if amount < 0 {
		amount = 0
	}
	p.HP -= amount
	if p.HP < 0 {
		p.HP = 0
	}
	return p.HP
}

// Heal raises HP clamping at MaxHP and reports whether anything changed.
func (p *Player) Heal(amount int) bool {
	if amount <= 0 || p.HP >= p.MaxHP {
		return false
	}
	p.HP += amount
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
	return true
}

// ShiftMaxHP changes MaxHP by delta and shifts current HP by the same amount,
// so a gear change neither kills nor fully heals the player. HP never drops
// below 1 for a living player.
func (p *Player) ShiftMaxHP(delta int) {
	if delta == 0 {
		return
	}
	p.MaxHP += delta
	if p.MaxHP < 1 {
		p.MaxHP = 1
	}
	p.HP += delta
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
	if p.HP < 1 {
		p.HP = 1
	}
}
