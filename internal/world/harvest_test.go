package world

import (
	"testing"
	"time"

	"rookhaven/server/internal/grid"
	"rookhaven/server/internal/state"
)

func nodeAt(t *testing.T, w *World, pos grid.Point) *state.ResourceNode {
	t.Helper()
	for _, node := range w.Nodes() {
		if node.Pos == pos {
			return node
		}
	}
	t.Fatalf("no node at %v", pos)
	return nil
}

func TestHarvestDepletesOnThirdAttempt(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	p := addTestPlayer(t, w, "p1")
	oak := nodeAt(t, w, grid.Point{X: 10, Y: 9})
	t0 := time.Unix(0, 0)

	if !w.StartInteract("p1", oak.ID) {
		t.Fatalf("StartInteract failed")
	}

	w.Tick(t0)
	if oak.HitsRemaining != 2 {
		t.Fatalf("after attempt 1 hits = %d, want 2", oak.HitsRemaining)
	}
	w.Tick(t0.Add(100 * time.Millisecond))
	if oak.HitsRemaining != 1 {
		t.Fatalf("after attempt 2 hits = %d, want 1", oak.HitsRemaining)
	}
	w.Tick(t0.Add(200 * time.Millisecond))

	if !oak.Depleted(t0.Add(201 * time.Millisecond)) {
		t.Fatalf("node not depleted after third attempt")
	}
	if want := t0.Add(1200 * time.Millisecond); !oak.DepletedUntil.Equal(want) {
		t.Fatalf("depletion window ends %v, want %v", oak.DepletedUntil, want)
	}
	if oak.HitsRemaining != 3 {
		t.Fatalf("hits not re-rolled on depletion: %d", oak.HitsRemaining)
	}
	if p.Behavior.Kind != state.BehaviorIdle {
		t.Fatalf("behavior = %q, want idle after depletion", p.Behavior.Kind)
	}
	if got := p.Inventory.Count("logs"); got != 3 {
		t.Fatalf("gathered %d logs, want 3", got)
	}
	if got := p.Skills.XP[state.SkillWoodcutting]; got != 75 {
		t.Fatalf("woodcutting xp = %d, want 75", got)
	}
}

func TestHarvestFailureStillConsumesHit(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	p := addTestPlayer(t, w, "p1")
	barren := nodeAt(t, w, grid.Point{X: 12, Y: 12})
	p.Pos = grid.Point{X: 12, Y: 13}

	w.StartInteract("p1", barren.ID)
	w.Tick(time.Unix(0, 0))

	if barren.HitsRemaining != 2 {
		t.Fatalf("failed attempt did not consume a hit: %d", barren.HitsRemaining)
	}
	if got := p.Inventory.Count("logs"); got != 0 {
		t.Fatalf("failed attempt yielded %d logs", got)
	}
}

func TestHarvestLockedNodeLeavesCounterUntouched(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	p := addTestPlayer(t, w, "p1")
	rock := nodeAt(t, w, grid.Point{X: 14, Y: 8})
	p.Pos = grid.Point{X: 14, Y: 9}

	w.StartInteract("p1", rock.ID)
	w.Tick(time.Unix(0, 0))

	if rock.HitsRemaining != 3 {
		t.Fatalf("locked node lost hits: %d", rock.HitsRemaining)
	}
	if p.Behavior.Kind != state.BehaviorIdle {
		t.Fatalf("behavior = %q, want idle", p.Behavior.Kind)
	}
	if p.Status == "" {
		t.Fatalf("expected a level requirement status line")
	}
}

func TestHarvestWalksAdjacentFirst(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	p := addTestPlayer(t, w, "p1")
	barren := nodeAt(t, w, grid.Point{X: 12, Y: 12})

	if !w.StartInteract("p1", barren.ID) {
		t.Fatalf("StartInteract failed")
	}
	if len(p.Behavior.Path) == 0 {
		t.Fatalf("expected an approach path to be queued")
	}

	now := time.Unix(0, 0)
	for i := 0; i < 12; i++ {
		w.Tick(now)
		now = now.Add(w.cfg.StepInterval)
	}
	if grid.Manhattan(p.Pos, barren.Pos) > 1 {
		t.Fatalf("player never reached the node: %v", p.Pos)
	}
	if barren.HitsRemaining >= 3 {
		t.Fatalf("no gather attempt after arrival: hits = %d", barren.HitsRemaining)
	}
}

func TestStopInteractReturnsToIdle(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	p := addTestPlayer(t, w, "p1")
	oak := nodeAt(t, w, grid.Point{X: 10, Y: 9})

	w.StartInteract("p1", oak.ID)
	w.StopInteract("p1")
	if p.Behavior.Kind != state.BehaviorIdle {
		t.Fatalf("behavior = %q, want idle", p.Behavior.Kind)
	}
}

func TestDepletedNodeRefusesGathering(t *testing.T) {
	w := newTestWorld(t, DefaultConfig())
	p := addTestPlayer(t, w, "p1")
	oak := nodeAt(t, w, grid.Point{X: 10, Y: 9})
	t0 := time.Unix(0, 0)
	oak.DepletedUntil = t0.Add(time.Minute)

	w.StartInteract("p1", oak.ID)
	w.Tick(t0)

	if oak.HitsRemaining != 3 {
		t.Fatalf("depleted node lost hits: %d", oak.HitsRemaining)
	}
	if p.Behavior.Kind != state.BehaviorIdle {
		t.Fatalf("behavior = %q, want idle", p.Behavior.Kind)
	}
}
