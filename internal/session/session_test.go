package session

import (
	"testing"
	"time"

	"github.com/TheJegede/Negotiator/internal/config"
	"github.com/TheJegede/Negotiator/internal/deal"
	"github.com/TheJegede/Negotiator/internal/models"
)

func testManager() *Manager {
	cfg := config.DealConfig{
		PriceMin:             50,
		PriceMax:             300,
		MinPriceGap:          5,
		ReservationFloorPct:  0.50,
		DeliveryMin:          40,
		DeliveryMax:          100,
		MinDeliveryGap:       3,
		DeliveryTargetFloor:  5,
		DeliveryReserveFloor: 3,
		StandardVolume:       10000,
		Tier1Threshold:       20000,
		Tier1Discount:        0.05,
		Tier2Threshold:       50000,
		Tier2Discount:        0.08,
	}
	return NewManager(&deal.Generator{Config: cfg})
}

func TestCreateSeedsGreetingAndParams(t *testing.T) {
	m := testManager()
	s := m.Create("student-42", "Good morning. Welcome to ChipSource.")

	if s.ID == "" {
		t.Fatal("session ID not assigned")
	}
	if s.State() != StateNegotiating {
		t.Fatalf("new session state = %q", s.State())
	}
	if len(s.History) != 1 || s.History[0].Role != models.RoleSeller {
		t.Fatalf("history should open with the seller greeting, got %+v", s.History)
	}
	if s.ParamsBrief == "" {
		t.Fatal("parameter brief not rendered")
	}

	// Same student ID replays the same scenario in a fresh session.
	again := m.Create("student-42", "hello")
	if again.ID == s.ID {
		t.Fatal("sessions must get distinct IDs")
	}
	if !again.Params.Price.Opening.Equal(s.Params.Price.Opening) {
		t.Fatalf("student-pinned parameters differ: %v vs %v",
			again.Params.Price.Opening, s.Params.Price.Opening)
	}

	other := m.Create("student-43", "hello")
	if other.Params.Price.Opening.Equal(s.Params.Price.Opening) &&
		other.Params.Delivery.Opening == s.Params.Delivery.Opening {
		t.Fatal("different students should not share a scenario")
	}
}

func TestGetDeleteLifecycle(t *testing.T) {
	m := testManager()
	s := m.Create("", "hi")

	got, err := m.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("Get returned (%v, %v)", got, err)
	}
	if _, err := m.Get("no-such-id"); err != ErrNotFound {
		t.Fatalf("missing session error = %v, want ErrNotFound", err)
	}

	if err := m.Delete(s.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := m.Delete(s.ID); err != ErrNotFound {
		t.Fatalf("double delete error = %v, want ErrNotFound", err)
	}
	if m.Count() != 0 {
		t.Fatalf("count after delete = %d", m.Count())
	}
}

func TestListAndClosed(t *testing.T) {
	m := testManager()
	a := m.Create("", "hi")
	b := m.Create("", "hi")

	if got := m.List(); len(got) != 2 {
		t.Fatalf("List returned %d sessions", len(got))
	}

	b.SetState(StateClosing)

	closed := m.Closed()
	if len(closed) != 1 || closed[0] != b.ID {
		t.Fatalf("Closed = %v, want [%s]", closed, b.ID)
	}
	_ = a
}

func TestSweepRemovesIdleOnly(t *testing.T) {
	m := testManager()
	idle := m.Create("", "hi")
	fresh := m.Create("", "hi")

	idle.Touch(time.Now().UTC().Add(-3 * time.Hour))

	if removed := m.Sweep(2 * time.Hour); removed != 1 {
		t.Fatalf("Sweep removed %d sessions, want 1", removed)
	}
	if _, err := m.Get(idle.ID); err != ErrNotFound {
		t.Fatal("idle session should be gone")
	}
	if _, err := m.Get(fresh.ID); err != nil {
		t.Fatal("fresh session should survive the sweep")
	}
}

func TestManagerLiveDuringHeldSession(t *testing.T) {
	// A chat turn holds its session lock across the provider call. The
	// manager must keep serving other sessions, and the sweep must not
	// queue behind the held lock.
	m := testManager()
	busy := m.Create("", "hi")
	other := m.Create("", "hi")

	busy.Lock()
	defer busy.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if removed := m.Sweep(time.Hour); removed != 0 {
			t.Errorf("Sweep removed %d fresh sessions", removed)
		}
		if _, err := m.Get(other.ID); err != nil {
			t.Errorf("Get during held session: %v", err)
		}
		if got := m.Closed(); len(got) != 0 {
			t.Errorf("Closed = %v, want none", got)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("manager operations blocked behind a held session lock")
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	m := testManager()
	s := m.Create("", "hi")

	snap := s.Snapshot()
	s.Lock()
	s.Append(models.RoleBuyer, "can you do $45?")
	s.Unlock()

	if len(snap.History) != 1 {
		t.Fatalf("snapshot history grew to %d entries", len(snap.History))
	}
	if len(s.Snapshot().History) != 2 {
		t.Fatal("live session should have two messages")
	}
}
