package ecs

import (
	"testing"

	"github.com/phanxgames/sequoia"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []sequoia.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e sequoia.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(sequoia.InteractionEvent{
		Type:     sequoia.EventInteract,
		EntityID: 42,
	})

	store.EmitEvent(sequoia.InteractionEvent{
		Type: sequoia.EventBlocked,
	})

	// Events are queued — process them.
	InteractionEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Type != sequoia.EventInteract || e0.EntityID != 42 {
		t.Errorf("event 0: %+v", e0)
	}

	e1 := received[1]
	if e1.Type != sequoia.EventBlocked {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	world := donburi.NewWorld()
	var store sequoia.EntityStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	InteractionEventType.Subscribe(world, func(w donburi.World, e sequoia.InteractionEvent) {
		count1++
	})
	InteractionEventType.Subscribe(world, func(w donburi.World, e sequoia.InteractionEvent) {
		count2++
	})

	store.EmitEvent(sequoia.InteractionEvent{Type: sequoia.EventInteract})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
