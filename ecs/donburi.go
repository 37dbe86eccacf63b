// Package ecs provides ECS adapters for sequoia.
package ecs

import (
	"github.com/phanxgames/sequoia"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for sequoia interaction
// events. Subscribe to this in your ECS systems to receive interact and
// movement-blocked events.
var InteractionEventType = events.NewEventType[sequoia.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) sequoia.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event sequoia.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
