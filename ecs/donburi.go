package ecs

import (
	"github.com/phanxgames/arbor"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for arbor interaction events.
// Subscribe to this in your ECS systems to receive hover and click events.
var InteractionEventType = events.NewEventType[arbor.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Interaction events are published to InteractionEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) arbor.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event arbor.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}

// ClickCounter tallies click events per entity name. Attach it with Track
// and read it after ProcessEvents.
type ClickCounter struct {
	counts map[string]int
}

// Track subscribes the counter to InteractionEventType on world.
func (c *ClickCounter) Track(world donburi.World) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	InteractionEventType.Subscribe(world, func(_ donburi.World, e arbor.InteractionEvent) {
		if e.Type == arbor.EventClick {
			c.counts[e.Name]++
		}
	})
}

// Count returns the number of clicks recorded for name.
func (c *ClickCounter) Count(name string) int {
	return c.counts[name]
}
