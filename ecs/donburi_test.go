package ecs

import (
	"testing"

	"github.com/phanxgames/arbor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

type box struct {
	node    *arbor.Node
	clicked int
}

func (b *box) WorldObject() *arbor.Node        { return b.node }
func (b *box) Click(ev *arbor.PointerEvent)    { b.clicked++ }
func (b *box) ClickOut(ev *arbor.PointerEvent) {}

func newBox(name string, x float64) *box {
	n := arbor.NewMeshNode(name, arbor.NewBoxMesh(arbor.Vec3{X: 1, Y: 1, Z: 1}), arbor.NewStandardMaterial(arbor.ColorWhite))
	n.Position = arbor.Vec3{X: x}
	return &box{node: n}
}

func TestNewDonburiStore(t *testing.T) {
	store := NewDonburiStore(donburi.NewWorld())
	require.NotNil(t, store)
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []arbor.InteractionEvent
	InteractionEventType.Subscribe(world, func(w donburi.World, e arbor.InteractionEvent) {
		received = append(received, e)
	})

	store.EmitEvent(arbor.InteractionEvent{Type: arbor.EventClick, Name: "tree", X: 100, Y: 200})
	store.EmitEvent(arbor.InteractionEvent{Type: arbor.EventHoverEnter, Name: "rock"})

	// Events are queued until processed.
	assert.Empty(t, received)
	InteractionEventType.ProcessEvents(world)

	require.Len(t, received, 2)
	assert.Equal(t, arbor.EventClick, received[0].Type)
	assert.Equal(t, "tree", received[0].Name)
	assert.Equal(t, 100.0, received[0].X)
	assert.Equal(t, 200.0, received[0].Y)
	assert.Equal(t, arbor.EventHoverEnter, received[1].Type)
}

func TestDonburiStore_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var count1, count2 int
	InteractionEventType.Subscribe(world, func(w donburi.World, e arbor.InteractionEvent) { count1++ })
	InteractionEventType.Subscribe(world, func(w donburi.World, e arbor.InteractionEvent) { count2++ })

	store.EmitEvent(arbor.InteractionEvent{Type: arbor.EventClick})
	events.ProcessAllEvents(world)

	assert.Equal(t, 1, count1)
	assert.Equal(t, 1, count2)
}

func TestWorldPublishesClicks(t *testing.T) {
	ecsWorld := donburi.NewWorld()
	w := arbor.NewWorld(arbor.WithEntityStore(NewDonburiStore(ecsWorld)))
	w.SetViewport(800, 600)
	cam := w.Camera()
	cam.Position = arbor.Vec3{Z: 10}
	cam.Target = arbor.Vec3{}
	cam.Aspect = 800.0 / 600.0

	a := newBox("a", 0)
	b := newBox("b", 100)
	require.NoError(t, w.Add(a))
	require.NoError(t, w.Add(b))

	var counter ClickCounter
	counter.Track(ecsWorld)

	w.PointerDown(400, 300)
	InteractionEventType.ProcessEvents(ecsWorld)

	assert.Equal(t, 1, a.clicked)
	assert.Equal(t, 0, b.clicked)
	assert.Equal(t, 1, counter.Count("a"))
	assert.Equal(t, 0, counter.Count("b"))
}
