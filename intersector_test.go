package arbor

import "testing"

type recordingStore struct {
	events []InteractionEvent
}

func (s *recordingStore) EmitEvent(ev InteractionEvent) {
	s.events = append(s.events, ev)
}

// hoverOnly implements only the hover-enter capability.
type hoverOnly struct {
	node    *Node
	entered int
}

func (h *hoverOnly) WorldObject() *Node { return h.node }
func (h *hoverOnly) HoverEnter(ev *PointerEvent) { h.entered++ }

func newTestIntersector() *Intersector {
	i := NewIntersector(newTestCamera(), nil)
	i.SetViewport(viewW, viewH)
	return i
}

func TestIntersectorAttachIdempotent(t *testing.T) {
	i := newTestIntersector()
	var events []string
	a := newProbe("a", Vec3{}, &events)

	i.Attach(a)
	i.Attach(a)
	i.Attach(nil)
	i.Attach(NewStatic(NewGroup("scenery")))

	if got := len(i.Registered()); got != 1 {
		t.Fatalf("Registered() len = %d, want 1", got)
	}
	if !i.IsRegistered(a) {
		t.Error("a should be registered")
	}

	i.PointerDown(viewW/2, viewH/2)
	if !equalEvents(events, []string{"a:click"}) {
		t.Errorf("events = %v, want one click", events)
	}
}

func TestIntersectorHoverIsEdgeTriggered(t *testing.T) {
	i := newTestIntersector()
	var events []string
	a := newProbe("a", Vec3{}, &events)
	i.Attach(a)

	moves := []struct {
		x, y    float64
		hovered bool
	}{
		{viewW / 2, viewH / 2, true},
		{viewW/2 + 1, viewH / 2, true},
		{10, 10, false},
		{20, 10, false},
		{viewW / 2, viewH / 2, true},
	}
	for k, m := range moves {
		i.PointerMove(m.x, m.y)
		if got := i.IsHovered(a); got != m.hovered {
			t.Errorf("move %d: IsHovered = %v, want %v", k, got, m.hovered)
		}
	}
	want := []string{"a:enter", "a:out", "a:enter"}
	if !equalEvents(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestIntersectorHoverRequiresVisibleRoot(t *testing.T) {
	i := newTestIntersector()
	var events []string
	a := newProbe("a", Vec3{}, &events)
	a.node.Visible = false
	i.Attach(a)

	i.PointerMove(viewW/2, viewH/2)
	if i.IsHovered(a) || len(events) != 0 {
		t.Fatalf("hidden root hovered: events = %v", events)
	}

	// Hidden roots remain clickable.
	i.PointerDown(viewW/2, viewH/2)
	if !equalEvents(events, []string{"a:click"}) {
		t.Errorf("events = %v, want click on hidden root", events)
	}

	a.node.Visible = true
	i.PointerMove(viewW/2, viewH/2)
	if !i.IsHovered(a) {
		t.Error("visible root should become hovered")
	}
}

func TestIntersectorClickAndClickOut(t *testing.T) {
	i := newTestIntersector()
	var events []string
	a := newProbe("a", Vec3{}, &events)
	b := newProbe("b", Vec3{X: 100}, &events)
	i.Attach(a)
	i.Attach(b)

	ev := i.PointerDown(viewW/2, viewH/2)
	want := []string{"a:click", "b:clickout"}
	if !equalEvents(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
	if !ev.DefaultPrevented() {
		t.Error("pointer-down default should be prevented")
	}
	if ev.Type != EventPointerDown {
		t.Errorf("Type = %v, want %v", ev.Type, EventPointerDown)
	}
}

func TestIntersectorPressBetweenEntitiesClicksOutOfBoth(t *testing.T) {
	i := newTestIntersector()
	var events []string
	i.Attach(newProbe("a", Vec3{X: -2}, &events))
	i.Attach(newProbe("b", Vec3{X: 2}, &events))

	ev := i.PointerDown(viewW/2, viewH/2)
	want := []string{"a:clickout", "b:clickout"}
	if !equalEvents(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
	if !ev.DefaultPrevented() {
		t.Error("pointer-down default should be prevented")
	}
}

func TestIntersectorOverlappingEntitiesAllClick(t *testing.T) {
	i := newTestIntersector()
	var events []string
	i.Attach(newProbe("front", Vec3{Z: 2}, &events))
	i.Attach(newProbe("back", Vec3{Z: -2}, &events))

	i.PointerDown(viewW/2, viewH/2)
	want := []string{"front:click", "back:click"}
	if !equalEvents(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestIntersectorDetachDuringDispatch(t *testing.T) {
	i := newTestIntersector()
	var events []string
	a := newProbe("a", Vec3{}, &events)
	b := newProbe("b", Vec3{X: 100}, &events)
	c := newProbe("c", Vec3{X: -100}, &events)
	a.onClick = func() {
		i.Detach(b)
		i.Attach(c)
	}
	i.Attach(a)
	i.Attach(b)

	i.PointerDown(viewW/2, viewH/2)
	if !equalEvents(events, []string{"a:click"}) {
		t.Errorf("events = %v, want only a:click", events)
	}
	if i.IsRegistered(b) || !i.IsRegistered(c) {
		t.Error("registration changes made in a handler should apply")
	}

	events = nil
	i.PointerDown(viewW/2, viewH/2)
	want := []string{"a:click", "c:clickout"}
	if !equalEvents(events, want) {
		t.Errorf("second pass events = %v, want %v", events, want)
	}
}

func TestIntersectorDetachClearsHoverSilently(t *testing.T) {
	i := newTestIntersector()
	var events []string
	a := newProbe("a", Vec3{}, &events)
	i.Attach(a)
	i.PointerMove(viewW/2, viewH/2)

	i.Detach(a)
	i.Detach(a)
	if i.IsHovered(a) {
		t.Error("detached entity still hovered")
	}
	i.PointerMove(10, 10)
	if !equalEvents(events, []string{"a:enter"}) {
		t.Errorf("events = %v, want only a:enter", events)
	}

	// Re-attaching starts from a clean hover state.
	i.Attach(a)
	i.PointerMove(viewW/2, viewH/2)
	if !i.IsHovered(a) {
		t.Error("re-attached entity should hover again")
	}
}

func TestIntersectorZeroViewportNeverHits(t *testing.T) {
	i := NewIntersector(newTestCamera(), nil)
	var events []string
	i.Attach(newProbe("a", Vec3{}, &events))

	i.PointerMove(0, 0)
	ev := i.PointerDown(0, 0)
	if !equalEvents(events, []string{"a:clickout"}) {
		t.Errorf("events = %v, want a:clickout", events)
	}
	if ev.NDC != (Vec2{}) {
		t.Errorf("NDC = %v, want origin", ev.NDC)
	}
}

func TestIntersectorForwardsToEntityStore(t *testing.T) {
	i := newTestIntersector()
	store := &recordingStore{}
	i.SetEntityStore(store)

	var events []string
	i.Attach(newProbe("a", Vec3{}, &events))
	h := &hoverOnly{node: NewMeshNode("h", NewBoxMesh(Vec3{X: 1, Y: 1, Z: 1}), nil)}
	h.node.Position = Vec3{X: 100}
	i.Attach(h)

	i.PointerMove(viewW/2, viewH/2)
	i.PointerDown(viewW/2, viewH/2)

	// h has no click-out handler, so its miss is not forwarded.
	wantTypes := []EventType{EventHoverEnter, EventClick}
	if len(store.events) != len(wantTypes) {
		t.Fatalf("store got %d events, want %d", len(store.events), len(wantTypes))
	}
	for k, want := range wantTypes {
		got := store.events[k]
		if got.Type != want {
			t.Errorf("event %d Type = %v, want %v", k, got.Type, want)
		}
		if got.Name != "a" {
			t.Errorf("event %d Name = %q, want %q", k, got.Name, "a")
		}
	}
	if store.events[1].X != viewW/2 || store.events[1].Y != viewH/2 {
		t.Errorf("click coordinates = (%v, %v)", store.events[1].X, store.events[1].Y)
	}
	if h.entered != 0 {
		t.Errorf("h.entered = %d, want 0", h.entered)
	}
}
