package sequoia

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// mockStore records emitted interaction events. Shared by the raycast
// and player tests.
type mockStore struct {
	events []InteractionEvent
}

func (m *mockStore) EmitEvent(e InteractionEvent) {
	m.events = append(m.events, e)
}

// --- picking ---

func TestPickNodeNearestWins(t *testing.T) {
	s := NewScene()
	far := NewCube("far")
	far.Position = mgl32.Vec3{0, 1, -7}
	near := NewCube("near")
	near.Position = mgl32.Vec3{0, 1, -3}
	// Far first, so the near hit has to replace it.
	s.Root().AddChild(far)
	s.Root().AddChild(near)

	got := s.PickNode(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, -1})
	if got != near {
		t.Fatalf("PickNode = %v, want near cube", got)
	}
}

func TestPickNodePerpendicularRadius(t *testing.T) {
	s := NewScene()
	offAxis := NewCube("off")
	offAxis.Position = mgl32.Vec3{2, 1, -5}
	s.Root().AddChild(offAxis)

	origin := mgl32.Vec3{0, 1, 0}
	dir := mgl32.Vec3{0, 0, -1}
	if got := s.PickNode(origin, dir); got != nil {
		t.Errorf("cube 2 units off the ray picked as %v, want nil", got)
	}

	offAxis.Position = mgl32.Vec3{1, 1, -5}
	if got := s.PickNode(origin, dir); got != offAxis {
		t.Errorf("cube 1 unit off the ray not picked, got %v", got)
	}
}

func TestPickNodeBehindIgnored(t *testing.T) {
	s := NewScene()
	behind := NewCube("behind")
	behind.Position = mgl32.Vec3{0, 1, 3}
	s.Root().AddChild(behind)

	if got := s.PickNode(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, -1}); got != nil {
		t.Errorf("cube behind the origin picked as %v, want nil", got)
	}
}

func TestPickNodeRangeLimit(t *testing.T) {
	s := NewScene()
	c := NewCube("distant")
	c.Position = mgl32.Vec3{0, 1, -12}
	s.Root().AddChild(c)

	origin := mgl32.Vec3{0, 1, 0}
	dir := mgl32.Vec3{0, 0, -1}
	if got := s.PickNode(origin, dir); got != nil {
		t.Errorf("cube at distance 12 picked as %v, want nil", got)
	}

	c.Position = mgl32.Vec3{0, 1, -9.5}
	if got := s.PickNode(origin, dir); got != c {
		t.Errorf("cube at distance 9.5 not picked, got %v", got)
	}
}

func TestPickNodeSkipsLights(t *testing.T) {
	s := NewScene()
	lamp := NewPointLight("lamp", Color{1, 1, 1, 1}, 1)
	lamp.Position = mgl32.Vec3{0, 1, -2}
	c := NewCube("cube")
	c.Position = mgl32.Vec3{0, 1, -6}
	s.Root().AddChild(lamp)
	s.Root().AddChild(c)

	got := s.PickNode(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, -1})
	if got != c {
		t.Fatalf("PickNode = %v, want the cube behind the light", got)
	}
}

func TestPickNodeDescendsGroups(t *testing.T) {
	s := NewScene()
	g := NewGroup("shelf")
	g.Position = mgl32.Vec3{0, 0, -2}
	c := NewCube("prop")
	c.Position = mgl32.Vec3{0, 1, -3}
	g.AddChild(c)
	s.Root().AddChild(g)

	// World position composes to (0, 1, -5).
	got := s.PickNode(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, -1})
	if got != c {
		t.Fatalf("PickNode = %v, want cube nested in group", got)
	}
}

func TestPickNodeGroupNotATarget(t *testing.T) {
	s := NewScene()
	g := NewGroup("empty")
	g.Position = mgl32.Vec3{0, 1, -4}
	s.Root().AddChild(g)

	if got := s.PickNode(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, -1}); got != nil {
		t.Errorf("empty group picked as %v, want nil", got)
	}
}

// --- scene interaction ---

func TestInteractBubblesFromCollider(t *testing.T) {
	s := NewScene()
	store := &mockStore{}
	s.SetEntityStore(store)

	// Camera starts at (0,1,5) looking down -Z.
	door := NewGroup("door")
	door.Position = mgl32.Vec3{0, 1, -2}
	door.EntityID = 42
	opened := false
	door.OnInteract = func(n *Node) {
		opened = true
	}
	box := NewCollider("door_box", 2, 2.5, 0.2)
	door.AddChild(box)
	s.Root().AddChild(door)

	handled := s.Interact()
	if handled != door {
		t.Fatalf("Interact = %v, want door group", handled)
	}
	if !opened {
		t.Error("door handler did not run")
	}
	if len(store.events) != 1 {
		t.Fatalf("len(events) = %d, want 1", len(store.events))
	}
	e := store.events[0]
	if e.Type != EventInteract {
		t.Errorf("event type = %v, want EventInteract", e.Type)
	}
	if e.Node != door || e.EntityID != 42 {
		t.Errorf("event = {%v, %d}, want {door, 42}", e.Node, e.EntityID)
	}
}

func TestInteractUnhandledEmitsNothing(t *testing.T) {
	s := NewScene()
	store := &mockStore{}
	s.SetEntityStore(store)

	c := NewCube("mute")
	c.Position = mgl32.Vec3{0, 1, -2}
	s.Root().AddChild(c)

	if handled := s.Interact(); handled != nil {
		t.Errorf("Interact = %v, want nil for handler-less target", handled)
	}
	if len(store.events) != 0 {
		t.Errorf("len(events) = %d, want 0", len(store.events))
	}
}

func TestInteractMiss(t *testing.T) {
	s := NewScene()
	store := &mockStore{}
	s.SetEntityStore(store)

	if handled := s.Interact(); handled != nil {
		t.Errorf("Interact = %v, want nil in empty scene", handled)
	}
	if len(store.events) != 0 {
		t.Errorf("len(events) = %d, want 0", len(store.events))
	}
}

func TestInteractWithoutStore(t *testing.T) {
	s := NewScene()
	c := NewCube("target")
	c.Position = mgl32.Vec3{0, 1, -2}
	c.OnInteract = func(n *Node) {}
	s.Root().AddChild(c)

	// No store set: handler still runs, nothing to emit to.
	if handled := s.Interact(); handled != c {
		t.Fatalf("Interact = %v, want cube", handled)
	}
}
