package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/physbind/scene"
)

func TestInstanceIDs(t *testing.T) {
	tests := []struct {
		id     string
		object string
		index  int
		ok     bool
	}{
		{"abc/0", "abc", 0, true},
		{"a/b/12", "a/b", 12, true},
		{"abc", "abc", 0, false},
		{"abc/x", "abc/x", 0, false},
		{"abc/-1", "abc/-1", 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			obj, idx, ok := ParseInstanceID(tc.id)
			assert.Equal(t, tc.object, obj)
			assert.Equal(t, tc.index, idx)
			assert.Equal(t, tc.ok, ok)
		})
	}

	mesh := scene.NewInstancedMesh("m", 2)
	mesh.SetUUID("m")
	assert.Equal(t, []string{"m/0", "m/1"}, BodyIDs(mesh))
	assert.Equal(t, "m/1", BodyID(mesh, 1))

	o := scene.NewObject3D("o")
	o.SetUUID("o")
	assert.Equal(t, []string{"o"}, BodyIDs(o))
	assert.Equal(t, "o", BodyID(o, 3))
	assert.Nil(t, BodyIDs(nil))
}

func TestRegistryRefsAndEvents(t *testing.T) {
	r := NewRegistry()
	a := scene.NewObject3D("a")

	r.SetRef("a", a)
	r.SetRef("b", a)
	got, ok := r.Ref("a")
	require.True(t, ok)
	assert.Same(t, a, got)
	assert.Equal(t, 2, r.RefCount())

	hits := 0
	r.SetEvents("a", CollisionHandlers{Collide: func(CollideEvent) { hits++ }})
	assert.Equal(t, 1, r.EventCount())

	h, ok := r.Events("a")
	require.True(t, ok)
	h.dispatch(CollideEvent{Kind: EventCollide})
	h.dispatch(CollideEvent{Kind: EventCollideEnd})
	assert.Equal(t, 1, hits)

	r.DeleteRef("a")
	_, ok = r.Ref("a")
	assert.False(t, ok)
	assert.Equal(t, []string{"a", "b"}, r.IDs(), "events keep the record alive")

	r.DeleteEvents("a")
	assert.Equal(t, []string{"b"}, r.IDs())
	assert.Equal(t, []string{"b"}, r.RefIDs())

	r.SetEvents("b", CollisionHandlers{})
	r.SetRef("b", nil)
	assert.Empty(t, r.IDs())
	assert.Empty(t, r.World().Entities())

	// deleting unknown ids is a no-op
	r.DeleteRef("nope")
	r.DeleteEvents("nope")
}

func TestRegistryState(t *testing.T) {
	r := NewRegistry()
	o := scene.NewObject3D("o")

	_, ok := r.setState("o", BodyState{})
	assert.False(t, ok, "state for an unknown body is dropped")

	var seen []Triplet
	unsub := r.SubscribeState("o", func(st BodyState) { seen = append(seen, st.Position) })

	r.SetRef("o", o)
	_, ok = r.setState("o", BodyState{Position: Triplet{1, 2, 3}})
	require.True(t, ok)
	st, ok := r.State("o")
	require.True(t, ok)
	assert.Equal(t, Triplet{1, 2, 3}, st.Position)
	assert.Equal(t, []Triplet{{1, 2, 3}}, seen)

	unsub()
	r.setState("o", BodyState{Position: Triplet{4, 5, 6}})
	assert.Len(t, seen, 1)

	r.DeleteRef("o")
	_, ok = r.State("o")
	assert.False(t, ok)
	assert.Empty(t, r.IDs())
}

func TestRegistrySynced(t *testing.T) {
	r := NewRegistry()
	assert.Empty(t, r.Synced())

	for _, id := range []string{"c", "a", "b"} {
		r.SetRef(id, scene.NewObject3D(id))
	}
	assert.Empty(t, r.Synced(), "no state reported yet")

	r.setState("c", BodyState{})
	r.setState("a", BodyState{})
	assert.Equal(t, []string{"a", "c"}, r.Synced())

	r.DeleteRef("c")
	assert.Equal(t, []string{"a"}, r.Synced())
}
