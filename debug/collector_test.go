package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/physbind/physics"
	"github.com/milk9111/physbind/physics/body"
	"github.com/milk9111/physbind/scene"
)

var _ physics.Debugger = (*Collector)(nil)

func TestCollector(t *testing.T) {
	c := NewCollector()
	args := []any{1.0}
	c.Add("b", physics.Props{BodyProps: physics.BodyProps{Mass: 2, Args: args}}, physics.Sphere)
	c.Add("a", physics.Props{}, physics.Box)
	args[0] = 5.0

	snap := c.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "a", snap[0].ID)
	assert.Equal(t, physics.Sphere, snap[1].Shape)
	assert.Equal(t, []any{1.0}, snap[1].Props.Args, "args are copied")

	c.Remove("a")
	c.Remove("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Len())

	added, removed := c.Totals()
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, removed)
}

type nopWorker struct{}

func (nopWorker) AddBodies(physics.AddBodiesMessage)       {}
func (nopWorker) RemoveBodies(physics.RemoveBodiesMessage) {}
func (nopWorker) Send(physics.Command)                     {}

func TestCollectorFollowsBodies(t *testing.T) {
	c := NewCollector()
	ctx := physics.NewContext(physics.WithWorker(nopWorker{}), physics.WithDebugger(c))
	mesh := scene.NewInstancedMesh("m", 3)
	mesh.SetUUID("m")

	b := body.Box(ctx, nil, body.FromObject(mesh))
	assert.Equal(t, 3, c.Len())
	e, ok := c.Get("m/2")
	require.True(t, ok)
	assert.Equal(t, physics.Box, e.Shape)

	b.Destroy()
	assert.Zero(t, c.Len())
}
