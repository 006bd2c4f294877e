package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/physbind/physics"
)

type recordingWorker struct {
	adds    []physics.AddBodiesMessage
	removes []physics.RemoveBodiesMessage
}

func (w *recordingWorker) AddBodies(m physics.AddBodiesMessage)       { w.adds = append(w.adds, m) }
func (w *recordingWorker) RemoveBodies(m physics.RemoveBodiesMessage) { w.removes = append(w.removes, m) }
func (w *recordingWorker) Send(physics.Command)                       {}

func TestEmbeddedScenesLoad(t *testing.T) {
	names := Scenes()
	require.NotEmpty(t, names)
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadScene(name)
			require.NoError(t, err)
			assert.NotEmpty(t, spec.Bodies)
		})
	}
}

func TestDiskOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scenes"), 0o755))
	doc := "name: override\nbodies:\n  - name: only\n    shape: Sphere\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scenes", "stack.yaml"), []byte(doc), 0o644))

	old := diskRoot
	diskRoot = dir
	t.Cleanup(func() { diskRoot = old })

	spec, err := LoadScene("scenes/stack.yaml")
	require.NoError(t, err)
	assert.Equal(t, "override", spec.Name)
	require.Len(t, spec.Bodies, 1)
	assert.Equal(t, "only", spec.Bodies[0].Name)

	t.Run("plain_path_after_override", func(t *testing.T) {
		external := filepath.Join(t.TempDir(), "external.yaml")
		require.NoError(t, os.WriteFile(external, []byte("name: external\nbodies:\n  - {name: x, shape: Box}\n"), 0o644))

		spec, err := LoadScene(external)
		require.NoError(t, err)
		assert.Equal(t, "external", spec.Name)
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		wantErr error
		msg     string
	}{
		{
			name: "ok",
			doc:  "bodies:\n  - {name: a, shape: Box}\n  - {name: b, shape: Sphere, instances: 3}\n",
		},
		{
			name:    "unknown_shape",
			doc:     "bodies:\n  - {name: a, shape: Torus}\n",
			wantErr: ErrUnknownShape,
		},
		{
			name: "duplicate",
			doc:  "bodies:\n  - {name: a, shape: Box}\n  - {name: a, shape: Box}\n",
			msg:  "duplicate body",
		},
		{
			name: "missing_name",
			doc:  "bodies:\n  - {shape: Box}\n",
			msg:  "has no name",
		},
		{
			name: "negative_instances",
			doc:  "bodies:\n  - {name: a, shape: Box, instances: -1}\n",
			msg:  "negative instance count",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := ParseScene([]byte(c.doc))
			switch {
			case c.wantErr != nil:
				assert.ErrorIs(t, err, c.wantErr)
			case c.msg != "":
				assert.ErrorContains(t, err, c.msg)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseSceneProps(t *testing.T) {
	spec, err := ParseScene([]byte(`
bodies:
  - name: ball
    shape: Sphere
    props:
      mass: 2
      args: [0.75]
      position: [4, 6, 0]
      is_trigger: true
      collision_filter_group: 2
`))
	require.NoError(t, err)
	p := spec.Bodies[0].Props
	assert.Equal(t, 2.0, p.Mass)
	assert.Equal(t, &physics.Triplet{4, 6, 0}, p.Position)
	assert.True(t, p.IsTrigger)
	require.NotNil(t, p.CollisionFilterGroup)
	assert.Equal(t, 2, *p.CollisionFilterGroup)
	require.Len(t, p.Args, 1)
	assert.Equal(t, 0.75, p.Args[0])
}

func TestScriptProps(t *testing.T) {
	s, err := NewScript("inline", []byte(`
props := func(index) {
	return {position: [index, 2 * index, 0], mass: 3}
}
`))
	require.NoError(t, err)

	base := physics.BodyProps{Mass: 1, Position: physics.Vec(9, 9, 9), Args: []any{0.5}}
	for i := 0; i < 3; i++ {
		got, err := s.Props(i, base)
		require.NoError(t, err)
		assert.Equal(t, 3.0, got.Mass)
		assert.Equal(t, &physics.Triplet{float64(i), float64(2 * i), 0}, got.Position)
		require.Len(t, got.Args, 1)
		assert.Equal(t, 0.5, got.Args[0])
	}
	assert.Equal(t, &physics.Triplet{9, 9, 9}, base.Position, "base must not be modified")
}

func TestScriptErrors(t *testing.T) {
	t.Run("no_props_function", func(t *testing.T) {
		_, err := NewScript("empty", []byte(`x := 1`))
		assert.True(t, errors.Is(err, ErrScript), "got %v", err)
	})
	t.Run("non_map_result", func(t *testing.T) {
		s, err := NewScript("scalar", []byte(`props := func(index) { return index }`))
		require.NoError(t, err)
		_, err = s.Props(0, physics.BodyProps{})
		assert.ErrorIs(t, err, ErrScript)
	})
	t.Run("runtime_error", func(t *testing.T) {
		s, err := NewScript("boom", []byte(`props := func(index) { return {mass: 1 / (index - index)} }`))
		require.NoError(t, err)
		_, err = s.Props(1, physics.BodyProps{})
		assert.ErrorIs(t, err, ErrScript)
	})
}

func TestMountAndUnmount(t *testing.T) {
	spec, err := LoadScene("stack.yaml")
	require.NoError(t, err)

	w := &recordingWorker{}
	ctx := physics.NewContext(physics.WithWorker(w))
	m, err := Mount(ctx, spec)
	require.NoError(t, err)

	require.Len(t, w.adds, len(spec.Bodies))
	assert.Equal(t, len(spec.Bodies), m.Scene.Len())
	assert.Equal(t, []string{"ground", "crates", "ball", "trigger"}, m.Names())

	crates, ok := m.Body("crates")
	require.True(t, ok)
	require.Len(t, crates.IDs(), 5)

	var crateAdd physics.AddBodiesMessage
	for _, a := range w.adds {
		if len(a.UUID) == 5 {
			crateAdd = a
		}
	}
	require.Len(t, crateAdd.Props, 5)
	for i, p := range crateAdd.Props {
		require.NotNil(t, p.Position)
		assert.InDelta(t, 0.5+float64(i)*1.01, p.Position[1], 1e-9)
		assert.Equal(t, 1.0, p.Mass)
	}

	m.Unmount()
	assert.Len(t, w.removes, len(spec.Bodies))
	assert.Equal(t, 0, ctx.Registry().RefCount())
	assert.Equal(t, 0, m.Scene.Len())
	assert.Empty(t, m.Names())
}

func TestRemount(t *testing.T) {
	spec, err := LoadScene("stack.yaml")
	require.NoError(t, err)
	w := &recordingWorker{}
	ctx := physics.NewContext(physics.WithWorker(w))
	prev, err := Mount(ctx, spec)
	require.NoError(t, err)
	crates, _ := prev.Body("crates")

	t.Run("failed_mount_keeps_previous", func(t *testing.T) {
		bad := &SceneSpec{Bodies: []BodySpec{{Name: "a", Shape: "Box", Script: "missing.tengo"}}}
		next, err := Remount(ctx, bad, prev)
		require.Error(t, err)
		assert.Nil(t, next)
		assert.True(t, crates.Active())
		assert.Equal(t, len(spec.Bodies), prev.Scene.Len())
	})

	t.Run("swaps_scene", func(t *testing.T) {
		next, err := Remount(ctx, spec, prev)
		require.NoError(t, err)
		assert.False(t, crates.Active())
		assert.Empty(t, prev.Names())

		again, _ := next.Body("crates")
		assert.True(t, again.Active())
		assert.NotEqual(t, crates.IDs(), again.IDs())
		next.Unmount()
		assert.Equal(t, 0, ctx.Registry().RefCount())
	})
}

func TestMountRejectsBadScript(t *testing.T) {
	spec := &SceneSpec{Bodies: []BodySpec{
		{Name: "a", Shape: "Box"},
		{Name: "b", Shape: "Box", Script: "missing.tengo"},
	}}
	w := &recordingWorker{}
	ctx := physics.NewContext(physics.WithWorker(w))
	_, err := Mount(ctx, spec)
	require.Error(t, err)
	assert.Len(t, w.removes, len(w.adds), "partially mounted bodies must be torn down")
}
