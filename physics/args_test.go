package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultArgs(t *testing.T) {
	tests := []struct {
		shape ShapeType
		in    []any
		want  []any
	}{
		{Box, nil, []any{1.0, 1.0, 1.0}},
		{Box, []any{2.0, 2.0, 2.0}, []any{2.0, 2.0, 2.0}},
		{Sphere, nil, []any{1.0}},
		{Sphere, []any{0.5}, []any{0.5}},
		{Plane, []any{3.0}, []any{}},
		{Particle, nil, []any{}},
		{Compound, []any{1.0}, []any{}},
		{Cylinder, []any{1.0, 1.0, 2.0, 8}, []any{1.0, 1.0, 2.0, 8}},
		{Trimesh, nil, nil},
		{Heightfield, []any{[]any{1.0, 2.0}}, []any{[]any{1.0, 2.0}}},
		{ShapeType("Mystery"), []any{7}, []any{7}},
	}

	for _, tc := range tests {
		t.Run(string(tc.shape), func(t *testing.T) {
			assert.Equal(t, tc.want, TransformArgs(tc.shape, tc.in))
		})
	}
}

func TestDefaultArgsAreNotShared(t *testing.T) {
	a := TransformArgs(Box, nil)
	a[0] = 5.0
	assert.Equal(t, []any{1.0, 1.0, 1.0}, TransformArgs(Box, nil))
}

func TestConvexPolyhedronArgs(t *testing.T) {
	verts := []any{[]any{0, 0, 0}, []any{1.0, 0, 0}, []any{0, 1, 0}}
	faces := [][]int{{0, 1, 2}}
	normals := [][]float64{{0, 0, 1}}

	got := TransformArgs(ConvexPolyhedron, []any{verts, faces, normals})
	require.Len(t, got, 5)
	assert.Equal(t, []Triplet{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, got[0])
	assert.Equal(t, faces, got[1])
	assert.Equal(t, []Triplet{{0, 0, 1}}, got[2])
	assert.Nil(t, got[3])
	assert.Nil(t, got[4])
}

func TestParseShapeType(t *testing.T) {
	s, err := ParseShapeType(" sphere ")
	require.NoError(t, err)
	assert.Equal(t, Sphere, s)
	assert.True(t, s.Valid())

	_, err = ParseShapeType("capsule")
	assert.EqualError(t, err, `physics: unknown shape type "capsule"`)
	assert.False(t, ShapeType("capsule").Valid())
	assert.Len(t, ShapeTypes(), 9)
}

func TestConverters(t *testing.T) {
	f, ok := ToFloat(3)
	assert.True(t, ok)
	assert.Equal(t, 3.0, f)

	_, ok = ToFloat("3")
	assert.False(t, ok)

	tr, ok := ToTriplet([]any{1, 2.5, float32(3)})
	assert.True(t, ok)
	assert.Equal(t, Triplet{1, 2.5, 3}, tr)

	_, ok = ToTriplet([]any{1, 2})
	assert.False(t, ok)

	ints, ok := ToInts([]any{1.0, 2.0})
	assert.True(t, ok)
	assert.Equal(t, []int{1, 2}, ints)
}

func TestSerialize(t *testing.T) {
	p := Props{
		BodyProps: BodyProps{Mass: 2, Args: []any{"ignored"}},
		OnCollide: func(CollideEvent) {},
	}
	w := p.Serialize([]any{1.0})
	assert.True(t, w.OnCollide)
	assert.Equal(t, []any{1.0}, w.Args)
	assert.Equal(t, 2.0, w.Mass)
	assert.Equal(t, []any{"ignored"}, p.Args, "serializing must not touch the source props")

	assert.False(t, Props{OnCollideBegin: func(CollideEvent) {}}.Serialize(nil).OnCollide)
	assert.False(t, p.Handlers().Empty())
	assert.True(t, Props{}.Handlers().Empty())
}
