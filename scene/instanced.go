package scene

// Usage hints how often instance matrices change.
type Usage int

const (
	StaticDraw Usage = iota
	DynamicDraw
)

// InstancedMesh is one renderable holding count instance matrices.
type InstancedMesh struct {
	Object3D

	matrices []Mat4
	usage    Usage
	dirty    bool
	version  int
}

// NewInstancedMesh returns a mesh with count identity instances.
func NewInstancedMesh(name string, count int) *InstancedMesh {
	if count < 0 {
		count = 0
	}
	m := &InstancedMesh{Object3D: *NewObject3D(name)}
	m.matrices = make([]Mat4, count)
	for i := range m.matrices {
		m.matrices[i] = Identity()
	}
	return m
}

func (m *InstancedMesh) Base() *Object3D  { return &m.Object3D }
func (m *InstancedMesh) Count() int       { return len(m.matrices) }
func (m *InstancedMesh) Usage() Usage     { return m.usage }
func (m *InstancedMesh) SetUsage(u Usage) { m.usage = u }

func (m *InstancedMesh) MatrixAt(i int) Mat4 {
	if i < 0 || i >= len(m.matrices) {
		return Identity()
	}
	return m.matrices[i]
}

// SetMatrixAt writes one instance slot; out of range indices are ignored.
func (m *InstancedMesh) SetMatrixAt(i int, mat Mat4) {
	if i < 0 || i >= len(m.matrices) {
		return
	}
	m.matrices[i] = mat
}

// MarkInstancesDirty flags the instance buffer for upload.
func (m *InstancedMesh) MarkInstancesDirty() {
	m.dirty = true
	m.version++
}

// NeedsUpdate reports whether instances changed since the last ClearDirty.
func (m *InstancedMesh) NeedsUpdate() bool { return m.dirty }

// Version counts MarkInstancesDirty calls.
func (m *InstancedMesh) Version() int { return m.version }

// ClearDirty is called by the renderer after uploading the instance buffer.
func (m *InstancedMesh) ClearDirty() { m.dirty = false }
