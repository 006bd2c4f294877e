package scene

import "github.com/google/uuid"

// Object is anything a physics body can attach to.
type Object interface {
	UUID() string
	Base() *Object3D
}

// Instanced is an object drawn once per instance matrix.
type Instanced interface {
	Object
	Count() int
	MatrixAt(i int) Mat4
	SetMatrixAt(i int, m Mat4)
	SetUsage(u Usage)
	MarkInstancesDirty()
}

// Object3D is a node with a local transform.
type Object3D struct {
	Name       string
	Position   Vec3
	Rotation   Vec3 // XYZ Euler radians, kept in sync with Quaternion
	Quaternion Quat
	Scale      Vec3
	UserData   map[string]any

	uuid   string
	matrix Mat4
}

// NewObject3D returns an object at the origin with a fresh UUID.
func NewObject3D(name string) *Object3D {
	o := &Object3D{
		Name:       name,
		Quaternion: IdentityQuat(),
		Scale:      Vec3{1, 1, 1},
		uuid:       uuid.NewString(),
	}
	o.UpdateMatrix()
	return o
}

func (o *Object3D) UUID() string      { return o.uuid }
func (o *Object3D) Base() *Object3D   { return o }
func (o *Object3D) Matrix() Mat4      { return o.matrix }
func (o *Object3D) String() string    { return o.Name + "#" + o.uuid }
func (o *Object3D) SetUUID(id string) { o.uuid = id }

// SetRotation sets Euler angles and the matching quaternion.
func (o *Object3D) SetRotation(e Vec3) {
	o.Rotation = e
	o.Quaternion = QuatFromEuler(e)
}

// SetQuaternion sets the quaternion and the matching Euler angles.
func (o *Object3D) SetQuaternion(q Quat) {
	o.Quaternion = q
	o.Rotation = q.Euler()
}

// UpdateMatrix recomputes the local matrix from position, quaternion and scale.
func (o *Object3D) UpdateMatrix() {
	o.matrix = Compose(o.Position, o.Quaternion, o.Scale)
}
