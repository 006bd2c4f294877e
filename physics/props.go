package physics

// Triplet is an x, y, z vector.
type Triplet [3]float64

// Quad is an x, y, z, w quaternion.
type Quad [4]float64

// Vec returns a pointer to a triplet, for optional props fields.
func Vec(x, y, z float64) *Triplet {
	return &Triplet{x, y, z}
}

// Ptr returns a pointer to v, for optional scalar props fields.
func Ptr[T any](v T) *T {
	return &v
}

// BodyType selects how the worker integrates a body.
type BodyType string

const (
	Dynamic   BodyType = "Dynamic"
	Static    BodyType = "Static"
	Kinematic BodyType = "Kinematic"
)

// Material overrides contact properties of a body.
type Material struct {
	Name        string  `json:"name,omitempty" yaml:"name"`
	Friction    float64 `json:"friction" yaml:"friction"`
	Restitution float64 `json:"restitution" yaml:"restitution"`
}

// CompoundShape is one child of a Compound body.
type CompoundShape struct {
	Type     ShapeType `json:"type" yaml:"type"`
	Args     []any     `json:"args,omitempty" yaml:"args"`
	Position *Triplet  `json:"position,omitempty" yaml:"position"`
	Rotation *Triplet  `json:"rotation,omitempty" yaml:"rotation"`
	Material *Material `json:"material,omitempty" yaml:"material"`
}

// BodyProps are the serializable physical parameters of a body.
type BodyProps struct {
	Args                 []any           `json:"args,omitempty" yaml:"args"`
	Mass                 float64         `json:"mass,omitempty" yaml:"mass"`
	Position             *Triplet        `json:"position,omitempty" yaml:"position"`
	Rotation             *Triplet        `json:"rotation,omitempty" yaml:"rotation"`
	Quaternion           *Quad           `json:"quaternion,omitempty" yaml:"quaternion"`
	Velocity             *Triplet        `json:"velocity,omitempty" yaml:"velocity"`
	AngularVelocity      *Triplet        `json:"angularVelocity,omitempty" yaml:"angular_velocity"`
	LinearFactor         *Triplet        `json:"linearFactor,omitempty" yaml:"linear_factor"`
	AngularFactor        *Triplet        `json:"angularFactor,omitempty" yaml:"angular_factor"`
	LinearDamping        *float64        `json:"linearDamping,omitempty" yaml:"linear_damping"`
	AngularDamping       *float64        `json:"angularDamping,omitempty" yaml:"angular_damping"`
	AllowSleep           *bool           `json:"allowSleep,omitempty" yaml:"allow_sleep"`
	SleepSpeedLimit      *float64        `json:"sleepSpeedLimit,omitempty" yaml:"sleep_speed_limit"`
	SleepTimeLimit       *float64        `json:"sleepTimeLimit,omitempty" yaml:"sleep_time_limit"`
	CollisionFilterGroup *int            `json:"collisionFilterGroup,omitempty" yaml:"collision_filter_group"`
	CollisionFilterMask  *int            `json:"collisionFilterMask,omitempty" yaml:"collision_filter_mask"`
	CollisionResponse    *bool           `json:"collisionResponse,omitempty" yaml:"collision_response"`
	FixedRotation        bool            `json:"fixedRotation,omitempty" yaml:"fixed_rotation"`
	IsTrigger            bool            `json:"isTrigger,omitempty" yaml:"is_trigger"`
	Material             *Material       `json:"material,omitempty" yaml:"material"`
	Type                 BodyType        `json:"type,omitempty" yaml:"type"`
	UserData             map[string]any  `json:"userData,omitempty" yaml:"user_data"`
	Shapes               []CompoundShape `json:"shapes,omitempty" yaml:"shapes"`
}

// Props are what a property accessor returns for one body: the serializable
// parameters plus optional collision callbacks, which never leave the process.
type Props struct {
	BodyProps `yaml:",inline"`

	OnCollide      func(CollideEvent) `json:"-" yaml:"-"`
	OnCollideBegin func(CollideEvent) `json:"-" yaml:"-"`
	OnCollideEnd   func(CollideEvent) `json:"-" yaml:"-"`
}

// GetByIndex returns the props of instance index; index is 0 for plain objects.
type GetByIndex func(index int) Props

// WireProps is the worker-bound form of Props.
type WireProps struct {
	BodyProps
	OnCollide bool `json:"onCollide"`
}

// Handlers returns the collision callbacks of p.
func (p Props) Handlers() CollisionHandlers {
	return CollisionHandlers{
		Collide:      p.OnCollide,
		CollideBegin: p.OnCollideBegin,
		CollideEnd:   p.OnCollideEnd,
	}
}

// Serialize drops callbacks, records whether OnCollide was set and replaces
// Args with the computed constructor arguments.
func (p Props) Serialize(args []any) WireProps {
	body := p.BodyProps
	body.Args = args
	return WireProps{BodyProps: body, OnCollide: p.OnCollide != nil}
}
