package physics

// AddBodiesMessage asks the worker to create one body per uuid.
// Props[i] belongs to UUID[i].
type AddBodiesMessage struct {
	Type  ShapeType   `json:"type"`
	UUID  []string    `json:"uuid"`
	Props []WireProps `json:"props"`
}

// RemoveBodiesMessage asks the worker to drop bodies previously added together.
type RemoveBodiesMessage struct {
	UUID []string `json:"uuid"`
}

// Op names a single-body or world command.
type Op string

const (
	OpSetPosition             Op = "setPosition"
	OpSetRotation             Op = "setRotation"
	OpSetQuaternion           Op = "setQuaternion"
	OpSetVelocity             Op = "setVelocity"
	OpSetAngularVelocity      Op = "setAngularVelocity"
	OpSetLinearFactor         Op = "setLinearFactor"
	OpSetAngularFactor        Op = "setAngularFactor"
	OpSetMass                 Op = "setMass"
	OpSetLinearDamping        Op = "setLinearDamping"
	OpSetAngularDamping       Op = "setAngularDamping"
	OpSetSleepSpeedLimit      Op = "setSleepSpeedLimit"
	OpSetSleepTimeLimit       Op = "setSleepTimeLimit"
	OpSetCollisionFilterGroup Op = "setCollisionFilterGroup"
	OpSetCollisionFilterMask  Op = "setCollisionFilterMask"
	OpSetAllowSleep           Op = "setAllowSleep"
	OpSetCollisionResponse    Op = "setCollisionResponse"
	OpSetFixedRotation        Op = "setFixedRotation"
	OpSetIsTrigger            Op = "setIsTrigger"
	OpSetMaterial             Op = "setMaterial"
	OpApplyForce              Op = "applyForce"
	OpApplyImpulse            Op = "applyImpulse"
	OpApplyLocalForce         Op = "applyLocalForce"
	OpApplyLocalImpulse       Op = "applyLocalImpulse"
	OpApplyTorque             Op = "applyTorque"
	OpSleep                   Op = "sleep"
	OpWakeUp                  Op = "wakeUp"

	OpSetGravity    Op = "setGravity"
	OpSetIterations Op = "setIterations"
)

// Command is a fire-and-forget request for one body, or for the world when
// UUID is empty.
type Command struct {
	Op    Op     `json:"op"`
	UUID  string `json:"uuid,omitempty"`
	Props any    `json:"props,omitempty"`
}

// ApplyProps is the payload of force and impulse commands. Point is world
// space for the non-local variants and body space otherwise.
type ApplyProps struct {
	Value Triplet `json:"value"`
	Point Triplet `json:"point"`
}

// BodyState is what the worker reports for one body after a step.
type BodyState struct {
	Position        Triplet `json:"position"`
	Quaternion      Quad    `json:"quaternion"`
	Velocity        Triplet `json:"velocity"`
	AngularVelocity Triplet `json:"angularVelocity"`
	Sleeping        bool    `json:"sleeping,omitempty"`
}

// Frame is one published simulation step.
type Frame struct {
	Step   uint64               `json:"step"`
	Time   float64              `json:"time"`
	Bodies map[string]BodyState `json:"bodies"`
}

// EventKind names a collision event.
type EventKind string

const (
	EventCollide      EventKind = "collide"
	EventCollideBegin EventKind = "collideBegin"
	EventCollideEnd   EventKind = "collideEnd"
)

// Contact describes the touching point of a collision, in world space.
type Contact struct {
	Point          Triplet `json:"point"`
	Normal         Triplet `json:"normal"`
	ImpactVelocity float64 `json:"impactVelocity"`
}

// CollideEvent is delivered to the handlers registered for Body.
type CollideEvent struct {
	Kind    EventKind `json:"type"`
	Body    string    `json:"body"`
	Target  string    `json:"target"`
	Contact Contact   `json:"contact"`
}

// CollisionHandlers are the callbacks registered for one body id.
type CollisionHandlers struct {
	Collide      func(CollideEvent)
	CollideBegin func(CollideEvent)
	CollideEnd   func(CollideEvent)
}

// Empty reports whether no callback is set.
func (h CollisionHandlers) Empty() bool {
	return h.Collide == nil && h.CollideBegin == nil && h.CollideEnd == nil
}

func (h CollisionHandlers) dispatch(evt CollideEvent) {
	var fn func(CollideEvent)
	switch evt.Kind {
	case EventCollide:
		fn = h.Collide
	case EventCollideBegin:
		fn = h.CollideBegin
	case EventCollideEnd:
		fn = h.CollideEnd
	}
	if fn != nil {
		fn(evt)
	}
}
