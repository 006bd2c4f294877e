package physics

// Worker is the execution context that simulates bodies. Every method is
// fire-and-forget and must not block the caller for long.
type Worker interface {
	AddBodies(msg AddBodiesMessage)
	RemoveBodies(msg RemoveBodiesMessage)
	Send(cmd Command)
}

// Publisher is implemented by workers that report simulation results back.
// Channels are drained by Context.Update on the owning goroutine.
type Publisher interface {
	Frames() <-chan Frame
	Events() <-chan CollideEvent
}

// Debugger is an optional collaborator told about every body added and removed.
type Debugger interface {
	Add(id string, props Props, shape ShapeType)
	Remove(id string)
}
