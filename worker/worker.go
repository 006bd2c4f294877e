// Package worker is the reference physics worker. It simulates bodies with
// Chipmunk2D on the XY plane: z components are carried through unchanged
// and rotation is about Z only.
package worker

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/physbind/config"
	"github.com/milk9111/physbind/physics"
)

type message struct {
	add    *physics.AddBodiesMessage
	remove *physics.RemoveBodiesMessage
	cmd    *physics.Command
}

// Option configures a Worker.
type Option func(*Worker)

func WithLogger(l *slog.Logger) Option {
	return func(w *Worker) {
		if l != nil {
			w.logger = l
		}
	}
}

// Worker owns one Chipmunk space. Messages may be sent from any goroutine;
// they are applied at the start of the next Step.
type Worker struct {
	cfg    config.World
	logger *slog.Logger

	mu      sync.Mutex
	pending []message

	stepMu sync.Mutex
	space  *cp.Space
	bodies map[string]*entry
	shapes map[*cp.Shape]string
	step   uint64
	time   float64

	frames        chan physics.Frame
	events        chan physics.CollideEvent
	droppedFrames uint64
	droppedEvents uint64
}

func New(cfg config.World, opts ...Option) (*Worker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	w := &Worker{
		cfg:    cfg,
		logger: slog.Default(),
		bodies: make(map[string]*entry),
		shapes: make(map[*cp.Shape]string),
		frames: make(chan physics.Frame, cfg.FrameBuffer),
		events: make(chan physics.CollideEvent, cfg.EventBuffer),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.space = cp.NewSpace()
	w.space.Iterations = uint(cfg.Iterations)
	w.space.SetGravity(cp.Vector{X: cfg.Gravity[0], Y: cfg.Gravity[1]})
	if cfg.AllowSleep {
		w.space.SleepTimeThreshold = defaultSleepTimeLimit
	}
	w.installHandlers()
	return w, nil
}

func (w *Worker) AddBodies(msg physics.AddBodiesMessage) {
	w.enqueue(message{add: &msg})
}

func (w *Worker) RemoveBodies(msg physics.RemoveBodiesMessage) {
	w.enqueue(message{remove: &msg})
}

func (w *Worker) Send(cmd physics.Command) {
	w.enqueue(message{cmd: &cmd})
}

func (w *Worker) Frames() <-chan physics.Frame        { return w.frames }
func (w *Worker) Events() <-chan physics.CollideEvent { return w.events }

func (w *Worker) enqueue(m message) {
	w.mu.Lock()
	w.pending = append(w.pending, m)
	w.mu.Unlock()
}

func (w *Worker) drain() []message {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.pending
	w.pending = nil
	return out
}

// Pending returns the number of messages waiting for the next step.
func (w *Worker) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

// Run steps the world at the configured rate until ctx is done. When the
// caller falls behind, at most max_sub_steps steps run per tick and the
// rest of the backlog is dropped.
func (w *Worker) Run(ctx context.Context) error {
	dt := w.cfg.Dt()
	ticker := time.NewTicker(w.cfg.StepInterval())
	defer ticker.Stop()

	w.logger.Info("worker started", "step_hz", w.cfg.StepHz, "iterations", w.cfg.Iterations)
	last := time.Now()
	var acc float64
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker stopped", "steps", w.Steps())
			return nil
		case now := <-ticker.C:
			acc += now.Sub(last).Seconds()
			last = now
			n := 0
			for acc >= dt && n < w.cfg.MaxSubSteps {
				w.Step(dt)
				acc -= dt
				n++
			}
			if n == w.cfg.MaxSubSteps {
				acc = 0
			}
		}
	}
}

// Step applies queued messages, advances the space by dt and publishes a
// frame.
func (w *Worker) Step(dt float64) {
	w.stepMu.Lock()
	defer w.stepMu.Unlock()

	for _, m := range w.drain() {
		switch {
		case m.add != nil:
			w.addBodies(*m.add)
		case m.remove != nil:
			w.removeBodies(*m.remove)
		case m.cmd != nil:
			w.command(*m.cmd)
		}
	}

	for _, e := range w.bodies {
		if !e.allowSleep && e.dynamic() {
			e.body.Activate()
		}
	}

	w.space.Step(dt)
	w.step++
	w.time += dt
	w.publish(w.frame())
}

func (w *Worker) frame() physics.Frame {
	f := physics.Frame{Step: w.step, Time: w.time, Bodies: make(map[string]physics.BodyState, len(w.bodies))}
	for id, e := range w.bodies {
		if e.static() {
			continue
		}
		f.Bodies[id] = e.state()
	}
	return f
}

func (w *Worker) publish(f physics.Frame) {
	for {
		select {
		case w.frames <- f:
			return
		default:
		}
		select {
		case <-w.frames:
			w.droppedFrames++
		default:
		}
	}
}

func (w *Worker) emit(evt physics.CollideEvent) {
	select {
	case w.events <- evt:
	default:
		w.droppedEvents++
		if w.droppedEvents == 1 || w.droppedEvents%100 == 0 {
			w.logger.Warn("collision event dropped", "uuid", evt.Body, "dropped", w.droppedEvents)
		}
	}
}

// Steps returns the number of completed steps.
func (w *Worker) Steps() uint64 {
	w.stepMu.Lock()
	defer w.stepMu.Unlock()
	return w.step
}

// State returns the current state of a body.
func (w *Worker) State(id string) (physics.BodyState, bool) {
	w.stepMu.Lock()
	defer w.stepMu.Unlock()
	e, ok := w.bodies[id]
	if !ok {
		return physics.BodyState{}, false
	}
	return e.state(), true
}

// Bodies returns the ids of every simulated body, sorted.
func (w *Worker) Bodies() []string {
	w.stepMu.Lock()
	defer w.stepMu.Unlock()
	ids := make([]string, 0, len(w.bodies))
	for id := range w.bodies {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// View calls fn with the space while no step is running.
func (w *Worker) View(fn func(space *cp.Space)) {
	w.stepMu.Lock()
	defer w.stepMu.Unlock()
	fn(w.space)
}

// Dropped returns how many frames and collision events were discarded
// because nobody drained them.
func (w *Worker) Dropped() (frames, events uint64) {
	w.stepMu.Lock()
	defer w.stepMu.Unlock()
	return w.droppedFrames, w.droppedEvents
}
