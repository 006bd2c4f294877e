// Package debug collects the bodies a physics context registers so they can
// be inspected or drawn.
package debug

import (
	"sort"
	"sync"

	"github.com/milk9111/physbind/physics"
)

// Entry is one live body as it was registered.
type Entry struct {
	ID    string
	Shape physics.ShapeType
	Props physics.BodyProps
}

// Collector implements physics.Debugger. It is safe for concurrent use so a
// render loop may snapshot it while bodies are added.
type Collector struct {
	mu      sync.Mutex
	entries map[string]Entry
	added   int
	removed int
}

func NewCollector() *Collector {
	return &Collector{entries: make(map[string]Entry)}
}

func (c *Collector) Add(id string, props physics.Props, shape physics.ShapeType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	body := props.BodyProps
	body.Args = append([]any(nil), props.Args...)
	c.entries[id] = Entry{ID: id, Shape: shape, Props: body}
	c.added++
}

func (c *Collector) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[id]; !ok {
		return
	}
	delete(c.entries, id)
	c.removed++
}

func (c *Collector) Get(id string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	return e, ok
}

func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Snapshot returns the live entries sorted by id.
func (c *Collector) Snapshot() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Totals returns how many adds and removes were seen.
func (c *Collector) Totals() (added, removed int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.added, c.removed
}
