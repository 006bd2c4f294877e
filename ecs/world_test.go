package ecs

import (
	"testing"

	"github.com/milk9111/physbind/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, w.CreateEntity())
			}
			if len(w.Entities()) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(w.Entities()))
			}
			if c.destroyIndex >= 0 {
				if !w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return true for alive entity")
				}
				if w.IsAlive(ents[c.destroyIndex]) {
					t.Fatalf("entity should not be alive after destruction")
				}
				if w.DestroyEntity(ents[c.destroyIndex]) {
					t.Fatalf("DestroyEntity should return false the second time")
				}
				if len(w.Entities()) != c.create-1 {
					t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(w.Entities()))
				}
			}
		})
	}
}

func TestSlotReuseBumpsGeneration(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]("int")

	old := w.CreateEntity()
	if err := Add(w, old, h, 1); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	w.DestroyEntity(old)

	fresh := w.CreateEntity()
	if fresh.id() != old.id() {
		t.Fatalf("expected slot %d to be reused, got %d", old.id(), fresh.id())
	}
	if fresh == old {
		t.Fatalf("reused slot must carry a new generation")
	}
	if Has(w, fresh, h) {
		t.Fatalf("fresh entity must not inherit components of the destroyed one")
	}
	if err := Add(w, old, h, 2); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive for stale handle, got %v", err)
	}
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()

	h1 := component.NewComponent[int]("int")
	h2 := component.NewComponent[string]("string")

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	tests := []struct {
		name     string
		setup    func() error
		check    func(t *testing.T)
		teardown func() bool
	}{
		{
			name:  "add_int_to_e1",
			setup: func() error { return Add(w, e1, h1, 10) },
			check: func(t *testing.T) {
				v, ok := Get(w, e1, h1)
				if !ok || v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
				if w.ComponentCount(e1) != 1 {
					t.Fatalf("expected 1 component on e1, got %d", w.ComponentCount(e1))
				}
			},
			teardown: func() bool { return Remove(w, e1, h1) },
		},
		{
			name: "add_str_to_e1_and_e2",
			setup: func() error {
				if err := Add(w, e1, h2, "a"); err != nil {
					return err
				}
				return Add(w, e2, h2, "b")
			},
			check: func(t *testing.T) {
				if !Has(w, e1, h2) || !Has(w, e2, h2) {
					t.Fatalf("expected both entities to have string component")
				}
				if Count(w, h2) != 2 {
					t.Fatalf("expected 2 string components, got %d", Count(w, h2))
				}
			},
			teardown: func() bool { return Remove(w, e1, h2) },
		},
		{
			name:  "replace_value",
			setup: func() error { return Add(w, e2, h1, 7) },
			check: func(t *testing.T) {
				if err := Add(w, e2, h1, 8); err != nil {
					t.Fatal(err)
				}
				if v, _ := Get(w, e2, h1); v != 8 {
					t.Fatalf("expected replaced value 8, got %d", v)
				}
				if Count(w, h1) != 1 {
					t.Fatalf("replace must not grow the store, got %d", Count(w, h1))
				}
			},
			teardown: func() bool { return Remove(w, e2, h1) },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.setup(); err != nil {
				t.Fatalf("setup failed: %v", err)
			}
			tc.check(t)
			if !tc.teardown() {
				t.Fatalf("teardown failed for %s", tc.name)
			}
		})
	}
}

func TestQuery(t *testing.T) {
	tests := []struct {
		name string
		run  func(t *testing.T)
	}{
		{
			name: "intersection",
			run: func(t *testing.T) {
				w := NewWorld()
				e1 := w.CreateEntity()
				e2 := w.CreateEntity()
				e3 := w.CreateEntity()

				ha := component.NewComponent[int]("a")
				hb := component.NewComponent[int]("b")

				if err := Add(w, e1, ha, 1); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, ha, 2); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e2, hb, 3); err != nil {
					t.Fatal(err)
				}
				if err := Add(w, e3, hb, 4); err != nil {
					t.Fatal(err)
				}

				res := w.Query(ha.Kind(), hb.Kind())
				if len(res) != 1 || res[0] != e2 {
					t.Fatalf("expected only e2, got %v", res)
				}
			},
		},
		{
			name: "ignores_dead_entities",
			run: func(t *testing.T) {
				w := NewWorld()
				e := w.CreateEntity()
				ha := component.NewComponent[int]("a")
				if err := Add(w, e, ha, 1); err != nil {
					t.Fatal(err)
				}
				if !w.DestroyEntity(e) {
					t.Fatal("failed to destroy entity")
				}
				if res := w.Query(ha.Kind()); len(res) != 0 {
					t.Fatalf("expected empty result after destroy, got %v", res)
				}
			},
		},
		{
			name: "missing_store_returns_nil",
			run: func(t *testing.T) {
				w := NewWorld()
				e := w.CreateEntity()
				ha := component.NewComponent[int]("a")
				hb := component.NewComponent[int]("b")
				if err := Add(w, e, ha, 1); err != nil {
					t.Fatal(err)
				}
				if res := w.Query(ha.Kind(), hb.Kind()); res != nil {
					t.Fatalf("expected nil when other store missing, got %v", res)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, tc.run)
	}
}

func TestForEachSkipsRemoved(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]("int")

	e1 := w.CreateEntity()
	e2 := w.CreateEntity()
	e3 := w.CreateEntity()
	for i, e := range []Entity{e1, e2, e3} {
		if err := Add(w, e, h, i); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}
	Remove(w, e2, h)

	seen := map[Entity]int{}
	ForEach(w, h, func(e Entity, v int) { seen[e] = v })
	if len(seen) != 2 {
		t.Fatalf("expected 2 entities, got %v", seen)
	}
	if _, ok := seen[e2]; ok {
		t.Fatalf("did not expect e2 in ForEach result")
	}
	if seen[e3] != 2 {
		t.Fatalf("expected e3 to keep its value after swap-remove, got %d", seen[e3])
	}
}

func TestEventQueueDrainType(t *testing.T) {
	var q EventQueue
	q.Push(Event{Type: "a", Data: 1})
	q.Push(Event{Type: "b", Data: 2})
	q.Push(Event{Type: "a", Data: 3})

	as := q.DrainType("a")
	if len(as) != 2 || as[0].Data != 1 || as[1].Data != 3 {
		t.Fatalf("unexpected drained events %v", as)
	}
	if q.Len() != 1 {
		t.Fatalf("expected 1 remaining event, got %d", q.Len())
	}
	rest := q.Drain()
	if len(rest) != 1 || rest[0].Type != "b" {
		t.Fatalf("unexpected remaining events %v", rest)
	}
	if q.Drain() != nil {
		t.Fatal("expected empty queue")
	}
}

func TestSchedulerRunsInOrderAndClearsEvents(t *testing.T) {
	w := NewWorld()
	var order []string
	s := NewScheduler(
		SystemFunc(func(w *World) {
			order = append(order, "first")
			w.Events().Push(Event{Type: "x"})
		}),
		nil,
		SystemFunc(func(w *World) { order = append(order, "second") }),
	)
	s.Update(w)
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("unexpected order %v", order)
	}
	if w.Events().Len() != 0 {
		t.Fatalf("expected undrained events to be dropped")
	}
	if len(s.Systems()) != 2 {
		t.Fatalf("nil systems must be ignored")
	}
}
