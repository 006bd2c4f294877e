package loader

import (
	"fmt"

	"github.com/milk9111/physbind/physics"
	"github.com/milk9111/physbind/physics/body"
	"github.com/milk9111/physbind/scene"
)

// Mounted is a scene whose bodies are registered with a physics context.
type Mounted struct {
	Scene  *scene.Scene
	bodies map[string]*body.Body
	order  []string
}

// Mount creates one scene object and one coordinator per body spec. Scripts
// are evaluated for every index up front so errors surface here.
func Mount(ctx *physics.Context, spec *SceneSpec, opts ...body.Option) (*Mounted, error) {
	if spec == nil {
		return nil, fmt.Errorf("loader: mount nil scene")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	m := &Mounted{Scene: scene.New(), bodies: make(map[string]*body.Body, len(spec.Bodies))}
	for _, bs := range spec.Bodies {
		shape, _ := physics.ParseShapeType(bs.Shape)
		getProps, err := propsFor(bs)
		if err != nil {
			m.Unmount()
			return nil, err
		}

		var obj scene.Object
		if bs.Instances > 0 {
			obj = scene.NewInstancedMesh(bs.Name, bs.Instances)
		} else {
			obj = scene.NewObject3D(bs.Name)
		}
		m.Scene.Add(obj)

		m.bodies[bs.Name] = body.New(ctx, shape, getProps, body.FromObject(obj), opts...)
		m.order = append(m.order, bs.Name)
	}
	ctx.Logger().Debug("scene mounted", "scene", spec.Name, "count", len(m.order))
	return m, nil
}

// Remount mounts spec and only then unmounts prev, so a scene that fails to
// mount leaves prev running.
func Remount(ctx *physics.Context, spec *SceneSpec, prev *Mounted, opts ...body.Option) (*Mounted, error) {
	m, err := Mount(ctx, spec, opts...)
	if err != nil {
		return nil, err
	}
	prev.Unmount()
	return m, nil
}

func propsFor(bs BodySpec) (physics.GetByIndex, error) {
	base := physics.Props{BodyProps: bs.Props}
	if bs.Script == "" {
		return body.Uniform(base), nil
	}

	script, err := CompileScript(bs.Script)
	if err != nil {
		return nil, err
	}
	props := make([]physics.Props, bs.Count())
	for i := range props {
		bp, err := script.Props(i, bs.Props)
		if err != nil {
			return nil, fmt.Errorf("loader: body %q: %w", bs.Name, err)
		}
		props[i] = physics.Props{BodyProps: bp}
	}
	return func(index int) physics.Props {
		if index < 0 || index >= len(props) {
			return base
		}
		return props[index]
	}, nil
}

// Body returns the coordinator mounted under name.
func (m *Mounted) Body(name string) (*body.Body, bool) {
	b, ok := m.bodies[name]
	return b, ok
}

// Names returns body names in mount order.
func (m *Mounted) Names() []string {
	return append([]string(nil), m.order...)
}

// Unmount tears down every coordinator in reverse mount order.
func (m *Mounted) Unmount() {
	if m == nil {
		return
	}
	for i := len(m.order) - 1; i >= 0; i-- {
		name := m.order[i]
		if b := m.bodies[name]; b != nil {
			b.Destroy()
		}
		delete(m.bodies, name)
		m.Scene.Remove(name)
	}
	m.order = nil
}
