package loader

import (
	"fmt"
	"strings"
	"sync"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/physbind/physics"
)

// The script must define props := func(index) { return {...} }. Keys of the
// returned map use the same names as scene props.
const propsDispatchScript = `
__result := props(__index)
`

// Script is a compiled per-instance property script.
type Script struct {
	mu       sync.Mutex
	name     string
	compiled *tengo.Compiled
}

// CompileScript loads and compiles the named script.
func CompileScript(name string) (*Script, error) {
	src, err := LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("loader: load script %s: %w", name, err)
	}
	return NewScript(name, src)
}

// NewScript compiles src; name is only used in errors.
func NewScript(name string, src []byte) (*Script, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + propsDispatchScript))
	_ = script.Add("__index", 0)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("%w: compile %s: %v", ErrScript, name, err)
	}
	return &Script{name: name, compiled: compiled}, nil
}

// Props runs props(index) and overlays the result on base.
func (s *Script) Props(index int, base physics.BodyProps) (physics.BodyProps, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.compiled.Set("__index", index); err != nil {
		return base, fmt.Errorf("%w: %s: %v", ErrScript, s.name, err)
	}
	if err := s.run(index); err != nil {
		return base, err
	}
	result, ok := objectToAny(s.compiled.Get("__result").Object()).(map[string]any)
	if !ok {
		return base, fmt.Errorf("%w: %s: props(%d) must return a map", ErrScript, s.name, index)
	}
	return overlay(base, result)
}

// run executes the compiled script. The tengo VM panics on some runtime
// faults (integer divide by zero), so those are returned as ErrScript too.
func (s *Script) run(index int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: run %s(%d): %v", ErrScript, s.name, index, r)
		}
	}()
	if runErr := s.compiled.Run(); runErr != nil {
		return fmt.Errorf("%w: run %s(%d): %v", ErrScript, s.name, index, runErr)
	}
	return nil
}

// overlay decodes base and then the override map into a fresh value so no
// pointer field is shared with base.
func overlay(base physics.BodyProps, override map[string]any) (physics.BodyProps, error) {
	var out physics.BodyProps
	baseYAML, err := yaml.Marshal(base)
	if err != nil {
		return base, fmt.Errorf("loader: marshal props: %w", err)
	}
	if err := yaml.Unmarshal(baseYAML, &out); err != nil {
		return base, fmt.Errorf("loader: unmarshal props: %w", err)
	}
	overrideYAML, err := yaml.Marshal(override)
	if err != nil {
		return base, fmt.Errorf("loader: marshal script props: %w", err)
	}
	if err := yaml.Unmarshal(overrideYAML, &out); err != nil {
		return base, fmt.Errorf("%w: decode script props: %v", ErrScript, err)
	}
	if len(out.Args) == 0 {
		// keep nil so the shape's default args still apply
		out.Args = nil
	}
	return out, nil
}

func objectToAny(obj tengo.Object) any {
	if obj == nil {
		return nil
	}

	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Int:
		return int(v.Value)
	case *tengo.Float:
		return v.Value
	case *tengo.Bool:
		return !v.IsFalsy()
	case *tengo.Array:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.ImmutableArray:
		out := make([]any, 0, len(v.Value))
		for _, item := range v.Value {
			out = append(out, objectToAny(item))
		}
		return out
	case *tengo.Map:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.ImmutableMap:
		out := make(map[string]any, len(v.Value))
		for k, item := range v.Value {
			out[k] = objectToAny(item)
		}
		return out
	case *tengo.Undefined:
		return nil
	default:
		return strings.Trim(v.String(), "\"")
	}
}
