// Package loader reads scene descriptions and mounts them into a physics
// context as live bodies.
package loader

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/physbind/physics"
)

var (
	ErrUnknownShape = errors.New("loader: unknown shape")
	ErrScript       = errors.New("loader: script error")
)

// SceneSpec is a scene file: a named list of bodies.
type SceneSpec struct {
	Name   string     `yaml:"name"`
	Bodies []BodySpec `yaml:"bodies"`
}

// BodySpec describes one coordinator. Instances > 0 mounts an instanced mesh
// with that many bodies; Script names a tengo file whose props(index)
// function overrides Props per instance.
type BodySpec struct {
	Name      string            `yaml:"name"`
	Shape     string            `yaml:"shape"`
	Instances int               `yaml:"instances"`
	Props     physics.BodyProps `yaml:"props"`
	Script    string            `yaml:"script"`
}

// Count is the number of bodies the spec mounts.
func (b BodySpec) Count() int {
	if b.Instances > 0 {
		return b.Instances
	}
	return 1
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("loader: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("loader: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LoadScene loads and validates a scene file.
func LoadScene(filename string) (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("loader: scene %s: %w", filename, err)
	}
	return &spec, nil
}

// ParseScene decodes and validates a scene document.
func ParseScene(data []byte) (*SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("loader: unmarshal scene: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *SceneSpec) Validate() error {
	seen := make(map[string]bool, len(s.Bodies))
	for i, b := range s.Bodies {
		if b.Name == "" {
			return fmt.Errorf("loader: body %d has no name", i)
		}
		if seen[b.Name] {
			return fmt.Errorf("loader: duplicate body %q", b.Name)
		}
		seen[b.Name] = true
		if _, err := physics.ParseShapeType(b.Shape); err != nil {
			return fmt.Errorf("%w %q for body %q", ErrUnknownShape, b.Shape, b.Name)
		}
		if b.Instances < 0 {
			return fmt.Errorf("loader: body %q: negative instance count %d", b.Name, b.Instances)
		}
	}
	return nil
}
