package physics

import (
	"fmt"
	"strings"
)

// ShapeType tags the collision shape of a body. The string form is what
// goes on the wire.
type ShapeType string

const (
	Box              ShapeType = "Box"
	Sphere           ShapeType = "Sphere"
	Plane            ShapeType = "Plane"
	Cylinder         ShapeType = "Cylinder"
	Particle         ShapeType = "Particle"
	ConvexPolyhedron ShapeType = "ConvexPolyhedron"
	Trimesh          ShapeType = "Trimesh"
	Heightfield      ShapeType = "Heightfield"
	Compound         ShapeType = "Compound"
)

var shapeTypes = []ShapeType{Box, Sphere, Plane, Cylinder, Particle, ConvexPolyhedron, Trimesh, Heightfield, Compound}

// ShapeTypes returns every known shape type.
func ShapeTypes() []ShapeType {
	return append([]ShapeType(nil), shapeTypes...)
}

func (s ShapeType) String() string { return string(s) }

// Valid reports whether s is one of the known shape types.
func (s ShapeType) Valid() bool {
	for _, t := range shapeTypes {
		if t == s {
			return true
		}
	}
	return false
}

// ParseShapeType matches a shape name case-insensitively.
func ParseShapeType(name string) (ShapeType, error) {
	for _, t := range shapeTypes {
		if strings.EqualFold(string(t), strings.TrimSpace(name)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("physics: unknown shape type %q", name)
}
