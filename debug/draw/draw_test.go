package draw

import (
	"image/color"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
)

func TestFade(t *testing.T) {
	c := cp.FColor{R: 1, G: 0, B: 0.5, A: 0.8}

	assert.Equal(t, c, fade(c, 0))
	assert.Equal(t, cp.FColor{R: 0.5, G: 0.5, B: 0.5, A: 0.8}, fade(c, 1))

	half := fade(c, 0.5)
	assert.InDelta(t, 0.75, half.R, 1e-6)
	assert.InDelta(t, 0.25, half.G, 1e-6)
	assert.Equal(t, c.A, half.A, "alpha is kept")
}

func TestShapeColor(t *testing.T) {
	d := &spaceDrawer{}
	static := cp.NewCircle(cp.NewStaticBody(), 1, cp.Vector{})
	dynamic := cp.NewCircle(cp.NewBody(1, 1), 1, cp.Vector{})
	sensor := cp.NewCircle(cp.NewBody(1, 1), 1, cp.Vector{})
	sensor.SetSensor(true)

	assert.Equal(t, cp.FColor{R: 0.4, G: 0.7, B: 1.0, A: 1.0}, d.ShapeColor(static, nil))
	assert.Equal(t, cp.FColor{R: 0.9, G: 0.4, B: 0.9, A: 1.0}, d.ShapeColor(dynamic, nil), "awake bodies are not faded")
	assert.Equal(t, cp.FColor{R: 1.0, G: 0.85, B: 0.2, A: 1.0}, d.ShapeColor(sensor, nil))
}

func TestToNRGBA(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 255, G: 0, B: 127, A: 255}, toNRGBA(cp.FColor{R: 2, G: -1, B: 0.5, A: 1}))
}
