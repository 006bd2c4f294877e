package common

import (
	"math"
	"testing"
)

func TestClamp01(t *testing.T) {
	cases := []struct {
		in, want float32
	}{
		{-1, 0},
		{0.25, 0.25},
		{3, 1},
	}
	for _, c := range cases {
		if got := Clamp01(c.in); got != c.want {
			t.Fatalf("Clamp01(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(2, 4, 0.5); got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
}

func TestZAngleRoundTrip(t *testing.T) {
	for _, a := range []float64{0, 0.5, -1.2, math.Pi / 2, 3} {
		q := ZQuat(a)
		if got := ZAngle(q[0], q[1], q[2], q[3]); math.Abs(got-a) > 1e-9 {
			t.Fatalf("ZAngle(ZQuat(%v)) = %v", a, got)
		}
	}
}
