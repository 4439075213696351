package angle

import (
	"math"
	"testing"
)

func TestNormalizeRange(t *testing.T) {
	for theta := -50.0; theta <= 50.0; theta += 0.37 {
		n := Normalize(theta)
		if n < -math.Pi || n > math.Pi {
			t.Fatalf("Normalize(%f) = %f is outside [-π, π]", theta, n)
		}
		if again := Normalize(n); again != n {
			t.Fatalf("Normalize is not idempotent for %f: %f then %f", theta, n, again)
		}
		if math.Abs(math.Sin(n)-math.Sin(theta)) > 1e-9 || math.Abs(math.Cos(n)-math.Cos(theta)) > 1e-9 {
			t.Fatalf("Normalize(%f) = %f changed the direction", theta, n)
		}
	}
}

func TestNormalizeEdges(t *testing.T) {
	tests := []struct {
		name string
		in   float64
	}{
		{"pi", math.Pi},
		{"minus pi", -math.Pi},
		{"two pi", TwoPi},
		{"huge", 1e9},
		{"inf", math.Inf(1)},
		{"nan", math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Normalize(tt.in)
			if math.IsNaN(n) || n < -math.Pi || n > math.Pi {
				t.Errorf("Normalize(%v) = %v", tt.in, n)
			}
		})
	}
}

func TestDiffShortestPath(t *testing.T) {
	d := Diff(3.0, -3.0)
	if math.Abs(d) > math.Pi {
		t.Fatalf("Diff(3.0, -3.0) = %f took the long way", d)
	}
	want := TwoPi - 6.0
	if math.Abs(d-want) > 1e-9 {
		t.Errorf("expected %f, got %f", want, d)
	}
}

func TestOptimize(t *testing.T) {
	tests := []struct {
		start, target float64
	}{
		{3.0, -3.0},
		{-3.0, 3.0},
		{0, math.Pi},
		{0.5, 0.25},
		{-2.9, 2.9},
	}

	for _, tt := range tests {
		got := Optimize(tt.start, tt.target)
		if math.Abs(got-tt.start) > math.Pi+1e-9 {
			t.Errorf("Optimize(%f, %f) = %f is more than π away", tt.start, tt.target, got)
		}
		if math.Abs(Normalize(got)-Normalize(tt.target)) > 1e-9 {
			t.Errorf("Optimize(%f, %f) = %f is not equivalent to the target", tt.start, tt.target, got)
		}
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		name   string
		dx, dz float64
		want   float64
	}{
		{"towards -Z", 0, -1, 0},
		{"towards +X", 1, 0, math.Pi / 2},
		{"towards -X", -1, 0, -math.Pi / 2},
		{"towards +Z", 0, 1, math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Heading(tt.dx, tt.dz); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Heading(%v, %v) = %v, want %v", tt.dx, tt.dz, got, tt.want)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	got := Lerp(3.0, -3.0, 0.5)
	if math.Abs(Normalize(got)-math.Pi) > 1e-6 && math.Abs(Normalize(got)+math.Pi) > 1e-6 {
		t.Errorf("midpoint between 3.0 and -3.0 should sit at ±π, got %f", got)
	}
}
