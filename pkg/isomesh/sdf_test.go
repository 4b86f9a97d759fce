package isomesh

import (
	"testing"

	"github.com/duskforge/isomesh/pkg/math"
)

func TestConfigForShapeDefaults(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		wantS math.Vec4
		wantR math.Vec2
	}{
		{"cube", ShapeCube, math.Vec4{X: 1, Y: 1, Z: 1, W: 1}, math.Vec2{X: 0, Y: 0}},
		{"cylinder", ShapeCylinder, math.Vec4{X: 1, Y: 1, Z: 1, W: 1}, math.Vec2{X: 1, Y: 0}},
		{"pill", ShapePill, math.Vec4{X: 1, Y: 1, Z: 2, W: 1}, math.Vec2{X: 1, Y: 1}},
		{"corridor", ShapeCorridor, math.Vec4{X: 1, Y: 1, Z: 1, W: 0.25}, math.Vec2{X: 0.1, Y: 0.1}},
		{"torus", ShapeTorus, math.Vec4{X: 1, Y: 1, Z: 0.25, W: 0.25}, math.Vec2{X: 1, Y: 0.25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ConfigForShape(tt.shape)
			if cfg.S != tt.wantS {
				t.Errorf("S = %v, want %v", cfg.S, tt.wantS)
			}
			if cfg.R != tt.wantR {
				t.Errorf("R = %v, want %v", cfg.R, tt.wantR)
			}
		})
	}
}

func TestDensityOriginIsInsideCube(t *testing.T) {
	cfg := ConfigForShape(ShapeCube)
	d := cfg.Density(math.Vec4{X: 0, Y: 0, Z: 0, W: 1})
	if d >= 0 {
		t.Errorf("Density at origin = %v, want negative (inside)", d)
	}
}

func TestDensityFarPointIsOutsideCube(t *testing.T) {
	cfg := ConfigForShape(ShapeCube)
	d := cfg.Density(math.Vec4{X: 1000, Y: 1000, Z: 1000, W: 1})
	if d <= 0 {
		t.Errorf("Density far away = %v, want positive (outside)", d)
	}
}

func TestDensityStableUnderRepeatedEvaluation(t *testing.T) {
	cfg := ConfigForShape(ShapeTorus)
	p := math.Vec4{X: 3.14, Y: -2.7, Z: 1.1, W: 1}
	first := cfg.Density(p)
	for i := 0; i < 5; i++ {
		if got := cfg.Density(p); got != first {
			t.Errorf("Density(p) not stable across repeated calls: %v vs %v", got, first)
		}
	}
}
