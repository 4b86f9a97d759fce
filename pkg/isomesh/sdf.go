package isomesh

import (
	stdmath "math"

	"github.com/duskforge/isomesh/pkg/math"
)

// Field evaluates a scalar density f(p): R^3 -> R for a shape configuration.
// Negative is inside the surface, positive is outside. Implementations must
// be pure and referentially transparent — stable under repeated evaluation
// at the same point.
type Field interface {
	Density(p math.Vec4) float32
}

// Shape selects one of the fixed super-primitive presets.
type Shape int

const (
	ShapeCube Shape = iota
	ShapeCylinder
	ShapePill
	ShapeCorridor
	ShapeTorus
)

// SuperPrimitiveConfig parameterizes the super-primitive SDF family: a
// closed-form distance expression that interpolates between cube, cylinder,
// pill, corridor, and torus by varying s and r.
type SuperPrimitiveConfig struct {
	S math.Vec4
	R math.Vec2
}

// ConfigForShape returns the reference parameters for one of the fixed
// shape presets.
func ConfigForShape(shape Shape) SuperPrimitiveConfig {
	switch shape {
	case ShapeCylinder:
		return SuperPrimitiveConfig{S: math.Vec4{X: 1, Y: 1, Z: 1, W: 1}, R: math.Vec2{X: 1, Y: 0}}
	case ShapePill:
		return SuperPrimitiveConfig{S: math.Vec4{X: 1, Y: 1, Z: 2, W: 1}, R: math.Vec2{X: 1, Y: 1}}
	case ShapeCorridor:
		return SuperPrimitiveConfig{S: math.Vec4{X: 1, Y: 1, Z: 1, W: 0.25}, R: math.Vec2{X: 0.1, Y: 0.1}}
	case ShapeTorus:
		return SuperPrimitiveConfig{S: math.Vec4{X: 1, Y: 1, Z: 0.25, W: 0.25}, R: math.Vec2{X: 1, Y: 0.25}}
	case ShapeCube:
		fallthrough
	default:
		return SuperPrimitiveConfig{S: math.Vec4{X: 1, Y: 1, Z: 1, W: 1}, R: math.Vec2{X: 0, Y: 0}}
	}
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func absf(a float32) float32 {
	if a < 0 {
		return -a
	}
	return a
}

func length2(x, y float32) float32 {
	return float32(stdmath.Sqrt(float64(x*x + y*y)))
}

// sdSuperprim is the super-primitive distance function: a single closed-form
// expression that produces a cube, cylinder, pill, corridor, or torus
// depending on s and r. See https://www.shadertoy.com/view/MsVGWG for the
// derivation this follows.
func sdSuperprim(p math.Vec3, s math.Vec4, r math.Vec2) float32 {
	dx := absf(p.X) - s.X
	dy := absf(p.Y) - s.Y
	dz := absf(p.Z) - s.Z

	q := length2(maxf(dx+r.X, 0), maxf(dy+r.X, 0))
	q += minf(-r.X, maxf(dx, dy))
	q = absf(q+s.W) - s.W

	return length2(maxf(q+r.Y, 0), maxf(dz+r.Y, 0)) + minf(-r.Y, maxf(q, dz))
}

// Density evaluates the super-primitive at p, scaling into the primitive's
// natural unit cube (1/32) and back out (*32). Any substitute Field must
// apply equivalent scaling or the intersection search step must change.
func (c SuperPrimitiveConfig) Density(p math.Vec4) float32 {
	const scale = 32
	scaled := math.Vec3{X: p.X / scale, Y: p.Y / scale, Z: p.Z / scale}
	return sdSuperprim(scaled, c.S, c.R) * scale
}
