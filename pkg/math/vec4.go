package math

import "math"

// Vec4 is a homogeneous 4D vector. W is 1 for points, 0 for directions/normals,
// and carries alpha for colour payloads.
type Vec4 struct {
	X, Y, Z, W float32
}

// Vec4FromVec3 lifts a Vec3 into homogeneous space with the given w.
func Vec4FromVec3(v Vec3, w float32) Vec4 {
	return Vec4{v.X, v.Y, v.Z, w}
}

// XYZ drops the w component.
func (v Vec4) XYZ() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// Add returns v + other.
func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{v.X + other.X, v.Y + other.Y, v.Z + other.Z, v.W + other.W}
}

// Sub returns v - other.
func (v Vec4) Sub(other Vec4) Vec4 {
	return Vec4{v.X - other.X, v.Y - other.Y, v.Z - other.Z, v.W - other.W}
}

// Scale returns v * scalar.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Dot returns the dot product, all four components.
func (v Vec4) Dot(other Vec4) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z + v.W*other.W
}

// Dot3 returns the dot product of the XYZ components only.
func (v Vec4) Dot3(other Vec4) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Length3 returns the magnitude of the XYZ components.
func (v Vec4) Length3() float32 {
	return float32(math.Sqrt(float64(v.Dot3(v))))
}

// Normalize3 returns a unit vector in XYZ, W unchanged.
func (v Vec4) Normalize3() Vec4 {
	l := v.Length3()
	if l == 0 {
		return Vec4{0, 0, 0, v.W}
	}
	inv := 1 / l
	return Vec4{v.X * inv, v.Y * inv, v.Z * inv, v.W}
}

// Lerp3 linearly interpolates the XYZ components between a and b.
func Lerp3(a, b Vec4, t float32) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}
