package isomesh

import (
	"testing"

	"github.com/duskforge/isomesh/pkg/math"
)

func cloneBuffer(b *Buffer) *Buffer {
	out := &Buffer{
		Vertices:  append([]Vertex(nil), b.Vertices...),
		Triangles: append([]Triangle(nil), b.Triangles...),
	}
	return out
}

// TestSimplifyBelowSafetyFloorReturnsUnchanged covers S4: a mesh under 100
// vertices/triangles on entry must come back bit-identical.
func TestSimplifyBelowSafetyFloorReturnsUnchanged(t *testing.T) {
	buffer := &Buffer{
		Vertices: []Vertex{
			{Position: math.Vec4{X: 0, Y: 0, Z: 0, W: 1}, Normal: math.Vec4{X: 0, Y: 1, Z: 0, W: 0}},
			{Position: math.Vec4{X: 1, Y: 0, Z: 0, W: 1}, Normal: math.Vec4{X: 0, Y: 1, Z: 0, W: 0}},
			{Position: math.Vec4{X: 0, Y: 1, Z: 0, W: 1}, Normal: math.Vec4{X: 0, Y: 1, Z: 0, W: 0}},
		},
		Triangles: []Triangle{{Indices: [3]uint32{0, 1, 2}}},
	}
	before := cloneBuffer(buffer)

	Simplify(buffer, math.Vec4{}, DefaultOptions())

	if len(buffer.Vertices) != len(before.Vertices) || len(buffer.Triangles) != len(before.Triangles) {
		t.Fatalf("buffer changed despite being below the safety floor")
	}
	for i := range buffer.Vertices {
		if buffer.Vertices[i] != before.Vertices[i] {
			t.Errorf("vertex %d changed: %+v vs %+v", i, buffer.Vertices[i], before.Vertices[i])
		}
	}
	for i := range buffer.Triangles {
		if buffer.Triangles[i] != before.Triangles[i] {
			t.Errorf("triangle %d changed: %+v vs %+v", i, buffer.Triangles[i], before.Triangles[i])
		}
	}
}

// TestSimplifyNonIncreasingCounts covers testable property #5.
func TestSimplifyNonIncreasingCounts(t *testing.T) {
	mesh := GenerateMesh(ConfigForShape(ShapeCube))
	if len(mesh.Vertices) < safetyFloor || len(mesh.Triangles) < safetyFloor {
		t.Skip("cube mesh too small to exercise the simplifier at this resolution")
	}

	beforeVerts, beforeTris := len(mesh.Vertices), len(mesh.Triangles)
	Simplify(mesh, math.Vec4{}, DefaultOptions())

	if len(mesh.Vertices) > beforeVerts {
		t.Errorf("numVertices grew: %d -> %d", beforeVerts, len(mesh.Vertices))
	}
	if len(mesh.Triangles) > beforeTris {
		t.Errorf("numTriangles grew: %d -> %d", beforeTris, len(mesh.Triangles))
	}
}

// TestSimplifyDeterministic covers S5 / property #4: identical input,
// options, and seed must produce byte-identical output.
func TestSimplifyDeterministic(t *testing.T) {
	source := GenerateMesh(ConfigForShape(ShapeCube))
	if len(source.Vertices) < safetyFloor || len(source.Triangles) < safetyFloor {
		t.Skip("cube mesh too small to exercise the simplifier at this resolution")
	}

	a := cloneBuffer(source)
	b := cloneBuffer(source)

	Simplify(a, math.Vec4{}, DefaultOptions())
	Simplify(b, math.Vec4{}, DefaultOptions())

	if len(a.Vertices) != len(b.Vertices) || len(a.Triangles) != len(b.Triangles) {
		t.Fatalf("two simplifier runs diverged in size: (%d,%d) vs (%d,%d)",
			len(a.Vertices), len(a.Triangles), len(b.Vertices), len(b.Triangles))
	}
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Fatalf("vertex %d diverged: %+v vs %+v", i, a.Vertices[i], b.Vertices[i])
		}
	}
	for i := range a.Triangles {
		if a.Triangles[i] != b.Triangles[i] {
			t.Fatalf("triangle %d diverged: %+v vs %+v", i, a.Triangles[i], b.Triangles[i])
		}
	}
}

// TestSimplifyValidTrianglesReferenceExistingVertices covers property #1
// on the output of a real simplification pass.
func TestSimplifyValidTrianglesReferenceExistingVertices(t *testing.T) {
	mesh := GenerateMesh(ConfigForShape(ShapeCube))
	if len(mesh.Vertices) < safetyFloor || len(mesh.Triangles) < safetyFloor {
		t.Skip("cube mesh too small to exercise the simplifier at this resolution")
	}

	Simplify(mesh, math.Vec4{}, DefaultOptions())

	n := uint32(len(mesh.Vertices))
	for _, tri := range mesh.Triangles {
		a, b, c := tri.Indices[0], tri.Indices[1], tri.Indices[2]
		if a == b || b == c || a == c {
			t.Errorf("degenerate triangle survived simplification: %+v", tri)
		}
		if a >= n || b >= n || c >= n {
			t.Errorf("triangle %+v references out-of-range vertex (numVertices=%d)", tri, n)
		}
	}
}

func TestMakeEdgeKeyOrdersMinMax(t *testing.T) {
	e := makeEdgeKey(5, 2)
	if e.min != 2 || e.max != 5 {
		t.Errorf("makeEdgeKey(5,2) = %+v, want {2 5}", e)
	}
}
