package isomesh

import (
	"testing"

	"github.com/duskforge/isomesh/pkg/math"
)

// emptyField always reports "outside" — S1 scenario: empty grid.
type emptyField struct{}

func (emptyField) Density(p math.Vec4) float32 { return 1 }

func TestGenerateMeshEmptyField(t *testing.T) {
	mesh := GenerateMesh(emptyField{})
	if len(mesh.Vertices) != 0 || len(mesh.Triangles) != 0 {
		t.Errorf("GenerateMesh(emptyField) = %d vertices, %d triangles, want 0, 0",
			len(mesh.Vertices), len(mesh.Triangles))
	}
}

func TestGenerateMeshIdempotent(t *testing.T) {
	cfg := ConfigForShape(ShapeCube)
	a := GenerateMesh(cfg)
	b := GenerateMesh(cfg)

	if len(a.Vertices) != len(b.Vertices) || len(a.Triangles) != len(b.Triangles) {
		t.Fatalf("vertex/triangle counts differ across runs: (%d,%d) vs (%d,%d)",
			len(a.Vertices), len(a.Triangles), len(b.Vertices), len(b.Triangles))
	}
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Fatalf("vertex %d differs across runs: %+v vs %+v", i, a.Vertices[i], b.Vertices[i])
		}
	}
	for i := range a.Triangles {
		if a.Triangles[i] != b.Triangles[i] {
			t.Fatalf("triangle %d differs across runs: %+v vs %+v", i, a.Triangles[i], b.Triangles[i])
		}
	}
}

func TestGenerateMeshCubeTrianglesReferenceValidVertices(t *testing.T) {
	cfg := ConfigForShape(ShapeCube)
	mesh := GenerateMesh(cfg)

	if len(mesh.Vertices) == 0 {
		t.Fatal("expected a non-empty cube mesh")
	}

	for _, tri := range mesh.Triangles {
		a, b, c := tri.Indices[0], tri.Indices[1], tri.Indices[2]
		if a == b || b == c || a == c {
			t.Errorf("degenerate triangle %+v", tri)
		}
		n := uint32(len(mesh.Vertices))
		if a >= n || b >= n || c >= n {
			t.Errorf("triangle %+v references out-of-range vertex (numVertices=%d)", tri, n)
		}
	}
}

func TestGenerateMeshCubeHasNoBoundaryEdges(t *testing.T) {
	cfg := ConfigForShape(ShapeCube)
	mesh := GenerateMesh(cfg)

	counts := make(map[edgeKey]int)
	for _, tri := range mesh.Triangles {
		i0, i1, i2 := tri.Indices[0], tri.Indices[1], tri.Indices[2]
		counts[makeEdgeKey(i0, i1)]++
		counts[makeEdgeKey(i1, i2)]++
		counts[makeEdgeKey(i0, i2)]++
	}

	for e, c := range counts {
		if c == 1 {
			t.Errorf("boundary edge %+v found on closed cube mesh", e)
		}
	}
}

func TestFindIntersectionPicksZeroCrossing(t *testing.T) {
	cfg := ConfigForShape(ShapeCube)
	p0 := math.Vec4{X: -40, Y: 0, Z: 0, W: 1}
	p1 := math.Vec4{X: 40, Y: 0, Z: 0, W: 1}

	tVal := findIntersection(cfg, p0, p1)
	if tVal < 0 || tVal > 1 {
		t.Errorf("findIntersection returned t=%v outside [0,1]", tVal)
	}

	// The cube's face is at x=-32; the scan samples every 80/16 = 5 units,
	// so the chosen point must lie within one step of it.
	x := p0.X + (p1.X-p0.X)*tVal
	if x < -37 || x > -27 {
		t.Errorf("findIntersection picked x=%v, want within 5 of the crossing at -32", x)
	}
}
