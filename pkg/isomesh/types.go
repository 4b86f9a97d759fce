package isomesh

import "github.com/duskforge/isomesh/pkg/math"

// Vertex is a mesh vertex with position (w=1), normal (w=0), and colour
// (w=alpha), laid out as three homogeneous vectors. Colour is opaque payload
// to this package — it is never read or written by contouring or
// simplification, only carried through.
type Vertex struct {
	Position math.Vec4
	Normal   math.Vec4
	Colour   math.Vec4
}

// Triangle is three vertex indices into a Buffer's Vertices slice, wound
// CCW relative to the surface.
type Triangle struct {
	Indices [3]uint32
}

// Buffer owns a mesh's vertex and triangle arrays. Contouring produces a
// fresh Buffer; the simplifier mutates one in place.
type Buffer struct {
	Vertices  []Vertex
	Triangles []Triangle
}

// NumVertices returns the number of live vertices.
func (b *Buffer) NumVertices() int { return len(b.Vertices) }

// NumTriangles returns the number of live triangles.
func (b *Buffer) NumTriangles() int { return len(b.Triangles) }

// Options controls the mesh simplifier's edge-collapse loop.
type Options struct {
	// EdgeFraction is the fraction of candidate edges sampled per iteration.
	EdgeFraction float32
	// MaxIterations is a hard cap on simplification passes.
	MaxIterations int
	// TargetPercentage stops the loop once |tris| <= p * |tris at entry|.
	TargetPercentage float32
	// MaxError rejects collapses whose error metric exceeds this.
	MaxError float32
	// MaxEdgeSize rejects collapses over edges longer than this.
	MaxEdgeSize float32
	// MinAngleCosine rejects collapses whose endpoint normals diverge past
	// this cosine, to preserve sharp features.
	MinAngleCosine float32
}

// DefaultOptions returns the reference simplifier configuration.
func DefaultOptions() Options {
	return Options{
		EdgeFraction:     0.125,
		MaxIterations:    10,
		TargetPercentage: 0.05,
		MaxError:         1.0,
		MaxEdgeSize:      0.5,
		MinAngleCosine:   0.8,
	}
}

// collapseMaxDegree bounds vertex degree eligible for any collapse.
const collapseMaxDegree = 16

// simplifySeed is the fixed PRNG seed that makes simplification runs
// reproducible.
const simplifySeed = 42

// safetyFloor is the minimum vertex/triangle count below which the
// simplifier returns the buffer unchanged.
const safetyFloor = 100
