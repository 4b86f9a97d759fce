package isomesh

import (
	"math/rand"
	"sort"

	"github.com/duskforge/isomesh/pkg/math"
)

// edgeKey is a candidate collapse edge (min, max) vertex index pair, packed
// so it can be sorted and compared as a single 64-bit key.
type edgeKey struct {
	min, max uint32
}

func (e edgeKey) packed() uint64 {
	return uint64(e.min)<<32 | uint64(e.max)
}

func makeEdgeKey(a, b uint32) edgeKey {
	if a < b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

// rebuildCandidateEdges emits the three edges of every triangle, sorts
// them, and filters out any edge touching a boundary vertex (one whose
// edge has multiplicity 1 in the triangle fan). Rebuilt every iteration
// from the current triangle set, since collapses change which edges are
// interior versus boundary.
func rebuildCandidateEdges(vertices *Scratch[Vertex], triangles *Scratch[Triangle], out *Scratch[edgeKey]) {
	out.Clear()

	raw := make([]edgeKey, 0, triangles.Len()*3)
	for i := 0; i < triangles.Len(); i++ {
		tri := triangles.At(i)
		raw = append(raw,
			makeEdgeKey(tri.Indices[0], tri.Indices[1]),
			makeEdgeKey(tri.Indices[1], tri.Indices[2]),
			makeEdgeKey(tri.Indices[0], tri.Indices[2]),
		)
	}
	if len(raw) == 0 {
		return
	}

	sort.Slice(raw, func(i, j int) bool { return raw[i].packed() < raw[j].packed() })

	boundaryVerts := make([]bool, vertices.Len())
	filtered := make([]edgeKey, 0, len(raw))

	flush := func(edge edgeKey, count int) {
		if count == 1 {
			boundaryVerts[edge.min] = true
			boundaryVerts[edge.max] = true
		} else {
			filtered = append(filtered, edge)
		}
	}

	prev := raw[0]
	count := 1
	for idx := 1; idx < len(raw); idx++ {
		curr := raw[idx]
		if curr != prev {
			flush(prev, count)
			count = 1
		} else {
			count++
		}
		prev = curr
	}
	flush(prev, count)

	for _, e := range filtered {
		if !boundaryVerts[e.min] && !boundaryVerts[e.max] {
			out.Push(e)
		}
	}
}

// findValidCollapses samples a fixed fraction of candidate edges with a
// deterministic PRNG, evaluates each against the reject filters, and
// records surviving candidates plus each endpoint's single best-nominated
// edge (the mutual-exclusion claim two-sided consensus resolves next).
// Returns the count of valid collapses found.
func findValidCollapses(
	opts Options,
	edges *Scratch[edgeKey],
	vertices *Scratch[Vertex],
	vertexTriangleCounts *Scratch[int],
	rng *rand.Rand,
	collapsePosition, collapseNormal *Scratch[math.Vec4],
	collapseEdgeID *Scratch[int],
	collapseValid *Scratch[int],
) int {
	if edges.Len() == 0 {
		return 0
	}

	numRandomEdges := int(float32(edges.Len()) * opts.EdgeFraction)
	randomEdges := make([]int, numRandomEdges)
	for i := 0; i < numRandomEdges; i++ {
		randomEdges[i] = rng.Intn(edges.Len())
	}
	sort.Ints(randomEdges)

	const floatMax = 3.4028235e+38
	minEdgeCost := make([]float32, vertices.Len())
	for i := range minEdgeCost {
		minEdgeCost[i] = floatMax
	}

	valid := 0
	for _, i := range randomEdges {
		edge := edges.At(i)
		vMin := vertices.At(int(edge.min))
		vMax := vertices.At(int(edge.max))

		cosAngle := vMin.Normal.Dot3(vMax.Normal)
		if cosAngle < opts.MinAngleCosine {
			continue
		}

		delta := vMax.Position.Sub(vMin.Position)
		edgeSize := delta.Dot3(delta)
		if edgeSize > opts.MaxEdgeSize*opts.MaxEdgeSize {
			continue
		}

		degree := vertexTriangleCounts.At(int(edge.min)) + vertexTriangleCounts.At(int(edge.max))
		if degree > collapseMaxDegree {
			continue
		}

		result := SolveQEF(
			[]math.Vec3{vMin.Position.XYZ(), vMax.Position.XYZ()},
			[]math.Vec3{vMin.Normal.XYZ(), vMax.Normal.XYZ()},
		)
		errorMetric := result.Residual
		if errorMetric > 0 {
			errorMetric = 1 / errorMetric
		}

		penalty := degree - 10
		if penalty < 0 {
			penalty = 0
		}
		errorMetric += float32(penalty) * (opts.MaxError * 0.1)

		if errorMetric > opts.MaxError {
			continue
		}

		collapseValid.Push(i)
		collapseNormal.Set(i, vMin.Normal.Add(vMax.Normal).Scale(0.5))
		collapsePosition.Set(i, math.Vec4FromVec3(result.Position, 1))
		valid++

		if errorMetric < minEdgeCost[edge.min] {
			minEdgeCost[edge.min] = errorMetric
			collapseEdgeID.Set(int(edge.min), i)
		}
		if errorMetric < minEdgeCost[edge.max] {
			minEdgeCost[edge.max] = errorMetric
			collapseEdgeID.Set(int(edge.max), i)
		}
	}

	return valid
}

// commitCollapses executes every candidate both of whose endpoints still
// nominate it as their best edge (two-sided consensus), overwriting the
// min-endpoint's position/normal and marking the max-endpoint collapsed.
func commitCollapses(
	collapseValid *Scratch[int],
	edges *Scratch[edgeKey],
	collapseEdgeID *Scratch[int],
	collapsePosition, collapseNormal *Scratch[math.Vec4],
	vertices *Scratch[Vertex],
	collapseTarget *Scratch[int],
) {
	for _, i := range collapseValid.Slice() {
		edge := edges.At(i)
		if collapseEdgeID.At(int(edge.min)) == i && collapseEdgeID.At(int(edge.max)) == i {
			collapseTarget.Set(int(edge.max), int(edge.min))
			v := vertices.At(int(edge.min))
			v.Position = collapsePosition.At(i)
			v.Normal = collapseNormal.At(i)
			vertices.Set(int(edge.min), v)
		}
	}
}

// removeCollapsedTriangles remaps collapsed indices, drops triangles that
// became degenerate, and rebuilds per-vertex triangle degree, swapping the
// filtered result into triangles.
func removeCollapsedTriangles(
	collapseTarget *Scratch[int],
	triangles *Scratch[Triangle],
	triBuffer *Scratch[Triangle],
	vertexTriangleCounts *Scratch[int],
) {
	vertexTriangleCounts.Resize(vertexTriangleCounts.Len(), 0)
	triBuffer.Clear()

	for _, tri := range triangles.Slice() {
		for j := 0; j < 3; j++ {
			if t := collapseTarget.At(int(tri.Indices[j])); t != -1 {
				tri.Indices[j] = uint32(t)
			}
		}

		if tri.Indices[0] == tri.Indices[1] || tri.Indices[0] == tri.Indices[2] || tri.Indices[1] == tri.Indices[2] {
			continue
		}

		for j := 0; j < 3; j++ {
			idx := int(tri.Indices[j])
			vertexTriangleCounts.Set(idx, vertexTriangleCounts.At(idx)+1)
		}
		triBuffer.Push(tri)
	}

	triangles.Swap(triBuffer)
}

// compactVertices builds a dense old->new index remap from the vertices
// actually referenced by triangles, rewrites triangle indices in place, and
// returns the compacted vertex slice, verbatim per vertex (position,
// normal, and colour all carried through unmodified).
func compactVertices(vertices *Scratch[Vertex], triangles []Triangle) []Vertex {
	used := make([]bool, vertices.Len())
	for _, tri := range triangles {
		used[tri.Indices[0]] = true
		used[tri.Indices[1]] = true
		used[tri.Indices[2]] = true
	}

	remap := make([]int, vertices.Len())
	compact := make([]Vertex, 0, vertices.Len())
	for i := 0; i < vertices.Len(); i++ {
		if used[i] {
			remap[i] = len(compact)
			compact = append(compact, vertices.At(i))
		} else {
			remap[i] = -1
		}
	}

	for i := range triangles {
		for j := 0; j < 3; j++ {
			triangles[i].Indices[j] = uint32(remap[triangles[i].Indices[j]])
		}
	}

	return compact
}

// Simplify runs the randomized iterative edge-collapse loop in place on
// buffer, reducing triangle count while preserving surface fidelity.
// offset shifts vertices into a working frame before simplification and
// back afterward, for callers operating in a translated coordinate space;
// pass the zero vector when no shift is needed.
func Simplify(buffer *Buffer, offset math.Vec4, opts Options) {
	if len(buffer.Triangles) < safetyFloor || len(buffer.Vertices) < safetyFloor {
		return
	}

	numVerts := len(buffer.Vertices)
	numTris := len(buffer.Triangles)
	maxEdges := numTris * 3

	vertices := NewScratch[Vertex](numVerts)
	vertices.Copy(buffer.Vertices)
	for i := 0; i < vertices.Len(); i++ {
		v := vertices.At(i)
		v.Position = v.Position.Sub(offset)
		vertices.Set(i, v)
	}

	triangles := NewScratch[Triangle](numTris)
	triangles.Copy(buffer.Triangles)

	edges := NewScratch[edgeKey](maxEdges)
	triBuffer := NewScratch[Triangle](numTris)

	collapsePosition := NewScratch[math.Vec4](maxEdges)
	collapseNormal := NewScratch[math.Vec4](maxEdges)
	collapseValid := NewScratch[int](maxEdges)
	collapseEdgeID := NewScratch[int](numVerts)
	collapseTarget := NewScratch[int](numVerts)
	vertexTriangleCounts := NewScratch[int](numVerts)

	vertexTriangleCounts.Resize(numVerts, 0)
	for _, tri := range triangles.Slice() {
		vertexTriangleCounts.Set(int(tri.Indices[0]), vertexTriangleCounts.At(int(tri.Indices[0]))+1)
		vertexTriangleCounts.Set(int(tri.Indices[1]), vertexTriangleCounts.At(int(tri.Indices[1]))+1)
		vertexTriangleCounts.Set(int(tri.Indices[2]), vertexTriangleCounts.At(int(tri.Indices[2]))+1)
	}

	rng := rand.New(rand.NewSource(simplifySeed))
	targetTriangleCount := int(float32(triangles.Len()) * opts.TargetPercentage)

	iterations := 0
	for triangles.Len() > targetTriangleCount && iterations < opts.MaxIterations {
		iterations++

		rebuildCandidateEdges(vertices, triangles, edges)

		collapsePosition.Resize(edges.Len(), math.Vec4{})
		collapseNormal.Resize(edges.Len(), math.Vec4{})
		collapseEdgeID.Resize(numVerts, -1)
		collapseTarget.Resize(numVerts, -1)
		collapseValid.Clear()

		validCount := findValidCollapses(opts, edges, vertices, vertexTriangleCounts, rng,
			collapsePosition, collapseNormal, collapseEdgeID, collapseValid)
		if validCount == 0 {
			break
		}

		commitCollapses(collapseValid, edges, collapseEdgeID, collapsePosition, collapseNormal, vertices, collapseTarget)
		removeCollapsedTriangles(collapseTarget, triangles, triBuffer, vertexTriangleCounts)
	}

	finalTriangles := append([]Triangle(nil), triangles.Slice()...)
	buffer.Vertices = compactVertices(vertices, finalTriangles)
	buffer.Triangles = finalTriangles

	for i := range buffer.Vertices {
		buffer.Vertices[i].Position = buffer.Vertices[i].Position.Add(offset)
	}
}
