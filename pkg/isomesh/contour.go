package isomesh

import (
	stdmath "math"
	"sort"

	"github.com/duskforge/isomesh/pkg/math"
)

// GridSize is the reference side length of the uniformly dense voxel grid.
// Voxel coordinates range over [0, GridSize) on each axis; the grid is
// centred on the origin by offsetting world position by -GridSize/2.
const GridSize = 128

const findIntersectionSteps = 16

// edgeRecord describes one sign-change (active) edge: its world-space
// intersection point, unit surface normal, and winding.
type edgeRecord struct {
	pos     math.Vec4
	normal  math.Vec4
	winding bool
}

// findIntersection performs the 16-step linear scan over t in [0,1]
// specified for locating the zero crossing between p0 and p1, picking the
// t minimizing |Density|. This is a deliberate, load-bearing approximation
// — do not replace it with bisection, the exact mesh output depends on it.
func findIntersection(field Field, p0, p1 math.Vec4) float32 {
	const increment = float32(1) / findIntersectionSteps

	minValue := float32(stdmath.MaxFloat32)
	var t, currentT float32
	for i := 0; i < findIntersectionSteps; i++ {
		p := lerpVec4(p0, p1, currentT)
		d := absf(field.Density(p))
		if d < minValue {
			t = currentT
			minValue = d
		}
		currentT += increment
	}
	return t
}

func lerpVec4(a, b math.Vec4, t float32) math.Vec4 {
	return math.Vec4{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
		W: a.W + (b.W-a.W)*t,
	}
}

// findActiveVoxels scans every grid edge for a sign change, recording an
// edgeRecord for each active edge and marking its four incident voxels
// active.
func findActiveVoxels(field Field) (activeVoxels map[VoxelID]struct{}, activeEdges map[EdgeID]edgeRecord) {
	activeVoxels = make(map[VoxelID]struct{})
	activeEdges = make(map[EdgeID]edgeRecord)

	const offset = float32(GridSize) / 2

	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			for z := 0; z < GridSize; z++ {
				p := math.Vec4{X: float32(x) - offset, Y: float32(y) - offset, Z: float32(z) - offset, W: 1}

				for axis := 0; axis < 3; axis++ {
					off := AxisOffset[axis]
					q := math.Vec4{X: p.X + off[0], Y: p.Y + off[1], Z: p.Z + off[2], W: p.W}

					pDensity := field.Density(p)
					qDensity := field.Density(q)

					zeroCrossing := (pDensity >= 0 && qDensity < 0) || (pDensity < 0 && qDensity >= 0)
					if !zeroCrossing {
						continue
					}

					t := findIntersection(field, p, q)
					xyz := lerpVec4(p, q, t)
					pos := math.Vec4{X: xyz.X, Y: xyz.Y, Z: xyz.Z, W: 1}

					normal := centralDifferenceNormal(field, pos)

					info := edgeRecord{pos: pos, normal: normal, winding: pDensity >= 0}
					edgeID := EncodeEdge(axis, x, y, z)
					activeEdges[edgeID] = info

					for i := 0; i < 4; i++ {
						off := EdgeNodeOffsets[axis][i]
						nodeID := EncodeVoxel(x-off.X, y-off.Y, z-off.Z)
						activeVoxels[nodeID] = struct{}{}
					}
				}
			}
		}
	}

	return activeVoxels, activeEdges
}

// centralDifferenceNormal estimates the unit surface normal at pos via
// symmetric finite differences of the field with step H.
func centralDifferenceNormal(field Field, pos math.Vec4) math.Vec4 {
	const h = 0.001

	dx := field.Density(math.Vec4{X: pos.X + h, Y: pos.Y, Z: pos.Z, W: pos.W}) -
		field.Density(math.Vec4{X: pos.X - h, Y: pos.Y, Z: pos.Z, W: pos.W})
	dy := field.Density(math.Vec4{X: pos.X, Y: pos.Y + h, Z: pos.Z, W: pos.W}) -
		field.Density(math.Vec4{X: pos.X, Y: pos.Y - h, Z: pos.Z, W: pos.W})
	dz := field.Density(math.Vec4{X: pos.X, Y: pos.Y, Z: pos.Z + h, W: pos.W}) -
		field.Density(math.Vec4{X: pos.X, Y: pos.Y, Z: pos.Z - h, W: pos.W})

	n := math.Vec4{X: dx, Y: dy, Z: dz, W: 0}
	return n.Normalize3()
}

// sortedVoxelIDs returns the keys of voxels in ascending order so that
// vertex-index assignment is deterministic across runs (Go map iteration
// order is randomized; contouring must be byte-reproducible).
func sortedVoxelIDs(voxels map[VoxelID]struct{}) []VoxelID {
	ids := make([]VoxelID, 0, len(voxels))
	for id := range voxels {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedEdgeIDs(edges map[EdgeID]edgeRecord) []EdgeID {
	ids := make([]EdgeID, 0, len(edges))
	for id := range edges {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// generateVertexData solves a QEF for each active voxel from its incident
// edge samples, appending one vertex per voxel and recording the resulting
// vertex index.
func generateVertexData(voxelIDs []VoxelID, edges map[EdgeID]edgeRecord) (vertices []Vertex, vertexIndex map[VoxelID]int) {
	vertices = make([]Vertex, 0, len(voxelIDs))
	vertexIndex = make(map[VoxelID]int, len(voxelIDs))

	var positions, normals [12]math.Vec3

	for _, voxelID := range voxelIDs {
		idx := 0
		for i := 0; i < 12; i++ {
			edgeID := EdgeID(uint32(voxelID) + EncodedEdgeOffsets[i])
			info, ok := edges[edgeID]
			if !ok {
				continue
			}
			positions[idx] = info.pos.XYZ()
			normals[idx] = info.normal.XYZ()
			idx++
		}

		result := SolveQEF(positions[:idx], normals[:idx])

		var meanNormal math.Vec3
		for i := 0; i < idx; i++ {
			meanNormal = meanNormal.Add(normals[i])
		}
		meanNormal = meanNormal.Scale(1 / float32(idx))

		vertexIndex[voxelID] = len(vertices)
		vertices = append(vertices, Vertex{
			Position: math.Vec4FromVec3(result.Position, 1),
			Normal:   math.Vec4FromVec3(meanNormal, 0),
		})
	}

	return vertices, vertexIndex
}

// generateTriangles emits two triangles per active edge whose four incident
// voxels all resolved to a vertex, oriented by the edge's winding.
func generateTriangles(edgeIDs []EdgeID, edges map[EdgeID]edgeRecord, vertexIndex map[VoxelID]int) []Triangle {
	triangles := make([]Triangle, 0, 2*len(edgeIDs))

	for _, edgeID := range edgeIDs {
		info := edges[edgeID]
		axis := edgeID.Axis()
		nodeID := uint32(edgeID.Voxel())

		var edgeVoxels [4]int
		found := 0
		for i := 0; i < 4; i++ {
			voxelID := VoxelID(nodeID - EncodedEdgeNodeOffsets[axis*4+i])
			vi, ok := vertexIndex[voxelID]
			if !ok {
				break
			}
			edgeVoxels[found] = vi
			found++
		}

		if found < 4 {
			continue
		}

		if info.winding {
			triangles = append(triangles,
				Triangle{Indices: [3]uint32{uint32(edgeVoxels[0]), uint32(edgeVoxels[1]), uint32(edgeVoxels[3])}},
				Triangle{Indices: [3]uint32{uint32(edgeVoxels[0]), uint32(edgeVoxels[3]), uint32(edgeVoxels[2])}},
			)
		} else {
			triangles = append(triangles,
				Triangle{Indices: [3]uint32{uint32(edgeVoxels[0]), uint32(edgeVoxels[3]), uint32(edgeVoxels[1])}},
				Triangle{Indices: [3]uint32{uint32(edgeVoxels[0]), uint32(edgeVoxels[2]), uint32(edgeVoxels[3])}},
			)
		}
	}

	return triangles
}

// GenerateMesh runs dual contouring over field, producing a fresh Buffer.
// Repeated calls with the same field produce byte-identical output.
func GenerateMesh(field Field) *Buffer {
	activeVoxels, activeEdges := findActiveVoxels(field)

	voxelIDs := sortedVoxelIDs(activeVoxels)
	vertices, vertexIndex := generateVertexData(voxelIDs, activeEdges)

	edgeIDs := sortedEdgeIDs(activeEdges)
	triangles := generateTriangles(edgeIDs, activeEdges, vertexIndex)

	return &Buffer{Vertices: vertices, Triangles: triangles}
}
