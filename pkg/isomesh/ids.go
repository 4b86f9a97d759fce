// Package isomesh implements dual contouring of a signed-distance field into
// an indexed triangle mesh, and a randomized iterative edge-collapse
// simplifier driven by a quadric-error-function solver.
package isomesh

// VoxelID packs a grid coordinate (x,y,z) into a comparable 32-bit integer:
// x:10 | y:10 | z:10 | unused:2. Each axis fits while GridSize <= 1024.
type VoxelID uint32

// EdgeID packs a grid coordinate plus an axis into a comparable 32-bit
// integer: x:10 | y:10 | z:10 | axis:2. axis 0/1/2 denotes the edge running
// along +X/+Y/+Z from the voxel at (x,y,z).
type EdgeID uint32

const (
	coordMask   = 0x3FF
	yShift      = 10
	zShift      = 20
	axisShift   = 30
	axisMask    = 0x3
	edgeIDVoxel = ^uint32(0) &^ (axisMask << axisShift)
)

// EncodeVoxel packs a voxel coordinate into a VoxelID.
func EncodeVoxel(x, y, z int) VoxelID {
	return VoxelID(uint32(x) | uint32(y)<<yShift | uint32(z)<<zShift)
}

// DecodeVoxel unpacks a VoxelID back into its (x,y,z) coordinate.
func DecodeVoxel(id VoxelID) (x, y, z int) {
	v := uint32(id)
	return int(v & coordMask), int((v >> yShift) & coordMask), int((v >> zShift) & coordMask)
}

// EncodeEdge packs an axis and voxel coordinate into an EdgeID.
func EncodeEdge(axis, x, y, z int) EdgeID {
	return EdgeID(uint32(EncodeVoxel(x, y, z)) | uint32(axis)<<axisShift)
}

// Axis returns the axis (0=X, 1=Y, 2=Z) an EdgeID runs along.
func (e EdgeID) Axis() int {
	return int((uint32(e) >> axisShift) & axisMask)
}

// Voxel returns the base voxel coordinate an EdgeID is anchored at.
func (e EdgeID) Voxel() VoxelID {
	return VoxelID(uint32(e) & edgeIDVoxel)
}

// coordOffset is an integer (x,y,z) offset applied to a voxel coordinate.
type coordOffset struct{ X, Y, Z int }

// EdgeNodeOffsets holds, per axis, the four voxel-coordinate offsets
// subtracted from a base voxel to find the four voxels sharing that edge.
// Authoritative values — must match the packed tables below exactly.
var EdgeNodeOffsets = [3][4]coordOffset{
	{{0, 0, 0}, {0, 0, 1}, {0, 1, 0}, {0, 1, 1}},
	{{0, 0, 0}, {1, 0, 0}, {0, 0, 1}, {1, 0, 1}},
	{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}, {1, 1, 0}},
}

// EncodedEdgeNodeOffsets are the packed equivalents of EdgeNodeOffsets,
// row-major axis then i, so voxel lookups reduce to a single integer
// subtraction from an edge's base voxel ID. Part of the external ABI: any
// implementation must reproduce these exact values.
var EncodedEdgeNodeOffsets = [12]uint32{
	0x00000000, 0x00100000, 0x00000400, 0x00100400,
	0x00000000, 0x00000001, 0x00100000, 0x00100001,
	0x00000000, 0x00000400, 0x00000001, 0x00000401,
}

// EncodedEdgeOffsets are the encoded-edge-ID deltas from a voxel ID to its
// 12 incident edges, axis bits included. Part of the external ABI.
var EncodedEdgeOffsets = [12]uint32{
	0x00000000, 0x00100000, 0x00000400, 0x00100400,
	0x40000000, 0x40100000, 0x40000001, 0x40100001,
	0x80000000, 0x80000400, 0x80000001, 0x80000401,
}

// AxisOffset is the unit offset applied to a voxel corner to reach its
// neighbour along a given axis.
var AxisOffset = [3][3]float32{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}
