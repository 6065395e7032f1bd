// Package mesher turns a voxel.Block plus six neighbor boundary planes
// into six direction-keyed lists of face instances, using a branch-free
// bitplane test. Ported directly from original_source's
// server/chunk.rs (create_faces/generate_mesh), which performs the exact
// same row-against-shifted-row test this package implements; the
// teacher's internal/meshing/greedy.go contributes the Go-side instance
// packing and per-direction output-slice conventions, with the greedy
// run-length merging deliberately dropped.
package mesher

import (
	"github.com/mikatschuh/voxeled/internal/profiling"
	"github.com/mikatschuh/voxeled/internal/voxel"
)

// Direction indexes the six axis-aligned face directions, in the fixed
// order the assembler and the external GPU collaborator both expect.
type Direction int

const (
	NegX Direction = iota
	PosX
	NegY
	PosY
	NegZ
	PosZ
	NumDirections
)

// Face is one quadrilateral to draw: a world-voxel position and a packed
// kind (texture id in bits [0,16), LOD exponent in bits [16,24), bits
// [24,32) reserved zero).
type Face struct {
	Pos  [3]int32
	Kind uint32
}

// Planes holds the six boundary-solidity planes sampled from neighbor
// chunks, one per Direction: Planes[NegX] is the -X neighbor's boundary
// facing us (its own +X face), Planes[PosX] is the +X neighbor's -X face,
// and so on. A plane is all-zero when the neighbor is absent or not yet
// Done, yielding an all-air substitute per the registry's
// neighbor_solidity contract.
type Planes [int(NumDirections)][voxel.Size]uint32

// Pack encodes a texture id and LOD exponent into a face kind.
func Pack(texture uint16, lod uint8) uint32 {
	return uint32(texture) | uint32(lod)<<16
}

// Build runs the face-culling mesher over b, using neighbors for the six
// boundary planes, and returns six direction-keyed face-instance lists.
// worldMin is the block's origin in world-voxel space (already scaled by
// 2^lod, per the LOD emission rule) and lod is stamped into each face's
// kind so the shader can scale its unit quad.
func Build(b *voxel.Block, neighbors Planes, worldMin [3]int32, lod uint8) [int(NumDirections)][]Face {
	defer profiling.Track("mesher.Build")()

	var out [int(NumDirections)][]Face

	// Packed rows: bit (31-i) along the swept axis holds that voxel's
	// solidity, so the MSB is index 0 and the LSB is index 31 — the same
	// convention voxel.Block.BoundarySolid uses for neighbor planes.
	var xRows [voxel.Size][voxel.Size]uint32 // indexed [y][z], bit = x
	var yRows [voxel.Size][voxel.Size]uint32 // indexed [x][z], bit = y
	var zRows [voxel.Size][voxel.Size]uint32 // indexed [x][y], bit = z

	for x := 0; x < voxel.Size; x++ {
		for y := 0; y < voxel.Size; y++ {
			for z := 0; z < voxel.Size; z++ {
				if b.At(x, y, z).Solid() {
					xRows[y][z] |= 1 << uint(31-x)
					yRows[x][z] |= 1 << uint(31-y)
					zRows[x][y] |= 1 << uint(31-z)
				}
			}
		}
	}

	scale := int32(1) << lod

	emit := func(dir Direction, x, y, z int) {
		out[dir] = append(out[dir], Face{
			Pos:  [3]int32{worldMin[0] + int32(x)*scale, worldMin[1] + int32(y)*scale, worldMin[2] + int32(z)*scale},
			Kind: Pack(b.At(x, y, z).Texture(), lod),
		})
	}

	// X axis: row>>1 walks the bit of index i-1 into index i's slot, so
	// row&^(row>>1|...) tests "solid here, not solid one index lower" —
	// the -X face. row<<1 is the symmetric +X test.
	for y := 0; y < voxel.Size; y++ {
		for z := 0; z < voxel.Size; z++ {
			row := xRows[y][z]
			negNeighbor := bitAt(neighbors[NegX][y], z)
			posNeighbor := bitAt(neighbors[PosX][y], z)

			negFaces := row &^ ((row >> 1) | (negNeighbor << 31))
			posFaces := row &^ ((row << 1) | posNeighbor)

			for x := 0; x < voxel.Size; x++ {
				bit := uint32(1) << uint(31-x)
				if negFaces&bit != 0 {
					emit(NegX, x, y, z)
				}
				if posFaces&bit != 0 {
					emit(PosX, x, y, z)
				}
			}
		}
	}

	// Y axis, same shape.
	for x := 0; x < voxel.Size; x++ {
		for z := 0; z < voxel.Size; z++ {
			row := yRows[x][z]
			negNeighbor := bitAt(neighbors[NegY][x], z)
			posNeighbor := bitAt(neighbors[PosY][x], z)

			negFaces := row &^ ((row >> 1) | (negNeighbor << 31))
			posFaces := row &^ ((row << 1) | posNeighbor)

			for y := 0; y < voxel.Size; y++ {
				bit := uint32(1) << uint(31-y)
				if negFaces&bit != 0 {
					emit(NegY, x, y, z)
				}
				if posFaces&bit != 0 {
					emit(PosY, x, y, z)
				}
			}
		}
	}

	// Z axis, same shape.
	for x := 0; x < voxel.Size; x++ {
		for y := 0; y < voxel.Size; y++ {
			row := zRows[x][y]
			negNeighbor := bitAt(neighbors[NegZ][x], y)
			posNeighbor := bitAt(neighbors[PosZ][x], y)

			negFaces := row &^ ((row >> 1) | (negNeighbor << 31))
			posFaces := row &^ ((row << 1) | posNeighbor)

			for z := 0; z < voxel.Size; z++ {
				bit := uint32(1) << uint(31-z)
				if negFaces&bit != 0 {
					emit(NegZ, x, y, z)
				}
				if posFaces&bit != 0 {
					emit(PosZ, x, y, z)
				}
			}
		}
	}

	return out
}

// bitAt extracts the solidity bit for index j (0 = lowest coordinate, in
// the row convention above: position 31-j) from a packed 32-bit plane
// row, returned as a 0/1 value ready to be shifted into the sentinel slot
// the branch-free test expects.
func bitAt(row uint32, j int) uint32 {
	if row&(1<<uint(31-j)) != 0 {
		return 1
	}
	return 0
}
