// Package chunkid addresses cubic regions of the voxel world at a
// power-of-two size: an ID is a (lod, pos) pair, where pos is measured in
// chunk-widths at that lod. Grounded on original_source's
// server/frustum.rs ChunkID and chunk_overlaps, and on the teacher's
// floorDiv/mod helpers in internal/world/world.go for negative-coordinate
// correctness.
package chunkid

// MaxLOD bounds how coarse a region can get. A chunk at MaxLOD never asks
// for a coarser parent.
const MaxLOD = 8

// NativeSize is the edge length, in voxels, of a lod-0 chunk.
const NativeSize = 32

// ID addresses the cubic region [pos*32*2^lod, (pos+1)*32*2^lod) of world
// voxel space. It is comparable and usable directly as a map key.
type ID struct {
	LOD uint8
	Pos [3]int32
}

// New builds an ID, matching the teacher's terse constructor-function
// convention.
func New(lod uint8, pos [3]int32) ID {
	return ID{LOD: lod, Pos: pos}
}

// WorldMin returns the minimum world-voxel corner of the region.
func (id ID) WorldMin() [3]int64 {
	size := int64(NativeSize) << id.LOD
	return [3]int64{
		int64(id.Pos[0]) * size,
		int64(id.Pos[1]) * size,
		int64(id.Pos[2]) * size,
	}
}

// WorldSize returns the edge length of the region in world voxels.
func (id ID) WorldSize() int64 {
	return int64(NativeSize) << id.LOD
}

// ParentLOD returns the region one level coarser that contains id. At
// MaxLOD this is a no-op: the same id is returned, since selection never
// asks for a coarser ancestor past MaxLOD.
func (id ID) ParentLOD() ID {
	if id.LOD >= MaxLOD {
		return id
	}
	return ID{
		LOD: id.LOD + 1,
		Pos: [3]int32{floorShiftRight1(id.Pos[0]), floorShiftRight1(id.Pos[1]), floorShiftRight1(id.Pos[2])},
	}
}

// ChildrenLOD returns the 8 ids one level finer that together tile id's
// region. The result is meaningless when id.LOD == 0 (the child LOD
// wraps around to 255); the caller is expected not to descend past
// native resolution.
func (id ID) ChildrenLOD() [8]ID {
	var out [8]ID
	childLOD := id.LOD - 1
	base := [3]int32{id.Pos[0] * 2, id.Pos[1] * 2, id.Pos[2] * 2}
	i := 0
	for dx := int32(0); dx < 2; dx++ {
		for dy := int32(0); dy < 2; dy++ {
			for dz := int32(0); dz < 2; dz++ {
				out[i] = ID{LOD: childLOD, Pos: [3]int32{base[0] + dx, base[1] + dy, base[2] + dz}}
				i++
			}
		}
	}
	return out
}

// Overlaps reports whether a and b address regions where one contains the
// other along every axis — i.e. they lie on the same tree path. Equal
// LODs require equal Pos; otherwise the finer id's Pos is shifted toward
// the coarser one and compared.
func Overlaps(a, b ID) bool {
	if a.LOD == b.LOD {
		return a.Pos == b.Pos
	}
	if a.LOD > b.LOD {
		shift := uint(a.LOD - b.LOD)
		return [3]int32{floorShiftRightN(b.Pos[0], shift), floorShiftRightN(b.Pos[1], shift), floorShiftRightN(b.Pos[2], shift)} == a.Pos
	}
	shift := uint(b.LOD - a.LOD)
	return [3]int32{floorShiftRightN(a.Pos[0], shift), floorShiftRightN(a.Pos[1], shift), floorShiftRightN(a.Pos[2], shift)} == b.Pos
}

// floorShiftRight1 is a floor-dividing >>1, correct for negative inputs
// (Go's native >> on signed ints already floors toward -infinity, but we
// name this wrapper so the intent at call sites reads clearly next to
// floorShiftRightN below).
func floorShiftRight1(v int32) int32 {
	return v >> 1
}

func floorShiftRightN(v int32, n uint) int32 {
	return v >> n
}
