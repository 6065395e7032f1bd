// Package voxel defines the material and storage types shared by every
// other core package: the VoxelType registry and the dense VoxelBlock cube
// a Generator produces and a mesher consumes.
package voxel

// Type is a material variant. The zero value is Air.
type Type uint16

const (
	Air Type = iota
	Stone
	Dirt
	Grass
	Bedrock
	StoneBrick
	PlanksOak
	PlanksBirch
	PlanksSpruce
	PlanksJungle
	PlanksAcacia
	CrackedStone

	typeCount
)

// Def describes the fixed properties of a Type: whether it stops a swept
// AABB and collapses a mesher face test, and which texture the mesher
// should stamp on any face instance it emits for this material.
type Def struct {
	Name    string
	Solid   bool
	Texture uint16
}

var defs = [typeCount]Def{
	Air:          {Name: "air", Solid: false, Texture: 0},
	Stone:        {Name: "stone", Solid: true, Texture: 1},
	Dirt:         {Name: "dirt", Solid: true, Texture: 2},
	Grass:        {Name: "grass", Solid: true, Texture: 3},
	Bedrock:      {Name: "bedrock", Solid: true, Texture: 4},
	StoneBrick:   {Name: "stonebrick", Solid: true, Texture: 5},
	PlanksOak:    {Name: "planks_oak", Solid: true, Texture: 6},
	PlanksBirch:  {Name: "planks_birch", Solid: true, Texture: 7},
	PlanksSpruce: {Name: "planks_spruce", Solid: true, Texture: 8},
	PlanksJungle: {Name: "planks_jungle", Solid: true, Texture: 9},
	PlanksAcacia: {Name: "planks_acacia", Solid: true, Texture: 10},
	CrackedStone: {Name: "cracked_stone", Solid: true, Texture: 11},
}

// Solid reports whether t physically blocks a swept AABB and produces a
// mesher face. Air is never solid, by construction.
func (t Type) Solid() bool {
	if int(t) >= len(defs) {
		return false
	}
	return defs[t].Solid
}

// Texture returns the texture tag the mesher packs into a face's kind.
// Air has no texture; callers must not call this on Air.
func (t Type) Texture() uint16 {
	if int(t) >= len(defs) {
		return 0
	}
	return defs[t].Texture
}

func (t Type) String() string {
	if int(t) >= len(defs) || defs[t].Name == "" {
		return "unknown"
	}
	return defs[t].Name
}

// Size is the edge length of a Block in voxels, at any LOD.
const Size = 32

// Block is a 32x32x32 dense cube of Type, indexed by local coordinates in
// [0,32). It is produced once by a Generator and never mutated afterward.
type Block struct {
	Voxels [Size][Size][Size]Type
}

// At returns the voxel at local coordinates (x, y, z). Callers must keep
// each coordinate in [0, Size); this is a hot path and does no bounds
// checking beyond what the Go runtime provides for free.
func (b *Block) At(x, y, z int) Type {
	return b.Voxels[x][y][z]
}

// Set assigns the voxel at local coordinates (x, y, z).
func (b *Block) Set(x, y, z int, t Type) {
	b.Voxels[x][y][z] = t
}

// Fill sets every voxel in the block to t. Used by tests building literal
// scenarios.
func (b *Block) Fill(t Type) {
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			for z := 0; z < Size; z++ {
				b.Voxels[x][y][z] = t
			}
		}
	}
}

// BoundarySolid returns a 32x32 bitmask describing which voxels on the face
// of this block touching the given axis/sign are solid: plane[i] has bit
// (31-j) set when the face voxel at (i, j) is solid, where (i, j) is
// (y, z) for the X axis, (x, z) for Y and (x, y) for Z. This is what
// Level.NeighborSolidity hands to the mesher when a neighbor chunk is Done.
//
// axis: 0=X, 1=Y, 2=Z. sign: +1 selects the far face (coordinate Size-1),
// -1 selects the near face (coordinate 0).
func (b *Block) BoundarySolid(axis int, sign int) [Size]uint32 {
	var plane [Size]uint32
	coord := 0
	if sign > 0 {
		coord = Size - 1
	}
	for i := 0; i < Size; i++ {
		var row uint32
		for j := 0; j < Size; j++ {
			var t Type
			switch axis {
			case 0:
				t = b.Voxels[coord][i][j]
			case 1:
				t = b.Voxels[i][coord][j]
			case 2:
				t = b.Voxels[i][j][coord]
			}
			if t.Solid() {
				row |= 1 << uint(31-j)
			}
		}
		plane[i] = row
	}
	return plane
}
