package voxel

import "testing"

func TestTypeSolid(t *testing.T) {
	if Air.Solid() {
		t.Error("Air should not be solid")
	}
	if !Stone.Solid() {
		t.Error("Stone should be solid")
	}
}

func TestBlockSetGet(t *testing.T) {
	var b Block
	b.Set(1, 2, 3, Grass)
	if got := b.At(1, 2, 3); got != Grass {
		t.Errorf("At(1,2,3) = %v, want Grass", got)
	}
	if got := b.At(0, 0, 0); got != Air {
		t.Errorf("At(0,0,0) = %v, want Air", got)
	}
}

func TestBlockFill(t *testing.T) {
	var b Block
	b.Fill(Stone)
	for x := 0; x < Size; x++ {
		for y := 0; y < Size; y++ {
			for z := 0; z < Size; z++ {
				if b.At(x, y, z) != Stone {
					t.Fatalf("At(%d,%d,%d) = %v, want Stone after Fill", x, y, z, b.At(x, y, z))
				}
			}
		}
	}
}

func TestBoundarySolidMatchesFace(t *testing.T) {
	var b Block
	b.Fill(Air)
	b.Set(Size-1, 5, 7, Stone) // y=5, z=7, on the +X face

	plane := b.BoundarySolid(0, 1) // +X face; row index = y, bit index = z
	row := plane[5]
	bit := (row >> (31 - 7)) & 1
	if bit != 1 {
		t.Errorf("expected bit set at z=7 on +X boundary plane row y=5, got row=%032b", row)
	}
}

func TestBoundarySolidEmptyWhenNotOnFace(t *testing.T) {
	var b Block
	b.Fill(Air)
	b.Set(0, 5, 7, Stone) // not on the +X face

	plane := b.BoundarySolid(0, 1)
	if plane[5] != 0 {
		t.Errorf("expected no bits set on +X boundary when solid voxel is at x=0, got row=%032b", plane[5])
	}
}
