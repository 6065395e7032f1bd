package assembler

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mikatschuh/voxeled/internal/chunkid"
	"github.com/mikatschuh/voxeled/internal/level"
	"github.com/mikatschuh/voxeled/internal/mesher"
)

// camAbove sits above every id's region in the tests below under the
// +Y-is-down convention, so the PosY face (outward normal {0,1,0})
// always points away from it and survives back-face culling.
var camAbove = mgl32.Vec3{16, 0, 16}

func publishMesh(lvl *level.Level, id chunkid.ID, tag int32) {
	var faces [int(mesher.NumDirections)][]mesher.Face
	faces[mesher.PosY] = []mesher.Face{{Pos: [3]int32{tag, 0, 0}, Kind: 0}}
	lvl.TryBegin(id, level.MeshState)
	lvl.PublishMesh(id, faces)
}

func TestAssembleCollectsDoneMeshes(t *testing.T) {
	lvl := level.New(0)
	id := chunkid.New(0, [3]int32{0, 0, 0})
	publishMesh(lvl, id, 42)

	streams := Assemble(lvl, []chunkid.ID{id}, camAbove)
	if len(streams[mesher.PosY]) != 1 || streams[mesher.PosY][0].Pos[0] != 42 {
		t.Errorf("expected one assembled face tagged 42, got %v", streams[mesher.PosY])
	}
}

func TestAssembleSubstitutesParentWhenChildNotDone(t *testing.T) {
	lvl := level.New(0)
	child := chunkid.New(0, [3]int32{0, 0, 0})
	parent := child.ParentLOD()
	publishMesh(lvl, parent, 7)

	streams := Assemble(lvl, []chunkid.ID{child}, camAbove)
	if len(streams[mesher.PosY]) != 1 || streams[mesher.PosY][0].Pos[0] != 7 {
		t.Errorf("expected substitute parent mesh, got %v", streams[mesher.PosY])
	}
}

func TestAssembleSkipsIdsWithNoReadyAncestor(t *testing.T) {
	lvl := level.New(0)
	id := chunkid.New(0, [3]int32{5, 5, 5})

	streams := Assemble(lvl, []chunkid.ID{id}, camAbove)
	for dir, faces := range streams {
		if len(faces) != 0 {
			t.Errorf("direction %d: expected no faces, got %d", dir, len(faces))
		}
	}
}

func TestAssembleDoesNotDuplicateSharedAncestor(t *testing.T) {
	lvl := level.New(0)
	a := chunkid.New(0, [3]int32{0, 0, 0})
	b := chunkid.New(0, [3]int32{0, 0, 1})
	parent := a.ParentLOD()
	if parent != b.ParentLOD() {
		t.Skip("a and b do not share a parent at this lod boundary")
	}
	publishMesh(lvl, parent, 3)

	streams := Assemble(lvl, []chunkid.ID{a, b}, camAbove)
	if len(streams[mesher.PosY]) != 1 {
		t.Errorf("expected the shared parent mesh counted once, got %d faces", len(streams[mesher.PosY]))
	}
}

func TestAssembleCullsFaceFacingCamera(t *testing.T) {
	lvl := level.New(0)
	id := chunkid.New(0, [3]int32{0, 0, 0})
	publishMesh(lvl, id, 99)

	// Camera below the chunk's center: the PosY face's outward normal
	// {0,1,0} now points toward the camera and must be culled.
	camBelow := mgl32.Vec3{16, 64, 16}
	streams := Assemble(lvl, []chunkid.ID{id}, camBelow)
	if len(streams[mesher.PosY]) != 0 {
		t.Errorf("expected the camera-facing face to be culled, got %v", streams[mesher.PosY])
	}
}
