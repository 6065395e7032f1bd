// Package frustum selects the ordered set of chunkid.IDs visible from a
// camera this frame, tagged with a heterogeneous level of detail. Plane
// extraction is ported from the teacher's internal/graphics/renderables/
// blocks/frustum.go (Gribb/Hartmann extraction from a clip matrix); the
// LOD-banding and overlap-drop resolution rule is ported from
// original_source's server/frustum.rs (lod_level_at, Frustum::chunk_ids).
package frustum

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/mikatschuh/voxeled/internal/chunkid"
	"github.com/mikatschuh/voxeled/internal/profiling"
)

// Frustum is a pure input: camera state plus the policy constants that
// drive LOD banding and the output cap. It carries no lifetime and the
// selector never consults the chunk registry.
type Frustum struct {
	CamPos mgl32.Vec3
	Dir    mgl32.Vec3
	Up     mgl32.Vec3
	Fov    float32 // radians
	Aspect float32

	RenderDistance  float32 // world units
	FullDetailRange float32 // world units; band 0's outer radius
	MaxChunks       int
}

type plane struct{ a, b, c, d float32 }

func normalizePlane(p plane) plane {
	l := float32(math.Sqrt(float64(p.a*p.a + p.b*p.b + p.c*p.c)))
	if l == 0 {
		return p
	}
	return plane{p.a / l, p.b / l, p.c / l, p.d / l}
}

func extractPlanes(clip mgl32.Mat4) [6]plane {
	m00, m01, m02, m03 := clip[0], clip[4], clip[8], clip[12]
	m10, m11, m12, m13 := clip[1], clip[5], clip[9], clip[13]
	m20, m21, m22, m23 := clip[2], clip[6], clip[10], clip[14]
	m30, m31, m32, m33 := clip[3], clip[7], clip[11], clip[15]

	var pl [6]plane
	pl[0] = normalizePlane(plane{m30 + m00, m31 + m01, m32 + m02, m33 + m03}) // left
	pl[1] = normalizePlane(plane{m30 - m00, m31 - m01, m32 - m02, m33 - m03}) // right
	pl[2] = normalizePlane(plane{m30 + m10, m31 + m11, m32 + m12, m33 + m13}) // bottom
	pl[3] = normalizePlane(plane{m30 - m10, m31 - m11, m32 - m12, m33 - m13}) // top
	pl[4] = normalizePlane(plane{m30 + m20, m31 + m21, m32 + m22, m33 + m23}) // near
	pl[5] = normalizePlane(plane{m30 - m20, m31 - m21, m32 - m22, m33 - m23}) // far
	return pl
}

func aabbIntersects(min, max mgl32.Vec3, planes [6]plane) bool {
	for _, p := range planes {
		px, py, pz := max.X(), max.Y(), max.Z()
		if p.a < 0 {
			px = min.X()
		}
		if p.b < 0 {
			py = min.Y()
		}
		if p.c < 0 {
			pz = min.Z()
		}
		if p.a*px+p.b*py+p.c*pz+p.d < 0 {
			return false
		}
	}
	return true
}

// viewProj builds a view-projection clip matrix from the frustum's
// camera state, the same surface internal/camera exposes for external
// GPU collaborators.
func (f Frustum) viewProj() mgl32.Mat4 {
	proj := mgl32.Perspective(f.Fov, f.Aspect, 0.05, f.RenderDistance+32)
	view := mgl32.LookAtV(f.CamPos, f.CamPos.Add(f.Dir), f.Up)
	return proj.Mul4(view)
}

// lodBand returns the LOD band a chunk at dst world units from the
// camera falls into: doubling radii starting at FullDetailRange, capped
// at chunkid.MaxLOD.
func lodBand(dst, fullDetailRange float32) uint8 {
	band := fullDetailRange
	for lod := uint8(0); lod < chunkid.MaxLOD; lod++ {
		if dst <= band {
			return lod
		}
		band *= 2
	}
	return chunkid.MaxLOD
}

// Select returns the ordered, LOD-tagged, max_chunks-capped set of
// chunkid.IDs visible from f this frame, nearest-first, with coarser
// bands dominating any overlapping finer candidate.
func Select(f Frustum) []chunkid.ID {
	defer profiling.Track("frustum.Select")()

	planes := extractPlanes(f.viewProj())

	chunkWidth := float32(chunkid.NativeSize)
	camChunk := f.CamPos.Mul(1.0 / chunkWidth)

	bounds := int32(f.RenderDistance/chunkWidth) + 1
	minX, minY, minZ := int32(math.Floor(float64(camChunk.X())))-bounds, int32(math.Floor(float64(camChunk.Y())))-bounds, int32(math.Floor(float64(camChunk.Z())))-bounds
	maxX, maxY, maxZ := int32(math.Ceil(float64(camChunk.X())))+bounds, int32(math.Ceil(float64(camChunk.Y())))+bounds, int32(math.Ceil(float64(camChunk.Z())))+bounds

	var ids []chunkid.ID

	for cx := minX; cx <= maxX; cx++ {
		for cy := minY; cy <= maxY; cy++ {
			for cz := minZ; cz <= maxZ; cz++ {
				cellPos := mgl32.Vec3{float32(cx) + 0.5, float32(cy) + 0.5, float32(cz) + 0.5}.Mul(chunkWidth)
				dst := cellPos.Sub(f.CamPos).Len()
				if dst > f.RenderDistance {
					continue
				}

				halfExtent := chunkWidth / 2
				min := cellPos.Sub(mgl32.Vec3{halfExtent, halfExtent, halfExtent})
				max := cellPos.Add(mgl32.Vec3{halfExtent, halfExtent, halfExtent})
				if !aabbIntersects(min, max, planes) {
					continue
				}

				lod := lodBand(dst, f.FullDetailRange)
				lodPos := [3]int32{cx >> lod, cy >> lod, cz >> lod}
				candidate := chunkid.ID{LOD: lod, Pos: lodPos}

				ids = insertResolvingOverlap(ids, candidate)
			}
		}
	}

	sort.Slice(ids, func(i, j int) bool {
		return distToCam(ids[i], camChunk) < distToCam(ids[j], camChunk)
	})

	if len(ids) > f.MaxChunks {
		ids = ids[:f.MaxChunks]
	}
	return ids
}

// insertResolvingOverlap applies the "coarser bands dominate" rule: a
// finer candidate overlapping an existing coarser-or-equal id is
// dropped; a coarser candidate evicts any existing finer ids it
// overlaps.
func insertResolvingOverlap(ids []chunkid.ID, candidate chunkid.ID) []chunkid.ID {
	for _, existing := range ids {
		if existing.LOD >= candidate.LOD && chunkid.Overlaps(existing, candidate) {
			return ids
		}
	}
	kept := ids[:0]
	for _, existing := range ids {
		if existing.LOD < candidate.LOD && chunkid.Overlaps(existing, candidate) {
			continue
		}
		kept = append(kept, existing)
	}
	return append(kept, candidate)
}

// distToCam returns the distance from id's region center (not its min
// corner) to the camera, in lod-0-chunk-width units, so ties between
// overlapping-but-unequal bands sort by cell-center distance per spec.
func distToCam(id chunkid.ID, camChunk mgl32.Vec3) float32 {
	shift := float32(int32(1) << id.LOD)
	center := mgl32.Vec3{
		(float32(id.Pos[0]) + 0.5) * shift,
		(float32(id.Pos[1]) + 0.5) * shift,
		(float32(id.Pos[2]) + 0.5) * shift,
	}
	return center.Sub(camChunk).Len()
}
