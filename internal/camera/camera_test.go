package camera

import "testing"

func TestNewCameraFacesNegZ(t *testing.T) {
	c := NewCamera()
	if c.Dir.Z() >= 0 {
		t.Errorf("expected default camera to look down -Z, got Dir=%v", c.Dir)
	}
	if c.Fov <= 0 {
		t.Errorf("expected a positive default field of view, got %v", c.Fov)
	}
}

func TestFrustumCarriesPolicyConstants(t *testing.T) {
	c := NewCamera()
	f := c.Frustum(16.0/9.0, 512, 48, 2048)

	if f.CamPos != c.Pos || f.Dir != c.Dir || f.Up != c.Up || f.Fov != c.Fov {
		t.Errorf("Frustum() did not carry over camera state, got %+v", f)
	}
	if f.RenderDistance != 512 || f.FullDetailRange != 48 || f.MaxChunks != 2048 {
		t.Errorf("Frustum() did not carry over policy constants, got %+v", f)
	}
}

func TestViewProjChangesWithPosition(t *testing.T) {
	c := NewCamera()
	vp1 := c.ViewProj(16.0/9.0, 512)

	c.Pos = c.Pos.Add(c.Dir)
	vp2 := c.ViewProj(16.0/9.0, 512)

	if vp1 == vp2 {
		t.Error("expected ViewProj to change after moving the camera")
	}
}
