// Package inputs defines the plain per-frame input snapshot the core
// reads. Binding, edge-detection, and double-tap handling are the
// embedding program's job (the teacher's internal/input/input.go
// InputManager plays that role); this struct mirrors only the fields
// spec.md §6 lists as the core's external input surface.
package inputs

// Inputs is a single frame's worth of movement and control state.
type Inputs struct {
	Forward, Back, Left, Right bool
	Up, Down                   bool

	Jump    bool
	FreeCam bool
	Pause   bool
	Remesh  bool

	MouseMotion [2]float32
	MouseWheel  [2]float32
}
