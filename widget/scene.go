// package widget hosts a skeletal-animation skeleton inside a retained-mode
// UI: the Spine widget advances the engine once per frame and queues the GPU
// paint on the embedding host.
package widget

import "github.com/Carmen-Shannon/spine-go/common"

// Reflect selects which axes of the scene are mirrored.
type Reflect uint8

const (
	// ReflectXAxis mirrors the scene across the X axis (vertical flip).
	ReflectXAxis Reflect = 1 << iota
	// ReflectYAxis mirrors the scene across the Y axis (horizontal flip).
	ReflectYAxis
)

// Has reports whether flag is set.
func (r Reflect) Has(flag Reflect) bool {
	return r&flag != 0
}

// Scene is the 2D camera for a Spine widget. The origin sits at the center of
// the widget rect, with +X right and +Y up in skeleton space.
type Scene struct {
	// Position is the skeleton's translation from the widget center.
	Position [2]float32
	// Angle is the rotation around the view axis, in radians.
	Angle float32
	// Scale is the uniform zoom factor.
	Scale float32
	// Reflect mirrors the view across the selected axes.
	Reflect Reflect
}

// DefaultScene returns a centered, unrotated scene at scale 1.
func DefaultScene() Scene {
	return Scene{Scale: 1}
}

// View builds the column-major view matrix for a widget of the given size:
// an orthographic projection spanning the rect, centered on the origin,
// multiplied by the scene's world transform.
//
// Parameters:
//   - width, height: the widget rect size in pixels
//
// Returns:
//   - [16]float32: the combined projection and world matrix
func (s Scene) View(width, height float32) [16]float32 {
	var world, proj, out [16]float32
	common.BuildModelMatrix2D(world[:], s.Position[0], s.Position[1], s.Angle, s.Scale)

	left, right := width*-0.5, width*0.5
	bottom, top := height*-0.5, height*0.5
	if s.Reflect.Has(ReflectXAxis) {
		bottom, top = top, bottom
	}
	if s.Reflect.Has(ReflectYAxis) {
		left, right = right, left
	}
	common.Ortho(proj[:], left, right, bottom, top, 0, 1)

	common.Mul4(out[:], proj[:], world[:])
	return out
}
