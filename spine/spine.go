// package spine defines the contract between a skeletal-animation engine and
// the renderer. The engine owns skeleton state and produces per-frame
// renderable batches; the renderer consumes them without knowing how they were
// animated. Everything here is engine-facing: no GPU types leak in.
package spine

import "fmt"

// BlendMode identifies how a batch's fragments combine with the framebuffer.
// The values match the slot blend modes skeletal-animation editors export.
type BlendMode int

const (
	BlendModeNormal BlendMode = iota
	BlendModeAdditive
	BlendModeMultiply
	BlendModeScreen
)

// String returns the lowercase name of the blend mode.
func (b BlendMode) String() string {
	switch b {
	case BlendModeNormal:
		return "normal"
	case BlendModeAdditive:
		return "additive"
	case BlendModeMultiply:
		return "multiply"
	case BlendModeScreen:
		return "screen"
	default:
		return fmt.Sprintf("blendmode(%d)", int(b))
	}
}

// RenderableBatch is one draw's worth of skinned geometry, already posed in
// world space by the engine. The parallel slices share an index space:
// Vertices[i], UVs[i], Colors[i] and DarkColors[i] describe vertex i, and
// every index in Indices is less than len(Vertices).
//
// A batch with zero vertices is valid and simply not drawn. The renderer
// borrows the slices for the duration of one frame and never retains them.
type RenderableBatch struct {
	// Vertices holds world-space positions.
	Vertices [][2]float32
	// UVs holds normalized texture coordinates into the attachment's atlas page.
	UVs [][2]float32
	// Colors holds the per-vertex light tint (RGBA, 0..1).
	Colors [][4]float32
	// DarkColors holds the per-vertex dark tint for two-color tinting (RGBA, 0..1).
	DarkColors [][4]float32
	// Indices is the triangle list into the vertex slices.
	Indices []uint16
	// BlendMode selects one of the four blend equations for this batch.
	BlendMode BlendMode
	// PremultipliedAlpha reports whether the atlas texture colors are premultiplied.
	PremultipliedAlpha bool
	// Attachment is the engine-owned slot holding the GPU resources for this
	// batch's atlas page. The renderer materializes into it on first use.
	Attachment *RendererObject
}

// Controller is the surface the renderer needs from a skeletal-animation
// engine. Implementations advance skeleton time, pose the skeleton and emit
// batches in draw order.
type Controller interface {
	// Update advances the animation state by delta seconds.
	Update(delta float32)

	// Renderables returns the posed geometry for the current frame, in draw
	// order. The returned slices are only valid until the next Update.
	Renderables() []RenderableBatch

	// AnimationNames lists the animations available on the skeleton, in the
	// order they were authored.
	AnimationNames() []string

	// SetAnimation starts the named animation on the given track.
	//
	// Parameters:
	//   - track: the animation track index
	//   - name: the animation name, as listed by AnimationNames
	//   - loop: whether the animation repeats
	//
	// Returns:
	//   - error: error if the skeleton has no animation with that name
	SetAnimation(track int, name string, loop bool) error

	// PremultipliedAlpha reports whether the skeleton's atlas textures were
	// exported with premultiplied alpha.
	PremultipliedAlpha() bool
}
