// package renderer turns per-frame skeletal-animation batches into GPU work.
// It owns the shared GPU objects (shader, layouts, scene uniform) through
// Context, resolves blend states, adapts batches into the GPU vertex layout,
// and encodes draws through a swappable Backend.
package renderer

import "github.com/cogentcore/webgpu/wgpu"

// Vertex is the GPU-side vertex for skinned geometry. Field order matches the
// vertex inputs of the embedded shader; the struct is uploaded as raw bytes so
// the layout must stay in sync with VertexBufferLayout.
type Vertex struct {
	// Position is the world-space position.
	Position [2]float32
	// UV is the normalized texture coordinate into the atlas page.
	UV [2]float32
	// Color is the light tint (RGBA, 0..1).
	Color [4]float32
	// DarkColor is the dark tint for two-color tinting (RGBA, 0..1).
	DarkColor [4]float32
}

// VertexStride is the byte size of one Vertex. It is a multiple of the wgpu
// copy buffer alignment, so vertex uploads never need padding.
const VertexStride = 48

// VertexBufferLayout returns the wgpu vertex buffer layout matching Vertex.
//
// Returns:
//   - wgpu.VertexBufferLayout: per-vertex layout with position, uv, color and dark color attributes at shader locations 0-3
func VertexBufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: VertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{ShaderLocation: 0, Offset: 0, Format: wgpu.VertexFormatFloat32x2},
			{ShaderLocation: 1, Offset: 8, Format: wgpu.VertexFormatFloat32x2},
			{ShaderLocation: 2, Offset: 16, Format: wgpu.VertexFormatFloat32x4},
			{ShaderLocation: 3, Offset: 32, Format: wgpu.VertexFormatFloat32x4},
		},
	}
}
