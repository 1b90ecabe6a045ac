package renderer

import (
	"github.com/Carmen-Shannon/spine-go/renderer/texture_cache"
	"github.com/cogentcore/webgpu/wgpu"
)

// Backend is the GPU command surface of the frame renderer. It embeds the
// cache's Allocator so one backend serves both resource materialization and
// per-frame encoding; tests substitute a counting fake.
type Backend interface {
	texture_cache.Allocator

	// WriteSceneView uploads the 16-element column-major view matrix to the
	// scene uniform buffer.
	WriteSceneView(view []float32)

	// WriteVertexData uploads the adapted vertices to the given buffer.
	WriteVertexData(buf *wgpu.Buffer, vertices []Vertex)

	// WriteIndexData uploads the indices to the given buffer, zero-padding
	// the write to the wgpu copy buffer alignment.
	WriteIndexData(buf *wgpu.Buffer, indices []uint16)

	// BindScene sets the scene bind group on the pass at group 0.
	BindScene(pass *wgpu.RenderPassEncoder)

	// DrawCall binds the resources' pipeline, texture bind group and buffers
	// on the pass, then encodes one indexed draw of indexCount indices.
	DrawCall(pass *wgpu.RenderPassEncoder, resources *texture_cache.DrawResources, indexCount int)
}
