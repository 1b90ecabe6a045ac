package renderer

import (
	"errors"
	"log"

	"github.com/Carmen-Shannon/spine-go/renderer/texture_cache"
	"github.com/Carmen-Shannon/spine-go/spine"
	"github.com/cogentcore/webgpu/wgpu"
)

// FrameRenderer encodes one frame's worth of batches into a render pass.
type FrameRenderer interface {
	// Render draws the batches in input order. Batches with no vertices or no
	// attachment are skipped. A batch whose texture fails to decode is logged
	// and skipped, leaving its slot to retry next frame; GPU allocation
	// failures abort the frame.
	//
	// Parameters:
	//   - pass: the render pass to encode into, with the target already bound
	//   - batches: the frame's renderable batches, in draw order
	//   - view: the 16-element column-major scene view matrix
	//
	// Returns:
	//   - error: a GPU allocation error, otherwise nil
	Render(pass *wgpu.RenderPassEncoder, batches []spine.RenderableBatch, view []float32) error

	// Cache exposes the texture cache, e.g. to pair it with a Prefetcher.
	Cache() texture_cache.Cache

	// Release frees the renderer's cache-owned GPU objects.
	Release()
}

type frameRenderer struct {
	backend Backend
	cache   texture_cache.Cache

	// verts is the per-frame vertex scratch; grows to the largest batch and
	// is reused so steady-state frames allocate nothing.
	verts []Vertex
}

var _ FrameRenderer = &frameRenderer{}

// NewFrameRenderer creates a FrameRenderer drawing through the given context.
//
// Parameters:
//   - ctx: the shared GPU object registry
//   - cacheOptions: optional configuration for the texture cache
//
// Returns:
//   - FrameRenderer: a new instance of FrameRenderer
func NewFrameRenderer(ctx *Context, cacheOptions ...texture_cache.CacheOption) FrameRenderer {
	if ctx == nil {
		panic("renderer: nil context")
	}
	backend := newWGPUBackend(ctx)
	return &frameRenderer{
		backend: backend,
		cache:   texture_cache.NewCache(backend, cacheOptions...),
	}
}

func (f *frameRenderer) Render(pass *wgpu.RenderPassEncoder, batches []spine.RenderableBatch, view []float32) error {
	f.backend.WriteSceneView(view)
	f.backend.BindScene(pass)

	for i := range batches {
		batch := &batches[i]
		if len(batch.Vertices) == 0 {
			continue
		}
		if batch.Attachment == nil {
			continue
		}

		blend := ResolveBlendState(batch.BlendMode, batch.PremultipliedAlpha)

		resources, err := f.cache.GetOrCreate(batch.Attachment, blend, batch.PremultipliedAlpha)
		if err != nil {
			if errors.Is(err, texture_cache.ErrDecodeFailed) {
				log.Printf("warning: skipping batch: %v", err)
				continue
			}
			return err
		}

		f.verts = BuildVertices(*batch, f.verts[:0])

		vertexBytes := uint64(len(f.verts)) * VertexStride
		indexBytes := paddedIndexBytes(len(batch.Indices))
		if err := f.cache.EnsureBufferCapacity(resources, vertexBytes, indexBytes); err != nil {
			return err
		}

		f.backend.WriteVertexData(resources.VertexBuffer, f.verts)
		f.backend.WriteIndexData(resources.IndexBuffer, batch.Indices)
		f.backend.DrawCall(pass, resources, len(batch.Indices))
	}

	return nil
}

func (f *frameRenderer) Cache() texture_cache.Cache {
	return f.cache
}

func (f *frameRenderer) Release() {
	f.cache.Release()
}

// paddedIndexBytes returns the upload size for count 16-bit indices, rounded
// up to the copy buffer alignment.
func paddedIndexBytes(count int) uint64 {
	bytes := uint64(count) * 2
	return (bytes + copyBufferAlignment - 1) &^ uint64(copyBufferAlignment-1)
}
