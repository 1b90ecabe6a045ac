// package texture_cache lazily materializes the GPU resources a skeletal
// attachment needs to draw: the atlas texture and sampler bind group, vertex
// and index buffers, and the blend-specific render pipeline. Resources are
// keyed by the engine-owned renderer-object slot on each atlas page and are
// created on first use, on the render thread, exactly once per slot.
package texture_cache

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/spine-go/common"
	"github.com/Carmen-Shannon/spine-go/spine"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrDecodeFailed wraps image decode errors. A decode failure is recoverable:
// the slot stays in its loading state and the next frame retries, so callers
// skip the batch instead of aborting the frame.
var ErrDecodeFailed = errors.New("texture decode failed")

// Allocator is the narrow GPU allocation surface the cache needs. The
// renderer's backend implements it; tests use a counting fake.
type Allocator interface {
	// TextureFormat returns the texture format policy for atlas pages:
	// an sRGB format when the target surface is sRGB and the content is
	// premultiplied, a linear format otherwise.
	TextureFormat(premultipliedAlpha bool) wgpu.TextureFormat

	// CreateBlendPipeline creates a render pipeline for the given blend state
	// and cull mode. All other pipeline state is fixed.
	CreateBlendPipeline(blend wgpu.BlendState, cullMode wgpu.CullMode) (*wgpu.RenderPipeline, error)

	// CreateVertexBuffer creates a vertex buffer of the given byte size.
	CreateVertexBuffer(size uint64) (*wgpu.Buffer, error)

	// CreateIndexBuffer creates an index buffer of the given byte size.
	CreateIndexBuffer(size uint64) (*wgpu.Buffer, error)

	// CreateTextureBindGroup uploads the staged pixels into a new texture of
	// the given format, creates the sampler, and binds both into a bind group
	// matching the texture bind group layout.
	CreateTextureBindGroup(staging common.TextureStagingData, sampler common.SamplerStagingData, format wgpu.TextureFormat) (*wgpu.Texture, *wgpu.BindGroup, error)
}

// Slot is the renderer-side state stored in an atlas page's renderer object.
// It starts in the loading state, holding only the image path and sampler
// settings, and transitions to loaded exactly once when the cache
// materializes its DrawResources. Only the render thread touches a Slot.
type Slot struct {
	// Path is the atlas page image path to decode on first use.
	Path string
	// Sampler is the sampler configuration derived from the atlas page.
	Sampler common.SamplerStagingData
	// Staging holds prefetched pixels when a Prefetcher decoded the page
	// ahead of the first draw. Consumed and cleared on materialization.
	Staging *common.TextureStagingData

	resources *DrawResources
}

// NewSlot creates a slot in the loading state.
//
// Parameters:
//   - path: the atlas page image path
//   - sampler: the sampler configuration for the page
//
// Returns:
//   - *Slot: a slot ready to be stored in the page's renderer object
func NewSlot(path string, sampler common.SamplerStagingData) *Slot {
	return &Slot{Path: path, Sampler: sampler}
}

// Loaded reports whether the slot's GPU resources have been materialized.
func (s *Slot) Loaded() bool {
	return s.resources != nil
}

// Resources returns the materialized draw resources, or nil while loading.
func (s *Slot) Resources() *DrawResources {
	return s.resources
}

// Release frees the slot's GPU resources, if any. Called from the engine's
// dispose-texture callback.
func (s *Slot) Release() {
	if s.resources != nil {
		s.resources.Release()
		s.resources = nil
	}
}

// DrawResources bundles everything one attachment draw needs. The buffers,
// bind group and texture are owned by the slot; the pipeline is owned by the
// cache and shared between slots that draw with the same blend state.
type DrawResources struct {
	// Pipeline is the render pipeline for the batch's resolved blend state.
	// Refreshed by GetOrCreate on every call; not released with the rest.
	Pipeline *wgpu.RenderPipeline
	// VertexBuffer holds the batch's adapted vertices.
	VertexBuffer *wgpu.Buffer
	// IndexBuffer holds the batch's triangle indices.
	IndexBuffer *wgpu.Buffer
	// BindGroup binds the atlas texture and sampler at group 1.
	BindGroup *wgpu.BindGroup
	// Texture is the uploaded atlas page texture.
	Texture *wgpu.Texture
	// VertexCapacity is the vertex buffer size in bytes. Grows, never shrinks.
	VertexCapacity uint64
	// IndexCapacity is the index buffer size in bytes. Grows, never shrinks.
	IndexCapacity uint64
}

// Release frees the slot-owned GPU objects. The pipeline is cache-owned and
// left alone.
func (r *DrawResources) Release() {
	if r.VertexBuffer != nil {
		r.VertexBuffer.Release()
		r.VertexBuffer = nil
	}
	if r.IndexBuffer != nil {
		r.IndexBuffer.Release()
		r.IndexBuffer = nil
	}
	if r.BindGroup != nil {
		r.BindGroup.Release()
		r.BindGroup = nil
	}
	if r.Texture != nil {
		r.Texture.Release()
		r.Texture = nil
	}
	r.VertexCapacity = 0
	r.IndexCapacity = 0
}

// Cache materializes and retrieves per-attachment draw resources.
type Cache interface {
	// GetOrCreate returns the draw resources for the attachment's slot,
	// materializing them on first use. The returned resources carry the
	// pipeline for the given blend state.
	//
	// Parameters:
	//   - obj: the attachment's renderer object, holding a *Slot
	//   - blend: the resolved blend state for the batch
	//   - premultipliedAlpha: the batch's alpha convention, for the texture format policy
	//
	// Returns:
	//   - *DrawResources: resources ready for upload and draw
	//   - error: ErrDecodeFailed-wrapped error on image decode failure (slot
	//     stays loading and is retried next frame), or a GPU allocation error
	GetOrCreate(obj *spine.RendererObject, blend wgpu.BlendState, premultipliedAlpha bool) (*DrawResources, error)

	// EnsureBufferCapacity grows the resources' vertex and index buffers to
	// at least the given byte sizes. Buffers only ever grow; a smaller
	// request leaves them untouched.
	//
	// Parameters:
	//   - res: the resources whose buffers to grow
	//   - vertexBytes: required vertex buffer size in bytes
	//   - indexBytes: required index buffer size in bytes
	//
	// Returns:
	//   - error: a GPU allocation error, otherwise nil
	EnsureBufferCapacity(res *DrawResources, vertexBytes, indexBytes uint64) error

	// Release frees the cache-owned pipelines. Slot resources are released
	// through the engine's dispose callbacks, not here.
	Release()
}

type pipelineKey struct {
	blend    wgpu.BlendState
	cullMode wgpu.CullMode
}

type cache struct {
	alloc            Allocator
	decode           func(path string) (common.TextureStagingData, error)
	srgbCorrection   bool
	cullMode         wgpu.CullMode
	vertexBufferSize uint64
	indexBufferSize  uint64

	pipelines map[pipelineKey]*wgpu.RenderPipeline
}

var _ Cache = &cache{}

func (c *cache) GetOrCreate(obj *spine.RendererObject, blend wgpu.BlendState, premultipliedAlpha bool) (*DrawResources, error) {
	v := obj.Get()
	if v == nil {
		return nil, errors.New("attachment has no texture slot")
	}
	slot, ok := v.(*Slot)
	if !ok {
		return nil, fmt.Errorf("attachment renderer object holds %T, not a texture slot", v)
	}

	if slot.resources == nil {
		if err := c.materialize(slot, premultipliedAlpha); err != nil {
			return nil, err
		}
	}

	pipeline, err := c.pipelineFor(blend)
	if err != nil {
		return nil, err
	}
	slot.resources.Pipeline = pipeline

	return slot.resources, nil
}

// materialize performs the slot's one loading-to-loaded transition.
func (c *cache) materialize(slot *Slot, premultipliedAlpha bool) error {
	staging := slot.Staging
	if staging == nil {
		decoded, err := c.decode(slot.Path)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrDecodeFailed, slot.Path, err)
		}
		staging = &decoded
	}

	format := c.alloc.TextureFormat(premultipliedAlpha)
	if c.srgbCorrection && format == wgpu.TextureFormatRGBA8UnormSrgb {
		correctPremultipliedSRGB(staging.Pixels)
	}

	texture, bindGroup, err := c.alloc.CreateTextureBindGroup(*staging, slot.Sampler, format)
	if err != nil {
		return err
	}
	vertexBuffer, err := c.alloc.CreateVertexBuffer(c.vertexBufferSize)
	if err != nil {
		texture.Release()
		bindGroup.Release()
		return err
	}
	indexBuffer, err := c.alloc.CreateIndexBuffer(c.indexBufferSize)
	if err != nil {
		texture.Release()
		bindGroup.Release()
		vertexBuffer.Release()
		return err
	}

	slot.resources = &DrawResources{
		VertexBuffer:   vertexBuffer,
		IndexBuffer:    indexBuffer,
		BindGroup:      bindGroup,
		Texture:        texture,
		VertexCapacity: c.vertexBufferSize,
		IndexCapacity:  c.indexBufferSize,
	}
	slot.Staging = nil

	return nil
}

func (c *cache) pipelineFor(blend wgpu.BlendState) (*wgpu.RenderPipeline, error) {
	key := pipelineKey{blend: blend, cullMode: c.cullMode}
	if p, ok := c.pipelines[key]; ok {
		return p, nil
	}
	p, err := c.alloc.CreateBlendPipeline(blend, c.cullMode)
	if err != nil {
		return nil, err
	}
	c.pipelines[key] = p
	return p, nil
}

func (c *cache) EnsureBufferCapacity(res *DrawResources, vertexBytes, indexBytes uint64) error {
	if vertexBytes > res.VertexCapacity {
		buf, err := c.alloc.CreateVertexBuffer(vertexBytes)
		if err != nil {
			return err
		}
		if res.VertexBuffer != nil {
			res.VertexBuffer.Release()
		}
		res.VertexBuffer = buf
		res.VertexCapacity = vertexBytes
	}
	if indexBytes > res.IndexCapacity {
		buf, err := c.alloc.CreateIndexBuffer(indexBytes)
		if err != nil {
			return err
		}
		if res.IndexBuffer != nil {
			res.IndexBuffer.Release()
		}
		res.IndexBuffer = buf
		res.IndexCapacity = indexBytes
	}
	return nil
}

func (c *cache) Release() {
	for key, p := range c.pipelines {
		p.Release()
		delete(c.pipelines, key)
	}
}
