package texture_cache

import (
	"github.com/Carmen-Shannon/spine-go/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// Initial per-slot buffer sizes. Large enough for typical skeletons so most
// frames never reallocate; EnsureBufferCapacity grows them when one does not
// suffice.
const (
	// DefaultVertexBufferSize is 8192 vertices.
	DefaultVertexBufferSize = (1 << 13) * 48
	// DefaultIndexBufferSize is 8192 16-bit indices.
	DefaultIndexBufferSize = (1 << 13) * 2
)

// CacheOption is a functional option used to configure a Cache during construction.
type CacheOption func(*cache)

// WithDecoder sets the image decoder used to load atlas page pixels.
//
// Parameters:
//   - decode: a function decoding an image file into RGBA staging data
//
// Returns:
//   - CacheOption: a function that sets the decoder for this cache
func WithDecoder(decode func(path string) (common.TextureStagingData, error)) CacheOption {
	return func(c *cache) {
		c.decode = decode
	}
}

// WithSRGBCorrection enables re-premultiplying atlas pixels in linear space
// when they are uploaded into an sRGB texture format. Atlases premultiplied in
// sRGB space render slightly dark fringes without it. Off by default.
//
// Parameters:
//   - enabled: whether to apply the correction
//
// Returns:
//   - CacheOption: a function that sets the correction state for this cache
func WithSRGBCorrection(enabled bool) CacheOption {
	return func(c *cache) {
		c.srgbCorrection = enabled
	}
}

// WithCullMode sets the cull mode baked into pipelines this cache creates.
//
// Parameters:
//   - mode: the cull mode to use (e.g., wgpu.CullModeNone, wgpu.CullModeBack)
//
// Returns:
//   - CacheOption: a function that sets the cull mode for this cache
func WithCullMode(mode wgpu.CullMode) CacheOption {
	return func(c *cache) {
		c.cullMode = mode
	}
}

// WithVertexBufferSize sets the initial vertex buffer size in bytes for newly
// materialized slots.
//
// Parameters:
//   - size: the initial vertex buffer size in bytes
//
// Returns:
//   - CacheOption: a function that sets the initial vertex buffer size
func WithVertexBufferSize(size uint64) CacheOption {
	return func(c *cache) {
		c.vertexBufferSize = size
	}
}

// WithIndexBufferSize sets the initial index buffer size in bytes for newly
// materialized slots.
//
// Parameters:
//   - size: the initial index buffer size in bytes
//
// Returns:
//   - CacheOption: a function that sets the initial index buffer size
func WithIndexBufferSize(size uint64) CacheOption {
	return func(c *cache) {
		c.indexBufferSize = size
	}
}

// NewCache creates a Cache backed by the given allocator.
//
// Parameters:
//   - alloc: the GPU allocation surface, typically the renderer's backend
//   - options: optional configuration for the cache
//
// Returns:
//   - Cache: a new instance of Cache configured with the provided options
func NewCache(alloc Allocator, options ...CacheOption) Cache {
	if alloc == nil {
		panic("texture_cache: nil allocator")
	}
	c := &cache{
		alloc:            alloc,
		decode:           common.DecodeTextureFile,
		cullMode:         wgpu.CullModeNone,
		vertexBufferSize: DefaultVertexBufferSize,
		indexBufferSize:  DefaultIndexBufferSize,
		pipelines:        make(map[pipelineKey]*wgpu.RenderPipeline),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}
