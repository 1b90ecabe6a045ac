package renderer

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/spine-go/common"
	"github.com/Carmen-Shannon/spine-go/renderer/texture_cache"
	"github.com/Carmen-Shannon/spine-go/spine"
	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderSource is the WGSL source for the skeletal render pipeline: a scene
// uniform vertex transform and a two-color-tint fragment stage.
//
//go:embed assets/spine.wgsl
var ShaderSource string

// contextActive guards against a second Context for the same process. The
// texture callbacks it registers are process-global, so a second registry
// would silently steal them; touched only from the render thread.
var contextActive bool

// Context is the registry of shared GPU objects every draw needs: the device
// and queue, the compiled shader, the bind group layouts, the pipeline layout
// and the scene uniform. It is created once per GPU context, is read-only
// after construction, and is passed explicitly to everything that needs it.
//
// Construction also registers the engine texture callbacks so atlas pages
// loaded afterwards carry a texture slot for the cache.
type Context struct {
	device       *wgpu.Device
	queue        *wgpu.Queue
	targetFormat wgpu.TextureFormat

	shader                 *wgpu.ShaderModule
	sceneBuffer            *wgpu.Buffer
	sceneBindGroupLayout   *wgpu.BindGroupLayout
	sceneBindGroup         *wgpu.BindGroup
	textureBindGroupLayout *wgpu.BindGroupLayout
	pipelineLayout         *wgpu.PipelineLayout
}

// NewContext compiles the shader and creates the shared GPU objects against
// the given device. targetFormat is the color format of the surface the
// frames will render into; pipelines and the texture format policy derive
// from it.
//
// Panics if a Context is already active, since the texture callbacks are
// process-global.
//
// Parameters:
//   - device: the GPU device, owned by the embedding application
//   - queue: the device's queue
//   - targetFormat: the render target's texture format
//
// Returns:
//   - *Context: the shared GPU object registry
//   - error: an error if any GPU object could not be created
func NewContext(device *wgpu.Device, queue *wgpu.Queue, targetFormat wgpu.TextureFormat) (*Context, error) {
	if contextActive {
		panic("renderer: a Context is already active")
	}

	shader, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "Spine Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: ShaderSource,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create shader module: %w", err)
	}

	sceneBuffer, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Spine Scene Buffer",
		Size:  16 * 4,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create scene buffer: %w", err)
	}
	identity := make([]float32, 16)
	common.Identity(identity)
	queue.WriteBuffer(sceneBuffer, 0, common.SliceToBytes(identity))

	sceneBindGroupLayout, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Spine Scene Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer: wgpu.BufferBindingLayout{
					Type: wgpu.BufferBindingTypeUniform,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create scene bind group layout: %w", err)
	}

	sceneBindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Spine Scene Bind Group",
		Layout: sceneBindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  sceneBuffer,
				Offset:  0,
				Size:    wgpu.WholeSize,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create scene bind group: %w", err)
	}

	textureBindGroupLayout, err := device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Spine Texture Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
					Multisampled:  false,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create texture bind group layout: %w", err)
	}

	pipelineLayout, err := device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Spine Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{sceneBindGroupLayout, textureBindGroupLayout},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline layout: %w", err)
	}

	ctx := &Context{
		device:                 device,
		queue:                  queue,
		targetFormat:           targetFormat,
		shader:                 shader,
		sceneBuffer:            sceneBuffer,
		sceneBindGroupLayout:   sceneBindGroupLayout,
		sceneBindGroup:         sceneBindGroup,
		textureBindGroupLayout: textureBindGroupLayout,
		pipelineLayout:         pipelineLayout,
	}

	registerTextureCallbacks()
	contextActive = true

	return ctx, nil
}

// Device returns the GPU device.
func (c *Context) Device() *wgpu.Device {
	return c.device
}

// Queue returns the device queue.
func (c *Context) Queue() *wgpu.Queue {
	return c.queue
}

// TargetFormat returns the render target's texture format.
func (c *Context) TargetFormat() wgpu.TextureFormat {
	return c.targetFormat
}

// Release frees the context's GPU objects and unregisters the texture
// callbacks. The device and queue are not released; they belong to the
// embedding application.
func (c *Context) Release() {
	spine.SetCreateTextureCallback(nil)
	spine.SetDisposeTextureCallback(nil)
	contextActive = false

	c.pipelineLayout.Release()
	c.textureBindGroupLayout.Release()
	c.sceneBindGroup.Release()
	c.sceneBindGroupLayout.Release()
	c.sceneBuffer.Release()
	c.shader.Release()
}

// registerTextureCallbacks installs the engine hooks that park a loading
// texture slot on each atlas page and release it again on disposal.
func registerTextureCallbacks() {
	spine.SetCreateTextureCallback(func(page *spine.AtlasPage) {
		page.RendererObject.Set(texture_cache.NewSlot(page.Path, common.SamplerStagingData{
			AddressModeU: convertWrap(page.UWrap),
			AddressModeV: convertWrap(page.VWrap),
			MagFilter:    convertFilter(page.MagFilter),
			MinFilter:    convertFilter(page.MinFilter),
		}))
	})

	spine.SetDisposeTextureCallback(func(page *spine.AtlasPage) {
		if slot, ok := page.RendererObject.Dispose().(*texture_cache.Slot); ok {
			slot.Release()
		}
	})
}

func convertWrap(wrap spine.AtlasWrap) wgpu.AddressMode {
	switch wrap {
	case spine.AtlasWrapMirroredRepeat:
		return wgpu.AddressModeMirrorRepeat
	case spine.AtlasWrapRepeat:
		return wgpu.AddressModeRepeat
	case spine.AtlasWrapClampToEdge:
		fallthrough
	default:
		return wgpu.AddressModeClampToEdge
	}
}

func convertFilter(filter spine.AtlasFilter) wgpu.FilterMode {
	switch filter {
	case spine.AtlasFilterNearest:
		return wgpu.FilterModeNearest
	default:
		// Mipmapped atlas filters sample as linear; per-page mips are not generated.
		return wgpu.FilterModeLinear
	}
}
