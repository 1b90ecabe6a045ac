package renderer

import (
	"github.com/Carmen-Shannon/spine-go/common"
	"github.com/Carmen-Shannon/spine-go/renderer/texture_cache"
	"github.com/cogentcore/webgpu/wgpu"
)

// copyBufferAlignment is the wgpu alignment every queue buffer write must
// satisfy, in bytes.
const copyBufferAlignment = 4

type wgpuBackendImpl struct {
	ctx *Context

	// indexScratch pads odd-length index uploads; reused across frames.
	// The backend is render-thread only, like everything it encodes into.
	indexScratch []uint16
}

var _ Backend = &wgpuBackendImpl{}
var _ texture_cache.Allocator = &wgpuBackendImpl{}

func newWGPUBackend(ctx *Context) Backend {
	return &wgpuBackendImpl{ctx: ctx}
}

func (b *wgpuBackendImpl) TextureFormat(premultipliedAlpha bool) wgpu.TextureFormat {
	if premultipliedAlpha && isSRGBFormat(b.ctx.targetFormat) {
		return wgpu.TextureFormatRGBA8UnormSrgb
	}
	return wgpu.TextureFormatRGBA8Unorm
}

func (b *wgpuBackendImpl) CreateBlendPipeline(blend wgpu.BlendState, cullMode wgpu.CullMode) (*wgpu.RenderPipeline, error) {
	return b.ctx.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Spine Render Pipeline",
		Layout: b.ctx.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     b.ctx.shader,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{VertexBufferLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     b.ctx.shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    b.ctx.targetFormat,
					Blend:     &blend,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  cullMode,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
}

func (b *wgpuBackendImpl) CreateVertexBuffer(size uint64) (*wgpu.Buffer, error) {
	return b.ctx.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Spine Vertex Buffer",
		Size:  size,
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
}

func (b *wgpuBackendImpl) CreateIndexBuffer(size uint64) (*wgpu.Buffer, error) {
	return b.ctx.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Spine Index Buffer",
		Size:  size,
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
}

func (b *wgpuBackendImpl) CreateTextureBindGroup(staging common.TextureStagingData, sampler common.SamplerStagingData, format wgpu.TextureFormat) (*wgpu.Texture, *wgpu.BindGroup, error) {
	texture, err := b.ctx.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "Spine Texture",
		Size: wgpu.Extent3D{
			Width:              staging.Width,
			Height:             staging.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, nil, err
	}

	b.ctx.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		staging.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  staging.Width * 4,
			RowsPerImage: staging.Height,
		},
		&wgpu.Extent3D{
			Width:              staging.Width,
			Height:             staging.Height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return nil, nil, err
	}

	samp, err := b.ctx.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Spine Texture Sampler",
		AddressModeU:  common.Coalesce(sampler.AddressModeU, wgpu.AddressModeClampToEdge),
		AddressModeV:  common.Coalesce(sampler.AddressModeV, wgpu.AddressModeClampToEdge),
		AddressModeW:  common.Coalesce(sampler.AddressModeW, wgpu.AddressModeClampToEdge),
		MagFilter:     common.Coalesce(sampler.MagFilter, wgpu.FilterModeLinear),
		MinFilter:     common.Coalesce(sampler.MinFilter, wgpu.FilterModeLinear),
		MipmapFilter:  common.Coalesce(sampler.MipmapFilter, wgpu.MipmapFilterModeLinear),
		LodMinClamp:   common.Coalesce(sampler.LodMinClamp, 0.0),
		LodMaxClamp:   common.Coalesce(sampler.LodMaxClamp, 32.0),
		MaxAnisotropy: common.Coalesce(sampler.MaxAnisotropy, 1),
	})
	if err != nil {
		view.Release()
		texture.Release()
		return nil, nil, err
	}

	bindGroup, err := b.ctx.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Spine Texture Bind Group",
		Layout: b.ctx.textureBindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding:     0,
				TextureView: view,
			},
			{
				Binding: 1,
				Sampler: samp,
			},
		},
	})
	if err != nil {
		samp.Release()
		view.Release()
		texture.Release()
		return nil, nil, err
	}

	return texture, bindGroup, nil
}

func (b *wgpuBackendImpl) WriteSceneView(view []float32) {
	b.ctx.queue.WriteBuffer(b.ctx.sceneBuffer, 0, common.SliceToBytes(view[:16]))
}

func (b *wgpuBackendImpl) WriteVertexData(buf *wgpu.Buffer, vertices []Vertex) {
	if len(vertices) == 0 {
		return
	}
	// VertexStride is a multiple of the copy alignment, so no padding needed.
	b.ctx.queue.WriteBuffer(buf, 0, common.SliceToBytes(vertices))
}

func (b *wgpuBackendImpl) WriteIndexData(buf *wgpu.Buffer, indices []uint16) {
	if len(indices) == 0 {
		return
	}
	data := indices
	if len(indices)%(copyBufferAlignment/2) != 0 {
		b.indexScratch = append(b.indexScratch[:0], indices...)
		b.indexScratch = append(b.indexScratch, 0)
		data = b.indexScratch
	}
	b.ctx.queue.WriteBuffer(buf, 0, common.SliceToBytes(data))
}

func (b *wgpuBackendImpl) BindScene(pass *wgpu.RenderPassEncoder) {
	pass.SetBindGroup(0, b.ctx.sceneBindGroup, nil)
}

func (b *wgpuBackendImpl) DrawCall(pass *wgpu.RenderPassEncoder, resources *texture_cache.DrawResources, indexCount int) {
	pass.SetPipeline(resources.Pipeline)
	pass.SetBindGroup(1, resources.BindGroup, nil)
	pass.SetVertexBuffer(0, resources.VertexBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(resources.IndexBuffer, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)
	pass.DrawIndexed(uint32(indexCount), 1, 0, 0, 0)
}

func isSRGBFormat(format wgpu.TextureFormat) bool {
	switch format {
	case wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb:
		return true
	default:
		return false
	}
}
