package renderer

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Carmen-Shannon/spine-go/common"
	"github.com/Carmen-Shannon/spine-go/renderer/texture_cache"
	"github.com/Carmen-Shannon/spine-go/spine"
	"github.com/cogentcore/webgpu/wgpu"
)

// fakeBackend counts GPU calls without touching a device. The wgpu pointers
// it hands out are zero-value placeholders that nothing dereferences.
type fakeBackend struct {
	pipelinesCreated  int
	lastBlend         wgpu.BlendState
	vertexBuffers     int
	indexBuffers      int
	texturesCreated   int
	sceneWrites       int
	sceneBinds        int
	vertexWriteCounts []int
	indexWriteCounts  []int
	drawIndexCounts   []int

	failVertexBuffer bool
}

var _ Backend = &fakeBackend{}

func (f *fakeBackend) TextureFormat(bool) wgpu.TextureFormat {
	return wgpu.TextureFormatRGBA8Unorm
}

func (f *fakeBackend) CreateBlendPipeline(blend wgpu.BlendState, _ wgpu.CullMode) (*wgpu.RenderPipeline, error) {
	f.pipelinesCreated++
	f.lastBlend = blend
	return &wgpu.RenderPipeline{}, nil
}

func (f *fakeBackend) CreateVertexBuffer(uint64) (*wgpu.Buffer, error) {
	if f.failVertexBuffer {
		return nil, errors.New("out of device memory")
	}
	f.vertexBuffers++
	return &wgpu.Buffer{}, nil
}

func (f *fakeBackend) CreateIndexBuffer(uint64) (*wgpu.Buffer, error) {
	f.indexBuffers++
	return &wgpu.Buffer{}, nil
}

func (f *fakeBackend) CreateTextureBindGroup(common.TextureStagingData, common.SamplerStagingData, wgpu.TextureFormat) (*wgpu.Texture, *wgpu.BindGroup, error) {
	f.texturesCreated++
	return &wgpu.Texture{}, &wgpu.BindGroup{}, nil
}

func (f *fakeBackend) WriteSceneView([]float32) { f.sceneWrites++ }

func (f *fakeBackend) WriteVertexData(_ *wgpu.Buffer, vertices []Vertex) {
	f.vertexWriteCounts = append(f.vertexWriteCounts, len(vertices))
}

func (f *fakeBackend) WriteIndexData(_ *wgpu.Buffer, indices []uint16) {
	f.indexWriteCounts = append(f.indexWriteCounts, len(indices))
}

func (f *fakeBackend) BindScene(*wgpu.RenderPassEncoder) { f.sceneBinds++ }

func (f *fakeBackend) DrawCall(_ *wgpu.RenderPassEncoder, _ *texture_cache.DrawResources, indexCount int) {
	f.drawIndexCounts = append(f.drawIndexCounts, indexCount)
}

func newTestRenderer(backend *fakeBackend, opts ...texture_cache.CacheOption) *frameRenderer {
	return &frameRenderer{
		backend: backend,
		cache:   texture_cache.NewCache(backend, opts...),
	}
}

func stubDecoder(calls *int) func(string) (common.TextureStagingData, error) {
	return func(string) (common.TextureStagingData, error) {
		*calls++
		return common.TextureStagingData{
			Pixels: make([]byte, 2*2*4),
			Width:  2,
			Height: 2,
		}, nil
	}
}

func quadBatch(obj *spine.RendererObject) spine.RenderableBatch {
	return spine.RenderableBatch{
		Vertices:   [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		UVs:        [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Colors:     [][4]float32{{1, 1, 1, 1}, {1, 1, 1, 1}, {1, 1, 1, 1}, {1, 1, 1, 1}},
		DarkColors: [][4]float32{{0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}, {0, 0, 0, 0}},
		Indices:    []uint16{0, 1, 2, 2, 3, 0},
		BlendMode:  spine.BlendModeNormal,
		Attachment: obj,
	}
}

func loadingAttachment() *spine.RendererObject {
	obj := &spine.RendererObject{}
	obj.Set(texture_cache.NewSlot("quad.png", common.SamplerStagingData{}))
	return obj
}

func identityView() []float32 {
	view := make([]float32, 16)
	common.Identity(view)
	return view
}

func TestRender_QuadEndToEnd(t *testing.T) {
	backend := &fakeBackend{}
	decodes := 0
	r := newTestRenderer(backend, texture_cache.WithDecoder(stubDecoder(&decodes)))

	batch := quadBatch(loadingAttachment())
	if err := r.Render(nil, []spine.RenderableBatch{batch}, identityView()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if decodes != 1 || backend.texturesCreated != 1 {
		t.Errorf("decodes = %d, textures = %d, want 1 and 1", decodes, backend.texturesCreated)
	}
	if len(backend.drawIndexCounts) != 1 || backend.drawIndexCounts[0] != 6 {
		t.Fatalf("draw calls = %v, want one draw of 6 indices", backend.drawIndexCounts)
	}
	if want := ResolveBlendState(spine.BlendModeNormal, false); backend.lastBlend != want {
		t.Errorf("pipeline blend = %+v, want %+v", backend.lastBlend, want)
	}
	if backend.sceneWrites != 1 || backend.sceneBinds != 1 {
		t.Errorf("scene writes = %d, binds = %d, want 1 and 1", backend.sceneWrites, backend.sceneBinds)
	}
	if len(backend.vertexWriteCounts) != 1 || backend.vertexWriteCounts[0] != 4 {
		t.Errorf("vertex writes = %v, want one write of 4 vertices", backend.vertexWriteCounts)
	}
}

func TestRender_EmptyBatchDoesNothing(t *testing.T) {
	backend := &fakeBackend{}
	decodes := 0
	r := newTestRenderer(backend, texture_cache.WithDecoder(stubDecoder(&decodes)))

	batch := spine.RenderableBatch{Attachment: loadingAttachment()}
	if err := r.Render(nil, []spine.RenderableBatch{batch}, identityView()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if decodes != 0 || backend.texturesCreated != 0 || len(backend.drawIndexCounts) != 0 {
		t.Errorf("empty batch touched the GPU: decodes=%d textures=%d draws=%v",
			decodes, backend.texturesCreated, backend.drawIndexCounts)
	}
	if len(backend.vertexWriteCounts) != 0 || len(backend.indexWriteCounts) != 0 {
		t.Errorf("empty batch wrote buffers: %v %v", backend.vertexWriteCounts, backend.indexWriteCounts)
	}
}

func TestRender_NilAttachmentSkipped(t *testing.T) {
	backend := &fakeBackend{}
	r := newTestRenderer(backend)

	batch := quadBatch(nil)
	if err := r.Render(nil, []spine.RenderableBatch{batch}, identityView()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(backend.drawIndexCounts) != 0 {
		t.Errorf("draws = %v, want none", backend.drawIndexCounts)
	}
}

func TestRender_DecodeOnceAcrossFrames(t *testing.T) {
	backend := &fakeBackend{}
	decodes := 0
	r := newTestRenderer(backend, texture_cache.WithDecoder(stubDecoder(&decodes)))

	batch := quadBatch(loadingAttachment())
	for frame := 0; frame < 10; frame++ {
		if err := r.Render(nil, []spine.RenderableBatch{batch}, identityView()); err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
	}

	if decodes != 1 {
		t.Errorf("decodes = %d, want 1", decodes)
	}
	if backend.texturesCreated != 1 {
		t.Errorf("textures = %d, want 1", backend.texturesCreated)
	}
	if backend.pipelinesCreated != 1 {
		t.Errorf("pipelines = %d, want 1", backend.pipelinesCreated)
	}
	if len(backend.drawIndexCounts) != 10 {
		t.Errorf("draws = %d, want 10", len(backend.drawIndexCounts))
	}
}

func TestRender_DecodeFailureSkipsAndRetries(t *testing.T) {
	backend := &fakeBackend{}
	fail := true
	decodes := 0
	decoder := func(string) (common.TextureStagingData, error) {
		decodes++
		if fail {
			return common.TextureStagingData{}, fmt.Errorf("corrupt image")
		}
		return common.TextureStagingData{Pixels: make([]byte, 4), Width: 1, Height: 1}, nil
	}
	r := newTestRenderer(backend, texture_cache.WithDecoder(decoder))

	batch := quadBatch(loadingAttachment())
	if err := r.Render(nil, []spine.RenderableBatch{batch}, identityView()); err != nil {
		t.Fatalf("decode failure should not fail the frame: %v", err)
	}
	if len(backend.drawIndexCounts) != 0 {
		t.Fatalf("failed batch was drawn: %v", backend.drawIndexCounts)
	}

	// Slot stays loading; the next frame retries and succeeds.
	fail = false
	if err := r.Render(nil, []spine.RenderableBatch{batch}, identityView()); err != nil {
		t.Fatalf("retry frame: %v", err)
	}
	if decodes != 2 {
		t.Errorf("decodes = %d, want 2", decodes)
	}
	if len(backend.drawIndexCounts) != 1 {
		t.Errorf("draws = %v, want one draw after retry", backend.drawIndexCounts)
	}
}

func TestRender_AllocationFailureAbortsFrame(t *testing.T) {
	backend := &fakeBackend{failVertexBuffer: true}
	decodes := 0
	r := newTestRenderer(backend, texture_cache.WithDecoder(stubDecoder(&decodes)))

	batch := quadBatch(loadingAttachment())
	if err := r.Render(nil, []spine.RenderableBatch{batch}, identityView()); err == nil {
		t.Fatal("allocation failure should abort the frame")
	}
}

func TestRender_BuffersGrowOnly(t *testing.T) {
	backend := &fakeBackend{}
	decodes := 0
	r := newTestRenderer(backend,
		texture_cache.WithDecoder(stubDecoder(&decodes)),
		texture_cache.WithVertexBufferSize(VertexStride),
		texture_cache.WithIndexBufferSize(2),
	)

	obj := loadingAttachment()
	big := quadBatch(obj)
	if err := r.Render(nil, []spine.RenderableBatch{big}, identityView()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	// Initial allocation plus one growth for each undersized buffer.
	if backend.vertexBuffers != 2 || backend.indexBuffers != 2 {
		t.Fatalf("buffers after growth = %d/%d, want 2/2", backend.vertexBuffers, backend.indexBuffers)
	}

	small := big
	small.Vertices = big.Vertices[:3]
	small.UVs = big.UVs[:3]
	small.Colors = big.Colors[:3]
	small.DarkColors = big.DarkColors[:3]
	small.Indices = big.Indices[:3]
	for frame := 0; frame < 5; frame++ {
		if err := r.Render(nil, []spine.RenderableBatch{small, big}, identityView()); err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
	}
	if backend.vertexBuffers != 2 || backend.indexBuffers != 2 {
		t.Errorf("buffers reallocated for smaller batches: %d/%d, want 2/2",
			backend.vertexBuffers, backend.indexBuffers)
	}
}

func TestRender_DrawOrderFollowsInputOrder(t *testing.T) {
	backend := &fakeBackend{}
	decodes := 0
	r := newTestRenderer(backend, texture_cache.WithDecoder(stubDecoder(&decodes)))

	first := quadBatch(loadingAttachment())
	second := quadBatch(loadingAttachment())
	second.Indices = second.Indices[:3]
	second.BlendMode = spine.BlendModeAdditive

	if err := r.Render(nil, []spine.RenderableBatch{first, second}, identityView()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := []int{6, 3}
	if len(backend.drawIndexCounts) != 2 ||
		backend.drawIndexCounts[0] != want[0] || backend.drawIndexCounts[1] != want[1] {
		t.Errorf("draw order = %v, want %v", backend.drawIndexCounts, want)
	}
	if backend.pipelinesCreated != 2 {
		t.Errorf("pipelines = %d, want 2 (one per blend state)", backend.pipelinesCreated)
	}
}

func TestPaddedIndexBytes(t *testing.T) {
	tests := []struct {
		count int
		want  uint64
	}{
		{0, 0},
		{1, 4},
		{2, 4},
		{3, 8},
		{6, 12},
	}
	for _, tt := range tests {
		if got := paddedIndexBytes(tt.count); got != tt.want {
			t.Errorf("paddedIndexBytes(%d) = %d, want %d", tt.count, got, tt.want)
		}
	}
}
