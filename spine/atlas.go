package spine

// AtlasWrap is a texture addressing mode as authored in the atlas file.
type AtlasWrap int

const (
	AtlasWrapClampToEdge AtlasWrap = iota
	AtlasWrapMirroredRepeat
	AtlasWrapRepeat
)

// AtlasFilter is a texture sampling filter as authored in the atlas file.
type AtlasFilter int

const (
	AtlasFilterNearest AtlasFilter = iota
	AtlasFilterLinear
	AtlasFilterMipMap
	AtlasFilterMipMapNearestNearest
	AtlasFilterMipMapLinearNearest
	AtlasFilterMipMapNearestLinear
	AtlasFilterMipMapLinearLinear
)

// AtlasPage describes one page of a texture atlas. The engine parses these
// from the atlas file and hands them to the create-texture callback; the
// renderer stores its GPU-side state in the page's RendererObject slot.
type AtlasPage struct {
	// Name is the page name from the atlas file, typically the image filename.
	Name string
	// Path is the resolved filesystem path of the page image.
	Path string
	// UWrap and VWrap are the addressing modes for texture coordinates.
	UWrap, VWrap AtlasWrap
	// MinFilter and MagFilter are the sampling filters.
	MinFilter, MagFilter AtlasFilter
	// RendererObject is the slot the renderer materializes GPU resources into.
	RendererObject RendererObject
}
