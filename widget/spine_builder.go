package widget

import (
	"github.com/Carmen-Shannon/spine-go/renderer"
	"github.com/Carmen-Shannon/spine-go/renderer/texture_cache"
	"github.com/Carmen-Shannon/spine-go/spine"
	"github.com/cogentcore/webgpu/wgpu"
)

// SpineOption configures a Spine widget during construction.
type SpineOption func(*spineWidget)

// WithAnimationIndex selects the starting animation by its position in the
// controller's animation list. Ignored when WithAnimationName is also set.
//
// Parameters:
//   - index: zero-based animation index
//
// Returns:
//   - SpineOption: the option to apply
func WithAnimationIndex(index int) SpineOption {
	return func(w *spineWidget) {
		w.animationIndex = index
	}
}

// WithAnimationName selects the starting animation by name.
//
// Parameters:
//   - name: the animation name as reported by the controller
//
// Returns:
//   - SpineOption: the option to apply
func WithAnimationName(name string) SpineOption {
	return func(w *spineWidget) {
		w.animationName = name
	}
}

// WithLoop sets whether the starting animation loops.
//
// Parameters:
//   - loop: true to loop the animation
//
// Returns:
//   - SpineOption: the option to apply
func WithLoop(loop bool) SpineOption {
	return func(w *spineWidget) {
		w.loop = loop
	}
}

// WithScene sets the widget's initial scene transform.
//
// Parameters:
//   - scene: the scene to start with
//
// Returns:
//   - SpineOption: the option to apply
func WithScene(scene Scene) SpineOption {
	return func(w *spineWidget) {
		w.scene = scene
	}
}

// WithCullMode sets the cull mode used by the widget's render pipelines.
//
// Parameters:
//   - mode: the wgpu cull mode, wgpu.CullModeNone by default
//
// Returns:
//   - SpineOption: the option to apply
func WithCullMode(mode wgpu.CullMode) SpineOption {
	return func(w *spineWidget) {
		w.cullMode = mode
	}
}

// WithSRGBCorrection enables re-premultiplying texture alpha in linear space
// when uploading to an sRGB texture format.
//
// Parameters:
//   - enabled: true to apply the correction
//
// Returns:
//   - SpineOption: the option to apply
func WithSRGBCorrection(enabled bool) SpineOption {
	return func(w *spineWidget) {
		w.srgbCorrection = enabled
	}
}

// NewSpine builds a Spine widget around an animation controller, starts its
// configured animation, and allocates the widget's frame renderer on the
// given context.
//
// Parameters:
//   - controller: the skeleton's animation controller
//   - ctx: the active renderer context
//   - options: optional settings applied during construction
//
// Returns:
//   - Spine: the constructed widget
//   - error: a *spine.NotFoundError if the configured animation does not
//     exist, or the controller's error from starting it
func NewSpine(controller spine.Controller, ctx *renderer.Context, options ...SpineOption) (Spine, error) {
	if controller == nil {
		panic("widget: NewSpine requires a controller")
	}

	w := &spineWidget{
		controller: controller,
		scene:      DefaultScene(),
		loop:       true,
		cullMode:   wgpu.CullModeNone,
	}
	for _, opt := range options {
		opt(w)
	}

	if err := w.selectAnimation(); err != nil {
		return nil, err
	}

	w.frame = renderer.NewFrameRenderer(ctx,
		texture_cache.WithCullMode(w.cullMode),
		texture_cache.WithSRGBCorrection(w.srgbCorrection),
	)
	return w, nil
}
