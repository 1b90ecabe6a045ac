package widget

import (
	"log"
	"strconv"
	"sync/atomic"

	"github.com/Carmen-Shannon/spine-go/renderer"
	"github.com/Carmen-Shannon/spine-go/spine"
	"github.com/cogentcore/webgpu/wgpu"
)

// MinDeltaTime is the floor applied to host delta times before the engine
// update. Zero or negative deltas (first frame, window unpause, clock jitter)
// would stall or rewind the animation.
const MinDeltaTime = 0.001

// Spine is a retained widget rendering one animated skeleton.
type Spine interface {
	// Draw advances the animation by the host's delta time and queues the
	// frame's paint on the host. It must be called at most once per render
	// pass; a second call before the queued paint has run panics.
	//
	// Parameters:
	//   - host: the embedding UI surface for this frame
	//
	// Returns:
	//   - Response: the rect the widget occupied
	//   - error: reserved for future per-frame failures; currently always nil
	Draw(host Host) (Response, error)

	// Scene returns the widget's scene for mutation between frames.
	Scene() *Scene

	// SetScene replaces the widget's scene.
	SetScene(scene Scene)

	// Release frees the widget's cache-owned GPU objects.
	Release()
}

// frameRenderer is the slice of renderer.FrameRenderer the widget drives.
type frameRenderer interface {
	Render(pass *wgpu.RenderPassEncoder, batches []spine.RenderableBatch, view []float32) error
	Release()
}

type spineWidget struct {
	controller spine.Controller
	frame      frameRenderer
	scene      Scene

	// drawing flags an in-flight frame between Draw and the queued paint.
	drawing atomic.Bool

	// construction-only settings, applied by NewSpine.
	animationName  string
	animationIndex int
	loop           bool
	cullMode       wgpu.CullMode
	srgbCorrection bool
}

var _ Spine = &spineWidget{}

func (w *spineWidget) Draw(host Host) (Response, error) {
	if !w.drawing.CompareAndSwap(false, true) {
		panic("widget: Spine drawn again before its previous paint ran")
	}
	host.RequestRepaint()

	dt := host.DeltaTime()
	if dt < MinDeltaTime {
		dt = MinDeltaTime
	}
	w.controller.Update(dt)

	batches := w.controller.Renderables()
	rect := host.AvailableRect()
	view := w.scene.View(rect.Width, rect.Height)

	host.QueuePaint(func(pass *wgpu.RenderPassEncoder) {
		defer w.drawing.Store(false)
		if err := w.frame.Render(pass, batches, view[:]); err != nil {
			log.Printf("warning: frame aborted: %v", err)
		}
	})

	return Response{Rect: rect}, nil
}

func (w *spineWidget) Scene() *Scene {
	return &w.scene
}

func (w *spineWidget) SetScene(scene Scene) {
	w.scene = scene
}

func (w *spineWidget) Release() {
	w.frame.Release()
}

// selectAnimation resolves the configured animation against the controller
// and starts it on track 0.
func (w *spineWidget) selectAnimation() error {
	names := w.controller.AnimationNames()

	name := w.animationName
	if name == "" {
		if w.animationIndex < 0 || w.animationIndex >= len(names) {
			return &spine.NotFoundError{What: "animation", Name: strconv.Itoa(w.animationIndex)}
		}
		name = names[w.animationIndex]
	} else if !contains(names, name) {
		return &spine.NotFoundError{What: "animation", Name: name}
	}

	return w.controller.SetAnimation(0, name, w.loop)
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

var _ frameRenderer = renderer.FrameRenderer(nil)
