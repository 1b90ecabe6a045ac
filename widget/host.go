package widget

import "github.com/cogentcore/webgpu/wgpu"

// Rect is a widget rectangle in the host's coordinate space.
type Rect struct {
	// X and Y are the top-left corner.
	X, Y float32
	// Width and Height are the rect's size in pixels.
	Width, Height float32
}

// Host is the surface a Spine widget needs from its embedding UI. The host
// owns the frame loop and the render pass; the widget only contributes a
// paint callback per frame.
type Host interface {
	// DeltaTime returns the seconds elapsed since the previous frame.
	DeltaTime() float32

	// AvailableRect returns the rect the widget may fill this frame.
	AvailableRect() Rect

	// QueuePaint schedules the paint callback to run when the host encodes
	// its render pass for this frame. The callback is invoked exactly once.
	QueuePaint(paint func(pass *wgpu.RenderPassEncoder))

	// RequestRepaint asks the host for a continuous repaint, since an
	// animating skeleton changes every frame.
	RequestRepaint()
}

// Response reports where a widget was drawn.
type Response struct {
	// Rect is the widget's rect for this frame.
	Rect Rect
}
