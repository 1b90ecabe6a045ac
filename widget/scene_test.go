package widget

import (
	"math"
	"testing"
)

func sceneApprox(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestDefaultSceneView(t *testing.T) {
	view := DefaultScene().View(2, 2)

	// Symmetric unit extents leave x and y untouched and remap z to [0, 1].
	if !sceneApprox(view[0], 1) || !sceneApprox(view[5], 1) {
		t.Errorf("expected unit x/y scale, got %v and %v", view[0], view[5])
	}
	if !sceneApprox(view[12], 0) || !sceneApprox(view[13], 0) {
		t.Errorf("expected no translation, got %v and %v", view[12], view[13])
	}
}

func TestViewScalesWithExtents(t *testing.T) {
	view := DefaultScene().View(200, 100)

	if !sceneApprox(view[0], 2.0/200.0) {
		t.Errorf("expected x scale %v, got %v", 2.0/200.0, view[0])
	}
	if !sceneApprox(view[5], 2.0/100.0) {
		t.Errorf("expected y scale %v, got %v", 2.0/100.0, view[5])
	}
}

func TestViewAppliesTranslation(t *testing.T) {
	scene := DefaultScene()
	scene.Position = [2]float32{10, -20}
	view := scene.View(2, 2)

	if !sceneApprox(view[12], 10) {
		t.Errorf("expected x translation 10, got %v", view[12])
	}
	if !sceneApprox(view[13], -20) {
		t.Errorf("expected y translation -20, got %v", view[13])
	}
}

func TestViewAppliesScale(t *testing.T) {
	scene := DefaultScene()
	scene.Scale = 3
	view := scene.View(2, 2)

	if !sceneApprox(view[0], 3) || !sceneApprox(view[5], 3) {
		t.Errorf("expected uniform scale 3, got %v and %v", view[0], view[5])
	}
}

func TestViewReflectXAxisFlipsY(t *testing.T) {
	scene := DefaultScene()
	scene.Reflect = ReflectXAxis
	view := scene.View(2, 2)

	if !sceneApprox(view[5], -1) {
		t.Errorf("expected flipped y scale, got %v", view[5])
	}
	if !sceneApprox(view[0], 1) {
		t.Errorf("expected x scale untouched, got %v", view[0])
	}
}

func TestViewReflectYAxisFlipsX(t *testing.T) {
	scene := DefaultScene()
	scene.Reflect = ReflectYAxis
	view := scene.View(2, 2)

	if !sceneApprox(view[0], -1) {
		t.Errorf("expected flipped x scale, got %v", view[0])
	}
	if !sceneApprox(view[5], 1) {
		t.Errorf("expected y scale untouched, got %v", view[5])
	}
}

func TestReflectHas(t *testing.T) {
	both := ReflectXAxis | ReflectYAxis
	if !both.Has(ReflectXAxis) || !both.Has(ReflectYAxis) {
		t.Error("expected combined reflect to report both axes")
	}
	var none Reflect
	if none.Has(ReflectXAxis) {
		t.Error("expected zero reflect to report no axes")
	}
}

func TestViewAppliesRotation(t *testing.T) {
	scene := DefaultScene()
	scene.Angle = math.Pi / 2
	view := scene.View(2, 2)

	// A quarter turn maps local +x to world +y.
	if !sceneApprox(view[0], 0) || !sceneApprox(view[1], 1) {
		t.Errorf("expected rotated basis, got %v and %v", view[0], view[1])
	}
}
