package spine

// Texture lifecycle callbacks. A renderer registers these once per process;
// engines invoke the Notify functions when an atlas page's texture should be
// created or released. Registration and notification both happen on the
// render thread, so no locking is done here.

var (
	createTextureCallback  func(page *AtlasPage)
	disposeTextureCallback func(page *AtlasPage)
)

// SetCreateTextureCallback installs the hook invoked when an engine loads an
// atlas page. Passing nil clears the hook.
func SetCreateTextureCallback(cb func(page *AtlasPage)) {
	createTextureCallback = cb
}

// SetDisposeTextureCallback installs the hook invoked when an engine unloads
// an atlas page. Passing nil clears the hook.
func SetDisposeTextureCallback(cb func(page *AtlasPage)) {
	disposeTextureCallback = cb
}

// NotifyCreateTexture is called by engines after parsing an atlas page.
func NotifyCreateTexture(page *AtlasPage) {
	if createTextureCallback != nil {
		createTextureCallback(page)
	}
}

// NotifyDisposeTexture is called by engines before an atlas page is freed.
func NotifyDisposeTexture(page *AtlasPage) {
	if disposeTextureCallback != nil {
		disposeTextureCallback(page)
	}
}
