package texture_cache

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/Carmen-Shannon/spine-go/common"
	"github.com/Carmen-Shannon/spine-go/spine"
)

func pageWithSlot(path string) *spine.AtlasPage {
	page := &spine.AtlasPage{Path: path}
	page.RendererObject.Set(NewSlot(path, common.SamplerStagingData{}))
	return page
}

func TestPrefetch_PopulatesStaging(t *testing.T) {
	var decodes atomic.Int32
	p := NewPrefetcher(2, WithPrefetchDecoder(func(path string) (common.TextureStagingData, error) {
		decodes.Add(1)
		return common.TextureStagingData{Pixels: make([]byte, 4), Width: 1, Height: 1}, nil
	}))

	pages := []*spine.AtlasPage{
		pageWithSlot("a.png"),
		pageWithSlot("b.png"),
		pageWithSlot("c.png"),
	}
	if err := p.Prefetch(pages); err != nil {
		t.Fatalf("Prefetch: %v", err)
	}

	if got := decodes.Load(); got != 3 {
		t.Errorf("decodes = %d, want 3", got)
	}
	for _, page := range pages {
		slot := page.RendererObject.Get().(*Slot)
		if slot.Staging == nil {
			t.Errorf("page %s has no staging data", page.Path)
		}
	}
}

func TestPrefetch_SkipsLoadedAndStagedSlots(t *testing.T) {
	var decodes atomic.Int32
	p := NewPrefetcher(1, WithPrefetchDecoder(func(string) (common.TextureStagingData, error) {
		decodes.Add(1)
		return common.TextureStagingData{Pixels: make([]byte, 4), Width: 1, Height: 1}, nil
	}))

	staged := pageWithSlot("staged.png")
	staged.RendererObject.Get().(*Slot).Staging = &common.TextureStagingData{}

	loaded := pageWithSlot("loaded.png")
	loaded.RendererObject.Get().(*Slot).resources = &DrawResources{}

	if err := p.Prefetch([]*spine.AtlasPage{staged, loaded}); err != nil {
		t.Fatalf("Prefetch: %v", err)
	}
	if got := decodes.Load(); got != 0 {
		t.Errorf("decodes = %d, want 0", got)
	}
}

func TestPrefetch_PartialFailure(t *testing.T) {
	p := NewPrefetcher(2, WithPrefetchDecoder(func(path string) (common.TextureStagingData, error) {
		if path == "bad.png" {
			return common.TextureStagingData{}, errors.New("corrupt image")
		}
		return common.TextureStagingData{Pixels: make([]byte, 4), Width: 1, Height: 1}, nil
	}))

	good := pageWithSlot("good.png")
	bad := pageWithSlot("bad.png")
	err := p.Prefetch([]*spine.AtlasPage{good, bad})
	if err == nil {
		t.Fatal("Prefetch should report the failed page")
	}

	if good.RendererObject.Get().(*Slot).Staging == nil {
		t.Error("good page should still be staged")
	}
	if bad.RendererObject.Get().(*Slot).Staging != nil {
		t.Error("failed page must stay unstaged for lazy fallback")
	}
}
