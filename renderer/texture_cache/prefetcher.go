package texture_cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/spine-go/common"
	"github.com/Carmen-Shannon/spine-go/spine"
)

// Prefetcher decodes atlas page images ahead of the first draw so the render
// thread never blocks on image IO. Decoding fans out across a bounded worker
// pool; the decoded pixels land in each page's slot as staging data, which the
// cache consumes on materialization.
//
// Prefetch must complete before the first frame that draws the pages: the
// slots themselves are only written from the calling goroutine, after the
// workers finish, which preserves the slots' single-writer discipline.
type Prefetcher interface {
	// Prefetch decodes every loading page that has no staging data yet.
	//
	// Parameters:
	//   - pages: the atlas pages to decode
	//
	// Returns:
	//   - error: the joined decode errors, or nil if every page decoded;
	//     pages that failed stay undecoded and fall back to lazy loading
	Prefetch(pages []*spine.AtlasPage) error
}

type prefetcher struct {
	pool   worker.DynamicWorkerPool
	decode func(path string) (common.TextureStagingData, error)
}

var _ Prefetcher = &prefetcher{}

// PrefetcherOption is a functional option used to configure a Prefetcher during construction.
type PrefetcherOption func(*prefetcher)

// WithPrefetchDecoder sets the image decoder used by the workers.
//
// Parameters:
//   - decode: a function decoding an image file into RGBA staging data
//
// Returns:
//   - PrefetcherOption: a function that sets the decoder for this prefetcher
func WithPrefetchDecoder(decode func(path string) (common.TextureStagingData, error)) PrefetcherOption {
	return func(p *prefetcher) {
		p.decode = decode
	}
}

// NewPrefetcher creates a Prefetcher with a worker pool of the given size.
//
// Parameters:
//   - workers: the maximum number of concurrent decode workers
//   - options: optional configuration for the prefetcher
//
// Returns:
//   - Prefetcher: a new instance of Prefetcher configured with the provided options
func NewPrefetcher(workers int, options ...PrefetcherOption) Prefetcher {
	if workers < 1 {
		workers = 1
	}
	p := &prefetcher{
		pool:   worker.NewDynamicWorkerPool(workers, workers*4, 1*time.Second),
		decode: common.DecodeTextureFile,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *prefetcher) Prefetch(pages []*spine.AtlasPage) error {
	type result struct {
		slot    *Slot
		staging common.TextureStagingData
		err     error
	}

	results := make([]result, 0, len(pages))
	for _, page := range pages {
		slot, ok := page.RendererObject.Get().(*Slot)
		if !ok || slot.Loaded() || slot.Staging != nil {
			continue
		}
		results = append(results, result{slot: slot})
	}

	// Workers only touch their own result entry; slots are written below,
	// after the barrier, from this goroutine.
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		r := &results[i]
		p.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				r.staging, r.err = p.decode(r.slot.Path)
				return nil, nil
			},
		})
	}
	wg.Wait()

	var errs []error
	for i := range results {
		r := &results[i]
		if r.err != nil {
			errs = append(errs, fmt.Errorf("prefetch %s: %w", r.slot.Path, r.err))
			continue
		}
		staging := r.staging
		r.slot.Staging = &staging
	}
	return joinErrors(errs)
}

func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return fmt.Errorf("%d pages failed to prefetch, first: %w", len(errs), errs[0])
	}
}
