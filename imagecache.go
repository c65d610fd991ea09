package gridlist

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/atomic"
	"golang.org/x/sync/singleflight"
)

const defaultFrameBudget = time.Millisecond

var errNilImage = errors.New("loader returned nil image")

// Loader fetches an image by key. Load is called on a worker goroutine and
// must not touch game state.
type Loader interface {
	Load(ctx context.Context, key string) (*ebiten.Image, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, key string) (*ebiten.Image, error)

// Load calls f(ctx, key).
func (f LoaderFunc) Load(ctx context.Context, key string) (*ebiten.Image, error) {
	return f(ctx, key)
}

// ImageCallback receives a loaded image together with the key it was
// requested under.
type ImageCallback func(img *ebiten.Image, key string)

// ImageCacheOptions configures an ImageCache. Zero values select defaults.
type ImageCacheOptions struct {
	// CacheImages keeps loaded images so later requests for the same key
	// complete immediately.
	CacheImages bool
	// FrameBudget caps the time Update spends starting queued loads.
	// Defaults to 1ms.
	FrameBudget time.Duration
	// MaxConcurrent caps the number of loader calls in flight. Defaults to 5.
	MaxConcurrent int
}

type loadRequest struct {
	key string
	fn  ImageCallback
}

type loadResult struct {
	gen uint64
	key string
	img *ebiten.Image
	err error
	fn  ImageCallback
}

// ImageCache loads item images in the background and hands them back on the
// game thread. Requests for a key already being fetched share that fetch.
//
// Load, Update, Get and Clear must be called from the game thread.
type ImageCache struct {
	loader Loader
	opts   ImageCacheOptions
	runner *TaskRunner
	group  singleflight.Group

	images map[string]*ebiten.Image
	queue  []loadRequest

	mu   sync.Mutex
	done []loadResult
	wg   sync.WaitGroup

	inFlight *atomic.Int32
	gen      uint64
	ctx      context.Context
	cancel   context.CancelFunc

	now func() time.Time
}

// NewImageCache creates a cache backed by loader.
func NewImageCache(loader Loader, opts ImageCacheOptions) (*ImageCache, error) {
	if loader == nil {
		return nil, ErrLoaderMissing
	}
	if opts.FrameBudget <= 0 {
		opts.FrameBudget = defaultFrameBudget
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = defaultTaskLimit
	}
	runner, err := NewTaskRunner(opts.MaxConcurrent)
	if err != nil {
		return nil, fmt.Errorf("new image cache: %w", err)
	}
	c := &ImageCache{
		loader:   loader,
		opts:     opts,
		runner:   runner,
		images:   make(map[string]*ebiten.Image),
		inFlight: atomic.NewInt32(0),
		now:      time.Now,
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	return c, nil
}

// Load requests the image for key. A cached image is handed to fn
// immediately; otherwise the request is queued and fn runs during a later
// Update once the image arrives. Failed loads are logged and fn is not called.
func (c *ImageCache) Load(key string, fn ImageCallback) {
	if key == "" {
		Logger().Debug("gridlist: image load ignored", "reason", "empty key")
		return
	}
	if img, ok := c.cached(key); ok {
		if fn != nil {
			fn(img, key)
		}
		return
	}
	c.queue = append(c.queue, loadRequest{key: key, fn: fn})
}

// Get returns a cached image.
func (c *ImageCache) Get(key string) (*ebiten.Image, bool) {
	img, ok := c.images[key]
	return img, ok
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int { return len(c.images) }

// Pending returns the number of requests queued or in flight.
func (c *ImageCache) Pending() int {
	return len(c.queue) + int(c.inFlight.Load())
}

// Update delivers finished loads, then starts queued requests until the
// frame budget is spent. Requests left over wait for the next Update.
func (c *ImageCache) Update() {
	c.deliver()

	if len(c.queue) == 0 {
		return
	}
	start := c.now()
	for len(c.queue) > 0 {
		// Newest first: the most recently bound items are the ones on screen.
		n := len(c.queue) - 1
		req := c.queue[n]
		c.queue[n] = loadRequest{}
		c.queue = c.queue[:n]
		c.start(req)
		if c.now().Sub(start) > c.opts.FrameBudget {
			return
		}
	}
}

// Wait blocks until every started load has finished. Results are still
// delivered by the next Update.
func (c *ImageCache) Wait() {
	c.wg.Wait()
}

// Clear drops cached images and queued requests. Loads already in flight
// are cancelled and their results discarded.
func (c *ImageCache) Clear() {
	c.cancel()
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.gen++
	c.images = make(map[string]*ebiten.Image)
	c.queue = nil
	c.mu.Lock()
	c.done = nil
	c.mu.Unlock()
}

func (c *ImageCache) cached(key string) (*ebiten.Image, bool) {
	if !c.opts.CacheImages {
		return nil, false
	}
	img, ok := c.images[key]
	return img, ok
}

func (c *ImageCache) start(req loadRequest) {
	if img, ok := c.cached(req.key); ok {
		if req.fn != nil {
			req.fn(img, req.key)
		}
		return
	}

	gen, ctx, key := c.gen, c.ctx, req.key
	flight := fmt.Sprintf("%d/%s", gen, key)
	c.inFlight.Inc()
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		v, err, _ := c.group.Do(flight, func() (any, error) {
			var img *ebiten.Image
			err := c.runner.Do(ctx, key, func(ctx context.Context) error {
				var lerr error
				img, lerr = c.loader.Load(ctx, key)
				if lerr == nil && img == nil {
					lerr = errNilImage
				}
				return lerr
			})
			return img, err
		})
		img, _ := v.(*ebiten.Image)

		c.mu.Lock()
		c.done = append(c.done, loadResult{gen: gen, key: key, img: img, err: err, fn: req.fn})
		c.mu.Unlock()
		c.inFlight.Dec()
	}()
}

func (c *ImageCache) deliver() {
	c.mu.Lock()
	results := c.done
	c.done = nil
	c.mu.Unlock()

	for _, r := range results {
		if r.gen != c.gen {
			continue
		}
		if r.err != nil {
			Logger().Error("gridlist: image load failed", "key", r.key, "err", r.err)
			continue
		}
		if c.opts.CacheImages {
			c.images[r.key] = r.img
		}
		if r.fn != nil {
			r.fn(r.img, r.key)
		}
	}
}
