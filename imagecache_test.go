package gridlist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/atomic"
)

// countingLoader returns img for every key except "bad" and counts calls.
func countingLoader(img *ebiten.Image, calls *atomic.Int32) Loader {
	return LoaderFunc(func(_ context.Context, key string) (*ebiten.Image, error) {
		calls.Inc()
		if key == "bad" {
			return nil, errors.New("not found")
		}
		return img, nil
	})
}

func newTestCache(t *testing.T, loader Loader, cacheImages bool) *ImageCache {
	t.Helper()
	c, err := NewImageCache(loader, ImageCacheOptions{CacheImages: cacheImages})
	if err != nil {
		t.Fatalf("NewImageCache: %v", err)
	}
	return c
}

// settle runs the load cycle: start queued loads, wait for them, deliver.
func settle(c *ImageCache) {
	c.Update()
	c.Wait()
	c.Update()
}

func TestNewImageCacheRequiresLoader(t *testing.T) {
	if _, err := NewImageCache(nil, ImageCacheOptions{}); !errors.Is(err, ErrLoaderMissing) {
		t.Errorf("err = %v, want ErrLoaderMissing", err)
	}
}

func TestImageCacheDeliversOnUpdate(t *testing.T) {
	img := ebiten.NewImage(1, 1)
	calls := atomic.NewInt32(0)
	c := newTestCache(t, countingLoader(img, calls), true)

	var got []string
	c.Load("a", func(i *ebiten.Image, key string) {
		if i != img {
			t.Error("wrong image delivered")
		}
		got = append(got, key)
	})
	if c.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", c.Pending())
	}
	if len(got) != 0 {
		t.Fatal("delivered before Update")
	}
	settle(c)
	if len(got) != 1 || got[0] != "a" {
		t.Fatalf("delivered = %v, want [a]", got)
	}
	if cached, ok := c.Get("a"); !ok || cached != img || c.Len() != 1 {
		t.Error("image not cached")
	}

	// A cached key is delivered immediately without another load.
	c.Load("a", func(_ *ebiten.Image, key string) { got = append(got, key) })
	if len(got) != 2 {
		t.Error("cached image not delivered immediately")
	}
	if calls.Load() != 1 {
		t.Errorf("loader calls = %d, want 1", calls.Load())
	}
}

func TestImageCacheWithoutCaching(t *testing.T) {
	img := ebiten.NewImage(1, 1)
	calls := atomic.NewInt32(0)
	c := newTestCache(t, countingLoader(img, calls), false)
	n := 0
	c.Load("a", func(*ebiten.Image, string) { n++ })
	settle(c)
	c.Load("a", func(*ebiten.Image, string) { n++ })
	settle(c)
	if n != 2 || calls.Load() != 2 {
		t.Errorf("callbacks/calls = %d/%d, want 2/2", n, calls.Load())
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

func TestImageCacheSharesInFlightLoad(t *testing.T) {
	img := ebiten.NewImage(1, 1)
	calls := atomic.NewInt32(0)
	gate := make(chan struct{})
	loader := LoaderFunc(func(context.Context, string) (*ebiten.Image, error) {
		calls.Inc()
		<-gate
		return img, nil
	})
	c, err := NewImageCache(loader, ImageCacheOptions{CacheImages: true, FrameBudget: time.Second})
	if err != nil {
		t.Fatal(err)
	}

	n := 0
	c.Load("a", func(*ebiten.Image, string) { n++ })
	c.Load("a", func(*ebiten.Image, string) { n++ })
	c.Update()
	// Let both requests reach the shared flight before releasing it.
	time.Sleep(20 * time.Millisecond)
	close(gate)
	c.Wait()
	c.Update()

	if n != 2 {
		t.Errorf("callbacks = %d, want 2", n)
	}
	if calls.Load() != 1 {
		t.Errorf("loader calls = %d, want 1", calls.Load())
	}
}

func TestImageCacheLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { SetLogger(nil) })

	calls := atomic.NewInt32(0)
	c := newTestCache(t, countingLoader(ebiten.NewImage(1, 1), calls), true)
	called := false
	c.Load("bad", func(*ebiten.Image, string) { called = true })
	settle(c)

	if called {
		t.Error("callback fired for a failed load")
	}
	if !strings.Contains(buf.String(), "image load failed") || !strings.Contains(buf.String(), "not found") {
		t.Errorf("log = %q, want failure logged", buf.String())
	}
	if c.Len() != 0 {
		t.Error("failed load was cached")
	}
}

func TestImageCacheNilImageIsAnError(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { SetLogger(nil) })

	c := newTestCache(t, LoaderFunc(func(context.Context, string) (*ebiten.Image, error) {
		return nil, nil
	}), true)
	called := false
	c.Load("a", func(*ebiten.Image, string) { called = true })
	settle(c)
	if called {
		t.Error("callback fired for a nil image")
	}
	if !strings.Contains(buf.String(), errNilImage.Error()) {
		t.Errorf("log = %q, want nil image error", buf.String())
	}
}

func TestImageCacheIgnoresEmptyKey(t *testing.T) {
	calls := atomic.NewInt32(0)
	c := newTestCache(t, countingLoader(ebiten.NewImage(1, 1), calls), true)
	c.Load("", func(*ebiten.Image, string) { t.Error("callback for empty key") })
	settle(c)
	if calls.Load() != 0 || c.Pending() != 0 {
		t.Error("empty key was loaded")
	}
}

func TestImageCacheFrameBudget(t *testing.T) {
	calls := atomic.NewInt32(0)
	c := newTestCache(t, countingLoader(ebiten.NewImage(1, 1), calls), true)
	clock := time.Unix(0, 0)
	c.now = func() time.Time {
		clock = clock.Add(2 * time.Millisecond)
		return clock
	}

	var got []string
	for _, k := range []string{"a", "b", "c"} {
		c.Load(k, func(_ *ebiten.Image, key string) { got = append(got, key) })
	}
	c.Update()
	if len(c.queue) != 2 {
		t.Fatalf("queued = %d after one budgeted Update, want 2", len(c.queue))
	}
	c.Wait()
	c.Update()
	if len(got) != 1 || got[0] != "c" {
		t.Errorf("delivered = %v, want newest request [c] first", got)
	}
}

func TestImageCacheClearDiscardsResults(t *testing.T) {
	calls := atomic.NewInt32(0)
	c := newTestCache(t, countingLoader(ebiten.NewImage(1, 1), calls), true)

	called := false
	c.Load("a", func(*ebiten.Image, string) { called = true })
	c.Update()
	c.Clear()
	c.Wait()
	c.Update()
	if called {
		t.Error("result delivered after Clear")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", c.Len())
	}

	before := calls.Load()
	c.Load("b", func(*ebiten.Image, string) { called = true })
	c.Clear()
	settle(c)
	if called || calls.Load() != before {
		t.Errorf("queued request survived Clear: called=%v calls=%d", called, calls.Load())
	}
}

func TestBaseItemLoadImageStaleGuard(t *testing.T) {
	imgA := ebiten.NewImage(1, 1)
	imgB := ebiten.NewImage(2, 2)
	c := newTestCache(t, LoaderFunc(func(_ context.Context, key string) (*ebiten.Image, error) {
		if key == "a" {
			return imgA, nil
		}
		return imgB, nil
	}), true)

	var b BaseItem[int]
	b.SetImageCache(c)
	var applied []*ebiten.Image
	b.LoadImage("a", func(img *ebiten.Image) { applied = append(applied, img) })
	// Recycled before "a" arrives.
	b.LoadImage("b", func(img *ebiten.Image) { applied = append(applied, img) })
	settle(c)

	if len(applied) != 1 || applied[0] != imgB {
		t.Errorf("applied %d images, want only the current key's", len(applied))
	}
	if b.ImageKey() != "b" {
		t.Errorf("ImageKey = %q, want b", b.ImageKey())
	}

	var noCache BaseItem[int]
	noCache.LoadImage("a", func(*ebiten.Image) { t.Error("applied without a cache") })
}

// imgItem loads an image for its entry whenever it is redrawn.
type imgItem struct {
	BaseItem[*testEntry]
	node *Node
}

func (i *imgItem) Node() *Node { return i.node }

func (i *imgItem) OnDataChanged() {
	i.LoadImage(fmt.Sprintf("thumb/%d", i.Data().id), func(img *ebiten.Image) { i.node.Image = img })
}

func TestListItemsLoadImagesThroughCache(t *testing.T) {
	img := ebiten.NewImage(4, 4)
	calls := atomic.NewInt32(0)
	view := NewScrollView(Rect{Width: 200, Height: 200})
	view.InputEnabled = false
	l := New(view, Template[*testEntry]{
		Width: 100, Height: 50,
		New:    func() Item[*testEntry] { return &imgItem{node: NewRect("img", 100, 50, ColorWhite)} },
		Loader: countingLoader(img, calls),
	}, DefaultOptions())
	if l.ImageCache() == nil {
		t.Fatal("list with a loader has no image cache")
	}
	l.ReplaceList(makeEntries(3))
	l.Update(0) // layout; items request their images
	for range 5 {
		l.ImageCache().Wait()
		l.Update(0)
	}

	for _, s := range l.Slots() {
		if s.Item().Node().Image != img {
			t.Errorf("slot %d image not applied", s.Index())
		}
	}
	if calls.Load() != 3 {
		t.Errorf("loader calls = %d, want 3", calls.Load())
	}
	l.Dispose()
	if l.ImageCache().Len() != 0 {
		t.Error("Dispose kept cached images")
	}
}
