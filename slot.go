package gridlist

import "github.com/hajimehoshi/ebiten/v2"

// Item is implemented by application item types. The list calls these
// methods as slots are bound, recycled and selected.
type Item[T comparable] interface {
	// Node returns the item's root node. It must be the same node for the
	// item's whole lifetime.
	Node() *Node
	// UpdateItem binds the item to data at index in the backing list.
	UpdateItem(data T, index int)
	// SetSelected syncs the selection state for the bound data. It is not a
	// notification and fires on every bind.
	SetSelected(selected bool)
	// OnDataChanged asks the item to redraw from its bound data.
	OnDataChanged()
	// OnSelect fires when the bound data becomes the selection.
	OnSelect()
	// OnUnselect fires when another entry takes the selection.
	OnUnselect()
	// OnEnter fires after a recycled slot is rebound and moved into place.
	OnEnter()
	// OnLeave fires before a recycled slot is rebound.
	OnLeave()
}

// imageCacheUser is implemented by items that load images through the
// list's cache. BaseItem implements it.
type imageCacheUser interface {
	SetImageCache(c *ImageCache)
}

// BaseItem provides no-op hooks and bookkeeping for Item implementations.
// Embed it and override the hooks you need; the embedding type supplies Node.
type BaseItem[T comparable] struct {
	data     T
	index    int
	selected bool

	cache    *ImageCache
	imageKey string
}

// UpdateItem records the bound data and index.
func (b *BaseItem[T]) UpdateItem(data T, index int) {
	b.data = data
	b.index = index
}

// SetSelected records the selection state.
func (b *BaseItem[T]) SetSelected(selected bool) { b.selected = selected }

// Data returns the bound data.
func (b *BaseItem[T]) Data() T { return b.data }

// Index returns the bound index.
func (b *BaseItem[T]) Index() int { return b.index }

// Selected reports whether the bound data is the list's selection.
func (b *BaseItem[T]) Selected() bool { return b.selected }

func (b *BaseItem[T]) OnDataChanged() {}
func (b *BaseItem[T]) OnSelect()      {}
func (b *BaseItem[T]) OnUnselect()    {}
func (b *BaseItem[T]) OnEnter()       {}
func (b *BaseItem[T]) OnLeave()       {}

// SetImageCache attaches the list's image cache. Called by the list when the
// item is created.
func (b *BaseItem[T]) SetImageCache(c *ImageCache) { b.cache = c }

// ImageKey returns the key of the most recent LoadImage request.
func (b *BaseItem[T]) ImageKey() string { return b.imageKey }

// LoadImage requests key from the list's image cache and calls apply when it
// arrives, unless the item has requested a different key in the meantime
// (the slot was recycled). Without a cache LoadImage does nothing.
func (b *BaseItem[T]) LoadImage(key string, apply func(img *ebiten.Image)) {
	b.imageKey = key
	if b.cache == nil {
		return
	}
	b.cache.Load(key, func(img *ebiten.Image, loaded string) {
		if b.imageKey != loaded {
			return
		}
		apply(img)
	})
}

// Template describes how the list instantiates items.
type Template[T comparable] struct {
	// Width and Height are the item size. When zero, the size of the first
	// created item's node is used.
	Width, Height float64
	// New creates an item. Required.
	New func() Item[T]
	// Loader, when set, gives the list an ImageCache that items reach
	// through BaseItem.LoadImage.
	Loader Loader
}

// Slot binds one item to one index of the backing list.
type Slot[T comparable] struct {
	item     Item[T]
	index    int
	data     T
	selected bool
	bound    bool
}

// Item returns the slot's item.
func (s *Slot[T]) Item() Item[T] { return s.item }

// Index returns the bound index, or -1 for a slot in the pool's reserve.
func (s *Slot[T]) Index() int { return s.index }

// Data returns the bound entry.
func (s *Slot[T]) Data() T { return s.data }

// Selected reports whether the bound entry is the list's selection.
func (s *Slot[T]) Selected() bool { return s.selected }

// Position returns the slot node's position in list space.
func (s *Slot[T]) Position() Vec2 {
	n := s.item.Node()
	return Vec2{n.X, n.Y}
}

// bind attaches data and forwards it to the item.
func (s *Slot[T]) bind(data T, index int, selected bool) {
	s.data = data
	s.index = index
	s.selected = selected
	s.bound = true
	s.item.UpdateItem(data, index)
	s.item.SetSelected(selected)
}

// slotCreator builds slots from a list's template for its pool.
type slotCreator[T comparable] struct {
	tmpl  Template[T]
	cache *ImageCache
}

func (c slotCreator[T]) Create() *Slot[T] {
	s := &Slot[T]{index: -1}
	if c.tmpl.New == nil {
		return s
	}
	s.item = c.tmpl.New()
	if s.item == nil {
		return s
	}
	if u, ok := s.item.(imageCacheUser); ok && c.cache != nil {
		u.SetImageCache(c.cache)
	}
	return s
}

func (c slotCreator[T]) Reset(s *Slot[T]) {
	var zero T
	s.index = -1
	s.data = zero
	s.selected = false
	s.bound = false
	if n := slotNode(s); n != nil {
		n.RemoveFromParent()
		n.OnClick = nil
	}
}

func (c slotCreator[T]) Destroy(s *Slot[T]) {
	c.Reset(s)
	if n := slotNode(s); n != nil {
		n.Dispose()
	}
}

// slotNode returns the slot's node, or nil when the template produced no
// usable item.
func slotNode[T comparable](s *Slot[T]) *Node {
	if s == nil || s.item == nil {
		return nil
	}
	return s.item.Node()
}
