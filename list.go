package gridlist

import (
	"slices"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const (
	scrollToTopDelay    = 0.2 // seconds after a replace before returning to the top
	scrollToTopDuration = 0.2
	appendNudgeFactor   = 0.2 // fraction of an item height the view moves after an append
	appendNudgeDuration = 0.1
)

// List is a virtualized grid over a backing slice of T. Entries are compared
// with ==, so T is usually a pointer or a key.
//
// List is not safe for concurrent use. Drive it from the game loop: call
// Update from ebiten.Game.Update and Draw from ebiten.Game.Draw.
type List[T comparable] struct {
	view   *ScrollView
	tmpl   Template[T]
	opts   Options
	layout Layout

	sched  Scheduler
	pool   *ObjectPool[*Slot[T]]
	images *ImageCache

	data  []T
	slots []*Slot[T]

	totalCount int
	spawnCount int
	bufferZone float64
	lastOffset float64
	direction  Direction

	// bottomArmed is cleared when the scroll-to-bottom handler fires and set
	// again once the last entry leaves the slot window or the data changes.
	bottomArmed bool

	sel selection[T]

	onBottom func()
	onSelect func(T)

	scrollHandle ListenerHandle
	hasHandle    bool
	initialized  bool
	disposed     bool
	showTip      bool
}

// New creates a list that renders into view using items from tmpl. Layout is
// deferred to the first Update so the view can finish sizing; data passed to
// ReplaceList before then is shown once layout completes.
//
// A nil view or a template without New yields an inert list whose
// operations do nothing.
func New[T comparable](view *ScrollView, tmpl Template[T], opts Options) *List[T] {
	opts.normalize()
	l := &List[T]{
		view:        view,
		tmpl:        tmpl,
		opts:        opts,
		bottomArmed: true,
	}
	if view == nil || tmpl.New == nil {
		Logger().Debug("gridlist: list is inert", "view", view != nil, "template", tmpl.New != nil)
		return l
	}
	if tmpl.Loader != nil {
		cache, err := NewImageCache(tmpl.Loader, ImageCacheOptions{CacheImages: opts.CacheImage})
		if err != nil {
			Logger().Error("gridlist: image cache disabled", "err", err)
		} else {
			l.images = cache
		}
	}
	l.pool = NewObjectPool[*Slot[T]](slotCreator[T]{tmpl: tmpl, cache: l.images}, 0)
	l.sched.Once(l.initialize)
	return l
}

// initialize measures the template, fits the columns and spawns the first
// window of slots.
func (l *List[T]) initialize() {
	if l.disposed {
		return
	}
	w, h := l.tmpl.Width, l.tmpl.Height
	if w <= 0 || h <= 0 {
		sample := l.pool.Get()
		if n := slotNode(sample); n != nil {
			w, h = n.Width, n.Height
		}
		l.pool.Put(sample)
	}
	if w <= 0 || h <= 0 {
		Logger().Debug("gridlist: initialize skipped", "reason", "item has no size")
		return
	}

	cols := l.opts.ColumnNum
	if cols == 0 {
		cols = AutoColumns(l.view.Width(), w, l.opts.SpacingX)
	}
	l.layout = Layout{
		ColumnNum:     cols,
		ItemWidth:     w,
		ItemHeight:    h,
		SpacingX:      l.opts.SpacingX,
		SpacingY:      l.opts.SpacingY,
		PaddingTop:    l.opts.PaddingTop,
		PaddingBottom: l.opts.PaddingBottom,
		ContentWidth:  l.view.Width(),
	}

	if l.opts.UseVirtualLayout {
		l.scrollHandle = l.view.OnScrolling(l.onScrolling)
		l.hasHandle = true
	}
	l.bufferZone = bufferZoneFor(l.view.Height(), h)
	l.spawnCount = spawnCountFor(l.view.Height(), h, cols)
	l.lastOffset = l.view.ScrollOffset()
	l.initialized = true

	l.createDisplayList(l.data)
}

// --- Accessors ---

// View returns the list's scroll view.
func (l *List[T]) View() *ScrollView { return l.view }

// Layout returns the grid metrics. Zero until the list is initialized.
func (l *List[T]) Layout() Layout { return l.layout }

// Initialized reports whether the deferred layout has run.
func (l *List[T]) Initialized() bool { return l.initialized }

// Data returns the backing list. The returned slice MUST NOT be mutated.
func (l *List[T]) Data() []T { return l.data }

// Len returns the number of entries in the backing list.
func (l *List[T]) Len() int { return len(l.data) }

// Slots returns the live slots. The returned slice MUST NOT be mutated.
func (l *List[T]) Slots() []*Slot[T] { return l.slots }

// SpawnCount returns the slot window size used by virtual layout.
func (l *List[T]) SpawnCount() int { return l.spawnCount }

// ColumnNum returns the column count in effect.
func (l *List[T]) ColumnNum() int { return l.layout.ColumnNum }

// Direction returns the direction of the most recent scroll tick.
func (l *List[T]) Direction() Direction { return l.direction }

// ImageCache returns the list's image cache, or nil if the template has no loader.
func (l *List[T]) ImageCache() *ImageCache { return l.images }

// Scheduler returns the list's deferred-callback scheduler.
func (l *List[T]) Scheduler() *Scheduler { return &l.sched }

// EmptyTipVisible reports whether the empty tip is shown.
func (l *List[T]) EmptyTipVisible() bool { return l.showTip }

// --- Data operations ---

// ReplaceList replaces the backing list and respawns slots from the first
// entry. If the view is not at the top it scrolls back shortly afterwards.
// The slice is copied.
func (l *List[T]) ReplaceList(data []T) {
	if l.disposed {
		return
	}
	l.createDisplayList(slices.Clone(data))
}

func (l *List[T]) createDisplayList(data []T) {
	l.data = data
	if !l.initialized {
		return
	}

	l.releaseSlots()
	l.totalCount = len(l.data)
	l.view.SetContentHeight(l.layout.ContentHeight(l.totalCount))
	l.bottomArmed = true
	l.spawn(0)

	if !l.IsAtTop() {
		l.sched.After(scrollToTopDelay, l.ScrollToTop)
	}
	l.showTip = l.totalCount <= 0
}

// AppendList adds entries to the end of the backing list, typically for
// paging. If the grown list still fits in the slot window the whole list is
// respawned; otherwise only missing slots are added and the view is nudged
// to show there is more content.
func (l *List[T]) AppendList(data []T) {
	if l.disposed || len(data) == 0 {
		return
	}
	merged := append(slices.Clip(l.data), data...)
	if !l.initialized {
		l.data = merged
		return
	}
	if l.totalCount <= 0 || len(merged) <= l.spawnCount {
		l.createDisplayList(merged)
		return
	}

	l.data = merged
	l.totalCount = len(merged)
	l.view.SetContentHeight(l.layout.ContentHeight(l.totalCount))
	l.bottomArmed = true
	l.topUp()
	l.showTip = false

	l.sched.Once(func() {
		off := l.view.ScrollOffset() + l.layout.ItemHeight*appendNudgeFactor
		l.view.ScrollToOffset(off, appendNudgeDuration, nil)
	})
}

// Refresh asks live slots to redraw. With no arguments every live slot is
// refreshed; otherwise only slots bound to one of subset. Bindings and
// positions are unchanged.
func (l *List[T]) Refresh(subset ...T) {
	for _, s := range l.slots {
		if len(subset) == 0 || slices.Contains(subset, s.data) {
			s.item.OnDataChanged()
		}
	}
}

// Clear drops the backing list and all slots, leaving an empty list.
func (l *List[T]) Clear() {
	if l.disposed {
		return
	}
	l.data = nil
	l.disposeSlots()
	l.createDisplayList(nil)
}

// --- Scrolling ---

// IsAtTop reports whether the view is scrolled to the top.
func (l *List[T]) IsAtTop() bool {
	if l.view == nil {
		return true
	}
	return int(l.view.ScrollOffset()) <= 0
}

// ScrollToTop animates the view back to the first entry.
func (l *List[T]) ScrollToTop() {
	l.ScrollToIndex(0, scrollToTopDuration)
}

// ScrollToIndex animates the view so the row holding index is at the top,
// over duration seconds. With virtual layout the slot window is respawned
// around the target so it is populated when the animation lands.
func (l *List[T]) ScrollToIndex(index int, duration float32) {
	if !l.initialized || l.disposed {
		return
	}
	l.view.StopAutoScroll()
	index = max(0, min(index, l.totalCount-1))

	if l.opts.UseVirtualLayout && l.totalCount > 0 {
		cols := l.layout.ColumnNum
		rowStart := index - index%cols
		start := max(0, min(rowStart-cols, l.totalCount-l.spawnCount))
		l.releaseSlots()
		l.spawn(start)
		l.bottomArmed = !l.lastBound()
	}
	l.view.ScrollToOffset(l.layout.RowOffset(index), duration, nil)
}

// --- Callbacks ---

// OnScrollToBottom sets the handler fired when recycling binds the last
// entry while scrolling toward the end. It fires once per arrival.
func (l *List[T]) OnScrollToBottom(fn func()) {
	l.onBottom = fn
}

// OnSelectionChanged sets the handler fired when an entry is selected with
// notification (by a click or SetSelection(data, true)).
func (l *List[T]) OnSelectionChanged(fn func(data T)) {
	l.onSelect = fn
}

func (l *List[T]) fireScrollToBottom() {
	if !l.bottomArmed {
		return
	}
	l.bottomArmed = false
	if l.onBottom != nil {
		l.onBottom()
	}
}

// --- Frame hooks ---

// Update runs deferred work, advances the view's scroll animation and input,
// and delivers finished image loads. dt is in seconds.
func (l *List[T]) Update(dt float64) {
	if l.disposed {
		return
	}
	l.sched.Update(dt)
	if l.view != nil {
		l.view.Update(float32(dt))
	}
	if l.images != nil {
		l.images.Update()
	}
}

// Draw renders the view and, for an empty list, the empty tip.
func (l *List[T]) Draw(screen *ebiten.Image) {
	if l.disposed || l.view == nil {
		return
	}
	l.view.Draw(screen)
	if l.showTip && l.opts.EmptyTip != "" {
		x, y := emptyTipPosition(l.view.Bounds, l.opts.EmptyTip)
		ebitenutil.DebugPrintAt(screen, l.opts.EmptyTip, x, y)
	}
}

// emptyTipPosition returns the top-left pixel that centers tip in b.
// DebugPrint draws one 6x16 cell per rune.
func emptyTipPosition(b Rect, tip string) (x, y int) {
	w := float64(utf8.RuneCountInString(tip) * 6)
	return int(b.X + (b.Width-w)*0.5), int(b.Y + b.Height*0.5 - 8)
}

// Dispose detaches the list from its view and destroys all slots and
// cached images. The list is unusable afterwards.
func (l *List[T]) Dispose() {
	if l.disposed {
		return
	}
	if l.hasHandle {
		l.scrollHandle.Remove()
		l.hasHandle = false
	}
	l.sched.Clear()
	l.disposeSlots()
	if l.images != nil {
		l.images.Clear()
	}
	l.data = nil
	l.onBottom = nil
	l.onSelect = nil
	l.sel = selection[T]{}
	l.initialized = false
	l.disposed = true
}
