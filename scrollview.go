package gridlist

import (
	"math"
	"slices"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	defaultWheelSpeed   = 40.0
	defaultDragDeadZone = 4.0 // pixels
	maxNotifyPasses     = 4
)

// scrollAnim holds an active scroll-to tween for the vertical offset.
type scrollAnim struct {
	tween *gween.Tween
}

type scrollListener struct {
	id      uint32
	fn      func(offset float64)
	removed bool
}

// ListenerHandle allows removing a registered scrolling listener.
type ListenerHandle struct {
	id   uint32
	view *ScrollView
}

// Remove unregisters the listener so it no longer fires, including later in
// a notification pass that is already running.
func (h ListenerHandle) Remove() {
	if h.view == nil {
		return
	}
	ls := h.view.listeners
	i := slices.IndexFunc(ls, func(l *scrollListener) bool { return l.id == h.id })
	if i < 0 {
		return
	}
	ls[i].removed = true
	// A running notify may be ranging over ls; leave its backing array alone.
	h.view.listeners = slices.Delete(slices.Clone(ls), i, i+1)
}

// ScrollView is a vertically scrolling viewport over a content node.
//
// The viewport node sits at the world origin and represents the center of
// Bounds. The content node's top edge is pinned to the viewport's top edge
// plus the scroll offset, so the offset is zero at the top and grows as
// later content is revealed.
type ScrollView struct {
	// Bounds is the screen-space rectangle the view renders into and takes
	// input from.
	Bounds Rect

	// InputEnabled makes Update read wheel and pointer input from ebiten.
	InputEnabled bool
	// WheelSpeed is the offset change in pixels per wheel notch.
	WheelSpeed float64
	// DragDeadZone is the pointer travel after which a press becomes a drag
	// instead of a click.
	DragDeadZone float64

	viewport *Node
	content  *Node

	contentHeight float64
	offset        float64

	listeners []*scrollListener
	nextID    uint32
	notifying bool

	anim *scrollAnim

	ptr pointerState
}

// NewScrollView creates a scroll view covering bounds with an empty content node.
func NewScrollView(bounds Rect) *ScrollView {
	v := &ScrollView{
		Bounds:       bounds,
		InputEnabled: true,
		WheelSpeed:   defaultWheelSpeed,
		DragDeadZone: defaultDragDeadZone,
		viewport:     NewContainer("viewport"),
		content:      NewContainer("content"),
	}
	v.content.Width = bounds.Width
	v.viewport.AddChild(v.content)
	v.syncContent()
	return v
}

// Viewport returns the node representing the visible window.
func (v *ScrollView) Viewport() *Node { return v.viewport }

// Content returns the node that scrolls. Items are added to it.
func (v *ScrollView) Content() *Node { return v.content }

// Width returns the viewport width.
func (v *ScrollView) Width() float64 { return v.Bounds.Width }

// Height returns the viewport height.
func (v *ScrollView) Height() float64 { return v.Bounds.Height }

// ContentHeight returns the scrollable content height.
func (v *ScrollView) ContentHeight() float64 { return v.contentHeight }

// SetContentHeight resizes the content. The current offset is clamped to
// the new range, which may fire scrolling listeners.
func (v *ScrollView) SetContentHeight(h float64) {
	v.contentHeight = math.Max(0, h)
	v.content.Height = v.contentHeight
	v.SetScrollOffset(v.offset)
}

// MaxScrollOffset returns the largest valid offset.
func (v *ScrollView) MaxScrollOffset() float64 {
	return math.Max(0, v.contentHeight-v.Bounds.Height)
}

// ScrollOffset returns the current vertical offset.
func (v *ScrollView) ScrollOffset() float64 { return v.offset }

// SetScrollOffset moves the content to offset y, clamped to
// [0, MaxScrollOffset]. Listeners fire only when the offset changes.
func (v *ScrollView) SetScrollOffset(y float64) {
	y = math.Max(0, math.Min(y, v.MaxScrollOffset()))
	if y == v.offset {
		return
	}
	v.offset = y
	v.syncContent()
	v.notify()
}

// ScrollBy moves the offset by dy.
func (v *ScrollView) ScrollBy(dy float64) {
	v.SetScrollOffset(v.offset + dy)
}

// ScrollToOffset animates the offset to y over duration seconds using the
// easing function (ease.OutQuad when nil). A non-positive duration jumps
// immediately.
func (v *ScrollView) ScrollToOffset(y float64, duration float32, easeFn ease.TweenFunc) {
	y = math.Max(0, math.Min(y, v.MaxScrollOffset()))
	if duration <= 0 {
		v.anim = nil
		v.SetScrollOffset(y)
		return
	}
	if easeFn == nil {
		easeFn = ease.OutQuad
	}
	v.anim = &scrollAnim{
		tween: gween.New(float32(v.offset), float32(y), duration, easeFn),
	}
}

// IsAutoScrolling reports whether a ScrollToOffset animation is running.
func (v *ScrollView) IsAutoScrolling() bool {
	return v.anim != nil
}

// StopAutoScroll cancels any running ScrollToOffset animation, leaving the
// offset where it is.
func (v *ScrollView) StopAutoScroll() {
	v.anim = nil
}

// OnScrolling registers fn to be called with the new offset whenever it changes.
func (v *ScrollView) OnScrolling(fn func(offset float64)) ListenerHandle {
	v.nextID++
	v.listeners = append(v.listeners, &scrollListener{id: v.nextID, fn: fn})
	return ListenerHandle{id: v.nextID, view: v}
}

// Update advances the scroll animation by dt seconds and, when
// InputEnabled is set, applies wheel and pointer input.
func (v *ScrollView) Update(dt float32) {
	if v.anim != nil {
		val, done := v.anim.tween.Update(dt)
		if done {
			v.anim = nil
		}
		v.SetScrollOffset(float64(val))
	}
	if v.InputEnabled {
		v.processInput()
	}
}

// syncContent positions the content node for the current offset.
func (v *ScrollView) syncContent() {
	v.content.X = 0
	v.content.Y = v.Bounds.Height*0.5 + v.offset
}

// notify fires scrolling listeners. A listener that moves the offset again
// does not re-enter the listener loop; the final offset is delivered once
// the current pass completes.
func (v *ScrollView) notify() {
	if v.notifying {
		return
	}
	v.notifying = true
	defer func() { v.notifying = false }()
	for pass := 0; pass < maxNotifyPasses; pass++ {
		at := v.offset
		for _, l := range v.listeners {
			if !l.removed {
				l.fn(at)
			}
		}
		if v.offset == at {
			return
		}
	}
}

// ViewY returns a content-space y coordinate mapped into viewport space,
// where the viewport center is zero and up is positive.
func (v *ScrollView) ViewY(contentY float64) float64 {
	return v.content.Y + contentY
}
