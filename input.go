package gridlist

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	startY   float64
	lastY    float64
	dragging bool
}

// --- Input processing ---

// processInput is called from ScrollView.Update to handle mouse input.
func (v *ScrollView) processInput() {
	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)

	if _, wy := ebiten.Wheel(); wy != 0 && v.Bounds.Contains(sx, sy) {
		v.ApplyWheel(wy)
	}

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		if v.Bounds.Contains(sx, sy) {
			v.PointerDown(sx, sy)
		}
	case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		v.PointerMove(sx, sy)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		v.PointerUp(sx, sy)
	}
}

// ApplyWheel scrolls by a wheel delta in notches. Positive wy (wheel away
// from the user) reveals earlier content. Any auto-scroll is cancelled.
func (v *ScrollView) ApplyWheel(wy float64) {
	v.StopAutoScroll()
	v.ScrollBy(-wy * v.WheelSpeed)
}

// PointerDown starts a press at screen position (sx, sy).
func (v *ScrollView) PointerDown(sx, sy float64) {
	v.StopAutoScroll()
	v.ptr = pointerState{down: true, startY: sy, lastY: sy}
}

// PointerMove drags the content with a held pointer. Screen Y grows
// downward, so dragging up reveals later content.
func (v *ScrollView) PointerMove(sx, sy float64) {
	if !v.ptr.down {
		return
	}
	if !v.ptr.dragging && math.Abs(sy-v.ptr.startY) > v.DragDeadZone {
		v.ptr.dragging = true
	}
	if v.ptr.dragging {
		v.ScrollBy(v.ptr.lastY - sy)
	}
	v.ptr.lastY = sy
}

// PointerUp ends a press. A press that never became a drag is a click.
func (v *ScrollView) PointerUp(sx, sy float64) {
	if !v.ptr.down {
		return
	}
	wasDrag := v.ptr.dragging
	v.ptr = pointerState{}
	if !wasDrag {
		v.Click(sx, sy)
	}
}

// screenToWorld converts screen coordinates (y-down) to the view's world
// space (viewport center origin, y-up).
func (v *ScrollView) screenToWorld(sx, sy float64) (float64, float64) {
	cx := v.Bounds.X + v.Bounds.Width*0.5
	cy := v.Bounds.Y + v.Bounds.Height*0.5
	return sx - cx, cy - sy
}

// worldToScreen is the inverse of screenToWorld.
func (v *ScrollView) worldToScreen(wx, wy float64) (float64, float64) {
	cx := v.Bounds.X + v.Bounds.Width*0.5
	cy := v.Bounds.Y + v.Bounds.Height*0.5
	return cx + wx, cy - wy
}

// Click hit-tests the content's interactable children at screen position
// (sx, sy) and fires OnClick on the topmost hit. Reports whether a node was hit.
func (v *ScrollView) Click(sx, sy float64) bool {
	if !v.Bounds.Contains(sx, sy) {
		return false
	}
	wx, wy := v.screenToWorld(sx, sy)
	n := v.hitTest(wx, wy)
	if n == nil || n.OnClick == nil {
		return n != nil
	}
	lx, ly := n.WorldToLocal(wx, wy)
	n.OnClick(ClickContext{Node: n, GlobalX: wx, GlobalY: wy, LocalX: lx, LocalY: ly})
	return true
}

// hitTest finds the topmost interactable content child at (wx, wy).
// Iterates backward (reverse painter order).
func (v *ScrollView) hitTest(wx, wy float64) *Node {
	children := v.content.Children()
	for i := len(children) - 1; i >= 0; i-- {
		n := children[i]
		if !n.Visible || !n.Interactable {
			continue
		}
		lx, ly := n.WorldToLocal(wx, wy)
		if n.containsLocal(lx, ly) {
			return n
		}
	}
	return nil
}
