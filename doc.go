// Package gridlist is a virtualized, recycling grid list for [Ebitengine].
//
// A [List] shows a backing slice of entries as a grid of item boxes inside a
// vertically scrolling [ScrollView]. With virtual layout only enough slots to
// cover the viewport plus a buffer row above and below are alive at once;
// slots that scroll out of view on one side are rebound to the entries
// coming into view on the other side.
//
// # Quick start
//
// Implement [Item] (embedding [BaseItem] gives no-op hooks), describe it
// with a [Template], and call [List.Update] and [List.Draw] from the game:
//
//	type card struct {
//		gridlist.BaseItem[*Entry]
//		node *gridlist.Node
//	}
//
//	func (c *card) Node() *gridlist.Node { return c.node }
//
//	view := gridlist.NewScrollView(gridlist.Rect{X: 20, Y: 20, Width: 300, Height: 400})
//	list := gridlist.New(view, gridlist.Template[*Entry]{
//		Width: 96, Height: 64,
//		New: func() gridlist.Item[*Entry] {
//			return &card{node: gridlist.NewRect("card", 96, 64, gridlist.ColorWhite)}
//		},
//	}, gridlist.DefaultOptions())
//	list.ReplaceList(entries)
//
//	func (g *Game) Update() error        { g.list.Update(1.0 / 60); return nil }
//	func (g *Game) Draw(s *ebiten.Image) { g.list.Draw(s) }
//
// Layout is deferred to the first Update, so data handed to the list right
// after New appears one tick later.
//
// # Coordinates
//
// Node positions are centers in a y-up space. The view's viewport node is the
// world origin and stands for the center of [ScrollView.Bounds]. The content
// node's origin is its top center, so item positions have negative Y. The
// scroll offset is zero at the top and grows as later rows are revealed.
//
// # Selection
//
// The selection is kept by the list, not by the entries. Items learn about
// it through [Item.SetSelected] on every bind and through OnSelect and
// OnUnselect when it moves.
//
// # Images
//
// A template with a [Loader] gives the list an [ImageCache]. Items request
// images with [BaseItem.LoadImage]; loads run on worker goroutines, at most a
// fixed number at once, and results are delivered on the game thread during
// [List.Update]. A result for a slot that has been recycled since the request
// is dropped.
//
// [Ebitengine]: https://ebitengine.org
package gridlist
