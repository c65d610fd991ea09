package gridlist

import "math"

// Layout holds the grid metrics used to place items. All methods are pure.
//
// List space is y-up with its origin at the top center of the content, so
// item positions have negative Y.
type Layout struct {
	ColumnNum     int
	ItemWidth     float64
	ItemHeight    float64
	SpacingX      float64
	SpacingY      float64
	PaddingTop    float64
	PaddingBottom float64
	ContentWidth  float64
}

// Position returns the center of the item at index.
//
//	col = index % ColumnNum, row = index / ColumnNum
//	x   = -ContentWidth/2 + ItemWidth*(0.5+col) + SpacingX*col
//	y   = -ItemHeight*(0.5+row) - SpacingY*row - PaddingTop
func (l Layout) Position(index int) Vec2 {
	cols := l.columns()
	col := float64(index % cols)
	row := float64(index / cols)
	return Vec2{
		X: -l.ContentWidth*0.5 + l.ItemWidth*(0.5+col) + l.SpacingX*col,
		Y: -l.ItemHeight*(0.5+row) - l.SpacingY*row - l.PaddingTop,
	}
}

// Rows returns the number of rows needed for count items.
func (l Layout) Rows(count int) int {
	if count <= 0 {
		return 0
	}
	cols := l.columns()
	return (count + cols - 1) / cols
}

// ContentHeight returns the total scrollable height for totalCount items:
// ceil(totalCount/ColumnNum)*(ItemHeight+SpacingY) + PaddingTop + PaddingBottom.
func (l Layout) ContentHeight(totalCount int) float64 {
	return float64(l.Rows(totalCount))*(l.ItemHeight+l.SpacingY) + l.PaddingTop + l.PaddingBottom
}

// RowGroupOffset is the vertical distance covered by slotCount slots, the
// amount a slot moves when it is recycled to the other end of the window.
func (l Layout) RowGroupOffset(slotCount int) float64 {
	return (l.ItemHeight + l.SpacingY) * float64(l.Rows(slotCount))
}

// RowOffset returns the scroll offset that brings the top edge of the row
// holding index to the top of the viewport.
func (l Layout) RowOffset(index int) float64 {
	if index <= 0 {
		return 0
	}
	row := float64(index / l.columns())
	return row*(l.ItemHeight+l.SpacingY) + l.PaddingTop
}

func (l Layout) columns() int {
	if l.ColumnNum < 1 {
		return 1
	}
	return l.ColumnNum
}

// AutoColumns returns how many items of itemWidth fit across containerWidth
// with spacingX gaps. The result is never less than one.
func AutoColumns(containerWidth, itemWidth, spacingX float64) int {
	if itemWidth+spacingX <= 0 {
		return 1
	}
	n := int(math.Floor((containerWidth + spacingX) / (itemWidth + spacingX)))
	return max(1, n)
}

// spawnCountFor returns the number of slots needed to cover a viewport of
// viewHeight plus one buffer row above and below.
func spawnCountFor(viewHeight, itemHeight float64, columns int) int {
	if itemHeight <= 0 {
		return 0
	}
	return int(math.Ceil(viewHeight/itemHeight+2)) * max(1, columns)
}

// bufferZoneFor returns the distance from the viewport center beyond which a
// slot is considered out of view: half the viewport plus one item.
func bufferZoneFor(viewHeight, itemHeight float64) float64 {
	return viewHeight*0.5 + itemHeight
}
