package gridlist

// onScrolling is the virtual-layout scrolling listener. It compares the new
// offset with the previous one to find the direction, then recycles each
// slot that has drifted past the buffer zone on the trailing side to the
// leading side of the window. Each slot moves at most once per tick.
func (l *List[T]) onScrolling(offset float64) {
	defer func() { l.lastOffset = offset }()

	switch {
	case offset > l.lastOffset:
		l.direction = DirectionUp
	case offset < l.lastOffset:
		l.direction = DirectionDown
	default:
		l.direction = DirectionIdle
		return
	}
	if !l.initialized || len(l.slots) == 0 {
		return
	}

	count := len(l.slots)
	shift := l.layout.RowGroupOffset(count)
	contentHeight := l.layout.ContentHeight(l.totalCount)
	buffer := l.bufferZone
	reachedBottom := false

	for _, s := range l.slots {
		y := s.item.Node().Y
		viewY := l.view.ViewY(y)

		switch l.direction {
		case DirectionDown:
			// Below the view and there is room above the window.
			if viewY < -buffer && y+shift < 0 {
				l.rebind(s, s.index-count)
			}
		case DirectionUp:
			// Above the view and there is room below the window.
			if viewY > buffer && y-shift > -contentHeight {
				if l.rebind(s, s.index+count) && s.index == l.totalCount-1 {
					reachedBottom = true
				}
			}
		}
	}

	if reachedBottom {
		// Fired after the pass: the handler may append or replace data.
		l.fireScrollToBottom()
	} else if !l.bottomArmed && !l.lastBound() {
		l.bottomArmed = true
	}
}
