package gridlist

// windowLimit is the most slots the list keeps alive at once.
func (l *List[T]) windowLimit() int {
	if l.opts.UseVirtualLayout {
		return min(l.spawnCount, l.totalCount)
	}
	return l.totalCount
}

// spawn creates consecutive slots starting at startIndex until the window
// is full or the list ends, and notifies each one of its data.
func (l *List[T]) spawn(startIndex int) {
	if startIndex < 0 || startIndex >= l.totalCount {
		return
	}
	end := min(startIndex+l.windowLimit(), l.totalCount)
	for i := startIndex; i < end; i++ {
		s := l.newSlot(i)
		if s == nil {
			return
		}
		s.item.OnDataChanged()
	}
}

// topUp adds slots after the last bound index until the window is full.
// Used when an append grows the list past what the slots cover.
func (l *List[T]) topUp() {
	next := 0
	for _, s := range l.slots {
		next = max(next, s.index+1)
	}
	for len(l.slots) < l.windowLimit() && next < l.totalCount {
		s := l.newSlot(next)
		if s == nil {
			return
		}
		s.item.OnDataChanged()
		next++
	}
}

// newSlot takes a slot from the pool, places it at index and binds it.
// Returns nil when the template cannot produce an item.
func (l *List[T]) newSlot(index int) *Slot[T] {
	s := l.pool.Get()
	n := slotNode(s)
	if n == nil {
		Logger().Debug("gridlist: spawn stopped", "reason", "template produced no item", "index", index)
		l.pool.Drop(s)
		return nil
	}
	l.view.Content().AddChild(n)
	pos := l.layout.Position(index)
	n.X, n.Y = pos.X, pos.Y
	n.Interactable = true
	n.OnClick = func(ClickContext) {
		if s.bound {
			l.selectEntry(s.data, true)
		}
	}
	s.bind(l.data[index], index, l.sel.is(l.data[index]))
	l.slots = append(l.slots, s)
	return s
}

// rebind moves slot s to newIndex: the item leaves, is rebound and placed,
// redraws, and enters. Out-of-range targets are rejected without touching
// the slot.
func (l *List[T]) rebind(s *Slot[T], newIndex int) bool {
	if newIndex < 0 || newIndex >= l.totalCount {
		return false
	}
	s.item.OnLeave()
	n := s.item.Node()
	pos := l.layout.Position(newIndex)
	n.X, n.Y = pos.X, pos.Y
	data := l.data[newIndex]
	s.bind(data, newIndex, l.sel.is(data))
	s.item.OnDataChanged()
	s.item.OnEnter()
	return true
}

// lastBound reports whether some live slot is bound to the last entry.
func (l *List[T]) lastBound() bool {
	last := l.totalCount - 1
	for _, s := range l.slots {
		if s.index == last {
			return true
		}
	}
	return false
}

// releaseSlots returns every live slot to the pool for reuse.
func (l *List[T]) releaseSlots() {
	if l.pool != nil {
		l.pool.PutAll()
	}
	clear(l.slots)
	l.slots = l.slots[:0]
}

// disposeSlots destroys every slot, live or reserved.
func (l *List[T]) disposeSlots() {
	if l.pool != nil {
		l.pool.Destroy()
	}
	l.slots = nil
}
