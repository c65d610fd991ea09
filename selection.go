package gridlist

// selection remembers the selected entry by identity, outside the
// application's data.
type selection[T comparable] struct {
	entry T
	ok    bool
}

func (s selection[T]) is(data T) bool {
	return s.ok && s.entry == data
}

// SetSelection selects data. The previously selected entry's live slot, if
// any, is unselected; data's live slot, if any, is selected. With notify the
// selection-changed handler also fires. Selecting the current selection
// again does nothing.
func (l *List[T]) SetSelection(data T, notify bool) {
	if l.disposed {
		return
	}
	l.selectEntry(data, notify)
}

// ClearSelection unselects the current entry without notifying the handler.
func (l *List[T]) ClearSelection() {
	if !l.sel.ok {
		return
	}
	if s := l.slotFor(l.sel.entry); s != nil {
		s.selected = false
		s.item.SetSelected(false)
		s.item.OnUnselect()
	}
	l.sel = selection[T]{}
}

// Selected returns the selected entry.
func (l *List[T]) Selected() (T, bool) {
	return l.sel.entry, l.sel.ok
}

// FindDisplayByData returns the item currently showing data. Under virtual
// layout an entry scrolled out of the window has no item.
func (l *List[T]) FindDisplayByData(data T) (Item[T], bool) {
	if s := l.slotFor(data); s != nil {
		return s.item, true
	}
	return nil, false
}

func (l *List[T]) selectEntry(data T, notify bool) {
	if l.sel.is(data) {
		return
	}
	if l.sel.ok {
		if prev := l.slotFor(l.sel.entry); prev != nil {
			prev.selected = false
			prev.item.SetSelected(false)
			prev.item.OnUnselect()
		}
	}
	l.sel = selection[T]{entry: data, ok: true}
	if s := l.slotFor(data); s != nil {
		s.selected = true
		s.item.SetSelected(true)
		s.item.OnSelect()
	}
	if notify && l.onSelect != nil {
		l.onSelect(data)
	}
}

// slotFor finds the live slot bound to data. Linear in the window size.
func (l *List[T]) slotFor(data T) *Slot[T] {
	for _, s := range l.slots {
		if s.bound && s.data == data {
			return s
		}
	}
	return nil
}
