package gridlist

// Creator builds, resets and destroys pooled objects.
type Creator[T any] interface {
	// Create returns a new object.
	Create() T
	// Reset prepares an object returned to the pool for reuse.
	Reset(obj T)
	// Destroy releases an object that leaves the pool for good.
	Destroy(obj T)
}

// ObjectPool keeps objects that are handed out (active) and objects that
// were returned and wait for reuse (reserve).
type ObjectPool[T comparable] struct {
	creator Creator[T]
	active  []T
	reserve []T
}

// NewObjectPool creates a pool and pre-allocates reserve objects.
func NewObjectPool[T comparable](creator Creator[T], reserve int) *ObjectPool[T] {
	p := &ObjectPool[T]{creator: creator}
	for i := 0; i < reserve; i++ {
		p.reserve = append(p.reserve, creator.Create())
	}
	return p
}

// Actives returns the handed-out objects. The returned slice MUST NOT be mutated.
func (p *ObjectPool[T]) Actives() []T { return p.active }

// ActiveCount returns the number of handed-out objects.
func (p *ObjectPool[T]) ActiveCount() int { return len(p.active) }

// ReservedCount returns the number of objects waiting for reuse.
func (p *ObjectPool[T]) ReservedCount() int { return len(p.reserve) }

// Get returns a reserved object, creating one if the reserve is empty.
func (p *ObjectPool[T]) Get() T {
	var obj T
	if n := len(p.reserve); n > 0 {
		obj = p.reserve[n-1]
		var zero T
		p.reserve[n-1] = zero
		p.reserve = p.reserve[:n-1]
	} else {
		obj = p.creator.Create()
	}
	p.active = append(p.active, obj)
	return obj
}

// Put returns an active object to the reserve. Objects not handed out by
// this pool are ignored and Put reports false.
func (p *ObjectPool[T]) Put(obj T) bool {
	if !p.removeActive(obj) {
		Logger().Debug("gridlist: pool put of unknown object")
		return false
	}
	p.creator.Reset(obj)
	p.reserve = append(p.reserve, obj)
	return true
}

// Drop removes an active object from the pool and destroys it.
func (p *ObjectPool[T]) Drop(obj T) bool {
	if !p.removeActive(obj) {
		return false
	}
	p.creator.Destroy(obj)
	return true
}

// PutAll returns every active object to the reserve.
func (p *ObjectPool[T]) PutAll() {
	var zero T
	for i, obj := range p.active {
		p.creator.Reset(obj)
		p.reserve = append(p.reserve, obj)
		p.active[i] = zero
	}
	p.active = p.active[:0]
}

// Destroy destroys every active and reserved object and empties the pool.
func (p *ObjectPool[T]) Destroy() {
	for _, obj := range p.active {
		p.creator.Destroy(obj)
	}
	for _, obj := range p.reserve {
		p.creator.Destroy(obj)
	}
	p.active = nil
	p.reserve = nil
}

func (p *ObjectPool[T]) removeActive(obj T) bool {
	for i, a := range p.active {
		if a == obj {
			copy(p.active[i:], p.active[i+1:])
			var zero T
			p.active[len(p.active)-1] = zero
			p.active = p.active[:len(p.active)-1]
			return true
		}
	}
	return false
}
