package binheap

// TopRef is a scoped mutable view of the root element, obtained from
// PeekMut. The heap defers order repair until Release runs: mutate the value
// through Set or Ptr any number of times, then Release once, typically via
// defer. While a TopRef is live no other heap operation may be performed.
//
// MutateTop wraps this sequence and guarantees Release on every exit path.
type TopRef[K comparable, V any] struct {
	h        *Heap[K, V]
	sift     bool
	released bool
}

// PeekMut returns a mutable view of the root element, or false if the heap
// is empty. O(1) if the value is never modified, O(log n) on Release
// otherwise.
func (h *Heap[K, V]) PeekMut() (*TopRef[K, V], bool) {
	if len(h.data) == 0 {
		return nil, false
	}
	return &TopRef[K, V]{h: h}, true
}

// Key returns the root element's key.
func (r *TopRef[K, V]) Key() K {
	return r.h.data[0].Key
}

// Value returns the root element's current value.
func (r *TopRef[K, V]) Value() V {
	return r.h.data[0].Value
}

// Set replaces the root element's value. Order repair is deferred to
// Release.
func (r *TopRef[K, V]) Set(value V) {
	r.h.data[0].Value = value
	r.sift = true
}

// Ptr returns a pointer to the root element's value for in-place mutation.
// The pointer must not be used after Release. Order repair is deferred to
// Release.
func (r *TopRef[K, V]) Ptr() *V {
	r.sift = true
	return &r.h.data[0].Value
}

// Pop removes the viewed element and returns it, consuming the view. The
// deferred repair is skipped; pop already restores order.
func (r *TopRef[K, V]) Pop() (K, V) {
	k, v, _ := r.h.PopPair()
	r.sift = false
	r.released = true
	return k, v
}

// Release ends the view and, if the value was modified, sifts the root down
// to restore heap order. Safe to call more than once.
func (r *TopRef[K, V]) Release() {
	if r.released {
		return
	}
	r.released = true
	if r.sift {
		r.h.siftDown(0)
	}
}

// Ref is a scoped mutable view of an arbitrary element, obtained from
// GetMut. Like TopRef it defers order repair until Release; unlike TopRef
// the repaired element may move in either direction, so Release runs the
// two-phase Fix. While a Ref is live no other heap operation may be
// performed.
type Ref[K comparable, V any] struct {
	h        *Heap[K, V]
	key      K
	pos      int
	touched  bool
	released bool
}

// GetMut returns a mutable view of the element stored under key, or false if
// the key is absent. O(log n) on Release if the value was modified.
func (h *Heap[K, V]) GetMut(key K) (*Ref[K, V], bool) {
	pos, ok := h.index[key]
	if !ok {
		return nil, false
	}
	return &Ref[K, V]{h: h, key: key, pos: pos}, true
}

// Key returns the viewed element's key.
func (r *Ref[K, V]) Key() K {
	return r.key
}

// Value returns the viewed element's current value.
func (r *Ref[K, V]) Value() V {
	return r.h.data[r.pos].Value
}

// Set replaces the viewed element's value. Order repair is deferred to
// Release.
func (r *Ref[K, V]) Set(value V) {
	r.h.data[r.pos].Value = value
	r.touched = true
}

// Ptr returns a pointer to the viewed element's value for in-place mutation.
// The pointer must not be used after Release. Order repair is deferred to
// Release.
func (r *Ref[K, V]) Ptr() *V {
	r.touched = true
	return &r.h.data[r.pos].Value
}

// Remove removes the viewed element from the heap and returns its value,
// consuming the view.
func (r *Ref[K, V]) Remove() (V, bool) {
	r.released = true
	return r.h.Remove(r.key)
}

// Release ends the view and, if the value was modified, re-establishes heap
// order for the element. Safe to call more than once.
func (r *Ref[K, V]) Release() {
	if r.released {
		return
	}
	r.released = true
	if r.touched {
		r.h.Fix(r.key)
	}
}

// MutateTop runs fn on the root element's value and restores heap order
// afterwards, even if fn panics. It reports whether the heap was non-empty.
func (h *Heap[K, V]) MutateTop(fn func(v *V)) bool {
	r, ok := h.PeekMut()
	if !ok {
		return false
	}
	defer r.Release()
	fn(r.Ptr())
	return true
}

// Mutate runs fn on the value stored under key and restores heap order
// afterwards, even if fn panics. It reports whether the key was present.
func (h *Heap[K, V]) Mutate(key K, fn func(v *V)) bool {
	r, ok := h.GetMut(key)
	if !ok {
		return false
	}
	defer r.Release()
	fn(r.Ptr())
	return true
}
