package binheap

import "iter"

// All returns an iterator over all key-value pairs in storage order, which
// is not the heap order. The heap must not be mutated during iteration.
func (h *Heap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, p := range h.data {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Keys returns an iterator over all keys in storage order.
func (h *Heap[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for _, p := range h.data {
			if !yield(p.Key) {
				return
			}
		}
	}
}

// Values returns an iterator over all values in storage order.
func (h *Heap[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, p := range h.data {
			if !yield(p.Value) {
				return
			}
		}
	}
}

// AllMut returns an iterator that yields every key together with a pointer
// to its value for in-place mutation. Heap order may be violated freely
// while iterating; one full rebuild runs when iteration ends, on early break
// and on panic alike. This trades a transient invariant violation for a
// single O(n) repair instead of O(n log n) per-element fix-ups. The heap
// must not be otherwise mutated during iteration.
func (h *Heap[K, V]) AllMut() iter.Seq2[K, *V] {
	return func(yield func(K, *V) bool) {
		defer h.rebuild()
		for i := range h.data {
			if !yield(h.data[i].Key, &h.data[i].Value) {
				return
			}
		}
	}
}

// Sorted returns a consuming iterator that pops elements in heap order until
// the heap is empty. It is single-pass: elements consumed are gone even if
// iteration stops early.
func (h *Heap[K, V]) Sorted() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for {
			k, v, ok := h.PopPair()
			if !ok {
				return
			}
			if !yield(k, v) {
				return
			}
		}
	}
}

// Drain empties the heap immediately and returns an iterator over the
// removed pairs in storage order. Unlike Sorted it does not pay for ordering.
func (h *Heap[K, V]) Drain() iter.Seq2[K, V] {
	pairs := h.data
	h.data = nil
	clear(h.index)
	return func(yield func(K, V) bool) {
		for _, p := range pairs {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}
