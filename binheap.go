package binheap

import (
	"fmt"
	"maps"
	"slices"

	"golang.org/x/exp/constraints"
)

// Pair is a keyed heap element. It is the unit of bulk construction,
// draining and snapshots.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// Heap is a binary heap over pairs of a unique key and a value, ordered by an
// injected Comparator. A position index keyed by K is kept in lockstep with
// the heap array, so arbitrary elements can be read, replaced, fixed up or
// removed by key without scanning.
//
// The element that orders after all others under the comparator sits at the
// root: with the Max comparator the heap pops greatest-first, with Min it
// pops smallest-first.
type Heap[K comparable, V any] struct {
	data  []Pair[K, V]
	index map[K]int
	cmp   Comparator[V]
}

// New creates an empty max-heap over the natural order of V.
func New[K comparable, V constraints.Ordered]() *Heap[K, V] {
	return NewBy[K](Max[V]())
}

// NewWithCapacity creates an empty max-heap with storage preallocated for
// capacity elements.
func NewWithCapacity[K comparable, V constraints.Ordered](capacity int) *Heap[K, V] {
	return NewByWithCapacity[K](Max[V](), capacity)
}

// NewMin creates an empty min-heap over the natural order of V.
func NewMin[K comparable, V constraints.Ordered]() *Heap[K, V] {
	return NewBy[K](Min[V]())
}

// NewMinWithCapacity creates an empty min-heap with storage preallocated for
// capacity elements.
func NewMinWithCapacity[K comparable, V constraints.Ordered](capacity int) *Heap[K, V] {
	return NewByWithCapacity[K](Min[V](), capacity)
}

// NewBy creates an empty heap ordered by the given comparator.
func NewBy[K comparable, V any](cmp Comparator[V]) *Heap[K, V] {
	return NewByWithCapacity[K](cmp, 0)
}

// NewByWithCapacity creates an empty heap ordered by the given comparator
// with storage preallocated for capacity elements.
func NewByWithCapacity[K comparable, V any](cmp Comparator[V], capacity int) *Heap[K, V] {
	return &Heap[K, V]{
		data:  make([]Pair[K, V], 0, capacity),
		index: make(map[K]int, capacity),
		cmp:   cmp,
	}
}

// FromSlice builds a max-heap from values, deriving each element's key with
// key. Construction is O(n). When two values derive the same key the later
// one wins and the earlier one is dropped.
func FromSlice[K comparable, V constraints.Ordered](values []V, key func(V) K) *Heap[K, V] {
	return FromSliceBy(values, key, Max[V]())
}

// FromSliceBy builds a heap ordered by cmp from values, deriving each
// element's key with key. Construction is O(n). When two values derive the
// same key the later one wins and the earlier one is dropped.
func FromSliceBy[K comparable, V any](values []V, key func(V) K, cmp Comparator[V]) *Heap[K, V] {
	h := NewByWithCapacity[K](cmp, len(values))
	for _, v := range values {
		h.load(key(v), v)
	}
	h.rebuild()
	return h
}

// FromPairs builds a heap ordered by cmp from explicit key-value pairs,
// re-deriving the position index from scratch. Construction is O(n). Later
// pairs win on duplicate keys.
func FromPairs[K comparable, V any](pairs []Pair[K, V], cmp Comparator[V]) *Heap[K, V] {
	h := NewByWithCapacity[K](cmp, len(pairs))
	for _, p := range pairs {
		h.load(p.Key, p.Value)
	}
	h.rebuild()
	return h
}

// load appends a pair without repairing order, resolving duplicate keys in
// place so that the index stays consistent with storage.
func (h *Heap[K, V]) load(key K, value V) {
	if pos, ok := h.index[key]; ok {
		h.data[pos].Value = value
		return
	}
	h.index[key] = len(h.data)
	h.data = append(h.data, Pair[K, V]{Key: key, Value: value})
}

// NewFromRaw assembles a heap directly from the given storage and index,
// taking ownership of both. Unless rebuild is set, the caller guarantees
// that pairs already satisfy the heap property under cmp and that index maps
// every key to its position. A nil index is accepted and re-derived.
func NewFromRaw[K comparable, V any](pairs []Pair[K, V], index map[K]int, cmp Comparator[V], rebuild bool) *Heap[K, V] {
	if index == nil {
		index = make(map[K]int, len(pairs))
		for i, p := range pairs {
			index[p.Key] = i
		}
	}
	if len(pairs) != len(index) {
		panic(fmt.Sprintf("binheap: NewFromRaw: %d pairs but %d index entries", len(pairs), len(index)))
	}
	h := &Heap[K, V]{data: pairs, index: index, cmp: cmp}
	if rebuild {
		h.rebuild()
	}
	return h
}

// Len returns the number of elements in the heap.
func (h *Heap[K, V]) Len() int {
	return len(h.data)
}

// IsEmpty reports whether the heap holds no elements.
func (h *Heap[K, V]) IsEmpty() bool {
	return len(h.data) == 0
}

// Push inserts value under key. If the key is already present its value is
// replaced, heap order is repaired from that slot, and the previous value is
// returned with ok set. A new insert returns the zero value and false.
//
// A new insert costs amortised O(1); replacing an existing key costs
// O(log n).
func (h *Heap[K, V]) Push(key K, value V) (prev V, ok bool) {
	if pos, exists := h.index[key]; exists {
		prev = h.data[pos].Value
		h.data[pos].Value = value
		h.Fix(key)
		return prev, true
	}
	h.index[key] = len(h.data)
	h.data = append(h.data, Pair[K, V]{Key: key, Value: value})
	h.siftUp(0, len(h.data)-1)
	return prev, false
}

// Peek returns the root value without removing it.
func (h *Heap[K, V]) Peek() (V, bool) {
	if len(h.data) == 0 {
		var zero V
		return zero, false
	}
	return h.data[0].Value, true
}

// PeekPair returns the root key and value without removing them.
func (h *Heap[K, V]) PeekPair() (K, V, bool) {
	if len(h.data) == 0 {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}
	return h.data[0].Key, h.data[0].Value, true
}

// Pop removes and returns the root value. O(log n).
func (h *Heap[K, V]) Pop() (V, bool) {
	_, v, ok := h.PopPair()
	return v, ok
}

// PopPair removes and returns the root key and value. O(log n).
func (h *Heap[K, V]) PopPair() (K, V, bool) {
	n := len(h.data)
	if n == 0 {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}
	top := h.data[0]
	last := h.data[n-1]
	h.data[n-1] = Pair[K, V]{}
	h.data = h.data[:n-1]
	delete(h.index, top.Key)
	if len(h.data) > 0 {
		h.data[0] = last
		h.index[last.Key] = 0
		h.siftDownToBottom(0)
	}
	return top.Key, top.Value, true
}

// ContainsKey reports whether key is in the heap. O(1).
func (h *Heap[K, V]) ContainsKey(key K) bool {
	_, ok := h.index[key]
	return ok
}

// Get returns the value stored under key. O(1).
func (h *Heap[K, V]) Get(key K) (V, bool) {
	pos, ok := h.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return h.data[pos].Value, true
}

// Remove removes the element stored under key and returns its value. A
// missing key leaves the heap untouched. O(log n); the vacated slot is
// refilled with the last element, which may order before or after its new
// parent and is sifted in whichever direction restores order.
func (h *Heap[K, V]) Remove(key K) (V, bool) {
	pos, ok := h.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	n := len(h.data) - 1
	removed := h.data[pos]
	last := h.data[n]
	h.data[n] = Pair[K, V]{}
	h.data = h.data[:n]
	delete(h.index, key)
	if pos < n {
		h.data[pos] = last
		h.index[last.Key] = pos
		if h.siftUp(0, pos) == pos {
			h.siftDownToBottom(pos)
		}
	}
	return removed.Value, true
}

// Fix re-establishes heap order after the value stored under key was mutated
// through external means. It first sifts the element up; only if the element
// did not move can it have been relatively decreased, so it is sifted down
// from the same slot. Callers do not need to know which direction the value
// changed in.
//
// Fix panics if key is not in the heap: a fix-up request for an absent key
// means the caller's bookkeeping is broken, and ignoring it would let the
// heap order silently decay. Use GetMut or Mutate for the checked path.
func (h *Heap[K, V]) Fix(key K) {
	pos, ok := h.index[key]
	if !ok {
		panic(fmt.Sprintf("binheap: Fix of key %v not in heap", key))
	}
	if h.siftUp(0, pos) != pos {
		return
	}
	h.siftDown(pos)
}

// Append moves every element of other into h and leaves other empty. Both
// heaps must use equivalent comparators, and no key of other may already be
// present in h. O(n); the cheaper of a tail repair and a full rebuild is
// chosen based on the relative sizes.
func (h *Heap[K, V]) Append(other *Heap[K, V]) {
	if h.Len() < other.Len() {
		*h, *other = *other, *h
	}

	start := len(h.data)
	h.data = append(h.data, other.data...)
	for i := start; i < len(h.data); i++ {
		h.index[h.data[i].Key] = i
	}
	other.data = nil
	clear(other.index)

	h.rebuildTail(start)
}

// Clear removes all elements, keeping allocated storage for reuse.
func (h *Heap[K, V]) Clear() {
	clear(h.data)
	h.data = h.data[:0]
	clear(h.index)
}

// SetComparator replaces the heap's comparator and rebuilds, so that the
// heap property holds under the new order. O(n).
func (h *Heap[K, V]) SetComparator(cmp Comparator[V]) {
	h.cmp = cmp
	if len(h.data) > 0 {
		h.rebuild()
	}
}

// SetComparatorNoRebuild replaces the comparator without rebuilding. The
// heap property is violated for any non-trivial heap until the caller
// rebuilds, e.g. through NewFromRaw or a subsequent SetComparator. Intended
// for callers that batch several structural changes before one repair.
func (h *Heap[K, V]) SetComparatorNoRebuild(cmp Comparator[V]) {
	h.cmp = cmp
}

// Cap returns the number of elements the heap can hold without reallocating.
func (h *Heap[K, V]) Cap() int {
	return cap(h.data)
}

// Grow reserves storage for at least n more elements.
func (h *Heap[K, V]) Grow(n int) {
	h.data = slices.Grow(h.data, n)
}

// Clip discards unused storage capacity.
func (h *Heap[K, V]) Clip() {
	h.data = slices.Clip(h.data)
}

// Clone returns a deep copy of the heap sharing only the comparator.
func (h *Heap[K, V]) Clone() *Heap[K, V] {
	return &Heap[K, V]{
		data:  slices.Clone(h.data),
		index: maps.Clone(h.index),
		cmp:   h.cmp,
	}
}
