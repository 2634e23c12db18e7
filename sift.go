package binheap

import "math/bits"

// The sift primitives move one element through the heap array with a hole: the
// pair at the starting position is lifted out, the gap walks toward its
// resting place while neighbours are shifted into it, and the lifted pair is
// written back exactly once at the end. Compared to pairwise swaps this halves
// the number of writes and index updates. The hole is filled by a deferred
// release, so a panicking user comparator cannot leave a stale pair in the
// array or a dangling entry in the index.

// hole is a temporarily value-less slot in the heap array. While a hole is
// open, h.data[pos] is stale and elt is the authoritative pair for that slot.
type hole[K comparable, V any] struct {
	h      *Heap[K, V]
	elt    Pair[K, V]
	pos    int
	filled bool
}

func (h *Heap[K, V]) newHole(pos int) hole[K, V] {
	return hole[K, V]{h: h, elt: h.data[pos], pos: pos}
}

// get returns the value at i. i must not equal the hole position.
func (ho *hole[K, V]) get(i int) V {
	return ho.h.data[i].Value
}

// moveTo shifts the pair at target into the hole and moves the hole to
// target, keeping the index entry of the shifted pair in sync.
func (ho *hole[K, V]) moveTo(target int) {
	moved := ho.h.data[target]
	ho.h.data[ho.pos] = moved
	ho.h.index[moved.Key] = ho.pos
	ho.pos = target
}

// fill writes the lifted pair back at the hole's current position and repairs
// its index entry. Safe to call more than once; only the first call writes.
func (ho *hole[K, V]) fill() {
	if ho.filled {
		return
	}
	ho.filled = true
	ho.h.data[ho.pos] = ho.elt
	ho.h.index[ho.elt.Key] = ho.pos
}

// siftUp moves the element at pos toward the root while it orders after its
// parent, stopping at start. It returns the final resting position.
// pos must satisfy start <= pos < len(h.data).
func (h *Heap[K, V]) siftUp(start, pos int) int {
	ho := h.newHole(pos)
	defer ho.fill()

	for ho.pos > start {
		parent := (ho.pos - 1) / 2
		if h.cmp.Compare(ho.elt.Value, ho.get(parent)) <= 0 {
			break
		}
		ho.moveTo(parent)
	}
	return ho.pos
}

// siftDownRange moves the element at pos toward the leaves while one of its
// children within [pos, end) orders after it, always descending into the
// greater child (the left child on ties).
// Requires pos < end <= len(h.data).
func (h *Heap[K, V]) siftDownRange(pos, end int) {
	ho := h.newHole(pos)
	defer ho.fill()

	child := 2*ho.pos + 1
	for child <= end-2 {
		// Pick the greater of the two children, the left one on ties.
		if h.cmp.Compare(ho.get(child), ho.get(child+1)) < 0 {
			child++
		}
		if h.cmp.Compare(ho.elt.Value, ho.get(child)) >= 0 {
			return
		}
		ho.moveTo(child)
		child = 2*ho.pos + 1
	}
	if child == end-1 && h.cmp.Compare(ho.elt.Value, ho.get(child)) < 0 {
		ho.moveTo(child)
	}
}

func (h *Heap[K, V]) siftDown(pos int) {
	h.siftDownRange(pos, len(h.data))
}

// siftDownToBottom unconditionally walks the element at pos down to a leaf
// along the greater-child path, then sifts it back up from there. Cheaper
// than siftDown when the element is expected to end up near the bottom, which
// is the case for the former last element relocated by pop and remove.
func (h *Heap[K, V]) siftDownToBottom(pos int) {
	end := len(h.data)
	start := pos

	ho := h.newHole(pos)
	defer ho.fill()

	child := 2*ho.pos + 1
	for child <= end-2 {
		if h.cmp.Compare(ho.get(child), ho.get(child+1)) < 0 {
			child++
		}
		ho.moveTo(child)
		child = 2*ho.pos + 1
	}
	if child == end-1 {
		ho.moveTo(child)
	}
	pos = ho.pos
	ho.fill()

	h.siftUp(start, pos)
}

// rebuild restores the heap property over arbitrary storage by sifting down
// every internal node, last to first. O(n).
func (h *Heap[K, V]) rebuild() {
	for n := len(h.data)/2 - 1; n >= 0; n-- {
		h.siftDown(n)
	}
}

// rebuildTail repairs the heap after a batch of elements was appended to an
// already-valid heap of size start. It picks between a full rebuild (about
// 2*len comparisons) and sifting up each new element (about
// tail*log2(start) comparisons); the crossover constant for heaps above 2048
// elements matches the one determined empirically for the standard library's
// append. Either strategy alone would be correct.
func (h *Heap[K, V]) rebuildTail(start int) {
	if start == len(h.data) {
		return
	}

	tail := len(h.data) - start

	betterToRebuild := false
	switch {
	case start < tail:
		betterToRebuild = true
	case len(h.data) <= 2048:
		betterToRebuild = 2*len(h.data) < tail*log2(start)
	default:
		betterToRebuild = 2*len(h.data) < tail*11
	}

	if betterToRebuild {
		h.rebuild()
		return
	}
	for i := start; i < len(h.data); i++ {
		h.siftUp(0, i)
	}
}

func log2(x int) int {
	return bits.Len(uint(x)) - 1
}
