// Package binheap implements a generic binary heap that keeps a key to
// position index alongside the heap array. Every element carries a stable key
// and the index makes that key addressable: values can be looked up, mutated
// in place, or removed without scanning the heap.
//
// The heap is a plain max-heap over the comparator it is constructed with.
// Comparators follow the cmp.Compare convention (negative, zero, positive)
// and come in four flavours: natural order, inverted natural order, an
// arbitrary comparison function, and comparison by a derived sort key.
//
// Key features:
//   - Generic implementation supporting any comparable key type and any value type
//   - O(log n) push, pop and remove; O(1) peek
//   - O(1) key-based lookups through the position index
//   - In-place value mutation with deferred heap repair
//   - O(n) bulk construction, merge and rebuild
//
// Basic usage:
//
//	// Create a max-heap keyed by task name.
//	h := binheap.New[string, int]()
//
//	h.Push("backfill", 3)
//	h.Push("compaction", 7)
//	h.Push("flush", 5)
//
//	// Peek at the most urgent task.
//	if v, ok := h.Peek(); ok {
//	    fmt.Println(v) // 7
//	}
//
//	// Raise a task's priority in place.
//	h.Mutate("backfill", func(v *int) { *v = 9 })
//
//	// Pop tasks in priority order.
//	for k, v := range h.Sorted() {
//	    fmt.Println(k, v)
//	}
//
// The zero Heap is not usable; construct one with New, NewMin, NewBy or one
// of the bulk constructors. The heap is not safe for concurrent use; callers
// that share one across goroutines must serialise access themselves.
package binheap
