package binheap_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidvella/binheap"
)

// popAll exhausts the heap and returns the values in pop order.
func popAll[K comparable, V any](h *binheap.Heap[K, V]) []V {
	var out []V
	for {
		v, ok := h.Pop()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}

func TestPopOrdering(t *testing.T) {
	values := []int{2, 4, 6, 2, 1, 8, 10, 3, 5, 7, 0, 9, 1}

	h := binheap.New[int, int]()
	for i, v := range values {
		h.Push(i, v)
	}

	want := slices.Clone(values)
	slices.Sort(want)
	slices.Reverse(want)

	assert.Equal(t, want, popAll(h))
	assert.True(t, h.IsEmpty())
}

func TestPushExistingKey(t *testing.T) {
	h := binheap.New[string, int]()

	prev, ok := h.Push("a", 5)
	assert.False(t, ok)
	assert.Zero(t, prev)

	prev, ok = h.Push("a", 9)
	assert.True(t, ok)
	assert.Equal(t, 5, prev)

	assert.Equal(t, 1, h.Len())
	v, ok := h.Get("a")
	require.True(t, ok)
	assert.Equal(t, 9, v)
}

func TestPeekAndPop(t *testing.T) {
	h := binheap.New[string, int]()

	_, ok := h.Peek()
	assert.False(t, ok)
	_, _, ok = h.PopPair()
	assert.False(t, ok)

	h.Push("low", 1)
	h.Push("high", 5)
	h.Push("mid", 2)

	k, v, ok := h.PeekPair()
	require.True(t, ok)
	assert.Equal(t, "high", k)
	assert.Equal(t, 5, v)
	assert.Equal(t, 3, h.Len())

	k, v, ok = h.PopPair()
	require.True(t, ok)
	assert.Equal(t, "high", k)
	assert.Equal(t, 5, v)

	assert.Equal(t, []int{2, 1}, popAll(h))
}

func TestRemove(t *testing.T) {
	h := binheap.New[int, int]()
	h.Push(0, 5)
	h.Push(1, 3)

	v, ok := h.Remove(0)
	assert.True(t, ok)
	assert.Equal(t, 5, v)

	_, ok = h.Remove(0)
	assert.False(t, ok)

	_, ok = h.Remove(2)
	assert.False(t, ok)

	assert.Equal(t, 1, h.Len())
	v, ok = h.Get(1)
	require.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestRemoveInterior(t *testing.T) {
	h := binheap.New[int, int]()
	for i, v := range []int{9, 7, 8, 1, 2, 3, 4} {
		h.Push(i, v)
	}

	v, ok := h.Remove(1) // value 7, an interior node
	require.True(t, ok)
	assert.Equal(t, 7, v)
	assert.False(t, h.ContainsKey(1))

	assert.Equal(t, []int{9, 8, 4, 3, 2, 1}, popAll(h))
}

func TestRemoveSiftsReplacementUpward(t *testing.T) {
	// Shape where removing key 3 relocates the last element, whose value 8
	// orders after its new parent value 1 and must move toward the root.
	build := func() *binheap.Heap[int, int] {
		var pairs []binheap.Pair[int, int]
		for i, v := range []int{10, 1, 9, 0, 0, 8, 8} {
			pairs = append(pairs, binheap.Pair[int, int]{Key: i, Value: v})
		}
		return binheap.FromPairs(pairs, binheap.Max[int]())
	}

	h := build()
	v, ok := h.Remove(3)
	require.True(t, ok)
	assert.Equal(t, 0, v)
	assert.Equal(t, []int{10, 9, 8, 8, 1, 0}, popAll(h))

	h = build()
	r, ok := h.GetMut(3)
	require.True(t, ok)
	v, ok = r.Remove()
	require.True(t, ok)
	assert.Equal(t, 0, v)
	assert.Equal(t, []int{10, 9, 8, 8, 1, 0}, popAll(h))
}

func TestAppend(t *testing.T) {
	a := binheap.New[int, int]()
	for i, v := range []int{-10, 1, 2, 3, 3} {
		a.Push(i, v)
	}
	b := binheap.New[int, int]()
	for i, v := range []int{-20, 5, 43} {
		b.Push(10+i, v)
	}

	a.Append(b)

	assert.True(t, b.IsEmpty())
	assert.Equal(t, 8, a.Len())

	got := popAll(a)
	slices.Reverse(got)
	assert.Equal(t, []int{-20, -10, 1, 2, 3, 3, 5, 43}, got)
}

func TestAppendToEmpty(t *testing.T) {
	a := binheap.New[int, int]()
	b := binheap.New[int, int]()
	for i, v := range []int{-20, 5, 43} {
		b.Push(i, v)
	}

	a.Append(b)

	assert.True(t, b.IsEmpty())
	assert.Equal(t, []int{43, 5, -20}, popAll(a))
}

func TestAppendLargeTail(t *testing.T) {
	// The tail is large relative to the base, forcing the full-rebuild
	// strategy of the tail repair.
	a := binheap.New[int, int]()
	a.Push(0, 100)
	b := binheap.New[int, int]()
	for i := 0; i < 64; i++ {
		b.Push(1000+i, i)
	}

	a.Append(b)

	want := []int{100}
	for i := 63; i >= 0; i-- {
		want = append(want, i)
	}
	assert.Equal(t, want, popAll(a))
}

func TestBulkEquivalence(t *testing.T) {
	values := []int{2, 4, 6, 2, 1, 8, 10, 3, 5, 7, 0, 9, 1}

	bulk := binheap.FromSlice(values, func(v int) int { return v * 100 })
	// Duplicate values derive duplicate keys here, so the later occurrence
	// wins in both construction paths.
	incremental := binheap.New[int, int]()
	for _, v := range values {
		incremental.Push(v*100, v)
	}

	assert.Equal(t, incremental.Len(), bulk.Len())
	assert.Equal(t, popAll(incremental), popAll(bulk))
}

func TestFromSliceDuplicateKeys(t *testing.T) {
	// All values collapse onto one key; the last write wins.
	h := binheap.FromSlice([]int{1, 5, 3, 9}, func(int) string { return "same" })

	assert.Equal(t, 1, h.Len())
	v, ok := h.Get("same")
	require.True(t, ok)
	assert.Equal(t, 9, v)
}

func TestFromPairs(t *testing.T) {
	pairs := []binheap.Pair[string, int]{
		{Key: "a", Value: 3},
		{Key: "b", Value: 9},
		{Key: "a", Value: 7},
		{Key: "c", Value: 1},
	}
	h := binheap.FromPairs(pairs, binheap.Max[int]())

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, []int{9, 7, 1}, popAll(h))
}

func TestComparatorSwap(t *testing.T) {
	h := binheap.New[int, int]()
	for i, v := range []int{3, 1, 5, 4, 2} {
		h.Push(i, v)
	}

	v, ok := h.Peek()
	require.True(t, ok)
	assert.Equal(t, 5, v)

	h.SetComparator(binheap.Min[int]())

	assert.Equal(t, []int{1, 2, 3, 4, 5}, popAll(h))
}

func TestFix(t *testing.T) {
	counters := map[string]*int{}
	h := binheap.NewBy[string](binheap.BySortKey(func(c *int) int { return *c }))
	for _, name := range []string{"a", "b", "c"} {
		n := new(int)
		counters[name] = n
		h.Push(name, n)
	}

	// Mutate values behind the heap's back, then declare the change.
	*counters["b"] = 10
	h.Fix("b")
	*counters["a"] = 5
	h.Fix("a")

	k, _, ok := h.PeekPair()
	require.True(t, ok)
	assert.Equal(t, "b", k)
}

func TestFixMissingKeyPanics(t *testing.T) {
	h := binheap.New[string, int]()
	h.Push("present", 1)

	assert.Panics(t, func() { h.Fix("absent") })
}

func TestPeekMut(t *testing.T) {
	h := binheap.New[string, int]()
	h.Push("a", 1)
	h.Push("b", 5)
	h.Push("c", 2)

	r, ok := h.PeekMut()
	require.True(t, ok)
	assert.Equal(t, "b", r.Key())
	assert.Equal(t, 5, r.Value())
	r.Set(0)
	r.Release()

	v, ok := h.Peek()
	require.True(t, ok)
	assert.Equal(t, 2, v)

	// An unmodified view leaves the heap alone.
	r, ok = h.PeekMut()
	require.True(t, ok)
	r.Release()
	v, _ = h.Peek()
	assert.Equal(t, 2, v)

	_, ok = binheap.New[string, int]().PeekMut()
	assert.False(t, ok)
}

func TestPeekMutPop(t *testing.T) {
	h := binheap.New[string, int]()
	h.Push("a", 1)
	h.Push("b", 5)

	r, ok := h.PeekMut()
	require.True(t, ok)
	r.Set(3)
	k, v := r.Pop()
	r.Release() // no-op after Pop

	assert.Equal(t, "b", k)
	assert.Equal(t, 3, v)
	assert.Equal(t, 1, h.Len())
}

func TestGetMut(t *testing.T) {
	h := binheap.New[string, int]()
	h.Push("a", 1)
	h.Push("b", 5)
	h.Push("c", 2)

	r, ok := h.GetMut("a")
	require.True(t, ok)
	r.Set(9)
	r.Release()

	k, v, ok := h.PeekPair()
	require.True(t, ok)
	assert.Equal(t, "a", k)
	assert.Equal(t, 9, v)

	_, ok = h.GetMut("missing")
	assert.False(t, ok)
}

func TestGetMutRemove(t *testing.T) {
	h := binheap.New[string, int]()
	h.Push("a", 1)
	h.Push("b", 5)

	r, ok := h.GetMut("b")
	require.True(t, ok)
	v, removed := r.Remove()
	r.Release()

	assert.True(t, removed)
	assert.Equal(t, 5, v)
	assert.False(t, h.ContainsKey("b"))
	assert.Equal(t, 1, h.Len())
}

func TestMutatePanicStillRepairs(t *testing.T) {
	h := binheap.New[string, int]()
	h.Push("a", 1)
	h.Push("b", 5)
	h.Push("c", 2)

	assert.Panics(t, func() {
		h.MutateTop(func(v *int) {
			*v = 0
			panic("caller bug")
		})
	})

	// The deferred repair ran despite the panic.
	v, ok := h.Peek()
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestClearAndDrain(t *testing.T) {
	h := binheap.New[string, int]()
	h.Push("a", 1)
	h.Push("b", 5)

	h.Clear()
	assert.True(t, h.IsEmpty())
	_, ok := h.Get("a")
	assert.False(t, ok)

	h.Push("c", 3)
	h.Push("d", 7)

	var drained []int
	for _, v := range h.Drain() {
		drained = append(drained, v)
	}
	assert.ElementsMatch(t, []int{3, 7}, drained)
	assert.True(t, h.IsEmpty())

	// The heap stays usable after a drain.
	h.Push("e", 11)
	assert.Equal(t, []int{11}, popAll(h))
}

func TestClone(t *testing.T) {
	h := binheap.New[string, int]()
	h.Push("a", 1)
	h.Push("b", 5)

	c := h.Clone()
	c.Push("c", 9)
	h.Remove("a")

	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []int{9, 5, 1}, popAll(c))
}

func TestCapacity(t *testing.T) {
	h := binheap.NewWithCapacity[string, int](16)
	assert.GreaterOrEqual(t, h.Cap(), 16)

	h.Push("a", 1)
	h.Grow(100)
	assert.GreaterOrEqual(t, h.Cap(), 101)

	h.Clip()
	assert.Equal(t, h.Len(), h.Cap())
}

func TestMinHeap(t *testing.T) {
	h := binheap.NewMinWithCapacity[int, int](8)
	for i, v := range []int{3, 1, 5} {
		h.Push(i, v)
	}
	assert.Equal(t, []int{1, 3, 5}, popAll(h))
}

func TestNewBy(t *testing.T) {
	// Order strings by length, longest first.
	h := binheap.NewBy[int](binheap.CompareFunc[string](func(a, b string) int {
		return len(a) - len(b)
	}))
	h.Push(0, "ab")
	h.Push(1, "abcd")
	h.Push(2, "a")

	assert.Equal(t, []string{"abcd", "ab", "a"}, popAll(h))
}

func TestBySortKey(t *testing.T) {
	type task struct {
		name     string
		priority int
	}
	h := binheap.NewBy[string](binheap.BySortKey(func(t task) int { return t.priority }))
	h.Push("x", task{name: "x", priority: 2})
	h.Push("y", task{name: "y", priority: 7})
	h.Push("z", task{name: "z", priority: 4})

	got := popAll(h)
	assert.Equal(t, []string{"y", "z", "x"}, []string{got[0].name, got[1].name, got[2].name})
}
