package binheap

import (
	"cmp"

	"golang.org/x/exp/constraints"
)

// Comparator defines the order of a heap. Compare reports a negative number
// when a orders before b, zero when they are equivalent and a positive number
// when a orders after b, following the cmp.Compare convention. The element
// that orders after all others sits at the root.
type Comparator[V any] interface {
	Compare(a, b V) int
}

// CompareFunc adapts an ordinary comparison function to the Comparator
// interface.
type CompareFunc[V any] func(a, b V) int

func (f CompareFunc[V]) Compare(a, b V) int { return f(a, b) }

type maxComparator[V constraints.Ordered] struct{}

func (maxComparator[V]) Compare(a, b V) int { return cmp.Compare(a, b) }

type minComparator[V constraints.Ordered] struct{}

func (minComparator[V]) Compare(a, b V) int { return cmp.Compare(b, a) }

// Max returns the natural-order comparator: the greatest value wins.
func Max[V constraints.Ordered]() Comparator[V] { return maxComparator[V]{} }

// Min returns the inverted natural-order comparator: the smallest value wins.
func Min[V constraints.Ordered]() Comparator[V] { return minComparator[V]{} }

// BySortKey returns a comparator that orders values by the natural order of
// the sort key extracted by key. The greatest sort key wins.
func BySortKey[V any, O constraints.Ordered](key func(V) O) Comparator[V] {
	return CompareFunc[V](func(a, b V) int {
		return cmp.Compare(key(a), key(b))
	})
}
