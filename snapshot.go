package binheap

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"maps"
	"slices"
)

// Snapshot is the serialized shape of a heap: the pair sequence exactly as
// stored (heap order, not key order) and the key to position index. The
// comparator is deliberately left out. Comparators are code rather than
// data and cannot round-trip through an encoding, so the restoring side
// supplies one to FromSnapshot.
//
// Snapshot implements encoding.BinaryMarshaler and BinaryUnmarshaler using
// gob, so it can also be embedded in larger gob streams directly.
type Snapshot[K comparable, V any] struct {
	Pairs []Pair[K, V]
	Index map[K]int
}

// Snapshot returns a deep copy of the heap's storage and index.
func (h *Heap[K, V]) Snapshot() Snapshot[K, V] {
	return Snapshot[K, V]{
		Pairs: slices.Clone(h.data),
		Index: maps.Clone(h.index),
	}
}

// FromSnapshot reconstructs a heap from a snapshot, ordering it by cmp. The
// snapshot's pairs and index are trusted as transmitted; a snapshot whose
// index does not match its pairs yields a heap with broken invariants. Use
// FromPairs on s.Pairs to re-derive the index defensively instead.
func FromSnapshot[K comparable, V any](s Snapshot[K, V], cmp Comparator[V]) *Heap[K, V] {
	return NewFromRaw(slices.Clone(s.Pairs), maps.Clone(s.Index), cmp, false)
}

// MarshalBinary encodes the snapshot with gob.
func (s Snapshot[K, V]) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(s.Pairs); err != nil {
		return nil, fmt.Errorf("binheap: encode pairs: %w", err)
	}
	if err := enc.Encode(s.Index); err != nil {
		return nil, fmt.Errorf("binheap: encode index: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a snapshot produced by MarshalBinary.
func (s *Snapshot[K, V]) UnmarshalBinary(data []byte) error {
	dec := gob.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&s.Pairs); err != nil {
		return fmt.Errorf("binheap: decode pairs: %w", err)
	}
	if err := dec.Decode(&s.Index); err != nil {
		return fmt.Errorf("binheap: decode index: %w", err)
	}
	return nil
}
