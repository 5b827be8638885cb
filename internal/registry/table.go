package registry

import (
	"cmp"
	"slices"
)

// table is a keyed store that remembers insertion order.
type table[K cmp.Ordered, V any] struct {
	order []K
	items map[K]V
}

func newTable[K cmp.Ordered, V any]() table[K, V] {
	return table[K, V]{items: make(map[K]V)}
}

func (t *table[K, V]) has(key K) bool {
	_, ok := t.items[key]
	return ok
}

func (t *table[K, V]) get(key K) (V, bool) {
	v, ok := t.items[key]
	return v, ok
}

func (t *table[K, V]) put(key K, v V) {
	t.items[key] = v
	t.order = append(t.order, key)
}

func (t *table[K, V]) delete(key K) bool {
	if !t.has(key) {
		return false
	}
	delete(t.items, key)
	if i := slices.Index(t.order, key); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
	return true
}

// keys returns a sorted copy of the keys.
func (t *table[K, V]) keys() []K {
	out := slices.Clone(t.order)
	slices.Sort(out)
	return out
}

// values returns the values in insertion order, in a fresh slice.
func (t *table[K, V]) values() []V {
	out := make([]V, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.items[k])
	}
	return out
}

func (t *table[K, V]) len() int {
	return len(t.items)
}
