// Package orderedmap provides a map that remembers insertion order,
// backed by a doubly-linked list alongside the lookup table so Get/Set
// stay O(1) while iteration and Delete also stay cheap. The command
// tree relies on this for deterministic argument, group, and
// subcommand ordering: map iteration order in Go is randomized, but
// display order, positional assignment, and validation all need to
// walk declarations in the order they were registered.
package orderedmap

import (
	"container/list"
)

// Iterator starting at OrderedMap.Front or OrderedMap.Back. Key and
// Value reflect the entry the iterator currently sits on; both are
// cleared (Key nil, Value the zero value) once Next/Prev walks off
// either end.
type Iterator[K comparable, V any] struct {
	forward bool
	ll      *list.Element
	curr    *list.Element

	Key   *K
	Value V
}

// OrderedMap stores key-value pairs in insertion order.
type OrderedMap[K comparable, V any] struct {
	store map[K]*list.Element
	keys  *list.List
}

type keyValue[K comparable, V any] struct {
	key   K
	value V
}

func newIterator[K comparable, V any](o *OrderedMap[K, V], forward bool) *Iterator[K, V] {
	iter := &Iterator[K, V]{
		forward: forward,
	}

	if o == nil {
		return nil
	}

	if o.keys.Len() == 0 {
		return nil
	}

	if forward {
		iter.ll = o.keys.Front()
	} else {
		iter.ll = o.keys.Back()
	}

	iter.sync()
	return iter
}

// sync refreshes Key/Value from the list element the iterator currently
// sits on.
func (n *Iterator[K, V]) sync() {
	if n.ll == nil {
		n.Key = nil
		n.Value = *new(V)
		return
	}
	kv := n.ll.Value.(keyValue[K, V])
	n.Key = &kv.key
	n.Value = kv.value
}

// Next advances to the next entry, or returns nil once exhausted.
func (n *Iterator[K, V]) Next() *Iterator[K, V] {
	if n.ll == nil {
		return nil
	}

	if n.forward {
		n.ll = n.ll.Next()
	} else {
		n.ll = n.ll.Prev()
	}

	if n.ll == nil {
		n.sync()
		return nil
	}

	n.sync()
	return n
}

// Prev moves to the previous entry, or returns nil once exhausted.
func (n *Iterator[K, V]) Prev() *Iterator[K, V] {
	if n.ll == nil {
		return nil
	}

	if n.forward {
		n.ll = n.ll.Prev()
	} else {
		n.ll = n.ll.Next()
	}

	if n.ll == nil {
		n.sync()
		return nil
	}

	n.sync()
	return n
}

// Current returns a function yielding the entry's key and value.
func (n *Iterator[K, V]) Current() func() (*K, V) {
	if n.ll == nil {
		return nil
	}

	keyVal := n.ll.Value.(keyValue[K, V])

	return func() (*K, V) {
		return &keyVal.key, keyVal.value
	}
}

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		store: map[K]*list.Element{},
		keys:  list.New(),
	}
}

// Set stores a key-value pair, overwriting any existing value for key
// without changing its position in iteration order.
func (o *OrderedMap[K, V]) Set(key K, val V) {
	var e *list.Element
	if _, exists := o.store[key]; !exists {
		e = o.keys.PushBack(keyValue[K, V]{
			key:   key,
			value: val,
		})
	} else {
		e = o.store[key]
		e.Value = keyValue[K, V]{
			key:   key,
			value: val,
		}
	}
	o.store[key] = e
}

// Get returns the value stored for key and whether it was present.
func (o *OrderedMap[K, V]) Get(key K) (V, bool) {
	val, exists := o.store[key]
	if !exists {
		return *new(V), false
	}
	return val.Value.(keyValue[K, V]).value, true
}

// Iterator returns a closure that, called repeatedly, yields the
// 0-based index, key, and value of each entry in insertion order,
// returning a nil index once exhausted.
func (o *OrderedMap[K, V]) Iterator() func() (*int, *K, V) {
	e := o.keys.Front()
	j := 0
	return func() (_ *int, _ *K, _ V) {
		if e == nil {
			return
		}

		keyVal := e.Value.(keyValue[K, V])
		j++
		e = e.Next()

		return func() *int { v := j - 1; return &v }(), &keyVal.key, keyVal.value
	}
}

// Delete removes key and its value, if present.
func (o *OrderedMap[K, V]) Delete(key K) {
	e, exists := o.store[key]
	if !exists {
		return
	}

	o.keys.Remove(e)

	delete(o.store, key)
}

// Count returns the number of entries currently stored.
func (o *OrderedMap[K, V]) Count() int {
	return o.keys.Len()
}

// Front returns an iterator positioned at the oldest (first-inserted) entry.
func (o *OrderedMap[K, V]) Front() *Iterator[K, V] {
	return newIterator[K, V](o, true)
}

// Back returns an iterator positioned at the newest (last-inserted) entry.
func (o *OrderedMap[K, V]) Back() *Iterator[K, V] {
	return newIterator[K, V](o, false)
}
