// Copyright 2024 The Cockroach Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package hashtable is a string-keyed hash table that resolves collisions
// by chaining. See https://en.wikipedia.org/wiki/Hash_table#Separate_chaining.
//
// # Layout
//
// A Table holds capacity buckets. Each bucket is a chain: a slice of
// entries kept in insertion order. A key lives in the chain at index
// hash(key) % capacity where hash is the 64-bit DJB2 function (see Hash)
// unless a different function is supplied with the WithHash option. Every
// operation computes that index and then performs a linear scan of a
// single chain, so the cost of an operation is proportional to the length
// of the chain it lands in.
//
// # Resizing
//
// The number of buckets never changes on its own. A Table with a high
// load factor (Len / Capacity) still works correctly, its chains just get
// longer. Callers that care about chain length call Resize, which
// allocates a fresh bucket array, rehashes every entry against the new
// capacity and then installs the new array in a single step. No
// operation can observe a table whose entries are split between the old
// and new capacity.
//
// # Mutation during iteration
//
// Chains are never modified destructively: Delete builds a new chain
// rather than shifting entries in place, and Resize builds a new bucket
// array. An iteration started with All therefore always walks valid
// memory even if the table is mutated from within the iteration. Such
// mutations may or may not be visible to the iteration.
package hashtable

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	debug = false

	// DefaultCapacity is the bucket count used by callers that have no
	// better estimate of the number of keys they will store.
	DefaultCapacity = 100
)

// Entry holds a key and value.
type Entry[K ~string, V any] struct {
	Key   K
	Value V
}

// Table is an unordered map from keys to values with Put, Lookup, Delete,
// Resize and All operations.
//
// A Table is NOT goroutine-safe. Callers that share a Table between
// goroutines must serialize every operation, including iteration.
//
// The zero value for a Table is not usable: create one with New or Init.
// Put, Get, Lookup, Contains, GetOrPut, Delete and Resize panic on a Table
// that was never initialized or has been closed.
type Table[K ~string, V any] struct {
	// The hash function applied to keys. The bucket index of a key is
	// hash(key) % capacity.
	hash func(key K) uint64
	// The allocator to use for bucket arrays.
	allocator Allocator[K, V]
	// buckets is capacity in length. buckets[i] holds every entry whose
	// key hashes to i.
	buckets [][]Entry[K, V]
	// The number of buckets.
	capacity int
	// The number of entries across all buckets.
	used int
}

// New constructs a new Table with the specified number of buckets. It
// returns ErrInvalidCapacity if capacity is not positive.
func New[K ~string, V any](capacity int, options ...option[K, V]) (*Table[K, V], error) {
	t := &Table[K, V]{}
	if err := t.Init(capacity, options...); err != nil {
		return nil, err
	}
	return t, nil
}

// Init initializes a Table with the specified number of buckets, releasing
// any bucket array the table previously held. It returns
// ErrInvalidCapacity, leaving the table untouched, if capacity is not
// positive.
func (t *Table[K, V]) Init(capacity int, options ...option[K, V]) error {
	if capacity <= 0 {
		return errors.Wrapf(ErrInvalidCapacity, "capacity %d", capacity)
	}
	t.Close()

	*t = Table[K, V]{
		hash:      djb2[K],
		allocator: defaultAllocator[K, V]{},
	}
	for _, op := range options {
		op.apply(t)
	}

	t.buckets = t.allocator.AllocBuckets(capacity)
	t.capacity = capacity
	t.checkInvariants()
	return nil
}

// Close closes the table, releasing its bucket array back to its
// configured allocator. It is unnecessary to close a table using the
// default allocator. It is invalid to use a Table after it has been
// closed, though Close itself is idempotent.
func (t *Table[K, V]) Close() {
	if t.buckets != nil && t.allocator != nil {
		t.allocator.FreeBuckets(t.buckets)
	}
	t.buckets = nil
	t.capacity = 0
	t.used = 0
}

// Put inserts an entry into the table, overwriting the value of an
// existing entry with the same key in place.
func (t *Table[K, V]) Put(key K, value V) {
	i := t.index(key, t.capacity)
	chain := t.buckets[i]
	if j := find(chain, key); j >= 0 {
		if debug {
			fmt.Printf("put(updating): bucket=%d pos=%d key=%q\n", i, j, key)
		}
		chain[j].Value = value
		t.checkInvariants()
		return
	}

	if debug {
		fmt.Printf("put(inserting): bucket=%d pos=%d key=%q\n", i, len(chain), key)
	}
	t.buckets[i] = append(chain, Entry[K, V]{Key: key, Value: value})
	t.used++
	t.checkInvariants()
}

// Lookup retrieves the value for the specified key. It returns an error
// satisfying errors.Is(err, ErrKeyNotFound) if the key is not present.
//
// The value is returned by copy. If V is a pointer, slice or map type the
// copy shares its referent with the stored value, and mutating it mutates
// the entry held by the table.
func (t *Table[K, V]) Lookup(key K) (V, error) {
	if v, ok := t.Get(key); ok {
		return v, nil
	}
	var zero V
	return zero, errors.Wrapf(ErrKeyNotFound, "lookup %q", key)
}

// Get retrieves the value from the table for the specified key, returning
// ok=false if the key is not present.
func (t *Table[K, V]) Get(key K) (value V, ok bool) {
	chain := t.buckets[t.index(key, t.capacity)]
	if j := find(chain, key); j >= 0 {
		return chain[j].Value, true
	}
	return value, false
}

// Contains reports whether the table holds an entry for key.
func (t *Table[K, V]) Contains(key K) bool {
	return find(t.buckets[t.index(key, t.capacity)], key) >= 0
}

// GetOrPut returns the existing value for key if present, with
// loaded=true. Otherwise it inserts value and returns it with
// loaded=false.
func (t *Table[K, V]) GetOrPut(key K, value V) (actual V, loaded bool) {
	i := t.index(key, t.capacity)
	chain := t.buckets[i]
	if j := find(chain, key); j >= 0 {
		return chain[j].Value, true
	}
	t.buckets[i] = append(chain, Entry[K, V]{Key: key, Value: value})
	t.used++
	t.checkInvariants()
	return value, false
}

// Delete deletes the entry corresponding to the specified key from the
// table. The relative order of the remaining entries in the key's chain
// is preserved. It returns an error satisfying errors.Is(err,
// ErrKeyNotFound), and leaves the table unchanged, if the key is not
// present.
func (t *Table[K, V]) Delete(key K) error {
	i := t.index(key, t.capacity)
	chain := t.buckets[i]
	j := find(chain, key)
	if j < 0 {
		return errors.Wrapf(ErrKeyNotFound, "delete %q", key)
	}

	// The replacement chain never shares a backing array slot with chain
	// beyond position j, so iterators holding chain keep seeing the
	// entries they started with.
	if j == len(chain)-1 {
		t.buckets[i] = chain[:j:j]
	} else {
		t.buckets[i] = slices.Concat(chain[:j], chain[j+1:])
	}
	t.used--

	if debug {
		fmt.Printf("delete(%q): bucket=%d pos=%d used=%d\n", key, i, j, t.used)
	}
	t.checkInvariants()
	return nil
}

// Resize rehashes every entry into a new array of newCapacity buckets. No
// entry is lost, duplicated or modified. Resize returns
// ErrInvalidCapacity, leaving the table untouched, if newCapacity is not
// positive.
func (t *Table[K, V]) Resize(newCapacity int) error {
	t.checkUsable()
	if newCapacity <= 0 {
		return errors.Wrapf(ErrInvalidCapacity, "resize to %d", newCapacity)
	}

	if debug {
		fmt.Printf("resize: capacity=%d->%d used=%d\n", t.capacity, newCapacity, t.used)
	}

	newBuckets := t.allocator.AllocBuckets(newCapacity)
	for _, chain := range t.buckets {
		for _, e := range chain {
			i := t.index(e.Key, newCapacity)
			newBuckets[i] = append(newBuckets[i], e)
		}
	}

	oldBuckets := t.buckets
	t.buckets, t.capacity = newBuckets, newCapacity
	t.allocator.FreeBuckets(oldBuckets)

	t.checkInvariants()
	return nil
}

// Clear deletes all entries from the table, retaining its capacity.
func (t *Table[K, V]) Clear() {
	for i := range t.buckets {
		t.buckets[i] = nil
	}
	t.used = 0
	t.checkInvariants()
}

// All calls yield sequentially for each key and value present in the
// table, visiting buckets in index order and each chain in insertion
// order. If yield returns false, iteration stops. The signature allows
// ranging over the table directly:
//
//	for k, v := range t.All {
//	  fmt.Printf("%v: %v\n", k, v)
//	}
//
// The table can be mutated during iteration, though there is no guarantee
// that the mutations will be visible to the iteration. Every entry present
// when iteration starts and not deleted before it is reached is yielded
// exactly once.
func (t *Table[K, V]) All(yield func(key K, value V) bool) {
	// Snapshot the bucket array so that iteration remains valid if the
	// table is resized during iteration.
	buckets := t.buckets
	for i := range buckets {
		chain := buckets[i]
		for j := range chain {
			if !yield(chain[j].Key, chain[j].Value) {
				return
			}
		}
	}
}

// Entries returns a point-in-time copy of every entry in the table in
// iteration order.
func (t *Table[K, V]) Entries() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, t.used)
	for _, chain := range t.buckets {
		entries = append(entries, chain...)
	}
	return entries
}

// Keys returns the keys of the table in iteration order.
func (t *Table[K, V]) Keys() []K {
	keys := make([]K, 0, t.used)
	for _, chain := range t.buckets {
		for j := range chain {
			keys = append(keys, chain[j].Key)
		}
	}
	return keys
}

// Len returns the number of entries in the table.
func (t *Table[K, V]) Len() int {
	return t.used
}

// Capacity returns the number of buckets in the table.
func (t *Table[K, V]) Capacity() int {
	return t.capacity
}

// LoadFactor returns the average chain length, Len() / Capacity().
func (t *Table[K, V]) LoadFactor() float64 {
	if t.capacity == 0 {
		return 0
	}
	return float64(t.used) / float64(t.capacity)
}

// index returns the bucket for key in a table of the given capacity. The
// capacity is explicit so that Resize can place entries into the new
// bucket array before it is installed.
func (t *Table[K, V]) index(key K, capacity int) int {
	t.checkUsable()
	return int(t.hash(key) % uint64(capacity))
}

// checkUsable panics if the table has no bucket array, i.e. it is a zero
// Table or has been closed.
func (t *Table[K, V]) checkUsable() {
	if t.buckets == nil {
		panic(errors.AssertionFailedf("hashtable: Table used before New or Init, or after Close"))
	}
}

// find returns the position of the first entry in chain with the given
// key, or -1.
func find[K ~string, V any](chain []Entry[K, V], key K) int {
	for j := range chain {
		if chain[j].Key == key {
			return j
		}
	}
	return -1
}

func (t *Table[K, V]) checkInvariants() {
	if invariants {
		if len(t.buckets) != t.capacity {
			panic(fmt.Sprintf("invariant failed: %d buckets, but capacity is %d\n%s",
				len(t.buckets), t.capacity, t.debugString()))
		}

		// Every entry must live in the bucket its key hashes to, and appear
		// only once.
		seen := make(map[K]int, t.used)
		var used int
		for i, chain := range t.buckets {
			for j := range chain {
				key := chain[j].Key
				if want := t.index(key, t.capacity); want != i {
					panic(fmt.Sprintf("invariant failed: bucket(%d)[%d]: %q belongs in bucket %d\n%s",
						i, j, key, want, t.debugString()))
				}
				if prev, ok := seen[key]; ok {
					panic(fmt.Sprintf("invariant failed: %q found in bucket %d and bucket %d\n%s",
						key, prev, i, t.debugString()))
				}
				seen[key] = i
				used++
			}
		}

		if used != t.used {
			panic(fmt.Sprintf("invariant failed: found %d entries, but used count is %d\n%s",
				used, t.used, t.debugString()))
		}
	}
}

func (t *Table[K, V]) debugString() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "capacity=%d  used=%d\n", t.capacity, t.used)
	for i, chain := range t.buckets {
		if len(chain) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "  %4d:", i)
		for j := range chain {
			fmt.Fprintf(&buf, " %q=%v", chain[j].Key, chain[j].Value)
		}
		buf.WriteString("\n")
	}
	return buf.String()
}
