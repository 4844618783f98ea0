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

package hashtable

// option provide an interface to do work on Table while it is being created.
type option[K ~string, V any] interface {
	apply(t *Table[K, V])
}

type hashOption[K ~string, V any] struct {
	hash func(key K) uint64
}

func (op hashOption[K, V]) apply(t *Table[K, V]) {
	t.hash = op.hash
}

// WithHash is an option to specify the hash function to use for a
// Table[K,V] in place of DJB2. The table reduces the returned value modulo
// its capacity, so hash may return any uint64. The function must be
// deterministic: a key that hashes differently between calls cannot be
// found again.
func WithHash[K ~string, V any](hash func(key K) uint64) option[K, V] {
	return hashOption[K, V]{hash}
}

// Allocator specifies an interface for allocating and releasing the bucket
// arrays used by a Table. The default allocator utilizes Go's builtin
// make() and allows the GC to reclaim memory.
//
// If the allocator is manually managing memory and requires that bucket
// arrays be freed then Table.Close must be called in order to ensure
// FreeBuckets is called for the final array.
type Allocator[K ~string, V any] interface {
	// AllocBuckets should return a slice equivalent to
	// make([][]Entry[K,V], n): n buckets, every one of them empty.
	AllocBuckets(n int) [][]Entry[K, V]

	// FreeBuckets can optional release the memory associated with the
	// supplied slice that is guaranteed to have been allocated by
	// AllocBuckets. An iteration in progress may still be reading v, so
	// the memory must not be handed out again before that iteration ends.
	FreeBuckets(v [][]Entry[K, V])
}

type defaultAllocator[K ~string, V any] struct{}

func (defaultAllocator[K, V]) AllocBuckets(n int) [][]Entry[K, V] {
	return make([][]Entry[K, V], n)
}

func (defaultAllocator[K, V]) FreeBuckets(v [][]Entry[K, V]) {
}

type allocatorOption[K ~string, V any] struct {
	allocator Allocator[K, V]
}

func (op allocatorOption[K, V]) apply(t *Table[K, V]) {
	t.allocator = op.allocator
}

// WithAllocator is an option for specify the Allocator to use for a
// Table[K,V].
func WithAllocator[K ~string, V any](allocator Allocator[K, V]) option[K, V] {
	return allocatorOption[K, V]{allocator}
}
