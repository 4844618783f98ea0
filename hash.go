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

import "github.com/cockroachdb/errors"

// Hash returns the bucket index of key in a table with the given number of
// buckets: the 64-bit DJB2 hash of key modulo capacity. The result is in
// [0, capacity) and depends only on its arguments, so it is stable across
// calls and processes. Hash panics if capacity is not positive.
func Hash(key string, capacity int) int {
	if capacity <= 0 {
		panic(errors.AssertionFailedf("invalid capacity %d", capacity))
	}
	return int(djb2(key) % uint64(capacity))
}

// djb2 is Daniel J. Bernstein's string hash: starting from 5381, each byte
// of the key is folded in as h*33 + c. The key is hashed byte by byte, so a
// non-ASCII rune contributes each byte of its UTF-8 encoding. Arithmetic
// wraps around at 64 bits.
func djb2[K ~string](key K) uint64 {
	h := uint64(5381)
	for i := 0; i < len(key); i++ {
		h = (h << 5) + h + uint64(key[i])
	}
	return h
}
