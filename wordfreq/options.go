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

package wordfreq

// Option configures a Counter.
type Option interface {
	apply(c *Counter)
}

type capacityOption int

func (op capacityOption) apply(c *Counter) {
	c.capacity = int(op)
}

// WithCapacity sets the initial number of buckets of the Counter's table.
// It defaults to hashtable.DefaultCapacity.
func WithCapacity(n int) Option {
	return capacityOption(n)
}

type maxLoadFactorOption float64

func (op maxLoadFactorOption) apply(c *Counter) {
	c.maxLoadFactor = float64(op)
}

// WithMaxLoadFactor makes the Counter grow its table to 2*capacity+1
// buckets whenever adding a new word pushes the load factor above f. Zero,
// the default, never resizes.
func WithMaxLoadFactor(f float64) Option {
	return maxLoadFactorOption(f)
}
