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

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/hashtable"
)

// Order selects the order in which Write reports words.
type Order int

const (
	// OrderTable reports words in table iteration order.
	OrderTable Order = iota
	// OrderCount reports the most frequent words first, breaking ties by
	// word.
	OrderCount
	// OrderWord reports words alphabetically.
	OrderWord
)

var orderNames = [...]string{
	OrderTable: "table",
	OrderCount: "count",
	OrderWord:  "word",
}

func (o Order) String() string {
	if o < 0 || int(o) >= len(orderNames) {
		return fmt.Sprintf("Order(%d)", int(o))
	}
	return orderNames[o]
}

// ParseOrder returns the Order with the given name.
func ParseOrder(s string) (Order, error) {
	for i, name := range orderNames {
		if name == s {
			return Order(i), nil
		}
	}
	return 0, errors.Newf("unknown order %q", s)
}

// Write writes one "<word>: <count>" line per entry of t to w.
func Write(w io.Writer, t *hashtable.Table[string, int], order Order) error {
	entries := t.Entries()
	switch order {
	case OrderTable:
	case OrderCount:
		slices.SortFunc(entries, func(a, b hashtable.Entry[string, int]) int {
			if c := cmp.Compare(b.Value, a.Value); c != 0 {
				return c
			}
			return cmp.Compare(a.Key, b.Key)
		})
	case OrderWord:
		slices.SortFunc(entries, func(a, b hashtable.Entry[string, int]) int {
			return cmp.Compare(a.Key, b.Key)
		})
	default:
		return errors.Newf("unknown order %s", order)
	}

	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s: %d\n", e.Key, e.Value); err != nil {
			return errors.Wrap(err, "write")
		}
	}
	return errors.Wrap(bw.Flush(), "write")
}
