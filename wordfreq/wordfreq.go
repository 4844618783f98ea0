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

// Package wordfreq tallies how often each word occurs in a text using a
// hashtable.Table.
//
// Words are the whitespace-separated tokens of each line, trimmed and
// lower-cased. The table is never resized automatically; a Counter
// configured WithMaxLoadFactor calls Resize itself when its table gets too
// crowded.
package wordfreq

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/hashtable"
)

// MaxLineSize is the longest line, in bytes, a Counter accepts.
const MaxLineSize = 1 << 20

// Counter accumulates word frequencies.
type Counter struct {
	table         *hashtable.Table[string, int]
	capacity      int
	maxLoadFactor float64
}

// NewCounter returns an empty Counter.
func NewCounter(options ...Option) (*Counter, error) {
	c := &Counter{capacity: hashtable.DefaultCapacity}
	for _, op := range options {
		op.apply(c)
	}
	if c.maxLoadFactor < 0 {
		return nil, errors.Newf("invalid max load factor %g", c.maxLoadFactor)
	}

	t, err := hashtable.New[string, int](c.capacity)
	if err != nil {
		return nil, err
	}
	c.table = t
	return c, nil
}

// Table returns the table holding the counts. It remains owned by the
// Counter: further calls to Add or Scan update it.
func (c *Counter) Table() *hashtable.Table[string, int] {
	return c.table
}

// Add normalizes word and increments its count. Words that normalize to
// the empty string are ignored.
func (c *Counter) Add(word string) error {
	word = normalize(word)
	if word == "" {
		return nil
	}

	n, ok := c.table.Get(word)
	added := !ok
	c.table.Put(word, n+1)

	if added && c.maxLoadFactor > 0 && c.table.LoadFactor() > c.maxLoadFactor {
		return c.table.Resize(2*c.table.Capacity() + 1)
	}
	return nil
}

// AddLine adds every word in line.
func (c *Counter) AddLine(line string) error {
	for _, word := range strings.Fields(line) {
		if err := c.Add(word); err != nil {
			return err
		}
	}
	return nil
}

// Scan adds every word read from r. It returns the first read error.
func (c *Counter) Scan(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	for scanner.Scan() {
		if err := c.AddLine(scanner.Text()); err != nil {
			return err
		}
	}
	return errors.Wrap(scanner.Err(), "read")
}

// Count returns the frequency of every word read from r. No table is
// returned if r cannot be read to the end.
func Count(r io.Reader, options ...Option) (*hashtable.Table[string, int], error) {
	c, err := NewCounter(options...)
	if err != nil {
		return nil, err
	}
	if err := c.Scan(r); err != nil {
		return nil, err
	}
	return c.Table(), nil
}

// CountFile returns the frequency of every word in the named file.
func CountFile(path string, options ...Option) (*hashtable.Table[string, int], error) {
	f, err := os.Open(path)
	if err != nil {
		// The *fs.PathError already names the operation and the path.
		return nil, err
	}
	defer func() { _ = f.Close() }()

	t, err := Count(f, options...)
	if err != nil {
		return nil, errors.Wrapf(err, "count %s", path)
	}
	return t, nil
}

func normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
