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

// Command wordfreq prints how often each word occurs in a text file.
//
// Usage:
//
//	wordfreq [-capacity n] [-max-load f] [-order table|count|word] file
//
// Each word is printed with its count, one "<word>: <count>" pair per
// line.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cockroachdb/hashtable"
	"github.com/cockroachdb/hashtable/wordfreq"
)

var (
	capacity = flag.Int("capacity", hashtable.DefaultCapacity, "initial number of hash table buckets")
	maxLoad  = flag.Float64("max-load", 0, "grow the table when the average chain length exceeds this (0 never grows)")
	order    = flag.String("order", "table", "output order: table, count or word")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("wordfreq: ")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: wordfreq [flags] file\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(os.Stdout, flag.Arg(0), *capacity, *maxLoad, *order); err != nil {
		log.Fatal(err)
	}
}

func run(w io.Writer, path string, capacity int, maxLoad float64, orderName string) error {
	o, err := wordfreq.ParseOrder(orderName)
	if err != nil {
		return err
	}
	t, err := wordfreq.CountFile(path,
		wordfreq.WithCapacity(capacity),
		wordfreq.WithMaxLoadFactor(maxLoad))
	if err != nil {
		return err
	}
	return wordfreq.Write(w, t, o)
}
