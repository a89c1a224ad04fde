/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package gstore

import (
	"bytes"
	"fmt"

	"devt.de/krotik/common/stringutil"
	"github.com/krotik/gstore/hash"
)

/*
Occupancy reports, separately for the main and indirect-header regions,
how many of the available data slots (associativity-1 per bucket; the
chain slot is never a data slot) hold a key. This reproduces the original
Wukong print_mem_usage()'s per-region occupancy report (the supplemented
Instrumentation feature).
*/
type Occupancy struct {
	MainUsed, MainCapacity int
	ExtUsed, ExtCapacity   int
}

/*
ChainDepth is one entry of ChainDepthHistogram: depth buckets is how many
primary buckets have exactly that many overflow hops in their chain.
*/
type ChainDepth struct {
	Depth   int
	Buckets int
}

/*
Occupancy scans the table and reports slot usage for both regions. It is
read-only and safe to call once build has finished.
*/
func (g *GStore) Occupancy() Occupancy {
	assoc := g.table.Associativity()
	dataSlotsPerBucket := assoc - 1

	o := Occupancy{
		MainCapacity: int(g.table.NumBuckets()) * dataSlotsPerBucket,
		ExtCapacity:  int(g.table.NumBucketsExt()) * dataSlotsPerBucket,
	}

	main := g.table.NumBuckets()
	g.table.ForEachRange(0, main, func(_ uint64, _ hash.Key, _ hash.PtrRecord) {
		o.MainUsed++
	})
	g.table.ForEachRange(main, main+g.table.NumBucketsExt(), func(_ uint64, _ hash.Key, _ hash.PtrRecord) {
		o.ExtUsed++
	})

	return o
}

/*
String renders an Occupancy the way the original's print_mem_usage() would
report it, pluralizing via stringutil.Plural the way the teacher's own
debug strings do.
*/
func (o Occupancy) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "main region: %d/%d slot%s used\n", o.MainUsed, o.MainCapacity, stringutil.Plural(o.MainCapacity))
	fmt.Fprintf(&buf, "indirect header region: %d/%d slot%s used\n", o.ExtUsed, o.ExtCapacity, stringutil.Plural(o.ExtCapacity))
	return buf.String()
}

/*
ChainDepthHistogram walks every primary bucket's overflow chain and
reports, for each depth observed, how many primary buckets have a chain of
that length (0 = no overflow). Depths are returned in ascending order.
*/
func (g *GStore) ChainDepthHistogram() []ChainDepth {
	counts := map[int]int{}

	for b := uint64(0); b < g.table.NumBuckets(); b++ {
		depth := 0
		cur := b
		for {
			next, ok := g.table.ChainNext(cur)
			if !ok {
				break
			}
			depth++
			cur = next
		}
		counts[depth]++
	}

	maxDepth := 0
	for d := range counts {
		if d > maxDepth {
			maxDepth = d
		}
	}

	hist := make([]ChainDepth, 0, maxDepth+1)
	for d := 0; d <= maxDepth; d++ {
		hist = append(hist, ChainDepth{Depth: d, Buckets: counts[d]})
	}

	return hist
}
