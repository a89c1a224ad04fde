/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package gstore

import (
	"sync"

	"devt.de/krotik/common/errorutil"
	"github.com/krotik/gstore/hash"
	"github.com/puzpuzpuz/xsync/v3"
)

/*
indexAccumulators holds the TBB-style concurrent containers the parallel
scan appends into (§4.5, §9 "concurrent maps during index build"). They
are owned entirely by the index phase and discarded once materialized.
*/
type indexAccumulators struct {
	pidxOut *xsync.MapOf[uint64, []uint64] // pid -> subjects using pid, for key (0, OUT, pid)
	pidxIn  *xsync.MapOf[uint64, []uint64] // pid -> objects using pid, for key (0, IN, pid)
	tidx    *xsync.MapOf[uint64, []uint64] // type -> members, for key (0, IN, type)

	vertexSet    *xsync.MapOf[uint64, struct{}] // versatile only
	predicateSet *xsync.MapOf[uint64, struct{}] // versatile only
}

func newIndexAccumulators() *indexAccumulators {
	return &indexAccumulators{
		pidxOut:      xsync.NewMapOf[uint64, []uint64](),
		pidxIn:       xsync.NewMapOf[uint64, []uint64](),
		tidx:         xsync.NewMapOf[uint64, []uint64](),
		vertexSet:    xsync.NewMapOf[uint64, struct{}](),
		predicateSet: xsync.NewMapOf[uint64, struct{}](),
	}
}

func appendUnderKey(m *xsync.MapOf[uint64, []uint64], key, val uint64) {
	m.Compute(key, func(old []uint64, loaded bool) ([]uint64, bool) {
		return append(old, val), false
	})
}

/*
scanSlot classifies one normal-phase slot and feeds it into the
accumulators, implementing §4.5 steps 2-4. It is called concurrently from
many goroutines scanning disjoint bucket ranges; every accumulator it
touches is safe for concurrent append.

The (0, OUT, p)/(0, IN, p) assignment below follows testable property 6
("for every normal key (v, OUT, p), the index key (0, OUT, p) exists and
contains v; symmetrically for IN") rather than a literal OUT/IN swap that
would otherwise appear plausible from the prose alone — see DESIGN.md for
the reasoning.
*/
func (g *GStore) scanSlot(acc *indexAccumulators, k hash.Key, rec hash.PtrRecord) {
	vid := k.VID()
	dir := k.Dir()
	pid := k.PID()

	errorutil.AssertTrue(!(dir == hash.In && pid == hash.TypeID), "unexpected (IN, TYPE_ID) key encountered during index scan")

	if pid == hash.PredicateID {
		if !g.cfg.Versatile {
			return
		}
		acc.vertexSet.Store(vid, struct{}{})
		for _, v := range g.region.ReadEntries(rec.Offset, rec.Size) {
			acc.predicateSet.Store(v, struct{}{})
		}
		return
	}

	if dir == hash.Out && pid == hash.TypeID {
		for _, t := range g.region.ReadEntries(rec.Offset, rec.Size) {
			appendUnderKey(acc.tidx, t, vid)
		}
		return
	}

	if dir == hash.Out {
		appendUnderKey(acc.pidxOut, pid, vid)
	} else {
		appendUnderKey(acc.pidxIn, pid, vid)
	}
}

/*
indexWorkers bounds how many goroutines scan the bucket space in parallel
during InsertIndex. A fixed, modest bound keeps this independent of
runtime.NumCPU() tuning decisions that belong to the embedding application.
*/
const indexWorkers = 8

/*
InsertIndex is the bulk loader's index phase (§4.5): after InsertNormal
(and, if versatile, InsertPredicateLists) has finished on every loader
thread, each server independently scans its own table and synthesizes the
predicate and type reverse indexes as ordinary key/value pairs. It must
not run concurrently with any InsertNormal/InsertPredicateLists call, and
no reader must run until it returns.
*/
func (g *GStore) InsertIndex() {
	acc := newIndexAccumulators()

	ranges := hash.Partitions(g.table.NumBuckets(), g.table.NumBucketsExt(), indexWorkers)

	var wg sync.WaitGroup
	for _, r := range ranges {
		r := r
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.table.ForEachRange(r.Start, r.End, func(_ uint64, k hash.Key, rec hash.PtrRecord) {
				g.scanSlot(acc, k, rec)
			})
		}()
	}
	wg.Wait()

	LogInfo("gstore: index scan complete, materializing reverse indexes")

	var mwg sync.WaitGroup
	mwg.Add(3)
	go func() { defer mwg.Done(); g.materializeListMap(acc.tidx, hash.In) }()
	go func() { defer mwg.Done(); g.materializeListMap(acc.pidxIn, hash.In) }()
	go func() { defer mwg.Done(); g.materializeListMap(acc.pidxOut, hash.Out) }()
	mwg.Wait()

	if g.cfg.Versatile {
		g.materializeSet(acc.vertexSet, hash.In, hash.TypeID)
		g.materializeSet(acc.predicateSet, hash.Out, hash.TypeID)
	}
}

/*
materializeListMap writes every (id -> list) pair in m as key (0, dir, id),
per §4.5's final materialization step. tidx_map materializes with dir=IN
regardless of id being a type; pidx_in/pidx_out materialize with their own
fixed direction — callers pass the right one.
*/
func (g *GStore) materializeListMap(m *xsync.MapOf[uint64, []uint64], dir hash.Direction) {
	m.Range(func(id uint64, vids []uint64) bool {
		cursor := g.alloc.Allocate(uint64(len(vids)))
		g.table.Insert(hash.NewKey(0, dir, id), hash.PtrRecord{Size: uint32(len(vids)), Offset: cursor})
		g.region.WriteEntries(cursor, vids)
		return true
	})
}

/*
materializeSet writes the keys of set as the single key (0, dir, pid),
used for the versatile-only (0, IN, TYPE_ID)/(0, OUT, TYPE_ID) "all
vertices"/"all predicates" entries.
*/
func (g *GStore) materializeSet(set *xsync.MapOf[uint64, struct{}], dir hash.Direction, pid uint64) {
	var vals []uint64
	set.Range(func(id uint64, _ struct{}) bool {
		vals = append(vals, id)
		return true
	})
	if len(vals) == 0 {
		return
	}

	cursor := g.alloc.Allocate(uint64(len(vals)))
	g.table.Insert(hash.NewKey(0, dir, pid), hash.PtrRecord{Size: uint32(len(vals)), Offset: cursor})
	g.region.WriteEntries(cursor, vals)
}
