/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package gstore

import "github.com/krotik/gstore/hash"

/*
typeTriplePrefixLen counts the leading run of ops whose object is a type
id. ops is sorted by (o, p, s), and type object ids are always smaller
than vertex ids, so these triples form a contiguous prefix (§4.4 step 1).
*/
func typeTriplePrefixLen(ops []Triple) int {
	n := 0
	for n < len(ops) && hash.IsTypeID(ops[n].O) {
		n++
	}
	return n
}

/*
insertRuns walks triples (already sorted so that every occurrence of a
given (id, pid) pair is contiguous), inserting one key per maximal run and
writing the run's values into the entry array starting at cursor. It
returns the cursor advanced past everything it wrote. Repeated values
within one run (e.g. a duplicate triple) are written verbatim — invariant
1's "no duplicate keys" is about hash-table keys, not about adjacency-list
elements.
*/
func (g *GStore) insertRuns(triples []Triple, cursor uint64, dir hash.Direction, idOf func(Triple) (id, pid uint64), valOf func(Triple) uint64) uint64 {
	i := 0
	for i < len(triples) {
		id, pid := idOf(triples[i])

		j := i
		var vals []uint64
		for j < len(triples) {
			id2, pid2 := idOf(triples[j])
			if id2 != id || pid2 != pid {
				break
			}
			vals = append(vals, valOf(triples[j]))
			j++
		}

		g.table.Insert(hash.NewKey(id, dir, pid), hash.PtrRecord{Size: uint32(len(vals)), Offset: cursor})
		g.region.WriteEntries(cursor, vals)
		cursor += uint64(len(vals))

		i = j
	}
	return cursor
}

/*
InsertNormal is the bulk loader's normal phase (§4.4). spo must be sorted
by (s, p, o), ops by (o, p, s); both hold only triples this replica owns.
It groups spo into (s, OUT, p) keys and the non-type-prefix tail of ops
into (o, IN, p) keys, over one contiguous entry-array range reserved up
front.
*/
func (g *GStore) InsertNormal(spo, ops []Triple) {
	skip := typeTriplePrefixLen(ops)
	normalOps := ops[skip:]

	cursor := g.alloc.Allocate(uint64(len(spo) + len(normalOps)))

	cursor = g.insertRuns(spo, cursor, hash.Out,
		func(t Triple) (uint64, uint64) { return t.S, t.P },
		func(t Triple) uint64 { return t.O })

	g.insertRuns(normalOps, cursor, hash.In,
		func(t Triple) (uint64, uint64) { return t.O, t.P },
		func(t Triple) uint64 { return t.S })
}

/*
vertexPredicateList is one vertex's deduplicated, direction-specific
predicate list, as gathered by groupDistinctPredicates.
*/
type vertexPredicateList struct {
	Vertex uint64
	Preds  []uint64
}

/*
groupDistinctPredicates walks triples (sorted so a vertex's triples are
contiguous and, within them, predicates are non-decreasing) and, for each
vertex block, collapses consecutive equal predicate ids into one entry.
Because the input is sorted, "consecutive equal" is exactly "distinct" —
no separate dedup set is needed.
*/
func groupDistinctPredicates(triples []Triple, idOf func(Triple) (vertex, pid uint64)) []vertexPredicateList {
	var out []vertexPredicateList
	var cur vertexPredicateList
	open := false

	for _, t := range triples {
		v, p := idOf(t)

		if !open || cur.Vertex != v {
			if open {
				out = append(out, cur)
			}
			cur = vertexPredicateList{Vertex: v}
			open = true
		}

		if len(cur.Preds) == 0 || cur.Preds[len(cur.Preds)-1] != p {
			cur.Preds = append(cur.Preds, p)
		}
	}
	if open {
		out = append(out, cur)
	}

	return out
}

func (g *GStore) materializePredicateLists(lists []vertexPredicateList, dir hash.Direction) {
	var total uint64
	for _, l := range lists {
		total += uint64(len(l.Preds))
	}
	if total == 0 {
		return
	}

	cursor := g.alloc.Allocate(total)
	for _, l := range lists {
		g.table.Insert(hash.NewKey(l.Vertex, dir, hash.PredicateID), hash.PtrRecord{Size: uint32(len(l.Preds)), Offset: cursor})
		g.region.WriteEntries(cursor, l.Preds)
		cursor += uint64(len(l.Preds))
	}
}

/*
InsertPredicateLists is versatile mode's second pass (§4.4 step 5,
kept as its own function per the original's split between insert_normal
and a dedicated predicate-list pass): for every vertex, materialize
(v, OUT, PREDICATE_ID) and (v, IN, PREDICATE_ID) keys whose values are the
deduplicated predicates incident in that direction. A loader that doesn't
need versatile mode can skip calling this entirely; it does not run as
part of InsertNormal.
*/
func (g *GStore) InsertPredicateLists(spo, ops []Triple) {
	skip := typeTriplePrefixLen(ops)
	normalOps := ops[skip:]

	outLists := groupDistinctPredicates(spo, func(t Triple) (uint64, uint64) { return t.S, t.P })
	inLists := groupDistinctPredicates(normalOps, func(t Triple) (uint64, uint64) { return t.O, t.P })

	g.materializePredicateLists(outLists, hash.Out)
	g.materializePredicateLists(inLists, hash.In)
}
