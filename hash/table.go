/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package hash

import (
	"sync"

	"devt.de/krotik/common/errorutil"
)

/*
Table is the cluster-chained, set-associative hash table. It is backed by a
caller-supplied byte region (region) holding numBuckets+numBucketsExt
buckets of associativity slots each, laid out exactly as described in
EncodeSlot/DecodeSlot so the same bytes can later be served to a remote
reader unchanged.

A Table does not own its region; the storage package allocates it as part
of the larger slot-array/entry-array memory region and hands the slot-array
slice to NewTable.
*/
type Table struct {
	region        []byte
	associativity int
	numBuckets    uint64
	numBucketsExt uint64

	lastExt uint64
	extMu   sync.Mutex

	stripes []sync.Mutex
}

/*
NewTable wraps region as a Table with the given geometry. region's length
must be exactly (numBuckets+numBucketsExt)*associativity*SlotSize; numLocks
is the stripe count for concurrent insert (NUM_LOCKS in the design).
*/
func NewTable(region []byte, associativity int, numBuckets, numBucketsExt uint64, numLocks int) *Table {
	total := (numBuckets + numBucketsExt) * uint64(associativity) * SlotSize
	errorutil.AssertTrue(uint64(len(region)) == total, "slot region size does not match the declared bucket geometry")
	errorutil.AssertTrue(associativity >= 2, "associativity must leave room for at least one data slot and the chain slot")
	errorutil.AssertTrue(numLocks > 0, "numLocks must be positive")

	return &Table{
		region:        region,
		associativity: associativity,
		numBuckets:    numBuckets,
		numBucketsExt: numBucketsExt,
		stripes:       make([]sync.Mutex, numLocks),
	}
}

/*
NumBuckets returns the number of primary (main-region) buckets.
*/
func (t *Table) NumBuckets() uint64 {
	return t.numBuckets
}

/*
NumBucketsExt returns the number of overflow (indirect-header-region)
buckets.
*/
func (t *Table) NumBucketsExt() uint64 {
	return t.numBucketsExt
}

/*
Associativity returns the number of slots per bucket, chain slot included.
*/
func (t *Table) Associativity() int {
	return t.associativity
}

/*
OverflowUsed returns how many overflow buckets have been allocated so far.
Only meaningful to call once build has finished (or from a single loader
thread during build, as an approximate progress figure).
*/
func (t *Table) OverflowUsed() uint64 {
	t.extMu.Lock()
	defer t.extMu.Unlock()
	return t.lastExt
}

func (t *Table) slotOffset(bucket uint64, slot int) int {
	return int((bucket*uint64(t.associativity) + uint64(slot)) * SlotSize)
}

func (t *Table) readSlot(bucket uint64, slot int) (Key, PtrRecord) {
	off := t.slotOffset(bucket, slot)
	return DecodeSlot(t.region[off : off+SlotSize])
}

func (t *Table) writeSlot(bucket uint64, slot int, k Key, rec PtrRecord) {
	off := t.slotOffset(bucket, slot)
	EncodeSlot(t.region[off:off+SlotSize], k, rec)
}

/*
BucketOffset returns the byte offset of bucket's slot array within the
region, i.e. bucket*associativity*SlotSize. Used by the remote reader to
compute the src_off argument to transport.Reader.Read.
*/
func (t *Table) BucketOffset(bucket uint64) int64 {
	return int64(bucket) * int64(t.associativity) * SlotSize
}

/*
BucketByteLen is the number of bytes one bucket occupies: associativity *
SlotSize. Used by the remote reader to size its read.
*/
func (t *Table) BucketByteLen() int {
	return t.associativity * SlotSize
}

/*
SlotRegionByteLen is the total size in bytes of the slot array, i.e. the
byte offset at which the entry array begins within the shared region. The
remote reader adds ptr.Offset*EdgeSize to this to address an adjacency
list on a remote server.
*/
func (t *Table) SlotRegionByteLen() int64 {
	return int64(t.numBuckets+t.numBucketsExt) * int64(t.associativity) * SlotSize
}

/*
chainHop reads bucket's chain slot and reports whether the chain continues,
and if so the next bucket id.
*/
func (t *Table) chainHop(bucket uint64) (next uint64, ok bool) {
	ck, _ := t.readSlot(bucket, t.associativity-1)
	if ck.IsEmpty() {
		return 0, false
	}
	return ck.VID(), true
}

/*
ChainNext is the exported form of chainHop, for instrumentation that walks
chains without performing a lookup (e.g. gstore.ChainDepthHistogram).
*/
func (t *Table) ChainNext(bucket uint64) (next uint64, ok bool) {
	return t.chainHop(bucket)
}

/*
Lookup finds k in the table, walking the overflow chain from k's primary
bucket. It never blocks and never takes a lock: correct only once the
table is read-only, i.e. after build has finished on every loader thread.
*/
func (t *Table) Lookup(k Key) (PtrRecord, bool) {
	b := k.Hash() % t.numBuckets

	for hop := uint64(0); ; hop++ {
		errorutil.AssertTrue(hop <= t.numBucketsExt, "chain traversal exceeded num_buckets_ext+1 hops, table is corrupt")

		for i := 0; i < t.associativity-1; i++ {
			sk, rec := t.readSlot(b, i)
			if sk.IsEmpty() {
				continue
			}
			if sk == k {
				return rec, true
			}
		}

		next, ok := t.chainHop(b)
		if !ok {
			return PtrRecord{}, false
		}
		b = next
	}
}

/*
LookupBucketBytes decodes a bucket's entries from a raw byte buffer of at
least BucketByteLen() bytes, as fetched by a remote read, and returns the
matching record plus whether the chain continues past this bucket.
*/
func (t *Table) LookupBucketBytes(buf []byte, k Key) (rec PtrRecord, found bool, next uint64, hasNext bool) {
	entries := DecodeBucket(buf, t.associativity)
	for i := 0; i < t.associativity-1; i++ {
		if entries[i].Key == k {
			return entries[i].Rec, true, 0, false
		}
	}
	chain := entries[t.associativity-1].Key
	if chain.IsEmpty() {
		return PtrRecord{}, false, 0, false
	}
	return PtrRecord{}, false, chain.VID(), true
}

/*
allocOverflow atomically reserves the next overflow bucket, asserting it
stays within num_buckets_ext (the indirect-header-region's capacity).
*/
func (t *Table) allocOverflow() uint64 {
	t.extMu.Lock()
	defer t.extMu.Unlock()

	idx := t.lastExt
	errorutil.AssertTrue(idx < t.numBucketsExt, "indirect header region exhausted: num_buckets_ext too small for this load")
	t.lastExt++

	return t.numBuckets + idx
}

/*
Insert places k with the given pointer record into the table. It is safe to
call concurrently from many goroutines: the bucket stripe lock selected by
k's primary bucket serializes any insert whose chain walk passes through
that bucket, which is exactly the set of inserts that could race on k.
Insert aborts fatally if k is already present, per the "no duplicate keys"
invariant — this is a load-time bug, never a runtime condition to recover
from.
*/
func (t *Table) Insert(k Key, rec PtrRecord) {
	head := k.Hash() % t.numBuckets
	stripe := head % uint64(len(t.stripes))

	t.stripes[stripe].Lock()
	defer t.stripes[stripe].Unlock()

	b := head
	for {
		for i := 0; i < t.associativity-1; i++ {
			sk, _ := t.readSlot(b, i)
			if sk.IsEmpty() {
				t.writeSlot(b, i, k, rec)
				return
			}
			errorutil.AssertTrue(sk != k, "duplicate key insert")
		}

		if next, ok := t.chainHop(b); ok {
			b = next
			continue
		}

		overflow := t.allocOverflow()
		t.writeSlot(b, t.associativity-1, NewKey(overflow, In, PredicateID), PtrRecord{})
		b = overflow
	}
}

/*
ForEachSlot calls fn once per non-empty data slot across every bucket, main
and overflow alike — the full linear scan required by the index build phase
(§4.5). Because overflow buckets are physically stored in the indirect
region rather than reachable only through chain traversal, a straight scan
over every bucket id visits every slot exactly once without needing to
follow any chains. fn must not mutate the table; it runs concurrently from
ForEachRange across disjoint bucket ranges during index build.
*/
func (t *Table) ForEachSlot(fn func(bucket uint64, k Key, rec PtrRecord)) {
	t.ForEachRange(0, t.numBuckets+t.numBucketsExt, fn)
}

/*
ForEachRange is ForEachSlot restricted to bucket ids in [start, end), so
callers can partition the scan across goroutines.
*/
func (t *Table) ForEachRange(start, end uint64, fn func(bucket uint64, k Key, rec PtrRecord)) {
	for b := start; b < end; b++ {
		for i := 0; i < t.associativity-1; i++ {
			k, rec := t.readSlot(b, i)
			if !k.IsEmpty() {
				fn(b, k, rec)
			}
		}
	}
}
