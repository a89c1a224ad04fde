/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package storage provides the single contiguous byte region GStore is built
on top of: a slot array (handed to hash.NewTable) followed by an entry
array (bump-allocated adjacency-list storage). The region is one []byte so
that, once registered with the transport, the exact same bytes can be
addressed either by local pointer arithmetic or by a remote one-sided read
at the same offsets.
*/
package storage

import (
	"encoding/binary"

	"devt.de/krotik/common/errorutil"
)

/*
EdgeSize is the fixed on-wire size of one entry-array element: a single
64-bit vertex, predicate or type id.
*/
const EdgeSize = 8

/*
Region is the contiguous byte buffer backing one GStore replica, split at
construction into a slot array of exactly numSlots*slotSize bytes and an
entry array occupying the remainder.
*/
type Region struct {
	buf        []byte
	slotBytes  []byte
	entryBytes []byte
	numEntries uint64
}

/*
Geometry is the derived sizing of a Region, computed once from the
configuration values of §4.1/§6 and reused by both the Region constructor
and the hash.Table it backs.
*/
type Geometry struct {
	NumSlots      uint64
	NumBuckets    uint64
	NumBucketsExt uint64
	NumEntries    uint64
	SlotBytes     uint64
	TotalBytes    uint64
}

/*
DeriveGeometry computes a Geometry from the raw configuration knobs:
numKeys is num_slots, memstoreBytes is the total region size M,
associativity and mainRatio are ASSOCIATIVITY and MAIN_RATIO. slotSize is
the caller's fixed on-wire slot size (hash.SlotSize, passed as a plain int
so this package does not need to import hash).
*/
func DeriveGeometry(numKeys uint64, memstoreBytes uint64, associativity int, mainRatio int, slotSize int) (Geometry, error) {
	if associativity <= 1 {
		return Geometry{}, NewManagerError(ErrBadConfig, "associativity must be greater than 1")
	}
	if mainRatio <= 0 || mainRatio > 100 {
		return Geometry{}, NewManagerError(ErrBadConfig, "main_ratio must be in (0, 100]")
	}

	totalBuckets := numKeys / uint64(associativity)
	numBuckets := totalBuckets * uint64(mainRatio) / 100
	numBucketsExt := totalBuckets - numBuckets

	if numBuckets < 1 {
		return Geometry{}, NewManagerError(ErrBadConfig, "num_keys/associativity/main_ratio too small: main region would have zero buckets")
	}

	numSlots := (numBuckets + numBucketsExt) * uint64(associativity)
	slotBytes := numSlots * uint64(slotSize)

	errorutil.AssertTrue(memstoreBytes > slotBytes, "memstore_bytes too small to hold the slot array alone")
	numEntries := (memstoreBytes - slotBytes) / EdgeSize

	return Geometry{
		NumSlots:      numSlots,
		NumBuckets:    numBuckets,
		NumBucketsExt: numBucketsExt,
		NumEntries:    numEntries,
		SlotBytes:     slotBytes,
		TotalBytes:    memstoreBytes,
	}, nil
}

/*
NewRegion allocates a zeroed Region of exactly g.TotalBytes, split into a
slot array of g.SlotBytes and an entry array of the remainder. The all-zero
initial state is itself meaningful: a zero slot is the empty-key sentinel
and a zero entry array is never read before it is written, so no separate
init pass is required.
*/
func NewRegion(g Geometry) *Region {
	buf := make([]byte, g.TotalBytes)
	return &Region{
		buf:        buf,
		slotBytes:  buf[:g.SlotBytes],
		entryBytes: buf[g.SlotBytes:],
		numEntries: g.NumEntries,
	}
}

/*
SlotBytes returns the sub-slice of the region backing the slot array, for
handing to hash.NewTable.
*/
func (r *Region) SlotBytes() []byte {
	return r.slotBytes
}

/*
Buf returns the entire region, the value a transport implementation
registers as base_address for this server.
*/
func (r *Region) Buf() []byte {
	return r.buf
}

/*
EntryByteOffset returns the absolute byte offset, within Buf(), of entry
index off — i.e. len(slot array) + off*EdgeSize, exactly the src_off a
remote adjacency-list read must use per §4.6 step (iii).
*/
func (r *Region) EntryByteOffset(off uint64) int64 {
	return int64(len(r.slotBytes)) + int64(off)*EdgeSize
}

/*
WriteEntries writes vids sequentially into the entry array starting at
entry index off. Callers own disjoint [off, off+len(vids)) ranges by
construction (they were handed off by EntryAllocator.Allocate), so this
needs no locking.
*/
func (r *Region) WriteEntries(off uint64, vids []uint64) {
	base := off * EdgeSize
	errorutil.AssertTrue(base+uint64(len(vids))*EdgeSize <= uint64(len(r.entryBytes)), "entry write out of bounds")

	for i, v := range vids {
		binary.LittleEndian.PutUint64(r.entryBytes[base+uint64(i)*EdgeSize:], v)
	}
}

/*
ReadEntries returns the n vids stored at entry index off, decoded into a
new slice with DecodeEntries, for local readers; remote readers instead
fetch the same bytes via the transport and decode them the same way.
*/
func (r *Region) ReadEntries(off uint64, n uint32) []uint64 {
	base := off * EdgeSize
	errorutil.AssertTrue(base+uint64(n)*EdgeSize <= uint64(len(r.entryBytes)), "entry read out of bounds")

	return DecodeEntries(r.entryBytes[base : base+uint64(n)*EdgeSize])
}

/*
DecodeEntries decodes a raw byte buffer (local entry bytes, or the bytes
returned by a remote adjacency-list read) into a slice of vids.
*/
func DecodeEntries(buf []byte) []uint64 {
	n := len(buf) / EdgeSize
	out := make([]uint64, n)
	for i := 0; i < n; i++ {
		out[i] = binary.LittleEndian.Uint64(buf[i*EdgeSize:])
	}
	return out
}
