/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package hash implements the cluster-chained, set-associative open-addressed
hash table which backs GStore. The table is a single contiguous slot array
so that a bucket's bytes can be read either by pointer arithmetic (local) or
by a single remote read (see the transport package) with an identical
in-memory layout on both ends.
*/
package hash

import (
	"devt.de/krotik/common/bitutil"
	"devt.de/krotik/common/errorutil"
)

/*
Direction of an edge relative to the vertex named in a Key.
*/
type Direction byte

/*
Edge directions. OUT points from subject to object, IN from object to
subject.
*/
const (
	In  Direction = 0
	Out Direction = 1
)

/*
Reserved meta-predicate ids.
*/
const (
	PredicateID uint64 = 0
	TypeID      uint64 = 1
)

/*
Bit layout of a packed Key: 1 bit direction, 24 bits predicate/type id,
39 bits vertex id. TPIDMax is the exclusive upper bound of the
predicate/type id range and therefore also the threshold which separates
type/predicate ids from vertex ids (IsTypeID).
*/
const (
	vidBits  = 39
	pidBits  = 24
	vidMask  = uint64(1)<<vidBits - 1
	pidMask  = uint64(1)<<pidBits - 1
	dirShift = vidBits + pidBits
	pidShift = vidBits

	/*
		TPIDMax is the exclusive upper bound for type and predicate ids.
	*/
	TPIDMax = uint64(1) << pidBits
)

/*
IsTypeID returns whether x lies in the reserved type/predicate id range.
*/
func IsTypeID(x uint64) bool {
	return x < TPIDMax
}

/*
Key is a packed (vid, dir, pid) triple. The zero Key is the reserved empty
slot sentinel. (0, In, PredicateID) packs to that same zero value; NewKey
does not reject it, so a key with those three fields reads as an unused
slot.
*/
type Key uint64

/*
NewKey packs a (vid, dir, pid) triple into a Key.
*/
func NewKey(vid uint64, dir Direction, pid uint64) Key {
	errorutil.AssertTrue(vid <= vidMask, "vid exceeds the addressable vertex id range")
	errorutil.AssertTrue(pid <= pidMask, "pid exceeds the addressable predicate/type id range")

	return Key(uint64(dir)<<dirShift | pid<<pidShift | vid)
}

/*
EmptyKey is the reserved sentinel value for an unused slot.
*/
const EmptyKey = Key(0)

/*
IsEmpty returns whether this is the empty-slot sentinel.
*/
func (k Key) IsEmpty() bool {
	return k == EmptyKey
}

/*
VID returns the vertex id component.
*/
func (k Key) VID() uint64 {
	return uint64(k) & vidMask
}

/*
Dir returns the direction component.
*/
func (k Key) Dir() Direction {
	return Direction(uint64(k) >> dirShift)
}

/*
PID returns the predicate/type id component.
*/
func (k Key) PID() uint64 {
	return (uint64(k) >> pidShift) & pidMask
}

/*
IsIndexKey returns whether this key addresses an index entry rather than a
normal per-vertex entry (vid == 0 identifies the synthetic "vertex" that
index lists hang off).
*/
func (k Key) IsIndexKey() bool {
	return k.VID() == 0
}

/*
bytes returns the 8-byte little-endian encoding of the key plus one pad
byte. The pad byte works around MurMurHashData's boundary check, which
rejects a buffer whose length equals exactly the hashed region when that
region's size is a multiple of 4.
*/
func (k Key) bytes() [9]byte {
	v := uint64(k)
	var b [9]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b
}

/*
Hash returns the deterministic 64-bit hash of this key, built from two
32-bit MurmurHash3 passes over the packed key with different seeds. The
empty key is not special-cased: it is hashed like any other key.
*/
func (k Key) Hash() uint64 {
	buf := k.bytes()

	h1, err := bitutil.MurMurHashData(buf[:], 0, 8, 0)
	errorutil.AssertOk(err)

	h2, err := bitutil.MurMurHashData(buf[:], 0, 8, 0x9747b28c)
	errorutil.AssertOk(err)

	return uint64(h1) | uint64(h2)<<32
}
