/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package hash

import "encoding/binary"

/*
SlotSize is the fixed on-wire size in bytes of one slot: an 8-byte key, a
4-byte size and an 8-byte offset. A slot's byte layout is identical whether
read by pointer arithmetic in this process or parsed out of bytes fetched
by a remote read, which is the entire point of fixing it explicitly instead
of relying on Go's in-memory struct layout.
*/
const SlotSize = 20

/*
EncodeSlot writes the little-endian encoding of (k, rec) into dst[:SlotSize].
*/
func EncodeSlot(dst []byte, k Key, rec PtrRecord) {
	binary.LittleEndian.PutUint64(dst[0:8], uint64(k))
	binary.LittleEndian.PutUint32(dst[8:12], rec.Size)
	binary.LittleEndian.PutUint64(dst[12:20], rec.Offset)
}

/*
DecodeSlot parses a (Key, PtrRecord) pair out of src[:SlotSize].
*/
func DecodeSlot(src []byte) (Key, PtrRecord) {
	k := Key(binary.LittleEndian.Uint64(src[0:8]))
	size := binary.LittleEndian.Uint32(src[8:12])
	offset := binary.LittleEndian.Uint64(src[12:20])
	return k, PtrRecord{Size: size, Offset: offset}
}

/*
Entry is a decoded (key, record) pair, used where callers want slots handed
back as values rather than read one at a time out of raw bytes — the
remote-bucket decode path (DecodeBucket, via Table.LookupBucketBytes) uses
this.
*/
type Entry struct {
	Key Key
	Rec PtrRecord
}

/*
DecodeBucket parses associativity slots out of buf, which must be at least
associativity*SlotSize bytes (as returned by a single remote bucket read).
*/
func DecodeBucket(buf []byte, associativity int) []Entry {
	entries := make([]Entry, associativity)
	for i := 0; i < associativity; i++ {
		off := i * SlotSize
		entries[i].Key, entries[i].Rec = DecodeSlot(buf[off : off+SlotSize])
	}
	return entries
}
