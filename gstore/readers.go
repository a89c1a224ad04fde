/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package gstore

import (
	"github.com/krotik/gstore/hash"
	"github.com/krotik/gstore/storage"
	"github.com/pkg/errors"

	"devt.de/krotik/common/errorutil"
)

/*
GetEdgesLocal looks up (vid, dir, pid) in this replica's own table and
returns a decoded copy of its adjacency list, or nil if the key is absent.
Never blocks (§4.6).
*/
func (g *GStore) GetEdgesLocal(vid uint64, dir hash.Direction, pid uint64) []uint64 {
	rec, found := g.table.Lookup(hash.NewKey(vid, dir, pid))
	if !found || rec.Size == 0 {
		return nil
	}
	return g.region.ReadEntries(rec.Offset, rec.Size)
}

/*
GetIndexEdgesLocal is get_edges_local(tid, 0, dir, pid) — there is no
remote equivalent; callers needing another server's index partition must
route the whole query there themselves (§4.6).
*/
func (g *GStore) GetIndexEdgesLocal(pid uint64, dir hash.Direction) []uint64 {
	return g.GetEdgesLocal(0, dir, pid)
}

/*
fetchAdjacency issues the second remote read of §4.6 step (iii): the
adjacency list itself, at the offset rec.Offset within the entry array of
server dstSID.
*/
func (g *GStore) fetchAdjacency(tid int, dstSID uint64, rec hash.PtrRecord) ([]uint64, error) {
	if rec.Size == 0 {
		return nil, nil
	}

	size := int(rec.Size) * storage.EdgeSize
	buf := g.transport.ScratchBuffer(tid, size)
	off := g.table.SlotRegionByteLen() + int64(rec.Offset)*storage.EdgeSize

	if err := g.transport.Read(tid, dstSID, buf, off); err != nil {
		return nil, errors.Wrapf(err, "gstore: remote adjacency read server=%d offset=%d", dstSID, off)
	}

	return storage.DecodeEntries(buf[:size]), nil
}

/*
GetEdgesRemote implements §4.6's remote path: a bucket-cache check, then
(on miss) a remote chain walk fetching one bucket at a time from server
dstSID, then a second remote read for the adjacency list itself.
*/
func (g *GStore) GetEdgesRemote(tid int, dstSID uint64, vid uint64, dir hash.Direction, pid uint64) ([]uint64, error) {
	k := hash.NewKey(vid, dir, pid)

	if rec, ok := g.cache.Lookup(k); ok {
		return g.fetchAdjacency(tid, dstSID, rec)
	}

	numBucketsExt := g.table.NumBucketsExt()
	bucketLen := g.table.BucketByteLen()
	b := k.Hash() % g.table.NumBuckets()

	for hop := uint64(0); ; hop++ {
		errorutil.AssertTrue(hop <= numBucketsExt, "remote chain traversal exceeded num_buckets_ext+1 hops")

		buf := g.transport.ScratchBuffer(tid, bucketLen)
		off := g.table.BucketOffset(b)

		if err := g.transport.Read(tid, dstSID, buf, off); err != nil {
			return nil, errors.Wrapf(err, "gstore: remote bucket read server=%d offset=%d", dstSID, off)
		}

		rec, found, next, hasNext := g.table.LookupBucketBytes(buf, k)
		if found {
			g.cache.Insert(k, rec)
			return g.fetchAdjacency(tid, dstSID, rec)
		}
		if !hasNext {
			return nil, nil
		}
		b = next
	}
}

/*
GetEdgesGlobal routes to the local table if vid is owned by this replica,
otherwise to GetEdgesRemote against vid's owning server (§4.6).
*/
func (g *GStore) GetEdgesGlobal(tid int, vid uint64, dir hash.Direction, pid uint64) ([]uint64, error) {
	if g.partition.IsLocal(vid) {
		return g.GetEdgesLocal(vid, dir, pid), nil
	}
	return g.GetEdgesRemote(tid, g.partition.Owner(vid), vid, dir, pid)
}
