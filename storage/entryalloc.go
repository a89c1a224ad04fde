/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package storage

import (
	"sync"

	"devt.de/krotik/common/errorutil"
)

/*
EntryAllocator is the monotonic bump allocator for the entry array (§4.3).
A single counter plus a mutex suffices: contention is brief (one bump per
adjacency list, not per element) and every caller subsequently writes only
its own disjoint range, so no lock is needed once the range is handed out.
*/
type EntryAllocator struct {
	mu         sync.Mutex
	lastEntry  uint64
	numEntries uint64
}

/*
NewEntryAllocator creates an allocator bounded by numEntries, the entry
array's capacity as computed by DeriveGeometry.
*/
func NewEntryAllocator(numEntries uint64) *EntryAllocator {
	return &EntryAllocator{numEntries: numEntries}
}

/*
Allocate reserves n contiguous entries and returns the offset of the first
one. It asserts the arena never exceeds its capacity, per invariant 4
(arena monotonicity): last_entry only ever grows, and always stays strictly
below num_entries.
*/
func (a *EntryAllocator) Allocate(n uint64) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	off := a.lastEntry
	a.lastEntry += n
	errorutil.AssertTrue(a.lastEntry < a.numEntries, "entry array exhausted: memstore_bytes too small for this load")

	return off
}

/*
Used returns the number of entries allocated so far.
*/
func (a *EntryAllocator) Used() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastEntry
}

/*
Capacity returns num_entries.
*/
func (a *EntryAllocator) Capacity() uint64 {
	return a.numEntries
}
