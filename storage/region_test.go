/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package storage

import "testing"

func TestDeriveGeometry(t *testing.T) {
	g, err := DeriveGeometry(32, 1<<20, 8, 80, 20)
	if err != nil {
		t.Error(err)
		return
	}

	if g.NumBuckets == 0 {
		t.Error("Expected at least one main bucket")
		return
	}
	if g.NumBucketsExt == 0 {
		t.Error("Expected at least one overflow bucket at main_ratio < 100")
		return
	}
	if g.SlotBytes != g.NumSlots*20 {
		t.Error("Unexpected slot byte size:", g.SlotBytes)
		return
	}
	if g.NumEntries == 0 {
		t.Error("Expected room for at least one entry")
		return
	}
}

func TestDeriveGeometryBadAssociativity(t *testing.T) {
	if _, err := DeriveGeometry(32, 1<<20, 1, 80, 20); err == nil {
		t.Error("Expected an error for associativity <= 1")
		return
	}
}

func TestDeriveGeometryBadMainRatio(t *testing.T) {
	if _, err := DeriveGeometry(32, 1<<20, 8, 0, 20); err == nil {
		t.Error("Expected an error for main_ratio out of range")
		return
	}
	if _, err := DeriveGeometry(32, 1<<20, 8, 101, 20); err == nil {
		t.Error("Expected an error for main_ratio out of range")
		return
	}
}

func TestRegionEntryRoundTrip(t *testing.T) {
	g, err := DeriveGeometry(32, 4096, 8, 80, 20)
	if err != nil {
		t.Error(err)
		return
	}

	r := NewRegion(g)

	off := uint64(0)
	vids := []uint64{1, 2, 3, 4}
	r.WriteEntries(off, vids)

	got := r.ReadEntries(off, uint32(len(vids)))
	if len(got) != len(vids) {
		t.Error("Unexpected entry count:", len(got))
		return
	}
	for i, v := range vids {
		if got[i] != v {
			t.Error("Unexpected entry at", i, ":", got[i])
			return
		}
	}
}

func TestRegionEntryByteOffset(t *testing.T) {
	g, err := DeriveGeometry(32, 4096, 8, 80, 20)
	if err != nil {
		t.Error(err)
		return
	}

	r := NewRegion(g)

	if got := r.EntryByteOffset(0); got != int64(g.SlotBytes) {
		t.Error("Unexpected entry byte offset:", got)
		return
	}
	if got := r.EntryByteOffset(3); got != int64(g.SlotBytes)+3*EdgeSize {
		t.Error("Unexpected entry byte offset:", got)
		return
	}
}
