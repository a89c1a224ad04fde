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
	"testing"
)

func TestBucketCacheDisabledAlwaysMisses(t *testing.T) {
	c := NewBucketCache(16, false)
	k := NewKey(10, Out, 5)

	c.Insert(k, PtrRecord{Size: 1, Offset: 7})

	if _, ok := c.Lookup(k); ok {
		t.Error("A disabled cache must never report a hit")
		return
	}
}

func TestBucketCacheRoundTrip(t *testing.T) {
	c := NewBucketCache(16, true)
	k := NewKey(10, Out, 5)
	rec := PtrRecord{Size: 3, Offset: 99}

	if _, ok := c.Lookup(k); ok {
		t.Error("Expected a miss before any insert")
		return
	}

	c.Insert(k, rec)

	got, ok := c.Lookup(k)
	if !ok {
		t.Error("Expected a hit after insert")
		return
	}
	if got != rec {
		t.Error("Unexpected cached record:", got)
		return
	}
}

func TestBucketCacheEvictsOnCollision(t *testing.T) {
	// A single-slot cache forces every key into the same slot, so the
	// second insert must silently evict the first.
	c := NewBucketCache(1, true)

	k1 := NewKey(10, Out, 5)
	k2 := NewKey(20, Out, 5)

	c.Insert(k1, PtrRecord{Size: 1, Offset: 1})
	c.Insert(k2, PtrRecord{Size: 2, Offset: 2})

	if _, ok := c.Lookup(k1); ok {
		t.Error("Expected k1 to have been evicted by the colliding insert")
		return
	}

	got, ok := c.Lookup(k2)
	if !ok || got.Offset != 2 {
		t.Error("Expected k2 to be the cached record:", got, ok)
		return
	}
}

func TestBucketCacheMinimumSize(t *testing.T) {
	c := NewBucketCache(0, true)
	k := NewKey(1, In, 1)

	c.Insert(k, PtrRecord{Size: 1, Offset: 1})

	if _, ok := c.Lookup(k); !ok {
		t.Error("A zero-sized request should still allocate one usable slot")
		return
	}
}

func TestBucketCacheConcurrentAccess(t *testing.T) {
	c := NewBucketCache(8, true)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			k := NewKey(uint64(i+1), Out, uint64(i%4))
			c.Insert(k, PtrRecord{Size: uint32(i), Offset: uint64(i)})
			c.Lookup(k)
		}()
	}
	wg.Wait()
}
