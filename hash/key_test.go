/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package hash

import "testing"

func TestKeyRoundTrip(t *testing.T) {
	k := NewKey(123456789, Out, 42)

	if k.VID() != 123456789 {
		t.Error("Unexpected vid:", k.VID())
		return
	}
	if k.Dir() != Out {
		t.Error("Unexpected dir:", k.Dir())
		return
	}
	if k.PID() != 42 {
		t.Error("Unexpected pid:", k.PID())
		return
	}
	if k.IsEmpty() {
		t.Error("Key should not be empty")
		return
	}
	if k.IsIndexKey() {
		t.Error("Key should not be an index key")
		return
	}
}

func TestKeyIndexKey(t *testing.T) {
	k := NewKey(0, In, PredicateID)

	if !k.IsIndexKey() {
		t.Error("Key with vid 0 should be an index key")
		return
	}
}

func TestKeyEmpty(t *testing.T) {
	if !EmptyKey.IsEmpty() {
		t.Error("EmptyKey should be empty")
		return
	}

	k := NewKey(0, In, PredicateID)
	if k != EmptyKey {
		t.Error("(0, In, PredicateID) packs to the all-zero sentinel")
		return
	}
}

func TestKeyHashDeterministic(t *testing.T) {
	k := NewKey(10, Out, 5)

	h1 := k.Hash()
	h2 := k.Hash()

	if h1 != h2 {
		t.Error("Hash is not deterministic")
		return
	}

	other := NewKey(11, Out, 5)
	if other.Hash() == h1 {
		t.Error("Distinct keys should overwhelmingly hash differently")
		return
	}
}

func TestIsTypeID(t *testing.T) {
	if !IsTypeID(0) {
		t.Error("0 should be a type/predicate id")
		return
	}
	if IsTypeID(TPIDMax) {
		t.Error("TPIDMax should not itself be a type/predicate id")
		return
	}
	if !IsTypeID(TPIDMax - 1) {
		t.Error("TPIDMax-1 should be a type/predicate id")
		return
	}
}
