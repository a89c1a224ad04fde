/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package cluster

import "testing"

func TestPartitionTableOwnership(t *testing.T) {
	pt, err := NewPartitionTable(2, 0)
	if err != nil {
		t.Error(err)
		return
	}

	if pt.Owner(2) != 0 {
		t.Error("vid 2 should be owned by server 0")
		return
	}
	if pt.Owner(3) != 1 {
		t.Error("vid 3 should be owned by server 1")
		return
	}
	if !pt.IsLocal(2) {
		t.Error("vid 2 should be local to server 0")
		return
	}
	if pt.IsLocal(3) {
		t.Error("vid 3 should not be local to server 0")
		return
	}
}

func TestPartitionTableBadArgs(t *testing.T) {
	if _, err := NewPartitionTable(0, 0); err == nil {
		t.Error("Expected an error for num_servers == 0")
		return
	}
	if _, err := NewPartitionTable(2, 2); err == nil {
		t.Error("Expected an error for self_sid >= num_servers")
		return
	}
}
