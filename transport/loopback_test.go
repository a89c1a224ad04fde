/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package transport

import "testing"

func TestLoopbackReadWrite(t *testing.T) {
	lb := NewLoopback()

	region := make([]byte, 16)
	for i := range region {
		region[i] = byte(i)
	}
	lb.Register(1, region)

	dst := make([]byte, 4)
	if err := lb.Read(0, 1, dst, 4); err != nil {
		t.Error(err)
		return
	}

	for i, b := range dst {
		if b != byte(4+i) {
			t.Error("Unexpected byte at", i, ":", b)
			return
		}
	}
}

func TestLoopbackUnknownServer(t *testing.T) {
	lb := NewLoopback()
	dst := make([]byte, 4)

	if err := lb.Read(0, 99, dst, 0); err != ErrUnknownServer {
		t.Error("Expected ErrUnknownServer, got:", err)
		return
	}
}

func TestLoopbackShortRead(t *testing.T) {
	lb := NewLoopback()
	lb.Register(1, make([]byte, 4))

	dst := make([]byte, 8)
	if err := lb.Read(0, 1, dst, 0); err != ErrShortRead {
		t.Error("Expected ErrShortRead, got:", err)
		return
	}
}

func TestLoopbackScratchBufferGrows(t *testing.T) {
	lb := NewLoopback()

	b1 := lb.ScratchBuffer(0, 16)
	if len(b1) != 16 {
		t.Error("Unexpected scratch buffer length:", len(b1))
		return
	}

	b2 := lb.ScratchBuffer(0, 32)
	if len(b2) != 32 {
		t.Error("Scratch buffer did not grow:", len(b2))
		return
	}
}
