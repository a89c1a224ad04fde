/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package transport specifies GStore's one dependency on the outside world:
a one-sided remote-memory reader (§6 "To the transport"). The real RDMA
transport that registers a server's memory region and serves single-sided
reads against it is an external collaborator and out of scope here; this
package only carries the interface GStore's remote reader is written
against, plus an in-process Loopback implementation used by tests and by
single-server deployments where "remote" and "local" happen to coincide.
*/
package transport

import "github.com/pkg/errors"

/*
Reader is the capability GStore's remote reader consumes: a blocking,
single-sided read of len(dst) bytes from server dstSID at byte offset
srcOff, into dst. tid identifies the calling thread's scratch buffer slot;
it is opaque to the transport beyond that.
*/
type Reader interface {
	Read(tid int, dstSID uint64, dst []byte, srcOff int64) error

	/*
		ScratchBuffer returns a thread-local buffer of at least size bytes for
		tid, reused across calls rather than reallocated — "large enough for
		one bucket plus one adjacency-list read" per §6. Its contents are
		undefined until the next Read into it; callers own exactly one
		outstanding buffer per tid.
	*/
	ScratchBuffer(tid int, size int) []byte
}

/*
Errors a Reader implementation may return. The gstore package wraps these
with the failing server id and offset via github.com/pkg/errors before
propagating them to the query engine, per §7's "transport errors are
surfaced... and propagated upward unchanged" — the wrapping only adds
context, it never swallows or retries.
*/
var (
	ErrUnknownServer = errors.New("unknown destination server")
	ErrShortRead     = errors.New("short read: fewer bytes returned than requested")
)
