/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package storage

import (
	"errors"
	"fmt"

	"devt.de/krotik/common/pools"
)

/*
ErrBadConfig is the ManagerError.Type used for malformed geometry
parameters caught before any memory is reserved.
*/
var ErrBadConfig = errors.New("bad storage configuration")

/*
ScratchPool pools the bytes.Buffer objects used as per-tid scratch buffers
for remote bucket and adjacency-list reads (§6's scratch_buffer(tid)). A
bytes.Buffer grows to whatever size a given read needs and is Reset, not
freed, between calls, which avoids a size knob no caller can answer ("how
big is the biggest adjacency list") up front.
*/
var ScratchPool = pools.NewByteBufferPool()

/*
ManagerError reports a region-construction or configuration failure — the
one class of storage error that is returned rather than asserted, because
it can originate from caller-supplied configuration rather than a load-time
bug.
*/
type ManagerError struct {
	Type   error
	Detail string
}

/*
NewManagerError creates a new ManagerError.
*/
func NewManagerError(errType error, detail string) *ManagerError {
	return &ManagerError{Type: errType, Detail: detail}
}

/*
Error returns a string representation of the error.
*/
func (e *ManagerError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Type.Error(), e.Detail)
}
