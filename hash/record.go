/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package hash

/*
PtrRecord points at an adjacency list stored in the entry array: Size
elements starting at Offset. A zero Size means an empty (or absent)
adjacency list; Offset is meaningless in that case.
*/
type PtrRecord struct {
	Size   uint32
	Offset uint64
}

/*
Empty returns whether this pointer record addresses zero elements.
*/
func (p PtrRecord) Empty() bool {
	return p.Size == 0
}
