/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package gstore

/*
Triple is a directed edge (S, P, O). Type assertions (s, rdf:type, T) are
ordinary Triples whose P is hash.TypeID and whose O is drawn from the
type-id sub-range (hash.IsTypeID(O)).
*/
type Triple struct {
	S uint64
	P uint64
	O uint64
}
