/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package gstore

import "devt.de/krotik/common/errorutil"

/*
Build runs both bulk-loader phases over this replica's locally-owned
triples: InsertNormal, then (if cfg.Versatile) InsertPredicateLists, then
InsertIndex. It may be called exactly once per GStore; the store is
read-only for every reader call once Build returns, per invariant 3.
*/
func (g *GStore) Build(spo, ops []Triple) {
	errorutil.AssertTrue(!g.built, "Build called more than once on the same GStore")

	g.buildOnce.Do(func() {
		LogInfo("gstore: inserting normal triples: spo=", len(spo), " ops=", len(ops))
		g.InsertNormal(spo, ops)

		if g.cfg.Versatile {
			LogInfo("gstore: inserting versatile predicate lists")
			g.InsertPredicateLists(spo, ops)
		}

		LogInfo("gstore: running index phase")
		g.InsertIndex()

		g.built = true
	})
}
