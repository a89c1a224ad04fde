/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package gstore

import "log"

/*
Logger is a function which processes log messages from gstore, following
the same shape as cluster/manager's Logger in the teacher.
*/
type Logger func(v ...interface{})

/*
LogInfo is called for build-phase progress messages (the start of the
normal, predicate-list and index phases, and index materialization).
Defaults to log.Print; an embedding application can silence or redirect
it.
*/
var LogInfo = Logger(log.Print)

/*
LogDebug is the hook for fine-grained detail. Disabled by default; no
gstore code path calls it.
*/
var LogDebug = Logger(logNull)

func logNull(v ...interface{}) {
}
