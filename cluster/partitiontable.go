/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package cluster locates data among the servers holding a GStore partition.
It is deliberately narrow: GStore's readers need exactly one operation,
"which server owns vertex v", not a membership or replication protocol —
those are the cluster-wide process coordination this repository treats as
an external collaborator.
*/
package cluster

import (
	"errors"
	"fmt"
)

/*
Errors a PartitionTable can report at construction.
*/
var (
	ErrNoServers      = errors.New("num_servers must be > 0")
	ErrSelfOutOfRange = errors.New("self_sid must be < num_servers")
)

/*
Error is a cluster routing error. It mirrors storage.ManagerError so
callers that branch on package-level error types get the same shape from
either package.
*/
type Error struct {
	Type   error
	Detail string
}

/*
NewError creates a new routing Error.
*/
func NewError(errType error, detail string) *Error {
	return &Error{Type: errType, Detail: detail}
}

/*
Error returns a human-readable string representation of this error.
*/
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("ClusterError: %v (%v)", e.Type, e.Detail)
	}
	return fmt.Sprintf("ClusterError: %v", e.Type)
}

/*
PartitionTable is the one routing fact GStore needs: which server id owns
a given vertex. Ownership is plain hash(vid) mod N (§2 invariant 5), no
replication and no rebalancing — the set of servers is fixed for the
lifetime of a build.
*/
type PartitionTable struct {
	numServers uint64
	selfSID    uint64
}

/*
NewPartitionTable creates a table over numServers servers, identifying
this replica as selfSID.
*/
func NewPartitionTable(numServers uint64, selfSID uint64) (*PartitionTable, error) {
	if numServers == 0 {
		return nil, NewError(ErrNoServers, "")
	}
	if selfSID >= numServers {
		return nil, NewError(ErrSelfOutOfRange, fmt.Sprintf("self_sid=%d num_servers=%d", selfSID, numServers))
	}

	return &PartitionTable{numServers: numServers, selfSID: selfSID}, nil
}

/*
NumServers returns N.
*/
func (p *PartitionTable) NumServers() uint64 {
	return p.numServers
}

/*
SelfSID returns this replica's own server id.
*/
func (p *PartitionTable) SelfSID() uint64 {
	return p.selfSID
}

/*
Owner returns hash(vid) mod N, the server id authoritative for vid.
*/
func (p *PartitionTable) Owner(vid uint64) uint64 {
	return vid % p.numServers
}

/*
IsLocal reports whether vid is owned by this replica.
*/
func (p *PartitionTable) IsLocal(vid uint64) bool {
	return p.Owner(vid) == p.selfSID
}
