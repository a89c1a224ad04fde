/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package gstore is the core key-value store of a distributed RDF graph
store: a cluster-chained, set-associative hash table over a single
contiguous memory region, built once from locally-owned triples and served
read-only thereafter, either in-process or to remote servers sharing the
same partition scheme through a one-sided transport.Reader.
*/
package gstore

import (
	"sync"

	"devt.de/krotik/common/errorutil"
	"github.com/krotik/gstore/cluster"
	"github.com/krotik/gstore/config"
	"github.com/krotik/gstore/hash"
	"github.com/krotik/gstore/storage"
	"github.com/krotik/gstore/transport"
)

/*
GStore is one replica: the partition of the graph owned by this server,
plus the state needed to serve reads against every other server's
partition through the transport.
*/
type GStore struct {
	cfg *config.Config

	region *storage.Region
	table  *hash.Table
	alloc  *storage.EntryAllocator
	cache  *hash.BucketCache

	partition *cluster.PartitionTable
	transport transport.Reader

	buildOnce sync.Once
	built     bool
}

/*
New allocates a fresh, empty GStore sized per cfg and registers its region
with rdr under cfg.SelfSID so remote peers (including a loopback transport
in tests) can read it. pt must agree with cfg on NumServers/SelfSID.
*/
func New(cfg *config.Config, pt *cluster.PartitionTable, rdr transport.Reader) *GStore {
	errorutil.AssertTrue(pt.NumServers() == cfg.NumServers, "partition table and config disagree on num_servers")
	errorutil.AssertTrue(pt.SelfSID() == cfg.SelfSID, "partition table and config disagree on self_sid")

	g := cfg.Geometry(hash.SlotSize)
	region := storage.NewRegion(g)
	table := hash.NewTable(region.SlotBytes(), cfg.Associativity, g.NumBuckets, g.NumBucketsExt, cfg.NumLocks)
	alloc := storage.NewEntryAllocator(g.NumEntries)
	cache := hash.NewBucketCache(cfg.BucketCacheSize, cfg.EnableCaching)

	if lb, ok := rdr.(*transport.Loopback); ok {
		lb.Register(cfg.SelfSID, region.Buf())
	}

	return &GStore{
		cfg:       cfg,
		region:    region,
		table:     table,
		alloc:     alloc,
		cache:     cache,
		partition: pt,
		transport: rdr,
	}
}

/*
Config returns the configuration this store was built with.
*/
func (g *GStore) Config() *config.Config {
	return g.cfg
}

/*
Table exposes the underlying hash table, mainly for instrumentation and
tests that want to drive it directly.
*/
func (g *GStore) Table() *hash.Table {
	return g.table
}

/*
Region exposes the underlying memory region, for registering with a real
transport or for byte accounting by the caller.
*/
func (g *GStore) Region() *storage.Region {
	return g.region
}
