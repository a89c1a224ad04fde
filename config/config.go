/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
Package config holds the construction-time configuration of one GStore
replica (§6). Unlike the teacher's file/JSON-backed server config, GStore
keeps no persisted state: a Config is built once from an in-memory
overrides map merged over DefaultConfig, exactly as
cluster/manager.DefaultConfig is merged in the teacher, and then derives
the hash-table geometry that the rest of the package needs.
*/
package config

import (
	"errors"
	"fmt"

	"devt.de/krotik/common/datautil"
	"github.com/krotik/gstore/storage"
)

// Configuration keys
// ===================

const (
	ConfigNumKeys         = "NumKeys"
	ConfigMemstoreBytes   = "MemstoreBytes"
	ConfigNumServers      = "NumServers"
	ConfigSelfSID         = "SelfSID"
	ConfigAssociativity   = "Associativity"
	ConfigMainRatio       = "MainRatio"
	ConfigNumLocks        = "NumLocks"
	ConfigEnableCaching   = "EnableCaching"
	ConfigVersatile       = "Versatile"
	ConfigBucketCacheSize = "BucketCacheSize"
)

/*
DefaultConfig holds the defaults for every knob that has a sensible
one — the sizing knobs (NumKeys, MemstoreBytes, NumServers, SelfSID) have
no meaningful default and must always be supplied by the caller.
*/
var DefaultConfig = map[string]interface{}{
	ConfigAssociativity:   8.0,
	ConfigMainRatio:       80.0,
	ConfigNumLocks:        1024.0,
	ConfigEnableCaching:   true,
	ConfigVersatile:       false,
	ConfigBucketCacheSize: 65536.0,
}

/*
Errors New can return.
*/
var (
	ErrMissingKey = errors.New("missing required configuration key")
	ErrBadType    = errors.New("configuration value has the wrong type")
)

/*
Config is the fully-resolved, validated configuration of one replica,
including the sizing derived from it (§4.1).
*/
type Config struct {
	NumKeys         uint64
	MemstoreBytes   uint64
	NumServers      uint64
	SelfSID         uint64
	Associativity   int
	MainRatio       int
	NumLocks        int
	EnableCaching   bool
	Versatile       bool
	BucketCacheSize int

	NumBuckets    uint64
	NumBucketsExt uint64
	NumEntries    uint64
}

func requireUint(m map[string]interface{}, key string) (uint64, error) {
	v, ok := m[key]
	if !ok {
		return 0, storage.NewManagerError(ErrMissingKey, key)
	}
	f, ok := v.(float64)
	if !ok {
		if u, ok := v.(uint64); ok {
			return u, nil
		}
		if i, ok := v.(int); ok {
			return uint64(i), nil
		}
		return 0, storage.NewManagerError(ErrBadType, key)
	}
	return uint64(f), nil
}

func requireInt(m map[string]interface{}, key string) (int, error) {
	u, err := requireUint(m, key)
	return int(u), err
}

func requireBool(m map[string]interface{}, key string) (bool, error) {
	v, ok := m[key]
	if !ok {
		return false, storage.NewManagerError(ErrMissingKey, key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, storage.NewManagerError(ErrBadType, key)
	}
	return b, nil
}

/*
New merges overrides over DefaultConfig, exactly as
datautil.MergeMaps(manager.DefaultConfig, config) does in the teacher's
cluster storage constructor, extracts the typed fields and derives the
hash-table geometry (slotSize is the caller's hash.SlotSize — this package
does not import hash to avoid a dependency cycle with anything built on
top of config).
*/
func New(overrides map[string]interface{}, slotSize int) (*Config, error) {
	merged := datautil.MergeMaps(DefaultConfig, overrides)

	numKeys, err := requireUint(merged, ConfigNumKeys)
	if err != nil {
		return nil, err
	}
	memstoreBytes, err := requireUint(merged, ConfigMemstoreBytes)
	if err != nil {
		return nil, err
	}
	numServers, err := requireUint(merged, ConfigNumServers)
	if err != nil {
		return nil, err
	}
	selfSID, err := requireUint(merged, ConfigSelfSID)
	if err != nil {
		return nil, err
	}
	associativity, err := requireInt(merged, ConfigAssociativity)
	if err != nil {
		return nil, err
	}
	mainRatio, err := requireInt(merged, ConfigMainRatio)
	if err != nil {
		return nil, err
	}
	numLocks, err := requireInt(merged, ConfigNumLocks)
	if err != nil {
		return nil, err
	}
	enableCaching, err := requireBool(merged, ConfigEnableCaching)
	if err != nil {
		return nil, err
	}
	versatile, err := requireBool(merged, ConfigVersatile)
	if err != nil {
		return nil, err
	}
	bucketCacheSize, err := requireInt(merged, ConfigBucketCacheSize)
	if err != nil {
		return nil, err
	}

	if selfSID >= numServers {
		return nil, storage.NewManagerError(ErrBadType, fmt.Sprintf("SelfSID=%d must be < NumServers=%d", selfSID, numServers))
	}
	if numLocks <= 0 {
		return nil, storage.NewManagerError(ErrBadType, "NumLocks must be positive")
	}

	c := &Config{
		NumKeys:         numKeys,
		MemstoreBytes:   memstoreBytes,
		NumServers:      numServers,
		SelfSID:         selfSID,
		Associativity:   associativity,
		MainRatio:       mainRatio,
		NumLocks:        numLocks,
		EnableCaching:   enableCaching,
		Versatile:       versatile,
		BucketCacheSize: bucketCacheSize,
	}

	g, err := storage.DeriveGeometry(numKeys, memstoreBytes, associativity, mainRatio, slotSize)
	if err != nil {
		return nil, err
	}

	c.NumBuckets = g.NumBuckets
	c.NumBucketsExt = g.NumBucketsExt
	c.NumEntries = g.NumEntries

	return c, nil
}

/*
Geometry re-derives the storage.Geometry this config was validated
against, for callers (gstore.New) that need it to allocate the region.
*/
func (c *Config) Geometry(slotSize int) storage.Geometry {
	g, err := storage.DeriveGeometry(c.NumKeys, c.MemstoreBytes, c.Associativity, c.MainRatio, slotSize)
	if err != nil {
		panic(err)
	}
	return g
}
