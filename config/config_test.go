/*
 * GStore
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package config

import "testing"

const testSlotSize = 20

func TestConfigDefaults(t *testing.T) {
	c, err := New(map[string]interface{}{
		ConfigNumKeys:       32.0,
		ConfigMemstoreBytes: 1 << 20,
		ConfigNumServers:    1.0,
		ConfigSelfSID:       0.0,
	}, testSlotSize)
	if err != nil {
		t.Error(err)
		return
	}

	if c.Associativity != 8 {
		t.Error("Unexpected default associativity:", c.Associativity)
		return
	}
	if c.MainRatio != 80 {
		t.Error("Unexpected default main ratio:", c.MainRatio)
		return
	}
	if c.NumLocks != 1024 {
		t.Error("Unexpected default num locks:", c.NumLocks)
		return
	}
	if !c.EnableCaching {
		t.Error("Caching should default to enabled")
		return
	}
	if c.Versatile {
		t.Error("Versatile should default to disabled")
		return
	}
	if c.NumBuckets == 0 || c.NumBucketsExt == 0 {
		t.Error("Expected derived bucket counts to be populated")
		return
	}
}

func TestConfigMissingRequiredKey(t *testing.T) {
	if _, err := New(map[string]interface{}{
		ConfigMemstoreBytes: 1 << 20,
		ConfigNumServers:    1.0,
		ConfigSelfSID:       0.0,
	}, testSlotSize); err == nil {
		t.Error("Expected an error for missing NumKeys")
		return
	}
}

func TestConfigSelfSIDOutOfRange(t *testing.T) {
	if _, err := New(map[string]interface{}{
		ConfigNumKeys:       32.0,
		ConfigMemstoreBytes: 1 << 20,
		ConfigNumServers:    1.0,
		ConfigSelfSID:       1.0,
	}, testSlotSize); err == nil {
		t.Error("Expected an error for SelfSID >= NumServers")
		return
	}
}

func TestConfigOverride(t *testing.T) {
	c, err := New(map[string]interface{}{
		ConfigNumKeys:       32.0,
		ConfigMemstoreBytes: 1 << 20,
		ConfigNumServers:    1.0,
		ConfigSelfSID:       0.0,
		ConfigVersatile:     true,
		ConfigMainRatio:     50.0,
	}, testSlotSize)
	if err != nil {
		t.Error(err)
		return
	}

	if !c.Versatile {
		t.Error("Versatile override was not applied")
		return
	}
	if c.MainRatio != 50 {
		t.Error("MainRatio override was not applied:", c.MainRatio)
		return
	}
}
