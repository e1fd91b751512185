// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"encoding/json"
	"sync"
)

// =============================================================================
// PROFILE TYPE
// =============================================================================

// Profile holds facts the user has volunteered about themselves during the
// current session. It starts empty and is never cleared.
type Profile struct {
	mu   sync.RWMutex
	name *string
}

// ProfileSnapshot is the wire form of a Profile. A nil Name encodes as null.
type ProfileSnapshot struct {
	Name *string `json:"name"`
}

// NewProfile returns an empty profile.
func NewProfile() *Profile {
	return &Profile{}
}

// Name returns the stored name and whether one has been set.
func (p *Profile) Name() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.name == nil {
		return "", false
	}
	return *p.name, true
}

// SetName replaces the stored name.
func (p *Profile) SetName(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.name = &name
}

// Snapshot returns a detached copy of the profile's fields.
func (p *Profile) Snapshot() ProfileSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.name == nil {
		return ProfileSnapshot{}
	}
	name := *p.name
	return ProfileSnapshot{Name: &name}
}

// JSON encodes the snapshot. Field order is fixed so identical snapshots
// always produce identical bytes.
func (s ProfileSnapshot) JSON() string {
	data, err := json.Marshal(s)
	if err != nil {
		// A struct of string pointers cannot fail to marshal.
		return `{"name":null}`
	}
	return string(data)
}
