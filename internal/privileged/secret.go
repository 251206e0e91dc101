// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package privileged

import "sync"

// Secret holds a credential in memory that is locked against swapping where
// the platform allows it. Close zeroes and unlocks the memory.
//
// The backing slice stays on the Go heap, which does not move objects, so a
// slice returned by Bytes remains valid (and zeroed) after Close.
type Secret struct {
	mu     sync.Mutex
	data   []byte
	locked bool
	closed bool
}

// NewSecret copies b into a new Secret. The caller keeps ownership of b and
// should zero it.
func NewSecret(b []byte) *Secret {
	data := make([]byte, len(b))
	copy(data, b)
	s := &Secret{data: data}
	if len(data) > 0 {
		s.locked = lockMemory(data) == nil
	}
	return s
}

// Bytes returns the secret's backing slice. It must not be retained past
// Close. A closed Secret returns nil.
func (s *Secret) Bytes() []byte {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	return s.data
}

// Len returns the secret's length, or 0 once closed.
func (s *Secret) Len() int {
	return len(s.Bytes())
}

// Locked reports whether the memory was locked against swapping.
func (s *Secret) Locked() bool {
	if s == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// Close zeroes the secret and releases the memory lock. It is safe to call
// more than once and on a nil Secret.
func (s *Secret) Close() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	ZeroBytes(s.data)
	if s.locked {
		_ = unlockMemory(s.data)
		s.locked = false
	}
	s.closed = true
}
