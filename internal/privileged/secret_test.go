// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package privileged

import (
	"strings"
	"testing"
)

func TestSecretCopiesInput(t *testing.T) {
	in := []byte("hunter2")
	s := NewSecret(in)
	defer s.Close()

	ZeroBytes(in)
	if got := string(s.Bytes()); got != "hunter2" {
		t.Errorf("Bytes() = %q after zeroing the input", got)
	}
	if s.Len() != 7 {
		t.Errorf("Len() = %d, want 7", s.Len())
	}
}

func TestSecretCloseZeroes(t *testing.T) {
	s := NewSecret([]byte("hunter2"))
	view := s.Bytes()

	s.Close()
	if string(view) != strings.Repeat("\x00", 7) {
		t.Errorf("backing slice not zeroed: %q", view)
	}
	if s.Bytes() != nil || s.Len() != 0 {
		t.Error("closed secret should be empty")
	}
	if s.Locked() {
		t.Error("closed secret should not report locked memory")
	}

	// second close is a no-op
	s.Close()
}

func TestSecretNilAndEmpty(t *testing.T) {
	var s *Secret
	s.Close()
	if s.Bytes() != nil || s.Len() != 0 || s.Locked() {
		t.Error("nil secret should behave as empty")
	}

	empty := NewSecret(nil)
	defer empty.Close()
	if empty.Len() != 0 {
		t.Errorf("Len() = %d, want 0", empty.Len())
	}
}
