// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package privileged

import "testing"

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "''"},
		{"recon", "recon"},
		{"--realname", "--realname"},
		{"/usr/local/bin/jamf", "/usr/local/bin/jamf"},
		{"COS-DEANS-OFFICE", "COS-DEANS-OFFICE"},
		{"Ada Lovelace", "'Ada Lovelace'"},
		{"O'Brien", `'O'\''Brien'`},
		{"$(rm -rf /)", "'$(rm -rf /)'"},
		{"a;b", "'a;b'"},
	}

	for _, tt := range tests {
		if got := Quote(tt.in); got != tt.want {
			t.Errorf("Quote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestJoin(t *testing.T) {
	got := Join([]string{"sudo", "-S", "-p", ""})
	if got != "sudo -S -p ''" {
		t.Errorf("Join = %q", got)
	}
}
