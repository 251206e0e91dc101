// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package enroll

import (
	"strings"
	"testing"

	"github.com/cos-it/enrollhelper/internal/catalog"
)

func TestDepartmentGroup(t *testing.T) {
	tests := []struct {
		dept string
		want string
	}{
		{"Dean's Office", "COS-DEANS-OFFICE"},
		{catalog.OtherDepartment, "COS-Other"},
		{"Bioinformatics", "COS-BIOINFORMATICS"},
		{"Marine, Earth  and Atmospheric", "COS-MARINE,-EARTH-AND-ATMOSPHERIC"},
		{"MEAS", "COS-MEAS"},
		{"Dean’s Office", "COS-DEANS-OFFICE"},
	}

	for _, tt := range tests {
		if got := DepartmentGroup(tt.dept); got != tt.want {
			t.Errorf("DepartmentGroup(%q) = %q, want %q", tt.dept, got, tt.want)
		}
	}
}

func TestDepartmentGroup_Overrides(t *testing.T) {
	spec := DefaultCommandSpec()
	spec.Overrides = map[string]string{"Bioinformatics": "NCSU-COS-BRC"}

	if got := spec.DepartmentGroup("Bioinformatics"); got != "NCSU-COS-BRC" {
		t.Errorf("override not applied: %q", got)
	}
	if got := spec.DepartmentGroup("Physics"); got != "COS-PHYSICS" {
		t.Errorf("non-overridden department: %q", got)
	}
	if got := spec.DepartmentGroup(catalog.OtherDepartment); got != DefaultOtherGroup {
		t.Errorf("catch-all must win over overrides: %q", got)
	}
}

func TestBuild(t *testing.T) {
	rec := Record{FirstName: "Ada", LastName: "O'Neil", Department: "Dean's Office", Building: "SAS Hall"}

	inv := DefaultCommandSpec().Build(rec)

	wantArgs := []string{
		"/usr/local/bin/jamf", "recon",
		"--realname", "Ada O'Neil",
		"--building", "NCSU-SAS Hall",
		"--department", "COS-DEANS-OFFICE",
	}
	if len(inv.Args) != len(wantArgs) {
		t.Fatalf("Args = %q, want %q", inv.Args, wantArgs)
	}
	for i := range wantArgs {
		if inv.Args[i] != wantArgs[i] {
			t.Errorf("Args[%d] = %q, want %q", i, inv.Args[i], wantArgs[i])
		}
	}

	wantLine := `/usr/local/bin/jamf recon --realname 'Ada O'\''Neil' --building 'NCSU-SAS Hall' --department COS-DEANS-OFFICE`
	if inv.Line != wantLine {
		t.Errorf("Line =\n  %s\nwant\n  %s", inv.Line, wantLine)
	}
	if !strings.Contains(inv.Line, "--realname") || inv.DepartmentGroup != "COS-DEANS-OFFICE" {
		t.Errorf("unexpected invocation: %+v", inv)
	}
}
