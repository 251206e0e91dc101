// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package enroll

import (
	"strings"

	"github.com/cos-it/enrollhelper/internal/catalog"
	"github.com/cos-it/enrollhelper/internal/privileged"
)

// Defaults for the recon command.
const (
	DefaultExecutable     = "/usr/local/bin/jamf"
	DefaultSubcommand     = "recon"
	DefaultBuildingPrefix = "NCSU-"
	DefaultGroupPrefix    = "COS-"
	DefaultOtherGroup     = "COS-Other"
)

// CommandSpec describes how a Record becomes a recon command line.
type CommandSpec struct {
	Executable     string
	Subcommand     string
	BuildingPrefix string
	GroupPrefix    string

	// OtherDepartment is the catch-all label that maps to OtherGroup.
	OtherDepartment string
	OtherGroup      string

	// Overrides maps a department name to a fixed group, bypassing derivation.
	Overrides map[string]string
}

// DefaultCommandSpec returns the spec used when nothing is configured.
func DefaultCommandSpec() CommandSpec {
	return CommandSpec{
		Executable:      DefaultExecutable,
		Subcommand:      DefaultSubcommand,
		BuildingPrefix:  DefaultBuildingPrefix,
		GroupPrefix:     DefaultGroupPrefix,
		OtherDepartment: catalog.OtherDepartment,
		OtherGroup:      DefaultOtherGroup,
	}
}

// Invocation is a prepared recon command. It never carries the credential.
type Invocation struct {
	// Args is the argument vector, executable first.
	Args []string
	// Line is Args quoted for a POSIX shell.
	Line string

	RealName        string
	Building        string
	DepartmentGroup string
}

var apostrophes = strings.NewReplacer("'", "", "’", "")

// DepartmentGroup derives the group token for dept.
//
//	"Other COS Department" -> "COS-Other"
//	"Dean's Office"        -> "COS-DEANS-OFFICE"
//	"Bioinformatics"       -> "COS-BIOINFORMATICS"
func (s CommandSpec) DepartmentGroup(dept string) string {
	if dept == s.OtherDepartment {
		return s.OtherGroup
	}
	if group, ok := s.Overrides[dept]; ok {
		return group
	}
	name := apostrophes.Replace(strings.ToUpper(dept))
	return s.GroupPrefix + strings.Join(strings.Fields(name), "-")
}

// DepartmentGroup derives the group for dept with DefaultCommandSpec.
func DepartmentGroup(dept string) string {
	return DefaultCommandSpec().DepartmentGroup(dept)
}

// Build prepares the recon invocation for rec.
func (s CommandSpec) Build(rec Record) Invocation {
	inv := Invocation{
		RealName:        rec.FullName(),
		Building:        s.BuildingPrefix + rec.Building,
		DepartmentGroup: s.DepartmentGroup(rec.Department),
	}
	inv.Args = []string{
		s.Executable,
		s.Subcommand,
		"--realname", inv.RealName,
		"--building", inv.Building,
		"--department", inv.DepartmentGroup,
	}
	inv.Line = privileged.Join(inv.Args)
	return inv
}
