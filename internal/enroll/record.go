// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package enroll

// Record holds the values collected by the wizard.
type Record struct {
	FirstName  string
	LastName   string
	Department string
	Building   string
}

// Field names reported in ValidationError.Missing.
const (
	FieldFirstName  = "first name"
	FieldLastName   = "last name"
	FieldDepartment = "department"
	FieldBuilding   = "building"
	FieldCredential = "credential"
)

// FullName joins the first and last name with a single space.
func (r Record) FullName() string {
	return r.FirstName + " " + r.LastName
}

// Complete reports whether every field is non-empty.
func (r Record) Complete() bool {
	return len(r.Missing()) == 0
}

// Missing lists the empty fields in wizard order.
func (r Record) Missing() []string {
	var missing []string
	missing = appendIfEmpty(missing, r.FirstName, FieldFirstName)
	missing = appendIfEmpty(missing, r.LastName, FieldLastName)
	missing = appendIfEmpty(missing, r.Department, FieldDepartment)
	missing = appendIfEmpty(missing, r.Building, FieldBuilding)
	return missing
}

func appendIfEmpty(list []string, value, field string) []string {
	if value == "" {
		return append(list, field)
	}
	return list
}
