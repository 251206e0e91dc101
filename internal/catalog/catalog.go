// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// OtherBuilding is the catch-all building appended to every building list.
	OtherBuilding = "Other"

	// OtherDepartment is the catch-all department appended to every department list.
	OtherDepartment = "Other COS Department"

	// droppedDepartment is the department token that never reaches the output.
	droppedDepartment = "Other"
)

//go:embed buildings_departments.txt
var embeddedTable []byte

// =============================================================================
// CATALOG
// =============================================================================

// Catalog holds the picklist contents derived from the reference table.
type Catalog struct {
	Buildings   []string
	Departments []string
}

// LoadError reports that the reference table could not be read or parsed.
// It is never fatal: the accompanying catalog is the fallback catalog.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("catalog: load reference table: %v", e.Err)
	}
	return fmt.Sprintf("catalog: load reference table %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Fallback returns a catalog holding only the catch-all entries.
func Fallback() *Catalog {
	return &Catalog{
		Buildings:   []string{OtherBuilding},
		Departments: []string{OtherDepartment},
	}
}

// HasBuilding reports whether name is a selectable building.
func (c *Catalog) HasBuilding(name string) bool {
	return contains(c.Buildings, name)
}

// HasDepartment reports whether name is a selectable department.
func (c *Catalog) HasDepartment(name string) bool {
	return contains(c.Departments, name)
}

func contains(list []string, name string) bool {
	for _, item := range list {
		if item == name {
			return true
		}
	}
	return false
}

// =============================================================================
// LOADING
// =============================================================================

// Parse reads a reference table from r.
func Parse(r io.Reader) (*Catalog, error) {
	buildings := make(map[string]struct{})
	departments := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := norm.NFC.String(scanner.Text())
		building, deptList, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}

		if name := strings.TrimSpace(building); name != "" {
			buildings[name] = struct{}{}
		}

		for _, dept := range strings.Split(deptList, ",") {
			dept = strings.TrimSpace(dept)
			if dept == "" || dept == droppedDepartment {
				continue
			}
			departments[dept] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return &Catalog{
		Buildings:   sortedWithCatchAll(buildings, OtherBuilding),
		Departments: sortedWithCatchAll(departments, OtherDepartment),
	}, nil
}

// Load reads the reference table at path. On failure it returns the fallback
// catalog together with a *LoadError.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Fallback(), &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	cat, err := Parse(f)
	if err != nil {
		return Fallback(), &LoadError{Path: path, Err: err}
	}
	return cat, nil
}

// LoadOrDefault loads path, or the table bundled into the binary when path is
// empty.
func LoadOrDefault(path string) (*Catalog, error) {
	if path != "" {
		return Load(path)
	}
	cat, err := Parse(bytes.NewReader(embeddedTable))
	if err != nil {
		return Fallback(), &LoadError{Err: err}
	}
	return cat, nil
}

// sortedWithCatchAll sorts the set case-insensitively and appends catchAll.
// A set member equal to catchAll is dropped so it only appears once, last.
func sortedWithCatchAll(set map[string]struct{}, catchAll string) []string {
	fold := cases.Fold()

	type entry struct {
		raw, key string
	}
	entries := make([]entry, 0, len(set))
	for name := range set {
		if name == catchAll {
			continue
		}
		entries = append(entries, entry{raw: name, key: fold.String(name)})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].key != entries[j].key {
			return entries[i].key < entries[j].key
		}
		return entries[i].raw < entries[j].raw
	})

	out := make([]string, 0, len(entries)+1)
	for _, e := range entries {
		out = append(out, e.raw)
	}
	return append(out, catchAll)
}
