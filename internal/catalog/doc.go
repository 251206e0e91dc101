// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package catalog loads the building and department reference table used by
// the enrollment wizard's picklists.
//
// # File Format
//
// The table is UTF-8 text with one building per line:
//
//	Gardner Hall:Biology,Bioinformatics,Other
//	SAS Hall:Mathematics,Statistics,Dean's Office
//
// Lines without a colon are ignored. Only the first colon splits a line. The
// department token "Other" is a formatting artifact and is dropped.
//
// # Output
//
// Parse returns two sorted, deduplicated lists. Each list always ends with its
// catch-all entry (OtherBuilding, OtherDepartment), even when the table could
// not be read, so the operator always has something to select.
//
// # Usage
//
//	cat, err := catalog.LoadOrDefault(path)
//	if err != nil {
//		logger.Warn("reference table unavailable", "error", err)
//	}
//	// cat is never nil
package catalog
