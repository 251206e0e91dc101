// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for enrollhelper.
//
// Configuration is optional. Without a file the built-in defaults reproduce
// the stock behavior: the bundled reference table, /usr/local/bin/jamf recon,
// sudo -S, and the NCSU-/COS- prefixes. Environment variables are not read.
//
// # Key Types
//
//   - Config: Main configuration structure
//   - CommandConfig: Recon command and privilege wrapper
//   - UIConfig: Operator-facing text
//   - LogConfig: Log level, format and destination
//
// # Example File
//
//	[catalog]
//	path = "/Library/Application Support/Enrollment/buildings_departments.txt"
//
//	[command]
//	executable = "/usr/local/bin/jamf"
//	building_prefix = "NCSU-"
//
//	[groups]
//	"Bioinformatics" = "NCSU-COS-BRC"
//
//	[log]
//	level = "debug"
//	file = "/var/log/enrollhelper.log"
//
// # Usage
//
//	cfg, err := config.Load(path) // empty path returns defaults
//	if err != nil {
//	    return err
//	}
package config
