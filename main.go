// enrollhelper - tags a managed computer with its user, department and building.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cos-it/enrollhelper/internal/cli"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	version := fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate)
	os.Exit(cli.Execute(context.Background(), version, os.Args[1:]))
}
