// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package privileged runs a single command line with elevated rights.
//
// The credential never appears on the command line. SudoExecutor starts
//
//	<shell> -c "sudo -S -p '' <command line>"
//
// and writes the credential, followed by a newline, to the child's standard
// input. Standard output and standard error are captured into one buffer.
//
// Run never returns an error. A process that could not be started is reported
// as a Result with ExitCode LaunchFailureCode and a diagnostic in Output, so
// callers only ever branch on Result.Success.
package privileged
