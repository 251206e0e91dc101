// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package privileged

import "context"

// LaunchFailureCode is the exit code reported when the process never started.
const LaunchFailureCode = -1

// Result is the outcome of one privileged run.
type Result struct {
	// Output is stdout and stderr merged, trimmed of surrounding whitespace.
	Output string
	// ExitCode is the process exit status, or LaunchFailureCode.
	ExitCode int
}

// Success reports whether the command exited with status zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes a command line with the given secret on standard input.
// Implementations must not retain secret after Run returns.
type Runner interface {
	Run(ctx context.Context, commandLine string, secret []byte) Result
}

// FuncRunner adapts a function to the Runner interface.
type FuncRunner func(ctx context.Context, commandLine string, secret []byte) Result

// Run calls f.
func (f FuncRunner) Run(ctx context.Context, commandLine string, secret []byte) Result {
	return f(ctx, commandLine, secret)
}

// ZeroBytes overwrites b with zeros.
func ZeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
