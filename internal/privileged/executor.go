// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package privileged

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// =============================================================================
// DEFAULTS
// =============================================================================

// DefaultWrapper reads the password from stdin (-S) and suppresses sudo's
// own prompt so it does not pollute the captured output.
var DefaultWrapper = []string{"sudo", "-S", "-p", ""}

// DefaultMaxOutputSize caps captured output at 100KB.
const DefaultMaxOutputSize = 100000

// shellCandidates are tried in order when no shell is configured.
var shellCandidates = []string{"/bin/zsh", "/bin/sh"}

// DefaultShell returns the first available shell from shellCandidates.
func DefaultShell() string {
	for _, candidate := range shellCandidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return shellCandidates[len(shellCandidates)-1]
}

// =============================================================================
// SUDO EXECUTOR
// =============================================================================

// SudoExecutor runs a command line through a shell and a privilege-escalation
// wrapper, feeding the secret on standard input.
type SudoExecutor struct {
	// Shell is the shell that interprets the wrapped command line.
	Shell string

	// Wrapper is the escalation prefix. Empty runs the command line directly.
	Wrapper []string

	// MaxOutputSize bounds the captured combined output in bytes.
	MaxOutputSize int

	// Environ supplies the environment before sanitization (default os.Environ).
	Environ func() []string
}

// NewSudoExecutor returns an executor using the default shell and wrapper.
func NewSudoExecutor() *SudoExecutor {
	return &SudoExecutor{
		Shell:         DefaultShell(),
		Wrapper:       append([]string(nil), DefaultWrapper...),
		MaxOutputSize: DefaultMaxOutputSize,
	}
}

// Argv returns the argument vector that Run would execute for commandLine.
// The secret is never part of it.
func (e *SudoExecutor) Argv(commandLine string) []string {
	script := commandLine
	if len(e.Wrapper) > 0 {
		script = Join(e.Wrapper) + " " + commandLine
	}
	return []string{e.shell(), "-c", script}
}

// Run executes commandLine and blocks until the process exits. The secret is
// written to the child's stdin followed by a newline; the executor's copy of
// it is zeroed before Run returns.
func (e *SudoExecutor) Run(ctx context.Context, commandLine string, secret []byte) Result {
	if ctx == nil {
		ctx = context.Background()
	}

	argv := e.Argv(commandLine)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = sanitizeEnvironment(e.environ())

	input := make([]byte, len(secret)+1)
	copy(input, secret)
	input[len(secret)] = '\n'
	defer ZeroBytes(input)
	cmd.Stdin = bytes.NewReader(input)

	// A single comparable writer makes exec serialize the two streams into
	// one buffer in arrival order.
	var combined bytes.Buffer
	cmd.Stdout = &combined
	cmd.Stderr = &combined

	if err := cmd.Start(); err != nil {
		return Result{
			Output:   "failed to launch process: " + err.Error(),
			ExitCode: LaunchFailureCode,
		}
	}

	waitErr := cmd.Wait()
	output := e.buildOutput(combined.Bytes())

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return Result{Output: output, ExitCode: exitErr.ExitCode()}
		}
		// Wait failed for a reason other than the exit status (e.g. an I/O
		// copy error); the status is unknown.
		msg := "process wait failed: " + waitErr.Error()
		if output != "" {
			msg = output + "\n" + msg
		}
		return Result{Output: msg, ExitCode: LaunchFailureCode}
	}

	return Result{Output: output, ExitCode: 0}
}

func (e *SudoExecutor) shell() string {
	if e.Shell == "" {
		return DefaultShell()
	}
	return e.Shell
}

func (e *SudoExecutor) environ() []string {
	if e.Environ != nil {
		return e.Environ()
	}
	return getEnviron()
}

// buildOutput trims the combined output and truncates it to MaxOutputSize.
func (e *SudoExecutor) buildOutput(raw []byte) string {
	limit := e.MaxOutputSize
	if limit <= 0 {
		limit = DefaultMaxOutputSize
	}

	out := strings.TrimSpace(string(raw))
	if len(out) <= limit {
		return out
	}
	return out[:limit] + "\n\n[Output truncated at " + strconv.Itoa(limit) + " bytes]"
}

// =============================================================================
// DRY RUN
// =============================================================================

// DryRunExecutor reports the argument vector it would run instead of
// running it. The secret is ignored.
type DryRunExecutor struct {
	Executor *SudoExecutor
}

// Run implements Runner.
func (d DryRunExecutor) Run(_ context.Context, commandLine string, _ []byte) Result {
	exe := d.Executor
	if exe == nil {
		exe = NewSudoExecutor()
	}
	return Result{
		Output:   "dry run, not executed: " + Join(exe.Argv(commandLine)),
		ExitCode: 0,
	}
}
