// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/cos-it/enrollhelper/internal/config"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates the computer was enrolled
	ExitSuccess = 0
	// ExitEnrollmentFailed indicates the recon command failed or the
	// operator left before it ran
	ExitEnrollmentFailed = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates a configuration file or settings error
	ExitConfigError = 3
)

// ErrEnrollmentFailed is reported when the wizard finishes without a
// successful recon run.
var ErrEnrollmentFailed = errors.New("enrollment did not complete")

// =============================================================================
// EXIT ERROR
// =============================================================================

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
	// Quiet suppresses printing; the front end has already told the operator.
	Quiet bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsageError, Err: err}
}

func configError(err error) error {
	return &ExitError{Code: ExitConfigError, Err: err}
}

// GetExitCode determines the exit code for an error returned by the root
// command.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var validateErrs config.ValidateErrors
	if errors.As(err, &validateErrs) {
		return ExitConfigError
	}

	return ExitEnrollmentFailed
}

// printError writes err to w unless it is quiet.
func printError(w io.Writer, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Quiet {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	if GetExitCode(err) == ExitUsageError {
		fmt.Fprintln(w, "Run 'enrollhelper --help' for usage.")
	}
}
