// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package enroll

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIncomplete is wrapped by every ValidationError.
	ErrIncomplete = errors.New("enroll: required fields are missing")
	// ErrNoBack is returned by Back from a state without a predecessor.
	ErrNoBack = errors.New("enroll: cannot go back from this state")
	// ErrBusy is returned while the privileged command is in flight.
	ErrBusy = errors.New("enroll: submission in progress")
	// ErrTerminal is returned for any transition attempted from Done.
	ErrTerminal = errors.New("enroll: enrollment already finished")
	// ErrFieldNotEditable is returned when a field is set outside its stage.
	ErrFieldNotEditable = errors.New("enroll: field cannot be edited in this state")
	// ErrUnknownOption is returned when a department or building is not in the catalog.
	ErrUnknownOption = errors.New("enroll: value is not a catalog entry")
	// ErrNotSubmitting is returned by Submit and Complete outside Submitting.
	ErrNotSubmitting = errors.New("enroll: wizard is not submitting")
	// ErrAlreadySubmitted is returned by a second Submit in the same run.
	ErrAlreadySubmitted = errors.New("enroll: command already submitted")
)

// ValidationError reports an advance attempt with incomplete input.
type ValidationError struct {
	State   State
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("enroll: cannot leave %s: missing %s", e.State, strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrIncomplete
}
