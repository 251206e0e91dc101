// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package enroll

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cos-it/enrollhelper/internal/catalog"
	"github.com/cos-it/enrollhelper/internal/privileged"
)

// =============================================================================
// HELPERS
// =============================================================================

type recordingRunner struct {
	calls  int
	line   string
	secret []byte // the exact slice handed to Run
	copy   string // its contents at call time
	result privileged.Result
}

func (r *recordingRunner) Run(_ context.Context, line string, secret []byte) privileged.Result {
	r.calls++
	r.line = line
	r.secret = secret
	r.copy = string(secret)
	return r.result
}

func newTestWizard(runner privileged.Runner) *Wizard {
	return New(Options{Runner: runner})
}

// toConfirm drives a wizard to Confirm with a complete record.
func toConfirm(t *testing.T, w *Wizard) {
	t.Helper()
	require.NoError(t, w.Advance())
	require.NoError(t, w.SetFirstName("Ada"))
	require.NoError(t, w.SetLastName("Lovelace"))
	require.NoError(t, w.Advance())
	require.NoError(t, w.SetDepartment("Dean's Office"))
	require.NoError(t, w.SetBuilding("SAS Hall"))
	require.NoError(t, w.Advance())
	require.Equal(t, StateConfirm, w.State())
}

// =============================================================================
// GATE TESTS
// =============================================================================

func TestNameInputGate(t *testing.T) {
	tests := []struct {
		first, last string
		wantAdvance bool
	}{
		{"", "", false},
		{"Ada", "", false},
		{"", "Lovelace", false},
		{"   ", "Lovelace", false},
		{"Ada", "Lovelace", true},
	}

	for _, tt := range tests {
		w := newTestWizard(&recordingRunner{})
		require.NoError(t, w.Advance())
		require.NoError(t, w.SetFirstName(tt.first))
		require.NoError(t, w.SetLastName(tt.last))

		assert.Equal(t, tt.wantAdvance, w.CanAdvance(), "first=%q last=%q", tt.first, tt.last)

		err := w.Advance()
		if tt.wantAdvance {
			assert.NoError(t, err)
			assert.Equal(t, StateDepartmentBuildingInput, w.State())
		} else {
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
			assert.ErrorIs(t, err, ErrIncomplete)
			assert.Equal(t, StateNameInput, vErr.State)
			assert.Equal(t, StateNameInput, w.State())
		}
	}
}

func TestDepartmentBuildingGate(t *testing.T) {
	w := newTestWizard(&recordingRunner{})
	require.NoError(t, w.Advance())
	require.NoError(t, w.SetFirstName("Ada"))
	require.NoError(t, w.SetLastName("Lovelace"))
	require.NoError(t, w.Advance())

	err := w.Advance()
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, []string{FieldDepartment, FieldBuilding}, vErr.Missing)

	require.NoError(t, w.SetDepartment(catalog.OtherDepartment))
	assert.False(t, w.CanAdvance())
	require.NoError(t, w.SetBuilding(catalog.OtherBuilding))
	assert.True(t, w.CanAdvance())
	require.NoError(t, w.Advance())
	assert.Equal(t, StateConfirm, w.State())
}

func TestConfirmRequiresCredential(t *testing.T) {
	w := newTestWizard(&recordingRunner{})
	toConfirm(t, w)

	err := w.Advance()
	require.ErrorIs(t, err, ErrIncomplete)
	assert.Contains(t, err.Error(), FieldCredential)

	require.NoError(t, w.SetCredential([]byte{}))
	assert.False(t, w.CanAdvance())

	require.NoError(t, w.SetCredential([]byte("pw")))
	require.NoError(t, w.Advance())
	assert.Equal(t, StateSubmitting, w.State())
}

func TestFieldsOnlyEditableInTheirStage(t *testing.T) {
	w := newTestWizard(&recordingRunner{})

	assert.ErrorIs(t, w.SetFirstName("Ada"), ErrFieldNotEditable)
	assert.ErrorIs(t, w.SetDepartment("Physics"), ErrFieldNotEditable)
	assert.ErrorIs(t, w.SetCredential([]byte("pw")), ErrFieldNotEditable)

	require.NoError(t, w.Advance())
	assert.ErrorIs(t, w.SetBuilding("Cox Hall"), ErrFieldNotEditable)
}

func TestCatalogRestrictsSelections(t *testing.T) {
	cat := &catalog.Catalog{
		Buildings:   []string{"Cox Hall", catalog.OtherBuilding},
		Departments: []string{"Physics", catalog.OtherDepartment},
	}
	w := New(Options{Runner: &recordingRunner{}, Catalog: cat})
	require.NoError(t, w.Advance())
	require.NoError(t, w.SetFirstName("Ada"))
	require.NoError(t, w.SetLastName("Lovelace"))
	require.NoError(t, w.Advance())

	assert.ErrorIs(t, w.SetDepartment("Alchemy"), ErrUnknownOption)
	assert.ErrorIs(t, w.SetBuilding("Nowhere"), ErrUnknownOption)
	assert.NoError(t, w.SetDepartment("Physics"))
	assert.NoError(t, w.SetBuilding(""))
	assert.Equal(t, "Physics", w.Record().Department)
}

// =============================================================================
// NAVIGATION TESTS
// =============================================================================

func TestBackPreservesData(t *testing.T) {
	w := newTestWizard(&recordingRunner{})
	require.NoError(t, w.Advance())
	require.NoError(t, w.SetFirstName("Ada"))
	require.NoError(t, w.SetLastName("Lovelace"))
	require.NoError(t, w.Advance())
	require.NoError(t, w.SetDepartment("Physics"))

	require.NoError(t, w.Back())
	assert.Equal(t, StateNameInput, w.State())
	require.NoError(t, w.Advance())

	rec := w.Record()
	assert.Equal(t, "Ada", rec.FirstName)
	assert.Equal(t, "Lovelace", rec.LastName)
	assert.Equal(t, "Physics", rec.Department)
	assert.Equal(t, StateDepartmentBuildingInput, w.State())
}

func TestBackFromConfirmDropsCredential(t *testing.T) {
	w := newTestWizard(&recordingRunner{})
	toConfirm(t, w)
	require.NoError(t, w.SetCredential([]byte("pw")))

	require.NoError(t, w.Back())
	assert.Equal(t, StateDepartmentBuildingInput, w.State())
	assert.False(t, w.HasCredential())
	assert.Equal(t, "Dean's Office", w.Record().Department)
}

func TestBackNotAllowed(t *testing.T) {
	w := newTestWizard(&recordingRunner{})
	assert.ErrorIs(t, w.Back(), ErrNoBack)

	toConfirm(t, w)
	require.NoError(t, w.SetCredential([]byte("pw")))
	require.NoError(t, w.Advance())
	assert.ErrorIs(t, w.Back(), ErrNoBack)
	assert.ErrorIs(t, w.Advance(), ErrBusy)
}

// =============================================================================
// SUBMISSION TESTS
// =============================================================================

func TestSubmitSuccess(t *testing.T) {
	runner := &recordingRunner{result: privileged.Result{Output: "Submitting data", ExitCode: 0}}
	w := newTestWizard(runner)
	toConfirm(t, w)
	require.NoError(t, w.SetCredential([]byte("hunter2")))
	require.NoError(t, w.Advance())

	plan, ok := w.Plan()
	require.True(t, ok)
	assert.Equal(t, "COS-DEANS-OFFICE", plan.DepartmentGroup)
	assert.Equal(t, "NCSU-SAS Hall", plan.Building)

	res, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, "hunter2", runner.copy)
	assert.Equal(t, plan.Line, runner.line)
	assert.NotContains(t, runner.line, "hunter2")
	for _, arg := range plan.Args {
		assert.NotContains(t, arg, "hunter2")
	}

	// The slice the runner saw is zeroed after Submit returns.
	assert.Equal(t, strings.Repeat("\x00", len("hunter2")), string(runner.secret))
	assert.False(t, w.HasCredential())

	// Submit never changes state by itself.
	assert.Equal(t, StateSubmitting, w.State())
	require.NoError(t, w.Complete(res))
	assert.Equal(t, StateDone, w.State())
	assert.True(t, w.Succeeded())

	assert.ErrorIs(t, w.Advance(), ErrTerminal)
	assert.ErrorIs(t, w.Back(), ErrNoBack)
}

func TestSubmitFailure(t *testing.T) {
	runner := &recordingRunner{result: privileged.Result{Output: "Sorry, try again.", ExitCode: 1}}
	w := newTestWizard(runner)
	toConfirm(t, w)
	require.NoError(t, w.SetCredential([]byte("wrong")))
	require.NoError(t, w.Advance())

	res, err := w.Submit(context.Background())
	require.NoError(t, err)
	require.NoError(t, w.Complete(res))

	got, ok := w.Result()
	require.True(t, ok)
	assert.Equal(t, 1, got.ExitCode)
	assert.False(t, w.Succeeded())
}

func TestSubmitOnlyOnce(t *testing.T) {
	runner := &recordingRunner{}
	w := newTestWizard(runner)

	_, err := w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotSubmitting)
	assert.ErrorIs(t, w.Complete(privileged.Result{}), ErrNotSubmitting)

	toConfirm(t, w)
	require.NoError(t, w.SetCredential([]byte("pw")))
	require.NoError(t, w.Advance())

	_, err = w.Submit(context.Background())
	require.NoError(t, err)
	_, err = w.Submit(context.Background())
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Equal(t, 1, runner.calls)
}

func TestSubmitRequiresCredential(t *testing.T) {
	runner := &recordingRunner{}
	w := newTestWizard(runner)
	toConfirm(t, w)
	require.NoError(t, w.SetCredential([]byte("pw")))
	require.NoError(t, w.Advance())
	require.Equal(t, StateSubmitting, w.State())

	w.ClearCredential()

	_, err := w.Submit(context.Background())
	require.ErrorIs(t, err, ErrIncomplete)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{FieldCredential}, verr.Missing)
	assert.Zero(t, runner.calls)
	assert.Equal(t, StateSubmitting, w.State())
}

func TestSetCredentialCopiesInput(t *testing.T) {
	runner := &recordingRunner{}
	w := newTestWizard(runner)
	toConfirm(t, w)

	input := []byte("pw")
	require.NoError(t, w.SetCredential(input))
	privileged.ZeroBytes(input)
	require.NoError(t, w.Advance())

	_, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pw", runner.copy)
}

// =============================================================================
// SUBSCRIPTION TESTS
// =============================================================================

func TestSubscribe(t *testing.T) {
	w := newTestWizard(&recordingRunner{})

	var events []Event
	unsubscribe := w.Subscribe(func(ev Event) {
		events = append(events, ev)
	})

	require.NoError(t, w.Advance())
	require.NoError(t, w.SetFirstName("Ada"))
	_ = w.Advance() // rejected: no event

	require.Len(t, events, 2)
	assert.Equal(t, Event{From: StateAcknowledge, To: StateNameInput}, events[0])
	assert.Equal(t, StateNameInput, events[1].From)
	assert.Equal(t, "Ada", events[1].Record.FirstName)

	unsubscribe()
	require.NoError(t, w.SetLastName("Lovelace"))
	assert.Len(t, events, 2)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "acknowledge", StateAcknowledge.String())
	assert.Equal(t, "done", StateDone.String())
	assert.Equal(t, "unknown", State(42).String())
	assert.True(t, StateConfirm.CanGoBack())
	assert.False(t, StateSubmitting.CanGoBack())
}
