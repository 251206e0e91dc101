// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package wizard

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cos-it/enrollhelper/internal/catalog"
	"github.com/cos-it/enrollhelper/internal/enroll"
	"github.com/cos-it/enrollhelper/internal/privileged"
)

// =============================================================================
// HELPERS
// =============================================================================

var testCatalog = &catalog.Catalog{
	Buildings:   []string{"Cox Hall", "SAS Hall", catalog.OtherBuilding},
	Departments: []string{"Dean's Office", "Physics", catalog.OtherDepartment},
}

type fakeRunner struct {
	calls  int
	line   string
	secret string
	result privileged.Result
}

func (f *fakeRunner) Run(_ context.Context, line string, secret []byte) privileged.Result {
	f.calls++
	f.line = line
	f.secret = string(secret)
	return f.result
}

func newTestModel(runner privileged.Runner) *Model {
	w := enroll.New(enroll.Options{Runner: runner, Catalog: testCatalog})
	return New(w, testCatalog, Options{})
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func press(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func send(m *Model, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, msg := range msgs {
		_, cmd = m.Update(msg)
	}
	return cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

// collect runs cmd and flattens batches. Only use it on commands that return
// immediately.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// toConfirm drives the model through the input screens.
func toConfirm(t *testing.T, m *Model) {
	t.Helper()
	send(m, press(tea.KeyEnter))
	require.Equal(t, enroll.StateNameInput, m.wiz.State())

	send(m, runes("Ada"), press(tea.KeyTab), runes("Lovelace"), press(tea.KeyEnter))
	require.Equal(t, enroll.StateDepartmentBuildingInput, m.wiz.State())

	// department: first option; building: filtered to SAS Hall
	send(m, press(tea.KeyEnter), runes("sas"), press(tea.KeyEnter), press(tea.KeyEnter))
	require.Equal(t, enroll.StateConfirm, m.wiz.State())
}

// =============================================================================
// NAVIGATION TESTS
// =============================================================================

func TestAcknowledgeScreen(t *testing.T) {
	m := newTestModel(&fakeRunner{})
	assert.Contains(t, m.View(), "mandatory")

	assert.True(t, isQuit(send(m, runes("q"))), "q should quit on the acknowledge screen")

	send(m, press(tea.KeyEnter))
	assert.Equal(t, enroll.StateNameInput, m.wiz.State())
}

func TestNameScreenGate(t *testing.T) {
	m := newTestModel(&fakeRunner{})
	send(m, press(tea.KeyEnter))

	send(m, runes("Ada"), press(tea.KeyEnter))
	assert.Equal(t, enroll.StateNameInput, m.wiz.State(), "enter with a missing last name must not advance")
	assert.Equal(t, focusSecond, m.focus, "enter should move to the next field")

	send(m, runes("q"))
	assert.Equal(t, "Ada", m.wiz.Record().FirstName)
	assert.Equal(t, "q", m.wiz.Record().LastName, "q is text on the name screen")
}

func TestNameScreenTrimsWhitespaceOnlyInput(t *testing.T) {
	m := newTestModel(&fakeRunner{})
	send(m, press(tea.KeyEnter))

	send(m, runes("   "), press(tea.KeyTab), runes("Lovelace"), press(tea.KeyTab), press(tea.KeyEnter))
	assert.Equal(t, enroll.StateNameInput, m.wiz.State())
	assert.False(t, m.wiz.CanAdvance())
}

func TestPlacementScreenSelections(t *testing.T) {
	m := newTestModel(&fakeRunner{})
	toConfirm(t, m)

	rec := m.wiz.Record()
	assert.Equal(t, "Ada", rec.FirstName)
	assert.Equal(t, "Lovelace", rec.LastName)
	assert.Equal(t, "Dean's Office", rec.Department)
	assert.Equal(t, "SAS Hall", rec.Building)
}

func TestPlacementScreenPlaceholders(t *testing.T) {
	m := newTestModel(&fakeRunner{})
	send(m, press(tea.KeyEnter), runes("Ada"), press(tea.KeyTab), runes("Lovelace"), press(tea.KeyEnter))

	view := m.View()
	assert.Contains(t, view, "Department")
	assert.Contains(t, view, "Building")

	// button focused with nothing selected stays put
	send(m, press(tea.KeyShiftTab), press(tea.KeyEnter))
	assert.Equal(t, enroll.StateDepartmentBuildingInput, m.wiz.State())
}

func TestPlacementScreenClearSelection(t *testing.T) {
	m := newTestModel(&fakeRunner{})
	send(m, press(tea.KeyEnter), runes("Ada"), press(tea.KeyTab), runes("Lovelace"), press(tea.KeyEnter))

	send(m, press(tea.KeyEnter))
	require.Equal(t, "Dean's Office", m.wiz.Record().Department)
	require.Equal(t, focusSecond, m.focus)

	send(m, press(tea.KeyShiftTab), press(tea.KeyDelete))
	assert.Empty(t, m.department.Selected())
	assert.Empty(t, m.wiz.Record().Department, "clearing the picker must clear the wizard field")
	assert.False(t, m.wiz.CanAdvance())
	assert.Contains(t, m.View(), "clear")
}

func TestBackPreservesFields(t *testing.T) {
	m := newTestModel(&fakeRunner{})
	toConfirm(t, m)

	send(m, runes("hunter2"))
	require.True(t, m.wiz.HasCredential())

	send(m, press(tea.KeyEsc))
	assert.Equal(t, enroll.StateDepartmentBuildingInput, m.wiz.State())
	assert.False(t, m.wiz.HasCredential(), "leaving confirm must drop the credential")
	assert.Equal(t, "SAS Hall", m.building.Selected())

	send(m, press(tea.KeyEsc))
	assert.Equal(t, enroll.StateNameInput, m.wiz.State())
	assert.Equal(t, "Ada", m.firstName.Value())
	assert.Equal(t, "Lovelace", m.lastName.Value())

	send(m, press(tea.KeyEnter))
	assert.Equal(t, enroll.StateDepartmentBuildingInput, m.wiz.State())
	assert.Equal(t, "Dean's Office", m.wiz.Record().Department)
}

func TestForceQuitDropsCredential(t *testing.T) {
	m := newTestModel(&fakeRunner{})
	toConfirm(t, m)

	send(m, runes("hunter2"))
	require.True(t, m.wiz.HasCredential())

	assert.True(t, isQuit(send(m, press(tea.KeyCtrlC))))
	assert.False(t, m.wiz.HasCredential(), "ctrl+c must zero the held credential")
	assert.Empty(t, m.password.Value())
}

func TestConfirmRequiresPassword(t *testing.T) {
	m := newTestModel(&fakeRunner{})
	toConfirm(t, m)

	send(m, press(tea.KeyEnter))
	assert.Equal(t, enroll.StateConfirm, m.wiz.State())

	send(m, runes("x"), press(tea.KeyBackspace))
	assert.False(t, m.wiz.HasCredential())
}

// =============================================================================
// SUBMISSION TESTS
// =============================================================================

func submit(t *testing.T, m *Model, password string) {
	t.Helper()
	toConfirm(t, m)
	send(m, runes(password))
	cmd := send(m, press(tea.KeyEnter))
	require.Equal(t, enroll.StateSubmitting, m.wiz.State())
	assert.Empty(t, m.password.Value(), "password input must be cleared")

	var result *submitResultMsg
	for _, msg := range collect(cmd) {
		if r, ok := msg.(submitResultMsg); ok {
			result = &r
		}
	}
	require.NotNil(t, result, "advance into submitting should start the command")

	// input is ignored while the command runs
	assert.Nil(t, send(m, press(tea.KeyCtrlC)))
	assert.Nil(t, send(m, runes("q")))
	assert.Equal(t, enroll.StateSubmitting, m.wiz.State())

	send(m, *result)
	require.Equal(t, enroll.StateDone, m.wiz.State())
}

func TestSubmitSuccess(t *testing.T) {
	runner := &fakeRunner{result: privileged.Result{ExitCode: 0, Output: "Submitting data"}}
	m := newTestModel(runner)
	submit(t, m, "hunter2")

	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, "hunter2", runner.secret)
	assert.NotContains(t, runner.line, "hunter2")
	assert.Contains(t, runner.line, "'Ada Lovelace'")
	assert.Contains(t, runner.line, "NCSU-SAS Hall")

	assert.True(t, m.wiz.Succeeded())
	assert.Contains(t, m.View(), "Enrollment complete")
	assert.True(t, isQuit(send(m, press(tea.KeyEnter))))
}

func TestSubmitFailureCopiesOutput(t *testing.T) {
	runner := &fakeRunner{result: privileged.Result{ExitCode: 1, Output: "Sorry, try again."}}
	m := newTestModel(runner)

	var copied string
	orig := copyToClipboard
	copyToClipboard = func(s string) error { copied = s; return nil }
	defer func() { copyToClipboard = orig }()

	submit(t, m, "wrong")
	assert.False(t, m.wiz.Succeeded())

	view := m.View()
	assert.Contains(t, view, "Enrollment failed")
	assert.Contains(t, view, "Sorry, try again.")

	msgs := collect(send(m, runes("c")))
	require.Len(t, msgs, 1)
	send(m, msgs[0])
	assert.Equal(t, "Sorry, try again.", copied)
	assert.Contains(t, m.View(), "copied")
}

func TestCopyFailureIsReported(t *testing.T) {
	m := newTestModel(&fakeRunner{result: privileged.Result{ExitCode: -1, Output: "failed to launch process"}})
	orig := copyToClipboard
	copyToClipboard = func(string) error { return errors.New("no clipboard") }
	defer func() { copyToClipboard = orig }()

	submit(t, m, "pw")
	for _, msg := range collect(send(m, runes("c"))) {
		send(m, msg)
	}
	assert.True(t, strings.Contains(m.status, "no clipboard"))
}

func TestSubmitErrorQuits(t *testing.T) {
	m := newTestModel(&fakeRunner{})
	toConfirm(t, m)

	cmd := send(m, submitResultMsg{err: enroll.ErrNotSubmitting})
	assert.True(t, isQuit(cmd))
	assert.ErrorIs(t, m.Err(), enroll.ErrNotSubmitting)
}
