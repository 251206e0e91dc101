// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package enroll

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"github.com/cos-it/enrollhelper/internal/catalog"
	"github.com/cos-it/enrollhelper/internal/privileged"
)

// =============================================================================
// TYPES
// =============================================================================

// Options configures a Wizard.
type Options struct {
	// Runner executes the recon command. Defaults to a privileged.SudoExecutor.
	Runner privileged.Runner

	// Command shapes the recon command line. Zero value means DefaultCommandSpec.
	Command CommandSpec

	// Catalog, when set, restricts department and building to its entries.
	Catalog *catalog.Catalog

	// Logger receives lifecycle records. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Event describes a change observed by subscribers.
type Event struct {
	From   State
	To     State
	Record Record
}

// Wizard is the enrollment state machine. All methods are safe for concurrent
// use; transitions are expected to come from a single owning goroutine, with
// Submit the only call made from a worker.
type Wizard struct {
	mu sync.Mutex

	state      State
	record     Record
	credential *privileged.Secret
	plan       *Invocation
	submitted  bool
	result     *privileged.Result

	runner  privileged.Runner
	spec    CommandSpec
	catalog *catalog.Catalog
	logger  *slog.Logger

	subscribers map[int]func(Event)
	nextSubID   int
}

// New creates a wizard in StateAcknowledge.
func New(opts Options) *Wizard {
	w := &Wizard{
		state:       StateAcknowledge,
		runner:      opts.Runner,
		spec:        opts.Command,
		catalog:     opts.Catalog,
		logger:      opts.Logger,
		subscribers: make(map[int]func(Event)),
	}
	if w.runner == nil {
		w.runner = privileged.NewSudoExecutor()
	}
	if w.spec.Executable == "" {
		w.spec = DefaultCommandSpec()
	}
	if w.logger == nil {
		w.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return w
}

// =============================================================================
// ACCESSORS
// =============================================================================

// State returns the current stage.
func (w *Wizard) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Record returns a copy of the collected fields.
func (w *Wizard) Record() Record {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.record
}

// Plan returns the prepared invocation once the wizard has entered Submitting.
func (w *Wizard) Plan() (Invocation, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.plan == nil {
		return Invocation{}, false
	}
	return *w.plan, true
}

// Result returns the command result once the wizard is Done.
func (w *Wizard) Result() (privileged.Result, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.result == nil {
		return privileged.Result{}, false
	}
	return *w.result, true
}

// Succeeded reports whether the wizard is Done with a zero exit code.
func (w *Wizard) Succeeded() bool {
	res, ok := w.Result()
	return ok && res.Success()
}

// HasCredential reports whether a non-empty credential is held.
func (w *Wizard) HasCredential() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.credential.Len() > 0
}

// =============================================================================
// FIELD MUTATION
// =============================================================================

// SetFirstName sets the first name. Only valid in NameInput.
func (w *Wizard) SetFirstName(v string) error {
	return w.setField(StateNameInput, &w.record.FirstName, v)
}

// SetLastName sets the last name. Only valid in NameInput.
func (w *Wizard) SetLastName(v string) error {
	return w.setField(StateNameInput, &w.record.LastName, v)
}

// SetDepartment selects a department. Only valid in DepartmentBuildingInput.
// An empty value clears the selection.
func (w *Wizard) SetDepartment(v string) error {
	v = norm.NFC.String(strings.TrimSpace(v))
	if v != "" && w.catalog != nil && !w.catalog.HasDepartment(v) {
		return ErrUnknownOption
	}
	return w.setField(StateDepartmentBuildingInput, &w.record.Department, v)
}

// SetBuilding selects a building. Only valid in DepartmentBuildingInput.
// An empty value clears the selection.
func (w *Wizard) SetBuilding(v string) error {
	v = norm.NFC.String(strings.TrimSpace(v))
	if v != "" && w.catalog != nil && !w.catalog.HasBuilding(v) {
		return ErrUnknownOption
	}
	return w.setField(StateDepartmentBuildingInput, &w.record.Building, v)
}

func (w *Wizard) setField(owner State, field *string, v string) error {
	w.mu.Lock()
	if w.state != owner {
		w.mu.Unlock()
		return ErrFieldNotEditable
	}
	*field = norm.NFC.String(strings.TrimSpace(v))
	ev, subs := w.eventLocked(w.state)
	w.mu.Unlock()

	notify(subs, ev)
	return nil
}

// SetCredential stores a copy of secret in locked memory. Only valid in
// Confirm. The caller keeps ownership of secret and should zero it.
func (w *Wizard) SetCredential(secret []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateConfirm {
		return ErrFieldNotEditable
	}
	w.credential.Close()
	w.credential = privileged.NewSecret(secret)
	return nil
}

// ClearCredential zeroes and drops any held credential. It is safe in any
// state; a later Submit without a credential fails with ErrIncomplete.
func (w *Wizard) ClearCredential() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clearCredentialLocked()
}

func (w *Wizard) clearCredentialLocked() {
	w.credential.Close()
	w.credential = nil
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// CanAdvance reports whether Advance would succeed from the current state.
func (w *Wizard) CanAdvance() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gateLocked() == nil
}

// gateLocked returns the error Advance would return, or nil.
func (w *Wizard) gateLocked() error {
	var missing []string
	switch w.state {
	case StateAcknowledge:
		return nil
	case StateNameInput:
		missing = appendIfEmpty(missing, w.record.FirstName, FieldFirstName)
		missing = appendIfEmpty(missing, w.record.LastName, FieldLastName)
	case StateDepartmentBuildingInput:
		missing = appendIfEmpty(missing, w.record.Department, FieldDepartment)
		missing = appendIfEmpty(missing, w.record.Building, FieldBuilding)
	case StateConfirm:
		missing = w.record.Missing()
		if w.credential.Len() == 0 {
			missing = append(missing, FieldCredential)
		}
	case StateSubmitting:
		return ErrBusy
	default:
		return ErrTerminal
	}
	if len(missing) > 0 {
		return &ValidationError{State: w.state, Missing: missing}
	}
	return nil
}

// Advance performs the forward transition for the current state. Leaving
// Confirm prepares the invocation and enters Submitting; the command itself
// runs when Submit is called.
func (w *Wizard) Advance() error {
	w.mu.Lock()
	if err := w.gateLocked(); err != nil {
		w.mu.Unlock()
		return err
	}

	from := w.state
	w.state++
	if w.state == StateSubmitting {
		plan := w.spec.Build(w.record)
		w.plan = &plan
		w.logger.Info("enrollment submitting",
			"realname", plan.RealName,
			"building", plan.Building,
			"department_group", plan.DepartmentGroup,
		)
	}
	ev, subs := w.eventLocked(from)
	w.mu.Unlock()

	notify(subs, ev)
	return nil
}

// Back returns to the previous stage, keeping all entered fields. Leaving
// Confirm drops any typed credential.
func (w *Wizard) Back() error {
	w.mu.Lock()
	prev, ok := previous[w.state]
	if !ok {
		w.mu.Unlock()
		return ErrNoBack
	}
	from := w.state
	if from == StateConfirm {
		w.clearCredentialLocked()
	}
	w.state = prev
	ev, subs := w.eventLocked(from)
	w.mu.Unlock()

	notify(subs, ev)
	return nil
}

// Submit runs the prepared invocation with the held credential and blocks
// until it finishes. It does not change state; pass the result to Complete
// from the goroutine that owns the wizard. The credential is zeroed once the
// runner returns.
func (w *Wizard) Submit(ctx context.Context) (privileged.Result, error) {
	w.mu.Lock()
	if w.state != StateSubmitting || w.plan == nil {
		w.mu.Unlock()
		return privileged.Result{}, ErrNotSubmitting
	}
	if w.submitted {
		w.mu.Unlock()
		return privileged.Result{}, ErrAlreadySubmitted
	}
	if w.credential.Len() == 0 {
		w.mu.Unlock()
		return privileged.Result{}, &ValidationError{State: StateSubmitting, Missing: []string{FieldCredential}}
	}
	w.submitted = true
	secret := w.credential
	w.credential = nil
	line := w.plan.Line
	runner := w.runner
	w.mu.Unlock()

	defer secret.Close()
	return runner.Run(ctx, line, secret.Bytes()), nil
}

// Complete records the command result and enters Done.
func (w *Wizard) Complete(res privileged.Result) error {
	w.mu.Lock()
	if w.state != StateSubmitting {
		w.mu.Unlock()
		return ErrNotSubmitting
	}
	w.result = &res
	from := w.state
	w.state = StateDone

	if res.Success() {
		w.logger.Info("enrollment complete", "exit_code", res.ExitCode)
	} else {
		w.logger.Warn("enrollment failed", "exit_code", res.ExitCode)
	}
	w.logger.Debug("recon output", "output", res.Output)

	ev, subs := w.eventLocked(from)
	w.mu.Unlock()

	notify(subs, ev)
	return nil
}

// =============================================================================
// SUBSCRIPTIONS
// =============================================================================

// Subscribe registers fn for change notifications and returns a function that
// removes it. Callbacks run synchronously on the goroutine that made the
// change and must not call back into the wizard's mutating methods.
func (w *Wizard) Subscribe(fn func(Event)) (unsubscribe func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextSubID
	w.nextSubID++
	w.subscribers[id] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.subscribers, id)
	}
}

func (w *Wizard) eventLocked(from State) (Event, []func(Event)) {
	subs := make([]func(Event), 0, len(w.subscribers))
	for id := 0; id < w.nextSubID; id++ {
		if fn, ok := w.subscribers[id]; ok {
			subs = append(subs, fn)
		}
	}
	return Event{From: from, To: w.state, Record: w.record}, subs
}

func notify(subs []func(Event), ev Event) {
	for _, fn := range subs {
		fn(ev)
	}
}
