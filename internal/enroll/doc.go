// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package enroll implements the enrollment wizard: a linear, validated state
machine that collects the operator's identity and organizational metadata and
hands a single privileged recon command to a privileged.Runner.

# States

	Acknowledge -> NameInput -> DepartmentBuildingInput -> Confirm -> Submitting -> Done

Each forward step is gated. Advance rejects the transition with a
*ValidationError when the step's required fields are empty, whether or not a
front end has disabled its Next button. Back is allowed from NameInput,
DepartmentBuildingInput and Confirm and never discards entered fields.

# Submission

Advancing from Confirm prepares the Invocation (department group, prefixed
building, quoted command line) and enters Submitting. The front end then calls
Submit from a worker goroutine and feeds the Result back through Complete on
the goroutine that owns the wizard:

	if err := w.Advance(); err != nil { ... }       // Confirm -> Submitting
	go func() { res, _ := w.Submit(ctx); results <- res }()
	...
	w.Complete(<-results)                             // Submitting -> Done

The credential is held only between SetCredential and Submit, in memory locked
against swapping where the platform allows it. It is never part of the command
line, never logged, and is zeroed once the runner returns.

# Notifications

Subscribe registers a callback that receives an Event after every state change
or field edit, so presentation layers can redraw without polling.
*/
package enroll
