// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package wizard is the Bubble Tea front end for the enrollment wizard.
//
// The Model owns an *enroll.Wizard and mutates it only from Update. The recon
// command runs in a tea.Cmd; its result comes back as a message and is
// applied with Wizard.Complete on the update goroutine.
//
// Screens:
//
//	acknowledge  -> mandatory-step notice, enter to begin
//	name         -> first and last name inputs
//	placement    -> department and building pickers (type to filter)
//	confirm      -> summary plus administrator password
//	submitting   -> spinner, no input accepted
//	done         -> success or failure with diagnostic output
package wizard
