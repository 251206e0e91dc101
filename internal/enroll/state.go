// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package enroll

// State is a wizard stage.
type State int

const (
	StateAcknowledge State = iota
	StateNameInput
	StateDepartmentBuildingInput
	StateConfirm
	StateSubmitting
	StateDone
)

var stateNames = [...]string{
	StateAcknowledge:             "acknowledge",
	StateNameInput:               "name-input",
	StateDepartmentBuildingInput: "department-building-input",
	StateConfirm:                 "confirm",
	StateSubmitting:              "submitting",
	StateDone:                    "done",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// previous maps each state that allows back-navigation to its predecessor.
var previous = map[State]State{
	StateNameInput:               StateAcknowledge,
	StateDepartmentBuildingInput: StateNameInput,
	StateConfirm:                 StateDepartmentBuildingInput,
}

// CanGoBack reports whether Back is permitted from s.
func (s State) CanGoBack() bool {
	_, ok := previous[s]
	return ok
}
