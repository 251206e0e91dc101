// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package wizard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cos-it/enrollhelper/internal/enroll"
	"github.com/cos-it/enrollhelper/internal/ui/styles"
)

// maxOutputLines caps the diagnostic output shown on the failure screen.
const maxOutputLines = 12

// View renders the current screen.
func (m *Model) View() string {
	var body string
	state := m.wiz.State()
	switch state {
	case enroll.StateAcknowledge:
		body = m.viewAcknowledge()
	case enroll.StateNameInput:
		body = m.viewName()
	case enroll.StateDepartmentBuildingInput:
		body = m.viewPlacement()
	case enroll.StateConfirm:
		body = m.viewConfirm()
	case enroll.StateSubmitting:
		body = m.viewSubmitting()
	case enroll.StateDone:
		body = m.viewDone()
	}

	width := styles.PanelWidth(m.width)
	var s strings.Builder
	s.WriteString(m.theme.Title.Render(m.opts.Title))
	s.WriteString("\n")
	s.WriteString(m.theme.Panel.Width(width).Render(body))
	s.WriteString("\n")

	res, ok := m.wiz.Result()
	if bindings := m.keys.bindingsFor(state, ok && !res.Success()); len(bindings) > 0 {
		s.WriteString(m.help.ShortHelpView(bindings))
		s.WriteString("\n")
	}
	return m.center(s.String())
}

func (m *Model) viewAcknowledge() string {
	var s strings.Builder
	s.WriteString(m.theme.Banner.Render("Computer Enrollment"))
	s.WriteString("\n\n")
	s.WriteString(m.acknowledge)
	s.WriteString("\n\n")
	s.WriteString(m.theme.Button("I Understand", true))
	return s.String()
}

func (m *Model) viewName() string {
	var s strings.Builder
	s.WriteString(m.stepHeader(1, "Who will use this computer?"))
	s.WriteString(m.fieldLabel("First name", m.focus == focusFirst))
	s.WriteString(m.firstName.View())
	s.WriteString("\n\n")
	s.WriteString(m.fieldLabel("Last name", m.focus == focusSecond))
	s.WriteString(m.lastName.View())
	s.WriteString("\n\n")
	s.WriteString(m.actionRow())
	return s.String()
}

func (m *Model) viewPlacement() string {
	width := styles.PanelWidth(m.width) - 6
	var s strings.Builder
	s.WriteString(m.stepHeader(2, "Where will this computer live?"))
	s.WriteString(m.fieldLabel("Department", m.focus == focusFirst))
	s.WriteString(m.department.View(m.theme, width))
	s.WriteString("\n\n")
	s.WriteString(m.fieldLabel("Building", m.focus == focusSecond))
	s.WriteString(m.building.View(m.theme, width))
	s.WriteString("\n\n")
	s.WriteString(m.actionRow())
	return s.String()
}

func (m *Model) viewConfirm() string {
	rec := m.wiz.Record()
	var s strings.Builder
	s.WriteString(m.stepHeader(3, "Confirm and authorize"))
	s.WriteString(m.summaryRow("Name", rec.FullName()))
	s.WriteString(m.summaryRow("Department", rec.Department))
	s.WriteString(m.summaryRow("Building", rec.Building))
	s.WriteString("\n")
	s.WriteString(m.fieldLabel("Administrator password", true))
	s.WriteString(m.password.View())
	s.WriteString("\n\n")
	s.WriteString(m.theme.Button("Enroll", m.wiz.CanAdvance()))
	return s.String()
}

func (m *Model) viewSubmitting() string {
	var s strings.Builder
	s.WriteString(fmt.Sprintf("%s Updating computer information...\n\n", m.spinner.View()))
	s.WriteString(m.theme.Warning.Render(m.opts.SubmittingNotice))
	return s.String()
}

func (m *Model) viewDone() string {
	res, _ := m.wiz.Result()
	var s strings.Builder
	if res.Success() {
		s.WriteString(m.theme.Success.Render("✓ Enrollment complete"))
		s.WriteString("\n\n")
		s.WriteString("This computer has been updated. You may close this window.")
	} else {
		s.WriteString(m.theme.Error.Render("✗ Enrollment failed"))
		s.WriteString("\n\n")
		s.WriteString("The computer could not be updated. Contact IT support and\ninclude the output below.")
		if out := tailLines(res.Output, maxOutputLines); out != "" {
			s.WriteString("\n\n")
			s.WriteString(m.theme.Output.Render(out))
		}
		s.WriteString("\n\n")
		s.WriteString(m.theme.Hint.Render(fmt.Sprintf("exit code %d", res.ExitCode)))
	}
	if m.status != "" {
		s.WriteString("\n\n")
		s.WriteString(m.theme.Hint.Render(m.status))
	}
	return s.String()
}

// =============================================================================
// HELPERS
// =============================================================================

func (m *Model) stepHeader(step int, title string) string {
	return m.theme.Subtitle.Render(fmt.Sprintf("Step %d of 3", step)) + "\n" +
		m.theme.Label.Render(title) + "\n\n"
}

func (m *Model) fieldLabel(label string, focused bool) string {
	if focused {
		return m.theme.Selected.Render(label) + "\n"
	}
	return m.theme.Label.Render(label) + "\n"
}

func (m *Model) summaryRow(label, value string) string {
	return m.theme.Hint.Render(fmt.Sprintf("%-12s", label)) + m.theme.Value.Render(value) + "\n"
}

// actionRow renders the Next button, disabled while the screen is incomplete.
func (m *Model) actionRow() string {
	label := "Next"
	if m.focus == focusButton {
		label = "› Next"
	}
	return m.theme.Button(label, m.wiz.CanAdvance())
}

// center places content in the middle of the terminal when its size is known.
func (m *Model) center(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// tailLines returns at most n trailing lines of s.
func tailLines(s string, n int) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return "…\n" + strings.Join(lines[len(lines)-n:], "\n")
}
