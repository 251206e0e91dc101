// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package wizard

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cos-it/enrollhelper/internal/catalog"
	"github.com/cos-it/enrollhelper/internal/config"
	"github.com/cos-it/enrollhelper/internal/enroll"
	"github.com/cos-it/enrollhelper/internal/privileged"
	"github.com/cos-it/enrollhelper/internal/ui/styles"
)

// Options holds the labels shown by the screens. Empty fields fall back to
// the config defaults.
type Options struct {
	Title              string
	AcknowledgeMessage string
	SubmittingNotice   string

	// Context is passed to the runner. Defaults to context.Background.
	Context context.Context
}

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// focus slots on the input screens
const (
	focusFirst = iota
	focusSecond
	focusButton
	focusCount
)

// Model is the tea.Model for the enrollment wizard.
type Model struct {
	wiz   *enroll.Wizard
	opts  Options
	theme *styles.Theme
	keys  keyMap
	help  help.Model

	width  int
	height int
	focus  int

	firstName  textinput.Model
	lastName   textinput.Model
	department picker
	building   picker
	password   textinput.Model
	spinner    spinner.Model

	// err holds a wizard error that the UI could not recover from
	err error
	// status is a one-line note on the done screen, such as a copy result
	status string

	// acknowledge is the rendered acknowledge message
	acknowledge string
}

// =============================================================================
// MESSAGES
// =============================================================================

// submitResultMsg carries the outcome of Wizard.Submit back to Update.
type submitResultMsg struct {
	result privileged.Result
	err    error
}

// copyResultMsg reports a clipboard write.
type copyResultMsg struct {
	err error
}

// New builds a model over w. cat supplies the picker options; nil uses the
// fallback catalog.
func New(w *enroll.Wizard, cat *catalog.Catalog, opts Options) *Model {
	if cat == nil {
		cat = catalog.Fallback()
	}
	if opts.Title == "" {
		opts.Title = config.DefaultTitle
	}
	if opts.AcknowledgeMessage == "" {
		opts.AcknowledgeMessage = config.DefaultAcknowledgeMessage
	}
	if opts.SubmittingNotice == "" {
		opts.SubmittingNotice = config.DefaultSubmittingNotice
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}

	theme := styles.NewTheme()

	first := newTextInput("First name")
	last := newTextInput("Last name")

	pw := newTextInput("Administrator password")
	pw.EchoMode = textinput.EchoPassword
	pw.EchoCharacter = '•'

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.Spinner

	m := &Model{
		wiz:        w,
		opts:       opts,
		theme:      theme,
		keys:       defaultKeyMap(),
		help:       help.New(),
		firstName:  first,
		lastName:   last,
		department: newPicker("Department", cat.Departments),
		building:   newPicker("Building", cat.Buildings),
		password:   pw,
		spinner:    s,
	}
	m.renderAcknowledge()
	m.syncFromWizard()
	return m
}

// renderAcknowledge renders the acknowledge message for the current width.
func (m *Model) renderAcknowledge() {
	m.acknowledge = m.theme.Markdown(m.opts.AcknowledgeMessage, styles.PanelWidth(m.width)-6)
}

func newTextInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 40
	ti.Prompt = "  "
	return ti
}

// Wizard returns the wizard the model drives.
func (m *Model) Wizard() *enroll.Wizard { return m.wiz }

// Err returns an unexpected wizard error that ended the program, if any.
func (m *Model) Err() error { return m.err }

// Init starts the cursor blink.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.renderAcknowledge()
		return m, nil

	case spinner.TickMsg:
		if m.wiz.State() != enroll.StateSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case submitResultMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		if err := m.wiz.Complete(msg.result); err != nil {
			m.err = err
			return m, tea.Quit
		}
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.status = "Could not copy to the clipboard: " + msg.err.Error()
		} else {
			m.status = "Output copied to the clipboard."
		}
		return m, nil
	}

	return m.updateInputs(msg)
}

// handleKey processes key presses for the current screen.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := m.wiz.State()

	// The recon run cannot be interrupted.
	if state == enroll.StateSubmitting {
		return m, nil
	}

	if key.Matches(msg, m.keys.ForceQuit) {
		m.password.Reset()
		m.wiz.ClearCredential()
		return m, tea.Quit
	}

	switch state {
	case enroll.StateAcknowledge:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m.advance()
		}
		return m, nil

	case enroll.StateNameInput:
		return m.handleNameKey(msg)

	case enroll.StateDepartmentBuildingInput:
		return m.handlePlacementKey(msg)

	case enroll.StateConfirm:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m.back()
		case key.Matches(msg, m.keys.Next):
			return m.advance()
		}
		return m.updateInputs(msg)

	case enroll.StateDone:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Next):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Copy):
			if res, ok := m.wiz.Result(); ok && !res.Success() {
				return m, copyOutput(res.Output)
			}
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.back()
	case key.Matches(msg, m.keys.NextFld), msg.Type == tea.KeyDown:
		return m, m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.PrevFld), msg.Type == tea.KeyUp:
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, m.keys.Next):
		if m.focus == focusButton || m.wiz.CanAdvance() {
			return m.advance()
		}
		return m, m.setFocus(m.focus + 1)
	}
	return m.updateInputs(msg)
}

func (m *Model) handlePlacementKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m.back()
	case key.Matches(msg, m.keys.NextFld):
		return m, m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.PrevFld):
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, m.keys.Next):
		if m.focus == focusButton {
			return m.advance()
		}
		p := m.focusedPicker()
		if p.Select() {
			m.pushPlacement()
		}
		return m, m.setFocus(m.focus + 1)
	case key.Matches(msg, m.keys.Clear):
		if p := m.focusedPicker(); p != nil {
			p.Clear()
			m.pushPlacement()
		}
		return m, nil
	}

	if p := m.focusedPicker(); p != nil {
		p.Update(msg)
	}
	return m, nil
}

// updateInputs forwards msg to the focused text input.
func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.wiz.State() {
	case enroll.StateNameInput:
		switch m.focus {
		case focusFirst:
			m.firstName, cmd = m.firstName.Update(msg)
		case focusSecond:
			m.lastName, cmd = m.lastName.Update(msg)
		}
		m.pushNames()
	case enroll.StateConfirm:
		m.password, cmd = m.password.Update(msg)
		m.pushPassword()
	}
	return m, cmd
}

// =============================================================================
// WIZARD SYNC
// =============================================================================

func (m *Model) pushNames() {
	// Only fails outside NameInput, which updateInputs has already checked.
	_ = m.wiz.SetFirstName(m.firstName.Value())
	_ = m.wiz.SetLastName(m.lastName.Value())
}

func (m *Model) pushPlacement() {
	// Picker options come from the same catalog the wizard validates against.
	_ = m.wiz.SetDepartment(m.department.Selected())
	_ = m.wiz.SetBuilding(m.building.Selected())
}

func (m *Model) pushPassword() {
	if m.password.Value() == "" {
		m.wiz.ClearCredential()
		return
	}
	secret := []byte(m.password.Value())
	_ = m.wiz.SetCredential(secret)
	privileged.ZeroBytes(secret)
}

// syncFromWizard loads the wizard's record into the widgets and resets focus
// for the current screen.
func (m *Model) syncFromWizard() tea.Cmd {
	rec := m.wiz.Record()
	m.firstName.SetValue(rec.FirstName)
	m.lastName.SetValue(rec.LastName)
	if rec.Department != "" {
		m.department.SetSelected(rec.Department)
	}
	if rec.Building != "" {
		m.building.SetSelected(rec.Building)
	}
	m.password.Reset()
	m.status = ""
	return m.setFocus(focusFirst)
}

// setFocus moves focus to slot, blurring everything else.
func (m *Model) setFocus(slot int) tea.Cmd {
	if slot >= focusCount {
		slot = focusButton
	}
	m.focus = slot
	m.firstName.Blur()
	m.lastName.Blur()
	m.password.Blur()
	m.department.Blur()
	m.building.Blur()

	switch m.wiz.State() {
	case enroll.StateNameInput:
		switch slot {
		case focusFirst:
			return m.firstName.Focus()
		case focusSecond:
			return m.lastName.Focus()
		}
	case enroll.StateDepartmentBuildingInput:
		if p := m.focusedPicker(); p != nil {
			p.Focus()
		}
	case enroll.StateConfirm:
		return m.password.Focus()
	}
	return nil
}

func (m *Model) focusedPicker() *picker {
	switch m.focus {
	case focusFirst:
		return &m.department
	case focusSecond:
		return &m.building
	}
	return nil
}

// =============================================================================
// TRANSITIONS
// =============================================================================

func (m *Model) advance() (tea.Model, tea.Cmd) {
	if !m.wiz.CanAdvance() {
		return m, nil
	}
	if err := m.wiz.Advance(); err != nil {
		var verr *enroll.ValidationError
		if errors.As(err, &verr) {
			return m, nil
		}
		m.err = err
		return m, tea.Quit
	}

	m.password.Reset()
	if m.wiz.State() == enroll.StateSubmitting {
		m.setFocus(focusButton)
		return m, tea.Batch(m.spinner.Tick, m.submit())
	}
	return m, m.syncFromWizard()
}

func (m *Model) back() (tea.Model, tea.Cmd) {
	if err := m.wiz.Back(); err != nil {
		return m, nil
	}
	return m, m.syncFromWizard()
}

// submit runs the recon command off the update goroutine.
func (m *Model) submit() tea.Cmd {
	ctx := m.opts.Context
	w := m.wiz
	return func() tea.Msg {
		res, err := w.Submit(ctx)
		return submitResultMsg{result: res, err: err}
	}
}

func copyOutput(output string) tea.Cmd {
	return func() tea.Msg {
		return copyResultMsg{err: copyToClipboard(output)}
	}
}
