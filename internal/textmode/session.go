// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package textmode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/cos-it/enrollhelper/internal/catalog"
	"github.com/cos-it/enrollhelper/internal/config"
	"github.com/cos-it/enrollhelper/internal/enroll"
	"github.com/cos-it/enrollhelper/internal/privileged"
)

// backToken typed at any visible prompt returns to the previous screen.
const backToken = "<"

const rule = "--------------------------------------------------------------------------------"

// Options configures a Session.
type Options struct {
	Title              string
	AcknowledgeMessage string
	SubmittingNotice   string

	// Color enables ANSI styling of headings and results.
	Color bool
}

// Session drives an enroll.Wizard through a Prompter.
type Session struct {
	wiz  *enroll.Wizard
	cat  *catalog.Catalog
	in   Prompter
	out  *termenv.Output
	opts Options
}

// NewSession creates a session writing to w. A nil cat uses the fallback
// catalog.
func NewSession(wiz *enroll.Wizard, cat *catalog.Catalog, in Prompter, w io.Writer, opts Options) *Session {
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
	profile := termenv.Ascii
	if opts.Color {
		profile = termenv.ColorProfile()
	}
	return &Session{
		wiz:  wiz,
		cat:  cat,
		in:   in,
		out:  termenv.NewOutput(w, termenv.WithProfile(profile)),
		opts: opts,
	}
}

// Run walks the wizard to Done. It returns ErrCancelled if the operator quits
// before submitting; otherwise inspect the wizard for the outcome.
func (s *Session) Run(ctx context.Context) error {
	s.header()

	for {
		var err error
		switch s.wiz.State() {
		case enroll.StateAcknowledge:
			err = s.acknowledge()
		case enroll.StateNameInput:
			err = s.names()
		case enroll.StateDepartmentBuildingInput:
			err = s.placement()
		case enroll.StateConfirm:
			err = s.confirm()
		case enroll.StateSubmitting:
			err = s.submit(ctx)
		case enroll.StateDone:
			s.report()
			return nil
		}
		if err != nil {
			s.wiz.ClearCredential()
			return err
		}
	}
}

// =============================================================================
// SCREENS
// =============================================================================

func (s *Session) acknowledge() error {
	s.println(s.opts.AcknowledgeMessage)
	s.println("")
	in, err := s.in.Prompt("Press Enter to continue (or 'q' to quit): ", nil)
	if err != nil {
		return err
	}
	if strings.EqualFold(strings.TrimSpace(in), "q") {
		return ErrCancelled
	}
	return s.wiz.Advance()
}

func (s *Session) names() error {
	s.section("NAME")
	rec := s.wiz.Record()

	first, back, err := s.ask("First name", rec.FirstName, nil)
	if err != nil || back {
		return s.backOr(err)
	}
	if err := s.wiz.SetFirstName(first); err != nil {
		return err
	}

	last, back, err := s.ask("Last name", rec.LastName, nil)
	if err != nil || back {
		return s.backOr(err)
	}
	if err := s.wiz.SetLastName(last); err != nil {
		return err
	}
	return s.advanceOrExplain()
}

func (s *Session) placement() error {
	s.section("DEPARTMENT AND BUILDING")
	rec := s.wiz.Record()

	dept, back, err := s.choose("Department", s.cat.Departments, rec.Department)
	if err != nil || back {
		return s.backOr(err)
	}
	if err := s.wiz.SetDepartment(dept); err != nil {
		return err
	}

	building, back, err := s.choose("Building", s.cat.Buildings, rec.Building)
	if err != nil || back {
		return s.backOr(err)
	}
	if err := s.wiz.SetBuilding(building); err != nil {
		return err
	}
	return s.advanceOrExplain()
}

func (s *Session) confirm() error {
	s.section("CONFIRM")
	rec := s.wiz.Record()
	s.printf("  Name:        %s\n", rec.FullName())
	s.printf("  Department:  %s\n", rec.Department)
	s.printf("  Building:    %s\n", rec.Building)
	s.println("")

	in, err := s.in.Prompt("Enroll this computer? [Y/n, < to go back]: ", nil)
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(in)) {
	case backToken:
		return s.wiz.Back()
	case "n", "no", "q":
		return ErrCancelled
	}

	for {
		pw, err := s.in.PasswordPrompt("Administrator password: ")
		if err != nil {
			return err
		}
		if pw == "" {
			s.println(s.warn("A password is required."))
			continue
		}
		secret := []byte(pw)
		err = s.wiz.SetCredential(secret)
		privileged.ZeroBytes(secret)
		if err != nil {
			return err
		}
		return s.wiz.Advance()
	}
}

func (s *Session) submit(ctx context.Context) error {
	s.section("UPDATING")
	s.println(s.opts.SubmittingNotice)
	s.println("Please wait...")

	res, err := s.wiz.Submit(ctx)
	if err != nil {
		return err
	}
	return s.wiz.Complete(res)
}

func (s *Session) report() {
	res, _ := s.wiz.Result()
	s.println("")
	if res.Success() {
		s.println(s.good("Enrollment complete. You may close this window."))
		return
	}
	s.println(s.bad("Enrollment failed. Contact IT support and include the output below."))
	if out := strings.TrimSpace(res.Output); out != "" {
		s.println("")
		s.println(out)
	}
	s.printf("\nexit code %d\n", res.ExitCode)
}

// =============================================================================
// INPUT HELPERS
// =============================================================================

// ask prompts for a value, keeping current when the answer is empty.
func (s *Session) ask(label, current string, completions []string) (value string, back bool, err error) {
	prompt := label + ": "
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]: ", label, current)
	}
	in, err := s.in.Prompt(prompt, completions)
	if err != nil {
		return "", false, err
	}
	in = strings.TrimSpace(in)
	if in == backToken {
		return "", true, nil
	}
	if in == "" {
		return current, false, nil
	}
	return in, false, nil
}

// choose lists options and resolves the answer to one of them. A number picks
// by position; text must match an option, ignoring case, or prefix exactly
// one option.
func (s *Session) choose(label string, options []string, current string) (string, bool, error) {
	for i, opt := range options {
		s.printf("  %3d) %s\n", i+1, opt)
	}
	for {
		in, back, err := s.ask(label+" (number or name)", current, options)
		if err != nil || back {
			return "", back, err
		}
		if v, ok := resolve(in, options); ok {
			return v, false, nil
		}
		s.println(s.warn(fmt.Sprintf("%q does not match a single %s.", in, strings.ToLower(label))))
	}
}

func resolve(in string, options []string) (string, bool) {
	if in == "" {
		return "", false
	}
	if n, err := strconv.Atoi(in); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1], true
		}
		return "", false
	}
	var prefixed []string
	for _, opt := range options {
		if strings.EqualFold(opt, in) {
			return opt, true
		}
		if strings.HasPrefix(strings.ToLower(opt), strings.ToLower(in)) {
			prefixed = append(prefixed, opt)
		}
	}
	if len(prefixed) == 1 {
		return prefixed[0], true
	}
	return "", false
}

func (s *Session) backOr(err error) error {
	if err != nil {
		return err
	}
	return s.wiz.Back()
}

// advanceOrExplain advances, or prints the missing fields and stays.
func (s *Session) advanceOrExplain() error {
	err := s.wiz.Advance()
	var verr *enroll.ValidationError
	if errors.As(err, &verr) {
		s.println(s.warn("Required: " + strings.Join(verr.Missing, ", ")))
		return nil
	}
	return err
}

// =============================================================================
// OUTPUT
// =============================================================================

func (s *Session) header() {
	s.println("")
	s.println(rule)
	s.println(s.out.String(center(strings.ToUpper(s.opts.Title), len(rule))).Bold().Foreground(s.out.Color("#CC0000")).String())
	s.println(center("Computer Enrollment", len(rule)))
	s.println(rule)
	s.println("")
}

func (s *Session) section(title string) {
	s.println("")
	s.println(rule)
	s.println(s.out.String(center(title, len(rule))).Bold().String())
	s.println(rule)
}

func (s *Session) good(msg string) string {
	return s.out.String(msg).Foreground(s.out.Color("#34D399")).Bold().String()
}

func (s *Session) bad(msg string) string {
	return s.out.String(msg).Foreground(s.out.Color("#FB7185")).Bold().String()
}

func (s *Session) warn(msg string) string {
	return s.out.String(msg).Foreground(s.out.Color("#FBBF24")).String()
}

func (s *Session) println(msg string) {
	fmt.Fprintln(s.out, msg)
}

func (s *Session) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func center(text string, width int) string {
	pad := (width - len(text)) / 2
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}
