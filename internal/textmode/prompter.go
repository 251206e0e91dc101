// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package textmode runs the enrollment wizard as a line-oriented dialogue for
// terminals where the full-screen interface is unavailable or unwanted.
package textmode

import (
	"errors"
	"io"
	"strings"

	"github.com/peterh/liner"
)

// ErrCancelled is returned when the operator aborts with ctrl+c, ctrl+d or q.
var ErrCancelled = errors.New("enrollment cancelled")

// Prompter reads one line of operator input per call.
type Prompter interface {
	// Prompt reads a visible line. completions, when non-empty, are offered
	// on tab.
	Prompt(prompt string, completions []string) (string, error)
	// PasswordPrompt reads a line without echo.
	PasswordPrompt(prompt string) (string, error)
	Close() error
}

// LinerPrompter reads from the terminal with line editing.
type LinerPrompter struct {
	line *liner.State
}

// NewLinerPrompter puts the terminal into line-editing mode. Call Close to
// restore it. Both stdin and stdout must be terminals; NewPrompter checks.
func NewLinerPrompter() *LinerPrompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabPrints)
	return &LinerPrompter{line: line}
}

// Prompt implements Prompter.
func (p *LinerPrompter) Prompt(prompt string, completions []string) (string, error) {
	p.line.SetCompleter(completer(completions))
	s, err := p.line.Prompt(prompt)
	return s, translate(err)
}

// PasswordPrompt implements Prompter.
func (p *LinerPrompter) PasswordPrompt(prompt string) (string, error) {
	p.line.SetCompleter(nil)
	s, err := p.line.PasswordPrompt(prompt)
	return s, translate(err)
}

// Close restores the terminal.
func (p *LinerPrompter) Close() error {
	return p.line.Close()
}

func translate(err error) error {
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return ErrCancelled
	}
	return err
}

// completer offers options that start with the typed text, ignoring case.
func completer(options []string) liner.Completer {
	if len(options) == 0 {
		return nil
	}
	return func(line string) []string {
		prefix := strings.ToLower(line)
		var out []string
		for _, opt := range options {
			if strings.HasPrefix(strings.ToLower(opt), prefix) {
				out = append(out, opt)
			}
		}
		return out
	}
}
