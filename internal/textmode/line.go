// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package textmode

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/cos-it/enrollhelper/internal/privileged"
)

// NewPrompter returns a line-editing prompter when in and out are both
// terminals, and a plain LinePrompter otherwise.
func NewPrompter(in *os.File, out io.Writer) Prompter {
	if isTerminal(in) && isTerminal(out) {
		return NewLinerPrompter()
	}
	return NewLinePrompter(in, out)
}

func isTerminal(v any) bool {
	f, ok := v.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// LinePrompter reads newline-terminated answers from a pipe, a file or a
// terminal whose output is redirected. Completions are not offered.
type LinePrompter struct {
	r   *bufio.Reader
	out io.Writer
	fd  int
	tty bool
}

// NewLinePrompter reads from in and writes prompts to out. When in is a
// terminal, passwords are read with echo off.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	p := &LinePrompter{r: bufio.NewReader(in), out: out}
	if f, ok := in.(interface{ Fd() uintptr }); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.tty = true
	}
	return p
}

// Prompt implements Prompter.
func (p *LinePrompter) Prompt(prompt string, _ []string) (string, error) {
	fmt.Fprint(p.out, prompt)
	return p.readLine()
}

// PasswordPrompt implements Prompter.
func (p *LinePrompter) PasswordPrompt(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.tty {
		return p.readLine()
	}
	b, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", translate(err)
	}
	s := string(b)
	privileged.ZeroBytes(b)
	return s, nil
}

// Close implements Prompter. The underlying reader is not closed.
func (p *LinePrompter) Close() error { return nil }

// readLine returns the next line without its terminator. A final line with
// no newline is still returned; EOF after that cancels.
func (p *LinePrompter) readLine() (string, error) {
	s, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && s != "" {
			return strings.TrimRight(s, "\r\n"), nil
		}
		return "", translate(err)
	}
	return strings.TrimRight(s, "\r\n"), nil
}
