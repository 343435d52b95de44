// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// plain.go - Line-mode lock prompt.
//
// Command: plain
//
// Asks for a method, then reads the credential. Secrets are read without
// echo when stdin is a terminal. Patterns are typed as node ids and
// replayed through the recognizer as a gesture over the node centers, so
// they follow the same rules as a drawn pattern.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"golang.org/x/term"

	"github.com/jeranaias/applock/internal/lock"
	"github.com/jeranaias/applock/internal/pattern"
	"github.com/jeranaias/applock/internal/ui/styles"
)

// =============================================================================
// INPUT SOURCES
// =============================================================================

// LineReader reads one line after showing prompt. *liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
}

// SecretReader reads one line without echoing it.
type SecretReader interface {
	ReadSecret(prompt string) (string, error)
}

// ttySecret reads from the terminal with echo disabled.
type ttySecret struct {
	out io.Writer
	fd  int
}

func (s ttySecret) ReadSecret(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	b, err := term.ReadPassword(s.fd)
	fmt.Fprintln(s.out)
	if err != nil {
		return "", fmt.Errorf("failed to read secret: %w", err)
	}
	return string(b), nil
}

// lineSecret falls back to ordinary line input when stdin is not a
// terminal, which is the case for scripted input.
type lineSecret struct {
	lines LineReader
}

func (s lineSecret) ReadSecret(prompt string) (string, error) {
	return s.lines.Prompt(prompt)
}

// =============================================================================
// PLAIN SESSION
// =============================================================================

// PlainSession drives an engine from line input.
type PlainSession struct {
	engine *lock.Engine
	lines  LineReader
	secret SecretReader
	out    io.Writer
}

// NewPlainSession creates a line-mode session.
func NewPlainSession(engine *lock.Engine, lines LineReader, secret SecretReader, out io.Writer) *PlainSession {
	return &PlainSession{engine: engine, lines: lines, secret: secret, out: out}
}

// RunPlain runs a line-mode session on the process terminal.
func RunPlain(engine *lock.Engine, out io.Writer) (lock.State, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	var secret SecretReader = lineSecret{lines: line}
	if IsTTY() {
		secret = ttySecret{out: out, fd: int(os.Stdin.Fd())}
	}

	return NewPlainSession(engine, line, secret, out).Run()
}

// Run prompts until the engine reaches a terminal state or input ends.
// Leaving early returns ErrAborted.
func (s *PlainSession) Run() (lock.State, error) {
	fmt.Fprintln(s.out, TitleStyle.Render("applock"))

	for !s.engine.State().Terminal() {
		fmt.Fprintln(s.out, DimStyle.Render(fmt.Sprintf("Attempts left: %d of %d", s.engine.Remaining(), s.engine.MaxAttempts())))

		choice, err := s.lines.Prompt(fmt.Sprintf("Method [password/pin/pattern] (%s): ", s.engine.Modality()))
		if err != nil {
			return s.engine.State(), inputErr(err)
		}
		choice = strings.TrimSpace(choice)
		if choice == "q" || choice == "quit" {
			return s.engine.State(), ErrAborted
		}

		mod := s.engine.Modality()
		if choice != "" {
			if mod, err = lock.ParseModality(choice); err != nil {
				fmt.Fprintln(s.out, styles.RenderWarning(fmt.Sprintf("Unknown method %q.", choice)))
				continue
			}
		}
		if err := s.engine.SelectModality(mod); err != nil {
			return s.engine.State(), err
		}

		if s.engine.NeedsProvisioning(mod) {
			ok, err := s.provision()
			if err != nil {
				return s.engine.State(), err
			}
			if !ok {
				continue
			}
		}

		out, submitted, err := s.attempt(mod)
		if err != nil {
			return s.engine.State(), err
		}
		if submitted {
			fmt.Fprintln(s.out, renderOutcome(out))
		}
	}

	return s.engine.State(), nil
}

// provision asks for the session password. An empty answer cancels and
// falls back to PIN.
func (s *PlainSession) provision() (bool, error) {
	pw, err := s.secret.ReadSecret("Set a password for this session (empty to cancel): ")
	if err != nil {
		return false, inputErr(err)
	}
	if pw == "" {
		if err := s.engine.CancelPasswordProvisioning(lock.ModalityPIN); err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, styles.RenderInfo(fmt.Sprintf("Password not set. Switched to %s.", s.engine.Modality().Label())))
		return false, nil
	}
	if err := s.engine.ProvisionPassword(pw); err != nil {
		return false, err
	}
	fmt.Fprintln(s.out, styles.RenderInfo("Password set."))
	return true, nil
}

// attempt reads one credential for mod and verifies it. submitted is false
// when the input could not be read as a credential and no attempt was used.
func (s *PlainSession) attempt(mod lock.Modality) (lock.Outcome, bool, error) {
	switch mod {
	case lock.ModalityPattern:
		text, err := s.lines.Prompt("Pattern (e.g. 1-2-3-4): ")
		if err != nil {
			return lock.Outcome{}, false, inputErr(err)
		}
		seq, err := pattern.ParseSequence(text)
		if err != nil {
			fmt.Fprintln(s.out, styles.RenderWarning("Type node numbers 1-9, e.g. 1-5-9."))
			return lock.Outcome{}, false, nil
		}
		s.engine.Recognizer().Replay(seq)
		out, err := s.engine.SubmitPattern()
		return out, err == nil, err

	default:
		text, err := s.secret.ReadSecret(mod.Label() + ": ")
		if err != nil {
			return lock.Outcome{}, false, inputErr(err)
		}
		out, err := s.engine.Submit(text)
		return out, err == nil, err
	}
}

func renderOutcome(out lock.Outcome) string {
	switch {
	case out.Granted():
		return styles.RenderSuccess(out.Message())
	case out.LockedOut():
		return styles.RenderLocked(out.Message())
	case out.Kind == lock.OutcomeConfigurationError:
		return styles.RenderWarning(out.Message())
	default:
		return styles.RenderError(out.Message())
	}
}

// inputErr maps end of input and Ctrl+C onto ErrAborted.
func inputErr(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
		return ErrAborted
	}
	return fmt.Errorf("read input: %w", err)
}
