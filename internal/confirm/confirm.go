// Package confirm implements the yes/no checkpoint that precedes every mutation.
package confirm

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
)

// Outcome is the result of passing through the gate.
type Outcome int

const (
	// Canceled means the user declined; nothing may be sent.
	Canceled Outcome = iota
	// Confirmed means the user answered yes.
	Confirmed
	// Bypassed means --yes skipped the prompt.
	Bypassed
)

func (o Outcome) String() string {
	switch o {
	case Confirmed:
		return "confirmed"
	case Bypassed:
		return "bypassed"
	default:
		return "canceled"
	}
}

// Proceed reports whether the mutation may go ahead.
func (o Outcome) Proceed() bool {
	return o == Confirmed || o == Bypassed
}

// Suffix is appended to every question.
const Suffix = " [y/N]: "

// Prompter asks a single question and returns the raw answer line.
type Prompter interface {
	Prompt(question string) (string, error)
}

// Gate asks a Prompter before a mutation.
type Gate struct {
	Prompter Prompter
}

// Confirm returns Bypassed without prompting when skip is set. Otherwise it asks
// question and returns Confirmed only for "y" or "yes" (any case, surrounding
// whitespace ignored). An interrupted or closed input counts as a decline.
func (g Gate) Confirm(skip bool, question string) (Outcome, error) {
	if skip {
		return Bypassed, nil
	}
	answer, err := g.Prompter.Prompt(question + Suffix)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return Canceled, nil
		}
		return Canceled, err
	}
	if IsYes(answer) {
		return Confirmed, nil
	}
	return Canceled, nil
}

// IsYes reports whether answer is an affirmative reply.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// ReadlinePrompter prompts on a terminal line editor.
type ReadlinePrompter struct {
	Stdin  io.Reader
	Stdout io.Writer
}

// NewReadlinePrompter prompts on the process's stdin and stderr, keeping stdout
// clean for command output.
func NewReadlinePrompter() *ReadlinePrompter {
	return &ReadlinePrompter{Stdin: os.Stdin, Stdout: os.Stderr}
}

func (p *ReadlinePrompter) Prompt(question string) (string, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:                 question,
		Stdin:                  io.NopCloser(p.Stdin),
		Stdout:                 p.Stdout,
		DisableAutoSaveHistory: true,
		HistoryLimit:           -1,
	})
	if err != nil {
		return "", err
	}
	defer rl.Close()

	return rl.Readline()
}
