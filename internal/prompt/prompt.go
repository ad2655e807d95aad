// Package prompt reads answers from the user. Engines depend on the
// Prompter interface so they can be driven by a terminal or by a script.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNoInput is returned when the input is exhausted before an answer was given.
var ErrNoInput = errors.New("no input")

// Prompter asks the user questions.
type Prompter interface {
	// Ask shows label and returns the trimmed answer.
	Ask(label string) (string, error)
	// Confirm asks a yes/no question. An empty answer means no.
	Confirm(question string) (bool, error)
	// Secret is Ask without echoing the answer.
	Secret(label string) (string, error)
}

// Terminal is a line-based Prompter reading from in and writing prompts to out.
type Terminal struct {
	src io.Reader
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal returns a Prompter over the given streams.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{src: in, in: bufio.NewReader(in), out: out}
}

func (t *Terminal) Ask(label string) (string, error) {
	fmt.Fprint(t.out, label)
	line, err := t.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrNoInput
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (t *Terminal) Confirm(question string) (bool, error) {
	return confirm(t, t.out, question)
}

// Secret reads without echo when the input is a terminal. Other inputs,
// such as pipes, are read like Ask.
func (t *Terminal) Secret(label string) (string, error) {
	f, ok := t.src.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return t.Ask(label)
	}
	fmt.Fprint(t.out, label)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(t.out)
	if err != nil {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// asker is the subset of Prompter that confirm builds on.
type asker interface {
	Ask(label string) (string, error)
}

func confirm(a asker, out io.Writer, question string) (bool, error) {
	for {
		answer, err := a.Ask(question + " [y/N] ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}
		fmt.Fprintln(out, "Please answer y or n.")
	}
}

// Scripted is a Prompter that replays canned answers in order. It records
// every label it was asked, which makes it useful for driving the
// interactive engines in tests and in non-interactive runs.
type Scripted struct {
	Answers []string
	Asked   []string
}

func (s *Scripted) Ask(label string) (string, error) {
	s.Asked = append(s.Asked, label)
	if len(s.Answers) == 0 {
		return "", ErrNoInput
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return strings.TrimSpace(answer), nil
}

func (s *Scripted) Confirm(question string) (bool, error) {
	return confirm(s, io.Discard, question)
}

func (s *Scripted) Secret(label string) (string, error) {
	return s.Ask(label)
}

// Complete returns the options starting with partial, in their original
// order and without duplicates.
func Complete(partial string, options []string) []string {
	seen := make(map[string]bool, len(options))
	var matches []string
	for _, o := range options {
		if seen[o] || !strings.HasPrefix(o, partial) {
			continue
		}
		seen[o] = true
		matches = append(matches, o)
	}
	return matches
}
