// Package prompt asks the user yes/no questions on the terminal.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Modes accepted by New
const (
	ModeAuto = "auto"
	ModeTUI  = "tui"
	ModeLine = "line"
)

// Confirmer asks a yes/no question. It blocks until the user answers.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// New returns the Confirmer for mode. In auto mode the interactive prompt is
// used only when in is a terminal.
func New(mode string, in io.Reader, out io.Writer) (Confirmer, error) {
	switch mode {
	case ModeTUI:
		return &TeaPrompter{In: in, Out: out}, nil
	case ModeLine:
		return &LinePrompter{In: in, Out: out}, nil
	case ModeAuto, "":
		if isTerminal(in) {
			return &TeaPrompter{In: in, Out: out}, nil
		}
		return &LinePrompter{In: in, Out: out}, nil
	default:
		return nil, fmt.Errorf("unknown prompt mode %q", mode)
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// isYes reports whether answer accepts the question
func isYes(answer string) bool {
	a := strings.ToLower(strings.TrimSpace(answer))
	return a == "y" || a == "yes"
}

// LinePrompter prints the question and reads a single line
type LinePrompter struct {
	In  io.Reader
	Out io.Writer
}

// Confirm implements Confirmer. End of input counts as "no".
func (p *LinePrompter) Confirm(question string) (bool, error) {
	if _, err := fmt.Fprintf(p.Out, "%s [y/N] ", question); err != nil {
		return false, err
	}

	line, err := bufio.NewReader(p.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return isYes(line), nil
}
