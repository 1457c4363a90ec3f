package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/calvinalkan/jobtrack/internal/job"
)

// prompter asks the user for one line at a time.
type prompter interface {
	// Prompt shows label and returns the entered line. def is offered as
	// the answer: pre-filled on a terminal, used on empty input otherwise.
	Prompt(label, def string) (string, error)
	Close() error
}

// newPrompter returns a line editor when in is a terminal and a plain line
// reader otherwise. Plain prompts are written to errOut so stdout stays
// clean for piping.
func newPrompter(in io.Reader, errOut io.Writer) prompter {
	if f, ok := in.(*os.File); ok && isTerminal(f.Fd()) {
		l := liner.NewLiner()
		l.SetCtrlCAborts(true)
		l.SetCompleter(completeStatus)

		return &terminalPrompter{line: l}
	}

	if in == nil {
		in = strings.NewReader("")
	}

	return &linePrompter{r: bufio.NewReader(in), out: errOut}
}

func completeStatus(line string) []string {
	var out []string

	for _, s := range job.Statuses() {
		if strings.HasPrefix(strings.ToLower(string(s)), strings.ToLower(line)) {
			out = append(out, string(s))
		}
	}

	return out
}

type terminalPrompter struct {
	line *liner.State
}

func (p *terminalPrompter) Prompt(label, def string) (string, error) {
	s, err := p.line.PromptWithSuggestion(label+": ", def, -1)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
			return "", errAborted
		}

		return "", fmt.Errorf("read input: %w", err)
	}

	return strings.TrimSpace(s), nil
}

func (p *terminalPrompter) Close() error {
	return p.line.Close()
}

type linePrompter struct {
	r   *bufio.Reader
	out io.Writer
}

func (p *linePrompter) Prompt(label, def string) (string, error) {
	if def != "" {
		_, _ = fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		_, _ = fmt.Fprintf(p.out, "%s: ", label)
	}

	line, err := p.r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", errAborted
		}

		return "", fmt.Errorf("read input: %w", err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}

	return line, nil
}

func (p *linePrompter) Close() error {
	return nil
}

// confirm asks a yes/no question; anything but y or yes is no.
func confirm(p prompter, question string) (bool, error) {
	answer, err := p.Prompt(question+" (y/N)", "")
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
