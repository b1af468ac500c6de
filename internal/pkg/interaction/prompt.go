// Package interaction implements user prompts for the CLI.
package interaction

import (
	"fmt"
	"io"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/mattn/go-isatty"
)

type Prompt struct {
	interactive bool
	stdin       terminal.FileReader
	stdout      terminal.FileWriter
	stderr      io.Writer
}

type Question struct {
	Label       string
	Description string
	Default     string
	Validator   survey.Validator
	Hidden      bool
}

type Confirm struct {
	Label       string
	Description string
	Default     bool
}

type SelectIndex struct {
	Label       string
	Description string
	Options     []string
	Default     int
	UseDefault  bool
}

func NewPrompt(stdin terminal.FileReader, stdout terminal.FileWriter, stderr io.Writer) *Prompt {
	return &Prompt{
		interactive: isInteractiveTerminal(stdin, stdout),
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
	}
}

func (p *Prompt) IsInteractive() bool {
	return p.interactive
}

// Ask a question, ok = false if the terminal is not interactive or the user
// canceled the prompt.
func (p *Prompt) Ask(q *Question) (result string, ok bool) {
	if !p.interactive {
		return "", false
	}
	p.printDescription(q.Description)

	var opts []survey.AskOpt
	opts = append(opts, survey.WithStdio(p.stdin, p.stdout, p.stderr))
	if q.Validator != nil {
		opts = append(opts, survey.WithValidator(q.Validator))
	}

	var err error
	if q.Hidden {
		err = survey.AskOne(&survey.Password{Message: q.Label}, &result, opts...)
	} else {
		err = survey.AskOne(&survey.Input{Message: q.Label, Default: q.Default}, &result, opts...)
	}
	if err != nil {
		p.error(err)
		return "", false
	}
	return result, true
}

func (p *Prompt) Confirm(c *Confirm) bool {
	if !p.interactive {
		return c.Default
	}
	p.printDescription(c.Description)

	result := c.Default
	err := survey.AskOne(
		&survey.Confirm{Message: c.Label, Default: c.Default},
		&result,
		survey.WithStdio(p.stdin, p.stdout, p.stderr),
	)
	if err != nil {
		p.error(err)
		return false
	}
	return result
}

// SelectIndex returns the index of the selected option.
func (p *Prompt) SelectIndex(s *SelectIndex) (index int, ok bool) {
	if !p.interactive {
		if s.UseDefault {
			return s.Default, true
		}
		return 0, false
	}
	p.printDescription(s.Description)

	err := survey.AskOne(
		&survey.Select{Message: s.Label, Options: s.Options, Default: s.Options[s.Default]},
		&index,
		survey.WithStdio(p.stdin, p.stdout, p.stderr),
	)
	if err != nil {
		p.error(err)
		return 0, false
	}
	return index, true
}

func (p *Prompt) printDescription(description string) {
	if len(description) > 0 {
		_, _ = fmt.Fprintf(p.stdout, "\n%s\n", description)
	}
}

func (p *Prompt) error(err error) {
	_, _ = fmt.Fprintf(p.stderr, "\n%s\n", err)
}

func isInteractiveTerminal(stdin terminal.FileReader, stdout terminal.FileWriter) bool {
	return isTerminal(stdin.Fd()) && isTerminal(stdout.Fd())
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
