// Package prompt reads validated answers from a line-oriented input.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nibzard/familytree-go/internal/field"
)

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Out returns the writer questions go to.
func (p *Prompter) Out() io.Writer { return p.out }

// Line prints label and returns the next input line without surrounding
// whitespace. It returns io.EOF once input is exhausted.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		fmt.Fprintln(p.out)
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Ask re-prompts until the answer satisfies spec and returns the accepted
// value.
func (p *Prompter) Ask(spec field.Spec, label string) (string, error) {
	for {
		raw, err := p.Line(label)
		if err != nil {
			return "", err
		}
		v, err := spec.Validate(raw)
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(p.out, "Invalid input: %v\n", err)
	}
}

// AskInt asks with an IntSpec and converts the accepted answer.
func (p *Prompter) AskInt(spec field.IntSpec, label string) (field.Value[int], error) {
	for {
		raw, err := p.Ask(spec, label)
		if err != nil {
			return field.Value[int]{}, err
		}
		v, err := spec.Parse(raw)
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(p.out, "Invalid input: %v\n", err)
	}
}

// Confirm asks a yes/no question.
func (p *Prompter) Confirm(label string) (bool, error) {
	spec := field.BoolSpec
	spec.Name = label
	for {
		raw, err := p.Ask(spec, label+" (y/n)")
		if err != nil {
			return false, err
		}
		b, err := field.ParseBool(spec, raw)
		if err == nil {
			return b, nil
		}
		fmt.Fprintf(p.out, "Invalid input: %v\n", err)
	}
}

// Choose lists options numbered from 1 and returns the zero-based index of
// the one picked.
func (p *Prompter) Choose(title string, options []string) (int, error) {
	fmt.Fprintln(p.out, title)
	for i, o := range options {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, o)
	}
	spec := field.IntSpec{Name: "Option", Min: field.Bound(1), Max: field.Bound(len(options))}
	raw, err := p.Ask(spec, "Option")
	if err != nil {
		return 0, err
	}
	n, _ := strconv.Atoi(raw)
	return n - 1, nil
}
