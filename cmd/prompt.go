package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// prompter reads line answers from the user.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// line asks label and returns the trimmed answer. EOF with no input is an
// error.
func (p *prompter) line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	s, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || s == "") {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(s), nil
}

// confirm asks a yes/no question. An empty answer or EOF picks def.
func (p *prompter) confirm(question string, def bool) bool {
	suffix := " [y/N] "
	if def {
		suffix = " [Y/n] "
	}
	ans, err := p.line(question + suffix)
	if err != nil || ans == "" {
		return def
	}
	switch strings.ToLower(ans) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	}
	return def
}
