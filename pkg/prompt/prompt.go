// Package prompt reads answers from the terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Prompter asks one question at a time and returns the line typed back.
type Prompter interface {
	// Ask shows question and reads one line. The trailing newline is
	// removed. io.EOF is returned once input is closed and nothing was typed.
	Ask(question string) (string, error)
	// Warn shows a message that is not a question
	Warn(message string)
}

var (
	questionColor = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
	warningColor  = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
)

// ConsolePrompter implements Prompter over a reader and a writer, normally
// stdin and stdout.
type ConsolePrompter struct {
	in  *bufio.Reader
	out io.Writer

	questionStyle lipgloss.Style
	warningStyle  lipgloss.Style
}

// NewConsolePrompter creates a prompter. Colours are used only when out is a
// terminal.
func NewConsolePrompter(in io.Reader, out io.Writer) *ConsolePrompter {
	renderer := lipgloss.NewRenderer(out)
	return &ConsolePrompter{
		in:            bufio.NewReader(in),
		out:           out,
		questionStyle: renderer.NewStyle().Foreground(questionColor).Bold(true),
		warningStyle:  renderer.NewStyle().Foreground(warningColor),
	}
}

// Ask implements Prompter
func (p *ConsolePrompter) Ask(question string) (string, error) {
	_, _ = fmt.Fprintln(p.out, p.questionStyle.Render(question))

	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Warn implements Prompter
func (p *ConsolePrompter) Warn(message string) {
	_, _ = fmt.Fprintln(p.out, p.warningStyle.Render(message))
}
