// Package ui prints what plate tells the user: banners, progress steps and
// rendered markdown.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/pterm/pterm"
)

// Banners shown around a run
const (
	WelcomeBanner = "Welcome to the plate project generator"
	SuccessBanner = "All done! Good luck with your project!"
	FailureBanner = "An error was encountered"
)

// Console writes user facing output. Errors go to errOut.
type Console struct {
	out    io.Writer
	errOut io.Writer
	format Format
}

// NewConsole creates a console for stdout/stderr, detecting the format from stdout
func NewConsole() *Console {
	return NewConsoleWithFormat(os.Stdout, os.Stderr, DetectFormat(os.Stdout))
}

// NewConsoleWithFormat creates a console with explicit writers and format
func NewConsoleWithFormat(out, errOut io.Writer, format Format) *Console {
	return &Console{out: out, errOut: errOut, format: format}
}

// Welcome prints the greeting shown before a run
func (c *Console) Welcome() {
	if c.format == FormatText {
		fmt.Fprintln(c.out, WelcomeBanner)
		return
	}
	pterm.Info.WithWriter(c.out).Println(WelcomeBanner + " 🐣")
}

// Success prints the closing banner of a successful run
func (c *Console) Success() {
	if c.format == FormatText {
		fmt.Fprintln(c.out, SuccessBanner)
		return
	}
	pterm.Success.WithWriter(c.out).Println("All done! 🎉 Good luck with your project! 🚀")
}

// Failure prints the failure banner and the error
func (c *Console) Failure(err error) {
	if c.format == FormatText {
		fmt.Fprintln(c.errOut, FailureBanner)
		fmt.Fprintf(c.errOut, "Error: %v\n", err)
		return
	}
	pterm.Error.WithWriter(c.errOut).Println(FailureBanner + " 🙁")
	fmt.Fprintf(c.errOut, "Error: %v\n", err)
}

// Step runs fn while showing description, then whether it succeeded.
func (c *Console) Step(description string, fn func() error) error {
	if c.format == FormatText {
		fmt.Fprintf(c.out, "%s...", description)
		err := fn()
		if err != nil {
			fmt.Fprintln(c.out, "failed")
			return err
		}
		fmt.Fprintln(c.out, "done")
		return nil
	}

	spinner, startErr := pterm.DefaultSpinner.
		WithWriter(c.out).
		WithRemoveWhenDone(false).
		Start("👉  " + description + "...")
	err := fn()
	if startErr != nil {
		return err
	}
	if err != nil {
		spinner.Fail(description + "...failed")
		return err
	}
	spinner.Success(description + "...done")
	return nil
}

// Markdown prints md, rendered with glamour on a terminal and as is otherwise
func (c *Console) Markdown(md string) {
	if c.format == FormatText {
		fmt.Fprint(c.out, md)
		return
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Fprint(c.out, md)
		return
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		fmt.Fprint(c.out, md)
		return
	}
	fmt.Fprint(c.out, rendered)
}
