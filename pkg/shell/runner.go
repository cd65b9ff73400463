// Package shell runs external commands for plate.
//
// Downloads and git lookups go through the Runner interface so the rest of the
// code can be tested with a fake.
package shell

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/plate/pkg/errors"
	"github.com/arthur-debert/plate/pkg/logging"
)

// Runner executes one shell command line and returns its standard output.
type Runner interface {
	Run(ctx context.Context, command string) (string, error)
}

// BashRunner runs commands with `bash -c`, so pipelines work as one command.
type BashRunner struct {
	logger zerolog.Logger
	shell  string
}

// NewBashRunner creates a runner using bash from PATH
func NewBashRunner() *BashRunner {
	return &BashRunner{
		logger: logging.GetLogger("shell.runner"),
		shell:  "bash",
	}
}

// Run executes command. Standard error is never shown to the user; it is only
// logged. A non-zero exit status is an error.
func (r *BashRunner) Run(ctx context.Context, command string) (string, error) {
	logging.LogCommand(r.logger, command)

	cmd := exec.CommandContext(ctx, r.shell, "-c", command)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if stderr.Len() > 0 {
		r.logger.Debug().
			Str("command", command).
			Str("output", stderr.String()).
			Msg("Command stderr")
	}

	if err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		r.logger.Debug().
			Err(err).
			Str("command", command).
			Int("exitCode", exitCode).
			Msg("Command failed")

		return stdout.String(), errors.Wrapf(err, errors.ErrCommandExecute,
			"failed to execute command: %s", command).
			WithDetail("command", command).
			WithDetail("exitCode", exitCode).
			WithDetail("stderr", strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
