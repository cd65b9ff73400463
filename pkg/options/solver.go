package options

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/arthur-debert/plate/pkg/errors"
	"github.com/arthur-debert/plate/pkg/logging"
	"github.com/arthur-debert/plate/pkg/prompt"
)

// InvalidValueMessage is shown when a required value is left blank
const InvalidValueMessage = "Invalid value. Try again."

// Request describes one value to resolve.
type Request struct {
	Name        string
	Description string
	Required    bool
	Suggestion  *string
}

// Solver resolves named values. ok is false when the value was omitted.
type Solver interface {
	Resolve(req Request) (value string, ok bool, err error)
}

// CommandLineSolver resolves values from a Set, falling back to a Prompter
// unless the Set is in force mode.
type CommandLineSolver struct {
	set      *Set
	prompter prompt.Prompter
	logger   zerolog.Logger
	title    cases.Caser
}

// NewCommandLineSolver creates a solver over set and prompter
func NewCommandLineSolver(set *Set, prompter prompt.Prompter) *CommandLineSolver {
	return &CommandLineSolver{
		set:      set,
		prompter: prompter,
		logger:   logging.GetLogger("options.solver"),
		title:    cases.Title(language.English),
	}
}

// Resolve implements Solver.
//
// An explicit value always wins, even in force mode. In force mode the
// suggestion is used when there is one, otherwise the value is omitted and
// the caller decides whether that is fatal. Interactively, a blank answer
// falls back to the suggestion; when there is none, optional values are
// omitted and required ones are asked again until an answer is given. Closed
// input counts as a blank answer, and fails only where it would be asked again.
func (s *CommandLineSolver) Resolve(req Request) (string, bool, error) {
	if value, ok := s.set.Get(req.Name); ok {
		s.logger.Debug().Str("option", req.Name).Msg("Using explicit value")
		return value, true, nil
	}

	if s.set.Force() {
		if req.Suggestion != nil {
			s.logger.Debug().Str("option", req.Name).Msg("Force mode, using suggestion")
			return *req.Suggestion, true, nil
		}
		return "", false, nil
	}

	question := s.Question(req)
	for {
		answer, err := s.prompter.Ask(question)
		closed := err == io.EOF
		if err != nil && !closed {
			return "", false, errors.Wrapf(err, errors.ErrInternal,
				"failed to read a value for %s", req.Name).
				WithDetail("option", req.Name)
		}

		answer = strings.TrimSpace(answer)
		if answer != "" {
			return answer, true, nil
		}
		if req.Suggestion != nil {
			return *req.Suggestion, true, nil
		}
		if !req.Required {
			return "", false, nil
		}
		if closed {
			return "", false, errors.Newf(errors.ErrMissingArgument,
				"input closed before a value for %s was given", req.Name).
				WithDetail("option", req.Name)
		}

		s.prompter.Warn(InvalidValueMessage)
	}
}

// Question is the text shown when asking for req
func (s *CommandLineSolver) Question(req Request) string {
	question := s.title.String(req.Name) + ": " + req.Description
	if req.Suggestion != nil {
		question += ". Leave blank to use \"" + *req.Suggestion + "\""
	}
	return question
}
