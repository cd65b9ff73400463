// Package generate runs a whole project generation: it asks for the
// destination and template, opens the template, resolves a value for every
// rule, copies the template and applies the replacements.
//
// Nothing is written to the destination until every value is known, so a
// missing value or an unresolvable hidden rule leaves no files behind.
package generate

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arthur-debert/plate/pkg/config"
	"github.com/arthur-debert/plate/pkg/descriptor"
	"github.com/arthur-debert/plate/pkg/errors"
	"github.com/arthur-debert/plate/pkg/filesystem"
	"github.com/arthur-debert/plate/pkg/logging"
	"github.com/arthur-debert/plate/pkg/options"
	"github.com/arthur-debert/plate/pkg/shell"
	"github.com/arthur-debert/plate/pkg/substitute"
	"github.com/arthur-debert/plate/pkg/suggestions"
	"github.com/arthur-debert/plate/pkg/template"
)

// Names of the options every run needs
const (
	DestinationOption = "destination"
	TemplateOption    = "template"
)

// Deps are the collaborators of a Generator.
type Deps struct {
	FS     afero.Fs
	Runner shell.Runner
	Solver options.Solver
	Config *config.Config
	// Step wraps long running work such as downloads, may be nil
	Step template.StepFunc
	// Now defaults to time.Now
	Now func() time.Time
}

// Generator runs project generation.
type Generator struct {
	deps     Deps
	acquirer *template.Acquirer
	logger   zerolog.Logger
}

// Result describes a finished run.
type Result struct {
	Destination string
	Template    string
	// Values holds the value used for each rule, by rule name
	Values map[string]string
	// Omitted lists optional rules left without a value
	Omitted []string
}

// New creates a Generator
func New(deps Deps) *Generator {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Generator{
		deps:     deps,
		acquirer: template.NewAcquirer(deps.FS, deps.Runner, deps.Config, deps.Step),
		logger:   logging.GetLogger("generate"),
	}
}

// Run performs one generation.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	done := logging.LogOperationStart(g.logger, "generate")
	defer done()

	destination, err := g.require(DestinationOption, "Where do you want to create the project?")
	if err != nil {
		return nil, err
	}
	ref, err := g.require(TemplateOption, "Which template do you want to use?")
	if err != nil {
		return nil, err
	}

	cfg := g.deps.Config
	if _, err := filesystem.CheckDestination(g.deps.FS, destination, cfg.Template.Housekeeping); err != nil {
		return nil, err
	}

	tpl, err := g.acquirer.Open(ctx, ref, destination)
	if err != nil {
		return nil, err
	}
	defer tpl.Close()

	constants := suggestions.Gather(ctx, g.deps.Runner, destination, g.deps.Now())
	resolved := tpl.Descriptor.ResolveSuggestions(constants)

	result := &Result{
		Destination: destination,
		Template:    ref,
		Values:      make(map[string]string, len(resolved.Rules)),
	}
	g.logger.Debug().Strs("rules", resolved.Names()).Msg("Resolving rules")
	mapping := substitute.Mapping{}
	for _, rule := range resolved.Rules {
		value, ok, err := g.resolveRule(rule)
		if err != nil {
			return nil, err
		}
		if !ok {
			g.logger.Debug().Str("rule", rule.Name).Msg("Optional rule omitted")
			result.Omitted = append(result.Omitted, rule.Name)
			continue
		}
		mapping.Add(rule.Find, value)
		result.Values[rule.Name] = value
	}

	if err := tpl.Materialize(destination); err != nil {
		return nil, err
	}

	replacer := substitute.NewReplacer(g.deps.FS, mapping, cfg.Template.Housekeeping)
	if err := replacer.ProcessTree(destination); err != nil {
		return nil, err
	}

	g.logger.Info().
		Str("destination", destination).
		Str("template", ref).
		Int("replacements", len(result.Values)).
		Msg("Project generated")
	return result, nil
}

// require resolves an option that has no suggestion and cannot be omitted
func (g *Generator) require(name, description string) (string, error) {
	value, ok, err := g.deps.Solver.Resolve(options.Request{
		Name:        name,
		Description: description,
		Required:    true,
	})
	if err != nil {
		return "", err
	}
	if !ok {
		return "", missingArgument(name)
	}
	return value, nil
}

func (g *Generator) resolveRule(rule descriptor.Rule) (string, bool, error) {
	if rule.Hidden {
		if rule.Suggestion == nil || *rule.Suggestion == "" {
			return "", false, errors.Newf(errors.ErrHiddenSuggestion,
				"was supposed to replace %s, but its suggested value is not known", rule.Name).
				WithDetail("option", rule.Name).
				WithDetail("find", rule.Find)
		}
		return *rule.Suggestion, true, nil
	}

	value, ok, err := g.deps.Solver.Resolve(options.Request{
		Name:        rule.Name,
		Description: rule.Description,
		Required:    !rule.Optional,
		Suggestion:  rule.Suggestion,
	})
	if err != nil {
		return "", false, err
	}
	if !ok && !rule.Optional {
		return "", false, missingArgument(rule.Name)
	}
	return value, ok, nil
}

func missingArgument(name string) error {
	return errors.Newf(errors.ErrMissingArgument, "missing argument %s", name).
		WithDetail("option", name)
}
