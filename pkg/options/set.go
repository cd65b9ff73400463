// Package options holds the values a run is configured with and the protocol
// used to resolve each of them.
//
// Values come from, in order of precedence: `--name value` flags, an answers
// file, interactive prompts, and finally rule suggestions.
package options

import (
	"sort"
	"strings"

	"github.com/arthur-debert/plate/pkg/errors"
)

const (
	flagPrefix = "--"
	forceFlag  = "force"
	noForce    = "no-force"
)

// Set is the parsed command line: named values plus the force switch.
type Set struct {
	values  map[string]string
	answers map[string]string
	force   bool
}

// NewSet creates a Set from already known values
func NewSet(values map[string]string, force bool) *Set {
	s := &Set{values: make(map[string]string, len(values)), force: force}
	for name, value := range values {
		s.values[name] = value
	}
	return s
}

// Parse builds a Set from raw arguments. Tokens without a "--" prefix that do
// not follow a flag are ignored. A flag without a value, or followed by
// another flag, is an error.
func Parse(args []string) (*Set, error) {
	s := NewSet(nil, false)

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, flagPrefix) {
			continue
		}

		name := strings.TrimPrefix(arg, flagPrefix)
		switch name {
		case forceFlag:
			s.force = true
			continue
		case noForce:
			s.force = false
			continue
		case "":
			return nil, errors.New(errors.ErrOptionParse,
				"found an empty option name (\"--\")").
				WithDetail("index", i)
		}

		if i+1 >= len(args) {
			return nil, errors.Newf(errors.ErrOptionParse,
				"no value given for option %s", arg).
				WithDetail("option", name)
		}
		value := args[i+1]
		if strings.HasPrefix(value, flagPrefix) {
			return nil, errors.Newf(errors.ErrOptionParse,
				"no value given for option %s (found %s instead)", arg, value).
				WithDetail("option", name).
				WithDetail("value", value)
		}

		s.values[name] = value
		i++
	}

	return s, nil
}

// Get returns an override for name. Command line values win over the
// answers file.
func (s *Set) Get(name string) (string, bool) {
	if value, ok := s.values[name]; ok {
		return value, true
	}
	value, ok := s.answers[name]
	return value, ok
}

// Take returns the command line value for name and removes it, so options
// meant for plate itself are never used as replacement values.
func (s *Set) Take(name string) (string, bool) {
	value, ok := s.values[name]
	delete(s.values, name)
	return value, ok
}

// Force reports whether the run is non-interactive
func (s *Set) Force() bool {
	return s.force
}

// Merge adds answers as lower priority overrides. Later merges win over
// earlier ones; command line values always win.
func (s *Set) Merge(answers map[string]string) {
	if s.answers == nil {
		s.answers = make(map[string]string, len(answers))
	}
	for name, value := range answers {
		s.answers[name] = value
	}
}

// Names returns the sorted names given on the command line
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
