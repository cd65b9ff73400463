// Package descriptor reads the substitution rules a template declares.
//
// A template carries a descriptor file (swiftplate.json by default) at its
// root:
//
//	{ "replace": [ { "find": "S-ORG", "description": "Organisation name" } ] }
//
// Each entry becomes a Rule. Rules are immutable once parsed; resolving
// suggestion keys produces a new Descriptor.
package descriptor

import "strings"

// namePrefix is stripped from a find token when deriving a rule name
const namePrefix = "S-"

// Rule is one find/replace directive with its prompting metadata.
type Rule struct {
	Name        string
	Find        string
	Description string
	// Suggestion is the default value, nil when the rule has none
	Suggestion *string
	Hidden     bool
	Optional   bool
}

// HasSuggestion reports whether a non-nil suggestion is set
func (r Rule) HasSuggestion() bool {
	return r.Suggestion != nil
}

// Descriptor is the ordered list of rules of one template.
type Descriptor struct {
	Rules []Rule
	Path  string
}

// DeriveName turns a find token into an option name: a leading "S-" is
// dropped, underscores become hyphens and the result is lowercased.
//
//	S-ORG       -> org
//	S-ORG_NAME  -> org-name
//	MY_TOKEN    -> my-token
func DeriveName(find string) string {
	name := strings.TrimPrefix(find, namePrefix)
	name = strings.ReplaceAll(name, "_", "-")
	return strings.ToLower(name)
}

// ResolveSuggestions returns a copy of d in which every suggestion equal to a
// key of constants is replaced by the constant's value. A constant with an
// empty value leaves the rule without a suggestion. Suggestions that match no
// key are kept as literal defaults.
func (d *Descriptor) ResolveSuggestions(constants map[string]string) *Descriptor {
	resolved := &Descriptor{
		Rules: make([]Rule, len(d.Rules)),
		Path:  d.Path,
	}

	for i, rule := range d.Rules {
		if rule.Suggestion != nil {
			if value, ok := constants[*rule.Suggestion]; ok {
				if value == "" {
					rule.Suggestion = nil
				} else {
					rule.Suggestion = &value
				}
			} else {
				literal := *rule.Suggestion
				rule.Suggestion = &literal
			}
		}
		resolved.Rules[i] = rule
	}

	return resolved
}

// Names returns the option name of every rule, in order
func (d *Descriptor) Names() []string {
	names := make([]string, len(d.Rules))
	for i, rule := range d.Rules {
		names[i] = rule.Name
	}
	return names
}
