// Package substitute applies resolved replacement values to a generated tree,
// both to file contents and to file and directory names.
package substitute

import (
	"sort"
	"strings"
)

// Mapping maps a literal token to its replacement value.
type Mapping map[string]string

// Add registers value for find and for its snake_case and kebab-case
// variants, so S-ORG, S_ORG and the verbatim token all map to value.
func (m Mapping) Add(find, value string) {
	if find == "" {
		return
	}
	m[find] = value
	m[strings.ReplaceAll(find, "-", "_")] = value
	m[strings.ReplaceAll(find, "_", "-")] = value
}

// keys returns the tokens longest first, ties broken alphabetically
func (m Mapping) keys() []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		if key != "" {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Replacer returns a replacer applying every token in one pass. Output of one
// replacement is never matched again, and the longest token wins where
// tokens overlap.
func (m Mapping) Replacer() *strings.Replacer {
	keys := m.keys()
	pairs := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		pairs = append(pairs, key, m[key])
	}
	return strings.NewReplacer(pairs...)
}
