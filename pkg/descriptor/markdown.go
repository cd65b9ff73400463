package descriptor

import (
	"fmt"
	"strings"
)

// Markdown renders the rules as a markdown table, used by `plate describe`.
func Markdown(d *Descriptor, templateRef string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", templateRef)
	if len(d.Rules) == 0 {
		b.WriteString("This template declares no replacements.\n")
		return b.String()
	}

	b.WriteString("| Option | Find | Description | Default | Notes |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, rule := range d.Rules {
		suggestion := ""
		if rule.HasSuggestion() {
			suggestion = "`" + *rule.Suggestion + "`"
		}

		var notes []string
		if rule.Hidden {
			notes = append(notes, "hidden")
		}
		if rule.Optional {
			notes = append(notes, "optional")
		}

		fmt.Fprintf(&b, "| `--%s` | `%s` | %s | %s | %s |\n",
			escapeCell(rule.Name),
			escapeCell(rule.Find),
			escapeCell(rule.Description),
			escapeCell(suggestion),
			strings.Join(notes, ", "))
	}
	return b.String()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
