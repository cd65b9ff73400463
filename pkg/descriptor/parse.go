package descriptor

import (
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/afero"

	"github.com/arthur-debert/plate/pkg/errors"
	"github.com/arthur-debert/plate/pkg/logging"
)

const replaceKey = "replace"

// Load reads and parses the descriptor file at path.
func Load(fsys afero.Fs, path string) (*Descriptor, error) {
	logger := logging.GetLogger("descriptor")

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateResolution,
			"could not read template descriptor at %s", path).
			WithDetail("path", path)
	}

	d, err := Parse(data)
	if err != nil {
		if pe, ok := err.(*errors.PlateError); ok {
			pe.WithDetail("path", path)
		}
		return nil, err
	}
	d.Path = path

	logger.Debug().
		Str("path", path).
		Int("rules", len(d.Rules)).
		Msg("Loaded descriptor")
	return d, nil
}

// Parse decodes descriptor bytes. Every structural problem is reported with
// its own DESCRIPTOR_* code.
func Parse(data []byte) (*Descriptor, error) {
	var probe interface{}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.Wrap(err, errors.ErrDescriptorSyntax,
			"template descriptor is not valid JSON")
	}

	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil || root == nil {
		return nil, errors.New(errors.ErrDescriptorRoot,
			"template descriptor root must be an object")
	}

	rawReplace, ok := root[replaceKey]
	if !ok {
		return nil, errors.Newf(errors.ErrDescriptorReplace,
			"template descriptor has no %q array", replaceKey).
			WithDetail("field", replaceKey)
	}

	var entries []json.RawMessage
	if isNull(rawReplace) || json.Unmarshal(rawReplace, &entries) != nil {
		return nil, errors.Newf(errors.ErrDescriptorReplace,
			"template descriptor %q must be an array", replaceKey).
			WithDetail("field", replaceKey)
	}

	d := &Descriptor{Rules: make([]Rule, 0, len(entries))}
	for i, raw := range entries {
		rule, err := parseRule(i, raw)
		if err != nil {
			return nil, err
		}
		d.Rules = append(d.Rules, rule)
	}
	return d, nil
}

func parseRule(index int, raw json.RawMessage) (Rule, error) {
	var fields map[string]json.RawMessage
	if isNull(raw) || json.Unmarshal(raw, &fields) != nil {
		return Rule{}, errors.Newf(errors.ErrDescriptorEntry,
			"%s[%d] must be an object", replaceKey, index).
			WithDetail("index", index)
	}

	p := fieldParser{index: index, fields: fields}

	rule := Rule{
		Find:        p.requiredString("find"),
		Description: p.requiredString("description"),
		Hidden:      p.optionalBool("hidden"),
		Optional:    p.optionalBool("optional"),
		Suggestion:  p.optionalString("suggestion"),
	}
	name := p.optionalString("name")
	if p.err != nil {
		return Rule{}, p.err
	}

	if name != nil {
		rule.Name = *name
	} else {
		rule.Name = DeriveName(rule.Find)
	}
	return rule, nil
}

// fieldParser decodes the fields of one entry and keeps the first error.
type fieldParser struct {
	index  int
	fields map[string]json.RawMessage
	err    error
}

func (p *fieldParser) fail(field, format string) {
	if p.err != nil {
		return
	}
	p.err = errors.Newf(errors.ErrDescriptorField, format, replaceKey, p.index, field).
		WithDetail("index", p.index).
		WithDetail("field", field)
}

func (p *fieldParser) lookup(field string) (json.RawMessage, bool) {
	raw, ok := p.fields[field]
	if !ok || isNull(raw) {
		return nil, false
	}
	return raw, true
}

func (p *fieldParser) requiredString(field string) string {
	raw, ok := p.lookup(field)
	if !ok {
		p.fail(field, "%s[%d] is missing the %q field")
		return ""
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		p.fail(field, "%s[%d] field %q must be a string")
		return ""
	}
	return value
}

func (p *fieldParser) optionalString(field string) *string {
	raw, ok := p.lookup(field)
	if !ok {
		return nil
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		p.fail(field, "%s[%d] field %q must be a string")
		return nil
	}
	return &value
}

func (p *fieldParser) optionalBool(field string) bool {
	raw, ok := p.lookup(field)
	if !ok {
		return false
	}
	var value bool
	if err := json.Unmarshal(raw, &value); err != nil {
		p.fail(field, "%s[%d] field %q must be true or false")
		return false
	}
	return value
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}
