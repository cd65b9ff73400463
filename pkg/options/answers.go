package options

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/plate/pkg/errors"
)

// LoadAnswers reads an answers file, a flat map of option name to value in
// YAML, TOML or JSON chosen by extension. Scalar values are converted to
// strings; nested values are rejected.
func LoadAnswers(fsys afero.Fs, path string) (map[string]string, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrAnswersFile,
			"could not read answers file %s", path).
			WithDetail("path", path)
	}

	raw := make(map[string]interface{})
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	case ".json":
		err = json.Unmarshal(data, &raw)
	default:
		return nil, errors.Newf(errors.ErrAnswersFile,
			"unsupported answers file format %q (use .yaml, .yml, .toml or .json)", ext).
			WithDetail("path", path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrAnswersFile,
			"could not parse answers file %s", path).
			WithDetail("path", path)
	}

	answers := make(map[string]string, len(raw))
	for name, value := range raw {
		s, err := stringify(value)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrAnswersFile,
				"invalid value for %q in answers file %s", name, path).
				WithDetail("path", path).
				WithDetail("option", name)
		}
		answers[name] = s
	}
	return answers, nil
}

func stringify(value interface{}) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("expected a scalar, got %T", value)
	}
}
