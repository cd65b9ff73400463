package substitute

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arthur-debert/plate/pkg/errors"
	"github.com/arthur-debert/plate/pkg/logging"
)

// Replacer rewrites a directory tree with a Mapping.
type Replacer struct {
	fs           afero.Fs
	replacer     *strings.Replacer
	housekeeping string
	logger       zerolog.Logger
}

// NewReplacer creates a Replacer. Entries named housekeeping are left alone.
func NewReplacer(fsys afero.Fs, mapping Mapping, housekeeping string) *Replacer {
	return &Replacer{
		fs:           fsys,
		replacer:     mapping.Replacer(),
		housekeeping: housekeeping,
		logger:       logging.GetLogger("substitute"),
	}
}

// Replace applies the mapping to s
func (r *Replacer) Replace(s string) string {
	return r.replacer.Replace(s)
}

// ProcessTree rewrites everything below root, depth first. A directory's
// content is handled under its original name before the directory itself is
// renamed. Files that cannot be read or are not UTF-8 text are skipped. root
// itself is never renamed. There is no rollback on failure.
func (r *Replacer) ProcessTree(root string) error {
	done := logging.LogOperationStart(r.logger, "process tree")
	defer done()

	return r.processDir(root)
}

func (r *Replacer) processDir(dir string) error {
	infos, err := afero.ReadDir(r.fs, dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess,
			"could not list %s", dir).
			WithDetail("path", dir)
	}

	for _, info := range infos {
		name := info.Name()
		if name == r.housekeeping {
			continue
		}
		path := filepath.Join(dir, name)

		if info.IsDir() {
			if err := r.processDir(path); err != nil {
				return err
			}
			if err := r.rename(dir, name); err != nil {
				return err
			}
			continue
		}

		if err := r.processFile(dir, info); err != nil {
			return err
		}
	}
	return nil
}

func (r *Replacer) rename(dir, name string) error {
	newName := r.Replace(name)
	if newName == name {
		return nil
	}

	from := filepath.Join(dir, name)
	to := filepath.Join(dir, newName)
	r.logger.Debug().Str("from", from).Str("to", to).Msg("Renaming directory")

	if err := r.fs.Rename(from, to); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite,
			"could not rename %s to %s", from, to).
			WithDetail("path", from)
	}
	return nil
}

func (r *Replacer) processFile(dir string, info os.FileInfo) error {
	name := info.Name()
	path := filepath.Join(dir, name)

	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		r.logger.Warn().Err(err).Str("path", path).Msg("Skipping unreadable file")
		return nil
	}
	if !utf8.Valid(data) {
		r.logger.Debug().Str("path", path).Msg("Skipping non-text file")
		return nil
	}

	content := string(data)
	newContent := r.Replace(content)
	newName := r.Replace(name)
	if newContent == content && newName == name {
		return nil
	}

	target := filepath.Join(dir, newName)
	if err := afero.WriteFile(r.fs, target, []byte(newContent), info.Mode().Perm()); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite,
			"could not write %s", target).
			WithDetail("path", target)
	}

	if newName != name {
		r.logger.Trace().Str("from", path).Str("to", target).Msg("Renamed file")
		if err := r.fs.Remove(path); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite,
				"could not remove %s", path).
				WithDetail("path", path)
		}
	}
	return nil
}
