package filesystem

import (
	"os"

	"github.com/spf13/afero"

	"github.com/arthur-debert/plate/pkg/errors"
)

// CheckDestination reports whether path can receive a generated project
// without creating anything. A missing path is acceptable.
func CheckDestination(fsys afero.Fs, path, housekeeping string) (exists bool, err error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrDestination,
			"could not inspect destination (%s)", path).
			WithDetail("path", path)
	}

	if !info.IsDir() {
		return true, errors.Newf(errors.ErrDestination,
			"destination (%s) already exists and is a file not a directory", path).
			WithDetail("path", path)
	}

	contents, err := ListEntries(fsys, path, housekeeping)
	if err != nil {
		return true, errors.Wrapf(err, errors.ErrDestination,
			"could not list destination (%s)", path).
			WithDetail("path", path)
	}
	if len(contents) > 0 {
		return true, errors.Newf(errors.ErrDestination,
			"destination (%s) folder already exists and contains files already. Contains: %v", path, contents).
			WithDetail("path", path).
			WithDetail("contents", contents)
	}

	return true, nil
}

// PrepareDestination makes sure path is an empty directory, creating it
// (with intermediate directories) when missing. Existing content is never
// touched: a file or a non-empty directory is an error.
func PrepareDestination(fsys afero.Fs, path, housekeeping string, dirMode os.FileMode) error {
	exists, err := CheckDestination(fsys, path, housekeeping)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	if err := fsys.MkdirAll(path, dirMode); err != nil {
		return errors.Wrapf(err, errors.ErrDestination,
			"could not create folder at %s", path).
			WithDetail("path", path)
	}
	return nil
}
