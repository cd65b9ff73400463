package filesystem

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// NewOS returns the OS filesystem
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// NewMemory returns an empty in-memory filesystem
func NewMemory() afero.Fs {
	return afero.NewMemMapFs()
}

// ListEntries returns the sorted names inside dir, without the housekeeping file.
func ListEntries(fsys afero.Fs, dir, housekeeping string) ([]string, error) {
	infos, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.Name() == housekeeping {
			continue
		}
		names = append(names, info.Name())
	}
	sort.Strings(names)
	return names, nil
}

// CopyTree copies the directory src to dst, creating dst. Files named
// housekeeping are skipped at every level, and the entries listed in
// excludeTop are skipped at the top level of src only.
func CopyTree(fsys afero.Fs, src, dst, housekeeping string, dirMode os.FileMode, excludeTop ...string) error {
	excluded := make(map[string]bool, len(excludeTop))
	for _, name := range excludeTop {
		excluded[name] = true
	}

	return afero.Walk(fsys, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}

		if rel != "." && (info.Name() == housekeeping || (filepath.Dir(rel) == "." && excluded[rel])) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return fsys.MkdirAll(target, dirMode)
		}
		return copyFile(fsys, path, target, info.Mode().Perm())
	})
}

func copyFile(fsys afero.Fs, src, dst string, perm os.FileMode) error {
	data, err := afero.ReadFile(fsys, src)
	if err != nil {
		return err
	}
	return afero.WriteFile(fsys, dst, data, perm)
}
