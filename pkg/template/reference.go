// Package template locates templates and copies them into a destination.
//
// A template reference is one of:
//   - an archive URL (anything starting with "http"), downloaded and extracted
//   - a local directory holding a descriptor file, or the descriptor file itself
//   - an <owner>/<name> repository shorthand, expanded to an archive URL
package template

import (
	"strings"

	"github.com/spf13/afero"

	"github.com/arthur-debert/plate/pkg/config"
	"github.com/arthur-debert/plate/pkg/errors"
)

// Kind is the kind of a template reference
type Kind int

const (
	// KindArchive is a remote archive URL
	KindArchive Kind = iota
	// KindLocal is an existing local path
	KindLocal
	// KindRepository is an <owner>/<name> shorthand
	KindRepository
)

func (k Kind) String() string {
	switch k {
	case KindArchive:
		return "archive"
	case KindLocal:
		return "local"
	case KindRepository:
		return "repository"
	default:
		return "unknown"
	}
}

// Reference is a classified template reference.
type Reference struct {
	Raw  string
	Kind Kind
	// URL is the archive to download, for archive and repository references
	URL string
}

// Remote reports whether the template must be downloaded
func (r Reference) Remote() bool {
	return r.Kind != KindLocal
}

// Classify works out what ref points to. The checks run in order: URL,
// existing local path, repository shorthand.
func Classify(fsys afero.Fs, ref string, archive config.Archive) (Reference, error) {
	if strings.HasPrefix(ref, "http") {
		return Reference{Raw: ref, Kind: KindArchive, URL: ref}, nil
	}

	if ref != "" {
		if exists, err := afero.Exists(fsys, ref); err == nil && exists {
			return Reference{Raw: ref, Kind: KindLocal}, nil
		}
	}

	if owner, name, ok := splitRepository(ref); ok {
		return Reference{
			Raw:  ref,
			Kind: KindRepository,
			URL:  archive.RepositoryURL(owner, name),
		}, nil
	}

	return Reference{}, errors.Newf(errors.ErrTemplateResolution,
		"could not resolve template %q: not a URL, an existing path or an <owner>/<name> repository", ref).
		WithDetail("template", ref)
}

func splitRepository(ref string) (owner, name string, ok bool) {
	parts := strings.Split(ref, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
