package template

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arthur-debert/plate/pkg/config"
	"github.com/arthur-debert/plate/pkg/descriptor"
	"github.com/arthur-debert/plate/pkg/errors"
	"github.com/arthur-debert/plate/pkg/filesystem"
	"github.com/arthur-debert/plate/pkg/logging"
	"github.com/arthur-debert/plate/pkg/shell"
)

// StepFunc runs fn as a user visible step described by description.
type StepFunc func(description string, fn func() error) error

func runStep(description string, fn func() error) error {
	return fn()
}

// Acquirer opens templates and copies them to destinations.
type Acquirer struct {
	fs     afero.Fs
	runner shell.Runner
	cfg    *config.Config
	step   StepFunc
	logger zerolog.Logger
}

// NewAcquirer creates an Acquirer. step may be nil.
func NewAcquirer(fsys afero.Fs, runner shell.Runner, cfg *config.Config, step StepFunc) *Acquirer {
	if step == nil {
		step = runStep
	}
	return &Acquirer{
		fs:     fsys,
		runner: runner,
		cfg:    cfg,
		step:   step,
		logger: logging.GetLogger("template"),
	}
}

// Template is an opened template: a local directory and its descriptor.
type Template struct {
	Reference  Reference
	Root       string
	Descriptor *descriptor.Descriptor

	fs      afero.Fs
	cfg     *config.Config
	scratch string
	logger  zerolog.Logger
}

// Acquire prepares destination, copies the template referenced by ref into
// it and returns the template's descriptor. Downloaded archives are removed
// afterwards.
func (a *Acquirer) Acquire(ctx context.Context, ref, destination string) (*descriptor.Descriptor, error) {
	housekeeping := a.cfg.Template.Housekeeping
	if err := filesystem.PrepareDestination(a.fs, destination, housekeeping, a.cfg.Permissions.Directory); err != nil {
		return nil, err
	}

	tpl, err := a.Open(ctx, ref, destination)
	if err != nil {
		return nil, err
	}
	defer tpl.Close()

	if err := tpl.Materialize(destination); err != nil {
		return nil, err
	}
	return tpl.Descriptor, nil
}

// Open locates the template and reads its descriptor. Remote templates are
// downloaded into a scratch directory next to destination; destination
// itself is not touched. Callers must Close the template.
func (a *Acquirer) Open(ctx context.Context, ref, destination string) (*Template, error) {
	reference, err := Classify(a.fs, ref, a.cfg.Archive)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().
		Str("template", ref).
		Str("kind", reference.Kind.String()).
		Msg("Classified template")

	tpl := &Template{
		Reference: reference,
		fs:        a.fs,
		cfg:       a.cfg,
		logger:    a.logger,
	}

	root := ref
	if reference.Remote() {
		tpl.scratch = ScratchPath(destination, a.cfg.Archive.ScratchSuffix)
		root, err = a.download(ctx, reference.URL, tpl.scratch)
		if err != nil {
			tpl.Close()
			return nil, err
		}
	}

	if err := tpl.load(root); err != nil {
		tpl.Close()
		return nil, err
	}
	if err := tpl.checkOverlap(destination); err != nil {
		tpl.Close()
		return nil, err
	}
	return tpl, nil
}

// ScratchPath is where an archive for destination is extracted
func ScratchPath(destination, suffix string) string {
	trimmed := strings.TrimRight(destination, `/\`)
	if trimmed == "" {
		trimmed = destination
	}
	return trimmed + suffix
}

// download extracts url into scratch and returns the template root inside it.
func (a *Acquirer) download(ctx context.Context, url, scratch string) (string, error) {
	housekeeping := a.cfg.Template.Housekeeping

	if err := a.fs.RemoveAll(scratch); err != nil {
		return "", errors.Wrapf(err, errors.ErrDestination,
			"could not remove stale download folder %s", scratch).
			WithDetail("path", scratch)
	}
	if err := filesystem.PrepareDestination(a.fs, scratch, housekeeping, a.cfg.Permissions.Directory); err != nil {
		return "", err
	}

	err := a.step("Downloading template "+url, func() error {
		_, err := a.runner.Run(ctx, a.cfg.Archive.Download(url, scratch))
		return err
	})
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrTemplateResolution,
			"could not download template from %s", url).
			WithDetail("url", url)
	}

	entries, err := filesystem.ListEntries(a.fs, scratch, housekeeping)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess,
			"could not list download folder %s", scratch).
			WithDetail("path", scratch)
	}

	switch {
	case len(entries) == 0:
		return "", errors.Newf(errors.ErrTemplateResolution,
			"the archive downloaded from %s is empty", url).
			WithDetail("url", url)
	case a.isFile(filepath.Join(scratch, a.cfg.Template.Descriptor)):
		return scratch, nil
	case len(entries) > 1:
		return "", errors.Newf(errors.ErrTemplateResolution,
			"the archive downloaded from %s has %d top level entries, expected one folder", url, len(entries)).
			WithDetail("url", url).
			WithDetail("contents", entries)
	}

	root := filepath.Join(scratch, entries[0])
	a.logger.Debug().Str("root", root).Msg("Extracted template")
	return root, nil
}

func (a *Acquirer) isFile(path string) bool {
	info, err := a.fs.Stat(path)
	return err == nil && !info.IsDir()
}

// load resolves the template root and parses the descriptor. path is either
// the template directory or the descriptor file itself.
func (t *Template) load(path string) error {
	info, err := t.fs.Stat(path)
	if err != nil {
		return errors.Wrapf(err, errors.ErrTemplateResolution,
			"template %s does not exist", path).
			WithDetail("path", path)
	}

	descriptorPath := path
	t.Root = filepath.Dir(path)
	if info.IsDir() {
		descriptorPath = filepath.Join(path, t.cfg.Template.Descriptor)
		t.Root = path
	}

	if info, err := t.fs.Stat(descriptorPath); err != nil || info.IsDir() {
		return errors.Newf(errors.ErrTemplateResolution,
			"no template descriptor found at %s", descriptorPath).
			WithDetail("path", descriptorPath)
	}

	d, err := descriptor.Load(t.fs, descriptorPath)
	if err != nil {
		return err
	}
	t.Descriptor = d
	return nil
}

// checkOverlap refuses destinations inside the template, which copying
// would otherwise walk into.
func (t *Template) checkOverlap(destination string) error {
	root, err := filepath.Abs(t.Root)
	if err != nil {
		return nil
	}
	dest, err := filepath.Abs(destination)
	if err != nil {
		return nil
	}
	rel, err := filepath.Rel(root, dest)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	return errors.Newf(errors.ErrDestination,
		"destination (%s) is inside the template (%s)", destination, t.Root).
		WithDetail("path", destination)
}

// Materialize copies the template into destination, which must be missing
// or empty. The descriptor file and housekeeping files are not copied.
func (t *Template) Materialize(destination string) error {
	housekeeping := t.cfg.Template.Housekeeping
	dirMode := t.cfg.Permissions.Directory

	if err := t.checkOverlap(destination); err != nil {
		return err
	}
	if err := filesystem.PrepareDestination(t.fs, destination, housekeeping, dirMode); err != nil {
		return err
	}
	if err := t.fs.RemoveAll(destination); err != nil {
		return errors.Wrapf(err, errors.ErrDestination,
			"could not replace destination %s", destination).
			WithDetail("path", destination)
	}

	excluded := filepath.Base(t.Descriptor.Path)
	if err := filesystem.CopyTree(t.fs, t.Root, destination, housekeeping, dirMode, excluded); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite,
			"could not copy template %s to %s", t.Root, destination).
			WithDetail("path", destination)
	}

	t.logger.Info().
		Str("template", t.Root).
		Str("destination", destination).
		Msg("Copied template")
	return nil
}

// Close removes the download folder of a remote template. Failures are only
// logged.
func (t *Template) Close() {
	if t.scratch == "" {
		return
	}
	if err := t.fs.RemoveAll(t.scratch); err != nil && !os.IsNotExist(err) {
		t.logger.Warn().Err(err).Str("path", t.scratch).Msg("Could not remove download folder")
		return
	}
	t.logger.Debug().Str("path", t.scratch).Msg("Removed download folder")
	t.scratch = ""
}
