package template_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/plate/pkg/config"
	"github.com/arthur-debert/plate/pkg/errors"
	"github.com/arthur-debert/plate/pkg/template"
	"github.com/arthur-debert/plate/pkg/testutil"
)

const descriptorJSON = `{"replace":[{"find":"S-ORG","description":"Org name"}]}`

const (
	repoURL     = "https://github.com/octocat/Hello-World/archive/master.zip"
	scratch     = "/work/out_swiftplate_download"
	downloadCmd = `set -o pipefail; curl -fsSL "` + repoURL + `" | bsdtar -xf - -C "` + scratch + `"`
)

func newAcquirer(fs afero.Fs, runner *testutil.MockRunner) *template.Acquirer {
	return template.NewAcquirer(fs, runner, config.Default(), nil)
}

// extracts tree into the scratch folder when the download command runs
func expectDownload(t *testing.T, fs afero.Fs, runner *testutil.MockRunner, tree map[string]string) {
	runner.On("Run", downloadCmd).Run(func(args mock.Arguments) {
		testutil.WriteTree(t, fs, scratch, tree)
	}).Return("", nil).Once()
}

func TestAcquire_LocalDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteTree(t, fs, "/tpl", map[string]string{
		"swiftplate.json":    descriptorJSON,
		"README.md":          "S-ORG",
		".DS_Store":          "x",
		"Sources/.DS_Store":  "x",
		"Sources/main.swift": "print(S_ORG)",
	})
	runner := new(testutil.MockRunner)

	d, err := newAcquirer(fs, runner).Acquire(context.Background(), "/tpl", "/work/out")
	require.NoError(t, err)
	require.Len(t, d.Rules, 1)
	assert.Equal(t, "org", d.Rules[0].Name)

	assert.Equal(t, map[string]string{
		"README.md":          "S-ORG",
		"Sources/main.swift": "print(S_ORG)",
	}, testutil.ReadTree(t, fs, "/work/out"))
	runner.AssertNotCalled(t, "Run", mock.Anything)
}

func TestAcquire_DescriptorFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteTree(t, fs, "/tpl", map[string]string{
		"custom.json": descriptorJSON,
		"a.txt":       "S-ORG",
	})

	d, err := newAcquirer(fs, new(testutil.MockRunner)).Acquire(context.Background(), "/tpl/custom.json", "/work/out")
	require.NoError(t, err)
	assert.Equal(t, "/tpl/custom.json", d.Path)
	assert.Equal(t, map[string]string{"a.txt": "S-ORG"}, testutil.ReadTree(t, fs, "/work/out"))
}

func TestAcquire_MissingDescriptor(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteTree(t, fs, "/tpl", map[string]string{"a.txt": "x"})

	_, err := newAcquirer(fs, new(testutil.MockRunner)).Acquire(context.Background(), "/tpl", "/work/out")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateResolution))
	assert.Equal(t, "/tpl/swiftplate.json", errors.GetErrorDetails(err)["path"])
}

func TestAcquire_ExistingEmptyDestination(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteTree(t, fs, "/tpl", map[string]string{"swiftplate.json": descriptorJSON, "a.txt": "a"})
	testutil.WriteTree(t, fs, "/work/out", map[string]string{".DS_Store": "x"})

	_, err := newAcquirer(fs, new(testutil.MockRunner)).Acquire(context.Background(), "/tpl", "/work/out")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a.txt": "a"}, testutil.ReadTree(t, fs, "/work/out"))
}

func TestAcquire_NonEmptyDestination(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteTree(t, fs, "/tpl", map[string]string{"swiftplate.json": descriptorJSON, "a.txt": "a"})
	testutil.WriteTree(t, fs, "/work/out", map[string]string{"mine.txt": "keep"})

	_, err := newAcquirer(fs, new(testutil.MockRunner)).Acquire(context.Background(), "/tpl", "/work/out")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDestination))
	assert.Equal(t, map[string]string{"mine.txt": "keep"}, testutil.ReadTree(t, fs, "/work/out"))
}

func TestAcquire_DestinationInsideTemplate(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteTree(t, fs, "/tpl", map[string]string{"swiftplate.json": descriptorJSON})

	_, err := newAcquirer(fs, new(testutil.MockRunner)).Acquire(context.Background(), "/tpl", "/tpl/out")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDestination))
}

func TestAcquire_Repository(t *testing.T) {
	fs := afero.NewMemMapFs()
	runner := new(testutil.MockRunner)
	expectDownload(t, fs, runner, map[string]string{
		"Hello-World-master/swiftplate.json": descriptorJSON,
		"Hello-World-master/README.md":       "S-ORG",
		".DS_Store":                          "x",
	})

	var steps []string
	step := func(description string, fn func() error) error {
		steps = append(steps, description)
		return fn()
	}
	acquirer := template.NewAcquirer(fs, runner, config.Default(), step)

	d, err := acquirer.Acquire(context.Background(), "octocat/Hello-World", "/work/out/")
	require.NoError(t, err)
	assert.Len(t, d.Rules, 1)

	assert.Equal(t, map[string]string{"README.md": "S-ORG"}, testutil.ReadTree(t, fs, "/work/out"))
	assert.Equal(t, []string{"Downloading template " + repoURL}, steps)

	exists, err := afero.Exists(fs, scratch)
	require.NoError(t, err)
	assert.False(t, exists, "download folder is removed")
	runner.AssertExpectations(t)
}

func TestAcquire_ArchiveWithDescriptorAtRoot(t *testing.T) {
	fs := afero.NewMemMapFs()
	runner := new(testutil.MockRunner)
	expectDownload(t, fs, runner, map[string]string{
		"swiftplate.json": descriptorJSON,
		"a.txt":           "a",
		"b/c.txt":         "c",
	})

	_, err := newAcquirer(fs, runner).Acquire(context.Background(), repoURL, "/work/out")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a.txt": "a", "b/c.txt": "c"}, testutil.ReadTree(t, fs, "/work/out"))
}

func TestAcquire_EmptyArchive(t *testing.T) {
	fs := afero.NewMemMapFs()
	runner := new(testutil.MockRunner)
	expectDownload(t, fs, runner, map[string]string{".DS_Store": "x"})

	_, err := newAcquirer(fs, runner).Acquire(context.Background(), "octocat/Hello-World", "/work/out")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateResolution))
	assert.Contains(t, err.Error(), "is empty")

	exists, _ := afero.Exists(fs, scratch)
	assert.False(t, exists, "download folder is removed on failure")
}

func TestAcquire_ArchiveWithManyEntries(t *testing.T) {
	fs := afero.NewMemMapFs()
	runner := new(testutil.MockRunner)
	expectDownload(t, fs, runner, map[string]string{"a/x": "x", "b/y": "y"})

	_, err := newAcquirer(fs, runner).Acquire(context.Background(), repoURL, "/work/out")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateResolution))
}

func TestAcquire_DownloadFails(t *testing.T) {
	fs := afero.NewMemMapFs()
	runner := new(testutil.MockRunner)
	runner.On("Run", downloadCmd).Return("", errors.New(errors.ErrCommandExecute, "curl: (6) Could not resolve host")).Once()

	_, err := newAcquirer(fs, runner).Acquire(context.Background(), repoURL, "/work/out")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateResolution))
	assert.Equal(t, repoURL, errors.GetErrorDetails(err)["url"])

	exists, _ := afero.Exists(fs, scratch)
	assert.False(t, exists)
}

func TestAcquire_StaleScratchIsReplaced(t *testing.T) {
	fs := afero.NewMemMapFs()
	testutil.WriteTree(t, fs, scratch, map[string]string{"old/leftover": "x"})
	runner := new(testutil.MockRunner)
	expectDownload(t, fs, runner, map[string]string{
		"Hello-World-master/swiftplate.json": descriptorJSON,
	})

	_, err := newAcquirer(fs, runner).Acquire(context.Background(), repoURL, "/work/out")
	require.NoError(t, err)
}

func TestOpen_DoesNotTouchDestination(t *testing.T) {
	fs := afero.NewMemMapFs()
	runner := new(testutil.MockRunner)
	expectDownload(t, fs, runner, map[string]string{
		"Hello-World-master/swiftplate.json": descriptorJSON,
	})

	tpl, err := newAcquirer(fs, runner).Open(context.Background(), "octocat/Hello-World", "/work/out")
	require.NoError(t, err)
	assert.Equal(t, scratch+"/Hello-World-master", tpl.Root)
	assert.Equal(t, template.KindRepository, tpl.Reference.Kind)

	exists, _ := afero.Exists(fs, "/work/out")
	assert.False(t, exists)

	tpl.Close()
	exists, _ = afero.Exists(fs, scratch)
	assert.False(t, exists)

	// closing twice is harmless
	tpl.Close()
}
