package generate_test

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/plate/pkg/config"
	"github.com/arthur-debert/plate/pkg/errors"
	"github.com/arthur-debert/plate/pkg/generate"
	"github.com/arthur-debert/plate/pkg/options"
	"github.com/arthur-debert/plate/pkg/testutil"
)

var now = time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)

type fixture struct {
	fs       afero.Fs
	runner   *testutil.MockRunner
	prompter *testutil.MockPrompter
}

func newFixture(t *testing.T, descriptorJSON string, files map[string]string) *fixture {
	t.Helper()
	fs := afero.NewMemMapFs()

	tree := map[string]string{"swiftplate.json": descriptorJSON}
	for path, content := range files {
		tree[path] = content
	}
	testutil.WriteTree(t, fs, "/tpl", tree)

	runner := new(testutil.MockRunner)
	runner.On("Run", "git config --global --get user.name").Return("Jane Doe\n", nil).Maybe()
	runner.On("Run", "git config --global --get user.email").Return("", errors.New(errors.ErrCommandExecute, "unset")).Maybe()

	return &fixture{fs: fs, runner: runner, prompter: new(testutil.MockPrompter)}
}

func (f *fixture) run(t *testing.T, args ...string) (*generate.Result, error) {
	t.Helper()
	set, err := options.Parse(args)
	require.NoError(t, err)

	g := generate.New(generate.Deps{
		FS:     f.fs,
		Runner: f.runner,
		Solver: options.NewCommandLineSolver(set, f.prompter),
		Config: config.Default(),
		Now:    func() time.Time { return now },
	})
	return g.Run(context.Background())
}

func (f *fixture) destinationExists(t *testing.T) bool {
	t.Helper()
	exists, err := afero.Exists(f.fs, "/work/out")
	require.NoError(t, err)
	return exists
}

func TestRun_ScenarioA(t *testing.T) {
	f := newFixture(t,
		`{"replace":[{"find":"S-ORG","description":"Org name"}]}`,
		map[string]string{"README.md": "S-ORG and S_ORG"})

	result, err := f.run(t, "--destination", "/work/out", "--template", "/tpl", "--org", "Acme")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"org": "Acme"}, result.Values)
	assert.Equal(t, map[string]string{"README.md": "Acme and Acme"}, testutil.ReadTree(t, f.fs, "/work/out"))
	f.prompter.AssertNotCalled(t, "Ask", mock.Anything)
}

func TestRun_FullTemplate(t *testing.T) {
	f := newFixture(t, `{"replace":[
		{"find":"S-PROJECT-NAME","description":"Project name","suggestion":"folder.name"},
		{"find":"S-AUTHOR","description":"Author","suggestion":"git.user.name","hidden":true},
		{"find":"S-YEAR","description":"Year","suggestion":"date.year","hidden":true},
		{"find":"S-LICENSE","description":"License","suggestion":"MIT"},
		{"find":"S-NOTE","description":"Note","optional":true}
	]}`, map[string]string{
		"S-PROJECT-NAME/S_PROJECT_NAME.swift": "// S-PROJECT-NAME (c) S-YEAR S-AUTHOR, S-LICENSE. S-NOTE",
		"LICENSE":                             "Copyright S-YEAR S-AUTHOR",
		".DS_Store":                           "x",
		"logo.png":                            string([]byte{0x89, 'P', 'N', 'G', 0xff}),
	})
	f.prompter.On("Ask", `Project-Name: Project name. Leave blank to use "out"`).Return("", nil).Once()
	f.prompter.On("Ask", `License: License. Leave blank to use "MIT"`).Return("Apache-2.0", nil).Once()
	f.prompter.On("Ask", "Note: Note").Return("", nil).Once()

	result, err := f.run(t, "--destination", "/work/out", "--template", "/tpl")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"project-name": "out",
		"author":       "Jane Doe",
		"year":         "2026",
		"license":      "Apache-2.0",
	}, result.Values)
	assert.Equal(t, []string{"note"}, result.Omitted)
	assert.Equal(t, "/work/out", result.Destination)
	assert.Equal(t, "/tpl", result.Template)

	assert.Equal(t, map[string]string{
		"out/out.swift": "// out (c) 2026 Jane Doe, Apache-2.0. S-NOTE",
		"LICENSE":       "Copyright 2026 Jane Doe",
		"logo.png":      string([]byte{0x89, 'P', 'N', 'G', 0xff}),
	}, testutil.ReadTree(t, f.fs, "/work/out"))
	f.prompter.AssertExpectations(t)
}

func TestRun_HiddenWithoutSuggestionFailsBeforeWriting(t *testing.T) {
	f := newFixture(t,
		`{"replace":[{"find":"S-EMAIL","description":"Email","suggestion":"git.user.email","hidden":true}]}`,
		map[string]string{"a.txt": "S-EMAIL"})

	_, err := f.run(t, "--destination", "/work/out", "--template", "/tpl")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrHiddenSuggestion))
	assert.Equal(t, "email", errors.GetErrorDetails(err)["option"])
	assert.False(t, f.destinationExists(t))
	f.prompter.AssertNotCalled(t, "Ask", mock.Anything)
}

func TestRun_ScenarioD(t *testing.T) {
	f := newFixture(t,
		`{"replace":[{"find":"S-ORG","description":"Org name"}]}`,
		map[string]string{"a.txt": "S-ORG"})

	_, err := f.run(t, "--force", "--destination", "/work/out", "--template", "/tpl")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingArgument))
	assert.Equal(t, "org", errors.GetErrorDetails(err)["option"])
	assert.False(t, f.destinationExists(t))
}

func TestRun_ForceUsesSuggestions(t *testing.T) {
	f := newFixture(t,
		`{"replace":[{"find":"S-LICENSE","description":"License","suggestion":"MIT"},{"find":"S-NOTE","description":"Note","optional":true}]}`,
		map[string]string{"a.txt": "S-LICENSE S-NOTE"})

	result, err := f.run(t, "--force", "--destination", "/work/out", "--template", "/tpl")
	require.NoError(t, err)
	assert.Equal(t, []string{"note"}, result.Omitted)
	assert.Equal(t, map[string]string{"a.txt": "MIT S-NOTE"}, testutil.ReadTree(t, f.fs, "/work/out"))
}

func TestRun_ScenarioE(t *testing.T) {
	f := newFixture(t,
		`{"replace":[{"find":"S-ORG","description":"Org name"}]}`,
		map[string]string{"a.txt": "S-ORG"})
	f.prompter.On("Ask", "Org: Org name").Return("", nil).Twice()
	f.prompter.On("Ask", "Org: Org name").Return("Acme", nil).Once()
	f.prompter.On("Warn", options.InvalidValueMessage).Return().Twice()

	_, err := f.run(t, "--destination", "/work/out", "--template", "/tpl")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a.txt": "Acme"}, testutil.ReadTree(t, f.fs, "/work/out"))
	f.prompter.AssertNumberOfCalls(t, "Ask", 3)
}

func TestRun_MissingDestinationInForceMode(t *testing.T) {
	f := newFixture(t, `{"replace":[]}`, nil)

	_, err := f.run(t, "--force", "--template", "/tpl")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingArgument))
	assert.Equal(t, "destination", errors.GetErrorDetails(err)["option"])
}

func TestRun_PromptsForDestinationAndTemplate(t *testing.T) {
	f := newFixture(t, `{"replace":[]}`, map[string]string{"a.txt": "a"})
	f.prompter.On("Ask", "Destination: Where do you want to create the project?").Return("/work/out", nil).Once()
	f.prompter.On("Ask", "Template: Which template do you want to use?").Return("/tpl", nil).Once()

	_, err := f.run(t)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a.txt": "a"}, testutil.ReadTree(t, f.fs, "/work/out"))
}

func TestRun_NonEmptyDestinationFailsBeforePrompting(t *testing.T) {
	f := newFixture(t, `{"replace":[{"find":"S-ORG","description":"Org name"}]}`, nil)
	testutil.WriteTree(t, f.fs, "/work/out", map[string]string{"mine.txt": "keep"})

	_, err := f.run(t, "--destination", "/work/out", "--template", "/tpl")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDestination))
	assert.Equal(t, map[string]string{"mine.txt": "keep"}, testutil.ReadTree(t, f.fs, "/work/out"))
	f.prompter.AssertNotCalled(t, "Ask", mock.Anything)
}

func TestRun_UnresolvableTemplate(t *testing.T) {
	f := newFixture(t, `{"replace":[]}`, nil)

	_, err := f.run(t, "--destination", "/work/out", "--template", "not a path/with/many/slashes")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTemplateResolution))
	assert.False(t, f.destinationExists(t))
}

func TestRun_RemoteTemplate(t *testing.T) {
	f := newFixture(t, `{"replace":[]}`, nil)
	scratch := "/work/out_swiftplate_download"
	url := "https://github.com/octocat/Hello-World/archive/master.zip"
	f.runner.On("Run", `set -o pipefail; curl -fsSL "`+url+`" | bsdtar -xf - -C "`+scratch+`"`).Run(func(args mock.Arguments) {
		testutil.WriteTree(t, f.fs, scratch, map[string]string{
			"Hello-World-master/swiftplate.json": `{"replace":[{"find":"S-ORG","description":"Org name"}]}`,
			"Hello-World-master/S-ORG.md":        "# S-ORG",
		})
	}).Return("", nil).Once()

	_, err := f.run(t, "--destination", "/work/out", "--template", "octocat/Hello-World", "--org", "Acme")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"Acme.md": "# Acme"}, testutil.ReadTree(t, f.fs, "/work/out"))
	exists, _ := afero.Exists(f.fs, scratch)
	assert.False(t, exists)
}

func TestRun_RemoteTemplateFailureCleansUp(t *testing.T) {
	f := newFixture(t, `{"replace":[]}`, nil)
	scratch := "/work/out_swiftplate_download"
	url := "https://github.com/octocat/Hello-World/archive/master.zip"
	f.runner.On("Run", `set -o pipefail; curl -fsSL "`+url+`" | bsdtar -xf - -C "`+scratch+`"`).Run(func(args mock.Arguments) {
		testutil.WriteTree(t, f.fs, scratch, map[string]string{
			"Hello-World-master/swiftplate.json": `{"replace":[{"find":"S-ORG","description":"Org name"}]}`,
		})
	}).Return("", nil).Once()

	_, err := f.run(t, "--force", "--destination", "/work/out", "--template", "octocat/Hello-World")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingArgument))

	exists, _ := afero.Exists(f.fs, scratch)
	assert.False(t, exists)
	assert.False(t, f.destinationExists(t))
}
