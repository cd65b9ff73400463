// Package suggestions computes the environment constants that descriptor
// suggestions can refer to by key.
package suggestions

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/arthur-debert/plate/pkg/logging"
	"github.com/arthur-debert/plate/pkg/shell"
)

// Keys a rule suggestion may use to request an environment value
const (
	GitUserName  = "git.user.name"
	GitUserEmail = "git.user.email"
	DateYear     = "date.year"
	FolderName   = "folder.name"
)

// Keys lists every supported key
var Keys = []string{GitUserName, GitUserEmail, DateYear, FolderName}

// Gather builds the constants for a run generating into destination. Git
// lookups that fail produce empty values.
func Gather(ctx context.Context, runner shell.Runner, destination string, now time.Time) map[string]string {
	logger := logging.GetLogger("suggestions")

	constants := map[string]string{
		GitUserName:  shell.GitConfigValue(ctx, runner, "user.name"),
		GitUserEmail: shell.GitConfigValue(ctx, runner, "user.email"),
		DateYear:     strconv.Itoa(now.Year()),
		FolderName:   FolderBaseName(destination),
	}

	logger.Debug().
		Interface("constants", constants).
		Msg("Gathered suggestion constants")
	return constants
}

// FolderBaseName returns the last path element of destination, ignoring
// trailing separators.
func FolderBaseName(destination string) string {
	trimmed := strings.TrimRight(destination, `/\`)
	if trimmed == "" {
		return ""
	}
	return filepath.Base(trimmed)
}
