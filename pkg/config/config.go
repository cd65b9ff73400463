package config

import (
	"fmt"
	"os"
	"strings"
)

// Config is the merged plate configuration
type Config struct {
	Template    Template    `koanf:"template"`
	Archive     Archive     `koanf:"archive"`
	Permissions Permissions `koanf:"permissions"`
}

// Template holds the names of special files inside templates
type Template struct {
	Descriptor   string `koanf:"descriptor"`
	Housekeeping string `koanf:"housekeeping"`
}

// Archive holds settings for remote templates
type Archive struct {
	URLPattern      string `koanf:"url_pattern"`
	DownloadCommand string `koanf:"download_command"`
	ScratchSuffix   string `koanf:"scratch_suffix"`
}

// Permissions holds the mode of directories plate creates. Copied files keep
// the mode they have in the template.
type Permissions struct {
	Directory os.FileMode `koanf:"directory"`
}

// RepositoryURL expands the archive URL pattern for an <owner>/<name> reference.
func (a Archive) RepositoryURL(owner, name string) string {
	return strings.NewReplacer("{owner}", owner, "{name}", name).Replace(a.URLPattern)
}

// Download renders the download command for url extracting into dir.
func (a Archive) Download(url, dir string) string {
	return strings.NewReplacer("{url}", url, "{dir}", dir).Replace(a.DownloadCommand)
}

// Validate checks that required settings are present and well formed
func (c *Config) Validate() error {
	if c.Template.Descriptor == "" {
		return fmt.Errorf("template.descriptor must not be empty")
	}
	if strings.ContainsAny(c.Template.Descriptor, `/\`) {
		return fmt.Errorf("template.descriptor must be a file name, got %q", c.Template.Descriptor)
	}
	if c.Template.Housekeeping == "" {
		return fmt.Errorf("template.housekeeping must not be empty")
	}
	for _, placeholder := range []string{"{owner}", "{name}"} {
		if !strings.Contains(c.Archive.URLPattern, placeholder) {
			return fmt.Errorf("archive.url_pattern must contain %s", placeholder)
		}
	}
	for _, placeholder := range []string{"{url}", "{dir}"} {
		if !strings.Contains(c.Archive.DownloadCommand, placeholder) {
			return fmt.Errorf("archive.download_command must contain %s", placeholder)
		}
	}
	if c.Archive.ScratchSuffix == "" {
		return fmt.Errorf("archive.scratch_suffix must not be empty")
	}
	return nil
}
