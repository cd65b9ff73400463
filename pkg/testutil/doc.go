// Package testutil provides utilities for testing plate components.
//
// Key components:
//   - WriteTree / ReadTree: declarative file trees on an afero filesystem
//   - MockRunner: testify mock of shell.Runner
//   - MockPrompter: testify mock of prompt.Prompter
//
// Usage guidelines:
//   - Prefer afero.NewMemMapFs over the real filesystem
//   - All test data should be defined inline, not in external files
package testutil
