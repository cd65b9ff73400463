package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRunner is a testify mock implementing shell.Runner.
type MockRunner struct {
	mock.Mock
}

// Run records the command and returns the configured output.
func (m *MockRunner) Run(ctx context.Context, command string) (string, error) {
	args := m.Called(command)
	return args.String(0), args.Error(1)
}

// MockPrompter is a testify mock implementing prompt.Prompter.
type MockPrompter struct {
	mock.Mock
}

// Ask records the question and returns the configured answer.
func (m *MockPrompter) Ask(question string) (string, error) {
	args := m.Called(question)
	return args.String(0), args.Error(1)
}

// Warn records the message.
func (m *MockPrompter) Warn(message string) {
	m.Called(message)
}
