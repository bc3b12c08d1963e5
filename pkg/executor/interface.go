package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// LookPath resolves a binary before any work depends on it
	LookPath(name string) (string, error)
}
