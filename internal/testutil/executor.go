package testutil

import (
	"context"
	"fmt"
	"sync"
)

// Call is one recorded command invocation
type Call struct {
	Name string
	Args []string
}

// FakeExecutor records commands instead of running them. Handler decides
// the output; a nil Handler succeeds with empty output. Every binary
// resolves except those listed in Missing.
type FakeExecutor struct {
	Handler func(name string, args []string) (string, error)
	Missing []string

	mu    sync.Mutex
	calls []Call
}

func (f *FakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, Call{Name: name, Args: append([]string(nil), args...)})
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if f.Handler == nil {
		return "", nil
	}
	return f.Handler(name, args)
}

func (f *FakeExecutor) LookPath(name string) (string, error) {
	for _, m := range f.Missing {
		if m == name {
			return "", fmt.Errorf("%s not found", name)
		}
	}
	return "/usr/bin/" + name, nil
}

// Calls returns a copy of the recorded invocations
func (f *FakeExecutor) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// ArgAfter returns the argument that follows flag, or ""
func ArgAfter(args []string, flag string) string {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	return ""
}
