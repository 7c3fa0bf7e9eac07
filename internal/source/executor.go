package source

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"
)

// CommandExecutor runs a system command and returns its standard output.
// Tests substitute a fake; production code uses defaultExecutor.
type CommandExecutor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
}

type defaultExecutor struct {
	Timeout time.Duration
}

func (e *defaultExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	// Avoid pagers and interactive prompts
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	out, err := cmd.Output()
	if err != nil {
		return "", &CommandError{Command: name, Err: err}
	}
	return strings.TrimSpace(string(out)), nil
}
