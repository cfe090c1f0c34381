package concentrator

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"time"
)

const checkTimeout = 10 * time.Second

// Runner executes the external concentrator tools.
type Runner interface {
	// Run starts the command and waits for it to finish, streaming its
	// output. A nonzero exit is not an error; only failing to start the
	// process is. This matches how the forwarder and reset script are
	// supervised: once they ran at all, their exit status is someone
	// else's problem.
	Run(name string, args ...string) error

	// Check runs the command and reports any nonzero exit, start failure
	// or timeout as an error.
	Check(name string, args ...string) error
}

type execRunner struct{}

// NewRunner returns the exec-backed Runner used in production.
func NewRunner() Runner {
	return execRunner{}
}

func (execRunner) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil
	}
	return err
}

func (execRunner) Check(name string, args ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()
	return exec.CommandContext(ctx, name, args...).Run()
}
