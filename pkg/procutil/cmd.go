package procutil

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"syscall"
)

func CmdExitCode(cmd *exec.Cmd, err error) int {
	if err == nil {
		// success, exitCode should be 0 if go is ok
		ws := cmd.ProcessState.Sys().(syscall.WaitStatus)
		return ws.ExitStatus()
	}

	// try to get the exit code
	var exitError *exec.ExitError
	if errors.As(err, &exitError) {
		ws := exitError.Sys().(syscall.WaitStatus)
		return ws.ExitStatus()
	}

	// This will happen (in OSX) if `name` is not available in $PATH,
	// in this situation, exit code could not be get, and stderr will be
	// empty string very likely, so we use the default fail code, and format err
	// to string and set to stderr
	return -1
}

// Result captures the outcome of a finished external command.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Run executes name with args in dir and collects its output.  A non-zero
// exit is reported through Result.ExitCode together with the exec error.
func Run(ctx context.Context, dir, name string, args ...string) (*Result, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	return &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: CmdExitCode(cmd, err),
	}, err
}
