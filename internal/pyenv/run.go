package pyenv

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
)

// RunResult captures the output of a shell command.
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// RunBash executes command through `bash -c` in dir, capturing stdout and
// stderr. A non-zero exit returns the populated result alongside the error.
// When echo is non-nil, output is additionally streamed to it.
func RunBash(ctx context.Context, command, dir string, echo io.Writer) (*RunResult, error) {
	bash, err := exec.LookPath("bash")
	if err != nil {
		return nil, fmt.Errorf("bash not found in PATH: %w", err)
	}

	cmd := exec.CommandContext(ctx, bash, "-c", command)
	cmd.Dir = dir

	var stdoutBuf, stderrBuf bytes.Buffer
	if echo != nil {
		cmd.Stdout = io.MultiWriter(echo, &stdoutBuf)
		cmd.Stderr = io.MultiWriter(echo, &stderrBuf)
	} else {
		cmd.Stdout = &stdoutBuf
		cmd.Stderr = &stderrBuf
	}

	err = cmd.Run()

	result := &RunResult{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, fmt.Errorf("command %q exited with code %d", command, result.ExitCode)
		}
		return result, fmt.Errorf("running %q: %w", command, err)
	}
	return result, nil
}
