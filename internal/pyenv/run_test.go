package pyenv

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestRunBash(t *testing.T) {
	result, err := RunBash(context.Background(), "echo hello", t.TempDir(), nil)
	if err != nil {
		t.Fatalf("RunBash: %v", err)
	}
	if strings.TrimSpace(result.Stdout) != "hello" {
		t.Errorf("Stdout = %q, want hello", result.Stdout)
	}
	if result.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", result.ExitCode)
	}
}

func TestRunBashWorkingDir(t *testing.T) {
	dir := t.TempDir()
	result, err := RunBash(context.Background(), "pwd", dir, nil)
	if err != nil {
		t.Fatalf("RunBash: %v", err)
	}
	if !strings.Contains(result.Stdout, dir) {
		t.Errorf("pwd = %q, want it under %q", result.Stdout, dir)
	}
}

func TestRunBashNonZeroExit(t *testing.T) {
	result, err := RunBash(context.Background(), "echo oops >&2; exit 3", t.TempDir(), nil)
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if result == nil {
		t.Fatal("expected result alongside error")
	}
	if result.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", result.ExitCode)
	}
	if !strings.Contains(result.Stderr, "oops") {
		t.Errorf("Stderr = %q, want oops", result.Stderr)
	}
}

func TestRunBashEcho(t *testing.T) {
	var echo bytes.Buffer
	result, err := RunBash(context.Background(), "echo streamed", t.TempDir(), &echo)
	if err != nil {
		t.Fatalf("RunBash: %v", err)
	}
	if !strings.Contains(echo.String(), "streamed") {
		t.Errorf("echo writer got %q, want streamed output", echo.String())
	}
	if !strings.Contains(result.Stdout, "streamed") {
		t.Errorf("Stdout = %q, want captured output too", result.Stdout)
	}
}

func TestRunBashContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunBash(ctx, "sleep 5", t.TempDir(), nil); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
