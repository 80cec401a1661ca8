package fsiface

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// LocalFileSystem implements FileSystem against the real OS file system,
// using doublestar for recursive glob matching (SPEC_FULL.md DOMAIN
// STACK: bmatcuk/doublestar, grounded on the termfx-morfx retrieval
// pack's glob-based config discovery).
type LocalFileSystem struct{}

func (LocalFileSystem) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func (LocalFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (LocalFileSystem) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (LocalFileSystem) ListEntries(root, pattern string, recursive bool) ([]Entry, error) {
	fsys := os.DirFS(root)
	glob := pattern
	if recursive && glob != "" {
		glob = "**/" + glob
	}
	if glob == "" {
		glob = "*"
	}
	matches, err := doublestar.Glob(fsys, glob)
	if err != nil {
		return nil, fmt.Errorf("listing %s (%s): %w", root, pattern, err)
	}
	out := make([]Entry, 0, len(matches))
	for _, m := range matches {
		full := filepath.Join(root, m)
		info, err := os.Stat(full)
		if err != nil {
			continue
		}
		out = append(out, Entry{Path: full, IsDir: info.IsDir()})
	}
	return out, nil
}

// LocalProcessRunner implements ProcessRunner by spawning a real OS
// process, matching spec.md §6.1's run_process contract (timeout,
// stdout capture, TimedOut/NonZeroExit classification).
type LocalProcessRunner struct{}

func (LocalProcessRunner) Run(ctx context.Context, exe string, args []string, workingDir string, timeout time.Duration) (RunResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Dir = workingDir
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return RunResult{Stdout: stdout.String(), TimedOut: true}, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return RunResult{Stdout: stdout.String(), NonZero: true, ExitCode: exitErr.ExitCode()}, nil
	}
	if err != nil {
		return RunResult{}, fmt.Errorf("running %s: %w", exe, err)
	}
	return RunResult{Stdout: stdout.String()}, nil
}
