// Package fsiface declares the file-system and process-runner contracts
// the resolver and introspection helper depend on (spec.md §6.1), kept
// as narrow interfaces so production code and tests can each supply
// their own implementation without an import cycle back into
// internal/modules — the same narrow-interface-package convention the
// teacher uses for internal/ext's host integration points.
package fsiface

import (
	"context"
	"time"
)

// Entry is one file-system entry returned by ListEntries.
type Entry struct {
	Path  string
	IsDir bool
}

// FileSystem is the resolver's view of the file system (spec.md §6.1).
type FileSystem interface {
	ReadText(path string) (string, error)
	Exists(path string) bool
	IsDir(path string) bool
	// ListEntries lists entries under path matching pattern (a glob,
	// per SPEC_FULL.md's doublestar-backed implementation), optionally
	// recursing into subdirectories.
	ListEntries(path, pattern string, recursive bool) ([]Entry, error)
}

// RunResult is the outcome of ProcessRunner.Run.
type RunResult struct {
	Stdout     string
	TimedOut   bool
	NonZero    bool
	ExitCode   int
}

// ProcessRunner spawns the external introspection helper (spec.md
// §6.1, §6.3). The runner enforces timeout itself; LocalProcessRunner
// wraps ctx with context.WithTimeout.
type ProcessRunner interface {
	Run(ctx context.Context, exe string, args []string, workingDir string, timeout time.Duration) (RunResult, error)
}
