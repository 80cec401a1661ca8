// Package introspect scrapes a compiled module's interface to
// source-like text (spec.md §4.C point 4b, §6.3). Production wiring
// spawns the external helper process spec.md describes; this package
// additionally grounds SPEC_FULL.md's `golang.org/x/tools/go/packages`
// wiring with an in-process fallback for compiled *Go-based* extension
// modules (the teacher's own `internal/ext/inspector.go` scrapes Go
// packages for binding generation — here the same scraping produces a
// stub-like textual interface instead of generated binding code).
package introspect

import (
	"context"
	"fmt"
	"go/types"
	"strings"
	"time"

	"golang.org/x/tools/go/packages"

	"github.com/kestrel-lang/kestrel/internal/fsiface"
)

// Helper is the external module-interface discovery contract (spec.md
// §6.3): given a module name and its library path, produce source-like
// text to parse as if it were the module's own source.
type Helper interface {
	Introspect(ctx context.Context, moduleName, libraryPath string) (string, error)
}

// ProcessHelper spawns an external script via runner, matching spec.md
// §6.3 literally ("the core spawns an introspection helper... passing
// the module name and library path").
type ProcessHelper struct {
	Runner  fsiface.ProcessRunner
	Exe     string
	Timeout time.Duration
}

func NewProcessHelper(runner fsiface.ProcessRunner, exe string) *ProcessHelper {
	return &ProcessHelper{Runner: runner, Exe: exe, Timeout: 60 * time.Second}
}

func (h *ProcessHelper) Introspect(ctx context.Context, moduleName, libraryPath string) (string, error) {
	result, err := h.Runner.Run(ctx, h.Exe, []string{moduleName, libraryPath}, libraryPath, h.Timeout)
	if err != nil {
		return "", fmt.Errorf("introspection helper %s failed for %s: %w", h.Exe, moduleName, err)
	}
	if result.TimedOut {
		return "", fmt.Errorf("introspection helper %s timed out for %s", h.Exe, moduleName)
	}
	if result.NonZero {
		return "", fmt.Errorf("introspection helper %s exited %d for %s", h.Exe, result.ExitCode, moduleName)
	}
	return result.Stdout, nil
}

// GoPackageHelper introspects a compiled *Go* extension module in
// process, using golang.org/x/tools/go/packages the way the teacher's
// inspector.go does — loading the package and walking its exported
// declarations — but emitting a minimal textual stub (one
// `def name(*args, **kwargs): ...` per exported func, one `name = ...`
// per every other exported object) rather than generated Go binding
// code. As a Registry's helper it is consulted when a module directory
// has no source files of the analyzed language (spec.md §4.C point 4b
// "if a compiled module is indicated").
type GoPackageHelper struct{}

func (GoPackageHelper) Introspect(ctx context.Context, moduleName, libraryPath string) (string, error) {
	cfg := &packages.Config{
		Mode:    packages.NeedName | packages.NeedTypes | packages.NeedSyntax,
		Dir:     libraryPath,
		Context: ctx,
	}
	pkgs, err := packages.Load(cfg, moduleName)
	if err != nil {
		return "", fmt.Errorf("loading go package %s: %w", moduleName, err)
	}
	if len(pkgs) == 0 || pkgs[0].Types == nil {
		return "", fmt.Errorf("no exported interface found for %s", moduleName)
	}

	var sb strings.Builder
	scope := pkgs[0].Types.Scope()
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		if obj == nil || !obj.Exported() {
			continue
		}
		switch obj.Type().Underlying().(type) {
		case *types.Signature:
			fmt.Fprintf(&sb, "def %s(*args, **kwargs): ...\n", name)
		default:
			fmt.Fprintf(&sb, "%s = ...\n", name)
		}
	}
	return sb.String(), nil
}
