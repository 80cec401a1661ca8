// Package diag implements the diagnostic sink (spec.md §6.6): only
// diagnostics from modules the caller's ModuleFilter accepts (User
// modules, as internal/services wires it) are recorded, and an optional
// per-module cap drops a module's diagnostics past a fixed count. The
// cap counts diagnostics; it does not detect repeated identical ones.
package diag

import (
	"github.com/kestrel-lang/kestrel/internal/token"
)

// Source distinguishes where a diagnostic originated (spec.md §6.6).
type Source int

const (
	SourceParser Source = iota
	SourceAnalysis
)

// Severity mirrors the common editor-protocol severities.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// Diagnostic is one reported finding (spec.md §6.6).
type Diagnostic struct {
	Message  string
	Span     token.Span
	Code     string
	Severity Severity
	Source   Source
}

// ModuleFilter reports whether diagnostics from a module of the given
// kind should ever be surfaced. internal/modules.Kind is not imported
// here (it would cycle back through internal/modules -> internal/diag
// if diag needed Registry state); callers pass the predicate instead.
type ModuleFilter func(moduleKind int, moduleQualifiedName string) bool

// Sink collects diagnostics for User modules only (spec.md §6.6:
// "Library, Stub, and Builtin diagnostics are suppressed"), with a
// per-module throttle capping how many diagnostics one module can emit
// in a single analysis pass before later ones are dropped.
type Sink struct {
	reportable ModuleFilter
	maxPerModule int

	byModule map[string][]Diagnostic
}

// NewSink constructs a Sink. maxPerModule <= 0 disables throttling.
func NewSink(reportable ModuleFilter, maxPerModule int) *Sink {
	return &Sink{reportable: reportable, maxPerModule: maxPerModule, byModule: make(map[string][]Diagnostic)}
}

// Report records d against module (identified by qualified name and
// kind), subject to the User-only filter and the per-module cap.
func (s *Sink) Report(moduleKind int, moduleQualifiedName string, d Diagnostic) {
	if s.reportable != nil && !s.reportable(moduleKind, moduleQualifiedName) {
		return
	}
	if s.maxPerModule > 0 && len(s.byModule[moduleQualifiedName]) >= s.maxPerModule {
		return
	}
	s.byModule[moduleQualifiedName] = append(s.byModule[moduleQualifiedName], d)
}

// For returns the diagnostics recorded against a module, in report order.
func (s *Sink) For(moduleQualifiedName string) []Diagnostic {
	return s.byModule[moduleQualifiedName]
}

// Reset clears a module's recorded diagnostics, used when its content
// version changes and analysis restarts (spec.md §3.2 content reset).
func (s *Sink) Reset(moduleQualifiedName string) {
	delete(s.byModule, moduleQualifiedName)
}

// All returns every recorded diagnostic across all modules.
func (s *Sink) All() map[string][]Diagnostic {
	return s.byModule
}
