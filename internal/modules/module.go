package modules

import (
	"sync"

	"github.com/kestrel-lang/kestrel/internal/scope"
	"github.com/kestrel-lang/kestrel/internal/values"
)

// Module is one loaded unit of source (spec.md §3.2). A Module and its
// paired stub cross-reference each other; Specialized and Unresolved
// modules skip directly to StateAnalyzed.
type Module struct {
	mu sync.Mutex

	Name     string
	Qualified string
	FilePath string // absent for synthetic modules
	URI           string // absent for synthetic modules
	Kind          Kind

	Stub          *Module // set on a primary module once its stub loads
	PrimaryModule *Module // set on a stub, pointing back

	State   ContentState
	Version int
	Content string

	Scope          *scope.GlobalScope
	AnalysisResult interface{}

	// done is closed when the module reaches StateAnalyzed, waking any goroutine
	// blocked in Registry.EnsureAnalyzed (spec.md §5 "callers may time out
	// after a bounded retry; each retry waits only on the module's task
	// handle").
	done chan struct{}
}

func newModule(name, qualified string, kind Kind) *Module {
	return &Module{
		Name:      name,
		Qualified: qualified,
		Kind:      kind,
		State:     StateNone,
		done:      make(chan struct{}),
	}
}

var _ values.ModuleRef = (*Module)(nil)

// QualifiedName implements values.ModuleRef.
func (m *Module) QualifiedName() string { return m.Qualified }

func (m *Module) state() ContentState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.State
}

// setState transitions m.State, closing the done channel the first time
// it reaches StateAnalyzed so goroutines parked in waitHandle wake up.
// ResetContent installs a fresh channel for the next content version.
func (m *Module) setState(s ContentState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.State == StateAnalyzed {
		return
	}
	m.State = s
	if s == StateAnalyzed {
		close(m.done)
	}
}

// waitHandle returns the channel the caller should select on to observe
// the next transition to StateAnalyzed.
func (m *Module) waitHandle() chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.done
}

// ResetContent moves a module back to StateNone on a document update
// (spec.md §3.2 "content updates reset to None and restart"),
// incrementing Version so in-flight analyses of the prior version are
// stale.
func (m *Module) ResetContent(content string) {
	m.mu.Lock()
	m.Content = content
	m.Version++
	m.State = StateNone
	m.done = make(chan struct{})
	m.mu.Unlock()
}

func (m *Module) PairStub(stub *Module) {
	m.Stub = stub
	stub.PrimaryModule = m
}
