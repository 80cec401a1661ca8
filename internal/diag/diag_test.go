package diag

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func userOnly(kind int, name string) bool { return kind == 0 }

func TestSinkSuppressesNonUserModules(t *testing.T) {
	s := NewSink(userOnly, 0)
	s.Report(0, "app", Diagnostic{Message: "user issue"})
	s.Report(1, "requests(2.31.0)", Diagnostic{Message: "library issue"})

	require.Len(t, s.For("app"), 1)
	require.Empty(t, s.For("requests(2.31.0)"))
}

func TestSinkThrottlesPerModule(t *testing.T) {
	s := NewSink(userOnly, 2)
	for i := 0; i < 5; i++ {
		s.Report(0, "app", Diagnostic{Message: "issue"})
	}
	require.Len(t, s.For("app"), 2)
}

func TestSinkResetClearsModule(t *testing.T) {
	s := NewSink(userOnly, 0)
	s.Report(0, "app", Diagnostic{Message: "issue"})
	s.Reset("app")
	require.Empty(t, s.For("app"))
}
