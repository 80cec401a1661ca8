package introspect

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kestrel-lang/kestrel/internal/fsiface"
)

type fakeRunner struct {
	result fsiface.RunResult
	err    error
}

func (f fakeRunner) Run(ctx context.Context, exe string, args []string, workingDir string, timeout time.Duration) (fsiface.RunResult, error) {
	return f.result, f.err
}

func TestProcessHelperReturnsStdout(t *testing.T) {
	h := NewProcessHelper(fakeRunner{result: fsiface.RunResult{Stdout: "def f(): ...\n"}}, "helper")
	out, err := h.Introspect(context.Background(), "mymod", "/lib")
	require.NoError(t, err)
	require.Equal(t, "def f(): ...\n", out)
}

func TestProcessHelperReportsTimeout(t *testing.T) {
	h := NewProcessHelper(fakeRunner{result: fsiface.RunResult{TimedOut: true}}, "helper")
	_, err := h.Introspect(context.Background(), "mymod", "/lib")
	require.Error(t, err)
}

func TestProcessHelperReportsNonZeroExit(t *testing.T) {
	h := NewProcessHelper(fakeRunner{result: fsiface.RunResult{NonZero: true, ExitCode: 2}}, "helper")
	_, err := h.Introspect(context.Background(), "mymod", "/lib")
	require.Error(t, err)
}
