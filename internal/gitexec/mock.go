package gitexec

import (
	"fmt"
	"strings"

	"hypkg/internal/errs"
)

// MockRunner is a scriptable Runner for tests. Stubs map a joined argument
// vector ("rev-parse HEAD") to a canned result; Handler, when set, answers
// anything the stubs do not. Unmatched calls fail loudly so tests never pass
// on an unexpected git invocation.
type MockRunner struct {
	Stubs   map[string]MockResult
	Handler func(args []string) (string, error)
	Calls   [][]string
}

type MockResult struct {
	Out string
	Err error
}

func NewMockRunner() *MockRunner {
	return &MockRunner{Stubs: map[string]MockResult{}}
}

// Stub registers a canned response for the exact argument vector.
func (m *MockRunner) Stub(argv string, out string, err error) {
	m.Stubs[argv] = MockResult{Out: out, Err: err}
}

// StubErr registers a CommandError response for the exact argument vector.
func (m *MockRunner) StubErr(argv string, stderr string) {
	args := strings.Fields(argv)
	m.Stubs[argv] = MockResult{Err: &errs.CommandError{
		Args:    args,
		Stderr:  stderr,
		Context: "stubbed failure",
		Err:     fmt.Errorf("exit status 1"),
	}}
}

func (m *MockRunner) Run(intent string, args ...string) (string, error) {
	m.Calls = append(m.Calls, args)
	key := strings.Join(args, " ")
	if res, ok := m.Stubs[key]; ok {
		return res.Out, res.Err
	}
	if m.Handler != nil {
		return m.Handler(args)
	}
	return "", fmt.Errorf("unexpected git invocation: git %s (%s)", key, intent)
}

// Called reports whether an invocation with the given joined argv was made.
func (m *MockRunner) Called(argv string) bool {
	for _, c := range m.Calls {
		if strings.Join(c, " ") == argv {
			return true
		}
	}
	return false
}
