package gitexec

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"hypkg/internal/errs"
	"hypkg/internal/logs"
)

// Runner is the sole chokepoint for invoking the git binary. Every component
// routes through it so failures carry consistent context and the boundary is
// mockable in tests. No retry or timeout logic lives here; retries are a
// business decision made by callers.
type Runner interface {
	// Run executes git with the given argument vector and returns trimmed
	// stdout on exit 0. intent describes what the caller was trying to do and
	// is carried on the error, never a bare exit code.
	Run(intent string, args ...string) (string, error)
}

// ExecRunner runs git commands in a fixed working directory via os/exec.
type ExecRunner struct {
	gitPath string
	Dir     string
}

// NewRunner returns an ExecRunner for the given directory (empty = process
// cwd). It fails when no git executable is on PATH.
func NewRunner(dir string) (*ExecRunner, error) {
	p, err := exec.LookPath("git")
	if err != nil {
		return nil, fmt.Errorf("no 'git' program on path: %w", err)
	}
	return &ExecRunner{gitPath: p, Dir: dir}, nil
}

func (r *ExecRunner) Run(intent string, args ...string) (string, error) {
	cmd := exec.Command(r.gitPath, args...)
	cmd.Dir = r.Dir
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logs.Debug("git %s", strings.Join(args, " "))
	if err := cmd.Run(); err != nil {
		return "", &errs.CommandError{
			Args:    args,
			Stderr:  stderr.String(),
			Context: intent,
			Err:     err,
		}
	}
	return strings.TrimSpace(stdout.String()), nil
}

// IsGitRepo reports whether dir is inside a git work tree.
func IsGitRepo(r Runner) bool {
	out, err := r.Run("detect repository", "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}
