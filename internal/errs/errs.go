package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors usable with errors.Is for coarse classification.
var (
	// ErrNotGitRepo indicates the working directory is not inside a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrProtectedBranch indicates a mutating operation targeted a protected branch.
	ErrProtectedBranch = errors.New("operation refused on protected branch")
)

// Wrapf wraps an error with a formatted message for better context.
func Wrapf(err error, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// CommandError is raised whenever the external git binary exits non-zero.
// It always carries the full argument vector, the captured stderr and a
// caller-supplied description of what the command was trying to achieve,
// never a bare exit code.
type CommandError struct {
	Args    []string
	Stderr  string
	Context string
	Err     error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s: git %s failed", e.Context, strings.Join(e.Args, " "))
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg = fmt.Sprintf("%s: %s", msg, s)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// PatchNotFoundError indicates no unique portable commit exists for a patch, or
// that a patch was not recorded as applied when an operation required it.
type PatchNotFoundError struct {
	Patch  string
	Reason string
}

func (e *PatchNotFoundError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("patch '%s' not found", e.Patch)
	}
	return fmt.Sprintf("patch '%s' not found: %s", e.Patch, e.Reason)
}

// RepositoryError indicates a remote or origin verification failure.
type RepositoryError struct {
	Repo   string
	Reason string
	Err    error
}

func (e *RepositoryError) Error() string {
	msg := fmt.Sprintf("repository '%s': %s", e.Repo, e.Reason)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// MergeConflictError indicates unresolved non-lockfile conflicts that survived
// the cherry-pick fallback chain. Paths holds the still-conflicted files.
type MergeConflictError struct {
	Patch string
	Paths []string
}

func (e *MergeConflictError) Error() string {
	if len(e.Paths) == 0 {
		return fmt.Sprintf("merge conflict while applying '%s'", e.Patch)
	}
	return fmt.Sprintf("merge conflict while applying '%s': unresolved paths: %s",
		e.Patch, strings.Join(e.Paths, ", "))
}

// ConfigError indicates malformed persisted local state.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("bad state file %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
