// Package lockfile handles dependency-lockfile conflicts during patch
// replays. Only its pass/fail contract matters to the engine: either the
// lockfile paths end up resolved and staged, or the conflict stands.
package lockfile

import (
	"fmt"
	"os/exec"
	"path"
	"strings"

	"hypkg/internal/git"
	"hypkg/internal/gitexec"
	"hypkg/internal/logs"
)

// DefaultCommand regenerates the npm lockfile without touching node_modules.
const DefaultCommand = "npm install --package-lock-only"

var lockfileNames = []string{
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"bun.lockb",
}

// Handler resolves lockfile-only conflicts by regenerating the lockfile with
// an external command.
type Handler struct {
	runner  gitexec.Runner
	dir     string
	command string
}

func New(runner gitexec.Runner, dir, command string) *Handler {
	if command == "" {
		command = DefaultCommand
	}
	return &Handler{runner: runner, dir: dir, command: command}
}

// IsLockfilePath reports whether a path names a recognized dependency
// lockfile.
func IsLockfilePath(p string) bool {
	base := path.Base(p)
	for _, n := range lockfileNames {
		if base == n {
			return true
		}
	}
	return false
}

// LockfileOnly reports whether every given conflicted path is a lockfile.
func LockfileOnly(paths []string) bool {
	if len(paths) == 0 {
		return false
	}
	for _, p := range paths {
		if !IsLockfilePath(p) {
			return false
		}
	}
	return true
}

// ResolveConflicts resolves the given conflicted lockfile paths: take the
// incoming side to unblock the index, then regenerate so the lockfile matches
// the merged manifest, then stage. Fails if regeneration fails.
func (h *Handler) ResolveConflicts(paths []string) error {
	for _, p := range paths {
		if err := git.CheckoutTheirs(h.runner, p); err != nil {
			return err
		}
	}
	if err := h.regenerate(); err != nil {
		return err
	}
	for _, p := range paths {
		if err := git.StagePath(h.runner, p); err != nil {
			return err
		}
	}
	return nil
}

// Reconcile regenerates the lockfile against the current tree and reports
// whether anything changed. Used after a removal replay, since later patches
// may depend on packages introduced only by the removed one.
func (h *Handler) Reconcile() (bool, error) {
	if err := h.regenerate(); err != nil {
		return false, err
	}
	status, err := h.runner.Run("check lockfile drift", "status", "--porcelain")
	if err != nil {
		return false, err
	}
	for _, line := range strings.Split(status, "\n") {
		// Porcelain v1: two status columns, a space, then the path. Renames
		// carry "orig -> new"; only the destination matters here.
		if len(line) < 4 {
			continue
		}
		p := line[3:]
		if i := strings.LastIndex(p, " -> "); i >= 0 {
			p = p[i+4:]
		}
		if IsLockfilePath(p) {
			return true, nil
		}
	}
	return false, nil
}

func (h *Handler) regenerate() error {
	parts := strings.Fields(h.command)
	if len(parts) == 0 {
		return fmt.Errorf("empty lockfile command")
	}
	cmd := exec.Command(parts[0], parts[1:]...)
	cmd.Dir = h.dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("lockfile regeneration '%s' failed: %v\n%s", h.command, err, string(out))
	}
	logs.Debug("Lockfile regenerated via '%s'", h.command)
	return nil
}
