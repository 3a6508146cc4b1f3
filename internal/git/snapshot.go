package git

import (
	"fmt"
	"strings"
	"time"

	"hypkg/internal/errs"
	"hypkg/internal/gitexec"
	"hypkg/internal/logs"
	"hypkg/internal/model"
)

const stashLabelPrefix = "hypkg-snapshot-"

// Snapshot records the current branch and commit, stashing any uncommitted
// changes under a uniquely timestamped label. The label, not the stash index,
// is recorded: indices shift as other stash operations interleave.
func Snapshot(r gitexec.Runner) (model.GitStateSnapshot, error) {
	branch, err := CurrentBranch(r)
	if err != nil {
		return model.GitStateSnapshot{}, err
	}
	hash, err := r.Run("resolve HEAD for snapshot", "rev-parse", "HEAD")
	if err != nil {
		return model.GitStateSnapshot{}, err
	}

	snap := model.GitStateSnapshot{
		Branch:     branch,
		CommitHash: hash,
		TakenAt:    time.Now(),
	}

	status, err := r.Run("check working tree", "status", "--porcelain")
	if err != nil {
		return model.GitStateSnapshot{}, err
	}
	if strings.TrimSpace(status) != "" {
		label := fmt.Sprintf("%s%d", stashLabelPrefix, snap.TakenAt.UnixNano())
		if _, err := r.Run("stash uncommitted changes", "stash", "push", "-u", "-m", label); err != nil {
			return model.GitStateSnapshot{}, err
		}
		snap.StashLabel = label
	}

	logs.Debug("Snapshot taken: branch=%s commit=%s stash=%q", branch, hash, snap.StashLabel)
	return snap, nil
}

// Restore puts the repository back into the snapshotted state: discard any
// partial mutation, return to the original branch, reset it to the recorded
// commit and pop the recorded stash if one was taken. A stash that can no
// longer be located by label only logs a warning; the state is already
// otherwise consistent.
func Restore(r gitexec.Runner, snap model.GitStateSnapshot) error {
	if err := ResetHard(r, "HEAD"); err != nil {
		return errs.Wrapf(err, "rollback: failed to discard partial changes")
	}
	if err := Checkout(r, snap.Branch); err != nil {
		return errs.Wrapf(err, "rollback: failed to check out '%s'", snap.Branch)
	}
	if err := ResetHard(r, snap.CommitHash); err != nil {
		return errs.Wrapf(err, "rollback: failed to reset '%s' to %s", snap.Branch, snap.CommitHash)
	}

	if snap.StashLabel == "" {
		return nil
	}

	list, err := r.Run("list stashes", "stash", "list")
	if err != nil {
		return errs.Wrapf(err, "rollback: failed to list stashes")
	}
	ref := findStashByLabel(list, snap.StashLabel)
	if ref == "" {
		logs.Warn("Stash '%s' not found during rollback; leaving stash list untouched.", snap.StashLabel)
		return nil
	}
	if _, err := r.Run("restore stashed changes", "stash", "pop", ref); err != nil {
		return errs.Wrapf(err, "rollback: failed to pop stash '%s'", snap.StashLabel)
	}
	return nil
}

// findStashByLabel locates a stash entry by label substring and returns its
// stash@{n} ref, or "" when no entry matches. The ref is read from the
// matching line at pop time, so it is correct even after the list has shifted.
func findStashByLabel(stashList, label string) string {
	for _, line := range strings.Split(stashList, "\n") {
		if !strings.Contains(line, label) {
			continue
		}
		if i := strings.Index(line, ":"); i > 0 {
			return line[:i]
		}
	}
	return ""
}
