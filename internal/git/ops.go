package git

import (
	"hypkg/internal/gitexec"
)

// CherryPick replays a single commit onto HEAD, committing on success.
func CherryPick(r gitexec.Runner, hash string) error {
	_, err := r.Run("cherry-pick "+hash, "cherry-pick", hash)
	return err
}

// CherryPickAbort backs out of an in-progress cherry-pick. Best effort: there
// may be nothing in progress.
func CherryPickAbort(r gitexec.Runner) {
	_, _ = r.Run("abort cherry-pick", "cherry-pick", "--abort")
}

// CherryPickNoCommit applies a commit's changes to the working tree without
// committing. The caller is expected to inspect ConflictedPaths afterwards;
// the command itself failing with conflicts is part of the normal flow.
func CherryPickNoCommit(r gitexec.Runner, hash string) error {
	_, err := r.Run("cherry-pick (no commit) "+hash, "cherry-pick", "--no-commit", hash)
	return err
}

// ConflictedPaths lists paths still in an unmerged state.
func ConflictedPaths(r gitexec.Runner) ([]string, error) {
	out, err := r.Run("list conflicted paths", "diff", "--name-only", "--diff-filter=U")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// CheckoutTheirs resolves a conflicted path by taking the incoming side.
func CheckoutTheirs(r gitexec.Runner, path string) error {
	_, err := r.Run("take incoming side of "+path, "checkout", "--theirs", "--", path)
	return err
}

// StageAll stages every change in the working tree.
func StageAll(r gitexec.Runner) error {
	_, err := r.Run("stage all changes", "add", "-A")
	return err
}

// StagePath stages one path.
func StagePath(r gitexec.Runner, path string) error {
	_, err := r.Run("stage "+path, "add", "--", path)
	return err
}

// CommitWithMessage creates a commit with the given full message.
func CommitWithMessage(r gitexec.Runner, message string) error {
	_, err := r.Run("create commit", "commit", "-m", message)
	return err
}

// AmendMessage rewrites HEAD's commit message without touching its content.
func AmendMessage(r gitexec.Runner, message string) error {
	_, err := r.Run("amend commit message", "commit", "--amend", "-m", message)
	return err
}

// ResetHard moves the current branch (and working tree) to ref.
func ResetHard(r gitexec.Runner, ref string) error {
	_, err := r.Run("hard reset to "+ref, "reset", "--hard", ref)
	return err
}

// Checkout switches to an existing branch.
func Checkout(r gitexec.Runner, branch string) error {
	_, err := r.Run("check out '"+branch+"'", "checkout", branch)
	return err
}

// CreateBranchAt creates a branch pointer at ref without checking it out.
func CreateBranchAt(r gitexec.Runner, name, ref string) error {
	_, err := r.Run("create branch '"+name+"'", "branch", name, ref)
	return err
}

// DeleteBranch force-deletes a local branch.
func DeleteBranch(r gitexec.Runner, name string) error {
	_, err := r.Run("delete branch '"+name+"'", "branch", "-D", name)
	return err
}
