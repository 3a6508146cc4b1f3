package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypkg/internal/errs"
	"hypkg/internal/gitexec"
	"hypkg/internal/lockfile"
)

func TestTransitionTable(t *testing.T) {
	legal := []struct{ from, to PorterState }{
		{StateIdle, StateSnapshotted},
		{StateSnapshotted, StateCherryPicking},
		{StateCherryPicking, StateCommitting},
		{StateCherryPicking, StateResolvingConflicts},
		{StateResolvingConflicts, StateCommitting},
		{StateCommitting, StateCommitted},
		{StateCommitted, StateCherryPicking},
		{StateSnapshotted, StateRolledBack},
		{StateCherryPicking, StateRolledBack},
		{StateResolvingConflicts, StateRolledBack},
		{StateCommitting, StateRolledBack},
		{StateCommitted, StateRolledBack},
	}
	for _, tr := range legal {
		assert.True(t, CanTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}

	illegal := []struct{ from, to PorterState }{
		{StateIdle, StateCherryPicking},
		{StateIdle, StateCommitted},
		{StateSnapshotted, StateCommitting},
		{StateResolvingConflicts, StateCherryPicking},
		{StateRolledBack, StateCherryPicking},
		{StateRolledBack, StateSnapshotted},
		{StateCommitted, StateCommitting},
	}
	for _, tr := range illegal {
		assert.False(t, CanTransition(tr.from, tr.to), "%s -> %s", tr.from, tr.to)
	}
}

func TestPorterRefusesIllegalTransition(t *testing.T) {
	p := newPorter(gitexec.NewMockRunner(), nil)
	// portCommit requires at least a snapshot first.
	err := p.portCommit("x", "c1", "msg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "illegal porter transition")
}

func TestPortCommitCleanPick(t *testing.T) {
	r := gitexec.NewMockRunner()
	r.Stub("cherry-pick c1", "", nil)
	r.Stub("commit --amend -m the message", "", nil)

	p := newPorter(r, lockfile.New(r, t.TempDir(), "true"))
	require.NoError(t, p.transition(StateSnapshotted))
	require.NoError(t, p.portCommit("repoA/feature", "c1", "the message"))
	assert.Equal(t, StateCommitted, p.state)
}

func TestPortCommitLockfileConflictFallback(t *testing.T) {
	r := gitexec.NewMockRunner()
	r.StubErr("cherry-pick c1", "CONFLICT (content): package-lock.json")
	r.Stub("cherry-pick --abort", "", nil)
	r.StubErr("cherry-pick --no-commit c1", "CONFLICT (content): package-lock.json")
	r.Stub("checkout --theirs -- package-lock.json", "", nil)
	r.Stub("add -- package-lock.json", "", nil)
	r.Stub("add -A", "", nil)
	r.Stub("commit -m the message", "", nil)

	diffCalls := 0
	r.Handler = func(args []string) (string, error) {
		if len(args) > 0 && args[0] == "diff" {
			diffCalls++
			if diffCalls == 1 {
				return "package-lock.json", nil
			}
			return "", nil // resolved on the second check
		}
		return "", assert.AnError
	}

	p := newPorter(r, lockfile.New(r, t.TempDir(), "true"))
	require.NoError(t, p.transition(StateSnapshotted))
	require.NoError(t, p.portCommit("repoA/feature", "c1", "the message"))
	assert.Equal(t, StateCommitted, p.state)
	assert.True(t, r.Called("cherry-pick --abort"))
	assert.True(t, r.Called("commit -m the message"))
}

func TestPortCommitRealConflictFails(t *testing.T) {
	r := gitexec.NewMockRunner()
	r.StubErr("cherry-pick c1", "CONFLICT (content): src/index.js")
	r.Stub("cherry-pick --abort", "", nil)
	r.StubErr("cherry-pick --no-commit c1", "CONFLICT (content): src/index.js")
	r.Stub("diff --name-only --diff-filter=U", "src/index.js\npackage-lock.json", nil)

	p := newPorter(r, lockfile.New(r, t.TempDir(), "true"))
	require.NoError(t, p.transition(StateSnapshotted))

	err := p.portCommit("repoA/feature", "c1", "the message")
	var conflict *errs.MergeConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "repoA/feature", conflict.Patch)
	assert.Contains(t, conflict.Paths, "src/index.js")
	assert.False(t, r.Called("commit -m the message"), "no commit may be created on a real conflict")
}
