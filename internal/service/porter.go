package service

import (
	"fmt"

	"hypkg/internal/errs"
	"hypkg/internal/git"
	"hypkg/internal/gitexec"
	"hypkg/internal/lockfile"
	"hypkg/internal/logs"
)

// PorterState is one step of the commit-porting state machine. The
// cherry-pick fallback chain (pick, abort, retry without committing, resolve
// lockfiles, commit) used to live as nested error handling; making it an
// explicit machine lets the fallback path and the rollback guarantee be
// tested without a real repository.
type PorterState int

const (
	StateIdle PorterState = iota
	StateSnapshotted
	StateCherryPicking
	StateResolvingConflicts
	StateCommitting
	StateRolledBack
	StateCommitted
)

func (s PorterState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSnapshotted:
		return "snapshotted"
	case StateCherryPicking:
		return "cherry-picking"
	case StateResolvingConflicts:
		return "resolving-conflicts"
	case StateCommitting:
		return "committing"
	case StateRolledBack:
		return "rolled-back"
	case StateCommitted:
		return "committed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// porterTransitions is the legal transition table. Committed loops back to
// CherryPicking so a removal replay can port a whole range through one
// machine.
var porterTransitions = map[PorterState][]PorterState{
	StateIdle:               {StateSnapshotted},
	StateSnapshotted:        {StateCherryPicking, StateRolledBack},
	StateCherryPicking:      {StateCommitting, StateResolvingConflicts, StateRolledBack},
	StateResolvingConflicts: {StateCommitting, StateRolledBack},
	StateCommitting:         {StateCommitted, StateRolledBack},
	StateCommitted:          {StateCherryPicking, StateRolledBack},
	StateRolledBack:         {},
}

// CanTransition reports whether from -> to is a legal porter transition.
func CanTransition(from, to PorterState) bool {
	for _, t := range porterTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// porter ports single commits onto HEAD with the conflict fallback chain.
type porter struct {
	runner    gitexec.Runner
	lockfiles *lockfile.Handler
	state     PorterState
}

func newPorter(runner gitexec.Runner, lockfiles *lockfile.Handler) *porter {
	return &porter{runner: runner, lockfiles: lockfiles, state: StateIdle}
}

func (p *porter) transition(to PorterState) error {
	if !CanTransition(p.state, to) {
		return fmt.Errorf("illegal porter transition %s -> %s", p.state, to)
	}
	logs.Debug("Porter: %s -> %s", p.state, to)
	p.state = to
	return nil
}

// portCommit cherry-picks hash onto HEAD and leaves a commit whose message is
// exactly message. patchName is only used for error reporting.
//
// The fallback chain on conflict: abort the committing pick, re-apply to the
// working tree without committing, hand lockfile-only conflicts to the
// lockfile handler, then stage everything and commit. Any surviving
// non-lockfile conflict is a MergeConflictError.
func (p *porter) portCommit(patchName, hash, message string) error {
	if err := p.transition(StateCherryPicking); err != nil {
		return err
	}

	if err := git.CherryPick(p.runner, hash); err == nil {
		if err := p.transition(StateCommitting); err != nil {
			return err
		}
		if err := git.AmendMessage(p.runner, message); err != nil {
			return err
		}
		return p.transition(StateCommitted)
	}

	logs.Info("Cherry-pick of %s conflicted; retrying without committing.", hash)
	git.CherryPickAbort(p.runner)
	// Expected to fail again when conflicts are real; the working tree now
	// holds the conflict markers either way.
	_ = git.CherryPickNoCommit(p.runner, hash)

	paths, err := git.ConflictedPaths(p.runner)
	if err != nil {
		return err
	}
	if len(paths) > 0 {
		if !lockfile.LockfileOnly(paths) {
			return &errs.MergeConflictError{Patch: patchName, Paths: paths}
		}
		if err := p.transition(StateResolvingConflicts); err != nil {
			return err
		}
		if err := p.lockfiles.ResolveConflicts(paths); err != nil {
			return err
		}
		remaining, err := git.ConflictedPaths(p.runner)
		if err != nil {
			return err
		}
		if len(remaining) > 0 {
			return &errs.MergeConflictError{Patch: patchName, Paths: remaining}
		}
	}

	if err := p.transition(StateCommitting); err != nil {
		return err
	}
	if err := git.StageAll(p.runner); err != nil {
		return err
	}
	if err := git.CommitWithMessage(p.runner, message); err != nil {
		return err
	}
	return p.transition(StateCommitted)
}
