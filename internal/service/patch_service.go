package service

import (
	"fmt"
	"time"

	"hypkg/internal/commitmsg"
	"hypkg/internal/errs"
	"hypkg/internal/git"
	"hypkg/internal/hooks"
	"hypkg/internal/logs"
	"hypkg/internal/model"
)

// PatchService orchestrates apply, remove and list. Every mutating operation
// snapshots state before its first mutation and restores it on any later
// failure: git offers no multi-command transaction, so the snapshot/rollback
// discipline is the only thing guaranteeing a fully-applied-or-fully-unapplied
// outcome.
type PatchService struct {
	deps Deps
}

func NewPatchService(deps Deps) *PatchService {
	return &PatchService{deps: deps}
}

// baseRef is the comparison target for the applied set: the origin tip of the
// base branch when one exists, else the local base branch. Commits ahead of
// it on the working branch are the ledger.
func (s *PatchService) baseRef() string {
	base := git.BaseBranch(s.deps.Runner)
	if _, err := git.RevParse(s.deps.Runner, "origin/"+base); err == nil {
		return "origin/" + base
	}
	return base
}

// guardWorkingBranch refuses a mutating operation while a protected branch
// other than the resolved base is checked out. Patches are layered onto the
// base trunk; rewriting any other trunk would destroy history the patch
// engine does not own.
func (s *PatchService) guardWorkingBranch() error {
	branch, err := git.CurrentBranch(s.deps.Runner)
	if err != nil {
		return err
	}
	if branch != git.BaseBranch(s.deps.Runner) && git.IsProtected(s.deps.Runner, branch) {
		return errs.Wrapf(errs.ErrProtectedBranch, "'%s' is checked out", branch)
	}
	return nil
}

// AppliedSet reconstructs the ordered applied patch set by scanning the
// commit range between the base branch and HEAD for annotated commits, oldest
// first. The commit graph is the ledger; the state file only mirrors it.
func (s *PatchService) AppliedSet() ([]model.PatchRecord, error) {
	commits, err := git.CommitsBetween(s.deps.Runner, s.baseRef(), "HEAD")
	if err != nil {
		return nil, err
	}
	var set []model.PatchRecord
	for _, c := range commits {
		if !commitmsg.IsPatchCommit(c.Message) {
			continue
		}
		d := commitmsg.Decode(c.Message)
		set = append(set, model.PatchRecord{
			NamespacedName:  d.Name,
			Version:         d.Version,
			CommitHash:      c.Hash,
			OriginalHash:    d.OriginalHash,
			ModBaseHash:     d.ModBaseHash,
			CurrentBaseHash: d.CurrentBaseHash,
		})
	}
	return set, nil
}

// List returns the applied set and refreshes the cache mirror from it.
func (s *PatchService) List() ([]model.PatchRecord, error) {
	set, err := s.AppliedSet()
	if err != nil {
		return nil, err
	}
	branch, err := git.CurrentBranch(s.deps.Runner)
	if err != nil {
		return nil, err
	}
	if err := s.deps.Store.Replace(branch, set); err != nil {
		logs.Warn("Failed to refresh state mirror: %v", err)
	}
	return set, nil
}

// Apply layers the named patch onto HEAD. Applying an already-applied patch
// is a successful no-op.
func (s *PatchService) Apply(namespacedName string) error {
	r := s.deps.Runner
	name := model.ParsePatchName(namespacedName)
	if name.RepoName == "" {
		return &errs.PatchNotFoundError{Patch: namespacedName, Reason: "no source repository in name, expected repo/patch"}
	}

	if err := s.guardWorkingBranch(); err != nil {
		return err
	}

	set, err := s.AppliedSet()
	if err != nil {
		return err
	}
	for _, rec := range set {
		if rec.NamespacedName == namespacedName {
			logs.Info("Patch '%s' already applied; nothing to do.", namespacedName)
			return nil
		}
	}

	if err := git.Fetch(r, name.RepoName); err != nil {
		return &errs.RepositoryError{Repo: name.RepoName, Reason: "fetch failed", Err: err}
	}

	snap, err := git.Snapshot(r)
	if err != nil {
		return err
	}
	p := newPorter(r, s.deps.Lockfiles)
	if err := p.transition(StateSnapshotted); err != nil {
		return err
	}

	err = s.applyPorted(p, namespacedName, name)
	if err != nil {
		s.rollback(p, snap, err)
		return err
	}

	hooks.Run(s.deps.Config, "applyPatch", namespacedName)
	return nil
}

// applyPorted performs every step of apply that runs after the snapshot; any
// error out of here triggers rollback in the caller.
func (s *PatchService) applyPorted(p *porter, namespacedName string, name model.PatchName) error {
	r := s.deps.Runner

	// A previously resolved patch-name-to-branch mapping wins over the naming
	// convention; first-time applies record the convention for next time.
	branchName := git.ConfigGet(r, "branch."+name.PatchName)
	if branchName == "" {
		branchName = git.PatchBranchName(name.PatchName)
		if err := git.ConfigSet(r, "branch."+name.PatchName, branchName); err != nil {
			logs.Warn("Failed to record branch mapping for '%s': %v", name.PatchName, err)
		}
	}
	ref := name.RepoName + "/" + branchName

	// The unique commit to port: the tip of the remote patch branch not
	// already reachable from HEAD.
	unmerged, err := git.CommitsNotIn(r, ref, "HEAD")
	if err != nil || len(unmerged) == 0 {
		return &errs.PatchNotFoundError{
			Patch:  namespacedName,
			Reason: fmt.Sprintf("no portable commit on %s (missing branch or already merged)", ref),
		}
	}
	tip := unmerged[0]

	origMessage, err := git.CommitMessage(r, tip)
	if err != nil {
		return err
	}
	decoded := commitmsg.Decode(origMessage)

	modBase := s.resolveModBase(tip, decoded, name.RepoName)
	currentBase, err := git.RevParse(r, s.baseRef())
	if err != nil {
		return err
	}

	message := commitmsg.Encode(namespacedName, decoded.Version, tip, modBase, currentBase)
	if err := p.portCommit(namespacedName, tip, message); err != nil {
		return err
	}

	branch, err := git.CurrentBranch(r)
	if err != nil {
		return err
	}
	return s.deps.Store.AddPatch(branch, model.PatchRecord{
		NamespacedName:  namespacedName,
		Version:         decoded.Version,
		OriginalHash:    tip,
		ModBaseHash:     modBase,
		CurrentBaseHash: currentBase,
	})
}

// resolveModBase finds the base-branch commit a patch was originally authored
// against, degrading gracefully for patches predating the metadata scheme:
// embedded metadata first, then the commit's first parent, then the remote's
// current base tip.
func (s *PatchService) resolveModBase(tip string, decoded commitmsg.Decoded, repo string) string {
	if decoded.ModBaseHash != model.Unknown && decoded.ModBaseHash != "" {
		return decoded.ModBaseHash
	}
	if parent := git.FirstParent(s.deps.Runner, tip); parent != "" {
		logs.Debug("No mod-base metadata on %s; using first parent %s.", tip, parent)
		return parent
	}
	base := git.BaseBranch(s.deps.Runner)
	if remoteTip, err := git.RevParse(s.deps.Runner, repo+"/"+base); err == nil {
		logs.Debug("No parent for %s; falling back to %s/%s tip.", tip, repo, base)
		return remoteTip
	}
	return model.Unknown
}

// Remove takes the named patch off the working branch by rebuilding history
// without it. A rebuild, not a revert: later patches are not guaranteed
// independent of earlier ones.
func (s *PatchService) Remove(namespacedName string) error {
	r := s.deps.Runner

	if err := s.guardWorkingBranch(); err != nil {
		return err
	}

	set, err := s.AppliedSet()
	if err != nil {
		return err
	}
	found := false
	for _, rec := range set {
		if rec.NamespacedName == namespacedName {
			found = true
			break
		}
	}
	if !found {
		return &errs.PatchNotFoundError{Patch: namespacedName, Reason: "not currently applied"}
	}

	snap, err := git.Snapshot(r)
	if err != nil {
		return err
	}
	p := newPorter(r, s.deps.Lockfiles)
	if err := p.transition(StateSnapshotted); err != nil {
		return err
	}

	if err := s.rebuildWithout(p, namespacedName); err != nil {
		s.rollback(p, snap, err)
		return err
	}

	hooks.Run(s.deps.Config, "removePatch", namespacedName)
	return nil
}

// rebuildWithout resets the working branch to the base tip and replays every
// commit except the target patch's, oldest first.
func (s *PatchService) rebuildWithout(p *porter, namespacedName string) error {
	r := s.deps.Runner
	base := s.baseRef()

	tmp := fmt.Sprintf("%s%d", git.TempBranchPrefix, time.Now().UnixNano())
	if err := git.CreateBranchAt(r, tmp, "HEAD"); err != nil {
		return err
	}
	// The pointer must not outlive the rebuild, successful or not.
	defer func() {
		if err := git.DeleteBranch(r, tmp); err != nil {
			logs.Warn("Failed to delete temporary branch '%s': %v", tmp, err)
		}
	}()

	commits, err := git.CommitsBetween(r, base, tmp)
	if err != nil {
		return err
	}
	if err := git.ResetHard(r, base); err != nil {
		return err
	}

	for _, c := range commits {
		if commitmsg.IsPatchCommit(c.Message) && commitmsg.Decode(c.Message).Name == namespacedName {
			logs.Info("Dropping commit %s ('%s').", c.Hash, namespacedName)
			continue
		}
		if err := p.portCommit(namespacedName, c.Hash, c.Message); err != nil {
			return err
		}
	}

	// Later patches may depend on packages introduced only by the removed
	// one; reconcile the lockfile once against the rebuilt tree.
	changed, err := s.deps.Lockfiles.Reconcile()
	if err != nil {
		return err
	}
	if changed {
		if err := git.StageAll(r); err != nil {
			return err
		}
		if err := git.CommitWithMessage(r, fmt.Sprintf("chore: reconcile lockfile after removing %s", namespacedName)); err != nil {
			return err
		}
	}

	return s.deps.Store.RemovePatch(namespacedName)
}

// Update re-applies an already-applied patch at its source branch's current
// tip: rebuild without it, then apply fresh. The namespaced name survives;
// the commit is new.
func (s *PatchService) Update(namespacedName string) error {
	set, err := s.AppliedSet()
	if err != nil {
		return err
	}
	applied := false
	for _, rec := range set {
		if rec.NamespacedName == namespacedName {
			applied = true
			break
		}
	}
	if !applied {
		return &errs.PatchNotFoundError{Patch: namespacedName, Reason: "not currently applied, nothing to update"}
	}
	if err := s.Remove(namespacedName); err != nil {
		return err
	}
	return s.Apply(namespacedName)
}

// rollback restores the snapshot after a failed mutation. The restore itself
// failing is logged but the original error still propagates.
func (s *PatchService) rollback(p *porter, snap model.GitStateSnapshot, cause error) {
	logs.Warn("Operation failed (%v); rolling back to %s@%s.", cause, snap.Branch, snap.CommitHash)
	_ = p.transition(StateRolledBack)
	if err := git.Restore(s.deps.Runner, snap); err != nil {
		logs.Error("Rollback failed: %v", err)
	}
}
