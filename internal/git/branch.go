package git

import (
	"strings"

	"hypkg/internal/gitexec"
	"hypkg/internal/model"
)

// PatchBranchPrefix namespaces branches that carry a distributable patch.
const PatchBranchPrefix = "mod/"

// TempBranchPrefix namespaces throwaway pointers created during history
// rebuilds.
const TempBranchPrefix = "hypkg-tmp-"

// commonBaseBranches are always treated as protected regardless of which one
// is the resolved base.
var commonBaseBranches = []string{"main", "master", "dev", "develop", "development"}

// BaseBranch returns "dev" when a local dev branch exists, else "main". The
// tie-break is fixed: the tool assumes a simple two-tier trunk convention.
func BaseBranch(r gitexec.Runner) string {
	if LocalBranchExists(r, "dev") {
		return "dev"
	}
	return "main"
}

// LocalBranchExists reports whether a local branch with the given name exists.
func LocalBranchExists(r gitexec.Runner, name string) bool {
	_, err := r.Run("check local branch", "rev-parse", "--verify", "--quiet", "refs/heads/"+name)
	return err == nil
}

// IsProtected reports whether mutating operations must refuse to run directly
// against the named branch.
func IsProtected(r gitexec.Runner, name string) bool {
	if name == BaseBranch(r) {
		return true
	}
	for _, b := range commonBaseBranches {
		if name == b {
			return true
		}
	}
	return false
}

// PatchBranchName returns the branch name carrying the given patch. Any
// existing prefix is stripped before re-adding it, so callers may pass a bare
// or an already-prefixed name.
func PatchBranchName(patchName string) string {
	return PatchBranchPrefix + strings.TrimPrefix(patchName, PatchBranchPrefix)
}

// Classify derives a branch's classification from its name. Classification is
// never stored.
func Classify(r gitexec.Runner, name string) model.BranchClass {
	switch {
	case strings.HasPrefix(name, TempBranchPrefix):
		return model.ClassTemporary
	case strings.HasPrefix(name, PatchBranchPrefix):
		return model.ClassPatch
	case IsProtected(r, name):
		return model.ClassBase
	default:
		return model.ClassOther
	}
}

// CurrentBranch returns the checked-out branch name.
func CurrentBranch(r gitexec.Runner) (string, error) {
	return r.Run("resolve current branch", "rev-parse", "--abbrev-ref", "HEAD")
}
