package model

import (
	"strings"
	"time"
)

// Unknown is the sentinel stored for any provenance field whose value could
// not be determined. Fallback logic compares against this single value, never
// against "" or a nil pointer.
const Unknown = "unknown"

// PatchRecord describes one applied patch, reconstructed from its annotated
// commit. NamespacedName is "repo/patchName" for patches sourced from a named
// remote, or a bare patch name for local ones.
type PatchRecord struct {
	NamespacedName  string `json:"name"`
	Version         string `json:"version,omitempty"`
	CommitHash      string `json:"commitHash,omitempty"`
	OriginalHash    string `json:"originalHash,omitempty"`
	ModBaseHash     string `json:"modBaseHash,omitempty"`
	CurrentBaseHash string `json:"currentBaseHash,omitempty"`
}

// PatchName splits a namespaced name into its repository and patch parts.
type PatchName struct {
	RepoName  string // empty when the name carries no namespace
	PatchName string
}

// String reassembles the namespaced form.
func (p PatchName) String() string {
	if p.RepoName == "" {
		return p.PatchName
	}
	return p.RepoName + "/" + p.PatchName
}

// ParsePatchName splits "repoA/mod-x" into {repoA, mod-x}; a bare "mod-x"
// yields an empty repo name. Only the first separator namespaces; the rest of
// the string belongs to the patch name.
func ParsePatchName(name string) PatchName {
	if i := strings.Index(name, "/"); i >= 0 {
		return PatchName{RepoName: name[:i], PatchName: name[i+1:]}
	}
	return PatchName{PatchName: name}
}

// Repository is one configured patch source remote.
type Repository struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Verified bool   `json:"verified"`
}

// BranchClass is the derived classification of a branch name. It is computed
// from the name and the resolved base branch, never stored.
type BranchClass int

const (
	ClassOther BranchClass = iota
	ClassBase
	ClassPatch
	ClassTemporary
)

func (c BranchClass) String() string {
	switch c {
	case ClassBase:
		return "base"
	case ClassPatch:
		return "patch"
	case ClassTemporary:
		return "temporary"
	default:
		return "other"
	}
}

// GitStateSnapshot captures repository state immediately before a mutating
// multi-step operation. StashLabel is empty when the tree was clean. A
// snapshot is consumed exactly once by restore.
type GitStateSnapshot struct {
	Branch     string
	StashLabel string
	CommitHash string
	TakenAt    time.Time
}
