package git

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hypkg/internal/gitexec"
	"hypkg/internal/model"
)

func runnerWithBranches(branches ...string) *gitexec.MockRunner {
	r := gitexec.NewMockRunner()
	for _, b := range branches {
		r.Stub("rev-parse --verify --quiet refs/heads/"+b, b, nil)
	}
	r.Handler = func(args []string) (string, error) {
		// Any other branch lookup misses.
		return "", assert.AnError
	}
	return r
}

func TestBaseBranchPrefersDev(t *testing.T) {
	assert.Equal(t, "dev", BaseBranch(runnerWithBranches("main", "dev")))
	assert.Equal(t, "main", BaseBranch(runnerWithBranches("main")))
	// No local trunk at all still resolves to main.
	assert.Equal(t, "main", BaseBranch(runnerWithBranches()))
}

func TestIsProtected(t *testing.T) {
	r := runnerWithBranches("main")
	for _, b := range []string{"main", "master", "dev", "develop", "development"} {
		assert.True(t, IsProtected(r, b), b)
	}
	assert.False(t, IsProtected(r, "mod/feature"), "patch branches are fair game")
	assert.False(t, IsProtected(r, "feature-x"))
}

func TestPatchBranchNameIdempotent(t *testing.T) {
	assert.Equal(t, "mod/feature", PatchBranchName("feature"))
	assert.Equal(t, "mod/feature", PatchBranchName("mod/feature"))
	assert.Equal(t, "mod/feature", PatchBranchName(PatchBranchName("feature")))
}

func TestClassify(t *testing.T) {
	r := runnerWithBranches("dev")
	assert.Equal(t, model.ClassBase, Classify(r, "dev"))
	assert.Equal(t, model.ClassBase, Classify(r, "master"))
	assert.Equal(t, model.ClassPatch, Classify(r, "mod/feature"))
	assert.Equal(t, model.ClassTemporary, Classify(r, "hypkg-tmp-12345"))
	assert.Equal(t, model.ClassOther, Classify(r, "scratch"))
}
