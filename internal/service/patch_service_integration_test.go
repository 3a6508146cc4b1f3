package service

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypkg/internal/config"
	"hypkg/internal/git"
	"hypkg/internal/gitexec"
	"hypkg/internal/lockfile"
	"hypkg/internal/store"
)

func requireGitBinary(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func gitIn(t *testing.T, dir string) *gitexec.ExecRunner {
	t.Helper()
	r, err := gitexec.NewRunner(dir)
	require.NoError(t, err)
	return r
}

func mustGit(t *testing.T, r gitexec.Runner, args ...string) string {
	t.Helper()
	out, err := r.Run("test setup", args...)
	require.NoError(t, err)
	return out
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func setIdentity(t *testing.T, r gitexec.Runner) {
	t.Helper()
	mustGit(t, r, "config", "user.name", "hypkg test")
	mustGit(t, r, "config", "user.email", "hypkg@test.invalid")
}

// newPatchFixture builds three real repositories: an upstream holding the dev
// trunk, a working clone (with origin/dev) and a patch source clone carrying
// mod/feature, registered in the working clone as remote repoA.
func newPatchFixture(t *testing.T) (Deps, *gitexec.ExecRunner) {
	t.Helper()
	requireGitBinary(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	upstream := t.TempDir()
	up := gitIn(t, upstream)
	mustGit(t, up, "init")
	setIdentity(t, up)
	mustGit(t, up, "checkout", "-b", "dev")
	writeFile(t, upstream, "base.txt", "base\n")
	writeFile(t, upstream, ".gitignore", ".hypkg.json\nhypkg.yaml\n")
	mustGit(t, up, "add", ".")
	mustGit(t, up, "commit", "-m", "initial commit")

	work := filepath.Join(t.TempDir(), "work")
	mustGit(t, up, "clone", upstream, work)
	wr := gitIn(t, work)
	setIdentity(t, wr)

	src := filepath.Join(t.TempDir(), "src")
	mustGit(t, up, "clone", upstream, src)
	sr := gitIn(t, src)
	setIdentity(t, sr)
	mustGit(t, sr, "checkout", "-b", "mod/feature")
	writeFile(t, src, "feature.txt", "feature\n")
	mustGit(t, sr, "add", "feature.txt")
	mustGit(t, sr, "commit", "-m", "feat: add feature")

	mustGit(t, wr, "remote", "add", "repoA", src)

	cfg, err := config.Load(work)
	require.NoError(t, err)
	return Deps{
		ProjectRoot: work,
		Runner:      wr,
		Store:       store.New(work),
		Config:      cfg,
		Lockfiles:   lockfile.New(wr, work, "true"),
	}, wr
}

func TestApplyThenRemoveRestoresTree(t *testing.T) {
	deps, wr := newPatchFixture(t)
	svc := NewPatchService(deps)

	before, err := git.TreeHash(wr, "HEAD")
	require.NoError(t, err)

	require.NoError(t, svc.Apply("repoA/feature"))

	applied, err := svc.AppliedSet()
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, "repoA/feature", applied[0].NamespacedName)
	assert.FileExists(t, filepath.Join(deps.ProjectRoot, "feature.txt"))

	during, err := git.TreeHash(wr, "HEAD")
	require.NoError(t, err)
	require.NotEqual(t, before, during, "apply must change the tree")

	// Applying again is a no-op, not a duplicate.
	require.NoError(t, svc.Apply("repoA/feature"))
	applied, err = svc.AppliedSet()
	require.NoError(t, err)
	require.Len(t, applied, 1)

	require.NoError(t, svc.Remove("repoA/feature"))

	after, err := git.TreeHash(wr, "HEAD")
	require.NoError(t, err)
	assert.Equal(t, before, after, "removing the only patch must restore the pre-apply tree")
	assert.NoFileExists(t, filepath.Join(deps.ProjectRoot, "feature.txt"))

	applied, err = svc.AppliedSet()
	require.NoError(t, err)
	assert.Empty(t, applied)

	branches := mustGit(t, wr, "branch", "--list", "hypkg-tmp-*")
	assert.Empty(t, branches, "no temporary branch may survive a rebuild")
}

func TestAppliedCommitCarriesProvenance(t *testing.T) {
	deps, wr := newPatchFixture(t)
	svc := NewPatchService(deps)

	require.NoError(t, svc.Apply("repoA/feature"))

	applied, err := svc.AppliedSet()
	require.NoError(t, err)
	require.Len(t, applied, 1)
	rec := applied[0]

	// The original commit hash points into the source branch, the mod base at
	// the commit it was authored on, the current base at origin/dev's tip.
	srcTip, err := git.RevParse(wr, "repoA/mod/feature")
	require.NoError(t, err)
	assert.Equal(t, srcTip, rec.OriginalHash)

	baseTip, err := git.RevParse(wr, "origin/dev")
	require.NoError(t, err)
	assert.Equal(t, baseTip, rec.CurrentBaseHash)
	assert.Equal(t, baseTip, rec.ModBaseHash, "a patch authored directly on the trunk tip")
}
