package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypkg/internal/gitexec"
)

func TestSanitizeTagName(t *testing.T) {
	assert.Equal(t, "repoA-feature", SanitizeTagName("repoA/feature"))
	assert.Equal(t, "feature", SanitizeTagName("feature"))
}

func TestListVersionsNumericOrdering(t *testing.T) {
	r := gitexec.NewMockRunner()
	r.Stub("fetch --all --tags", "", nil)
	r.Stub("tag --list", strings.Join([]string{
		"repoA-feature-v1.9.0",
		"repoA-feature-v1.2.0",
		"repoA-feature-v1.10.0",
		"other-patch-v9.0.0",
		"repoA-feature-vnot-a-version",
		"unrelated-tag",
	}, "\n"), nil)

	versions, err := NewVersionService(newTestDeps(t, r)).ListVersions("repoA/feature")
	require.NoError(t, err)

	var got []string
	for _, v := range versions {
		got = append(got, v.String())
	}
	// Numeric triple comparison: 1.10.0 sorts above 1.9.0.
	assert.Equal(t, []string{"1.10.0", "1.9.0", "1.2.0"}, got)
}

func TestListVersionsRefreshesTagsFirst(t *testing.T) {
	r := gitexec.NewMockRunner()
	r.Stub("fetch --all --tags", "", nil)
	r.Stub("tag --list", "", nil)

	_, err := NewVersionService(newTestDeps(t, r)).ListVersions("repoA/feature")
	require.NoError(t, err)
	require.NotEmpty(t, r.Calls)
	assert.Equal(t, "fetch --all --tags", strings.Join(r.Calls[0], " "),
		"local tags are never assumed fresh")
}

func TestNextVersion(t *testing.T) {
	r := gitexec.NewMockRunner()
	r.Stub("fetch --all --tags", "", nil)
	r.Stub("tag --list", "repoA-feature-v1.10.0\nrepoA-feature-v1.9.0", nil)

	next, err := NewVersionService(newTestDeps(t, r)).NextVersion("repoA/feature")
	require.NoError(t, err)
	assert.Equal(t, "1.10.1", next)
}

func TestReleaseRemoteResolution(t *testing.T) {
	t.Run("explicit preference wins", func(t *testing.T) {
		r := gitexec.NewMockRunner()
		r.Stub("config --get hypkg.release-repo.repoA-feature", "forge", nil)

		assert.Equal(t, "forge", NewVersionService(newTestDeps(t, r)).releaseRemote("repoA/feature"))
	})

	t.Run("namespace remote when configured", func(t *testing.T) {
		r := gitexec.NewMockRunner()
		r.StubErr("config --get hypkg.release-repo.repoA-feature", "")
		r.Stub("remote get-url repoA", "https://github.com/drama-haus/hyperfy.git", nil)

		assert.Equal(t, "repoA", NewVersionService(newTestDeps(t, r)).releaseRemote("repoA/feature"))
	})

	t.Run("origin when the namespace remote is missing", func(t *testing.T) {
		r := gitexec.NewMockRunner()
		r.StubErr("config --get hypkg.release-repo.ghost-feature", "")
		r.StubErr("remote get-url ghost", "fatal: No such remote 'ghost'")

		assert.Equal(t, "origin", NewVersionService(newTestDeps(t, r)).releaseRemote("ghost/feature"))
	})
}

func TestNextVersionUnreleased(t *testing.T) {
	r := gitexec.NewMockRunner()
	r.Stub("fetch --all --tags", "", nil)
	r.Stub("tag --list", "", nil)

	next, err := NewVersionService(newTestDeps(t, r)).NextVersion("repoA/feature")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", next)
}
