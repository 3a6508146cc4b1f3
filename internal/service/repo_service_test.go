package service

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypkg/internal/errs"
	"hypkg/internal/gitexec"
	"hypkg/internal/hosting"
)

func allowListServer(t *testing.T, urls string) *hosting.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, urls)
	}))
	t.Cleanup(srv.Close)
	return &hosting.Client{HTTP: srv.Client(), RegistryURL: srv.URL, BaseURL: srv.URL, CacheDir: t.TempDir()}
}

func TestRepoListVerification(t *testing.T) {
	r := gitexec.NewMockRunner()
	r.Stub("remote -v", "origin\thttps://github.com/drama-haus/hyperfy.git (fetch)\n"+
		"origin\thttps://github.com/drama-haus/hyperfy.git (push)\n"+
		"shady\thttps://github.com/somebody/else.git (fetch)", nil)

	deps := newTestDeps(t, r)
	deps.Hosting = allowListServer(t, `["https://github.com/drama-haus/hyperfy"]`)

	repos, err := NewRepoService(deps).List()
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.True(t, repos[0].Verified, "verification is keyed by URL")
	assert.False(t, repos[1].Verified)
}

func TestRepoAddFetchesImmediately(t *testing.T) {
	r := gitexec.NewMockRunner()
	r.Stub("remote add repoA https://github.com/drama-haus/hyperfy.git", "", nil)
	r.Stub("fetch repoA", "", nil)

	deps := newTestDeps(t, r)
	deps.Hosting = allowListServer(t, `[]`)

	repo, err := NewRepoService(deps).Add("repoA", "https://github.com/drama-haus/hyperfy.git")
	require.NoError(t, err)
	assert.False(t, repo.Verified)
	assert.True(t, r.Called("fetch repoA"))
}

func TestRepoAddFailureIsRepositoryError(t *testing.T) {
	r := gitexec.NewMockRunner()
	r.StubErr("remote add repoA bad-url", "fatal: remote repoA already exists")

	deps := newTestDeps(t, r)
	deps.Hosting = allowListServer(t, `[]`)

	_, err := NewRepoService(deps).Add("repoA", "bad-url")
	var repoErr *errs.RepositoryError
	require.ErrorAs(t, err, &repoErr)
	assert.Equal(t, "repoA", repoErr.Repo)
}
