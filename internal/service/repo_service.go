package service

import (
	"sync"

	"hypkg/internal/errs"
	"hypkg/internal/git"
	"hypkg/internal/hosting"
	"hypkg/internal/logs"
	"hypkg/internal/model"
)

// RepoService manages the patch-source repository registry. The registry is
// git's own remote list; there is no separate persisted store.
type RepoService struct {
	deps Deps
}

func NewRepoService(deps Deps) *RepoService {
	return &RepoService{deps: deps}
}

// Add registers a repository as a remote and fetches it.
func (s *RepoService) Add(name, url string) (model.Repository, error) {
	if err := git.AddRemote(s.deps.Runner, name, url); err != nil {
		return model.Repository{}, &errs.RepositoryError{Repo: name, Reason: "failed to add remote", Err: err}
	}
	repo := model.Repository{Name: name, URL: url, Verified: s.verified(url)}
	if repo.Verified {
		logs.Info("Added verified repository '%s'.", name)
	} else {
		logs.Warn("Repository '%s' is not on the verified list; apply patches from it at your own risk.", name)
	}
	return repo, nil
}

// Remove drops a repository from the registry.
func (s *RepoService) Remove(name string) error {
	if err := git.RemoveRemote(s.deps.Runner, name); err != nil {
		return &errs.RepositoryError{Repo: name, Reason: "failed to remove remote", Err: err}
	}
	return nil
}

// List enumerates the configured repositories with their verified status.
func (s *RepoService) List() ([]model.Repository, error) {
	remotes, err := git.Remotes(s.deps.Runner)
	if err != nil {
		return nil, err
	}
	allowed := s.allowList()
	var repos []model.Repository
	for _, rem := range remotes {
		repos = append(repos, model.Repository{
			Name:     rem.Name,
			URL:      rem.URL,
			Verified: allowed[hosting.NormalizeURL(rem.URL)],
		})
	}
	return repos, nil
}

// Enriched pairs a repository with hosting metadata. Enrichment is read-only
// and touches no shared mutable state, so independent remotes are queried
// concurrently.
type Enriched struct {
	Repo model.Repository
	Info hosting.RepoInfo
	Err  error
}

// ListEnriched decorates the registry with stars/forks/default-branch data
// from the hosting API, one concurrent lookup per remote.
func (s *RepoService) ListEnriched() ([]Enriched, error) {
	repos, err := s.List()
	if err != nil {
		return nil, err
	}

	enriched := make([]Enriched, len(repos))
	var wg sync.WaitGroup
	for i, repo := range repos {
		enriched[i].Repo = repo
		owner, name, ok := hosting.ParseRepoURL(repo.URL)
		if !ok {
			continue
		}
		wg.Add(1)
		go func(i int, owner, name string) {
			defer wg.Done()
			enriched[i].Info, enriched[i].Err = s.deps.Hosting.RepoInfo(owner, name)
		}(i, owner, name)
	}
	wg.Wait()
	return enriched, nil
}

// verified reports whether a URL is on the externally sourced allow-list.
// Membership is keyed by URL, never by name.
func (s *RepoService) verified(url string) bool {
	return s.allowList()[hosting.NormalizeURL(url)]
}

func (s *RepoService) allowList() map[string]bool {
	allowed, err := s.deps.Hosting.VerifiedURLs()
	if err != nil {
		logs.Warn("Could not load verified repository list: %v", err)
		return map[string]bool{}
	}
	return allowed
}
