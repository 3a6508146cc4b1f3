package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"

	"hypkg/internal/errs"
	"hypkg/internal/git"
	"hypkg/internal/logs"
)

// VersionService discovers and increments per-patch semantic versions from
// git tags of the form {sanitizedName}-v{major}.{minor}.{patch}.
type VersionService struct {
	deps Deps
}

func NewVersionService(deps Deps) *VersionService {
	return &VersionService{deps: deps}
}

// SanitizeTagName makes a namespaced patch name legal inside a tag name by
// replacing the namespace separator with a hyphen.
func SanitizeTagName(namespacedName string) string {
	return strings.ReplaceAll(namespacedName, "/", "-")
}

// ListVersions returns a patch's released versions, newest first. Tags are
// refreshed from all remotes first: local tags are never assumed fresh.
// Ordering is by the numeric (major, minor, patch) triple, not by string
// comparison, so 1.10.0 sorts above 1.9.0.
func (s *VersionService) ListVersions(namespacedName string) ([]*semver.Version, error) {
	r := s.deps.Runner
	if err := git.FetchAll(r); err != nil {
		return nil, err
	}

	tags, err := git.Tags(r)
	if err != nil {
		return nil, err
	}

	prefix := SanitizeTagName(namespacedName) + "-v"
	var versions []*semver.Version
	for _, tag := range tags {
		if !strings.HasPrefix(tag, prefix) {
			continue
		}
		v, err := semver.NewVersion(strings.TrimPrefix(tag, prefix))
		if err != nil {
			logs.Warn("Skipping malformed version tag '%s': %v", tag, err)
			continue
		}
		versions = append(versions, v)
	}

	sort.Sort(sort.Reverse(semver.Collection(versions)))
	return versions, nil
}

// NextVersion is 1.0.0 for an unreleased patch, else the latest version with
// its patch component incremented.
func (s *VersionService) NextVersion(namespacedName string) (string, error) {
	versions, err := s.ListVersions(namespacedName)
	if err != nil {
		return "", err
	}
	if len(versions) == 0 {
		return "1.0.0", nil
	}
	next := versions[0].IncPatch()
	return next.String(), nil
}

// Release tags the patch's current commit with its next version and pushes
// the tag to the patch's preferred release repository (falling back to the
// patch's source remote).
func (s *VersionService) Release(namespacedName string) (string, error) {
	r := s.deps.Runner

	patches := NewPatchService(s.deps)
	set, err := patches.AppliedSet()
	if err != nil {
		return "", err
	}
	var commit string
	for _, rec := range set {
		if rec.NamespacedName == namespacedName {
			commit = rec.CommitHash
		}
	}
	if commit == "" {
		return "", &errs.PatchNotFoundError{Patch: namespacedName, Reason: "not currently applied, nothing to release"}
	}

	next, err := s.NextVersion(namespacedName)
	if err != nil {
		return "", err
	}

	tag := fmt.Sprintf("%s-v%s", SanitizeTagName(namespacedName), next)
	if err := git.CreateTag(r, tag, commit, fmt.Sprintf("%s %s", namespacedName, next)); err != nil {
		return "", err
	}

	remote := s.releaseRemote(namespacedName)
	if err := git.PushTag(r, remote, tag); err != nil {
		return "", errs.Wrapf(err, "tag '%s' created locally but not pushed to '%s'", tag, remote)
	}
	logs.Info("Released %s as %s (pushed to %s).", namespacedName, tag, remote)
	return next, nil
}

// releaseRemote resolves the preferred release repository for a patch from
// git's repo-scoped config, defaulting to the patch's own namespace remote
// when one is configured, then origin.
func (s *VersionService) releaseRemote(namespacedName string) string {
	if pref := git.ConfigGet(s.deps.Runner, "release-repo."+SanitizeTagName(namespacedName)); pref != "" {
		return pref
	}
	if i := strings.Index(namespacedName, "/"); i > 0 {
		if ns := namespacedName[:i]; git.RemoteURL(s.deps.Runner, ns) != "" {
			return ns
		}
	}
	return "origin"
}
