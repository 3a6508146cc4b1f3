package git

import (
	"strings"

	"hypkg/internal/gitexec"
)

// Remote is one entry of the VCS-native remote registry. There is no separate
// persisted store: the remote name/URL list is derived live from git.
type Remote struct {
	Name string
	URL  string
}

// Remotes enumerates the configured remotes with their fetch URLs.
func Remotes(r gitexec.Runner) ([]Remote, error) {
	out, err := r.Run("list remotes", "remote", "-v")
	if err != nil {
		return nil, err
	}
	var remotes []Remote
	seen := map[string]bool{}
	for _, line := range splitLines(out) {
		fields := strings.Fields(line)
		if len(fields) < 2 || seen[fields[0]] {
			continue
		}
		remotes = append(remotes, Remote{Name: fields[0], URL: fields[1]})
		seen[fields[0]] = true
	}
	return remotes, nil
}

// RemoteURL returns the fetch URL of a named remote, or "" when unknown.
func RemoteURL(r gitexec.Runner, name string) string {
	out, err := r.Run("resolve remote URL", "remote", "get-url", name)
	if err != nil {
		return ""
	}
	return out
}

// AddRemote registers a remote and fetches it so its branches are resolvable
// immediately.
func AddRemote(r gitexec.Runner, name, url string) error {
	if _, err := r.Run("add remote '"+name+"'", "remote", "add", name, url); err != nil {
		return err
	}
	return Fetch(r, name)
}

// RemoveRemote drops a remote from the registry.
func RemoveRemote(r gitexec.Runner, name string) error {
	_, err := r.Run("remove remote '"+name+"'", "remote", "remove", name)
	return err
}

// Fetch updates one remote.
func Fetch(r gitexec.Runner, name string) error {
	_, err := r.Run("fetch remote '"+name+"'", "fetch", name)
	return err
}

// FetchAll updates every remote including tags. Local tags are never assumed
// fresh.
func FetchAll(r gitexec.Runner) error {
	_, err := r.Run("fetch all remotes", "fetch", "--all", "--tags")
	return err
}
