package git

import (
	"hypkg/internal/gitexec"
)

// Tags lists all local tag names.
func Tags(r gitexec.Runner) ([]string, error) {
	out, err := r.Run("list tags", "tag", "--list")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// CreateTag creates an annotated tag at ref.
func CreateTag(r gitexec.Runner, name, ref, message string) error {
	_, err := r.Run("create tag '"+name+"'", "tag", "-a", name, ref, "-m", message)
	return err
}

// PushTag publishes a tag to a remote.
func PushTag(r gitexec.Runner, remote, name string) error {
	_, err := r.Run("push tag '"+name+"'", "push", remote, "refs/tags/"+name)
	return err
}

// ConfigGet reads a repo-scoped config value under the hypkg namespace, or ""
// when unset.
func ConfigGet(r gitexec.Runner, key string) string {
	out, err := r.Run("read config "+key, "config", "--get", "hypkg."+key)
	if err != nil {
		return ""
	}
	return out
}

// ConfigSet writes a repo-scoped config value under the hypkg namespace. Git's
// own configuration store keeps per-patch preferences out of the cache mirror.
func ConfigSet(r gitexec.Runner, key, value string) error {
	_, err := r.Run("write config "+key, "config", "hypkg."+key, value)
	return err
}
