package git

import (
	"strings"

	"hypkg/internal/gitexec"
)

// Commit pairs a hash with its full message.
type Commit struct {
	Hash    string
	Message string
}

// RevParse resolves a ref to a full commit hash.
func RevParse(r gitexec.Runner, ref string) (string, error) {
	return r.Run("resolve '"+ref+"'", "rev-parse", ref)
}

// TreeHash resolves the tree object a ref points at.
func TreeHash(r gitexec.Runner, ref string) (string, error) {
	return r.Run("resolve tree of '"+ref+"'", "rev-parse", ref+"^{tree}")
}

// CommitMessage returns the full message of a commit.
func CommitMessage(r gitexec.Runner, hash string) (string, error) {
	return r.Run("read commit message", "show", "-s", "--format=%B", hash)
}

// FirstParent returns the first parent of a commit, or "" for a root commit.
func FirstParent(r gitexec.Runner, hash string) string {
	out, err := r.Run("resolve first parent", "rev-parse", "--verify", "--quiet", hash+"^")
	if err != nil {
		return ""
	}
	return out
}

// CommitsNotIn lists the hashes reachable from ref but not from exclude,
// newest first. An empty result means ref is fully merged (or missing).
func CommitsNotIn(r gitexec.Runner, ref, exclude string) ([]string, error) {
	out, err := r.Run("enumerate unmerged commits", "rev-list", exclude+".."+ref)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// CommitsBetween lists the commits in base..head oldest first, with messages.
func CommitsBetween(r gitexec.Runner, base, head string) ([]Commit, error) {
	out, err := r.Run("enumerate commit range", "rev-list", "--reverse", base+".."+head)
	if err != nil {
		return nil, err
	}
	var commits []Commit
	for _, hash := range splitLines(out) {
		msg, err := CommitMessage(r, hash)
		if err != nil {
			return nil, err
		}
		commits = append(commits, Commit{Hash: hash, Message: msg})
	}
	return commits, nil
}

func splitLines(out string) []string {
	var lines []string
	for _, l := range strings.Split(out, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
