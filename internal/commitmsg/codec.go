// Package commitmsg encodes and decodes patch provenance embedded in commit
// messages. The wire format is stable across tool versions: historical commits
// must remain decodable indefinitely, so both the legacy single-line layout
// and the current multi-line layout are supported on read.
package commitmsg

import (
	"fmt"
	"strings"

	"hypkg/internal/model"
)

const (
	// Prefix marks a commit as a patch commit. Callers must check
	// IsPatchCommit before treating a commit as one; Decode itself never
	// rejects a message.
	Prefix = "mod:"

	// Separator bounds the metadata section: inline on the first line in the
	// legacy layout, a standalone line in the current one.
	Separator = "---"

	keyModHash     = "mod-hash:"
	keyModBase     = "mod-base:"
	keyCurrentBase = "current-base:"
)

// Decoded is the explicit parse result of a patch commit message. The three
// hash fields hold model.Unknown when the message does not carry them; Version
// is empty when the name line has no version suffix.
type Decoded struct {
	Name            string
	Version         string
	OriginalHash    string
	ModBaseHash     string
	CurrentBaseHash string
}

// IsPatchCommit reports whether a commit message carries the patch prefix.
func IsPatchCommit(message string) bool {
	return strings.HasPrefix(strings.TrimSpace(message), Prefix+" ")
}

// Encode produces the current multi-line layout. All three metadata keys are
// always emitted; absent values are written as the sentinel, never omitted,
// so downstream fallback logic has a single comparison target.
func Encode(name, version, originalHash, modBaseHash, currentBaseHash string) string {
	header := fmt.Sprintf("%s %s", Prefix, name)
	if version != "" {
		header += " v" + version
	}
	return strings.Join([]string{
		header,
		Separator,
		keyModHash + " " + orUnknown(originalHash),
		keyModBase + " " + orUnknown(modBaseHash),
		keyCurrentBase + " " + orUnknown(currentBaseHash),
	}, "\n")
}

// Decode parses either wire layout. It never fails: malformed or legacy
// messages yield sentinel-filled fields. Keys may appear in any order or be
// entirely absent.
func Decode(message string) Decoded {
	d := Decoded{
		OriginalHash:    model.Unknown,
		ModBaseHash:     model.Unknown,
		CurrentBaseHash: model.Unknown,
	}

	message = strings.TrimSpace(message)
	lines := strings.Split(message, "\n")
	first := strings.TrimSpace(lines[0])

	var header string
	if i := strings.Index(first, " "+Separator+" "); i >= 0 {
		// Legacy layout: metadata inline after the separator token.
		header = first[:i]
		d.scanTokens(strings.Fields(first[i+len(Separator)+2:]))
	} else {
		header = first
		d.scanTokens(strings.Fields(strings.Join(lines[1:], "\n")))
	}

	d.Name, d.Version = parseHeader(header)
	return d
}

// parseHeader splits "mod: repoA/feature v1.2.0" into name and version. The
// version is located at the last " v" occurrence; names may themselves
// contain spaces or a "v".
func parseHeader(header string) (name, version string) {
	header = strings.TrimSpace(strings.TrimPrefix(header, Prefix))
	if i := strings.LastIndex(header, " v"); i >= 0 {
		candidate := header[i+2:]
		if looksLikeVersion(candidate) {
			return strings.TrimSpace(header[:i]), candidate
		}
	}
	return header, ""
}

// scanTokens walks whitespace-separated tokens and captures the value
// following each recognized key, tolerating any key order.
func (d *Decoded) scanTokens(tokens []string) {
	for i := 0; i < len(tokens)-1; i++ {
		switch tokens[i] {
		case keyModHash:
			d.OriginalHash = tokens[i+1]
		case keyModBase:
			d.ModBaseHash = tokens[i+1]
		case keyCurrentBase:
			d.CurrentBaseHash = tokens[i+1]
		}
	}
}

func looksLikeVersion(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && c != '.' {
			return false
		}
	}
	return true
}

func orUnknown(v string) string {
	if v == "" {
		return model.Unknown
	}
	return v
}
