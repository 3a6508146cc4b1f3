package commitmsg

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypkg/internal/model"
)

func TestEncodeEmitsAllKeys(t *testing.T) {
	msg := Encode("repoA/feature", "1.2.0", "aaa", "", "")

	lines := strings.Split(msg, "\n")
	require.Equal(t, "mod: repoA/feature v1.2.0", lines[0])
	require.Equal(t, Separator, lines[1])
	assert.Contains(t, msg, "mod-hash: aaa")
	assert.Contains(t, msg, "mod-base: unknown")
	assert.Contains(t, msg, "current-base: unknown")
}

func TestRoundTripMultiLine(t *testing.T) {
	msg := Encode("repoA/feature", "1.0.0", "h1", "h2", "h3")
	got := Decode(msg)

	want := Decoded{
		Name:            "repoA/feature",
		Version:         "1.0.0",
		OriginalHash:    "h1",
		ModBaseHash:     "h2",
		CurrentBaseHash: "h3",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeLegacySingleLine(t *testing.T) {
	msg := "mod: repoA/feature v1.0.0 --- mod-hash: h1 mod-base: h2 current-base: h3"
	got := Decode(msg)

	assert.Equal(t, "repoA/feature", got.Name)
	assert.Equal(t, "1.0.0", got.Version)
	assert.Equal(t, "h1", got.OriginalHash)
	assert.Equal(t, "h2", got.ModBaseHash)
	assert.Equal(t, "h3", got.CurrentBaseHash)
}

func TestDecodeKeysInAnyOrder(t *testing.T) {
	msg := "mod: x v2.0.1\n---\ncurrent-base: c\nmod-hash: a\nmod-base: b"
	got := Decode(msg)

	assert.Equal(t, "a", got.OriginalHash)
	assert.Equal(t, "b", got.ModBaseHash)
	assert.Equal(t, "c", got.CurrentBaseHash)
}

func TestDecodeMissingKeysYieldUnknown(t *testing.T) {
	got := Decode("mod: x v1.0.0\n---\nmod-hash: a")

	assert.Equal(t, "a", got.OriginalHash)
	assert.Equal(t, model.Unknown, got.ModBaseHash)
	assert.Equal(t, model.Unknown, got.CurrentBaseHash)
}

func TestDecodeNoVersion(t *testing.T) {
	got := Decode("mod: repoA/feature\n---\nmod-hash: a")

	assert.Equal(t, "repoA/feature", got.Name)
	assert.Empty(t, got.Version)
}

// A name containing " v" must not be split at the wrong place: only the last
// occurrence followed by a numeric triple counts.
func TestDecodeNameWithEmbeddedV(t *testing.T) {
	got := Decode("mod: repoA/feature v2 beta v1.2.3")

	assert.Equal(t, "repoA/feature v2 beta", got.Name)
	assert.Equal(t, "1.2.3", got.Version)
}

func TestDecodeNeverFailsOnForeignMessages(t *testing.T) {
	for _, msg := range []string{
		"",
		"fix: a plain commit",
		"mod:",
		"--- mod-hash:",
		"mod: name --- garbage tokens here",
	} {
		got := Decode(msg)
		assert.Equal(t, model.Unknown, got.ModBaseHash, "message %q", msg)
	}
}

func TestIsPatchCommit(t *testing.T) {
	assert.True(t, IsPatchCommit("mod: repoA/feature v1.0.0"))
	assert.True(t, IsPatchCommit("mod: bare-name"))
	assert.False(t, IsPatchCommit("fix: something"))
	assert.False(t, IsPatchCommit("modify: close but no"))
	assert.False(t, IsPatchCommit(""))
}

func TestRoundTripPartial(t *testing.T) {
	got := Decode(Encode("x", "", "", "b2", ""))

	assert.Equal(t, "x", got.Name)
	assert.Empty(t, got.Version)
	assert.Equal(t, model.Unknown, got.OriginalHash)
	assert.Equal(t, "b2", got.ModBaseHash)
	assert.Equal(t, model.Unknown, got.CurrentBaseHash)
}
