// Package store persists the fast-path cache of the applied patch set. The
// commit graph is authoritative; this file only mirrors it for fast listing
// and must always be reconcilable against the graph-derived truth.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"hypkg/internal/errs"
	"hypkg/internal/logs"
	"hypkg/internal/model"
)

const StateFileName = ".hypkg.json"

// State is the persisted per-project cache.
type State struct {
	Branch         string              `json:"branch"`
	AppliedPatches []model.PatchRecord `json:"appliedPatches"`
}

// Store reads and writes one project's state file.
type Store struct {
	path string
}

func New(projectRoot string) *Store {
	return &Store{path: filepath.Join(projectRoot, StateFileName)}
}

// Load returns the cached state, or an empty state when no file exists yet. A
// file that exists but cannot be parsed is a ConfigError: silently discarding
// it would desynchronize the mirror without telling anyone.
func (s *Store) Load() (State, error) {
	content, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		logs.Debug("No state file at %s; starting empty.", s.path)
		return State{}, nil
	}
	if err != nil {
		return State{}, &errs.ConfigError{Path: s.path, Err: err}
	}
	var st State
	if err := json.Unmarshal(content, &st); err != nil {
		return State{}, &errs.ConfigError{Path: s.path, Err: err}
	}
	return st, nil
}

// Save writes the state file.
func (s *Store) Save(st State) error {
	out, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, append(out, '\n'), 0644)
}

// Replace overwrites the cached applied set with the graph-derived truth.
func (s *Store) Replace(branch string, patches []model.PatchRecord) error {
	return s.Save(State{Branch: branch, AppliedPatches: patches})
}

// AddPatch records one applied patch in the mirror, replacing any previous
// record with the same namespaced name.
func (s *Store) AddPatch(branch string, rec model.PatchRecord) error {
	st, err := s.Load()
	if err != nil {
		return err
	}
	st.Branch = branch
	kept := st.AppliedPatches[:0]
	for _, p := range st.AppliedPatches {
		if p.NamespacedName != rec.NamespacedName {
			kept = append(kept, p)
		}
	}
	st.AppliedPatches = append(kept, rec)
	return s.Save(st)
}

// RemovePatch drops a patch from the mirror. Unknown names are a no-op.
func (s *Store) RemovePatch(name string) error {
	st, err := s.Load()
	if err != nil {
		return err
	}
	kept := st.AppliedPatches[:0]
	for _, p := range st.AppliedPatches {
		if p.NamespacedName != name {
			kept = append(kept, p)
		}
	}
	st.AppliedPatches = kept
	return s.Save(st)
}
