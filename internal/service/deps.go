package service

import (
	"hypkg/internal/config"
	"hypkg/internal/gitexec"
	"hypkg/internal/hosting"
	"hypkg/internal/lockfile"
	"hypkg/internal/store"
)

// Deps is the explicit per-invocation context: project root, git runner and
// the persisted-state handles. cmd constructs it once and threads it through
// every service, so no hidden cross-call state survives between invocations.
type Deps struct {
	ProjectRoot string
	Runner      gitexec.Runner
	Store       *store.Store
	Config      *config.Config
	Lockfiles   *lockfile.Handler
	Hosting     *hosting.Client
}
