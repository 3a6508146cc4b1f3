package hooks

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"hypkg/internal/config"
	"hypkg/internal/logs"
)

// Hooks let users run their own scripts after patch operations. They are
// stored in the local config as "event|script" entries joined by ";".
// Recognized events: applyPatch, removePatch, release.

func List(cfg *config.Config) []string {
	raw := cfg.Get("hooks")
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, ";")
}

func Add(cfg *config.Config, event, scriptPath string) error {
	if event == "" || scriptPath == "" {
		return fmt.Errorf("invalid hook parameters")
	}
	hs := List(cfg)
	hs = append(hs, fmt.Sprintf("%s|%s", event, scriptPath))
	return cfg.Set("hooks", strings.Join(hs, ";"), false)
}

// Run executes every hook registered for event. Hook failures are logged and
// never fail the operation that triggered them.
func Run(cfg *config.Config, event, arg string) {
	for _, h := range List(cfg) {
		parts := strings.SplitN(h, "|", 2)
		if len(parts) != 2 {
			logs.Warn("Invalid hook format: '%s'", h)
			continue
		}
		if parts[0] == event {
			runScript(parts[1], event, arg)
		}
	}
}

func runScript(script, event, arg string) {
	abs, err := filepath.Abs(script)
	if err != nil {
		logs.Warn("Failed to resolve hook script '%s': %v", script, err)
		return
	}
	if info, err := os.Stat(abs); err != nil || info.IsDir() {
		logs.Warn("Hook script '%s' does not exist or is a directory.", abs)
		return
	}

	cmd := exec.Command(abs, event, arg)
	out, err := cmd.CombinedOutput()
	if err != nil {
		logs.Warn("Hook '%s' for event '%s' failed: %v\n%s", abs, event, err, string(out))
		return
	}
	logs.Debug("Hook '%s' for event '%s' completed.", abs, event)
}
