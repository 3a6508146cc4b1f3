package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"hypkg/internal/logs"
)

const (
	GlobalConfigDirName = "hypkg"
	GlobalConfigFile    = "config.yaml"
	LocalConfigFile     = "hypkg.yaml"
)

// Config holds the merged global and local key/value configuration for one
// invocation. It is constructed once in cmd and passed explicitly; there is no
// package-level state.
type Config struct {
	global     map[string]string
	local      map[string]string
	globalPath string
	localPath  string
}

// Load reads the global XDG config and the per-project local config, creating
// minimal defaults on first use. projectRoot is the directory holding the
// local config file (usually the repository root).
func Load(projectRoot string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(globalPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %v", err)
	}
	if _, err := os.Stat(globalPath); os.IsNotExist(err) {
		if e := saveYAML(globalPath, map[string]string{}); e != nil {
			return nil, e
		}
	}
	global, err := loadYAML(globalPath)
	if err != nil {
		return nil, err
	}

	localPath := filepath.Join(projectRoot, LocalConfigFile)
	local := map[string]string{}
	if _, err := os.Stat(localPath); err == nil {
		local, err = loadYAML(localPath)
		if err != nil {
			return nil, err
		}
	}

	logs.Debug("Loaded config (global=%s, local=%s)", globalPath, localPath)
	return &Config{
		global:     global,
		local:      local,
		globalPath: globalPath,
		localPath:  localPath,
	}, nil
}

// Get returns the value for key; the local config overrides the global one.
func (c *Config) Get(key string) string {
	if v, ok := c.local[key]; ok {
		return v
	}
	return c.global[key]
}

// GetDefault returns the value for key, or def when unset.
func (c *Config) GetDefault(key, def string) string {
	if v := c.Get(key); v != "" {
		return v
	}
	return def
}

// Set stores key=value in the local config, or the global one when global is
// true, and persists the file immediately.
func (c *Config) Set(key, value string, global bool) error {
	if global {
		c.global[key] = value
		return saveYAML(c.globalPath, c.global)
	}
	c.local[key] = value
	return saveYAML(c.localPath, c.local)
}

// Keys returns all configured keys, local keys first.
func (c *Config) Keys() []string {
	seen := map[string]bool{}
	var keys []string
	for k := range c.local {
		keys = append(keys, k)
		seen[k] = true
	}
	for k := range c.global {
		if !seen[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

func globalConfigPath() (string, error) {
	// XDG_CONFIG_HOME or fallback to ~/.config
	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		xdg = filepath.Join(home, ".config")
	}
	return filepath.Join(xdg, GlobalConfigDirName, GlobalConfigFile), nil
}

func saveYAML(path string, data map[string]string) error {
	out, err := yaml.Marshal(data)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0644)
}

func loadYAML(path string) (map[string]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d := make(map[string]string)
	if err := yaml.Unmarshal(content, &d); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", path, err)
	}
	return d, nil
}
