// Package hosting is the read-only code-hosting metadata client. It enriches
// repository listings (stars, forks, default branch) and sources the verified
// allow-list. Responses are cached on disk so repeated listings do not hammer
// the API; the engine never depends on this package for correctness.
package hosting

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hypkg/internal/logs"
)

const (
	defaultBaseURL  = "https://api.github.com"
	defaultRegistry = "https://raw.githubusercontent.com/drama-haus/registry/main/verified.json"
	cacheTTL        = 24 * time.Hour
)

// RepoInfo is the slice of hosting metadata hypkg cares about.
type RepoInfo struct {
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
	Stars         int    `json:"stargazers_count"`
	Forks         int    `json:"forks_count"`
	Fork          bool   `json:"fork"`
}

// Client talks to a GitHub-shaped API with a disk response cache.
type Client struct {
	HTTP        *http.Client
	BaseURL     string
	RegistryURL string
	CacheDir    string
}

func NewClient() *Client {
	return &Client{
		HTTP:        &http.Client{Timeout: 15 * time.Second},
		BaseURL:     defaultBaseURL,
		RegistryURL: defaultRegistry,
		CacheDir:    defaultCacheDir(),
	}
}

// RepoInfo fetches metadata for owner/name, serving from cache when fresh.
func (c *Client) RepoInfo(owner, name string) (RepoInfo, error) {
	var info RepoInfo
	key := fmt.Sprintf("repo-%s-%s.json", owner, name)
	url := fmt.Sprintf("%s/repos/%s/%s", c.BaseURL, owner, name)
	if err := c.getJSON(url, key, &info); err != nil {
		return RepoInfo{}, err
	}
	return info, nil
}

// VerifiedURLs returns the externally sourced allow-list of repository URLs.
// Verification is keyed by URL, not by name.
func (c *Client) VerifiedURLs() (map[string]bool, error) {
	var urls []string
	if err := c.getJSON(c.RegistryURL, "verified.json", &urls); err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(urls))
	for _, u := range urls {
		set[NormalizeURL(u)] = true
	}
	return set, nil
}

// ParseRepoURL extracts owner and repository name from common git URL shapes
// (https, ssh, with or without .git suffix).
func ParseRepoURL(url string) (owner, name string, ok bool) {
	u := NormalizeURL(url)
	parts := strings.Split(u, "/")
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[len(parts)-2], parts[len(parts)-1], true
}

// NormalizeURL canonicalizes a git remote URL for allow-list comparison.
func NormalizeURL(url string) string {
	u := strings.TrimSpace(url)
	u = strings.TrimSuffix(u, "/")
	u = strings.TrimSuffix(u, ".git")
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "git@")
	u = strings.Replace(u, ":", "/", 1)
	return strings.ToLower(u)
}

func (c *Client) getJSON(url, cacheKey string, v any) error {
	if data, ok := c.readCache(cacheKey); ok {
		return json.Unmarshal(data, v)
	}

	resp, err := c.HTTP.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	c.writeCache(cacheKey, data)
	return json.Unmarshal(data, v)
}

func (c *Client) readCache(key string) ([]byte, bool) {
	if c.CacheDir == "" {
		return nil, false
	}
	p := filepath.Join(c.CacheDir, key)
	fi, err := os.Stat(p)
	if err != nil || time.Since(fi.ModTime()) > cacheTTL {
		return nil, false
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, false
	}
	logs.Debug("Hosting cache hit: %s", key)
	return data, true
}

func (c *Client) writeCache(key string, data []byte) {
	if c.CacheDir == "" {
		return
	}
	if err := os.MkdirAll(c.CacheDir, 0755); err != nil {
		return
	}
	// Cache write failures are harmless; the next call refetches.
	_ = os.WriteFile(filepath.Join(c.CacheDir, key), data, 0644)
}

func defaultCacheDir() string {
	xdg := os.Getenv("XDG_CACHE_HOME")
	if xdg == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		xdg = filepath.Join(home, ".cache")
	}
	return filepath.Join(xdg, "hypkg")
}
