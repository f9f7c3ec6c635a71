package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lucasvieiramay/apidoc/config"
	"github.com/lucasvieiramay/apidoc/source"
)

// argumentInput is one name=value substitution.
type argumentInput struct {
	Name  string `json:"name"  jsonschema:"Placeholder name; every ${name} in a string value is replaced"`
	Value string `json:"value" jsonschema:"Replacement text"`
}

// sourceInput names the fragments a tool reads. A configuration file, when
// given or set through APIDOC_CONFIG, is loaded first and the other fields
// are laid on top of it.
type sourceInput struct {
	ConfigFile  string          `json:"config_file,omitempty" jsonschema:"Configuration file (YAML, JSON or TOML); defaults to APIDOC_CONFIG"`
	Directories []string        `json:"directories,omitempty" jsonschema:"Fragment directories, loaded in order"`
	Files       []string        `json:"files,omitempty"       jsonschema:"Fragment files, loaded after the directories"`
	Arguments   []argumentInput `json:"arguments,omitempty"   jsonschema:"Arguments substituted in order"`
}

// config resolves s into a pipeline configuration.
func (s sourceInput) config() (*config.Config, error) {
	base := config.Default()
	path := s.ConfigFile
	if path == "" {
		path = cfg.ConfigFile
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		base = loaded
	}

	var args config.Arguments
	for _, a := range s.Arguments {
		if a.Name == "" {
			return nil, fmt.Errorf("argument name must not be empty")
		}
		args = args.With(a.Name, a.Value)
	}
	return config.Merge(base, &config.Config{
		Input: config.Input{
			Directories: s.Directories,
			Files:       s.Files,
			Arguments:   args,
		},
	})
}

type cacheEntry struct {
	result   *source.Result
	lastUsed time.Time
	deadline time.Time
}

func (e *cacheEntry) expired(now time.Time) bool {
	return !e.deadline.IsZero() && now.After(e.deadline)
}

// resultCacheStore keeps build results for the lifetime of the server,
// keyed by makeCacheKey. At most maxSize results are held; the least
// recently read one goes first. Results are shared between requests and
// must be treated as read-only.
type resultCacheStore struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	maxSize int
	running atomic.Bool
}

var resultCache = &resultCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

func (c *resultCacheStore) get(key string) *source.Result {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.entries[key]
	switch {
	case e == nil:
		return nil
	case e.expired(now):
		delete(c.entries, key)
		return nil
	}
	e.lastUsed = now
	return e.result
}

func (c *resultCacheStore) putWithTTL(key string, result *source.Result, ttl time.Duration) {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, replacing := c.entries[key]; !replacing && len(c.entries) >= c.maxSize {
		c.evictLocked()
	}
	c.entries[key] = &cacheEntry{result: result, lastUsed: now, deadline: now.Add(ttl)}
}

// evictLocked drops the least recently used entry. c.mu must be held.
func (c *resultCacheStore) evictLocked() {
	victim := ""
	var oldest time.Time
	for k, e := range c.entries {
		if victim == "" || e.lastUsed.Before(oldest) {
			victim, oldest = k, e.lastUsed
		}
	}
	delete(c.entries, victim)
}

func (c *resultCacheStore) sweep() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
		}
	}
}

// startSweeper drops expired entries every interval until ctx ends. Calls
// made while a sweeper is running do nothing.
func (c *resultCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.running.CompareAndSwap(false, true) {
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer c.running.Store(false)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.sweep()
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (c *resultCacheStore) reset() {
	c.mu.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mu.Unlock()
}

func (c *resultCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey fingerprints a build of c. It returns the empty string, which
// disables caching, when a fragment cannot be inspected.
func makeCacheKey(c *config.Config, strict bool) string {
	h := sha256.New()
	data, err := json.Marshal(c)
	if err != nil {
		return ""
	}
	_, _ = fmt.Fprintf(h, "%s\nstrict=%t\n", data, strict)

	for _, dir := range c.Input.Directories {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return ""
		}
		for _, e := range entries {
			info, err := e.Info()
			if err != nil {
				return ""
			}
			_, _ = fmt.Fprintf(h, "%s:%d:%d\n", filepath.Join(dir, e.Name()), info.Size(), info.ModTime().UnixNano())
		}
	}
	for _, file := range c.Input.Files {
		info, err := os.Stat(file)
		if err != nil {
			return ""
		}
		_, _ = fmt.Fprintf(h, "%s:%d:%d\n", file, info.Size(), info.ModTime().UnixNano())
	}
	return hex.EncodeToString(h.Sum(nil))
}
