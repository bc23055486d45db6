package logkiss

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// findConfigFile returns the first existing configuration file, in
// order: the explicit path, $LOGKISS_CONFIG, then the OS-standard
// locations. It returns "" when nothing is found.
func findConfigFile(explicit string) string {
	if explicit != "" {
		if p := expandUser(explicit); fileExists(p) {
			return p
		}
		return ""
	}
	if env := os.Getenv("LOGKISS_CONFIG"); env != "" {
		if p := expandUser(env); fileExists(p) {
			return p
		}
	}
	for _, candidate := range standardConfigPaths() {
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

// standardConfigPaths lists the OS-specific default locations:
// %APPDATA%\logkiss\config.yaml and %USERPROFILE%\.config\logkiss\config.yaml
// on Windows, ~/.config/logkiss/config.yaml and ./logkiss.yaml elsewhere.
func standardConfigPaths() []string {
	var paths []string
	if runtime.GOOS == "windows" {
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			paths = append(paths, filepath.Join(appdata, "logkiss", "config.yaml"))
		}
		if profile := os.Getenv("USERPROFILE"); profile != "" {
			paths = append(paths, filepath.Join(profile, ".config", "logkiss", "config.yaml"))
		}
		return paths
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "logkiss", "config.yaml"))
	}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, "logkiss.yaml"))
	}
	return paths
}

func expandUser(path string) string {
	if path == "~" || len(path) >= 2 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// loadConfigFile reads and parses one YAML document. Callers that can
// recover pass the error to discard; Setup paths surface it only on the
// debug channel.
func loadConfigFile(path string) (*RawConfig, errors.E) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessage(err, "read config file")
	}
	var raw RawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Errorf("invalid YAML in %s: %w", path, err)
	}
	return &raw, nil
}

// LocateAndLoad finds and parses the configuration document. Search
// order: explicit path, $LOGKISS_CONFIG, OS-standard locations. When
// LOGKISS_SKIP_CONFIG is truthy the search is bypassed entirely. Any
// read or parse failure yields nil; this function never fails to its
// caller — missing or malformed configuration falls back to the
// built-in defaults.
func LocateAndLoad(explicit string) *RawConfig {
	if truthy(os.Getenv("LOGKISS_SKIP_CONFIG")) {
		return nil
	}
	path := findConfigFile(explicit)
	if path == "" {
		return nil
	}
	raw, err := loadConfigFile(path)
	if err != nil {
		debugf("config file %s ignored: %v", path, err)
		return nil
	}
	return raw
}

// configCache holds the one resolved Config for the process. The first
// caller performs the load-and-resolve under a sync.Once so concurrent
// first use converges on a single published value; afterwards the
// Config is read-only and safe for unsynchronized reads.
type configCache struct {
	once sync.Once
	cfg  Config
}

var (
	cacheMu sync.Mutex
	cache   = &configCache{}
)

// CurrentConfig returns the process-wide resolved Config, building it
// on first use from the configuration search and the built-in defaults.
func CurrentConfig() Config {
	cacheMu.Lock()
	c := cache
	cacheMu.Unlock()
	c.once.Do(func() {
		c.cfg = ResolveConfig(LocateAndLoad(""), nil)
	})
	return c.cfg
}

// SetConfig publishes an explicitly resolved Config, replacing whatever
// the search would have produced. Later CurrentConfig calls return it
// unchanged.
func SetConfig(cfg Config) {
	c := &configCache{}
	c.once.Do(func() { c.cfg = cfg })
	cacheMu.Lock()
	cache = c
	cacheMu.Unlock()
}

// ResetConfigCache discards the cached Config so the next use resolves
// again. This is mainly used for testing to ensure clean state between
// tests.
func ResetConfigCache() {
	cacheMu.Lock()
	cache = &configCache{}
	cacheMu.Unlock()
}
