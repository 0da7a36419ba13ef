package project

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the project manifest file looked up by the CLI.
const ManifestName = "bong.toml"

// Manifest is a decoded bong.toml together with where it was found.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

// Config mirrors the bong.toml sections. Zero values mean "use the default".
type Config struct {
	Parse  ParseConfig  `toml:"parse"`
	Output OutputConfig `toml:"output"`
	Cache  CacheConfig  `toml:"cache"`
	Run    RunConfig    `toml:"run"`
}

type ParseConfig struct {
	// MaxDepth caps object/array nesting; 0 = unlimited.
	MaxDepth      int  `toml:"max_depth"`
	NormalizeKeys bool `toml:"normalize_keys"`
}

type OutputConfig struct {
	Color          string `toml:"color"`  // auto|on|off
	Format         string `toml:"format"` // pretty|json|short|msgpack
	MaxDiagnostics int    `toml:"max_diagnostics"`
}

type CacheConfig struct {
	// Enabled is a pointer so an explicit "enabled = false" is distinguishable from absence.
	Enabled *bool  `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type RunConfig struct {
	// Jobs is the number of files parsed in parallel; 0 = GOMAXPROCS.
	Jobs int `toml:"jobs"`
	// Include is the glob matched against file names when walking directories.
	Include string `toml:"include"`
}

// DefaultConfig returns the values used when no manifest exists.
func DefaultConfig() Config {
	enabled := true
	return Config{
		Parse:  ParseConfig{MaxDepth: 0},
		Output: OutputConfig{Color: "auto", Format: "pretty", MaxDiagnostics: 100},
		Cache:  CacheConfig{Enabled: &enabled},
		Run:    RunConfig{Include: "*.bong"},
	}
}

// CacheEnabled reports the effective cache switch.
func (c Config) CacheEnabled() bool {
	return c.Cache.Enabled == nil || *c.Cache.Enabled
}

// FindManifest walks up from startDir to locate bong.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadNearest finds and decodes the closest bong.toml above startDir.
// ok is false when there is none; the caller then uses DefaultConfig.
func LoadNearest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := Load(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// Load decodes the manifest at path on top of DefaultConfig.
func Load(path string) (*Manifest, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if c.Parse.MaxDepth < 0 {
		return fmt.Errorf("[parse].max_depth must be >= 0, got %d", c.Parse.MaxDepth)
	}
	switch c.Output.Color {
	case "", "auto", "on", "off":
	default:
		return fmt.Errorf("[output].color must be auto|on|off, got %q", c.Output.Color)
	}
	switch c.Output.Format {
	case "", "pretty", "json", "short", "msgpack":
	default:
		return fmt.Errorf("[output].format must be pretty|json|short|msgpack, got %q", c.Output.Format)
	}
	if c.Output.MaxDiagnostics < 0 {
		return fmt.Errorf("[output].max_diagnostics must be >= 0, got %d", c.Output.MaxDiagnostics)
	}
	if c.Run.Jobs < 0 {
		return fmt.Errorf("[run].jobs must be >= 0, got %d", c.Run.Jobs)
	}
	if c.Run.Include != "" {
		if _, err := filepath.Match(c.Run.Include, "x"); err != nil {
			return fmt.Errorf("[run].include: %w", err)
		}
	}
	return nil
}

// Encode renders cfg as TOML, as written by `bong init`.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# bong project manifest\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// CacheDir resolves the cache directory: [cache].dir relative to the
// manifest root, else $XDG_CACHE_HOME/bong (os.UserCacheDir).
func (m *Manifest) CacheDir() (string, error) {
	if m != nil && m.Config.Cache.Dir != "" {
		if filepath.IsAbs(m.Config.Cache.Dir) {
			return m.Config.Cache.Dir, nil
		}
		return filepath.Join(m.Root, m.Config.Cache.Dir), nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("resolve user cache dir: %w", err)
	}
	return filepath.Join(base, "bong"), nil
}
