package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tikz/secstruct/gor"
	"github.com/tikz/secstruct/structure"
)

// Config holds the settings of the gor command. Flags override file values.
type Config struct {
	// Reference is a .csv/.tsv path, an http(s) URL, or "sqlite:<name>" for a table in DB.
	Reference       *string `json:"reference,omitempty"`
	Variant         *string `json:"variant,omitempty"`
	DB              *string `json:"db,omitempty"`
	CacheDir        *string `json:"cache_dir,omitempty"`
	MissingSentinel *string `json:"missing_sentinel,omitempty"`
	FetchTimeout    *string `json:"fetch_timeout,omitempty"` // duration string like "2m"
}

const (
	defaultVariant  = "gor4"
	defaultCacheDir = "data/reference"
	defaultTimeout  = 120 * time.Second
	maxFileSize     = 1 * 1024 * 1024
)

func ptrString(v string) *string { return &v }

// Empty returns a Config with all fields unset.
func Empty() *Config {
	return &Config{}
}

// Load reads a Config from a JSON file.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Empty()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the fields that are set.
func (c *Config) Validate() error {
	if c.Variant != nil {
		if _, err := gor.ParseVariant(*c.Variant); err != nil {
			return err
		}
	}
	if c.Reference != nil && *c.Reference == "" {
		return errors.New("reference must not be empty")
	}
	if c.FetchTimeout != nil {
		d, err := time.ParseDuration(*c.FetchTimeout)
		if err != nil {
			return fmt.Errorf("fetch_timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("fetch_timeout must be positive, got %s", d)
		}
	}
	return nil
}

// SetReference, SetVariant and SetDB apply non-empty flag values.
func (c *Config) SetReference(v string) {
	if v != "" {
		c.Reference = ptrString(v)
	}
}

func (c *Config) SetVariant(v string) {
	if v != "" {
		c.Variant = ptrString(v)
	}
}

func (c *Config) SetDB(v string) {
	if v != "" {
		c.DB = ptrString(v)
	}
}

func (c *Config) GetReference() string {
	if c.Reference == nil {
		return ""
	}
	return *c.Reference
}

func (c *Config) GetVariant() gor.Variant {
	s := defaultVariant
	if c.Variant != nil {
		s = *c.Variant
	}
	v, err := gor.ParseVariant(s)
	if err != nil {
		v, _ = gor.ParseVariant(defaultVariant)
	}
	return v
}

func (c *Config) GetDB() string {
	if c.DB == nil {
		return ""
	}
	return *c.DB
}

func (c *Config) GetCacheDir() string {
	if c.CacheDir == nil {
		return defaultCacheDir
	}
	return *c.CacheDir
}

func (c *Config) GetMissingSentinel() string {
	if c.MissingSentinel == nil {
		return structure.MissingSentinel
	}
	return *c.MissingSentinel
}

func (c *Config) GetFetchTimeout() time.Duration {
	if c.FetchTimeout == nil {
		return defaultTimeout
	}
	d, err := time.ParseDuration(*c.FetchTimeout)
	if err != nil || d <= 0 {
		return defaultTimeout
	}
	return d
}
