// Package config loads run configuration for the record-linkage pipeline,
// mirroring this codebase's earlier JSON-configuration pattern with an
// added YAML path for operators who prefer it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full run configuration: matching tunables, output
// behavior, and storage backends.
type Config struct {
	Matching MatchingConfig `json:"matching" yaml:"matching"`
	Output   OutputConfig   `json:"output" yaml:"output"`
	Storage  StorageConfig  `json:"storage" yaml:"storage"`
}

// MatchingConfig mirrors duplicate.Config; kept separate so the config
// package has no dependency on the duplicate package.
type MatchingConfig struct {
	FuzzyThreshold      float64 `json:"fuzzy_threshold" yaml:"fuzzy_threshold"`
	ConfidenceThreshold float64 `json:"confidence_threshold" yaml:"confidence_threshold"`
	UseParallel         bool    `json:"use_parallel" yaml:"use_parallel"`
	NumWorkers          int     `json:"n_workers" yaml:"n_workers"`
	UsePhoneticBlocking bool    `json:"use_phonetic_blocking" yaml:"use_phonetic_blocking"`
	MaxBlockSize        int     `json:"max_block_size" yaml:"max_block_size"`
}

// OutputConfig controls CLI presentation.
type OutputConfig struct {
	Color    bool `json:"color" yaml:"color"`
	Progress bool `json:"progress" yaml:"progress"`
}

// StorageConfig holds storage-related settings. They are loaded, defaulted
// and saved with the rest of the config, but no other package reads them:
// the phonetic cache size is fixed in duplicate/phonetic.go, and the spill
// store and SQLite loader run without timeouts.
type StorageConfig struct {
	PhoneticCacheSize int           `json:"phonetic_cache_size" yaml:"phonetic_cache_size"`
	SpillTimeout      time.Duration `json:"spill_timeout" yaml:"spill_timeout"`
	SQLiteQueryTimeout time.Duration `json:"sqlite_query_timeout" yaml:"sqlite_query_timeout"`
}

// UnmarshalJSON and MarshalJSON implement custom JSON handling for
// StorageConfig's duration fields so they read as "30s"-style strings in
// the file instead of raw nanosecond integers.
func (s *StorageConfig) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if v, ok := m["phonetic_cache_size"]; ok {
		if f, ok := v.(float64); ok {
			s.PhoneticCacheSize = int(f)
		}
	}
	if v, ok := m["spill_timeout"]; ok {
		if d, err := parseDuration(v); err == nil {
			s.SpillTimeout = d
		}
	}
	if v, ok := m["sqlite_query_timeout"]; ok {
		if d, err := parseDuration(v); err == nil {
			s.SQLiteQueryTimeout = d
		}
	}
	return nil
}

func (s StorageConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		PhoneticCacheSize  int    `json:"phonetic_cache_size"`
		SpillTimeout       string `json:"spill_timeout"`
		SQLiteQueryTimeout string `json:"sqlite_query_timeout"`
	}{
		PhoneticCacheSize:  s.PhoneticCacheSize,
		SpillTimeout:       s.SpillTimeout.String(),
		SQLiteQueryTimeout: s.SQLiteQueryTimeout.String(),
	})
}

func parseDuration(v interface{}) (time.Duration, error) {
	switch val := v.(type) {
	case string:
		return time.ParseDuration(val)
	case float64:
		return time.Duration(int64(val)), nil
	default:
		return 0, fmt.Errorf("cannot parse duration from type %T", v)
	}
}

// Default returns the documented defaults (§6.3).
func Default() *Config {
	return &Config{
		Matching: MatchingConfig{
			FuzzyThreshold:      0.70,
			ConfidenceThreshold: 70.0,
			UseParallel:         true,
			NumWorkers:          0,
			UsePhoneticBlocking: true,
			MaxBlockSize:        10000,
		},
		Output: OutputConfig{
			Color:    true,
			Progress: true,
		},
		Storage: StorageConfig{
			PhoneticCacheSize:  4096,
			SpillTimeout:       10 * time.Second,
			SQLiteQueryTimeout: 30 * time.Second,
		},
	}
}

// Load loads configuration from file or returns the default. It searches,
// in order: the provided path (if not empty), ./recon-config.json,
// ./recon-config.yaml, ~/.config/recon/config.json.
func Load(configPath string) (*Config, error) {
	if configPath != "" {
		return loadFromFile(configPath)
	}

	if cfg, err := loadFromFile("./recon-config.json"); err == nil {
		return cfg, nil
	}
	if cfg, err := loadFromFile("./recon-config.yaml"); err == nil {
		return cfg, nil
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		if cfg, err := loadFromFile(filepath.Join(homeDir, ".config", "recon", "config.json")); err == nil {
			return cfg, nil
		}
	}

	return Default(), nil
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills any zero-valued field left unset by a partial
// config file.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Matching.FuzzyThreshold <= 0 {
		c.Matching.FuzzyThreshold = d.Matching.FuzzyThreshold
	}
	if c.Matching.ConfidenceThreshold <= 0 {
		c.Matching.ConfidenceThreshold = d.Matching.ConfidenceThreshold
	}
	if c.Matching.MaxBlockSize <= 0 {
		c.Matching.MaxBlockSize = d.Matching.MaxBlockSize
	}
	if c.Storage.PhoneticCacheSize <= 0 {
		c.Storage.PhoneticCacheSize = d.Storage.PhoneticCacheSize
	}
	if c.Storage.SpillTimeout <= 0 {
		c.Storage.SpillTimeout = d.Storage.SpillTimeout
	}
	if c.Storage.SQLiteQueryTimeout <= 0 {
		c.Storage.SQLiteQueryTimeout = d.Storage.SQLiteQueryTimeout
	}
}

// Save writes config to configPath as indented JSON.
func Save(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
