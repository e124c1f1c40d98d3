// Package config provides configuration loading and structs for the
// akshara server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Rank    RankConfig    `yaml:"rank"`
	Support SupportConfig `yaml:"support"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// StorageConfig holds paths for the row database and the posting-list
// index database.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
	IndexPath    string `yaml:"index_path"`
}

// SupportConfig holds settings for the operator free-text index, kept
// separate from the ranked fuzzy-match path.
type SupportConfig struct {
	BleveIndexPath string `yaml:"bleve_index_path"`
}

// RankConfig mirrors models.RankOptions as a YAML-loadable document: every
// field the core consumes as an enumerated option.
type RankConfig struct {
	Scope     string `yaml:"scope"`
	ExactOnly bool   `yaml:"exact_only"`

	PrefixLenStrict int `yaml:"prefix_len_strict"`
	PrefixLenExact  int `yaml:"prefix_len_exact"`
	PrefixLenLoose  int `yaml:"prefix_len_loose"`

	MaxConPerWord     int `yaml:"max_con_per_word"`
	MaxConTotal2W     int `yaml:"max_con_total_2w"`
	MaxConTotal3PlusW int `yaml:"max_con_total_3plus_w"`

	PFMaxSubsFor2W          int `yaml:"pf_max_subs_2w"`
	PFMaxSubsFor3W          int `yaml:"pf_max_subs_3w"`
	PFMaxExtraSuffixPerWord int `yaml:"pf_max_extra_suffix_per_word"`
	PFGlobalExtraMultiplier int `yaml:"pf_global_extra_multiplier"`

	AddFirstWordMaxAddInMulti int `yaml:"add_first_word_max_add_in_multi"`

	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	configDir := filepath.Dir(path)
	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, configDir)
	cfg.Storage.IndexPath = expandPath(cfg.Storage.IndexPath, configDir)
	cfg.Support.BleveIndexPath = expandPath(cfg.Support.BleveIndexPath, configDir)

	return &cfg, nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
