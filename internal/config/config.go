// Package config holds the compilation input (ScanConfig) and the layered
// settings file that supplies its defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Project settings file names, in lookup order.
const (
	ProjectConfigFile    = ".codeunify.yaml"
	ProjectConfigFileAlt = ".codeunify.yml"
)

// Config is the settings file schema.
type Config struct {
	Version     int      `yaml:"version" json:"version"`
	Output      string   `yaml:"output" json:"output"`
	IgnoreFile  string   `yaml:"ignore_file" json:"ignore_file"`
	Gitignore   *bool    `yaml:"gitignore,omitempty" json:"gitignore,omitempty"`
	Extensions  []string `yaml:"extensions,omitempty" json:"extensions,omitempty"`
	ExcludeDirs []string `yaml:"exclude_dirs,omitempty" json:"exclude_dirs,omitempty"`
	LogLevel    string   `yaml:"log_level" json:"log_level"`
	// Workers bounds parallel classification. Zero means NumCPU.
	Workers int `yaml:"workers" json:"workers"`
}

// NewConfig returns the built-in defaults.
func NewConfig() *Config {
	gitignore := true
	return &Config{
		Version:    1,
		Output:     DefaultOutput,
		IgnoreFile: DefaultIgnoreFile,
		Gitignore:  &gitignore,
		LogLevel:   "info",
		Workers:    runtime.NumCPU(),
	}
}

// GetUserConfigPath returns the user settings file:
//   - $XDG_CONFIG_HOME/codeunify/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/codeunify/config.yaml
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "codeunify", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "codeunify", "config.yaml")
	}
	return filepath.Join(home, ".config", "codeunify", "config.yaml")
}

// ProjectConfigPath returns the settings file inside dir, or "" if none exists.
func ProjectConfigPath(dir string) string {
	for _, name := range []string{ProjectConfigFile, ProjectConfigFileAlt} {
		p := filepath.Join(dir, name)
		if fileExists(p) {
			return p
		}
	}
	return ""
}

// Load builds the effective settings for a source directory. Precedence,
// lowest to highest:
//  1. Built-in defaults
//  2. User settings (~/.config/codeunify/config.yaml)
//  3. Project settings (.codeunify.yaml in dir)
//  4. Environment variables (CODEUNIFY_*)
func Load(dir string) (*Config, error) {
	return LoadWithFile(dir, "")
}

// LoadWithFile is Load with an explicit settings file replacing the project
// lookup. An empty file behaves like Load.
func LoadWithFile(dir, file string) (*Config, error) {
	cfg := NewConfig()

	if p := GetUserConfigPath(); fileExists(p) {
		if err := cfg.MergeFile(p); err != nil {
			return nil, fmt.Errorf("failed to load user config: %w", err)
		}
	}

	if file == "" {
		file = ProjectConfigPath(dir)
	}
	if file != "" {
		if err := cfg.MergeFile(file); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MergeFile parses a YAML settings file and merges its set values into c.
func (c *Config) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var parsed Config
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	c.mergeWith(&parsed)
	return nil
}

// mergeWith copies non-zero values from other. ExcludeDirs accumulate.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}
	if other.Output != "" {
		c.Output = other.Output
	}
	if other.IgnoreFile != "" {
		c.IgnoreFile = other.IgnoreFile
	}
	if other.Gitignore != nil {
		v := *other.Gitignore
		c.Gitignore = &v
	}
	if len(other.Extensions) > 0 {
		c.Extensions = append([]string(nil), other.Extensions...)
	}
	if len(other.ExcludeDirs) > 0 {
		c.ExcludeDirs = append(c.ExcludeDirs, other.ExcludeDirs...)
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.Workers != 0 {
		c.Workers = other.Workers
	}
}

// applyEnvOverrides applies CODEUNIFY_* environment variables.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("CODEUNIFY_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("CODEUNIFY_IGNORE_FILE"); v != "" {
		c.IgnoreFile = v
	}
	if v := os.Getenv("CODEUNIFY_GITIGNORE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Gitignore = &b
		}
	}
	if v := os.Getenv("CODEUNIFY_EXTENSIONS"); v != "" {
		c.Extensions = splitList(v)
	}
	if v := os.Getenv("CODEUNIFY_EXCLUDE_DIRS"); v != "" {
		c.ExcludeDirs = append(c.ExcludeDirs, splitList(v)...)
	}
	if v := os.Getenv("CODEUNIFY_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("CODEUNIFY_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Workers = n
		}
	}
}

// splitList splits a comma or whitespace separated list.
func splitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// Validate rejects settings the compiler cannot use.
func (c *Config) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("log_level must be 'debug', 'info', 'warn', or 'error', got %s", c.LogLevel)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("output must not be empty")
	}
	return nil
}

// UseGitignore reports the effective gitignore setting.
func (c *Config) UseGitignore() bool {
	return c.Gitignore == nil || *c.Gitignore
}

// ScanConfig converts the settings into the input of one run over sourceDir.
func (c *Config) ScanConfig(sourceDir string) ScanConfig {
	sc := ScanConfig{
		SourceDir:    sourceDir,
		OutputPath:   c.Output,
		IgnoreFile:   c.IgnoreFile,
		UseGitignore: c.UseGitignore(),
	}
	if len(c.Extensions) > 0 {
		sc.Extensions = append([]string(nil), c.Extensions...)
	}
	if len(c.ExcludeDirs) > 0 {
		sc.ExcludeDirs = append([]string(nil), c.ExcludeDirs...)
	}
	return sc
}

// WriteYAML writes the settings to path.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
