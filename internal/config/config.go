// Package config loads the deckgen CLI configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-deckgen/internal/fileutil"
	"github.com/alnah/go-deckgen/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// appDir is the directory under os.UserConfigDir searched for named configs.
const appDir = "go-deckgen"

// Field length limits.
const (
	MaxNameLength       = 100  // Author and organization
	MaxPathLength       = 4096 // Directories and files
	MaxURLLength        = 2048 // Browser limit
	MaxTemplateIDLength = 32   // Template ids are short slugs
	MaxFormatLength     = 16   // "print-pdf"
	MaxWorkers          = 8    // One browser per worker
)

// Config holds the CLI defaults. Zero values mean "not set": the library
// default applies.
type Config struct {
	Input    InputConfig    `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Author   AuthorConfig   `yaml:"author"`
	Template TemplateConfig `yaml:"template"`
	Assets   AssetsConfig   `yaml:"assets"`
	Fetch    FetchConfig    `yaml:"fetch"`
	Render   RenderConfig   `yaml:"render"`
	Workers  int            `yaml:"workers"` // 0 = auto
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Used when no input is given
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the input
	Format     string `yaml:"format"`     // deck, print, print-pdf (default: deck)
}

// AuthorConfig defines the identity printed on generated decks.
type AuthorConfig struct {
	Name         string `yaml:"name"`
	Organization string `yaml:"organization"`
}

// TemplateConfig defines visual template selection.
type TemplateConfig struct {
	Default string `yaml:"default"` // Used when a document names no template
	File    string `yaml:"file"`    // Extra templates, see deckgen.LoadTemplates
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Print stylesheet/template overrides
	BaseURL  string `yaml:"baseURL"`  // Prefix for opaque image ids
}

// FetchConfig defines image fetching options.
type FetchConfig struct {
	Timeout     string `yaml:"timeout"`     // Per image, e.g. "10s"
	Concurrency int    `yaml:"concurrency"` // 0 = unbounded
}

// RenderConfig defines build options.
type RenderConfig struct {
	FreeTier bool   `yaml:"freeTier"` // Watermark every content slide
	Timeout  string `yaml:"timeout"`  // print-pdf browser timeout
}

// Validate checks field lengths, durations and counts. Called by
// LoadConfig and again by the CLI after flags are merged.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}

	fields := []struct {
		name, value string
		max         int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"output.format", c.Output.Format, MaxFormatLength},
		{"author.name", c.Author.Name, MaxNameLength},
		{"author.organization", c.Author.Organization, MaxNameLength},
		{"template.default", c.Template.Default, MaxTemplateIDLength},
		{"template.file", c.Template.File, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.baseURL", c.Assets.BaseURL, MaxURLLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Assets.BaseURL != "" && !fileutil.IsURL(c.Assets.BaseURL) {
		return fmt.Errorf("%w: assets.baseURL must start with http:// or https://, got %q", ErrInvalidValue, c.Assets.BaseURL)
	}
	if _, err := parseDuration("fetch.timeout", c.Fetch.Timeout); err != nil {
		return err
	}
	if _, err := parseDuration("render.timeout", c.Render.Timeout); err != nil {
		return err
	}
	if c.Fetch.Concurrency < 0 {
		return fmt.Errorf("%w: fetch.concurrency must be >= 0, got %d", ErrInvalidValue, c.Fetch.Concurrency)
	}
	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}
	return nil
}

// FetchTimeout returns fetch.timeout, or 0 when unset.
func (c *Config) FetchTimeout() time.Duration {
	d, _ := parseDuration("fetch.timeout", c.Fetch.Timeout)
	return d
}

// RenderTimeout returns render.timeout, or 0 when unset.
func (c *Config) RenderTimeout() time.Duration {
	d, _ := parseDuration("render.timeout", c.Render.Timeout)
	return d
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive duration like 30s, got %q", ErrInvalidValue, field, value)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns an empty configuration: every library default
// applies and decks are not watermarked.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in SearchPaths.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists where a config name is looked up, in order: the
// current directory, then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDir, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
