package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-deckgen/internal/config"
)

// envPrefix marks the environment variables read by the CLI.
const envPrefix = "DECKGEN_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string // DECKGEN_CONFIG: config file name or path
	Format     string // DECKGEN_FORMAT: deck, print, print-pdf
	Timeout    string // DECKGEN_TIMEOUT: print-pdf timeout

	// Tier 2 - I/O and identity
	InputDir   string // DECKGEN_INPUT_DIR: default input directory
	OutputDir  string // DECKGEN_OUTPUT_DIR: default output directory
	AuthorName string // DECKGEN_AUTHOR_NAME: author name
	AuthorOrg  string // DECKGEN_AUTHOR_ORG: organization

	// Tier 3 - Extended
	Template      string // DECKGEN_TEMPLATE: default template id
	TemplatesFile string // DECKGEN_TEMPLATES_FILE: extra templates
	AssetPath     string // DECKGEN_ASSET_PATH: print asset overrides
	AssetBaseURL  string // DECKGEN_ASSET_BASE_URL: prefix for opaque image ids
	FetchTimeout  string // DECKGEN_FETCH_TIMEOUT: per image
	FreeTier      bool   // DECKGEN_FREE_TIER: watermark content slides
	Workers       int    // DECKGEN_WORKERS: parallel workers
}

// knownEnvVars lists valid DECKGEN_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"DECKGEN_CONFIG":  true,
	"DECKGEN_FORMAT":  true,
	"DECKGEN_TIMEOUT": true,
	// Tier 2 - I/O and identity
	"DECKGEN_INPUT_DIR":   true,
	"DECKGEN_OUTPUT_DIR":  true,
	"DECKGEN_AUTHOR_NAME": true,
	"DECKGEN_AUTHOR_ORG":  true,
	// Tier 3 - Extended
	"DECKGEN_TEMPLATE":       true,
	"DECKGEN_TEMPLATES_FILE": true,
	"DECKGEN_ASSET_PATH":     true,
	"DECKGEN_ASSET_BASE_URL": true,
	"DECKGEN_FETCH_TIMEOUT":  true,
	"DECKGEN_FREE_TIER":      true,
	"DECKGEN_WORKERS":        true,
}

// loadEnvConfig reads configuration from environment variables.
// Durations are kept as strings; config.Validate rejects bad ones after
// they are applied. Unparsable booleans and counts are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		// Tier 1
		ConfigPath: os.Getenv("DECKGEN_CONFIG"),
		Format:     os.Getenv("DECKGEN_FORMAT"),
		Timeout:    os.Getenv("DECKGEN_TIMEOUT"),
		// Tier 2
		InputDir:   os.Getenv("DECKGEN_INPUT_DIR"),
		OutputDir:  os.Getenv("DECKGEN_OUTPUT_DIR"),
		AuthorName: os.Getenv("DECKGEN_AUTHOR_NAME"),
		AuthorOrg:  os.Getenv("DECKGEN_AUTHOR_ORG"),
		// Tier 3
		Template:      os.Getenv("DECKGEN_TEMPLATE"),
		TemplatesFile: os.Getenv("DECKGEN_TEMPLATES_FILE"),
		AssetPath:     os.Getenv("DECKGEN_ASSET_PATH"),
		AssetBaseURL:  os.Getenv("DECKGEN_ASSET_BASE_URL"),
		FetchTimeout:  os.Getenv("DECKGEN_FETCH_TIMEOUT"),
	}

	if v := os.Getenv("DECKGEN_FREE_TIER"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.FreeTier = b
		}
	}

	if workers := os.Getenv("DECKGEN_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized DECKGEN_* variables.
// Helps catch typos like DECKGEN_AUTOR instead of DECKGEN_AUTHOR_NAME.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1
	if env.Format != "" && cfg.Output.Format == "" {
		cfg.Output.Format = env.Format
	}
	if env.Timeout != "" && cfg.Render.Timeout == "" {
		cfg.Render.Timeout = env.Timeout
	}

	// Tier 2 - I/O
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}

	// Tier 2 - Author identity
	if env.AuthorName != "" && cfg.Author.Name == "" {
		cfg.Author.Name = env.AuthorName
	}
	if env.AuthorOrg != "" && cfg.Author.Organization == "" {
		cfg.Author.Organization = env.AuthorOrg
	}

	// Tier 3 - Templates and assets
	if env.Template != "" && cfg.Template.Default == "" {
		cfg.Template.Default = env.Template
	}
	if env.TemplatesFile != "" && cfg.Template.File == "" {
		cfg.Template.File = env.TemplatesFile
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.AssetBaseURL != "" && cfg.Assets.BaseURL == "" {
		cfg.Assets.BaseURL = env.AssetBaseURL
	}
	if env.FetchTimeout != "" && cfg.Fetch.Timeout == "" {
		cfg.Fetch.Timeout = env.FetchTimeout
	}

	// Tier 3 - Build
	if env.FreeTier && !cfg.Render.FreeTier {
		cfg.Render.FreeTier = true
	}
	if env.Workers > 0 && cfg.Workers == 0 {
		cfg.Workers = env.Workers
	}
}
