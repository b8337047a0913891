package main

// Notes:
// - Tests use t.Setenv() which prevents t.Parallel().
// - loadEnvConfig: unparsable booleans and counts are ignored, not errors.
//   Durations are validated later by config.Validate.
// - applyEnvConfig: we test that env never overrides config values.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alnah/go-deckgen/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadEnvConfig - Environment variable loading
// ---------------------------------------------------------------------------

func TestLoadEnvConfig(t *testing.T) {
	t.Run("all variables", func(t *testing.T) {
		t.Setenv("DECKGEN_CONFIG", "team")
		t.Setenv("DECKGEN_FORMAT", "print")
		t.Setenv("DECKGEN_TIMEOUT", "2m")
		t.Setenv("DECKGEN_INPUT_DIR", "/in")
		t.Setenv("DECKGEN_OUTPUT_DIR", "/out")
		t.Setenv("DECKGEN_AUTHOR_NAME", "Ada")
		t.Setenv("DECKGEN_AUTHOR_ORG", "Acme")
		t.Setenv("DECKGEN_TEMPLATE", "minimal")
		t.Setenv("DECKGEN_TEMPLATES_FILE", "/etc/deckgen/templates.yaml")
		t.Setenv("DECKGEN_ASSET_PATH", "/assets")
		t.Setenv("DECKGEN_ASSET_BASE_URL", "https://cdn.example.com/")
		t.Setenv("DECKGEN_FETCH_TIMEOUT", "5s")
		t.Setenv("DECKGEN_FREE_TIER", "true")
		t.Setenv("DECKGEN_WORKERS", "3")

		got := loadEnvConfig()
		want := envConfig{
			ConfigPath:    "team",
			Format:        "print",
			Timeout:       "2m",
			InputDir:      "/in",
			OutputDir:     "/out",
			AuthorName:    "Ada",
			AuthorOrg:     "Acme",
			Template:      "minimal",
			TemplatesFile: "/etc/deckgen/templates.yaml",
			AssetPath:     "/assets",
			AssetBaseURL:  "https://cdn.example.com/",
			FetchTimeout:  "5s",
			FreeTier:      true,
			Workers:       3,
		}
		if *got != want {
			t.Errorf("loadEnvConfig() = %+v, want %+v", *got, want)
		}
	})

	t.Run("invalid values are ignored", func(t *testing.T) {
		t.Setenv("DECKGEN_FREE_TIER", "maybe")
		t.Setenv("DECKGEN_WORKERS", "-2")

		got := loadEnvConfig()
		if got.FreeTier {
			t.Error("FreeTier should stay false for an unparsable value")
		}
		if got.Workers != 0 {
			t.Errorf("Workers = %d, want 0", got.Workers)
		}
	})

	t.Run("non-numeric workers", func(t *testing.T) {
		t.Setenv("DECKGEN_WORKERS", "many")

		if got := loadEnvConfig(); got.Workers != 0 {
			t.Errorf("Workers = %d, want 0", got.Workers)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("DECKGEN_AUTOR_NAME", "typo")
	t.Setenv("DECKGEN_FORMAT", "deck")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	if !strings.Contains(buf.String(), "DECKGEN_AUTOR_NAME") {
		t.Errorf("expected warning for DECKGEN_AUTOR_NAME, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "DECKGEN_FORMAT") {
		t.Errorf("known variable should not warn, got %q", buf.String())
	}
}

// ---------------------------------------------------------------------------
// TestApplyEnvConfig - Priority behavior
// ---------------------------------------------------------------------------

func TestApplyEnvConfig(t *testing.T) {
	t.Parallel()

	env := &envConfig{
		Format:        "print",
		Timeout:       "1m",
		InputDir:      "/env/in",
		OutputDir:     "/env/out",
		AuthorName:    "Env Author",
		AuthorOrg:     "Env Org",
		Template:      "creative",
		TemplatesFile: "/env/templates.yaml",
		AssetPath:     "/env/assets",
		AssetBaseURL:  "https://env.example.com/",
		FetchTimeout:  "3s",
		FreeTier:      true,
		Workers:       2,
	}

	t.Run("fills empty config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		applyEnvConfig(env, cfg)

		if cfg.Output.Format != "print" || cfg.Render.Timeout != "1m" {
			t.Errorf("format/timeout not applied: %+v", cfg)
		}
		if cfg.Input.DefaultDir != "/env/in" || cfg.Output.DefaultDir != "/env/out" {
			t.Errorf("dirs not applied: %+v", cfg)
		}
		if cfg.Author.Name != "Env Author" || cfg.Author.Organization != "Env Org" {
			t.Errorf("author not applied: %+v", cfg.Author)
		}
		if cfg.Template.Default != "creative" || cfg.Template.File != "/env/templates.yaml" {
			t.Errorf("template not applied: %+v", cfg.Template)
		}
		if cfg.Assets.BasePath != "/env/assets" || cfg.Assets.BaseURL != "https://env.example.com/" {
			t.Errorf("assets not applied: %+v", cfg.Assets)
		}
		if cfg.Fetch.Timeout != "3s" || !cfg.Render.FreeTier || cfg.Workers != 2 {
			t.Errorf("fetch/render/workers not applied: %+v", cfg)
		}
	})

	t.Run("config wins", func(t *testing.T) {
		t.Parallel()

		cfg := &config.Config{
			Output:   config.OutputConfig{Format: "deck"},
			Author:   config.AuthorConfig{Name: "File Author"},
			Template: config.TemplateConfig{Default: "modern"},
			Workers:  4,
		}
		applyEnvConfig(env, cfg)

		if cfg.Output.Format != "deck" {
			t.Errorf("Format = %q, want deck", cfg.Output.Format)
		}
		if cfg.Author.Name != "File Author" {
			t.Errorf("Author.Name = %q, want File Author", cfg.Author.Name)
		}
		if cfg.Template.Default != "modern" {
			t.Errorf("Template.Default = %q, want modern", cfg.Template.Default)
		}
		if cfg.Workers != 4 {
			t.Errorf("Workers = %d, want 4", cfg.Workers)
		}
		if cfg.Author.Organization != "Env Org" {
			t.Errorf("empty fields should still be filled, got %q", cfg.Author.Organization)
		}
	})
}
