package main

// Notes:
// - parseBuildFlags: we test short/long forms and the explicit --free=false.
// - mergeFlags: we test that set flags override config and unset ones don't.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"io"
	"testing"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-deckgen/internal/config"
)

// ---------------------------------------------------------------------------
// TestParseBuildFlags - Flag parsing
// ---------------------------------------------------------------------------

func TestParseBuildFlags(t *testing.T) {
	t.Parallel()

	f, args, err := parseBuildFlags([]string{
		"deck.yaml",
		"-o", "out",
		"-f", "print",
		"-w", "2",
		"-t", "1m",
		"--fetch-timeout", "5s",
		"--free",
		"--author", "Ada",
		"--org", "Acme",
		"--template", "minimal",
		"--templates", "brand.yaml",
		"--asset-path", "assets",
		"--asset-base-url", "https://cdn.example.com/",
		"-c", "team",
		"-q",
		"other.json",
	}, io.Discard)
	if err != nil {
		t.Fatalf("parseBuildFlags() error = %v", err)
	}

	if len(args) != 2 || args[0] != "deck.yaml" || args[1] != "other.json" {
		t.Errorf("args = %v, want [deck.yaml other.json]", args)
	}
	if f.output != "out" || f.format != "print" || f.workers != 2 || f.timeout != "1m" || f.fetchTimeout != "5s" {
		t.Errorf("I/O flags = %+v", f)
	}
	if !f.freeTier || !f.freeTierSet {
		t.Error("--free should be set")
	}
	if f.author != (authorFlags{name: "Ada", org: "Acme"}) {
		t.Errorf("author = %+v", f.author)
	}
	if f.template != (templateFlags{id: "minimal", file: "brand.yaml"}) {
		t.Errorf("template = %+v", f.template)
	}
	if f.assets != (assetFlags{assetPath: "assets", baseURL: "https://cdn.example.com/"}) {
		t.Errorf("assets = %+v", f.assets)
	}
	if f.common != (commonFlags{config: "team", quiet: true}) {
		t.Errorf("common = %+v", f.common)
	}
}

func TestParseBuildFlags_FreeUnset(t *testing.T) {
	t.Parallel()

	f, _, err := parseBuildFlags([]string{"deck.yaml"}, io.Discard)
	if err != nil {
		t.Fatalf("parseBuildFlags() error = %v", err)
	}
	if f.freeTierSet {
		t.Error("freeTierSet should be false when --free is absent")
	}
}

func TestParseBuildFlags_Errors(t *testing.T) {
	t.Parallel()

	if _, _, err := parseBuildFlags([]string{"--unknown"}, io.Discard); err == nil {
		t.Error("expected error for unknown flag")
	}
	if _, _, err := parseBuildFlags([]string{"--workers", "two"}, io.Discard); err == nil {
		t.Error("expected error for non-numeric workers")
	}
	if _, _, err := parseBuildFlags([]string{"--help"}, io.Discard); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("--help error = %v, want flag.ErrHelp", err)
	}
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI over config
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	base := func() *config.Config {
		return &config.Config{
			Output:  config.OutputConfig{DefaultDir: "cfg-out", Format: "deck"},
			Author:  config.AuthorConfig{Name: "Cfg", Organization: "CfgOrg"},
			Render:  config.RenderConfig{FreeTier: true, Timeout: "30s"},
			Fetch:   config.FetchConfig{Timeout: "10s"},
			Workers: 2,
		}
	}

	t.Run("empty flags keep config", func(t *testing.T) {
		t.Parallel()

		cfg := base()
		mergeFlags(&buildFlags{}, cfg)

		if *cfg != *base() {
			t.Errorf("config changed: %+v", cfg)
		}
	})

	t.Run("set flags win", func(t *testing.T) {
		t.Parallel()

		cfg := base()
		mergeFlags(&buildFlags{
			output:       "cli-out",
			format:       "print-pdf",
			workers:      4,
			timeout:      "2m",
			fetchTimeout: "1s",
			freeTierSet:  true, // --free=false
			author:       authorFlags{name: "Cli", org: "CliOrg"},
			template:     templateFlags{id: "minimal", file: "brand.yaml"},
			assets:       assetFlags{assetPath: "assets", baseURL: "https://cdn.example.com/"},
		}, cfg)

		if cfg.Output.DefaultDir != "cli-out" || cfg.Output.Format != "print-pdf" || cfg.Workers != 4 {
			t.Errorf("output/workers = %+v, %d", cfg.Output, cfg.Workers)
		}
		if cfg.Render.Timeout != "2m" || cfg.Fetch.Timeout != "1s" {
			t.Errorf("timeouts = %q, %q", cfg.Render.Timeout, cfg.Fetch.Timeout)
		}
		if cfg.Render.FreeTier {
			t.Error("--free=false should clear render.freeTier")
		}
		if cfg.Author.Name != "Cli" || cfg.Author.Organization != "CliOrg" {
			t.Errorf("author = %+v", cfg.Author)
		}
		if cfg.Template.File != "brand.yaml" || cfg.Template.Default != "" {
			t.Errorf("template = %+v; --template must not become the config default", cfg.Template)
		}
		if cfg.Assets.BasePath != "assets" || cfg.Assets.BaseURL != "https://cdn.example.com/" {
			t.Errorf("assets = %+v", cfg.Assets)
		}
	})
}
