package main

// Notes:
// - runBuild: we test flag/config precedence, template override rules, output
//   placement and error mapping through a mock pool. Real rendering is covered
//   by the library tests and TestRunMain_BuildsDeck.
// - buildBatch: we test builder init failure and context cancellation.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	deckgen "github.com/alnah/go-deckgen"
	"github.com/alnah/go-deckgen/internal/config"
)

// ---------------------------------------------------------------------------
// TestRunBuild - Successful builds
// ---------------------------------------------------------------------------

func TestRunBuild_Deck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "review.yaml", sampleDocument)
	pool := &mockPool{builder: &mockBuilder{}}
	env, stdout, _, _ := newTestEnv(pool)

	if err := runBuildArgs(t, env, input); err != nil {
		t.Fatalf("runBuild() error = %v", err)
	}

	out := filepath.Join(dir, "review.pptx")
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "artifact:Quarterly Review" {
		t.Errorf("output = %q", data)
	}

	reqs := pool.builder.requests()
	if len(reqs) != 1 {
		t.Fatalf("got %d requests, want 1", len(reqs))
	}
	req := reqs[0]
	if req.Format != deckgen.FormatDeck {
		t.Errorf("Format = %q, want deck", req.Format)
	}
	if req.Project.TemplateID != "corporate" {
		t.Errorf("TemplateID = %q, want corporate", req.Project.TemplateID)
	}
	if len(req.Slides) != 2 || req.Slides[0].Title != "Results" {
		t.Errorf("slides should be passed through in document order, got %+v", req.Slides)
	}
	if req.Options.FreeTier {
		t.Error("FreeTier should default to false")
	}
	if !pool.closed.Load() {
		t.Error("pool should be closed after the build")
	}
	if !strings.Contains(stdout.String(), "review.yaml -> "+out) {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunBuild_FlagOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "review.json",
		`{"project":{"title":"JSON Deck","templateId":"corporate"},"slides":[{"order":1,"title":"Only"}]}`)
	outDir := filepath.Join(dir, "out")
	pool := &mockPool{builder: &mockBuilder{}}
	env, _, _, _ := newTestEnv(pool)

	err := runBuildArgs(t, env, input,
		"--format", "html",
		"--template", "minimal",
		"--author", "Ada Lovelace",
		"--org", "Analytical Engines",
		"--free",
		"-o", outDir,
	)
	if err != nil {
		t.Fatalf("runBuild() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(outDir, "review.html")); err != nil {
		t.Errorf("expected output in %s: %v", outDir, err)
	}

	req := pool.builder.requests()[0]
	if req.Format != deckgen.FormatPrint {
		t.Errorf("Format = %q, want print", req.Format)
	}
	if req.Project.TemplateID != "minimal" {
		t.Errorf("--template should override the document, got %q", req.Project.TemplateID)
	}
	want := deckgen.RenderOptions{FreeTier: true, AuthorName: "Ada Lovelace", OrganizationName: "Analytical Engines"}
	if req.Options != want {
		t.Errorf("Options = %+v, want %+v", req.Options, want)
	}
}

func TestRunBuild_ConfigDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "in/plain.yaml", "project:\n  title: Plain\nslides: []\n")
	cfgPath := writeFile(t, dir, "deckgen.yaml", `input:
  defaultDir: `+filepath.Join(dir, "in")+`
output:
  format: print
template:
  default: creative
render:
  freeTier: true
`)
	pool := &mockPool{builder: &mockBuilder{}}
	env, _, _, _ := newTestEnv(pool)

	if err := runBuildArgs(t, env, "--config", cfgPath, "--free=false"); err != nil {
		t.Fatalf("runBuild() error = %v", err)
	}

	req := pool.builder.requests()[0]
	if req.Project.TemplateID != "creative" {
		t.Errorf("template.default should fill an empty templateId, got %q", req.Project.TemplateID)
	}
	if req.Format != deckgen.FormatPrint {
		t.Errorf("Format = %q, want print from config", req.Format)
	}
	if req.Options.FreeTier {
		t.Error("--free=false should override render.freeTier")
	}
	if _, err := os.Stat(filepath.Join(dir, "in", "plain.html")); err != nil {
		t.Errorf("expected output next to input: %v", err)
	}
}

func TestRunBuild_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "decks")
	writeFile(t, in, "a.yaml", sampleDocument)
	writeFile(t, in, "team/b.yml", sampleDocument)
	writeFile(t, in, "notes.txt", "not a document")
	outDir := filepath.Join(dir, "out")

	pool := &mockPool{builder: &mockBuilder{}, size: 4}
	env, stdout, _, poolSize := newTestEnv(pool)

	if err := runBuildArgs(t, env, in, "-o", outDir); err != nil {
		t.Fatalf("runBuild() error = %v", err)
	}

	for _, rel := range []string{"a.pptx", "team/b.pptx"} {
		if _, err := os.Stat(filepath.Join(outDir, rel)); err != nil {
			t.Errorf("missing %s: %v", rel, err)
		}
	}
	if n := len(pool.builder.requests()); n != 2 {
		t.Errorf("got %d builds, want 2", n)
	}
	if got := poolSize.Load(); got < 1 || got > 2 {
		t.Errorf("pool size = %d, want between 1 and the document count", got)
	}
	if !strings.Contains(stdout.String(), "2 succeeded, 0 failed") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

func TestRunBuild_TemplateFileOverride(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "review.yaml", sampleDocument)
	tmplPath := writeFile(t, dir, "brand.yaml", `templates:
  zeta:
    primary: "#111111"
    secondary: "#222222"
    background: "#FFFFFF"
    text: "#000000"
  brand:
    primary: "#FF6600"
    secondary: "#222222"
    background: "#FFFFFF"
    text: "#000000"
`)
	pool := &mockPool{builder: &mockBuilder{}}
	env, _, _, _ := newTestEnv(pool)

	if err := runBuildArgs(t, env, input, "--template", tmplPath); err != nil {
		t.Fatalf("runBuild() error = %v", err)
	}
	if got := pool.builder.requests()[0].Project.TemplateID; got != "brand" {
		t.Errorf("TemplateID = %q, want brand (lowest id in the file)", got)
	}
}

// ---------------------------------------------------------------------------
// TestRunBuild_Errors - Error mapping
// ---------------------------------------------------------------------------

func TestRunBuild_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      func(dir string) []string
		wantErr   error
		wantCode  int
		errSubstr string
	}{
		{
			name:     "too many workers",
			args:     func(dir string) []string { return []string{dir, "--workers", "9"} },
			wantErr:  ErrInvalidWorkerCount,
			wantCode: ExitUsage,
		},
		{
			name:     "unknown format",
			args:     func(dir string) []string { return []string{dir, "--format", "gif"} },
			wantErr:  deckgen.ErrUnsupportedFormat,
			wantCode: ExitUsage,
		},
		{
			name:      "unknown template id",
			args:      func(dir string) []string { return []string{dir, "--template", "nope"} },
			wantErr:   ErrUnknownTemplate,
			wantCode:  ExitUsage,
			errSubstr: "available: corporate, creative, minimal, modern",
		},
		{
			name:      "config name not found",
			args:      func(dir string) []string { return []string{dir, "--config", "deckgen-missing-config"} },
			wantErr:   config.ErrConfigNotFound,
			wantCode:  ExitUsage,
			errSubstr: "hint:",
		},
		{
			name:     "invalid base URL",
			args:     func(dir string) []string { return []string{dir, "--asset-base-url", "ftp://cdn"} },
			wantErr:  config.ErrInvalidValue,
			wantCode: ExitUsage,
		},
		{
			name:     "zero timeout",
			args:     func(dir string) []string { return []string{dir, "--timeout", "0s"} },
			wantErr:  config.ErrInvalidValue,
			wantCode: ExitUsage,
		},
		{
			name:     "missing asset path",
			args:     func(dir string) []string { return []string{dir, "--asset-path", filepath.Join(dir, "nope")} },
			wantErr:  deckgen.ErrInvalidAssetPath,
			wantCode: ExitUsage,
		},
		{
			name:     "missing input",
			args:     func(dir string) []string { return []string{filepath.Join(dir, "missing.yaml")} },
			wantErr:  os.ErrNotExist,
			wantCode: ExitIO,
		},
		{
			name:     "wrong extension",
			args:     func(dir string) []string { return []string{filepath.Join(dir, "notes.txt")} },
			wantErr:  ErrInvalidExtension,
			wantCode: ExitUsage,
		},
		{
			name:     "single output file for many documents",
			args:     func(dir string) []string { return []string{dir, "-o", filepath.Join(dir, "all.pptx")} },
			wantErr:  ErrOutputNotDir,
			wantCode: ExitUsage,
		},
		{
			name:     "empty directory",
			args:     func(dir string) []string { return []string{filepath.Join(dir, "empty")} },
			wantErr:  ErrNoInput,
			wantCode: ExitIO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeFile(t, dir, "a.yaml", sampleDocument)
			writeFile(t, dir, "b.yaml", sampleDocument)
			writeFile(t, dir, "notes.txt", "text")
			if err := os.Mkdir(filepath.Join(dir, "empty"), 0o750); err != nil {
				t.Fatal(err)
			}

			pool := &mockPool{builder: &mockBuilder{}}
			env, _, _, _ := newTestEnv(pool)

			err := runBuildArgs(t, env, tt.args(dir)...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if code := exitCodeFor(err); code != tt.wantCode {
				t.Errorf("exitCodeFor() = %d, want %d", code, tt.wantCode)
			}
			if tt.errSubstr != "" && !strings.Contains(err.Error(), tt.errSubstr) {
				t.Errorf("error %q should contain %q", err, tt.errSubstr)
			}
			if n := len(pool.builder.requests()); n != 0 {
				t.Errorf("no build should start, got %d", n)
			}
		})
	}
}

func TestRunBuild_NoInput(t *testing.T) {
	t.Setenv("DECKGEN_INPUT_DIR", "")
	t.Setenv("DECKGEN_CONFIG", "")

	env, _, _, _ := newTestEnv(&mockPool{builder: &mockBuilder{}})

	err := runBuildArgs(t, env)
	if !errors.Is(err, ErrNoInput) {
		t.Fatalf("error = %v, want ErrNoInput", err)
	}
}

func TestRunBuild_FailedDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		buildErr error
		wantErr  error
		wantCode int
	}{
		{
			name:     "malformed document",
			content:  "project: [unclosed",
			wantErr:  ErrParseInput,
			wantCode: ExitUsage,
		},
		{
			name:     "unknown field",
			content:  "project:\n  title: X\nslide: []\n",
			wantErr:  ErrParseInput,
			wantCode: ExitUsage,
		},
		{
			name:     "browser failure",
			content:  sampleDocument,
			buildErr: deckgen.ErrBrowserConnect,
			wantErr:  deckgen.ErrBrowserConnect,
			wantCode: ExitBrowser,
		},
		{
			name:     "interrupted during image fetch",
			content:  sampleDocument,
			buildErr: context.Canceled,
			wantErr:  context.Canceled,
			wantCode: ExitGeneral,
		},
		{
			name:     "deadline during image fetch",
			content:  sampleDocument,
			buildErr: context.DeadlineExceeded,
			wantErr:  context.DeadlineExceeded,
			wantCode: ExitGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			input := writeFile(t, dir, "doc.yaml", tt.content)
			env, _, stderr, _ := newTestEnv(&mockPool{builder: &mockBuilder{err: tt.buildErr}})

			err := runBuildArgs(t, env, input)
			var be *batchError
			if !errors.As(err, &be) {
				t.Fatalf("error = %v, want a batch error", err)
			}
			if be.failed != 1 {
				t.Errorf("failed = %d, want 1", be.failed)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error should unwrap to %v, got %v", tt.wantErr, err)
			}
			if code := exitCodeFor(err); code != tt.wantCode {
				t.Errorf("exitCodeFor() = %d, want %d", code, tt.wantCode)
			}
			if !strings.Contains(stderr.String(), "FAILED "+input) {
				t.Errorf("stderr = %q", stderr.String())
			}
			if _, statErr := os.Stat(filepath.Join(dir, "doc.pptx")); statErr == nil {
				t.Error("no artifact should be written for a failed build")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildBatch - Worker behavior
// ---------------------------------------------------------------------------

func TestBuildBatch_BuilderInitFailure(t *testing.T) {
	t.Parallel()

	initErr := errors.New("bad asset path")
	pool := &mockPool{initErr: initErr, size: 2}
	files := []FileToBuild{{InputPath: "a.yaml"}, {InputPath: "b.yaml"}, {InputPath: "c.yaml"}}

	results := buildBatch(context.Background(), pool, files, &buildParams{now: func() time.Time { return fixedNow }})

	for _, r := range results {
		if !errors.Is(r.Err, ErrBuilderInit) || !errors.Is(r.Err, initErr) {
			t.Errorf("%s: error = %v, want ErrBuilderInit wrapping the cause", r.InputPath, r.Err)
		}
	}
}

func TestBuildBatch_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := &mockPool{builder: &mockBuilder{}}
	files := []FileToBuild{{InputPath: "a.yaml"}, {InputPath: "b.yaml"}}

	results := buildBatch(ctx, pool, files, &buildParams{now: func() time.Time { return fixedNow }})

	for _, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("%s: error = %v, want context.Canceled", r.InputPath, r.Err)
		}
	}
	if n := len(pool.builder.requests()); n != 0 {
		t.Errorf("no build should run, got %d", n)
	}
}

func TestBuildBatch_Empty(t *testing.T) {
	t.Parallel()

	if got := buildBatch(context.Background(), &mockPool{}, nil, &buildParams{}); got != nil {
		t.Errorf("buildBatch(nil) = %v, want nil", got)
	}
}

// ---------------------------------------------------------------------------
// TestCountResults / TestPrintResults
// ---------------------------------------------------------------------------

func TestCountResults(t *testing.T) {
	t.Parallel()

	got := countResults([]BuildResult{{}, {Err: errors.New("x")}, {}})
	if got.Succeeded != 2 || got.Failed != 1 {
		t.Errorf("countResults() = %+v, want 2 succeeded, 1 failed", got)
	}
}

func TestPrintResults(t *testing.T) {
	t.Parallel()

	results := []BuildResult{
		{InputPath: "a.yaml", OutputPath: "a.pptx", SlideCount: 3, Watermarked: true},
		{InputPath: "b.yaml", Err: ErrParseInput},
	}

	tests := []struct {
		name          string
		quiet         bool
		verbose       bool
		wantStdout    []string
		notWantStdout []string
	}{
		{
			name:       "default",
			wantStdout: []string{"a.yaml -> a.pptx", "1 succeeded, 1 failed"},
		},
		{
			name:       "verbose",
			verbose:    true,
			wantStdout: []string{"(3 slides, watermarked"},
		},
		{
			name:          "quiet",
			quiet:         true,
			notWantStdout: []string{"a.yaml", "succeeded"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr strings.Builder
			printResults(&stdout, &stderr, results, tt.quiet, tt.verbose)

			for _, want := range tt.wantStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, nope := range tt.notWantStdout {
				if strings.Contains(stdout.String(), nope) {
					t.Errorf("stdout should not contain %q, got %q", nope, stdout.String())
				}
			}
			if !strings.Contains(stderr.String(), "FAILED b.yaml") || !strings.Contains(stderr.String(), "hint:") {
				t.Errorf("failures always go to stderr with a hint, got %q", stderr.String())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestResolveTemplateOverride
// ---------------------------------------------------------------------------

func TestResolveTemplateOverride(t *testing.T) {
	t.Parallel()

	extra := []deckgen.Template{{
		ID: "ocean", Primary: "0E7490", Secondary: "22D3EE", Background: "FFFFFF", Text: "0F172A",
	}}

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr error
	}{
		{"empty keeps the document", "", "", nil},
		{"built-in id", "corporate", "corporate", nil},
		{"extra id", "ocean", "ocean", nil},
		{"unknown id", "sunset", "", ErrUnknownTemplate},
		{"missing file", "./missing/templates.yaml", "", deckgen.ErrTemplateFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, templates, err := resolveTemplateOverride(tt.value, extra)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got != tt.want {
				t.Errorf("override = %q, want %q", got, tt.want)
			}
			if len(templates) != 1 {
				t.Errorf("extra templates should pass through, got %d", len(templates))
			}
		})
	}
}
