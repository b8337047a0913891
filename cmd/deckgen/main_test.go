package main

// Notes:
// - poolAdapter: we test Acquire/Release/Size, the untyped nil on init
//   failure, and the panic on a foreign builder type.
// - runMain: we test dispatch and exit codes. One case builds a real deck
//   end to end; print-pdf needs Chrome and is left to the library tests.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	deckgen "github.com/alnah/go-deckgen"
)

// ---------------------------------------------------------------------------
// TestPoolAdapter - deckgen.BuilderPool adapter
// ---------------------------------------------------------------------------

// foreignBuilder is a CLIBuilder that is NOT *deckgen.Builder.
type foreignBuilder struct{}

func (foreignBuilder) Build(context.Context, deckgen.Request) (*deckgen.Artifact, error) {
	return &deckgen.Artifact{}, nil
}

func TestPoolAdapter_Release_WrongType(t *testing.T) {
	t.Parallel()

	pool := deckgen.NewBuilderPool(1)
	defer pool.Close()

	adapter := &poolAdapter{pool: pool}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for wrong type, got none")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("expected string panic, got %T", r)
		}
		if !strings.Contains(msg, "unexpected type") {
			t.Errorf("panic message should contain 'unexpected type', got %q", msg)
		}
	}()

	adapter.Release(foreignBuilder{})
}

func TestPoolAdapter_AcquireRelease(t *testing.T) {
	t.Parallel()

	pool := deckgen.NewBuilderPool(3)
	adapter := &poolAdapter{pool: pool}
	defer adapter.Close()

	if adapter.Size() != 3 {
		t.Errorf("Size() = %d, want 3", adapter.Size())
	}

	b := adapter.Acquire()
	if b == nil {
		t.Fatal("Acquire() returned nil")
	}
	adapter.Release(b)

	if err := adapter.InitErr(); err != nil {
		t.Errorf("InitErr() = %v, want nil", err)
	}
}

func TestPoolAdapter_AcquireFailure(t *testing.T) {
	t.Parallel()

	pool := deckgen.NewBuilderPool(1, deckgen.WithAssetPath(filepath.Join(t.TempDir(), "missing")))
	adapter := &poolAdapter{pool: pool}
	defer adapter.Close()

	if b := adapter.Acquire(); b != nil {
		t.Fatalf("Acquire() = %v, want untyped nil", b)
	}
	if adapter.InitErr() == nil {
		t.Error("InitErr() should report why no builder was created")
	}
}

// ---------------------------------------------------------------------------
// TestIsCommand / TestLooksLikeInput - Dispatch helpers
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"build", true},
		{"templates", true},
		{"doctor", true},
		{"version", true},
		{"help", true},
		{"foo", false},
		{"", false},
		{"deck.yaml", false},
		{"Build", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := isCommand(tt.input); got != tt.want {
				t.Errorf("isCommand(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLooksLikeInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"deck.yaml", true},
		{"deck.yml", true},
		{"/path/to/deck.json", true},
		{"deck.pptx", false},
		{"deck", false},
		{"", false},
		{"yaml.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := looksLikeInput(tt.input); got != tt.want {
				t.Errorf("looksLikeInput(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain - Main entry point exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         []string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "no args shows usage",
			args:         []string{"deckgen"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Usage: deckgen"},
		},
		{
			name:         "version",
			args:         []string{"deckgen", "version"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"go-deckgen " + Version},
		},
		{
			name:         "help",
			args:         []string{"deckgen", "help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: deckgen", "Commands:"},
		},
		{
			name:         "--help",
			args:         []string{"deckgen", "--help"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Commands:"},
		},
		{
			name:         "help build",
			args:         []string{"deckgen", "help", "build"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Usage: deckgen build", "layoutTag"},
		},
		{
			name:         "unknown command",
			args:         []string{"deckgen", "publish"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"Unknown command: publish"},
		},
		{
			name:         "unknown build flag",
			args:         []string{"deckgen", "build", "--nope"},
			wantCode:     ExitUsage,
			wantInStderr: []string{"error:"},
		},
		{
			name:     "build -h",
			args:     []string{"deckgen", "build", "-h"},
			wantCode: ExitSuccess,
		},
		{
			name:         "bare input shorthand reaches build",
			args:         []string{"deckgen", "missing-deck.yaml"},
			wantCode:     ExitIO,
			wantInStderr: []string{"error:", "missing-deck.yaml"},
		},
		{
			name:         "templates",
			args:         []string{"deckgen", "templates"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"corporate\n", "modern *\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			env := &Environment{
				Now:     time.Now,
				Stdout:  &stdout,
				Stderr:  &stderr,
				NewPool: DefaultEnv().NewPool,
			}

			code := runMain(tt.args, env)
			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

func TestRunMain_BuildsDeck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := writeFile(t, dir, "review.yaml", sampleDocument)

	var stdout, stderr bytes.Buffer
	env := &Environment{Now: time.Now, Stdout: &stdout, Stderr: &stderr, NewPool: DefaultEnv().NewPool}

	if code := runMain([]string{"deckgen", input, "--free", "-q"}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("quiet build should print nothing, got %q", stdout.String())
	}

	out := filepath.Join(dir, "review.pptx")
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading deck: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip package: %v", err)
	}

	slides := 0
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			slides++
		}
	}
	if slides != 3 {
		t.Errorf("deck has %d slides, want 3 (opening slide plus two records)", slides)
	}
}
