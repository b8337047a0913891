package main

// Notes:
// - This file contains mocks and fixtures shared by the command tests.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	deckgen "github.com/alnah/go-deckgen"
)

// ---------------------------------------------------------------------------
// Mock Implementations - For unit testing
// ---------------------------------------------------------------------------

// mockBuilder records requests and answers with a fixed artifact.
type mockBuilder struct {
	mu   sync.Mutex
	reqs []deckgen.Request
	err  error
}

func (m *mockBuilder) Build(_ context.Context, req deckgen.Request) (*deckgen.Artifact, error) {
	m.mu.Lock()
	m.reqs = append(m.reqs, req)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	return &deckgen.Artifact{
		Format:      req.Format,
		Extension:   req.Format.Extension(),
		Data:        []byte("artifact:" + req.Project.Title),
		Watermarked: req.Options.FreeTier,
		SlideCount:  len(req.Slides),
	}, nil
}

func (m *mockBuilder) requests() []deckgen.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]deckgen.Request(nil), m.reqs...)
}

// mockPool hands out a single mockBuilder. A nil builder simulates a
// builder that could not be created.
type mockPool struct {
	builder *mockBuilder
	initErr error
	size    int
	closed  atomic.Bool
}

func (p *mockPool) Acquire() CLIBuilder {
	if p.builder == nil {
		return nil
	}
	return p.builder
}

func (p *mockPool) Release(CLIBuilder) {}
func (p *mockPool) Size() int {
	if p.size < 1 {
		return 1
	}
	return p.size
}
func (p *mockPool) InitErr() error { return p.initErr }
func (p *mockPool) Close() error {
	p.closed.Store(true)
	return nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

const sampleDocument = `project:
  title: Quarterly Review
  templateId: corporate
slides:
  - order: 2
    layoutTag: content_image_right
    title: Results
    bullets: [Revenue up, Churn down]
  - order: 1
    layoutTag: agenda
    title: Agenda
`

var fixedNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// newTestEnv returns an environment writing to buffers, with pool as the
// only pool any build gets. poolSize receives the requested size.
func newTestEnv(pool *mockPool) (env *Environment, stdout, stderr *bytes.Buffer, poolSize *atomic.Int64) {
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	poolSize = &atomic.Int64{}
	env = &Environment{
		Now:    func() time.Time { return fixedNow },
		Stdout: stdout,
		Stderr: stderr,
		NewPool: func(size int, _ ...deckgen.Option) Pool {
			poolSize.Store(int64(size))
			return pool
		},
	}
	return env, stdout, stderr, poolSize
}

// writeFile creates dir/name (and parent directories) with content.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// runBuildArgs parses args as build flags and runs the build.
func runBuildArgs(t *testing.T, env *Environment, args ...string) error {
	t.Helper()
	flags, positional, err := parseBuildFlags(args, io.Discard)
	if err != nil {
		t.Fatalf("parseBuildFlags(%v): %v", args, err)
	}
	return runBuild(context.Background(), positional, flags, env)
}
