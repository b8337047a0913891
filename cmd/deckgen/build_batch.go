package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	deckgen "github.com/alnah/go-deckgen"
	"github.com/alnah/go-deckgen/internal/fileutil"
	"github.com/alnah/go-deckgen/internal/yamlutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput         = errors.New("no input specified")
	ErrReadInput       = errors.New("failed to read input document")
	ErrParseInput      = errors.New("failed to parse input document")
	ErrWriteOutput     = errors.New("failed to write output file")
	ErrCreateOutputDir = errors.New("failed to create output directory")
	ErrBuilderInit     = errors.New("failed to initialize builder")
)

// CLIBuilder is the interface for the build service.
type CLIBuilder interface {
	Build(ctx context.Context, req deckgen.Request) (*deckgen.Artifact, error)
}

// Compile-time interface implementation check.
var _ CLIBuilder = (*deckgen.Builder)(nil)

// Pool abstracts builder pool operations for testability.
type Pool interface {
	Acquire() CLIBuilder
	Release(CLIBuilder)
	Size() int
	InitErr() error
	Close() error
}

// poolAdapter exposes deckgen.BuilderPool as a Pool.
type poolAdapter struct {
	pool *deckgen.BuilderPool
}

var _ Pool = (*poolAdapter)(nil)

// Acquire returns nil, not a typed nil, when no builder could be created.
func (a *poolAdapter) Acquire() CLIBuilder {
	b := a.pool.Acquire()
	if b == nil {
		return nil
	}
	return b
}

// Release panics on a builder the pool did not hand out (programmer error).
func (a *poolAdapter) Release(b CLIBuilder) {
	builder, ok := b.(*deckgen.Builder)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", b))
	}
	a.pool.Release(builder)
}

func (a *poolAdapter) Size() int      { return a.pool.Size() }
func (a *poolAdapter) InitErr() error { return a.pool.InitErr() }
func (a *poolAdapter) Close() error   { return a.pool.Close() }

// inputDocument is the on-disk form of a build request.
type inputDocument struct {
	Project deckgen.Project `yaml:"project"`
	Slides  []deckgen.Slide `yaml:"slides"`
}

// buildParams groups parameters shared across batch/file builds.
type buildParams struct {
	format           deckgen.Format
	templateOverride string // Wins over the document's templateId
	defaultTemplate  string // Used when the document names none
	options          deckgen.RenderOptions
	now              func() time.Time
}

// BuildResult holds the outcome of a single build.
type BuildResult struct {
	InputPath   string
	OutputPath  string
	SlideCount  int
	Watermarked bool
	Err         error
	Duration    time.Duration
}

// buildBatch processes files concurrently using the builder pool.
func buildBatch(ctx context.Context, pool Pool, files []FileToBuild, params *buildParams) []BuildResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]BuildResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			builder := pool.Acquire()
			if builder == nil {
				// Builder creation failed, mark remaining jobs as failed
				initErr := ErrBuilderInit
				if err := pool.InitErr(); err != nil {
					initErr = fmt.Errorf("%w: %w", ErrBuilderInit, err)
				}
				for idx := range jobs {
					results[idx] = BuildResult{
						InputPath: files[idx].InputPath,
						Err:       initErr,
					}
				}
				return
			}
			defer pool.Release(builder)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = BuildResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = buildFile(ctx, builder, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// buildFile processes a single document and returns the result.
func buildFile(ctx context.Context, builder CLIBuilder, f FileToBuild, params *buildParams) BuildResult {
	start := params.now()
	result := BuildResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	finish := func(err error) BuildResult {
		result.Err = err
		result.Duration = params.now().Sub(start)
		return result
	}

	doc, err := readInputDocument(f.InputPath)
	if err != nil {
		return finish(err)
	}

	project := doc.Project
	switch {
	case params.templateOverride != "":
		project.TemplateID = params.templateOverride
	case project.TemplateID == "":
		project.TemplateID = params.defaultTemplate
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return finish(fmt.Errorf("%w: %w", ErrCreateOutputDir, err))
	}

	art, err := builder.Build(ctx, deckgen.Request{
		Project: project,
		Slides:  doc.Slides,
		Format:  params.format,
		Options: params.options,
	})
	if err != nil {
		return finish(err)
	}

	// #nosec G306 -- artifacts are meant to be readable
	if err := fileutil.WriteFileAtomic(f.OutputPath, art.Data, filePermissions); err != nil {
		return finish(fmt.Errorf("%w: %v", ErrWriteOutput, err))
	}

	result.SlideCount = art.SlideCount
	result.Watermarked = art.Watermarked
	return finish(nil)
}

// readInputDocument reads and strictly decodes a YAML or JSON document.
func readInputDocument(path string) (*inputDocument, error) {
	file, err := os.Open(path) // #nosec G304 -- discovered path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	defer func() { _ = file.Close() }()

	var doc inputDocument
	if err := yamlutil.ReadStrict(file, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParseInput, path, err)
	}
	return &doc, nil
}

// ResultSummary holds the count of succeeded and failed builds.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed builds.
func countResults(results []BuildResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults outputs build results. Failures always go to stderr;
// successes are silenced by quiet.
func printResults(stdout, stderr io.Writer, results []BuildResult, quiet, verbose bool) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			continue
		}
		if quiet {
			continue
		}
		mark := ""
		if r.Watermarked {
			mark = ", watermarked"
		}
		if verbose {
			fmt.Fprintf(stdout, "%s -> %s (%d slides%s, %v)\n", r.InputPath, r.OutputPath, r.SlideCount, mark, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(stdout, "%s -> %s\n", r.InputPath, r.OutputPath)
		}
	}

	if !quiet {
		summary := countResults(results)
		if len(results) > 1 {
			fmt.Fprintf(stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
		}
	}
}
