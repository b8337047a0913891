package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	deckgen "github.com/alnah/go-deckgen"
	"github.com/alnah/go-deckgen/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .yaml, .yml or .json extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrOutputNotDir       = errors.New("output must be a directory when building several documents")
)

// inputExtensions lists the document extensions discovered in directories.
var inputExtensions = []string{".yaml", ".yml", ".json"}

// FileToBuild represents a single document to process.
type FileToBuild struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds the documents under inputPath. ext is the artifact
// extension, without the dot.
func discoverFiles(inputPath, outputDir, ext string) ([]FileToBuild, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateInputExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "", ext)
		return []FileToBuild{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	var files []FileToBuild
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if validateInputExtension(path) != nil {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath, ext)
		files = append(files, FileToBuild{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the artifact path for a document. An output
// ending in the artifact extension names a file; anything else is a
// directory mirroring the input tree.
func resolveOutputPath(inputPath, outputDir, baseInputDir, ext string) string {
	if outputDir == "" {
		return fileutil.ReplaceExtension(inputPath, ext)
	}

	if isOutputFile(outputDir, ext) {
		return outputDir
	}

	base := fileutil.ReplaceExtension(filepath.Base(inputPath), ext)
	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), base)
		}
	}

	return filepath.Join(outputDir, base)
}

// isOutputFile reports whether output names a single artifact file.
func isOutputFile(output, ext string) bool {
	return strings.HasSuffix(strings.ToLower(output), "."+ext)
}

// validateInputExtension checks that the file is a YAML or JSON document.
func validateInputExtension(path string) error {
	if slices.Contains(inputExtensions, strings.ToLower(filepath.Ext(path))) {
		return nil
	}
	return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > deckgen.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, deckgen.MaxPoolSize)
	}
	return nil
}
