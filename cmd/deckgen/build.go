package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	flag "github.com/spf13/pflag"

	deckgen "github.com/alnah/go-deckgen"
	"github.com/alnah/go-deckgen/internal/config"
	"github.com/alnah/go-deckgen/internal/fileutil"
	"github.com/alnah/go-deckgen/internal/hints"
)

// ErrUnknownTemplate is returned when --template names no known template.
var ErrUnknownTemplate = errors.New("unknown template")

// batchError reports failed builds whose details were already printed.
// It unwraps to the first failure so the exit code follows its cause.
type batchError struct {
	failed int
	first  error
}

func (e *batchError) Error() string { return fmt.Sprintf("%d build(s) failed", e.failed) }
func (e *batchError) Unwrap() error { return e.first }

// runBuildCmd parses flags, runs the build and maps errors to exit codes.
func runBuildCmd(args []string, env *Environment) int {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	setMaxProcs(flags.common.verbose, env.Stderr)

	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := runBuild(ctx, positional, flags, env); err != nil {
		var be *batchError
		if errors.As(err, &be) {
			fmt.Fprintf(env.Stderr, "error: %v\n", err)
		} else {
			fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		}
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runBuild orchestrates the build process.
// Precedence: CLI flags > DECKGEN_* env vars > config file > defaults.
func runBuild(ctx context.Context, positionalArgs []string, flags *buildFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadBuildConfig(flags.common.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := validateWorkers(cfg.Workers); err != nil {
		return err
	}

	format := deckgen.FormatDeck
	if cfg.Output.Format != "" {
		if format, err = deckgen.ParseFormat(cfg.Output.Format); err != nil {
			return err
		}
	}

	var templates []deckgen.Template
	if cfg.Template.File != "" {
		if templates, err = deckgen.LoadTemplates(cfg.Template.File); err != nil {
			return err
		}
	}
	override, templates, err := resolveTemplateOverride(flags.template.id, templates)
	if err != nil {
		return err
	}

	// Resolve inputs and discover documents
	inputs, err := resolveInputPaths(positionalArgs, cfg)
	if err != nil {
		return err
	}
	var files []FileToBuild
	for _, input := range inputs {
		found, err := discoverFiles(input, cfg.Output.DefaultDir, format.Extension())
		if err != nil {
			return fmt.Errorf("discovering files: %w", err)
		}
		files = append(files, found...)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no .yaml, .yml or .json documents in %v", ErrNoInput, inputs)
	}
	if len(files) > 1 && isOutputFile(cfg.Output.DefaultDir, format.Extension()) {
		return fmt.Errorf("%w: %s", ErrOutputNotDir, cfg.Output.DefaultDir)
	}

	logger := newLogger(flags.common.verbose, env)
	opts, err := builderOptions(cfg, templates, logger)
	if err != nil {
		return err
	}

	poolSize := min(deckgen.ResolvePoolSize(cfg.Workers), len(files))
	logger.Debug("starting build", "documents", len(files), "workers", poolSize, "format", string(format))
	pool := env.NewPool(poolSize, opts...)
	defer func() { _ = pool.Close() }()

	params := &buildParams{
		format:           format,
		templateOverride: override,
		defaultTemplate:  cfg.Template.Default,
		options: deckgen.RenderOptions{
			FreeTier:         cfg.Render.FreeTier,
			AuthorName:       cfg.Author.Name,
			OrganizationName: cfg.Author.Organization,
		},
		now: env.Now,
	}

	results := buildBatch(ctx, pool, files, params)
	printResults(env.Stdout, env.Stderr, results, flags.common.quiet, flags.common.verbose)

	if summary := countResults(results); summary.Failed > 0 {
		return &batchError{failed: summary.Failed, first: firstError(results)}
	}
	return nil
}

// loadBuildConfig loads the config named by the flag, else by
// DECKGEN_CONFIG. Without either, defaults apply.
func loadBuildConfig(flagName, envName string) (*config.Config, error) {
	name := flagName
	if name == "" {
		name = envName
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// resolveTemplateOverride turns --template into a template id. A file path
// loads its templates and selects the lowest id; an id must be known.
func resolveTemplateOverride(value string, templates []deckgen.Template) (string, []deckgen.Template, error) {
	if value == "" {
		return "", templates, nil
	}

	if fileutil.IsFilePath(value) {
		loaded, err := deckgen.LoadTemplates(value)
		if err != nil {
			return "", nil, err
		}
		return loaded[0].ID, append(templates, loaded...), nil
	}

	ids, err := availableTemplateIDs(templates)
	if err != nil {
		return "", nil, err
	}
	if !slices.Contains(ids, value) {
		return "", nil, fmt.Errorf("%w: %q%s", ErrUnknownTemplate, value, hints.ForUnknownTemplate(ids))
	}
	return value, templates, nil
}

// availableTemplateIDs lists built-in ids plus those of extra.
func availableTemplateIDs(extra []deckgen.Template) ([]string, error) {
	b, err := deckgen.NewBuilder(deckgen.WithTemplates(extra...))
	if err != nil {
		return nil, err
	}
	defer func() { _ = b.Close() }()
	return b.TemplateIDs(), nil
}

// resolveInputPaths returns positional inputs, else input.defaultDir.
func resolveInputPaths(args []string, cfg *config.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg.Input.DefaultDir != "" {
		return []string{cfg.Input.DefaultDir}, nil
	}
	return nil, ErrNoInput
}

// builderOptions converts config into deckgen options. Config has been
// validated, so durations parse and counts are in range.
func builderOptions(cfg *config.Config, templates []deckgen.Template, logger *slog.Logger) ([]deckgen.Option, error) {
	opts := []deckgen.Option{deckgen.WithLogger(logger)}

	if d := cfg.RenderTimeout(); d > 0 {
		opts = append(opts, deckgen.WithTimeout(d))
	}
	if d := cfg.FetchTimeout(); d > 0 {
		opts = append(opts, deckgen.WithFetchTimeout(d))
	}
	if cfg.Fetch.Concurrency > 0 {
		opts = append(opts, deckgen.WithFetchConcurrency(cfg.Fetch.Concurrency))
	}
	if cfg.Assets.BaseURL != "" {
		opts = append(opts, deckgen.WithAssetBaseURL(cfg.Assets.BaseURL))
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, deckgen.WithAssetPath(cfg.Assets.BasePath))
	}
	if len(templates) > 0 {
		opts = append(opts, deckgen.WithTemplates(templates...))
	}

	// Surface option errors once, before workers start.
	trial, err := deckgen.NewBuilder(opts...)
	if err != nil {
		return nil, err
	}
	_ = trial.Close()

	return opts, nil
}

// newLogger returns a debug-level text logger on stderr when verbose and a
// discarding logger otherwise.
func newLogger(verbose bool, env *Environment) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(env.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// firstError returns the first failure in input order.
func firstError(results []BuildResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
