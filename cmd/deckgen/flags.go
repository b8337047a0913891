package main

import (
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-deckgen/internal/config"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// authorFlags holds the identity printed on decks.
type authorFlags struct {
	name string
	org  string
}

// templateFlags holds visual template flags.
type templateFlags struct {
	id   string // Template id or templates file path; overrides the document
	file string // Extra templates file
}

// assetFlags holds asset-related flags.
type assetFlags struct {
	assetPath string // Print stylesheet/template overrides
	baseURL   string // Prefix for opaque image ids
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common       commonFlags
	output       string
	format       string
	workers      int
	timeout      string
	fetchTimeout string
	freeTier     bool
	freeTierSet  bool // --free was given, possibly as --free=false
	author       authorFlags
	template     templateFlags
	assets       assetFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show structured build logs")
}

// addAuthorFlags adds author flags to a FlagSet.
func addAuthorFlags(fs *flag.FlagSet, f *authorFlags) {
	fs.StringVar(&f.name, "author", "", "author name shown on the opening slide")
	fs.StringVar(&f.org, "org", "", "organization name shown on content slides")
}

// addTemplateFlags adds template flags to a FlagSet.
func addTemplateFlags(fs *flag.FlagSet, f *templateFlags) {
	fs.StringVar(&f.id, "template", "", "template id or templates file path")
	fs.StringVar(&f.file, "templates", "", "extra templates file (YAML or JSON)")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.assetPath, "asset-path", "", "print stylesheet/template override directory")
	fs.StringVar(&f.baseURL, "asset-base-url", "", "URL prefix for image ids")
}

// parseBuildFlags parses build command flags and returns positional args.
// Usage and parse errors go to w.
func parseBuildFlags(args []string, w io.Writer) (*buildFlags, []string, error) {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(w)
	f := &buildFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.format, "format", "f", "", "output format: deck, print, print-pdf")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "print-pdf timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.fetchTimeout, "fetch-timeout", "", "per-image fetch timeout (e.g., 10s)")
	fs.BoolVar(&f.freeTier, "free", false, "watermark every content slide")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addAuthorFlags(fs, &f.author)
	addTemplateFlags(fs, &f.template)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printBuildUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	f.freeTierSet = fs.Changed("free")

	return f, fs.Args(), nil
}

// parseTemplatesFlags parses templates command flags.
func parseTemplatesFlags(args []string, w io.Writer) (*templateFlags, *commonFlags, error) {
	fs := flag.NewFlagSet("templates", flag.ContinueOnError)
	fs.SetOutput(w)
	tf := &templateFlags{}
	cf := &commonFlags{}

	fs.StringVar(&tf.file, "templates", "", "extra templates file (YAML or JSON)")
	fs.StringVarP(&cf.config, "config", "c", "", "config file name or path")
	fs.Usage = func() { printTemplatesUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return tf, cf, nil
}

// mergeFlags applies CLI flag values over config (CLI wins when set).
// The template override is not merged: it outranks the document's own
// template, while config only supplies a default.
func mergeFlags(f *buildFlags, cfg *config.Config) {
	if f.output != "" {
		cfg.Output.DefaultDir = f.output
	}
	if f.format != "" {
		cfg.Output.Format = f.format
	}
	if f.workers > 0 {
		cfg.Workers = f.workers
	}
	if f.timeout != "" {
		cfg.Render.Timeout = f.timeout
	}
	if f.fetchTimeout != "" {
		cfg.Fetch.Timeout = f.fetchTimeout
	}
	if f.freeTierSet {
		cfg.Render.FreeTier = f.freeTier
	}

	// Author
	if f.author.name != "" {
		cfg.Author.Name = f.author.name
	}
	if f.author.org != "" {
		cfg.Author.Organization = f.author.org
	}

	// Templates and assets
	if f.template.file != "" {
		cfg.Template.File = f.template.file
	}
	if f.assets.assetPath != "" {
		cfg.Assets.BasePath = f.assets.assetPath
	}
	if f.assets.baseURL != "" {
		cfg.Assets.BaseURL = f.assets.baseURL
	}
}
