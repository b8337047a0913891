package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deckgen <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build presentation documents into decks or print documents")
	fmt.Fprintln(w, "  templates  List the available visual templates")
	fmt.Fprintln(w, "  doctor     Report which output formats this machine can build")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "'deckgen <file.yaml>' is shorthand for 'deckgen build <file.yaml>'.")
	fmt.Fprintln(w, "Run 'deckgen help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deckgen build <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build presentation documents (YAML or JSON) into slide decks or print documents.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Document file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input document:")
	fmt.Fprintln(w, "  project:")
	fmt.Fprintln(w, "    title: Quarterly Review")
	fmt.Fprintln(w, "    templateId: corporate")
	fmt.Fprintln(w, "  slides:")
	fmt.Fprintln(w, "    - order: 1")
	fmt.Fprintln(w, "      layoutTag: content_image_right")
	fmt.Fprintln(w, "      title: Results")
	fmt.Fprintln(w, "      bullets: [Revenue up, Churn down]")
	fmt.Fprintln(w, "      imageReference: https://example.com/chart.png")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -f, --format <s>          Format: deck (pptx), print (html, pdf), print-pdf")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Presentation:")
	fmt.Fprintln(w, "      --template <s>        Template id or templates file; overrides the document")
	fmt.Fprintln(w, "      --templates <path>    Extra templates file (YAML or JSON)")
	fmt.Fprintln(w, "      --author <s>          Author name on the opening slide")
	fmt.Fprintln(w, "      --org <s>             Organization name on content slides")
	fmt.Fprintln(w, "      --free                Watermark every content slide")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --asset-path <dir>    Print stylesheet/template overrides")
	fmt.Fprintln(w, "      --asset-base-url <u>  URL prefix for image ids that are not URLs")
	fmt.Fprintln(w, "      --fetch-timeout <d>   Per-image fetch timeout (e.g., 10s)")
	fmt.Fprintln(w, "  -t, --timeout <d>         print-pdf timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show structured build logs")
}

// printTemplatesUsage prints usage for the templates command.
func printTemplatesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: deckgen templates [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List template ids. The default is marked with '*'.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --templates <path>    Extra templates file (YAML or JSON)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "templates":
		printTemplatesUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: deckgen doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Report which output formats can be built: checks templates,\nprint assets (DECKGEN_TEMPLATES_FILE, DECKGEN_ASSET_PATH), the temp\ndirectory, Chrome and container/CI sandbox settings.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: deckgen version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: deckgen help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
