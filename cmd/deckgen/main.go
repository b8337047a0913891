package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
// A bare input document is shorthand for "deckgen build <input>".
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, cmdArgs := args[1], args[2:]
	if !isCommand(cmd) && looksLikeInput(cmd) {
		cmd, cmdArgs = "build", args[1:]
	}

	switch cmd {
	case "build":
		return runBuildCmd(cmdArgs, env)
	case "templates":
		return runTemplatesCmd(cmdArgs, env)
	case "doctor":
		return runDoctorCmd(cmdArgs, env)
	case "version":
		fmt.Fprintf(env.Stdout, "go-deckgen %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(cmdArgs, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// isCommand reports whether s names a subcommand. Matching is case-sensitive.
func isCommand(s string) bool {
	switch s {
	case "build", "templates", "doctor", "version", "help":
		return true
	}
	return false
}

// looksLikeInput reports whether s has an input document extension.
func looksLikeInput(s string) bool {
	switch filepath.Ext(s) {
	case ".yaml", ".yml", ".json":
		return true
	}
	return false
}

// setMaxProcs sizes GOMAXPROCS to the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func setMaxProcs(verbose bool, w io.Writer) {
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}
