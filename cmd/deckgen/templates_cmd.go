package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	deckgen "github.com/alnah/go-deckgen"
)

// runTemplatesCmd lists template ids, one per line, marking the default.
// Extra templates come from --templates, else template.file of the config.
func runTemplatesCmd(args []string, env *Environment) int {
	tf, cf, err := parseTemplatesFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	if err := listTemplates(tf, cf, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

func listTemplates(tf *templateFlags, cf *commonFlags, env *Environment) error {
	envCfg := loadEnvConfig()
	cfg, err := loadBuildConfig(cf.config, envCfg.ConfigPath)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)

	file := cfg.Template.File
	if tf.file != "" {
		file = tf.file
	}

	var extra []deckgen.Template
	if file != "" {
		if extra, err = deckgen.LoadTemplates(file); err != nil {
			return err
		}
	}

	ids, err := availableTemplateIDs(extra)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == deckgen.DefaultTemplate {
			fmt.Fprintf(env.Stdout, "%s *\n", id)
			continue
		}
		fmt.Fprintln(env.Stdout, id)
	}
	return nil
}
