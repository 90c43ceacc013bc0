package main

import (
	"fmt"

	"github.com/alnah/go-specmark/internal/yamlutil"
)

// runConfig prints the effective configuration as YAML: config file,
// then environment, then flags.
func runConfig(args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return usageErrorf("config takes no arguments, got %q", positional[0])
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := resolveConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergePermalinkFlags(flags.permalinks, flags.set, cfg)
	mergeAssetFlags(flags.assets, cfg)
	if flags.output != "" {
		cfg.Output.DefaultDir = flags.output
	}
	if err := validateMerged(cfg); err != nil {
		return err
	}

	data, err := yamlutil.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(data)
	return err
}
