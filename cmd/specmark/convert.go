package main

import (
	"context"
	"fmt"
	"io"

	"github.com/alnah/go-specmark"
	"github.com/alnah/go-specmark/internal/config"
	"github.com/alnah/go-specmark/internal/fileutil"
	"github.com/alnah/go-specmark/internal/hints"
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	workers, err := resolveWorkers(flags.workers, envCfg)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergePermalinkFlags(flags.permalinks, flags.set, cfg)
	mergeAssetFlags(flags.assets, cfg)
	if err := validateMerged(cfg); err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg.Input.DefaultDir)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg.Output.DefaultDir)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown or HTML files found in %s", ErrNoInput, inputPath)
	}

	if !flags.common.quiet {
		warnMissingStylesheet(env.Stderr, cfg, files)
	}

	logger := newLogger(env.Stderr, flags.common.verbose)
	poolSize := specmark.ResolvePoolSize(workers)
	logger.Debug("starting conversion", "files", len(files), "workers", poolSize)

	pool := env.NewPool(poolSize, converterOptions(cfg, logger)...)
	defer pool.Close()

	// Fail fast on asset problems instead of once per file.
	conv, err := pool.Acquire()
	if err != nil {
		return converterInitError(err, cfg)
	}
	pool.Release(conv)

	results := convertBatch(ctx, pool, files, permalinksFrom(cfg))

	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d conversion(s) failed", failedCount)
	}

	return nil
}

// resolveInputPath returns the positional input or the configured default.
func resolveInputPath(args []string, defaultDir string) (string, error) {
	switch {
	case len(args) > 1:
		return "", usageErrorf("expected one input, got %d", len(args))
	case len(args) == 1:
		return args[0], nil
	case defaultDir != "":
		return defaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir returns the --output flag or the configured default.
func resolveOutputDir(flagOutput, defaultDir string) string {
	if flagOutput != "" {
		return flagOutput
	}
	return defaultDir
}

// warnMissingStylesheet reports that edge or hide placement cannot apply to
// generated Markdown documents: their head has no <link> to place the
// permalink stylesheet before.
func warnMissingStylesheet(w io.Writer, cfg *config.Config, files []FileToConvert) {
	if !cfg.IncludePermalinks || len(cfg.Stylesheets) > 0 {
		return
	}
	if !cfg.PermalinkEdge && !cfg.PermalinkHide {
		return
	}
	for _, f := range files {
		if f.Kind == fileutil.KindMarkdown {
			fmt.Fprintf(w, "warning: documents generated from Markdown have no stylesheet link, so the permalink stylesheet is not inserted%s\n",
				hints.ForMissingStylesheet())
			return
		}
	}
}
