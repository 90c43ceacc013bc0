package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/alnah/go-specmark"
	"github.com/alnah/go-specmark/internal/config"
	"github.com/alnah/go-specmark/internal/hints"
)

// defaultConfigName is looked up silently when neither --config nor
// SPECMARK_CONFIG names a file.
const defaultConfigName = "specmark"

// resolveConfig loads the config named by --config, SPECMARK_CONFIG or
// the default name, then fills unset values from the environment.
// A missing default config is not an error.
func resolveConfig(flagConfig string, env *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = env.ConfigPath
	}

	explicit := name != ""
	if !explicit {
		name = defaultConfigName
	}

	cfg, err := config.LoadConfig(name)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, config.ErrConfigNotFound):
		cfg = config.DefaultConfig()
	case errors.Is(err, config.ErrConfigNotFound):
		return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
	default:
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = config.DefaultServerAddr
	}
	applyEnvConfig(env, cfg)
	return cfg, nil
}

// mergePermalinkFlags applies permalink flags given on the command line.
// --no-permalinks wins over --permalinks and config.
func mergePermalinkFlags(f permalinkFlags, set func(string) bool, cfg *config.Config) {
	if set("permalinks") {
		cfg.IncludePermalinks = f.include
	}
	if set("permalink-symbol") {
		cfg.PermalinkSymbol = f.symbol
	}
	if set("permalink-edge") {
		cfg.PermalinkEdge = f.edge
	}
	if set("permalink-hide") {
		cfg.PermalinkHide = f.hide
	}
	if f.disabled {
		cfg.IncludePermalinks = false
	}
}

// mergeAssetFlags applies asset flags. CLI values override config values.
func mergeAssetFlags(f assetFlags, cfg *config.Config) {
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
	if len(f.stylesheets) > 0 {
		cfg.Stylesheets = f.stylesheets
	}
}

// validateMerged re-validates cfg after flags were merged into it.
func validateMerged(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrFieldTooLong) && len(cfg.PermalinkSymbol) > config.MaxSymbolLength {
			return fmt.Errorf("%w%s", err, hints.ForInvalidSymbol(config.MaxSymbolLength))
		}
		return err
	}
	return nil
}

// permalinksFrom maps the config options onto the converter input.
func permalinksFrom(cfg *config.Config) specmark.Permalinks {
	return specmark.Permalinks{
		Include: cfg.IncludePermalinks,
		Symbol:  cfg.PermalinkSymbol,
		Edge:    cfg.PermalinkEdge,
		Hide:    cfg.PermalinkHide,
	}
}

// converterOptions builds the options shared by every pooled converter.
func converterOptions(cfg *config.Config, logger *slog.Logger) []specmark.Option {
	opts := []specmark.Option{specmark.WithLogger(logger)}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, specmark.WithAssetPath(cfg.Assets.BasePath))
	}
	if len(cfg.Stylesheets) > 0 {
		opts = append(opts, specmark.WithStylesheets(cfg.Stylesheets...))
	}
	return opts
}

// resolveWorkers returns the worker count: flag, then SPECMARK_WORKERS,
// then 0 (auto).
func resolveWorkers(flagWorkers int, env *envConfig) (int, error) {
	if err := validateWorkers(flagWorkers); err != nil {
		return 0, err
	}
	if flagWorkers > 0 {
		return flagWorkers, nil
	}
	if err := validateWorkers(env.Workers); err != nil {
		return 0, err
	}
	return env.Workers, nil
}

// converterInitError decorates a pool start-up failure with a hint.
func converterInitError(err error, cfg *config.Config) error {
	if errors.Is(err, specmark.ErrTemplateNotFound) {
		return fmt.Errorf("%w%s", err, hints.ForTemplateNotFound(cfg.Assets.BasePath, specmark.PermalinksTemplate))
	}
	return err
}
