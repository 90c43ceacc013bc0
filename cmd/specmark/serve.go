package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/alnah/go-specmark"
	"github.com/alnah/go-specmark/internal/api"
	"github.com/alnah/go-specmark/internal/hints"
)

// Server timeouts.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// ErrListen indicates the server could not bind its address.
var ErrListen = errors.New("failed to listen")

// runServe starts the HTTP API and blocks until ctx is canceled, then
// drains in-flight requests.
func runServe(ctx context.Context, flags *serveFlags, env *Environment) error {
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
	mergePermalinkFlags(flags.permalinks, flags.set, cfg)
	mergeAssetFlags(flags.assets, cfg)
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if err := validateMerged(cfg); err != nil {
		return err
	}

	log := newServerLogger(env, flags.common)

	pool := specmark.NewConverterPool(specmark.ResolvePoolSize(workers), converterOptions(cfg, log)...)
	defer pool.Close()

	conv, err := pool.Acquire()
	if err != nil {
		return converterInitError(err, cfg)
	}
	pool.Release(conv)

	addr := cfg.ServerAddr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("%w on %s: %v%s", ErrListen, addr, err, hints.ForListen(addr))
	}

	srv := &http.Server{
		Handler:           api.NewServer(pool, permalinksFrom(cfg), log),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	log.Info("listening", "addr", ln.Addr().String(), "workers", pool.Size())

	select {
	case err := <-serveErr:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-serveErr; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

// newServerLogger returns a JSON logger on stdout. --verbose adds debug
// output, --quiet keeps warnings and errors only.
func newServerLogger(env *Environment, f commonFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case f.verbose:
		level = slog.LevelDebug
	case f.quiet:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewJSONHandler(env.Stdout, &slog.HandlerOptions{Level: level}))
}
