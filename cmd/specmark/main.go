package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// commands lists the subcommand names. Anything else is a convert input.
var commands = map[string]bool{
	"convert": true,
	"serve":   true,
	"config":  true,
	"doctor":  true,
	"version": true,
	"help":    true,
}

func main() {
	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerbose(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}

// runMain dispatches args (including the program name) and returns the
// process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) {
		cmd, rest = "convert", args[1:]
	}

	var err error
	switch cmd {
	case "convert":
		var flags *convertFlags
		var positional []string
		flags, positional, err = parseConvertFlags(rest, env.Stderr)
		if err == nil {
			err = runConvert(ctx, positional, flags, env)
		}
	case "serve":
		var flags *serveFlags
		flags, err = parseServeFlags(rest, env.Stderr)
		if err == nil {
			err = runServe(ctx, flags, env)
		}
	case "config":
		err = runConfig(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "specmark %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(rest, env)
		return ExitSuccess
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(flagError(err))
	}
	return ExitSuccess
}

// isCommand reports whether name is a subcommand.
func isCommand(name string) bool {
	return commands[name]
}

// hasVerbose reports whether args request verbose output before flags are parsed.
func hasVerbose(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// flagError marks pflag parse errors as usage errors.
func flagError(err error) error {
	if exitCodeFor(err) != ExitGeneral {
		return err
	}
	var notExist *flag.NotExistError
	var invalidValue *flag.InvalidValueError
	var invalidSyntax *flag.InvalidSyntaxError
	var valueRequired *flag.ValueRequiredError
	if errors.As(err, &notExist) || errors.As(err, &invalidValue) ||
		errors.As(err, &invalidSyntax) || errors.As(err, &valueRequired) {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return err
}

// notifyContext returns a context that is canceled when a shutdown
// signal is received. Call stop() to release resources.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
