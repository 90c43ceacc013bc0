package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// permalinkFlags holds the permalink switches. Only flags that were given
// override the config, see mergePermalinkFlags.
type permalinkFlags struct {
	include  bool
	disabled bool
	symbol   string
	edge     bool
	hide     bool
}

// assetFlags holds asset-related flags.
type assetFlags struct {
	assetPath   string
	stylesheets []string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common     commonFlags
	output     string
	workers    int
	permalinks permalinkFlags
	assets     assetFlags

	set func(name string) bool
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common     commonFlags
	addr       string
	workers    int
	permalinks permalinkFlags
	assets     assetFlags

	set func(name string) bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addPermalinkFlags adds permalink flags to a FlagSet.
func addPermalinkFlags(fs *flag.FlagSet, f *permalinkFlags) {
	fs.BoolVar(&f.include, "permalinks", false, "add permalinks to h2-h6 headings")
	fs.BoolVar(&f.disabled, "no-permalinks", false, "disable permalinks even if configured")
	fs.StringVar(&f.symbol, "permalink-symbol", "", "permalink content (default \"§\")")
	fs.BoolVar(&f.edge, "permalink-edge", false, "place permalinks flush, without spacer")
	fs.BoolVar(&f.hide, "permalink-hide", false, "hide permalinks until the heading is hovered")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory (templates/permalinks.css)")
	fs.StringSliceVar(&f.stylesheets, "stylesheet", nil, "stylesheet href linked from Markdown output (repeatable)")
}

// newConvertFlagSet registers the convert flags on a new FlagSet.
func newConvertFlagSet(f *convertFlags, usage io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usage)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addPermalinkFlags(fs, &f.permalinks)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printConvertUsage(usage) }
	f.set = changed(fs)
	return fs
}

// newServeFlagSet registers the serve flags on a new FlagSet.
func newServeFlagSet(f *serveFlags, usage io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(usage)

	fs.StringVar(&f.addr, "addr", "", "listen address (default \":8080\")")
	fs.IntVarP(&f.workers, "workers", "w", 0, "pooled converters (0 = auto)")

	addCommonFlags(fs, &f.common)
	addPermalinkFlags(fs, &f.permalinks)
	addAssetFlags(fs, &f.assets)

	fs.Usage = func() { printServeUsage(usage) }
	f.set = changed(fs)
	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f, usage)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, usage io.Writer) (*serveFlags, error) {
	f := &serveFlags{}
	fs := newServeFlagSet(f, usage)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, usageErrorf("serve takes no arguments, got %q", fs.Arg(0))
	}
	return f, nil
}

// changed reports whether a flag was set on the command line.
func changed(fs *flag.FlagSet) func(string) bool {
	return func(name string) bool {
		return fs.Changed(name)
	}
}
