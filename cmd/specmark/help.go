package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: specmark <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert Markdown or HTML files to HTML with permalinks (default)")
	fmt.Fprintln(w, "  serve      Run the HTTP conversion API")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  doctor     Check configuration and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'specmark help <command>' for details on a specific command.")
}

// printPermalinkUsage prints the flags shared by convert, serve and config.
func printPermalinkUsage(w io.Writer) {
	fmt.Fprintln(w, "Permalinks:")
	fmt.Fprintln(w, "      --permalinks            Add permalinks to h2-h6 headings")
	fmt.Fprintln(w, "      --no-permalinks         Disable permalinks even if configured")
	fmt.Fprintln(w, "      --permalink-symbol <s>  Link content (default \"§\", max 16 bytes)")
	fmt.Fprintln(w, "      --permalink-edge        Place the link flush, without spacer")
	fmt.Fprintln(w, "      --permalink-hide        Show the link only on hover or focus")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Assets:")
	fmt.Fprintln(w, "      --asset-path <dir>      Directory with templates/permalinks.css")
	fmt.Fprintln(w, "      --stylesheet <href>     Stylesheet linked from Markdown output (repeatable)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show debug logs and timing")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: specmark [convert] <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown and HTML files to HTML, adding heading permalinks.")
	fmt.Fprintln(w, "Markdown sources produce {name}.html; HTML sources are rewritten in place")
	fmt.Fprintln(w, "unless --output is set. HTML files generated from a sibling Markdown source")
	fmt.Fprintln(w, "are skipped when converting a directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The permalink stylesheet is placed before the first <link> in <head>.")
	fmt.Fprintln(w, "Documents generated from Markdown only have one when --stylesheet is set.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    .md, .markdown, .html or .htm file, or a directory")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output file or directory")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	printPermalinkUsage(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: specmark serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run the HTTP API. POST a document to /v1/convert with Content-Type")
	fmt.Fprintln(w, "text/html or text/markdown; query parameters permalinks, symbol, edge")
	fmt.Fprintln(w, "and hide override the configured options.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --addr <host:port>      Listen address (default \":8080\")")
	fmt.Fprintln(w, "  -w, --workers <n>           Pooled converters (0 = auto)")
	fmt.Fprintln(w)
	printPermalinkUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "config":
		fmt.Fprintln(env.Stdout, "Usage: specmark config [flags]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Print the effective configuration as YAML. Accepts the convert flags.")
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: specmark doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check configuration, assets and environment.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: specmark version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: specmark help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
