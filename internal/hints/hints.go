// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"fmt"
	"net"
	"strings"

	"github.com/alnah/go-specmark/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-specmark/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-specmark") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForTemplateNotFound returns hints when a custom asset directory lacks a template.
func ForTemplateNotFound(basePath, name string) string {
	if basePath == "" {
		return ""
	}
	return format(fmt.Sprintf("create %s/templates/%s.css or unset assets.basePath", basePath, name))
}

// ForUnsupportedInput returns hints for files with an unknown extension.
func ForUnsupportedInput() string {
	return format("supported extensions: .md, .markdown, .html, .htm")
}

// ForMissingStylesheet returns hints for Markdown documents generated
// without a stylesheet link.
func ForMissingStylesheet() string {
	return format("pass --stylesheet <href> or set stylesheets in the config")
}

// ForInvalidSymbol returns hints for a rejected permalink symbol.
func ForInvalidSymbol(maxBytes int) string {
	return format(fmt.Sprintf("use a short symbol such as ¶ or # (max %d bytes)", maxBytes))
}

// ForListen returns hints for a server that failed to bind or that binds
// loopback inside a container, where the port cannot be published.
func ForListen(addr string) string {
	var hints []string

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return format("use --addr host:port, e.g. --addr :8080")
	}

	if IsInContainer() && (host == "localhost" || strings.HasPrefix(host, "127.")) {
		hints = append(hints, "bind to :"+port+" inside containers")
	}
	hints = append(hints, "check that port "+port+" is free or use --addr")

	return formatHints(hints)
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
