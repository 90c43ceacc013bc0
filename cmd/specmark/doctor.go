package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-specmark"
	"github.com/alnah/go-specmark/internal/config"
	"github.com/alnah/go-specmark/internal/fileutil"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Config   configInfo `json:"config"`
	Assets   assetInfo  `json:"assets"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// configInfo holds config discovery results.
type configInfo struct {
	Path       string `json:"path,omitempty"`
	Permalinks bool   `json:"permalinks"`
	ServerAddr string `json:"server_addr"`
}

// assetInfo holds stylesheet template results.
type assetInfo struct {
	BasePath string `json:"base_path,omitempty"`
	OK       bool   `json:"ok"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
	MaxProcs     int  `json:"gomaxprocs"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor(loadEnvConfig())

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(envCfg *envConfig) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	cfg := checkConfig(result, envCfg)
	checkAssets(result, cfg)
	checkEnvironment(result)
	checkServerAddr(result)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkConfig loads the config the CLI would use and records where it came from.
func checkConfig(result *doctorResult, envCfg *envConfig) *config.Config {
	name := envCfg.ConfigPath
	if name == "" {
		name = defaultConfigName
	}
	if fileutil.IsFilePath(name) {
		result.Config.Path = name
	} else {
		for _, p := range config.SearchPaths(name) {
			if fileutil.FileExists(p) {
				result.Config.Path = p
				break
			}
		}
	}

	cfg, err := resolveConfig("", envCfg)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		cfg = config.DefaultConfig()
		applyEnvConfig(envCfg, cfg)
	}

	result.Config.Permalinks = cfg.IncludePermalinks
	result.Config.ServerAddr = cfg.ServerAddr()
	return cfg
}

// checkAssets builds a converter to verify the stylesheet template compiles.
func checkAssets(result *doctorResult, cfg *config.Config) {
	result.Assets.BasePath = cfg.Assets.BasePath

	var opts []specmark.Option
	if cfg.Assets.BasePath != "" {
		opts = append(opts, specmark.WithAssetPath(cfg.Assets.BasePath))
	}
	if _, err := specmark.NewConverter(opts...); err != nil {
		result.Errors = append(result.Errors, converterInitError(err, cfg).Error())
		return
	}
	result.Assets.OK = true
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// checkServerAddr warns when serve would bind loopback inside a container.
func checkServerAddr(result *doctorResult) {
	if !result.Env.Container {
		return
	}
	host, port, err := net.SplitHostPort(result.Config.ServerAddr)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("server.addr %q is not host:port", result.Config.ServerAddr))
		return
	}
	if host == "localhost" || strings.HasPrefix(host, "127.") {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("server.addr %s is loopback inside a container. Use :%s", result.Config.ServerAddr, port))
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	// Explicit override (highest priority)
	if os.Getenv("SPECMARK_CONTAINER") == "1" {
		return true, "SPECMARK_CONTAINER=1"
	}
	// Docker
	if fileutil.FileExists("/.dockerenv") {
		return true, "/.dockerenv"
	}
	// Podman / systemd-nspawn / general container indicator
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	// Kubernetes
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies system requirements.
func checkSystem(result *doctorResult) {
	result.System.MaxProcs = runtime.GOMAXPROCS(0)

	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "specmark-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "specmark doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config")
	if r.Config.Path != "" {
		fmt.Fprintf(w, "  [OK] File: %s\n", r.Config.Path)
	} else {
		fmt.Fprintln(w, "  [OK] File: none (defaults)")
	}
	fmt.Fprintf(w, "  [OK] Permalinks: %t\n", r.Config.Permalinks)
	fmt.Fprintf(w, "  [OK] Server address: %s\n", r.Config.ServerAddr)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Assets")
	source := "embedded"
	if r.Assets.BasePath != "" {
		source = r.Assets.BasePath
	}
	if r.Assets.OK {
		fmt.Fprintf(w, "  [OK] Stylesheet template: %s\n", source)
	} else {
		fmt.Fprintf(w, "  [ERROR] Stylesheet template: %s\n", source)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	fmt.Fprintf(w, "  [OK] GOMAXPROCS: %d\n", r.System.MaxProcs)
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
