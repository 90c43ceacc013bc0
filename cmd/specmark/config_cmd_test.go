package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-specmark/internal/config"
	"github.com/alnah/go-specmark/internal/yamlutil"
)

// ---------------------------------------------------------------------------
// TestRunConfig - Effective configuration output
// ---------------------------------------------------------------------------

func TestRunConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "site.yaml")
	writeConfig(t, path, "includePermalinks: true\npermalinkSymbol: \"#\"\nstylesheets:\n  - base.css\n")

	var stdout, stderr bytes.Buffer
	env := &Environment{Stdout: &stdout, Stderr: &stderr}

	err := runConfig([]string{"-c", path, "--permalink-hide", "-o", "public"}, env)
	if err != nil {
		t.Fatalf("runConfig() error = %v", err)
	}

	var got config.Config
	if err := yamlutil.UnmarshalStrict(stdout.Bytes(), &got); err != nil {
		t.Fatalf("output is not a valid config: %v\n%s", err, stdout.String())
	}

	want := config.PermalinksConfig{IncludePermalinks: true, PermalinkSymbol: "#", PermalinkHide: true}
	if got.PermalinksConfig != want {
		t.Errorf("PermalinksConfig = %+v, want %+v", got.PermalinksConfig, want)
	}
	if got.Output.DefaultDir != "public" {
		t.Errorf("Output.DefaultDir = %q, want public", got.Output.DefaultDir)
	}
	if len(got.Stylesheets) != 1 || got.Stylesheets[0] != "base.css" {
		t.Errorf("Stylesheets = %v", got.Stylesheets)
	}
	if got.Server.Addr != config.DefaultServerAddr {
		t.Errorf("Server.Addr = %q, want default", got.Server.Addr)
	}
	if !strings.Contains(stdout.String(), "includePermalinks: true") {
		t.Errorf("top-level permalink keys expected, got\n%s", stdout.String())
	}
}

func TestRunConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "positional argument", args: []string{"doc.md"}, wantErr: ErrUsage},
		{name: "missing config", args: []string{"-c", "./nowhere/site.yaml"}, wantErr: config.ErrConfigNotFound},
		{name: "empty stylesheet", args: []string{"--stylesheet", " "}, wantErr: config.ErrFieldEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := &Environment{Stdout: &bytes.Buffer{}, Stderr: &bytes.Buffer{}}
			err := runConfig(tt.args, env)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
