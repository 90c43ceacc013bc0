package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/alnah/go-specmark"
	"github.com/alnah/go-specmark/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"field empty", config.ErrFieldEmpty, ExitUsage},
		{"invalid symbol", specmark.ErrInvalidSymbol, ExitUsage},
		{"template not found", specmark.ErrTemplateNotFound, ExitUsage},
		{"invalid asset path", specmark.ErrInvalidAssetPath, ExitUsage},
		{"unsupported input", ErrUnsupportedInput, ExitUsage},
		{"output conflict", ErrOutputConflict, ExitUsage},
		{"invalid worker count", ErrInvalidWorkerCount, ExitUsage},
		{"wrapped config parse", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("something broke"), ExitGeneral},
		{"html conversion", specmark.ErrHTMLConversion, ExitGeneral},
		{"listen", ErrListen, ExitGeneral},
		{"converter init", ErrConverterInit, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Error("exit codes must follow Unix conventions")
	}
	if ExitIO >= 126 {
		t.Errorf("custom exit code %d collides with shell-reserved range", ExitIO)
	}
}

func TestUsageErrorf(t *testing.T) {
	t.Parallel()

	err := usageErrorf("bad %s", "thing")
	if !errors.Is(err, ErrUsage) {
		t.Errorf("usageErrorf should wrap ErrUsage, got %v", err)
	}
	if err.Error() != "invalid usage: bad thing" {
		t.Errorf("Error() = %q", err.Error())
	}
}
