package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alnah/go-specmark/internal/api"
)

// syncBuffer is a bytes.Buffer safe for concurrent writes and reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// startServe runs the serve command in the background and returns the
// bound address once the server logs it.
func startServe(t *testing.T, args ...string) (addr string, stdout *syncBuffer, cancel func() error) {
	t.Helper()

	stdout = &syncBuffer{}
	env := &Environment{Stdout: stdout, Stderr: io.Discard}
	flags, err := parseServeFlags(args, io.Discard)
	if err != nil {
		t.Fatalf("parseServeFlags() error = %v", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServe(ctx, flags, env) }()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if addr = listeningAddr(stdout.String()); addr != "" {
			break
		}
		select {
		case err := <-done:
			stop()
			t.Fatalf("runServe() exited early: %v", err)
		case <-time.After(10 * time.Millisecond):
		}
	}
	if addr == "" {
		stop()
		t.Fatalf("server did not start, output %q", stdout.String())
	}

	return addr, stdout, func() error {
		stop()
		select {
		case err := <-done:
			return err
		case <-time.After(15 * time.Second):
			return errors.New("server did not shut down")
		}
	}
}

// listeningAddr extracts addr from the JSON "listening" log line.
func listeningAddr(logs string) string {
	sc := bufio.NewScanner(strings.NewReader(logs))
	for sc.Scan() {
		var entry struct {
			Msg  string `json:"msg"`
			Addr string `json:"addr"`
		}
		if json.Unmarshal(sc.Bytes(), &entry) == nil && entry.Msg == "listening" {
			return entry.Addr
		}
	}
	return ""
}

// ---------------------------------------------------------------------------
// TestRunServe - HTTP API lifecycle
// ---------------------------------------------------------------------------

func TestRunServe_ServesAndShutsDown(t *testing.T) {
	t.Parallel()

	addr, stdout, stop := startServe(t, "--addr", "127.0.0.1:0", "--permalinks", "--permalink-symbol", "¶", "-w", "2")

	resp, err := http.Get("http://" + addr + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health status = %d", resp.StatusCode)
	}

	resp, err = http.Post("http://"+addr+"/v1/convert", "text/html", strings.NewReader(`<h2 id="x">X</h2>`))
	if err != nil {
		t.Fatalf("POST /v1/convert: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("convert status = %d, body %s", resp.StatusCode, body)
	}
	if got := resp.Header.Get(api.PermalinkCountHeader); got != "1" {
		t.Errorf("%s = %q, want 1", api.PermalinkCountHeader, got)
	}
	if !strings.Contains(string(body), "<span>¶</span>") {
		t.Errorf("configured symbol not applied: %s", body)
	}

	if err := stop(); err != nil {
		t.Errorf("runServe() error = %v", err)
	}

	logs := stdout.String()
	if !strings.Contains(logs, `"msg":"request"`) {
		t.Errorf("expected request log lines, got %s", logs)
	}
	if !strings.Contains(logs, `"msg":"shutting down"`) {
		t.Errorf("expected shutdown log line, got %s", logs)
	}
	if !strings.Contains(logs, `"workers":2`) {
		t.Errorf("expected workers in listening line, got %s", logs)
	}
}

func TestRunServe_QuietHidesRequests(t *testing.T) {
	t.Parallel()

	stdout := &syncBuffer{}
	env := &Environment{Stdout: stdout, Stderr: io.Discard}
	flags, err := parseServeFlags([]string{"--addr", "127.0.0.1:0", "-q"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := runServe(ctx, flags, env); err != nil {
		t.Fatalf("runServe() error = %v", err)
	}
	if stdout.String() != "" {
		t.Errorf("quiet server should not log info lines, got %q", stdout.String())
	}
}

func TestRunServe_Errors(t *testing.T) {
	t.Parallel()

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserving a port: %v", err)
	}
	t.Cleanup(func() { _ = busy.Close() })

	tests := []struct {
		name     string
		args     []string
		wantErr  error
		wantHint string
		wantCode int
	}{
		{
			name:     "address in use",
			args:     []string{"--addr", busy.Addr().String()},
			wantErr:  ErrListen,
			wantHint: "is free or use --addr",
			wantCode: ExitGeneral,
		},
		{
			name:     "malformed address",
			args:     []string{"--addr", "not-an-address"},
			wantErr:  ErrListen,
			wantHint: "use --addr host:port",
			wantCode: ExitGeneral,
		},
		{
			name:     "bad asset path",
			args:     []string{"--addr", "127.0.0.1:0", "--asset-path", "/nonexistent/assets/xyz"},
			wantCode: ExitUsage,
		},
		{
			name:     "symbol too long",
			args:     []string{"--permalink-symbol", strings.Repeat("x", 20)},
			wantCode: ExitUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			flags, err := parseServeFlags(tt.args, io.Discard)
			if err != nil {
				t.Fatalf("parseServeFlags() error = %v", err)
			}
			env := &Environment{Stdout: io.Discard, Stderr: io.Discard}

			err = runServe(context.Background(), flags, env)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantHint != "" && !strings.Contains(err.Error(), tt.wantHint) {
				t.Errorf("error = %q, want hint %q", err, tt.wantHint)
			}
			if code := exitCodeFor(err); code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
		})
	}
}

func TestNewServerLogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		flags     commonFlags
		wantDebug bool
		wantInfo  bool
	}{
		{name: "default", wantInfo: true},
		{name: "verbose", flags: commonFlags{verbose: true}, wantDebug: true, wantInfo: true},
		{name: "quiet", flags: commonFlags{quiet: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := newServerLogger(&Environment{Stdout: &buf}, tt.flags)
			log.Debug("dbg")
			log.Info("inf")

			out := buf.String()
			if got := strings.Contains(out, `"msg":"dbg"`); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, `"msg":"inf"`); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
		})
	}
}
