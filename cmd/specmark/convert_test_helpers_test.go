package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alnah/go-specmark"
)

// ---------------------------------------------------------------------------
// Mock Implementations - For unit testing
// ---------------------------------------------------------------------------

// mockConverter is a test double for the CLIConverter interface.
type mockConverter struct {
	mu          sync.Mutex
	calls       []specmark.Input
	convertFunc func(ctx context.Context, input specmark.Input) (*specmark.ConvertResult, error)
}

func newMockConverter() *mockConverter {
	return &mockConverter{}
}

func (m *mockConverter) Convert(ctx context.Context, input specmark.Input) (*specmark.ConvertResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, input)
	m.mu.Unlock()

	if m.convertFunc != nil {
		return m.convertFunc(ctx, input)
	}

	body := input.HTML
	if input.Markdown != "" {
		body = "<p>" + input.Markdown + "</p>"
	}
	return &specmark.ConvertResult{HTML: []byte(body), Permalinks: 1}, nil
}

func (m *mockConverter) getCalls() []specmark.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]specmark.Input{}, m.calls...)
}

// testPool hands out a single mock converter.
type testPool struct {
	mock       *mockConverter
	sem        chan CLIConverter
	size       int
	acquireErr error

	mu     sync.Mutex
	closed bool
	opts   int
}

func newTestPool(mock *mockConverter, size int) *testPool {
	if size < 1 {
		size = 1
	}
	p := &testPool{
		mock: mock,
		sem:  make(chan CLIConverter, size),
		size: size,
	}
	for i := 0; i < size; i++ {
		p.sem <- mock
	}
	return p
}

func (p *testPool) Acquire() (CLIConverter, error) {
	if p.acquireErr != nil {
		return nil, p.acquireErr
	}
	return <-p.sem, nil
}

func (p *testPool) Release(c CLIConverter) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()
	p.sem <- c
}

func (p *testPool) Size() int {
	return p.size
}

func (p *testPool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// testEnv returns an environment with captured output whose NewPool
// returns pool and records how many options it received.
func testEnv(pool *testPool) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Stdout: &stdout,
		Stderr: &stderr,
		NewPool: func(_ int, opts ...specmark.Option) Pool {
			pool.mu.Lock()
			pool.opts = len(opts)
			pool.mu.Unlock()
			return pool
		},
	}
	return env, &stdout, &stderr
}

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, path)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
