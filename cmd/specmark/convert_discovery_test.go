package main

import (
	"errors"
	"path/filepath"
	"sort"
	"testing"

	"github.com/alnah/go-specmark"
	"github.com/alnah/go-specmark/internal/fileutil"
)

// ---------------------------------------------------------------------------
// TestDiscoverFiles - Input discovery
// ---------------------------------------------------------------------------

func TestDiscoverFiles_SingleFile(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"doc.md":       "A",
		"Page.HTML":    "<p>B</p>",
		"notes.txt":    "C",
		"readme.mdown": "D",
	})

	tests := []struct {
		name     string
		input    string
		output   string
		want     string
		wantKind int
		wantErr  error
	}{
		{name: "markdown next to source", input: "doc.md", want: "doc.html", wantKind: fileutil.KindMarkdown},
		{name: "html in place", input: "Page.HTML", want: "Page.HTML", wantKind: fileutil.KindHTML},
		{name: "explicit output file", input: "doc.md", output: "out/custom.html", want: "out/custom.html", wantKind: fileutil.KindMarkdown},
		{name: "output directory", input: "doc.md", output: "out", want: "out/doc.html", wantKind: fileutil.KindMarkdown},
		{name: "html into output directory", input: "Page.HTML", output: "out", want: "out/Page.html", wantKind: fileutil.KindHTML},
		{name: "unsupported extension", input: "notes.txt", wantErr: ErrUnsupportedInput},
		{name: "unknown markdown variant", input: "readme.mdown", wantErr: ErrUnsupportedInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			output := tt.output
			if output != "" {
				output = filepath.Join(dir, output)
			}

			files, err := discoverFiles(filepath.Join(dir, tt.input), output)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("discoverFiles() error = %v", err)
			}
			if len(files) != 1 {
				t.Fatalf("got %d files, want 1", len(files))
			}
			if want := filepath.Join(dir, tt.want); files[0].OutputPath != want {
				t.Errorf("OutputPath = %q, want %q", files[0].OutputPath, want)
			}
			if files[0].Kind != tt.wantKind {
				t.Errorf("Kind = %d, want %d", files[0].Kind, tt.wantKind)
			}
		})
	}
}

func TestDiscoverFiles_Directory(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"index.md":             "A",
		"guide/intro.markdown": "B",
		"guide/api/ref.htm":    "<p>C</p>",
		"guide/api/image.png":  "D",
		"guide/api/notes.txt":  "E",
		"guide/deep/more/x.md": "F",
	})
	out := filepath.Join(t.TempDir(), "site")

	files, err := discoverFiles(dir, out)
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}

	var got []string
	for _, f := range files {
		rel, err := filepath.Rel(out, f.OutputPath)
		if err != nil {
			t.Fatalf("output %s not under %s", f.OutputPath, out)
		}
		got = append(got, filepath.ToSlash(rel))
	}
	sort.Strings(got)

	want := []string{"guide/api/ref.html", "guide/deep/more/x.html", "guide/intro.html", "index.html"}
	if len(got) != len(want) {
		t.Fatalf("outputs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("outputs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDiscoverFiles_SkipsGeneratedOutputs(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"a.md":            "A",
		"a.html":          "<p>generated</p>",
		"guide/b.MD":      "B",
		"guide/b.html":    "<p>generated</p>",
		"c.html":          "<p>hand written</p>",
		"public/old.html": "<p>earlier output</p>",
	})

	tests := []struct {
		name   string
		output string
		want   []string
	}{
		{name: "in place", want: []string{"a.md", "c.html", "guide/b.MD", "public/old.html"}},
		{name: "output inside input", output: "public", want: []string{"a.md", "c.html", "guide/b.MD"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			output := tt.output
			if output != "" {
				output = filepath.Join(dir, output)
			}

			files, err := discoverFiles(dir, output)
			if err != nil {
				t.Fatalf("discoverFiles() error = %v", err)
			}

			var got []string
			for _, f := range files {
				rel, _ := filepath.Rel(dir, f.InputPath)
				got = append(got, filepath.ToSlash(rel))
			}
			sort.Strings(got)

			if len(got) != len(tt.want) {
				t.Fatalf("inputs = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("inputs[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDiscoverFiles_ExplicitHTMLWithMarkdownSibling(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"a.md": "A", "a.html": "<p>A</p>"})
	files, err := discoverFiles(filepath.Join(dir, "a.html"), "")
	if err != nil {
		t.Fatalf("discoverFiles() error = %v", err)
	}
	if len(files) != 1 || files[0].Kind != fileutil.KindHTML {
		t.Errorf("files = %+v, want the named HTML file", files)
	}
}

func TestDiscoverFiles_DirectoryErrors(t *testing.T) {
	t.Parallel()

	t.Run("output file for directory input", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{"a.md": "A"})
		_, err := discoverFiles(dir, filepath.Join(dir, "out.html"))
		if !errors.Is(err, ErrUsage) {
			t.Errorf("error = %v, want ErrUsage", err)
		}
	})

	t.Run("same output from two sources", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, map[string]string{"a.md": "A", "a.markdown": "B"})
		_, err := discoverFiles(dir, "")
		if !errors.Is(err, ErrOutputConflict) {
			t.Errorf("error = %v, want ErrOutputConflict", err)
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles(filepath.Join(t.TempDir(), "nope"), "")
		if exitCodeFor(err) != ExitIO {
			t.Errorf("exit code = %d, want %d (err %v)", exitCodeFor(err), ExitIO, err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestValidateWorkers - Worker bounds
// ---------------------------------------------------------------------------

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{-1, true},
		{0, false},
		{1, false},
		{specmark.MaxPoolSize, false},
		{specmark.MaxPoolSize + 1, true},
	}

	for _, tt := range tests {
		err := validateWorkers(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error should wrap ErrInvalidWorkerCount", tt.n)
		}
	}
}

func TestSourceInput(t *testing.T) {
	t.Parallel()

	p := specmark.Permalinks{Include: true, Symbol: "#"}

	md := sourceInput(fileutil.KindMarkdown, "# x", p)
	if md.Markdown != "# x" || md.HTML != "" {
		t.Errorf("markdown input = %+v", md)
	}

	html := sourceInput(fileutil.KindHTML, "<p>x</p>", p)
	if html.HTML != "<p>x</p>" || html.Markdown != "" {
		t.Errorf("html input = %+v", html)
	}
	if html.Permalinks == nil || *html.Permalinks != p {
		t.Errorf("Permalinks = %+v, want %+v", html.Permalinks, p)
	}
}
