package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCountFile_GoSource(t *testing.T) {
	src := `// Package demo does things.
package demo

/* block
   comment */
func Demo(n int) int {
	if n > 0 && n < 10 {
		return n
	}
	return 0
}
`
	path := writeFile(t, t.TempDir(), "demo.go", src)
	m, err := CountFile(path, "Go")
	if err != nil {
		t.Fatal(err)
	}
	if m.Lines != 11 {
		t.Errorf("lines = %d, want 11", m.Lines)
	}
	if m.CommentLines != 3 {
		t.Errorf("comment lines = %d, want 3", m.CommentLines)
	}
	if m.BlankLines != 1 {
		t.Errorf("blank lines = %d, want 1", m.BlankLines)
	}
	// One if plus one && on the branch line.
	if m.Complexity != 2 {
		t.Errorf("complexity = %d, want 2", m.Complexity)
	}
	if m.Bytes != len(src) {
		t.Errorf("bytes = %d, want %d", m.Bytes, len(src))
	}
}

func TestCountFile_PythonComments(t *testing.T) {
	src := "# header\n\nif x:\n    pass\n"
	path := writeFile(t, t.TempDir(), "a.py", src)
	m, err := CountFile(path, "Python")
	if err != nil {
		t.Fatal(err)
	}
	if m.CommentLines != 1 || m.BlankLines != 1 || m.Lines != 4 {
		t.Errorf("got %+v, want 4 lines, 1 comment, 1 blank", m)
	}
}

func TestCountFile_BinaryKeepsBytesOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.bin")
	if err := os.WriteFile(path, []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := CountFile(path, "")
	if err != nil {
		t.Fatal(err)
	}
	if m.Bytes != 8 {
		t.Errorf("bytes = %d, want 8", m.Bytes)
	}
	if m.Lines != 0 {
		t.Errorf("binary file should report no lines, got %d", m.Lines)
	}
}

func TestCountFile_Missing(t *testing.T) {
	if _, err := CountFile(filepath.Join(t.TempDir(), "absent.go"), "Go"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDetectLanguage(t *testing.T) {
	cases := map[string]string{
		"main.go":    "Go",
		"app.TSX":    "TypeScript",
		"styles.css": "CSS",
		"Makefile":   "",
		"noext":      "",
	}
	for name, want := range cases {
		if got := DetectLanguage(name); got != want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestCountBranches_WordBoundaries(t *testing.T) {
	if got := countBranches("modifier := iffy + elsewhere"); got != 0 {
		t.Errorf("substrings must not count as branches, got %d", got)
	}
	if got := countBranches("if a || b && c { for i := range x {"); got != 4 {
		t.Errorf("expected if + || + && + for = 4, got %d", got)
	}
}
