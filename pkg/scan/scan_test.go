package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"reposcope/pkg/model"
)

func buildFixtureRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	mustMkdir(t, filepath.Join(dir, "src"))
	mustMkdir(t, filepath.Join(dir, ".git"))
	mustMkdir(t, filepath.Join(dir, "node_modules", "lodash"))

	writeFile(t, dir, "main.go", "package main\n\nfunc main() {}\n")
	writeFile(t, filepath.Join(dir, "src"), "util.go", "package src\n// helper\nfunc If() {}\n")
	writeFile(t, filepath.Join(dir, ".git"), "HEAD", "ref: refs/heads/main\n")
	writeFile(t, filepath.Join(dir, "node_modules", "lodash"), "index.js", "module.exports = 1\n")
	writeFile(t, dir, ".hidden", "secret\n")
	return dir
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatal(err)
	}
}

func TestScan_BuildsTree(t *testing.T) {
	dir := buildFixtureRepo(t)
	root, err := Scan(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := root.Validate(); err != nil {
		t.Fatalf("scanned tree invalid: %v", err)
	}

	main := root.Find("main.go")
	if main == nil {
		t.Fatal("main.go missing from tree")
	}
	if main.Language != "Go" {
		t.Errorf("language = %q, want Go", main.Language)
	}
	if main.Metrics.Lines != 3 {
		t.Errorf("main.go lines = %d, want 3", main.Metrics.Lines)
	}
	if main.LastModified.IsZero() {
		t.Error("file should carry its mtime")
	}

	util := root.Find("src/util.go")
	if util == nil {
		t.Fatal("src/util.go missing from tree")
	}
	if util.Metrics.CommentLines != 1 {
		t.Errorf("util.go comment lines = %d, want 1", util.Metrics.CommentLines)
	}
}

func TestScan_SkipsVCSAndHidden(t *testing.T) {
	dir := buildFixtureRepo(t)
	root, err := Scan(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{".git", "node_modules", ".hidden"} {
		if root.Find(path) != nil {
			t.Errorf("%s should be skipped", path)
		}
	}
}

func TestScan_Deterministic(t *testing.T) {
	dir := buildFixtureRepo(t)
	a, err := Scan(context.Background(), dir, Options{})
	if err != nil {
		t.Fatal(err)
	}
	b, err := Scan(context.Background(), dir, Options{Workers: 1})
	if err != nil {
		t.Fatal(err)
	}
	var pathsA, pathsB []string
	a.Walk(func(n *model.TreeNode) { pathsA = append(pathsA, n.Path) })
	b.Walk(func(n *model.TreeNode) { pathsB = append(pathsB, n.Path) })
	if len(pathsA) != len(pathsB) {
		t.Fatalf("scan sizes differ: %d vs %d", len(pathsA), len(pathsB))
	}
	for i := range pathsA {
		if pathsA[i] != pathsB[i] {
			t.Errorf("order differs at %d: %q vs %q", i, pathsA[i], pathsB[i])
		}
	}
}

func TestScan_UsesCache(t *testing.T) {
	dir := buildFixtureRepo(t)
	cache, err := OpenCache(filepath.Join(t.TempDir(), "metrics.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	first, err := Scan(context.Background(), dir, Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	second, err := Scan(context.Background(), dir, Options{Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	f1 := first.Find("main.go")
	f2 := second.Find("main.go")
	if f1.Metrics != f2.Metrics {
		t.Errorf("cached metrics differ: %+v vs %+v", f1.Metrics, f2.Metrics)
	}
}
