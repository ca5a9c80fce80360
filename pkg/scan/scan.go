// Package scan walks a repository and produces the weighted file tree the
// layout engine consumes. Counting is concurrent and optionally backed by a
// sqlite metric cache.
package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"reposcope/pkg/model"
)

// skipDirs are directory names never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	"target":       true,
	"dist":         true,
	"__pycache__":  true,
}

// Options configures a scan.
type Options struct {
	// Cache, when non-nil, is consulted before counting each file.
	Cache *Cache

	// Workers bounds concurrent file counting; 0 means GOMAXPROCS.
	Workers int

	// Logger receives per-file warnings; nil silences them.
	Logger *log.Logger
}

// Scan walks the tree rooted at dir and returns it as a TreeNode tree with
// per-file metrics. Unreadable files are logged and skipped, not fatal.
func Scan(ctx context.Context, dir string, opts Options) (*model.TreeNode, error) {
	root := &model.TreeNode{Name: filepath.Base(dir), Path: "", Kind: model.KindDir}
	byPath := map[string]*model.TreeNode{"": root}

	type job struct {
		node *model.TreeNode
		abs  string
		info fs.FileInfo
	}
	var jobs []job

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if opts.Logger != nil {
				opts.Logger.Warn("skipping unreadable entry", "path", path, "err", err)
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if skipDirs[name] || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			node := &model.TreeNode{Name: name, Path: rel, Kind: model.KindDir}
			byPath[rel] = node
			attach(byPath, node)
			return nil
		}
		if strings.HasPrefix(name, ".") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			if opts.Logger != nil {
				opts.Logger.Warn("skipping unstatable file", "path", path, "err", err)
			}
			return nil
		}
		node := &model.TreeNode{
			Name:         name,
			Path:         rel,
			Kind:         model.KindFile,
			Language:     DetectLanguage(name),
			LastModified: info.ModTime(),
		}
		byPath[rel] = node
		attach(byPath, node)
		jobs = append(jobs, job{node: node, abs: path, info: info})
		return nil
	})
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	// Counting is CPU/IO bound per file; the cache is shared, so guard it.
	var cacheMu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			size := j.info.Size()
			mtime := j.info.ModTime().UnixNano()

			if opts.Cache != nil {
				cacheMu.Lock()
				m, ok := opts.Cache.Get(j.node.Path, size, mtime)
				cacheMu.Unlock()
				if ok {
					j.node.Metrics = m
					return nil
				}
			}

			m, err := CountFile(j.abs, j.node.Language)
			if err != nil {
				if opts.Logger != nil {
					opts.Logger.Warn("skipping uncountable file", "path", j.node.Path, "err", err)
				}
				return nil
			}
			j.node.Metrics = m

			if opts.Cache != nil {
				cacheMu.Lock()
				err := opts.Cache.Put(j.node.Path, size, mtime, m)
				cacheMu.Unlock()
				if err != nil && opts.Logger != nil {
					opts.Logger.Warn("metric cache write failed", "path", j.node.Path, "err", err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortTree(root)
	return root, nil
}

// attach links node under its parent directory; intermediate directories
// always exist because WalkDir visits parents first.
func attach(byPath map[string]*model.TreeNode, node *model.TreeNode) {
	parentPath := ""
	if i := strings.LastIndex(node.Path, "/"); i >= 0 {
		parentPath = node.Path[:i]
	}
	if parent, ok := byPath[parentPath]; ok {
		parent.Children = append(parent.Children, node)
	}
}

// sortTree orders children by name so scans are deterministic across
// platforms and runs.
func sortTree(n *model.TreeNode) {
	sort.Slice(n.Children, func(i, j int) bool {
		return n.Children[i].Name < n.Children[j].Name
	})
	for _, c := range n.Children {
		if c.Kind == model.KindDir {
			sortTree(c)
		}
	}
}

// DefaultCachePath returns the per-user metric cache location for a scanned
// directory, or "" when no cache dir is available.
func DefaultCachePath(dir string) string {
	base, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	name := strings.ReplaceAll(strings.Trim(filepath.ToSlash(abs), "/"), "/", "_")
	return filepath.Join(base, "reposcope", name+".db")
}
