// Package model defines the file tree and configuration types shared by the
// scanner, the layout engine, and the UI.
package model

import (
	"fmt"
	"strings"
	"time"
)

// NodeKind distinguishes files from directories
type NodeKind string

const (
	KindFile NodeKind = "file"
	KindDir  NodeKind = "dir"
)

// IsValid returns true if the kind is a recognized value
func (k NodeKind) IsValid() bool {
	return k == KindFile || k == KindDir
}

// Metrics holds the raw per-file measurements collected by the scanner.
// All fields are optional; absent values are zero and resolved per size mode.
type Metrics struct {
	Lines        int `json:"lines,omitempty"`
	Bytes        int `json:"bytes,omitempty"`
	Complexity   int `json:"complexity,omitempty"`
	CommentLines int `json:"comment_lines,omitempty"`
	BlankLines   int `json:"blank_lines,omitempty"`
}

// CodeLines returns the number of lines that are neither comment nor blank.
func (m Metrics) CodeLines() int {
	code := m.Lines - m.CommentLines - m.BlankLines
	if code < 0 {
		return 0
	}
	return code
}

// TreeNode is one node of the scanned repository tree. Paths are relative,
// forward-slash separated, and unique within a tree; the root has path "".
// Directories carry no intrinsic size: their displayed area is always an
// aggregate over descendants.
type TreeNode struct {
	Name         string      `json:"name"`
	Path         string      `json:"path"`
	Kind         NodeKind    `json:"kind"`
	Metrics      Metrics     `json:"metrics,omitempty"`
	Language     string      `json:"language,omitempty"`
	LastModified time.Time   `json:"last_modified,omitempty"`
	Children     []*TreeNode `json:"children,omitempty"`
}

// IsDir returns true for directory nodes.
func (n *TreeNode) IsDir() bool {
	return n.Kind == KindDir
}

// Walk visits n and every descendant in depth-first pre-order.
func (n *TreeNode) Walk(fn func(*TreeNode)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// FileCount returns the number of file nodes in the subtree rooted at n.
func (n *TreeNode) FileCount() int {
	count := 0
	n.Walk(func(node *TreeNode) {
		if node.Kind == KindFile {
			count++
		}
	})
	return count
}

// Find returns the node with the given path, or nil if absent.
func (n *TreeNode) Find(path string) *TreeNode {
	if n == nil {
		return nil
	}
	if n.Path == path {
		return n
	}
	// Paths are hierarchical, so only descend into matching prefixes.
	for _, c := range n.Children {
		if c.Path == path || strings.HasPrefix(path, c.Path+"/") || c.Path == "" {
			if found := c.Find(path); found != nil {
				return found
			}
		}
	}
	return nil
}

// Validate checks structural invariants of the subtree rooted at n.
func (n *TreeNode) Validate() error {
	if !n.Kind.IsValid() {
		return fmt.Errorf("invalid node kind %q at %q", n.Kind, n.Path)
	}
	if n.Kind == KindFile && len(n.Children) > 0 {
		return fmt.Errorf("file node %q has children", n.Path)
	}
	seen := make(map[string]bool, len(n.Children))
	for _, c := range n.Children {
		if seen[c.Path] {
			return fmt.Errorf("duplicate child path %q under %q", c.Path, n.Path)
		}
		seen[c.Path] = true
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}
