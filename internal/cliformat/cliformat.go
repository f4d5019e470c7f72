// Package cliformat provides output formatting utilities for CLI display.
//
// Centralises formatting logic so that command implementations focus on
// business logic while this package handles presentation concerns like
// column alignment and table rendering.
package cliformat

import (
	"fmt"
	"io"
	"os"
	"sort"

	"golang.org/x/term"

	"github.com/ojciec-dev/svnparse/internal/store"
)

// Table prints path-change rows with aligned columns, the text rendering
// for `svnparse parse --output table`.
func Table(w io.Writer, changes []store.PathChange) error {
	if len(changes) == 0 {
		fmt.Fprintln(w, "no path changes")
		return nil
	}

	sorted := make([]store.PathChange, len(changes))
	copy(sorted, changes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	maxPath := 4 // minimum "PATH"
	for _, c := range sorted {
		if len(c.Path) > maxPath {
			maxPath = len(c.Path)
		}
	}

	fmt.Fprintf(w, "%-*s  %-10s  %-5s  %-6s  %s\n", maxPath, "PATH", "KIND", "FILE", "DIRECT", "TARGET")
	for _, c := range sorted {
		direct := "no"
		if c.Direct {
			direct = "yes"
		}
		target := "-"
		if c.HasTargetPath {
			target = c.TargetPath
			if c.HasTargetRev {
				target = fmt.Sprintf("%s@%d", target, c.TargetRevision)
			}
		}
		fmt.Fprintf(w, "%-*s  %-10s  %-5s  %-6s  %s\n", maxPath, c.Path, c.ChangeKind, c.FileKind, direct, target)
	}
	return nil
}

// Tree prints the filesystem-delta rows as a directory tree, marking paths
// that no longer exist after the commit (Existed false) as deleted.
func Tree(w io.Writer, entries []store.FSEntry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "empty tree")
		return nil
	}

	type node struct {
		name     string
		children map[string]*node
		isLeaf   bool
		removed  bool
	}
	root := &node{children: make(map[string]*node)}

	for _, e := range entries {
		parts := splitPath(e.Path)
		current := root
		for i, part := range parts {
			if current.children[part] == nil {
				current.children[part] = &node{children: make(map[string]*node)}
			}
			current = current.children[part]
			current.name = part
			if i == len(parts)-1 {
				current.isLeaf = e.FileKind != "DIRECTORY"
				current.removed = !e.Existed
			}
		}
	}

	var printNode func(n *node, prefix string)
	printNode = func(n *node, prefix string) {
		names := make([]string, 0, len(n.children))
		for name := range n.children {
			names = append(names, name)
		}
		sort.Strings(names)

		for i, name := range names {
			child := n.children[name]
			last := i == len(names)-1

			connector := "├── "
			if last {
				connector = "└── "
			}

			suffix := ""
			if !child.isLeaf && len(child.children) > 0 {
				suffix = "/"
			}
			if child.removed {
				suffix += " [deleted]"
			}

			fmt.Fprintf(w, "%s%s%s%s\n", prefix, connector, name, suffix)

			pfx := prefix
			if last {
				pfx += "    "
			} else {
				pfx += "│   "
			}
			if len(child.children) > 0 {
				printNode(child, pfx)
			}
		}
	}

	printNode(root, "")
	return nil
}

func splitPath(p string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(p); i++ {
		if p[i] == '/' {
			if i > start {
				parts = append(parts, p[start:i])
			}
			start = i + 1
		}
	}
	if start < len(p) {
		parts = append(parts, p[start:])
	}
	return parts
}

// Width returns the terminal column width for w, falling back to 80 when w
// is not a terminal (piped output, redirected files).
func Width(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 80
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// ColorEnabled reports whether w is an interactive terminal that supports
// ANSI colour output.
func ColorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
