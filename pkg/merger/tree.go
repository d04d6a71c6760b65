// File: pkg/merger/tree.go
package merger

import (
	"path/filepath"
	"sort"
	"strings"
)

type treeNode struct {
	name     string
	dir      bool
	children map[string]*treeNode
}

// RenderTree renders the block paths as a directory tree rooted at ".":
//
//	.
//	├── docs/
//	│   └── readme.md
//	└── main.go
func RenderTree(blocks []Block) string {
	root := &treeNode{name: ".", dir: true, children: map[string]*treeNode{}}
	for _, b := range blocks {
		parts := strings.Split(strings.TrimPrefix(filepath.ToSlash(filepath.Clean(b.Path)), "/"), "/")
		node := root
		for i, part := range parts {
			child, ok := node.children[part]
			if !ok {
				child = &treeNode{name: part, children: map[string]*treeNode{}}
				node.children[part] = child
			}
			if i < len(parts)-1 {
				child.dir = true
			}
			node = child
		}
	}

	lines := []string{"."}
	lines = appendSubtree(lines, root, "")
	return strings.Join(lines, "\n") + "\n"
}

func appendSubtree(lines []string, node *treeNode, prefix string) []string {
	entries := make([]*treeNode, 0, len(node.children))
	for _, child := range node.children {
		entries = append(entries, child)
	}
	// directories first, then files, alphabetically
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].dir != entries[j].dir {
			return entries[i].dir
		}
		return strings.ToLower(entries[i].name) < strings.ToLower(entries[j].name)
	})

	for i, entry := range entries {
		connector := "├── "
		extension := "│   "
		if i == len(entries)-1 {
			connector = "└── "
			extension = "    "
		}
		if entry.dir {
			lines = append(lines, prefix+connector+entry.name+"/")
			lines = appendSubtree(lines, entry, prefix+extension)
			continue
		}
		lines = append(lines, prefix+connector+entry.name)
	}
	return lines
}
