package envfind

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
)

// Node is one entry of a rendered file tree. File is empty for directories.
type Node struct {
	Name     string
	Children []*Node
	File     string
}

// BuildTree arranges relative file paths into a tree rooted at ".".
func BuildTree(paths []string) *Node {
	root := &Node{Name: "."}

	for _, p := range paths {
		parts := strings.Split(filepath.ToSlash(p), "/")
		cur := root
		for i, part := range parts {
			if i == len(parts)-1 {
				cur.Children = append(cur.Children, &Node{Name: part, File: p})
				break
			}
			var next *Node
			for _, ch := range cur.Children {
				if ch.Name == part && ch.File == "" {
					next = ch
					break
				}
			}
			if next == nil {
				next = &Node{Name: part}
				cur.Children = append(cur.Children, next)
			}
			cur = next
		}
	}

	sortTree(root)
	return root
}

func sortTree(node *Node) {
	if len(node.Children) == 0 {
		return
	}

	sort.Slice(node.Children, func(i, j int) bool {
		ci, cj := node.Children[i], node.Children[j]
		fileI := ci.File != ""
		fileJ := cj.File != ""
		if fileI != fileJ {
			return fileI
		}
		return ci.Name < cj.Name
	})

	for _, ch := range node.Children {
		sortTree(ch)
	}
}

// RenderTree writes root's children to w, one node per line, with
// box-drawing connectors. The root itself is not printed.
func RenderTree(w io.Writer, root *Node) {
	renderChildren(w, root, "")
}

func renderChildren(w io.Writer, node *Node, prefix string) {
	for i, ch := range node.Children {
		conn, nextPrefix := "├─ ", prefix+"│  "
		if i == len(node.Children)-1 {
			conn, nextPrefix = "└─ ", prefix+"   "
		}
		fmt.Fprintln(w, prefix+conn+ch.Name)
		renderChildren(w, ch, nextPrefix)
	}
}
