package serializer

import (
	"slices"
	"strings"
)

// Tree is a nested set of relation names built from include paths.
// "author.employer,comments" becomes {author: {employer: {}}, comments: {}}.
type Tree map[string]Tree

// ParseIncludes builds a tree from dotted include paths. Empty segments are
// ignored.
func ParseIncludes(paths []string) Tree {
	tree := Tree{}
	for _, path := range paths {
		node := tree
		for _, segment := range strings.Split(path, ".") {
			segment = strings.TrimSpace(segment)
			if segment == "" {
				break
			}
			child, ok := node[segment]
			if !ok {
				child = Tree{}
				node[segment] = child
			}
			node = child
		}
	}
	return tree
}

// Names returns the relation names at this level, sorted.
func (t Tree) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Paths returns the dotted paths of every node in the tree, sorted.
func (t Tree) Paths() []string {
	var paths []string
	for _, name := range t.Names() {
		paths = append(paths, name)
		for _, sub := range t[name].Paths() {
			paths = append(paths, name+"."+sub)
		}
	}
	return paths
}
