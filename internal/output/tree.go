package output

import (
	"sort"
	"strings"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// noteColumn is where package notes start.
	noteColumn = 30
)

// PackageNode is one segment of a dotted Python package name.
type PackageNode struct {
	Name     string
	Note     string
	Package  bool
	Children []*PackageNode
}

// RenderPackageTree renders dotted package names as a tree under root.
// notes maps a package name to a short annotation printed next to it.
// Intermediate segments that are not packages themselves are shown but
// marked as namespaces.
func RenderPackageTree(root string, packages []string, notes map[string]string) string {
	if len(packages) == 0 {
		return ""
	}

	top := &PackageNode{Name: root}
	for _, pkg := range packages {
		current := top
		for _, part := range strings.Split(pkg, ".") {
			current = current.child(part)
		}
		current.Package = true
		current.Note = notes[pkg]
	}
	top.sort()

	var sb strings.Builder
	sb.WriteString(StyleAction.Render(root + "/"))
	sb.WriteString("\n")
	for i, c := range top.Children {
		c.render(&sb, "", i == len(top.Children)-1)
	}
	return sb.String()
}

func (n *PackageNode) child(name string) *PackageNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	c := &PackageNode{Name: name}
	n.Children = append(n.Children, c)
	return c
}

func (n *PackageNode) sort() {
	sort.Slice(n.Children, func(i, j int) bool {
		return n.Children[i].Name < n.Children[j].Name
	})
	for _, c := range n.Children {
		c.sort()
	}
}

func (n *PackageNode) render(sb *strings.Builder, prefix string, last bool) {
	connector := treeEdge
	if last {
		connector = treeLast
	}

	line := prefix + connector + StyleNoun.Render(n.Name)
	note := n.Note
	if !n.Package {
		note = "(namespace)"
	}
	if note != "" {
		// Pad on the unstyled width so notes line up with and without color.
		width := len([]rune(prefix+connector)) + len(n.Name)
		padding := max(noteColumn-width, 2)
		line += strings.Repeat(" ", padding) + StyleDim.Render(note)
	}
	sb.WriteString(line)
	sb.WriteString("\n")

	childPrefix := prefix + treeVert
	if last {
		childPrefix = prefix + treeSpace
	}
	for i, c := range n.Children {
		c.render(sb, childPrefix, i == len(n.Children)-1)
	}
}
