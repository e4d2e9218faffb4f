package resolve

import "strings"

// Reference is a resolved path node: a name, the descriptor for its
// referent, and whether it is the path's root segment directly under an
// alias.
type Reference struct {
	Name string
	Type TypeDescriptor
	Root bool
}

// PropertyPath is an ordered sequence of resolved references, assembled by
// the caller from left to right as the parser walks one dotted path.
type PropertyPath struct {
	nodes []Reference
}

// NewPropertyPath creates a path seeded with the given references.
func NewPropertyPath(refs ...Reference) *PropertyPath {
	p := &PropertyPath{}
	p.nodes = append(p.nodes, refs...)
	return p
}

// Append adds a resolved reference to the end of the path.
func (p *PropertyPath) Append(ref Reference) {
	p.nodes = append(p.nodes, ref)
}

// Len returns the number of nodes in the path.
func (p *PropertyPath) Len() int {
	return len(p.nodes)
}

// Nodes returns the path's references in order.
func (p *PropertyPath) Nodes() []Reference {
	return p.nodes
}

// First returns the path's root reference.
func (p *PropertyPath) First() Reference {
	return p.nodes[0]
}

// Last returns the path's terminal reference.
func (p *PropertyPath) Last() Reference {
	return p.nodes[len(p.nodes)-1]
}

// NodeNamesWithoutAlias returns the node names excluding alias root
// segments. The result is a fresh slice the caller may extend.
func (p *PropertyPath) NodeNamesWithoutAlias() []string {
	names := make([]string, 0, len(p.nodes))
	for _, ref := range p.nodes {
		if ref.Root {
			continue
		}
		names = append(names, ref.Name)
	}
	return names
}

// String returns the dotted alias-free form of the path.
func (p *PropertyPath) String() string {
	return strings.Join(p.NodeNamesWithoutAlias(), ".")
}
