package organizer

import (
	"maps"
	"slices"
)

// NodeKind tags a resolved node.
type NodeKind string

const (
	NodeFolder   NodeKind = "folder"
	NodeResource NodeKind = "resource"
	// NodeOrphan is a child id that is neither a folder nor a known resource.
	NodeOrphan NodeKind = "orphan"
	// NodeCycle marks a folder that already appears among its own ancestors.
	// Its children are not expanded.
	NodeCycle NodeKind = "cycle"
	// NodeShared marks a folder that was already expanded elsewhere in the
	// view. Its children are not expanded again.
	NodeShared NodeKind = "shared"
)

// Node is one element of a resolved tree.
type Node struct {
	ID       string    `json:"id" yaml:"id"`
	Kind     NodeKind  `json:"kind" yaml:"kind"`
	Name     string    `json:"name,omitempty" yaml:"name,omitempty"`
	Resource *Resource `json:"resource,omitempty" yaml:"resource,omitempty"`
	Children []*Node   `json:"children,omitempty" yaml:"children,omitempty"`
}

// ResolvedView is a view expanded into a tree.
type ResolvedView struct {
	ID    string         `json:"id" yaml:"id"`
	Name  string         `json:"name" yaml:"name"`
	Prefs map[string]any `json:"prefs,omitempty" yaml:"prefs,omitempty"`
	Root  *Node          `json:"root" yaml:"root"`
}

// ResolvedOrganizer is the read-only, display form of an Organizer.
type ResolvedOrganizer struct {
	Views map[string]*ResolvedView `json:"views" yaml:"views"`
}

// Resolve expands every view of o. It never fails and never modifies o, so
// concurrent calls on the same snapshot are safe.
func Resolve(o *Organizer) *ResolvedOrganizer {
	out := &ResolvedOrganizer{Views: make(map[string]*ResolvedView, len(o.Views))}
	for id, v := range o.Views {
		if v == nil {
			continue
		}
		out.Views[id] = ResolveView(v, o.Resources)
	}
	return out
}

// ViewIDs returns the resolved view ids with the default view first and the
// rest sorted, matching Organizer.ViewIDs.
func (r *ResolvedOrganizer) ViewIDs() []string {
	ids := make([]string, 0, len(r.Views))
	if _, ok := r.Views[DefaultViewID]; ok {
		ids = append(ids, DefaultViewID)
	}
	for _, id := range slices.Sorted(maps.Keys(r.Views)) {
		if id != DefaultViewID {
			ids = append(ids, id)
		}
	}
	return ids
}

// ResolveView expands a single view against resources.
func ResolveView(v *View, resources Resources) *ResolvedView {
	rv := &ResolvedView{ID: v.ID, Name: v.Name, Prefs: v.Prefs}
	root := v.rootID()
	if _, ok := v.Folder(root); !ok {
		rv.Root = &Node{ID: root, Kind: NodeOrphan}
		return rv
	}
	r := resolver{
		view:      v,
		resources: resources,
		ancestors: make(map[string]bool),
		expanded:  make(map[string]bool),
	}
	rv.Root = r.node(root)
	return rv
}

type resolver struct {
	view      *View
	resources Resources
	ancestors map[string]bool
	// expanded holds every folder already expanded in this view. A folder
	// is expanded at most once.
	expanded map[string]bool
}

func (r *resolver) node(id string) *Node {
	e := classify(r.view, r.resources, id)
	switch e.Kind {
	case KindResource:
		return &Node{ID: id, Kind: NodeResource, Name: e.Resource.Name, Resource: e.Resource}
	case KindOrphan:
		return &Node{ID: id, Kind: NodeOrphan}
	}

	f := e.Folder
	if r.ancestors[id] {
		return &Node{ID: id, Kind: NodeCycle, Name: f.Name}
	}
	if r.expanded[id] {
		return &Node{ID: id, Kind: NodeShared, Name: f.Name}
	}
	r.expanded[id] = true
	r.ancestors[id] = true
	defer delete(r.ancestors, id)

	n := &Node{ID: id, Kind: NodeFolder, Name: f.Name, Children: make([]*Node, 0, len(f.Children))}
	for _, child := range f.Children {
		n.Children = append(n.Children, r.node(child))
	}
	return n
}

// Walk visits n and its descendants depth first, parents before children.
// Returning false from fn skips the node's children.
func (n *Node) Walk(fn func(n *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Orphans returns the ids of orphan nodes in the tree, in display order.
func (n *Node) Orphans() []string {
	var ids []string
	n.Walk(func(c *Node, _ int) bool {
		if c.Kind == NodeOrphan {
			ids = append(ids, c.ID)
		}
		return true
	})
	return ids
}
