package organizer

import (
	"maps"
	"slices"
)

const (
	// RootID is the reserved id of every view's root folder.
	RootID = "root"

	// DefaultViewID is the view that always exists.
	DefaultViewID = "default"

	// DefaultViewName is the display name given to a freshly created default view.
	DefaultViewName = "Default"

	// TypeFolder is the entry type tag persisted for folder entries.
	TypeFolder = "folder"
)

// Resource is an externally owned item the organizer arranges but never
// creates or deletes. Meta is opaque to this package.
type Resource struct {
	ID   string         `json:"id" yaml:"id"`
	Type string         `json:"type" yaml:"type"`
	Name string         `json:"name" yaml:"name"`
	Meta map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// Resources maps resource id to Resource.
type Resources map[string]Resource

// IDs returns the resource ids in lexical order.
func (r Resources) IDs() []string {
	return slices.Sorted(maps.Keys(r))
}

// Sorted returns the resources ordered by id.
func (r Resources) Sorted() []Resource {
	out := make([]Resource, 0, len(r))
	for _, id := range r.IDs() {
		out = append(out, r[id])
	}
	return out
}

// Folder is a folder entry inside a view. Children holds folder ids and
// resource ids in display order.
type Folder struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Name     string   `json:"name"`
	Children []string `json:"children"`
}

// NewFolder returns a folder entry with its type tag set.
func NewFolder(id, name string, children ...string) *Folder {
	if children == nil {
		children = []string{}
	}
	return &Folder{ID: id, Type: TypeFolder, Name: name, Children: children}
}

func (f *Folder) clone() *Folder {
	c := *f
	c.Children = slices.Clone(f.Children)
	if c.Children == nil {
		c.Children = []string{}
	}
	return &c
}

// View is one named arrangement over the shared resource set.
type View struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Root    string             `json:"root"`
	Entries map[string]*Folder `json:"entries"`
	Prefs   map[string]any     `json:"prefs,omitempty"`
}

// NewView returns a view containing only its root folder.
func NewView(id, name string) *View {
	return &View{
		ID:      id,
		Name:    name,
		Root:    RootID,
		Entries: map[string]*Folder{RootID: NewFolder(RootID, RootID)},
	}
}

// Clone returns a deep copy of the view. Prefs are copied one level deep.
func (v *View) Clone() *View {
	c := &View{
		ID:      v.ID,
		Name:    v.Name,
		Root:    v.Root,
		Entries: make(map[string]*Folder, len(v.Entries)),
	}
	for id, f := range v.Entries {
		if f != nil {
			c.Entries[id] = f.clone()
		}
	}
	if v.Prefs != nil {
		c.Prefs = maps.Clone(v.Prefs)
	}
	return c
}

// RootFolder returns the view's root folder, or nil when the view is corrupt.
func (v *View) RootFolder() *Folder {
	return v.Entries[v.rootID()]
}

// Folder returns the folder with the given id.
func (v *View) Folder(id string) (*Folder, bool) {
	f, ok := v.Entries[id]
	return f, ok && f != nil
}

func (v *View) rootID() string {
	if v.Root == "" {
		return RootID
	}
	return v.Root
}

// Organizer is the aggregate of all resources and all views.
type Organizer struct {
	Resources Resources        `json:"resources"`
	Views     map[string]*View `json:"views"`
}

// New returns an organizer with no resources and a default view holding
// only its root.
func New() *Organizer {
	return &Organizer{
		Resources: Resources{},
		Views:     map[string]*View{DefaultViewID: NewView(DefaultViewID, DefaultViewName)},
	}
}

// Clone returns a deep copy of the organizer. Resource values are shared
// since the organizer treats them as immutable; their map is copied.
func (o *Organizer) Clone() *Organizer {
	c := o.shallow()
	for id, v := range o.Views {
		if v != nil {
			c.Views[id] = v.Clone()
		}
	}
	return c
}

// shallow copies the organizer's maps while sharing views and resources.
func (o *Organizer) shallow() *Organizer {
	c := &Organizer{
		Resources: maps.Clone(o.Resources),
		Views:     maps.Clone(o.Views),
	}
	if c.Resources == nil {
		c.Resources = Resources{}
	}
	if c.Views == nil {
		c.Views = map[string]*View{}
	}
	return c
}

// View returns the view with the given id.
func (o *Organizer) View(id string) (*View, bool) {
	v, ok := o.Views[id]
	return v, ok && v != nil
}

// ViewIDs returns view ids with the default view first and the rest sorted.
func (o *Organizer) ViewIDs() []string {
	ids := make([]string, 0, len(o.Views))
	if _, ok := o.Views[DefaultViewID]; ok {
		ids = append(ids, DefaultViewID)
	}
	for _, id := range slices.Sorted(maps.Keys(o.Views)) {
		if id != DefaultViewID {
			ids = append(ids, id)
		}
	}
	return ids
}

// withView returns a shallow copy of o whose view id is replaced by v.
func (o *Organizer) withView(v *View) *Organizer {
	c := o.shallow()
	c.Views[v.ID] = v
	return c
}
