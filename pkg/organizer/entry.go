package organizer

// Kind classifies an id within a view.
type Kind string

const (
	// KindFolder is a folder entry of the view.
	KindFolder Kind = "folder"
	// KindResource is a reference to a known resource.
	KindResource Kind = "resource"
	// KindOrphan is an id that is neither a folder nor a known resource.
	KindOrphan Kind = "orphan"
)

// Entry is the classified form of an id inside a view. Exactly one of
// Folder and Resource is set for folders and resources; neither is set for
// orphans.
type Entry struct {
	Kind     Kind
	ID       string
	Folder   *Folder
	Resource *Resource
}

// IsFolder reports whether the entry is a folder.
func (e Entry) IsFolder() bool { return e.Kind == KindFolder }

// Lookup classifies id within the given view. Folders shadow resources that
// share their id. An unknown view classifies everything as an orphan.
func (o *Organizer) Lookup(viewID, id string) Entry {
	v, ok := o.View(viewID)
	if !ok {
		return Entry{Kind: KindOrphan, ID: id}
	}
	return classify(v, o.Resources, id)
}

func classify(v *View, resources Resources, id string) Entry {
	if f, ok := v.Folder(id); ok {
		return Entry{Kind: KindFolder, ID: id, Folder: f}
	}
	if r, ok := resources[id]; ok {
		return Entry{Kind: KindResource, ID: id, Resource: &r}
	}
	return Entry{Kind: KindOrphan, ID: id}
}
