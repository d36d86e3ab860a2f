package service

import (
	"github.com/nasdeck/nasdeck/internal/id"
	"github.com/nasdeck/nasdeck/pkg/organizer"
)

// Action is one structural change. Apply must not modify its input.
type Action interface {
	Op() string
	Apply(o *organizer.Organizer) (*organizer.Organizer, error)
}

func viewOrDefault(v string) string {
	if v == "" {
		return organizer.DefaultViewID
	}
	return v
}

// CreateFolder creates a folder. An empty ID is filled with a generated one
// when the action is applied.
type CreateFolder struct {
	View     string   `json:"view,omitempty"`
	Parent   string   `json:"parent,omitempty"`
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name"`
	Children []string `json:"children,omitempty"`
}

func (a *CreateFolder) Op() string { return "create folder" }

func (a *CreateFolder) Apply(o *organizer.Organizer) (*organizer.Organizer, error) {
	if a.ID == "" {
		a.ID = id.Folder()
	}
	parent := a.Parent
	if parent == "" {
		parent = organizer.RootID
	}
	return organizer.CreateFolder(o, viewOrDefault(a.View), parent, a.ID, a.Name, a.Children)
}

// RenameFolder renames a folder.
type RenameFolder struct {
	View   string `json:"view,omitempty"`
	Folder string `json:"folder"`
	Name   string `json:"name"`
}

func (a *RenameFolder) Op() string { return "rename folder" }

func (a *RenameFolder) Apply(o *organizer.Organizer) (*organizer.Organizer, error) {
	return organizer.RenameFolder(o, viewOrDefault(a.View), a.Folder, a.Name)
}

// SetChildren replaces a folder's children.
type SetChildren struct {
	View     string   `json:"view,omitempty"`
	Folder   string   `json:"folder"`
	Children []string `json:"children"`
}

func (a *SetChildren) Op() string { return "set children" }

func (a *SetChildren) Apply(o *organizer.Organizer) (*organizer.Organizer, error) {
	return organizer.SetFolderChildren(o, viewOrDefault(a.View), a.Folder, a.Children)
}

// MoveToFolder appends entries to a folder.
type MoveToFolder struct {
	View string   `json:"view,omitempty"`
	IDs  []string `json:"ids"`
	Dest string   `json:"dest"`
}

func (a *MoveToFolder) Op() string { return "move to folder" }

func (a *MoveToFolder) Apply(o *organizer.Organizer) (*organizer.Organizer, error) {
	return organizer.MoveEntriesToFolder(o, viewOrDefault(a.View), a.IDs, a.Dest)
}

// MoveToPosition moves entries into a folder at a position.
type MoveToPosition struct {
	View     string   `json:"view,omitempty"`
	IDs      []string `json:"ids"`
	Dest     string   `json:"dest"`
	Position int      `json:"position"`
}

func (a *MoveToPosition) Op() string { return "move to position" }

func (a *MoveToPosition) Apply(o *organizer.Organizer) (*organizer.Organizer, error) {
	return organizer.MoveItemsToPosition(o, viewOrDefault(a.View), a.IDs, a.Dest, a.Position)
}

// DeleteEntries removes entries, cascading through folders.
type DeleteEntries struct {
	View string   `json:"view,omitempty"`
	IDs  []string `json:"ids"`
}

func (a *DeleteEntries) Op() string { return "delete entries" }

func (a *DeleteEntries) Apply(o *organizer.Organizer) (*organizer.Organizer, error) {
	return organizer.DeleteEntries(o, viewOrDefault(a.View), a.IDs)
}

// AddView creates a view. An empty ID is generated.
type AddView struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

func (a *AddView) Op() string { return "add view" }

func (a *AddView) Apply(o *organizer.Organizer) (*organizer.Organizer, error) {
	if a.ID == "" {
		a.ID = id.View()
	}
	return organizer.AddView(o, a.ID, a.Name)
}

// RemoveView deletes a view.
type RemoveView struct {
	ID string `json:"id"`
}

func (a *RemoveView) Op() string { return "remove view" }

func (a *RemoveView) Apply(o *organizer.Organizer) (*organizer.Organizer, error) {
	return organizer.RemoveView(o, a.ID)
}

// SetPrefs replaces a view's preferences.
type SetPrefs struct {
	View  string         `json:"view,omitempty"`
	Prefs map[string]any `json:"prefs"`
}

func (a *SetPrefs) Op() string { return "set prefs" }

func (a *SetPrefs) Apply(o *organizer.Organizer) (*organizer.Organizer, error) {
	return organizer.SetViewPrefs(o, viewOrDefault(a.View), a.Prefs)
}
