package organizer

import "maps"

// CreateFolder adds folder folderID named name under parentID and moves
// children into it, in the given order. The new folder takes the place of
// the first child it adopts from parentID, or is appended when it adopts
// none from there. Creating a folder that already sits under parentID
// returns o unchanged.
func CreateFolder(o *Organizer, viewID, parentID, folderID, name string, children []string) (*Organizer, error) {
	e, err := edit(o, viewID, "create folder")
	if err != nil {
		return nil, err
	}
	changed, err := e.createFolder(parentID, folderID, name, children)
	if err != nil {
		return nil, err
	}
	if !changed {
		return o, nil
	}
	return o.withView(e.view), nil
}

// RenameFolder changes the display name of a non-root folder.
func RenameFolder(o *Organizer, viewID, folderID, name string) (*Organizer, error) {
	e, err := edit(o, viewID, "rename folder")
	if err != nil {
		return nil, err
	}
	if err := e.renameFolder(folderID, name); err != nil {
		return nil, err
	}
	return o.withView(e.view), nil
}

// SetFolderChildren replaces the children of folderID. Adopted ids are
// removed from whatever folder listed them before. Folder children may be
// reordered but not dropped; delete or move them explicitly.
func SetFolderChildren(o *Organizer, viewID, folderID string, children []string) (*Organizer, error) {
	e, err := edit(o, viewID, "set folder children")
	if err != nil {
		return nil, err
	}
	if err := e.setFolderChildren(folderID, children); err != nil {
		return nil, err
	}
	return o.withView(e.view), nil
}

// MoveEntriesToFolder appends ids to destID in the order given, detaching
// each from its current parent.
func MoveEntriesToFolder(o *Organizer, viewID string, ids []string, destID string) (*Organizer, error) {
	e, err := edit(o, viewID, "move entries")
	if err != nil {
		return nil, err
	}
	if err := e.moveToFolder(ids, destID, -1); err != nil {
		return nil, err
	}
	return o.withView(e.view), nil
}

// MoveItemsToPosition moves ids into destID as one block starting at
// position, counted after the moved ids are removed. Position is clamped to
// the valid range.
func MoveItemsToPosition(o *Organizer, viewID string, ids []string, destID string, position int) (*Organizer, error) {
	e, err := edit(o, viewID, "move to position")
	if err != nil {
		return nil, err
	}
	if position < 0 {
		position = 0
	}
	if err := e.moveToFolder(ids, destID, position); err != nil {
		return nil, err
	}
	return o.withView(e.view), nil
}

// DeleteEntries removes ids from the view. Folders are removed together with
// every folder below them. Resources are never deleted; they only stop being
// referenced.
func DeleteEntries(o *Organizer, viewID string, ids []string) (*Organizer, error) {
	e, err := edit(o, viewID, "delete entries")
	if err != nil {
		return nil, err
	}
	if err := e.deleteEntries(ids); err != nil {
		return nil, err
	}
	return o.withView(e.view), nil
}

// AddView creates an empty view.
func AddView(o *Organizer, id, name string) (*Organizer, error) {
	const op = "add view"
	switch {
	case id == "":
		return nil, mutationErr(op, id, ErrInvalidID, id)
	case !validName(name):
		return nil, mutationErr(op, id, ErrEmptyName, id)
	}
	if _, exists := o.Views[id]; exists {
		return nil, mutationErr(op, id, ErrDuplicateID, id)
	}
	return o.withView(NewView(id, name)), nil
}

// RemoveView deletes a view. The default view cannot be removed.
func RemoveView(o *Organizer, id string) (*Organizer, error) {
	const op = "remove view"
	if id == DefaultViewID {
		return nil, mutationErr(op, id, ErrReservedName, id)
	}
	if _, ok := o.View(id); !ok {
		return nil, mutationErr(op, id, ErrNotFound, id)
	}
	c := o.shallow()
	delete(c.Views, id)
	return c, nil
}

// SetViewPrefs replaces a view's display preferences.
func SetViewPrefs(o *Organizer, id string, prefs map[string]any) (*Organizer, error) {
	v, ok := o.View(id)
	if !ok {
		return nil, mutationErr("set view prefs", id, ErrNotFound, id)
	}
	c := v.Clone()
	c.Prefs = maps.Clone(prefs)
	return o.withView(c), nil
}
