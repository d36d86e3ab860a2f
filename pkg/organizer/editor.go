package organizer

import (
	"slices"
	"strings"
)

// editor applies one structural change to a view it exclusively owns. Every
// method validates all preconditions before touching the view, so a returned
// error leaves the view exactly as it was.
type editor struct {
	op        string
	view      *View
	resources Resources
}

// edit prepares an editor over a private copy of the given view.
func edit(o *Organizer, viewID, op string) (*editor, error) {
	v, ok := o.View(viewID)
	if !ok {
		return nil, mutationErr(op, viewID, ErrNotFound, viewID)
	}
	e := &editor{op: op, view: v.Clone(), resources: o.Resources}
	e.view.ID = viewID
	if e.view.RootFolder() == nil {
		root := e.view.rootID()
		e.view.Entries[root] = NewFolder(root, root)
	}
	return e, nil
}

func (e *editor) fail(err error, ids ...string) error {
	return mutationErr(e.op, e.view.ID, err, ids...)
}

func (e *editor) isRoot(id string) bool {
	return id == e.view.rootID()
}

// referenced reports whether id is listed as a child of any folder.
func (e *editor) referenced(id string) bool {
	for _, f := range e.view.Entries {
		if f != nil && slices.Contains(f.Children, id) {
			return true
		}
	}
	return false
}

// requireFolder resolves id to a folder of the view.
func (e *editor) requireFolder(id string) (*Folder, error) {
	if id == "" {
		return nil, e.fail(ErrInvalidID, id)
	}
	if f, ok := e.view.Folder(id); ok {
		return f, nil
	}
	if _, ok := e.resources[id]; ok || e.referenced(id) {
		return nil, e.fail(ErrNotAFolder, id)
	}
	return nil, e.fail(ErrNotFound, id)
}

// inSubtree reports whether target is folder id itself or lies anywhere
// below it. A visited set guards against cycles in corrupt state.
func (e *editor) inSubtree(id, target string) bool {
	visited := make(map[string]bool)
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == target {
			return true
		}
		if visited[cur] {
			continue
		}
		visited[cur] = true
		if f, ok := e.view.Folder(cur); ok {
			stack = append(stack, f.Children...)
		}
	}
	return false
}

// subtreeFolders returns id and every folder below it, excluding the root.
func (e *editor) subtreeFolders(id string) []string {
	var out []string
	visited := make(map[string]bool)
	stack := []string{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur] || e.isRoot(cur) {
			continue
		}
		visited[cur] = true
		f, ok := e.view.Folder(cur)
		if !ok {
			continue
		}
		out = append(out, cur)
		stack = append(stack, f.Children...)
	}
	return out
}

// adoptable validates ids that are about to become children of dest and
// returns them without duplicates, in first-seen order.
func (e *editor) adoptable(ids []string, dest string) ([]string, error) {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		switch {
		case id == "":
			return nil, e.fail(ErrInvalidID, id)
		case e.isRoot(id):
			return nil, e.fail(ErrReservedName, id)
		case id == dest:
			return nil, e.fail(ErrSelfParent, id)
		}
		if _, ok := e.view.Folder(id); ok {
			if e.inSubtree(id, dest) {
				return nil, e.fail(ErrCycle, id, dest)
			}
		} else if _, ok := e.resources[id]; !ok && !e.referenced(id) {
			return nil, e.fail(ErrNotFound, id)
		}
		out = append(out, id)
	}
	return out, nil
}

// detach removes every id in set from every folder's children. Removing it
// from all folders, not only the first parent found, restores the single
// parent rule on state that was already corrupt.
func (e *editor) detach(set map[string]bool) {
	for _, f := range e.view.Entries {
		if f == nil {
			continue
		}
		f.Children = slices.DeleteFunc(f.Children, func(id string) bool { return set[id] })
	}
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func validName(name string) bool {
	return strings.TrimSpace(name) != ""
}

// createFolder reports false when the folder already exists under parent.
func (e *editor) createFolder(parentID, folderID, name string, children []string) (bool, error) {
	switch {
	case folderID == "":
		return false, e.fail(ErrInvalidID, folderID)
	case e.isRoot(folderID):
		return false, e.fail(ErrReservedName, folderID)
	case folderID == parentID:
		return false, e.fail(ErrSelfParent, folderID)
	}
	parent, err := e.requireFolder(parentID)
	if err != nil {
		return false, err
	}
	if _, exists := e.view.Folder(folderID); exists {
		if slices.Contains(parent.Children, folderID) {
			return false, nil
		}
		return false, e.fail(ErrDuplicateID, folderID)
	}
	if _, ok := e.resources[folderID]; ok || e.referenced(folderID) {
		return false, e.fail(ErrDuplicateID, folderID)
	}
	if !validName(name) {
		return false, e.fail(ErrEmptyName, folderID)
	}
	// The new folder lands under parent, so anything that would contain
	// parent after the move is rejected as a cycle.
	kids, err := e.adoptable(children, folderID)
	if err != nil {
		return false, err
	}
	for _, id := range kids {
		if _, ok := e.view.Folder(id); ok && e.inSubtree(id, parentID) {
			return false, e.fail(ErrCycle, id, parentID)
		}
	}

	set := toSet(kids)
	insertAt := -1
	remaining := make([]string, 0, len(parent.Children)+1)
	for _, id := range parent.Children {
		if set[id] {
			if insertAt < 0 {
				insertAt = len(remaining)
			}
			continue
		}
		remaining = append(remaining, id)
	}
	e.detach(set)
	if insertAt < 0 {
		insertAt = len(remaining)
	}
	parent.Children = slices.Insert(remaining, insertAt, folderID)
	e.view.Entries[folderID] = NewFolder(folderID, name, kids...)
	return true, nil
}

func (e *editor) renameFolder(folderID, name string) error {
	if e.isRoot(folderID) {
		return e.fail(ErrReservedName, folderID)
	}
	f, err := e.requireFolder(folderID)
	if err != nil {
		return err
	}
	if !validName(name) {
		return e.fail(ErrEmptyName, folderID)
	}
	f.Name = name
	return nil
}

func (e *editor) setFolderChildren(folderID string, children []string) error {
	f, err := e.requireFolder(folderID)
	if err != nil {
		return err
	}
	kids, err := e.adoptable(children, folderID)
	if err != nil {
		return err
	}
	// Dropping a folder from the list would leave it without a parent.
	keep := toSet(kids)
	var dropped []string
	for _, id := range f.Children {
		if _, isFolder := e.view.Folder(id); isFolder && !keep[id] {
			dropped = append(dropped, id)
		}
	}
	if len(dropped) > 0 {
		return e.fail(ErrInvariant, dropped...)
	}
	e.detach(keep)
	f.Children = kids
	return nil
}

// moveToFolder detaches ids and inserts them into dest at position. A
// negative position appends.
func (e *editor) moveToFolder(ids []string, destID string, position int) error {
	dest, err := e.requireFolder(destID)
	if err != nil {
		return err
	}
	moved, err := e.adoptable(ids, destID)
	if err != nil {
		return err
	}
	e.detach(toSet(moved))
	if position < 0 || position > len(dest.Children) {
		position = len(dest.Children)
	}
	dest.Children = slices.Insert(dest.Children, position, moved...)
	return nil
}

func (e *editor) deleteEntries(ids []string) error {
	var folders []string
	targets := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		switch {
		case id == "":
			return e.fail(ErrInvalidID, id)
		case e.isRoot(id):
			return e.fail(ErrReservedName, id)
		}
		if _, ok := e.view.Folder(id); ok {
			folders = append(folders, e.subtreeFolders(id)...)
		} else if !e.referenced(id) {
			return e.fail(ErrNotFound, id)
		}
		targets = append(targets, id)
	}

	set := toSet(targets)
	for _, id := range folders {
		delete(e.view.Entries, id)
		set[id] = true
	}
	e.detach(set)
	return nil
}

// DeleteEntries removes ids from the view in place. The receiver must be a
// private copy owned by the caller; use the package-level DeleteEntries to
// leave shared snapshots untouched.
func (v *View) DeleteEntries(ids ...string) error {
	if v.RootFolder() == nil {
		return mutationErr("delete entries", v.ID, ErrNotFound, v.rootID())
	}
	e := &editor{op: "delete entries", view: v}
	return e.deleteEntries(ids)
}
