package organizer

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Check verifies the structural invariants of every view and returns all
// violations joined together, each wrapping ErrInvariant. Child ids that
// point at unknown resources are not violations; they resolve as orphans.
func Check(o *Organizer) error {
	var errs []error
	if _, ok := o.View(DefaultViewID); !ok {
		errs = append(errs, fmt.Errorf("%w: default view missing", ErrInvariant))
	}
	for _, id := range o.ViewIDs() {
		v := o.Views[id]
		if v == nil {
			errs = append(errs, fmt.Errorf("%w: view %s is empty", ErrInvariant, id))
			continue
		}
		if v.ID != id {
			errs = append(errs, fmt.Errorf("%w: view %s stored under key %s", ErrInvariant, v.ID, id))
		}
		errs = append(errs, CheckView(v)...)
	}
	return errors.Join(errs...)
}

// CheckView returns the invariant violations of a single view.
func CheckView(v *View) []error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: view %s: %s", ErrInvariant, v.ID, fmt.Sprintf(format, args...)))
	}

	root := v.rootID()
	if _, ok := v.Folder(root); !ok {
		bad("root folder %s missing", root)
		return errs
	}

	parents := make(map[string][]string)
	for _, key := range slices.Sorted(maps.Keys(v.Entries)) {
		f := v.Entries[key]
		if f == nil {
			bad("entry %s is empty", key)
			continue
		}
		if f.ID != key {
			bad("entry %s stored under key %s", f.ID, key)
		}
		seen := make(map[string]bool, len(f.Children))
		for _, c := range f.Children {
			if seen[c] {
				bad("folder %s lists %s twice", key, c)
			}
			seen[c] = true
			if c == root {
				bad("root listed as child of %s", key)
			}
			if _, isFolder := v.Folder(c); isFolder {
				parents[c] = append(parents[c], key)
			}
		}
	}

	// Every non-root folder must hang off the root through exactly one parent.
	reachable := make(map[string]bool)
	var visit func(id string, path map[string]bool)
	visit = func(id string, path map[string]bool) {
		if path[id] {
			bad("cycle through folder %s", id)
			return
		}
		if reachable[id] {
			return
		}
		reachable[id] = true
		path[id] = true
		for _, c := range v.Entries[id].Children {
			if _, ok := v.Folder(c); ok {
				visit(c, path)
			}
		}
		delete(path, id)
	}
	visit(root, make(map[string]bool))

	for _, key := range slices.Sorted(maps.Keys(v.Entries)) {
		if key == root || v.Entries[key] == nil {
			continue
		}
		switch n := len(parents[key]); {
		case n == 0:
			bad("folder %s has no parent", key)
		case n > 1:
			bad("folder %s has %d parents", key, n)
		}
		if !reachable[key] && len(parents[key]) > 0 {
			bad("folder %s is not reachable from root", key)
		}
	}
	return errs
}
