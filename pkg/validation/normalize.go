package validation

import (
	"maps"
	"slices"

	"github.com/nasdeck/nasdeck/pkg/organizer"
)

// normalize repairs the shape of a decoded organizer in place and records
// each repair as a warning. Invariant violations it cannot repair without
// guessing are reported and left alone.
func normalize(o *organizer.Organizer, result *Result) {
	if o.Resources == nil {
		o.Resources = organizer.Resources{}
	}
	for _, key := range slices.Sorted(maps.Keys(o.Resources)) {
		r := o.Resources[key]
		if r.ID != key {
			if r.ID != "" {
				result.AddWarning(normalized("resources."+key, "resource id %q replaced by its key", r.ID))
			}
			r.ID = key
			o.Resources[key] = r
		}
	}

	if o.Views == nil {
		o.Views = map[string]*organizer.View{}
	}
	if _, ok := o.View(organizer.DefaultViewID); !ok {
		o.Views[organizer.DefaultViewID] = organizer.NewView(organizer.DefaultViewID, organizer.DefaultViewName)
		result.AddWarning(normalized("views", "default view created"))
	}

	for _, key := range slices.Sorted(maps.Keys(o.Views)) {
		path := "views." + key
		v := o.Views[key]
		if v == nil {
			o.Views[key] = organizer.NewView(key, key)
			result.AddWarning(normalized(path, "empty view replaced"))
			continue
		}
		normalizeView(key, v, path, result)
		for _, err := range organizer.CheckView(v) {
			result.AddWarning(&FieldError{Path: path, Code: ErrCodeInvariant, Message: err.Error()})
		}
	}
}

func normalizeView(key string, v *organizer.View, path string, result *Result) {
	if v.ID != key {
		if v.ID != "" {
			result.AddWarning(normalized(path, "view id %q replaced by its key", v.ID))
		}
		v.ID = key
	}
	if v.Name == "" {
		v.Name = key
	}
	if v.Root == "" {
		v.Root = organizer.RootID
	}
	if v.Entries == nil {
		v.Entries = map[string]*organizer.Folder{}
	}

	for _, id := range slices.Sorted(maps.Keys(v.Entries)) {
		fpath := path + ".entries." + id
		f := v.Entries[id]
		if f == nil {
			delete(v.Entries, id)
			result.AddWarning(normalized(fpath, "empty entry removed"))
			continue
		}
		if f.ID != id {
			if f.ID != "" {
				result.AddWarning(normalized(fpath, "entry id %q replaced by its key", f.ID))
			}
			f.ID = id
		}
		f.Type = organizer.TypeFolder
		if f.Name == "" {
			f.Name = id
		}
		f.Children = dedupe(f.Children, func(dup string) {
			result.AddWarning(normalized(fpath+".children", "duplicate child %q dropped", dup))
		})
	}

	if _, ok := v.Folder(v.Root); !ok {
		v.Entries[v.Root] = organizer.NewFolder(v.Root, v.Root)
		result.AddWarning(normalized(path, "root folder %q created", v.Root))
	}
}

// dedupe keeps the first occurrence of each id. It never returns nil.
func dedupe(ids []string, onDup func(string)) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			onDup(id)
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
