// Package organizer arranges a flat set of externally owned resources into
// named, nested folder views.
//
// The package is pure: it performs no I/O, holds no shared state and never
// logs. Callers fetch resources, persist snapshots and render trees; this
// package only models the arrangement and keeps it valid.
//
// # Model
//
// An Organizer holds the current resource set and any number of Views. Each
// View is an arena of folders keyed by id. A folder lists child ids in display
// order; a child id is either another folder of the same view or a resource
// reference. Lookup classifies an id explicitly:
//
//	entry := org.Lookup("default", "media")
//	switch entry.Kind {
//	case organizer.KindFolder:   // entry.Folder is set
//	case organizer.KindResource: // entry.Resource is set
//	case organizer.KindOrphan:   // neither: a stale reference
//	}
//
// # Mutation
//
// Package-level mutators (CreateFolder, MoveEntriesToFolder, DeleteEntries,
// ...) are copy-on-write: they return a new Organizer and never modify their
// input. A failed mutation returns a *MutationError wrapping one of the
// sentinel errors (ErrNotFound, ErrCycle, ...) and no partial result.
// (*View).DeleteEntries is the in-place variant for callers that own a
// private copy.
//
// # Resolution
//
// Resolve expands every view into a nested tree for display. It never fails:
// dangling ids become orphan leaves and cycles in hand-edited state are cut
// with a cycle marker.
package organizer
