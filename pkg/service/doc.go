// Package service runs organizer changes end to end: load a snapshot from
// the store, optionally reconcile it with the resource provider, apply one
// action, and save the result.
//
// A Service serializes its own cycles, so concurrent Apply and Sync calls
// on one Service never lose each other's changes. Separate processes
// sharing a data directory are not coordinated; the last save wins.
package service
