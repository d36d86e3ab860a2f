// Package provider supplies the current resource list to the organizer.
//
// A Provider reports every resource that exists right now, in a stable
// order. The organizer never creates or deletes resources; it only files
// what a provider reports.
package provider

import (
	"context"
	"slices"

	"github.com/nasdeck/nasdeck/pkg/organizer"
)

// Provider lists the resources that currently exist.
type Provider interface {
	List(ctx context.Context) ([]organizer.Resource, error)
}

// Func adapts a function to the Provider interface.
type Func func(ctx context.Context) ([]organizer.Resource, error)

// List calls f.
func (f Func) List(ctx context.Context) ([]organizer.Resource, error) {
	return f(ctx)
}

// Static is a fixed resource list.
type Static []organizer.Resource

// List returns a copy of the list.
func (s Static) List(ctx context.Context) ([]organizer.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s), nil
}

// dedupe keeps the first resource of each id.
func dedupe(list []organizer.Resource) []organizer.Resource {
	seen := make(map[string]bool, len(list))
	return slices.DeleteFunc(list, func(r organizer.Resource) bool {
		if seen[r.ID] {
			return true
		}
		seen[r.ID] = true
		return false
	})
}
