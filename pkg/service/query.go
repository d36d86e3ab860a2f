package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/nasdeck/nasdeck/pkg/organizer"
)

// Resolve loads the current snapshot and expands one view.
func (s *Service) Resolve(ctx context.Context, viewID string) (*organizer.ResolvedView, error) {
	o, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return ResolveView(o, viewOrDefault(viewID))
}

// ResolveAll loads the current snapshot and expands every view.
func (s *Service) ResolveAll(ctx context.Context) (*organizer.ResolvedOrganizer, error) {
	o, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return organizer.Resolve(o), nil
}

// ResolveView expands viewID of o.
func ResolveView(o *organizer.Organizer, viewID string) (*organizer.ResolvedView, error) {
	v, ok := o.View(viewID)
	if !ok {
		return nil, fmt.Errorf("view %s: %w", viewID, organizer.ErrNotFound)
	}
	return organizer.ResolveView(v, o.Resources), nil
}

// Select evaluates a JSONPath expression against the resolved view, for
// example "$..children[?(@.kind == 'orphan')].id".
func (s *Service) Select(ctx context.Context, viewID, path string) ([]any, error) {
	x, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	rv, err := s.Resolve(ctx, viewID)
	if err != nil {
		return nil, err
	}
	return SelectIn(rv, x)
}

// SelectIn evaluates a parsed JSONPath against a resolved view.
func SelectIn(rv *organizer.ResolvedView, x jp.Expr) ([]any, error) {
	raw, err := json.Marshal(rv)
	if err != nil {
		return nil, fmt.Errorf("encoding view: %w", err)
	}
	data, err := oj.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding view: %w", err)
	}
	return x.Get(data), nil
}

// MatchNames returns, in display order, the ids of folders and resources in
// viewID whose name or id matches the glob pattern. The root never matches.
func MatchNames(o *organizer.Organizer, viewID, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}
	rv, err := ResolveView(o, viewOrDefault(viewID))
	if err != nil {
		return nil, err
	}

	var ids []string
	seen := make(map[string]bool)
	rv.Root.Walk(func(n *organizer.Node, depth int) bool {
		if depth == 0 || seen[n.ID] {
			return true
		}
		switch n.Kind {
		case organizer.NodeFolder, organizer.NodeResource:
		default:
			return true
		}
		if match(pattern, n.Name) || match(pattern, n.ID) {
			seen[n.ID] = true
			ids = append(ids, n.ID)
		}
		return true
	})
	return ids, nil
}

func match(pattern, s string) bool {
	if s == "" {
		return false
	}
	ok, err := doublestar.Match(pattern, s)
	return err == nil && ok
}
