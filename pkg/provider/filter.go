package provider

import (
	"context"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/nasdeck/nasdeck/pkg/organizer"
)

// filterEnv is what a filter expression sees for each resource.
type filterEnv struct {
	ID   string         `expr:"id"`
	Type string         `expr:"type"`
	Name string         `expr:"name"`
	Meta map[string]any `expr:"meta"`
}

// Filter keeps the resources of another provider for which a boolean
// expression holds, for example:
//
//	type == "container" && meta.stack != "system"
type Filter struct {
	next       Provider
	expression string
	program    *vm.Program
}

// NewFilter compiles expression against the resource fields id, type, name
// and meta. An empty expression keeps everything.
func NewFilter(next Provider, expression string) (*Filter, error) {
	f := &Filter{next: next, expression: expression}
	if expression == "" {
		return f, nil
	}
	program, err := expr.Compile(expression, expr.Env(filterEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %q: %w", expression, err)
	}
	f.program = program
	return f, nil
}

// Expression returns the source of the filter.
func (f *Filter) Expression() string { return f.expression }

// List returns the matching resources in the order the wrapped provider
// reported them.
func (f *Filter) List(ctx context.Context) ([]organizer.Resource, error) {
	list, err := f.next.List(ctx)
	if err != nil {
		return nil, err
	}
	if f.program == nil {
		return list, nil
	}
	out := make([]organizer.Resource, 0, len(list))
	for _, r := range list {
		env := filterEnv{ID: r.ID, Type: r.Type, Name: r.Name, Meta: r.Meta}
		if env.Meta == nil {
			env.Meta = map[string]any{}
		}
		keep, err := expr.Run(f.program, env)
		if err != nil {
			return nil, fmt.Errorf("eval filter %q on %s: %w", f.expression, r.ID, err)
		}
		if keep.(bool) {
			out = append(out, r)
		}
	}
	return out, nil
}
