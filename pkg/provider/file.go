package provider

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nasdeck/nasdeck/pkg/logging"
	"github.com/nasdeck/nasdeck/pkg/organizer"
	"github.com/nasdeck/nasdeck/pkg/validation"
)

// File reads resources from a YAML or JSON file on every List call, so
// edits to the file show up on the next sync.
//
// The file holds either a bare list of resources or a mapping with a
// "resources" key:
//
//	resources:
//	  - id: plex
//	    type: container
//	    name: Plex
//	    meta:
//	      image: plexinc/pms-docker
type File struct {
	path string
	log  *slog.Logger
}

// resourceFile is the mapping form of a resources file.
type resourceFile struct {
	Resources []organizer.Resource `yaml:"resources"`
}

// Option configures a File provider.
type Option func(*File)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *File) {
		if l != nil {
			f.log = l
		}
	}
}

// NewFile returns a provider reading path.
func NewFile(path string, opts ...Option) *File {
	f := &File{path: path, log: logging.Nop()}
	for _, opt := range opts {
		opt(f)
	}
	f.log = f.log.With("component", "provider", "path", path)
	return f
}

// Path returns the file the provider reads.
func (f *File) Path() string { return f.path }

// List parses the file. Resources with an empty id make the whole file
// invalid; repeated ids keep their first occurrence.
func (f *File) List(ctx context.Context) ([]organizer.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("reading resources: %w", err)
	}
	list, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", f.path, err)
	}

	result := validation.ValidateResources(list)
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("resources in %s: %w", f.path, err)
	}
	for _, w := range result.Warnings {
		f.log.Warn("ignoring resource", "at", w.Path, "detail", w.Message)
	}
	list = dedupe(list)
	f.log.Debug("resources listed", "count", len(list))
	return list, nil
}

// parse accepts both the mapping and the bare list form. JSON is valid
// YAML, so one decoder covers both formats. A mapping must carry a
// "resources" key and nothing else.
func parse(data []byte) ([]organizer.Resource, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}
	root := doc.Content[0]

	switch root.Kind {
	case yaml.SequenceNode:
		var list []organizer.Resource
		if err := root.Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	case yaml.MappingNode:
		found := false
		for i := 0; i+1 < len(root.Content); i += 2 {
			key := root.Content[i]
			if key.Value != "resources" {
				return nil, fmt.Errorf("line %d, column %d: unknown key %q (want \"resources\")", key.Line, key.Column, key.Value)
			}
			found = true
		}
		if !found {
			return nil, fmt.Errorf("line %d, column %d: missing \"resources\" key", root.Line, root.Column)
		}
		var rf resourceFile
		if err := root.Decode(&rf); err != nil {
			return nil, err
		}
		return rf.Resources, nil
	}
	return nil, fmt.Errorf("line %d, column %d: expected a list of resources or a \"resources\" mapping", root.Line, root.Column)
}
