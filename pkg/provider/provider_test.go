package provider

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nasdeck/nasdeck/pkg/organizer"
	"github.com/nasdeck/nasdeck/pkg/validation"
)

func ids(list []organizer.Resource) []string {
	out := make([]string, 0, len(list))
	for _, r := range list {
		out = append(out, r.ID)
	}
	return out
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestStatic(t *testing.T) {
	s := Static{{ID: "a"}, {ID: "b"}}
	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(list))

	list[0].ID = "changed"
	again, _ := s.List(context.Background())
	assert.Equal(t, "a", again[0].ID)
}

func TestFile_YAMLMapping(t *testing.T) {
	path := writeFile(t, "resources.yaml", `
resources:
  - id: plex
    type: container
    name: Plex
    meta:
      image: plexinc/pms-docker
      ports: [32400]
  - id: media
    type: share
    name: Media
`)
	list, err := NewFile(path).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"plex", "media"}, ids(list))
	assert.Equal(t, "plexinc/pms-docker", list[0].Meta["image"])
	assert.Equal(t, "share", list[1].Type)
}

func TestFile_BareListAndJSON(t *testing.T) {
	yamlPath := writeFile(t, "r.yml", "- id: b\n- id: a\n")
	list, err := NewFile(yamlPath).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids(list))

	jsonPath := writeFile(t, "r.json", `[{"id": "x", "name": "X"}, {"id": "y"}]`)
	list, err = NewFile(jsonPath).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, ids(list))
	assert.Equal(t, "X", list[0].Name)
}

func TestFile_Duplicates(t *testing.T) {
	path := writeFile(t, "r.yaml", "- {id: a, name: first}\n- {id: b}\n- {id: a, name: second}\n")
	list, err := NewFile(path).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(list))
	assert.Equal(t, "first", list[0].Name)
}

func TestFile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewFile(filepath.Join(t.TempDir(), "nope.yaml")).List(context.Background())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
	t.Run("empty id", func(t *testing.T) {
		path := writeFile(t, "r.yaml", "- id: a\n- name: anonymous\n")
		_, err := NewFile(path).List(context.Background())
		assert.ErrorIs(t, err, validation.ErrInvalid)
	})
	t.Run("not a list", func(t *testing.T) {
		path := writeFile(t, "r.yaml", "just a string\n")
		_, err := NewFile(path).List(context.Background())
		assert.Error(t, err)
	})
	t.Run("misspelt resources key", func(t *testing.T) {
		path := writeFile(t, "r.yaml", "resource:\n  - id: plex\n")
		_, err := NewFile(path).List(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown key "resource"`)
		assert.Contains(t, err.Error(), "line 1, column 1")
	})
	t.Run("extra key next to resources", func(t *testing.T) {
		path := writeFile(t, "r.json", `{"resources": [{"id": "a"}], "version": 2}`)
		_, err := NewFile(path).List(context.Background())
		assert.ErrorContains(t, err, `unknown key "version"`)
	})
	t.Run("empty mapping", func(t *testing.T) {
		path := writeFile(t, "r.json", `{}`)
		_, err := NewFile(path).List(context.Background())
		assert.ErrorContains(t, err, `missing "resources" key`)
	})
}

func TestFile_EmptyForms(t *testing.T) {
	for name, content := range map[string]string{
		"empty file":      "",
		"empty list":      "[]\n",
		"empty resources": "resources: []\n",
		"null resources":  "resources:\n",
	} {
		t.Run(name, func(t *testing.T) {
			list, err := NewFile(writeFile(t, "r.yaml", content)).List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestFile_RereadsOnEveryCall(t *testing.T) {
	path := writeFile(t, "r.yaml", "- id: a\n")
	p := NewFile(path)
	list, err := p.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(list))

	require.NoError(t, os.WriteFile(path, []byte("- id: a\n- id: b\n"), 0o600))
	list, err = p.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(list))
}

func TestFilter(t *testing.T) {
	src := Static{
		{ID: "plex", Type: "container", Name: "Plex", Meta: map[string]any{"stack": "media"}},
		{ID: "traefik", Type: "container", Name: "Traefik", Meta: map[string]any{"stack": "system"}},
		{ID: "photos", Type: "share", Name: "Photos"},
	}

	tests := []struct {
		expression string
		want       []string
	}{
		{"", []string{"plex", "traefik", "photos"}},
		{`type == "container"`, []string{"plex", "traefik"}},
		{`meta.stack != "system"`, []string{"plex", "photos"}},
		{`name startsWith "P"`, []string{"plex", "photos"}},
		{`id in ["photos", "nope"]`, []string{"photos"}},
	}
	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := NewFilter(src, tt.expression)
			require.NoError(t, err)
			list, err := f.List(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(list))
		})
	}
}

func TestFilter_CompileErrors(t *testing.T) {
	_, err := NewFilter(Static{}, `type ==`)
	assert.Error(t, err)

	_, err = NewFilter(Static{}, `name`)
	assert.Error(t, err, "non-boolean expressions are rejected")

	_, err = NewFilter(Static{}, `unknown == 1`)
	assert.Error(t, err)
}

func TestFilter_PropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	f, err := NewFilter(Func(func(context.Context) ([]organizer.Resource, error) { return nil, boom }), `true`)
	require.NoError(t, err)
	_, err = f.List(context.Background())
	assert.ErrorIs(t, err, boom)
}
