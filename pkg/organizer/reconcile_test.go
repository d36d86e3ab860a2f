package organizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func res(ids ...string) []Resource {
	out := make([]Resource, 0, len(ids))
	for _, id := range ids {
		out = append(out, Resource{ID: id, Type: "container", Name: id})
	}
	return out
}

func TestAddMissingResources(t *testing.T) {
	t.Run("appends unseen resources in list order", func(t *testing.T) {
		v := NewView("v", "V")
		got := AddMissingResources(res("b", "a", "c"), v)
		assert.Equal(t, []string{"b", "a", "c"}, got.RootFolder().Children)
		assert.Empty(t, v.RootFolder().Children, "input view must not change")
	})

	t.Run("skips resources already filed in folders", func(t *testing.T) {
		v := NewView("v", "V")
		v.Entries["f"] = NewFolder("f", "F", "a")
		v.RootFolder().Children = []string{"f"}
		got := AddMissingResources(res("a", "b"), v)
		assert.Equal(t, []string{"f", "b"}, got.RootFolder().Children)
		assert.Equal(t, []string{"a"}, got.Entries["f"].Children)
	})

	t.Run("returns the same view when nothing is missing", func(t *testing.T) {
		v := AddMissingResources(res("a"), NewView("v", "V"))
		assert.Same(t, v, AddMissingResources(res("a"), v))
	})

	t.Run("recreates a missing root", func(t *testing.T) {
		v := &View{ID: "v", Name: "V", Entries: map[string]*Folder{}}
		got := AddMissingResources(res("a"), v)
		require.NotNil(t, got.RootFolder())
		assert.Equal(t, []string{"a"}, got.RootFolder().Children)
		assert.Empty(t, CheckView(got))
	})

	t.Run("ignores duplicates and empty ids", func(t *testing.T) {
		got := AddMissingResources([]Resource{{ID: "a"}, {ID: ""}, {ID: "a"}}, NewView("v", "V"))
		assert.Equal(t, []string{"a"}, got.RootFolder().Children)
	})
}

func TestReconcile(t *testing.T) {
	o := Reconcile(New(), res("a", "b"))
	o, err := CreateFolder(o, DefaultViewID, RootID, "f", "F", []string{"b"})
	require.NoError(t, err)

	t.Run("idempotent", func(t *testing.T) {
		once := Reconcile(o, res("a", "b"))
		twice := Reconcile(once, res("a", "b"))
		assert.Equal(t, once.Views, twice.Views)
		assert.Equal(t, children(t, o, RootID), children(t, once, RootID))
	})

	t.Run("keeps existing order and appends new", func(t *testing.T) {
		got := Reconcile(o, res("c", "a", "b"))
		assert.Equal(t, []string{"a", "f", "c"}, children(t, got, RootID))
		assert.Equal(t, []string{"b"}, children(t, got, "f"))
		mustCheck(t, got)
	})

	t.Run("vanished resources become orphans", func(t *testing.T) {
		got := Reconcile(o, res("a"))
		assert.NotContains(t, got.Resources, "b")
		assert.Equal(t, []string{"b"}, children(t, got, "f"))
		assert.Equal(t, KindOrphan, got.Lookup(DefaultViewID, "b").Kind)

		tree := ResolveView(got.Views[DefaultViewID], got.Resources)
		assert.Equal(t, []string{"b"}, tree.Root.Orphans())
	})

	t.Run("other views are left alone", func(t *testing.T) {
		withView, err := AddView(o, "alt", "Alt")
		require.NoError(t, err)
		got := Reconcile(withView, res("a", "b", "c"))
		assert.Empty(t, got.Views["alt"].RootFolder().Children)
		assert.Same(t, withView.Views["alt"], got.Views["alt"])
	})

	t.Run("creates a missing default view", func(t *testing.T) {
		got := Reconcile(&Organizer{}, res("a"))
		assert.Equal(t, []string{"a"}, children(t, got, RootID))
		mustCheck(t, got)
	})
}

func TestLookup(t *testing.T) {
	o := newTestOrganizer(t, "a", "dup")
	o, err := CreateFolder(o, DefaultViewID, RootID, "f", "F", nil)
	require.NoError(t, err)

	assert.True(t, o.Lookup(DefaultViewID, "f").IsFolder())
	assert.Equal(t, KindResource, o.Lookup(DefaultViewID, "a").Kind)
	assert.Equal(t, "a", o.Lookup(DefaultViewID, "a").Resource.ID)
	assert.Equal(t, KindOrphan, o.Lookup(DefaultViewID, "ghost").Kind)
	assert.Equal(t, KindOrphan, o.Lookup("missing", "a").Kind)

	// A folder wins over a resource with the same id.
	v := o.Views[DefaultViewID].Clone()
	v.Entries["dup"] = NewFolder("dup", "Dup")
	assert.Equal(t, KindFolder, classify(v, o.Resources, "dup").Kind)
}
