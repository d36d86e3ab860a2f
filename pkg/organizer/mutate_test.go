package organizer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaScenario(t *testing.T) {
	o := newTestOrganizer(t, "A", "B", "C")

	o, err := CreateFolder(o, DefaultViewID, RootID, "media", "Media", []string{"A", "B"})
	require.NoError(t, err)
	assert.Equal(t, []string{"media", "C"}, children(t, o, RootID))
	assert.Equal(t, []string{"A", "B"}, children(t, o, "media"))
	mustCheck(t, o)

	o, err = MoveItemsToPosition(o, DefaultViewID, []string{"C"}, "media", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, children(t, o, "media"))
	assert.Equal(t, []string{"media"}, children(t, o, RootID))
	mustCheck(t, o)

	o, err = DeleteEntries(o, DefaultViewID, []string{"media"})
	require.NoError(t, err)
	assert.Empty(t, children(t, o, RootID))
	assert.ElementsMatch(t, []string{"A", "B", "C"}, o.Resources.IDs())
	mustCheck(t, o)
}

func TestCreateFolder(t *testing.T) {
	t.Run("appends when adopting nothing from parent", func(t *testing.T) {
		o := newTestOrganizer(t, "A", "B")
		o, err := CreateFolder(o, DefaultViewID, RootID, "empty", "Empty", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "empty"}, children(t, o, RootID))
		assert.Empty(t, children(t, o, "empty"))
	})

	t.Run("keeps requested child order", func(t *testing.T) {
		o := newTestOrganizer(t, "A", "B", "C")
		o, err := CreateFolder(o, DefaultViewID, RootID, "f", "F", []string{"C", "A"})
		require.NoError(t, err)
		assert.Equal(t, []string{"C", "A"}, children(t, o, "f"))
		assert.Equal(t, []string{"f", "B"}, children(t, o, RootID))
	})

	t.Run("adopts from other folders", func(t *testing.T) {
		o := newTestOrganizer(t, "A", "B")
		o, err := CreateFolder(o, DefaultViewID, RootID, "x", "X", []string{"A"})
		require.NoError(t, err)
		o, err = CreateFolder(o, DefaultViewID, "x", "y", "Y", []string{"B", "A"})
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "A"}, children(t, o, "y"))
		assert.Equal(t, []string{"y"}, children(t, o, "x"))
		assert.Equal(t, []string{"x"}, children(t, o, RootID))
		mustCheck(t, o)
	})

	t.Run("idempotent under the same parent", func(t *testing.T) {
		o := newTestOrganizer(t, "A")
		first, err := CreateFolder(o, DefaultViewID, RootID, "f", "F", nil)
		require.NoError(t, err)
		second, err := CreateFolder(first, DefaultViewID, RootID, "f", "Other", []string{"A"})
		require.NoError(t, err)
		assert.Same(t, first, second)
		assert.Equal(t, "F", second.Views[DefaultViewID].Entries["f"].Name)
	})

	t.Run("does not modify its input", func(t *testing.T) {
		o := newTestOrganizer(t, "A", "B")
		_, err := CreateFolder(o, DefaultViewID, RootID, "f", "F", []string{"A"})
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, children(t, o, RootID))
		_, exists := o.Views[DefaultViewID].Folder("f")
		assert.False(t, exists)
	})
}

func TestCreateFolder_Errors(t *testing.T) {
	base := newTestOrganizer(t, "A", "B")
	nested, err := CreateFolder(base, DefaultViewID, RootID, "outer", "Outer", nil)
	require.NoError(t, err)
	nested, err = CreateFolder(nested, DefaultViewID, "outer", "inner", "Inner", nil)
	require.NoError(t, err)

	tests := []struct {
		name     string
		o        *Organizer
		view     string
		parent   string
		id       string
		folder   string
		children []string
		want     error
	}{
		{"root id", base, DefaultViewID, RootID, RootID, "R", nil, ErrReservedName},
		{"own parent", base, DefaultViewID, "f", "f", "F", nil, ErrSelfParent},
		{"missing parent", base, DefaultViewID, "nope", "f", "F", nil, ErrNotFound},
		{"resource parent", base, DefaultViewID, "A", "f", "F", nil, ErrNotAFolder},
		{"missing view", base, "nope", RootID, "f", "F", nil, ErrNotFound},
		{"empty name", base, DefaultViewID, RootID, "f", "  ", nil, ErrEmptyName},
		{"empty id", base, DefaultViewID, RootID, "", "F", nil, ErrInvalidID},
		{"resource id collision", base, DefaultViewID, RootID, "A", "F", nil, ErrDuplicateID},
		{"folder elsewhere", nested, DefaultViewID, RootID, "inner", "F", nil, ErrDuplicateID},
		{"unknown child", base, DefaultViewID, RootID, "f", "F", []string{"ghost"}, ErrNotFound},
		{"root as child", base, DefaultViewID, RootID, "f", "F", []string{RootID}, ErrReservedName},
		{"ancestor as child", nested, DefaultViewID, "inner", "f", "F", []string{"outer"}, ErrCycle},
		{"parent as child", nested, DefaultViewID, "inner", "f", "F", []string{"inner"}, ErrCycle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CreateFolder(tt.o, tt.view, tt.parent, tt.id, tt.folder, tt.children)
			require.ErrorIs(t, err, tt.want)
			assert.Nil(t, got)

			var me *MutationError
			require.True(t, errors.As(err, &me))
			assert.Equal(t, "create folder", me.Op)
		})
	}
}

func TestRenameFolder(t *testing.T) {
	o := newTestOrganizer(t, "A")
	o, err := CreateFolder(o, DefaultViewID, RootID, "f", "Old", nil)
	require.NoError(t, err)

	renamed, err := RenameFolder(o, DefaultViewID, "f", "New")
	require.NoError(t, err)
	assert.Equal(t, "New", renamed.Views[DefaultViewID].Entries["f"].Name)
	assert.Equal(t, "Old", o.Views[DefaultViewID].Entries["f"].Name)
	assert.Equal(t, children(t, o, RootID), children(t, renamed, RootID))

	_, err = RenameFolder(o, DefaultViewID, RootID, "Top")
	assert.ErrorIs(t, err, ErrReservedName)
	_, err = RenameFolder(o, DefaultViewID, "f", "")
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = RenameFolder(o, DefaultViewID, "A", "Nope")
	assert.ErrorIs(t, err, ErrNotAFolder)
	_, err = RenameFolder(o, DefaultViewID, "ghost", "Nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetFolderChildren(t *testing.T) {
	o := newTestOrganizer(t, "A", "B", "C")
	o, err := CreateFolder(o, DefaultViewID, RootID, "f", "F", []string{"A"})
	require.NoError(t, err)

	o, err = SetFolderChildren(o, DefaultViewID, "f", []string{"C", "A", "B", "C"})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, children(t, o, "f"))
	assert.Equal(t, []string{"f"}, children(t, o, RootID))
	mustCheck(t, o)

	reordered, err := SetFolderChildren(o, DefaultViewID, RootID, []string{"f"})
	require.NoError(t, err)
	assert.Equal(t, []string{"f"}, children(t, reordered, RootID))

	_, err = SetFolderChildren(o, DefaultViewID, RootID, []string{})
	assert.ErrorIs(t, err, ErrInvariant, "dropping a folder child must be rejected")

	_, err = SetFolderChildren(o, DefaultViewID, "f", []string{"f"})
	assert.ErrorIs(t, err, ErrSelfParent)

	_, err = SetFolderChildren(o, DefaultViewID, "A", nil)
	assert.ErrorIs(t, err, ErrNotAFolder)
}

func TestMoveEntriesToFolder(t *testing.T) {
	o := newTestOrganizer(t, "A", "B", "C", "D")
	o, err := CreateFolder(o, DefaultViewID, RootID, "dst", "Dst", []string{"D"})
	require.NoError(t, err)

	o, err = MoveEntriesToFolder(o, DefaultViewID, []string{"C", "A"}, "dst")
	require.NoError(t, err)
	assert.Equal(t, []string{"D", "C", "A"}, children(t, o, "dst"))
	assert.Equal(t, []string{"B", "dst"}, children(t, o, RootID))
	mustCheck(t, o)

	t.Run("folder into itself", func(t *testing.T) {
		_, err := MoveEntriesToFolder(o, DefaultViewID, []string{"dst"}, "dst")
		assert.ErrorIs(t, err, ErrSelfParent)
	})

	t.Run("folder into descendant", func(t *testing.T) {
		n, err := CreateFolder(o, DefaultViewID, "dst", "sub", "Sub", nil)
		require.NoError(t, err)
		_, err = MoveEntriesToFolder(n, DefaultViewID, []string{"dst"}, "sub")
		assert.ErrorIs(t, err, ErrCycle)
	})

	t.Run("destination is a resource", func(t *testing.T) {
		_, err := MoveEntriesToFolder(o, DefaultViewID, []string{"B"}, "A")
		assert.ErrorIs(t, err, ErrNotAFolder)
	})

	t.Run("root cannot move", func(t *testing.T) {
		_, err := MoveEntriesToFolder(o, DefaultViewID, []string{RootID}, "dst")
		assert.ErrorIs(t, err, ErrReservedName)
	})

	t.Run("failure is atomic", func(t *testing.T) {
		_, err := MoveEntriesToFolder(o, DefaultViewID, []string{"B", "ghost"}, "dst")
		require.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, []string{"B", "dst"}, children(t, o, RootID))
	})
}

func TestMoveItemsToPosition(t *testing.T) {
	o := newTestOrganizer(t, "A", "B", "C", "D")

	tests := []struct {
		name     string
		ids      []string
		position int
		want     []string
	}{
		{"first", []string{"D"}, 0, []string{"D", "A", "B", "C"}},
		{"middle block", []string{"D", "A"}, 1, []string{"B", "D", "A", "C"}},
		{"index counted after removal", []string{"A"}, 2, []string{"B", "C", "A", "D"}},
		{"past the end appends", []string{"A"}, 99, []string{"B", "C", "D", "A"}},
		{"negative clamps to zero", []string{"C"}, -5, []string{"C", "A", "B", "D"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MoveItemsToPosition(o, DefaultViewID, tt.ids, RootID, tt.position)
			require.NoError(t, err)
			assert.Equal(t, tt.want, children(t, got, RootID))
			mustCheck(t, got)
		})
	}
}

func TestDeleteEntries(t *testing.T) {
	o := newTestOrganizer(t, "A", "B", "C")
	o, err := CreateFolder(o, DefaultViewID, RootID, "top", "Top", []string{"A"})
	require.NoError(t, err)
	o, err = CreateFolder(o, DefaultViewID, "top", "mid", "Mid", []string{"B"})
	require.NoError(t, err)
	o, err = CreateFolder(o, DefaultViewID, "mid", "leaf", "Leaf", nil)
	require.NoError(t, err)

	t.Run("cascades through the subtree", func(t *testing.T) {
		got, err := DeleteEntries(o, DefaultViewID, []string{"top"})
		require.NoError(t, err)
		v := got.Views[DefaultViewID]
		for _, id := range []string{"top", "mid", "leaf"} {
			_, ok := v.Folder(id)
			assert.False(t, ok, "folder %s should be gone", id)
		}
		assert.Equal(t, []string{"C"}, children(t, got, RootID))
		assert.Len(t, got.Resources, 3)
		mustCheck(t, got)

		_, ok := o.Views[DefaultViewID].Folder("leaf")
		assert.True(t, ok, "input must be untouched")
	})

	t.Run("resource reference", func(t *testing.T) {
		got, err := DeleteEntries(o, DefaultViewID, []string{"B", "C"})
		require.NoError(t, err)
		assert.Equal(t, []string{"leaf"}, children(t, got, "mid"))
		assert.Equal(t, []string{"top"}, children(t, got, RootID))
	})

	t.Run("errors", func(t *testing.T) {
		_, err := DeleteEntries(o, DefaultViewID, []string{RootID})
		assert.ErrorIs(t, err, ErrReservedName)
		_, err = DeleteEntries(o, DefaultViewID, []string{"C", "ghost"})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, []string{"top", "C"}, children(t, o, RootID))
	})
}

func TestView_DeleteEntriesInPlace(t *testing.T) {
	o := newTestOrganizer(t, "A", "B")
	o, err := CreateFolder(o, DefaultViewID, RootID, "f", "F", []string{"A"})
	require.NoError(t, err)

	v := o.Views[DefaultViewID].Clone()
	require.NoError(t, v.DeleteEntries("f"))
	assert.Equal(t, []string{"B"}, v.RootFolder().Children)
	assert.Empty(t, CheckView(v))

	before := v.Clone()
	err = v.DeleteEntries("B", RootID)
	require.ErrorIs(t, err, ErrReservedName)
	assert.Equal(t, before, v, "failed in-place delete must not change the view")
}

func TestDeleteEntries_InPlaceMatchesImmutable(t *testing.T) {
	o := newTestOrganizer(t, "A", "B", "C", "D")
	o, err := CreateFolder(o, DefaultViewID, RootID, "top", "Top", []string{"A", "B"})
	require.NoError(t, err)
	o, err = CreateFolder(o, DefaultViewID, "top", "inner", "Inner", []string{"C"})
	require.NoError(t, err)
	o, err = CreateFolder(o, DefaultViewID, RootID, "side", "Side", nil)
	require.NoError(t, err)

	cases := [][]string{
		{"top"},
		{"inner", "D"},
		{"A", "side", "A"},
		{"inner", "top"},
	}
	for _, ids := range cases {
		t.Run(strings.Join(ids, ","), func(t *testing.T) {
			immutable, err := DeleteEntries(o, DefaultViewID, ids)
			require.NoError(t, err)

			v := o.Views[DefaultViewID].Clone()
			require.NoError(t, v.DeleteEntries(ids...))

			assert.Equal(t, immutable.Views[DefaultViewID], v)
		})
	}
}

func TestNilEntriesAreSkipped(t *testing.T) {
	corrupt := func() *View {
		v := NewView(DefaultViewID, DefaultViewName)
		v.Entries["f"] = NewFolder("f", "F", "a")
		v.Entries["broken"] = nil
		v.RootFolder().Children = []string{"f", "b"}
		return v
	}

	t.Run("add missing resources", func(t *testing.T) {
		var got *View
		require.NotPanics(t, func() { got = AddMissingResources(res("a", "b", "c"), corrupt()) })
		assert.Equal(t, []string{"f", "b", "c"}, got.RootFolder().Children)
	})

	t.Run("delete in place", func(t *testing.T) {
		v := corrupt()
		require.NotPanics(t, func() { require.NoError(t, v.DeleteEntries("b", "f")) })
		assert.Empty(t, v.RootFolder().Children)
		assert.NotContains(t, v.Entries, "f")
	})

	t.Run("move", func(t *testing.T) {
		o := &Organizer{Resources: Resources{}, Views: map[string]*View{DefaultViewID: corrupt()}}
		require.NotPanics(t, func() {
			got, err := MoveEntriesToFolder(o, DefaultViewID, []string{"b"}, "f")
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, children(t, got, "f"))
		})
	})
}

func TestViewManagement(t *testing.T) {
	o := New()

	o, err := AddView(o, "by-app", "By application")
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultViewID, "by-app"}, o.ViewIDs())
	mustCheck(t, o)

	_, err = AddView(o, "by-app", "Again")
	assert.ErrorIs(t, err, ErrDuplicateID)
	_, err = AddView(o, "", "Blank")
	assert.ErrorIs(t, err, ErrInvalidID)

	o, err = SetViewPrefs(o, "by-app", map[string]any{"collapsed": true})
	require.NoError(t, err)
	assert.Equal(t, true, o.Views["by-app"].Prefs["collapsed"])

	_, err = RemoveView(o, DefaultViewID)
	assert.ErrorIs(t, err, ErrReservedName)

	o, err = RemoveView(o, "by-app")
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultViewID}, o.ViewIDs())
}

func TestMutationError(t *testing.T) {
	o := newTestOrganizer(t, "A")
	_, err := MoveEntriesToFolder(o, DefaultViewID, []string{"A"}, "ghost")
	require.Error(t, err)

	var me *MutationError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "NotFound", me.Kind())
	assert.Equal(t, []string{"ghost"}, me.IDs)
	assert.Equal(t, "move entries (view default) [ghost]: not found", err.Error())
}
