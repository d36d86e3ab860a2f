package organizer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestOrganizer returns an organizer whose default view lists the given
// resources directly under the root, in order.
func newTestOrganizer(t *testing.T, ids ...string) *Organizer {
	t.Helper()
	res := make([]Resource, 0, len(ids))
	for _, id := range ids {
		res = append(res, Resource{ID: id, Type: "container", Name: "name-" + id})
	}
	o := Reconcile(New(), res)
	require.NoError(t, Check(o))
	return o
}

func children(t *testing.T, o *Organizer, folderID string) []string {
	t.Helper()
	v, ok := o.View(DefaultViewID)
	require.True(t, ok, "default view missing")
	f, ok := v.Folder(folderID)
	require.True(t, ok, "folder %s missing", folderID)
	return f.Children
}

func mustCheck(t *testing.T, o *Organizer) {
	t.Helper()
	require.NoError(t, Check(o))
}
