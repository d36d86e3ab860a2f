package organizer

import (
	"fmt"
	"testing"
)

func benchOrganizer(b *testing.B, n int) *Organizer {
	b.Helper()
	res := make([]Resource, 0, n)
	for i := range n {
		res = append(res, Resource{ID: fmt.Sprintf("r%d", i), Type: "container", Name: fmt.Sprintf("R %d", i)})
	}
	o := Reconcile(New(), res)
	for i := range n / 10 {
		kids := []string{fmt.Sprintf("r%d", i*10), fmt.Sprintf("r%d", i*10+1)}
		next, err := CreateFolder(o, DefaultViewID, RootID, fmt.Sprintf("f%d", i), "F", kids)
		if err != nil {
			b.Fatal(err)
		}
		o = next
	}
	return o
}

func BenchmarkResolve(b *testing.B) {
	o := benchOrganizer(b, 1000)
	for b.Loop() {
		_ = Resolve(o)
	}
}

func BenchmarkMoveItemsToPosition(b *testing.B) {
	o := benchOrganizer(b, 1000)
	ids := []string{"r5", "r15", "f3"}
	for b.Loop() {
		if _, err := MoveItemsToPosition(o, DefaultViewID, ids, "f7", 1); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkReconcile(b *testing.B) {
	o := benchOrganizer(b, 1000)
	res := make([]Resource, 0, 1100)
	for i := range 1100 {
		res = append(res, Resource{ID: fmt.Sprintf("r%d", i)})
	}
	for b.Loop() {
		_ = Reconcile(o, res)
	}
}
