package organizer

// AddMissingResources appends every resource that no folder of v lists yet
// as a direct child of the root, in the order given. Existing entries and
// their order are left alone. When nothing is missing v itself is returned.
func AddMissingResources(resources []Resource, v *View) *View {
	present := make(map[string]bool)
	for id, f := range v.Entries {
		if f == nil {
			continue
		}
		present[id] = true
		for _, child := range f.Children {
			present[child] = true
		}
	}

	var missing []string
	for _, r := range resources {
		if r.ID == "" || present[r.ID] {
			continue
		}
		present[r.ID] = true
		missing = append(missing, r.ID)
	}
	if len(missing) == 0 && v.RootFolder() != nil {
		return v
	}

	c := v.Clone()
	root := c.RootFolder()
	if root == nil {
		root = NewFolder(c.rootID(), c.rootID())
		c.Entries[root.ID] = root
	}
	root.Children = append(root.Children, missing...)
	return c
}

// Reconcile replaces the organizer's resources with fresh and makes newly
// seen resources visible in the default view. References to resources that
// disappeared are kept; displaying them as orphans is up to the caller.
func Reconcile(o *Organizer, fresh []Resource) *Organizer {
	c := o.shallow()
	c.Resources = make(Resources, len(fresh))
	for _, r := range fresh {
		if r.ID != "" {
			c.Resources[r.ID] = r
		}
	}
	v, ok := c.View(DefaultViewID)
	if !ok {
		v = NewView(DefaultViewID, DefaultViewName)
	}
	c.Views[DefaultViewID] = AddMissingResources(fresh, v)
	return c
}
