// Package menu implements the hierarchical context menu and its flattened,
// searchable quick-menu presentation. Both are built from the same Config
// tree.
package menu

// Item is a leaf command.
type Item struct {
	Name     string
	Group    string
	Callback func()
}

// Config describes one menu level.
type Config struct {
	Name     string
	Group    string
	Items    []Item
	SubMenus []Config
}

// Merge appends o's items and submenus to c's, preserving order.
func (c Config) Merge(o Config) Config {
	out := Config{Name: c.Name, Group: c.Group}
	out.Items = append(append(out.Items, c.Items...), o.Items...)
	out.SubMenus = append(append(out.SubMenus, c.SubMenus...), o.SubMenus...)
	return out
}

// Empty reports whether c has nothing to show.
func (c Config) Empty() bool {
	return len(c.Items) == 0 && len(c.SubMenus) == 0
}
