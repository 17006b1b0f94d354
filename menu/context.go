package menu

import (
	"nodeflow/geom"
	"nodeflow/surface"
	"nodeflow/theme"
)

// Entry is one row of a ContextMenu: either a leaf item or a submenu
// header.
type Entry struct {
	Name    string
	Group   string
	Item    *Item
	SubMenu *ContextMenu
}

// Group is a contiguous run of entries sharing a group tag.
type Group struct {
	Name    string
	Entries []*Entry
}

// ContextMenu is a pre-built hierarchical menu. At most one submenu per
// level is open at a time.
type ContextMenu struct {
	name   string
	groups []Group
	theme  theme.MenuTheme

	open     *Entry
	openRow  geom.Box
	bounds   geom.Box
	rows     []geom.Box
	entries  []*Entry
	hovered  *Entry
	rendered bool
}

func New(cfg Config, th theme.MenuTheme) *ContextMenu {
	m := &ContextMenu{name: cfg.Name, theme: th}

	var ungrouped []*Entry
	var order []string
	byGroup := make(map[string][]*Entry)
	add := func(e *Entry) {
		if e.Group == "" {
			ungrouped = append(ungrouped, e)
			return
		}
		if _, seen := byGroup[e.Group]; !seen {
			order = append(order, e.Group)
		}
		byGroup[e.Group] = append(byGroup[e.Group], e)
	}

	for i := range cfg.Items {
		item := cfg.Items[i]
		add(&Entry{Name: item.Name, Group: item.Group, Item: &item})
	}
	for _, sub := range cfg.SubMenus {
		add(&Entry{Name: sub.Name, Group: sub.Group, SubMenu: New(sub, th)})
	}

	if len(ungrouped) > 0 {
		m.groups = append(m.groups, Group{Entries: ungrouped})
	}
	for _, name := range order {
		m.groups = append(m.groups, Group{Name: name, Entries: byGroup[name]})
	}
	for _, g := range m.groups {
		m.entries = append(m.entries, g.Entries...)
	}
	return m
}

func (m *ContextMenu) Name() string {
	return m.name
}

// Groups returns the menu's groups in display order.
func (m *ContextMenu) Groups() []Group {
	return m.groups
}

// OpenSubMenu returns the currently expanded submenu, if any.
func (m *ContextMenu) OpenSubMenu() *ContextMenu {
	if m.open == nil {
		return nil
	}
	return m.open.SubMenu
}

// Bounds returns the box drawn by the last Render.
func (m *ContextMenu) Bounds() geom.Box {
	return m.bounds
}

// Contains reports whether p is over this menu or any open descendant, as
// of the last render.
func (m *ContextMenu) Contains(p geom.Vector2) bool {
	if !m.rendered {
		return false
	}
	if geom.InBox(m.bounds, p) {
		return true
	}
	if sub := m.OpenSubMenu(); sub != nil {
		return sub.Contains(p)
	}
	return false
}

// Hovered returns the deepest entry under the pointer as of the last
// render.
func (m *ContextMenu) Hovered() *Entry {
	return m.hovered
}

// Close collapses every open submenu.
func (m *ContextMenu) Close() {
	if sub := m.OpenSubMenu(); sub != nil {
		sub.Close()
	}
	m.open = nil
	m.hovered = nil
	m.rendered = false
}

// layout computes row boxes for a menu anchored at pos without drawing.
func (m *ContextMenu) layout(pos geom.Vector2) {
	th := m.theme
	m.rows = m.rows[:0]
	y := pos.Y + th.Padding
	for gi, g := range m.groups {
		if gi > 0 {
			y += th.Padding
		}
		for range g.Entries {
			m.rows = append(m.rows, geom.Box{
				Position: geom.Vector2{X: pos.X, Y: y},
				Size:     geom.Vector2{X: th.Width, Y: th.ItemHeight},
			})
			y += th.ItemHeight
		}
	}
	m.bounds = geom.Box{
		Position: pos,
		Size:     geom.Vector2{X: th.Width, Y: y + th.Padding - pos.Y},
	}
}

// Render draws the menu at pos and updates hover and submenu state from
// pointer, which may be nil.
func (m *ContextMenu) Render(s surface.Surface, pos geom.Vector2, pointer *geom.Vector2) *Entry {
	th := m.theme
	m.layout(pos)

	var rowHit *Entry
	var rowHitBox geom.Box
	if pointer != nil {
		for i, row := range m.rows {
			if geom.InBox(row, *pointer) {
				rowHit, rowHitBox = m.entries[i], row
			}
		}
	}

	switch {
	case rowHit != nil && rowHit.SubMenu != nil:
		if m.open != rowHit {
			if sub := m.OpenSubMenu(); sub != nil {
				sub.Close()
			}
		}
		m.open, m.openRow = rowHit, rowHitBox
	case m.open != nil:
		inTrigger := pointer != nil && geom.InBox(m.openRow, *pointer)
		inSub := pointer != nil && m.open.SubMenu.Contains(*pointer)
		if !inTrigger && !inSub {
			m.open.SubMenu.Close()
			m.open = nil
		}
	}

	s.FillRoundedRect(m.bounds, th.Radius, th.Background)
	font := surface.Font{Size: th.FontSize}
	ascent := s.MeasureText("M", font).Ascent

	i := 0
	for gi, g := range m.groups {
		if gi > 0 {
			y := m.rows[i].Position.Y - th.Padding/2
			s.StrokeLine(
				geom.Vector2{X: pos.X + th.Padding, Y: y},
				geom.Vector2{X: pos.X + th.Width - th.Padding, Y: y},
				1, th.SeparatorColor)
		}
		for _, e := range g.Entries {
			row := m.rows[i]
			if e == rowHit || e == m.open {
				s.FillRect(row, th.Highlight)
			}
			baseline := row.Position.Y + (row.Size.Y-ascent)/2 + ascent
			s.FillText(e.Name, geom.Vector2{X: row.Position.X + th.Padding*2, Y: baseline}, font, surface.AlignLeft, th.TextColor)
			if e.SubMenu != nil {
				s.FillText("›", geom.Vector2{X: row.Right() - th.Padding*2, Y: baseline}, font, surface.AlignRight, th.MutedColor)
			}
			i++
		}
	}
	m.rendered = true

	m.hovered = rowHit
	if m.open != nil {
		sub := m.open.SubMenu
		subPos := geom.Vector2{X: m.bounds.Right(), Y: m.openRow.Position.Y - th.Padding}
		if deeper := sub.Render(s, subPos, pointer); deeper != nil {
			m.hovered = deeper
		}
	}
	return m.hovered
}
