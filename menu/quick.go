package menu

import (
	"strings"

	"nodeflow/geom"
	"nodeflow/surface"
	"nodeflow/theme"
)

// QuickItem is a leaf command flattened out of a Config tree.
type QuickItem struct {
	Name     string
	Path     []string
	Callback func()
}

// Breadcrumb joins the item's enclosing menu names.
func (q QuickItem) Breadcrumb() string {
	return strings.Join(q.Path, " / ")
}

type quickGroup struct {
	name  string
	items []QuickItem
}

// QuickMenu lists every leaf of a menu tree in one filtered list. The
// selection index counts only items that pass the current query.
type QuickMenu struct {
	groups   []quickGroup
	query    string
	selected int
	scroll   int
	theme    theme.MenuTheme

	// rows are the result boxes of the last Render, rows[i] showing
	// visible item scroll+i.
	rows []geom.Box
}

func NewQuick(cfg Config, th theme.MenuTheme) *QuickMenu {
	q := &QuickMenu{theme: th}
	q.flatten(nil, cfg)
	return q
}

func (q *QuickMenu) flatten(path []string, cfg Config) {
	if cfg.Name != "" {
		path = append(append([]string(nil), path...), cfg.Name)
	}
	if len(cfg.Items) > 0 {
		g := quickGroup{name: strings.Join(path, " / ")}
		for _, item := range cfg.Items {
			g.items = append(g.items, QuickItem{Name: item.Name, Path: path, Callback: item.Callback})
		}
		q.groups = append(q.groups, g)
	}
	for _, sub := range cfg.SubMenus {
		q.flatten(path, sub)
	}
}

func (q *QuickMenu) matches(item QuickItem) bool {
	if q.query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(item.Name), strings.ToLower(q.query))
}

// Visible returns the items passing the current query, in display order.
func (q *QuickMenu) Visible() []QuickItem {
	var out []QuickItem
	for _, g := range q.groups {
		for _, item := range g.items {
			if q.matches(item) {
				out = append(out, item)
			}
		}
	}
	return out
}

func (q *QuickMenu) Query() string {
	return q.query
}

func (q *QuickMenu) SetQuery(s string) {
	q.query = s
	q.selected = 0
	q.scroll = 0
}

// Type appends text to the query.
func (q *QuickMenu) Type(s string) {
	q.SetQuery(q.query + s)
}

// Paste appends the first line of text to the query.
func (q *QuickMenu) Paste(text string) {
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}
	q.Type(text)
}

func (q *QuickMenu) Backspace() {
	if q.query == "" {
		return
	}
	r := []rune(q.query)
	q.SetQuery(string(r[:len(r)-1]))
}

func (q *QuickMenu) Selected() int {
	return q.selected
}

func (q *QuickMenu) MoveUp() {
	if q.selected > 0 {
		q.selected--
	}
}

// MoveDown advances the selection, stopping at the last visible item.
func (q *QuickMenu) MoveDown() {
	if q.selected < len(q.Visible())-1 {
		q.selected++
	}
}

// Execute runs the selected item's callback. It reports false when nothing
// is selectable.
func (q *QuickMenu) Execute() bool {
	remaining := q.selected
	for _, g := range q.groups {
		for _, item := range g.items {
			if !q.matches(item) {
				continue
			}
			if remaining == 0 {
				if item.Callback != nil {
					item.Callback()
				}
				return true
			}
			remaining--
		}
	}
	return false
}

// ItemAt returns the visible index of the result row under p in the last
// Render, or -1.
func (q *QuickMenu) ItemAt(p geom.Vector2) int {
	for i, row := range q.rows {
		if geom.InBox(row, p) {
			return q.scroll + i
		}
	}
	return -1
}

// Click selects and runs the result row under p. It reports false when p
// is not on a row.
func (q *QuickMenu) Click(p geom.Vector2) bool {
	i := q.ItemAt(p)
	if i < 0 {
		return false
	}
	q.selected = i
	return q.Execute()
}

// KeyResult tells the caller what a key press did to the menu.
type KeyResult int

const (
	KeyIgnored KeyResult = iota
	KeyHandled
	KeyExecuted
	KeyClosed
)

// HandleKey routes a key name (as bubbletea spells them) into the menu.
func (q *QuickMenu) HandleKey(key string) KeyResult {
	switch key {
	case "up", "ctrl+p":
		q.MoveUp()
	case "down", "ctrl+n", "tab":
		q.MoveDown()
	case "enter":
		if q.Execute() {
			return KeyExecuted
		}
		return KeyClosed
	case "esc":
		return KeyClosed
	case "backspace":
		q.Backspace()
	case "space":
		q.Type(" ")
	default:
		if len([]rune(key)) != 1 {
			return KeyIgnored
		}
		q.Type(key)
	}
	return KeyHandled
}

// Render draws the search box and the visible window of results with the
// selection kept in view.
func (q *QuickMenu) Render(s surface.Surface, pos geom.Vector2) geom.Box {
	th := q.theme
	visible := q.Visible()
	maxRows := th.MaxVisible
	if maxRows <= 0 {
		maxRows = len(visible)
	}
	if q.selected < q.scroll {
		q.scroll = q.selected
	}
	if q.selected >= q.scroll+maxRows {
		q.scroll = q.selected - maxRows + 1
	}
	end := min(len(visible), q.scroll+maxRows)

	width := th.Width * 2
	rows := end - q.scroll
	bounds := geom.Box{
		Position: pos,
		Size:     geom.Vector2{X: width, Y: th.Padding*3 + th.ItemHeight*float64(rows+1)},
	}
	s.FillRoundedRect(bounds, th.Radius, th.Background)

	font := surface.Font{Size: th.FontSize}
	small := surface.Font{Size: th.FontSize * 0.8}
	ascent := s.MeasureText("M", font).Ascent

	search := geom.Box{
		Position: geom.Vector2{X: pos.X + th.Padding, Y: pos.Y + th.Padding},
		Size:     geom.Vector2{X: width - th.Padding*2, Y: th.ItemHeight},
	}
	s.StrokeRoundedRect(search, th.Radius, 1, th.SeparatorColor)
	baseline := search.Position.Y + (search.Size.Y-ascent)/2 + ascent
	if q.query == "" {
		s.FillText("Search...", geom.Vector2{X: search.Position.X + th.Padding, Y: baseline}, font, surface.AlignLeft, th.MutedColor)
	} else {
		s.FillText(q.query, geom.Vector2{X: search.Position.X + th.Padding, Y: baseline}, font, surface.AlignLeft, th.TextColor)
	}

	q.rows = q.rows[:0]
	y := search.Bottom() + th.Padding
	for i := q.scroll; i < end; i++ {
		item := visible[i]
		row := geom.Box{
			Position: geom.Vector2{X: pos.X, Y: y},
			Size:     geom.Vector2{X: width, Y: th.ItemHeight},
		}
		q.rows = append(q.rows, row)
		if i == q.selected {
			s.FillRect(row, th.Highlight)
		}
		baseline := row.Position.Y + (row.Size.Y-ascent)/2 + ascent
		s.FillText(item.Name, geom.Vector2{X: row.Position.X + th.Padding*2, Y: baseline}, font, surface.AlignLeft, th.TextColor)
		if crumb := item.Breadcrumb(); crumb != "" {
			s.FillText(crumb, geom.Vector2{X: row.Right() - th.Padding*2, Y: baseline}, small, surface.AlignRight, th.MutedColor)
		}
		y += th.ItemHeight
	}
	return bounds
}
