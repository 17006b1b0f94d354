package flow

import (
	"log/slog"

	"nodeflow/camera"
	"nodeflow/geom"
	"nodeflow/menu"
	"nodeflow/surface"
	"nodeflow/theme"
)

// subsystem is one interactive layer of the canvas.
type subsystem interface {
	Render(s surface.Surface, cam *camera.Camera, pointer *geom.Vector2) bool
	ClickStart(point geom.Vector2, ctrl bool) bool
	MouseDragEvent(delta geom.Vector2, scale float64) bool
	ClickEnd()
	Cursor() Cursor
	OpenContextMenu(cam *camera.Camera, point geom.Vector2) menu.Config
}

// Graph hosts the node and note subsystems behind one camera and routes
// input to whichever layer was under the pointer in the last frame. Open
// menus take input first, then nodes, then notes. A drag nobody claims
// pans the camera.
type Graph struct {
	Camera *camera.Camera

	theme  *theme.Theme
	nodes  *NodeSubsystem
	notes  *NoteSubsystem
	logger *slog.Logger

	contextMenu *menu.ContextMenu
	menuPos     geom.Vector2
	quickMenu   *menu.QuickMenu
	quickPos    geom.Vector2
	quickBox    geom.Box

	overMenu bool
	active   subsystem
	gesture  subsystem
	panning  bool
}

func NewGraph(cfg SubsystemConfig) *Graph {
	cfg = cfg.withDefaults()
	return &Graph{
		Camera: camera.New(),
		theme:  cfg.Theme,
		nodes:  NewNodeSubsystem(cfg),
		notes:  NewNoteSubsystem(cfg),
		logger: cfg.Logger,
	}
}

func (g *Graph) Nodes() *NodeSubsystem { return g.nodes }

func (g *Graph) Notes() *NoteSubsystem { return g.notes }

func (g *Graph) Theme() *theme.Theme { return g.theme }

// AddNode is shorthand for Nodes().AddNode.
func (g *Graph) AddNode(n *FlowNode) {
	g.nodes.AddNode(n)
}

// AddNote is shorthand for Notes().AddNote.
func (g *Graph) AddNote(n *Note) {
	g.notes.AddNote(n)
}

// Frame renders one frame and decides which layer receives the next click.
// pointer is nil when the pointer is outside the surface.
func (g *Graph) Frame(s surface.Surface, pointer *geom.Vector2) {
	s.Clear(g.theme.Background)

	overNotes := g.notes.Render(s, g.Camera, pointer)
	overNodes := g.nodes.Render(s, g.Camera, pointer)

	g.overMenu = false
	if g.contextMenu != nil {
		g.contextMenu.Render(s, g.menuPos, pointer)
		g.overMenu = pointer != nil && g.contextMenu.Contains(*pointer)
	}
	if g.quickMenu != nil {
		g.quickBox = g.quickMenu.Render(s, g.quickPos)
		if pointer != nil && geom.InBox(g.quickBox, *pointer) {
			g.overMenu = true
		}
	}

	if g.gesture != nil {
		return
	}
	switch {
	case g.overMenu:
		g.active = nil
	case overNodes:
		g.active = g.nodes
	case overNotes:
		g.active = g.notes
	default:
		g.active = nil
	}
}

// ClickStart starts a gesture at a screen point. It reports whether a menu
// or a subsystem took the click; otherwise the gesture pans.
func (g *Graph) ClickStart(point geom.Vector2, ctrl bool) bool {
	if g.quickMenu != nil {
		if geom.InBox(g.quickBox, point) {
			if g.quickMenu.Click(point) {
				g.logger.Debug("quick menu item selected", "index", g.quickMenu.Selected())
				g.quickMenu = nil
			}
			return true
		}
		g.quickMenu = nil
	}

	if g.contextMenu != nil {
		if g.contextMenu.Contains(point) {
			if e := g.contextMenu.Hovered(); e != nil && e.Item != nil {
				g.CloseMenus()
				g.logger.Debug("menu item selected", "item", e.Name)
				if e.Item.Callback != nil {
					e.Item.Callback()
				}
			}
			return true
		}
		g.CloseMenus()
	}

	if g.active != nil && g.active.ClickStart(point, ctrl) {
		g.gesture = g.active
		return true
	}
	g.panning = true
	return false
}

// MouseDrag forwards a screen-space delta to the gesture owner, or pans.
func (g *Graph) MouseDrag(delta geom.Vector2) {
	if g.gesture != nil && g.gesture.MouseDragEvent(delta, g.Camera.Zoom) {
		return
	}
	if g.panning || g.gesture != nil {
		g.Camera.Pan(delta)
	}
}

func (g *Graph) ClickEnd() {
	if g.gesture != nil {
		g.gesture.ClickEnd()
		g.gesture = nil
	}
	g.panning = false
}

// Scroll zooms around the screen point at.
func (g *Graph) Scroll(deltaY float64, at geom.Vector2) {
	g.Camera.ScrollAt(deltaY, at)
}

func (g *Graph) menuConfig(point geom.Vector2) menu.Config {
	return g.nodes.OpenContextMenu(g.Camera, point).Merge(g.notes.OpenContextMenu(g.Camera, point))
}

// OpenContextMenu opens the hierarchical menu for what is under point.
func (g *Graph) OpenContextMenu(point geom.Vector2) {
	g.CloseMenus()
	g.contextMenu = menu.New(g.menuConfig(point), g.theme.Menu)
	g.menuPos = point
}

// OpenQuickMenu opens the searchable menu at point. New nodes land where
// it was opened.
func (g *Graph) OpenQuickMenu(point geom.Vector2) {
	g.CloseMenus()
	g.quickMenu = menu.NewQuick(g.menuConfig(point), g.theme.Menu)
	g.quickPos = point
}

func (g *Graph) CloseMenus() {
	if g.contextMenu != nil {
		g.contextMenu.Close()
	}
	g.contextMenu = nil
	g.quickMenu = nil
	g.overMenu = false
}

func (g *Graph) ContextMenu() *menu.ContextMenu { return g.contextMenu }

func (g *Graph) QuickMenu() *menu.QuickMenu { return g.quickMenu }

// Key routes a key name to the open menus. It reports whether the key was
// consumed.
func (g *Graph) Key(key string) bool {
	if g.quickMenu != nil {
		switch g.quickMenu.HandleKey(key) {
		case menu.KeyIgnored:
			return false
		case menu.KeyExecuted, menu.KeyClosed:
			g.quickMenu = nil
		}
		return true
	}
	if g.contextMenu != nil && key == "esc" {
		g.CloseMenus()
		return true
	}
	return false
}

// Paste inserts text into the quick menu search. It reports false when no
// quick menu is open.
func (g *Graph) Paste(text string) bool {
	if g.quickMenu == nil {
		return false
	}
	g.quickMenu.Paste(text)
	return true
}

func (g *Graph) Cursor() Cursor {
	switch {
	case g.gesture != nil:
		return g.gesture.Cursor()
	case g.panning:
		return CursorGrabbing
	case g.overMenu:
		return CursorPointer
	case g.active != nil:
		return g.active.Cursor()
	}
	return CursorDefault
}

// Extent returns the screen-space box covering every node and note. Note
// boxes come from the last frame. ok is false when the graph is empty.
func (g *Graph) Extent(s surface.Surface) (box geom.Box, ok bool) {
	add := func(b geom.Box) {
		if !ok {
			box, ok = b, true
			return
		}
		box = geom.Union(box, b)
	}
	for _, n := range g.nodes.Nodes() {
		add(n.CalculateBounds(s, g.Camera))
	}
	for _, n := range g.notes.Notes() {
		add(n.Bounds())
	}
	return box, ok
}
