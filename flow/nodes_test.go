package flow

import (
	"errors"
	"testing"

	"nodeflow/geom"
	"nodeflow/surface"
)

// Standard scene: source at the origin with its output at (150, 40), sink
// at (300, 0) with inputs at (300, 40) "number" and (300, 62) "string".
func scene(t *testing.T) (*fixture, *FlowNode, *FlowNode) {
	t.Helper()
	f := newFixture(SubsystemConfig{})
	a, b := source(0, 0), sink(300, 0)
	f.sub.AddNode(a)
	f.sub.AddNode(b)
	return f, a, b
}

func TestConnect_ByDragging(t *testing.T) {
	f, a, b := scene(t)

	f.click(150, 40)
	if len(f.sub.Connections()) != 1 {
		t.Fatalf("connections while dragging = %d", len(f.sub.Connections()))
	}
	if !f.sub.MouseDragEvent(geom.Vector2{X: 50}, 1) {
		t.Error("drag during connection was not handled")
	}
	f.release(300, 40)

	conns := f.sub.Connections()
	if len(conns) != 1 {
		t.Fatalf("connections = %d, want 1", len(conns))
	}
	c := conns[0]
	if c.OutNode() != a || c.OutPortIndex() != 0 || c.InNode() != b || c.InPortIndex() != 0 {
		t.Errorf("connection = %+v", c)
	}
	if c.Dangling() || !a.Output(0).HasConnections() || !b.Input(0).HasConnections() {
		t.Error("ports do not reference the connection")
	}
}

func TestConnect_FromInputSide(t *testing.T) {
	f, a, b := scene(t)
	f.click(300, 40)
	f.release(150, 40)

	conns := f.sub.Connections()
	if len(conns) != 1 || conns[0].OutNode() != a || conns[0].InNode() != b {
		t.Fatalf("connections = %+v", conns)
	}
}

func TestClickEnd_Discards(t *testing.T) {
	tests := []struct {
		name         string
		startX, endX float64
		startY, endY float64
	}{
		{name: "empty space", startX: 150, startY: 40, endX: 600, endY: 600},
		{name: "own endpoint", startX: 150, startY: 40, endX: 150, endY: 40},
		{name: "same direction", startX: 300, startY: 40, endX: 300, endY: 62},
		{name: "type mismatch", startX: 150, startY: 40, endX: 300, endY: 62},
		{name: "node body", startX: 150, startY: 40, endX: 375, endY: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, a, b := scene(t)
			f.click(tt.startX, tt.startY)
			f.release(tt.endX, tt.endY)

			if n := len(f.sub.Connections()); n != 0 {
				t.Fatalf("connections = %d, want 0", n)
			}
			for _, p := range append(a.Outputs(), b.Inputs()...) {
				if p.HasConnections() {
					t.Errorf("port %q still references a discarded connection", p.Name())
				}
			}
		})
	}
}

func TestConnect_InputHoldsOneConnection(t *testing.T) {
	f, a, b := scene(t)
	other := source(0, 200)
	f.sub.AddNode(other)

	first, err := f.sub.Connect(a, 0, b, 0)
	if err != nil {
		t.Fatal(err)
	}

	// other's output sits at (150, 240).
	f.click(150, 240)
	f.release(300, 40)

	conns := f.sub.Connections()
	if len(conns) != 1 {
		t.Fatalf("connections = %d, want 1", len(conns))
	}
	if conns[0] == first || conns[0].OutNode() != other {
		t.Errorf("input kept the old connection")
	}
	if got := b.Input(0).Connections(); len(got) != 1 || got[0] != conns[0] {
		t.Errorf("input connections = %v", got)
	}
	if a.Output(0).HasConnections() {
		t.Error("evicted connection still on its output")
	}
}

func TestPickUpExistingWire(t *testing.T) {
	f, a, b := scene(t)
	c, err := f.sub.Connect(a, 0, b, 0)
	if err != nil {
		t.Fatal(err)
	}

	f.click(300, 40)
	if c.InNode() != nil || b.Input(0).HasConnections() {
		t.Fatal("wire was not lifted off the input")
	}
	if len(f.sub.Connections()) != 1 {
		t.Fatalf("pickup created a new connection")
	}
	f.release(600, 600)

	if len(f.sub.Connections()) != 0 || a.Output(0).HasConnections() {
		t.Error("dropped wire was not discarded")
	}
}

func TestPickUpAndReattach(t *testing.T) {
	f, a, b := scene(t)
	c, _ := f.sub.Connect(a, 0, b, 0)

	f.click(300, 40)
	f.release(300, 40)

	if len(f.sub.Connections()) != 1 || c.InNode() != b || c.InPortIndex() != 0 {
		t.Errorf("wire was not reattached: %+v", c)
	}
}

func TestConnect_Errors(t *testing.T) {
	f, a, b := scene(t)
	if _, err := f.sub.Connect(a, 0, b, 1); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("type mismatch err = %v", err)
	}
	if _, err := f.sub.Connect(a, 3, b, 0); !errors.Is(err, ErrPortIndex) {
		t.Errorf("bad output err = %v", err)
	}
	if _, err := f.sub.Connect(a, 0, b, 9); !errors.Is(err, ErrPortIndex) {
		t.Errorf("bad input err = %v", err)
	}
}

func TestRemoveNode_RemovesConnections(t *testing.T) {
	f, a, b := scene(t)
	other := sink(300, 200)
	f.sub.AddNode(other)
	f.sub.Connect(a, 0, b, 0)
	f.sub.Connect(a, 0, other, 0)

	if err := f.sub.RemoveNode(a); err != nil {
		t.Fatal(err)
	}
	if len(f.sub.Nodes()) != 2 || len(f.sub.Connections()) != 0 {
		t.Fatalf("nodes = %d connections = %d", len(f.sub.Nodes()), len(f.sub.Connections()))
	}
	if b.Input(0).HasConnections() || other.Input(0).HasConnections() {
		t.Error("ports keep references to removed connections")
	}
}

func TestRemove_Errors(t *testing.T) {
	f, a, _ := scene(t)
	if err := f.sub.RemoveNodeAt(5); !errors.Is(err, ErrNodeIndex) {
		t.Errorf("RemoveNodeAt err = %v", err)
	}
	if err := f.sub.RemoveConnection(newConnection()); !errors.Is(err, ErrConnectionNotFound) {
		t.Errorf("RemoveConnection err = %v", err)
	}
	f.sub.RemoveNode(a)
	if err := f.sub.RemoveNode(a); !errors.Is(err, ErrNodeNotFound) {
		t.Errorf("second RemoveNode err = %v", err)
	}
	if len(f.sub.Nodes()) != 1 {
		t.Errorf("nodes = %d", len(f.sub.Nodes()))
	}
}

func TestRemoveConnection_Detaches(t *testing.T) {
	f, a, b := scene(t)
	c, _ := f.sub.Connect(a, 0, b, 0)
	if err := f.sub.RemoveConnection(c); err != nil {
		t.Fatal(err)
	}
	if a.Output(0).HasConnections() || b.Input(0).HasConnections() {
		t.Error("ports still reference the connection")
	}
}

func TestDrag_DividesByScale(t *testing.T) {
	f, a, _ := scene(t)
	f.cam.Zoom = 2

	// a's body at zoom 2 spans (0..300, 0..120).
	f.click(100, 20)
	if f.sub.Cursor() != CursorGrabbing {
		t.Errorf("cursor = %v, want grabbing", f.sub.Cursor())
	}
	if !f.sub.MouseDragEvent(geom.Vector2{X: 40, Y: -10}, f.cam.Zoom) {
		t.Fatal("drag not handled")
	}
	if got := a.Position(); got != (geom.Vector2{X: 20, Y: -5}) {
		t.Errorf("position = %+v, want {20 -5}", got)
	}
	f.sub.ClickEnd()
	if f.sub.MouseDragEvent(geom.Vector2{X: 1}, 1) {
		t.Error("drag after release was handled")
	}
}

func TestDrag_LockedNodeIsUnhandled(t *testing.T) {
	f, a, _ := scene(t)
	a.Lock()
	f.click(75, 10)
	if f.sub.MouseDragEvent(geom.Vector2{X: 10}, 1) {
		t.Error("locked node drag was handled")
	}
	if a.Position() != (geom.Vector2{}) {
		t.Errorf("locked node moved to %+v", a.Position())
	}
}

func TestClickStart_Selection(t *testing.T) {
	f, a, b := scene(t)

	f.click(75, 10)
	f.sub.ClickEnd()
	f.click(375, 10)
	f.sub.ClickEnd()
	if a.Selected() || !b.Selected() {
		t.Fatalf("selected a=%v b=%v", a.Selected(), b.Selected())
	}

	p := f.at(75, 10)
	f.sub.ClickStart(p, true)
	f.sub.ClickEnd()
	if !a.Selected() || !b.Selected() {
		t.Errorf("ctrl-click did not add to selection")
	}
}

func TestClickStart_Miss(t *testing.T) {
	f, _, _ := scene(t)
	p := f.at(600, 600)
	if f.sub.ClickStart(p, false) {
		t.Error("click on empty space reported a hit")
	}
	if f.sub.MouseDragEvent(geom.Vector2{X: 1}, 1) {
		t.Error("background drag was handled")
	}
}

func TestHover_TopmostNodeWins(t *testing.T) {
	f := newFixture(SubsystemConfig{})
	under, over := source(0, 0), source(50, 0)
	f.sub.AddNode(under)
	f.sub.AddNode(over)

	f.at(100, 10)
	if f.sub.HoveredNode() != over {
		t.Fatalf("hovered = %v, want the later node", f.sub.HoveredNode())
	}
	if f.sub.Cursor() != CursorGrab {
		t.Errorf("cursor = %v", f.sub.Cursor())
	}
}

func TestWidgetClick_CapturesGesture(t *testing.T) {
	f := newFixture(SubsystemConfig{})
	slider := NewSlider("s", "v", 0, 10, 0)
	n := NewNode(NodeConfig{Title: "W", Widgets: []Widget{slider}})
	f.sub.AddNode(n)

	f.at(75, 43)
	if f.sub.Cursor() != CursorPointer {
		t.Errorf("cursor = %v, want pointer", f.sub.Cursor())
	}
	f.sub.ClickStart(geom.Vector2{X: 75, Y: 43}, false)

	// Slider is 130 wide, so 65 graph units is half the range.
	f.at(600, 600)
	if !f.sub.MouseDragEvent(geom.Vector2{X: 65}, 1) {
		t.Fatal("widget drag not handled")
	}
	if n.selected {
		t.Error("widget click selected the node")
	}
	f.sub.ClickEnd()

	if got := slider.Value(); got != 5 {
		t.Errorf("slider = %v, want 5", got)
	}
	if v, _ := n.GetProperty("v"); !v.Equal(Number(5)) {
		t.Errorf("property v = %v", v)
	}
}

func TestOpenContextMenu(t *testing.T) {
	reg := NewRegistry()
	reg.Publisher("std").Register("Source", func() *FlowNode { return source(0, 0) })
	f := newFixture(SubsystemConfig{Registry: reg})
	a := source(0, 0)
	f.sub.AddNode(a)

	empty := f.sub.OpenContextMenu(f.cam, f.at(600, 600))
	if findItem(empty, "Delete Node") != nil {
		t.Error("background menu offers node actions")
	}
	findItem(empty, "Source").Callback()
	if len(f.sub.Nodes()) != 2 {
		t.Fatalf("new node not added")
	}
	if got := f.sub.Nodes()[1].Position(); got != (geom.Vector2{X: 600, Y: 600}) {
		t.Errorf("new node at %+v", got)
	}

	cfg := f.sub.OpenContextMenu(f.cam, f.at(75, 10))
	f.at(600, 600)
	findItem(cfg, "Lock Node").Callback()
	if !a.Locked() {
		t.Error("lock applied to the wrong node")
	}
	findItem(cfg, "Delete Node").Callback()
	if len(f.sub.Nodes()) != 1 || f.sub.Nodes()[0] == a {
		t.Error("delete removed the wrong node")
	}
}

func TestRender_DanglingConnectionFollowsPointer(t *testing.T) {
	f, _, _ := scene(t)
	f.click(150, 40)
	f.at(220, 90)

	if n := f.s.Count(surface.OpBezier); n != 1 {
		t.Fatalf("beziers = %d, want 1", n)
	}
	for _, op := range f.s.Ops {
		if op.Kind != surface.OpBezier {
			continue
		}
		start, end := op.Points[0], op.Points[len(op.Points)-1]
		if start != (geom.Vector2{X: 150, Y: 40}) || end != (geom.Vector2{X: 220, Y: 90}) {
			t.Errorf("curve = %v -> %v", start, end)
		}
	}
}
