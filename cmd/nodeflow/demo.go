package main

import (
	"image/color"

	"nodeflow/flow"
	"nodeflow/geom"
)

const demoNote = `# nodeflow

Drag from an **output** to an *input* to connect ports.

* right click for the context menu
* space opens the quick menu
* scroll to zoom, drag the background to pan

` + "```\ns  export png\nq  quit\n```"

// demoRegistry registers the "std" publisher used by the editor and the
// exporter.
func demoRegistry() *flow.Registry {
	r := flow.NewRegistry()
	std := r.Publisher("std")

	std.Register("Number", func() *flow.FlowNode {
		return flow.NewNode(flow.NodeConfig{
			Title:      "Number",
			Editable:   true,
			Outputs:    []flow.PortConfig{{Name: "value", Type: "number"}},
			Widgets:    []flow.Widget{flow.NewNumberField("value", "value", 0)},
			Properties: map[string]flow.Value{"value": flow.Number(0)},
		})
	})
	std.Register("Slider", func() *flow.FlowNode {
		return flow.NewNode(flow.NodeConfig{
			Title:      "Slider",
			Outputs:    []flow.PortConfig{{Name: "value", Type: "number"}},
			Widgets:    []flow.Widget{flow.NewSlider("amount", "value", 0, 1, 0.5)},
			Properties: map[string]flow.Value{"value": flow.Number(0.5)},
		})
	})
	std.Register("Add", func() *flow.FlowNode {
		n := flow.NewNode(flow.NodeConfig{
			Title: "Add",
			Inputs: []flow.PortConfig{
				{Name: "a", Type: "number"},
				{Name: "b", Type: "number"},
			},
			Outputs: []flow.PortConfig{{Name: "sum", Type: "number"}},
			Widgets: []flow.Widget{flow.NewLabel("0", "sum")},
		})
		n.Properties().SubscribeAll(func(name string, _, _ flow.Value) {
			if name != "a" && name != "b" {
				return
			}
			a, _ := n.GetProperty("a")
			b, _ := n.GetProperty("b")
			x, _ := a.AsNumber()
			y, _ := b.AsNumber()
			n.SetProperty("sum", flow.Number(x+y))
		})
		return n
	})
	std.Register("Text", func() *flow.FlowNode {
		return flow.NewNode(flow.NodeConfig{
			Title:   "Text",
			Outputs: []flow.PortConfig{{Name: "text", Type: "string"}},
			Widgets: []flow.Widget{flow.NewTextField("text", "text", "hello")},
		})
	})
	std.Register("Color", func() *flow.FlowNode {
		return flow.NewNode(flow.NodeConfig{
			Title:   "Color",
			Outputs: []flow.PortConfig{{Name: "color", Type: "color"}},
			Widgets: []flow.Widget{flow.NewColorPicker("color", "color", color.RGBA{R: 0x4f, G: 0x9d, B: 0xff, A: 0xff})},
		})
	})
	std.Register("Toggle", func() *flow.FlowNode {
		return flow.NewNode(flow.NodeConfig{
			Title:   "Toggle",
			Outputs: []flow.PortConfig{{Name: "on", Type: "bool"}},
			Widgets: []flow.Widget{flow.NewToggle("enabled", "on", true)},
		})
	})
	std.Register("Display", func() *flow.FlowNode {
		return flow.NewNode(flow.NodeConfig{
			Title:    "Display",
			Editable: true,
			Inputs:   []flow.PortConfig{{Name: "value", Type: "number"}},
			Widgets:  []flow.Widget{flow.NewLabel("nothing yet", "value")},
		})
	})
	return r
}

// demoScene fills g with a small wired example.
func demoScene(g *flow.Graph) {
	reg := g.Nodes().Registry()
	place := func(typ string, x, y float64) *flow.FlowNode {
		n := reg.MustCreate("std", typ)
		n.SetPosition(geom.Vector2{X: x, Y: y})
		g.AddNode(n)
		return n
	}

	num := place("Number", 40, 60)
	slider := place("Slider", 40, 200)
	add := place("Add", 280, 120)
	display := place("Display", 500, 120)
	place("Color", 280, 300)

	nodes := g.Nodes()
	for _, link := range []struct {
		out    *flow.FlowNode
		outIdx int
		in     *flow.FlowNode
		inIdx  int
	}{
		{num, 0, add, 0},
		{slider, 0, add, 1},
		{add, 0, display, 0},
	} {
		if _, err := nodes.Connect(link.out, link.outIdx, link.in, link.inIdx); err != nil {
			panic(err)
		}
	}

	g.AddNote(flow.NewNote(flow.NoteConfig{
		Position: geom.Vector2{X: 720, Y: 40},
		Width:    360,
		Text:     demoNote,
	}))
}

// propagate copies each output's property, named after the port, into the
// property of the input it feeds.
func propagate(nodes *flow.NodeSubsystem) {
	for _, c := range nodes.Connections() {
		out, in := c.OutPort(), c.InPort()
		if out == nil || in == nil {
			continue
		}
		if v, ok := c.OutNode().GetProperty(out.Name()); ok {
			c.InNode().SetProperty(in.Name(), v)
		}
	}
}
