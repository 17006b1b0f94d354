package flow

import (
	"nodeflow/camera"
	"nodeflow/geom"
	"nodeflow/surface"
)

type stringPrompt struct {
	title   string
	initial string
	apply   func(string)
}

type formPrompt struct {
	title  string
	fields []Field
	apply  func([]string)
}

// recordingPopup keeps the last request so tests can confirm it.
type recordingPopup struct {
	str  *stringPrompt
	form *formPrompt
}

func (p *recordingPopup) SetString(title, initial string, apply func(string)) {
	p.str = &stringPrompt{title: title, initial: initial, apply: apply}
}

func (p *recordingPopup) SetForm(title string, fields []Field, apply func([]string)) {
	p.form = &formPrompt{title: title, fields: fields, apply: apply}
}

type fixture struct {
	s   *surface.Recorder
	cam *camera.Camera
	sub *NodeSubsystem
}

func newFixture(cfg SubsystemConfig) *fixture {
	return &fixture{
		s:   surface.NewRecorder(1000, 800),
		cam: camera.New(),
		sub: NewNodeSubsystem(cfg),
	}
}

// at renders one frame with the pointer at p.
func (f *fixture) at(x, y float64) geom.Vector2 {
	p := geom.Vector2{X: x, Y: y}
	f.s.Reset()
	f.sub.Render(f.s, f.cam, &p)
	return p
}

// click renders at the point and presses there.
func (f *fixture) click(x, y float64) {
	p := f.at(x, y)
	f.sub.ClickStart(p, false)
}

// release renders at the point and releases there.
func (f *fixture) release(x, y float64) {
	f.at(x, y)
	f.sub.ClickEnd()
}

// Layout with the default theme and the recorder's metrics: a one-letter
// title is 16 high, so the first port row is centered 40 below the node's
// top and rows are 22 apart. Nodes are 150 wide.
func source(x, y float64) *FlowNode {
	return NewNode(NodeConfig{
		Title:    "A",
		Position: geom.Vector2{X: x, Y: y},
		Outputs:  []PortConfig{{Name: "out", Type: "number"}},
	})
}

func sink(x, y float64) *FlowNode {
	return NewNode(NodeConfig{
		Title:    "B",
		Position: geom.Vector2{X: x, Y: y},
		Inputs: []PortConfig{
			{Name: "in", Type: "number"},
			{Name: "s", Type: "string"},
		},
	})
}
