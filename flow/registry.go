package flow

import (
	"fmt"
	"image/color"
	"sort"

	"nodeflow/menu"
)

// NodeFactory builds a fresh node for a template.
type NodeFactory func() *FlowNode

// WidgetFactory builds a widget for the node it will be added to.
type WidgetFactory func(n *FlowNode) Widget

// Publisher is a namespace of node templates.
type Publisher struct {
	name      string
	templates map[string]NodeFactory
	order     []string
}

func NewPublisher(name string) *Publisher {
	return &Publisher{name: name, templates: make(map[string]NodeFactory)}
}

func (p *Publisher) Name() string {
	return p.name
}

// Register adds or replaces a template. Registration order is kept for
// menus.
func (p *Publisher) Register(typ string, f NodeFactory) {
	if _, ok := p.templates[typ]; !ok {
		p.order = append(p.order, typ)
	}
	p.templates[typ] = f
}

func (p *Publisher) Types() []string {
	return append([]string(nil), p.order...)
}

func (p *Publisher) Create(typ string) (*FlowNode, error) {
	f, ok := p.templates[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownTemplate, p.name, typ)
	}
	return f(), nil
}

// Registry maps publisher namespaces and widget type names to
// constructors.
type Registry struct {
	publishers map[string]*Publisher
	order      []string
	widgets    map[string]WidgetFactory
}

// NewRegistry returns a registry preloaded with the built-in widget types.
func NewRegistry() *Registry {
	r := &Registry{
		publishers: make(map[string]*Publisher),
		widgets:    make(map[string]WidgetFactory),
	}
	r.RegisterWidget("button", func(*FlowNode) Widget { return NewButton("Button", nil) })
	r.RegisterWidget("number", func(*FlowNode) Widget { return NewNumberField("Number", "", 0) })
	r.RegisterWidget("string", func(*FlowNode) Widget { return NewTextField("Text", "", "") })
	r.RegisterWidget("toggle", func(*FlowNode) Widget { return NewToggle("Toggle", "", false) })
	r.RegisterWidget("slider", func(*FlowNode) Widget { return NewSlider("Slider", "", 0, 1, 0) })
	r.RegisterWidget("color", func(*FlowNode) Widget {
		return NewColorPicker("Color", "", color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	})
	r.RegisterWidget("text", func(*FlowNode) Widget { return NewLabel("Label", "") })
	r.RegisterWidget("image", func(*FlowNode) Widget { return NewImage(nil) })
	return r
}

// Publisher returns the named publisher, creating it on first use.
func (r *Registry) Publisher(name string) *Publisher {
	if p, ok := r.publishers[name]; ok {
		return p
	}
	p := NewPublisher(name)
	r.publishers[name] = p
	r.order = append(r.order, name)
	return p
}

func (r *Registry) Publishers() []*Publisher {
	out := make([]*Publisher, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.publishers[name])
	}
	return out
}

// Create instantiates a template by publisher and type name.
func (r *Registry) Create(publisher, typ string) (*FlowNode, error) {
	p, ok := r.publishers[publisher]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownTemplate, publisher, typ)
	}
	return p.Create(typ)
}

// MustCreate is Create for templates known to exist. It panics otherwise.
func (r *Registry) MustCreate(publisher, typ string) *FlowNode {
	n, err := r.Create(publisher, typ)
	if err != nil {
		panic(err)
	}
	return n
}

func (r *Registry) RegisterWidget(typ string, f WidgetFactory) {
	r.widgets[typ] = f
}

// WidgetTypes returns the registered widget type names, sorted.
func (r *Registry) WidgetTypes() []string {
	out := make([]string, 0, len(r.widgets))
	for typ := range r.widgets {
		out = append(out, typ)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) CreateWidget(typ string, n *FlowNode) (Widget, error) {
	f, ok := r.widgets[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownWidget, typ)
	}
	return f(n), nil
}

// NewNodeMenu builds the "New Node" submenu with one submenu per
// publisher. Picking an entry creates the node and hands it to spawn.
func (r *Registry) NewNodeMenu(spawn func(*FlowNode)) menu.Config {
	cfg := menu.Config{Name: "New Node"}
	for _, p := range r.Publishers() {
		p := p
		sub := menu.Config{Name: p.name}
		for _, typ := range p.order {
			typ := typ
			sub.Items = append(sub.Items, menu.Item{Name: typ, Callback: func() {
				spawn(p.MustCreate(typ))
			}})
		}
		cfg.SubMenus = append(cfg.SubMenus, sub)
	}
	return cfg
}

// MustCreate panics when typ is not registered.
func (p *Publisher) MustCreate(typ string) *FlowNode {
	n, err := p.Create(typ)
	if err != nil {
		panic(err)
	}
	return n
}
