package flow

import (
	"errors"
	"testing"
)

func TestRegistry_Create(t *testing.T) {
	r := NewRegistry()
	r.Publisher("std").Register("Source", func() *FlowNode { return source(0, 0) })

	n, err := r.Create("std", "Source")
	if err != nil || n.Title() != "A" {
		t.Fatalf("Create = %v, %v", n, err)
	}
	if _, err := r.Create("std", "Nope"); !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("unknown type err = %v", err)
	}
	if _, err := r.Create("nope", "Source"); !errors.Is(err, ErrUnknownTemplate) {
		t.Errorf("unknown publisher err = %v", err)
	}
}

func TestRegistry_MustCreatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCreate did not panic")
		}
	}()
	NewRegistry().MustCreate("std", "missing")
}

func TestRegistry_Widgets(t *testing.T) {
	r := NewRegistry()
	want := []string{"button", "color", "image", "number", "slider", "string", "text", "toggle"}
	got := r.WidgetTypes()
	if len(got) != len(want) {
		t.Fatalf("types = %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("types[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if _, err := r.CreateWidget("dial", nil); !errors.Is(err, ErrUnknownWidget) {
		t.Errorf("err = %v", err)
	}
}

func TestRegistry_NewNodeMenu(t *testing.T) {
	r := NewRegistry()
	r.Publisher("math").Register("Add", func() *FlowNode { return NewNode(NodeConfig{Title: "Add"}) })
	r.Publisher("math").Register("Sub", func() *FlowNode { return NewNode(NodeConfig{Title: "Sub"}) })
	r.Publisher("io").Register("Print", func() *FlowNode { return NewNode(NodeConfig{Title: "Print"}) })

	var spawned []string
	cfg := r.NewNodeMenu(func(n *FlowNode) { spawned = append(spawned, n.Title()) })
	if len(cfg.SubMenus) != 2 || cfg.SubMenus[0].Name != "math" || len(cfg.SubMenus[0].Items) != 2 {
		t.Fatalf("menu = %+v", cfg)
	}
	cfg.SubMenus[0].Items[1].Callback()
	cfg.SubMenus[1].Items[0].Callback()
	if len(spawned) != 2 || spawned[0] != "Sub" || spawned[1] != "Print" {
		t.Errorf("spawned = %q", spawned)
	}
}
