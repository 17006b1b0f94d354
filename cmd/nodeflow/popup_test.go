package main

import (
	"slices"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"nodeflow/flow"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestFormPopup_SubmitAppliesAllFields(t *testing.T) {
	p := newFormPopup()
	var got []string
	p.SetForm("Add Input", []flow.Field{{Label: "Name"}, {Label: "Type", Value: "number"}}, func(v []string) {
		got = v
	})
	if !p.Active() {
		t.Fatal("popup not active")
	}

	p.Update(runes("in"))
	p.Update(tea.KeyMsg{Type: tea.KeyTab})
	p.Update(runes("s"))
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if want := []string{"in", "numbers"}; !slices.Equal(got, want) {
		t.Errorf("applied %q, want %q", got, want)
	}
	if p.Active() {
		t.Error("popup still active after submit")
	}
}

func TestFormPopup_CancelSkipsApply(t *testing.T) {
	p := newFormPopup()
	called := false
	p.SetString("Rename", "Add", func(string) { called = true })
	p.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if called {
		t.Error("cancel applied the value")
	}
	if p.Active() {
		t.Error("popup still active after cancel")
	}
}

func TestFormPopup_StringTrimsValue(t *testing.T) {
	p := newFormPopup()
	var got string
	p.SetString("Rename", "Add", func(v string) { got = v })
	p.Update(runes(" "))
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got != "Add" {
		t.Errorf("applied %q, want %q", got, "Add")
	}
}
