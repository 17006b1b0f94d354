package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"nodeflow/flow"
)

type formKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
	Next   key.Binding
	Prev   key.Binding
}

var defaultFormKeys = formKeyMap{
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up")),
}

type formField struct {
	label string
	input textinput.Model
}

// formPopup shows the graph's prompts as a modal text form. Only one prompt
// is open at a time; a new request replaces the current one.
type formPopup struct {
	title  string
	fields []formField
	focus  int
	apply  func([]string)
	keys   formKeyMap
}

func newFormPopup() *formPopup {
	return &formPopup{keys: defaultFormKeys}
}

func (p *formPopup) SetString(title, initial string, apply func(string)) {
	p.SetForm(title, []flow.Field{{Label: "Value", Value: initial}}, func(values []string) {
		apply(values[0])
	})
}

func (p *formPopup) SetForm(title string, fields []flow.Field, apply func([]string)) {
	p.title, p.apply, p.focus = title, apply, 0
	p.fields = p.fields[:0]
	for _, f := range fields {
		input := textinput.New()
		input.SetValue(f.Value)
		input.CursorEnd()
		p.fields = append(p.fields, formField{label: f.Label, input: input})
	}
	if len(p.fields) > 0 {
		p.fields[0].input.Focus()
	}
}

func (p *formPopup) Active() bool {
	return p.apply != nil
}

func (p *formPopup) close() {
	p.apply = nil
	p.fields = p.fields[:0]
}

func (p *formPopup) setFocus(i int) {
	if len(p.fields) == 0 {
		return
	}
	p.fields[p.focus].input.Blur()
	p.focus = (i + len(p.fields)) % len(p.fields)
	p.fields[p.focus].input.Focus()
}

func (p *formPopup) values() []string {
	out := make([]string, len(p.fields))
	for i, f := range p.fields {
		out[i] = strings.TrimSpace(f.input.Value())
	}
	return out
}

// Update handles a key while the popup is active. Cancel closes without
// applying.
func (p *formPopup) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.keys.Cancel):
		p.close()
		return nil
	case key.Matches(msg, p.keys.Submit):
		apply, values := p.apply, p.values()
		p.close()
		apply(values)
		return nil
	case key.Matches(msg, p.keys.Next):
		p.setFocus(p.focus + 1)
		return nil
	case key.Matches(msg, p.keys.Prev):
		p.setFocus(p.focus - 1)
		return nil
	}

	var cmd tea.Cmd
	if p.focus < len(p.fields) {
		p.fields[p.focus].input, cmd = p.fields[p.focus].input.Update(msg)
	}
	return cmd
}

func (p *formPopup) View() string {
	var b strings.Builder
	b.WriteString(dialogTitle.Render(p.title))
	b.WriteString("\n")
	for i, f := range p.fields {
		b.WriteString(inputLabel.Render(f.label))
		b.WriteString("\n")
		if i == p.focus {
			b.WriteString(inputFocused.Render(f.input.View()))
		} else {
			b.WriteString(inputBlurred.Render(f.input.View()))
		}
		b.WriteString("\n")
	}

	var help []string
	if len(p.fields) > 1 {
		help = append(help, helpKey.Render("tab")+" "+helpDesc.Render("next field"))
	}
	help = append(help,
		helpKey.Render("enter")+" "+helpDesc.Render("apply"),
		helpKey.Render("esc")+" "+helpDesc.Render("cancel"))
	b.WriteString(strings.Join(help, "  "))
	return dialog.Render(b.String())
}
