package flow

// Field is one labelled input of a form popup.
type Field struct {
	Label string
	Value string
}

// Popup shows modal prompts. Implementations call apply only when the user
// confirms; cancelling or dismissing leaves the graph untouched.
type Popup interface {
	SetString(title, initial string, apply func(string))
	SetForm(title string, fields []Field, apply func([]string))
}

// NopPopup discards every request.
type NopPopup struct{}

func (NopPopup) SetString(string, string, func(string)) {}

func (NopPopup) SetForm(string, []Field, func([]string)) {}
