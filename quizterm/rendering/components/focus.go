package components

import tea "github.com/charmbracelet/bubbletea"

// Focusable is a form field that only reacts to input while it holds focus.
type Focusable interface {
	OnFocus(tea.Model, tea.Msg) (tea.Model, tea.Cmd)
	Blur()
	View() string
}

// Focus cycles input through a fixed set of form fields, blurring the rest.
type Focus struct {
	index int
	items []Focusable
}

func NewFocus(items ...Focusable) Focus {
	return Focus{items: items}
}

func (f *Focus) Next() {
	f.index = (f.index + 1) % len(f.items)
}

func (f *Focus) Prev() {
	f.index--
	if f.index < 0 {
		f.index = len(f.items) - 1
	}
}

// UpdateFocused routes msg to the focused field. The field decides what the
// msg does to the enclosing model, which is why the whole model passes through.
func (f *Focus) UpdateFocused(m tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	for i, item := range f.items {
		if i != f.index {
			item.Blur()
		}
	}
	return f.items[f.index].OnFocus(m, msg)
}

func (f *Focus) Views() []string {
	views := make([]string, len(f.items))
	for i, item := range f.items {
		views[i] = item.View()
	}
	return views
}
