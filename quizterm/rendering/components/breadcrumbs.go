package components

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Breadcrumbs is a stack of "how do I get back here" constructors so nested
// views can pop back out with escape.
type Breadcrumbs struct {
	backtrace []func() tea.Model
}

func NewBreadcrumb() Breadcrumbs {
	return Breadcrumbs{}
}

// Push a function that creates a new model onto the stack.
// Returns the modified copy.
func (b Breadcrumbs) PushNew(modelFunc func() tea.Model) Breadcrumbs {
	b.backtrace = append(b.backtrace, modelFunc)

	return b
}

// Pop returns a pointer for an optional nil value.
func (b Breadcrumbs) Pop() *tea.Model {
	l := len(b.backtrace)

	if l == 0 {
		return nil
	}

	modelFunc := b.backtrace[l-1]
	b.backtrace = b.backtrace[0 : l-1]

	model := modelFunc()
	return &model
}

func (b Breadcrumbs) PopDefault(def func() tea.Model) tea.Model {
	poppedModel := b.Pop()

	if poppedModel == nil {
		return def()
	}

	return *poppedModel
}
