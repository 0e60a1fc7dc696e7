package mainmenu

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sagewynn/whosthat/porygon"
	"github.com/sagewynn/whosthat/quizterm/rendering/components"
	"github.com/sagewynn/whosthat/quizterm/views/quizview"
)

// ResumeGame drops straight into the quiz view with a session restored from
// the on-disk mirror.
func ResumeGame(session *porygon.Session) (tea.Model, tea.Cmd) {
	mode := session.Mode
	restart := func() (tea.Model, tea.Cmd) {
		backtrack := components.NewBreadcrumb()
		entry := newNameEntry(mode, backtrack.PushNew(func() tea.Model { return NewModel() }))
		return entry, entry.Init()
	}

	backtrack := components.NewBreadcrumb().PushNew(func() tea.Model { return NewModel() })
	quiz := quizview.NewModel(session, backtrack, restart)
	return quiz, quiz.Init()
}
