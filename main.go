package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/sagewynn/whosthat/quizterm/global"
	"github.com/sagewynn/whosthat/quizterm/views/mainmenu"
)

type model struct {
	currentView tea.Model
	initCmd     tea.Cmd
}

func (m model) Init() tea.Cmd {
	return m.initCmd
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}

	newView, cmd := m.currentView.Update(msg)
	m.currentView = newView

	return m, cmd
}

func (m model) View() string {
	return m.currentView.View()
}

func main() {
	// optional, the config file covers everything the env does
	_ = godotenv.Load()

	global.GlobalInit(true)
	defer global.Scores.Close()

	var m model
	if session := global.Sessions.Load(); session != nil && !session.Over() {
		log.Info().Stringer("session", session.ID).Msg("resuming mirrored session")
		session.Attach(global.Lookup, global.Sessions)
		m.currentView, m.initCmd = mainmenu.ResumeGame(session)
	} else {
		m.currentView = mainmenu.NewModel()
		m.initCmd = m.currentView.Init()
	}

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal().Err(err).Msg("error running program")
	}
}
