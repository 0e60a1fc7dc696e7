package mainmenu

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sagewynn/whosthat/porygon"
	"github.com/sagewynn/whosthat/quizterm/rendering"
	"github.com/sagewynn/whosthat/quizterm/rendering/components"
)

type MainMenuModel struct {
	buttons components.MenuButtons
}

func NewModel() MainMenuModel {
	buttons := []components.ViewButton{
		{
			Name: "Solo Game",
			OnClick: func() (tea.Model, tea.Cmd) {
				backtrack := components.NewBreadcrumb()
				entry := newNameEntry(porygon.ModeSolo, backtrack.PushNew(func() tea.Model { return NewModel() }))
				return entry, entry.Init()
			},
		},
		{
			Name: "Duel",
			OnClick: func() (tea.Model, tea.Cmd) {
				backtrack := components.NewBreadcrumb()
				entry := newNameEntry(porygon.ModeDuel, backtrack.PushNew(func() tea.Model { return NewModel() }))
				return entry, entry.Init()
			},
		},
		{
			Name: "Leaderboard",
			OnClick: func() (tea.Model, tea.Cmd) {
				backtrack := components.NewBreadcrumb()
				board := newLeaderboardModel(backtrack.PushNew(func() tea.Model { return NewModel() }))
				return board, board.Init()
			},
		},
		{
			Name: "Options",
			OnClick: func() (tea.Model, tea.Cmd) {
				backtrack := components.NewBreadcrumb()
				return newOptionsMenu(backtrack.PushNew(func() tea.Model { return NewModel() })), nil
			},
		},
	}

	return MainMenuModel{
		buttons: components.NewMenuButton(buttons),
	}
}

func (m MainMenuModel) Init() tea.Cmd {
	return nil
}

func (m MainMenuModel) View() string {
	header := "Who's That Pokemon?"
	return rendering.GlobalCenter(lipgloss.JoinVertical(lipgloss.Center, header, m.buttons.View()))
}

func (m MainMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, startCmd := m.buttons.Update(msg)
	if newModel != nil {
		return newModel, startCmd
	}

	return m, nil
}
