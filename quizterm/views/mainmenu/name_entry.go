package mainmenu

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/sagewynn/whosthat/porygon"
	"github.com/sagewynn/whosthat/quizterm/global"
	"github.com/sagewynn/whosthat/quizterm/rendering"
	"github.com/sagewynn/whosthat/quizterm/rendering/components"
	"github.com/sagewynn/whosthat/quizterm/views/quizview"
)

type nameEntryModel struct {
	backtrack components.Breadcrumbs
	mode      porygon.Mode
	inputs    []textinput.Model
	focused   int
	err       error
}

type clearNameErrorMsg struct{}

func newNameEntry(mode porygon.Mode, backtrack components.Breadcrumbs) nameEntryModel {
	inputs := make([]textinput.Model, mode.PlayerCount())
	for i := range inputs {
		input := textinput.New()
		input.CharLimit = porygon.MaxNameLength
		input.Placeholder = fmt.Sprintf("Player %d", i+1)
		inputs[i] = input
	}

	if global.Opt.LocalPlayerName != "" {
		inputs[0].SetValue(global.Opt.LocalPlayerName)
	}
	inputs[0].Focus()

	return nameEntryModel{
		backtrack: backtrack,
		mode:      mode,
		inputs:    inputs,
	}
}

func (m nameEntryModel) Init() tea.Cmd { return textinput.Blink }

func (m nameEntryModel) View() string {
	title := "Enter your name"
	if m.mode == porygon.ModeDuel {
		title = "Enter both trainer names"
	}

	parts := []string{title, ""}
	for i, input := range m.inputs {
		label := fmt.Sprintf("Player %d", i+1)
		parts = append(parts, lipgloss.JoinVertical(lipgloss.Center, label, input.View()))
	}

	if m.err != nil {
		parts = append(parts, "", rendering.WrongChoiceStyle.Render(m.err.Error()))
	}
	parts = append(parts, "", rendering.FadedItemStyle.Render("enter start - tab switch - esc back"))

	return rendering.GlobalCenter(lipgloss.JoinVertical(lipgloss.Center, parts...))
}

func (m nameEntryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clearNameErrorMsg:
		m.err = nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, global.BackKey):
			return m.backtrack.PopDefault(func() tea.Model { return NewModel() }), nil

		case key.Matches(msg, global.DownTabKey):
			m.focusInput(m.focused + 1)
			return m, nil

		case key.Matches(msg, global.UpTabKey):
			m.focusInput(m.focused - 1)
			return m, nil

		case key.Matches(msg, global.SelectKey):
			// enter moves through empty inputs first, then starts the game
			if m.focused < len(m.inputs)-1 {
				m.focusInput(m.focused + 1)
				return m, nil
			}
			return m.startGame()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *nameEntryModel) focusInput(index int) {
	if index < 0 {
		index = len(m.inputs) - 1
	}
	if index >= len(m.inputs) {
		index = 0
	}

	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.inputs[index].Focus()
	m.focused = index
}

func (m nameEntryModel) startGame() (tea.Model, tea.Cmd) {
	names := lo.Map(m.inputs, func(input textinput.Model, _ int) string {
		return input.Value()
	})

	session, err := porygon.NewSession(m.mode, names...)
	if err != nil {
		m.err = err
		return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
			return clearNameErrorMsg{}
		})
	}

	session.MaxID = global.Opt.MaxPokemonID
	session.Attach(global.Lookup, global.Sessions)

	mode := m.mode
	restart := func() (tea.Model, tea.Cmd) {
		backtrack := components.NewBreadcrumb()
		entry := newNameEntry(mode, backtrack.PushNew(func() tea.Model { return NewModel() }))
		return entry, entry.Init()
	}

	backtrack := components.NewBreadcrumb().PushNew(func() tea.Model { return NewModel() })
	quiz := quizview.NewModel(session, backtrack, restart)
	return quiz, quiz.Init()
}
