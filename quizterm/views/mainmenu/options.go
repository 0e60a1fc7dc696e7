package mainmenu

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/sagewynn/whosthat/pokeapi"
	"github.com/sagewynn/whosthat/quizterm/global"
	"github.com/sagewynn/whosthat/quizterm/rendering"
	"github.com/sagewynn/whosthat/quizterm/rendering/components"
)

type optionsMenuModel struct {
	backtrack components.Breadcrumbs

	focus           components.Focus
	shouldShowError bool
	err             error
}

type clearErrorMessage struct {
	t time.Time
}

type playerNameInput struct {
	inner textinput.Model
}

func (p *playerNameInput) OnFocus(m tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	opM := m.(optionsMenuModel)
	cmds := []tea.Cmd{p.inner.Focus()}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, global.SelectKey) {
			global.Opt.LocalPlayerName = p.inner.Value()
			if err := global.SaveConfig(global.Opt); err != nil {
				cmds = append(cmds, opM.showError(err))
			}
		}
	}

	var uCmd tea.Cmd
	p.inner, uCmd = p.inner.Update(msg)
	cmds = append(cmds, uCmd)

	return opM, tea.Batch(cmds...)
}

func (p *playerNameInput) Blur() {
	p.inner.Blur()
}

func (p *playerNameInput) View() string {
	return lipgloss.JoinVertical(lipgloss.Center, "Default Trainer Name", p.inner.View())
}

type apiURLInput struct {
	inner textinput.Model
}

func (a *apiURLInput) OnFocus(m tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	opM := m.(optionsMenuModel)
	cmds := []tea.Cmd{a.inner.Focus()}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, global.SelectKey) {
			url := a.inner.Value()
			if url == "" {
				url = pokeapi.DefaultBaseURL
				a.inner.SetValue(url)
			}

			global.Opt.APIBaseURL = url
			global.Lookup = pokeapi.NewClient(url)
			if err := global.SaveConfig(global.Opt); err != nil {
				cmds = append(cmds, opM.showError(err))
			}
		}
	}

	var uCmd tea.Cmd
	a.inner, uCmd = a.inner.Update(msg)
	cmds = append(cmds, uCmd)

	return opM, tea.Batch(cmds...)
}

func (a *apiURLInput) Blur() {
	a.inner.Blur()
}

func (a *apiURLInput) View() string {
	return lipgloss.JoinVertical(lipgloss.Center, "PokeAPI Base URL", a.inner.View())
}

func newOptionsMenu(backtrack components.Breadcrumbs) optionsMenuModel {
	namePrompt := textinput.New()
	namePrompt.Focus()
	namePrompt.SetValue(global.Opt.LocalPlayerName)

	urlPrompt := textinput.New()
	urlPrompt.SetValue(global.Opt.APIBaseURL)

	return optionsMenuModel{
		backtrack: backtrack,
		focus:     components.NewFocus(&playerNameInput{namePrompt}, &apiURLInput{urlPrompt}),
	}
}

func (m optionsMenuModel) Init() tea.Cmd { return nil }
func (m optionsMenuModel) View() string {
	if m.shouldShowError {
		return rendering.GlobalCenter(lipgloss.JoinVertical(lipgloss.Center, "Error!", rendering.ButtonStyle.Render(m.err.Error())))
	} else {
		return rendering.GlobalCenter(lipgloss.JoinVertical(lipgloss.Center, m.focus.Views()...))
	}
}

func (m optionsMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0)

	switch msg := msg.(type) {
	case clearErrorMessage:
		m.shouldShowError = false
		m.err = nil
	case tea.KeyMsg:
		if m.shouldShowError {
			return m, nil
		}

		if key.Matches(msg, global.DownTabKey) {
			m.focus.Next()
		}

		if key.Matches(msg, global.UpTabKey) {
			m.focus.Prev()
		}

		if key.Matches(msg, global.BackKey) {
			return m.backtrack.PopDefault(func() tea.Model { return m }), nil
		}
	}

	newModel, focusCmd := m.focus.UpdateFocused(m, msg)
	m = newModel.(optionsMenuModel)
	cmds = append(cmds, focusCmd)

	return m, tea.Batch(cmds...)
}

func (m *optionsMenuModel) showError(err error) tea.Cmd {
	m.shouldShowError = true
	m.err = err

	log.Err(err).Msg("error in options")

	return tea.Tick(time.Second*2, func(t time.Time) tea.Msg {
		return clearErrorMessage{t}
	})
}
