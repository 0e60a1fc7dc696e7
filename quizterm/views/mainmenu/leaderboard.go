package mainmenu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"github.com/sagewynn/whosthat/porygon"
	"github.com/sagewynn/whosthat/quizterm/global"
	"github.com/sagewynn/whosthat/quizterm/rendering"
	"github.com/sagewynn/whosthat/quizterm/rendering/components"
)

const leaderboardSize = 10

type leaderboardModel struct {
	backtrack components.Breadcrumbs

	entries []porygon.ScoreEntry
	loaded  bool
	err     error
}

type leaderboardRowsMsg struct {
	entries []porygon.ScoreEntry
	err     error
}

func newLeaderboardModel(backtrack components.Breadcrumbs) leaderboardModel {
	return leaderboardModel{backtrack: backtrack}
}

func (m leaderboardModel) Init() tea.Cmd {
	return func() tea.Msg {
		if global.Scores == nil {
			return leaderboardRowsMsg{err: errors.New("the score database is unavailable")}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		entries, err := global.Scores.Top(ctx, leaderboardSize)
		return leaderboardRowsMsg{entries: entries, err: err}
	}
}

func (m leaderboardModel) View() string {
	header := "Top Trainers"

	var body string
	switch {
	case !m.loaded:
		body = rendering.FadedItemStyle.Render("loading...")
	case m.err != nil:
		body = rendering.WrongChoiceStyle.Render(m.err.Error())
	case len(m.entries) == 0:
		body = rendering.FadedItemStyle.Render("no finished runs yet")
	default:
		rows := lo.Map(m.entries, func(entry porygon.ScoreEntry, i int) string {
			return rendering.ItemStyle.Render(fmt.Sprintf(
				"%2d. %-24s %3d pts  best streak %d  (%d asked)",
				i+1, entry.PlayerName, entry.Score, entry.Streak, entry.TotalQuestions,
			))
		})
		body = lipgloss.JoinVertical(lipgloss.Left, rows...)
	}

	return rendering.GlobalCenter(lipgloss.JoinVertical(lipgloss.Center, header, "", body, "", rendering.FadedItemStyle.Render("esc back")))
}

func (m leaderboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case leaderboardRowsMsg:
		m.loaded = true
		m.entries = msg.entries
		m.err = msg.err

	case tea.KeyMsg:
		if key.Matches(msg, global.BackKey) {
			return m.backtrack.PopDefault(func() tea.Model { return NewModel() }), nil
		}
	}

	return m, nil
}
