package quizview

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"github.com/sagewynn/whosthat/porygon"
	"github.com/sagewynn/whosthat/quizterm/global"
	"github.com/sagewynn/whosthat/quizterm/rendering"
	"github.com/sagewynn/whosthat/quizterm/rendering/components"
)

// the one sprite every terminal can render
const silhouetteArt = `
   ▄▄█████▄▄
  ██▀     ▀██
  ▀       ▄██
         ▄█▀
        ██
        ██

        ██`

var choiceKeys = key.NewBinding(
	key.WithKeys("1", "2", "3", "4"),
)

type QuizModel struct {
	backtrack components.Breadcrumbs
	restart   func() (tea.Model, tea.Cmd)

	session    *porygon.Session
	index      int
	loading    bool
	loadErr    error
	notice     string
	revealSeen bool
}

type questionMsg struct {
	question *porygon.Question
}

type questionErrMsg struct {
	err error
}

type scoreSaveFailedMsg struct {
	err error
}

type clearNoticeMsg struct{}

// NewModel wraps an attached session. restart is called after game over when
// the player wants another run; it comes in as a closure to keep this package
// from importing the menu views.
func NewModel(session *porygon.Session, backtrack components.Breadcrumbs, restart func() (tea.Model, tea.Cmd)) QuizModel {
	return QuizModel{
		backtrack: backtrack,
		restart:   restart,
		session:   session,
		loading:   session.Current == nil && !session.Over(),
	}
}

func (m QuizModel) Init() tea.Cmd {
	if m.loading {
		return m.loadQuestion()
	}
	return nil
}

func (m QuizModel) loadQuestion() tea.Cmd {
	session := m.session
	return func() tea.Msg {
		question, err := session.NextQuestion(context.Background())
		if err != nil {
			return questionErrMsg{err}
		}
		return questionMsg{question}
	}
}

func appendScore(entry porygon.ScoreEntry) tea.Cmd {
	return func() tea.Msg {
		if global.Scores == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := global.Scores.Append(ctx, entry); err != nil {
			log.Err(err).Str("player", entry.PlayerName).Msg("failed to record score")
			return scoreSaveFailedMsg{err}
		}
		return nil
	}
}

func (m QuizModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case questionMsg:
		m.loading = false
		if err := m.session.Commit(msg.question); err != nil {
			if errors.Is(err, porygon.ErrStaleQuestion) {
				// a reset beat this fetch, drop it
				log.Debug().Msg("discarding stale question")
				return m, nil
			}
			m.loadErr = err
			return m, nil
		}
		m.index = 0

	case questionErrMsg:
		m.loading = false
		m.loadErr = msg.err

	case scoreSaveFailedMsg:
		m.notice = "couldn't save the score to the leaderboard"
		return m, tea.Tick(4*time.Second, func(time.Time) tea.Msg {
			return clearNoticeMsg{}
		})

	case clearNoticeMsg:
		m.notice = ""

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m QuizModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, global.BackKey) {
		if m.session.Over() {
			// nothing worth resuming anymore
			if err := global.Sessions.Clear(); err != nil {
				log.Err(err).Msg("failed to clear session mirror")
			}
		}
		return m.backtrack.PopDefault(func() tea.Model { return m }), nil
	}

	if m.loading {
		return m, nil
	}

	if m.loadErr != nil {
		if key.Matches(msg, global.SelectKey) {
			m.loadErr = nil
			m.loading = true
			return m, m.loadQuestion()
		}
		return m, nil
	}

	if m.session.Over() {
		if key.Matches(msg, global.SelectKey) {
			if m.finalRevealPending() {
				m.revealSeen = true
				return m, nil
			}
			m.session.Reset()
			if err := global.Sessions.Clear(); err != nil {
				log.Err(err).Msg("failed to clear session mirror")
			}
			return m.restart()
		}
		return m, nil
	}

	if m.session.Current == nil {
		return m, nil
	}

	if m.session.Answered {
		if key.Matches(msg, global.SelectKey) {
			m.loading = true
			return m, m.loadQuestion()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, global.MoveDownKey):
		m.index++
		if m.index >= len(m.session.Current.Choices) {
			m.index = 0
		}

	case key.Matches(msg, global.MoveUpKey):
		m.index--
		if m.index < 0 {
			m.index = len(m.session.Current.Choices) - 1
		}

	case key.Matches(msg, choiceKeys):
		m.index = int(msg.String()[0] - '1')
		return m.submit()

	case key.Matches(msg, global.SelectKey):
		return m.submit()
	}

	return m, nil
}

func (m QuizModel) finalRevealPending() bool {
	return !m.revealSeen && m.session.Answered && m.session.Current != nil
}

func (m QuizModel) submit() (tea.Model, tea.Cmd) {
	choice := m.session.Current.Choices[m.index]

	entry := m.session.SubmitAnswer(choice)
	if entry != nil {
		return m, appendScore(*entry)
	}
	return m, nil
}

func (m QuizModel) View() string {
	parts := []string{m.scoreboard(), ""}

	switch {
	case m.loading:
		parts = append(parts,
			silhouetteArt, "",
			rendering.FadedItemStyle.Render("a wild pokemon approaches..."))

	case m.loadErr != nil:
		message := "Couldn't fetch the next pokemon."
		if errors.Is(m.loadErr, porygon.ErrQuestionUnavailable) {
			message = "That pokemon is hiding. Try again!"
		}
		parts = append(parts,
			rendering.WrongChoiceStyle.Render(message), "",
			rendering.FadedItemStyle.Render("enter retry - esc menu"))

	case m.session.Over():
		// the run-ending answer still gets its reveal before the game over screen
		if m.finalRevealPending() {
			parts = append(parts, m.round()...)
		} else {
			parts = append(parts, m.finalScreen()...)
		}

	case m.session.Current != nil:
		parts = append(parts, m.round()...)
	}

	if m.notice != "" {
		parts = append(parts, "", rendering.FadedItemStyle.Render(m.notice))
	}

	return rendering.GlobalCenter(lipgloss.JoinVertical(lipgloss.Center, parts...))
}

func (m QuizModel) round() []string {
	session := m.session
	question := session.Current

	parts := []string{"Who's that pokemon?"}
	if session.Mode == porygon.ModeDuel {
		parts = append(parts, rendering.HighlightedItemStyle.Render(fmt.Sprintf("%s's turn", session.Active().Name)))
	}

	if session.Answered {
		if session.LastCorrect {
			parts = append(parts, rendering.CorrectChoiceStyle.Render("Correct!"))
		} else {
			parts = append(parts, rendering.WrongChoiceStyle.Render(fmt.Sprintf("It was %s!", question.SubjectName)))
		}
		parts = append(parts, rendering.FadedItemStyle.Render(question.Sprite))
	} else {
		parts = append(parts, silhouetteArt)
	}
	parts = append(parts, "")

	for i, choice := range question.Choices {
		parts = append(parts, m.renderChoice(i, choice))
	}

	hint := "enter pick - 1-4 quick pick - esc menu"
	if session.Answered {
		hint = "enter next - esc menu"
	}
	parts = append(parts, "", rendering.FadedItemStyle.Render(hint))

	return parts
}

func (m QuizModel) renderChoice(i int, choice string) string {
	session := m.session
	label := fmt.Sprintf("%d. %s", i+1, choice)

	if !session.Answered {
		if i == m.index {
			return rendering.HighlightedChoiceStyle.Render(label)
		}
		return rendering.ChoiceStyle.Render(label)
	}

	switch {
	case choice == session.Current.SubjectName:
		return rendering.CorrectChoiceStyle.Render(label)
	case choice == session.Selected:
		return rendering.WrongChoiceStyle.Render(label)
	default:
		return rendering.ChoiceStyle.Foreground(rendering.FadedColor).Render(label)
	}
}

func (m QuizModel) finalScreen() []string {
	parts := []string{"Game Over"}

	if m.session.Mode == porygon.ModeDuel {
		first, second := m.session.Players[0], m.session.Players[1]
		switch {
		case first.Score > second.Score:
			parts = append(parts, rendering.CorrectChoiceStyle.Render(fmt.Sprintf("%s wins!", first.Name)))
		case second.Score > first.Score:
			parts = append(parts, rendering.CorrectChoiceStyle.Render(fmt.Sprintf("%s wins!", second.Name)))
		default:
			parts = append(parts, rendering.HighlightedItemStyle.Render("It's a tie!"))
		}
	}

	for _, player := range m.session.Players {
		parts = append(parts, rendering.ItemStyle.Render(fmt.Sprintf(
			"%s: %d/%d, best streak %d",
			player.Name, player.Score, player.TotalQuestions, player.BestStreak,
		)))
	}

	parts = append(parts, "", rendering.FadedItemStyle.Render("enter play again - esc menu"))
	return parts
}

func (m QuizModel) scoreboard() string {
	session := m.session

	lines := make([]string, 0, len(session.Players))
	for i, player := range session.Players {
		marker := "  "
		if session.Mode == porygon.ModeDuel && i == session.ActivePlayer && !session.Over() {
			marker = "> "
		}

		status := ""
		if player.Finished {
			status = "  (out)"
		}

		line := fmt.Sprintf("%s%-24s %3d pts  streak %d (best %d)%s",
			marker, player.Name, player.Score, player.Streak, player.BestStreak, status)

		if player.Finished {
			lines = append(lines, rendering.FadedItemStyle.Render(line))
		} else {
			lines = append(lines, rendering.ItemStyle.Render(line))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
