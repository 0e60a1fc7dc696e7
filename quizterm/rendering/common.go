package rendering

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/sagewynn/whosthat/quizterm/global"
)

var (
	HighlightedColor = lipgloss.Color("33")
	CorrectColor     = lipgloss.Color("42")
	WrongColor       = lipgloss.Color("196")
	FadedColor       = lipgloss.Color("240")

	ButtonStyle            = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Width(30).Padding(1, 3).Align(lipgloss.Center)
	HighlightedButtonStyle = lipgloss.NewStyle().Border(lipgloss.DoubleBorder(), true).Width(30).Padding(1, 3).Align(lipgloss.Center).Foreground(HighlightedColor)

	ChoiceStyle            = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true).Width(26).Align(lipgloss.Center)
	HighlightedChoiceStyle = ChoiceStyle.Foreground(HighlightedColor).Border(lipgloss.DoubleBorder(), true)
	CorrectChoiceStyle     = ChoiceStyle.Foreground(CorrectColor).Border(lipgloss.DoubleBorder(), true)
	WrongChoiceStyle       = ChoiceStyle.Foreground(WrongColor)

	HighlightedItemStyle = lipgloss.NewStyle().PaddingLeft(4).Foreground(HighlightedColor)
	ItemStyle            = lipgloss.NewStyle().PaddingLeft(4)
	FadedItemStyle       = lipgloss.NewStyle().PaddingLeft(4).Foreground(FadedColor)
)

func Center(width int, height int, text string) string {
	return lipgloss.PlaceVertical(height, lipgloss.Center, lipgloss.PlaceHorizontal(width, lipgloss.Center, text))
}

func GlobalCenter(text string) string {
	return Center(global.TERM_WIDTH, global.TERM_HEIGHT, text)
}
