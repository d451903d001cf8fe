// Package cli provides styled terminal output and the plain (non-TUI)
// chat loop, using lipgloss.
package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hsinyulin/ledgerchat/internal/model"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#7AA2F7")
	// SuccessColor marks high-confidence answers.
	SuccessColor = lipgloss.Color("#9ECE6A")
	// WarningColor marks warnings and medium confidence.
	WarningColor = lipgloss.Color("#E0AF68")
	// ErrorColor marks errors, blocks and very low confidence.
	ErrorColor = lipgloss.Color("#F7768E")
	// SubtleColor marks less prominent UI elements.
	SubtleColor = lipgloss.Color("#565F89")

	// TitleStyle is used for the banner.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// PromptStyle marks the user input prompt.
	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor)

	// AnswerStyle formats answer text.
	AnswerStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	// BlockedStyle formats guardrail declines.
	BlockedStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			PaddingLeft(2)

	// WarningStyle formats verification warnings.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats errors.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats footers and hints.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoxStyle wraps the welcome banner.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 2)
)

// ConfidenceStyle picks a color for a confidence level.
func ConfidenceStyle(level model.ConfidenceLevel) lipgloss.Style {
	switch level {
	case model.ConfidenceHigh:
		return lipgloss.NewStyle().Foreground(SuccessColor)
	case model.ConfidenceMedium:
		return lipgloss.NewStyle().Foreground(WarningColor)
	default:
		return lipgloss.NewStyle().Foreground(ErrorColor)
	}
}
