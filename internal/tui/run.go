package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hsinyulin/ledgerchat/internal/pipeline"
	"github.com/hsinyulin/ledgerchat/internal/session"
)

// Run starts the full-screen chat and blocks until the user quits.
func Run(ctx context.Context, p *pipeline.Pipeline, sess *session.Session) error {
	program := tea.NewProgram(
		NewModel(ctx, p, sess),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat interface: %w", err)
	}
	return nil
}
