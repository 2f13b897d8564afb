package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/boardhub/boardhub-go/internal/services"
)

// BoardViewer wraps the bubbletea program around the board model
type BoardViewer struct {
	service *services.BoardService
	repoID  int64
}

func NewBoardViewer(service *services.BoardService, repoID int64) *BoardViewer {
	return &BoardViewer{
		service: service,
		repoID:  repoID,
	}
}

// Run blocks until the user quits the viewer
func (v *BoardViewer) Run() error {
	model := NewModel(v.service, v.repoID)
	program := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	return nil
}
