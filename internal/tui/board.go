package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/boardhub/boardhub-go/internal/models"
	"github.com/boardhub/boardhub-go/internal/services"
)

type boardLoaded struct {
	Pipelines []models.Pipeline
	Err       error
}

type Model struct {
	repoID    int64
	service   *services.BoardService
	pipelines []models.Pipeline
	loading   bool
	err       error
	spinner   spinner.Model
	width     int
	height    int
	quit      bool
}

func NewModel(service *services.BoardService, repoID int64) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return Model{
		repoID:  repoID,
		service: service,
		loading: true,
		spinner: sp,
		width:   80,
		height:  24,
	}
}

func (m Model) loadBoard() tea.Cmd {
	service := m.service
	repoID := m.repoID
	return func() tea.Msg {
		pipelines, err := service.GetBoard(repoID)
		return boardLoaded{Pipelines: pipelines, Err: err}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadBoard(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quit = true
			return m, tea.Quit
		case "r":
			if !m.loading {
				m.loading = true
				m.err = nil
				cmds = append(cmds, m.loadBoard(), m.spinner.Tick)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case boardLoaded:
		m.loading = false
		m.pipelines = msg.Pipelines
		m.err = msg.Err

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.quit {
		return "Shutting down...\n"
	}

	var s strings.Builder

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginBottom(1)

	s.WriteString(headerStyle.Render(fmt.Sprintf("📋 Board — repository %d", m.repoID)))
	s.WriteString("\n\n")

	switch {
	case m.loading:
		s.WriteString(fmt.Sprintf("%s Loading board...\n", m.spinner.View()))

	case m.err != nil:
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n")

	case len(m.pipelines) == 0:
		emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
		s.WriteString(emptyStyle.Render("Board has no pipelines"))
		s.WriteString("\n")

	default:
		s.WriteString(m.renderPipelines())
		s.WriteString("\n")
	}

	s.WriteString("\n")

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	s.WriteString(footerStyle.Render("Press 'r' to refresh | 'q' to quit | Logs: logs/boardhub_*.log"))

	return s.String()
}

func (m Model) renderPipelines() string {
	columnWidth := 24
	if w := m.width/len(m.pipelines) - 2; w < columnWidth && w > 12 {
		columnWidth = w
	}

	columnStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Width(columnWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))

	issueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	countStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("244"))

	columns := make([]string, 0, len(m.pipelines))
	for _, pipeline := range m.pipelines {
		var col strings.Builder
		col.WriteString(titleStyle.Render(truncate(pipeline.Name, columnWidth-4)))
		col.WriteString("\n")
		col.WriteString(countStyle.Render(fmt.Sprintf("%d issues", len(pipeline.Issues))))
		col.WriteString("\n")
		col.WriteString(strings.Repeat("─", columnWidth-4) + "\n")

		for _, issue := range pipeline.Issues {
			line := fmt.Sprintf("#%d", issue.IssueNumber)
			if issue.Estimate != nil {
				line += fmt.Sprintf(" (%.0f)", issue.Estimate.Value)
			}
			if issue.IsEpic {
				line += " ⚡"
			}
			col.WriteString(issueStyle.Render(truncate(line, columnWidth-4)))
			col.WriteString("\n")
		}

		columns = append(columns, columnStyle.Render(col.String()))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
