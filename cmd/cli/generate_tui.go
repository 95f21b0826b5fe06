package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/teachforge-io/agent/internal/models"
	"github.com/teachforge-io/agent/internal/poller"
)

type jobUpdateMsg models.JobUpdate

type jobDoneMsg struct{}

type generateModel struct {
	label      string
	job        *poller.Poller
	spinner    spinner.Model
	update     models.JobUpdate
	lastUpdate time.Time
	stopped    bool
	quitting   bool
}

func newGenerateModel(job *poller.Poller, label string) generateModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#3b82f6"))

	return generateModel{
		label:   label,
		job:     job,
		spinner: s,
		update:  models.JobUpdate{TaskID: job.TaskID(), State: job.State()},
	}
}

// waitForUpdate receives the next poller update as a tea message. A closed
// channel means the poller is finished.
func waitForUpdate(updates <-chan models.JobUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-updates
		if !ok {
			return jobDoneMsg{}
		}
		return jobUpdateMsg(update)
	}
}

func (m generateModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForUpdate(m.job.Updates()))
}

func (m generateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			// Stops local polling only. The server keeps working.
			m.job.Stop()
			m.stopped = true
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case jobUpdateMsg:
		m.update = models.JobUpdate(msg)
		m.lastUpdate = time.Now()
		return m, waitForUpdate(m.job.Updates())

	case jobDoneMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.WindowSizeMsg:
		return m, nil
	}

	return m, nil
}

func (m generateModel) View() string {
	if m.quitting {
		return ""
	}

	var content strings.Builder

	var statusColor lipgloss.Color
	var statusText string
	switch m.update.State {
	case models.JobSucceeded:
		statusColor = lipgloss.Color("#10b981")
		statusText = "SUCCEEDED"
	case models.JobFailed:
		statusColor = lipgloss.Color("#ef4444")
		statusText = "FAILED"
	case models.JobRunning:
		statusColor = lipgloss.Color("#3b82f6")
		statusText = "RUNNING"
	default:
		statusColor = lipgloss.Color("#6b7280")
		statusText = strings.ToUpper(string(m.update.State))
	}

	content.WriteString(jobTitleStyle.Render(m.label+": "))
	content.WriteString(statusBadgeStyle.Background(statusColor).Render(statusText))
	content.WriteString("\n\n")

	content.WriteString(fmt.Sprintf("Task:      %s\n", m.update.TaskID))
	content.WriteString(fmt.Sprintf("Progress:  %s %d%%\n", m.spinner.View(), m.update.Progress))

	if !m.lastUpdate.IsZero() {
		content.WriteString(fmt.Sprintf("Last updated: %s\n", m.lastUpdate.Format("15:04:05")))
	}

	content.WriteString("\nPress q to stop watching\n")

	return content.String()
}

// runGenerationTUI watches one job until it finishes or the user quits, and
// returns the last known update.
func runGenerationTUI(job *poller.Poller, label string) (models.JobUpdate, error) {
	program := tea.NewProgram(newGenerateModel(job, label))

	finalModel, err := program.Run()
	if err != nil {
		return models.JobUpdate{}, fmt.Errorf("TUI error: %w", err)
	}

	model, ok := finalModel.(generateModel)
	if !ok {
		return models.JobUpdate{}, fmt.Errorf("unexpected model type returned from TUI")
	}

	if model.stopped {
		return model.update, nil
	}

	// The poller has finished; collect the terminal update.
	final, err := job.Wait(context.Background())
	if err != nil {
		return model.update, err
	}
	return final, nil
}
