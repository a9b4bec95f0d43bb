package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sevigo/issue-warden/internal/core"
	"github.com/sevigo/issue-warden/internal/wire"
)

// analysisDoneMsg carries the analyzer's outcome back into the TUI loop.
type analysisDoneMsg struct {
	result *core.AnalysisResult
	err    error
}

type checkModel struct {
	spinner spinner.Model
	status  lipgloss.Style
	target  string
	analyze tea.Cmd

	done   bool
	result *core.AnalysisResult
	err    error
}

func newCheckModel(ctx context.Context, components *wire.CheckComponents, ref core.RepoRef, prNumber int) *checkModel {
	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("51"))

	return &checkModel{
		spinner: sp,
		status:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		target:  fmt.Sprintf("%s#%d", ref, prNumber),
		analyze: func() tea.Msg {
			result, err := components.Analyzer.Analyze(ctx, ref, prNumber)
			return analysisDoneMsg{result: result, err: err}
		},
	}
}

func (m *checkModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.analyze)
}

func (m *checkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.done = true
			return m, tea.Quit
		}

	case analysisDoneMsg:
		m.done = true
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m *checkModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("  %s %s\n", m.spinner.View(), m.status.Render("Analyzing "+m.target+"..."))
}

// runAnalysisTUI shows a spinner while the analysis runs and hands the
// result back once the program exits. The rendered report is printed by
// the caller so it stays in the terminal scrollback.
func runAnalysisTUI(ctx context.Context, components *wire.CheckComponents, ref core.RepoRef, prNumber int) (*core.AnalysisResult, error) {
	m := newCheckModel(ctx, components, ref, prNumber)
	p := tea.NewProgram(m)

	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("terminal UI failed: %w", err)
	}

	final, ok := finalModel.(*checkModel)
	if !ok {
		return nil, fmt.Errorf("unexpected terminal UI state")
	}
	if final.err != nil {
		return nil, final.err
	}
	if final.result == nil {
		return nil, fmt.Errorf("analysis canceled")
	}
	return final.result, nil
}
