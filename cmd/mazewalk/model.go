package main

import (
	"fmt"
	"strings"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/traversal"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	wallStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	pathStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	frontierStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	agentStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	goalStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	buttonStyle   = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// snapshotMsg carries a snapshot published by the engine.
type snapshotMsg traversal.Snapshot

// closedMsg reports that the engine closed its subscription.
type closedMsg struct{}

// model renders one engine and forwards the toggle key to it.
type model struct {
	name    string
	engine  *traversal.Engine
	updates <-chan traversal.Snapshot
	snap    traversal.Snapshot
}

func newModel(name string, engine *traversal.Engine) model {
	updates, _ := engine.Subscribe(16)
	return model{
		name:    name,
		engine:  engine,
		updates: updates,
		snap:    engine.Snapshot(),
	}
}

func waitForSnapshot(updates <-chan traversal.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return closedMsg{}
		}
		return snapshotMsg(s)
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return waitForSnapshot(m.updates)
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.snap = traversal.Snapshot(msg)
		return m, waitForSnapshot(m.updates)
	case closedMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.String() {
		case " ", "enter":
			m.engine.Toggle()
		case "r":
			m.engine.Reset()
		case "q", "ctrl+c", "esc":
			m.engine.Close()
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.name))
	b.WriteString("\n\n")
	b.WriteString(renderGrid(m.engine.Grid(), m.snap))
	b.WriteString("\n")
	b.WriteString(buttonStyle.Render(m.snap.ToggleLabel()))
	b.WriteString("\n")
	b.WriteString(status(m.snap))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space/enter: start or reset  r: reset  q: quit"))
	b.WriteString("\n")
	return b.String()
}

// renderGrid draws the maze with the agent as G and the goal as K.
func renderGrid(grid *maze.Grid, s traversal.Snapshot) string {
	var b strings.Builder
	for r, row := range grid.Rows() {
		for c, kind := range row {
			p := maze.Position{Row: r, Col: c}
			switch {
			case s.Agent != nil && *s.Agent == p:
				b.WriteString(agentStyle.Render("G"))
			case kind == maze.End:
				b.WriteString(goalStyle.Render("K"))
			case kind == maze.Wall:
				b.WriteString(wallStyle.Render("#"))
			case s.OnFrontier(p):
				b.WriteString(frontierStyle.Render("*"))
			default:
				b.WriteString(pathStyle.Render("."))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func status(s traversal.Snapshot) string {
	switch {
	case s.Agent == nil:
		return "maze has no start cell"
	case s.State == traversal.Halted && s.Outcome == traversal.GoalReached:
		return fmt.Sprintf("goal reached in %d steps", s.Step)
	case s.State == traversal.Halted:
		return fmt.Sprintf("no path to the goal, %d cells explored", s.Visited)
	case s.State == traversal.Running:
		return fmt.Sprintf("step %d, depth %d", s.Step, s.Depth)
	}
	return "idle"
}
