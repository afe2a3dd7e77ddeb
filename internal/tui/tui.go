package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/wheelibin/lumen/internal/color"
	"github.com/wheelibin/lumen/internal/models"
)

type lightUpdateMessage struct {
	lights []models.Light
}

var baseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#1e7ba0"))

type LumenTUI struct {
	teaProgram *tea.Program
}

func NewLumenTUI(listen string) LumenTUI {
	p := tea.NewProgram(NewModel(listen), tea.WithAltScreen())
	return LumenTUI{p}
}

// Run blocks until the user quits
func (t LumenTUI) Run() error {
	_, err := t.teaProgram.Run()
	return err
}

func (t LumenTUI) Quit() {
	t.teaProgram.Quit()
}

func (t LumenTUI) RefreshLights(lights []models.Light) {
	t.teaProgram.Send(lightUpdateMessage{lights: lights})
}

type Model struct {
	table  table.Model
	listen string
	count  int
}

func NewModel(listen string) Model {

	columns := []table.Column{
		{Title: "Light", Width: 20},
		{Title: "On", Width: 4},
		{Title: "H", Width: 4},
		{Title: "S", Width: 4},
		{Title: "B", Width: 4},
		{Title: "K", Width: 6},
		{Title: "Tags", Width: 24},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return Model{table: t, listen: listen}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd

	case lightUpdateMessage:
		m.table.SetRows(Rows(msg.lights))
		m.count = len(msg.lights)
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	title := titleStyle.Render(fmt.Sprintf("lumen  %s  %d lights", m.listen, m.count))
	return title + "\n" + baseStyle.Render(m.table.View()) + "\n"
}

// Rows renders the lights the way the wearable sees them
func Rows(lights []models.Light) []table.Row {
	rows := make([]table.Row, 0, len(lights))
	for _, l := range lights {
		c := color.ForLight(l)
		on := "off"
		if l.On {
			on = "on"
		}
		rows = append(rows, table.Row{
			l.DisplayLabel(),
			on,
			fmt.Sprint(c.H),
			fmt.Sprint(c.S),
			fmt.Sprint(c.B),
			fmt.Sprint(c.K),
			strings.Join(l.Tags, ","),
		})
	}
	return rows
}
