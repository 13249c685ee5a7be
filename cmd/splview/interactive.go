package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/vk-perflayers/eventlog"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

type interactiveModel struct {
	filename string
	records  []eventlog.Record
	shown    int
	table    table.Model
	filter   textinput.Model
}

func newInteractiveModel(filename string, records []eventlog.Record) *interactiveModel {
	columns := []table.Column{
		{Title: "Event", Width: 28},
		{Title: "Timestamp (ns)", Width: 20},
		{Title: "Payload", Width: 60},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4"))
	t.SetStyles(styles)

	ti := textinput.New()
	ti.Placeholder = "event type"
	ti.Prompt = "filter: "
	ti.Width = 40

	m := &interactiveModel{
		filename: filename,
		records:  records,
		table:    t,
		filter:   ti,
	}
	m.applyFilter()
	return m
}

// rows converts records whose type contains filter into table rows.
func rows(records []eventlog.Record, filter string) []table.Row {
	var out []table.Row
	for _, r := range records {
		if filter != "" && !strings.Contains(r.Type, filter) {
			continue
		}
		out = append(out, table.Row{
			r.Type,
			strconv.FormatInt(r.Timestamp.UnixNano(), 10),
			strings.Join(r.Payload, ","),
		})
	}
	return out
}

func (m *interactiveModel) applyFilter() {
	r := rows(m.records, m.filter.Value())
	m.shown = len(r)
	m.table.SetRows(r)
	m.table.GotoTop()
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if key, ok := msg.(tea.KeyMsg); ok {
		if m.filter.Focused() {
			switch key.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "enter", "esc":
				m.filter.Blur()
				m.table.Focus()
				return m, nil
			}
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch key.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "/":
			m.table.Blur()
			return m, m.filter.Focus()
		case "esc":
			m.filter.Reset()
			m.applyFilter()
			return m, nil
		}
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Event Log"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(fmt.Sprintf("  %d/%d records\n\n", m.shown, len(m.records)))
	b.WriteString(m.filter.View())
	b.WriteString("\n")
	b.WriteString(baseStyle.Render(m.table.View()))
	b.WriteString("\n")
	if m.filter.Focused() {
		b.WriteString(helpStyle.Render("type to filter • enter/esc done"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ scroll • / filter • esc clear • q quit"))
	}
	return b.String()
}

func runInteractive(filename string, records []eventlog.Record) error {
	p := tea.NewProgram(newInteractiveModel(filename, records), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
