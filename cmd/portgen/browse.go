package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/portgen/pkg/logging"
	"github.com/dd0wney/portgen/pkg/nodename"
	"github.com/dd0wney/portgen/pkg/render"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF00FF")).
			MarginLeft(2).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF00")).
			MarginLeft(2)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true).
			MarginLeft(2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			MarginTop(1).
			MarginLeft(2)
)

type browseKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

var browseKeys = browseKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "pgup"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "pgdown"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "quit"),
	),
}

func (k browseKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

func (k browseKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Select, k.Quit}}
}

type browseModel struct {
	all      []nodename.Node
	visible  []nodename.Node
	filter   textinput.Model
	table    table.Model
	help     help.Model
	keys     browseKeyMap
	selected *nodename.Node
}

func newBrowseModel(nodes []nodename.Node) browseModel {
	ti := textinput.New()
	ti.Placeholder = "filter, e.g. kusama rpc"
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	columns := make([]table.Column, len(render.TableHeaders))
	widths := []int{28, 7, 16, 6, 12, 10}
	for i, h := range render.TableHeaders {
		columns[i] = table.Column{Title: h, Width: widths[i]}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("#00FFFF")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(lipgloss.Color("#FF00FF")).
		Bold(false)
	t.SetStyles(s)

	m := browseModel{
		all:    nodes,
		filter: ti,
		table:  t,
		help:   help.New(),
		keys:   browseKeys,
	}
	m.applyFilter()
	return m
}

func (m browseModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.table.SetHeight(max(msg.Height-9, 3))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			if i := m.table.Cursor(); i >= 0 && i < len(m.visible) {
				n := m.visible[i]
				m.selected = &n
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}
	}

	before := m.filter.Value()
	m.filter, cmd = m.filter.Update(msg)
	if m.filter.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

// applyFilter keeps the nodes whose row contains every word of the filter.
func (m *browseModel) applyFilter() {
	words := strings.Fields(strings.ToLower(m.filter.Value()))

	m.visible = make([]nodename.Node, 0, len(m.all))
	rows := make([]table.Row, 0, len(m.all))
	for _, n := range m.all {
		cells := render.TableRow(n)
		line := strings.Join(cells, " ")
		if matchesAll(line, words) {
			m.visible = append(m.visible, n)
			rows = append(rows, table.Row(cells))
		}
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func matchesAll(line string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(line, w) {
			return false
		}
	}
	return true
}

func (m browseModel) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("portgen - node allocations"))
	s.WriteString("\n\n  ")
	s.WriteString(m.filter.View())
	s.WriteString("\n\n")

	if len(m.visible) == 0 {
		s.WriteString(emptyStyle.Render("✗ no node matches the filter"))
	} else {
		s.WriteString(m.table.View())
	}

	s.WriteString("\n")
	s.WriteString(statusStyle.Render(fmt.Sprintf("%d of %d nodes", len(m.visible), len(m.all))))
	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.ShortHelpView(m.keys.ShortHelp())))

	return s.String()
}

func runBrowse(args []string, stdout, stderr io.Writer) int {
	opts, _, code := setup("browse", string(render.FormatPort), args, 0, stdout, stderr)
	if code >= 0 {
		return code
	}

	log := logging.NewCLILogger(stderr, opts.Verbose).With(logging.Component("portgen"), logging.Operation("browse"))

	// The TUI draws on stderr so the selection can be captured from stdout.
	p := tea.NewProgram(newBrowseModel(selectNodes(opts)), tea.WithAltScreen(), tea.WithOutput(stderr))
	final, err := p.Run()
	if err != nil {
		log.Error("browse failed", logging.Error(err))
		render.Error(stderr, err)
		return exitFailure
	}

	m, ok := final.(browseModel)
	if !ok || m.selected == nil {
		return exitOK
	}
	log.Debug("node selected", logging.NodeName(m.selected.Name()))

	return write(stdout, stderr, log, render.Format(opts.Format), *m.selected)
}
