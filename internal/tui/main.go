// Copyright (c) 2024 Neomantra Corp

package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/luke-a-thompson/itchbook/internal/book"
	"github.com/luke-a-thompson/itchbook/internal/directory"
)

// Config configures the dashboard's data sources and refresh cadence.
type Config struct {
	Manager       *book.Manager
	Directory     *directory.Directory
	Locates       []uint16
	RefreshPeriod time.Duration
}

// Run starts the full-screen dashboard, blocking until the user quits.
func Run(config Config) error {
	if config.RefreshPeriod <= 0 {
		config.RefreshPeriod = 250 * time.Millisecond
	}
	model := NewAppModel(config)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type AppModel struct {
	config Config

	pages       []tea.Model
	pageNames   []string
	currentPage int

	width  int
	height int
	help   help.Model
	keyMap AppKeyMap

	headerStyle      lipgloss.Style
	activeTabStyle   lipgloss.Style
	inactiveTabStyle lipgloss.Style
}

func NewAppModel(config Config) AppModel {
	locate := uint16(0)
	if len(config.Locates) > 0 {
		locate = config.Locates[0]
	}
	return AppModel{
		config:      config,
		currentPage: 0,
		pageNames:   []string{"1-Book", "2-Directory"},
		pages: []tea.Model{
			NewBookPage(config.Manager, config.Directory, locate),
			NewDirectoryPage(config.Directory, config.Locates),
		},
		width:  20,
		height: 10,
		help:   help.New(),
		keyMap: DefaultAppKeyMap(),
		headerStyle: lipgloss.NewStyle().
			Foreground(colorYellow).
			Background(colorDarkPurple),
		inactiveTabStyle: lipgloss.NewStyle().
			Foreground(colorYellow).
			Background(colorDarkPurple),
		activeTabStyle: lipgloss.NewStyle().
			Foreground(colorYellow).
			Background(colorGrue),
	}
}

type AppKeyMap struct {
	Quit           key.Binding
	FocusBook      key.Binding
	FocusDirectory key.Binding
}

func DefaultAppKeyMap() AppKeyMap {
	return AppKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		FocusBook: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "book"),
		),
		FocusDirectory: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "directory"),
		),
	}
}

func (k *AppKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit, k.FocusBook, k.FocusDirectory}}
}

func (k AppKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.FocusBook, k.FocusDirectory}
}

func tickCmd(period time.Duration) tea.Cmd {
	return tea.Tick(period, func(time.Time) tea.Msg { return BookTickMsg{} })
}

func (m AppModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, page := range m.pages {
		cmds = append(cmds, page.Init())
	}
	cmds = append(cmds, tickCmd(m.config.RefreshPeriod))
	return tea.Batch(cmds...)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keyMap.FocusBook):
			m.currentPage = 0
		case key.Matches(msg, m.keyMap.FocusDirectory):
			m.currentPage = 1
		}
		pageModel, cmd := m.pages[m.currentPage].Update(msg)
		m.pages[m.currentPage] = pageModel
		return m, cmd

	case BookTickMsg:
		var cmds []tea.Cmd
		for i := range m.pages {
			pageModel, cmd := m.pages[i].Update(msg)
			m.pages[i] = pageModel
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, tickCmd(m.config.RefreshPeriod))
		return m, tea.Batch(cmds...)
	}

	var cmds []tea.Cmd
	for i := range m.pages {
		pageModel, cmd := m.pages[i].Update(msg)
		m.pages[i] = pageModel
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m AppModel) View() string {
	view := m.headerView() + "\n"
	if m.currentPage < 0 || m.currentPage >= len(m.pages) {
		view += "Error: bad page\n"
	} else {
		view += m.pages[m.currentPage].View() + "\n"
	}
	view += m.help.View(&m.keyMap)
	return view
}

func (m AppModel) headerView() string {
	header := m.headerStyle.Render(" itchbook-tui   ")
	for i, name := range m.pageNames {
		if i == m.currentPage {
			header += m.activeTabStyle.Render("[ " + name + " ]")
		} else {
			header += m.inactiveTabStyle.Render("| " + name + " |")
		}
		header += m.headerStyle.Render(" ")
	}
	rest := m.width - lipgloss.Width(header)
	if rest > 0 {
		header += m.headerStyle.Render(strings.Repeat(" ", rest))
	}
	return header
}
