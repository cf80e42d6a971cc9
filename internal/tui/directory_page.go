// Copyright (c) 2024 Neomantra Corp

package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/luke-a-thompson/itchbook/internal/directory"
)

// DirectoryPageModel lists every stock_locate the session has registered,
// a plain read-only view over the stock-directory registry.
type DirectoryPageModel struct {
	directory *directory.Directory
	locates   []uint16

	table  table.Model
	width  int
	height int
}

// NewDirectoryPage returns a page listing the given stock_locates.
func NewDirectoryPage(dir *directory.Directory, locates []uint16) DirectoryPageModel {
	t := table.New(table.WithColumns([]table.Column{
		{Title: "Locate", Width: 8},
		{Title: "Ticker", Width: 10},
		{Title: "Market Cat", Width: 12},
		{Title: "Round Lot", Width: 10},
	}), table.WithStyles(bidTableStyles), table.WithFocused(true))

	return DirectoryPageModel{directory: dir, locates: locates, table: t, width: 20, height: 10}
}

func (m DirectoryPageModel) Init() tea.Cmd { return nil }

func (m DirectoryPageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width - 2)
		m.table.SetHeight(msg.Height - 4)

	case BookTickMsg:
		m.refresh()
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *DirectoryPageModel) refresh() {
	var rows []table.Row
	for _, locate := range m.locates {
		meta, ok := m.directory.Metadata(locate)
		if !ok {
			continue
		}
		lotSize := "n/a"
		if meta.RoundLotSize > 0 {
			lotSize = strconv.FormatUint(uint64(meta.RoundLotSize), 10)
		}
		rows = append(rows, table.Row{
			strconv.Itoa(int(locate)),
			meta.Ticker.String(),
			string(rune(meta.MarketCategory)),
			lotSize,
		})
	}
	m.table.SetRows(rows)
}

func (m DirectoryPageModel) View() string {
	return borderStyle.Render(m.table.View())
}
