// Copyright (c) 2024 Neomantra Corp

package tui

import (
	"fmt"
	"sort"

	"github.com/76creates/stickers/flexbox"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/luke-a-thompson/itchbook"
	"github.com/luke-a-thompson/itchbook/internal/book"
	"github.com/luke-a-thompson/itchbook/internal/directory"
)

// BookTickMsg requests a refresh of the depth ladders from the live book
// manager. The page does not read the clock itself; AppModel schedules
// the refreshes with a tea.Tick command (tickCmd).
type BookTickMsg struct{}

// BookPageModel renders the live bid/ask depth ladder for one instrument
// side by side, Nasdaq-style.
type BookPageModel struct {
	manager   *book.Manager
	directory *directory.Directory
	locate    uint16

	bidTable table.Model
	askTable table.Model
	flex     *flexbox.FlexBox

	width  int
	height int
}

// NewBookPage returns a page rendering the book for stockLocate.
func NewBookPage(manager *book.Manager, dir *directory.Directory, stockLocate uint16) BookPageModel {
	bidTable := table.New(table.WithColumns([]table.Column{
		{Title: "Price", Width: 12},
		{Title: "Shares", Width: 12},
	}), table.WithStyles(bidTableStyles))

	askTable := table.New(table.WithColumns([]table.Column{
		{Title: "Price", Width: 12},
		{Title: "Shares", Width: 12},
	}), table.WithStyles(askTableStyles))

	return BookPageModel{
		manager:   manager,
		directory: dir,
		locate:    stockLocate,
		bidTable:  bidTable,
		askTable:  askTable,
		flex:      flexbox.New(20, 10),
		width:     20,
		height:    10,
	}
}

func (m BookPageModel) Init() tea.Cmd { return nil }

func (m BookPageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.flex.SetWidth(msg.Width)
		m.flex.SetHeight(msg.Height)
		colWidth := max(10, (msg.Width-6)/2)
		m.bidTable.SetWidth(colWidth)
		m.askTable.SetWidth(colWidth)
		m.bidTable.SetHeight(msg.Height - 4)
		m.askTable.SetHeight(msg.Height - 4)

	case BookTickMsg:
		m.refresh()
		var cmd tea.Cmd
		m.bidTable, cmd = m.bidTable.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.bidTable, cmd = m.bidTable.Update(msg)
	return m, cmd
}

func (m *BookPageModel) refresh() {
	b, ok := m.manager.Book(m.locate)
	if !ok {
		m.bidTable.SetRows(nil)
		m.askTable.SetRows(nil)
		return
	}

	m.bidTable.SetRows(depthRows(b, itch.SideBuy, true))
	m.askTable.SetRows(depthRows(b, itch.SideSell, false))
}

// depthRows collects up to 10 levels of depth for one side of the book,
// nearest-to-touch first. descending walks down from the touch and orders
// prices high to low (the bid side); otherwise the walk steps up from the
// touch and orders prices low to high (the ask side).
func depthRows(b *book.Book, side itch.Side, descending bool) []table.Row {
	type level struct {
		price  itch.Price4
		shares uint32
	}
	var levels []level

	// best_bid()/best_ask() only expose the touch; depth queries below
	// approximate the ladder via a small sweep around the touch price
	// using LevelDepth, matching how the MCP tool surfaces depth.
	touch, ok := bestFor(b, side)
	if !ok {
		return nil
	}

	const ladderRungs = 10
	for i := 0; i < ladderRungs; i++ {
		var price itch.Price4
		if descending {
			price = touch - itch.Price4(i*2500)
		} else {
			price = touch + itch.Price4(i*2500)
		}
		if shares := b.LevelDepth(side, price); shares > 0 {
			levels = append(levels, level{price: price, shares: shares})
		}
	}

	sort.Slice(levels, func(i, j int) bool {
		if descending {
			return levels[i].price > levels[j].price
		}
		return levels[i].price < levels[j].price
	})

	rows := make([]table.Row, 0, len(levels))
	for _, lvl := range levels {
		rows = append(rows, table.Row{lvl.price.String(), humanize.Comma(int64(lvl.shares))})
	}
	return rows
}

func bestFor(b *book.Book, side itch.Side) (itch.Price4, bool) {
	if side == itch.SideBuy {
		return b.BestBid()
	}
	return b.BestAsk()
}

func (m BookPageModel) View() string {
	ticker, _ := m.directory.Ticker(m.locate)
	header := fmt.Sprintf(" %s  spread=%s ", ticker.String(), m.currentSpread())

	m.flex.ForceRecalculate()
	bidPane := borderStyle.Render(" BID\n" + m.bidTable.View())
	askPane := borderStyle.Render(" ASK\n" + m.askTable.View())

	row := m.flex.NewRow()
	row.AddCells(
		flexbox.NewCell(1, 1).SetContent(bidPane),
		flexbox.NewCell(1, 1).SetContent(askPane),
	)
	m.flex.AddRows([]*flexbox.Row{row})

	return header + "\n" + m.flex.Render()
}

func (m BookPageModel) currentSpread() string {
	b, ok := m.manager.Book(m.locate)
	if !ok {
		return "n/a"
	}
	return b.Spread().String()
}
