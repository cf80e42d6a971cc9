// Copyright (c) 2024 Neomantra Corp
//
// Manager is the cross-instrument coordinator: stock_locate -> Book, and
// the global order_ref -> (stock_locate, price, side) side-table that
// recovers book coordinates for execute/cancel/delete messages, which
// carry only the order reference on the wire.

package book

import (
	"log/slog"
	"sync"

	"github.com/luke-a-thompson/itchbook"
)

type sideTableEntry struct {
	StockLocate uint16
	Price       itch.Price4
	Side        itch.Side
}

// Manager owns every per-instrument Book plus the side-table, all behind a
// single read-write lock: many concurrent observers, one mutating
// consumer (§5).
type Manager struct {
	mu        sync.RWMutex
	books     map[uint16]*Book
	sideTable map[uint64]sideTableEntry
	logger    *slog.Logger
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{
		books:     make(map[uint16]*Book),
		sideTable: make(map[uint64]sideTableEntry),
		logger:    slog.Default(),
	}
}

// SetLogger overrides the logger used for recoverable anomalies (e.g. a
// Replace against an order the book never saw).
func (m *Manager) SetLogger(logger *slog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logger = logger
}

// Book returns the book for a stock_locate, if one has been created.
func (m *Manager) Book(stockLocate uint16) (*Book, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.books[stockLocate]
	return b, ok
}

func (m *Manager) bookFor(stockLocate uint16, ticker itch.Ticker) *Book {
	b, ok := m.books[stockLocate]
	if !ok {
		b = NewBook(stockLocate, ticker)
		m.books[stockLocate] = b
	}
	return b
}

// Add applies an AddOrder (or an AddOrderMPID widened via AsAddOrder). It
// fails with itch.DuplicateOrder if the reference is already present in the
// side-table, on any book (§4.F).
func (m *Manager) Add(stockLocate uint16, add *itch.AddOrder, mpid *itch.MPID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sideTable[add.OrderRef]; exists {
		return itch.DuplicateOrder(add.OrderRef)
	}

	b := m.bookFor(stockLocate, add.Ticker)
	lvl := b.levelAt(add.Side, add.Price)
	order := &RestingOrder{
		OrderRef:    add.OrderRef,
		Side:        add.Side,
		Shares:      add.Shares,
		Ticker:      add.Ticker,
		Price:       add.Price,
		StockLocate: stockLocate,
	}
	if mpid != nil {
		order.MPID = *mpid
		order.HasMPID = true
	}
	lvl.insert(order)

	m.sideTable[add.OrderRef] = sideTableEntry{StockLocate: stockLocate, Price: add.Price, Side: add.Side}
	return nil
}

// lookup resolves an order reference to its book, level, and order,
// returning itch.NonExistentOrder(op, ref) if the reference is unknown.
func (m *Manager) lookup(op string, orderRef uint64) (*Book, *PriceLevel, *RestingOrder, error) {
	entry, ok := m.sideTable[orderRef]
	if !ok {
		return nil, nil, nil, itch.NonExistentOrder(op, orderRef)
	}
	b, ok := m.books[entry.StockLocate]
	if !ok {
		return nil, nil, nil, itch.NonExistentOrder(op, orderRef)
	}
	lvl, ok := b.levels(entry.Side)[entry.Price]
	if !ok {
		return nil, nil, nil, itch.NonExistentOrder(op, orderRef)
	}
	order, ok := lvl.Orders[orderRef]
	if !ok {
		return nil, nil, nil, itch.NonExistentOrder(op, orderRef)
	}
	return b, lvl, order, nil
}

// Execute applies an OrderExecuted. The side-table entry is retained even
// when shares reach zero — ITCH expects an eventual Delete, so a stray
// further Execute against a zero-share order is caught below as
// InvalidCancellation rather than silently ignored.
func (m *Manager) Execute(e *itch.OrderExecuted) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, lvl, order, err := m.lookup("execute", e.OrderRef)
	if err != nil {
		return err
	}
	if e.ExecutedShares > order.Shares {
		return itch.InvalidCancellation("execute", e.OrderRef, e.ExecutedShares, order.Shares)
	}
	lvl.debit(order, e.ExecutedShares)
	return nil
}

// ExecuteResult carries the fields an execute_with_price caller needs
// beyond the side-effect of debiting the book.
type ExecuteResult struct {
	MatchNumber    uint64
	ExecutionPrice itch.Price4
	Printable      bool
}

// ExecuteWithPrice applies an OrderExecutedWithPrice, as Execute, and
// additionally surfaces the execution price and printable flag (§4.F).
func (m *Manager) ExecuteWithPrice(e *itch.OrderExecutedWithPrice) (ExecuteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, lvl, order, err := m.lookup("execute_with_price", e.OrderRef)
	if err != nil {
		return ExecuteResult{}, err
	}
	if e.ExecutedShares > order.Shares {
		return ExecuteResult{}, itch.InvalidCancellation("execute_with_price", e.OrderRef, e.ExecutedShares, order.Shares)
	}
	lvl.debit(order, e.ExecutedShares)
	return ExecuteResult{
		MatchNumber:    e.MatchNumber,
		ExecutionPrice: e.ExecutionPrice,
		Printable:      e.Printable,
	}, nil
}

// Cancel applies an OrderCancel: debits canceled shares, and if the order
// is left with zero shares, removes it entirely (equivalent to a delete).
func (m *Manager) Cancel(c *itch.OrderCancel) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, lvl, order, err := m.lookup("cancel", c.OrderRef)
	if err != nil {
		return err
	}
	if c.CanceledShares > order.Shares {
		return itch.InvalidCancellation("cancel", c.OrderRef, c.CanceledShares, order.Shares)
	}
	remaining := lvl.debit(order, c.CanceledShares)
	if remaining == 0 {
		entry := m.sideTable[c.OrderRef]
		lvl.remove(c.OrderRef)
		b.dropLevelIfEmpty(entry.Side, entry.Price)
		delete(m.sideTable, c.OrderRef)
	}
	return nil
}

// Delete applies an OrderDelete: removes the order from the side-table and
// its level, dropping the level if it becomes empty.
func (m *Manager) Delete(d *itch.OrderDelete) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, lvl, _, err := m.lookup("delete", d.OrderRef)
	if err != nil {
		return err
	}
	entry := m.sideTable[d.OrderRef]
	lvl.remove(d.OrderRef)
	b.dropLevelIfEmpty(entry.Side, entry.Price)
	delete(m.sideTable, d.OrderRef)
	return nil
}

// Replace applies an OrderReplace: deletes the order at OriginalRef and
// inserts a fresh order at NewRef, inheriting stock_locate, side, ticker,
// and MPID attribution from the deleted order. If OriginalRef is unknown,
// ITCH permits this for orders the book never saw (e.g. a cross-session
// edge); Replace logs and returns success rather than an error (§4.F).
func (m *Manager) Replace(r *itch.OrderReplace) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, lvl, order, err := m.lookup("replace", r.OriginalRef)
	if err != nil {
		m.logger.Warn("itch: replace against unknown order reference, ignoring",
			"original_ref", r.OriginalRef, "new_ref", r.NewRef)
		return nil
	}

	entry := m.sideTable[r.OriginalRef]
	side, ticker, mpid, hasMPID := entry.Side, order.Ticker, order.MPID, order.HasMPID
	stockLocate := entry.StockLocate

	lvl.remove(r.OriginalRef)
	b.dropLevelIfEmpty(entry.Side, entry.Price)
	delete(m.sideTable, r.OriginalRef)

	newLvl := b.levelAt(side, r.Price)
	newOrder := &RestingOrder{
		OrderRef:    r.NewRef,
		Side:        side,
		Shares:      r.Shares,
		Ticker:      ticker,
		Price:       r.Price,
		StockLocate: stockLocate,
		MPID:        mpid,
		HasMPID:     hasMPID,
	}
	newLvl.insert(newOrder)
	m.sideTable[r.NewRef] = sideTableEntry{StockLocate: stockLocate, Price: r.Price, Side: side}
	return nil
}

// BestBid returns the best bid for a stock_locate's book, if the book and
// a bid side both exist.
func (m *Manager) BestBid(stockLocate uint16) (itch.Price4, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.books[stockLocate]
	if !ok {
		return 0, false
	}
	return b.BestBid()
}

// BestAsk returns the best ask for a stock_locate's book, if the book and
// an ask side both exist.
func (m *Manager) BestAsk(stockLocate uint16) (itch.Price4, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.books[stockLocate]
	if !ok {
		return 0, false
	}
	return b.BestAsk()
}

// Spread returns the spread for a stock_locate's book, 0 if the book does
// not exist or either side is empty.
func (m *Manager) Spread(stockLocate uint16) itch.Price4 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.books[stockLocate]
	if !ok {
		return 0
	}
	return b.Spread()
}

// LevelDepth returns the resting shares at (stockLocate, side, price).
func (m *Manager) LevelDepth(stockLocate uint16, side itch.Side, price itch.Price4) uint32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.books[stockLocate]
	if !ok {
		return 0
	}
	return b.LevelDepth(side, price)
}

// OrderLocation resolves an order reference to its current book
// coordinates, for diagnostics and the MCP/TUI observers.
func (m *Manager) OrderLocation(orderRef uint64) (stockLocate uint16, price itch.Price4, side itch.Side, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, found := m.sideTable[orderRef]
	if !found {
		return 0, 0, 0, false
	}
	return entry.StockLocate, entry.Price, entry.Side, true
}
