// Copyright (c) 2024 Neomantra Corp
//
// The stock-directory registry: the bijection between the 16-bit
// stock_locate identifier used throughout the feed and the 8-byte ticker
// symbol, plus the per-ticker metadata carried on the Stock Directory
// message. Registration is idempotent — once a stock_locate is known, a
// later Stock Directory for the same locate is ignored with a warning
// rather than overwriting the first registration.

package directory

import (
	"log/slog"
	"sync"

	"github.com/luke-a-thompson/itchbook"
)

// Meta is the per-ticker metadata captured off a StockDirectory message.
type Meta struct {
	Ticker              itch.Ticker
	MarketCategory      itch.MarketCategory
	FinancialStatus     itch.FinancialStatus
	RoundLotSize        uint32
	RoundLotsOnly       bool
	IssueClassification itch.IssueClassification
	IssueSubType        [2]byte
	Authenticity        itch.AuthenticityCode
	ShortSaleThreshold  itch.TriStateBool
	IPOFlag             itch.TriStateBool
	LULDRefPriceTier    itch.LULDRefPriceTier
	ETPFlag             itch.TriStateBool
	ETPLeverageFactor   uint32
	InverseIndicator    itch.TriStateBool
}

// Directory is the session-scoped stock_locate <-> ticker registry. Reads
// are safe for any number of concurrent observer goroutines; Register is
// intended to be called only from the consumer goroutine applying the
// decoded message stream, but the lock makes concurrent callers safe too.
type Directory struct {
	mu       sync.RWMutex
	byLocate map[uint16]Meta
	byTicker map[itch.Ticker]uint16
	logger   *slog.Logger
}

// New returns an empty Directory.
func New() *Directory {
	return &Directory{
		byLocate: make(map[uint16]Meta),
		byTicker: make(map[itch.Ticker]uint16),
		logger:   slog.Default(),
	}
}

// SetLogger overrides the logger used for idempotent-registration warnings.
func (d *Directory) SetLogger(logger *slog.Logger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.logger = logger
}

// Register records a StockDirectory message. If stock_locate is already
// known, the message is ignored and a warning logged — the first
// registration for a locate wins for the session (§4.E).
func (d *Directory) Register(locate uint16, m *itch.StockDirectory) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.byLocate[locate]; exists {
		d.logger.Warn("itch: duplicate stock directory registration ignored",
			"stock_locate", locate, "ticker", m.Ticker.String())
		return
	}

	meta := Meta{
		Ticker:              m.Ticker,
		MarketCategory:      m.MarketCategory,
		FinancialStatus:     m.FinancialStatus,
		RoundLotSize:        m.RoundLotSize,
		RoundLotsOnly:       m.RoundLotsOnly,
		IssueClassification: m.IssueClassification,
		IssueSubType:        m.IssueSubType,
		Authenticity:        m.Authenticity,
		ShortSaleThreshold:  m.ShortSaleThreshold,
		IPOFlag:             m.IPOFlag,
		LULDRefPriceTier:    m.LULDRefPriceTier,
		ETPFlag:             m.ETPFlag,
		ETPLeverageFactor:   m.ETPLeverageFactor,
		InverseIndicator:    m.InverseIndicator,
	}
	d.byLocate[locate] = meta
	d.byTicker[m.Ticker] = locate
}

// Metadata returns the registered metadata for a stock_locate, if any.
func (d *Directory) Metadata(locate uint16) (Meta, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	m, ok := d.byLocate[locate]
	return m, ok
}

// Ticker returns the ticker registered for a stock_locate, if any.
func (d *Directory) Ticker(locate uint16) (itch.Ticker, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	m, ok := d.byLocate[locate]
	if !ok {
		return itch.Ticker{}, false
	}
	return m.Ticker, true
}

// Locate returns the stock_locate registered for a ticker, if any.
func (d *Directory) Locate(ticker itch.Ticker) (uint16, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	locate, ok := d.byTicker[ticker]
	return locate, ok
}

// Len returns the number of registered securities.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.byLocate)
}

// Locates returns every registered stock_locate, in no particular order.
func (d *Directory) Locates() []uint16 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	locates := make([]uint16, 0, len(d.byLocate))
	for locate := range d.byLocate {
		locates = append(locates, locate)
	}
	return locates
}
