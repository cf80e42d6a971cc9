// Copyright (c) 2024 Neomantra Corp
//
// Runner wires an itch.ItchScanner to the order-book manager and stock
// directory, applying each decoded record on the consumer goroutine and
// leaving book/directory reads safe for any number of concurrent
// observers (the TUI, the MCP server, the websocket relay).

package feed

import (
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/luke-a-thompson/itchbook"
	"github.com/luke-a-thompson/itchbook/internal/book"
	"github.com/luke-a-thompson/itchbook/internal/directory"
)

// Runner drives one ITCH byte stream to completion, applying every
// message it decodes to a shared Manager and Directory.
type Runner struct {
	scanner   *itch.ItchScanner
	manager   *book.Manager
	directory *directory.Directory
	logger    *slog.Logger

	countsMu sync.Mutex
	counts   map[itch.MessageType]uint64

	itch.NullVisitor
}

// New constructs a Runner reading r, applying decoded messages to manager
// and dir. Both manager and dir may be shared with observer goroutines.
func New(r io.Reader, manager *book.Manager, dir *directory.Directory, opts ...itch.ItchScannerOption) *Runner {
	return &Runner{
		scanner:   itch.NewItchScanner(r, opts...),
		manager:   manager,
		directory: dir,
		logger:    slog.Default(),
		counts:    make(map[itch.MessageType]uint64),
	}
}

// count tallies one more occurrence of t, for the `summary` CLI's
// message-counts-per-type report (recovered from original_source/main.rs).
func (rn *Runner) count(t itch.MessageType) {
	rn.countsMu.Lock()
	rn.counts[t]++
	rn.countsMu.Unlock()
}

// Counts returns a snapshot of how many records of each type have been
// applied so far.
func (rn *Runner) Counts() map[itch.MessageType]uint64 {
	rn.countsMu.Lock()
	defer rn.countsMu.Unlock()
	out := make(map[itch.MessageType]uint64, len(rn.counts))
	for t, n := range rn.counts {
		out[t] = n
	}
	return out
}

// SetLogger overrides the logger used for book/directory errors
// encountered while replaying the stream.
func (rn *Runner) SetLogger(logger *slog.Logger) {
	rn.logger = logger
}

// Run drains the scanner to completion, returning nil on clean EOF. Book
// errors are logged and do not terminate the run, matching §7's
// propagation policy; decode errors on well-formed-length frames are
// likewise logged and skipped by the scanner itself.
func (rn *Runner) Run() error {
	err := rn.scanner.Visit(rn)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ResyncCount reports the number of single-byte resync steps taken.
func (rn *Runner) ResyncCount() uint64 { return rn.scanner.ResyncCount() }

// SkipCount reports the number of frames discarded without producing a
// Record.
func (rn *Runner) SkipCount() uint64 { return rn.scanner.SkipCount() }

func (rn *Runner) VisitSystemEvent(m *itch.SystemEvent) error {
	rn.count(m.Type())
	return nil
}

func (rn *Runner) VisitStockDirectory(m *itch.StockDirectory) error {
	rn.count(m.Type())
	rn.directory.Register(m.Header.StockLocate, m)
	return nil
}

func (rn *Runner) VisitStockTradingAction(m *itch.StockTradingAction) error {
	rn.count(m.Type())
	return nil
}

func (rn *Runner) VisitRegSHORestriction(m *itch.RegSHORestriction) error {
	rn.count(m.Type())
	return nil
}

func (rn *Runner) VisitMarketParticipantPosition(m *itch.MarketParticipantPosition) error {
	rn.count(m.Type())
	return nil
}

func (rn *Runner) VisitMWCBDeclineLevel(m *itch.MWCBDeclineLevel) error {
	rn.count(m.Type())
	return nil
}

func (rn *Runner) VisitMWCBStatus(m *itch.MWCBStatus) error {
	rn.count(m.Type())
	return nil
}

func (rn *Runner) VisitIPOQuotingPeriodUpdate(m *itch.IPOQuotingPeriodUpdate) error {
	rn.count(m.Type())
	return nil
}

func (rn *Runner) VisitAddOrder(m *itch.AddOrder) error {
	rn.count(m.Type())
	if err := rn.manager.Add(m.Header.StockLocate, m, nil); err != nil {
		rn.logger.Warn("itch: add order failed", "error", err)
	}
	return nil
}

func (rn *Runner) VisitAddOrderMPID(m *itch.AddOrderMPID) error {
	rn.count(m.Type())
	mpid := m.MPID
	if err := rn.manager.Add(m.Header.StockLocate, m.AsAddOrder(), &mpid); err != nil {
		rn.logger.Warn("itch: add order (mpid) failed", "error", err)
	}
	return nil
}

func (rn *Runner) VisitOrderExecuted(m *itch.OrderExecuted) error {
	rn.count(m.Type())
	if err := rn.manager.Execute(m); err != nil {
		rn.logger.Warn("itch: execute failed", "error", err)
	}
	return nil
}

func (rn *Runner) VisitOrderExecutedWithPrice(m *itch.OrderExecutedWithPrice) error {
	rn.count(m.Type())
	if _, err := rn.manager.ExecuteWithPrice(m); err != nil {
		rn.logger.Warn("itch: execute_with_price failed", "error", err)
	}
	return nil
}

func (rn *Runner) VisitOrderCancel(m *itch.OrderCancel) error {
	rn.count(m.Type())
	if err := rn.manager.Cancel(m); err != nil {
		rn.logger.Warn("itch: cancel failed", "error", err)
	}
	return nil
}

func (rn *Runner) VisitOrderDelete(m *itch.OrderDelete) error {
	rn.count(m.Type())
	if err := rn.manager.Delete(m); err != nil {
		rn.logger.Warn("itch: delete failed", "error", err)
	}
	return nil
}

func (rn *Runner) VisitOrderReplace(m *itch.OrderReplace) error {
	rn.count(m.Type())
	if err := rn.manager.Replace(m); err != nil {
		rn.logger.Warn("itch: replace failed", "error", err)
	}
	return nil
}

func (rn *Runner) VisitNonCrossingTrade(m *itch.NonCrossingTrade) error {
	rn.count(m.Type())
	return nil
}

func (rn *Runner) VisitCrossingTrade(m *itch.CrossingTrade) error {
	rn.count(m.Type())
	return nil
}

func (rn *Runner) VisitBrokenTrade(m *itch.BrokenTrade) error {
	rn.count(m.Type())
	return nil
}

func (rn *Runner) VisitNetOrderImbalance(m *itch.NetOrderImbalance) error {
	rn.count(m.Type())
	return nil
}

func (rn *Runner) VisitRetailPriceImprovement(m *itch.RetailPriceImprovement) error {
	rn.count(m.Type())
	return nil
}
