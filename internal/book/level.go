// Copyright (c) 2024 Neomantra Corp

package book

import "github.com/luke-a-thompson/itchbook"

// RestingOrder is a single order resting on a book. It is uniquely
// identified by OrderRef across every book in the session (§3).
type RestingOrder struct {
	OrderRef    uint64
	Side        itch.Side
	Shares      uint32
	Ticker      itch.Ticker
	Price       itch.Price4
	MPID        itch.MPID
	HasMPID     bool
	StockLocate uint16
}

// PriceLevel aggregates every resting order at one (side, price). The
// invariant total_shares == Σ orders[*].shares must hold after every
// mutation method below (§3 invariant 2). A level is removed once its last
// order is removed (see remove); an order executed down to zero shares
// stays, with its level, until a Delete.
type PriceLevel struct {
	Price       itch.Price4
	TotalShares uint32
	Orders      map[uint64]*RestingOrder
}

func newPriceLevel(price itch.Price4) *PriceLevel {
	return &PriceLevel{
		Price:  price,
		Orders: make(map[uint64]*RestingOrder),
	}
}

// insert adds a new resting order to the level. The caller is responsible
// for rejecting a duplicate OrderRef before calling insert.
func (l *PriceLevel) insert(o *RestingOrder) {
	l.Orders[o.OrderRef] = o
	l.TotalShares += o.Shares
}

// debit reduces an order's shares by n, reducing the level total in step.
// Returns the order's remaining shares. The caller must have already
// verified n does not exceed the order's current shares.
func (l *PriceLevel) debit(o *RestingOrder, n uint32) uint32 {
	o.Shares -= n
	l.TotalShares -= n
	return o.Shares
}

// remove deletes an order from the level, adjusting the total. Reports
// whether the level is now empty and should itself be removed.
func (l *PriceLevel) remove(orderRef uint64) bool {
	if o, ok := l.Orders[orderRef]; ok {
		l.TotalShares -= o.Shares
		delete(l.Orders, orderRef)
	}
	return len(l.Orders) == 0
}
