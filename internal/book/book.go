// Copyright (c) 2024 Neomantra Corp
//
// A per-instrument order book: two price-ordered collections of levels,
// both kept in ascending price order (best bid last, best ask first), with
// cached best-price lookups. Price
// order is maintained with a sorted slice rather than a balanced tree —
// book depth per instrument is small enough in practice that O(n) insert
// with binary-search lookup outperforms tree overhead, and it keeps the
// implementation free of an external ordered-map dependency.

package book

import (
	"sort"

	"github.com/luke-a-thompson/itchbook"
)

// Book is the live state for one stock_locate: its bid side and ask side,
// each held in ascending price order.
type Book struct {
	StockLocate uint16
	Ticker      itch.Ticker

	bidPrices []itch.Price4 // ascending; best bid is the last element
	askPrices []itch.Price4 // ascending; best ask is the first element
	bidLevels map[itch.Price4]*PriceLevel
	askLevels map[itch.Price4]*PriceLevel
}

// NewBook returns an empty book for the given instrument.
func NewBook(stockLocate uint16, ticker itch.Ticker) *Book {
	return &Book{
		StockLocate: stockLocate,
		Ticker:      ticker,
		bidLevels:   make(map[itch.Price4]*PriceLevel),
		askLevels:   make(map[itch.Price4]*PriceLevel),
	}
}

func (b *Book) levels(side itch.Side) map[itch.Price4]*PriceLevel {
	if side == itch.SideBuy {
		return b.bidLevels
	}
	return b.askLevels
}

func (b *Book) prices(side itch.Side) *[]itch.Price4 {
	if side == itch.SideBuy {
		return &b.bidPrices
	}
	return &b.askPrices
}

// levelAt returns the level for (side, price), creating it lazily and
// inserting its price into the sorted price slice.
func (b *Book) levelAt(side itch.Side, price itch.Price4) *PriceLevel {
	levels := b.levels(side)
	if lvl, ok := levels[price]; ok {
		return lvl
	}
	lvl := newPriceLevel(price)
	levels[price] = lvl

	prices := b.prices(side)
	i := sort.Search(len(*prices), func(i int) bool { return (*prices)[i] >= price })
	*prices = append(*prices, 0)
	copy((*prices)[i+1:], (*prices)[i:])
	(*prices)[i] = price
	return lvl
}

// dropLevelIfEmpty removes an emptied level from both the level map and
// the sorted price slice.
func (b *Book) dropLevelIfEmpty(side itch.Side, price itch.Price4) {
	levels := b.levels(side)
	lvl, ok := levels[price]
	if !ok || len(lvl.Orders) > 0 {
		return
	}
	delete(levels, price)

	prices := b.prices(side)
	i := sort.Search(len(*prices), func(i int) bool { return (*prices)[i] >= price })
	if i < len(*prices) && (*prices)[i] == price {
		*prices = append((*prices)[:i], (*prices)[i+1:]...)
	}
}

// BestBid returns the highest resting buy price, if any.
func (b *Book) BestBid() (itch.Price4, bool) {
	if len(b.bidPrices) == 0 {
		return 0, false
	}
	return b.bidPrices[len(b.bidPrices)-1], true
}

// BestAsk returns the lowest resting sell price, if any.
func (b *Book) BestAsk() (itch.Price4, bool) {
	if len(b.askPrices) == 0 {
		return 0, false
	}
	return b.askPrices[0], true
}

// Spread returns best_ask - best_bid, saturating at zero when either side
// is empty or the book is (incorrectly) crossed.
func (b *Book) Spread() itch.Price4 {
	bid, hasBid := b.BestBid()
	ask, hasAsk := b.BestAsk()
	if !hasBid || !hasAsk {
		return 0
	}
	return ask.Sub(bid)
}

// LevelDepth returns the total resting shares at (side, price), or 0 if no
// level exists there.
func (b *Book) LevelDepth(side itch.Side, price itch.Price4) uint32 {
	if lvl, ok := b.levels(side)[price]; ok {
		return lvl.TotalShares
	}
	return 0
}

// Crossed reports whether best_bid >= best_ask while both are defined —
// true only in the presence of a decoding or application bug (§3
// invariant 3).
func (b *Book) Crossed() bool {
	bid, hasBid := b.BestBid()
	ask, hasAsk := b.BestAsk()
	return hasBid && hasAsk && bid >= ask
}
