// Copyright (c) 2024 Neomantra Corp
//
// Fixed-point price types. ITCH 5.0 prices are unsigned integers with an
// implied number of fractional digits: 4 for most fields, 8 for the MWCB
// decline-level prices. Comparison is always plain integer comparison —
// never convert to float for book-state decisions, only for display and
// analytics.

package itch

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Price4 is a fixed-point price with 4 implied fractional digits, the
// denomination used by every ITCH price field except the MWCB decline
// levels. Price4(150_0000) represents $150.0000.
type Price4 uint32

const price4Scale = 10000

// Price8 is a fixed-point price with 8 implied fractional digits, used only
// by the MWCB decline-level message.
type Price8 uint64

const price8Scale = 100000000

// String renders the exact integer quotient and zero-padded remainder. No
// locale, no rounding: this is a protocol value, not a currency display.
func (p Price4) String() string {
	return fmt.Sprintf("%d.%04d", uint32(p)/price4Scale, uint32(p)%price4Scale)
}

func (p Price8) String() string {
	return fmt.Sprintf("%d.%08d", uint64(p)/price8Scale, uint64(p)%price8Scale)
}

// Float64 converts to a floating point approximation. Lossy — never use for
// book-state comparisons, only for display and analytics.
func (p Price4) Float64() float64 {
	return float64(p) / price4Scale
}

func (p Price8) Float64() float64 {
	return float64(p) / price8Scale
}

// Decimal converts to an exact decimal.Decimal, suitable for analytics
// pipelines that must not accumulate floating-point error across many
// price additions (e.g. VWAP over a session). Unlike Float64 this is exact.
func (p Price4) Decimal() decimal.Decimal {
	return decimal.New(int64(p), -4)
}

func (p Price8) Decimal() decimal.Decimal {
	return decimal.New(int64(p), -8)
}

// ParsePrice4 parses a "123.4500"-style string back into a Price4. Used by
// test fixtures and the CLI's human-entry flags; the wire format never uses
// this, it always carries the raw integer.
func ParsePrice4(s string) (Price4, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	scaled := d.Mul(decimal.New(price4Scale, 0))
	return Price4(scaled.IntPart()), nil
}

// Sub returns the saturating (never-negative) difference a-b, used to
// compute spread without risking an underflow wraparound on uint32.
func (a Price4) Sub(b Price4) Price4 {
	if a <= b {
		return 0
	}
	return a - b
}
