// Copyright (c) 2024 Neomantra Corp

package itch

import "encoding/binary"

// NonCrossingTrade (tag 'P') reports a non-displayed (typically hidden or
// odd-lot) execution that does not go through the book's displayed side.
// The side byte is always 'B' on the wire — NASDAQ publishes these from the
// buy order's perspective regardless of which side initiated — so decoding
// rejects anything else rather than silently accepting a sell-side value.
type NonCrossingTrade struct {
	Header      MessageHeader
	OrderRef    uint64
	Side        Side
	Shares      uint32
	Ticker      Ticker
	Price       Price4
	MatchNumber uint64
}

func (m *NonCrossingTrade) Type() MessageType   { return MessageTypeNonCrossingTrade }
func (m *NonCrossingTrade) Head() MessageHeader { return m.Header }

func DecodeNonCrossingTrade(b []byte) (*NonCrossingTrade, error) {
	if err := checkLength(MessageTypeNonCrossingTrade, b); err != nil {
		return nil, err
	}
	tag := byte(MessageTypeNonCrossingTrade)
	m := &NonCrossingTrade{}
	fillMessageHeader(b[0:10], &m.Header)
	m.OrderRef = binary.BigEndian.Uint64(b[10:18])
	side, err := decodeSide(tag, 18, b[18])
	if err != nil {
		return nil, err
	}
	if side != SideBuy {
		return nil, InvalidEnumByte(tag, 18, "side", b[18])
	}
	m.Side = side
	m.Shares = binary.BigEndian.Uint32(b[19:23])
	m.Ticker = fillTicker(b[23:31])
	m.Price = Price4(binary.BigEndian.Uint32(b[31:35]))
	m.MatchNumber = binary.BigEndian.Uint64(b[35:43])
	return m, nil
}

// CrossingTrade (tag 'Q') reports the result of an auction cross: opening,
// closing, halt, or intraday.
type CrossingTrade struct {
	Header      MessageHeader
	Shares      uint64
	Ticker      Ticker
	CrossPrice  Price4
	MatchNumber uint64
	CrossType   CrossType
}

func (m *CrossingTrade) Type() MessageType   { return MessageTypeCrossingTrade }
func (m *CrossingTrade) Head() MessageHeader { return m.Header }

func DecodeCrossingTrade(b []byte) (*CrossingTrade, error) {
	if err := checkLength(MessageTypeCrossingTrade, b); err != nil {
		return nil, err
	}
	tag := byte(MessageTypeCrossingTrade)
	m := &CrossingTrade{}
	fillMessageHeader(b[0:10], &m.Header)
	m.Shares = binary.BigEndian.Uint64(b[10:18])
	m.Ticker = fillTicker(b[18:26])
	m.CrossPrice = Price4(binary.BigEndian.Uint32(b[26:30]))
	m.MatchNumber = binary.BigEndian.Uint64(b[30:38])
	crossType, err := decodeCrossType(tag, 38, b[38])
	if err != nil {
		return nil, err
	}
	m.CrossType = crossType
	return m, nil
}

// BrokenTrade (tag 'B') retracts a previously published execution
// identified by its match number. The book engine does not reconstruct the
// retracted fill; it is surfaced to observers for downstream reconciliation.
type BrokenTrade struct {
	Header      MessageHeader
	MatchNumber uint64
}

func (m *BrokenTrade) Type() MessageType   { return MessageTypeBrokenTrade }
func (m *BrokenTrade) Head() MessageHeader { return m.Header }

func DecodeBrokenTrade(b []byte) (*BrokenTrade, error) {
	if err := checkLength(MessageTypeBrokenTrade, b); err != nil {
		return nil, err
	}
	m := &BrokenTrade{}
	fillMessageHeader(b[0:10], &m.Header)
	m.MatchNumber = binary.BigEndian.Uint64(b[10:18])
	return m, nil
}
