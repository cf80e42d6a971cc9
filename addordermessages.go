// Copyright (c) 2024 Neomantra Corp

package itch

import "encoding/binary"

// AddOrder (tag 'A') adds a new resting order to the book. This is the
// entry point that populates the side-table (§3); every subsequent
// execute/cancel/delete/replace for this OrderRef is resolved through it.
type AddOrder struct {
	Header   MessageHeader
	OrderRef uint64
	Side     Side
	Shares   uint32
	Ticker   Ticker
	Price    Price4
}

func (m *AddOrder) Type() MessageType   { return MessageTypeAddOrder }
func (m *AddOrder) Head() MessageHeader { return m.Header }

func DecodeAddOrder(b []byte) (*AddOrder, error) {
	if err := checkLength(MessageTypeAddOrder, b); err != nil {
		return nil, err
	}
	tag := byte(MessageTypeAddOrder)
	m := &AddOrder{}
	fillMessageHeader(b[0:10], &m.Header)
	m.OrderRef = binary.BigEndian.Uint64(b[10:18])
	side, err := decodeSide(tag, 18, b[18])
	if err != nil {
		return nil, err
	}
	m.Side = side
	m.Shares = binary.BigEndian.Uint32(b[19:23])
	m.Ticker = fillTicker(b[23:31])
	m.Price = Price4(binary.BigEndian.Uint32(b[31:35]))
	return m, nil
}

// AddOrderMPID (tag 'F') is AddOrder plus the attributed market participant.
// Distinct wire type rather than an optional field, matching the protocol.
type AddOrderMPID struct {
	Header   MessageHeader
	OrderRef uint64
	Side     Side
	Shares   uint32
	Ticker   Ticker
	Price    Price4
	MPID     MPID
}

func (m *AddOrderMPID) Type() MessageType   { return MessageTypeAddOrderMPID }
func (m *AddOrderMPID) Head() MessageHeader { return m.Header }

func DecodeAddOrderMPID(b []byte) (*AddOrderMPID, error) {
	if err := checkLength(MessageTypeAddOrderMPID, b); err != nil {
		return nil, err
	}
	tag := byte(MessageTypeAddOrderMPID)
	m := &AddOrderMPID{}
	fillMessageHeader(b[0:10], &m.Header)
	m.OrderRef = binary.BigEndian.Uint64(b[10:18])
	side, err := decodeSide(tag, 18, b[18])
	if err != nil {
		return nil, err
	}
	m.Side = side
	m.Shares = binary.BigEndian.Uint32(b[19:23])
	m.Ticker = fillTicker(b[23:31])
	m.Price = Price4(binary.BigEndian.Uint32(b[31:35]))
	m.MPID = fillMPID(b[35:39])
	return m, nil
}

// AsAddOrder widens an AddOrderMPID to the common AddOrder shape the book
// engine consumes, discarding the MPID attribution.
func (m *AddOrderMPID) AsAddOrder() *AddOrder {
	return &AddOrder{
		Header:   m.Header,
		OrderRef: m.OrderRef,
		Side:     m.Side,
		Shares:   m.Shares,
		Ticker:   m.Ticker,
		Price:    m.Price,
	}
}
