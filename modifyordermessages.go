// Copyright (c) 2024 Neomantra Corp

package itch

import "encoding/binary"

// OrderExecuted (tag 'E') reports a full or partial execution against a
// resting order at its original display price.
type OrderExecuted struct {
	Header        MessageHeader
	OrderRef      uint64
	ExecutedShares uint32
	MatchNumber   uint64
}

func (m *OrderExecuted) Type() MessageType   { return MessageTypeOrderExecuted }
func (m *OrderExecuted) Head() MessageHeader { return m.Header }

func DecodeOrderExecuted(b []byte) (*OrderExecuted, error) {
	if err := checkLength(MessageTypeOrderExecuted, b); err != nil {
		return nil, err
	}
	m := &OrderExecuted{}
	fillMessageHeader(b[0:10], &m.Header)
	m.OrderRef = binary.BigEndian.Uint64(b[10:18])
	m.ExecutedShares = binary.BigEndian.Uint32(b[18:22])
	m.MatchNumber = binary.BigEndian.Uint64(b[22:30])
	return m, nil
}

// OrderExecutedWithPrice (tag 'C') reports an execution away from the
// order's display price, e.g. inside the spread.
type OrderExecutedWithPrice struct {
	Header         MessageHeader
	OrderRef       uint64
	ExecutedShares uint32
	MatchNumber    uint64
	Printable      bool
	ExecutionPrice Price4
}

func (m *OrderExecutedWithPrice) Type() MessageType   { return MessageTypeOrderExecutedWithPrice }
func (m *OrderExecutedWithPrice) Head() MessageHeader { return m.Header }

func DecodeOrderExecutedWithPrice(b []byte) (*OrderExecutedWithPrice, error) {
	if err := checkLength(MessageTypeOrderExecutedWithPrice, b); err != nil {
		return nil, err
	}
	tag := byte(MessageTypeOrderExecutedWithPrice)
	m := &OrderExecutedWithPrice{}
	fillMessageHeader(b[0:10], &m.Header)
	m.OrderRef = binary.BigEndian.Uint64(b[10:18])
	m.ExecutedShares = binary.BigEndian.Uint32(b[18:22])
	m.MatchNumber = binary.BigEndian.Uint64(b[22:30])
	printable, err := decodeStrictBool(tag, 30, "printable", b[30])
	if err != nil {
		return nil, err
	}
	m.Printable = printable
	m.ExecutionPrice = Price4(binary.BigEndian.Uint32(b[31:35]))
	return m, nil
}

// OrderCancel (tag 'X') reduces a resting order's remaining shares; the
// book manager removes the order once its shares reach zero.
type OrderCancel struct {
	Header         MessageHeader
	OrderRef       uint64
	CanceledShares uint32
}

func (m *OrderCancel) Type() MessageType   { return MessageTypeOrderCancel }
func (m *OrderCancel) Head() MessageHeader { return m.Header }

func DecodeOrderCancel(b []byte) (*OrderCancel, error) {
	if err := checkLength(MessageTypeOrderCancel, b); err != nil {
		return nil, err
	}
	m := &OrderCancel{}
	fillMessageHeader(b[0:10], &m.Header)
	m.OrderRef = binary.BigEndian.Uint64(b[10:18])
	m.CanceledShares = binary.BigEndian.Uint32(b[18:22])
	return m, nil
}

// OrderDelete (tag 'D') removes a resting order from the book entirely.
type OrderDelete struct {
	Header   MessageHeader
	OrderRef uint64
}

func (m *OrderDelete) Type() MessageType   { return MessageTypeOrderDelete }
func (m *OrderDelete) Head() MessageHeader { return m.Header }

func DecodeOrderDelete(b []byte) (*OrderDelete, error) {
	if err := checkLength(MessageTypeOrderDelete, b); err != nil {
		return nil, err
	}
	m := &OrderDelete{}
	fillMessageHeader(b[0:10], &m.Header)
	m.OrderRef = binary.BigEndian.Uint64(b[10:18])
	return m, nil
}

// OrderReplace (tag 'U') atomically deletes an order and adds a replacement
// at a new reference with new shares/price, preserving side and ticker.
type OrderReplace struct {
	Header         MessageHeader
	OriginalRef    uint64
	NewRef         uint64
	Shares         uint32
	Price          Price4
}

func (m *OrderReplace) Type() MessageType   { return MessageTypeOrderReplace }
func (m *OrderReplace) Head() MessageHeader { return m.Header }

func DecodeOrderReplace(b []byte) (*OrderReplace, error) {
	if err := checkLength(MessageTypeOrderReplace, b); err != nil {
		return nil, err
	}
	m := &OrderReplace{}
	fillMessageHeader(b[0:10], &m.Header)
	m.OriginalRef = binary.BigEndian.Uint64(b[10:18])
	m.NewRef = binary.BigEndian.Uint64(b[18:26])
	m.Shares = binary.BigEndian.Uint32(b[26:30])
	m.Price = Price4(binary.BigEndian.Uint32(b[30:34]))
	return m, nil
}
