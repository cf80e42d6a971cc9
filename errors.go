// Copyright (c) 2024 Neomantra Corp

package itch

import "fmt"

// DecodeError is the closed set of errors a record decoder can return.
// Every variant carries enough context — record type, byte offset, offending
// value — to reproduce the failure from logs without referring back to the
// stream itself.
type DecodeError struct {
	RecordType byte   // the ITCH message type tag being decoded, 0 if unknown
	Offset     int64  // byte offset within the record of the failing field, 0 for length errors; the stream position is not recorded
	Field      string // the field that failed to decode, empty for length errors
	Got        byte   // the offending byte, if any
	reason     string
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("itch: decode %s at offset %d: %s", recordTypeName(e.RecordType), e.Offset, e.reason)
	}
	return fmt.Sprintf("itch: decode %s at offset %d: field %s: %s", recordTypeName(e.RecordType), e.Offset, e.Field, e.reason)
}

// IncompleteMessage reports that a record's byte slice was not exactly the
// expected length.
func IncompleteMessage(recordType byte, offset int64, expected, got int) *DecodeError {
	return &DecodeError{
		RecordType: recordType,
		Offset:     offset,
		reason:     fmt.Sprintf("incomplete message: expected %d bytes, got %d", expected, got),
	}
}

// InvalidEnumByte reports a categorical field byte outside its alphabet.
func InvalidEnumByte(recordType byte, offset int64, field string, got byte) *DecodeError {
	return &DecodeError{
		RecordType: recordType,
		Offset:     offset,
		Field:      field,
		Got:        got,
		reason:     fmt.Sprintf("invalid byte %q (0x%02x)", got, got),
	}
}

// InvalidBooleanByte reports a Y/N (or Y/N/space) field outside its alphabet.
func InvalidBooleanByte(recordType byte, offset int64, field string, got byte) *DecodeError {
	return &DecodeError{
		RecordType: recordType,
		Offset:     offset,
		Field:      field,
		Got:        got,
		reason:     fmt.Sprintf("invalid boolean byte %q (0x%02x), expected 'Y' or 'N' (or ' ' where the field allows it)", got, got),
	}
}

// InvalidTradingReasonCode reports a 4-byte trading-reason code that matches
// neither the halt nor the resumption alphabet.
func InvalidTradingReasonCode(recordType byte, offset int64, raw [4]byte) *DecodeError {
	return &DecodeError{
		RecordType: recordType,
		Offset:     offset,
		Field:      "reason",
		reason:     fmt.Sprintf("invalid trading reason code %q", raw[:]),
	}
}

func recordTypeName(tag byte) string {
	if name, ok := messageTypeNames[tag]; ok {
		return name
	}
	return fmt.Sprintf("tag %q", tag)
}

// OrderBookError is the closed set of structural invariant violations the
// order-book engine can surface. These are distinct from DecodeError: a
// DecodeError means a record could not be parsed; an OrderBookError means a
// well-formed record could not be applied without breaking book invariants.
type OrderBookError struct {
	Op       string // "add", "execute", "cancel", "delete", "replace"
	OrderRef uint64
	reason   string
}

func (e *OrderBookError) Error() string {
	return fmt.Sprintf("itch: book %s order_ref=%d: %s", e.Op, e.OrderRef, e.reason)
}

// DuplicateOrder reports an AddOrder whose reference is already present in
// the side-table, on any book.
func DuplicateOrder(orderRef uint64) *OrderBookError {
	return &OrderBookError{Op: "add", OrderRef: orderRef, reason: "order reference already resting"}
}

// NonExistentOrder reports an execute/cancel/delete against an order
// reference absent from the side-table.
func NonExistentOrder(op string, orderRef uint64) *OrderBookError {
	return &OrderBookError{Op: op, OrderRef: orderRef, reason: "order reference not found"}
}

// InvalidCancellation reports an execute or cancel whose shares exceed the
// order's remaining resting shares.
func InvalidCancellation(op string, orderRef uint64, requested, remaining uint32) *OrderBookError {
	return &OrderBookError{
		Op:       op,
		OrderRef: orderRef,
		reason:   fmt.Sprintf("requested %d shares exceeds remaining %d", requested, remaining),
	}
}
