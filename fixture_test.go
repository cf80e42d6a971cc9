// Copyright (c) 2024 Neomantra Corp
//
// Raw wire-frame builders shared by the decode and framer tests. These
// construct exactly the bytes a NASDAQ feed would send: a 3-byte preamble
// followed by the fixed-length header+body payload, so tests exercise the
// real decode path rather than poking at struct fields directly.

package itch

import "encoding/binary"

// buildHeader returns the 10-byte MessageHeader prefix.
func buildHeader(stockLocate, trackingNumber uint16, timestamp uint64) []byte {
	b := make([]byte, MessageHeaderSize)
	binary.BigEndian.PutUint16(b[0:2], stockLocate)
	binary.BigEndian.PutUint16(b[2:4], trackingNumber)
	putUint48(b[4:10], timestamp)
	return b
}

// buildFrame prepends the {len, type} preamble to payload, the header+body
// bytes a decoder expects. len counts payload, not the type tag.
func buildFrame(tag MessageType, payload []byte) []byte {
	buf := make([]byte, preambleSize+len(payload))
	binary.BigEndian.PutUint16(buf[0:2], uint16(len(payload)))
	buf[2] = byte(tag)
	copy(buf[3:], payload)
	return buf
}
