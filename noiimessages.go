// Copyright (c) 2024 Neomantra Corp

package itch

import "encoding/binary"

// NetOrderImbalance (tag 'I') publishes the Net Order Imbalance Indicator
// ahead of an auction cross: the paired and imbalance share counts, the
// direction of the imbalance, and the prices the auction is converging
// toward.
type NetOrderImbalance struct {
	Header                 MessageHeader
	PairedShares           uint64
	ImbalanceShares        uint64
	ImbalanceDirection     ImbalanceDirection
	Ticker                 Ticker
	FarPrice               Price4
	NearPrice              Price4
	CurrentReferencePrice  Price4
	CrossType              CrossType
	PriceVariationIndicator PriceVariationIndicator
}

func (m *NetOrderImbalance) Type() MessageType   { return MessageTypeNetOrderImbalance }
func (m *NetOrderImbalance) Head() MessageHeader { return m.Header }

func DecodeNetOrderImbalance(b []byte) (*NetOrderImbalance, error) {
	if err := checkLength(MessageTypeNetOrderImbalance, b); err != nil {
		return nil, err
	}
	tag := byte(MessageTypeNetOrderImbalance)
	m := &NetOrderImbalance{}
	fillMessageHeader(b[0:10], &m.Header)
	m.PairedShares = binary.BigEndian.Uint64(b[10:18])
	m.ImbalanceShares = binary.BigEndian.Uint64(b[18:26])
	direction, err := decodeImbalanceDirection(tag, 26, b[26])
	if err != nil {
		return nil, err
	}
	m.ImbalanceDirection = direction
	m.Ticker = fillTicker(b[27:35])
	m.FarPrice = Price4(binary.BigEndian.Uint32(b[35:39]))
	m.NearPrice = Price4(binary.BigEndian.Uint32(b[39:43]))
	m.CurrentReferencePrice = Price4(binary.BigEndian.Uint32(b[43:47]))
	crossType, err := decodeCrossType(tag, 47, b[47])
	if err != nil {
		return nil, err
	}
	m.CrossType = crossType
	variation, err := decodePriceVariationIndicator(tag, 48, b[48])
	if err != nil {
		return nil, err
	}
	m.PriceVariationIndicator = variation
	return m, nil
}
