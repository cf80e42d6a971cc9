// Copyright (c) 2024 Neomantra Corp

package itch

import "encoding/binary"

// StockDirectory (tag 'R') introduces a ticker to the session: the only
// message that creates a stock-directory entry (§4.E).
type StockDirectory struct {
	Header              MessageHeader
	Ticker               Ticker
	MarketCategory       MarketCategory
	FinancialStatus      FinancialStatus
	RoundLotSize         uint32
	RoundLotsOnly        bool
	IssueClassification  IssueClassification
	IssueSubType         [2]byte
	Authenticity         AuthenticityCode
	ShortSaleThreshold   TriStateBool
	IPOFlag              TriStateBool
	LULDRefPriceTier     LULDRefPriceTier
	ETPFlag              TriStateBool
	ETPLeverageFactor    uint32
	InverseIndicator     TriStateBool
}

func (m *StockDirectory) Type() MessageType   { return MessageTypeStockDirectory }
func (m *StockDirectory) Head() MessageHeader { return m.Header }

func DecodeStockDirectory(b []byte) (*StockDirectory, error) {
	if err := checkLength(MessageTypeStockDirectory, b); err != nil {
		return nil, err
	}
	tag := byte(MessageTypeStockDirectory)
	m := &StockDirectory{}
	fillMessageHeader(b[0:10], &m.Header)
	m.Ticker = fillTicker(b[10:18])

	var err error
	if m.MarketCategory, err = decodeMarketCategory(tag, 18, b[18]); err != nil {
		return nil, err
	}
	if m.FinancialStatus, err = decodeFinancialStatus(tag, 19, b[19]); err != nil {
		return nil, err
	}
	m.RoundLotSize = binary.BigEndian.Uint32(b[20:24])
	if m.RoundLotsOnly, err = decodeStrictBool(tag, 24, "round_lots_only", b[24]); err != nil {
		return nil, err
	}
	if m.IssueClassification, err = decodeIssueClassification(tag, 25, b[25]); err != nil {
		return nil, err
	}
	copy(m.IssueSubType[:], b[26:28])
	if m.Authenticity, err = decodeAuthenticityCode(tag, 28, b[28]); err != nil {
		return nil, err
	}
	if m.ShortSaleThreshold, err = decodeTriStateBool(tag, 29, "short_sale_threshold", b[29]); err != nil {
		return nil, err
	}
	if m.IPOFlag, err = decodeTriStateBool(tag, 30, "ipo_flag", b[30]); err != nil {
		return nil, err
	}
	if m.LULDRefPriceTier, err = decodeLULDRefPriceTier(tag, 31, b[31]); err != nil {
		return nil, err
	}
	if m.ETPFlag, err = decodeTriStateBool(tag, 32, "etp_flag", b[32]); err != nil {
		return nil, err
	}
	m.ETPLeverageFactor = binary.BigEndian.Uint32(b[33:37])
	if m.InverseIndicator, err = decodeTriStateBool(tag, 37, "inverse_indicator", b[37]); err != nil {
		return nil, err
	}
	return m, nil
}

// StockTradingAction (tag 'H') reports a halt, pause, quotation-only period,
// or resumption of trading for a ticker.
type StockTradingAction struct {
	Header   MessageHeader
	Ticker    Ticker
	State     TradingState
	Reserved  byte
	Reason    TradingReasonCode
}

func (m *StockTradingAction) Type() MessageType   { return MessageTypeStockTradingAction }
func (m *StockTradingAction) Head() MessageHeader { return m.Header }

func DecodeStockTradingAction(b []byte) (*StockTradingAction, error) {
	if err := checkLength(MessageTypeStockTradingAction, b); err != nil {
		return nil, err
	}
	tag := byte(MessageTypeStockTradingAction)
	m := &StockTradingAction{}
	fillMessageHeader(b[0:10], &m.Header)
	m.Ticker = fillTicker(b[10:18])
	state, err := decodeTradingState(tag, 18, b[18])
	if err != nil {
		return nil, err
	}
	m.State = state
	m.Reserved = b[19]
	reason, err := decodeTradingReasonCode(tag, 20, b[20:24])
	if err != nil {
		return nil, err
	}
	m.Reason = reason
	return m, nil
}

// RegSHORestriction (tag 'Y') reports a Reg SHO short-sale price-test
// restriction action for a ticker.
type RegSHORestriction struct {
	Header MessageHeader
	Ticker  Ticker
	Action  RegSHOAction
}

func (m *RegSHORestriction) Type() MessageType   { return MessageTypeRegSHORestriction }
func (m *RegSHORestriction) Head() MessageHeader { return m.Header }

func DecodeRegSHORestriction(b []byte) (*RegSHORestriction, error) {
	if err := checkLength(MessageTypeRegSHORestriction, b); err != nil {
		return nil, err
	}
	tag := byte(MessageTypeRegSHORestriction)
	m := &RegSHORestriction{}
	fillMessageHeader(b[0:10], &m.Header)
	m.Ticker = fillTicker(b[10:18])
	action, err := decodeRegSHOAction(tag, 18, b[18])
	if err != nil {
		return nil, err
	}
	m.Action = action
	return m, nil
}

// MarketParticipantPosition (tag 'L') reports a market maker's registration
// status and state for a ticker.
type MarketParticipantPosition struct {
	Header    MessageHeader
	MPID       MPID
	Ticker     Ticker
	PrimaryMM  bool
	MMMode     MarketMakerMode
	MPState    MarketParticipantState
}

func (m *MarketParticipantPosition) Type() MessageType   { return MessageTypeMarketParticipantPosition }
func (m *MarketParticipantPosition) Head() MessageHeader { return m.Header }

func DecodeMarketParticipantPosition(b []byte) (*MarketParticipantPosition, error) {
	if err := checkLength(MessageTypeMarketParticipantPosition, b); err != nil {
		return nil, err
	}
	tag := byte(MessageTypeMarketParticipantPosition)
	m := &MarketParticipantPosition{}
	fillMessageHeader(b[0:10], &m.Header)
	m.MPID = fillMPID(b[10:14])
	m.Ticker = fillTicker(b[14:22])
	primaryMM, err := decodeStrictBool(tag, 22, "primary_market_maker", b[22])
	if err != nil {
		return nil, err
	}
	m.PrimaryMM = primaryMM
	if m.MMMode, err = decodeMarketMakerMode(tag, 23, b[23]); err != nil {
		return nil, err
	}
	if m.MPState, err = decodeMarketParticipantState(tag, 24, b[24]); err != nil {
		return nil, err
	}
	return m, nil
}

// MWCBDeclineLevel (tag 'V') publishes the three Market-Wide Circuit
// Breaker decline levels for the session, computed once at the open.
type MWCBDeclineLevel struct {
	Header MessageHeader
	Level1  Price8
	Level2  Price8
	Level3  Price8
}

func (m *MWCBDeclineLevel) Type() MessageType   { return MessageTypeMWCBDeclineLevel }
func (m *MWCBDeclineLevel) Head() MessageHeader { return m.Header }

func DecodeMWCBDeclineLevel(b []byte) (*MWCBDeclineLevel, error) {
	if err := checkLength(MessageTypeMWCBDeclineLevel, b); err != nil {
		return nil, err
	}
	m := &MWCBDeclineLevel{}
	fillMessageHeader(b[0:10], &m.Header)
	m.Level1 = Price8(binary.BigEndian.Uint64(b[10:18]))
	m.Level2 = Price8(binary.BigEndian.Uint64(b[18:26]))
	m.Level3 = Price8(binary.BigEndian.Uint64(b[26:34]))
	return m, nil
}

// MWCBStatus (tag 'W') announces that a Market-Wide Circuit Breaker level
// has been breached.
type MWCBStatus struct {
	Header        MessageHeader
	BreachedLevel MWCBLevel
}

func (m *MWCBStatus) Type() MessageType   { return MessageTypeMWCBStatus }
func (m *MWCBStatus) Head() MessageHeader { return m.Header }

func DecodeMWCBStatus(b []byte) (*MWCBStatus, error) {
	if err := checkLength(MessageTypeMWCBStatus, b); err != nil {
		return nil, err
	}
	tag := byte(MessageTypeMWCBStatus)
	m := &MWCBStatus{}
	fillMessageHeader(b[0:10], &m.Header)
	level, err := decodeMWCBLevel(tag, 10, b[10])
	if err != nil {
		return nil, err
	}
	m.BreachedLevel = level
	return m, nil
}

// IPOQuotingPeriodUpdate (tag 'K') reports a revision to an IPO's expected
// quotation release time and price.
type IPOQuotingPeriodUpdate struct {
	Header      MessageHeader
	Ticker       Ticker
	ReleaseTime  uint32 // seconds since midnight
	Qualifier    IPOReleaseQualifier
	IPOPrice     Price4
}

func (m *IPOQuotingPeriodUpdate) Type() MessageType   { return MessageTypeIPOQuotingPeriodUpdate }
func (m *IPOQuotingPeriodUpdate) Head() MessageHeader { return m.Header }

func DecodeIPOQuotingPeriodUpdate(b []byte) (*IPOQuotingPeriodUpdate, error) {
	if err := checkLength(MessageTypeIPOQuotingPeriodUpdate, b); err != nil {
		return nil, err
	}
	tag := byte(MessageTypeIPOQuotingPeriodUpdate)
	m := &IPOQuotingPeriodUpdate{}
	fillMessageHeader(b[0:10], &m.Header)
	m.Ticker = fillTicker(b[10:18])
	m.ReleaseTime = binary.BigEndian.Uint32(b[18:22])
	qualifier, err := decodeIPOReleaseQualifier(tag, 22, b[22])
	if err != nil {
		return nil, err
	}
	m.Qualifier = qualifier
	m.IPOPrice = Price4(binary.BigEndian.Uint32(b[23:27]))
	return m, nil
}

// RetailPriceImprovement (tag 'N') signals retail liquidity interest ahead
// of the NBBO for a ticker.
type RetailPriceImprovement struct {
	Header       MessageHeader
	Ticker        Ticker
	InterestFlag  RetailInterestFlag
}

func (m *RetailPriceImprovement) Type() MessageType   { return MessageTypeRetailPriceImprovement }
func (m *RetailPriceImprovement) Head() MessageHeader { return m.Header }

func DecodeRetailPriceImprovement(b []byte) (*RetailPriceImprovement, error) {
	if err := checkLength(MessageTypeRetailPriceImprovement, b); err != nil {
		return nil, err
	}
	tag := byte(MessageTypeRetailPriceImprovement)
	m := &RetailPriceImprovement{}
	fillMessageHeader(b[0:10], &m.Header)
	m.Ticker = fillTicker(b[10:18])
	flag, err := decodeRetailInterestFlag(tag, 18, b[18])
	if err != nil {
		return nil, err
	}
	m.InterestFlag = flag
	return m, nil
}
