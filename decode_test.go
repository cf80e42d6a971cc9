// Copyright (c) 2024 Neomantra Corp
//
// Decode tests: build a wire payload, run it through the per-type DecodeXxx
// function (and, for the framer-facing cases, NextFrom), assert the decoded
// fields.

package itch

import (
	"bytes"
	"encoding/binary"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("DecodeRecord", func() {

	It("decodes a SystemEvent (S1 worked example)", func() {
		// 00 0B 53 | 00 01 00 01 00 00 00 00 00 00 | 4F
		frame := []byte{0x00, 0x0B, 'S', 0x00, 0x01, 0x00, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x4F}
		records, err := NextFrom(bytes.NewReader(frame), 0)
		Expect(err).To(BeNil())
		Expect(records).To(HaveLen(1))

		ev, ok := records[0].(*SystemEvent)
		Expect(ok).To(BeTrue())
		Expect(ev.Header.StockLocate).To(Equal(uint16(1)))
		Expect(ev.Header.TrackingNumber).To(Equal(uint16(1)))
		Expect(ev.Header.Timestamp).To(Equal(uint64(0)))
		Expect(ev.Code).To(Equal(SystemEventStartOfMessages))
	})

	It("decodes a StockDirectory", func() {
		payload := buildHeader(7, 1, 123456)
		payload = append(payload, NewTicker("AAPL")[:]...)
		payload = append(payload,
			byte(MarketCategoryNasdaqGlobalSelect),
			byte(FinancialStatusNormal),
		)
		roundLot := make([]byte, 4)
		binary.BigEndian.PutUint32(roundLot, 100)
		payload = append(payload, roundLot...)
		payload = append(payload,
			'Y', // round_lots_only
			byte(IssueClassCommonStock),
			' ', ' ', // issue_subtype
			byte(AuthenticityProduction),
			byte(TriStateUnavailable), // short_sale_threshold
			byte(TriStateNo),          // ipo_flag
			byte(LULDTierNotApplicable),
			byte(TriStateNo), // etp_flag
		)
		etpLev := make([]byte, 4)
		binary.BigEndian.PutUint32(etpLev, 0)
		payload = append(payload, etpLev...)
		payload = append(payload, byte(TriStateNo)) // inverse_indicator

		rec, err := DecodeStockDirectory(payload)
		Expect(err).To(BeNil())
		Expect(rec.Ticker.String()).To(Equal("AAPL    "))
		Expect(rec.MarketCategory).To(Equal(MarketCategoryNasdaqGlobalSelect))
		Expect(rec.FinancialStatus).To(Equal(FinancialStatusNormal))
		Expect(rec.RoundLotSize).To(Equal(uint32(100)))
		Expect(rec.RoundLotsOnly).To(BeTrue())
		Expect(rec.IssueClassification).To(Equal(IssueClassCommonStock))
	})

	It("rejects a StockDirectory with an invalid market-category byte (S5)", func() {
		payload := buildHeader(7, 1, 123456)
		payload = append(payload, NewTicker("AAPL")[:]...)
		payload = append(payload, 'X', byte(FinancialStatusNormal)) // invalid category
		roundLot := make([]byte, 4)
		payload = append(payload, roundLot...)
		payload = append(payload,
			'Y', byte(IssueClassCommonStock), ' ', ' ',
			byte(AuthenticityProduction), byte(TriStateUnavailable), byte(TriStateNo),
			byte(LULDTierNotApplicable), byte(TriStateNo),
		)
		etpLev := make([]byte, 4)
		payload = append(payload, etpLev...)
		payload = append(payload, byte(TriStateNo))

		_, err := DecodeStockDirectory(payload)
		Expect(err).ToNot(BeNil())
		var decErr *DecodeError
		Expect(err).To(BeAssignableToTypeOf(decErr))
		Expect(err.(*DecodeError).Field).To(Equal("market_category"))
		Expect(err.(*DecodeError).Got).To(Equal(byte('X')))
	})

	It("decodes an AddOrder", func() {
		payload := buildHeader(3, 1, 1000)
		orderRef := make([]byte, 8)
		binary.BigEndian.PutUint64(orderRef, 10)
		payload = append(payload, orderRef...)
		payload = append(payload, byte(SideBuy))
		shares := make([]byte, 4)
		binary.BigEndian.PutUint32(shares, 100)
		payload = append(payload, shares...)
		payload = append(payload, NewTicker("AAPL")[:]...)
		price := make([]byte, 4)
		binary.BigEndian.PutUint32(price, 150_0000)
		payload = append(payload, price...)

		rec, err := DecodeAddOrder(payload)
		Expect(err).To(BeNil())
		Expect(rec.OrderRef).To(Equal(uint64(10)))
		Expect(rec.Side).To(Equal(SideBuy))
		Expect(rec.Shares).To(Equal(uint32(100)))
		Expect(rec.Ticker.String()).To(Equal("AAPL    "))
		Expect(rec.Price).To(Equal(Price4(150_0000)))
	})

	It("decodes an AddOrderMPID and widens it via AsAddOrder", func() {
		payload := buildHeader(3, 1, 1000)
		orderRef := make([]byte, 8)
		binary.BigEndian.PutUint64(orderRef, 11)
		payload = append(payload, orderRef...)
		payload = append(payload, byte(SideSell))
		shares := make([]byte, 4)
		binary.BigEndian.PutUint32(shares, 200)
		payload = append(payload, shares...)
		payload = append(payload, NewTicker("MSFT")[:]...)
		price := make([]byte, 4)
		binary.BigEndian.PutUint32(price, 300_0000)
		payload = append(payload, price...)
		payload = append(payload, NewMPID("EDGX")[:]...)

		rec, err := DecodeAddOrderMPID(payload)
		Expect(err).To(BeNil())
		Expect(rec.MPID.String()).To(Equal("EDGX"))

		widened := rec.AsAddOrder()
		Expect(widened.OrderRef).To(Equal(rec.OrderRef))
		Expect(widened.Side).To(Equal(rec.Side))
		Expect(widened.Price).To(Equal(rec.Price))
	})

	It("decodes an OrderExecuted", func() {
		payload := buildHeader(3, 1, 1000)
		orderRef := make([]byte, 8)
		binary.BigEndian.PutUint64(orderRef, 10)
		payload = append(payload, orderRef...)
		shares := make([]byte, 4)
		binary.BigEndian.PutUint32(shares, 40)
		payload = append(payload, shares...)
		match := make([]byte, 8)
		binary.BigEndian.PutUint64(match, 77)
		payload = append(payload, match...)

		rec, err := DecodeOrderExecuted(payload)
		Expect(err).To(BeNil())
		Expect(rec.OrderRef).To(Equal(uint64(10)))
		Expect(rec.ExecutedShares).To(Equal(uint32(40)))
		Expect(rec.MatchNumber).To(Equal(uint64(77)))
	})

	It("decodes an OrderCancel", func() {
		payload := buildHeader(3, 1, 1000)
		orderRef := make([]byte, 8)
		binary.BigEndian.PutUint64(orderRef, 10)
		payload = append(payload, orderRef...)
		canceled := make([]byte, 4)
		binary.BigEndian.PutUint32(canceled, 60)
		payload = append(payload, canceled...)

		rec, err := DecodeOrderCancel(payload)
		Expect(err).To(BeNil())
		Expect(rec.CanceledShares).To(Equal(uint32(60)))
	})

	It("decodes an OrderDelete", func() {
		payload := buildHeader(3, 1, 1000)
		orderRef := make([]byte, 8)
		binary.BigEndian.PutUint64(orderRef, 10)
		payload = append(payload, orderRef...)

		rec, err := DecodeOrderDelete(payload)
		Expect(err).To(BeNil())
		Expect(rec.OrderRef).To(Equal(uint64(10)))
	})

	It("decodes an OrderReplace (S4 worked example)", func() {
		payload := buildHeader(3, 1, 1000)
		refs := make([]byte, 16)
		binary.BigEndian.PutUint64(refs[0:8], 10)
		binary.BigEndian.PutUint64(refs[8:16], 11)
		payload = append(payload, refs...)
		shares := make([]byte, 4)
		binary.BigEndian.PutUint32(shares, 25)
		payload = append(payload, shares...)
		price := make([]byte, 4)
		binary.BigEndian.PutUint32(price, 149_5000)
		payload = append(payload, price...)

		rec, err := DecodeOrderReplace(payload)
		Expect(err).To(BeNil())
		Expect(rec.OriginalRef).To(Equal(uint64(10)))
		Expect(rec.NewRef).To(Equal(uint64(11)))
		Expect(rec.Shares).To(Equal(uint32(25)))
		Expect(rec.Price).To(Equal(Price4(149_5000)))
	})

	It("decodes a NonCrossingTrade and rejects a non-'B' side byte", func() {
		payload := buildHeader(3, 1, 1000)
		orderRef := make([]byte, 8)
		binary.BigEndian.PutUint64(orderRef, 99)
		payload = append(payload, orderRef...)
		payload = append(payload, byte(SideBuy))
		shares := make([]byte, 4)
		binary.BigEndian.PutUint32(shares, 10)
		payload = append(payload, shares...)
		payload = append(payload, NewTicker("AAPL")[:]...)
		price := make([]byte, 4)
		binary.BigEndian.PutUint32(price, 100_0000)
		payload = append(payload, price...)
		match := make([]byte, 8)
		binary.BigEndian.PutUint64(match, 1)
		payload = append(payload, match...)

		rec, err := DecodeNonCrossingTrade(payload)
		Expect(err).To(BeNil())
		Expect(rec.Side).To(Equal(SideBuy))

		payload[18] = byte(SideSell)
		_, err = DecodeNonCrossingTrade(payload)
		Expect(err).ToNot(BeNil())
	})

	It("reports a 49-byte total record length for NetOrderImbalance", func() {
		Expect(recordLength[MessageTypeNetOrderImbalance]).To(BeNumerically(">", 0))
		n, ok := RecordLength(MessageTypeNetOrderImbalance)
		Expect(ok).To(BeTrue())
		Expect(n).To(Equal(49))
	})

	It("reports IncompleteMessage on a short payload", func() {
		_, err := DecodeOrderDelete(make([]byte, 5))
		Expect(err).ToNot(BeNil())
	})

	It("decodes a StockTradingAction halted for a halt reason", func() {
		payload := buildHeader(7, 1, 123456)
		payload = append(payload, NewTicker("AAPL")[:]...)
		payload = append(payload, byte(TradingStateHalted), ' ')
		payload = append(payload, []byte("T1  ")...)

		rec, err := DecodeStockTradingAction(payload)
		Expect(err).To(BeNil())
		Expect(rec.State).To(Equal(TradingStateHalted))
		Expect(rec.Reason.IsAvailable()).To(BeTrue())
		Expect(rec.Reason.Kind).To(Equal(TradingReasonHalt))
		Expect(rec.Reason.Halt).To(Equal(HaltReasonNewsPending))
	})

	It("decodes a StockTradingAction resumed for a resumption reason", func() {
		payload := buildHeader(7, 1, 123456)
		payload = append(payload, NewTicker("AAPL")[:]...)
		payload = append(payload, byte(TradingStateTrading), ' ')
		payload = append(payload, []byte("T3  ")...)

		rec, err := DecodeStockTradingAction(payload)
		Expect(err).To(BeNil())
		Expect(rec.Reason.Kind).To(Equal(TradingReasonResumption))
		Expect(rec.Reason.Resumption).To(Equal(ResumptionReasonNewsAndResumptionTime))
	})

	It("decodes a StockTradingAction with no reason available", func() {
		payload := buildHeader(7, 1, 123456)
		payload = append(payload, NewTicker("AAPL")[:]...)
		payload = append(payload, byte(TradingStateQuotationOnly), ' ')
		payload = append(payload, []byte("    ")...)

		rec, err := DecodeStockTradingAction(payload)
		Expect(err).To(BeNil())
		Expect(rec.Reason.IsAvailable()).To(BeFalse())
		Expect(rec.Reason.Kind).To(Equal(TradingReasonUnavailable))
	})

	It("rejects a StockTradingAction with an unrecognized reason code", func() {
		payload := buildHeader(7, 1, 123456)
		payload = append(payload, NewTicker("AAPL")[:]...)
		payload = append(payload, byte(TradingStateHalted), ' ')
		payload = append(payload, []byte("ZZZZ")...)

		_, err := DecodeStockTradingAction(payload)
		Expect(err).ToNot(BeNil())
		Expect(err.(*DecodeError).Field).To(Equal("reason"))
	})

	It("decodes a RegSHORestriction", func() {
		payload := buildHeader(7, 1, 123456)
		payload = append(payload, NewTicker("AAPL")[:]...)
		payload = append(payload, byte(RegSHORestrictionInEffect))

		rec, err := DecodeRegSHORestriction(payload)
		Expect(err).To(BeNil())
		Expect(rec.Action).To(Equal(RegSHORestrictionInEffect))
	})

	It("decodes a MarketParticipantPosition", func() {
		payload := buildHeader(7, 1, 123456)
		payload = append(payload, NewMPID("EDGX")[:]...)
		payload = append(payload, NewTicker("AAPL")[:]...)
		payload = append(payload,
			'Y', // primary_market_maker
			byte(MarketMakerModeNormal),
			byte(MarketParticipantActive),
		)

		rec, err := DecodeMarketParticipantPosition(payload)
		Expect(err).To(BeNil())
		Expect(rec.MPID.String()).To(Equal("EDGX"))
		Expect(rec.PrimaryMM).To(BeTrue())
		Expect(rec.MMMode).To(Equal(MarketMakerModeNormal))
		Expect(rec.MPState).To(Equal(MarketParticipantActive))
	})

	It("decodes a MWCBDeclineLevel", func() {
		payload := buildHeader(0, 1, 1000)
		levels := make([]byte, 24)
		binary.BigEndian.PutUint64(levels[0:8], 3200_0000_0000)
		binary.BigEndian.PutUint64(levels[8:16], 2900_0000_0000)
		binary.BigEndian.PutUint64(levels[16:24], 2600_0000_0000)
		payload = append(payload, levels...)

		rec, err := DecodeMWCBDeclineLevel(payload)
		Expect(err).To(BeNil())
		Expect(rec.Level1).To(Equal(Price8(3200_0000_0000)))
		Expect(rec.Level2).To(Equal(Price8(2900_0000_0000)))
		Expect(rec.Level3).To(Equal(Price8(2600_0000_0000)))
	})

	It("decodes a MWCBStatus", func() {
		payload := buildHeader(0, 1, 1000)
		payload = append(payload, byte(MWCBLevel2))

		rec, err := DecodeMWCBStatus(payload)
		Expect(err).To(BeNil())
		Expect(rec.BreachedLevel).To(Equal(MWCBLevel2))
	})

	It("decodes an IPOQuotingPeriodUpdate", func() {
		payload := buildHeader(7, 1, 123456)
		payload = append(payload, NewTicker("AAPL")[:]...)
		releaseTime := make([]byte, 4)
		binary.BigEndian.PutUint32(releaseTime, 36000)
		payload = append(payload, releaseTime...)
		payload = append(payload, byte(IPOReleaseAnticipated))
		price := make([]byte, 4)
		binary.BigEndian.PutUint32(price, 25_0000)
		payload = append(payload, price...)

		rec, err := DecodeIPOQuotingPeriodUpdate(payload)
		Expect(err).To(BeNil())
		Expect(rec.ReleaseTime).To(Equal(uint32(36000)))
		Expect(rec.Qualifier).To(Equal(IPOReleaseAnticipated))
		Expect(rec.IPOPrice).To(Equal(Price4(25_0000)))
	})

	It("decodes an OrderExecutedWithPrice", func() {
		payload := buildHeader(3, 1, 1000)
		orderRef := make([]byte, 8)
		binary.BigEndian.PutUint64(orderRef, 10)
		payload = append(payload, orderRef...)
		shares := make([]byte, 4)
		binary.BigEndian.PutUint32(shares, 40)
		payload = append(payload, shares...)
		match := make([]byte, 8)
		binary.BigEndian.PutUint64(match, 77)
		payload = append(payload, match...)
		payload = append(payload, 'Y') // printable
		price := make([]byte, 4)
		binary.BigEndian.PutUint32(price, 150_0500)
		payload = append(payload, price...)

		rec, err := DecodeOrderExecutedWithPrice(payload)
		Expect(err).To(BeNil())
		Expect(rec.ExecutedShares).To(Equal(uint32(40)))
		Expect(rec.Printable).To(BeTrue())
		Expect(rec.ExecutionPrice).To(Equal(Price4(150_0500)))
	})

	It("decodes a CrossingTrade", func() {
		payload := buildHeader(3, 1, 1000)
		shares := make([]byte, 8)
		binary.BigEndian.PutUint64(shares, 5000)
		payload = append(payload, shares...)
		payload = append(payload, NewTicker("AAPL")[:]...)
		price := make([]byte, 4)
		binary.BigEndian.PutUint32(price, 150_0000)
		payload = append(payload, price...)
		match := make([]byte, 8)
		binary.BigEndian.PutUint64(match, 42)
		payload = append(payload, match...)
		payload = append(payload, byte(CrossTypeOpening))

		rec, err := DecodeCrossingTrade(payload)
		Expect(err).To(BeNil())
		Expect(rec.Shares).To(Equal(uint64(5000)))
		Expect(rec.CrossPrice).To(Equal(Price4(150_0000)))
		Expect(rec.MatchNumber).To(Equal(uint64(42)))
		Expect(rec.CrossType).To(Equal(CrossTypeOpening))
	})

	It("decodes a BrokenTrade", func() {
		payload := buildHeader(3, 1, 1000)
		match := make([]byte, 8)
		binary.BigEndian.PutUint64(match, 42)
		payload = append(payload, match...)

		rec, err := DecodeBrokenTrade(payload)
		Expect(err).To(BeNil())
		Expect(rec.MatchNumber).To(Equal(uint64(42)))
	})

	It("decodes a RetailPriceImprovement", func() {
		payload := buildHeader(7, 1, 123456)
		payload = append(payload, NewTicker("AAPL")[:]...)
		payload = append(payload, byte(RetailInterestBuySide))

		rec, err := DecodeRetailPriceImprovement(payload)
		Expect(err).To(BeNil())
		Expect(rec.InterestFlag).To(Equal(RetailInterestBuySide))
	})
})
