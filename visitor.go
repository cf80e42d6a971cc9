// Copyright (c) 2024 Neomantra Corp

package itch

// Visitor is implemented by consumers of the decoded message stream, one
// method per record type. Scanner dispatches to it with a type switch over
// Record rather than reflection, so a missing method is a compile error,
// not a silently-skipped message.
type Visitor interface {
	VisitSystemEvent(*SystemEvent) error
	VisitStockDirectory(*StockDirectory) error
	VisitStockTradingAction(*StockTradingAction) error
	VisitRegSHORestriction(*RegSHORestriction) error
	VisitMarketParticipantPosition(*MarketParticipantPosition) error
	VisitMWCBDeclineLevel(*MWCBDeclineLevel) error
	VisitMWCBStatus(*MWCBStatus) error
	VisitIPOQuotingPeriodUpdate(*IPOQuotingPeriodUpdate) error
	VisitAddOrder(*AddOrder) error
	VisitAddOrderMPID(*AddOrderMPID) error
	VisitOrderExecuted(*OrderExecuted) error
	VisitOrderExecutedWithPrice(*OrderExecutedWithPrice) error
	VisitOrderCancel(*OrderCancel) error
	VisitOrderDelete(*OrderDelete) error
	VisitOrderReplace(*OrderReplace) error
	VisitNonCrossingTrade(*NonCrossingTrade) error
	VisitCrossingTrade(*CrossingTrade) error
	VisitBrokenTrade(*BrokenTrade) error
	VisitNetOrderImbalance(*NetOrderImbalance) error
	VisitRetailPriceImprovement(*RetailPriceImprovement) error
}

// Visit dispatches a decoded Record to the matching Visitor method. It is
// the single place that must be kept exhaustive over the closed Record set;
// the default case reports a programmer error rather than an ITCH protocol
// error, since r was already successfully decoded by this package.
func Visit(v Visitor, r Record) error {
	switch m := r.(type) {
	case *SystemEvent:
		return v.VisitSystemEvent(m)
	case *StockDirectory:
		return v.VisitStockDirectory(m)
	case *StockTradingAction:
		return v.VisitStockTradingAction(m)
	case *RegSHORestriction:
		return v.VisitRegSHORestriction(m)
	case *MarketParticipantPosition:
		return v.VisitMarketParticipantPosition(m)
	case *MWCBDeclineLevel:
		return v.VisitMWCBDeclineLevel(m)
	case *MWCBStatus:
		return v.VisitMWCBStatus(m)
	case *IPOQuotingPeriodUpdate:
		return v.VisitIPOQuotingPeriodUpdate(m)
	case *AddOrder:
		return v.VisitAddOrder(m)
	case *AddOrderMPID:
		return v.VisitAddOrderMPID(m)
	case *OrderExecuted:
		return v.VisitOrderExecuted(m)
	case *OrderExecutedWithPrice:
		return v.VisitOrderExecutedWithPrice(m)
	case *OrderCancel:
		return v.VisitOrderCancel(m)
	case *OrderDelete:
		return v.VisitOrderDelete(m)
	case *OrderReplace:
		return v.VisitOrderReplace(m)
	case *NonCrossingTrade:
		return v.VisitNonCrossingTrade(m)
	case *CrossingTrade:
		return v.VisitCrossingTrade(m)
	case *BrokenTrade:
		return v.VisitBrokenTrade(m)
	case *NetOrderImbalance:
		return v.VisitNetOrderImbalance(m)
	case *RetailPriceImprovement:
		return v.VisitRetailPriceImprovement(m)
	default:
		panic("itch: Visit called with an unregistered Record implementation")
	}
}

// DecodeRecord decodes b according to its type tag, returning the concrete
// *XxxMessage as a Record. tag is the byte that preceded b on the wire.
func DecodeRecord(tag byte, b []byte) (Record, error) {
	switch MessageType(tag) {
	case MessageTypeSystemEvent:
		return DecodeSystemEvent(b)
	case MessageTypeStockDirectory:
		return DecodeStockDirectory(b)
	case MessageTypeStockTradingAction:
		return DecodeStockTradingAction(b)
	case MessageTypeRegSHORestriction:
		return DecodeRegSHORestriction(b)
	case MessageTypeMarketParticipantPosition:
		return DecodeMarketParticipantPosition(b)
	case MessageTypeMWCBDeclineLevel:
		return DecodeMWCBDeclineLevel(b)
	case MessageTypeMWCBStatus:
		return DecodeMWCBStatus(b)
	case MessageTypeIPOQuotingPeriodUpdate:
		return DecodeIPOQuotingPeriodUpdate(b)
	case MessageTypeAddOrder:
		return DecodeAddOrder(b)
	case MessageTypeAddOrderMPID:
		return DecodeAddOrderMPID(b)
	case MessageTypeOrderExecuted:
		return DecodeOrderExecuted(b)
	case MessageTypeOrderExecutedWithPrice:
		return DecodeOrderExecutedWithPrice(b)
	case MessageTypeOrderCancel:
		return DecodeOrderCancel(b)
	case MessageTypeOrderDelete:
		return DecodeOrderDelete(b)
	case MessageTypeOrderReplace:
		return DecodeOrderReplace(b)
	case MessageTypeNonCrossingTrade:
		return DecodeNonCrossingTrade(b)
	case MessageTypeCrossingTrade:
		return DecodeCrossingTrade(b)
	case MessageTypeBrokenTrade:
		return DecodeBrokenTrade(b)
	case MessageTypeNetOrderImbalance:
		return DecodeNetOrderImbalance(b)
	case MessageTypeRetailPriceImprovement:
		return DecodeRetailPriceImprovement(b)
	default:
		return nil, &DecodeError{RecordType: tag, reason: "unknown message type tag"}
	}
}
