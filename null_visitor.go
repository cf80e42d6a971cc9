// Copyright (c) 2024 Neomantra Corp

package itch

// NullVisitor implements Visitor with no-op methods. Embed it in a
// consumer that only cares about a handful of record types, overriding
// just those methods.
type NullVisitor struct{}

func (NullVisitor) VisitSystemEvent(*SystemEvent) error                             { return nil }
func (NullVisitor) VisitStockDirectory(*StockDirectory) error                       { return nil }
func (NullVisitor) VisitStockTradingAction(*StockTradingAction) error               { return nil }
func (NullVisitor) VisitRegSHORestriction(*RegSHORestriction) error                 { return nil }
func (NullVisitor) VisitMarketParticipantPosition(*MarketParticipantPosition) error { return nil }
func (NullVisitor) VisitMWCBDeclineLevel(*MWCBDeclineLevel) error                   { return nil }
func (NullVisitor) VisitMWCBStatus(*MWCBStatus) error                               { return nil }
func (NullVisitor) VisitIPOQuotingPeriodUpdate(*IPOQuotingPeriodUpdate) error       { return nil }
func (NullVisitor) VisitAddOrder(*AddOrder) error                                   { return nil }
func (NullVisitor) VisitAddOrderMPID(*AddOrderMPID) error                           { return nil }
func (NullVisitor) VisitOrderExecuted(*OrderExecuted) error                         { return nil }
func (NullVisitor) VisitOrderExecutedWithPrice(*OrderExecutedWithPrice) error       { return nil }
func (NullVisitor) VisitOrderCancel(*OrderCancel) error                             { return nil }
func (NullVisitor) VisitOrderDelete(*OrderDelete) error                             { return nil }
func (NullVisitor) VisitOrderReplace(*OrderReplace) error                           { return nil }
func (NullVisitor) VisitNonCrossingTrade(*NonCrossingTrade) error                   { return nil }
func (NullVisitor) VisitCrossingTrade(*CrossingTrade) error                         { return nil }
func (NullVisitor) VisitBrokenTrade(*BrokenTrade) error                             { return nil }
func (NullVisitor) VisitNetOrderImbalance(*NetOrderImbalance) error                 { return nil }
func (NullVisitor) VisitRetailPriceImprovement(*RetailPriceImprovement) error       { return nil }
