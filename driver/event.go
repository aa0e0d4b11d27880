// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package driver

// WriteCallback is a borrowed, per-write completion notification. The
// driver invokes WriteErr at most once per write, and only when the
// write could not be delivered — either because it was still queued
// when the driver entered its terminal state, or because it was pushed
// after the driver was already terminal. A write that is handed off to the state
// machine and never rejected never sees its callback invoked; success
// is the caller's own responsibility to observe further downstream.
type WriteCallback interface {
	WriteErr(bytesWritten int, err error)
}

// Event is the internal representation of a queued caller request.
// The six variants below are the complete set; stepOuter and stepRead
// handle TransportDataEvent and dispatchOther (dispatcher.go) switches
// over the other five.
type Event interface {
	isEvent()
}

// TransportDataEvent marks that bytes have been appended to the
// driver's inbound buffer and are available for the state machine to
// consume. It carries no payload of its own — the payload already
// lives in Base.inbound by the time the event is visible to the
// dispatcher.
type TransportDataEvent struct{}

func (TransportDataEvent) isEvent() {}

// AppWriteEvent is a caller-initiated application write, queued behind
// whatever handshake work is outstanding.
type AppWriteEvent struct {
	Data     []byte
	Callback WriteCallback // nil if the caller doesn't want completion notice
}

func (AppWriteEvent) isEvent() {}

// EarlyAppWriteEvent is a caller-initiated 0-RTT write, subject to the
// same queueing as AppWriteEvent but routed to a distinct state
// machine entry point.
type EarlyAppWriteEvent struct {
	Data     []byte
	Callback WriteCallback
}

func (EarlyAppWriteEvent) isEvent() {}

// WriteNewSessionTicketEvent asks the state machine to mint and send a
// new session ticket carrying an opaque application token.
type WriteNewSessionTicketEvent struct {
	AppToken []byte
}

func (WriteNewSessionTicketEvent) isEvent() {}

// AppCloseEvent requests a graceful close once queued work drains.
type AppCloseEvent struct{}

func (AppCloseEvent) isEvent() {}

// AppCloseImmediateEvent requests a close that skips any handshake
// pleasantries AppCloseEvent would otherwise ask the state machine to
// perform; like every other event it is still appended to the queue
// and dispatched strictly in order behind whatever precedes it.
type AppCloseImmediateEvent struct{}

func (AppCloseImmediateEvent) isEvent() {}
