// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package driver implements the transport-agnostic event loop that
// sits between an async transport and a pure TLS state machine: it
// owns the request queue, guarantees at most one state-machine call
// is ever in flight, and pumps the actions each call produces out to
// a caller-supplied visitor.
//
// The package never speaks TLS itself. StateMachine, State and
// Visitor are the three seams a concrete protocol implementation
// plugs into; Base[S, A] is generic over the opaque state type S and
// the action type A so the same driver serves any such protocol.
package driver

import (
	"sync/atomic"

	"github.com/fizzproto/fizzbase/circular"
	"github.com/fizzproto/fizzbase/fizzerrors"
)

var errAlreadyTerminal = fizzerrors.ErrAlreadyTerminal

// Phase is the coarse-grained health of the opaque connection state,
// as reported by State.Phase. It is distinct from Base's own terminal
// flag: a state machine can reach Errored on its own, internally,
// without ever calling Base.MoveToErrorState — see TestStopOnError and
// TestActionProcessedAfterError for the scenarios that motivate
// keeping the two separate.
type Phase int

const (
	// Normal is the only phase that permits further state-machine calls.
	Normal Phase = iota
	// Errored means the state machine itself noticed a fatal condition.
	// The dispatcher stops invoking the state machine from this point on,
	// but — unlike an explicit MoveToErrorState — does not drain the
	// queue or fail pending write callbacks; only the driver entering
	// its own terminal state does that.
	Errored
)

// State is the opaque connection state a concrete protocol
// implementation owns; the driver only ever asks it one question.
type State interface {
	Phase() Phase
}

// StateMachine is the pure, synchronous or asynchronous decision logic
// the driver dispatches to. Every entry point returns a Batch of
// actions for the driver to pump out to the Visitor — never performs
// I/O itself, never blocks the caller.
type StateMachine[S State, A any] interface {
	ProcessSocketData(state S, inbound *circular.Buffer[byte]) *Batch[A]
	ProcessAppWrite(state S, write AppWriteEvent) *Batch[A]
	ProcessEarlyAppWrite(state S, write EarlyAppWriteEvent) *Batch[A]
	ProcessWriteNewSessionTicket(state S, ticket WriteNewSessionTicketEvent) *Batch[A]
	ProcessAppClose(state S) *Batch[A]
	ProcessAppCloseImmediate(state S) *Batch[A]
}

// Visitor receives each action produced by a Batch, in order. A
// visitor is free to call back into the driver that invoked it —
// including pushing new events or destroying the driver — the pump
// loop tolerates both.
type Visitor[A any] interface {
	Visit(action A)
}

// Base is the concrete driver: one per connection, constructed once
// via NewBase and driven entirely through its exported event methods
// (NewTransportData, AppWrite and the rest), WaitForData and
// MoveToErrorState. It has exactly one caller at a time by
// contract — see the package doc — and takes no lock of its own for
// that reason; the only synchronization in this package lives in Batch
// and in the destroyed flag below, which exist specifically to cross
// that boundary safely.
type Base[S State, A any] struct {
	sm      StateMachine[S, A]
	state   S
	visitor Visitor[A]

	inbound circular.Buffer[byte]
	queue   eventQueue

	actionProcessing  bool
	waitingForData    bool
	terminalRequested bool
	terminal          bool
	terminalReason    error

	destroyed atomic.Bool
}

// NewBase constructs a driver around the given state machine, initial
// opaque state and action visitor. The returned *Base is ready to
// accept pushes immediately.
func NewBase[S State, A any](sm StateMachine[S, A], initial S, visitor Visitor[A]) *Base[S, A] {
	return &Base[S, A]{
		sm:      sm,
		state:   initial,
		visitor: visitor,
	}
}

// ActionProcessing reports whether a dispatch loop is currently
// in flight, including one waiting on a pending Batch. Pushes observed while true simply
// enqueue; pushes observed while false kick off a new dispatch loop
// themselves.
func (d *Base[S, A]) ActionProcessing() bool {
	return d.actionProcessing
}

// InErrorState reports whether the opaque state has reported Errored,
// via State.Phase, regardless of whether the driver has also reached
// its own terminal state.
func (d *Base[S, A]) InErrorState() bool {
	return d.state.Phase() == Errored
}

// InTerminalState reports whether MoveToErrorState has taken effect:
// the queue has been drained, pending writes have been failed, and no
// further state-machine call will ever be made.
func (d *Base[S, A]) InTerminalState() bool {
	return d.terminal
}

// TerminalReason returns the error recorded when the driver entered
// its terminal state, or nil if it hasn't.
func (d *Base[S, A]) TerminalReason() error {
	return d.terminalReason
}

// canDispatch reports whether the dispatcher may still invoke the
// state machine: neither an internally observed error phase nor an
// explicit terminal transition has happened.
func (d *Base[S, A]) canDispatch() bool {
	return !d.terminal && d.state.Phase() != Errored
}

// push enqueues e and starts a dispatch loop if one is not already
// running on this call stack. A push arriving after Destroy is a
// silent no-op: Destroy only gates new, externally initiated work —
// see guard.go — it never reaches into a dispatch chain already
// running, which is why this check has no equivalent inside the
// dispatcher's own continuations.
func (d *Base[S, A]) push(e Event) {
	if d.destroyed.Load() {
		return
	}
	if d.terminal {
		// Queueing into an already-terminal driver has nowhere useful to
		// go; fail it the same way the terminal handler would.
		failEvent(e, d.terminalReason)
		return
	}
	d.queue.push(e)
	if !d.actionProcessing {
		d.runDispatchLoop()
	}
}

// NewTransportData appends bytes received from the transport to the
// inbound buffer and queues a TransportDataEvent so the state machine
// gets a chance to consume them.
func (d *Base[S, A]) NewTransportData(data []byte) {
	for _, b := range data {
		d.inbound.PushBack(b)
	}
	d.push(TransportDataEvent{})
}

// AppWrite queues an application write. cb may be nil.
func (d *Base[S, A]) AppWrite(data []byte, cb WriteCallback) {
	d.push(AppWriteEvent{Data: data, Callback: cb})
}

// EarlyAppWrite queues a 0-RTT application write. cb may be nil.
func (d *Base[S, A]) EarlyAppWrite(data []byte, cb WriteCallback) {
	d.push(EarlyAppWriteEvent{Data: data, Callback: cb})
}

// WriteNewSessionTicket queues a request to mint and send a new
// session ticket carrying appToken.
func (d *Base[S, A]) WriteNewSessionTicket(appToken []byte) {
	d.push(WriteNewSessionTicketEvent{AppToken: appToken})
}

// AppClose queues a graceful close.
func (d *Base[S, A]) AppClose() {
	d.push(AppCloseEvent{})
}

// AppCloseImmediate queues an immediate close.
func (d *Base[S, A]) AppCloseImmediate() {
	d.push(AppCloseImmediateEvent{})
}

// WaitForData tells the driver the state machine has consumed
// everything it can from the inbound buffer for now; the read loop
// driving TransportData stops calling ProcessSocketData until either
// more data arrives or the current dispatch winds down on its own.
func (d *Base[S, A]) WaitForData() {
	d.waitingForData = true
}

// MoveToErrorState requests that the driver enter its terminal state.
// If a dispatch loop is currently pumping a batch (ActionProcessing),
// the transition is deferred until that batch finishes — remaining
// actions in it are still visited, see pump.go — and the dispatcher's
// own continuation (dispatcher.go) finalizes it from there; the same
// holds while a pending Batch is awaited, until it resolves and is
// pumped. Called with no dispatch in flight (ActionProcessing false),
// it finalizes immediately: there is no batch to let finish first. Calling this when already terminal returns
// fizzerrors.ErrAlreadyTerminal and is otherwise a no-op.
func (d *Base[S, A]) MoveToErrorState(reason error) error {
	if d.terminal {
		return errAlreadyTerminal
	}
	if d.terminalRequested {
		return nil
	}
	d.terminalRequested = true
	d.terminalReason = reason
	if !d.actionProcessing {
		d.enterTerminalState()
	}
	return nil
}
