// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package driver

// runDispatchLoop begins a new round of dispatch. Called only when no
// dispatch is already in flight on this call stack.
func (d *Base[S, A]) runDispatchLoop() {
	d.actionProcessing = true
	d.stepOuter()
}

// stepOuter picks the next queued event and dispatches it. When the
// resulting batch resolves — synchronously, inline, in the common
// case, or later from a different goroutine in the async case — its
// continuation pumps the actions and then calls back into stepOuter
// (or stepRead, for TransportData) to continue the loop. Control
// simply returns to the caller either way; there is nothing to wait
// on here.
func (d *Base[S, A]) stepOuter() {
	if !d.canDispatch() {
		d.actionProcessing = false
		return
	}
	front, ok := d.queue.front()
	if !ok {
		d.actionProcessing = false
		return
	}
	if _, isTransportData := front.(TransportDataEvent); isTransportData {
		d.queue.popFront()
		d.waitingForData = false
		d.stepRead()
		return
	}
	d.queue.popFront()
	batch := d.dispatchOther(front)
	batch.OnResolve(func(actions []A) {
		d.runBatch(actions)
		if d.terminalRequested && !d.terminal {
			d.enterTerminalState()
			return
		}
		d.stepOuter()
	})
}

// stepRead drives the TransportData read loop: ProcessSocketData is
// called repeatedly, draining the inbound buffer, until the state
// machine calls WaitForData and no further TransportData event has
// queued up in the meantime (per the per-event stop condition: a
// TransportData event arriving while waiting just means more bytes
// showed up, so draining resumes).
func (d *Base[S, A]) stepRead() {
	if !d.canDispatch() {
		d.actionProcessing = false
		return
	}
	batch := d.sm.ProcessSocketData(d.state, &d.inbound)
	batch.OnResolve(func(actions []A) {
		d.runBatch(actions)
		if d.terminalRequested && !d.terminal {
			d.enterTerminalState()
			return
		}
		if d.waitingForData {
			if d.queue.frontIsTransportData() {
				d.queue.popFront()
				d.waitingForData = false
				d.stepRead()
				return
			}
			d.stepOuter()
			return
		}
		d.stepRead()
	})
}

// dispatchOther routes a non-TransportData event to its state-machine
// entry point. TransportDataEvent is handled entirely by stepRead and
// never reaches here.
func (d *Base[S, A]) dispatchOther(e Event) *Batch[A] {
	switch ev := e.(type) {
	case AppWriteEvent:
		return d.sm.ProcessAppWrite(d.state, ev)
	case EarlyAppWriteEvent:
		return d.sm.ProcessEarlyAppWrite(d.state, ev)
	case WriteNewSessionTicketEvent:
		return d.sm.ProcessWriteNewSessionTicket(d.state, ev)
	case AppCloseEvent:
		return d.sm.ProcessAppClose(d.state)
	case AppCloseImmediateEvent:
		return d.sm.ProcessAppCloseImmediate(d.state)
	default:
		panic("fizzbase: unhandled event type in dispatch")
	}
}
