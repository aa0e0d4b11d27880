// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package driver

// enterTerminalState finalizes a MoveToErrorState request once the
// batch that was in flight when it was made has finished pumping. It
// drains the queue, failing every pending write's callback with the
// recorded reason and silently discarding everything else, then marks
// the driver terminal so no further state-machine call is ever made.
func (d *Base[S, A]) enterTerminalState() {
	d.terminal = true
	d.actionProcessing = false
	for !d.queue.empty() {
		failEvent(d.queue.popFront(), d.terminalReason)
	}
}

// failEvent reports reason to e's write callback, if it has one.
// Non-write events (close requests, session tickets, TransportData)
// carry no callback and are simply dropped.
func failEvent(e Event, reason error) {
	switch ev := e.(type) {
	case AppWriteEvent:
		if ev.Callback != nil {
			ev.Callback.WriteErr(0, reason)
		}
	case EarlyAppWriteEvent:
		if ev.Callback != nil {
			ev.Callback.WriteErr(0, reason)
		}
	}
}
