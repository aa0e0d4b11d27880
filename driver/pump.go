// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package driver

// runBatch hands every action in a resolved batch to the visitor, in
// order. A visitor is free to push new events, call MoveToErrorState,
// or destroy the driver entirely from within Visit; runBatch always
// keeps visiting the remaining actions of the same batch regardless —
// a terminal request or an error phase observed mid-batch takes effect
// only once the whole batch has been pumped (TestMoveToErrorStateOnVisit,
// TestActionProcessedAfterError), and Destroy similarly only prevents
// new work from being pushed in from outside afterward (see guard.go);
// it never interrupts a dispatch chain already under way, sync or
// async (TestDeleteInCallback, TestAsyncActionDelete).
func (d *Base[S, A]) runBatch(actions []A) {
	for _, action := range actions {
		d.visitor.Visit(action)
	}
}
