// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package driver

// destroyed (Base.destroyed, an atomic.Bool) records whether Destroy
// has been called. It exists to gate new work arriving from outside an
// already-destroyed driver — see Destroy below — not to interrupt a
// dispatch chain already under way. A chain that has already started
// (stepOuter/stepRead and the Batch continuations they register) keeps
// running to completion regardless of Destroy, sync or async: Go's
// garbage collector keeps Base reachable for as long as any of those
// closures still reference it, which is exactly the liveness guarantee
// the source gets from pinning a DestructorGuard for the life of a
// pending continuation. Only the event methods (NewTransportData,
// AppWrite and the rest, all through push) check it, and they check it
// on every call: after Destroy any such call is dropped, including one
// a visitor makes from inside the chain that is still running.

// Destroy marks the driver as logically gone for the purposes of any
// future external call. It is always safe to call from inside a
// visitor's Visit, including the visitor's own last action in a
// batch — the pump loop currently visiting that batch, and any
// already-registered async continuation, finish normally afterward.
func (d *Base[S, A]) Destroy() {
	d.destroyed.Store(true)
}

// Destroyed reports whether Destroy has been called.
func (d *Base[S, A]) Destroyed() bool {
	return d.destroyed.Load()
}
