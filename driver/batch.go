// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package driver

import "sync"

// Batch is a one-shot future over a slice of actions, the Go
// realization of the source's folly::Future<Actions>. State-machine
// entry points return one of these instead of blocking: most resolve
// immediately (Resolved), but a handshake step waiting on, say, an
// async certificate validator can hand back a pending Batch and
// resolve it later from any goroutine.
//
// The synchronous path never waits on anything — Resolved batches are
// already resolved at construction, and OnResolve's fast path takes the
// mutex below only long enough to read them, then runs the continuation
// inline after releasing it. The lock matters for the pending path,
// where resolve may legitimately race OnResolve from a different
// goroutine.
type Batch[A any] struct {
	mu       sync.Mutex
	resolved bool
	actions  []A
	cont     func([]A)
}

// Resolved returns an already-resolved batch, the common case: most
// state-machine calls know their resulting actions synchronously.
func Resolved[A any](actions []A) *Batch[A] {
	return &Batch[A]{resolved: true, actions: actions}
}

// NewPendingBatch returns a batch not yet resolved, plus the resolver
// function the async work should call exactly once when it completes.
// Calling resolve more than once is a caller bug; the first call wins
// and later ones are no-ops.
func NewPendingBatch[A any]() (*Batch[A], func([]A)) {
	b := &Batch[A]{}
	resolved := false
	resolve := func(actions []A) {
		b.mu.Lock()
		if resolved {
			b.mu.Unlock()
			return
		}
		resolved = true
		b.resolved = true
		b.actions = actions
		cont := b.cont
		b.mu.Unlock()
		if cont != nil {
			cont(actions)
		}
	}
	return b, resolve
}

// OnResolve registers fn to run exactly once with the batch's actions:
// immediately, inline, if the batch is already resolved, or later —
// possibly from a different goroutine — once resolve is called.
// Registering more than one continuation is a caller bug; only the
// last one registered before resolution fires.
func (b *Batch[A]) OnResolve(fn func([]A)) {
	b.mu.Lock()
	if b.resolved {
		actions := b.actions
		b.mu.Unlock()
		fn(actions)
		return
	}
	b.cont = fn
	b.mu.Unlock()
}
