// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package action defines the concrete action variants a StateMachine
// hands back to the driver for visiting: the vocabulary the source
// calls fizz::Param / fizz::Action, generalized from the teacher's own
// per-record action types.
package action

import "fortio.org/safecast"

// WriteToSocket asks the visitor to write Data to the transport. Len
// returns the write's length cast to a uint32 length-prefix field,
// panicking on overflow the way any wire encoder must — mirrors how
// the teacher casts record and fragment lengths before framing them.
type WriteToSocket struct {
	Data []byte
}

func (a WriteToSocket) Len() uint32 {
	n, err := safecast.Convert[uint32](len(a.Data))
	if err != nil {
		panic(err)
	}
	return n
}

// DeliverAppData asks the visitor to hand decrypted application data
// up to the caller.
type DeliverAppData struct {
	Data []byte
}

// ReportHandshakeSuccess tells the visitor the handshake has
// completed and the connection is ready for application traffic.
type ReportHandshakeSuccess struct{}

// SecretAvailable reports a newly derived traffic secret, keyed by an
// opaque label the concrete protocol implementation defines.
type SecretAvailable struct {
	Label  string
	Secret []byte
}

// CloseTransport asks the visitor to tear down the underlying
// transport; the driver itself never touches the transport directly.
type CloseTransport struct{}

// WaitForData tells the visitor the state machine has consumed
// everything it can from the inbound buffer for now. A visitor wired
// to a driver.Base forwards this straight to its WaitForData method —
// the read loop otherwise keeps calling ProcessSocketData forever, an
// empty batch being no different from a non-empty one as far as the
// dispatcher is concerned.
type WaitForData struct{}

// ReportError surfaces a non-fatal protocol-level error to the
// visitor without moving the driver to its terminal state.
type ReportError struct {
	Err error
}
