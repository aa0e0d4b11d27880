// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Package fizztest is a minimal, concrete StateMachine/State/Visitor
// triple that plugs into driver.Base: a protocol that reports
// handshake success on first read and echoes every byte of
// application data straight back out. It exists to exercise the
// driver end to end — in its own tests and in cmd/fizzecho — without
// pulling in a real TLS implementation, which is out of scope for
// this module; see SPEC_FULL.md's DOMAIN STACK section.
package fizztest

import (
	"github.com/fizzproto/fizzbase/action"
	"github.com/fizzproto/fizzbase/circular"
	"github.com/fizzproto/fizzbase/driver"
)

// Action is the action type this protocol's StateMachine produces;
// driver.Base is instantiated with it as its A type parameter.
type Action = any

// State is the opaque connection state the echo protocol owns.
type State struct {
	phase driver.Phase
}

func (s *State) Phase() driver.Phase { return s.phase }

// Fail moves the state to Errored, for exercising the driver's
// internally-observed-error path from a test or demo without going
// through MoveToErrorState.
func (s *State) Fail() { s.phase = driver.Errored }

// StateMachine implements driver.StateMachine[*State, Action].
type StateMachine struct {
	handshaken bool
}

func (sm *StateMachine) ProcessSocketData(state *State, inbound *circular.Buffer[byte]) *driver.Batch[Action] {
	var data []byte
	for inbound.Len() > 0 {
		data = append(data, inbound.PopFront())
	}
	var actions []Action
	if !sm.handshaken {
		sm.handshaken = true
		actions = append(actions,
			action.SecretAvailable{Label: "handshake_traffic", Secret: []byte("demo-handshake-secret")},
			action.ReportHandshakeSuccess{},
		)
	}
	if len(data) > 0 {
		actions = append(actions, action.DeliverAppData{Data: data})
	}
	actions = append(actions, action.WaitForData{})
	return driver.Resolved(actions)
}

func (sm *StateMachine) ProcessAppWrite(state *State, write driver.AppWriteEvent) *driver.Batch[Action] {
	return driver.Resolved([]Action{action.WriteToSocket{Data: write.Data}})
}

func (sm *StateMachine) ProcessEarlyAppWrite(state *State, write driver.EarlyAppWriteEvent) *driver.Batch[Action] {
	return driver.Resolved([]Action{action.WriteToSocket{Data: write.Data}})
}

func (sm *StateMachine) ProcessWriteNewSessionTicket(state *State, ticket driver.WriteNewSessionTicketEvent) *driver.Batch[Action] {
	return driver.Resolved([]Action{action.WriteToSocket{Data: ticket.AppToken}})
}

func (sm *StateMachine) ProcessAppClose(state *State) *driver.Batch[Action] {
	return driver.Resolved([]Action{action.CloseTransport{}})
}

func (sm *StateMachine) ProcessAppCloseImmediate(state *State) *driver.Batch[Action] {
	return driver.Resolved([]Action{action.CloseTransport{}})
}

// Transport is what Visitor forwards actions to.
type Transport interface {
	WriteToSocket(data []byte)
	DeliverAppData(data []byte)
	SecretAvailable(label string, secret []byte)
	HandshakeSuccess()
	CloseTransport()
	ReportError(err error)
}

// Driver is the subset of driver.Base's API a Visitor needs to call
// back into — just enough to forward action.WaitForData without
// depending on driver.Base's full generic type.
type Driver interface {
	WaitForData()
}

// Visitor implements driver.Visitor[Action] by forwarding every
// action to a Transport, and action.WaitForData to the Driver it was
// produced for. Driver is set after construction, once NewBase has
// returned the *driver.Base this Visitor is the counterpart of — the
// same two-step wiring cmd/fizzecho uses for its connTransport.
type Visitor struct {
	Transport Transport
	Driver    Driver
}

func (v *Visitor) Visit(a Action) {
	switch act := a.(type) {
	case action.WriteToSocket:
		v.Transport.WriteToSocket(act.Data)
	case action.DeliverAppData:
		v.Transport.DeliverAppData(act.Data)
	case action.SecretAvailable:
		v.Transport.SecretAvailable(act.Label, act.Secret)
	case action.ReportHandshakeSuccess:
		v.Transport.HandshakeSuccess()
	case action.CloseTransport:
		v.Transport.CloseTransport()
	case action.ReportError:
		v.Transport.ReportError(act.Err)
	case action.WaitForData:
		v.Driver.WaitForData()
	}
}
