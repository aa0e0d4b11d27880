// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

package fizztest_test

import (
	"testing"

	"github.com/fizzproto/fizzbase/action"
	"github.com/fizzproto/fizzbase/driver"
	"github.com/fizzproto/fizzbase/fizztest"
	"github.com/stretchr/testify/require"
)

type recordedSecret struct {
	label  string
	secret []byte
}

type recordingTransport struct {
	written       [][]byte
	delivered     [][]byte
	secrets       []recordedSecret
	handshakeDone bool
	closed        bool
	errs          []error
}

func (t *recordingTransport) WriteToSocket(data []byte)  { t.written = append(t.written, data) }
func (t *recordingTransport) DeliverAppData(data []byte) { t.delivered = append(t.delivered, data) }
func (t *recordingTransport) SecretAvailable(label string, secret []byte) {
	t.secrets = append(t.secrets, recordedSecret{label, secret})
}
func (t *recordingTransport) HandshakeSuccess() { t.handshakeDone = true }
func (t *recordingTransport) CloseTransport()   { t.closed = true }
func (t *recordingTransport) ReportError(err error) {
	t.errs = append(t.errs, err)
}

func newTestDriver() (*driver.Base[*fizztest.State, fizztest.Action], *recordingTransport) {
	rt := &recordingTransport{}
	sm := &fizztest.StateMachine{}
	state := &fizztest.State{}
	visitor := &fizztest.Visitor{Transport: rt}
	base := driver.NewBase[*fizztest.State, fizztest.Action](sm, state, visitor)
	visitor.Driver = base
	return base, rt
}

func TestEchoHandshakeOnFirstRead(t *testing.T) {
	base, rt := newTestDriver()
	base.NewTransportData([]byte("hello"))
	require.True(t, rt.handshakeDone)
	require.Equal(t, [][]byte{[]byte("hello")}, rt.delivered)
	require.Len(t, rt.secrets, 1)
	require.Equal(t, "handshake_traffic", rt.secrets[0].label)
	require.NotEmpty(t, rt.secrets[0].secret)
}

func TestEchoWriteBack(t *testing.T) {
	base, rt := newTestDriver()
	base.AppWrite([]byte("ping"), nil)
	require.Equal(t, [][]byte{[]byte("ping")}, rt.written)
}

func TestEchoAppCloseClosesTransport(t *testing.T) {
	base, rt := newTestDriver()
	base.AppClose()
	require.True(t, rt.closed)
}

func TestEchoActionIsWriteToSocketCast(t *testing.T) {
	a := action.WriteToSocket{Data: []byte("abc")}
	require.EqualValues(t, 3, a.Len())
}
