// Copyright (c) 2025, Grigory Buteyko aka Hrissan
// Licensed under the MIT License. See LICENSE for details.

// Command fizzecho is a tiny demo server wiring fizztest's echo
// protocol into driver.Base over plain TCP: it accepts connections,
// reports handshake success on the first byte, and echoes back
// whatever application data it's delivered.
package main

import (
	"flag"
	"io"
	"log"
	"net"

	"github.com/fizzproto/fizzbase/driver"
	"github.com/fizzproto/fizzbase/fizzerrors"
	"github.com/fizzproto/fizzbase/fizztest"
)

type connTransport struct {
	conn net.Conn
	base *driver.Base[*fizztest.State, fizztest.Action]
}

func (t *connTransport) WriteToSocket(data []byte) {
	if _, err := t.conn.Write(data); err != nil {
		log.Printf("fizzecho: write to %s: %v", t.conn.RemoteAddr(), err)
	}
}

func (t *connTransport) DeliverAppData(data []byte) {
	t.base.AppWrite(data, nil)
}

func (t *connTransport) SecretAvailable(label string, secret []byte) {
	log.Printf("fizzecho: %s derived secret %q (%d bytes)", t.conn.RemoteAddr(), label, len(secret))
}

func (t *connTransport) HandshakeSuccess() {
	log.Printf("fizzecho: handshake complete with %s", t.conn.RemoteAddr())
}

func (t *connTransport) CloseTransport() {
	t.conn.Close()
}

func (t *connTransport) ReportError(err error) {
	log.Printf("fizzecho: protocol error from %s: %v", t.conn.RemoteAddr(), err)
}

func serve(conn net.Conn) {
	defer conn.Close()

	transport := &connTransport{conn: conn}
	sm := &fizztest.StateMachine{}
	state := &fizztest.State{}
	visitor := &fizztest.Visitor{Transport: transport}
	base := driver.NewBase[*fizztest.State, fizztest.Action](sm, state, visitor)
	transport.base = base
	visitor.Driver = base

	buf := make([]byte, 4096)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			base.NewTransportData(buf[:n])
		}
		if err != nil {
			if err == io.EOF {
				base.AppCloseImmediate()
			} else {
				log.Printf("fizzecho: read from %s: %v", conn.RemoteAddr(), err)
				base.MoveToErrorState(fizzerrors.NewTerminalReason(-3, "transport read failed", err))
			}
			return
		}
		if base.InTerminalState() {
			if reason, ok := base.TerminalReason().(fizzerrors.Fataler); ok && reason.Fatal() {
				log.Printf("fizzecho: %s terminated fatally: %v", conn.RemoteAddr(), base.TerminalReason())
			}
			return
		}
	}
}

func main() {
	addr := flag.String("addr", "127.0.0.1:4433", "address to listen on")
	flag.Parse()

	ln, err := net.Listen("tcp", *addr)
	if err != nil {
		log.Fatalf("fizzecho: listen on %s: %v", *addr, err)
	}
	log.Printf("fizzecho: listening on %s", ln.Addr())

	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Fatalf("fizzecho: accept: %v", err)
		}
		go serve(conn)
	}
}
