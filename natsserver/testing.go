package natsserver

import (
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NewTestJetStream starts an embedded server for t and returns a JetStream
// context connected to it. Both are closed by t.Cleanup.
func NewTestJetStream(t testing.TB) jetstream.JetStream {
	t.Helper()

	srv, err := Start(t.TempDir())
	if err != nil {
		t.Fatalf("start embedded NATS: %v", err)
	}
	t.Cleanup(srv.Shutdown)

	conn, err := nats.Connect(srv.ClientURL())
	if err != nil {
		t.Fatalf("connect to embedded NATS: %v", err)
	}
	t.Cleanup(conn.Close)

	js, err := jetstream.New(conn)
	if err != nil {
		t.Fatalf("create JetStream context: %v", err)
	}
	return js
}
