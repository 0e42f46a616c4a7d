package replication

import (
	"net"
	"testing"
	"time"

	"github.com/faizanhussain2310/goredis/internal/protocol"
	"github.com/faizanhussain2310/goredis/internal/store"
)

// fakePrimary drives the master side of the handshake by hand so the
// test can assert the replica's outbound sequence matches spec.md
// §4.7's state machine, then streams one SET and confirms the replica
// applies it silently.
func fakePrimary(t *testing.T, conn net.Conn) {
	t.Helper()
	fr := protocol.NewFrameReader(conn)

	expectCommand := func(want string) {
		v, _, err := fr.Next()
		if err != nil {
			t.Fatalf("fakePrimary: read failed: %v", err)
		}
		if v.Kind != protocol.Array || len(v.Elems) == 0 {
			t.Fatalf("fakePrimary: expected array, got %+v", v)
		}
		if v.Elems[0].Str != want {
			t.Fatalf("fakePrimary: got command %q, want %q", v.Elems[0].Str, want)
		}
	}

	expectCommand("PING")
	conn.Write(protocol.Serialize(protocol.NewSimpleString("PONG")))

	expectCommand("REPLCONF")
	conn.Write(protocol.Serialize(protocol.NewSimpleString("OK")))

	expectCommand("REPLCONF")
	conn.Write(protocol.Serialize(protocol.NewSimpleString("OK")))

	expectCommand("PSYNC")
	conn.Write(protocol.Serialize(protocol.NewSimpleString("FULLRESYNC abc 0")))

	rdb, err := protocol.DecodeHexRdb(EmptyRDBHex)
	if err != nil {
		t.Fatalf("DecodeHexRdb failed: %v", err)
	}
	conn.Write(protocol.Serialize(rdb))

	setCmd := protocol.NewArray([]protocol.Value{
		protocol.NewBulkString("SET"),
		protocol.NewBulkString("streamed"),
		protocol.NewBulkString("value"),
	})
	conn.Write(protocol.Serialize(setCmd))
}

func TestHandshakeAppliesStreamedSet(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	defer listener.Close()

	connCh := make(chan net.Conn, 1)
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		connCh <- conn
	}()

	addr := listener.Addr().(*net.TCPAddr)
	ks := store.NewKeyspace()
	info := store.NewReplicaInfoStore(6380, "127.0.0.1", addr.Port)

	h := &Handshake{
		MasterHost: "127.0.0.1",
		MasterPort: addr.Port,
		OurPort:    6380,
		Keyspace:   ks,
		Info:       info,
	}

	stop := make(chan struct{})
	go h.Run(stop)
	defer close(stop)

	conn := <-connCh
	defer conn.Close()
	fakePrimary(t, conn)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if v, ok := ks.Get("streamed"); ok {
			if v != "value" {
				t.Fatalf("streamed value = %q, want value", v)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("replica never applied the streamed SET within timeout")
}
