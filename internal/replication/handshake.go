package replication

import (
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/faizanhussain2310/goredis/internal/protocol"
	"github.com/faizanhussain2310/goredis/internal/store"
)

// Handshake drives the replica-side outbound state machine against a
// single primary: Connecting, Awaiting1..3, AwaitingFullResync, then
// Streaming (spec.md §4.7). Connection refusal retries indefinitely;
// a read timeout aborts the current attempt and restarts it from
// Connecting.
type Handshake struct {
	MasterHost string
	MasterPort int
	OurPort    int

	Keyspace *store.Keyspace
	Info     *store.InfoStore
}

// Run never returns under normal operation: it reconnects forever,
// per spec.md §4.7's "unbounded reconnect retry". It returns only if
// stop is closed.
func (h *Handshake) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}

		if err := h.attempt(stop); err != nil {
			log.WithError(err).Warn("replication handshake attempt failed, retrying")
		}

		select {
		case <-stop:
			return
		case <-time.After(time.Second):
		}
	}
}

func (h *Handshake) attempt(stop <-chan struct{}) error {
	addr := net.JoinHostPort(h.MasterHost, strconv.Itoa(h.MasterPort))
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		return fmt.Errorf("dial master %s: %w", addr, err)
	}
	defer conn.Close()

	fr := protocol.NewFrameReader(conn)

	// 1. Connecting -> PING -> Awaiting1
	if err := h.exchange(conn, fr, protocol.NewArray([]protocol.Value{protocol.NewBulkString("PING")})); err != nil {
		return fmt.Errorf("PING: %w", err)
	}

	// 2. Awaiting1 -> REPLCONF listening-port <port> -> Awaiting2
	listeningPort := strconv.Itoa(h.OurPort)
	if err := h.exchange(conn, fr, protocol.NewArray([]protocol.Value{
		protocol.NewBulkString("REPLCONF"),
		protocol.NewBulkString("listening-port"),
		protocol.NewBulkString(listeningPort),
	})); err != nil {
		return fmt.Errorf("REPLCONF listening-port: %w", err)
	}

	// 3. Awaiting2 -> REPLCONF capa psync -> Awaiting3
	if err := h.exchange(conn, fr, protocol.NewArray([]protocol.Value{
		protocol.NewBulkString("REPLCONF"),
		protocol.NewBulkString("capa"),
		protocol.NewBulkString("psync"),
	})); err != nil {
		return fmt.Errorf("REPLCONF capa psync: %w", err)
	}

	// 4. Awaiting3 -> PSYNC ? -1 -> AwaitingFullResync
	if _, err := conn.Write(protocol.Serialize(protocol.NewArray([]protocol.Value{
		protocol.NewBulkString("PSYNC"),
		protocol.NewBulkString("?"),
		protocol.NewBulkString("-1"),
	}))); err != nil {
		return fmt.Errorf("send PSYNC: %w", err)
	}

	// 5. AwaitingFullResync: read "+FULLRESYNC ..." then the bulk RDB
	// frame. The RDB bytes are accepted and discarded.
	fullresync, _, err := fr.Next()
	if err != nil {
		return fmt.Errorf("read FULLRESYNC: %w", err)
	}
	if fullresync.Kind != protocol.SimpleString || !strings.HasPrefix(fullresync.Str, "FULLRESYNC") {
		return fmt.Errorf("unexpected PSYNC reply: %q", fullresync.Str)
	}
	log.WithField("reply", fullresync.Str).Info("received FULLRESYNC, awaiting RDB snapshot")

	if _, _, err := fr.Next(); err != nil {
		return fmt.Errorf("read RDB payload: %w", err)
	}

	h.Info.Set("master_link_status", "up")
	log.Info("full resync complete, entering streaming mode")

	// 6. Streaming: replay subsequent frames as commands against the
	// local Keyspace, responses suppressed.
	return h.stream(fr, stop)
}

func (h *Handshake) exchange(conn net.Conn, fr *protocol.FrameReader, req protocol.Value) error {
	if _, err := conn.Write(protocol.Serialize(req)); err != nil {
		return err
	}
	conn.SetReadDeadline(time.Now().Add(10 * time.Second))
	defer conn.SetReadDeadline(time.Time{})
	_, _, err := fr.Next()
	return err
}

// stream applies write commands received from the primary silently:
// no response is ever written back on this connection (spec.md §4.7
// step 6). Only SET is a recognized mutating command in scope.
func (h *Handshake) stream(fr *protocol.FrameReader, stop <-chan struct{}) error {
	for {
		select {
		case <-stop:
			return nil
		default:
		}

		v, raw, err := fr.Next()
		if err != nil {
			return fmt.Errorf("replication stream: %w", err)
		}

		frame, err := protocol.NewFrame(v, raw)
		if err != nil {
			log.WithError(err).Warn("discarding malformed replicated frame")
			continue
		}

		if frame.Command == protocol.Set {
			applySet(h.Keyspace, frame)
		}
	}
}

func applySet(ks *store.Keyspace, frame *protocol.Frame) {
	key, value := frame.Args[0], frame.Args[1]
	var ttl *time.Duration
	if len(frame.Args) == 4 {
		ms, err := strconv.ParseUint(frame.Args[3], 10, 64)
		if err == nil {
			d := time.Duration(ms) * time.Millisecond
			ttl = &d
		}
	}
	ks.Set(key, value, ttl)
}
