// Package handler implements the command handlers bound in the
// component table: PING, ECHO, GET, SET, INFO, REPLCONF, PSYNC
// (spec.md §4.6).
package handler

import (
	"github.com/faizanhussain2310/goredis/internal/protocol"
	"github.com/faizanhussain2310/goredis/internal/replication"
	"github.com/faizanhussain2310/goredis/internal/store"
)

// Response is the sequence of byte blobs a handler produces. Every
// handler returns exactly one blob except PSYNC, which returns two
// (spec.md §4.6).
type Response [][]byte

func single(b []byte) Response { return Response{b} }

// Handlers bundles the Keyspace and Info Store every command handler
// reads or mutates, plus the replica registry a successful SET fans
// out to when this instance is a primary.
type Handlers struct {
	Keyspace *store.Keyspace
	Info     *store.InfoStore
	Replicas *replication.Registry
}

func New(ks *store.Keyspace, info *store.InfoStore, replicas *replication.Registry) *Handlers {
	return &Handlers{Keyspace: ks, Info: info, Replicas: replicas}
}

// Dispatch runs frame against the appropriate handler and reports
// whether the connection driver should promote the socket into the
// replica registry and stop its own read loop (true only for PSYNC).
func (h *Handlers) Dispatch(frame *protocol.Frame) (resp Response, promote bool, err error) {
	switch frame.Command {
	case protocol.Ping:
		return h.handlePing(frame), false, nil
	case protocol.Echo:
		return h.handleEcho(frame), false, nil
	case protocol.Get:
		return h.handleGet(frame), false, nil
	case protocol.Set:
		resp, err = h.handleSet(frame)
		return resp, false, err
	case protocol.Info:
		return h.handleInfo(frame), false, nil
	case protocol.ReplConf:
		resp, err = h.handleReplConf(frame)
		return resp, false, err
	case protocol.PSync:
		resp, err = h.handlePSync(frame)
		return resp, true, err
	default:
		return nil, false, &protocol.UnknownCommandError{Verb: frame.Command.String()}
	}
}
