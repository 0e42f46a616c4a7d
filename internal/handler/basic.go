package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/faizanhussain2310/goredis/internal/protocol"
	"github.com/faizanhussain2310/goredis/internal/store"
)

// handlePing replies PONG (spec.md §4.6, grounded on the teacher's
// handlePing in string_handlers.go). NewFrame accepts PING only with no
// arguments, so the single-argument echo branch is never reached
// through Dispatch.
func (h *Handlers) handlePing(frame *protocol.Frame) Response {
	if len(frame.Args) == 1 {
		return single(protocol.Serialize(protocol.NewBulkString(frame.Args[0])))
	}
	return single(protocol.Serialize(protocol.NewSimpleString("PONG")))
}

func (h *Handlers) handleEcho(frame *protocol.Frame) Response {
	return single(protocol.Serialize(protocol.NewBulkString(frame.Args[0])))
}

func (h *Handlers) handleGet(frame *protocol.Frame) Response {
	value, ok := h.Keyspace.Get(frame.Args[0])
	if !ok {
		return single(protocol.Serialize(protocol.NewNullBulkString()))
	}
	return single(protocol.Serialize(protocol.NewBulkString(value)))
}

// handleSet implements SET key value [PX ms] (spec.md §4.6). The PX
// token is matched case-insensitively; a non-parseable ms is a
// BadArgument, not a BadArity — arity was already validated when the
// Frame was built.
func (h *Handlers) handleSet(frame *protocol.Frame) (Response, error) {
	key, value := frame.Args[0], frame.Args[1]

	var ttl *time.Duration
	if len(frame.Args) == 4 {
		if !strings.EqualFold(frame.Args[2], "PX") {
			return nil, &protocol.BadArgumentError{Description: "syntax error"}
		}
		ms, err := strconv.ParseUint(frame.Args[3], 10, 64)
		if err != nil {
			return nil, &protocol.BadArgumentError{Description: "value is not an integer or out of range"}
		}
		d := time.Duration(ms) * time.Millisecond
		ttl = &d
	}

	h.Keyspace.Set(key, value, ttl)

	// Side effect: a successful SET on a master fans the original raw
	// request bytes out to every registered replica (spec.md §4.6, §4.7).
	if h.Info.Role() == store.RoleMaster && h.Replicas != nil {
		h.Replicas.FanOut(frame.Raw)
	}

	return single(protocol.Serialize(protocol.NewSimpleString("OK"))), nil
}
