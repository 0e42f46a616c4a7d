package handler

import (
	"github.com/faizanhussain2310/goredis/internal/protocol"
	"github.com/faizanhussain2310/goredis/internal/replication"
)

// handlePSync implements PSYNC replid offset (spec.md §4.6, §8 S5). It
// always performs a full resync — partial resync is an explicit
// Non-goal. The caller (the connection driver) is responsible for
// promoting the socket into the Replica Registry once these two
// blobs have been written; Dispatch signals that via its promote
// return value.
func (h *Handlers) handlePSync(frame *protocol.Frame) (Response, error) {
	replID := h.Info.Get("master_replid")
	offset := h.Info.Get("master_repl_offset")

	fullresync := protocol.Serialize(protocol.NewSimpleString("FULLRESYNC " + replID + " " + offset))

	rdb, err := protocol.DecodeHexRdb(replication.EmptyRDBHex)
	if err != nil {
		return nil, err
	}

	return Response{fullresync, protocol.Serialize(rdb)}, nil
}
