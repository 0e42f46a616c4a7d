package handler

import "github.com/faizanhussain2310/goredis/internal/protocol"

// handleInfo renders the Info Store's closed key set as "\n"-separated
// "name:value" lines (spec.md §4.6). Sections "replication" and "all"
// are currently identical, so section selection is a no-op beyond
// validating the argument count, which the Frame already did.
func (h *Handlers) handleInfo(frame *protocol.Frame) Response {
	section := "all"
	if len(frame.Args) == 1 {
		section = frame.Args[0]
	}
	body := h.Info.Snapshot(section)
	return single(protocol.Serialize(protocol.NewBulkString(body)))
}
