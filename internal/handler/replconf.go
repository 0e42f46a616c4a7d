package handler

import (
	"strings"

	"github.com/faizanhussain2310/goredis/internal/protocol"
)

// handleReplConf implements REPLCONF key value (spec.md §4.6). Only
// listening-port and capa are accepted; anything else is a
// BadArgument. The value is stored into the Info Store for later
// inspection but does not participate in the closed INFO key set.
func (h *Handlers) handleReplConf(frame *protocol.Frame) (Response, error) {
	key, value := strings.ToLower(frame.Args[0]), frame.Args[1]

	switch key {
	case "listening-port", "capa":
		h.Info.Set("replconf_"+key, value)
	default:
		return nil, &protocol.BadArgumentError{Description: "unrecognized REPLCONF option '" + key + "'"}
	}

	return single(protocol.Serialize(protocol.NewSimpleString("OK"))), nil
}
