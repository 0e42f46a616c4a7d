package handler

import "github.com/faizanhussain2310/goredis/internal/protocol"

// EncodeError turns a Dispatch/NewFrame error into the wire response
// spec.md §7 assigns to its taxonomy, and reports whether the
// connection must be closed afterward (true only for a ProtocolError).
func EncodeError(err error) (resp Response, closeConn bool) {
	switch e := err.(type) {
	case *protocol.ProtocolError:
		return nil, true
	case *protocol.UnknownCommandError:
		return single(protocol.Serialize(protocol.NewSimpleString("ERR " + e.Error()))), false
	case *protocol.BadArityError:
		return single(protocol.Serialize(protocol.NewBulkString("(error) " + e.Error()))), false
	case *protocol.BadArgumentError:
		return single(protocol.Serialize(protocol.NewBulkString("(error) " + e.Error()))), false
	default:
		return single(protocol.Serialize(protocol.NewSimpleString("ERR " + err.Error()))), false
	}
}
