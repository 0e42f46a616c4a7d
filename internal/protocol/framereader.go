package protocol

import "net"

// FrameReader incrementally parses RESP values off a net.Conn using a
// growable buffer that carries unconsumed bytes across reads — the
// connection driver in spec.md §4.8 calls the fixed 1 KiB read buffer
// "a known limitation" and explicitly encourages this alternative.
// Shared by the server's per-connection loop and the replica-side
// handshake, since both need "parse the next value, whatever arrived
// with it" semantics over a live socket.
type FrameReader struct {
	conn net.Conn
	buf  []byte
}

func NewFrameReader(conn net.Conn) *FrameReader {
	return &FrameReader{conn: conn}
}

// Next blocks until one complete RESP Value has arrived, returning it
// along with the exact raw bytes it was parsed from (retained for
// fan-out verbatim replay, spec.md §3). Leftover bytes beyond the
// parsed value are kept for the following call.
func (fr *FrameReader) Next() (Value, []byte, error) {
	for {
		if len(fr.buf) > 0 {
			v, n, err := Parse(fr.buf)
			if err == nil {
				raw := append([]byte(nil), fr.buf[:n]...)
				fr.buf = fr.buf[n:]
				return v, raw, nil
			}
			if err != ErrIncomplete {
				return Value{}, nil, err
			}
		}

		chunk := make([]byte, 4096)
		n, err := fr.conn.Read(chunk)
		if n > 0 {
			fr.buf = append(fr.buf, chunk[:n]...)
		}
		if err != nil {
			return Value{}, nil, err
		}
	}
}
