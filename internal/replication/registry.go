// Package replication implements both sides of the spec's replication
// state machine: the primary-side Replica Registry and write fan-out
// (this file), and the replica-side outbound handshake (handshake.go).
// Grounded on the teacher's internal/replication/replication.go and
// replica.go, trimmed of partial-resync/backlog machinery the spec
// explicitly excludes (only FULLRESYNC is in scope).
package replication

import (
	"net"
	"sync"

	"github.com/faizanhussain2310/goredis/internal/logging"
)

var log = logging.For("replication")

// Registry is the ordered sequence of writable sockets promoted from
// client connections by a successful PSYNC (spec.md §3). A socket
// present here is no longer in the normal command-response loop.
type Registry struct {
	mu       sync.Mutex
	replicas []net.Conn
	onBytes  func(n int)
}

func NewRegistry() *Registry {
	return &Registry{}
}

// OnBytes registers a callback invoked once at the end of every FanOut
// call with the length of the propagated command, whether or not any
// replica is attached or any write succeeded, so callers (e.g. metrics) can
// track a cumulative replication offset without this package needing to
// know anything about them.
func (r *Registry) OnBytes(fn func(n int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onBytes = fn
}

// Register appends conn to the registry. Order matters: fan-out
// preserves registration order on every write (spec.md §4.7).
func (r *Registry) Register(conn net.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replicas = append(r.replicas, conn)
	log.WithField("addr", conn.RemoteAddr()).Info("replica registered")
}

// Count returns the number of currently registered replicas.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.replicas)
}

// FanOut writes raw to every registered replica, in registry order,
// under a single lock — this is what provides cross-replica ordering
// (spec.md §4.7, §5). A replica whose write fails is dropped from the
// registry; a fan-out failure never fails the originating client
// request.
func (r *Registry) FanOut(raw []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	survivors := r.replicas[:0]
	for _, conn := range r.replicas {
		if _, err := conn.Write(raw); err != nil {
			log.WithField("addr", conn.RemoteAddr()).WithError(err).Warn("dropping replica after write failure")
			conn.Close()
			continue
		}
		survivors = append(survivors, conn)
	}
	r.replicas = survivors

	// The propagated stream offset advances by one command's worth of
	// bytes regardless of how many replicas are currently attached.
	if r.onBytes != nil {
		r.onBytes(len(raw))
	}
}
