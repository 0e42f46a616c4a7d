// Package server implements the Connection Driver (spec.md §4.8): the
// accept loop and the per-connection read/parse/dispatch/respond loop,
// wired to the shared Keyspace, Info Store, and Replica Registry.
// Grounded on the teacher's internal/server/redis_server.go, trimmed
// of AOF/RDB/cluster/sentinel machinery that sits outside spec.md's
// component table.
package server

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/faizanhussain2310/goredis/internal/config"
	"github.com/faizanhussain2310/goredis/internal/handler"
	"github.com/faizanhussain2310/goredis/internal/logging"
	"github.com/faizanhussain2310/goredis/internal/metrics"
	"github.com/faizanhussain2310/goredis/internal/protocol"
	"github.com/faizanhussain2310/goredis/internal/replication"
	"github.com/faizanhussain2310/goredis/internal/store"
)

var log = logging.For("server")

// Server owns the listener, the shared Keyspace/Info Store, and the
// Replica Registry every accepted connection reads from and mutates.
type Server struct {
	cfg      *config.Config
	keyspace *store.Keyspace
	info     *store.InfoStore
	replicas *replication.Registry
	handlers *handler.Handlers
	metrics  *metrics.Metrics

	listener  net.Listener
	wg        sync.WaitGroup
	stop      chan struct{}
	stopOnce  sync.Once
	handshake *replication.Handshake
}

// New builds a Server whose role (master or replica) is derived from
// cfg (spec.md §6's replicaof pair).
func New(cfg *config.Config, m *metrics.Metrics) *Server {
	keyspace := store.NewKeyspace()

	var info *store.InfoStore
	if cfg.IsReplica() {
		info = store.NewReplicaInfoStore(cfg.Port, cfg.ReplicaOfHost, cfg.ReplicaOfPort)
	} else {
		info = store.NewMasterInfoStore(cfg.Port)
	}

	replicas := replication.NewRegistry()
	handlers := handler.New(keyspace, info, replicas)

	s := &Server{
		cfg:      cfg,
		keyspace: keyspace,
		info:     info,
		replicas: replicas,
		handlers: handlers,
		metrics:  m,
		stop:     make(chan struct{}),
	}

	var replOffset float64
	replicas.OnBytes(func(n int) {
		info.IncrReplOffset(n)
		if m != nil {
			replOffset += float64(n)
			m.ReplicationOffset.Set(replOffset)
		}
	})

	if cfg.IsReplica() {
		s.handshake = &replication.Handshake{
			MasterHost: cfg.ReplicaOfHost,
			MasterPort: cfg.ReplicaOfPort,
			OurPort:    cfg.Port,
			Keyspace:   keyspace,
			Info:       info,
		}
	}

	return s
}

// Start binds the listener, launches the accept loop and (for a
// replica) the handshake goroutine, and blocks until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort(s.cfg.Addr, fmt.Sprintf("%d", s.cfg.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	s.listener = listener
	log.WithField("addr", addr).Info("listening")

	if s.handshake != nil {
		go s.handshake.Run(s.stop)
	}

	go s.acceptLoop()

	<-ctx.Done()
	s.Shutdown()
	return nil
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			select {
			case <-s.stop:
				return
			default:
				log.WithError(err).Warn("accept error")
				continue
			}
		}

		s.wg.Add(1)
		go s.handleConnection(conn)
	}
}

// handleConnection is the per-connection task of spec.md §4.8: parse a
// Frame, dispatch it, write responses, and — on PSYNC — promote the
// socket into the Replica Registry and stop looping.
func (s *Server) handleConnection(conn net.Conn) {
	defer s.wg.Done()

	if s.metrics != nil {
		s.metrics.ConnectedClients.Inc()
		defer s.metrics.ConnectedClients.Dec()
	}

	fr := protocol.NewFrameReader(conn)
	closeOnReturn := true
	defer func() {
		if closeOnReturn {
			conn.Close()
		}
	}()

	for {
		v, raw, err := fr.Next()
		if err != nil {
			return
		}

		frame, err := protocol.NewFrame(v, raw)
		if err != nil {
			resp, shouldClose := handler.EncodeError(err)
			writeAll(conn, resp)
			if shouldClose {
				return
			}
			continue
		}

		if s.metrics != nil {
			s.metrics.CommandsTotal.WithLabelValues(frame.Command.String()).Inc()
		}

		resp, promote, err := s.handlers.Dispatch(frame)
		if err != nil {
			out, shouldClose := handler.EncodeError(err)
			writeAll(conn, out)
			if shouldClose {
				return
			}
			continue
		}

		writeAll(conn, resp)

		// A SET fans out synchronously and may have dropped failing
		// replicas, so refresh the gauge to the registry's current size.
		if frame.Command == protocol.Set && s.metrics != nil {
			s.metrics.ReplicasConnected.Set(float64(s.replicas.Count()))
		}

		if promote {
			s.replicas.Register(conn)
			if s.metrics != nil {
				s.metrics.ReplicasConnected.Set(float64(s.replicas.Count()))
			}
			closeOnReturn = false
			return
		}
	}
}

func writeAll(conn net.Conn, resp handler.Response) {
	for _, blob := range resp {
		if _, err := conn.Write(blob); err != nil {
			log.WithError(err).Warn("write error")
			return
		}
	}
}

// Shutdown stops accepting new connections and closes the listener.
// In-flight connections are left to finish or fail on their own; there
// is no explicit cancellation token (spec.md §5).
func (s *Server) Shutdown() {
	s.stopOnce.Do(func() {
		close(s.stop)
		if s.listener != nil {
			s.listener.Close()
		}
	})
}

// WaitIdle blocks until timeout or until every accepted connection's
// task has returned, whichever comes first.
func (s *Server) WaitIdle(timeout time.Duration) {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
