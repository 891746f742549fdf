package tcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/avstrong/hotelserver/internal/booking"
	"github.com/avstrong/hotelserver/internal/logger"
	"github.com/avstrong/hotelserver/internal/session"
)

const busyMessage = "Server is busy, please try again later.\nDisconnected"

type idGenerator interface {
	GetID(ctx context.Context) (string, error)
}

type Conf struct {
	L              *logger.Logger
	Host           string
	Port           string
	MaxConnections int
}

// Server accepts clients and runs one session goroutine per connection.
type Server struct {
	l        *logger.Logger
	conf     Conf
	bManager *booking.Manager
	ids      idGenerator
	slots    chan struct{}

	mu     sync.Mutex
	ln     net.Listener
	conns  map[net.Conn]struct{}
	closed bool

	wg sync.WaitGroup
}

func New(conf Conf, bookingManager *booking.Manager, ids idGenerator) (*Server, error) {
	if conf.MaxConnections < 1 {
		return nil, ErrInvalidConnLimit
	}

	//nolint:exhaustruct
	return &Server{
		l:        conf.L,
		conf:     conf,
		bManager: bookingManager,
		ids:      ids,
		slots:    make(chan struct{}, conf.MaxConnections),
		conns:    make(map[net.Conn]struct{}),
	}, nil
}

func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", net.JoinHostPort(s.conf.Host, s.conf.Port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		ln.Close()

		return ErrServerClosed
	}

	s.ln = ln

	return nil
}

func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ln == nil {
		return nil
	}

	return s.ln.Addr()
}

func (s *Server) ListenAndServe(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	return s.Serve(ctx)
}

// Serve blocks until Shutdown and then returns ErrServerClosed.
func (s *Server) Serve(ctx context.Context) error {
	s.mu.Lock()
	ln := s.ln
	s.mu.Unlock()

	if ln == nil {
		return ErrNotListening
	}

	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.isClosed() {
				return ErrServerClosed
			}

			return fmt.Errorf("accept: %w", err)
		}

		select {
		case s.slots <- struct{}{}:
		default:
			s.reject(conn)

			continue
		}

		if !s.track(conn) {
			<-s.slots
			conn.Close()

			return ErrServerClosed
		}

		go s.handle(ctx, conn)
	}
}

func (s *Server) reject(conn net.Conn) {
	s.l.LogWarnf("Rejected client %s: %d connections already open", conn.RemoteAddr(), s.conf.MaxConnections)

	if _, err := conn.Write([]byte(busyMessage)); err != nil {
		s.l.LogDebug("Could not notify rejected client: %v", err.Error())
	}

	conn.Close()
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer func() {
		conn.Close()
		s.untrack(conn)
		<-s.slots
		s.wg.Done()
	}()

	id, err := s.ids.GetID(ctx)
	if err != nil {
		s.l.LogErrorf("Could not generate connection id: %v", err.Error())

		return
	}

	traceID := trace.TraceID(uuid.New())
	spanID := uuid.New()

	var sid trace.SpanID

	copy(sid[:], spanID[:len(sid)])

	ctx = trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  sid,
	}))
	ctx = booking.NewContextWithSessionID(ctx, id)

	l := s.l.WithPrefix(id)
	addr := conn.RemoteAddr()

	l.LogInfo("Connected to client %s, traceID: %s", addr, traceID)

	if err := session.New(l, s.bManager, conn).Run(ctx); err != nil && !s.isClosed() && !errors.Is(err, context.Canceled) {
		l.LogWarnf("Session ended with error: %v", err.Error())
	}

	l.LogInfo("Client %s has been disconnected", addr)
}

// track registers conn unless Shutdown has started. The WaitGroup is
// bumped under the same lock Shutdown takes before waiting.
func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	s.conns[conn] = struct{}{}
	s.wg.Add(1)

	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.conns, conn)
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

// Open reports the number of live sessions.
func (s *Server) Open() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.conns)
}

// Shutdown stops accepting, closes every client connection and waits for
// their sessions to finish or ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true

	var err error
	if s.ln != nil {
		err = s.ln.Close()
	}

	for conn := range s.conns {
		conn.Close()
	}

	s.mu.Unlock()

	done := make(chan struct{})

	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("wait for sessions: %w", ctx.Err())
	}

	if err != nil {
		return fmt.Errorf("close listener: %w", err)
	}

	return nil
}
