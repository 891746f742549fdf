package tcp

import (
	"bufio"
	"context"
	"io"
	"log"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avstrong/hotelserver/internal/booking"
	"github.com/avstrong/hotelserver/internal/hotel"
	"github.com/avstrong/hotelserver/internal/idgen/simple"
	"github.com/avstrong/hotelserver/internal/logger"
	"github.com/avstrong/hotelserver/internal/storage/memory"
)

func newServer(t *testing.T, maxConns int) *Server {
	t.Helper()

	l := logger.New(log.New(io.Discard, "", 0))
	db := memory.New(memory.Config{L: l})

	registry, err := booking.Open(context.Background(), l, db, func() []hotel.Record {
		return []hotel.Record{{
			Name: "Hotel Zeus", Location: "Athens", Rating: 3,
			Rooms: []hotel.Room{hotel.NewRoom("Includes pool access", 40, 3)},
		}}
	})
	require.NoError(t, err)

	srv, err := New(Conf{L: l, Host: "127.0.0.1", Port: "0", MaxConnections: maxConns},
		booking.New(l, registry, db, nil), simple.New("conn"))
	require.NoError(t, err)

	return srv
}

func startServer(t *testing.T, maxConns int) (*Server, <-chan error) {
	t.Helper()

	srv := newServer(t, maxConns)
	require.NoError(t, srv.Listen())

	served := make(chan error, 1)

	go func() { served <- srv.Serve(context.Background()) }()

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(ctx)
	})

	return srv, served
}

func dial(t *testing.T, srv *Server) (net.Conn, *bufio.Reader) {
	t.Helper()

	conn, err := net.Dial("tcp", srv.Addr().String())
	require.NoError(t, err)
	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))

	t.Cleanup(func() { conn.Close() })

	return conn, bufio.NewReader(conn)
}

func readUntil(t *testing.T, r *bufio.Reader, suffix string) string {
	t.Helper()

	var page strings.Builder

	for !strings.HasSuffix(page.String(), suffix) {
		b, err := r.ReadByte()
		require.NoError(t, err, "waiting for %q, got %q", suffix, page.String())
		page.WriteByte(b)
	}

	return page.String()
}

func TestNewRejectsZeroLimit(t *testing.T) {
	_, err := New(Conf{MaxConnections: 0}, nil, simple.New("conn"))
	assert.ErrorIs(t, err, ErrInvalidConnLimit)
}

func TestServeBeforeListen(t *testing.T) {
	srv, err := New(Conf{MaxConnections: 1}, nil, simple.New("conn"))
	require.NoError(t, err)
	assert.ErrorIs(t, srv.Serve(context.Background()), ErrNotListening)
}

func TestListenAndServe(t *testing.T) {
	srv := newServer(t, 2)
	served := make(chan error, 1)

	go func() { served <- srv.ListenAndServe(context.Background()) }()

	require.Eventually(t, func() bool { return srv.Addr() != nil }, 5*time.Second, 10*time.Millisecond)

	_, r := dial(t, srv)
	readUntil(t, r, "Select Hotel: ")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx))
	assert.ErrorIs(t, <-served, ErrServerClosed)
}

func TestListenAndServeAfterShutdown(t *testing.T) {
	srv := newServer(t, 1)
	require.NoError(t, srv.Shutdown(context.Background()))

	assert.ErrorIs(t, srv.ListenAndServe(context.Background()), ErrServerClosed)
}

func TestSessionOverLoopback(t *testing.T) {
	srv, _ := startServer(t, 4)
	conn, r := dial(t, srv)

	page := readUntil(t, r, "Select Hotel: ")
	assert.Contains(t, page, "1: Hotel \n{ \n\tName: Hotel Zeus")

	_, err := conn.Write([]byte("0\n"))
	require.NoError(t, err)

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Disconnected", string(rest))
}

func TestConnectionLimit(t *testing.T) {
	srv, _ := startServer(t, 1)

	_, first := dial(t, srv)
	readUntil(t, first, "Select Hotel: ")
	assert.Equal(t, 1, srv.Open())

	_, second := dial(t, srv)

	busy, err := io.ReadAll(second)
	require.NoError(t, err)
	assert.Equal(t, busyMessage, string(busy))
	assert.True(t, strings.HasSuffix(string(busy), "Disconnected"))
}

func TestShutdownClosesSessions(t *testing.T) {
	srv, served := startServer(t, 2)

	_, r := dial(t, srv)
	readUntil(t, r, "Select Hotel: ")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx))
	assert.ErrorIs(t, <-served, ErrServerClosed)
	assert.Zero(t, srv.Open())

	_, err := r.ReadByte()
	assert.Error(t, err)
}
