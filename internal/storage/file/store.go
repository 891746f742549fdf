package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/natefinch/atomic"

	"github.com/avstrong/hotelserver/internal/booking"
	"github.com/avstrong/hotelserver/internal/hotel"
	"github.com/avstrong/hotelserver/internal/logger"
)

type Config struct {
	L    *logger.Logger
	Path string
	// PersistCustomers also writes customer names into the details block.
	PersistCustomers bool
}

// Store persists the whole registry in one text file. Every Save replaces
// the file atomically, so readers see either the old or the new content.
type Store struct {
	mu   sync.Mutex
	conf Config
}

func New(conf Config) *Store {
	//nolint:exhaustruct
	return &Store{conf: conf}
}

func (s *Store) Path() string {
	return s.conf.Path
}

func (s *Store) Load(_ context.Context) ([]hotel.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.conf.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, booking.ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.conf.Path, err)
	}

	hotels, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.conf.Path, err)
	}

	return hotels, nil
}

func (s *Store) Save(_ context.Context, hotels []hotel.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer

	if err := Encode(&buf, hotels, s.conf.PersistCustomers); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.conf.Path), 0o755); err != nil { //nolint:gomnd
		return fmt.Errorf("create data directory: %w", err)
	}

	if err := atomic.WriteFile(s.conf.Path, &buf); err != nil {
		return fmt.Errorf("write %s: %w", s.conf.Path, err)
	}

	s.conf.L.LogDebug("Saved %d hotels to %s", len(hotels), s.conf.Path)

	return nil
}
