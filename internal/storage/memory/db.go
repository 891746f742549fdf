package memory

import (
	"context"
	"sync"

	"github.com/avstrong/hotelserver/internal/booking"
	"github.com/avstrong/hotelserver/internal/hotel"
	"github.com/avstrong/hotelserver/internal/logger"
)

type Config struct {
	L *logger.Logger
	// Hotels preloads the store; nil means nothing has been persisted yet.
	Hotels []hotel.Record
}

// DB keeps the last saved registry in memory. It honours the same load/save
// contract as the file store and is used when no data file is wanted.
type DB struct {
	mu     sync.Mutex
	l      *logger.Logger
	hotels []hotel.Record
	saved  bool
	saves  int
	closed bool
}

func New(conf Config) *DB {
	//nolint:exhaustruct
	db := &DB{l: conf.L}

	if conf.Hotels != nil {
		db.hotels = copyRecords(conf.Hotels)
		db.saved = true
	}

	return db
}

func (db *DB) Load(_ context.Context) ([]hotel.Record, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return nil, ErrClosed
	}

	if !db.saved {
		return nil, booking.ErrNotFound
	}

	return copyRecords(db.hotels), nil
}

func (db *DB) Save(_ context.Context, hotels []hotel.Record) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.closed {
		return ErrClosed
	}

	db.hotels = copyRecords(hotels)
	db.saved = true
	db.saves++

	db.l.LogDebug("Saved %d hotels to memory (save #%d)", len(hotels), db.saves)

	return nil
}

// Saves reports how many times Save succeeded.
func (db *DB) Saves() int {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.saves
}

func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.closed = true

	return nil
}

func copyRecords(in []hotel.Record) []hotel.Record {
	out := make([]hotel.Record, 0, len(in))
	for _, rec := range in {
		rec.Rooms = append([]hotel.Room(nil), rec.Rooms...)
		out = append(out, rec)
	}

	return out
}
