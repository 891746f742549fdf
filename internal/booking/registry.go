package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/avstrong/hotelserver/internal/hotel"
	"github.com/avstrong/hotelserver/internal/logger"
)

type storageReader interface {
	Load(ctx context.Context) ([]hotel.Record, error)
}

type storageWriter interface {
	Save(ctx context.Context, hotels []hotel.Record) error
}

type storage interface {
	storageReader
	storageWriter
}

// Registry is the process-wide list of hotels. It is built once by Open and
// never changes shape afterwards; only rooms inside each hotel mutate.
type Registry struct {
	hotels []*hotel.Hotel
}

func NewRegistry(hotels []*hotel.Hotel) *Registry {
	return &Registry{hotels: append([]*hotel.Hotel(nil), hotels...)}
}

// Open loads the persisted hotels, or seeds and saves fresh ones when there
// is nothing persisted. Any other load error is returned: serving from
// partial state is not allowed.
func Open(ctx context.Context, l *logger.Logger, storage storage, seed func() []hotel.Record) (*Registry, error) {
	records, err := storage.Load(ctx)

	switch {
	case errors.Is(err, ErrNotFound):
		records = seed()

		if err := storage.Save(ctx, records); err != nil {
			return nil, fmt.Errorf("save seeded hotels: %w", err)
		}

		l.LogInfo("No persisted hotels found, seeded %d default hotels", len(records))
	case err != nil:
		return nil, fmt.Errorf("load hotels: %w", err)
	default:
		l.LogInfo("Loaded %d hotels from storage", len(records))
	}

	hotels := make([]*hotel.Hotel, 0, len(records))
	for _, rec := range records {
		hotels = append(hotels, hotel.FromRecord(rec))
	}

	return NewRegistry(hotels), nil
}

func (r *Registry) Len() int {
	return len(r.hotels)
}

func (r *Registry) Hotel(index int) (*hotel.Hotel, error) {
	if index < 0 || index >= len(r.hotels) {
		return nil, fmt.Errorf("hotel %d: %w", index+1, ErrUnknownHotel)
	}

	return r.hotels[index], nil
}

func (r *Registry) Hotels() []*hotel.Hotel {
	return append([]*hotel.Hotel(nil), r.hotels...)
}

// Snapshot copies every hotel, taking each hotel lock in turn.
func (r *Registry) Snapshot() []hotel.Record {
	out := make([]hotel.Record, 0, len(r.hotels))
	for _, h := range r.hotels {
		out = append(out, h.Record())
	}

	return out
}
