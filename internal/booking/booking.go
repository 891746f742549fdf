package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avstrong/hotelserver/internal/hotel"
	"github.com/avstrong/hotelserver/internal/logger"
)

type notifier interface {
	Publish(ctx context.Context, event *Event) error
}

// Manager funnels every booking mutation so that each successful change is
// followed by a synchronous full-registry save.
type Manager struct {
	l        *logger.Logger
	registry *Registry
	storage  storageWriter
	notifier notifier
	now      func() time.Time

	// persistMu keeps a single writer on the backing store. The snapshot is
	// taken while holding it, so a later save never carries older state.
	persistMu sync.Mutex
}

// New builds a Manager. notifier may be nil.
func New(l *logger.Logger, registry *Registry, storage storageWriter, notifier notifier) *Manager {
	//nolint:exhaustruct
	return &Manager{
		l:        l,
		registry: registry,
		storage:  storage,
		notifier: notifier,
		now:      time.Now,
	}
}

func (m *Manager) Registry() *Registry {
	return m.registry
}

func (m *Manager) Book(ctx context.Context, hotelIndex, number int, input hotel.BookInput) (*Receipt, error) {
	h, err := m.registry.Hotel(hotelIndex)
	if err != nil {
		return nil, err
	}

	now := m.now()

	room, err := h.Book(input, number, now)
	if err != nil {
		return nil, err
	}

	m.l.LogInfo("Session %s booked room %d of %s for %d days", sessionID(ctx), number+1, h.Name(), input.DurationDays)

	m.persist(ctx)

	receipt := &Receipt{
		Reference:     uuid.NewString(),
		Hotel:         h.Name(),
		Room:          room,
		CustomerEmail: input.CustomerEmail,
		StartDate:     input.StartDate,
	}

	m.publish(ctx, &Event{
		ID:           receipt.Reference,
		Type:         EventBookingConfirmed,
		Hotel:        h.Name(),
		Room:         number + 1,
		DurationDays: room.Details.DurationDays,
		BookedAt:     room.Details.BookedTime().UTC(),
		CreatedAt:    now.UTC(),
	})

	return receipt, nil
}

func (m *Manager) Cancel(ctx context.Context, hotelIndex int, customer string, number int) (hotel.RoomView, error) {
	h, err := m.registry.Hotel(hotelIndex)
	if err != nil {
		return hotel.RoomView{}, err
	}

	freed, err := h.CancelBooking(customer, number)
	if err != nil {
		return hotel.RoomView{}, err
	}

	m.l.LogInfo("Session %s cancelled booking of room %d of %s", sessionID(ctx), number+1, h.Name())

	m.persist(ctx)

	m.publish(ctx, &Event{
		ID:           uuid.NewString(),
		Type:         EventBookingCancelled,
		Hotel:        h.Name(),
		Room:         number + 1,
		DurationDays: freed.Details.DurationDays,
		BookedAt:     freed.Details.BookedTime().UTC(),
		CreatedAt:    m.now().UTC(),
	})

	return freed, nil
}

// persist failures leave memory ahead of disk until the next successful save.
func (m *Manager) persist(ctx context.Context) {
	m.persistMu.Lock()
	defer m.persistMu.Unlock()

	if err := m.storage.Save(ctx, m.registry.Snapshot()); err != nil {
		m.l.LogErrorf("Could not persist hotels after session %s change: %v", sessionID(ctx), err.Error())
	}
}

func (m *Manager) publish(ctx context.Context, event *Event) {
	if m.notifier == nil {
		return
	}

	if err := m.notifier.Publish(ctx, event); err != nil {
		m.l.LogErrorf("Could not publish %s event %s: %v", event.Type, event.ID, err.Error())
	}
}

func sessionID(ctx context.Context) string {
	if id, ok := SessionIDFromContext(ctx); ok {
		return id
	}

	return "-"
}

// String renders the receipt the way clients store it.
func (r *Receipt) String() string {
	return fmt.Sprintf("Booking Receipt: %s\nHotel: %s\nReference: %s\nStart Date: %s\nContact: %s",
		r.Room, r.Hotel, r.Reference, r.StartDate.Format("02/01/2006"), r.CustomerEmail)
}
