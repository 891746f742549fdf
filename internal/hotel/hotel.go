package hotel

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"
)

var emailPattern = regexp.MustCompile(`^(.+)@(.+)$`)

// ValidEmail reports whether s has the local@domain shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

type BookInput struct {
	CustomerName  string
	CustomerEmail string
	StartDate     time.Time
	DurationDays  int
}

func (b *BookInput) validate() error {
	inputErr := newInputError()

	switch name := strings.TrimSpace(b.CustomerName); {
	case name == "":
		inputErr.addError("customer.name", "provide customer name")
	case strings.EqualFold(name, WithheldCustomer):
		inputErr.addError("customer.name", "customer name is reserved")
	}

	if !ValidEmail(b.CustomerEmail) {
		inputErr.addError("customer.email", "provide valid email")
	}

	if b.DurationDays <= 0 {
		inputErr.addError("duration", "duration must be at least one day")
	}

	if inputErr.fieldsCount() > 0 {
		return inputErr
	}

	return nil
}

// Record is a lock-free copy of a hotel used by storage.
type Record struct {
	Name     string
	Location string
	Rating   int
	Rooms    []Room
}

// Hotel guards its rooms with its own mutex so traffic on one hotel never
// waits on another. Name, location and rating never change.
type Hotel struct {
	mu       sync.Mutex
	name     string
	location string
	rating   int
	rooms    []Room
}

func New(name, location string, rating int, rooms []Room) *Hotel {
	//nolint:exhaustruct
	return &Hotel{
		name:     name,
		location: location,
		rating:   rating,
		rooms:    append([]Room(nil), rooms...),
	}
}

func FromRecord(rec Record) *Hotel {
	return New(rec.Name, rec.Location, rec.Rating, rec.Rooms)
}

func (h *Hotel) Name() string {
	return h.name
}

func (h *Hotel) Location() string {
	return h.location
}

func (h *Hotel) Rating() int {
	return h.rating
}

func (h *Hotel) Record() Record {
	h.mu.Lock()
	defer h.mu.Unlock()

	return Record{
		Name:     h.name,
		Location: h.location,
		Rating:   h.rating,
		Rooms:    append([]Room(nil), h.rooms...),
	}
}

func (h *Hotel) filter(keep func(r *Room) bool) []RoomView {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []RoomView

	for i := range h.rooms {
		if keep(&h.rooms[i]) {
			out = append(out, RoomView{Number: i, Room: h.rooms[i]})
		}
	}

	return out
}

func (h *Hotel) Rooms() []RoomView {
	return h.filter(func(*Room) bool { return true })
}

func (h *Hotel) EmptyRooms() []RoomView {
	return h.filter(func(r *Room) bool { return !r.IsBooked() })
}

func (h *Hotel) BookedRooms() []RoomView {
	return h.filter(func(r *Room) bool { return r.IsBooked() })
}

// RoomsBookedBy matches the customer name case-insensitively.
func (h *Hotel) RoomsBookedBy(customer string) []RoomView {
	return h.filter(func(r *Room) bool {
		return r.IsBooked() && strings.EqualFold(r.Details.CustomerName, customer)
	})
}

func (h *Hotel) SearchByMaxPrice(maxPrice int) []RoomView {
	return h.filter(func(r *Room) bool { return r.Price <= maxPrice })
}

func (h *Hotel) SearchByBeds(beds int) []RoomView {
	return h.filter(func(r *Room) bool { return r.Beds == beds })
}

// Book re-checks the room under the lock: the listing the customer picked
// from may be stale by now.
func (h *Hotel) Book(input BookInput, number int, now time.Time) (RoomView, error) {
	if err := input.validate(); err != nil {
		return RoomView{}, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if number < 0 || number >= len(h.rooms) {
		return RoomView{}, ErrInvalidSelection
	}

	room := &h.rooms[number]
	if err := room.book(strings.TrimSpace(input.CustomerName), input.DurationDays, now); err != nil {
		return RoomView{}, fmt.Errorf("book room %d of %s: %w", number+1, h.name, err)
	}

	return RoomView{Number: number, Room: *room}, nil
}

func (h *Hotel) CancelBooking(customer string, number int) (RoomView, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if number < 0 || number >= len(h.rooms) {
		return RoomView{}, ErrInvalidSelection
	}

	room := &h.rooms[number]
	if !room.IsBooked() || !strings.EqualFold(room.Details.CustomerName, customer) {
		return RoomView{}, fmt.Errorf("no booking was made by %s for room %d: %w", customer, number+1, ErrNotOwner)
	}

	freed := RoomView{Number: number, Room: *room}
	room.free()

	return freed, nil
}

func (h *Hotel) String() string {
	return fmt.Sprintf("Hotel \n{ \n\tName: %s\n\tLocation: %s\n\tRatings: %d\n}", h.name, h.location, h.rating)
}
