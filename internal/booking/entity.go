package booking

import (
	"time"

	"github.com/avstrong/hotelserver/internal/hotel"
)

type Receipt struct {
	Reference     string
	Hotel         string
	Room          hotel.RoomView
	CustomerEmail string
	StartDate     time.Time
}

type EventType string

const (
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingCancelled EventType = "booking.cancelled"
)

// Event carries no customer data.
type Event struct {
	ID           string    `json:"id"`
	Type         EventType `json:"type"`
	Hotel        string    `json:"hotel"`
	Room         int       `json:"room"`
	DurationDays int       `json:"duration_days"`
	BookedAt     time.Time `json:"booked_at"`
	CreatedAt    time.Time `json:"created_at"`
}
