package hotel

import (
	"fmt"
	"time"
)

// WithheldCustomer stands in for a customer name that was not persisted.
// Any client may cancel a reloaded booking under this name, so Book refuses it.
const WithheldCustomer = "withheld"

// dateBookedLayout mirrors the receipts customers already have on disk.
const dateBookedLayout = "Mon Jan 02 15:04:05 MST 2006"

// BookingDetails is all-or-nothing: a room is booked only when the customer,
// the duration and the booking time are all set.
type BookingDetails struct {
	CustomerName string
	DurationDays int
	BookedAt     int64 // unix millis
}

func (d BookingDetails) IsBooked() bool {
	return d.CustomerName != "" && d.DurationDays > 0 && d.BookedAt > 0
}

func (d BookingDetails) BookedTime() time.Time {
	return time.UnixMilli(d.BookedAt)
}

func (d *BookingDetails) clear() {
	*d = BookingDetails{}
}

func (d BookingDetails) String() string {
	return fmt.Sprintf("Customer Name (%s) Duration In Days (%d) Date Booked (%s)",
		d.CustomerName, d.DurationDays, d.BookedTime().Format(dateBookedLayout))
}

type Room struct {
	Description string
	Price       int
	Beds        int
	Details     BookingDetails
}

func NewRoom(description string, price, beds int) Room {
	//nolint:exhaustruct
	return Room{
		Description: description,
		Price:       price,
		Beds:        beds,
	}
}

func (r Room) IsBooked() bool {
	return r.Details.IsBooked()
}

func (r *Room) book(customer string, days int, now time.Time) error {
	if r.Details.IsBooked() {
		return ErrAlreadyBooked
	}

	r.Details = BookingDetails{
		CustomerName: customer,
		DurationDays: days,
		BookedAt:     now.UnixMilli(),
	}

	return nil
}

func (r *Room) free() {
	r.Details.clear()
}

func (r Room) String() string {
	details := "Not Booked"
	if r.IsBooked() {
		details = r.Details.String()
	}

	return fmt.Sprintf("Room \n{ \n\tDescription: \"%s\"\n\tNumber Of Beds: %d\n\tPrice: $%d\n\tDetails: %s\n}",
		r.Description, r.Beds, r.Price, details)
}

// RoomView is a copy of a room taken under the hotel lock. Number is the
// room's position in the hotel and stays valid for later Book/CancelBooking
// calls because rooms are never added or removed after load.
type RoomView struct {
	Number int
	Room
}
