package hotel

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingDetailsIsBooked(t *testing.T) {
	tests := []struct {
		name    string
		details BookingDetails
		booked  bool
	}{
		{name: "empty", details: BookingDetails{}, booked: false},
		{name: "complete", details: BookingDetails{CustomerName: "Alice", DurationDays: 2, BookedAt: 1}, booked: true},
		{name: "no name", details: BookingDetails{DurationDays: 2, BookedAt: 1}, booked: false},
		{name: "no duration", details: BookingDetails{CustomerName: "Alice", BookedAt: 1}, booked: false},
		{name: "no timestamp", details: BookingDetails{CustomerName: "Alice", DurationDays: 2}, booked: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.booked, tc.details.IsBooked())
		})
	}
}

func TestRoomBookAndFree(t *testing.T) {
	room := NewRoom("Includes breakfast", 150, 2)
	now := time.UnixMilli(1700000000000)

	require.NoError(t, room.book("Alice", 3, now))
	assert.Equal(t, BookingDetails{CustomerName: "Alice", DurationDays: 3, BookedAt: 1700000000000}, room.Details)

	require.ErrorIs(t, room.book("Bob", 1, now), ErrAlreadyBooked)
	assert.Equal(t, "Alice", room.Details.CustomerName)

	room.free()
	assert.False(t, room.IsBooked())
	assert.Equal(t, BookingDetails{}, room.Details)
}

func TestRoomString(t *testing.T) {
	room := NewRoom("Includes pool access", 90, 1)

	assert.Equal(t,
		"Room \n{ \n\tDescription: \"Includes pool access\"\n\tNumber Of Beds: 1\n\tPrice: $90\n\tDetails: Not Booked\n}",
		room.String())

	require.NoError(t, room.book("Alice", 4, time.Now()))
	assert.True(t, strings.Contains(room.String(), "Customer Name (Alice) Duration In Days (4) Date Booked ("))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("a@b.com"))
	assert.True(t, ValidEmail("first last@host"))
	assert.False(t, ValidEmail("@b.com"))
	assert.False(t, ValidEmail("a@"))
	assert.False(t, ValidEmail("plain"))
}

func TestInputErrorMessagesSorted(t *testing.T) {
	in := BookInput{}
	err := in.validate()

	inputErr := IsInputError(err)
	require.NotNil(t, inputErr)
	assert.Equal(t, []string{
		"provide valid email",
		"provide customer name",
		"duration must be at least one day",
	}, inputErr.Messages())
}
