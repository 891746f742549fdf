package migration

import (
	"math/rand/v2"
	"time"

	"github.com/avstrong/hotelserver/internal/hotel"
)

const roomsPerHotel = 5

var descriptions = []string{
	"Includes free Wi-Fi services and free parking services ",
	"Includes breakfast, free Wi-Fi services and free parking services ",
	"Includes free Wi-Fi services, free parking services and balcony with sea view ",
	"Includes breakfast, free Wi-Fi services, free parking services and balcony with sea view ",
	"Includes breakfast, free Wi-Fi services, free parking services and pool access",
	"Includes free Wi-Fi services, free parking services and pool access",
}

type template struct {
	name     string
	location string
	rating   int
	minPrice int
	maxPrice int
}

var templates = []template{
	{name: "Hotel Galini", location: "Mykonos", rating: 5, minPrice: 100, maxPrice: 400},
	{name: "Spring Resort", location: "Santorini", rating: 4, minPrice: 50, maxPrice: 180},
	{name: "Olympian Bay", location: "Parga", rating: 4, minPrice: 50, maxPrice: 200},
	{name: "Summer View Hotel", location: "Thessaloniki", rating: 5, minPrice: 60, maxPrice: 360},
	{name: "Hotel Zeus", location: "Athens", rating: 3, minPrice: 30, maxPrice: 110},
}

// Seed returns the default hotels with rooms randomised from the clock.
// It is used when no persisted hotels exist yet.
func Seed() []hotel.Record {
	now := uint64(time.Now().UnixNano()) //nolint:gosec

	return DefaultHotels(rand.New(rand.NewPCG(now, now>>1))) //nolint:gosec
}

// DefaultHotels builds five hotels of five free rooms each. Beds are 1..3 and
// prices fall in each hotel's own range.
func DefaultHotels(rnd *rand.Rand) []hotel.Record {
	hotels := make([]hotel.Record, 0, len(templates))

	for _, t := range templates {
		rooms := make([]hotel.Room, 0, roomsPerHotel)

		for range roomsPerHotel {
			rooms = append(rooms, hotel.NewRoom(
				descriptions[rnd.IntN(len(descriptions))],
				t.minPrice+rnd.IntN(t.maxPrice-t.minPrice+1),
				1+rnd.IntN(3), //nolint:gomnd
			))
		}

		hotels = append(hotels, hotel.Record{
			Name:     t.name,
			Location: t.location,
			Rating:   t.rating,
			Rooms:    rooms,
		})
	}

	return hotels
}
