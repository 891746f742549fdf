package file

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avstrong/hotelserver/internal/hotel"
)

func testRecords() []hotel.Record {
	booked := hotel.NewRoom("Includes breakfast ", 150, 2)
	booked.Details = hotel.BookingDetails{CustomerName: "Alice", DurationDays: 3, BookedAt: 1700000000000}

	return []hotel.Record{
		{
			Name: "Hotel Galini", Location: "Mykonos", Rating: 5,
			Rooms: []hotel.Room{hotel.NewRoom("Includes free Wi-Fi", 120, 1), booked},
		},
		{
			Name: "Hotel Zeus", Location: "Athens", Rating: 3,
			Rooms: []hotel.Room{hotel.NewRoom("Includes pool access", 40, 3)},
		},
	}
}

func TestEncodeFormat(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Encode(&buf, testRecords()[1:], false))
	assert.Equal(t, "Hotel:\r\n"+
		"\tname: Hotel Zeus\r\n"+
		"\tlocation: Athens\r\n"+
		"\tratings: 3\r\n"+
		"\trooms:\r\n"+
		"\t\tRoom:\r\n"+
		"\t\t\tdescription: Includes pool access\r\n"+
		"\t\t\tprice: 40\r\n"+
		"\t\t\tbeds: 3\r\n"+
		"\t\t\tdetails: {  duration: 0 days from timestamp: 0 }\r\n"+
		"\t\t\r\n", buf.String())
}

func TestRoundTripWithholdsCustomer(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Encode(&buf, testRecords(), false))
	assert.NotContains(t, buf.String(), "Alice")

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	require.Len(t, decoded, 2)

	want := testRecords()
	want[0].Rooms[1].Details.CustomerName = hotel.WithheldCustomer
	assert.Equal(t, want, decoded)
	assert.True(t, decoded[0].Rooms[1].IsBooked())
	assert.False(t, decoded[0].Rooms[0].IsBooked())
}

func TestRoundTripWithCustomers(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, Encode(&buf, testRecords(), true))
	assert.Contains(t, buf.String(), "details: {  customer: Alice duration: 3 days from timestamp: 1700000000000 }")

	decoded, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, testRecords(), decoded)
}

func TestRoundTripCustomerNameWithFieldMarkers(t *testing.T) {
	for _, name := range []string{
		"Eve duration: 1",
		"Eve duration: 1 days from timestamp: 2",
		"customer: Eve {x}",
	} {
		t.Run(name, func(t *testing.T) {
			records := testRecords()
			records[0].Rooms[1].Details.CustomerName = name

			var buf bytes.Buffer

			require.NoError(t, Encode(&buf, records, true))

			decoded, err := Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, records, decoded)
		})
	}
}

func TestDecodeLineFeedsAndSpaces(t *testing.T) {
	in := "Hotel:\n" +
		"  name: Spring Resort\n" +
		"  location: Santorini\n" +
		"  ratings: 4\n" +
		"  rooms:\n" +
		"    Room:\n" +
		"      description: Includes breakfast\n" +
		"      price: 50\n" +
		"      beds: 2\n" +
		"      details: { duration: 2 days from timestamp: 0 }\n"

	decoded, err := Decode(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.Equal(t, "Spring Resort", decoded[0].Name)
	assert.Equal(t, []hotel.Room{hotel.NewRoom("Includes breakfast", 50, 2)}, decoded[0].Rooms)
}

func TestDecodeMalformed(t *testing.T) {
	header := "Hotel:\n\tname: A\n\tlocation: B\n\tratings: 1\n\trooms:\n"
	room := "\t\tRoom:\n\t\t\tdescription: d\n\t\t\tprice: 1\n\t\t\tbeds: 1\n"

	tests := []struct {
		name string
		in   string
		line int
	}{
		{name: "empty", in: "", line: 0},
		{name: "unknown key", in: header + "\tstars: 4\n", line: 6},
		{name: "bad rating", in: "Hotel:\n\tname: A\n\tlocation: B\n\tratings: five\n", line: 4},
		{name: "missing location", in: "Hotel:\n\tname: A\n\tratings: 1\n", line: 3},
		{name: "room without hotel", in: room, line: 1},
		{name: "room missing details", in: header + room, line: 9},
		{name: "details without braces", in: header + room + "\t\t\tdetails: duration: 1 days from timestamp: 1\n", line: 10},
		{name: "details without timestamp", in: header + room + "\t\t\tdetails: { duration: 1 days }\n", line: 10},
		{name: "hotel field inside room", in: header + room + "\t\t\tname: X\n", line: 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.in))
			require.Error(t, err)

			parseErr := IsParseError(err)
			require.NotNil(t, parseErr)
			assert.Equal(t, tc.line, parseErr.Line)
		})
	}
}

func TestParseDetails(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  hotel.BookingDetails
	}{
		{
			name:  "free",
			value: "{  duration: 0 days from timestamp: 0 }",
			want:  hotel.BookingDetails{},
		},
		{
			name:  "booked without customer",
			value: "{  duration: 5 days from timestamp: 42 }",
			want:  hotel.BookingDetails{CustomerName: hotel.WithheldCustomer, DurationDays: 5, BookedAt: 42},
		},
		{
			name:  "booked with customer",
			value: "{  customer: Bob Smith duration: 5 days from timestamp: 42 }",
			want:  hotel.BookingDetails{CustomerName: "Bob Smith", DurationDays: 5, BookedAt: 42},
		},
		{
			name:  "customer name containing duration marker",
			value: "{  customer: Eve duration: 1 duration: 3 days from timestamp: 42 }",
			want:  hotel.BookingDetails{CustomerName: "Eve duration: 1", DurationDays: 3, BookedAt: 42},
		},
		{
			name:  "duration without timestamp is free",
			value: "{  customer: Bob duration: 5 days from timestamp: 0 }",
			want:  hotel.BookingDetails{},
		},
		{
			name:  "timestamp without duration is free",
			value: "{  duration: 0 days from timestamp: 42 }",
			want:  hotel.BookingDetails{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseDetails(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
