package file

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/avstrong/hotelserver/internal/hotel"
)

const (
	crlf          = "\r\n"
	durationField = "duration: "
	customerField = "customer: "
	timestampSep  = " days from timestamp: "
)

// Encode writes hotels in the block format:
//
//	Hotel:
//		name: Hotel Galini
//		location: Mykonos
//		ratings: 5
//		rooms:
//			Room:
//				description: Includes free Wi-Fi
//				price: 120
//				beds: 2
//				details: {  duration: 3 days from timestamp: 1700000000000 }
//
// Customer names are written only when withCustomers is set.
func Encode(w io.Writer, hotels []hotel.Record, withCustomers bool) error {
	var b strings.Builder

	for _, h := range hotels {
		b.WriteString("Hotel:" + crlf + "\t")
		b.WriteString("name: " + h.Name + crlf + "\t")
		b.WriteString("location: " + h.Location + crlf + "\t")
		b.WriteString("ratings: " + strconv.Itoa(h.Rating) + crlf + "\t")
		b.WriteString("rooms:" + crlf + "\t\t")

		for _, r := range h.Rooms {
			b.WriteString("Room:" + crlf + "\t\t\t")
			b.WriteString("description: " + r.Description + crlf + "\t\t\t")
			b.WriteString("price: " + strconv.Itoa(r.Price) + crlf + "\t\t\t")
			b.WriteString("beds: " + strconv.Itoa(r.Beds) + crlf + "\t\t\t")
			b.WriteString("details: { ")

			if withCustomers && r.Details.CustomerName != "" {
				b.WriteString(" " + customerField + r.Details.CustomerName)
			}

			fmt.Fprintf(&b, " %s%d%s%d }", durationField, r.Details.DurationDays, timestampSep, r.Details.BookedAt)
			b.WriteString(crlf + "\t\t")
		}

		b.WriteString(crlf)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write hotels: %w", err)
	}

	return nil
}

type decoder struct {
	hotels []hotel.Record
	hotel  *hotel.Record
	room   *hotel.Room
	line   int

	hotelSeen map[string]bool
	roomSeen  map[string]bool
}

// Decode reads the block format written by Encode. LF and CRLF line endings
// are accepted, as is an optional customer field inside the details block.
func Decode(r io.Reader) ([]hotel.Record, error) {
	//nolint:exhaustruct
	d := &decoder{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) //nolint:gomnd

	for scanner.Scan() {
		d.line++

		if err := d.parseLine(strings.TrimLeft(scanner.Text(), " \t")); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read hotels: %w", err)
	}

	if err := d.finishHotel(); err != nil {
		return nil, err
	}

	if len(d.hotels) == 0 {
		return nil, &ParseError{Line: d.line, Msg: "no hotels found"}
	}

	return d.hotels, nil
}

func (d *decoder) fail(format string, v ...any) error {
	return &ParseError{Line: d.line, Msg: fmt.Sprintf(format, v...)}
}

//nolint:cyclop // one case per field
func (d *decoder) parseLine(line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}

	key, value, _ := strings.Cut(line, ":")
	value = strings.TrimPrefix(value, " ")

	switch key {
	case "Hotel":
		if err := d.finishHotel(); err != nil {
			return err
		}

		//nolint:exhaustruct
		d.hotel = &hotel.Record{}
		d.hotelSeen = make(map[string]bool)

		return nil
	case "rooms":
		return d.hotelField(key, func() error { return nil })
	case "name":
		return d.hotelField(key, func() error {
			d.hotel.Name = strings.TrimSpace(value)

			return nil
		})
	case "location":
		return d.hotelField(key, func() error {
			d.hotel.Location = strings.TrimSpace(value)

			return nil
		})
	case "ratings":
		return d.hotelField(key, func() error {
			return d.atoi(value, &d.hotel.Rating)
		})
	case "Room":
		if err := d.finishRoom(); err != nil {
			return err
		}

		if d.hotel == nil {
			return d.fail("room outside of a hotel block")
		}

		//nolint:exhaustruct
		d.room = &hotel.Room{}
		d.roomSeen = make(map[string]bool)

		return nil
	case "description":
		return d.roomField(key, func() error {
			d.room.Description = value

			return nil
		})
	case "price":
		return d.roomField(key, func() error { return d.atoi(value, &d.room.Price) })
	case "beds":
		return d.roomField(key, func() error { return d.atoi(value, &d.room.Beds) })
	case "details":
		return d.roomField(key, func() error {
			details, err := parseDetails(value)
			if err != nil {
				return d.fail("details: %v", err)
			}

			d.room.Details = details

			return nil
		})
	default:
		return d.fail("unexpected line %q", line)
	}
}

func (d *decoder) hotelField(key string, set func() error) error {
	if d.hotel == nil || d.room != nil {
		return d.fail("%s outside of a hotel header", key)
	}

	d.hotelSeen[key] = true

	return set()
}

func (d *decoder) roomField(key string, set func() error) error {
	if d.room == nil {
		return d.fail("%s outside of a room block", key)
	}

	d.roomSeen[key] = true

	return set()
}

func (d *decoder) atoi(value string, dst *int) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return d.fail("not a number: %q", value)
	}

	*dst = n

	return nil
}

func (d *decoder) finishRoom() error {
	if d.room == nil {
		return nil
	}

	for _, key := range []string{"description", "price", "beds", "details"} {
		if !d.roomSeen[key] {
			return d.fail("room is missing %s", key)
		}
	}

	d.hotel.Rooms = append(d.hotel.Rooms, *d.room)
	d.room = nil

	return nil
}

func (d *decoder) finishHotel() error {
	if err := d.finishRoom(); err != nil {
		return err
	}

	if d.hotel == nil {
		return nil
	}

	for _, key := range []string{"name", "location", "ratings"} {
		if !d.hotelSeen[key] {
			return d.fail("hotel is missing %s", key)
		}
	}

	d.hotels = append(d.hotels, *d.hotel)
	d.hotel = nil

	return nil
}

// parseDetails reads "{ [customer: NAME ]duration: N days from timestamp: T }".
// A booking saved without its customer stays booked under
// hotel.WithheldCustomer; incomplete details are cleared.
func parseDetails(value string) (hotel.BookingDetails, error) {
	inner := strings.TrimSpace(value)
	if !strings.HasPrefix(inner, "{") || !strings.HasSuffix(inner, "}") {
		return hotel.BookingDetails{}, fmt.Errorf("missing braces in %q", value)
	}

	inner = inner[1 : len(inner)-1]

	// Customer text precedes the duration marker and may itself contain it.
	durAt := strings.LastIndex(inner, durationField)
	if durAt < 0 {
		return hotel.BookingDetails{}, fmt.Errorf("missing duration in %q", value)
	}

	var customer string
	if custAt := strings.Index(inner[:durAt], customerField); custAt >= 0 {
		customer = strings.TrimSpace(inner[custAt+len(customerField) : durAt])
	}

	days, stamp, ok := strings.Cut(inner[durAt+len(durationField):], timestampSep)
	if !ok {
		return hotel.BookingDetails{}, fmt.Errorf("missing timestamp in %q", value)
	}

	duration, err := strconv.Atoi(strings.TrimSpace(days))
	if err != nil {
		return hotel.BookingDetails{}, fmt.Errorf("duration: %w", err)
	}

	bookedAt, err := strconv.ParseInt(strings.TrimSpace(stamp), 10, 64)
	if err != nil {
		return hotel.BookingDetails{}, fmt.Errorf("timestamp: %w", err)
	}

	if duration <= 0 || bookedAt <= 0 {
		return hotel.BookingDetails{}, nil
	}

	if customer == "" {
		customer = hotel.WithheldCustomer
	}

	return hotel.BookingDetails{CustomerName: customer, DurationDays: duration, BookedAt: bookedAt}, nil
}
