package session

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/avstrong/hotelserver/internal/booking"
	"github.com/avstrong/hotelserver/internal/hotel"
	"github.com/avstrong/hotelserver/internal/logger"
)

const maxLineSize = 64 * 1024

// startDateLayout accepts single digit days and months, e.g. 1/5/2099.
const startDateLayout = "2/1/2006"

type bookingManager interface {
	Registry() *booking.Registry
	Book(ctx context.Context, hotelIndex, number int, input hotel.BookInput) (*booking.Receipt, error)
	Cancel(ctx context.Context, hotelIndex int, customer string, number int) (hotel.RoomView, error)
}

// Session drives one client through the menus. It is not safe for
// concurrent use; the connection goroutine owns it.
type Session struct {
	l       *logger.Logger
	manager bookingManager
	scanner *bufio.Scanner
	w       io.Writer
	now     func() time.Time

	// page collects notices and the next prompt; it is flushed in one write.
	page  bytes.Buffer
	state state

	hotelIndex int
	current    *hotel.Hotel

	// listing is the snapshot the customer is choosing from.
	listing    []hotel.RoomView
	choice     int
	form       hotel.BookInput
	emailRetry bool
	customer   string
}

func New(l *logger.Logger, manager bookingManager, conn io.ReadWriter) *Session {
	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize) //nolint:gomnd

	//nolint:exhaustruct
	return &Session{
		l:       l,
		manager: manager,
		scanner: scanner,
		w:       conn,
		now:     time.Now,
		state:   stateHome,
	}
}

// Run serves pages until the client quits or the connection fails. A clean
// quit or EOF returns nil.
func (s *Session) Run(ctx context.Context) error {
	for s.state != stateDisconnected {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.render(&s.page)

		if err := s.flush(); err != nil {
			return err
		}

		line, err := s.readLine()
		if errors.Is(err, io.EOF) {
			s.l.LogDebug("Client closed the connection on %s", s.state)

			return nil
		}

		if err != nil {
			return err
		}

		s.handle(ctx, line)
	}

	s.render(&s.page)

	return s.flush()
}

func (s *Session) flush() error {
	if s.page.Len() == 0 {
		return nil
	}

	defer s.page.Reset()

	if _, err := s.w.Write(s.page.Bytes()); err != nil {
		return fmt.Errorf("write page: %w", err)
	}

	return nil
}

func (s *Session) readLine() (string, error) {
	if s.scanner.Scan() {
		return s.scanner.Text(), nil
	}

	if err := s.scanner.Err(); err != nil {
		return "", fmt.Errorf("read line: %w", err)
	}

	return "", io.EOF
}

func (s *Session) handle(ctx context.Context, line string) {
	prev := s.state

	switch s.state {
	case stateHome:
		s.handleHome(line)
	case stateHotelMenu, stateReceipt:
		s.handleMenu(line)
	case stateBookSelect:
		s.handleBookSelect(line)
	case stateBookName:
		s.form.CustomerName = strings.TrimSpace(line)
		s.state = stateBookEmail
	case stateBookEmail:
		s.handleBookEmail(line)
	case stateBookDate:
		s.handleBookDate(line)
	case stateBookDuration:
		s.handleBookDuration(ctx, line)
	case stateRemoveName:
		s.handleRemoveName(line)
	case stateRemoveSelect:
		s.handleRemoveSelect(ctx, line)
	case stateSearchMode:
		s.handleSearchMode(line)
	case stateSearchPrice:
		renderSearchResults(&s.page, s.current.SearchByMaxPrice(atoi(line)))
		s.state = stateAcknowledge
	case stateSearchBeds:
		renderSearchResults(&s.page, s.current.SearchByBeds(atoi(line)))
		s.state = stateAcknowledge
	case stateListBooked, stateListEmpty, stateListAll, stateAcknowledge:
		s.state = stateHotelMenu
	case stateDisconnected:
	}

	if prev != s.state {
		s.l.LogDebug("Page %s -> %s", prev, s.state)
	}
}

func (s *Session) handleHome(line string) {
	n := atoi(line)
	if n < 1 || n > s.manager.Registry().Len() {
		s.state = stateDisconnected

		return
	}

	h, err := s.manager.Registry().Hotel(n - 1)
	if err != nil {
		s.state = stateDisconnected

		return
	}

	s.hotelIndex = n - 1
	s.current = h
	s.state = stateHotelMenu
}

func (s *Session) handleMenu(line string) {
	switch atoi(line) {
	case 0:
		s.state = stateDisconnected
	case optionBook:
		s.listing = s.current.EmptyRooms()
		s.state = stateBookSelect
	case optionBooked:
		s.state = stateListBooked
	case optionEmpty:
		s.state = stateListEmpty
	case optionAll:
		s.state = stateListAll
	case optionRemove:
		s.state = stateRemoveName
	case optionSearch:
		s.state = stateSearchMode
	default:
		s.state = stateHotelMenu
	}
}

func (s *Session) handleBookSelect(line string) {
	n := atoi(line)

	switch {
	case len(s.listing) == 0 || n <= 0:
		s.state = stateHotelMenu
	case n > len(s.listing):
		s.page.WriteString(wrongRoomNotice)
		s.state = stateHotelMenu
	default:
		//nolint:exhaustruct
		s.form = hotel.BookInput{}
		s.choice = n
		s.emailRetry = false
		s.state = stateBookName
	}
}

func (s *Session) handleBookEmail(line string) {
	email := strings.TrimSpace(line)
	if !hotel.ValidEmail(email) {
		s.emailRetry = true

		return
	}

	s.form.CustomerEmail = email
	s.state = stateBookDate
}

func (s *Session) handleBookDate(line string) {
	start, err := time.ParseInLocation(startDateLayout, strings.TrimSpace(line), time.Local)
	if err != nil {
		s.l.LogWarnf("Could not parse start date %q, using today", line)
		s.page.WriteString(badDateNotice)

		now := s.now()
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}

	s.form.StartDate = start
	s.state = stateBookDuration
}

func (s *Session) handleBookDuration(ctx context.Context, line string) {
	s.form.DurationDays = atoi(line)
	s.state = stateHotelMenu

	number := s.listing[s.choice-1].Number

	receipt, err := s.manager.Book(ctx, s.hotelIndex, number, s.form)
	if err != nil {
		s.l.LogInfo("Booking of room %d in %s rejected: %v", number+1, s.current.Name(), err.Error())
		s.page.WriteString(errorText(err))

		return
	}

	fmt.Fprintf(&s.page, "Success: Room %d has been booked by %s (%s)\n", s.choice, s.form.CustomerName, s.form.CustomerEmail)
	fmt.Fprintf(&s.page, "%s\n", receipt)
	s.state = stateReceipt
}

func (s *Session) handleRemoveName(line string) {
	s.customer = strings.TrimSpace(line)
	s.listing = s.current.RoomsBookedBy(s.customer)

	if len(s.listing) == 0 {
		fmt.Fprintf(&s.page, "Sorry, no rooms have been booked by %s\n", s.customer)
		s.state = stateAcknowledge

		return
	}

	s.state = stateRemoveSelect
}

func (s *Session) handleRemoveSelect(ctx context.Context, line string) {
	s.state = stateAcknowledge

	n := atoi(line)
	if n < 1 || n > len(s.listing) {
		s.page.WriteString(wrongRoomNotice)

		return
	}

	if _, err := s.manager.Cancel(ctx, s.hotelIndex, s.customer, s.listing[n-1].Number); err != nil {
		s.page.WriteString(errorText(err))

		return
	}

	fmt.Fprintf(&s.page, "Success: The booking of %s for room %d has been removed!\n", s.customer, n)
}

func (s *Session) handleSearchMode(line string) {
	switch atoi(line) {
	case searchByPrice:
		s.state = stateSearchPrice
	case searchByBeds:
		s.state = stateSearchBeds
	default:
		s.page.WriteString(noRoomsNotice)
		s.state = stateAcknowledge
	}
}

// atoi returns -1 for anything that is not a number.
func atoi(line string) int {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return -1
	}

	return n
}

func errorText(err error) string {
	if inputErr := hotel.IsInputError(err); inputErr != nil {
		return "Error: " + strings.Join(inputErr.Messages(), "; ") + "\n"
	}

	switch {
	case errors.Is(err, hotel.ErrAlreadyBooked):
		return "Error: Sorry, this room has just been booked by another customer.\n"
	case errors.Is(err, hotel.ErrNotOwner):
		return "Error: This booking does not belong to the given customer.\n"
	case errors.Is(err, hotel.ErrInvalidSelection):
		return wrongRoomNotice
	}

	return "Error: " + err.Error() + "\n"
}
