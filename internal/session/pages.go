package session

import (
	"fmt"
	"io"

	"github.com/avstrong/hotelserver/internal/hotel"
)

const (
	promptBack      = "Enter 0 to go back: "
	promptRoom      = "Select Room: "
	noRoomsNotice   = "Sorry, There Are No Rooms Available.\n"
	wrongRoomNotice = "Sorry, Wrong Room Number.\n"
	badDateNotice   = "Invalid date format. Automatically setting today as the booking start date.\n"
	disconnected    = "Disconnected"
)

func (s *Session) render(w io.Writer) {
	switch s.state {
	case stateHome:
		s.renderHome(w)
	case stateHotelMenu:
		s.renderHotelMenu(w)
	case stateBookSelect:
		if len(s.listing) == 0 {
			fmt.Fprint(w, noRoomsNotice+promptBack)

			return
		}

		renderListing(w, s.listing)
		fmt.Fprint(w, promptRoom)
	case stateBookName:
		fmt.Fprint(w, "Enter Customer Full Name: ")
	case stateBookEmail:
		if s.emailRetry {
			fmt.Fprint(w, "Please provide a valid email address: \n")

			return
		}

		fmt.Fprint(w, "Enter Contact Information (Email Address): ")
	case stateBookDate:
		fmt.Fprint(w, "Enter Booking Start Date: ")
	case stateBookDuration:
		fmt.Fprint(w, "Enter Duration in Days: ")
	case stateReceipt:
		// The receipt notice is the whole page.
	case stateListBooked:
		fmt.Fprint(w, "...Booked Rooms...\n")
		renderRoomsOr(w, s.current.BookedRooms(), "There Are No Booked Rooms.\n")
		fmt.Fprint(w, promptBack)
	case stateListEmpty:
		fmt.Fprint(w, "...Empty Rooms...\n")
		renderRoomsOr(w, s.current.EmptyRooms(), noRoomsNotice)
		fmt.Fprint(w, promptBack)
	case stateListAll:
		fmt.Fprint(w, "...All Rooms...\n")
		renderRoomsOr(w, s.current.Rooms(), noRoomsNotice)
		fmt.Fprint(w, promptBack)
	case stateRemoveName:
		fmt.Fprint(w, "...Remove Customer Booking...\nEnter Customer Name: ")
	case stateRemoveSelect:
		renderListing(w, s.listing)
		fmt.Fprint(w, "Please indicate the room you wish to clear.\n"+promptRoom)
	case stateSearchMode:
		fmt.Fprint(w, "1: Search For Rooms Based On Price\n2: Search For Rooms Based On Number Of Beds\nInput Command: ")
	case stateSearchPrice:
		fmt.Fprint(w, "Enter Max Price: \n")
	case stateSearchBeds:
		fmt.Fprint(w, "Enter Number Of Beds: \n")
	case stateAcknowledge:
		fmt.Fprint(w, promptBack)
	case stateDisconnected:
		fmt.Fprint(w, disconnected)
	}
}

func (s *Session) renderHome(w io.Writer) {
	fmt.Fprint(w, "..........*W*E*L*C*O*M*E*.........\n")
	fmt.Fprint(w, "Thank you for choosing CEO-Tourism.gr for your stay!\n")
	fmt.Fprint(w, "..................................\n")
	fmt.Fprint(w, "Please select a hotel.\n")
	fmt.Fprint(w, "Note: You can always enter 0 to quit.\n\n")

	for i, h := range s.manager.Registry().Hotels() {
		fmt.Fprintf(w, "%d: %s\n\n", i+1, h)
	}

	fmt.Fprint(w, "Select Hotel: ")
}

func (s *Session) renderHotelMenu(w io.Writer) {
	fmt.Fprintf(w, "......%s......\n", s.current.Name())
	fmt.Fprint(w, "Note: You can always enter 0 to go back to the previous menu or to cancel a booking.\n\n")
	fmt.Fprint(w, "1: Book New Room\n")
	fmt.Fprint(w, "2: Display Booked Rooms\n")
	fmt.Fprint(w, "3: Display Empty Rooms\n")
	fmt.Fprint(w, "4: View All Rooms\n")
	fmt.Fprint(w, "5: Clear Customer Booking\n")
	fmt.Fprint(w, "6: Search For Rooms\n")
	fmt.Fprint(w, "0: Quit\n")
	fmt.Fprint(w, "Select Option: ")
}

// renderListing numbers rooms from 1 in listing order. Those numbers are
// what the customer answers with.
func renderListing(w io.Writer, rooms []hotel.RoomView) {
	for i, r := range rooms {
		fmt.Fprintf(w, "%d: %s\n\n", i+1, r.Room)
	}
}

func renderRoomsOr(w io.Writer, rooms []hotel.RoomView, empty string) {
	if len(rooms) == 0 {
		fmt.Fprint(w, empty)

		return
	}

	renderListing(w, rooms)
}

// renderSearchResults lists matches without selection numbers.
func renderSearchResults(w io.Writer, rooms []hotel.RoomView) {
	if len(rooms) == 0 {
		fmt.Fprint(w, noRoomsNotice)

		return
	}

	for _, r := range rooms {
		fmt.Fprintf(w, "%s\n", r.Room)
	}
}
