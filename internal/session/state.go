package session

type state int

const (
	stateHome state = iota
	stateHotelMenu
	stateBookSelect
	stateBookName
	stateBookEmail
	stateBookDate
	stateBookDuration
	stateReceipt
	stateListBooked
	stateListEmpty
	stateListAll
	stateRemoveName
	stateRemoveSelect
	stateSearchMode
	stateSearchPrice
	stateSearchBeds
	stateAcknowledge
	stateDisconnected
)

var stateNames = map[state]string{
	stateHome:         "home",
	stateHotelMenu:    "hotel-menu",
	stateBookSelect:   "book-select",
	stateBookName:     "book-name",
	stateBookEmail:    "book-email",
	stateBookDate:     "book-date",
	stateBookDuration: "book-duration",
	stateReceipt:      "receipt",
	stateListBooked:   "list-booked",
	stateListEmpty:    "list-empty",
	stateListAll:      "list-all",
	stateRemoveName:   "remove-name",
	stateRemoveSelect: "remove-select",
	stateSearchMode:   "search-mode",
	stateSearchPrice:  "search-price",
	stateSearchBeds:   "search-beds",
	stateAcknowledge:  "acknowledge",
	stateDisconnected: "disconnected",
}

func (s state) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	return "unknown"
}

// Hotel menu options. 0 quits.
const (
	optionBook   = 1
	optionBooked = 2
	optionEmpty  = 3
	optionAll    = 4
	optionRemove = 5
	optionSearch = 6
)

const (
	searchByPrice = 1
	searchByBeds  = 2
)
