package web

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// occupancy is the public view of one hotel. Customer data is never exposed.
type occupancy struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Rating   int    `json:"rating"`
	Rooms    int    `json:"rooms"`
	Booked   int    `json:"booked"`
	Empty    int    `json:"empty"`
}

func (s *Server) hotelsHandler(w http.ResponseWriter, _ *http.Request) {
	hotels := s.hotels.Hotels()
	out := make([]occupancy, 0, len(hotels))

	for _, h := range hotels {
		rooms := h.Rooms()

		var booked int

		for _, r := range rooms {
			if r.IsBooked() {
				booked++
			}
		}

		out = append(out, occupancy{
			Name:     h.Name(),
			Location: h.Location(),
			Rating:   h.Rating(),
			Rooms:    len(rooms),
			Booked:   booked,
			Empty:    len(rooms) - booked,
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(out); err != nil {
		s.l.LogErrorf("Could not encode hotels occupancy: %v", err.Error())
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (s *Server) livenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addRoutes(r *http.ServeMux) {
	r.Handle(
		"GET /api/hotels/v1",
		s.applyMiddlewares(http.HandlerFunc(s.hotelsHandler), s.loggerMiddleware(), s.recoverMiddleware(), s.traceMiddleware()),
	)
	r.Handle(
		fmt.Sprintf("GET %s", s.conf.LivenessEndpoint),
		s.applyMiddlewares(http.HandlerFunc(s.livenessHandler), s.loggerMiddleware(), s.recoverMiddleware(), s.traceMiddleware()),
	)
}
