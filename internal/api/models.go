package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	apperrors "rentacar/internal/errors"
)

// Availability
type AvailabilityRequest struct {
	VehicleID int    `json:"vehicle_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Requests
type CreateRequestRequest struct {
	VehicleID    int    `json:"vehicle_id"`
	PickUpDate   string `json:"pick_up_date"`
	ReturnDate   string `json:"return_date"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}

type CreateRequestResponse struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

// Vehicles (admin fleet management)
type VehicleRequest struct {
	Brand          string `json:"brand"`
	Model          string `json:"model"`
	Year           int    `json:"year"`
	PassengerSeats int    `json:"passenger_seats"`
	Description    string `json:"description"`
	Image          string `json:"image"`
	PricePerDay    int    `json:"price_per_day"`
}

const dateLayout = "2006-01-02"

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError maps a service error to its HTTP status through the error
// taxonomy, so a lost booking race renders as 409 and not as a server fault.
// An explicit HTTPError passes through with its own code.
func writeError(w http.ResponseWriter, err error) {
	var httpErr *apperrors.HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = apperrors.FromError(err)
	}
	writeJSON(w, httpErr.Code, map[string]string{"error": httpErr.Message})
}
