package db

import "time"

// Vehicle is a car in the rental fleet. Managed by the admin area; the
// reservation core only needs its identity and the daily price.
type Vehicle struct {
	ID             int    `json:"id"`
	Brand          string `json:"brand"`
	Model          string `json:"model"`
	Year           int    `json:"year"`
	PassengerSeats int    `json:"passenger_seats"`
	Description    string `json:"description"`
	Image          string `json:"image"`
	PricePerDay    int    `json:"price_per_day"`
}

// BookingPeriod is a committed reservation of a vehicle over the half-open
// range [StartDate, EndDate). Rows are only ever written by an approval;
// the schema-level exclusion constraint keeps periods for the same vehicle
// from overlapping no matter how many approvals run at once.
type BookingPeriod struct {
	ID        int `json:"id"`
	VehicleID int `json:"vehicle_id"`
	// RequestID links back to the request whose approval created the booking,
	// so deleting an approved request can release its period.
	RequestID int       `json:"request_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Request is a rental proposal. Several pending requests may compete for the
// same vehicle and overlapping dates; at most one of them is ever approved.
type Request struct {
	ID            int          `json:"id"`
	VehicleID     int          `json:"vehicle_id"`
	UserID        string       `json:"user_id"`
	PickUpDate    time.Time    `json:"pick_up_date"`
	ReturnDate    time.Time    `json:"return_date"`
	DateOfRequest time.Time    `json:"date_of_request"`
	State         RequestState `json:"state"`

	// Contact data for notifications. The core never interprets these, it
	// only hands them to the email/SMS senders.
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
}
