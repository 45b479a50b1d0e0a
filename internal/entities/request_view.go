package entities

import (
	"time"

	"rentacar/internal/db"
)

// RequestView is a request joined with its vehicle, the shape the listing and
// detail endpoints render.
type RequestView struct {
	ID            int             `json:"id"`
	UserID        string          `json:"user_id"`
	PickUpDate    time.Time       `json:"pick_up_date"`
	ReturnDate    time.Time       `json:"return_date"`
	DateOfRequest time.Time       `json:"date_of_request"`
	State         db.RequestState `json:"state"`
	ContactName   string          `json:"contact_name"`
	ContactEmail  string          `json:"contact_email"`
	ContactPhone  string          `json:"contact_phone"`
	Vehicle       db.Vehicle      `json:"vehicle"`
}

// RequestEmailData feeds the notification templates sent when a request is
// answered.
type RequestEmailData struct {
	UserName        string
	RequestID       int
	VehicleBrand    string
	VehicleModel    string
	PickUpFormatted string
	ReturnFormatted string
	Status          string
	PaymentURL      string
	CurrentYear     int
}
