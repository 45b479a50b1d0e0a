package entities

import "time"

// AvailabilityResponse answers "is this vehicle free over [start, end)".
type AvailabilityResponse struct {
	VehicleID          int       `json:"vehicle_id"`
	RequestedStartDate time.Time `json:"requested_start_date"`
	RequestedEndDate   time.Time `json:"requested_end_date"`
	Available          bool      `json:"available"`
}
