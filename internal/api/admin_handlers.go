package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentacar/internal/db"
	apperrors "rentacar/internal/errors"
	"rentacar/internal/repository"
	"rentacar/internal/service"
)

// AdminHandler serves the administrator area: answering requests and managing
// the fleet.
type AdminHandler struct {
	Requests     *service.RequestService
	Vehicles     *service.VehicleService
	Availability *service.AvailabilityService
}

func NewAdminHandler(requests *service.RequestService, vehicles *service.VehicleService, availability *service.AvailabilityService) *AdminHandler {
	return &AdminHandler{Requests: requests, Vehicles: vehicles, Availability: availability}
}

func (h *AdminHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := repository.RequestFilter(r.URL.Query().Get("filter"))
	if filter == "" {
		filter = repository.FilterAll
	}
	sort := repository.RequestSort(r.URL.Query().Get("sort"))
	if sort == "" {
		sort = repository.SortNewest
	}

	requests, err := h.Requests.ListRequests(filter, sort)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *AdminHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, apperrors.NewValidationError("invalid request id"))
		return
	}
	view, err := h.Requests.GetRequest(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ApproveRequest commits the booking. A 409 with "unavailable" means another
// overlapping request won; the request stays pending and the admin can retry
// with other dates or decline it.
func (h *AdminHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, apperrors.NewValidationError("invalid request id"))
		return
	}
	view, err := h.Requests.Approve(id)
	if err != nil {
		if errors.Is(err, apperrors.ErrVehicleUnavailable) {
			writeJSON(w, http.StatusConflict, map[string]interface{}{
				"error":   apperrors.ErrVehicleUnavailable.Error(),
				"message": "The vehicle is already booked for an overlapping period. Pick another vehicle or period, or decline the request.",
			})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Request approved",
		"request": view,
	})
}

func (h *AdminHandler) DeclineRequest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, apperrors.NewValidationError("invalid request id"))
		return
	}
	view, err := h.Requests.Decline(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Request declined",
		"request": view,
	})
}

func (h *AdminHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, apperrors.NewValidationError("invalid request id"))
		return
	}
	if err := h.Requests.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Request deleted"})
}

func (h *AdminHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("invalid request body"))
		return
	}
	vehicle := db.Vehicle{
		Brand:          req.Brand,
		Model:          req.Model,
		Year:           req.Year,
		PassengerSeats: req.PassengerSeats,
		Description:    req.Description,
		Image:          req.Image,
		PricePerDay:    req.PricePerDay,
	}
	if err := h.Vehicles.CreateVehicle(&vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

func (h *AdminHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, apperrors.NewValidationError("invalid vehicle id"))
		return
	}
	var req VehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("invalid request body"))
		return
	}
	vehicle := db.Vehicle{
		ID:             id,
		Brand:          req.Brand,
		Model:          req.Model,
		Year:           req.Year,
		PassengerSeats: req.PassengerSeats,
		Description:    req.Description,
		Image:          req.Image,
		PricePerDay:    req.PricePerDay,
	}
	if err := h.Vehicles.UpdateVehicle(&vehicle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

func (h *AdminHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, apperrors.NewValidationError("invalid vehicle id"))
		return
	}
	if err := h.Vehicles.DeleteVehicle(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Vehicle deleted"})
}

// ListVehicleBookings shows the committed periods of one vehicle.
func (h *AdminHandler) ListVehicleBookings(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, apperrors.NewValidationError("invalid vehicle id"))
		return
	}
	bookings, err := h.Availability.ListVehicleBookings(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}
