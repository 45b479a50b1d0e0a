package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"rentacar/internal/auth"
	apperrors "rentacar/internal/errors"
	"rentacar/internal/service"
)

// UserRequestHandler serves the requester-facing endpoints: browsing
// availability and managing their own rental requests.
type UserRequestHandler struct {
	Requests     *service.RequestService
	Availability *service.AvailabilityService
	Vehicles     *service.VehicleService
}

func NewUserRequestHandler(requests *service.RequestService, availability *service.AvailabilityService, vehicles *service.VehicleService) *UserRequestHandler {
	return &UserRequestHandler{Requests: requests, Availability: availability, Vehicles: vehicles}
}

func (h *UserRequestHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.Vehicles.ListVehicles()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

// ListAvailableVehicles answers "which vehicles are free over this period",
// one overlap check per vehicle across the fleet.
func (h *UserRequestHandler) ListAvailableVehicles(w http.ResponseWriter, r *http.Request) {
	start, err := parseDate(r.URL.Query().Get("start_date"))
	if err != nil {
		writeError(w, apperrors.NewValidationError("invalid start_date, expected YYYY-MM-DD"))
		return
	}
	end, err := parseDate(r.URL.Query().Get("end_date"))
	if err != nil {
		writeError(w, apperrors.NewValidationError("invalid end_date, expected YYYY-MM-DD"))
		return
	}

	vehicles, err := h.Availability.ListAvailableVehicles(start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vehicles)
}

func (h *UserRequestHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req AvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("invalid request body"))
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		writeError(w, apperrors.NewValidationError("invalid start_date, expected YYYY-MM-DD"))
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		writeError(w, apperrors.NewValidationError("invalid end_date, expected YYYY-MM-DD"))
		return
	}

	resp, err := h.Availability.CheckAvailability(req.VehicleID, start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *UserRequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewValidationError("invalid request body"))
		return
	}
	pickUp, err := parseDate(req.PickUpDate)
	if err != nil {
		writeError(w, apperrors.NewValidationError("invalid pick_up_date, expected YYYY-MM-DD"))
		return
	}
	ret, err := parseDate(req.ReturnDate)
	if err != nil {
		writeError(w, apperrors.NewValidationError("invalid return_date, expected YYYY-MM-DD"))
		return
	}

	created, err := h.Requests.CreateRequest(service.CreateRequestInput{
		UserID:       auth.UserID(r),
		VehicleID:    req.VehicleID,
		PickUpDate:   pickUp,
		ReturnDate:   ret,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, CreateRequestResponse{
		ID:      created.ID,
		Message: "Request submitted, awaiting approval.",
	})
}

func (h *UserRequestHandler) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Requests.ListUserRequests(auth.UserID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, requests)
}

func (h *UserRequestHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
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
	// Users only see their own requests; admins go through /admin.
	if view.UserID != auth.UserID(r) {
		writeError(w, apperrors.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *UserRequestHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
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
	if view.UserID != auth.UserID(r) {
		writeError(w, apperrors.ErrNotFound)
		return
	}
	if err := h.Requests.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Request deleted"})
}
