package api

import (
	"github.com/gorilla/mux"

	"rentacar/internal/auth"
)

// NewRouter wires the public, user and admin route groups. Registration lives
// inside the protected group: new admin accounts can only be created by an
// existing admin, the first one is seeded at startup.
func NewRouter(user *UserRequestHandler, admin *AdminHandler, adminAuth *AdminAuthHandler) *mux.Router {
	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/vehicles", user.ListVehicles).Methods("GET")
	r.HandleFunc("/api/vehicles/available", user.ListAvailableVehicles).Methods("GET")
	r.HandleFunc("/api/availability", user.CheckAvailability).Methods("POST")

	// User endpoints (identity injected by the auth proxy)
	userRoutes := r.PathPrefix("/api/requests").Subrouter()
	userRoutes.Use(auth.UserIdentityMiddleware)
	userRoutes.HandleFunc("", user.CreateRequest).Methods("POST")
	userRoutes.HandleFunc("", user.ListMyRequests).Methods("GET")
	userRoutes.HandleFunc("/{id}", user.GetRequest).Methods("GET")
	userRoutes.HandleFunc("/{id}", user.DeleteRequest).Methods("DELETE")

	// Admin auth
	r.HandleFunc("/admin/login", adminAuth.Login).Methods("POST")

	// Admin endpoints (protected)
	adminRoutes := r.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(auth.AdminAuthMiddleware)
	adminRoutes.HandleFunc("/register", adminAuth.CreateAdmin).Methods("POST")
	adminRoutes.HandleFunc("/requests", admin.ListRequests).Methods("GET")
	adminRoutes.HandleFunc("/requests/{id}", admin.GetRequest).Methods("GET")
	adminRoutes.HandleFunc("/requests/{id}/approve", admin.ApproveRequest).Methods("POST")
	adminRoutes.HandleFunc("/requests/{id}/decline", admin.DeclineRequest).Methods("POST")
	adminRoutes.HandleFunc("/requests/{id}", admin.DeleteRequest).Methods("DELETE")
	adminRoutes.HandleFunc("/vehicles", admin.CreateVehicle).Methods("POST")
	adminRoutes.HandleFunc("/vehicles/{id}", admin.UpdateVehicle).Methods("PUT")
	adminRoutes.HandleFunc("/vehicles/{id}", admin.DeleteVehicle).Methods("DELETE")
	adminRoutes.HandleFunc("/vehicles/{id}/bookings", admin.ListVehicleBookings).Methods("GET")

	return r
}
