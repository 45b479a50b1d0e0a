package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/stripe/stripe-go/v78"

	"rentacar/internal/api"
	"rentacar/internal/repository"
	"rentacar/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	stripe.Key = os.Getenv("STRIPE_API_KEY")

	vehicleRepo := repository.NewVehicleRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	adminAuthRepo := repository.NewAdminAuthRepository(db)
	jobRepo := repository.NewJobRepository(db)

	sender := service.NewSenderService()
	payments := service.NewPaymentService()
	availabilitySvc := service.NewAvailabilityService(bookingRepo, vehicleRepo)
	vehicleSvc := service.NewVehicleService(vehicleRepo)
	requestSvc := service.NewRequestService(requestRepo, vehicleRepo, sender, payments)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo)
	jobSvc := service.NewJobService(jobRepo)

	userHandler := api.NewUserRequestHandler(requestSvc, availabilitySvc, vehicleSvc)
	adminHandler := api.NewAdminHandler(requestSvc, vehicleSvc, availabilitySvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)

	// Registration is admin-only; the first account is seeded from the
	// environment so a fresh deployment can log in.
	if email := os.Getenv("ADMIN_EMAIL"); email != "" {
		if err := adminAuthSvc.EnsureAdmin(email, os.Getenv("ADMIN_PASSWORD")); err != nil {
			log.Fatalf("Failed to seed admin account: %v", err)
		}
	}

	// Stale pending requests can never be approved anymore; sweep them daily.
	c := cron.New()
	if _, err := c.AddFunc("@daily", func() {
		if err := jobSvc.PurgeStalePendingRequests(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule cron job: %v", err)
	}
	c.Start()
	defer c.Stop()

	r := api.NewRouter(userHandler, adminHandler, adminAuthHandler)

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-User-ID"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, corsHandler(r))))
}
