package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	appconfig "hotelops-backend/config"
	"hotelops-backend/controllers"
	"hotelops-backend/events"
	"hotelops-backend/routes"
	"hotelops-backend/scheduler"
	"hotelops-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println(".env not found or couldn't load it; continuing with environment variables")
	}

	// Connect database (config.ConnectDatabase sets config.DB)
	if err := appconfig.ConnectDatabase(); err != nil {
		log.Fatalf("Database connect failed: %v", err)
	}
	db := appconfig.DB
	if db == nil {
		log.Fatal("config.DB is nil after ConnectDatabase()")
	}
	log.Println("Database connection established and migrations applied")

	policy := appconfig.LoadBookingPolicy()

	// Redis is optional; without it event dedup is skipped.
	rdb := appconfig.NewRedisClient()
	if rdb == nil {
		log.Println("Redis unreachable; publishing events without dedup")
	}
	publisher := events.NewPublisher(rdb)

	// Initialize services
	availabilitySvc := services.NewAvailabilityService(db)
	paymentSvc := services.NewPaymentService(db)
	invoiceSvc := services.NewInvoiceService(db, policy.TaxRate)
	bookingSvc := services.NewBookingService(db, policy, availabilitySvc, paymentSvc, invoiceSvc, publisher)

	// Initialize controllers
	bookingController := controllers.NewBookingController(bookingSvc)
	invoiceController := controllers.NewInvoiceController(invoiceSvc)

	// Background jobs
	cronHandle := scheduler.Start(bookingSvc)

	// Build router
	router := routes.SetupRouter(bookingController, invoiceController, availabilitySvc)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutdown signal received, shutting down server...")

	cronHandle.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped gracefully")
}
