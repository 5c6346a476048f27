package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"stayfinder-backend/config"
	"stayfinder-backend/controllers"
	"stayfinder-backend/routes"
	"stayfinder-backend/services"
)

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// The webhook handler cannot verify anything without the shared secret.
	webhookSecret := os.Getenv("RAZORPAY_WEBHOOK_SECRET")
	if webhookSecret == "" {
		log.Fatal("❌ ERROR: RAZORPAY_WEBHOOK_SECRET environment variable is not set. Cannot verify gateway webhooks.")
	}
	log.Println("✅ RAZORPAY_WEBHOOK_SECRET detected.")

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	if strings.EqualFold(os.Getenv("SEED_ON_BOOT"), "true") {
		if err := config.SeedDatabase(db); err != nil {
			log.Fatalf("❌ Seeding failed: %v", err)
		}
		log.Println("✅ Demo data seeded.")
	}

	// Initialize services
	propertyService := services.NewPropertyService(db)
	availabilityService := services.NewAvailabilityService(db)
	bookingService := services.NewBookingService(db)
	paymentService := services.NewPaymentService(db, webhookSecret)
	addonService := services.NewAddonService(db)
	guestService := services.NewGuestService(db)

	// Initialize controllers
	propertyController := controllers.NewPropertyController(propertyService, availabilityService)
	bookingController := controllers.NewBookingController(bookingService)
	paymentController := controllers.NewPaymentController(paymentService)
	addonController := controllers.NewAddonController(addonService)
	guestController := controllers.NewGuestController(guestService)

	// Build router
	router := routes.SetupRouter(propertyController, bookingController, paymentController, addonController, guestController)

	// Port from env (prefer), fallback to 8080
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
		// useful timeouts
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
