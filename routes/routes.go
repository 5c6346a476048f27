package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"stayfinder-backend/controllers"
	"stayfinder-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controller instances onto the route tree.
func SetupRouter(
	pc *controllers.PropertyController,
	bc *controllers.BookingController,
	payc *controllers.PaymentController,
	ac *controllers.AddonController,
	gc *controllers.GuestController,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// The payment gateway expects 405 on non-POST webhook calls.
	r.HandleMethodNotAllowed = true

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		properties := api.Group("/properties")
		{
			properties.GET("", pc.GetProperties)
			properties.GET("/:id", pc.GetPropertyByID)
			properties.GET("/:id/availability", pc.CheckAvailability)
			properties.POST("", pc.CreateProperty)
			properties.PUT("/:id", pc.UpdateProperty)
			properties.PATCH("/:id", pc.UpdateProperty)
			properties.DELETE("/:id", pc.DeleteProperty)
		}

		addons := api.Group("/addons")
		{
			addons.GET("", ac.GetAddons)
			addons.POST("", ac.CreateAddon)
		}

		guests := api.Group("/guests")
		{
			guests.POST("", gc.CreateGuest)
			guests.GET("/:id", gc.GetGuestByID)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBookingDetails)
			bookings.PATCH("/:id/confirm", bc.ConfirmBooking)
			bookings.PATCH("/:id/cancel", bc.CancelBooking)
		}

		api.POST("/pricing/quote", bc.QuoteBooking)

		payments := api.Group("/payments")
		{
			payments.POST("/checkout", payc.CreateCheckout)
			payments.POST("/:id/confirm", payc.ConfirmPayment)
			payments.GET("/:id", payc.GetPayment)
		}

		api.POST("/webhooks/payment", payc.HandleGatewayWebhook)
	}

	return r
}
