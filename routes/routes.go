package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotelops-backend/controllers"
	"hotelops-backend/middleware"
	"hotelops-backend/services"
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

// SetupRouter wires the controllers onto the API surface.
func SetupRouter(
	bc *controllers.BookingController,
	ic *controllers.InvoiceController,
	availability *services.AvailabilityService,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

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
		bookings := api.Group("/bookings")
		{
			bookings.GET("", bc.GetBookings)
			bookings.POST("", bc.CreateBooking)
			bookings.GET("/:id", bc.GetBookingDetails)

			bookings.POST("/:id/approve", bc.ApproveBooking)
			bookings.POST("/:id/reject", bc.RejectBooking)
			bookings.POST("/:id/checkin", bc.CheckInBooking)
			bookings.POST("/:id/checkout", bc.CheckOutBooking)
			bookings.POST("/:id/cancel", bc.CancelBooking)

			bookings.GET("/:id/charges", bc.GetCharges)
			bookings.POST("/:id/charges", bc.AddCharge)
			bookings.GET("/:id/invoices", ic.GetInvoicesByBooking)
			bookings.GET("/:id/audit", bc.GetAuditTrail)
		}

		invoices := api.Group("/invoices")
		{
			invoices.GET("/:id", ic.GetInvoice)
		}

		customers := api.Group("/customers")
		{
			customers.GET("", controllers.GetCustomers)
			customers.GET("/:id", controllers.GetCustomerByID)
			customers.POST("", controllers.CreateCustomer)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", controllers.GetRooms)
			rooms.POST("", controllers.CreateRoom)
			rooms.PATCH("/:id", controllers.UpdateRoom)
			rooms.PUT("/:id", controllers.UpdateRoom)
			rooms.GET("/:id/availability", controllers.RoomAvailability(availability))
		}

		roomTypes := api.Group("/room-types")
		{
			roomTypes.GET("", controllers.GetRoomTypes)
			roomTypes.POST("", controllers.CreateRoomType)
			roomTypes.DELETE("/:id", controllers.DeleteRoomType)
		}

		settings := api.Group("/settings")
		{
			settings.GET("/hotel", controllers.GetHotelSettings)
			settings.PUT("/hotel", controllers.UpdateHotelSettings)
		}
	}

	return r
}
