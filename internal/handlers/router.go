package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/executivemachines/rental-api/internal/middleware"
)

// RegisterRoutes wires every route onto the engine. Guarded routes are
// exactly the ones the frontend calls with a token; the rest stay open,
// including the user/booking mutation routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	guard := middleware.AuthMiddleware([]byte(h.Cfg.JWTSecret))

	// Tokens
	r.POST("/jwt", h.IssueToken)

	// Products
	r.GET("/products", h.ListProducts)
	r.GET("/reservation/:id", h.GetReservation)

	// Users
	r.POST("/users", h.CreateUser)
	r.GET("/manageUser", guard, h.ListUsers)
	r.PATCH("/users/:id", guard, h.PromoteUser)
	r.DELETE("/users/:id", h.DeleteUser)
	r.GET("/users/admin/:email", guard, h.GetUserRole)

	// Bookings
	r.POST("/booking", h.CreateBooking)
	r.GET("/booking/:id", h.GetBooking)
	r.DELETE("/booking/:id", h.DeleteBooking)
	r.PATCH("/booking/:id", h.MarkBookingPaid)
	r.GET("/bookings/user", guard, h.ListUserBookings)

	// Payment flow
	r.POST("/bookings", h.StartPayment)
	r.POST("/payment/success", h.PaymentSuccess)
	r.POST("/payment/fail", h.PaymentFail)

	// Reviews
	r.POST("/review", h.CreateReview)
	r.GET("/review", h.ListReviews)
	r.GET("/review/user/:email", guard, h.ListUserReviews)
}
