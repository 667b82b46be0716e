package routes

import (
	"github.com/gin-gonic/gin"

	"bookingapp/internal/handlers"
	"bookingapp/internal/middleware"
	"bookingapp/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	userService services.UserService,
	authHandler *handlers.AuthHandler,
	verifyHandler *handlers.VerifyHandler,
	userHandler *handlers.UserHandler,
	eventHandler *handlers.EventHandler,
	bookingHandler *handlers.BookingHandler,
) *gin.Engine {

	api := r.Group("/api/v1")

	// ---- public auth
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/confirm_otp", verifyHandler.ConfirmOTP)
		auth.POST("/resend_otp", verifyHandler.ResendOTP)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/test", authHandler.Test)
	}

	// ---- profile + user management (token required)
	account := api.Group("/auth", middleware.AuthRequired(userService))
	{
		account.GET("/profile", userHandler.Profile)
		account.PUT("/profile", userHandler.UpdateProfile)
		account.DELETE("/profile", middleware.AdminRequired(), userHandler.DeleteProfile)

		account.GET("/users/:id", userHandler.GetUserByID)

		admin := account.Group("", middleware.AdminRequired())
		{
			admin.GET("/users", userHandler.ListUsers)
			admin.GET("/users/active", userHandler.ListActiveUsers)
			admin.GET("/users/inactive", userHandler.ListInactiveUsers)
			admin.GET("/users/verified", userHandler.ListVerifiedUsers)
			admin.GET("/users/unverified", userHandler.ListUnverifiedUsers)
			admin.GET("/admins", userHandler.ListAdmins)

			admin.PUT("/users/:id", userHandler.UpdateUser)
			admin.DELETE("/users/:id", userHandler.DeleteUser)
			admin.PATCH("/users/:id/admin", userHandler.MakeAdmin)
			admin.DELETE("/users/:id/admin", userHandler.RemoveAdmin)
			admin.PATCH("/users/:id/activate", userHandler.ActivateUser)
			admin.PATCH("/users/:id/deactivate", userHandler.DeactivateUser)
		}
	}

	// ---- events: reads are public, writes are admin-only
	events := api.Group("/event")
	{
		events.GET("", eventHandler.List)
		events.GET("/upcoming", eventHandler.ListUpcoming)
		events.GET("/test", eventHandler.Test)
		events.GET("/:event_id", eventHandler.GetByID)

		manage := events.Group("", middleware.AuthRequired(userService), middleware.AdminRequired())
		{
			manage.POST("", eventHandler.Create)
			manage.PUT("/:event_id", eventHandler.Update)
			manage.PATCH("/:event_id", eventHandler.Update)
			manage.DELETE("/:event_id", eventHandler.Delete)
		}
	}

	// ---- bookings (token required); :id is the event for GET/POST and the
	// booking for PUT/DELETE/ticket, matching the original route shape
	bookings := api.Group("/booking", middleware.AuthRequired(userService))
	{
		bookings.GET("/:id", bookingHandler.GetBookings)
		bookings.POST("/:id", bookingHandler.CreateBooking)
		bookings.PUT("/:id", bookingHandler.ReassignBooking)
		bookings.DELETE("/:id", bookingHandler.DeleteBooking)
		bookings.GET("/:id/ticket", bookingHandler.Ticket)
	}

	return r
}
