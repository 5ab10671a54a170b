package routes

import (
	"github.com/gin-gonic/gin"

	"accountd/internal/handlers"
)

func SetupRoutes(
	r *gin.Engine,
	registerHandler *handlers.RegisterHandler,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	healthHandler *handlers.HealthHandler,
	devHandler *handlers.DevHandler, // nil в production
) *gin.Engine {

	// ---- public
	r.GET("/health", healthHandler.Health)
	r.POST("/login", authHandler.Login)
	r.POST("/register", registerHandler.Register)
	r.POST("/register/init", registerHandler.Init)
	r.POST("/register/confirm", registerHandler.Confirm)
	r.POST("/register/resend", registerHandler.Resend)
	r.GET("/users", userHandler.ListUsers)

	// ---- dev-only
	if devHandler != nil {
		dev := r.Group("/dev")
		{
			dev.DELETE("/records", devHandler.PurgeRecords)
		}
	}

	return r
}
