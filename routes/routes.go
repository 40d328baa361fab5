package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"stayadmin/config"
	"stayadmin/handlers"
	"stayadmin/middleware"
	"stayadmin/utils"
)

// HandlerBundle groups the view handlers and the session store the routes need.
type HandlerBundle struct {
	Auth           *handlers.AuthHandler
	Accommodations *handlers.AccommodationHandler
	Reservations   *handlers.ReservationHandler
	Calendar       *handlers.CalendarHandler
	Search         *handlers.SearchHandler
	Status         *handlers.StatusHandler
	Sessions       utils.SessionStore
}

// RegisterCORS allows the console frontend origin.
func RegisterCORS(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppConfig.FrontendOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

// RegisterAuthRoutes registers login and logout.
func RegisterAuthRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.Auth.Login)

		api.Use(middleware.SessionAuth(hb.Sessions))
		api.POST("/logout", hb.Auth.Logout)
	}
}

// RegisterConsoleRoutes registers every authenticated admin view.
func RegisterConsoleRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api", middleware.SessionAuth(hb.Sessions))
	{
		api.GET("/accommodations", hb.Accommodations.List)
		api.GET("/accommodations/:id", hb.Accommodations.Get)
		api.POST("/accommodations", hb.Accommodations.Create)
		api.PUT("/accommodations/:id", hb.Accommodations.Update)
		api.POST("/accommodations/image", hb.Accommodations.UploadImage)

		api.GET("/reservations", hb.Reservations.List)
		api.POST("/reservations", hb.Reservations.Create)
		api.PUT("/reservations/:id", hb.Reservations.Update)
		api.PATCH("/reservations/:id/status", hb.Reservations.SetStatus)

		api.GET("/calendar", hb.Calendar.Month)
		api.GET("/search", hb.Search.ByRange)
		api.GET("/status", hb.Status.Status)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "stayadmin console"})
	})
}
