package routes

import (
	"net/http"
	"time"

	"cardoctor/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options controls route registration.
type Options struct {
	// Auth guards GET /bookings, and PATCH/DELETE when EnforceBookingOwnership is set.
	Auth                    gin.HandlerFunc
	EnforceBookingOwnership bool
	CORSOrigins             []string
}

// RegisterTokenRoutes registers the token endpoint.
func RegisterTokenRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.POST("/jwt", hb.IssueTokenHandler)
}

// RegisterServiceRoutes registers the public catalog endpoints.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/services")
	{
		api.GET("", hb.ListServicesHandler)
		api.GET("/:id", hb.GetServiceHandler)
	}
}

// RegisterBookingRoutes registers booking endpoints. Only listing requires a
// token unless ownership enforcement is on.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	api := r.Group("/bookings")
	{
		api.GET("", opts.Auth, hb.ListBookingsHandler)
		api.POST("", hb.CreateBookingHandler)

		if opts.EnforceBookingOwnership {
			protected := api.Group("")
			protected.Use(opts.Auth)
			protected.PATCH("/:id", hb.UpdateBookingStatusHandler)
			protected.DELETE("/:id", hb.DeleteBookingHandler)
		} else {
			api.PATCH("/:id", hb.UpdateBookingStatusHandler)
			api.DELETE("/:id", hb.DeleteBookingHandler)
		}
	}
}

// RegisterHealthRoutes registers liveness, health and metrics endpoints.
func RegisterHealthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/", hb.LivenessHandler)
	if hb.HealthHandler != nil {
		r.GET("/health", hb.HealthHandler)
	}
	if hb.MetricsHandler != nil {
		r.GET("/metrics", hb.MetricsHandler)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	corsConfig := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = origins
	}
	r.Use(cors.New(corsConfig))

	RegisterTokenRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterBookingRoutes(r, hb, opts)
	RegisterHealthRoutes(r, hb)
}
