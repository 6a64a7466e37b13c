package routes

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"natura-salon-backend/config"
	"natura-salon-backend/controllers"
	"natura-salon-backend/services"
	"natura-salon-backend/utils"
)

func SetupRouter(cfg *config.Config, reservations *services.ReservationService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(cfg.App.AllowedOrigins)))
	r.Use(config.PerformanceLogger())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "The requested endpoint does not exist",
		})
	})

	r.GET("/healthz", controllers.Health(reservations))

	authController := &controllers.AuthController{Config: cfg.Auth}
	reservationController := &controllers.ReservationController{
		Service:       reservations,
		ExposeDetails: !cfg.IsProduction(),
	}
	menuController := &controllers.MenuController{Mode: cfg.Menu.Mode, Items: cfg.Menu.Items}

	adminOnly := func(c *gin.Context) { c.Next() }
	if cfg.Auth.JWTSecret != "" {
		adminOnly = utils.AuthMiddleware(cfg.Auth.JWTSecret)
	} else {
		log.Warn().Msg("JWT_SECRET is not set; reservation admin routes are unauthenticated")
	}

	auth := r.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.GET("/me", adminOnly, authController.Me)
	}

	api := r.Group("/api")
	{
		api.GET("/menus", menuController.GetMenus)

		// Public booking form
		api.POST("/reservations", reservationController.CreateReservation)

		reservationsAdmin := api.Group("/reservations", adminOnly)
		{
			reservationsAdmin.GET("", reservationController.GetReservations)
			reservationsAdmin.GET("/:id", reservationController.GetReservation)
			reservationsAdmin.DELETE("/:id", reservationController.DeleteReservation)
		}
	}

	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type", config.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", config.RequestIDHeader},
	}

	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
