package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/config"
	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/http/handlers"
	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/http/middleware"
	"github.com/AlejoooE764/Login-definitivo-NutriFit/internal/services"
)

type Dependencies struct {
	Config      *config.Config
	AuthService *services.AuthService
	Logger      *slog.Logger
}

func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(deps.Config.AllowedOrigins))

	authHandler := handlers.NewAuthHandler(
		deps.AuthService,
		deps.Config.SessionCookie,
		int(deps.Config.SessionTTL.Seconds()),
		deps.Config.CookieSecure,
	)
	meHandler := handlers.NewMeHandler()

	router.GET("/healthz", handlers.Health)

	api := router.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.POST("/recover-username", authHandler.RecoverUsername)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
	}

	protected := api.Group("")
	protected.Use(middleware.SessionAuth(deps.Config.SessionCookie, deps.AuthService))
	{
		protected.GET("/me", meHandler.GetMe)
	}

	return router
}
