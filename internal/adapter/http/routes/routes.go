package routes

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	_ "laboratorio_dental/docs"
	request "laboratorio_dental/internal/adapter/http/dto/request"
	"laboratorio_dental/internal/adapter/http/handlers"
	"laboratorio_dental/internal/adapter/http/middleware"
	"laboratorio_dental/internal/infrastructure/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Orders        *handlers.OrderHandler
	Ledger        *handlers.LedgerHandler
	Doctors       *handlers.DoctorHandler
	Notifications *handlers.NotificationHandler
	Auth          *handlers.AuthHandler
	Sweeps        *handlers.SweepHandler
}

// NewRouter builds the gin engine with the middleware chain and all /v1 routes.
func NewRouter(cfg *config.Config, logger *slog.Logger, h Handlers, tokens middleware.TokenParser) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	request.RegisterValidators()

	router := gin.New()
	setMiddlewares(router, cfg, logger)

	if !cfg.IsProduction {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	loginLimiter := middleware.NewIPRateLimiter(cfg.LoginRatePerSecond, cfg.LoginRateBurst)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addAuthRoutes(v1, h.Auth, loginLimiter)

	private := v1.Group("", middleware.Authenticate(tokens))
	addOrderRoutes(private, h.Orders, h.Ledger)
	addDoctorRoutes(private, h.Doctors)
	addNotificationRoutes(private, h.Notifications)
	addAdminRoutes(private, h.Auth, h.Sweeps)

	return router
}

func setMiddlewares(router *gin.Engine, cfg *config.Config, logger *slog.Logger) {
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Recovery())
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))
}

func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
