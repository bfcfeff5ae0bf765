package routes

import (
	"laboratorio_dental/internal/adapter/http/handlers"
	"laboratorio_dental/internal/adapter/http/middleware"
	"laboratorio_dental/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", handlers.Ping)
}

func addAuthRoutes(rg *gin.RouterGroup, authHandler *handlers.AuthHandler, limiter *middleware.IPRateLimiter) {
	rg.POST("/auth/login", limiter.Middleware(), authHandler.Login)
}

func addAdminRoutes(rg *gin.RouterGroup, authHandler *handlers.AuthHandler, sweepHandler *handlers.SweepHandler) {
	adminOnly := middleware.RequireRoles(entities.RoleAdmin)

	rg.POST("/users", adminOnly, authHandler.CreateUser)

	sweeps := rg.Group("/admin/sweeps", adminOnly)
	{
		sweeps.POST("/unpaid", sweepHandler.RunUnpaidCheck)
		sweeps.POST("/purge", sweepHandler.RunPurge)
	}
}
