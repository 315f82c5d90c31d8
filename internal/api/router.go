package api

import (
	"github.com/gin-gonic/gin"
	"github.com/liliang-cn/jogjachat/internal/api/admin"
	"github.com/liliang-cn/jogjachat/internal/api/middleware"
	"github.com/liliang-cn/jogjachat/internal/api/npc"
	"github.com/liliang-cn/jogjachat/internal/service"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	APIKey       string
	AllowOrigins []string
}

// SetupRouter sets up the Gin router
func SetupRouter(
	npcService *service.NPCService,
	adminService *service.AdminService,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(middleware.CORS(cfg.AllowOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Assistant API (public, keyed by session id)
	npcHandler := npc.NewHandler(npcService)
	npcHandler.RegisterRoutes(r.Group("/api"))

	// Admin API (requires API key)
	adminHandler := admin.NewHandler(adminService)
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.Auth(cfg.APIKey))
	adminHandler.RegisterRoutes(adminGroup)

	return r
}
