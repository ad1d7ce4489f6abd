package documents

import (
	"codeberg.org/papermind/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers document ingest and status routes; both require auth
func RegisterRoutes(router *gin.RouterGroup, store Store, ingester Ingester) {
	group := router.Group("/documents")
	group.Use(auth.AuthMiddleware())

	group.POST("/:id/ingest", IngestHandler(store, ingester))
	group.GET("/:id/status", StatusHandler(store))
}
