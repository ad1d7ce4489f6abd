package retrieve

import (
	"codeberg.org/papermind/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers hybrid retrieval routes
func RegisterRoutes(router *gin.RouterGroup, ret Retriever) {
	router.POST("/hybrid/retrieve", auth.OptionalAuthMiddleware(), Handler(ret))
}
