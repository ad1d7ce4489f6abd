package chat

import (
	"codeberg.org/papermind/server/api/rest/retrieve"
	"codeberg.org/papermind/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers question-answering routes; router carries /hybrid/query,
// api carries the web client's /rag/chat
func RegisterRoutes(router, api *gin.RouterGroup, ans Answerer, ret retrieve.Retriever) {
	router.POST("/hybrid/query", auth.OptionalAuthMiddleware(), QueryHandler(ans))
	api.POST("/rag/chat", auth.OptionalAuthMiddleware(), ChatHandler(ret))
}
