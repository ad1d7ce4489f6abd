package main

import (
	"codeberg.org/papermind/server/api/rest/chat"
	"codeberg.org/papermind/server/api/rest/documents"
	"codeberg.org/papermind/server/api/rest/health"
	"codeberg.org/papermind/server/api/rest/retrieve"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware())
	router.Use(RateLimitMiddleware())

	router.GET("/health", health.Handler(server.services.WebSearchEnabled()))

	root := router.Group("")
	api := router.Group("/api")

	{
		api.GET("/ping", health.PingHandler)

		retrieve.RegisterRoutes(root, server.services.Hybrid)
		chat.RegisterRoutes(root, api, server.services.Answerer, server.services.Hybrid)
		documents.RegisterRoutes(api, server.services.Storage, server.services.Pipeline)
	}
}
