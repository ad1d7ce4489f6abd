package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// returns the server health status; webSearchEnabled tells clients
// whether the web-search toggle will have any effect
func Handler(webSearchEnabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, Response{
			Status:           "healthy",
			Service:          "papermind",
			Version:          "1.0.0",
			WebSearchEnabled: webSearchEnabled,
		})
	}
}

// responds with pong for testing
func PingHandler(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{
		Message: "pong",
	})
}
