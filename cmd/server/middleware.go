package main

import (
	"os"
	"strings"
	"time"

	"codeberg.org/papermind/server/internal/logger"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// per-IP request budget; embedding-backed endpoints are expensive
const rateLimitFormat = "60-M"

// configures cross-origin access for the web client
func CORSMiddleware() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}

	return cors.New(corsConfig)
}

// limits requests per client IP with an in-memory sliding window
func RateLimitMiddleware() gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(rateLimitFormat)
	if err != nil {
		logger.Fatal("invalid rate limit format", "format", rateLimitFormat, "error", err)
	}

	store := memory.NewStoreWithOptions(limiter.StoreOptions{
		Prefix:          "papermind",
		CleanUpInterval: time.Minute,
	})

	return mgin.NewMiddleware(limiter.New(store, rate))
}
