package attendance

import (
	"pklapps/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(api *gin.RouterGroup, h *Handler, rdb *redis.Client) {
	group := api.Group("/attendance")
	group.Use(middleware.AuthMiddleware())
	{
		group.POST("/submit",
			middleware.RateLimitByUser(5, 10),
			middleware.Idempotency(rdb),
			h.Submit,
		)
		group.GET("/history", h.History)
	}
}
