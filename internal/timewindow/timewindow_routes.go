package timewindow

import (
	"pklapps/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(api *gin.RouterGroup, h *Handler) {
	group := api.Group("/timewindow")
	group.Use(middleware.AuthMiddleware())
	{
		group.GET("", h.Get)
		group.PUT("", middleware.RoleMiddleware("ADMIN"), h.Update)
	}
}
