package leave

import (
	"leave-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	leaves := r.Group("/leaves")
	{
		leaves.GET("", handler.GetAll)
		if redisClient != nil {
			leaves.POST("", middleware.Idempotency(redisClient), handler.Create)
		} else {
			leaves.POST("", handler.Create)
		}
		leaves.GET("/:id", handler.GetByID)
		leaves.DELETE("/:id", handler.Delete)
		leaves.PATCH("/:id/status", handler.UpdateStatus)
	}

	r.PATCH("/leaves-status", handler.UpdateStatus)
	r.POST("/leaves-status", handler.UpdateStatus)
	r.DELETE("/leaves-delete", handler.Delete)
	r.POST("/leaves-delete", handler.Delete)
	r.DELETE("/clear-leaves", handler.Clear)
	r.POST("/clear-leaves", handler.Clear)
}
