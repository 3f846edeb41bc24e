package submission

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	subs := r.Group("/submissions")
	{
		subs.GET("", handler.List)
		subs.POST("/conflicts", handler.Conflicts)
		subs.PATCH("/status", handler.UpdateStatus)
		subs.POST("/status", handler.UpdateStatus)
	}
}
