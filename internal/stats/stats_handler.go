package stats

import (
	"context"
	"net/http"

	"leave-tracker/internal/leave"
	"leave-tracker/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Source is satisfied by leave.Repository. Both calls are total: they
// return a zero snapshot or an empty list instead of failing.
type Source interface {
	GetStats(ctx context.Context) leave.Stats
	GetEmployeeStats(ctx context.Context) []leave.EmployeeStats
}

type Handler struct {
	source Source
}

func NewHandler(source Source) *Handler {
	return &Handler{source: source}
}

func (h *Handler) Overview(c *gin.Context) {
	response.Success(c, http.StatusOK, h.source.GetStats(c.Request.Context()))
}

func (h *Handler) Employees(c *gin.Context) {
	response.Success(c, http.StatusOK, h.source.GetEmployeeStats(c.Request.Context()))
}

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	stats := r.Group("/stats")
	{
		stats.GET("/overview", handler.Overview)
		stats.GET("/employees", handler.Employees)
	}
}
