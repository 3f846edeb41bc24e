package app

import (
	"context"
	"net/http"

	"leave-tracker/internal/shared/response"
	"leave-tracker/internal/store"

	"github.com/gin-gonic/gin"
)

type storageProbe interface {
	Mode(ctx context.Context) store.Mode
	Degraded(ctx context.Context) bool
}

type healthResponse struct {
	Status   string `json:"status"`
	Storage  string `json:"storage"`
	Durable  bool   `json:"durable"`
	Degraded bool   `json:"degraded"`
}

func healthHandler(probe storageProbe) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		mode := probe.Mode(ctx)
		response.Success(c, http.StatusOK, healthResponse{
			Status:   "ok",
			Storage:  string(mode),
			Durable:  mode.Durable(),
			Degraded: probe.Degraded(ctx),
		})
	}
}
