package middleware

import (
	"context"

	"leave-tracker/internal/store"

	"github.com/gin-gonic/gin"
)

const (
	HeaderStorageMode      = "X-Storage-Mode"
	HeaderStorageEphemeral = "X-Storage-Ephemeral"
)

type StorageProbe interface {
	Mode(ctx context.Context) store.Mode
}

// StorageMode annotates every response with the active backend so clients can
// tell when data will not survive a restart.
func StorageMode(probe StorageProbe) gin.HandlerFunc {
	return func(c *gin.Context) {
		mode := probe.Mode(c.Request.Context())
		c.Header(HeaderStorageMode, string(mode))
		if !mode.Durable() {
			c.Header(HeaderStorageEphemeral, "true")
		}
		c.Next()
	}
}
