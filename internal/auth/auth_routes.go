package auth

import (
	"leave-tracker/internal/middleware"
	"leave-tracker/internal/rbac"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit applies per client ip to the credential endpoints and per user
// to the session endpoints. A zero SessionPerSecond disables the latter.
type RateLimit struct {
	PerSecond        rate.Limit
	Burst            int
	SessionPerSecond rate.Limit
	SessionBurst     int
}

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer middleware.Enforcer, limit RateLimit) {
	session := middleware.SessionAuth(handler.service)
	credentials := middleware.RateLimitByIP(limit.PerSecond, limit.Burst)
	var perUser gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if limit.SessionPerSecond > 0 {
		perUser = middleware.RateLimitByUser(limit.SessionPerSecond, limit.SessionBurst)
	}

	auth := r.Group("/auth")
	{
		auth.POST("/verify", credentials, handler.Verify)
		auth.POST("/first-login", credentials, handler.FirstLogin)
		auth.POST("/login", credentials, handler.Login)
		auth.POST("/check", credentials, handler.Check)

		auth.GET("/me", session, perUser, middleware.RBACAuthorize(enforcer, rbac.ResourceProfile, rbac.ActionRead), handler.Me)
		auth.GET("/my-leaves", session, perUser, middleware.RBACAuthorize(enforcer, rbac.ResourceOwnLeaves, rbac.ActionRead), handler.MyLeaves)
	}
}
