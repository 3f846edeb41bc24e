package middleware

import (
	"leave-tracker/internal/shared/apperror"
	"leave-tracker/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Enforcer is satisfied by rbac.Service.
type Enforcer interface {
	Enforce(role, resource, action string) (bool, error)
}

// RBACAuthorize must run after SessionAuth.
func RBACAuthorize(enforcer Enforcer, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if c.GetString(ContextUserID) == "" || role == "" {
			e := apperror.ErrUnauthorized
			response.Abort(c, e.HTTPStatus, e.Code, e.Message, nil)
			return
		}

		allowed, err := enforcer.Enforce(role, resource, action)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Abort(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			return
		}

		if !allowed {
			e := apperror.ErrForbidden
			response.Abort(c, e.HTTPStatus, e.Code, e.Message, map[string]any{
				"required": resource + ":" + action,
			})
			return
		}
		c.Next()
	}
}
