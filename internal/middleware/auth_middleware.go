package middleware

import (
	"context"
	"strings"

	"leave-tracker/internal/shared/apperror"
	"leave-tracker/internal/shared/contextutil"
	"leave-tracker/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// Session is the subject of a verified bearer token.
type Session struct {
	UserID string
	Role   string
}

// SessionVerifier validates a raw bearer token. An empty token must be
// rejected with an unauthorized error, a bad one with forbidden.
type SessionVerifier interface {
	VerifyToken(ctx context.Context, token string) (Session, error)
}

func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// SessionAuth reads "Authorization: Bearer <token>" and stores the session
// subject in both the gin and the request context.
func SessionAuth(verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		token := bearerToken(c.GetHeader("Authorization"))

		session, err := verifier.VerifyToken(ctx, token)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Abort(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
			return
		}

		c.Set(ContextUserID, session.UserID)
		c.Set(ContextRole, session.Role)

		log := contextutil.GetLogger(ctx, nil).With(zap.String("user_id", session.UserID))
		ctx = contextutil.WithUserID(ctx, session.UserID)
		ctx = contextutil.WithLogger(ctx, log)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
