package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/taskmanager/pkg/constant"
	"github.com/taskmanager/pkg/dtos"
	"github.com/taskmanager/pkg/errutil"
	"github.com/taskmanager/pkg/metrics"
	"github.com/taskmanager/pkg/state"
	"github.com/taskmanager/pkg/token"
)

// TokenHeader is the raw, non-standard header checked before Authorization.
const TokenHeader = "token"

const requestIDHeader = "X-Request-ID"

// TokenVerifier validates an identity assertion.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

func ClaimIp() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(state.CurrentUserIP, c.ClientIP())
		c.Next()
	}
}

// RequestID propagates X-Request-ID or assigns a new one, on the response and the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(state.RequestID, id)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), state.RequestID, id)) //nolint:staticcheck
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// CheckAuth rejects requests without a valid token and attaches the caller's identity otherwise.
func CheckAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := verifier.Verify(extractToken(c))
		if err != nil {
			metrics.RecordGatewayRejection()
			rejection := errutil.Unauthorized(constant.UNAUTHORIZED)
			c.AbortWithStatusJSON(errutil.HTTPStatus(rejection), dtos.Response{
				Status:  constant.STATUS_FAIL,
				Message: errutil.Message(rejection),
			})
			return
		}

		identity := state.Identity{ID: claims.UserID, Email: claims.Email}
		c.Set(state.CurrentUserId, identity)
		c.Request = c.Request.WithContext(state.SetCurrentUser(c.Request.Context(), identity))

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if raw := strings.TrimSpace(c.GetHeader(TokenHeader)); raw != "" {
		return raw
	}

	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	scheme, credential, found := strings.Cut(authHeader, " ")
	if found && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(credential)
	}
	return authHeader
}
