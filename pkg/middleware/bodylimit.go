package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskmanager/pkg/constant"
	"github.com/taskmanager/pkg/dtos"
)

const BODY_TOO_LARGE = "Request body too large"

// BodyLimit rejects declared oversize bodies and caps the bytes readable from the rest.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dtos.Response{
				Status:  constant.STATUS_FAIL,
				Message: BODY_TOO_LARGE,
			})
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
