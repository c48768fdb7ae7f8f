package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	resp "go-gin-mongo-shop/internal/transport/http/response"
)

// Timeout bounds the request context so store calls give up with it.
// Handlers that hit the deadline before writing get a 504, and the deadline
// is recorded on the context for the access log.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()

		err := ctx.Err()
		if !errors.Is(err, context.DeadlineExceeded) || c.Writer.Written() {
			return
		}
		_ = c.Error(fmt.Errorf("%s %s after %s: %w", c.Request.Method, c.FullPath(), d, err))
		resp.Abort(c, http.StatusGatewayTimeout, resp.MsgTimeout)
	}
}
