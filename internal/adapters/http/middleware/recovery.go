package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/stackit/internal/adapters/http/dto"
	"github.com/jsamuelsen/stackit/internal/platform/logging"
)

// Recovery returns middleware that recovers from panics.
// The panic is logged at ERROR with its stack and the client receives the
// standard 500 envelope carrying the trace ID. Apply it first so it also
// covers the other middleware.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			traceID := dto.GetTraceID(c)

			logging.FromContextOr(c.Request.Context(), logger).ErrorContext(c.Request.Context(), "panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("path", c.Request.URL.Path),
				slog.String("method", c.Request.Method),
				slog.String("trace_id", traceID),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			dto.AbortWithError(c, dto.ErrorCodeInternal, "an internal error occurred")
		}()

		c.Next()
	}
}
