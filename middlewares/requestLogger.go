package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Kariqs/amexan-storefront/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-Id"

// RequestLogger tags each request with an id, stores a request-scoped logger
// in the gin and request contexts, and logs the outcome.
func RequestLogger(base *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		reqID := ctx.GetHeader(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		ctx.Header(RequestIDHeader, reqID)

		l := base.With(
			"req_id", reqID,
			"method", ctx.Request.Method,
			"path", ctx.Request.URL.Path,
			"remote", ctx.ClientIP(),
		)
		logging.With(ctx, l)
		ctx.Request = ctx.Request.WithContext(logging.WithCtx(ctx.Request.Context(), l))

		ctx.Next()

		status := ctx.Writer.Status()
		attrs := []any{
			"status", status,
			"dur_ms", time.Since(start).Milliseconds(),
			"resp_bytes", ctx.Writer.Size(),
		}
		if len(ctx.Errors) > 0 {
			attrs = append(attrs, "error", ctx.Errors.String())
		}
		if status >= http.StatusInternalServerError {
			l.Error("http_request", attrs...)
			return
		}
		if status >= http.StatusBadRequest {
			l.Warn("http_request", attrs...)
			return
		}
		l.Info("http_request", attrs...)
	}
}
